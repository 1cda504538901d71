package resolved

// searchOrder lists t followed by its supertypes.
func searchOrder(t Type) ([]Type, error) {
	if w, ok := t.(*WildcardType); ok && w.bound != nil {
		t = w.bound
	}
	ct, ok := t.(*ClassType)
	if !ok {
		return []Type{t}, nil
	}
	supers, err := ct.AllSupertypes()
	if err != nil {
		return nil, err
	}
	return append([]Type{t}, supers...), nil
}

// FindField finds a public field by name in t or its supertypes. Fields
// declared by t shadow inherited ones.
func FindField(t Type, name string) (*Field, error) {
	types, err := searchOrder(t)
	if err != nil {
		return nil, err
	}
	var candidates []string
	for _, st := range types {
		for _, f := range st.Fields() {
			if f.IsPublic() && f.Name() == name {
				return f, nil
			}
			candidates = append(candidates, f.Describe())
		}
	}
	return nil, &QueryNotFoundError{Query: name + ":*", Type: t.Description(), Candidates: candidates}
}

// FindMethod finds the single public, non-abstract method named name in t
// or its supertypes. A nil params matches any parameter list; otherwise
// the parameter types must equal params.
func FindMethod(t Type, name string, params []Type) (*Method, error) {
	types, err := searchOrder(t)
	if err != nil {
		return nil, err
	}
	var (
		matches    []*Method
		candidates []string
	)
	for _, st := range types {
		for _, m := range st.Methods() {
			candidates = append(candidates, m.Describe())
			if m.IsAbstract() || !m.IsPublic() || m.Name() != name {
				continue
			}
			if params != nil && !m.HasParameters(params...) {
				continue
			}
			if overridden(matches, m) {
				continue
			}
			matches = append(matches, m)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}

	query := name + "(*)"
	if params != nil {
		query = name + "(" + Describe(params) + ")"
	}
	return nil, &QueryNotFoundError{Query: query, Type: t.Description(), Candidates: candidates}
}

// overridden reports whether one of found, declared lower in the
// hierarchy, has the same parameter types as m.
func overridden(found []*Method, m *Method) bool {
	types := make([]Type, len(m.params))
	for i, p := range m.params {
		types[i] = p.Type
	}
	for _, f := range found {
		if f.HasParameters(types...) {
			return true
		}
	}
	return false
}
