package resolved

const objectClass = "java.lang.Object"

// WildcardType is "?" or "? extends Bound". A bounded wildcard describes
// itself and its members as its bound while still reporting IsWildcard.
type WildcardType struct {
	bound Type
}

// Wildcard returns the unbounded wildcard.
func Wildcard() *WildcardType {
	return &WildcardType{}
}

func NewBoundedWildcard(bound Type) *WildcardType {
	return &WildcardType{bound: bound}
}

// Bound returns the upper bound, or nil for an unbounded wildcard.
func (w *WildcardType) Bound() Type { return w.bound }

func (w *WildcardType) Description() string { return w.DescriptionIn(w.Language()) }

func (w *WildcardType) SimpleDescription() string { return w.SimpleDescriptionIn(w.Language()) }

func (w *WildcardType) DescriptionIn(lang Language) string {
	if w.bound == nil {
		return lang.Wildcard()
	}
	return w.bound.DescriptionIn(lang)
}

func (w *WildcardType) SimpleDescriptionIn(lang Language) string {
	if w.bound == nil {
		return lang.Wildcard()
	}
	return w.bound.SimpleDescriptionIn(lang)
}

func (w *WildcardType) AssignableType() string {
	if w.bound == nil {
		return objectClass
	}
	return w.bound.AssignableType()
}

func (w *WildcardType) Language() Language {
	if w.bound == nil {
		return Java
	}
	return w.bound.Language()
}

func (w *WildcardType) IsAbstract() bool       { return w.bound != nil && w.bound.IsAbstract() }
func (w *WildcardType) IsInterface() bool      { return w.bound != nil && w.bound.IsInterface() }
func (w *WildcardType) IsWildcard() bool       { return true }
func (w *WildcardType) IsArray() bool          { return w.bound != nil && w.bound.IsArray() }
func (w *WildcardType) IsInstantiatable() bool { return false }
func (w *WildcardType) IsAnonymous() bool      { return false }
func (w *WildcardType) IsAnnotation() bool     { return w.bound != nil && w.bound.IsAnnotation() }
func (w *WildcardType) IsInner() bool          { return w.bound != nil && w.bound.IsInner() }
func (w *WildcardType) IsLocal() bool          { return false }
func (w *WildcardType) IsStatic() bool         { return w.bound != nil && w.bound.IsStatic() }
func (w *WildcardType) IsPublic() bool         { return w.bound == nil || w.bound.IsPublic() }

func (w *WildcardType) TypeParameters() []Type {
	if w.bound == nil {
		return nil
	}
	return w.bound.TypeParameters()
}

func (w *WildcardType) Fields() []*Field {
	if w.bound == nil {
		return nil
	}
	return w.bound.Fields()
}

func (w *WildcardType) Methods() []*Method {
	if w.bound == nil {
		return nil
	}
	return w.bound.Methods()
}

func (w *WildcardType) Constructors() []*Constructor {
	if w.bound == nil {
		return nil
	}
	return w.bound.Constructors()
}

func (w *WildcardType) Err() error {
	if w.bound == nil {
		return nil
	}
	return w.bound.Err()
}

func (w *WildcardType) key() string {
	if w.bound == nil {
		return "?"
	}
	return "? extends " + w.bound.key()
}

func (w *WildcardType) String() string { return w.Description() }
