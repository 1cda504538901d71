package resolved

// ArrayType is an array of a resolved component type.
type ArrayType struct {
	component Type
}

func NewArrayType(component Type) *ArrayType {
	return &ArrayType{component: component}
}

func (a *ArrayType) ComponentType() Type { return a.component }

func (a *ArrayType) Description() string { return a.DescriptionIn(a.Language()) }

func (a *ArrayType) SimpleDescription() string { return a.SimpleDescriptionIn(a.Language()) }

func (a *ArrayType) DescriptionIn(lang Language) string {
	return lang.Array(a.component.DescriptionIn(lang))
}

func (a *ArrayType) SimpleDescriptionIn(lang Language) string {
	return lang.Array(a.component.SimpleDescriptionIn(lang))
}

func (a *ArrayType) AssignableType() string { return a.component.AssignableType() + "[]" }
func (a *ArrayType) Language() Language     { return Java }

func (a *ArrayType) IsAbstract() bool       { return false }
func (a *ArrayType) IsInterface() bool      { return false }
func (a *ArrayType) IsWildcard() bool       { return false }
func (a *ArrayType) IsArray() bool          { return true }
func (a *ArrayType) IsInstantiatable() bool { return instantiatable(a) }
func (a *ArrayType) IsAnonymous() bool      { return false }
func (a *ArrayType) IsAnnotation() bool     { return false }
func (a *ArrayType) IsInner() bool          { return false }
func (a *ArrayType) IsLocal() bool          { return false }
func (a *ArrayType) IsStatic() bool         { return false }
func (a *ArrayType) IsPublic() bool         { return true }

// TypeParameters returns the component type, so arrays can be walked like
// parameterized types.
func (a *ArrayType) TypeParameters() []Type { return []Type{a.component} }

func (a *ArrayType) Fields() []*Field             { return nil }
func (a *ArrayType) Methods() []*Method           { return nil }
func (a *ArrayType) Constructors() []*Constructor { return nil }
func (a *ArrayType) Err() error                   { return nil }

func (a *ArrayType) key() string { return a.component.key() + "[]" }

func (a *ArrayType) String() string { return a.Description() }
