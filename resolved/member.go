package resolved

import (
	"strings"

	"github.com/dhamidi/jtype/java"
)

type Parameter struct {
	Name string
	Type Type
	decl java.Parameter
}

// Declaration returns the unresolved parameter.
func (p *Parameter) Declaration() java.Parameter { return p.decl }

func (p *Parameter) String() string {
	return p.Type.SimpleDescription() + " " + p.Name
}

func hasParameters(params []*Parameter, types []Type) bool {
	if len(params) != len(types) {
		return false
	}
	for i, p := range params {
		if !Equal(p.Type, types[i]) {
			return false
		}
	}
	return true
}

type Constructor struct {
	declaring *ClassType
	decl      *java.Method
	params    []*Parameter
}

func (c *Constructor) Declaration() *java.Method   { return c.decl }
func (c *Constructor) DeclaringType() *ClassType   { return c.declaring }
func (c *Constructor) Parameters() []*Parameter    { return c.params }
func (c *Constructor) IsPublic() bool              { return c.decl.IsPublic() }
func (c *Constructor) IsVarargs() bool             { return c.decl.IsVarargs() }
func (c *Constructor) Visibility() java.Visibility { return c.decl.Visibility() }

// HasParameters reports whether the parameter types equal types, in order.
func (c *Constructor) HasParameters(types ...Type) bool {
	return hasParameters(c.params, types)
}

// Describe renders the declaration, e.g. "public pkg.Box(java.lang.String)".
func (c *Constructor) Describe() string {
	return c.decl.GenericString()
}

func (c *Constructor) String() string { return c.Describe() }

type Method struct {
	declaring  *ClassType
	decl       *java.Method
	params     []*Parameter
	returnType Type
}

func (m *Method) Name() string              { return m.decl.Name() }
func (m *Method) Declaration() *java.Method { return m.decl }
func (m *Method) DeclaringType() *ClassType { return m.declaring }
func (m *Method) Parameters() []*Parameter  { return m.params }

// ReturnType returns nil for void methods.
func (m *Method) ReturnType() Type { return m.returnType }

func (m *Method) IsPublic() bool              { return m.decl.IsPublic() }
func (m *Method) IsStatic() bool              { return m.decl.IsStatic() }
func (m *Method) IsAbstract() bool            { return m.decl.IsAbstract() }
func (m *Method) IsFinal() bool               { return m.decl.IsFinal() }
func (m *Method) IsDefault() bool             { return m.decl.IsDefault() }
func (m *Method) IsVarargs() bool             { return m.decl.IsVarargs() }
func (m *Method) Visibility() java.Visibility { return m.decl.Visibility() }

func (m *Method) HasParameters(types ...Type) bool {
	return hasParameters(m.params, types)
}

// Describe renders the resolved signature in the declaring type's
// language followed by the declaration, e.g.
// "'String name()' [public java.lang.String pkg.Person.name()]".
func (m *Method) Describe() string {
	return m.DescribeIn(m.declaring.Language())
}

func (m *Method) DescribeIn(lang Language) string {
	return "'" + m.SignatureIn(lang) + "' [" + m.decl.GenericString() + "]"
}

// SignatureIn renders only the resolved signature.
func (m *Method) SignatureIn(lang Language) string {
	params := make([]ParameterData, len(m.params))
	for i, p := range m.params {
		params[i] = ParameterData{Name: p.Name, Type: p.Type.SimpleDescriptionIn(lang)}
	}
	var ret string
	if m.returnType != nil {
		ret = m.returnType.SimpleDescriptionIn(lang)
	}
	return lang.Method(m.Name(), params, ret)
}

func (m *Method) String() string { return m.Describe() }

type Field struct {
	declaring *ClassType
	decl      *java.Field
	typ       Type
}

func (f *Field) Name() string              { return f.decl.Name() }
func (f *Field) Type() Type                { return f.typ }
func (f *Field) Declaration() *java.Field  { return f.decl }
func (f *Field) DeclaringType() *ClassType { return f.declaring }

func (f *Field) IsPublic() bool              { return f.decl.IsPublic() }
func (f *Field) IsStatic() bool              { return f.decl.IsStatic() }
func (f *Field) IsFinal() bool               { return f.decl.IsFinal() }
func (f *Field) IsTransient() bool           { return f.decl.IsTransient() }
func (f *Field) IsEnumConstant() bool        { return f.decl.IsEnumConstant() }
func (f *Field) Visibility() java.Visibility { return f.decl.Visibility() }

// Describe renders modifiers, simple type and name, e.g.
// "public static final String FIELD_1".
func (f *Field) Describe() string {
	var parts []string
	switch {
	case f.decl.IsPublic():
		parts = append(parts, "public")
	case f.decl.IsProtected():
		parts = append(parts, "protected")
	case f.decl.IsPrivate():
		parts = append(parts, "private")
	}
	if f.decl.IsStatic() {
		parts = append(parts, "static")
	}
	if f.decl.IsTransient() {
		parts = append(parts, "transient")
	}
	if f.decl.IsFinal() {
		parts = append(parts, "final")
	}
	parts = append(parts, f.typ.SimpleDescription(), f.Name())
	return strings.Join(parts, " ")
}

func (f *Field) String() string { return f.Describe() }
