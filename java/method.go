package java

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dhamidi/jtype/classfile"
)

type Method struct {
	class *Class
	info  *classfile.MethodInfo
	cp    classfile.ConstantPool

	once       sync.Once
	params     []Parameter
	returnType Type
	typeParams []TypeParameter
}

func (m *Method) Name() string {
	return m.info.Name(m.cp)
}

func (m *Method) Descriptor() string {
	return m.info.Descriptor(m.cp)
}

func (m *Method) DeclaringClass() *Class {
	return m.class
}

// Parameters returns the declared parameters. Parameters the compiler adds
// (outer instances, enum name and ordinal, captured locals) are omitted
// when they can be identified.
func (m *Method) Parameters() []Parameter {
	m.decode()
	return m.params
}

// ReturnType returns the generic return type, or nil for void methods and
// constructors.
func (m *Method) ReturnType() Type {
	m.decode()
	return m.returnType
}

func (m *Method) TypeParameters() []TypeParameter {
	m.decode()
	return m.typeParams
}

func (m *Method) decode() {
	m.once.Do(func() {
		descText := m.Descriptor()
		desc, err := classfile.ParseMethodSignature(descText)
		if err != nil {
			m.returnType = &UnknownType{Kind: "method descriptor", Raw: descText, Err: err}
			return
		}

		var generic *classfile.MethodSignature
		if sigText := m.info.GenericSignature(m.cp); sigText != "" {
			generic, err = classfile.ParseMethodSignature(sigText)
			if err != nil {
				unknown := &UnknownType{Kind: "method signature", Raw: sigText, Err: err}
				m.returnType = unknown
				for i := range desc.Parameters {
					m.params = append(m.params, Parameter{Name: fmt.Sprintf("arg%d", i), Type: unknown, Index: i})
				}
				return
			}
			m.typeParams = typeParametersFrom(generic.TypeParameters)
		}

		explicit := m.explicitParameters(desc, generic)
		names := m.parameterNames(desc)
		k := 0
		for i, p := range desc.Parameters {
			if !explicit[i] {
				continue
			}
			t := FromSignature(p)
			if generic != nil && k < len(generic.Parameters) {
				t = FromSignature(generic.Parameters[k])
			}
			m.params = append(m.params, Parameter{Name: names[i], Type: t, Index: i})
			k++
		}

		result := desc.Result
		if generic != nil {
			result = generic.Result
		}
		if result != classfile.BaseType('V') {
			m.returnType = FromSignature(result)
		}
	})
}

func (m *Method) explicitParameters(desc, generic *classfile.MethodSignature) []bool {
	explicit := make([]bool, len(desc.Parameters))
	for i := range explicit {
		explicit[i] = true
	}

	if mp := m.info.MethodParameters(m.cp); len(mp) == len(desc.Parameters) {
		for i, p := range mp {
			explicit[i] = !p.AccessFlags.IsSynthetic() && !p.AccessFlags.Has(classfile.AccMandated)
		}
		return explicit
	}

	if !m.IsConstructor() {
		return explicit
	}
	implicit := 0
	if generic != nil {
		// the Signature attribute omits implicit leading parameters
		implicit = len(desc.Parameters) - len(generic.Parameters)
	} else if m.class.HasOuterInstance() && len(desc.Parameters) > 0 {
		if ct, ok := desc.Parameters[0].(*classfile.ClassTypeSignature); ok &&
			classfile.InternalToSourceName(ct.InternalName()) == m.class.EnclosingClassName() {
			implicit = 1
		}
	}
	for i := 0; i < implicit && i < len(explicit); i++ {
		explicit[i] = false
	}
	return explicit
}

func (m *Method) parameterNames(desc *classfile.MethodSignature) []string {
	names := make([]string, len(desc.Parameters))
	mp := m.info.MethodParameters(m.cp)
	locals := m.info.LocalVariableNames(m.cp)

	slot := uint16(0)
	if !m.IsStatic() {
		slot = 1
	}
	for i, p := range desc.Parameters {
		switch {
		case i < len(mp) && mp[i].NameIndex != 0:
			names[i] = m.cp.GetUtf8(mp[i].NameIndex)
		case locals[slot] != "":
			names[i] = locals[slot]
		default:
			names[i] = fmt.Sprintf("arg%d", i)
		}
		slot += classfile.SlotSize(p)
	}
	return names
}

func (m *Method) flags() classfile.AccessFlags { return m.info.AccessFlags }

func (m *Method) IsPublic() bool      { return m.flags().IsPublic() }
func (m *Method) IsPrivate() bool     { return m.flags().IsPrivate() }
func (m *Method) IsProtected() bool   { return m.flags().IsProtected() }
func (m *Method) IsStatic() bool      { return m.flags().IsStatic() }
func (m *Method) IsFinal() bool       { return m.flags().IsFinal() }
func (m *Method) IsAbstract() bool    { return m.flags().IsAbstract() }
func (m *Method) IsBridge() bool      { return m.flags().Has(classfile.AccBridge) }
func (m *Method) IsVarargs() bool     { return m.flags().Has(classfile.AccVarargs) }
func (m *Method) IsSynthetic() bool   { return m.info.IsSynthetic(m.cp) }
func (m *Method) IsConstructor() bool { return m.info.IsConstructor(m.cp) }

// IsDefault reports an interface method with a body.
func (m *Method) IsDefault() bool {
	return m.class.IsInterface() && m.IsPublic() && !m.IsAbstract() && !m.IsStatic()
}

func (m *Method) Visibility() Visibility {
	return visibilityOf(m.flags())
}

func (m *Method) Modifiers() string {
	if m.IsConstructor() {
		return modifierString(m.flags(), constructorMember)
	}
	mods := modifierString(m.flags(), methodMember)
	if m.IsDefault() {
		if mods != "" {
			mods += " "
		}
		mods += "default"
	}
	return mods
}

// GenericString follows Method.toGenericString, e.g.
// "public java.util.List<T> pkg.Box.items(int)".
func (m *Method) GenericString() string {
	var sb strings.Builder
	if mods := m.Modifiers(); mods != "" {
		sb.WriteString(mods)
		sb.WriteByte(' ')
	}
	if tps := m.TypeParameters(); len(tps) > 0 {
		sb.WriteByte('<')
		for i, tp := range tps {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(tp.String())
		}
		sb.WriteString("> ")
	}
	if m.IsConstructor() {
		sb.WriteString(m.class.Name())
	} else {
		if rt := m.ReturnType(); rt != nil {
			sb.WriteString(rt.String())
		} else {
			sb.WriteString("void")
		}
		sb.WriteByte(' ')
		sb.WriteString(m.class.Name())
		sb.WriteByte('.')
		sb.WriteString(m.Name())
	}
	sb.WriteByte('(')
	params := m.Parameters()
	for i, p := range params {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(varargsTypeName(p.Type, m.IsVarargs() && i == len(params)-1))
	}
	sb.WriteByte(')')
	return sb.String()
}

func varargsTypeName(t Type, varargs bool) string {
	s := t.String()
	if varargs && strings.HasSuffix(s, "[]") {
		return s[:len(s)-2] + "..."
	}
	return s
}

func (m *Method) String() string {
	return m.GenericString()
}
