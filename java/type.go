package java

import (
	"fmt"
	"strings"

	"github.com/dhamidi/jtype/classfile"
)

// Type is an unresolved type descriptor as declared in a class file. It is
// one of ClassRef, *ParameterizedType, *GenericArrayType, *WildcardType,
// TypeVariable or *UnknownType.
type Type interface {
	// String renders the type the way Java's Type.getTypeName does.
	String() string
	isType()
}

// ClassRef names a non-generic class, a primitive, or an array of either,
// e.g. "java.lang.String", "int", "java.lang.String[][]".
type ClassRef struct {
	Name string
}

func (ClassRef) isType()          {}
func (c ClassRef) String() string { return c.Name }

// IsArray reports whether the reference names an array class.
func (c ClassRef) IsArray() bool { return strings.HasSuffix(c.Name, "[]") }

// Component strips one array dimension.
func (c ClassRef) Component() ClassRef {
	return ClassRef{Name: strings.TrimSuffix(c.Name, "[]")}
}

type ParameterizedType struct {
	// Raw is the binary name of the generic class.
	Raw string
	// Owner is nil for top-level and static nested classes.
	Owner Type
	Args  []Type
}

func (*ParameterizedType) isType() {}

func (p *ParameterizedType) String() string {
	var sb strings.Builder
	if p.Owner != nil {
		sb.WriteString(p.Owner.String())
		sb.WriteByte('$')
		sb.WriteString(p.Raw[strings.LastIndexByte(p.Raw, '$')+1:])
	} else {
		sb.WriteString(p.Raw)
	}
	if len(p.Args) > 0 {
		sb.WriteByte('<')
		for i, a := range p.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.String())
		}
		sb.WriteByte('>')
	}
	return sb.String()
}

type GenericArrayType struct {
	Component Type
}

func (*GenericArrayType) isType() {}
func (g *GenericArrayType) String() string {
	return g.Component.String() + "[]"
}

// WildcardType is "?", "? extends X" or "? super X". Upper is
// [java.lang.Object] when no upper bound is written.
type WildcardType struct {
	Upper []Type
	Lower []Type
}

func (*WildcardType) isType() {}

func (w *WildcardType) String() string {
	switch {
	case len(w.Lower) > 0:
		return "? super " + w.Lower[0].String()
	case len(w.Upper) > 0 && w.Upper[0] != ObjectType:
		return "? extends " + w.Upper[0].String()
	}
	return "?"
}

type TypeVariable struct {
	Name TypeVariableName
}

func (TypeVariable) isType()          {}
func (v TypeVariable) String() string { return v.Name.String() }

// UnknownType stands for a descriptor that could not be decoded. Kind names
// what was being decoded and Raw holds the offending text.
type UnknownType struct {
	Kind string
	Raw  string
	Err  error
}

func (*UnknownType) isType() {}
func (u *UnknownType) String() string {
	return fmt.Sprintf("<unknown %s %q>", u.Kind, u.Raw)
}

var ObjectType = ClassRef{Name: "java.lang.Object"}

// FreeVariables lists the type variables referenced by t, in first
// occurrence order.
func FreeVariables(t Type) []TypeVariableName {
	var names []TypeVariableName
	seen := map[TypeVariableName]bool{}
	var walk func(Type)
	walk = func(t Type) {
		switch t := t.(type) {
		case TypeVariable:
			if !seen[t.Name] {
				seen[t.Name] = true
				names = append(names, t.Name)
			}
		case *ParameterizedType:
			if t.Owner != nil {
				walk(t.Owner)
			}
			for _, a := range t.Args {
				walk(a)
			}
		case *GenericArrayType:
			walk(t.Component)
		case *WildcardType:
			for _, b := range t.Upper {
				walk(b)
			}
			for _, b := range t.Lower {
				walk(b)
			}
		}
	}
	walk(t)
	return names
}

// FromSignature converts a parsed class-file type signature.
func FromSignature(sig classfile.TypeSignature) Type {
	switch s := sig.(type) {
	case classfile.BaseType:
		return ClassRef{Name: s.Name()}
	case *classfile.TypeVariableSignature:
		return TypeVariable{Name: NewTypeVariableName(s.Name)}
	case *classfile.ArrayTypeSignature:
		component := FromSignature(s.Component)
		if ref, ok := component.(ClassRef); ok {
			return ClassRef{Name: ref.Name + "[]"}
		}
		return &GenericArrayType{Component: component}
	case *classfile.ClassTypeSignature:
		return fromClassTypeSignature(s.Segments)
	}
	return &UnknownType{Kind: "signature", Raw: fmt.Sprint(sig)}
}

func fromClassTypeSignature(segments []classfile.SimpleClassTypeSignature) Type {
	generic := false
	for _, seg := range segments {
		if len(seg.Arguments) > 0 {
			generic = true
		}
	}
	names := make([]string, len(segments))
	for i, seg := range segments {
		names[i] = seg.Name
	}
	name := classfile.InternalToSourceName(strings.Join(names, "$"))
	if !generic {
		return ClassRef{Name: name}
	}

	last := segments[len(segments)-1]
	p := &ParameterizedType{Raw: name}
	if len(segments) > 1 {
		p.Owner = fromClassTypeSignature(segments[:len(segments)-1])
	}
	for _, a := range last.Arguments {
		p.Args = append(p.Args, fromTypeArgument(a))
	}
	return p
}

func fromTypeArgument(a classfile.TypeArgument) Type {
	switch a.Wildcard {
	case classfile.WildcardAny:
		return &WildcardType{Upper: []Type{ObjectType}}
	case classfile.WildcardExtends:
		return &WildcardType{Upper: []Type{FromSignature(a.Type)}}
	case classfile.WildcardSuper:
		return &WildcardType{Upper: []Type{ObjectType}, Lower: []Type{FromSignature(a.Type)}}
	}
	return FromSignature(a.Type)
}

// ParseFieldType decodes a field signature or descriptor, returning an
// *UnknownType when the text is malformed.
func ParseFieldType(sig string) Type {
	parsed, err := classfile.ParseFieldSignature(sig)
	if err != nil {
		return &UnknownType{Kind: "field signature", Raw: sig, Err: err}
	}
	return FromSignature(parsed)
}
