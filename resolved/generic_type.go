package resolved

import (
	"fmt"
	"strings"

	"github.com/dhamidi/jtype/java"
)

// GenericType is a class together with values for its type variables.
// Creating one resolves it.
type GenericType struct {
	class string
	args  []Type
	typ   Type
}

// NewGenericType resolves class with args bound to its declared type
// variables. The number of args must match the class's type variables.
// Array classes such as "java.lang.String[]" take no arguments.
func NewGenericType(r *Resolver, class string, args ...Type) (*GenericType, error) {
	ref := java.ClassRef{Name: class}
	if ref.IsArray() {
		if len(args) > 0 {
			return nil, &GenericTypeError{Class: class, Got: len(args)}
		}
		t, err := r.Resolve(ref)
		if err != nil {
			return nil, err
		}
		return &GenericType{class: class, typ: t}, nil
	}

	c, err := r.path.Load(class)
	if err != nil {
		return nil, err
	}
	names := java.TypeVariableNames(c)
	if len(names) != len(args) {
		return nil, &GenericTypeError{Class: class, Variables: variableNames(names), Got: len(args)}
	}

	t, err := r.resolveClass(class, nil, args)
	if err != nil {
		return nil, err
	}
	if err := complete(t); err != nil {
		return nil, err
	}
	return &GenericType{class: class, args: args, typ: t}, nil
}

// FromResolvedType wraps an already resolved type.
func FromResolvedType(t Type) *GenericType {
	g := &GenericType{class: t.AssignableType(), typ: t}
	if _, ok := t.(*ClassType); ok {
		g.args = t.TypeParameters()
	}
	return g
}

func (g *GenericType) Class() string { return g.class }
func (g *GenericType) Args() []Type  { return g.args }
func (g *GenericType) Type() Type    { return g.typ }

func (g *GenericType) String() string {
	return g.typ.Description()
}

// TypeToken recovers a generic type captured by a token class. The
// token class extends, or implements, a generic type with exactly one
// type argument, as javac emits for
//
//	new TypeToken<Map<String, Integer>>() {}
//
// and the resolved argument is returned.
func TypeToken(r *Resolver, class string) (Type, error) {
	c, err := r.path.Load(class)
	if err != nil {
		return nil, err
	}
	if names := java.TypeVariableNames(c); len(names) > 0 {
		return nil, &GenericTypeError{Class: class, Variables: variableNames(names)}
	}

	var token *java.ParameterizedType
	if p, ok := c.GenericSuperclass().(*java.ParameterizedType); ok && len(p.Args) == 1 {
		token = p
	} else {
		for _, i := range c.GenericInterfaces() {
			if p, ok := i.(*java.ParameterizedType); ok && len(p.Args) == 1 {
				token = p
				break
			}
		}
	}
	if token == nil {
		return nil, fmt.Errorf("type token %s: no supertype with a single type argument", class)
	}

	super, err := r.resolve(token, NewBindings(nil, nil, nil), 0)
	if err != nil {
		return nil, fmt.Errorf("type token %s: %w", class, err)
	}
	params := super.TypeParameters()
	if len(params) != 1 {
		return nil, fmt.Errorf("type token %s: %s does not have exactly one type parameter", class, super.Description())
	}
	if err := complete(params[0]); err != nil {
		return nil, err
	}
	return params[0], nil
}

// Describe renders types with their simple descriptions, comma
// separated. It is used in messages.
func Describe(types []Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.SimpleDescription()
	}
	return strings.Join(parts, ",")
}
