package java

import "unique"

// TypeVariableName identifies a declared type variable such as T or K.
// Values are interned and compare with ==.
type TypeVariableName struct {
	h unique.Handle[string]
}

func NewTypeVariableName(name string) TypeVariableName {
	return TypeVariableName{h: unique.Make(name)}
}

func (n TypeVariableName) String() string {
	if n == (TypeVariableName{}) {
		return ""
	}
	return n.h.Value()
}

// TypeVariableNames returns the names of a class's declared type
// parameters in declaration order.
func TypeVariableNames(c *Class) []TypeVariableName {
	params := c.TypeParameters()
	names := make([]TypeVariableName, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}
