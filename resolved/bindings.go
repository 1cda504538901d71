package resolved

import (
	"strings"

	"github.com/dhamidi/jtype/java"
)

// Bindings maps type variable names to resolved types. A Bindings value
// never changes after construction; Shadow and the owner chain build new
// scopes on top of existing ones.
type Bindings struct {
	names []java.TypeVariableName
	vars  map[java.TypeVariableName]Type
	owner *Bindings
}

// NewBindings pairs names with values positionally. owner supplies the
// variables of an enclosing instance and may be nil.
func NewBindings(names []java.TypeVariableName, values []Type, owner *Bindings) *Bindings {
	b := &Bindings{
		names: names,
		vars:  make(map[java.TypeVariableName]Type, len(names)),
		owner: owner,
	}
	for i, n := range names {
		if i < len(values) {
			b.vars[n] = values[i]
		}
	}
	return b
}

// Lookup finds the binding for name, searching enclosing scopes.
func (b *Bindings) Lookup(name java.TypeVariableName) (Type, bool) {
	for s := b; s != nil; s = s.owner {
		if t, ok := s.vars[name]; ok {
			return t, t != nil
		}
	}
	return nil, false
}

// Shadow hides names declared by a generic method so that references to
// them do not pick up class bindings of the same name.
func (b *Bindings) Shadow(names ...java.TypeVariableName) *Bindings {
	if len(names) == 0 {
		return b
	}
	s := &Bindings{vars: make(map[java.TypeVariableName]Type, len(names)), owner: b}
	for _, n := range names {
		s.vars[n] = nil
	}
	return s
}

// Names lists the variables declared in this scope, in declaration order.
func (b *Bindings) Names() []java.TypeVariableName {
	if b == nil {
		return nil
	}
	return b.names
}

func (b *Bindings) Owner() *Bindings {
	if b == nil {
		return nil
	}
	return b.owner
}

func (b *Bindings) Len() int {
	if b == nil {
		return 0
	}
	return len(b.vars)
}

func (b *Bindings) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, n := range b.Names() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(n.String())
		sb.WriteString(": ")
		if t := b.vars[n]; t != nil {
			sb.WriteString(t.Description())
		}
	}
	sb.WriteByte('}')
	return sb.String()
}
