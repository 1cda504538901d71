// Package resolved turns unresolved class-file type descriptors into fully
// substituted types with resolved members.
package resolved

import (
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("jtype.resolved")

// Type is a resolved type: a *ClassType, *ArrayType or *WildcardType.
// Values are immutable and may be shared between goroutines.
type Type interface {
	// Description renders the binary name with type arguments, e.g.
	// "java.util.List<java.lang.String>".
	Description() string
	// SimpleDescription is Description with simple names, e.g.
	// "List<String>".
	SimpleDescription() string
	DescriptionIn(lang Language) string
	SimpleDescriptionIn(lang Language) string
	// AssignableType is the erased binary name a value of this type is an
	// instance of, e.g. "java.util.List" or "int[]".
	AssignableType() string
	Language() Language

	IsAbstract() bool
	IsInterface() bool
	IsWildcard() bool
	IsArray() bool
	IsInstantiatable() bool
	IsAnonymous() bool
	IsAnnotation() bool
	IsInner() bool
	IsLocal() bool
	IsStatic() bool
	IsPublic() bool

	TypeParameters() []Type
	// Fields, Methods and Constructors are empty when Err is non-nil.
	Fields() []*Field
	Methods() []*Method
	Constructors() []*Constructor
	// Err reports a failure that prevented the members from resolving.
	// Types nested in members are resolved lazily, so a nested type can
	// fail after its parent resolved.
	Err() error

	key() string
}

// Equal reports whether a and b describe the same resolved type.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a == b || a.key() == b.key()
}

func instantiatable(t Type) bool {
	if t.IsInterface() || t.IsAbstract() || t.IsWildcard() {
		return false
	}
	for _, p := range t.TypeParameters() {
		if !instantiatable(p) {
			return false
		}
	}
	return true
}

func joinDescriptions(types []Type, describe func(Type) string) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = describe(t)
	}
	return strings.Join(parts, ", ")
}

// complete resolves the members of t and of the types it wraps, returning
// the first error that prevents them from resolving.
func complete(t Type) error {
	switch t := t.(type) {
	case *ArrayType:
		return complete(t.component)
	case *WildcardType:
		if t.bound != nil {
			return complete(t.bound)
		}
		return nil
	}
	return t.Err()
}
