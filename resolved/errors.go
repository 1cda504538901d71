package resolved

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnboundTypeVariables  = errors.New("unbound type variables")
	ErrUnknownTypeDescriptor = errors.New("unknown type descriptor")
	ErrNoSuchTypeParameter   = errors.New("no such type parameter")
	ErrUnresolvedVariable    = errors.New("unresolved type variable")
	ErrDepthExceeded         = errors.New("resolution depth exceeded")
	ErrQueryNotFound         = errors.New("query not found")
)

// UnboundTypeVariablesError reports a generic class used without type
// arguments.
type UnboundTypeVariablesError struct {
	Class     string
	Variables []string
}

func (e *UnboundTypeVariablesError) Error() string {
	return fmt.Sprintf("type '%s' is used without values for its type variables: [%s]",
		e.Class, strings.Join(e.Variables, ", "))
}

func (e *UnboundTypeVariablesError) Is(target error) bool {
	return target == ErrUnboundTypeVariables
}

// GenericTypeError is returned when a GenericType is created with the
// wrong number of type arguments.
type GenericTypeError struct {
	Class     string
	Variables []string
	Got       int
}

func (e *GenericTypeError) Error() string {
	return fmt.Sprintf("type '%s' contains the following type variables that need to be filled in in order to create a GenericType object: [%s]",
		e.Class, strings.Join(e.Variables, ", "))
}

func (e *GenericTypeError) Is(target error) bool {
	return target == ErrUnboundTypeVariables
}

// ArityMismatchError reports a parameterized type whose argument count
// differs from the number of declared type variables.
type ArityMismatchError struct {
	Class string
	Want  int
	Got   int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("type '%s' declares %d type variables but %d arguments were given", e.Class, e.Want, e.Got)
}

func (e *ArityMismatchError) Is(target error) bool {
	return target == ErrUnboundTypeVariables
}

// UnknownTypeDescriptorError reports a descriptor the engine cannot
// interpret. Kind names the descriptor shape and Value its text.
type UnknownTypeDescriptorError struct {
	Kind  string
	Value string
	Err   error
}

func (e *UnknownTypeDescriptorError) Error() string {
	msg := fmt.Sprintf("unknown type descriptor %s on %q", e.Kind, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UnknownTypeDescriptorError) Is(target error) bool {
	return target == ErrUnknownTypeDescriptor
}

func (e *UnknownTypeDescriptorError) Unwrap() error {
	return e.Err
}

type NoSuchTypeParameterError struct {
	Name string
}

func (e *NoSuchTypeParameterError) Error() string {
	return "No type parameter with the name: " + e.Name
}

func (e *NoSuchTypeParameterError) Is(target error) bool {
	return target == ErrNoSuchTypeParameter
}

// UnresolvedVariableError is raised when a type variable has no binding.
// Member resolution treats it as a reason to drop the member.
type UnresolvedVariableError struct {
	Name string
}

func (e *UnresolvedVariableError) Error() string {
	return fmt.Sprintf("no type variable with name '%s'", e.Name)
}

func (e *UnresolvedVariableError) Is(target error) bool {
	return target == ErrUnresolvedVariable
}

type DepthExceededError struct {
	Limit int
	Type  string
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("resolving %s exceeds the maximum depth of %d", e.Type, e.Limit)
}

func (e *DepthExceededError) Is(target error) bool {
	return target == ErrDepthExceeded
}

// QueryNotFoundError reports a field or method query without exactly one
// match. Candidates lists the members that were searched.
type QueryNotFoundError struct {
	Query      string
	Type       string
	Candidates []string
}

func (e *QueryNotFoundError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "unable to find query [%s] in type %s", e.Query, e.Type)
	for _, c := range e.Candidates {
		sb.WriteString("\n  ")
		sb.WriteString(c)
	}
	return sb.String()
}

func (e *QueryNotFoundError) Is(target error) bool {
	return target == ErrQueryNotFound
}

// fatal reports errors that abort member resolution instead of dropping
// the member.
func fatal(err error) bool {
	return errors.Is(err, ErrUnknownTypeDescriptor)
}
