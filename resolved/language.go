package resolved

import (
	"fmt"
	"strings"
)

// ParameterData is a parameter name and its rendered type.
type ParameterData struct {
	Name string
	Type string
}

// Language renders wildcards, arrays and method signatures in the syntax
// of the language a class was written in.
type Language interface {
	Name() string
	Wildcard() string
	Array(component string) string
	// Method renders a signature; returnType is empty for void methods.
	Method(name string, params []ParameterData, returnType string) string
}

var (
	Java   Language = javaLanguage{}
	Kotlin Language = kotlinLanguage{}
)

const kotlinMetadata = "kotlin.Metadata"

type javaLanguage struct{}

func (javaLanguage) Name() string                  { return "java" }
func (javaLanguage) Wildcard() string              { return "?" }
func (javaLanguage) Array(component string) string { return component + "[]" }

func (javaLanguage) Method(name string, params []ParameterData, returnType string) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type + " " + p.Name
	}
	if returnType == "" {
		returnType = "void"
	}
	return fmt.Sprintf("%s %s(%s)", returnType, name, strings.Join(parts, ", "))
}

type kotlinLanguage struct{}

func (kotlinLanguage) Name() string                  { return "kotlin" }
func (kotlinLanguage) Wildcard() string              { return "*" }
func (kotlinLanguage) Array(component string) string { return "Array<" + component + ">" }

func (kotlinLanguage) Method(name string, params []ParameterData, returnType string) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + ": " + p.Type
	}
	s := fmt.Sprintf("fun %s(%s)", name, strings.Join(parts, ", "))
	if returnType != "" {
		s += ": " + returnType
	}
	return s
}
