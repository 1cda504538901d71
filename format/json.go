package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/jtype/resolved"
)

type JSONEncoder struct {
	w      io.Writer
	filter *MemberFilter
	typ    resolved.Type
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) WithFilter(f *MemberFilter) *JSONEncoder {
	e.filter = f
	return e
}

func (e *JSONEncoder) Encode(t resolved.Type) error {
	e.typ = t
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := json.MarshalIndent(e.buildType(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

type jsonType struct {
	Description       string              `json:"description"`
	SimpleDescription string              `json:"simpleDescription"`
	AssignableType    string              `json:"assignableType"`
	Kind              string              `json:"kind"`
	Language          string              `json:"language"`
	Modifiers         []string            `json:"modifiers,omitempty"`
	TypeParameters    []string            `json:"typeParameters,omitempty"`
	SuperClass        string              `json:"superClass,omitempty"`
	Interfaces        []string            `json:"interfaces,omitempty"`
	Fields            []jsonField         `json:"fields,omitempty"`
	Constructors      []jsonConstructor   `json:"constructors,omitempty"`
	Methods           []jsonMethod        `json:"methods,omitempty"`
	Dropped           []jsonDroppedMember `json:"dropped,omitempty"`
}

type jsonField struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Visibility string   `json:"visibility"`
	Modifiers  []string `json:"modifiers,omitempty"`
}

type jsonConstructor struct {
	Parameters  []jsonParameter `json:"parameters,omitempty"`
	Visibility  string          `json:"visibility"`
	Declaration string          `json:"declaration"`
}

type jsonMethod struct {
	Name        string          `json:"name"`
	ReturnType  string          `json:"returnType"`
	Parameters  []jsonParameter `json:"parameters,omitempty"`
	Visibility  string          `json:"visibility"`
	Modifiers   []string        `json:"modifiers,omitempty"`
	Signature   string          `json:"signature"`
	Declaration string          `json:"declaration"`
}

type jsonParameter struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

type jsonDroppedMember struct {
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

func (e *JSONEncoder) buildType() jsonType {
	t := e.typ
	data := jsonType{
		Description:       t.Description(),
		SimpleDescription: t.SimpleDescription(),
		AssignableType:    t.AssignableType(),
		Kind:              typeKind(t),
		Language:          t.Language().Name(),
		Modifiers:         typeModifiers(t),
		Fields:            e.buildFields(),
		Constructors:      e.buildConstructors(),
		Methods:           e.buildMethods(),
	}
	for _, p := range t.TypeParameters() {
		data.TypeParameters = append(data.TypeParameters, p.Description())
	}
	super, ifaces := supertypes(t)
	if super != nil {
		data.SuperClass = super.Description()
	}
	for _, i := range ifaces {
		data.Interfaces = append(data.Interfaces, i.Description())
	}
	for _, d := range dropped(t) {
		data.Dropped = append(data.Dropped, jsonDroppedMember{Kind: d.Kind, Name: d.Name, Error: d.Err.Error()})
	}
	return data
}

func (e *JSONEncoder) buildFields() []jsonField {
	fields := e.filter.Fields(e.typ.Fields())
	result := make([]jsonField, len(fields))
	for i, f := range fields {
		result[i] = jsonField{
			Name:       f.Name(),
			Type:       f.Type().Description(),
			Visibility: string(f.Visibility()),
			Modifiers:  fieldModifiers(f),
		}
	}
	return result
}

func (e *JSONEncoder) buildConstructors() []jsonConstructor {
	ctors := e.filter.Constructors(e.typ.Constructors())
	result := make([]jsonConstructor, len(ctors))
	for i, c := range ctors {
		result[i] = jsonConstructor{
			Parameters:  buildParameters(c.Parameters()),
			Visibility:  string(c.Visibility()),
			Declaration: c.Describe(),
		}
	}
	return result
}

func (e *JSONEncoder) buildMethods() []jsonMethod {
	methods := e.filter.Methods(e.typ.Methods())
	result := make([]jsonMethod, len(methods))
	for i, m := range methods {
		ret := "void"
		if rt := m.ReturnType(); rt != nil {
			ret = rt.Description()
		}
		result[i] = jsonMethod{
			Name:        m.Name(),
			ReturnType:  ret,
			Parameters:  buildParameters(m.Parameters()),
			Visibility:  string(m.Visibility()),
			Modifiers:   methodModifiers(m),
			Signature:   m.SignatureIn(m.DeclaringType().Language()),
			Declaration: m.Declaration().GenericString(),
		}
	}
	return result
}

func buildParameters(params []*resolved.Parameter) []jsonParameter {
	result := make([]jsonParameter, len(params))
	for i, p := range params {
		result[i] = jsonParameter{
			Name: p.Name,
			Type: p.Type.Description(),
		}
	}
	return result
}
