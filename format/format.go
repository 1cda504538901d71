// Package format encodes resolved types as JSON, tab-separated lines or a
// styled tree.
package format

import (
	"encoding"
	"fmt"
	"io"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/jtype/resolved"
)

var log = commonlog.GetLogger("jtype.format")

type Encoder interface {
	encoding.TextMarshaler
	Encode(t resolved.Type) error
}

// Names lists the encoders New accepts.
var Names = []string{"json", "line", "tree"}

// New returns the encoder called name writing to w. Members whose names do
// not match filter are left out; a nil filter keeps all of them.
func New(name string, w io.Writer, filter *MemberFilter) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w).WithFilter(filter), nil
	case "line":
		return NewLineEncoder(w).WithFilter(filter), nil
	case "tree":
		return NewTreeEncoder(w).WithFilter(filter), nil
	}
	return nil, fmt.Errorf("unknown format %q, expected one of %s", name, strings.Join(Names, ", "))
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}

func typeKind(t resolved.Type) string {
	switch {
	case t.IsWildcard():
		return "wildcard"
	case t.IsArray():
		return "array"
	}
	ct, ok := t.(*resolved.ClassType)
	if !ok {
		return "class"
	}
	c := ct.Class()
	switch {
	case c.IsPrimitive():
		return "primitive"
	case c.IsAnnotation():
		return "annotation"
	case c.IsEnum():
		return "enum"
	case c.IsInterface():
		return "interface"
	}
	return "class"
}

func typeModifiers(t resolved.Type) []string {
	var mods []string
	if t.IsAbstract() && !t.IsInterface() {
		mods = append(mods, "abstract")
	}
	if t.IsStatic() {
		mods = append(mods, "static")
	}
	if ct, ok := t.(*resolved.ClassType); ok {
		if ct.Class().IsFinal() && !ct.IsPrimitive() {
			mods = append(mods, "final")
		}
		if len(ct.Class().PermittedSubclasses()) > 0 {
			mods = append(mods, "sealed")
		}
	}
	if t.IsInner() {
		mods = append(mods, "inner")
	}
	if t.IsInstantiatable() {
		mods = append(mods, "instantiatable")
	}
	return mods
}

func fieldModifiers(f *resolved.Field) []string {
	var mods []string
	if f.IsStatic() {
		mods = append(mods, "static")
	}
	if f.IsFinal() {
		mods = append(mods, "final")
	}
	if f.Declaration().IsVolatile() {
		mods = append(mods, "volatile")
	}
	if f.IsTransient() {
		mods = append(mods, "transient")
	}
	if f.IsEnumConstant() {
		mods = append(mods, "enum")
	}
	return mods
}

func methodModifiers(m *resolved.Method) []string {
	var mods []string
	if m.IsStatic() {
		mods = append(mods, "static")
	}
	if m.IsFinal() {
		mods = append(mods, "final")
	}
	if m.IsAbstract() {
		mods = append(mods, "abstract")
	}
	if m.IsDefault() {
		mods = append(mods, "default")
	}
	if m.IsVarargs() {
		mods = append(mods, "varargs")
	}
	return mods
}

// supertypes returns the superclass followed by the interfaces. Errors
// leave the list empty; they are reported by the resolver, not here.
func supertypes(t resolved.Type) (resolved.Type, []resolved.Type) {
	ct, ok := t.(*resolved.ClassType)
	if !ok {
		return nil, nil
	}
	super, err := ct.SuperClass()
	if err != nil {
		return nil, nil
	}
	ifaces, err := ct.Interfaces()
	if err != nil {
		return super, nil
	}
	return super, ifaces
}

func dropped(t resolved.Type) []resolved.DroppedMember {
	if ct, ok := t.(*resolved.ClassType); ok {
		return ct.Dropped()
	}
	return nil
}
