package java

import (
	"slices"
	"strings"

	"github.com/dhamidi/jtype/classfile"
)

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
)

func visibilityOf(flags classfile.AccessFlags) Visibility {
	switch {
	case flags.IsPublic():
		return VisibilityPublic
	case flags.IsProtected():
		return VisibilityProtected
	case flags.IsPrivate():
		return VisibilityPrivate
	}
	return VisibilityPackage
}

type memberKind int

const (
	fieldMember memberKind = iota
	methodMember
	constructorMember
)

type modifier struct {
	mask  classfile.AccessFlags
	name  string
	kinds []memberKind
}

// modifiers is in java.lang.reflect.Modifier order.
var modifiers = []modifier{
	{classfile.AccPublic, "public", []memberKind{fieldMember, methodMember, constructorMember}},
	{classfile.AccProtected, "protected", []memberKind{fieldMember, methodMember, constructorMember}},
	{classfile.AccPrivate, "private", []memberKind{fieldMember, methodMember, constructorMember}},
	{classfile.AccAbstract, "abstract", []memberKind{methodMember}},
	{classfile.AccStatic, "static", []memberKind{fieldMember, methodMember}},
	{classfile.AccFinal, "final", []memberKind{fieldMember, methodMember}},
	{classfile.AccTransient, "transient", []memberKind{fieldMember}},
	{classfile.AccVolatile, "volatile", []memberKind{fieldMember}},
	{classfile.AccSynchronized, "synchronized", []memberKind{methodMember}},
	{classfile.AccNative, "native", []memberKind{methodMember}},
}

// modifierString renders the modifiers of flags that apply to kind.
func modifierString(flags classfile.AccessFlags, kind memberKind) string {
	var mods []string
	for _, m := range modifiers {
		if flags.Has(m.mask) && slices.Contains(m.kinds, kind) {
			mods = append(mods, m.name)
		}
	}
	return strings.Join(mods, " ")
}
