package java

import "github.com/dhamidi/jtype/classfile"

type Field struct {
	class *Class
	info  *classfile.FieldInfo
	cp    classfile.ConstantPool
}

func (f *Field) Name() string {
	return f.info.Name(f.cp)
}

func (f *Field) Descriptor() string {
	return f.info.Descriptor(f.cp)
}

func (f *Field) DeclaringClass() *Class {
	return f.class
}

// GenericType decodes the field's Signature attribute, or its descriptor
// when there is none.
func (f *Field) GenericType() Type {
	return ParseFieldType(f.info.Signature(f.cp))
}

func (f *Field) flags() classfile.AccessFlags { return f.info.AccessFlags }

func (f *Field) IsPublic() bool    { return f.flags().IsPublic() }
func (f *Field) IsPrivate() bool   { return f.flags().IsPrivate() }
func (f *Field) IsProtected() bool { return f.flags().IsProtected() }
func (f *Field) IsStatic() bool    { return f.flags().IsStatic() }
func (f *Field) IsFinal() bool     { return f.flags().IsFinal() }
func (f *Field) IsVolatile() bool  { return f.flags().Has(classfile.AccVolatile) }
func (f *Field) IsTransient() bool { return f.flags().Has(classfile.AccTransient) }
func (f *Field) IsEnumConstant() bool {
	return f.flags().IsEnum()
}
func (f *Field) IsSynthetic() bool { return f.info.IsSynthetic(f.cp) }

func (f *Field) Visibility() Visibility {
	return visibilityOf(f.flags())
}

func (f *Field) Modifiers() string {
	return modifierString(f.flags(), fieldMember)
}

func (f *Field) String() string {
	s := f.GenericType().String() + " " + f.class.Name() + "." + f.Name()
	if mods := f.Modifiers(); mods != "" {
		return mods + " " + s
	}
	return s
}
