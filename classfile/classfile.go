package classfile

import "strings"

type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool ConstantPool
	AccessFlags  AccessFlags
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []FieldInfo
	Methods      []MethodInfo
	Attributes   []AttributeInfo
}

func (cf *ClassFile) ClassName() string {
	return cf.ConstantPool.GetClassName(cf.ThisClass)
}

func (cf *ClassFile) SuperClassName() string {
	if cf.SuperClass == 0 {
		return ""
	}
	return cf.ConstantPool.GetClassName(cf.SuperClass)
}

func (cf *ClassFile) InterfaceNames() []string {
	names := make([]string, len(cf.Interfaces))
	for i, idx := range cf.Interfaces {
		names[i] = cf.ConstantPool.GetClassName(idx)
	}
	return names
}

func (cf *ClassFile) IsInterface() bool {
	return cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsAnnotation() bool {
	return cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsEnum() bool {
	return cf.AccessFlags.IsEnum()
}

func (cf *ClassFile) GetField(name string) *FieldInfo {
	for i := range cf.Fields {
		if cf.Fields[i].Name(cf.ConstantPool) == name {
			return &cf.Fields[i]
		}
	}
	return nil
}

func (cf *ClassFile) GetMethod(name, descriptor string) *MethodInfo {
	for i := range cf.Methods {
		if cf.Methods[i].Name(cf.ConstantPool) == name {
			if descriptor == "" || cf.Methods[i].Descriptor(cf.ConstantPool) == descriptor {
				return &cf.Methods[i]
			}
		}
	}
	return nil
}

func (cf *ClassFile) GetAttribute(name string) *AttributeInfo {
	return findAttribute(cf.ConstantPool, cf.Attributes, name)
}

// Signature returns the generic class signature, or "" for non-generic
// classes compiled without one.
func (cf *ClassFile) Signature() string {
	return signatureOf(cf.ConstantPool, cf.Attributes)
}

// InnerClassEntry returns the InnerClasses record describing this class
// itself, if the class is nested.
func (cf *ClassFile) InnerClassEntry() (InnerClassEntry, bool) {
	attr := cf.GetAttribute(AttrInnerClasses)
	if attr == nil || attr.AsInnerClasses() == nil {
		return InnerClassEntry{}, false
	}
	self := cf.ClassName()
	for _, e := range attr.AsInnerClasses().Classes {
		if cf.ConstantPool.GetClassName(e.InnerClassInfoIndex) == self {
			return e, true
		}
	}
	return InnerClassEntry{}, false
}

// OuterClassName returns the declaring class of a member class, or the
// enclosing class of a local or anonymous class.
func (cf *ClassFile) OuterClassName() string {
	if e, ok := cf.InnerClassEntry(); ok && e.OuterClassInfoIndex != 0 {
		return cf.ConstantPool.GetClassName(e.OuterClassInfoIndex)
	}
	if em := cf.EnclosingMethod(); em != nil {
		return cf.ConstantPool.GetClassName(em.ClassIndex)
	}
	return ""
}

func (cf *ClassFile) EnclosingMethod() *EnclosingMethodAttribute {
	attr := cf.GetAttribute(AttrEnclosingMethod)
	if attr == nil {
		return nil
	}
	return attr.AsEnclosingMethod()
}

func (cf *ClassFile) PermittedSubclassNames() []string {
	attr := cf.GetAttribute(AttrPermittedSubclasses)
	if attr == nil || attr.AsPermittedSubclasses() == nil {
		return nil
	}
	var names []string
	for _, idx := range attr.AsPermittedSubclasses().Classes {
		names = append(names, cf.ConstantPool.GetClassName(idx))
	}
	return names
}

// AnnotationTypes lists the descriptors of runtime visible and invisible
// class annotations, e.g. "Lkotlin/Metadata;".
func (cf *ClassFile) AnnotationTypes() []string {
	var types []string
	for i := range cf.Attributes {
		aa := cf.Attributes[i].AsAnnotations()
		if aa == nil {
			continue
		}
		for _, a := range aa.Annotations {
			types = append(types, cf.ConstantPool.GetUtf8(a.TypeIndex))
		}
	}
	return types
}

func findAttribute(cp ConstantPool, attrs []AttributeInfo, name string) *AttributeInfo {
	for i := range attrs {
		if cp.GetUtf8(attrs[i].NameIndex) == name {
			return &attrs[i]
		}
	}
	return nil
}

func signatureOf(cp ConstantPool, attrs []AttributeInfo) string {
	attr := findAttribute(cp, attrs, AttrSignature)
	if attr == nil || attr.AsSignature() == nil {
		return ""
	}
	return cp.GetUtf8(attr.AsSignature().SignatureIndex)
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

func SourceToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
