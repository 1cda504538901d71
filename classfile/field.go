package classfile

type FieldInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

func (f *FieldInfo) Name(cp ConstantPool) string {
	return cp.GetUtf8(f.NameIndex)
}

func (f *FieldInfo) Descriptor(cp ConstantPool) string {
	return cp.GetUtf8(f.DescriptorIndex)
}

func (f *FieldInfo) GetAttribute(cp ConstantPool, name string) *AttributeInfo {
	return findAttribute(cp, f.Attributes, name)
}

// Signature returns the generic field signature, falling back to the plain
// descriptor. Both parse with ParseFieldSignature.
func (f *FieldInfo) Signature(cp ConstantPool) string {
	if sig := signatureOf(cp, f.Attributes); sig != "" {
		return sig
	}
	return f.Descriptor(cp)
}

func (f *FieldInfo) IsSynthetic(cp ConstantPool) bool {
	return f.AccessFlags.IsSynthetic() || f.GetAttribute(cp, AttrSynthetic) != nil
}
