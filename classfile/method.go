package classfile

type MethodInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

func (m *MethodInfo) Name(cp ConstantPool) string {
	return cp.GetUtf8(m.NameIndex)
}

func (m *MethodInfo) Descriptor(cp ConstantPool) string {
	return cp.GetUtf8(m.DescriptorIndex)
}

func (m *MethodInfo) GetAttribute(cp ConstantPool, name string) *AttributeInfo {
	return findAttribute(cp, m.Attributes, name)
}

// GenericSignature returns the Signature attribute text, or "" when the
// method was compiled without one.
func (m *MethodInfo) GenericSignature(cp ConstantPool) string {
	return signatureOf(cp, m.Attributes)
}

func (m *MethodInfo) GetCodeAttribute(cp ConstantPool) *CodeAttribute {
	attr := m.GetAttribute(cp, AttrCode)
	if attr == nil {
		return nil
	}
	return attr.AsCode()
}

func (m *MethodInfo) MethodParameters(cp ConstantPool) []MethodParameter {
	attr := m.GetAttribute(cp, AttrMethodParameters)
	if attr == nil || attr.AsMethodParameters() == nil {
		return nil
	}
	return attr.AsMethodParameters().Parameters
}

// LocalVariableNames maps local variable slots to names from the debug
// LocalVariableTable, if present.
func (m *MethodInfo) LocalVariableNames(cp ConstantPool) map[uint16]string {
	code := m.GetCodeAttribute(cp)
	if code == nil {
		return nil
	}
	var names map[uint16]string
	for i := range code.Attributes {
		lvt := code.Attributes[i].AsLocalVariableTable()
		if lvt == nil {
			continue
		}
		if names == nil {
			names = make(map[uint16]string)
		}
		for _, e := range lvt.LocalVariableTable {
			if e.StartPC == 0 {
				names[e.Index] = cp.GetUtf8(e.NameIndex)
			}
		}
	}
	return names
}

func (m *MethodInfo) IsSynthetic(cp ConstantPool) bool {
	return m.AccessFlags.IsSynthetic() || m.GetAttribute(cp, AttrSynthetic) != nil
}

func (m *MethodInfo) IsConstructor(cp ConstantPool) bool {
	return m.Name(cp) == "<init>"
}

func (m *MethodInfo) IsStaticInitializer(cp ConstantPool) bool {
	return m.Name(cp) == "<clinit>"
}
