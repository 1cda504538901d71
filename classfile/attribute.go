package classfile

import (
	"encoding/binary"
	"fmt"
)

type AttributeInfo struct {
	NameIndex uint16
	Info      []byte
	Parsed    interface{}
}

type CodeAttribute struct {
	MaxStack   uint16
	MaxLocals  uint16
	Code       []byte
	Attributes []AttributeInfo
}

type LocalVariableTableAttribute struct {
	LocalVariableTable []LocalVariableEntry
}

type LocalVariableEntry struct {
	StartPC         uint16
	Length          uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Index           uint16
}

type SignatureAttribute struct {
	SignatureIndex uint16
}

type InnerClassesAttribute struct {
	Classes []InnerClassEntry
}

type InnerClassEntry struct {
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16
	InnerNameIndex        uint16
	InnerClassAccessFlags AccessFlags
}

type EnclosingMethodAttribute struct {
	ClassIndex  uint16
	MethodIndex uint16
}

type MethodParametersAttribute struct {
	Parameters []MethodParameter
}

type MethodParameter struct {
	NameIndex   uint16
	AccessFlags AccessFlags
}

type PermittedSubclassesAttribute struct {
	Classes []uint16
}

// AnnotationsAttribute keeps only the annotation type descriptors. Element
// values are skipped.
type AnnotationsAttribute struct {
	Visible     bool
	Annotations []Annotation
}

type Annotation struct {
	TypeIndex uint16
}

type SyntheticAttribute struct{}

type DeprecatedAttribute struct{}

func (a *AttributeInfo) AsCode() *CodeAttribute {
	v, _ := a.Parsed.(*CodeAttribute)
	return v
}

func (a *AttributeInfo) AsLocalVariableTable() *LocalVariableTableAttribute {
	v, _ := a.Parsed.(*LocalVariableTableAttribute)
	return v
}

func (a *AttributeInfo) AsSignature() *SignatureAttribute {
	v, _ := a.Parsed.(*SignatureAttribute)
	return v
}

func (a *AttributeInfo) AsInnerClasses() *InnerClassesAttribute {
	v, _ := a.Parsed.(*InnerClassesAttribute)
	return v
}

func (a *AttributeInfo) AsEnclosingMethod() *EnclosingMethodAttribute {
	v, _ := a.Parsed.(*EnclosingMethodAttribute)
	return v
}

func (a *AttributeInfo) AsMethodParameters() *MethodParametersAttribute {
	v, _ := a.Parsed.(*MethodParametersAttribute)
	return v
}

func (a *AttributeInfo) AsPermittedSubclasses() *PermittedSubclassesAttribute {
	v, _ := a.Parsed.(*PermittedSubclassesAttribute)
	return v
}

func (a *AttributeInfo) AsAnnotations() *AnnotationsAttribute {
	v, _ := a.Parsed.(*AnnotationsAttribute)
	return v
}

// cursor reads big-endian values out of an attribute body and remembers the
// first short read.
type cursor struct {
	b   []byte
	off int
	err error
}

func (c *cursor) need(n int) bool {
	if c.err != nil {
		return false
	}
	if len(c.b) < c.off+n {
		c.err = fmt.Errorf("attribute truncated at offset %d (need %d bytes, have %d)", c.off, n, len(c.b)-c.off)
		return false
	}
	return true
}

func (c *cursor) u1() uint8 {
	if !c.need(1) {
		return 0
	}
	v := c.b[c.off]
	c.off++
	return v
}

func (c *cursor) u2() uint16 {
	if !c.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(c.b[c.off:])
	c.off += 2
	return v
}

func (c *cursor) u4() uint32 {
	if !c.need(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(c.b[c.off:])
	c.off += 4
	return v
}

func (c *cursor) bytes(n int) []byte {
	if !c.need(n) {
		return nil
	}
	v := c.b[c.off : c.off+n]
	c.off += n
	return v
}

func parseAttribute(name string, info []byte, cp ConstantPool) (interface{}, error) {
	c := &cursor{b: info}
	var parsed interface{}

	switch name {
	case AttrCode:
		parsed = parseCode(c, cp)
	case AttrSignature:
		parsed = &SignatureAttribute{SignatureIndex: c.u2()}
	case AttrInnerClasses:
		ic := &InnerClassesAttribute{Classes: make([]InnerClassEntry, c.u2())}
		for i := range ic.Classes {
			ic.Classes[i] = InnerClassEntry{
				InnerClassInfoIndex:   c.u2(),
				OuterClassInfoIndex:   c.u2(),
				InnerNameIndex:        c.u2(),
				InnerClassAccessFlags: AccessFlags(c.u2()),
			}
		}
		parsed = ic
	case AttrEnclosingMethod:
		parsed = &EnclosingMethodAttribute{ClassIndex: c.u2(), MethodIndex: c.u2()}
	case AttrMethodParameters:
		mp := &MethodParametersAttribute{Parameters: make([]MethodParameter, c.u1())}
		for i := range mp.Parameters {
			mp.Parameters[i] = MethodParameter{NameIndex: c.u2(), AccessFlags: AccessFlags(c.u2())}
		}
		parsed = mp
	case AttrLocalVariableTable:
		lvt := &LocalVariableTableAttribute{LocalVariableTable: make([]LocalVariableEntry, c.u2())}
		for i := range lvt.LocalVariableTable {
			lvt.LocalVariableTable[i] = LocalVariableEntry{
				StartPC:         c.u2(),
				Length:          c.u2(),
				NameIndex:       c.u2(),
				DescriptorIndex: c.u2(),
				Index:           c.u2(),
			}
		}
		parsed = lvt
	case AttrPermittedSubclasses:
		ps := &PermittedSubclassesAttribute{Classes: make([]uint16, c.u2())}
		for i := range ps.Classes {
			ps.Classes[i] = c.u2()
		}
		parsed = ps
	case AttrRuntimeVisibleAnn, AttrRuntimeInvisibleAnn:
		aa := &AnnotationsAttribute{
			Visible:     name == AttrRuntimeVisibleAnn,
			Annotations: make([]Annotation, c.u2()),
		}
		for i := range aa.Annotations {
			aa.Annotations[i] = Annotation{TypeIndex: skipAnnotation(c)}
		}
		parsed = aa
	case AttrSynthetic:
		parsed = &SyntheticAttribute{}
	case AttrDeprecated:
		parsed = &DeprecatedAttribute{}
	default:
		return nil, nil
	}

	if c.err != nil {
		return nil, fmt.Errorf("%s: %w", name, c.err)
	}
	return parsed, nil
}

func parseCode(c *cursor, cp ConstantPool) *CodeAttribute {
	code := &CodeAttribute{
		MaxStack:  c.u2(),
		MaxLocals: c.u2(),
	}
	code.Code = c.bytes(int(c.u4()))
	// exception_table entries are four u2 each
	c.bytes(int(c.u2()) * 8)

	count := c.u2()
	for i := uint16(0); i < count && c.err == nil; i++ {
		nameIndex := c.u2()
		body := c.bytes(int(c.u4()))
		attr := AttributeInfo{NameIndex: nameIndex, Info: body}
		if name := cp.GetUtf8(nameIndex); name == AttrLocalVariableTable {
			parsed, err := parseAttribute(name, body, cp)
			if err != nil {
				c.err = err
				break
			}
			attr.Parsed = parsed
		}
		code.Attributes = append(code.Attributes, attr)
	}
	return code
}

// skipAnnotation consumes one annotation structure and returns its type index.
func skipAnnotation(c *cursor) uint16 {
	typeIndex := c.u2()
	pairs := c.u2()
	for i := uint16(0); i < pairs && c.err == nil; i++ {
		c.u2()
		skipElementValue(c)
	}
	return typeIndex
}

func skipElementValue(c *cursor) {
	switch tag := c.u1(); tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's', 'c':
		c.u2()
	case 'e':
		c.u2()
		c.u2()
	case '@':
		skipAnnotation(c)
	case '[':
		n := c.u2()
		for i := uint16(0); i < n && c.err == nil; i++ {
			skipElementValue(c)
		}
	default:
		if c.err == nil {
			c.err = fmt.Errorf("unknown element value tag %q", tag)
		}
	}
}
