package classfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Builder assembles a class file from names and signature strings. It is
// used to synthesize declarations that have no compiled form on disk, such
// as the bootstrap class set and test fixtures.
type Builder struct {
	name        string
	super       string
	access      AccessFlags
	major       uint16
	interfaces  []string
	signature   string
	inner       []innerClass
	enclosing   *enclosingMethod
	permitted   []string
	annotations []string
	fields      []*MemberBuilder
	methods     []*MemberBuilder
}

type innerClass struct {
	inner, outer, simpleName string
	access                   AccessFlags
}

type enclosingMethod struct {
	class, name, descriptor string
}

type MemberBuilder struct {
	access     AccessFlags
	name       string
	descriptor string
	signature  string
	params     []MethodParameter
	paramNames []string
	locals     []string
	code       bool
}

func NewBuilder(name string) *Builder {
	return &Builder{
		name:   name,
		super:  "java/lang/Object",
		access: AccPublic | AccSuper,
		major:  61,
	}
}

func (b *Builder) Access(flags AccessFlags) *Builder {
	b.access = flags
	return b
}

// Super sets the superclass internal name. An empty name omits it, which is
// only valid for java/lang/Object.
func (b *Builder) Super(name string) *Builder {
	b.super = name
	return b
}

func (b *Builder) Interfaces(names ...string) *Builder {
	b.interfaces = append(b.interfaces, names...)
	return b
}

func (b *Builder) Signature(sig string) *Builder {
	b.signature = sig
	return b
}

// InnerClass records an InnerClasses entry. outer and simpleName are empty
// for local and anonymous classes respectively.
func (b *Builder) InnerClass(inner, outer, simpleName string, access AccessFlags) *Builder {
	b.inner = append(b.inner, innerClass{inner: inner, outer: outer, simpleName: simpleName, access: access})
	return b
}

// EnclosingMethod marks the class as local or anonymous. name and descriptor
// may be empty when the class is declared in an initializer.
func (b *Builder) EnclosingMethod(class, name, descriptor string) *Builder {
	b.enclosing = &enclosingMethod{class: class, name: name, descriptor: descriptor}
	return b
}

func (b *Builder) PermittedSubclasses(names ...string) *Builder {
	b.permitted = append(b.permitted, names...)
	return b
}

// Annotation adds a runtime visible annotation without element values.
func (b *Builder) Annotation(descriptor string) *Builder {
	b.annotations = append(b.annotations, descriptor)
	return b
}

func (b *Builder) Field(access AccessFlags, name, descriptor string) *MemberBuilder {
	f := &MemberBuilder{access: access, name: name, descriptor: descriptor}
	b.fields = append(b.fields, f)
	return f
}

func (b *Builder) Method(access AccessFlags, name, descriptor string) *MemberBuilder {
	m := &MemberBuilder{access: access, name: name, descriptor: descriptor}
	b.methods = append(b.methods, m)
	return m
}

func (m *MemberBuilder) Signature(sig string) *MemberBuilder {
	m.signature = sig
	return m
}

// Parameter appends a MethodParameters entry.
func (m *MemberBuilder) Parameter(name string, access AccessFlags) *MemberBuilder {
	m.params = append(m.params, MethodParameter{AccessFlags: access})
	m.paramNames = append(m.paramNames, name)
	return m
}

// LocalVariables emits a Code attribute whose LocalVariableTable names the
// method's parameters in order. The receiver slot is added for instance
// methods.
func (m *MemberBuilder) LocalVariables(names ...string) *MemberBuilder {
	m.locals = names
	m.code = true
	return m
}

// Bytes encodes the class file.
func (b *Builder) Bytes() ([]byte, error) {
	pool := newPoolWriter()
	body := &writer{}

	body.u2(uint16(b.access))
	body.u2(pool.class(b.name))
	if b.super == "" {
		body.u2(0)
	} else {
		body.u2(pool.class(b.super))
	}
	body.u2(uint16(len(b.interfaces)))
	for _, i := range b.interfaces {
		body.u2(pool.class(i))
	}

	body.u2(uint16(len(b.fields)))
	for _, f := range b.fields {
		b.writeMember(body, pool, f, false)
	}
	body.u2(uint16(len(b.methods)))
	for _, m := range b.methods {
		if err := b.writeMember(body, pool, m, true); err != nil {
			return nil, fmt.Errorf("method %s: %w", m.name, err)
		}
	}

	var attrs []attribute
	if b.signature != "" {
		attrs = append(attrs, pool.u2Attribute(AttrSignature, pool.utf8(b.signature)))
	}
	if len(b.inner) > 0 {
		w := &writer{}
		w.u2(uint16(len(b.inner)))
		for _, ic := range b.inner {
			w.u2(pool.class(ic.inner))
			w.u2(pool.optionalClass(ic.outer))
			w.u2(pool.optionalUtf8(ic.simpleName))
			w.u2(uint16(ic.access))
		}
		attrs = append(attrs, attribute{pool.utf8(AttrInnerClasses), w.Bytes()})
	}
	if b.enclosing != nil {
		w := &writer{}
		w.u2(pool.class(b.enclosing.class))
		if b.enclosing.name == "" {
			w.u2(0)
		} else {
			w.u2(pool.nameAndType(b.enclosing.name, b.enclosing.descriptor))
		}
		attrs = append(attrs, attribute{pool.utf8(AttrEnclosingMethod), w.Bytes()})
	}
	if len(b.permitted) > 0 {
		w := &writer{}
		w.u2(uint16(len(b.permitted)))
		for _, p := range b.permitted {
			w.u2(pool.class(p))
		}
		attrs = append(attrs, attribute{pool.utf8(AttrPermittedSubclasses), w.Bytes()})
	}
	if len(b.annotations) > 0 {
		w := &writer{}
		w.u2(uint16(len(b.annotations)))
		for _, a := range b.annotations {
			w.u2(pool.utf8(a))
			w.u2(0)
		}
		attrs = append(attrs, attribute{pool.utf8(AttrRuntimeVisibleAnn), w.Bytes()})
	}
	writeAttributes(body, attrs)

	out := &writer{}
	out.u4(Magic)
	out.u2(0)
	out.u2(b.major)
	out.u2(uint16(len(pool.entries) + 1))
	for _, e := range pool.entries {
		out.Write(e)
	}
	out.Write(body.Bytes())
	return out.Bytes(), nil
}

// Build encodes the class file and parses it back.
func (b *Builder) Build() (*ClassFile, error) {
	data, err := b.Bytes()
	if err != nil {
		return nil, err
	}
	return ParseBytes(data)
}

func (b *Builder) writeMember(w *writer, pool *poolWriter, m *MemberBuilder, method bool) error {
	w.u2(uint16(m.access))
	w.u2(pool.utf8(m.name))
	w.u2(pool.utf8(m.descriptor))

	var attrs []attribute
	if m.signature != "" {
		attrs = append(attrs, pool.u2Attribute(AttrSignature, pool.utf8(m.signature)))
	}
	if m.access.IsSynthetic() {
		attrs = append(attrs, attribute{pool.utf8(AttrSynthetic), nil})
	}
	if method && m.code {
		code, err := m.codeAttribute(pool)
		if err != nil {
			return err
		}
		attrs = append(attrs, code)
	}
	if method && len(m.params) > 0 {
		mp := &writer{}
		mp.u1(uint8(len(m.params)))
		for i, p := range m.params {
			mp.u2(pool.optionalUtf8(m.paramNames[i]))
			mp.u2(uint16(p.AccessFlags))
		}
		attrs = append(attrs, attribute{pool.utf8(AttrMethodParameters), mp.Bytes()})
	}
	writeAttributes(w, attrs)
	return nil
}

func (m *MemberBuilder) codeAttribute(pool *poolWriter) (attribute, error) {
	desc, err := ParseMethodSignature(m.descriptor)
	if err != nil {
		return attribute{}, err
	}
	if len(m.locals) != len(desc.Parameters) {
		return attribute{}, fmt.Errorf("%d local names for %d parameters", len(m.locals), len(desc.Parameters))
	}

	lvt := &writer{}
	slot := uint16(0)
	count := uint16(len(m.locals))
	if !m.access.IsStatic() {
		count++
	}
	lvt.u2(count)
	if !m.access.IsStatic() {
		lvt.u2(0)
		lvt.u2(1)
		lvt.u2(pool.utf8("this"))
		lvt.u2(pool.utf8("Ljava/lang/Object;"))
		lvt.u2(0)
		slot++
	}
	for i, name := range m.locals {
		p := desc.Parameters[i]
		lvt.u2(0)
		lvt.u2(1)
		lvt.u2(pool.utf8(name))
		lvt.u2(pool.utf8(p.String()))
		lvt.u2(slot)
		slot += SlotSize(p)
	}

	code := &writer{}
	code.u2(1)
	code.u2(slot)
	code.u4(1)
	code.u1(0xb1) // return
	code.u2(0)
	writeAttributes(code, []attribute{{pool.utf8(AttrLocalVariableTable), lvt.Bytes()}})
	return attribute{pool.utf8(AttrCode), code.Bytes()}, nil
}

// SlotSize is the number of local variable slots a value of type t uses.
func SlotSize(t TypeSignature) uint16 {
	if b, ok := t.(BaseType); ok && (b == 'J' || b == 'D') {
		return 2
	}
	return 1
}

type attribute struct {
	name uint16
	body []byte
}

func writeAttributes(w *writer, attrs []attribute) {
	w.u2(uint16(len(attrs)))
	for _, a := range attrs {
		w.u2(a.name)
		w.u4(uint32(len(a.body)))
		w.Write(a.body)
	}
}

type writer struct {
	bytes.Buffer
}

func (w *writer) u1(v uint8) { w.WriteByte(v) }

func (w *writer) u2(v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	w.Write(buf[:])
}

func (w *writer) u4(v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	w.Write(buf[:])
}

// poolWriter interns constants in insertion order.
type poolWriter struct {
	entries [][]byte
	index   map[string]uint16
}

func newPoolWriter() *poolWriter {
	return &poolWriter{index: make(map[string]uint16)}
}

func (p *poolWriter) add(key string, entry []byte) uint16 {
	if idx, ok := p.index[key]; ok {
		return idx
	}
	p.entries = append(p.entries, entry)
	idx := uint16(len(p.entries))
	p.index[key] = idx
	return idx
}

func (p *poolWriter) utf8(s string) uint16 {
	w := &writer{}
	w.u1(uint8(ConstantUtf8))
	enc := encodeModifiedUtf8(s)
	w.u2(uint16(len(enc)))
	w.Write(enc)
	return p.add("u:"+s, w.Bytes())
}

func (p *poolWriter) optionalUtf8(s string) uint16 {
	if s == "" {
		return 0
	}
	return p.utf8(s)
}

func (p *poolWriter) class(name string) uint16 {
	nameIdx := p.utf8(name)
	w := &writer{}
	w.u1(uint8(ConstantClass))
	w.u2(nameIdx)
	return p.add("c:"+name, w.Bytes())
}

func (p *poolWriter) optionalClass(name string) uint16 {
	if name == "" {
		return 0
	}
	return p.class(name)
}

func (p *poolWriter) nameAndType(name, descriptor string) uint16 {
	n, d := p.utf8(name), p.utf8(descriptor)
	w := &writer{}
	w.u1(uint8(ConstantNameAndType))
	w.u2(n)
	w.u2(d)
	return p.add("nt:"+name+":"+descriptor, w.Bytes())
}

func (p *poolWriter) u2Attribute(name string, value uint16) attribute {
	w := &writer{}
	w.u2(value)
	return attribute{p.utf8(name), w.Bytes()}
}

func encodeModifiedUtf8(s string) []byte {
	var out []byte
	for _, r := range s {
		switch {
		case r != 0 && r < 0x80:
			out = append(out, byte(r))
		case r < 0x800:
			out = append(out, byte(0xC0|r>>6), byte(0x80|r&0x3F))
		case r < 0x10000:
			out = append(out, byte(0xE0|r>>12), byte(0x80|(r>>6)&0x3F), byte(0x80|r&0x3F))
		default:
			r -= 0x10000
			for _, s := range []rune{0xD800 + r>>10, 0xDC00 + r&0x3FF} {
				out = append(out, byte(0xE0|s>>12), byte(0x80|(s>>6)&0x3F), byte(0x80|s&0x3F))
			}
		}
	}
	return out
}
