package classfile

import (
	"fmt"
	"strings"
)

// TypeSignature is one of BaseType, *ClassTypeSignature,
// *TypeVariableSignature or *ArrayTypeSignature.
type TypeSignature interface {
	String() string
	typeSignature()
}

// BaseType is a primitive descriptor character: B C D F I J S Z, or V for a
// void method result.
type BaseType byte

func (b BaseType) String() string { return string(b) }
func (BaseType) typeSignature()   {}

var baseTypeNames = map[BaseType]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
	'V': "void",
}

func (b BaseType) Name() string { return baseTypeNames[b] }

// ClassTypeSignature is a possibly nested reference type. The first segment
// carries the package prefix in internal form ("java/util/Map"); following
// segments are inner class simple names.
type ClassTypeSignature struct {
	Segments []SimpleClassTypeSignature
}

type SimpleClassTypeSignature struct {
	Name      string
	Arguments []TypeArgument
}

func (*ClassTypeSignature) typeSignature() {}

// InternalName returns the binary name in internal form, with inner classes
// joined by '$'.
func (c *ClassTypeSignature) InternalName() string {
	return c.prefixName(len(c.Segments))
}

// OwnerName returns the internal name of the enclosing class for a nested
// signature, or "".
func (c *ClassTypeSignature) OwnerName() string {
	if len(c.Segments) < 2 {
		return ""
	}
	return c.prefixName(len(c.Segments) - 1)
}

func (c *ClassTypeSignature) prefixName(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte('$')
		}
		sb.WriteString(c.Segments[i].Name)
	}
	return sb.String()
}

func (c *ClassTypeSignature) String() string {
	var sb strings.Builder
	sb.WriteByte('L')
	for i, seg := range c.Segments {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(seg.Name)
		if len(seg.Arguments) > 0 {
			sb.WriteByte('<')
			for _, a := range seg.Arguments {
				sb.WriteString(a.String())
			}
			sb.WriteByte('>')
		}
	}
	sb.WriteByte(';')
	return sb.String()
}

type TypeVariableSignature struct {
	Name string
}

func (*TypeVariableSignature) typeSignature() {}
func (t *TypeVariableSignature) String() string {
	return "T" + t.Name + ";"
}

type ArrayTypeSignature struct {
	Component TypeSignature
}

func (*ArrayTypeSignature) typeSignature() {}
func (a *ArrayTypeSignature) String() string {
	return "[" + a.Component.String()
}

// Wildcard indicators of a TypeArgument.
const (
	WildcardNone    byte = 0
	WildcardAny     byte = '*'
	WildcardExtends byte = '+'
	WildcardSuper   byte = '-'
)

type TypeArgument struct {
	Wildcard byte
	// Type is nil for WildcardAny.
	Type TypeSignature
}

func (a TypeArgument) String() string {
	switch a.Wildcard {
	case WildcardAny:
		return "*"
	case WildcardExtends, WildcardSuper:
		return string(a.Wildcard) + a.Type.String()
	}
	return a.Type.String()
}

type TypeParameter struct {
	Name string
	// ClassBound may be nil when only interface bounds are declared.
	ClassBound      TypeSignature
	InterfaceBounds []TypeSignature
}

func (p TypeParameter) String() string {
	var sb strings.Builder
	sb.WriteString(p.Name)
	sb.WriteByte(':')
	if p.ClassBound != nil {
		sb.WriteString(p.ClassBound.String())
	}
	for _, b := range p.InterfaceBounds {
		sb.WriteByte(':')
		sb.WriteString(b.String())
	}
	return sb.String()
}

type ClassSignature struct {
	TypeParameters []TypeParameter
	SuperClass     *ClassTypeSignature
	Interfaces     []*ClassTypeSignature
}

func (s *ClassSignature) String() string {
	var sb strings.Builder
	writeTypeParameters(&sb, s.TypeParameters)
	sb.WriteString(s.SuperClass.String())
	for _, i := range s.Interfaces {
		sb.WriteString(i.String())
	}
	return sb.String()
}

type MethodSignature struct {
	TypeParameters []TypeParameter
	Parameters     []TypeSignature
	// Result is BaseType('V') for void methods.
	Result TypeSignature
	Throws []TypeSignature
}

func (s *MethodSignature) String() string {
	var sb strings.Builder
	writeTypeParameters(&sb, s.TypeParameters)
	sb.WriteByte('(')
	for _, p := range s.Parameters {
		sb.WriteString(p.String())
	}
	sb.WriteByte(')')
	sb.WriteString(s.Result.String())
	for _, t := range s.Throws {
		sb.WriteByte('^')
		sb.WriteString(t.String())
	}
	return sb.String()
}

func writeTypeParameters(sb *strings.Builder, params []TypeParameter) {
	if len(params) == 0 {
		return
	}
	sb.WriteByte('<')
	for _, p := range params {
		sb.WriteString(p.String())
	}
	sb.WriteByte('>')
}

type SignatureError struct {
	Signature string
	Offset    int
	Message   string
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("malformed signature %q at offset %d: %s", e.Signature, e.Offset, e.Message)
}

type signatureParser struct {
	s   string
	pos int
	err error
}

func (p *signatureParser) fail(format string, args ...any) {
	if p.err == nil {
		p.err = &SignatureError{Signature: p.s, Offset: p.pos, Message: fmt.Sprintf(format, args...)}
	}
}

func (p *signatureParser) peek() byte {
	if p.err != nil || p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *signatureParser) expect(c byte) {
	if p.peek() != c {
		p.fail("expected %q", c)
		return
	}
	p.pos++
}

func (p *signatureParser) done() {
	if p.err == nil && p.pos != len(p.s) {
		p.fail("unexpected trailing characters")
	}
}

func (p *signatureParser) identifier() string {
	start := p.pos
	for p.err == nil && p.pos < len(p.s) && !strings.ContainsRune(".;[/<>:", rune(p.s[p.pos])) {
		p.pos++
	}
	if p.pos == start {
		p.fail("expected identifier")
	}
	return p.s[start:p.pos]
}

func (p *signatureParser) referenceType() TypeSignature {
	switch p.peek() {
	case 'L':
		return p.classType()
	case 'T':
		p.pos++
		name := p.identifier()
		p.expect(';')
		return &TypeVariableSignature{Name: name}
	case '[':
		p.pos++
		return &ArrayTypeSignature{Component: p.javaType()}
	}
	p.fail("expected reference type")
	return nil
}

func (p *signatureParser) javaType() TypeSignature {
	c := p.peek()
	if _, ok := baseTypeNames[BaseType(c)]; ok && c != 'V' {
		p.pos++
		return BaseType(c)
	}
	return p.referenceType()
}

func (p *signatureParser) classType() *ClassTypeSignature {
	p.expect('L')
	sig := &ClassTypeSignature{}

	name := p.identifier()
	for p.peek() == '/' {
		p.pos++
		name += "/" + p.identifier()
	}
	sig.Segments = append(sig.Segments, SimpleClassTypeSignature{Name: name, Arguments: p.typeArguments()})

	for p.peek() == '.' {
		p.pos++
		seg := p.identifier()
		sig.Segments = append(sig.Segments, SimpleClassTypeSignature{Name: seg, Arguments: p.typeArguments()})
	}
	p.expect(';')
	if p.err != nil {
		return nil
	}
	return sig
}

func (p *signatureParser) typeArguments() []TypeArgument {
	if p.peek() != '<' {
		return nil
	}
	p.pos++
	var args []TypeArgument
	for p.err == nil && p.peek() != '>' {
		switch c := p.peek(); c {
		case '*':
			p.pos++
			args = append(args, TypeArgument{Wildcard: WildcardAny})
		case '+', '-':
			p.pos++
			args = append(args, TypeArgument{Wildcard: c, Type: p.referenceType()})
		default:
			args = append(args, TypeArgument{Type: p.referenceType()})
		}
	}
	p.expect('>')
	if len(args) == 0 {
		p.fail("empty type argument list")
	}
	return args
}

func (p *signatureParser) typeParameters() []TypeParameter {
	if p.peek() != '<' {
		return nil
	}
	p.pos++
	var params []TypeParameter
	for p.err == nil && p.peek() != '>' {
		tp := TypeParameter{Name: p.identifier()}
		p.expect(':')
		if c := p.peek(); c != ':' && c != '>' {
			tp.ClassBound = p.referenceType()
		}
		for p.peek() == ':' {
			p.pos++
			tp.InterfaceBounds = append(tp.InterfaceBounds, p.referenceType())
		}
		params = append(params, tp)
	}
	p.expect('>')
	if len(params) == 0 {
		p.fail("empty type parameter list")
	}
	return params
}

// ParseClassSignature parses a ClassSignature (JVMS 4.7.9.1).
func ParseClassSignature(s string) (*ClassSignature, error) {
	p := &signatureParser{s: s}
	sig := &ClassSignature{TypeParameters: p.typeParameters()}
	sig.SuperClass = p.classType()
	for p.err == nil && p.pos < len(p.s) {
		sig.Interfaces = append(sig.Interfaces, p.classType())
	}
	p.done()
	if p.err != nil {
		return nil, p.err
	}
	return sig, nil
}

// ParseMethodSignature parses a MethodSignature. Plain method descriptors
// are a subset of the grammar and parse as well.
func ParseMethodSignature(s string) (*MethodSignature, error) {
	p := &signatureParser{s: s}
	sig := &MethodSignature{TypeParameters: p.typeParameters()}
	p.expect('(')
	for p.err == nil && p.peek() != ')' {
		sig.Parameters = append(sig.Parameters, p.javaType())
	}
	p.expect(')')
	if p.peek() == 'V' {
		p.pos++
		sig.Result = BaseType('V')
	} else {
		sig.Result = p.javaType()
	}
	for p.peek() == '^' {
		p.pos++
		sig.Throws = append(sig.Throws, p.referenceType())
	}
	p.done()
	if p.err != nil {
		return nil, p.err
	}
	return sig, nil
}

// ParseFieldSignature parses a field signature or a plain field descriptor.
func ParseFieldSignature(s string) (TypeSignature, error) {
	p := &signatureParser{s: s}
	t := p.javaType()
	p.done()
	if p.err != nil {
		return nil, p.err
	}
	return t, nil
}
