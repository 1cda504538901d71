package java

import (
	"io"
	"strings"
	"sync"

	"github.com/dhamidi/jtype/classfile"
)

type Class struct {
	cf        *classfile.ClassFile
	primitive string

	sigOnce sync.Once
	sig     *classfile.ClassSignature
	sigErr  error
}

// TypeParameter is a declared type variable with its bounds.
type TypeParameter struct {
	Name   TypeVariableName
	Bounds []Type
}

func (p TypeParameter) String() string {
	var sb strings.Builder
	sb.WriteString(p.Name.String())
	for i, b := range p.Bounds {
		if i == 0 {
			if b == ObjectType && len(p.Bounds) == 1 {
				break
			}
			sb.WriteString(" extends ")
		} else {
			sb.WriteString(" & ")
		}
		sb.WriteString(b.String())
	}
	return sb.String()
}

func NewClass(cf *classfile.ClassFile) *Class {
	return &Class{cf: cf}
}

func ParseClass(r io.Reader) (*Class, error) {
	cf, err := classfile.Parse(r)
	if err != nil {
		return nil, err
	}
	return NewClass(cf), nil
}

func ParseClassFile(path string) (*Class, error) {
	cf, err := classfile.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return NewClass(cf), nil
}

var primitives = map[string]*Class{}

func init() {
	for _, name := range []string{"boolean", "byte", "char", "short", "int", "long", "float", "double", "void"} {
		primitives[name] = &Class{primitive: name}
	}
}

// Primitive returns the class for a primitive type name such as "int", or
// nil.
func Primitive(name string) *Class {
	return primitives[name]
}

func IsPrimitiveName(name string) bool {
	_, ok := primitives[name]
	return ok
}

// Name returns the binary name, e.g. "java.util.Map$Entry".
func (c *Class) Name() string {
	if c.primitive != "" {
		return c.primitive
	}
	return classfile.InternalToSourceName(c.cf.ClassName())
}

func (c *Class) InternalName() string {
	if c.primitive != "" {
		return c.primitive
	}
	return c.cf.ClassName()
}

// SimpleName follows Class.getSimpleName: the inner name for nested classes
// and "" for anonymous classes.
func (c *Class) SimpleName() string {
	if c.primitive != "" {
		return c.primitive
	}
	if e, ok := c.cf.InnerClassEntry(); ok {
		return c.cf.ConstantPool.GetUtf8(e.InnerNameIndex)
	}
	name := c.Name()
	return name[strings.LastIndexByte(name, '.')+1:]
}

func (c *Class) Package() string {
	name := c.Name()
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return ""
}

func (c *Class) signature() (*classfile.ClassSignature, error) {
	c.sigOnce.Do(func() {
		if c.cf == nil {
			return
		}
		if s := c.cf.Signature(); s != "" {
			c.sig, c.sigErr = classfile.ParseClassSignature(s)
		}
	})
	return c.sig, c.sigErr
}

// SignatureError reports a malformed class Signature attribute.
func (c *Class) SignatureError() error {
	_, err := c.signature()
	return err
}

func (c *Class) TypeParameters() []TypeParameter {
	sig, _ := c.signature()
	if sig == nil {
		return nil
	}
	return typeParametersFrom(sig.TypeParameters)
}

func typeParametersFrom(params []classfile.TypeParameter) []TypeParameter {
	result := make([]TypeParameter, len(params))
	for i, p := range params {
		tp := TypeParameter{Name: NewTypeVariableName(p.Name)}
		if p.ClassBound != nil {
			tp.Bounds = append(tp.Bounds, FromSignature(p.ClassBound))
		}
		for _, b := range p.InterfaceBounds {
			tp.Bounds = append(tp.Bounds, FromSignature(b))
		}
		if len(tp.Bounds) == 0 {
			tp.Bounds = []Type{ObjectType}
		}
		result[i] = tp
	}
	return result
}

// GenericSuperclass returns the declared superclass with its type
// arguments, or nil for java.lang.Object, interfaces and primitives.
func (c *Class) GenericSuperclass() Type {
	if c.cf == nil || c.cf.SuperClass == 0 || c.cf.IsInterface() || c.IsAnnotation() {
		return nil
	}
	sig, err := c.signature()
	if err != nil {
		return &UnknownType{Kind: "class signature", Raw: c.cf.Signature(), Err: err}
	}
	if sig != nil {
		return FromSignature(sig.SuperClass)
	}
	return ClassRef{Name: c.SuperClass()}
}

func (c *Class) GenericInterfaces() []Type {
	if c.cf == nil {
		return nil
	}
	sig, err := c.signature()
	if err != nil {
		return []Type{&UnknownType{Kind: "class signature", Raw: c.cf.Signature(), Err: err}}
	}
	var result []Type
	if sig != nil {
		for _, i := range sig.Interfaces {
			result = append(result, FromSignature(i))
		}
		return result
	}
	for _, name := range c.Interfaces() {
		result = append(result, ClassRef{Name: name})
	}
	return result
}

func (c *Class) SuperClass() string {
	if c.cf == nil {
		return ""
	}
	return classfile.InternalToSourceName(c.cf.SuperClassName())
}

func (c *Class) Interfaces() []string {
	if c.cf == nil {
		return nil
	}
	internal := c.cf.InterfaceNames()
	result := make([]string, len(internal))
	for i, name := range internal {
		result[i] = classfile.InternalToSourceName(name)
	}
	return result
}

// modifiers prefers the InnerClasses flags, which carry static and the
// declared visibility of member classes.
func (c *Class) modifiers() classfile.AccessFlags {
	if c.cf == nil {
		return classfile.AccPublic | classfile.AccFinal
	}
	if e, ok := c.cf.InnerClassEntry(); ok {
		return e.InnerClassAccessFlags
	}
	return c.cf.AccessFlags
}

func (c *Class) IsPrimitive() bool  { return c.primitive != "" }
func (c *Class) IsInterface() bool  { return c.cf != nil && c.cf.AccessFlags.IsInterface() }
func (c *Class) IsAnnotation() bool { return c.cf != nil && c.cf.IsAnnotation() }
func (c *Class) IsEnum() bool       { return c.cf != nil && c.cf.IsEnum() }
func (c *Class) IsPublic() bool     { return c.modifiers().IsPublic() }
func (c *Class) IsFinal() bool      { return c.modifiers().IsFinal() }
func (c *Class) IsStatic() bool     { return c.modifiers().IsStatic() }
func (c *Class) IsAbstract() bool   { return c.cf != nil && c.modifiers().IsAbstract() }
func (c *Class) IsSynthetic() bool  { return c.cf != nil && c.cf.AccessFlags.IsSynthetic() }

// EnclosingClassName returns the binary name of the declaring or enclosing
// class, or "" for top-level classes.
func (c *Class) EnclosingClassName() string {
	if c.cf == nil {
		return ""
	}
	return classfile.InternalToSourceName(c.cf.OuterClassName())
}

func (c *Class) IsAnonymous() bool {
	if c.cf == nil {
		return false
	}
	e, ok := c.cf.InnerClassEntry()
	return ok && e.InnerNameIndex == 0
}

func (c *Class) IsLocal() bool {
	return c.cf != nil && c.cf.EnclosingMethod() != nil && !c.IsAnonymous()
}

// IsInner reports whether the class has an enclosing class, static or not.
func (c *Class) IsInner() bool {
	return c.EnclosingClassName() != ""
}

// HasOuterInstance reports whether instances capture an enclosing instance.
func (c *Class) HasOuterInstance() bool {
	return c.IsInner() && !c.IsStatic() && !c.IsInterface() && !c.IsEnum()
}

func (c *Class) Visibility() Visibility {
	return visibilityOf(c.modifiers())
}

func (c *Class) Methods() []*Method {
	if c.cf == nil {
		return nil
	}
	var methods []*Method
	for i := range c.cf.Methods {
		m := &c.cf.Methods[i]
		if m.IsConstructor(c.cf.ConstantPool) || m.IsStaticInitializer(c.cf.ConstantPool) {
			continue
		}
		methods = append(methods, &Method{class: c, info: m, cp: c.cf.ConstantPool})
	}
	return methods
}

func (c *Class) Constructors() []*Method {
	if c.cf == nil {
		return nil
	}
	var ctors []*Method
	for i := range c.cf.Methods {
		m := &c.cf.Methods[i]
		if m.IsConstructor(c.cf.ConstantPool) {
			ctors = append(ctors, &Method{class: c, info: m, cp: c.cf.ConstantPool})
		}
	}
	return ctors
}

func (c *Class) Fields() []*Field {
	if c.cf == nil {
		return nil
	}
	fields := make([]*Field, len(c.cf.Fields))
	for i := range c.cf.Fields {
		fields[i] = &Field{class: c, info: &c.cf.Fields[i], cp: c.cf.ConstantPool}
	}
	return fields
}

func (c *Class) Field(name string) *Field {
	for _, f := range c.Fields() {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

func (c *Class) PermittedSubclasses() []string {
	if c.cf == nil {
		return nil
	}
	var names []string
	for _, n := range c.cf.PermittedSubclassNames() {
		names = append(names, classfile.InternalToSourceName(n))
	}
	return names
}

// Annotations lists the binary names of the class annotations.
func (c *Class) Annotations() []string {
	if c.cf == nil {
		return nil
	}
	var names []string
	for _, desc := range c.cf.AnnotationTypes() {
		if strings.HasPrefix(desc, "L") && strings.HasSuffix(desc, ";") {
			names = append(names, classfile.InternalToSourceName(desc[1:len(desc)-1]))
		}
	}
	return names
}

func (c *Class) IsAnnotatedWith(name string) bool {
	for _, a := range c.Annotations() {
		if a == name {
			return true
		}
	}
	return false
}

func (c *Class) MajorVersion() uint16 {
	if c.cf == nil {
		return 0
	}
	return c.cf.MajorVersion
}

func (c *Class) ClassFile() *classfile.ClassFile {
	return c.cf
}

func (c *Class) String() string {
	return c.Name()
}
