package resolved

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dhamidi/jtype/classpath"
	"github.com/dhamidi/jtype/java"
)

// ClassType is a resolved class, interface or primitive. Its type
// arguments are bound when it is created; members and supertypes are
// resolved on first use and then shared.
type ClassType struct {
	r     *Resolver
	class *java.Class
	owner *ClassType
	args  []Type
	env   *Bindings

	membersOnce  sync.Once
	constructors []*Constructor
	methods      []*Method
	fields       []*Field
	dropped      []DroppedMember
	membersErr   error

	superOnce  sync.Once
	super      Type
	interfaces []Type
	superErr   error
}

// DroppedMember records a member left out of a ClassType because its
// signature did not resolve.
type DroppedMember struct {
	Kind string
	Name string
	Err  error
}

func (d DroppedMember) String() string {
	return fmt.Sprintf("%s %s: %v", d.Kind, d.Name, d.Err)
}

// Class returns the declaration this type was resolved from.
func (c *ClassType) Class() *java.Class { return c.class }

// Owner returns the parameterized enclosing type of an inner class, or nil.
func (c *ClassType) Owner() *ClassType { return c.owner }

// Bindings returns the environment member signatures are resolved in.
func (c *ClassType) Bindings() *Bindings { return c.env }

func (c *ClassType) Name() string { return c.class.Name() }

func (c *ClassType) Description() string { return c.DescriptionIn(c.Language()) }

func (c *ClassType) SimpleDescription() string { return c.SimpleDescriptionIn(c.Language()) }

func (c *ClassType) DescriptionIn(lang Language) string {
	if len(c.args) == 0 {
		return c.class.Name()
	}
	return c.class.Name() + "<" + joinDescriptions(c.args, func(t Type) string { return t.DescriptionIn(lang) }) + ">"
}

func (c *ClassType) SimpleDescriptionIn(lang Language) string {
	if len(c.args) == 0 {
		return c.class.SimpleName()
	}
	return c.class.SimpleName() + "<" + joinDescriptions(c.args, func(t Type) string { return t.SimpleDescriptionIn(lang) }) + ">"
}

func (c *ClassType) AssignableType() string { return c.class.Name() }

func (c *ClassType) Language() Language {
	if c.class.IsAnnotatedWith(kotlinMetadata) {
		return Kotlin
	}
	return Java
}

func (c *ClassType) IsAbstract() bool       { return !c.class.IsPrimitive() && c.class.IsAbstract() }
func (c *ClassType) IsInterface() bool      { return c.class.IsInterface() }
func (c *ClassType) IsWildcard() bool       { return false }
func (c *ClassType) IsArray() bool          { return false }
func (c *ClassType) IsInstantiatable() bool { return instantiatable(c) }
func (c *ClassType) IsAnonymous() bool      { return c.class.IsAnonymous() }
func (c *ClassType) IsAnnotation() bool     { return c.class.IsAnnotation() }
func (c *ClassType) IsInner() bool          { return c.class.IsInner() }
func (c *ClassType) IsLocal() bool          { return c.class.IsLocal() }
func (c *ClassType) IsStatic() bool         { return c.class.IsStatic() }
func (c *ClassType) IsPublic() bool         { return c.class.IsPublic() }
func (c *ClassType) IsPrimitive() bool      { return c.class.IsPrimitive() }

// TypeParameters returns the type arguments in declaration order.
func (c *ClassType) TypeParameters() []Type {
	return append([]Type(nil), c.args...)
}

// TypeParameter returns the binding of a declared type variable.
func (c *ClassType) TypeParameter(name string) (Type, error) {
	for i, n := range c.env.Names() {
		if n.String() == name && i < len(c.args) {
			return c.args[i], nil
		}
	}
	return nil, &NoSuchTypeParameterError{Name: name}
}

func (c *ClassType) Fields() []*Field {
	c.resolveMembers()
	return c.fields
}

func (c *ClassType) Methods() []*Method {
	c.resolveMembers()
	return c.methods
}

func (c *ClassType) Constructors() []*Constructor {
	c.resolveMembers()
	return c.constructors
}

// Dropped lists the members whose signatures could not be resolved.
func (c *ClassType) Dropped() []DroppedMember {
	c.resolveMembers()
	return c.dropped
}

// Err reports a failure that prevented member resolution. Fields, Methods
// and Constructors are empty when it is non-nil.
func (c *ClassType) Err() error {
	return c.resolveMembers()
}

func (c *ClassType) resolveMembers() error {
	c.membersOnce.Do(func() {
		if err := c.resolveFields(); err != nil {
			c.fail(err)
			return
		}
		if err := c.resolveConstructors(); err != nil {
			c.fail(err)
			return
		}
		if err := c.resolveMethods(); err != nil {
			c.fail(err)
		}
	})
	return c.membersErr
}

func (c *ClassType) fail(err error) {
	c.membersErr = fmt.Errorf("resolve members of %s: %w", c.Description(), err)
	c.fields, c.constructors, c.methods = nil, nil, nil
}

func (c *ClassType) drop(kind, name string, err error) {
	log.Debugf("%s: dropped %s %s: %v", c.Description(), kind, name, err)
	c.dropped = append(c.dropped, DroppedMember{Kind: kind, Name: name, Err: err})
}

func (c *ClassType) resolveFields() error {
	for _, f := range c.class.Fields() {
		if f.IsSynthetic() {
			continue
		}
		t, err := c.r.resolve(f.GenericType(), c.env, 0)
		if err != nil {
			if fatal(err) {
				return fmt.Errorf("field %s: %w", f.Name(), err)
			}
			c.drop("field", f.Name(), err)
			continue
		}
		c.fields = append(c.fields, &Field{declaring: c, decl: f, typ: t})
	}
	return nil
}

func (c *ClassType) resolveConstructors() error {
	for _, m := range c.class.Constructors() {
		if m.IsSynthetic() {
			continue
		}
		params, err := c.resolveParameters(m, c.methodEnv(m))
		if err != nil {
			if fatal(err) {
				return fmt.Errorf("constructor %s: %w", m.Descriptor(), err)
			}
			c.drop("constructor", m.Descriptor(), err)
			continue
		}
		c.constructors = append(c.constructors, &Constructor{declaring: c, decl: m, params: params})
	}
	return nil
}

func (c *ClassType) resolveMethods() error {
	for _, m := range c.class.Methods() {
		if m.IsSynthetic() || m.IsBridge() {
			continue
		}
		env := c.methodEnv(m)
		params, err := c.resolveParameters(m, env)
		var ret Type
		if err == nil && m.ReturnType() != nil {
			ret, err = c.r.resolve(m.ReturnType(), env, 0)
		}
		if err != nil {
			if fatal(err) {
				return fmt.Errorf("method %s: %w", m.Name(), err)
			}
			c.drop("method", m.Name(), err)
			continue
		}
		c.methods = append(c.methods, &Method{declaring: c, decl: m, params: params, returnType: ret})
	}
	return nil
}

// methodEnv hides the type variables a generic method declares itself.
func (c *ClassType) methodEnv(m *java.Method) *Bindings {
	var names []java.TypeVariableName
	for _, tp := range m.TypeParameters() {
		names = append(names, tp.Name)
	}
	return c.env.Shadow(names...)
}

func (c *ClassType) resolveParameters(m *java.Method, env *Bindings) ([]*Parameter, error) {
	decls := m.Parameters()
	params := make([]*Parameter, 0, len(decls))
	for _, p := range decls {
		t, err := c.r.resolve(p.Type, env, 0)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		params = append(params, &Parameter{Name: p.Name, Type: t, decl: p})
	}
	return params, nil
}

// SuperClass returns the generic superclass resolved in this type's
// environment, or nil for interfaces, primitives and java.lang.Object.
func (c *ClassType) SuperClass() (Type, error) {
	c.resolveSupertypes()
	return c.super, c.superErr
}

// Interfaces returns the directly implemented generic interfaces.
func (c *ClassType) Interfaces() ([]Type, error) {
	c.resolveSupertypes()
	return c.interfaces, c.superErr
}

func (c *ClassType) resolveSupertypes() {
	c.superOnce.Do(func() {
		if sup := c.class.GenericSuperclass(); sup != nil {
			t, err := c.r.resolve(sup, c.env, 0)
			if err != nil {
				c.superErr = fmt.Errorf("superclass of %s: %w", c.Description(), err)
				return
			}
			c.super = t
		}
		for _, i := range c.class.GenericInterfaces() {
			t, err := c.r.resolve(i, c.env, 0)
			if err != nil {
				c.superErr = fmt.Errorf("interface of %s: %w", c.Description(), err)
				c.super = nil
				c.interfaces = nil
				return
			}
			c.interfaces = append(c.interfaces, t)
		}
	})
}

// AllSupertypes walks superclasses and interfaces breadth first, each type
// listed once. Supertypes missing from the classpath or used as raw types
// are skipped.
func (c *ClassType) AllSupertypes() ([]Type, error) {
	var result []Type
	seen := map[string]bool{c.key(): true}
	queue := []*ClassType{c}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		var direct []Type
		sup, err := cur.SuperClass()
		if err == nil {
			if sup != nil {
				direct = append(direct, sup)
			}
			var ifaces []Type
			ifaces, err = cur.Interfaces()
			direct = append(direct, ifaces...)
		}
		if err != nil {
			if errors.Is(err, classpath.ErrClassNotFound) || errors.Is(err, ErrUnboundTypeVariables) {
				log.Debugf("skipping supertypes of %s: %v", cur.Description(), err)
				continue
			}
			return nil, err
		}

		for _, t := range direct {
			if seen[t.key()] {
				continue
			}
			seen[t.key()] = true
			result = append(result, t)
			if ct, ok := t.(*ClassType); ok {
				queue = append(queue, ct)
			}
		}
	}
	return result, nil
}

// PermittedSubclasses resolves the subclasses a sealed class permits.
func (c *ClassType) PermittedSubclasses() ([]Type, error) {
	var result []Type
	for _, name := range c.class.PermittedSubclasses() {
		t, err := c.r.resolve(java.ClassRef{Name: name}, nil, 0)
		if err != nil {
			return nil, fmt.Errorf("permitted subclass of %s: %w", c.Description(), err)
		}
		result = append(result, t)
	}
	return result, nil
}

func (c *ClassType) key() string {
	return classKey(c.class.Name(), c.owner, c.args)
}

func (c *ClassType) String() string { return c.Description() }
