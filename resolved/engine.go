package resolved

import (
	"fmt"
	"strings"

	"github.com/dhamidi/jtype/classpath"
	"github.com/dhamidi/jtype/java"
)

const DefaultMaxDepth = 64

// Resolver resolves types against the classes of a classpath. It is safe
// for concurrent use.
type Resolver struct {
	path     *classpath.Path
	cache    *Cache
	maxDepth int
}

type Option func(*Resolver)

// WithMaxDepth bounds how deeply type arguments, owners and array
// components may nest.
func WithMaxDepth(depth int) Option {
	return func(r *Resolver) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

func WithCache(c *Cache) Option {
	return func(r *Resolver) {
		r.cache = c
	}
}

func NewResolver(path *classpath.Path, opts ...Option) *Resolver {
	r := &Resolver{
		path:     path,
		cache:    NewCache(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) Path() *classpath.Path { return r.path }
func (r *Resolver) MaxDepth() int         { return r.maxDepth }

// Resolve resolves t without any type variable bindings. The members of
// the result are resolved before it is returned.
func (r *Resolver) Resolve(t java.Type) (Type, error) {
	return r.ResolveIn(t, nil)
}

// ResolveIn resolves t with variables bound by env.
func (r *Resolver) ResolveIn(t java.Type, env *Bindings) (Type, error) {
	resolved, err := r.resolve(t, env, 0)
	if err != nil {
		return nil, err
	}
	if err := complete(resolved); err != nil {
		return nil, err
	}
	return resolved, nil
}

// ResolveExpression parses a Java type expression such as
// "java.util.Map<String, Integer[]>" and resolves it.
func (r *Resolver) ResolveExpression(expr string) (Type, error) {
	t, err := java.ParseTypeExpression(expr)
	if err != nil {
		return nil, err
	}
	return r.Resolve(t)
}

// Registered lists the distinct class types resolved so far.
func (r *Resolver) Registered() []Type {
	return r.cache.Types()
}

// Purge forgets every resolved type, e.g. after the classpath changed.
func (r *Resolver) Purge() {
	r.cache.Purge()
}

func (r *Resolver) resolve(t java.Type, env *Bindings, depth int) (Type, error) {
	if depth > r.maxDepth {
		return nil, &DepthExceededError{Limit: r.maxDepth, Type: t.String()}
	}

	switch t := t.(type) {
	case java.ClassRef:
		if t.IsArray() {
			component, err := r.resolve(t.Component(), env, depth+1)
			if err != nil {
				return nil, err
			}
			return NewArrayType(component), nil
		}
		return r.resolveClass(t.Name, nil, nil)

	case *java.ParameterizedType:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			arg, err := r.resolve(a, env, depth+1)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		var owner *ClassType
		if o, ok := t.Owner.(*java.ParameterizedType); ok {
			resolved, err := r.resolve(o, env, depth+1)
			if err != nil {
				return nil, fmt.Errorf("owner of %s: %w", t.Raw, err)
			}
			owner, _ = resolved.(*ClassType)
		}
		return r.resolveClass(t.Raw, owner, args)

	case *java.GenericArrayType:
		component, err := r.resolve(t.Component, env, depth+1)
		if err != nil {
			return nil, err
		}
		return NewArrayType(component), nil

	case *java.WildcardType:
		if len(t.Lower) > 0 || len(t.Upper) != 1 || t.Upper[0] == java.ObjectType {
			return Wildcard(), nil
		}
		bound, err := r.resolve(t.Upper[0], env, depth+1)
		if err != nil {
			return nil, err
		}
		return NewBoundedWildcard(bound), nil

	case java.TypeVariable:
		if v, ok := env.Lookup(t.Name); ok {
			return v, nil
		}
		return nil, &UnresolvedVariableError{Name: t.Name.String()}

	case *java.UnknownType:
		return nil, &UnknownTypeDescriptorError{Kind: t.Kind, Value: t.Raw, Err: t.Err}
	}
	return nil, &UnknownTypeDescriptorError{Kind: fmt.Sprintf("%T", t), Value: fmt.Sprint(t)}
}

// resolveClass binds the declared type variables of name to args. Inner
// classes see the bindings of owner as well.
func (r *Resolver) resolveClass(name string, owner *ClassType, args []Type) (Type, error) {
	return r.cache.Do(classKey(name, owner, args), func() (Type, error) {
		class, err := r.path.Load(name)
		if err != nil {
			return nil, err
		}
		if err := class.SignatureError(); err != nil {
			return nil, &UnknownTypeDescriptorError{Kind: "class signature", Value: class.ClassFile().Signature(), Err: err}
		}

		names := java.TypeVariableNames(class)
		if len(args) == 0 && len(names) > 0 {
			return nil, &UnboundTypeVariablesError{Class: name, Variables: variableNames(names)}
		}
		if len(args) != len(names) {
			return nil, &ArityMismatchError{Class: name, Want: len(names), Got: len(args)}
		}

		var ownerEnv *Bindings
		if owner != nil {
			ownerEnv = owner.env
		}
		ct := &ClassType{
			r:     r,
			class: class,
			owner: owner,
			args:  args,
			env:   NewBindings(names, args, ownerEnv),
		}
		log.Debugf("resolved %s", ct.Description())
		return ct, nil
	})
}

func classKey(name string, owner *ClassType, args []Type) string {
	var sb strings.Builder
	if owner != nil {
		sb.WriteString(owner.key())
		sb.WriteByte('.')
	}
	sb.WriteString(name)
	if len(args) > 0 {
		sb.WriteByte('<')
		for i, a := range args {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(a.key())
		}
		sb.WriteByte('>')
	}
	return sb.String()
}

func variableNames(names []java.TypeVariableName) []string {
	result := make([]string, len(names))
	for i, n := range names {
		result[i] = n.String()
	}
	return result
}
