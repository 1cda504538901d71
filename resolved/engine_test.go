package resolved

import (
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/dhamidi/jtype/classpath"
	"github.com/dhamidi/jtype/java"
)

func TestResolveTypeWithTypeVariables(t *testing.T) {
	r := newTestResolver(t)
	str := mustResolve(t, r, "String")

	g, err := NewGenericType(r, "pkg.TestTypeWithTypeVariables", str)
	if err != nil {
		t.Fatalf("Failed to create generic type: %v", err)
	}
	typ := mustClass(t, g.Type())

	t.Run("type parameter", func(t *testing.T) {
		a, err := typ.TypeParameter("A")
		if err != nil {
			t.Fatalf("TypeParameter(A) error = %v", err)
		}
		if got := a.SimpleDescription(); got != "String" {
			t.Errorf("SimpleDescription() = %q, want %q", got, "String")
		}
	})

	t.Run("parameter of own type", func(t *testing.T) {
		foo := findMethod(t, typ, "foo")
		if len(foo.Parameters()) != 1 {
			t.Fatalf("Expected 1 parameter, got %d", len(foo.Parameters()))
		}
		p := foo.Parameters()[0]
		if got := p.Type.SimpleDescription(); got != "TestTypeWithTypeVariables<String>" {
			t.Errorf("parameter type = %q", got)
		}
		if p.Name != "other" {
			t.Errorf("parameter name = %q, want other", p.Name)
		}
		if p.Type != Type(typ) {
			t.Error("Expected the parameter to share the cached type")
		}
	})

	t.Run("field", func(t *testing.T) {
		fields := typ.Fields()
		if len(fields) != 1 || fields[0].Type().Description() != "java.lang.String" {
			t.Errorf("Fields() = %v", fields)
		}
	})

	t.Run("generic array return", func(t *testing.T) {
		items := findMethod(t, typ, "items")
		arr, ok := items.ReturnType().(*ArrayType)
		if !ok {
			t.Fatalf("ReturnType() = %T, want *ArrayType", items.ReturnType())
		}
		if arr.SimpleDescription() != "String[]" || arr.AssignableType() != "java.lang.String[]" {
			t.Errorf("array = %q (%s)", arr.SimpleDescription(), arr.AssignableType())
		}
	})

	t.Run("wildcard parameter", func(t *testing.T) {
		numbers := findMethod(t, typ, "numbers")
		arg := numbers.Parameters()[0].Type.TypeParameters()[0]
		if !arg.IsWildcard() || arg.AssignableType() != "java.lang.Number" {
			t.Errorf("wildcard = %q, IsWildcard() = %v", arg.AssignableType(), arg.IsWildcard())
		}
	})

	t.Run("method type variable shadows class variable", func(t *testing.T) {
		if hasMethod(typ, "map") {
			t.Error("Expected map to be dropped")
		}
	})

	t.Run("constructor", func(t *testing.T) {
		ctors := typ.Constructors()
		if len(ctors) != 1 || !ctors[0].HasParameters(str) {
			t.Errorf("Constructors() = %v", ctors)
		}
	})
}

func TestFieldDescription(t *testing.T) {
	r := newTestResolver(t)
	typ := mustResolve(t, r, "pkg.TestType")

	var field *Field
	for _, f := range typ.Fields() {
		if f.Name() == "FIELD_1" {
			field = f
		}
	}
	if field == nil {
		t.Fatal("FIELD_1 not found")
	}
	if !field.IsStatic() || !field.IsPublic() {
		t.Errorf("IsStatic() = %v, IsPublic() = %v", field.IsStatic(), field.IsPublic())
	}
	if got, want := field.Describe(), "public static final String FIELD_1"; got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}

func TestMemberDescriptions(t *testing.T) {
	r := newTestResolver(t)
	typ := mustResolve(t, r, "pkg.TestType")

	if got, want := findMethod(t, typ, "method").Describe(), "'String method()' [public java.lang.String pkg.TestType.method()]"; got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
	if got, want := findMethod(t, typ, "names").Describe(), "'void names(List<String> names)' [public static void pkg.TestType.names(java.util.List<java.lang.String>)]"; got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
	if got, want := typ.Constructors()[0].Describe(), "public pkg.TestType()"; got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}

	for _, f := range typ.Fields() {
		if f.Name() == "cache" {
			if got, want := f.Describe(), "private transient List<String> cache"; got != want {
				t.Errorf("Describe() = %q, want %q", got, want)
			}
		}
	}
}

func TestMemberFiltering(t *testing.T) {
	r := newTestResolver(t)
	typ := mustClass(t, mustResolve(t, r, "pkg.TestType"))

	for _, name := range []string{"method", "names"} {
		if !hasMethod(typ, name) {
			t.Errorf("Expected method %s", name)
		}
	}
	if hasMethod(typ, "generic") {
		t.Error("Expected generic to be dropped")
	}
	if hasMethod(typ, "bridge") {
		t.Error("Expected the bridge method to be excluded")
	}

	var dropped []string
	for _, d := range typ.Dropped() {
		dropped = append(dropped, d.Kind+" "+d.Name)
	}
	slices.Sort(dropped)
	if want := []string{"field raw", "method generic"}; !slices.Equal(dropped, want) {
		t.Errorf("Dropped() = %v, want %v", dropped, want)
	}
	for _, d := range typ.Dropped() {
		if d.Name == "generic" && !errors.Is(d.Err, ErrUnresolvedVariable) {
			t.Errorf("generic dropped with %v", d.Err)
		}
		if d.Name == "raw" && !errors.Is(d.Err, ErrUnboundTypeVariables) {
			t.Errorf("raw dropped with %v", d.Err)
		}
	}
}

func TestPrimitive(t *testing.T) {
	r := newTestResolver(t)
	typ, err := r.Resolve(ref("int"))
	if err != nil {
		t.Fatalf("Failed to resolve int: %v", err)
	}
	if typ.Description() != "int" {
		t.Errorf("Description() = %q, want int", typ.Description())
	}
	if typ.IsAbstract() {
		t.Error("Expected int not to be abstract")
	}
	if len(typ.Methods()) != 0 || len(typ.Fields()) != 0 {
		t.Error("Expected no members on a primitive")
	}
}

func TestNoSuchTypeParameter(t *testing.T) {
	r := newTestResolver(t)
	typ := mustClass(t, mustResolve(t, r, "java.util.List<String>"))

	_, err := typ.TypeParameter("foo")
	var e *NoSuchTypeParameterError
	if !errors.As(err, &e) || e.Name != "foo" {
		t.Fatalf("TypeParameter(foo) error = %v", err)
	}
	if err.Error() != "No type parameter with the name: foo" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestUnboundTypeVariables(t *testing.T) {
	r := newTestResolver(t)

	t.Run("engine", func(t *testing.T) {
		_, err := r.Resolve(ref("java.util.Map"))
		var e *UnboundTypeVariablesError
		if !errors.As(err, &e) {
			t.Fatalf("Resolve() error = %v, want UnboundTypeVariablesError", err)
		}
		if !slices.Equal(e.Variables, []string{"K", "V"}) {
			t.Errorf("Variables = %v", e.Variables)
		}
	})

	t.Run("generic type", func(t *testing.T) {
		_, err := NewGenericType(r, "pkg.TestTypeWithTypeVariables")
		want := "type 'pkg.TestTypeWithTypeVariables' contains the following type variables that need to be filled in in order to create a GenericType object: [A]"
		if err == nil || err.Error() != want {
			t.Errorf("NewGenericType() error = %v", err)
		}
		if !errors.Is(err, ErrUnboundTypeVariables) {
			t.Error("Expected errors.Is(err, ErrUnboundTypeVariables)")
		}
	})

	t.Run("non generic", func(t *testing.T) {
		for _, name := range []string{"pkg.TestType", "java.lang.String", "int"} {
			if _, err := NewGenericType(r, name); err != nil {
				t.Errorf("NewGenericType(%s) error = %v", name, err)
			}
		}
	})

	t.Run("arity mismatch", func(t *testing.T) {
		str := mustResolve(t, r, "String")
		_, err := r.Resolve(&java.ParameterizedType{Raw: "java.util.List", Args: []java.Type{ref("java.lang.String"), ref("java.lang.String")}})
		var e *ArityMismatchError
		if !errors.As(err, &e) || e.Want != 1 || e.Got != 2 {
			t.Errorf("Resolve() error = %v", err)
		}
		if _, err := NewGenericType(r, "java.util.Map", str); !errors.Is(err, ErrUnboundTypeVariables) {
			t.Errorf("NewGenericType() error = %v", err)
		}
	})
}

func TestArrays(t *testing.T) {
	r := newTestResolver(t)
	for _, component := range []string{"String", "int", "java.util.List<String>", "java.util.Map<String, Integer[]>"} {
		t.Run(component, func(t *testing.T) {
			want := mustResolve(t, r, component)
			arr, ok := mustResolve(t, r, component+"[]").(*ArrayType)
			if !ok {
				t.Fatal("Expected an *ArrayType")
			}
			params := arr.TypeParameters()
			if len(params) != 1 || !Equal(params[0], want) || !Equal(arr.ComponentType(), want) {
				t.Errorf("TypeParameters() = %v, want [%s]", params, want.Description())
			}
			if got := arr.Description(); got != want.Description()+"[]" {
				t.Errorf("Description() = %q", got)
			}
		})
	}
}

func TestWildcards(t *testing.T) {
	r := newTestResolver(t)
	tests := []struct {
		expr       string
		desc       string
		assignable string
	}{
		{"java.util.List<? extends Number>", "java.util.List<java.lang.Number>", "java.lang.Number"},
		{"java.util.List<?>", "java.util.List<?>", "java.lang.Object"},
		{"java.util.List<? super Integer>", "java.util.List<?>", "java.lang.Object"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			typ := mustResolve(t, r, tt.expr)
			if got := typ.Description(); got != tt.desc {
				t.Errorf("Description() = %q, want %q", got, tt.desc)
			}
			arg := typ.TypeParameters()[0]
			if !arg.IsWildcard() {
				t.Error("Expected IsWildcard()")
			}
			if arg.AssignableType() != tt.assignable {
				t.Errorf("AssignableType() = %q, want %q", arg.AssignableType(), tt.assignable)
			}
		})
	}

	bounded := mustResolve(t, r, "java.util.List<? extends Number>")
	plain := mustResolve(t, r, "java.util.List<Number>")
	if bounded == plain || Equal(bounded, plain) {
		t.Error("Expected a bounded wildcard to differ from its bound")
	}
}

func TestDescriptions(t *testing.T) {
	r := newTestResolver(t)
	tests := []struct {
		expr   string
		desc   string
		simple string
	}{
		{"java.util.Map<String, java.util.List<Integer>>", "java.util.Map<java.lang.String, java.util.List<java.lang.Integer>>", "Map<String, List<Integer>>"},
		{"java.util.Map$Entry<String, Long>", "java.util.Map$Entry<java.lang.String, java.lang.Long>", "Entry<String, Long>"},
		{"String[][]", "java.lang.String[][]", "String[][]"},
		{"boolean", "boolean", "boolean"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			typ := mustResolve(t, r, tt.expr)
			if got := typ.Description(); got != tt.desc {
				t.Errorf("Description() = %q, want %q", got, tt.desc)
			}
			if got := typ.SimpleDescription(); got != tt.simple {
				t.Errorf("SimpleDescription() = %q, want %q", got, tt.simple)
			}
		})
	}
}

func TestInnerClass(t *testing.T) {
	r := newTestResolver(t)
	typ := mustClass(t, mustResolve(t, r, "pkg.Outer<String>.Inner"))

	if typ.Owner() == nil || typ.Owner().Description() != "pkg.Outer<java.lang.String>" {
		t.Fatalf("Owner() = %v", typ.Owner())
	}
	if !typ.IsInner() || typ.IsStatic() {
		t.Error("Expected a non-static inner class")
	}
	fields := typ.Fields()
	if len(fields) != 1 || fields[0].Type().Description() != "java.lang.String" {
		t.Errorf("Fields() = %v", fields)
	}
	ctors := typ.Constructors()
	if len(ctors) != 1 || len(ctors[0].Parameters()) != 0 {
		t.Errorf("Constructors() = %v", ctors)
	}

	bare := mustClass(t, mustResolve(t, r, "pkg.Outer$Inner"))
	if len(bare.Fields()) != 0 || len(bare.Dropped()) != 1 {
		t.Errorf("Expected the owner-typed field to be dropped without an owner, got %v", bare.Dropped())
	}
}

func TestUnknownTypeDescriptor(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.Resolve(ref("pkg.Broken"))
	if !errors.Is(err, ErrUnknownTypeDescriptor) {
		t.Fatalf("Resolve() error = %v, want ErrUnknownTypeDescriptor", err)
	}

	_, err = r.Resolve(&java.UnknownType{Kind: "signature", Raw: "Q"})
	var e *UnknownTypeDescriptorError
	if !errors.As(err, &e) || e.Value != "Q" {
		t.Errorf("Resolve() error = %v", err)
	}
}

func TestNestedMemberFailure(t *testing.T) {
	r := newTestResolver(t)
	holder := mustResolve(t, r, "pkg.BrokenHolder")
	if len(holder.Fields()) != 2 {
		t.Fatalf("Fields() = %v, want broken and bounded", holder.Fields())
	}

	for _, f := range holder.Fields() {
		t.Run(f.Name(), func(t *testing.T) {
			typ := f.Type()
			if f.Name() == "bounded" {
				typ = typ.TypeParameters()[0]
			}
			if err := typ.Err(); !errors.Is(err, ErrUnknownTypeDescriptor) {
				t.Errorf("Err() = %v, want ErrUnknownTypeDescriptor", err)
			}
			if len(typ.Fields()) != 0 || len(typ.Methods()) != 0 {
				t.Errorf("Expected no members on a failed type, got %v %v", typ.Fields(), typ.Methods())
			}
		})
	}

	if err := holder.Err(); err != nil {
		t.Errorf("holder Err() = %v, want nil", err)
	}
}

func TestDepthGuard(t *testing.T) {
	r := newTestResolver(t, WithMaxDepth(3))

	mustResolve(t, r, "java.util.List<java.util.List<String>>")
	_, err := r.ResolveExpression("java.util.List<java.util.List<java.util.List<java.util.List<String>>>>")
	var e *DepthExceededError
	if !errors.As(err, &e) || e.Limit != 3 {
		t.Errorf("ResolveExpression() error = %v, want DepthExceededError", err)
	}
}

func TestMissingClass(t *testing.T) {
	r := newTestResolver(t)
	if _, err := r.Resolve(ref("pkg.Missing")); !errors.Is(err, classpath.ErrClassNotFound) {
		t.Errorf("Resolve() error = %v, want ErrClassNotFound", err)
	}
}

func TestSupertypes(t *testing.T) {
	r := newTestResolver(t)
	typ := mustClass(t, mustResolve(t, r, "pkg.StringBox"))

	super, err := typ.SuperClass()
	if err != nil {
		t.Fatalf("SuperClass() error = %v", err)
	}
	if got := super.Description(); got != "java.util.ArrayList<java.lang.String>" {
		t.Errorf("SuperClass() = %q", got)
	}

	all, err := typ.AllSupertypes()
	if err != nil {
		t.Fatalf("AllSupertypes() error = %v", err)
	}
	var got []string
	for _, s := range all {
		got = append(got, s.SimpleDescription())
	}
	want := []string{"ArrayList<String>", "Object", "List<String>", "Collection<String>", "Iterable<String>"}
	if !slices.Equal(got, want) {
		t.Errorf("AllSupertypes() = %v, want %v", got, want)
	}
}

func TestPermittedSubclasses(t *testing.T) {
	r := newTestResolver(t)
	typ := mustClass(t, mustResolve(t, r, "pkg.Shape"))

	subs, err := typ.PermittedSubclasses()
	if err != nil {
		t.Fatalf("PermittedSubclasses() error = %v", err)
	}
	if len(subs) != 2 || subs[0].Description() != "pkg.Circle" || subs[1].Description() != "pkg.Square" {
		t.Errorf("PermittedSubclasses() = %v", subs)
	}
	if !typ.IsAbstract() || typ.IsInstantiatable() {
		t.Error("Expected an abstract, non-instantiatable sealed class")
	}
}

func TestKotlinLanguage(t *testing.T) {
	r := newTestResolver(t)
	typ := mustResolve(t, r, "pkg.KotlinBox<String>")

	if typ.Language() != Kotlin {
		t.Fatalf("Language() = %s, want kotlin", typ.Language().Name())
	}
	if got, want := findMethod(t, typ, "get").Describe(), "'fun get(): String' [public final T pkg.KotlinBox.get()]"; got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
	if got, want := findMethod(t, typ, "count").Describe(), "'fun count(items: List<*>): int' [public final int pkg.KotlinBox.count(java.util.List<?>)]"; got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}

func TestInstantiatable(t *testing.T) {
	r := newTestResolver(t)
	tests := map[string]bool{
		"java.util.ArrayList<String>":   true,
		"java.util.List<String>":        false,
		"java.lang.Number":              false,
		"java.util.ArrayList<Number>":   false,
		"java.util.ArrayList<?>":        false,
		"String[]":                      true,
		"java.util.ArrayList<String>[]": true,
	}
	for expr, want := range tests {
		if got := mustResolve(t, r, expr).IsInstantiatable(); got != want {
			t.Errorf("%s: IsInstantiatable() = %v, want %v", expr, got, want)
		}
	}
}

func TestTypeToken(t *testing.T) {
	r := newTestResolver(t)
	typ, err := TypeToken(r, "pkg.MapToken")
	if err != nil {
		t.Fatalf("TypeToken() error = %v", err)
	}
	if got, want := typ.Description(), "java.util.Map<java.lang.String, java.util.List<java.lang.Integer>>"; got != want {
		t.Errorf("Description() = %q, want %q", got, want)
	}
	if _, err := TypeToken(r, "pkg.TestType"); err == nil {
		t.Error("Expected an error for a class that captures no type")
	}
}

func TestCacheComputesOnce(t *testing.T) {
	r := newTestResolver(t)

	const n = 16
	results := make([]Type, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			typ, err := r.ResolveExpression("java.util.HashMap<String, java.util.List<Integer>>")
			if err != nil {
				t.Errorf("ResolveExpression() error = %v", err)
				return
			}
			results[i] = typ
		}()
	}
	wg.Wait()

	for _, typ := range results[1:] {
		if typ != results[0] {
			t.Fatal("Expected every caller to receive the same resolved type")
		}
	}

	count := 0
	for _, typ := range r.Registered() {
		if typ.Description() == results[0].Description() {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Registered() holds %d copies, want 1", count)
	}

	r.Purge()
	if len(r.Registered()) != 0 {
		t.Error("Expected Purge to empty the cache")
	}
}

func TestMonotonicFiltering(t *testing.T) {
	r := newTestResolver(t)
	typ := mustResolve(t, r, "java.util.function.Function<String, Integer>")

	if hasMethod(typ, "andThen") {
		t.Error("Expected andThen, which declares its own type variable, to be dropped")
	}
	apply := findMethod(t, typ, "apply")
	if got := apply.ReturnType().Description(); got != "java.lang.Integer" {
		t.Errorf("apply returns %q", got)
	}
}
