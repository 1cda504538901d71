package resolved

import (
	"testing"

	cf "github.com/dhamidi/jtype/classfile"
	"github.com/dhamidi/jtype/classpath"
	"github.com/dhamidi/jtype/java"
)

const (
	pub       = cf.AccPublic
	pubStatic = cf.AccPublic | cf.AccStatic
)

func fixtures() []*cf.Builder {
	testType := cf.NewBuilder("pkg/TestType")
	testType.Field(pubStatic|cf.AccFinal, "FIELD_1", "Ljava/lang/String;")
	testType.Field(cf.AccPrivate|cf.AccTransient, "cache", "Ljava/util/List;").Signature("Ljava/util/List<Ljava/lang/String;>;")
	testType.Field(pub, "raw", "Ljava/util/List;")
	testType.Method(pub, "<init>", "()V")
	testType.Method(pub, "method", "()Ljava/lang/String;")
	testType.Method(pub, "generic", "(Ljava/lang/Object;)Ljava/lang/Object;").
		Signature("<T:Ljava/lang/Object;>(TT;)TT;").LocalVariables("value")
	testType.Method(pubStatic, "names", "(Ljava/util/List;)V").
		Signature("(Ljava/util/List<Ljava/lang/String;>;)V").LocalVariables("names")
	testType.Method(pub|cf.AccBridge|cf.AccSynthetic, "bridge", "()Ljava/lang/Object;")

	variables := cf.NewBuilder("pkg/TestTypeWithTypeVariables").Signature("<A:Ljava/lang/Object;>Ljava/lang/Object;")
	variables.Field(pub, "field", "Ljava/lang/Object;").Signature("TA;")
	variables.Method(pub, "<init>", "(Ljava/lang/Object;)V").Signature("(TA;)V").LocalVariables("value")
	variables.Method(pub, "foo", "(Lpkg/TestTypeWithTypeVariables;)V").
		Signature("(Lpkg/TestTypeWithTypeVariables<TA;>;)V").LocalVariables("other")
	variables.Method(pub, "items", "()[Ljava/lang/Object;").Signature("()[TA;")
	variables.Method(pub, "map", "(Ljava/util/function/Function;)Lpkg/TestTypeWithTypeVariables;").
		Signature("<A:Ljava/lang/Object;>(Ljava/util/function/Function<-TA;+TA;>;)Lpkg/TestTypeWithTypeVariables<TA;>;").
		LocalVariables("f")
	variables.Method(pub, "numbers", "(Ljava/util/List;)V").
		Signature("(Ljava/util/List<+Ljava/lang/Number;>;)V").LocalVariables("numbers")

	outer := cf.NewBuilder("pkg/Outer").Signature("<T:Ljava/lang/Object;>Ljava/lang/Object;").
		InnerClass("pkg/Outer$Inner", "pkg/Outer", "Inner", pub)
	inner := cf.NewBuilder("pkg/Outer$Inner").InnerClass("pkg/Outer$Inner", "pkg/Outer", "Inner", pub)
	inner.Field(pub, "value", "Ljava/lang/Object;").Signature("TT;")
	inner.Method(pub, "<init>", "(Lpkg/Outer;)V")

	stringBox := cf.NewBuilder("pkg/StringBox").Super("java/util/ArrayList").
		Signature("Ljava/util/ArrayList<Ljava/lang/String;>;")
	stringBox.Method(pub, "<init>", "()V")

	token := cf.NewBuilder("pkg/Token").Access(pub|cf.AccAbstract|cf.AccSuper).
		Signature("<T:Ljava/lang/Object;>Ljava/lang/Object;")
	mapToken := cf.NewBuilder("pkg/MapToken").Super("pkg/Token").
		Signature("Lpkg/Token<Ljava/util/Map<Ljava/lang/String;Ljava/util/List<Ljava/lang/Integer;>;>;>;")

	shape := cf.NewBuilder("pkg/Shape").Access(pub|cf.AccAbstract|cf.AccSuper).
		PermittedSubclasses("pkg/Circle", "pkg/Square")
	circle := cf.NewBuilder("pkg/Circle").Access(pub|cf.AccFinal|cf.AccSuper).Super("pkg/Shape")
	square := cf.NewBuilder("pkg/Square").Access(pub|cf.AccFinal|cf.AccSuper).Super("pkg/Shape")

	kotlinBox := cf.NewBuilder("pkg/KotlinBox").Access(pub|cf.AccFinal|cf.AccSuper).
		Signature("<T:Ljava/lang/Object;>Ljava/lang/Object;").
		Annotation("Lkotlin/Metadata;")
	kotlinBox.Method(pub|cf.AccFinal, "get", "()Ljava/lang/Object;").Signature("()TT;")
	kotlinBox.Method(pub|cf.AccFinal, "count", "(Ljava/util/List;)I").
		Signature("(Ljava/util/List<*>;)I").Parameter("items", 0)

	broken := cf.NewBuilder("pkg/Broken")
	broken.Field(pub, "items", "Ljava/util/List;").Signature("Ljava/util/List<")
	brokenHolder := cf.NewBuilder("pkg/BrokenHolder")
	brokenHolder.Field(pub, "broken", "Lpkg/Broken;")
	brokenHolder.Field(pub, "bounded", "Ljava/util/List;").Signature("Ljava/util/List<+Lpkg/Broken;>;")

	return []*cf.Builder{testType, variables, outer, inner, stringBox, token, mapToken, shape, circle, square, kotlinBox, broken, brokenHolder}
}

func newTestResolver(t *testing.T, opts ...Option) *Resolver {
	t.Helper()
	user := classpath.NewMemoryLoader("test")
	for _, b := range fixtures() {
		if _, err := user.AddBuilder(b); err != nil {
			t.Fatalf("Failed to add fixture: %v", err)
		}
	}
	return NewResolver(classpath.NewPath(classpath.Bootstrap(), user), opts...)
}

func mustResolve(t *testing.T, r *Resolver, expr string) Type {
	t.Helper()
	typ, err := r.ResolveExpression(expr)
	if err != nil {
		t.Fatalf("Failed to resolve %s: %v", expr, err)
	}
	return typ
}

func mustClass(t *testing.T, typ Type) *ClassType {
	t.Helper()
	ct, ok := typ.(*ClassType)
	if !ok {
		t.Fatalf("Expected *ClassType, got %T", typ)
	}
	return ct
}

func findMethod(t *testing.T, typ Type, name string) *Method {
	t.Helper()
	for _, m := range typ.Methods() {
		if m.Name() == name {
			return m
		}
	}
	t.Fatalf("%s has no method %s", typ.Description(), name)
	return nil
}

func hasMethod(typ Type, name string) bool {
	for _, m := range typ.Methods() {
		if m.Name() == name {
			return true
		}
	}
	return false
}

func ref(name string) java.Type {
	return java.ClassRef{Name: name}
}
