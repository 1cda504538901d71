package java

import (
	"errors"
	"testing"
)

func TestParseFieldType(t *testing.T) {
	tests := []struct {
		sig  string
		want string
	}{
		{"I", "int"},
		{"[I", "int[]"},
		{"[[Ljava/lang/String;", "java.lang.String[][]"},
		{"Ljava/util/Map<Ljava/lang/String;+Ljava/lang/Number;>;", "java.util.Map<java.lang.String, ? extends java.lang.Number>"},
		{"Ljava/util/List<*>;", "java.util.List<?>"},
		{"Ljava/util/List<-Ljava/lang/Integer;>;", "java.util.List<? super java.lang.Integer>"},
		{"[TT;", "T[]"},
		{"[Ljava/util/List<TE;>;", "java.util.List<E>[]"},
		{"Lpkg/Outer<TT;>.Inner;", "pkg.Outer<T>$Inner"},
		{"Lpkg/Outer$Nested;", "pkg.Outer$Nested"},
	}

	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			if got := ParseFieldType(tt.sig).String(); got != tt.want {
				t.Errorf("ParseFieldType(%q) = %q, want %q", tt.sig, got, tt.want)
			}
		})
	}

	t.Run("shapes", func(t *testing.T) {
		if _, ok := ParseFieldType("[TT;").(*GenericArrayType); !ok {
			t.Error("Expected T[] to be a GenericArrayType")
		}
		if ref, ok := ParseFieldType("[I").(ClassRef); !ok || !ref.IsArray() || ref.Component().Name != "int" {
			t.Error("Expected int[] to be an array ClassRef")
		}
		inner, ok := ParseFieldType("Lpkg/Outer<TT;>.Inner;").(*ParameterizedType)
		if !ok || inner.Raw != "pkg.Outer$Inner" || inner.Owner == nil || len(inner.Args) != 0 {
			t.Errorf("Expected parameterized inner type, got %#v", inner)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		u, ok := ParseFieldType("Ljava/util/List<").(*UnknownType)
		if !ok {
			t.Fatal("Expected *UnknownType for malformed signature")
		}
		if u.Raw != "Ljava/util/List<" || u.Err == nil {
			t.Errorf("UnknownType = %+v", u)
		}
	})
}

func TestFreeVariables(t *testing.T) {
	typ := ParseFieldType("Ljava/util/Map<TK;Ljava/util/List<+TV;>;>;")
	vars := FreeVariables(typ)
	if len(vars) != 2 || vars[0].String() != "K" || vars[1].String() != "V" {
		t.Errorf("FreeVariables() = %v, want [K V]", vars)
	}
	if got := FreeVariables(ClassRef{Name: "int"}); len(got) != 0 {
		t.Errorf("FreeVariables(int) = %v, want none", got)
	}
}

func TestTypeVariableName(t *testing.T) {
	a, b := NewTypeVariableName("T"), NewTypeVariableName("T")
	if a != b {
		t.Error("Expected equal names to compare equal")
	}
	if a == NewTypeVariableName("U") {
		t.Error("Expected different names to differ")
	}
	m := map[TypeVariableName]int{a: 1}
	if m[b] != 1 {
		t.Error("Expected names to work as map keys")
	}
	if got := (TypeVariableName{}).String(); got != "" {
		t.Errorf("zero String() = %q, want empty", got)
	}
}

func TestParseTypeExpression(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"int", "int"},
		{"String", "java.lang.String"},
		{"java.util.List<String>", "java.util.List<java.lang.String>"},
		{"java.util.Map<String, java.util.List<Integer>>[]", "java.util.Map<java.lang.String, java.util.List<java.lang.Integer>>[]"},
		{"java.util.List<?>", "java.util.List<?>"},
		{"java.util.List<? extends Number>", "java.util.List<? extends java.lang.Number>"},
		{"java.util.List<? super Integer>", "java.util.List<? super java.lang.Integer>"},
		{"int[][]", "int[][]"},
		{"java.util.Map$Entry<String, Integer>", "java.util.Map$Entry<java.lang.String, java.lang.Integer>"},
		{"pkg.Outer<String>.Inner", "pkg.Outer<java.lang.String>$Inner"},
		{" java.util.List < String > ", "java.util.List<java.lang.String>"},
		{"pkg.A", "pkg.A"},
		{"java.util.Map<K, V>", "java.util.Map<java.lang.K, java.lang.V>"},
		{"java.util.List<? extends pkg.A>", "java.util.List<? extends pkg.A>"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseTypeExpression(tt.expr)
			if err != nil {
				t.Fatalf("Failed to parse type expression: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseTypeExpression(%q) = %q, want %q", tt.expr, got.String(), tt.want)
			}
		})
	}

	for _, expr := range []string{"", "java.util.List<", "int<String>", "List<>", "Map<String,>", "?", "String]", "a-b"} {
		t.Run("invalid "+expr, func(t *testing.T) {
			_, err := ParseTypeExpression(expr)
			var exprErr *TypeExpressionError
			if !errors.As(err, &exprErr) {
				t.Errorf("ParseTypeExpression(%q) error = %v, want *TypeExpressionError", expr, err)
			}
		})
	}
}
