package classfile

import (
	"errors"
	"testing"
)

func TestParseFieldSignature(t *testing.T) {
	tests := []struct {
		sig  string
		want string
	}{
		{"I", "I"},
		{"Ljava/lang/String;", "Ljava/lang/String;"},
		{"[[J", "[[J"},
		{"TT;", "TT;"},
		{"Ljava/util/Map<Ljava/lang/String;+Ljava/lang/Number;>;", "Ljava/util/Map<Ljava/lang/String;+Ljava/lang/Number;>;"},
		{"Ljava/util/List<*>;", "Ljava/util/List<*>;"},
		{"Lpkg/Outer<TT;>.Inner<-Ljava/lang/Integer;>;", "Lpkg/Outer<TT;>.Inner<-Ljava/lang/Integer;>;"},
		{"[Ljava/util/List<TE;>;", "[Ljava/util/List<TE;>;"},
	}

	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			got, err := ParseFieldSignature(tt.sig)
			if err != nil {
				t.Fatalf("Failed to parse signature: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("String() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestClassTypeSignatureNames(t *testing.T) {
	sig, err := ParseFieldSignature("Lpkg/Outer<TT;>.Middle.Inner;")
	if err != nil {
		t.Fatalf("Failed to parse signature: %v", err)
	}
	ct := sig.(*ClassTypeSignature)
	if got := ct.InternalName(); got != "pkg/Outer$Middle$Inner" {
		t.Errorf("InternalName() = %q, want %q", got, "pkg/Outer$Middle$Inner")
	}
	if got := ct.OwnerName(); got != "pkg/Outer$Middle" {
		t.Errorf("OwnerName() = %q, want %q", got, "pkg/Outer$Middle")
	}
	if len(ct.Segments[0].Arguments) != 1 {
		t.Errorf("Expected owner segment to keep its argument")
	}
}

func TestParseClassSignature(t *testing.T) {
	sig, err := ParseClassSignature("<K:Ljava/lang/Object;V::Ljava/lang/Comparable<TV;>;>Ljava/util/AbstractMap<TK;TV;>;Ljava/util/Map<TK;TV;>;")
	if err != nil {
		t.Fatalf("Failed to parse class signature: %v", err)
	}

	if len(sig.TypeParameters) != 2 {
		t.Fatalf("Expected 2 type parameters, got %d", len(sig.TypeParameters))
	}
	if sig.TypeParameters[0].Name != "K" || sig.TypeParameters[1].Name != "V" {
		t.Errorf("type parameter names = %q, %q", sig.TypeParameters[0].Name, sig.TypeParameters[1].Name)
	}
	if sig.TypeParameters[1].ClassBound != nil || len(sig.TypeParameters[1].InterfaceBounds) != 1 {
		t.Errorf("V bounds = %v / %v", sig.TypeParameters[1].ClassBound, sig.TypeParameters[1].InterfaceBounds)
	}
	if got := sig.SuperClass.InternalName(); got != "java/util/AbstractMap" {
		t.Errorf("SuperClass = %q, want %q", got, "java/util/AbstractMap")
	}
	if len(sig.Interfaces) != 1 || sig.Interfaces[0].InternalName() != "java/util/Map" {
		t.Errorf("Interfaces = %v", sig.Interfaces)
	}
}

func TestParseMethodSignature(t *testing.T) {
	t.Run("generic method", func(t *testing.T) {
		sig, err := ParseMethodSignature("<R:Ljava/lang/Object;>(Ljava/util/function/Function<-TT;+TR;>;[I)Ljava/util/List<TR;>;^Ljava/io/IOException;^TX;")
		if err != nil {
			t.Fatalf("Failed to parse method signature: %v", err)
		}
		if len(sig.TypeParameters) != 1 || len(sig.Parameters) != 2 || len(sig.Throws) != 2 {
			t.Errorf("unexpected shape: %+v", sig)
		}
		if got := sig.Result.String(); got != "Ljava/util/List<TR;>;" {
			t.Errorf("Result = %q", got)
		}
	})

	t.Run("descriptor", func(t *testing.T) {
		sig, err := ParseMethodSignature("(IDLjava/lang/Thread;)V")
		if err != nil {
			t.Fatalf("Failed to parse descriptor: %v", err)
		}
		if sig.Result != BaseType('V') {
			t.Errorf("Result = %v, want V", sig.Result)
		}
		if got := sig.String(); got != "(IDLjava/lang/Thread;)V" {
			t.Errorf("String() = %q", got)
		}
	})
}

func TestSignatureErrors(t *testing.T) {
	for _, s := range []string{"", "Q", "Ljava/lang/String", "Ljava/util/List<>;", "TT", "V", "Ljava/lang/String;X", "[", "(I"} {
		t.Run(s, func(t *testing.T) {
			_, err := ParseFieldSignature(s)
			if s == "(I" {
				_, err = ParseMethodSignature(s)
			}
			var sigErr *SignatureError
			if !errors.As(err, &sigErr) {
				t.Errorf("Expected SignatureError for %q, got %v", s, err)
			}
		})
	}
}
