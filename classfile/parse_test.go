package classfile

import (
	"bytes"
	"testing"
)

func buildTestClass(t *testing.T) *ClassFile {
	t.Helper()
	b := NewBuilder("pkg/Outer$TestClass").
		Interfaces("java/lang/Runnable").
		Signature("<T:Ljava/lang/Object;>Ljava/lang/Object;Ljava/lang/Runnable;").
		InnerClass("pkg/Outer$TestClass", "pkg/Outer", "TestClass", AccPublic).
		Annotation("Lkotlin/Metadata;").
		PermittedSubclasses("pkg/Outer$Sub")

	b.Field(AccPublic|AccStatic|AccFinal, "CONSTANT_VALUE", "I")
	b.Field(AccPrivate, "items", "Ljava/util/List;").Signature("Ljava/util/List<TT;>;")
	b.Method(AccPublic, "<init>", "(Lpkg/Outer;Ljava/lang/String;)V").
		Parameter("this$0", AccFinal|AccMandated).
		Parameter("name", 0)
	b.Method(AccPublic|AccStatic, "add", "(JLjava/lang/String;)V").LocalVariables("count", "label")
	b.Method(AccPublic|AccBridge|AccSynthetic, "run", "()V")

	cf, err := b.Build()
	if err != nil {
		t.Fatalf("Failed to build class file: %v", err)
	}
	return cf
}

func TestParseClassFile(t *testing.T) {
	cf := buildTestClass(t)

	t.Run("class name", func(t *testing.T) {
		expected := "pkg/Outer$TestClass"
		if got := cf.ClassName(); got != expected {
			t.Errorf("ClassName() = %q, want %q", got, expected)
		}
	})

	t.Run("super class", func(t *testing.T) {
		expected := "java/lang/Object"
		if got := cf.SuperClassName(); got != expected {
			t.Errorf("SuperClassName() = %q, want %q", got, expected)
		}
	})

	t.Run("interfaces", func(t *testing.T) {
		interfaces := cf.InterfaceNames()
		if len(interfaces) != 1 {
			t.Fatalf("Expected 1 interface, got %d", len(interfaces))
		}
		if interfaces[0] != "java/lang/Runnable" {
			t.Errorf("Interface[0] = %q, want %q", interfaces[0], "java/lang/Runnable")
		}
	})

	t.Run("signature", func(t *testing.T) {
		expected := "<T:Ljava/lang/Object;>Ljava/lang/Object;Ljava/lang/Runnable;"
		if got := cf.Signature(); got != expected {
			t.Errorf("Signature() = %q, want %q", got, expected)
		}
	})

	t.Run("inner class entry", func(t *testing.T) {
		e, ok := cf.InnerClassEntry()
		if !ok {
			t.Fatal("Expected an InnerClasses entry for the class itself")
		}
		if got := cf.ConstantPool.GetUtf8(e.InnerNameIndex); got != "TestClass" {
			t.Errorf("inner name = %q, want %q", got, "TestClass")
		}
		if got := cf.OuterClassName(); got != "pkg/Outer" {
			t.Errorf("OuterClassName() = %q, want %q", got, "pkg/Outer")
		}
	})

	t.Run("annotations and permitted subclasses", func(t *testing.T) {
		if got := cf.AnnotationTypes(); len(got) != 1 || got[0] != "Lkotlin/Metadata;" {
			t.Errorf("AnnotationTypes() = %v", got)
		}
		if got := cf.PermittedSubclassNames(); len(got) != 1 || got[0] != "pkg/Outer$Sub" {
			t.Errorf("PermittedSubclassNames() = %v", got)
		}
	})

	t.Run("fields", func(t *testing.T) {
		if len(cf.Fields) != 2 {
			t.Fatalf("Expected 2 fields, got %d", len(cf.Fields))
		}
		constant := cf.GetField("CONSTANT_VALUE")
		if constant == nil {
			t.Fatal("Expected to find CONSTANT_VALUE field")
		}
		if !constant.AccessFlags.IsPublic() || !constant.AccessFlags.IsStatic() || !constant.AccessFlags.IsFinal() {
			t.Error("CONSTANT_VALUE should be public static final")
		}
		if got := constant.Signature(cf.ConstantPool); got != "I" {
			t.Errorf("CONSTANT_VALUE signature = %q, want %q", got, "I")
		}

		items := cf.GetField("items")
		if got := items.Signature(cf.ConstantPool); got != "Ljava/util/List<TT;>;" {
			t.Errorf("items signature = %q, want %q", got, "Ljava/util/List<TT;>;")
		}
	})

	t.Run("method parameters", func(t *testing.T) {
		ctor := cf.GetMethod("<init>", "")
		if ctor == nil {
			t.Fatal("Expected to find constructor")
		}
		if !ctor.IsConstructor(cf.ConstantPool) {
			t.Error("Expected IsConstructor() to be true")
		}
		params := ctor.MethodParameters(cf.ConstantPool)
		if len(params) != 2 {
			t.Fatalf("Expected 2 method parameters, got %d", len(params))
		}
		if !params[0].AccessFlags.Has(AccMandated) {
			t.Error("Expected first parameter to be mandated")
		}
		if got := cf.ConstantPool.GetUtf8(params[1].NameIndex); got != "name" {
			t.Errorf("parameter name = %q, want %q", got, "name")
		}
	})

	t.Run("local variable names", func(t *testing.T) {
		add := cf.GetMethod("add", "(JLjava/lang/String;)V")
		if add == nil {
			t.Fatal("Expected to find add method")
		}
		names := add.LocalVariableNames(cf.ConstantPool)
		// static method, long takes slots 0 and 1
		if names[0] != "count" || names[2] != "label" {
			t.Errorf("LocalVariableNames() = %v", names)
		}
	})

	t.Run("synthetic", func(t *testing.T) {
		run := cf.GetMethod("run", "()V")
		if run == nil {
			t.Fatal("Expected to find run method")
		}
		if !run.IsSynthetic(cf.ConstantPool) || !run.AccessFlags.Has(AccBridge) {
			t.Error("Expected run to be a synthetic bridge")
		}
	})
}

func TestParseErrors(t *testing.T) {
	t.Run("bad magic", func(t *testing.T) {
		if _, err := ParseBytes([]byte{0xCA, 0xFE, 0xBA, 0xBF, 0, 0, 0, 61}); err == nil {
			t.Error("Expected error for invalid magic")
		}
	})

	t.Run("truncated", func(t *testing.T) {
		data, err := NewBuilder("pkg/A").Bytes()
		if err != nil {
			t.Fatalf("Failed to encode class: %v", err)
		}
		if _, err := Parse(bytes.NewReader(data[:len(data)-3])); err == nil {
			t.Error("Expected error for truncated class file")
		}
	})
}

func TestModifiedUtf8(t *testing.T) {
	for _, s := range []string{"plain", "café", "中文", "nul\x00byte", "emoji\U0001F600"} {
		t.Run(s, func(t *testing.T) {
			if got := decodeModifiedUtf8(encodeModifiedUtf8(s)); got != s {
				t.Errorf("round trip = %q, want %q", got, s)
			}
		})
	}
}

func TestAccessFlags(t *testing.T) {
	tests := []struct {
		flags AccessFlags
		mask  AccessFlags
		want  bool
	}{
		{AccPublic | AccStatic, AccStatic, true},
		{AccPublic | AccStatic, AccPublic | AccStatic, true},
		{AccPublic, AccPublic | AccFinal, false},
		{AccSuper, AccSynchronized, true},
		{AccPrivate, AccPublic, false},
	}
	for _, tt := range tests {
		if got := tt.flags.Has(tt.mask); got != tt.want {
			t.Errorf("%#04x.Has(%#04x) = %v, want %v", uint16(tt.flags), uint16(tt.mask), got, tt.want)
		}
	}
}
