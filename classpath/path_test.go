package classpath

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dhamidi/jtype/classfile"
)

func encode(t *testing.T, b *classfile.Builder) []byte {
	t.Helper()
	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("Failed to encode class: %v", err)
	}
	return data
}

func writeClass(t *testing.T, root, internal string, data []byte) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(internal)+".class")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write class: %v", err)
	}
	return path
}

func writeJar(t *testing.T, path string, classes map[string][]byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create jar: %v", err)
	}
	defer f.Close()
	zw := zip.NewWriter(f)
	for internal, data := range classes {
		w, err := zw.Create(internal + ".class")
		if err != nil {
			t.Fatalf("Failed to add jar entry: %v", err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("Failed to write jar entry: %v", err)
		}
	}
	if _, err := zw.Create("META-INF/MANIFEST.MF"); err != nil {
		t.Fatalf("Failed to add manifest: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close jar: %v", err)
	}
}

func TestDirLoader(t *testing.T) {
	root := t.TempDir()
	writeClass(t, root, "pkg/Foo", encode(t, classfile.NewBuilder("pkg/Foo")))
	writeClass(t, root, "pkg/Foo$Bar", encode(t, classfile.NewBuilder("pkg/Foo$Bar")))
	writeClass(t, root, "pkg/package-info", encode(t, classfile.NewBuilder("pkg/package-info")))

	d := NewDirLoader(root)

	t.Run("load", func(t *testing.T) {
		cf, err := d.Load("pkg.Foo$Bar")
		if err != nil {
			t.Fatalf("Failed to load class: %v", err)
		}
		if got := cf.ClassName(); got != "pkg/Foo$Bar" {
			t.Errorf("ClassName() = %q, want %q", got, "pkg/Foo$Bar")
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := d.Load("pkg.Missing")
		var notFound *ClassNotFoundError
		if !errors.As(err, &notFound) || notFound.Name != "pkg.Missing" {
			t.Errorf("Load() error = %v, want ClassNotFoundError", err)
		}
		if !errors.Is(err, ErrClassNotFound) {
			t.Error("Expected errors.Is(err, ErrClassNotFound)")
		}
	})

	t.Run("classes", func(t *testing.T) {
		names, err := d.Classes()
		if err != nil {
			t.Fatalf("Failed to list classes: %v", err)
		}
		if len(names) != 2 || names[0] != "pkg.Foo" || names[1] != "pkg.Foo$Bar" {
			t.Errorf("Classes() = %v", names)
		}
	})

	t.Run("class name", func(t *testing.T) {
		if name, ok := d.ClassName(filepath.Join(root, "pkg", "Foo.class")); !ok || name != "pkg.Foo" {
			t.Errorf("ClassName() = %q, %v", name, ok)
		}
		if _, ok := d.ClassName(filepath.Join(filepath.Dir(root), "Other.class")); ok {
			t.Error("Expected a path outside the root to be rejected")
		}
	})
}

func TestJarLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.jar")
	writeJar(t, path, map[string][]byte{
		"lib/A": encode(t, classfile.NewBuilder("lib/A")),
		"lib/B": encode(t, classfile.NewBuilder("lib/B")),
	})

	j := NewJarLoader(path)
	defer j.Close()

	names, err := j.Classes()
	if err != nil {
		t.Fatalf("Failed to list classes: %v", err)
	}
	if len(names) != 2 || names[0] != "lib.A" {
		t.Errorf("Classes() = %v", names)
	}

	cf, err := j.Load("lib.B")
	if err != nil {
		t.Fatalf("Failed to load class: %v", err)
	}
	if got := cf.ClassName(); got != "lib/B" {
		t.Errorf("ClassName() = %q, want %q", got, "lib/B")
	}
	if _, err := j.Load("lib.C"); !errors.Is(err, ErrClassNotFound) {
		t.Errorf("Load(lib.C) error = %v, want ErrClassNotFound", err)
	}
}

func TestJarLoaderConcurrentReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.jar")
	writeJar(t, path, map[string][]byte{
		"lib/A": encode(t, classfile.NewBuilder("lib/A")),
	})
	j := NewJarLoader(path)
	defer j.Close()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 20 {
				if _, err := j.Load("lib.A"); err != nil {
					t.Errorf("Load() error = %v", err)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for range 20 {
				if err := j.Reset(); err != nil {
					t.Errorf("Reset() error = %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestPath(t *testing.T) {
	first := NewMemoryLoader("first")
	first.MustAdd(classfile.NewBuilder("pkg/Shared").Access(classfile.AccPublic | classfile.AccFinal))
	second := NewMemoryLoader("second")
	second.MustAdd(classfile.NewBuilder("pkg/Shared"), classfile.NewBuilder("pkg/Only"))

	p := NewPath(first, second)

	t.Run("first loader wins", func(t *testing.T) {
		c, err := p.Load("pkg.Shared")
		if err != nil {
			t.Fatalf("Failed to load class: %v", err)
		}
		if !c.IsFinal() {
			t.Error("Expected the declaration from the first loader")
		}
	})

	t.Run("cached", func(t *testing.T) {
		a, _ := p.Load("pkg.Only")
		b, _ := p.Load("pkg.Only")
		if a == nil || a != b {
			t.Error("Expected the same declaration on repeated loads")
		}
		p.Invalidate("pkg.Only")
		c, _ := p.Load("pkg.Only")
		if c == a {
			t.Error("Expected a fresh declaration after Invalidate")
		}
	})

	t.Run("primitive", func(t *testing.T) {
		c, err := p.Load("long")
		if err != nil || !c.IsPrimitive() {
			t.Errorf("Load(long) = %v, %v", c, err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := p.Load("pkg.Nope"); !errors.Is(err, ErrClassNotFound) {
			t.Errorf("Load() error = %v, want ErrClassNotFound", err)
		}
	})

	t.Run("classes", func(t *testing.T) {
		names, err := p.Classes()
		if err != nil {
			t.Fatalf("Failed to list classes: %v", err)
		}
		if len(names) != 2 {
			t.Errorf("Classes() = %v, want 2 distinct names", names)
		}
	})
}

func TestParseList(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "x.jar")
	writeJar(t, jar, nil)

	p := Parse(dir + string(os.PathListSeparator) + jar)
	loaders := p.Loaders()
	if len(loaders) != 2 {
		t.Fatalf("Expected 2 loaders, got %d", len(loaders))
	}
	if _, ok := loaders[0].(*DirLoader); !ok {
		t.Errorf("loaders[0] = %T, want *DirLoader", loaders[0])
	}
	if _, ok := loaders[1].(*JarLoader); !ok {
		t.Errorf("loaders[1] = %T, want *JarLoader", loaders[1])
	}

	jars, err := Jars(dir)
	if err != nil || len(jars) != 1 || jars[0] != jar {
		t.Errorf("Jars() = %v, %v", jars, err)
	}
	p.Close()
}

func TestBootstrap(t *testing.T) {
	p := NewPath(Bootstrap())
	for _, name := range []string{"java.lang.Object", "java.lang.String", "java.util.Map$Entry", "java.util.function.Function"} {
		t.Run(name, func(t *testing.T) {
			c, err := p.Load(name)
			if err != nil {
				t.Fatalf("Failed to load %s: %v", name, err)
			}
			if c.SignatureError() != nil {
				t.Errorf("SignatureError() = %v", c.SignatureError())
			}
		})
	}

	m, err := p.Load("java.util.Map")
	if err != nil {
		t.Fatalf("Failed to load java.util.Map: %v", err)
	}
	if n := len(m.TypeParameters()); n != 2 {
		t.Errorf("len(TypeParameters()) = %d, want 2", n)
	}
	entry, _ := p.Load("java.util.Map$Entry")
	if !entry.IsStatic() || entry.SimpleName() != "Entry" {
		t.Error("Expected Map.Entry to be a static member named Entry")
	}
}
