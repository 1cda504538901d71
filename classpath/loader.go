// Package classpath locates and parses class files by binary name.
package classpath

import (
	"errors"
	"strings"

	"github.com/dhamidi/jtype/classfile"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("jtype.classpath")

var ErrClassNotFound = errors.New("class not found")

type ClassNotFoundError struct {
	Name string
}

func (e *ClassNotFoundError) Error() string {
	return "class not found: " + e.Name
}

func (e *ClassNotFoundError) Is(target error) bool {
	return target == ErrClassNotFound
}

// Loader reads class files from one classpath entry. Names are binary
// names such as "java.util.Map$Entry".
type Loader interface {
	// Load returns a *ClassNotFoundError when the entry has no such class.
	Load(name string) (*classfile.ClassFile, error)
	// Classes lists the binary names of all classes in the entry.
	Classes() ([]string, error)
	String() string
}

func classFileName(name string) string {
	return classfile.SourceToInternalName(name) + ".class"
}

// binaryName converts a slash-separated path inside a classpath entry to a
// binary class name, reporting false for non-class and module files.
func binaryName(path string) (string, bool) {
	if !strings.HasSuffix(path, ".class") {
		return "", false
	}
	internal := strings.TrimSuffix(path, ".class")
	base := internal[strings.LastIndexByte(internal, '/')+1:]
	if base == "module-info" || base == "package-info" {
		return "", false
	}
	return classfile.InternalToSourceName(internal), true
}
