package classpath

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhamidi/jtype/classfile"
)

// DirLoader reads classes from a directory laid out by package, such as
// build/classes.
type DirLoader struct {
	Root string
}

func NewDirLoader(root string) *DirLoader {
	return &DirLoader{Root: root}
}

func (d *DirLoader) Load(name string) (*classfile.ClassFile, error) {
	path := filepath.Join(d.Root, filepath.FromSlash(classFileName(name)))
	cf, err := classfile.ParseFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &ClassNotFoundError{Name: name}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cf, nil
}

func (d *DirLoader) Classes() ([]string, error) {
	var names []string
	err := filepath.WalkDir(d.Root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(d.Root, p)
		if err != nil {
			return err
		}
		if name, ok := binaryName(filepath.ToSlash(rel)); ok {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", d.Root, err)
	}
	sort.Strings(names)
	return names, nil
}

// ClassName maps a file below Root to its binary class name.
func (d *DirLoader) ClassName(path string) (string, bool) {
	rel, err := filepath.Rel(d.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return binaryName(filepath.ToSlash(rel))
}

func (d *DirLoader) String() string {
	return d.Root
}

var _ Loader = (*DirLoader)(nil)

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
