package classpath

import (
	"archive/zip"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/jtype/classfile"
)

// JarLoader reads classes from a jar. The archive is opened and indexed on
// first use and kept open until Close or Reset. Reads hold mu shared, so
// Reset waits for them before closing the archive.
type JarLoader struct {
	Path string

	mu     sync.RWMutex
	reader *zip.ReadCloser
	index  map[string]*zip.File
}

func NewJarLoader(path string) *JarLoader {
	return &JarLoader{Path: path}
}

// rlock returns with mu read-locked and the archive open.
func (j *JarLoader) rlock() error {
	for {
		j.mu.RLock()
		if j.index != nil {
			return nil
		}
		j.mu.RUnlock()
		if err := j.open(); err != nil {
			return err
		}
	}
}

func (j *JarLoader) open() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.index != nil {
		return nil
	}

	r, err := zip.OpenReader(j.Path)
	if err != nil {
		return fmt.Errorf("open jar %s: %w", j.Path, err)
	}
	index := make(map[string]*zip.File)
	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "META-INF/") {
			continue
		}
		if name, ok := binaryName(f.Name); ok {
			index[name] = f
		}
	}
	log.Infof("indexed %d classes from %s", len(index), j.Path)
	j.reader, j.index = r, index
	return nil
}

func (j *JarLoader) Load(name string) (*classfile.ClassFile, error) {
	if err := j.rlock(); err != nil {
		return nil, err
	}
	defer j.mu.RUnlock()

	f, ok := j.index[name]
	if !ok {
		return nil, &ClassNotFoundError{Name: name}
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s in %s: %w", f.Name, j.Path, err)
	}
	defer rc.Close()
	cf, err := classfile.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("%s in %s: %w", f.Name, j.Path, err)
	}
	return cf, nil
}

func (j *JarLoader) Classes() ([]string, error) {
	if err := j.rlock(); err != nil {
		return nil, err
	}
	defer j.mu.RUnlock()

	names := make([]string, 0, len(j.index))
	for name := range j.index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Reset drops the index so the jar is reopened on next use.
func (j *JarLoader) Reset() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.closeLocked()
}

func (j *JarLoader) Close() error {
	return j.Reset()
}

func (j *JarLoader) closeLocked() error {
	if j.reader == nil {
		return nil
	}
	err := j.reader.Close()
	j.reader, j.index = nil, nil
	return err
}

func (j *JarLoader) String() string {
	return j.Path
}

var _ Loader = (*JarLoader)(nil)
