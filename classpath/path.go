package classpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/jtype/java"
)

// Path is an ordered list of loaders with a cache of parsed classes. The
// first loader that has a class wins.
type Path struct {
	mu      sync.RWMutex
	loaders []Loader
	classes map[string]*java.Class
}

func NewPath(loaders ...Loader) *Path {
	return &Path{
		loaders: loaders,
		classes: make(map[string]*java.Class),
	}
}

// Entry turns a classpath element into a loader: directories become
// DirLoaders and everything else is treated as a jar.
func Entry(path string) Loader {
	if isDir(path) {
		return NewDirLoader(path)
	}
	return NewJarLoader(path)
}

// Parse builds a Path from a list separated by os.PathListSeparator.
func Parse(list string) *Path {
	p := NewPath()
	for _, e := range filepath.SplitList(list) {
		if e != "" {
			p.Append(Entry(e))
		}
	}
	return p
}

// Jars lists the *.jar files in dir in name order.
func Jars(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read lib directory: %w", err)
	}
	var jars []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".jar") {
			jars = append(jars, filepath.Join(dir, e.Name()))
		}
	}
	return jars, nil
}

func (p *Path) Append(l Loader) {
	p.mu.Lock()
	p.loaders = append(p.loaders, l)
	p.mu.Unlock()
}

func (p *Path) Loaders() []Loader {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]Loader(nil), p.loaders...)
}

// Load returns the declaration of the named class. Primitive names resolve
// to the built-in primitive classes.
func (p *Path) Load(name string) (*java.Class, error) {
	if c := java.Primitive(name); c != nil {
		return c, nil
	}

	p.mu.RLock()
	c, ok := p.classes[name]
	loaders := p.loaders
	p.mu.RUnlock()
	if ok {
		return c, nil
	}

	for _, l := range loaders {
		cf, err := l.Load(name)
		if errors.Is(err, ErrClassNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load %s from %s: %w", name, l, err)
		}
		c = java.NewClass(cf)
		if got := c.Name(); got != name {
			return nil, fmt.Errorf("load %s from %s: file declares %s", name, l, got)
		}
		log.Debugf("loaded %s from %s", name, l)

		p.mu.Lock()
		if existing, ok := p.classes[name]; ok {
			c = existing
		} else {
			p.classes[name] = c
		}
		p.mu.Unlock()
		return c, nil
	}
	return nil, &ClassNotFoundError{Name: name}
}

// Invalidate drops cached declarations so they are reloaded on next use.
// With no names the whole cache is dropped.
func (p *Path) Invalidate(names ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(names) == 0 {
		p.classes = make(map[string]*java.Class)
		return
	}
	for _, n := range names {
		delete(p.classes, n)
	}
}

// Classes lists every class visible on the path, shadowed duplicates
// removed.
func (p *Path) Classes() ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for _, l := range p.Loaders() {
		list, err := l.Classes()
		if err != nil {
			return nil, err
		}
		for _, n := range list {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

// Close closes every loader that holds resources.
func (p *Path) Close() error {
	var errs []error
	for _, l := range p.Loaders() {
		if c, ok := l.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
