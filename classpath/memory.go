package classpath

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dhamidi/jtype/classfile"
)

// MemoryLoader serves class files held in memory.
type MemoryLoader struct {
	name string

	mu      sync.RWMutex
	classes map[string][]byte
}

func NewMemoryLoader(name string) *MemoryLoader {
	return &MemoryLoader{name: name, classes: make(map[string][]byte)}
}

// Add parses data to learn the class name and stores it.
func (m *MemoryLoader) Add(data []byte) (string, error) {
	cf, err := classfile.ParseBytes(data)
	if err != nil {
		return "", err
	}
	name := classfile.InternalToSourceName(cf.ClassName())
	m.mu.Lock()
	m.classes[name] = data
	m.mu.Unlock()
	return name, nil
}

// AddBuilder encodes b and stores the result.
func (m *MemoryLoader) AddBuilder(b *classfile.Builder) (string, error) {
	data, err := b.Bytes()
	if err != nil {
		return "", err
	}
	return m.Add(data)
}

// MustAdd is like AddBuilder but panics on error.
func (m *MemoryLoader) MustAdd(builders ...*classfile.Builder) *MemoryLoader {
	for _, b := range builders {
		if _, err := m.AddBuilder(b); err != nil {
			panic(fmt.Sprintf("classpath: %v", err))
		}
	}
	return m
}

func (m *MemoryLoader) Remove(name string) {
	m.mu.Lock()
	delete(m.classes, name)
	m.mu.Unlock()
}

func (m *MemoryLoader) Load(name string) (*classfile.ClassFile, error) {
	m.mu.RLock()
	data, ok := m.classes[name]
	m.mu.RUnlock()
	if !ok {
		return nil, &ClassNotFoundError{Name: name}
	}
	return classfile.ParseBytes(data)
}

func (m *MemoryLoader) Classes() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.classes))
	for name := range m.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *MemoryLoader) String() string {
	return m.name
}

var _ Loader = (*MemoryLoader)(nil)
