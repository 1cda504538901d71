package resolved

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes resolved class types by key. Concurrent requests for the
// same key share one computation. Failed computations are not stored.
type Cache struct {
	group singleflight.Group

	mu    sync.RWMutex
	types map[string]Type
	order []string
}

func NewCache() *Cache {
	return &Cache{types: make(map[string]Type)}
}

func (c *Cache) Get(key string) (Type, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.types[key]
	return t, ok
}

// Do returns the cached type for key or computes it with build. build must
// not request the same key again.
func (c *Cache) Do(key string, build func() (Type, error)) (Type, error) {
	if t, ok := c.Get(key); ok {
		return t, nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		if t, ok := c.Get(key); ok {
			return t, nil
		}
		t, err := build()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.types[key] = t
		c.order = append(c.order, key)
		c.mu.Unlock()
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Type), nil
}

// Types lists the cached types in the order they were first resolved.
func (c *Cache) Types() []Type {
	c.mu.RLock()
	defer c.mu.RUnlock()
	types := make([]Type, len(c.order))
	for i, k := range c.order {
		types[i] = c.types[k]
	}
	return types
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.types)
}

// Purge drops every cached type.
func (c *Cache) Purge() {
	c.mu.Lock()
	c.types = make(map[string]Type)
	c.order = nil
	c.mu.Unlock()
}
