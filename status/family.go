package status

import (
	"sort"
	"sync"
)

// Family is a named set of metrics of one type
// Producers look a metric up once and keep the pointer; only lookups take the lock
type Family[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
	keys  []string // Sorted, maintained on insert so Range does not sort per frame
}

// NewFamily creates an empty family
func NewFamily[T any]() *Family[T] {
	return &Family[T]{items: make(map[string]*T)}
}

// Get returns the metric registered under key, creating it on first use
func (f *Family[T]) Get(key string) *T {
	f.mu.RLock()
	ptr, ok := f.items[key]
	f.mu.RUnlock()
	if ok {
		return ptr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if ptr, ok := f.items[key]; ok {
		return ptr
	}
	ptr = new(T)
	f.items[key] = ptr

	i := sort.SearchStrings(f.keys, key)
	f.keys = append(f.keys, "")
	copy(f.keys[i+1:], f.keys[i:])
	f.keys[i] = key
	return ptr
}

// Has reports whether key was registered
func (f *Family[T]) Has(key string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.items[key]
	return ok
}

// Range calls fn for every metric in key order
func (f *Family[T]) Range(fn func(key string, ptr *T)) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, k := range f.keys {
		fn(k, f.items[k])
	}
}

// Count returns the number of registered metrics
func (f *Family[T]) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.keys)
}
