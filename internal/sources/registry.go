package sources

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry = make(map[string]Source)
	mu       sync.RWMutex
)

// Register adds a source to the registry.
func Register(src Source) {
	mu.Lock()
	defer mu.Unlock()
	registry[src.Name()] = src
}

// Get retrieves a source by name.
func Get(name string) (Source, error) {
	mu.RLock()
	defer mu.RUnlock()

	src, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown source: %s", name)
	}
	return src, nil
}

// List returns all registered source names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered sources in name order.
func All() []Source {
	srcs := make([]Source, 0)
	for _, name := range List() {
		mu.RLock()
		srcs = append(srcs, registry[name])
		mu.RUnlock()
	}
	return srcs
}
