package export

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores formats by name.
type Registry struct {
	mu      sync.RWMutex
	formats map[string]Format
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{formats: make(map[string]Format)}
}

// DefaultRegistry returns a registry holding the csv and json formats.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(CSV{})
	r.MustRegister(JSON{})
	return r
}

// Register adds a format by its Name(). Duplicate names return an error.
func (r *Registry) Register(format Format) error {
	if format == nil {
		return fmt.Errorf("export: format is required")
	}
	name := format.Name()
	if name == "" {
		return fmt.Errorf("export: format name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formats[name]; exists {
		return fmt.Errorf("export: format %q already registered", name)
	}
	r.formats[name] = format
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(format Format) {
	if err := r.Register(format); err != nil {
		panic(err)
	}
}

// Get retrieves a format by name.
func (r *Registry) Get(name string) (Format, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	format, ok := r.formats[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return format, nil
}

// List returns the sorted format names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a format is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.formats[name]
	return ok
}
