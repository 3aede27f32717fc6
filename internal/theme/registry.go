package theme

import (
	"fmt"
	"maps"
	"slices"
	"sync/atomic"
)

// DefaultThemeName is the theme used when no theme is configured or the
// configured one is missing.
const DefaultThemeName = "galaxy"

// Registry is an immutable, ordered set of resolved themes keyed by name.
type Registry struct {
	names  []string
	themes map[string]*Resolved
}

// NewRegistry builds a registry from themes. Later themes replace earlier
// ones with the same name but keep the earlier position.
func NewRegistry(themes ...*Resolved) *Registry {
	r := &Registry{themes: make(map[string]*Resolved, len(themes))}
	r.put(themes)
	return r
}

// With returns a new registry holding r's themes overlaid with themes.
// r is left untouched.
func (r *Registry) With(themes ...*Resolved) *Registry {
	next := &Registry{themes: make(map[string]*Resolved, r.Len()+len(themes))}
	if r != nil {
		next.names = slices.Clone(r.names)
		maps.Copy(next.themes, r.themes)
	}
	next.put(themes)
	return next
}

func (r *Registry) put(themes []*Resolved) {
	for _, t := range themes {
		if t == nil {
			continue
		}
		if _, exists := r.themes[t.Name]; !exists {
			r.names = append(r.names, t.Name)
		}
		r.themes[t.Name] = t
	}
}

// Get returns the theme called name.
func (r *Registry) Get(name string) (*Resolved, bool) {
	if r == nil {
		return nil, false
	}
	t, ok := r.themes[name]
	return t, ok
}

// Lookup is like Get but returns ErrThemeNotFound for unknown names.
func (r *Registry) Lookup(name string) (*Resolved, error) {
	if t, ok := r.Get(name); ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
}

// Fallback returns the theme called name, or the default theme when name is
// unknown. The boolean is false when the fallback was used.
func (r *Registry) Fallback(name string) (*Resolved, bool) {
	if t, ok := r.Get(name); ok {
		return t, true
	}
	t, _ := r.Get(DefaultThemeName)
	return t, false
}

// Names returns the theme names in registry order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.names)
}

// Themes returns the themes in registry order.
func (r *Registry) Themes() []*Resolved {
	if r == nil {
		return nil
	}
	out := make([]*Resolved, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.themes[name])
	}
	return out
}

// Len returns the number of themes.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Store publishes the active registry. Readers always observe a complete
// registry: replacements happen with a single pointer swap.
type Store struct {
	current atomic.Pointer[Registry]
}

// NewStore creates a store publishing r.
func NewStore(r *Registry) *Store {
	s := &Store{}
	s.current.Store(r)
	return s
}

// Load returns the active registry.
func (s *Store) Load() *Registry {
	return s.current.Load()
}

// Swap publishes r and returns the previously active registry.
func (s *Store) Swap(r *Registry) *Registry {
	return s.current.Swap(r)
}

// Lookup finds a theme in the active registry.
func (s *Store) Lookup(name string) (*Resolved, error) {
	return s.Load().Lookup(name)
}
