// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/huecycle"
)

// DisplayFactory creates a new display with the given options.
// A backend that cannot acquire its drawing surface returns an error
// wrapping huecycle.ErrNoDrawingContext.
type DisplayFactory func(opts Options) (huecycle.Display, error)

// Backend is a registered display backend.
type Backend struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Built-in priorities:
	//   - 50: interactive backends (terminal)
	//   - 30: network backends (browser)
	//   - 10: offscreen backends
	Priority int

	// Factory creates display instances.
	Factory DisplayFactory

	// Available reports if the backend can run on this system.
	// It is checked every time displays are listed or created.
	Available func() bool
}

// Registry holds display backends by name.
//
// Backends register themselves on import:
//
//	func init() {
//	    surface.Register("term", 50, termFactory, termAvailable)
//	}
//
// Displays are then created by name or by priority:
//
//	d, err := surface.Default().NewDisplayByName("term", surface.DefaultOptions(0, 0))
//	d, name, err := surface.Default().NewDisplay(surface.DefaultOptions(320, 200))
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Backend
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Backend)}
}

var defaultRegistry = NewRegistry()

// Default returns the registry that Register and the package-level
// functions use.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a backend to the default registry.
// A nil available means always available. Registering an existing name
// replaces it.
func Register(name string, priority int, factory DisplayFactory, available func() bool) {
	defaultRegistry.Register(name, priority, factory, available)
}

// List returns the names in the default registry, highest priority first.
func List() []string { return defaultRegistry.List() }

// Available returns the available names in the default registry, highest
// priority first.
func Available() []string { return defaultRegistry.Available() }

// Get looks up a backend in the default registry.
func Get(name string) (Backend, bool) { return defaultRegistry.Get(name) }

// Register adds a backend.
func (r *Registry) Register(name string, priority int, factory DisplayFactory, available func() bool) {
	if available == nil {
		available = func() bool { return true }
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[name] = Backend{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Get looks up a backend by name.
func (r *Registry) Get(name string) (Backend, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.backends[name]
	return b, ok
}

// List returns all backend names, highest priority first. Equal priorities
// are ordered by name.
func (r *Registry) List() []string {
	return names(r.sorted(false))
}

// Available returns the names of available backends, highest priority first.
func (r *Registry) Available() []string {
	return names(r.sorted(true))
}

// NewDisplay creates a display from the best available backend. When a
// backend fails to start, the next one is tried. It returns the name of the
// backend that succeeded.
//
// Returns ErrNoBackendAvailable when nothing is available, or the joined
// errors of every backend that failed.
func (r *Registry) NewDisplay(opts Options) (huecycle.Display, string, error) {
	candidates := r.sorted(true)
	if len(candidates) == 0 {
		return nil, "", ErrNoBackendAvailable
	}

	var errs []error
	for _, b := range candidates {
		d, err := b.Factory(opts)
		if err == nil {
			return d, b.Name, nil
		}
		huecycle.Logger().Warn("display backend failed, trying next", "backend", b.Name, "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", b.Name, err))
	}
	return nil, "", errors.Join(errs...)
}

// NewDisplayByName creates a display from the named backend.
func (r *Registry) NewDisplayByName(name string, opts Options) (huecycle.Display, error) {
	b, ok := r.Get(name)
	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !b.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}
	return b.Factory(opts)
}

func (r *Registry) sorted(onlyAvailable bool) []Backend {
	r.mu.RLock()
	list := make([]Backend, 0, len(r.backends))
	for _, b := range r.backends {
		list = append(list, b)
	}
	r.mu.RUnlock()

	if onlyAvailable {
		list = slices.DeleteFunc(list, func(b Backend) bool { return !b.Available() })
	}
	slices.SortFunc(list, func(a, b Backend) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return list
}

func names(list []Backend) []string {
	out := make([]string, len(list))
	for i, b := range list {
		out[i] = b.Name
	}
	return out
}

// ErrNoBackendAvailable is returned when no display backend is registered
// or available on the current system.
var ErrNoBackendAvailable = errors.New("surface: no backend available")

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but cannot run here.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}

func init() {
	Register("image", 10, func(opts Options) (huecycle.Display, error) {
		return NewImageSurface(opts.Width, opts.Height), nil
	}, nil)
}
