// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/huecycle"
)

func imageFactory(opts Options) (huecycle.Display, error) {
	return NewImageSurface(opts.Width, opts.Height), nil
}

func failingFactory(err error) DisplayFactory {
	return func(Options) (huecycle.Display, error) { return nil, err }
}

func never() bool { return false }

// TestRegistryRegister tests backend registration and replacement.
func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	r.Register("test", 10, imageFactory, nil)
	r.Register("test", 50, imageFactory, nil)

	b, ok := r.Get("test")
	if !ok {
		t.Fatal("registered backend not found")
	}
	if b.Name != "test" || b.Priority != 50 {
		t.Errorf("Get(test) = %s/%d, want test/50", b.Name, b.Priority)
	}
	if !b.Available() {
		t.Error("backend with nil Available func should be available")
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) = ok")
	}
}

// TestRegistryOrdering tests priority order, name tie-breaks and availability.
func TestRegistryOrdering(t *testing.T) {
	r := NewRegistry()
	r.Register("low", 10, imageFactory, nil)
	r.Register("high", 100, imageFactory, nil)
	r.Register("mid-b", 50, imageFactory, nil)
	r.Register("mid-a", 50, imageFactory, nil)
	r.Register("hidden", 200, imageFactory, never)

	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"List", r.List(), []string{"hidden", "high", "mid-a", "mid-b", "low"}},
		{"Available", r.Available(), []string{"high", "mid-a", "mid-b", "low"}},
	}
	for _, tt := range tests {
		if !slices.Equal(tt.got, tt.want) {
			t.Errorf("%s() = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

// TestRegistryNewDisplay tests selection of the best available backend.
func TestRegistryNewDisplay(t *testing.T) {
	r := NewRegistry()
	r.Register("low", 10, failingFactory(errors.New("should not be tried")), nil)
	r.Register("high", 100, imageFactory, nil)
	r.Register("hidden", 200, failingFactory(errors.New("unavailable")), never)

	d, name, err := r.NewDisplay(Options{Width: 100, Height: 40})
	if err != nil {
		t.Fatalf("NewDisplay() = %v", err)
	}
	defer d.Close()

	if name != "high" {
		t.Errorf("backend = %q, want high", name)
	}
	if w, h := d.Size(); w != 100 || h != 40 {
		t.Errorf("Size() = %dx%d, want 100x40", w, h)
	}
}

// TestRegistryNewDisplayFallback tests that a failing backend falls back to the next one.
func TestRegistryNewDisplayFallback(t *testing.T) {
	r := NewRegistry()
	r.Register("broken", 100, failingFactory(huecycle.ErrNoDrawingContext), nil)
	r.Register("image", 10, imageFactory, nil)

	d, name, err := r.NewDisplay(DefaultOptions(20, 10))
	if err != nil {
		t.Fatalf("NewDisplay() = %v", err)
	}
	defer d.Close()

	if name != "image" {
		t.Errorf("backend = %q, want image", name)
	}
	if _, ok := d.(*ImageSurface); !ok {
		t.Errorf("fallback display = %T, want *ImageSurface", d)
	}
}

// TestRegistryNewDisplayAllFail tests that every failure is reported.
func TestRegistryNewDisplayAllFail(t *testing.T) {
	errA := errors.New("a failed")
	r := NewRegistry()
	r.Register("a", 20, failingFactory(errA), nil)
	r.Register("b", 10, failingFactory(huecycle.ErrNoDrawingContext), nil)

	_, _, err := r.NewDisplay(Options{})
	if !errors.Is(err, errA) || !errors.Is(err, huecycle.ErrNoDrawingContext) {
		t.Errorf("NewDisplay() = %v, want both backend errors", err)
	}
}

// TestRegistryNoBackend tests the error when nothing is available.
func TestRegistryNoBackend(t *testing.T) {
	for _, r := range []*Registry{NewRegistry(), func() *Registry {
		r := NewRegistry()
		r.Register("hidden", 10, imageFactory, never)
		return r
	}()} {
		if _, _, err := r.NewDisplay(Options{}); !errors.Is(err, ErrNoBackendAvailable) {
			t.Errorf("NewDisplay() = %v, want ErrNoBackendAvailable", err)
		}
	}
}

// TestRegistryNewDisplayByName tests creation of named displays and its errors.
func TestRegistryNewDisplayByName(t *testing.T) {
	factoryErr := errors.New("creation failed")
	r := NewRegistry()
	r.Register("image", 10, imageFactory, nil)
	r.Register("hidden", 10, imageFactory, never)
	r.Register("failing", 10, failingFactory(factoryErr), nil)

	d, err := r.NewDisplayByName("image", Options{Width: 50, Height: 50})
	if err != nil {
		t.Fatalf("NewDisplayByName(image) = %v", err)
	}
	defer d.Close()
	if w, _ := d.Size(); w != 50 {
		t.Errorf("Width = %d, want 50", w)
	}

	var notFound *BackendNotFoundError
	if _, err := r.NewDisplayByName("nonexistent", Options{}); !errors.As(err, &notFound) || notFound.Name != "nonexistent" {
		t.Errorf("NewDisplayByName(nonexistent) = %v, want BackendNotFoundError", err)
	}

	var unavailable *BackendUnavailableError
	if _, err := r.NewDisplayByName("hidden", Options{}); !errors.As(err, &unavailable) {
		t.Errorf("NewDisplayByName(hidden) = %v, want BackendUnavailableError", err)
	}

	if _, err := r.NewDisplayByName("failing", Options{}); !errors.Is(err, factoryErr) {
		t.Errorf("NewDisplayByName(failing) = %v, want factory error", err)
	}
}

// TestDefaultRegistry tests the package-level registry.
func TestDefaultRegistry(t *testing.T) {
	if !slices.Contains(Available(), "image") {
		t.Errorf("Available() = %v, want image registered by init", Available())
	}
	if b, ok := Get("image"); !ok || b.Priority != 10 {
		t.Errorf("Get(image) = %+v, %v", b, ok)
	}

	d, err := Default().NewDisplayByName("image", DefaultOptions(100, 100))
	if err != nil {
		t.Fatalf("NewDisplayByName(image) = %v", err)
	}
	defer d.Close()
	if w, h := d.Size(); w != 100 || h != 100 {
		t.Errorf("Size() = %dx%d, want 100x100", w, h)
	}
}

// TestBackendErrorMessages tests error message formatting.
func TestBackendErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&BackendNotFoundError{Name: "term"}, "surface: backend not found: term"},
		{&BackendUnavailableError{Name: "web"}, "surface: backend unavailable: web"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
