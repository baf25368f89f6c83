// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

// Options configures display creation.
type Options struct {
	// Width is the initial width in pixels.
	// Backends that own their size (terminal, browser) ignore it.
	Width int

	// Height is the initial height in pixels.
	Height int

	// Addr is the listen address of network backends.
	// Default: ":8080"
	Addr string

	// FPS is the refresh rate for backends that drive their own frame clock.
	// Default: 60
	FPS int

	// Custom options for specific backends.
	Custom map[string]any
}

// DefaultOptions returns Options with default values.
func DefaultOptions(width, height int) Options {
	return Options{
		Width:  width,
		Height: height,
		Addr:   ":8080",
		FPS:    60,
	}
}
