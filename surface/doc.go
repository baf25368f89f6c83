// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the display backends frames are presented to.
//
// A display is the raster drawing surface of a huecycle.Canvas: it reports
// its size, accepts whole RGBA frames, and delivers resize, click and quit
// events. This package defines the backend registry and the offscreen
// ImageSurface; interactive backends live in sub-packages and register
// themselves on import:
//
//   - image: offscreen *image.NRGBA, driven programmatically (this package)
//   - term: a terminal, two pixels per cell (surface/term)
//   - web: an HTML canvas in a browser, frames streamed over a websocket
//     (surface/web)
//
// # Registry
//
// Backends register a factory under a name and a priority:
//
//	func init() {
//	    surface.Register("term", 50, newTerminalDisplay, nil)
//	}
//
//	// Later:
//	d, err := surface.Default().NewDisplayByName("term", surface.DefaultOptions(0, 0))
//	// or pick the best available backend:
//	d, name, err := surface.Default().NewDisplay(surface.DefaultOptions(320, 200))
//
// # Usage
//
// Driving an offscreen display:
//
//	s := surface.NewImageSurface(320, 200)
//	app, _ := huecycle.NewApp(s)
//	go app.Run(ctx)
//
//	s.Click()          // start cycling
//	s.Resize(640, 400) // tracked, not redrawn while cycling
//	s.Click()          // stop; a new gradient is drawn
//	img := s.Snapshot()
package surface
