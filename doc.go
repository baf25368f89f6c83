// Package huecycle draws animated color gradients into raw RGBA frame buffers
// and presents them on a pluggable display.
//
// # Overview
//
// A Canvas owns a Display (a terminal, a browser tab, or an offscreen image)
// and presents whole frames to it. Frames are flat RGBA byte buffers written
// directly, pixel by pixel; there is no path rasterizer and no compositing.
//
// Two pictures are drawn:
//   - a horizontal linear gradient between two colors, redrawn with random
//     colors whenever the display is resized;
//   - a solid color cycling red → green → blue → red over a fixed period,
//     driven by a frame clock while continuous animation is active.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/huecycle"
//	    "github.com/gogpu/huecycle/surface"
//	)
//
//	display, err := surface.Default().NewDisplayByName("image", surface.DefaultOptions(320, 200))
//	app, err := huecycle.NewApp(display)
//	defer app.Close()
//
//	// Click toggles continuous animation; resize redraws a new gradient.
//	err = app.Run(ctx)
//
// # Frame Buffer Layout
//
// Pixels are stored row-major, top-to-bottom and left-to-right, with 4 bytes
// per pixel in R, G, B, A order (the layout of an HTML canvas ImageData).
// A width×height frame is always width*height*4 bytes long.
//
// # Concurrency
//
// App handles display events one at a time on the goroutine running Run.
// The Animator draws from its own goroutine; Canvas serializes presentation
// so frames never interleave with size updates. Animator.Stop returns only
// after the animation loop has exited.
package huecycle

// Version is the current version of the module.
const Version = "0.1.0"
