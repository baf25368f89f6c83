// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/huecycle"
)

// ErrSurfaceClosed is returned when presenting to a closed surface.
var ErrSurfaceClosed = errors.New("surface: surface is closed")

// eventBuffer is the capacity of an ImageSurface event queue.
const eventBuffer = 64

// ImageSurface is an offscreen display that renders to an *image.NRGBA.
//
// It has no user input of its own: Resize, Click and Quit post the matching
// events programmatically. Events are dropped when the queue is full.
//
// Example:
//
//	s := surface.NewImageSurface(320, 200)
//	defer s.Close()
//
//	c, _ := huecycle.NewCanvas(s)
//	_ = huecycle.SolidFill(c, huecycle.Red)
//
//	img := s.Snapshot()
type ImageSurface struct {
	mu        sync.Mutex
	width     int
	height    int
	img       *image.NRGBA
	presented int

	events chan huecycle.Event

	// closed tracks if Close has been called
	closed bool
}

// NewImageSurface creates a new offscreen display with the given dimensions.
// Dimensions are clamped to a minimum of 1x1.
func NewImageSurface(width, height int) *ImageSurface {
	width = max(width, 1)
	height = max(height, 1)

	return &ImageSurface{
		width:  width,
		height: height,
		img:    image.NewNRGBA(image.Rect(0, 0, width, height)),
		events: make(chan huecycle.Event, eventBuffer),
	}
}

// Size returns the surface size.
func (s *ImageSurface) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Present copies fb into the surface at origin (0,0).
// Parts of fb outside the surface are clipped.
func (s *ImageSurface) Present(fb *huecycle.FrameBuffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSurfaceClosed
	}

	// Pixels the frame does not cover keep their previous contents, as with
	// putImageData on a larger canvas.
	src := fb.ToImage()
	draw.Copy(s.img, image.Point{}, src, src.Bounds(), draw.Src, nil)
	s.presented++
	return nil
}

// Events returns the event queue.
func (s *ImageSurface) Events() <-chan huecycle.Event {
	return s.events
}

// Resize changes the surface dimensions and posts a ResizeEvent.
// Existing content is discarded.
func (s *ImageSurface) Resize(width, height int) {
	s.mu.Lock()
	s.width = max(width, 1)
	s.height = max(height, 1)
	s.img = image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	s.mu.Unlock()

	s.post(huecycle.ResizeEvent{})
}

// Click posts a ClickEvent.
func (s *ImageSurface) Click() {
	s.post(huecycle.ClickEvent{})
}

// Quit posts a QuitEvent.
func (s *ImageSurface) Quit() {
	s.post(huecycle.QuitEvent{})
}

func (s *ImageSurface) post(ev huecycle.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	select {
	case s.events <- ev:
	default:
		huecycle.Logger().Warn("image surface event dropped", "event", ev)
	}
}

// Presented returns the number of frames presented so far.
func (s *ImageSurface) Presented() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presented
}

// Snapshot returns a copy of the current surface contents.
// Returns nil after Close.
func (s *ImageSurface) Snapshot() *image.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	result := image.NewNRGBA(s.img.Bounds())
	copy(result.Pix, s.img.Pix)
	return result
}

// SaveFile writes the current contents to path. The format follows the
// extension, as in huecycle.FrameBuffer.SaveFile.
func (s *ImageSurface) SaveFile(path string) error {
	img := s.Snapshot()
	if img == nil {
		return ErrSurfaceClosed
	}
	fb := huecycle.NewFrameBuffer(img.Rect.Dx(), img.Rect.Dy())
	copy(fb.Data(), img.Pix)
	return fb.SaveFile(path)
}

// Close releases the surface and closes the event queue.
// Close is idempotent.
func (s *ImageSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	close(s.events)
	return nil
}
