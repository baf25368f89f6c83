package huecycle

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Common errors returned by Canvas operations.
var (
	// ErrNoDrawingContext is returned when the drawing surface cannot be
	// acquired. It is fatal: the canvas cannot be used.
	ErrNoDrawingContext = errors.New("huecycle: failed to get the 2D drawing context")

	// ErrCanvasClosed is returned when presenting to a closed canvas.
	ErrCanvasClosed = errors.New("huecycle: canvas is closed")
)

// RedrawFunc draws a full frame onto a canvas.
type RedrawFunc func(c *Canvas) error

// Canvas owns a Display and presents frame buffers to it.
//
// Canvas tracks the display size and the redraw-on-resize flag. Present,
// Resize and Size are safe to call from multiple goroutines; frames and
// size updates never interleave.
type Canvas struct {
	mu             sync.Mutex
	display        Display
	width          int
	height         int
	redrawOnResize bool
	closed         bool

	redraw RedrawFunc
	log    *slog.Logger
}

// NewCanvas attaches a canvas to display and reads its initial size.
//
// Returns ErrNoDrawingContext if display is nil. The canvas starts with
// redraw-on-resize enabled; call Resize to draw the first frame.
func NewCanvas(display Display, opts ...CanvasOption) (*Canvas, error) {
	if display == nil {
		return nil, ErrNoDrawingContext
	}

	o := defaultCanvasOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Canvas{
		display:        display,
		redrawOnResize: true,
		redraw:         o.redraw,
		log:            Logger().With("component", "canvas"),
	}
	c.width, c.height = display.Size()
	return c, nil
}

// Display returns the display the canvas presents to.
func (c *Canvas) Display() Display {
	return c.display
}

// Size returns the canvas size as of the last Resize.
func (c *Canvas) Size() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

// NewFrame returns a fresh frame buffer matching the canvas size.
func (c *Canvas) NewFrame() *FrameBuffer {
	w, h := c.Size()
	return NewFrameBuffer(w, h)
}

// SetRedrawOnResize enables or disables the redraw triggered by Resize.
func (c *Canvas) SetRedrawOnResize(enabled bool) {
	c.mu.Lock()
	c.redrawOnResize = enabled
	c.mu.Unlock()
}

// RedrawOnResize reports whether Resize triggers a redraw.
func (c *Canvas) RedrawOnResize() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.redrawOnResize
}

// Resize reads the display's current size and, if redraw-on-resize is
// enabled, redraws the canvas. It reports whether a redraw happened.
func (c *Canvas) Resize() (bool, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false, ErrCanvasClosed
	}
	c.width, c.height = c.display.Size()
	redraw := c.redrawOnResize
	w, h := c.width, c.height
	c.mu.Unlock()

	c.log.Debug("resize", "width", w, "height", h, "redraw", redraw)
	if !redraw || c.redraw == nil {
		return false, nil
	}
	if err := c.redraw(c); err != nil {
		return true, fmt.Errorf("huecycle: redraw after resize: %w", err)
	}
	return true, nil
}

// Present copies fb to the display at origin (0,0).
func (c *Canvas) Present(fb *FrameBuffer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCanvasClosed
	}
	if err := c.display.Present(fb); err != nil {
		c.log.Warn("present failed", "err", err)
		return err
	}
	return nil
}

// Close detaches the canvas and closes its display.
// Close is idempotent.
func (c *Canvas) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.display.Close()
}
