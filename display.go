package huecycle

import "time"

// Display is a raster drawing surface that frame buffers are presented to.
//
// A Display plays the role of the container element and its 2D drawing
// context: it reports its current size in pixels, accepts whole frames, and
// delivers user events. Implementations live in the surface package and
// its sub-packages.
//
// Present may be called from a goroutine other than the one reading Events.
// Canvas serializes all calls to Present and Size.
type Display interface {
	// Size returns the current drawable size in pixels.
	Size() (width, height int)

	// Present copies fb to the visible surface at origin (0,0).
	// Byte order (R,G,B,A per pixel, row-major) must be preserved.
	Present(fb *FrameBuffer) error

	// Events returns the channel user events are delivered on.
	// The channel is closed when the display shuts down.
	Events() <-chan Event

	// Close releases the display. Close is idempotent.
	Close() error
}

// FrameClock is an optional interface for displays that drive their own
// refresh cycle. When a display implements it, the animator renders one
// frame per tick instead of using its own ticker.
type FrameClock interface {
	// Frames returns a channel of refresh timestamps and a function that
	// stops the clock.
	Frames() (ticks <-chan time.Time, stop func())
}

// Event is a user event delivered by a Display.
type Event interface {
	event()
}

// ResizeEvent reports that the display size changed.
// The new size is read back through Display.Size.
type ResizeEvent struct{}

// ClickEvent reports a click (or an equivalent key press) on the display.
type ClickEvent struct{}

// QuitEvent asks the application to shut down.
type QuitEvent struct{}

func (ResizeEvent) event() {}
func (ClickEvent) event()  {}
func (QuitEvent) event()   {}

// TickerClock is a FrameClock backed by a time.Ticker.
type TickerClock struct {
	Interval time.Duration
}

// NewTickerClock returns a clock ticking fps times per second.
// Non-positive fps falls back to DefaultFPS.
func NewTickerClock(fps int) TickerClock {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return TickerClock{Interval: time.Second / time.Duration(fps)}
}

// Frames implements FrameClock.
func (c TickerClock) Frames() (<-chan time.Time, func()) {
	t := time.NewTicker(c.Interval)
	return t.C, t.Stop
}
