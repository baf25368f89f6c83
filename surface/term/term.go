// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package term is a display backend that draws frames into a terminal.
//
// Every character cell shows two vertically stacked pixels using the upper
// half block glyph: the foreground color is the top pixel and the background
// color the bottom one, so a W×H cell terminal is a W×2H pixel display.
// Alpha is composited over black.
//
// Input:
//   - left mouse button or space/enter: ClickEvent
//   - terminal resize: ResizeEvent
//   - q, Esc or Ctrl-C: QuitEvent
//
// Importing the package registers the "term" backend with the surface
// registry.
package term

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	xterm "golang.org/x/term"

	"github.com/gogpu/huecycle"
	"github.com/gogpu/huecycle/surface"
)

// upperHalf is the glyph drawn in every cell.
const upperHalf = '▀'

// ErrClosed is returned when presenting to a closed display.
var ErrClosed = errors.New("term: display is closed")

func init() {
	surface.Register("term", 50, func(surface.Options) (huecycle.Display, error) {
		return New()
	}, Available)
}

// Available reports whether stdout is a terminal.
func Available() bool {
	return xterm.IsTerminal(int(os.Stdout.Fd()))
}

// Display is a terminal display backed by a tcell screen.
type Display struct {
	mu     sync.Mutex
	screen tcell.Screen
	closed bool

	events chan huecycle.Event
	done   chan struct{}
	log    *slog.Logger
}

// New opens the controlling terminal.
// Returns an error wrapping huecycle.ErrNoDrawingContext if the terminal
// cannot be initialized.
func New() (*Display, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", huecycle.ErrNoDrawingContext, err)
	}
	return NewWithScreen(screen)
}

// NewWithScreen wraps an uninitialized tcell screen, such as a
// tcell.SimulationScreen in tests. The display initializes it and takes
// ownership; Close finalizes it.
func NewWithScreen(screen tcell.Screen) (*Display, error) {
	if screen == nil {
		return nil, huecycle.ErrNoDrawingContext
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", huecycle.ErrNoDrawingContext, err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()

	d := &Display{
		screen: screen,
		events: make(chan huecycle.Event, 16),
		done:   make(chan struct{}),
		log:    huecycle.Logger().With("component", "term"),
	}

	w, h := d.Size()
	d.log.Info("terminal opened", "width", w, "height", h)
	go d.poll()
	return d, nil
}

// Size returns the pixel size: one pixel per column, two per row.
func (d *Display) Size() (width, height int) {
	cols, rows := d.screen.Size()
	return cols, rows * 2
}

// Present draws fb starting at the top-left cell and shows it.
// Parts of fb outside the terminal are clipped.
func (d *Display) Present(fb *huecycle.FrameBuffer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}

	cols, rows := d.screen.Size()
	cols = min(cols, fb.Width())
	rows = min(rows, (fb.Height()+1)/2)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := cellColor(fb.Pixel(x, 2*y))
			bottom := cellColor(fb.Pixel(x, 2*y+1))
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			d.screen.SetContent(x, y, upperHalf, nil, style)
		}
	}
	d.screen.Show()
	return nil
}

// cellColor composites c over black and converts it to a terminal color.
func cellColor(c huecycle.Color) tcell.Color {
	a := int32(c.A)
	return tcell.NewRGBColor(
		int32(c.R)*a/255,
		int32(c.G)*a/255,
		int32(c.B)*a/255,
	)
}

// Events returns the event channel. It is closed after Close.
func (d *Display) Events() <-chan huecycle.Event {
	return d.events
}

// Close restores the terminal. Close is idempotent.
func (d *Display) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	close(d.done)
	d.screen.Fini()
	d.log.Info("terminal closed")
	return nil
}

// poll translates tcell events until the screen is finalized.
func (d *Display) poll() {
	defer close(d.events)

	var pressed bool
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return
		}

		var out huecycle.Event
		switch ev := ev.(type) {
		case *tcell.EventResize:
			d.screen.Sync()
			out = huecycle.ResizeEvent{}
		case *tcell.EventMouse:
			down := ev.Buttons()&tcell.Button1 != 0
			if down && !pressed {
				out = huecycle.ClickEvent{}
			}
			pressed = down
		case *tcell.EventKey:
			out = translateKey(ev)
		}
		if out == nil {
			continue
		}

		select {
		case d.events <- out:
		case <-d.done:
			return
		}
	}
}

func translateKey(ev *tcell.EventKey) huecycle.Event {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return huecycle.QuitEvent{}
	case tcell.KeyEnter:
		return huecycle.ClickEvent{}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return huecycle.QuitEvent{}
		case ' ':
			return huecycle.ClickEvent{}
		}
	}
	return nil
}
