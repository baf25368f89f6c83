package huecycle

import (
	"context"
	"log/slog"
)

// State is the interaction state of an App.
type State int

const (
	// StateIdle shows a static gradient that is redrawn on resize.
	StateIdle State = iota

	// StateCycling runs the continuous color cycle; resizes do not redraw.
	StateCycling
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCycling:
		return "cycling"
	default:
		return "unknown"
	}
}

// App wires a Canvas and an Animator to a display's events.
//
// Events are handled one at a time on the goroutine calling Run (or the
// Handle* methods), which mirrors the single-threaded event model of a
// browser page. Only the animation loop runs on its own goroutine.
type App struct {
	canvas   *Canvas
	animator *Animator
	state    State
	log      *slog.Logger
}

// NewApp attaches an App to display, draws the first frame and returns it.
//
// Returns ErrNoDrawingContext if display is nil. The
// returned App owns the display; Close releases it.
func NewApp(display Display, opts ...AppOption) (*App, error) {
	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}

	c, err := NewCanvas(display, o.canvas...)
	if err != nil {
		return nil, err
	}

	a := &App{
		canvas:   c,
		animator: NewAnimator(c, o.animator...),
		state:    StateIdle,
		log:      Logger().With("component", "app"),
	}
	if _, err := c.Resize(); err != nil {
		a.log.Warn("initial draw failed", "err", err)
	}
	return a, nil
}

// Canvas returns the app's canvas.
func (a *App) Canvas() *Canvas { return a.canvas }

// Animator returns the app's animator.
func (a *App) Animator() *Animator { return a.animator }

// State returns the current interaction state.
func (a *App) State() State { return a.state }

// Run dispatches display events until ctx is done, a QuitEvent arrives or
// the event channel is closed. The animation loop is stopped before Run
// returns.
func (a *App) Run(ctx context.Context) error {
	events := a.canvas.Display().Events()
	defer a.animator.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev.(type) {
			case ResizeEvent:
				a.HandleResize()
			case ClickEvent:
				a.HandleClick(ctx)
			case QuitEvent:
				a.log.Info("quit requested")
				return nil
			}
		}
	}
}

// HandleResize updates the canvas size. In StateIdle it redraws the canvas.
func (a *App) HandleResize() {
	if _, err := a.canvas.Resize(); err != nil {
		a.log.Warn("resize failed", "err", err)
	}
}

// HandleClick toggles between StateIdle and StateCycling.
//
// Leaving StateCycling waits for the animation loop to acknowledge the stop
// before redraw-on-resize is re-enabled, so the resize redraw can never be
// overwritten by a late animation frame.
func (a *App) HandleClick(ctx context.Context) {
	switch a.state {
	case StateIdle:
		a.canvas.SetRedrawOnResize(false)
		a.animator.Start(ctx)
		a.state = StateCycling
	case StateCycling:
		a.animator.Stop()
		a.canvas.SetRedrawOnResize(true)
		a.state = StateIdle
		a.HandleResize()
	}
	a.log.Debug("state changed", "state", a.state)
}

// Close stops the animation and closes the canvas and its display.
func (a *App) Close() error {
	a.animator.Stop()
	return a.canvas.Close()
}
