package huecycle

import "time"

// CanvasOption configures a Canvas during creation.
//
// Example:
//
//	// Default: random gradient on every resize
//	c, err := huecycle.NewCanvas(display)
//
//	// Always redraw the same gradient
//	c, err := huecycle.NewCanvas(display,
//	    huecycle.WithRedraw(huecycle.FixedGradientRedraw(huecycle.Red, huecycle.Cyan)))
type CanvasOption func(*canvasOptions)

// canvasOptions holds optional configuration for Canvas creation.
type canvasOptions struct {
	redraw RedrawFunc
}

// defaultCanvasOptions returns the default canvas options.
func defaultCanvasOptions() canvasOptions {
	return canvasOptions{
		redraw: RandomGradientRedraw(nil),
	}
}

// WithRedraw sets the function Resize calls when redraw-on-resize is enabled.
// A nil fn disables resize redraws entirely.
func WithRedraw(fn RedrawFunc) CanvasOption {
	return func(o *canvasOptions) {
		o.redraw = fn
	}
}

// AnimatorOption configures an Animator during creation.
type AnimatorOption func(*animatorOptions)

// animatorOptions holds optional configuration for Animator creation.
type animatorOptions struct {
	clock  FrameClock
	fps    int
	period time.Duration
	now    func() time.Time
}

// defaultAnimatorOptions returns the default animator options.
func defaultAnimatorOptions() animatorOptions {
	return animatorOptions{
		fps:    DefaultFPS,
		period: DefaultCyclePeriod,
		now:    time.Now,
	}
}

// WithFrameClock sets the clock that drives animation frames.
// It takes precedence over a display-provided clock and WithFPS.
func WithFrameClock(clock FrameClock) AnimatorOption {
	return func(o *animatorOptions) {
		o.clock = clock
	}
}

// WithFPS sets the frame rate of the default ticker clock.
func WithFPS(fps int) AnimatorOption {
	return func(o *animatorOptions) {
		if fps > 0 {
			o.fps = fps
		}
	}
}

// WithCyclePeriod sets the duration of one full color cycle.
func WithCyclePeriod(period time.Duration) AnimatorOption {
	return func(o *animatorOptions) {
		if period > 0 {
			o.period = period
		}
	}
}

// WithNow sets the function used to read the current time when the
// animation clock is reset. Intended for tests.
func WithNow(now func() time.Time) AnimatorOption {
	return func(o *animatorOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// AppOption configures an App during creation.
type AppOption func(*appOptions)

// appOptions holds the options forwarded to the App's canvas and animator.
type appOptions struct {
	canvas   []CanvasOption
	animator []AnimatorOption
}

// WithCanvasOptions forwards options to the App's Canvas.
func WithCanvasOptions(opts ...CanvasOption) AppOption {
	return func(o *appOptions) {
		o.canvas = append(o.canvas, opts...)
	}
}

// WithAnimatorOptions forwards options to the App's Animator.
func WithAnimatorOptions(opts ...AnimatorOption) AppOption {
	return func(o *appOptions) {
		o.animator = append(o.animator, opts...)
	}
}
