package huecycle

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Animator runs the continuous color-cycling loop on a canvas.
//
// Each frame tick computes the time elapsed since Start and fills the canvas
// with the matching cycle color. Stop cancels the loop and returns only after
// the loop goroutine has exited, so no frame is presented after Stop.
//
// Animator methods are safe for concurrent use.
type Animator struct {
	canvas *Canvas
	clock  FrameClock
	period time.Duration
	now    func() time.Time
	log    *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	startNanos  atomic.Int64
	lastElapsed atomic.Int64
	frames      atomic.Uint64
}

// NewAnimator creates an idle animator for c.
//
// The frame clock is chosen in order: WithFrameClock, the display itself if
// it implements FrameClock, then a ticker at DefaultFPS.
func NewAnimator(c *Canvas, opts ...AnimatorOption) *Animator {
	o := defaultAnimatorOptions()
	for _, opt := range opts {
		opt(&o)
	}

	clock := o.clock
	if clock == nil {
		if fc, ok := c.Display().(FrameClock); ok {
			clock = fc
		} else {
			clock = NewTickerClock(o.fps)
		}
	}

	return &Animator{
		canvas: c,
		clock:  clock,
		period: o.period,
		now:    o.now,
		log:    Logger().With("component", "animator"),
	}
}

// Start resets the animation clock and starts the loop.
// It returns false if the loop is already running.
func (a *Animator) Start(ctx context.Context) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.runningLocked() {
		return false
	}
	if a.cancel != nil {
		// The previous loop exited on its own; release its context.
		a.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	start := a.now()
	a.startNanos.Store(start.UnixNano())
	a.lastElapsed.Store(0)
	a.frames.Store(0)

	ticks, stopClock := a.clock.Frames()
	done := make(chan struct{})
	a.cancel = cancel
	a.done = done

	a.log.Info("cycling started", "period", a.period)
	go a.loop(ctx, ticks, stopClock, start, done)
	return true
}

// Stop cancels the loop and waits until it has fully exited.
// It returns false if the loop was not running. Concurrent calls all wait
// for the same loop to exit.
func (a *Animator) Stop() bool {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.mu.Unlock()

	if cancel == nil {
		return false
	}
	cancel()
	<-done

	a.mu.Lock()
	last := a.done == done
	if last {
		a.cancel, a.done = nil, nil
	}
	a.mu.Unlock()

	if last {
		a.log.Info("cycling stopped", "frames", a.frames.Load(), "elapsed", a.LastElapsed())
	}
	return true
}

// Active reports whether the loop is running.
func (a *Animator) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.runningLocked()
}

// LastElapsed returns the elapsed time of the last presented frame.
func (a *Animator) LastElapsed() time.Duration {
	return time.Duration(a.lastElapsed.Load())
}

// StartedAt returns the time the animation clock was last reset.
func (a *Animator) StartedAt() time.Time {
	return time.Unix(0, a.startNanos.Load())
}

// Frames returns the number of frames presented since the last Start.
func (a *Animator) Frames() uint64 {
	return a.frames.Load()
}

// runningLocked must be called with a.mu held.
func (a *Animator) runningLocked() bool {
	if a.done == nil {
		return false
	}
	select {
	case <-a.done:
		return false
	default:
		return true
	}
}

func (a *Animator) loop(ctx context.Context, ticks <-chan time.Time, stopClock func(), start time.Time, done chan struct{}) {
	defer close(done)
	defer stopClock()

	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-ticks:
			if !ok {
				return
			}
			// A tick and a cancellation can be ready together; cancellation wins.
			if ctx.Err() != nil {
				return
			}

			elapsed := t.Sub(start)
			if err := DrawCycleColor(a.canvas, elapsed, a.period); err != nil {
				a.log.Warn("frame dropped", "elapsed", elapsed, "err", err)
				continue
			}

			prev := time.Duration(a.lastElapsed.Swap(int64(elapsed)))
			a.frames.Add(1)
			a.log.Debug("frame", "elapsed", elapsed, "since_last", elapsed-prev)
		}
	}
}
