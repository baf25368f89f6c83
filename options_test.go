package huecycle

import (
	"testing"
	"time"
)

// TestCanvasOptionsDefault tests that NewCanvas uses a random gradient redraw by default.
func TestCanvasOptionsDefault(t *testing.T) {
	o := defaultCanvasOptions()
	if o.redraw == nil {
		t.Fatal("default redraw is nil")
	}
}

// TestWithRedrawNil tests that a nil redraw disables resize redraws.
func TestWithRedrawNil(t *testing.T) {
	c, d := newTestCanvas(t, 4, 4, WithRedraw(nil))
	redrawn, err := c.Resize()
	if err != nil {
		t.Fatalf("Resize() = %v", err)
	}
	if redrawn {
		t.Error("Resize() redrew with a nil redraw func")
	}
	if d.frameCount() != 0 {
		t.Errorf("frameCount() = %d, want 0", d.frameCount())
	}
}

// TestAnimatorOptions tests option application and ignored invalid values.
func TestAnimatorOptions(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := &manualClock{ticks: make(chan time.Time)}

	tests := []struct {
		name       string
		opts       []AnimatorOption
		wantFPS    int
		wantPeriod time.Duration
		wantClock  bool
		wantNow    bool
	}{
		{"defaults", nil, DefaultFPS, DefaultCyclePeriod, false, false},
		{"fps", []AnimatorOption{WithFPS(24)}, 24, DefaultCyclePeriod, false, false},
		{"zero fps ignored", []AnimatorOption{WithFPS(0)}, DefaultFPS, DefaultCyclePeriod, false, false},
		{"period", []AnimatorOption{WithCyclePeriod(3 * time.Second)}, DefaultFPS, 3 * time.Second, false, false},
		{"negative period ignored", []AnimatorOption{WithCyclePeriod(-time.Second)}, DefaultFPS, DefaultCyclePeriod, false, false},
		{"clock", []AnimatorOption{WithFrameClock(clock)}, DefaultFPS, DefaultCyclePeriod, true, false},
		{"now", []AnimatorOption{WithNow(func() time.Time { return fixed })}, DefaultFPS, DefaultCyclePeriod, false, true},
		{"nil now ignored", []AnimatorOption{WithNow(nil)}, DefaultFPS, DefaultCyclePeriod, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultAnimatorOptions()
			for _, opt := range tt.opts {
				opt(&o)
			}
			if o.fps != tt.wantFPS {
				t.Errorf("fps = %d, want %d", o.fps, tt.wantFPS)
			}
			if o.period != tt.wantPeriod {
				t.Errorf("period = %v, want %v", o.period, tt.wantPeriod)
			}
			if (o.clock != nil) != tt.wantClock {
				t.Errorf("clock set = %v, want %v", o.clock != nil, tt.wantClock)
			}
			if o.now == nil {
				t.Fatal("now is nil")
			}
			if got := o.now().Equal(fixed); got != tt.wantNow {
				t.Errorf("now() == fixed is %v, want %v", got, tt.wantNow)
			}
		})
	}
}

// TestAppOptionsAccumulate tests that repeated App options append.
func TestAppOptionsAccumulate(t *testing.T) {
	var o appOptions
	WithCanvasOptions(WithRedraw(nil))(&o)
	WithCanvasOptions(WithRedraw(nil))(&o)
	WithAnimatorOptions(WithFPS(10), WithCyclePeriod(time.Second))(&o)

	if len(o.canvas) != 2 {
		t.Errorf("len(canvas) = %d, want 2", len(o.canvas))
	}
	if len(o.animator) != 2 {
		t.Errorf("len(animator) = %d, want 2", len(o.animator))
	}
}
