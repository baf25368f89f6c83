package huecycle

import (
	"math"
	"time"
)

const (
	// DefaultCyclePeriod is the duration of one full red→green→blue→red cycle.
	DefaultCyclePeriod = 10 * time.Second

	// DefaultFPS is the default frame rate of continuous animation.
	DefaultFPS = 60

	// subCycles is the number of equal segments in one cycle.
	subCycles = 3
)

// CycleColor returns the color of the hue cycle after elapsed time, using
// DefaultCyclePeriod.
func CycleColor(elapsed time.Duration) Color {
	return CycleColorPeriod(elapsed, DefaultCyclePeriod)
}

// CycleColorPeriod returns the color of a hue cycle of the given period after
// elapsed time.
//
// The period is split into three sub-cycles (red→green, green→blue,
// blue→red). Within a sub-cycle the two active channels ramp linearly in
// opposite directions. This is a piecewise-linear ramp, not an HSV hue.
// Negative elapsed times wrap into the period. A non-positive period falls
// back to DefaultCyclePeriod.
func CycleColorPeriod(elapsed, period time.Duration) Color {
	if period <= 0 {
		period = DefaultCyclePeriod
	}

	ms := float64(elapsed) / float64(time.Millisecond)
	periodMs := float64(period) / float64(time.Millisecond)

	cycle := math.Mod(ms, periodMs)
	if cycle < 0 {
		cycle += periodMs
	}
	cycleProgress := cycle / periodMs
	sub := math.Mod(cycleProgress*subCycles, 1)

	var r, g, b float64
	switch {
	case cycleProgress < 1.0/subCycles:
		r, g, b = 1-sub, sub, 0
	case cycleProgress < 2.0/subCycles:
		r, g, b = 0, 1-sub, sub
	default:
		r, g, b = sub, 0, 1-sub
	}

	return RGB(roundByte(r*255), roundByte(g*255), roundByte(b*255))
}

// DrawCycleColor fills the canvas with the cycle color at elapsed time.
func DrawCycleColor(c *Canvas, elapsed, period time.Duration) error {
	return SolidFill(c, CycleColorPeriod(elapsed, period))
}
