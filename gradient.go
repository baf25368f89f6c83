package huecycle

import (
	"math/rand/v2"

	"github.com/gogpu/huecycle/internal/cache"
)

// fixedGradientWidths is how many widths a fixed gradient redraw remembers.
const fixedGradientWidths = 8

// SolidFill fills a new frame buffer with c and presents it.
func SolidFill(c *Canvas, col Color) error {
	fb := c.NewFrame()
	fb.Fill(col)
	return c.Present(fb)
}

// HorizontalGradient draws a left-to-right linear gradient and presents it.
//
// Every pixel of column i takes the color at progress i/width, so the last
// column approaches but never reaches right.
func HorizontalGradient(c *Canvas, left, right Color) error {
	fb := c.NewFrame()
	fb.FillColumns(GradientColumns(fb.Width(), left, right))
	return c.Present(fb)
}

// GradientColumns returns the color of each of width columns of a
// horizontal gradient from left to right.
//
// Each channel is left - (left-right)*progress with progress = i/width,
// rounded half away from zero.
func GradientColumns(width int, left, right Color) []Color {
	if width <= 0 {
		return nil
	}

	l := left.Bytes()
	r := right.Bytes()
	var delta [4]float64
	for ch := range delta {
		delta[ch] = float64(l[ch]) - float64(r[ch])
	}

	columns := make([]Color, width)
	for i := range columns {
		progress := float64(i) / float64(width)
		columns[i] = Color{
			R: roundByte(float64(l[0]) - delta[0]*progress),
			G: roundByte(float64(l[1]) - delta[1]*progress),
			B: roundByte(float64(l[2]) - delta[2]*progress),
			A: roundByte(float64(l[3]) - delta[3]*progress),
		}
	}
	return columns
}

// Rand is the source of randomness for RandomGradient.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// RandomColor returns an opaque color with random RGB channels.
// A nil r uses the global math/rand/v2 source.
func RandomColor(r Rand) Color {
	if r == nil {
		r = globalRand{}
	}
	return RGB(uint8(r.IntN(256)), uint8(r.IntN(256)), uint8(r.IntN(256)))
}

// RandomGradient draws a horizontal gradient between two random opaque
// colors. A nil r uses the global math/rand/v2 source.
func RandomGradient(c *Canvas, r Rand) error {
	left := RandomColor(r)
	right := RandomColor(r)
	Logger().Debug("random gradient", "left", left.Hex(), "right", right.Hex())
	return HorizontalGradient(c, left, right)
}

// RandomGradientRedraw returns a RedrawFunc that draws a random gradient
// from r on every call.
func RandomGradientRedraw(r Rand) RedrawFunc {
	return func(c *Canvas) error {
		return RandomGradient(c, r)
	}
}

// FixedGradientRedraw returns a RedrawFunc that always draws the same
// gradient. Column colors are kept for the most recently drawn widths.
func FixedGradientRedraw(left, right Color) RedrawFunc {
	columns := cache.New[int, []Color](fixedGradientWidths)
	return func(c *Canvas) error {
		fb := c.NewFrame()
		w := fb.Width()
		fb.FillColumns(columns.GetOrCreate(w, func() []Color {
			return GradientColumns(w, left, right)
		}))
		return c.Present(fb)
	}
}
