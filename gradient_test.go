package huecycle

import (
	"math/rand/v2"
	"testing"
)

func newTestCanvas(t *testing.T, width, height int, opts ...CanvasOption) (*Canvas, *fakeDisplay) {
	t.Helper()
	d := newFakeDisplay(width, height)
	c, err := NewCanvas(d, opts...)
	if err != nil {
		t.Fatalf("NewCanvas() = %v", err)
	}
	return c, d
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestHorizontalGradientScenario(t *testing.T) {
	c, d := newTestCanvas(t, 100, 50)

	if err := HorizontalGradient(c, Color{255, 0, 0, 255}, Color{0, 0, 255, 255}); err != nil {
		t.Fatalf("HorizontalGradient() = %v", err)
	}

	fb := d.lastFrame()
	if fb == nil {
		t.Fatal("no frame presented")
	}
	if len(fb.Data()) != 100*50*4 {
		t.Fatalf("len = %d, want %d", len(fb.Data()), 100*50*4)
	}

	tests := []struct {
		x    int
		want Color
	}{
		{0, Color{255, 0, 0, 255}},
		{50, Color{128, 0, 128, 255}}, // 127.5 rounds away from zero
		{99, Color{3, 0, 252, 255}},
	}
	for _, tt := range tests {
		for _, y := range []int{0, 25, 49} {
			if got := fb.Pixel(tt.x, y); got != tt.want {
				t.Errorf("Pixel(%d, %d) = %v, want %v", tt.x, y, got, tt.want)
			}
		}
	}
}

func TestGradientColumnsEndpoints(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 50 {
		width := 1 + r.IntN(400)
		left := Color{uint8(r.IntN(256)), uint8(r.IntN(256)), uint8(r.IntN(256)), uint8(r.IntN(256))}
		right := Color{uint8(r.IntN(256)), uint8(r.IntN(256)), uint8(r.IntN(256)), uint8(r.IntN(256))}

		cols := GradientColumns(width, left, right)
		if len(cols) != width {
			t.Fatalf("GradientColumns(%d) len = %d", width, len(cols))
		}
		if cols[0] != left {
			t.Errorf("width %d: column 0 = %v, want %v", width, cols[0], left)
		}

		// Column W-1 sits one step of (left-right)/width short of right.
		last := cols[width-1].Bytes()
		l, rb := left.Bytes(), right.Bytes()
		for ch := range last {
			step := absDiff(l[ch], rb[ch])/width + 1
			if absDiff(last[ch], rb[ch]) > step {
				t.Errorf("width %d channel %d: last column = %d, right = %d (max step %d)",
					width, ch, last[ch], rb[ch], step)
			}
		}
	}
}

func TestGradientColumnsMonotonic(t *testing.T) {
	cols := GradientColumns(256, Black, White)
	for i := 1; i < len(cols); i++ {
		if cols[i].R < cols[i-1].R {
			t.Fatalf("column %d red %d < column %d red %d", i, cols[i].R, i-1, cols[i-1].R)
		}
		if cols[i].A != 255 {
			t.Fatalf("column %d alpha = %d, want 255", i, cols[i].A)
		}
	}
	if cols[255].R != 254 {
		t.Errorf("column 255 = %v, want red 254", cols[255])
	}
}

func TestGradientColumnsEmpty(t *testing.T) {
	if got := GradientColumns(0, Red, Blue); got != nil {
		t.Errorf("GradientColumns(0) = %v, want nil", got)
	}
}

func TestSolidFill(t *testing.T) {
	c, d := newTestCanvas(t, 13, 7)
	col := Color{R: 17, G: 99, B: 201, A: 77}

	if err := SolidFill(c, col); err != nil {
		t.Fatalf("SolidFill() = %v", err)
	}
	data := d.lastFrame().Data()
	if len(data) != 13*7*4 {
		t.Fatalf("len = %d, want %d", len(data), 13*7*4)
	}
	for i := 0; i < len(data); i += 4 {
		got := Color{data[i], data[i+1], data[i+2], data[i+3]}
		if got != col {
			t.Fatalf("pixel %d = %v, want %v", i/4, got, col)
		}
	}
}

func TestRandomColorOpaque(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	for range 100 {
		if c := RandomColor(r); c.A != 255 {
			t.Fatalf("RandomColor() alpha = %d, want 255", c.A)
		}
	}
	if c := RandomColor(nil); c.A != 255 {
		t.Errorf("RandomColor(nil) alpha = %d, want 255", c.A)
	}
}

// edgeRand always returns the same end of the requested range.
type edgeRand struct{ high bool }

func (r edgeRand) IntN(n int) int {
	if r.high {
		return n - 1
	}
	return 0
}

func TestRandomColorChannelRange(t *testing.T) {
	tests := []struct {
		r    Rand
		want Color
	}{
		{edgeRand{high: false}, RGB(0, 0, 0)},
		{edgeRand{high: true}, RGB(255, 255, 255)},
	}
	for _, tt := range tests {
		if got := RandomColor(tt.r); got != tt.want {
			t.Errorf("RandomColor(%+v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestRandomGradientDeterministic(t *testing.T) {
	c1, d1 := newTestCanvas(t, 20, 2)
	c2, d2 := newTestCanvas(t, 20, 2)

	if err := RandomGradient(c1, rand.New(rand.NewPCG(3, 4))); err != nil {
		t.Fatal(err)
	}
	if err := RandomGradient(c2, rand.New(rand.NewPCG(3, 4))); err != nil {
		t.Fatal(err)
	}

	a, b := d1.lastFrame().Data(), d2.lastFrame().Data()
	if string(a) != string(b) {
		t.Error("same seed produced different gradients")
	}
	if got := d1.lastFrame().Pixel(0, 0).A; got != 255 {
		t.Errorf("alpha = %d, want 255", got)
	}
}

func TestFixedGradientRedraw(t *testing.T) {
	c, d := newTestCanvas(t, 10, 1, WithRedraw(FixedGradientRedraw(Red, Cyan)))
	if _, err := c.Resize(); err != nil {
		t.Fatal(err)
	}
	if got := d.lastFrame().Pixel(0, 0); got != Red {
		t.Errorf("Pixel(0, 0) = %v, want %v", got, Red)
	}

	// Widths drawn before come back identical after other widths.
	want := GradientColumns(10, Red, Cyan)
	for _, w := range []int{4, 0, 10} {
		d.setSize(w, 2)
		if _, err := c.Resize(); err != nil {
			t.Fatalf("Resize() at width %d = %v", w, err)
		}
	}
	fb := d.lastFrame()
	for x, col := range want {
		if got := fb.Pixel(x, 1); got != col {
			t.Errorf("Pixel(%d, 1) = %v, want %v", x, got, col)
		}
	}
}
