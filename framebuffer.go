package huecycle

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnknownFormat is returned when a frame buffer is encoded to an
// unsupported image format.
var ErrUnknownFormat = errors.New("huecycle: unknown image format")

// FrameBuffer is a flat RGBA pixel buffer.
//
// Pixels are stored row-major, top-to-bottom and left-to-right, with 4 bytes
// per pixel in R, G, B, A order. len(Data()) is always Width()*Height()*4.
type FrameBuffer struct {
	width  int
	height int
	data   []uint8
}

// NewFrameBuffer creates a zeroed frame buffer with the given dimensions.
// Negative dimensions are treated as zero.
func NewFrameBuffer(width, height int) *FrameBuffer {
	width = max(width, 0)
	height = max(height, 0)
	return &FrameBuffer{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the frame buffer.
func (fb *FrameBuffer) Width() int {
	return fb.width
}

// Height returns the height of the frame buffer.
func (fb *FrameBuffer) Height() int {
	return fb.height
}

// Data returns the raw pixel data.
func (fb *FrameBuffer) Data() []uint8 {
	return fb.data
}

// SetPixel sets the color of a single pixel.
// Out-of-bounds coordinates are ignored.
func (fb *FrameBuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	i := (y*fb.width + x) * 4
	fb.data[i+0] = c.R
	fb.data[i+1] = c.G
	fb.data[i+2] = c.B
	fb.data[i+3] = c.A
}

// Pixel returns the color of a single pixel.
// Out-of-bounds coordinates return Transparent.
func (fb *FrameBuffer) Pixel(x, y int) Color {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return Transparent
	}
	i := (y*fb.width + x) * 4
	return Color{R: fb.data[i+0], G: fb.data[i+1], B: fb.data[i+2], A: fb.data[i+3]}
}

// Fill sets every pixel to c.
func (fb *FrameBuffer) Fill(c Color) {
	for i := 0; i < len(fb.data); i += 4 {
		fb.data[i+0] = c.R
		fb.data[i+1] = c.G
		fb.data[i+2] = c.B
		fb.data[i+3] = c.A
	}
}

// FillColumns colors every pixel of column x with colors[x].
// len(colors) must equal the frame buffer width.
func (fb *FrameBuffer) FillColumns(colors []Color) {
	if len(colors) != fb.width {
		panic(fmt.Sprintf("huecycle: FillColumns got %d colors for width %d", len(colors), fb.width))
	}
	for i := 0; i < len(fb.data); i += 4 {
		c := colors[(i/4)%fb.width]
		fb.data[i+0] = c.R
		fb.data[i+1] = c.G
		fb.data[i+2] = c.B
		fb.data[i+3] = c.A
	}
}

// ToImage converts the frame buffer to an image.NRGBA.
// The frame buffer stores straight alpha, so the bytes are copied unchanged.
func (fb *FrameBuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.width, fb.height))
	copy(img.Pix, fb.data)
	return img
}

// Encode writes the frame buffer to w in the named format
// ("png", "bmp" or "tiff").
func (fb *FrameBuffer) Encode(w io.Writer, format string) error {
	img := fb.ToImage()
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tif", "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// SaveFile writes the frame buffer to path, choosing the format from the
// file extension.
func (fb *FrameBuffer) SaveFile(path string) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		return fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}

	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := fb.Encode(f, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements the image.Image interface.
func (fb *FrameBuffer) At(x, y int) color.Color {
	return fb.Pixel(x, y)
}

// Bounds implements the image.Image interface.
func (fb *FrameBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

// ColorModel implements the image.Image interface.
func (fb *FrameBuffer) ColorModel() color.Model {
	return color.NRGBAModel
}
