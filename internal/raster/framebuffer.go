// Package raster implements a small fixed-function triangle rasterizer
// with GL conventions: window row 0 is the bottom of the framebuffer, pixel
// centers sit at half-integer coordinates and shared edges are owned by
// exactly one triangle.
package raster

import (
	"errors"
	"math"
)

// ErrInvalidDimensions is returned when a framebuffer size is non-positive.
var ErrInvalidDimensions = errors.New("raster: invalid dimensions")

// Framebuffer is an RGBA8 color buffer addressed in window coordinates.
// Row 0 is the bottom row.
type Framebuffer struct {
	width  int
	height int
	pix    []byte
}

// NewFramebuffer allocates a framebuffer. Its initial contents are zero.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*4),
	}, nil
}

// Width returns the framebuffer width in pixels.
func (f *Framebuffer) Width() int { return f.width }

// Height returns the framebuffer height in pixels.
func (f *Framebuffer) Height() int { return f.height }

// Pix returns the raw bottom-up RGBA8 contents.
func (f *Framebuffer) Pix() []byte { return f.pix }

// Clear fills the buffer with a normalized color.
func (f *Framebuffer) Clear(c Color) {
	r, g, b, a := c.Bytes()
	for i := 0; i < len(f.pix); i += 4 {
		f.pix[i] = r
		f.pix[i+1] = g
		f.pix[i+2] = b
		f.pix[i+3] = a
	}
}

// Set writes one pixel. Out-of-range writes are ignored.
func (f *Framebuffer) Set(x, y int, r, g, b, a byte) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	i := (y*f.width + x) * 4
	p := f.pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = r, g, b, a
}

// At returns one pixel. Out-of-range reads return zero.
func (f *Framebuffer) At(x, y int) (r, g, b, a byte) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 0, 0, 0, 0
	}
	i := (y*f.width + x) * 4
	return f.pix[i], f.pix[i+1], f.pix[i+2], f.pix[i+3]
}

// ReadPixels copies the w×h rectangle whose lower-left corner is (x, y)
// into a new tightly packed buffer, bottom row first. Pixels outside the
// framebuffer read as zero.
func (f *Framebuffer) ReadPixels(x, y, w, h int) []byte {
	if w <= 0 || h <= 0 {
		return nil
	}
	out := make([]byte, w*h*4)
	ReadPixelsFrom(out, f.pix, f.width, f.height, x, y, w, h)
	return out
}

// ReadPixelsFrom copies a w×h rectangle out of a bottom-up RGBA8 image of
// size srcW×srcH into dst, which must hold w*h*4 bytes. dst bytes that fall
// outside the source are left untouched.
func ReadPixelsFrom(dst, src []byte, srcW, srcH, x, y, w, h int) {
	x0 := max(x, 0)
	x1 := min(x+w, srcW)
	if x0 >= x1 {
		return
	}
	for j := range h {
		sy := y + j
		if sy < 0 || sy >= srcH {
			continue
		}
		s := (sy*srcW + x0) * 4
		d := (j*w + (x0 - x)) * 4
		copy(dst[d:d+(x1-x0)*4], src[s:s+(x1-x0)*4])
	}
}

// Color is a normalized RGBA color.
type Color struct {
	R, G, B, A float64
}

// Bytes converts the color to unsigned normalized 8-bit channels.
func (c Color) Bytes() (r, g, b, a byte) {
	return unorm8(c.R), unorm8(c.G), unorm8(c.B), unorm8(c.A)
}

func unorm8(v float64) byte {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(math.Round(v * 255))
}
