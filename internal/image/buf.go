// Package image holds decoded reference images as tightly packed RGBA8
// buffers ready for texture upload.
//
// Pixels are stored non-premultiplied, which is what a texture upload of a
// decoded image sees when no premultiply-alpha unpack flag is set.
package image

import (
	"errors"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// BytesPerPixel is the size of one RGBA8 pixel.
const BytesPerPixel = 4

// ImageBuf is a non-premultiplied RGBA8 image with rows stored in order,
// row 0 first. The stride is always Width()*BytesPerPixel.
//
// ImageBuf is safe for concurrent reads. Writes require external
// synchronization.
type ImageBuf struct {
	data   []byte
	width  int
	height int
}

// NewImageBuf creates a zeroed (transparent black) buffer.
func NewImageBuf(width, height int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &ImageBuf{
		data:   make([]byte, width*height*BytesPerPixel),
		width:  width,
		height: height,
	}, nil
}

// FromRaw wraps existing RGBA8 data without copying.
// The caller must not modify data while the ImageBuf is in use.
func FromRaw(data []byte, width, height int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	n := width * height * BytesPerPixel
	if len(data) < n {
		return nil, ErrDataTooSmall
	}
	return &ImageBuf{data: data[:n], width: width, height: height}, nil
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int { return b.width }

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int { return b.height }

// Stride returns the number of bytes per row.
func (b *ImageBuf) Stride() int { return b.width * BytesPerPixel }

// Bounds returns the image dimensions.
func (b *ImageBuf) Bounds() (int, int) { return b.width, b.height }

// Data returns the underlying pixel data.
func (b *ImageBuf) Data() []byte { return b.data }

// RowBytes returns the bytes of row y, or nil when y is out of range.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	s := b.Stride()
	return b.data[y*s : (y+1)*s]
}

// GetRGBA returns the pixel at (x, y). Out-of-bounds reads return zero.
func (b *ImageBuf) GetRGBA(x, y int) (r, g, bl, a uint8) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0, 0, 0, 0
	}
	i := (y*b.width + x) * BytesPerPixel
	p := b.data[i : i+4 : i+4]
	return p[0], p[1], p[2], p[3]
}

// SetRGBA writes the pixel at (x, y).
func (b *ImageBuf) SetRGBA(x, y int, r, g, bl, a uint8) error {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return ErrOutOfBounds
	}
	i := (y*b.width + x) * BytesPerPixel
	p := b.data[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = r, g, bl, a
	return nil
}

// FlippedVertical returns a copy of the image with the row order reversed.
// The receiver is left untouched so a decoded asset can be shared between
// passes.
func (b *ImageBuf) FlippedVertical() *ImageBuf {
	out := &ImageBuf{
		data:   make([]byte, len(b.data)),
		width:  b.width,
		height: b.height,
	}
	s := b.Stride()
	for y := range b.height {
		copy(out.data[(b.height-1-y)*s:], b.data[y*s:(y+1)*s])
	}
	return out
}
