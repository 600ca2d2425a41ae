package image

import (
	"fmt"
	"image"
	"image/color"
	"io"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode decodes an image from the given reader, auto-detecting the format.
// PNG, JPEG, GIF, BMP, TIFF and WebP are supported.
func Decode(r io.Reader) (*ImageBuf, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img), nil
}

// FromStdImage converts a standard library image to non-premultiplied RGBA8.
func FromStdImage(img image.Image) *ImageBuf {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return &ImageBuf{}
	}

	buf, _ := NewImageBuf(width, height)

	// Fast path: the layout already matches.
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range height {
			start := (y+bounds.Min.Y-nrgba.Rect.Min.Y)*nrgba.Stride + (bounds.Min.X-nrgba.Rect.Min.X)*4
			copy(buf.RowBytes(y), nrgba.Pix[start:start+width*4])
		}
		return buf
	}

	for y := range height {
		for x := range width {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			_ = buf.SetRGBA(x, y, c.R, c.G, c.B, c.A)
		}
	}
	return buf
}
