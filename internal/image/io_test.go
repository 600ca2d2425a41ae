package image

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func opaqueSample() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := range 2 {
		for x := range 3 {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 80), G: uint8(y * 120), B: 7, A: 255})
		}
	}
	return img
}

func TestDecodeFormats(t *testing.T) {
	src := opaqueSample()
	tests := []struct {
		name   string
		encode func(io.Writer, image.Image) error
	}{
		{"png", png.Encode},
		{"bmp", bmp.Encode},
		{"tiff", func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.encode(&buf, src); err != nil {
				t.Fatalf("encode error = %v", err)
			}
			got, err := Decode(&buf)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got.Width() != 3 || got.Height() != 2 {
				t.Fatalf("size = %dx%d, want 3x2", got.Width(), got.Height())
			}
			if !bytes.Equal(got.Data(), src.Pix) {
				t.Errorf("data = %v, want %v", got.Data(), src.Pix)
			}
		})
	}
}

func TestDecodePNGKeepsStraightAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	src.SetNRGBA(1, 0, color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(got.Data(), src.Pix) {
		t.Errorf("data = %v, want %v", got.Data(), src.Pix)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("Decode(garbage) error = nil, want error")
	}
}

func TestFromStdImageUnpremultiplies(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 100, G: 50, B: 0, A: 128})

	r, g, b, a := FromStdImage(src).GetRGBA(0, 0)
	if r != 199 || g != 99 || b != 0 || a != 128 {
		t.Errorf("pixel = (%d,%d,%d,%d), want (199,99,0,128)", r, g, b, a)
	}
}

func TestFromStdImageSubImage(t *testing.T) {
	sub := opaqueSample().SubImage(image.Rect(1, 1, 3, 2))

	got := FromStdImage(sub)
	if got.Width() != 2 || got.Height() != 1 {
		t.Fatalf("size = %dx%d, want 2x1", got.Width(), got.Height())
	}
	if r, g, _, _ := got.GetRGBA(0, 0); r != 80 || g != 120 {
		t.Errorf("pixel (0,0) = R%d G%d, want R80 G120", r, g)
	}
}

func TestFromStdImageEmpty(t *testing.T) {
	got := FromStdImage(image.NewNRGBA(image.Rectangle{}))
	if got.Width() != 0 || got.Height() != 0 {
		t.Errorf("size = %dx%d, want 0x0", got.Width(), got.Height())
	}
}
