package fingerprint

import (
	"bytes"
	"context"
	"errors"
	stdimage "image"
	"image/color"
	"image/png"
	"io"
	"testing"
)

// stubContext is a Context without GraphicsDebugInfo that returns fixed
// pixels.
type stubContext struct {
	pixels []byte
	err    error
	passes []*RenderPass
}

func (c *stubContext) Vendor() string   { return "WebKit" }
func (c *stubContext) Renderer() string { return "WebKit WebGL" }

func (c *stubContext) Render(_ context.Context, pass *RenderPass) ([]byte, error) {
	c.passes = append(c.passes, pass)
	if c.err != nil {
		return nil, c.err
	}
	if c.pixels != nil {
		return c.pixels, nil
	}
	return make([]byte, pass.Readback.Width*pass.Readback.Height*4), nil
}

// stubDebugContext adds GraphicsDebugInfo to stubContext.
type stubDebugContext struct {
	stubContext
	vendor, renderer string
}

func (c *stubDebugContext) UnmaskedVendor() string   { return c.vendor }
func (c *stubDebugContext) UnmaskedRenderer() string { return c.renderer }

// stubSurface returns a fixed context or error.
type stubSurface struct {
	w, h  int
	ctx   Context
	err   error
	calls int
}

func (s *stubSurface) Width() int  { return s.w }
func (s *stubSurface) Height() int { return s.h }

func (s *stubSurface) Context() (Context, error) {
	s.calls++
	return s.ctx, s.err
}

// encodePNG encodes a w×h image whose pixel (x, y) is at(x, y).
func encodePNG(t *testing.T, w, h int, at func(x, y int) color.NRGBA) []byte {
	t.Helper()
	img := stdimage.NewNRGBA(stdimage.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, at(x, y))
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

var red = color.NRGBA{R: 255, A: 255}

// redAsset is the 2×2 solid red reference image.
func redAsset(t *testing.T) Asset {
	t.Helper()
	return BytesAsset("red.png", encodePNG(t, 2, 2, func(int, int) color.NRGBA { return red }))
}

// quadrantAsset is a 2×2 image with top row A B and bottom row C D.
func quadrantAsset(t *testing.T) Asset {
	t.Helper()
	colors := [2][2]color.NRGBA{
		{{R: 10, A: 255}, {R: 20, A: 255}},
		{{R: 30, A: 255}, {R: 40, A: 255}},
	}
	return BytesAsset("quad.png", encodePNG(t, 2, 2, func(x, y int) color.NRGBA { return colors[y][x] }))
}

// blockingAsset never finishes opening until the test ends.
type blockingAsset struct {
	release chan struct{}
}

func newBlockingAsset(t *testing.T) *blockingAsset {
	a := &blockingAsset{release: make(chan struct{})}
	t.Cleanup(func() { close(a.release) })
	return a
}

func (a *blockingAsset) Name() string { return "blocking" }

func (a *blockingAsset) Open() (io.ReadCloser, error) {
	<-a.release
	return nil, errors.New("released")
}

// recorder collects notices.
type recorder struct {
	notices []Notice
}

func (r *recorder) Notify(n Notice) { r.notices = append(r.notices, n) }

func (r *recorder) kinds() []NoticeKind {
	out := make([]NoticeKind, len(r.notices))
	for i, n := range r.notices {
		out[i] = n.Kind
	}
	return out
}

func isLowerHex64(s string) bool {
	if len(s) != 64 {
		return false
	}
	for _, c := range s {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}
