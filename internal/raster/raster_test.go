package raster

import (
	"bytes"
	"testing"

	"github.com/gogpu/fingerprint/internal/image"
)

// fullQuad is the clip-space quad as a 4-vertex triangle strip.
var fullQuad = []Vertex{
	{X: -1, Y: -1, U: 0, V: 0},
	{X: 1, Y: -1, U: 1, V: 0},
	{X: -1, Y: 1, U: 0, V: 1},
	{X: 1, Y: 1, U: 1, V: 1},
}

func TestAssembleStripKeepsWinding(t *testing.T) {
	tris := Assemble(TriangleStrip, fullQuad)
	if len(tris) != 2 {
		t.Fatalf("Assemble() = %d triangles, want 2", len(tris))
	}
	for i, tri := range tris {
		var p [3]point
		for j, v := range tri {
			p[j] = point{int64(v.X * 4), int64(v.Y * 4)}
		}
		if a := edge(p[0], p[1], p[2]); a <= 0 {
			t.Errorf("triangle %d signed area = %d, want positive", i, a)
		}
	}
}

func TestAssembleDropsIncomplete(t *testing.T) {
	if got := len(Assemble(TriangleList, fullQuad)); got != 1 {
		t.Errorf("Assemble(list, 4 vertices) = %d triangles, want 1", got)
	}
	if got := len(Assemble(TriangleStrip, fullQuad[:2])); got != 0 {
		t.Errorf("Assemble(strip, 2 vertices) = %d triangles, want 0", got)
	}
}

func TestDrawCoversEveryPixelOnce(t *testing.T) {
	sizes := []struct{ w, h int }{{1, 1}, {4, 4}, {7, 3}, {800, 500}, {500, 800}}

	for _, s := range sizes {
		fb, err := NewFramebuffer(s.w, s.h)
		if err != nil {
			t.Fatalf("NewFramebuffer() error = %v", err)
		}
		hits := make([]int, s.w*s.h)
		n := Draw(fb, TriangleStrip, fullQuad, func(f Fragment) (r, g, b, a byte) {
			hits[f.Y*s.w+f.X]++
			return 1, 1, 1, 1
		})
		if n != s.w*s.h {
			t.Errorf("%dx%d: Draw() = %d fragments, want %d", s.w, s.h, n, s.w*s.h)
		}
		for i, c := range hits {
			if c != 1 {
				t.Errorf("%dx%d: pixel %d covered %d times, want 1", s.w, s.h, i, c)
				break
			}
		}
	}
}

func TestDrawInterpolatesTexCoords(t *testing.T) {
	fb, _ := NewFramebuffer(4, 2)
	Draw(fb, TriangleStrip, fullQuad, func(f Fragment) (r, g, b, a byte) {
		wantU := (float64(f.X) + 0.5) / 4
		wantV := (float64(f.Y) + 0.5) / 2
		if diff(f.U, wantU) > 1e-9 || diff(f.V, wantV) > 1e-9 {
			t.Errorf("fragment (%d,%d) uv = (%v,%v), want (%v,%v)", f.X, f.Y, f.U, f.V, wantU, wantV)
		}
		if diff(f.DUDX, 0.25) > 1e-9 || diff(f.DVDY, 0.5) > 1e-9 || f.DUDY != 0 || f.DVDX != 0 {
			t.Errorf("fragment (%d,%d) derivatives = %+v", f.X, f.Y, f)
		}
		return 0, 0, 0, 0
	})
}

func TestDrawRejectsDegenerate(t *testing.T) {
	fb, _ := NewFramebuffer(4, 4)
	line := []Vertex{{X: -1, Y: -1}, {X: 0, Y: 0}, {X: 1, Y: 1}}
	if n := Draw(fb, TriangleList, line, nil); n != 0 {
		t.Errorf("Draw(degenerate) = %d fragments, want 0", n)
	}
}

func TestClearAndReadPixels(t *testing.T) {
	fb, _ := NewFramebuffer(2, 2)
	fb.Clear(Color{R: 0, G: 0, B: 0, A: 1})
	fb.Set(1, 1, 9, 8, 7, 6)

	got := fb.ReadPixels(0, 0, 2, 2)
	want := []byte{
		0, 0, 0, 255, 0, 0, 0, 255,
		0, 0, 0, 255, 9, 8, 7, 6,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ReadPixels() = %v, want %v", got, want)
	}
}

func TestReadPixelsOutsideIsZero(t *testing.T) {
	fb, _ := NewFramebuffer(2, 1)
	fb.Clear(Color{R: 1, A: 1})

	got := fb.ReadPixels(1, 0, 2, 2)
	want := []byte{
		255, 0, 0, 255, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ReadPixels() = %v, want %v", got, want)
	}

	if got := fb.ReadPixels(-1, -1, 2, 2); got[12] != 255 || got[0] != 0 {
		t.Errorf("ReadPixels(-1,-1) = %v, want only last pixel set", got)
	}
}

func TestColorBytes(t *testing.T) {
	r, g, b, a := Color{R: 0.5, G: -1, B: 2, A: 1}.Bytes()
	if r != 128 || g != 0 || b != 255 || a != 255 {
		t.Errorf("Bytes() = (%d,%d,%d,%d), want (128,0,255,255)", r, g, b, a)
	}
}

func TestTextureShadeQuadrants(t *testing.T) {
	img, _ := image.NewImageBuf(2, 2)
	_ = img.SetRGBA(0, 0, 1, 0, 0, 255)
	_ = img.SetRGBA(1, 0, 2, 0, 0, 255)
	_ = img.SetRGBA(0, 1, 3, 0, 0, 255)
	_ = img.SetRGBA(1, 1, 4, 0, 0, 255)

	tex := &Texture{Image: img}
	fb, _ := NewFramebuffer(4, 4)
	Draw(fb, TriangleStrip, fullQuad, tex.Shade)

	want := [4][4]byte{
		{1, 1, 2, 2},
		{1, 1, 2, 2},
		{3, 3, 4, 4},
		{3, 3, 4, 4},
	}
	for y := range 4 {
		for x := range 4 {
			if r, _, _, _ := fb.At(x, y); r != want[y][x] {
				t.Errorf("pixel (%d,%d) R = %d, want %d", x, y, r, want[y][x])
			}
		}
	}
}

func TestTextureMinifiedSelection(t *testing.T) {
	img, _ := image.NewImageBuf(8, 8)
	tex := &Texture{Image: img}

	if tex.Minified(Fragment{DUDX: 1.0 / 16, DVDY: 1.0 / 16}) {
		t.Error("Minified() = true for magnified fragment")
	}
	if !tex.Minified(Fragment{DUDX: 1.0 / 2, DVDY: 1.0 / 16}) {
		t.Error("Minified() = false for minified fragment")
	}
}

func diff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
