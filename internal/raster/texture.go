package raster

import (
	"math"

	"github.com/gogpu/fingerprint/internal/image"
)

// Texture is a sampled 2D texture with separate minification and
// magnification samplers. Texture row 0 is addressed by V = 0.
type Texture struct {
	Image *image.ImageBuf
	Min   image.Sampler
	Mag   image.Sampler
}

// Minified reports whether a fragment maps more than one texel onto a
// pixel along either screen axis, which selects the Min sampler.
func (t *Texture) Minified(f Fragment) bool {
	w, h := t.Image.Bounds()
	sx := math.Hypot(f.DUDX*float64(w), f.DVDX*float64(h))
	sy := math.Hypot(f.DUDY*float64(w), f.DVDY*float64(h))
	return max(sx, sy) > 1
}

// Shade samples the texture at the fragment's coordinate. It is the
// fragment stage of a textured passthrough program.
func (t *Texture) Shade(f Fragment) (r, g, b, a byte) {
	s := t.Mag
	if t.Minified(f) {
		s = t.Min
	}
	return s.Sample(t.Image, f.U, f.V)
}
