package image

import "math"

// InterpolationMode defines how texture sampling is performed.
type InterpolationMode uint8

const (
	// InterpNearest selects the texel containing the coordinate.
	InterpNearest InterpolationMode = iota

	// InterpBilinear blends the four nearest texels.
	InterpBilinear
)

// String returns a string representation of the interpolation mode.
func (m InterpolationMode) String() string {
	switch m {
	case InterpNearest:
		return "Nearest"
	case InterpBilinear:
		return "Bilinear"
	default:
		return "Unknown"
	}
}

// WrapMode defines how texel coordinates outside the image are resolved.
type WrapMode uint8

const (
	// WrapClamp repeats the edge texel.
	WrapClamp WrapMode = iota

	// WrapRepeat tiles the image.
	WrapRepeat

	// WrapMirror tiles the image, mirroring every other copy.
	WrapMirror
)

// String returns a string representation of the wrap mode.
func (m WrapMode) String() string {
	switch m {
	case WrapClamp:
		return "Clamp"
	case WrapRepeat:
		return "Repeat"
	case WrapMirror:
		return "Mirror"
	default:
		return "Unknown"
	}
}

// Wrap resolves texel index i into [0, n) using the wrap mode.
func (m WrapMode) Wrap(i, n int) int {
	switch m {
	case WrapRepeat:
		i %= n
		if i < 0 {
			i += n
		}
		return i
	case WrapMirror:
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
		return i
	default:
		return clamp(i, 0, n-1)
	}
}

// Sampler describes how normalized texture coordinates map to texels.
// Texture coordinate (0,0) addresses the first texel of row 0.
type Sampler struct {
	WrapU  WrapMode
	WrapV  WrapMode
	Filter InterpolationMode
}

// Sample reads the image at normalized coordinates (u, v).
func (s Sampler) Sample(img *ImageBuf, u, v float64) (r, g, b, a byte) {
	if s.Filter == InterpBilinear {
		return s.sampleBilinear(img, u, v)
	}
	return s.sampleNearest(img, u, v)
}

func (s Sampler) sampleNearest(img *ImageBuf, u, v float64) (r, g, b, a byte) {
	w, h := img.Bounds()

	// Floor selects the texel containing the coordinate.
	x := s.WrapU.Wrap(int(math.Floor(u*float64(w))), w)
	y := s.WrapV.Wrap(int(math.Floor(v*float64(h))), h)

	return img.GetRGBA(x, y)
}

func (s Sampler) sampleBilinear(img *ImageBuf, u, v float64) (r, g, b, a byte) {
	w, h := img.Bounds()

	fx := u*float64(w) - 0.5
	fy := v*float64(h) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := s.WrapU.Wrap(x0+1, w)
	y1 := s.WrapV.Wrap(y0+1, h)
	x0 = s.WrapU.Wrap(x0, w)
	y0 = s.WrapV.Wrap(y0, h)

	r00, g00, b00, a00 := img.GetRGBA(x0, y0)
	r10, g10, b10, a10 := img.GetRGBA(x1, y0)
	r01, g01, b01, a01 := img.GetRGBA(x0, y1)
	r11, g11, b11, a11 := img.GetRGBA(x1, y1)

	r = unorm8(lerp2D(float64(r00), float64(r10), float64(r01), float64(r11), tx, ty))
	g = unorm8(lerp2D(float64(g00), float64(g10), float64(g01), float64(g11), tx, ty))
	b = unorm8(lerp2D(float64(b00), float64(b10), float64(b01), float64(b11), tx, ty))
	a = unorm8(lerp2D(float64(a00), float64(a10), float64(a01), float64(a11), tx, ty))

	return r, g, b, a
}

// clamp clamps an integer value to [minVal, maxVal].
//
//nolint:unparam // minVal is always 0 currently, but function is general-purpose
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// unorm8 rounds a channel value in [0, 255] to the nearest byte.
func unorm8(v float64) byte {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v + 0.5)
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	v0 := lerp(v00, v10, tx)
	v1 := lerp(v01, v11, tx)
	return lerp(v0, v1, ty)
}
