package fingerprint

import (
	"context"
	"fmt"
	"sync"

	"github.com/gogpu/fingerprint/internal/image"
	"github.com/gogpu/fingerprint/internal/parallel"
	"github.com/gogpu/fingerprint/internal/raster"
)

// Masked identity strings reported by the software context.
const (
	SoftwareVendor   = "gogpu"
	SoftwareRenderer = "gogpu software rasterizer"
)

// SoftwareOption configures a SoftwareSurface.
type SoftwareOption func(*SoftwareSurface)

// WithDebugIdentity makes the surface's contexts expose GraphicsDebugInfo
// reporting vendor and renderer.
func WithDebugIdentity(vendor, renderer string) SoftwareOption {
	return func(s *SoftwareSurface) {
		s.debug = &debugIdentity{vendor: vendor, renderer: renderer}
	}
}

// SoftwareSurface is a Surface rendered on the CPU. It is always
// available and produces identical output on every host.
type SoftwareSurface struct {
	width  int
	height int
	debug  *debugIdentity
}

// NewSoftwareSurface creates a software surface. Without WithDebugIdentity
// its contexts do not implement GraphicsDebugInfo.
func NewSoftwareSurface(width, height int, opts ...SoftwareOption) *SoftwareSurface {
	s := &SoftwareSurface{width: width, height: height}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Width returns the surface width in pixels.
func (s *SoftwareSurface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *SoftwareSurface) Height() int { return s.height }

// Context returns a rendering context for the surface.
func (s *SoftwareSurface) Context() (Context, error) {
	if s.width <= 0 || s.height <= 0 {
		return nil, fmt.Errorf("%w: invalid surface size %dx%d", ErrContextUnavailable, s.width, s.height)
	}
	c := &softwareContext{width: s.width, height: s.height}
	if s.debug != nil {
		return &debugSoftwareContext{softwareContext: c, debugIdentity: s.debug}, nil
	}
	return c, nil
}

// rasterPool is shared by every software context for the process lifetime.
var rasterPool = sync.OnceValue(func() *parallel.WorkerPool {
	return parallel.NewWorkerPool(0)
})

type softwareContext struct {
	width  int
	height int
}

func (c *softwareContext) Vendor() string   { return SoftwareVendor }
func (c *softwareContext) Renderer() string { return SoftwareRenderer }

// Render rasterizes the pass into a fresh framebuffer.
func (c *softwareContext) Render(ctx context.Context, pass *RenderPass) ([]byte, error) {
	if err := pass.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fb, err := raster.NewFramebuffer(c.width, c.height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPass, err)
	}
	cc := pass.ClearColor
	fb.Clear(raster.Color{R: cc.R, G: cc.G, B: cc.B, A: cc.A})

	img, err := image.FromRaw(pass.Texture.Pix, pass.Texture.Width, pass.Texture.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPass, err)
	}
	tex := &raster.Texture{
		Image: img,
		Min:   softwareSampler(pass.Sampler, pass.Sampler.MinFilter),
		Mag:   softwareSampler(pass.Sampler, pass.Sampler.MagFilter),
	}

	verts := make([]raster.Vertex, pass.VertexCount)
	for i := range verts {
		x, y, u, v := pass.Vertex(i)
		verts[i] = raster.Vertex{X: float64(x), Y: float64(y), U: float64(u), V: float64(v)}
	}

	pool := rasterPool()
	n := raster.DrawParallel(fb, softwareTopology(pass.Topology), verts, tex.Shade, pool, pool.Workers())
	Logger().Debug("fingerprint: software draw", "fragments", n)

	r := pass.Readback
	return fb.ReadPixels(r.X, r.Y, r.Width, r.Height), nil
}

func softwareSampler(s SamplerState, f Filter) image.Sampler {
	out := image.Sampler{
		WrapU: softwareWrap(s.WrapU),
		WrapV: softwareWrap(s.WrapV),
	}
	if f == FilterLinear {
		out.Filter = image.InterpBilinear
	}
	return out
}

func softwareWrap(w Wrap) image.WrapMode {
	switch w {
	case WrapRepeat:
		return image.WrapRepeat
	case WrapMirroredRepeat:
		return image.WrapMirror
	default:
		return image.WrapClamp
	}
}

func softwareTopology(t Topology) raster.Topology {
	if t == TopologyTriangleList {
		return raster.TriangleList
	}
	return raster.TriangleStrip
}

type debugIdentity struct {
	vendor   string
	renderer string
}

func (d *debugIdentity) UnmaskedVendor() string   { return d.vendor }
func (d *debugIdentity) UnmaskedRenderer() string { return d.renderer }

// debugSoftwareContext is a software context with GraphicsDebugInfo.
type debugSoftwareContext struct {
	*softwareContext
	*debugIdentity
}
