package fingerprint

import (
	"fmt"
)

// Program identifies a shader program in a RenderPass. Programs are
// described declaratively so that each backend can express them in its own
// shading language or implement them natively.
type Program uint8

const (
	// ProgramTexturedPassthrough passes a 2D position and texture coordinate
	// through the vertex stage unchanged; the fragment stage writes the
	// sampled texel unmodified.
	ProgramTexturedPassthrough Program = iota
)

// String returns the program name.
func (p Program) String() string {
	switch p {
	case ProgramTexturedPassthrough:
		return "textured-passthrough"
	default:
		return fmt.Sprintf("Program(%d)", uint8(p))
	}
}

// Filter selects texel filtering.
type Filter uint8

const (
	// FilterNearest selects the texel containing the coordinate.
	FilterNearest Filter = iota

	// FilterLinear blends neighboring texels.
	FilterLinear
)

// Wrap selects how texture coordinates outside [0, 1] are resolved.
type Wrap uint8

const (
	// WrapClampToEdge repeats the edge texel.
	WrapClampToEdge Wrap = iota

	// WrapRepeat tiles the texture.
	WrapRepeat

	// WrapMirroredRepeat tiles the texture, mirroring every other copy.
	WrapMirroredRepeat
)

// SamplerState configures texture sampling.
type SamplerState struct {
	WrapU     Wrap
	WrapV     Wrap
	MinFilter Filter
	MagFilter Filter
}

// Topology selects primitive assembly.
type Topology uint8

const (
	// TopologyTriangleStrip forms one triangle per vertex after the second.
	TopologyTriangleStrip Topology = iota

	// TopologyTriangleList forms one triangle per three vertices.
	TopologyTriangleList
)

// Image is a non-premultiplied RGBA8 image. Row 0 is the first row of Pix.
// As a texture, row 0 is addressed by texture coordinate v = 0.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// VertexLayout describes interleaved float32 vertex data. Stride and
// offsets are in bytes.
type VertexLayout struct {
	Stride         int
	PositionOffset int
	TexCoordOffset int
}

// Color is a normalized RGBA color.
type Color struct {
	R, G, B, A float64
}

// Rect is a rectangle in window coordinates: (X, Y) is the lower-left
// corner and row 0 is the bottom of the surface.
type Rect struct {
	X, Y          int
	Width, Height int
}

// RenderPass is a complete, self-contained description of one draw:
// clear, bind texture and sampler, draw, read back.
type RenderPass struct {
	Program     Program
	Texture     Image
	Sampler     SamplerState
	Vertices    []float32
	Layout      VertexLayout
	Topology    Topology
	VertexCount int
	ClearColor  Color
	Readback    Rect
}

// Validate reports whether the pass can be executed.
func (p *RenderPass) Validate() error {
	if p.Program != ProgramTexturedPassthrough {
		return fmt.Errorf("%w: %v", ErrUnsupportedProgram, p.Program)
	}
	t := p.Texture
	if t.Width <= 0 || t.Height <= 0 || len(t.Pix) < t.Width*t.Height*4 {
		return fmt.Errorf("%w: texture %dx%d with %d bytes", ErrInvalidPass, t.Width, t.Height, len(t.Pix))
	}
	l := p.Layout
	if l.Stride <= 0 || l.Stride%4 != 0 || l.PositionOffset%4 != 0 || l.TexCoordOffset%4 != 0 ||
		l.PositionOffset < 0 || l.TexCoordOffset < 0 ||
		l.PositionOffset+8 > l.Stride || l.TexCoordOffset+8 > l.Stride {
		return fmt.Errorf("%w: vertex layout %+v", ErrInvalidPass, l)
	}
	if p.VertexCount < 0 || p.VertexCount*l.Stride > len(p.Vertices)*4 {
		return fmt.Errorf("%w: %d vertices in %d floats", ErrInvalidPass, p.VertexCount, len(p.Vertices))
	}
	if p.Topology > TopologyTriangleList {
		return fmt.Errorf("%w: topology %d", ErrInvalidPass, p.Topology)
	}
	if p.Readback.Width <= 0 || p.Readback.Height <= 0 {
		return fmt.Errorf("%w: readback %dx%d", ErrInvalidPass, p.Readback.Width, p.Readback.Height)
	}
	return nil
}

// Vertex returns the position and texture coordinate of vertex i.
// The pass must be valid.
func (p *RenderPass) Vertex(i int) (x, y, u, v float32) {
	base := i * p.Layout.Stride / 4
	pos := base + p.Layout.PositionOffset/4
	tex := base + p.Layout.TexCoordOffset/4
	return p.Vertices[pos], p.Vertices[pos+1], p.Vertices[tex], p.Vertices[tex+1]
}

// QuadVertices covers clip space [-1,1]² as a 4-vertex triangle strip,
// interleaving position and texture coordinate.
var QuadVertices = []float32{
	-1, -1, 0, 0,
	1, -1, 1, 0,
	-1, 1, 0, 1,
	1, 1, 1, 1,
}

// QuadLayout is the layout of QuadVertices.
var QuadLayout = VertexLayout{Stride: 16, PositionOffset: 0, TexCoordOffset: 8}

// NearestClampSampler clamps both axes to the edge and uses nearest
// filtering for minification and magnification.
var NearestClampSampler = SamplerState{
	WrapU:     WrapClampToEdge,
	WrapV:     WrapClampToEdge,
	MinFilter: FilterNearest,
	MagFilter: FilterNearest,
}
