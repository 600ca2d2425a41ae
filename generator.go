package fingerprint

import (
	"context"
	"fmt"
	"time"

	"github.com/gogpu/fingerprint/internal/image"
)

// ReadbackMode selects the rectangle read back after the draw.
type ReadbackMode uint8

const (
	// ReadbackSwapped reads a rectangle of surface-height columns by
	// surface-width rows, with the two extents exchanged. This reproduces
	// the reference fingerprint bit for bit. On a non-square surface part of
	// the rectangle lies outside the framebuffer and reads as zero.
	ReadbackSwapped ReadbackMode = iota

	// ReadbackExact reads the whole surface.
	ReadbackExact
)

// String returns the mode name.
func (m ReadbackMode) String() string {
	switch m {
	case ReadbackSwapped:
		return "swapped"
	case ReadbackExact:
		return "exact"
	default:
		return fmt.Sprintf("ReadbackMode(%d)", uint8(m))
	}
}

// ParseReadbackMode parses "swapped" or "exact".
func ParseReadbackMode(s string) (ReadbackMode, error) {
	switch s {
	case "swapped", "":
		return ReadbackSwapped, nil
	case "exact":
		return ReadbackExact, nil
	default:
		return 0, fmt.Errorf("fingerprint: unknown readback mode %q", s)
	}
}

// Rect returns the readback rectangle for a width×height surface.
func (m ReadbackMode) Rect(width, height int) Rect {
	if m == ReadbackExact {
		return Rect{Width: width, Height: height}
	}
	return Rect{Width: height, Height: width}
}

// DefaultAssetTimeout bounds the wait for the reference image.
const DefaultAssetTimeout = 30 * time.Second

// Generator renders the reference image through a fixed pipeline and
// returns the readback as a Payload.
type Generator struct {
	// Asset is the reference image. Nil selects DefaultAsset.
	Asset Asset

	// Readback selects the readback rectangle.
	Readback ReadbackMode

	// AssetTimeout bounds the wait for the image. Zero waits until ctx ends.
	AssetTimeout time.Duration
}

// Generate runs one render pass on c for a width×height surface.
//
// The pass loads the asset asynchronously and waits for it; this is the
// only point where Generate blocks on something other than c. The image is
// uploaded with its rows flipped, sampled with NearestClampSampler, drawn
// as a full-surface quad over opaque black and read back into a buffer of
// height×width×4 bytes.
//
// A nil c returns ErrContextUnavailable without loading the asset.
func (g *Generator) Generate(ctx context.Context, c Context, width, height int) (Payload, error) {
	if c == nil {
		return Payload{}, ErrContextUnavailable
	}

	asset := g.Asset
	if asset == nil {
		asset = DefaultAsset()
	}
	future := LoadImage(asset)

	waitCtx := ctx
	if g.AssetTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, g.AssetTimeout)
		defer cancel()
	}
	img, err := future.Await(waitCtx)
	if err != nil {
		return Payload{}, err
	}

	pass := g.pass(img, width, height)
	log := Logger()
	log.Debug("fingerprint: render pass",
		"asset", asset.Name(),
		"texture", fmt.Sprintf("%dx%d", img.Width, img.Height),
		"surface", fmt.Sprintf("%dx%d", width, height),
		"readback", fmt.Sprintf("%dx%d", pass.Readback.Width, pass.Readback.Height),
		"mode", g.Readback.String())

	pixels, err := c.Render(ctx, pass)
	if err != nil {
		return Payload{}, fmt.Errorf("fingerprint: render: %w", err)
	}

	buf := make([]byte, height*width*4)
	if len(pixels) != len(buf) {
		return Payload{}, fmt.Errorf("%w: readback returned %d bytes, want %d", ErrInvalidPass, len(pixels), len(buf))
	}
	copy(buf, pixels)

	log.Debug("fingerprint: readback complete", "bytes", len(buf))
	return NewPayload(buf), nil
}

// pass describes the draw for a decoded image.
func (g *Generator) pass(img Image, width, height int) *RenderPass {
	return &RenderPass{
		Program:     ProgramTexturedPassthrough,
		Texture:     flipRows(img),
		Sampler:     NearestClampSampler,
		Vertices:    QuadVertices,
		Layout:      QuadLayout,
		Topology:    TopologyTriangleStrip,
		VertexCount: 4,
		ClearColor:  Color{R: 0, G: 0, B: 0, A: 1},
		Readback:    g.Readback.Rect(width, height),
	}
}

// flipRows returns img with its row order reversed, as a texture upload
// with vertical flip stores it.
func flipRows(img Image) Image {
	buf, err := image.FromRaw(img.Pix, img.Width, img.Height)
	if err != nil {
		return img
	}
	f := buf.FlippedVertical()
	return Image{Width: f.Width(), Height: f.Height(), Pix: f.Data()}
}
