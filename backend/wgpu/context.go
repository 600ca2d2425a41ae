package wgpu

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/gogpu/fingerprint"
	"github.com/gogpu/fingerprint/internal/raster"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

const (
	targetFormat = gputypes.TextureFormatRGBA8Unorm
	// copyRowAlignment is the required BytesPerRow alignment of
	// texture-to-buffer copies.
	copyRowAlignment = 256
)

// Masked identity strings reported by GPU contexts.
const (
	MaskedVendor   = "gogpu"
	MaskedRenderer = "gogpu wgpu"
)

// gpuContext renders passes on a shared HAL device.
type gpuContext struct {
	dev    *device
	width  int
	height int
}

func (c *gpuContext) Vendor() string   { return MaskedVendor }
func (c *gpuContext) Renderer() string { return MaskedRenderer }

// debugContext adds the adapter identity to a gpuContext.
type debugContext struct {
	*gpuContext
}

func (c debugContext) UnmaskedVendor() string   { return c.dev.info.Vendor }
func (c debugContext) UnmaskedRenderer() string { return c.dev.info.Name }

// Render draws the pass into a fresh render target and reads back the
// requested rectangle, bottom row first.
func (c *gpuContext) Render(ctx context.Context, pass *fingerprint.RenderPass) ([]byte, error) {
	if err := pass.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.dev.mu.Lock()
	defer c.dev.mu.Unlock()
	if c.dev.device == nil {
		return nil, fmt.Errorf("%w: device closed", fingerprint.ErrContextUnavailable)
	}

	r := &passResources{device: c.dev.device}
	defer r.destroy()

	if err := r.build(c.dev, pass, c.width, c.height); err != nil {
		return nil, err
	}
	top, err := r.execute(c.dev, pass, c.width, c.height)
	if err != nil {
		return nil, err
	}

	fb := flipRows(top, c.width, c.height)
	rb := pass.Readback
	out := make([]byte, rb.Width*rb.Height*4)
	raster.ReadPixelsFrom(out, fb, c.width, c.height, rb.X, rb.Y, rb.Width, rb.Height)
	return out, nil
}

// passResources holds the HAL objects of one pass.
type passResources struct {
	device hal.Device

	target     hal.Texture
	targetView hal.TextureView
	source     hal.Texture
	sourceView hal.TextureView
	sampler    hal.Sampler
	bindLayout hal.BindGroupLayout
	bindGroup  hal.BindGroup
	pipeLayout hal.PipelineLayout
	module     hal.ShaderModule
	pipeline   hal.RenderPipeline
	vertices   hal.Buffer
	readback   hal.Buffer
}

func (r *passResources) build(dev *device, pass *fingerprint.RenderPass, width, height int) error {
	d := r.device
	var err error

	r.target, err = d.CreateTexture(&hal.TextureDescriptor{
		Label:         "fingerprint-target",
		Size:          hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        targetFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create target texture: %w", err)
	}
	if r.targetView, err = d.CreateTextureView(r.target, viewDescriptor("fingerprint-target-view")); err != nil {
		return fmt.Errorf("wgpu: create target view: %w", err)
	}

	tex := pass.Texture
	texSize := hal.Extent3D{Width: uint32(tex.Width), Height: uint32(tex.Height), DepthOrArrayLayers: 1}
	r.source, err = d.CreateTexture(&hal.TextureDescriptor{
		Label:         "fingerprint-source",
		Size:          texSize,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        targetFormat,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create source texture: %w", err)
	}
	if r.sourceView, err = d.CreateTextureView(r.source, viewDescriptor("fingerprint-source-view")); err != nil {
		return fmt.Errorf("wgpu: create source view: %w", err)
	}
	err = dev.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: r.source, Aspect: gputypes.TextureAspectAll},
		tex.Pix[:tex.Width*tex.Height*4],
		&hal.ImageDataLayout{BytesPerRow: uint32(tex.Width * 4), RowsPerImage: uint32(tex.Height)},
		&texSize,
	)
	if err != nil {
		return fmt.Errorf("wgpu: upload texture: %w", err)
	}

	if r.sampler, err = d.CreateSampler(samplerDescriptor(pass.Sampler)); err != nil {
		return fmt.Errorf("wgpu: create sampler: %w", err)
	}

	r.bindLayout, err = d.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "fingerprint-bind-layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group layout: %w", err)
	}
	r.bindGroup, err = d.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "fingerprint-bind-group",
		Layout: r.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: r.sourceView.NativeHandle()}},
			{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: r.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group: %w", err)
	}

	r.pipeLayout, err = d.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "fingerprint-pipeline-layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}

	src, err := shaderSource(dev.info.Backend)
	if err != nil {
		return err
	}
	r.module, err = d.CreateShaderModule(&hal.ShaderModuleDescriptor{Label: "fingerprint-passthrough", Source: src})
	if err != nil {
		return fmt.Errorf("wgpu: create shader module: %w", err)
	}

	r.pipeline, err = d.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "fingerprint-pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.module,
			EntryPoint: vertexEntryPoint,
			Buffers:    []gputypes.VertexBufferLayout{vertexBufferLayout(pass.Layout)},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  primitiveTopology(pass.Topology),
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeNone,
		},
		Multisample: gputypes.DefaultMultisampleState(),
		Fragment: &hal.FragmentState{
			Module:     r.module,
			EntryPoint: fragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{Format: targetFormat, WriteMask: gputypes.ColorWriteMaskAll},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create render pipeline: %w", err)
	}

	data := vertexBytes(pass.Vertices)
	if len(data) > 0 {
		r.vertices, err = d.CreateBuffer(&hal.BufferDescriptor{
			Label: "fingerprint-vertices",
			Size:  uint64(len(data)),
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("wgpu: create vertex buffer: %w", err)
		}
		if err := dev.queue.WriteBuffer(r.vertices, 0, data); err != nil {
			return fmt.Errorf("wgpu: upload vertices: %w", err)
		}
	}

	r.readback, err = d.CreateBuffer(&hal.BufferDescriptor{
		Label: "fingerprint-readback",
		Size:  uint64(paddedRowBytes(width) * height),
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create readback buffer: %w", err)
	}
	return nil
}

// execute records, submits and waits for the pass, returning the target's
// pixels as tightly packed rows, top row first.
func (r *passResources) execute(dev *device, pass *fingerprint.RenderPass, width, height int) ([]byte, error) {
	enc, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "fingerprint"})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := enc.BeginEncoding("fingerprint"); err != nil {
		return nil, fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	cc := pass.ClearColor
	rp := enc.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "fingerprint-pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       r.targetView,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: cc.R, G: cc.G, B: cc.B, A: cc.A},
		}},
	})
	if pass.VertexCount > 0 {
		rp.SetPipeline(r.pipeline)
		rp.SetBindGroup(0, r.bindGroup, nil)
		rp.SetVertexBuffer(0, r.vertices, 0)
		rp.Draw(uint32(pass.VertexCount), 1, 0, 0)
	}
	rp.End()

	enc.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.target,
		Range:   hal.TextureRange{Aspect: gputypes.TextureAspectAll},
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	bpr := paddedRowBytes(width)
	enc.CopyTextureToBuffer(r.target, r.readback, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{BytesPerRow: uint32(bpr), RowsPerImage: uint32(height)},
		TextureBase:  hal.ImageCopyTexture{Texture: r.target, Aspect: gputypes.TextureAspectAll},
		Size:         hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
	}})

	cmd, err := enc.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmd)

	if _, err := dev.queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		return nil, fmt.Errorf("wgpu: submit: %w", err)
	}
	if err := r.device.WaitIdle(); err != nil {
		return nil, fmt.Errorf("wgpu: wait idle: %w", err)
	}

	size := uint64(bpr * height)
	m, err := r.device.MapBuffer(r.readback, 0, size)
	if err != nil {
		return nil, fmt.Errorf("wgpu: map readback buffer: %w", err)
	}
	padded := unsafe.Slice((*byte)(m.Ptr), size)
	pixels := unpadRows(padded, width, height, bpr)
	if err := r.device.UnmapBuffer(r.readback); err != nil {
		return nil, fmt.Errorf("wgpu: unmap readback buffer: %w", err)
	}
	return pixels, nil
}

// destroy releases everything build created, dependents first.
func (r *passResources) destroy() {
	d := r.device
	if r.pipeline != nil {
		d.DestroyRenderPipeline(r.pipeline)
	}
	if r.module != nil {
		d.DestroyShaderModule(r.module)
	}
	if r.pipeLayout != nil {
		d.DestroyPipelineLayout(r.pipeLayout)
	}
	if r.bindGroup != nil {
		d.DestroyBindGroup(r.bindGroup)
	}
	if r.bindLayout != nil {
		d.DestroyBindGroupLayout(r.bindLayout)
	}
	if r.sampler != nil {
		d.DestroySampler(r.sampler)
	}
	if r.sourceView != nil {
		d.DestroyTextureView(r.sourceView)
	}
	if r.source != nil {
		d.DestroyTexture(r.source)
	}
	if r.targetView != nil {
		d.DestroyTextureView(r.targetView)
	}
	if r.target != nil {
		d.DestroyTexture(r.target)
	}
	if r.vertices != nil {
		d.DestroyBuffer(r.vertices)
	}
	if r.readback != nil {
		d.DestroyBuffer(r.readback)
	}
}

func viewDescriptor(label string) *hal.TextureViewDescriptor {
	return &hal.TextureViewDescriptor{
		Label:         label,
		Format:        targetFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	}
}

func samplerDescriptor(s fingerprint.SamplerState) *hal.SamplerDescriptor {
	return &hal.SamplerDescriptor{
		Label:        "fingerprint-sampler",
		AddressModeU: addressMode(s.WrapU),
		AddressModeV: addressMode(s.WrapV),
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filterMode(s.MagFilter),
		MinFilter:    filterMode(s.MinFilter),
		MipmapFilter: gputypes.FilterModeNearest,
		LodMaxClamp:  32,
	}
}

func addressMode(w fingerprint.Wrap) gputypes.AddressMode {
	switch w {
	case fingerprint.WrapRepeat:
		return gputypes.AddressModeRepeat
	case fingerprint.WrapMirroredRepeat:
		return gputypes.AddressModeMirrorRepeat
	default:
		return gputypes.AddressModeClampToEdge
	}
}

func filterMode(f fingerprint.Filter) gputypes.FilterMode {
	if f == fingerprint.FilterLinear {
		return gputypes.FilterModeLinear
	}
	return gputypes.FilterModeNearest
}

func primitiveTopology(t fingerprint.Topology) gputypes.PrimitiveTopology {
	if t == fingerprint.TopologyTriangleList {
		return gputypes.PrimitiveTopologyTriangleList
	}
	return gputypes.PrimitiveTopologyTriangleStrip
}

// vertexBufferLayout maps the interleaved layout to shader locations 0
// (position) and 1 (texture coordinate).
func vertexBufferLayout(l fingerprint.VertexLayout) gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: uint64(l.Stride),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: uint64(l.PositionOffset), ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x2, Offset: uint64(l.TexCoordOffset), ShaderLocation: 1},
		},
	}
}

// vertexBytes encodes vertex data as little-endian float32.
func vertexBytes(v []float32) []byte {
	out := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}

// paddedRowBytes returns the row pitch of a copy of width RGBA8 pixels.
func paddedRowBytes(width int) int {
	return (width*4 + copyRowAlignment - 1) &^ (copyRowAlignment - 1)
}

// unpadRows copies height rows of width pixels out of a buffer with the
// given row pitch.
func unpadRows(padded []byte, width, height, pitch int) []byte {
	row := width * 4
	out := make([]byte, row*height)
	for y := range height {
		copy(out[y*row:(y+1)*row], padded[y*pitch:])
	}
	return out
}

// flipRows reverses row order in place and returns pix.
func flipRows(pix []byte, width, height int) []byte {
	row := width * 4
	tmp := make([]byte, row)
	for top, bottom := 0, height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pix[top*row : (top+1)*row]
		b := pix[bottom*row : (bottom+1)*row]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
	return pix
}
