package fingerprint

import "context"

// Surface is a drawable area of fixed pixel dimensions owned by the host.
// The fingerprint pipeline never creates or resizes a surface; it only asks
// it for a rendering context.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Context returns a 3D rendering context bound to the surface.
	// It returns an error wrapping ErrContextUnavailable when the host
	// cannot provide one.
	Context() (Context, error)
}

// Context is a 3D rendering context able to execute a RenderPass.
//
// Vendor and Renderer return the masked strings a context reports to any
// caller. The real strings are only available through the optional
// GraphicsDebugInfo capability.
type Context interface {
	Vendor() string
	Renderer() string

	// Render executes pass against the context's surface and returns the
	// pixels of pass.Readback as tightly packed RGBA8, bottom row first.
	// Each call starts from a fresh framebuffer; nothing from a previous
	// pass is observable.
	Render(ctx context.Context, pass *RenderPass) ([]byte, error)
}

// GraphicsDebugInfo is an optional capability of a Context exposing the
// unmasked vendor and renderer strings of the graphics driver.
type GraphicsDebugInfo interface {
	UnmaskedVendor() string
	UnmaskedRenderer() string
}
