// Package wgpu provides a GPU rendering backend for fingerprint passes
// using gogpu/wgpu.
//
// It uses the gogpu/wgpu Pure Go WebGPU HAL, which supports Vulkan, Metal,
// DX12 and GLES depending on the platform. Importing the package registers
// the "wgpu" backend with the backend registry:
//
//	import _ "github.com/gogpu/fingerprint/backend/wgpu"
//
// # Adapter Selection
//
// Init walks the registered HAL backends and opens the first adapter in
// order of preference: discrete, integrated, virtual, other, CPU. The
// software HAL is skipped; use the "software" backend for CPU rendering.
//
// # Render Pass
//
// Every pass builds its own resources: a render target, the uploaded source
// texture, a sampler, the passthrough pipeline (WGSL compiled to SPIR-V by
// naga on Vulkan) and a vertex buffer. The target is copied into a mappable
// buffer with 256-byte aligned rows, unpadded and flipped so the readback is
// bottom row first like the software rasterizer.
//
// # Identity
//
// Contexts report the masked vendor "gogpu" and renderer "gogpu wgpu". When
// the adapter reports a name they also implement
// fingerprint.GraphicsDebugInfo with the adapter's vendor and name.
//
// # Shared Devices
//
// NewSurfaceFromProvider renders on a device owned by the host, for example
// a gogpu window, through its gpucontext.DeviceProvider.
package wgpu
