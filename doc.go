// Package fingerprint derives a semi-stable device identifier from how a
// GPU renders a fixed reference image, combined with the GPU identity and a
// few host environment attributes.
//
// # Overview
//
// One pass collects five values and hashes them:
//
//   - gpuId: unmasked "vendor~renderer" of the graphics driver
//   - renderId: digest of the pixels produced by drawing the reference image
//   - screenId, platformId, timezoneId: host environment attributes
//
// uniqueId is the digest of all of them together with the raw pixel
// payload.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/fingerprint"
//	    "github.com/gogpu/fingerprint/backend"
//	    "github.com/gogpu/fingerprint/hostenv"
//	)
//
//	b, err := backend.InitDefault()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	surface, err := b.NewSurface(800, 500)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fp := fingerprint.New(surface, fingerprint.WithEnvironment(hostenv.New()))
//	res := fp.Run(context.Background())
//	fmt.Println(res.UniqueID)
//
// # Render Pass
//
// The rendering pipeline is described declaratively by RenderPass: a
// textured passthrough program, a full-surface quad drawn as a triangle
// strip, nearest filtering with clamp-to-edge wrapping, an opaque black
// clear and a readback rectangle. Surfaces supply a Context that executes
// the pass. SoftwareSurface rasterizes on the CPU; backend/wgpu runs the
// pass on a GPU through the gogpu HAL.
//
// # Degraded Results
//
// Run never fails. When no rendering context is available, the driver
// identity is hidden or the reference image cannot be loaded, the affected
// fields are empty, a Notice is delivered to the configured Notifier and
// the kind is recorded in Result.Degraded.
//
// # Logging
//
// The package is silent by default. Call SetLogger to route its log/slog
// output.
package fingerprint
