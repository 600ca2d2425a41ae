// Package backend provides a pluggable rendering backend abstraction.
//
// A backend creates fingerprint.Surface values whose contexts execute
// render passes. The software backend is always available; importing
// github.com/gogpu/fingerprint/backend/wgpu registers a GPU backend.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The software backend is automatically registered on import:
//
//	import _ "github.com/gogpu/fingerprint/backend"
//
// # Backend Selection
//
// Use InitDefault() to start the best backend this host supports, or Init()
// to request a specific backend by name:
//
//	b, err := backend.InitDefault()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	surface, err := b.NewSurface(800, 500)
//
// # Available Backends
//
//   - "wgpu": GPU rendering via gogpu/wgpu (import backend/wgpu)
//   - "software": CPU triangle rasterizer (always available)
package backend
