package backend

import (
	"fmt"

	"github.com/gogpu/fingerprint"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU rasterizer backend.
	BackendSoftware = "software"
	// BackendWGPU is the name of the GPU backend (gogpu/wgpu HAL).
	BackendWGPU = "wgpu"
)

// SoftwareBackend is a CPU-based rendering backend.
// It wraps fingerprint.SoftwareSurface.
type SoftwareBackend struct {
	initialized bool
	opts        []fingerprint.SoftwareOption
}

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() RenderBackend {
		return &SoftwareBackend{}
	})
}

// NewSoftwareBackend creates a new software rendering backend. The options
// apply to every surface it creates.
func NewSoftwareBackend(opts ...fingerprint.SoftwareOption) *SoftwareBackend {
	return &SoftwareBackend{opts: opts}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string {
	return BackendSoftware
}

// Init initializes the backend.
func (b *SoftwareBackend) Init() error {
	b.initialized = true
	return nil
}

// Close releases all backend resources.
func (b *SoftwareBackend) Close() {
	b.initialized = false
}

// NewSurface creates a software surface.
func (b *SoftwareBackend) NewSurface(width, height int) (fingerprint.Surface, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("backend: invalid surface size %dx%d", width, height)
	}
	return fingerprint.NewSoftwareSurface(width, height, b.opts...), nil
}
