package wgpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/fingerprint"
	"github.com/gogpu/fingerprint/backend"

	// Register the platform HAL backends.
	_ "github.com/gogpu/wgpu/hal/allbackends"
)

// Backend renders fingerprint passes on a GPU adapter opened through the
// wgpu HAL. It implements backend.RenderBackend.
type Backend struct {
	mu  sync.Mutex
	dev *device
}

func init() {
	backend.Register(backend.BackendWGPU, func() backend.RenderBackend {
		return NewBackend()
	})
}

// NewBackend creates an uninitialized GPU backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendWGPU
}

// Init opens the preferred GPU adapter. It fails with an error wrapping
// both backend.ErrBackendNotAvailable and ErrNoAdapter when the host has
// none.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dev != nil {
		return nil
	}
	dev, err := openDevice()
	if err != nil {
		return fmt.Errorf("%w: %w", backend.ErrBackendNotAvailable, err)
	}
	b.dev = dev
	return nil
}

// Close releases the GPU device.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dev != nil {
		b.dev.close()
		b.dev = nil
	}
}

// Info returns the selected adapter, or false before Init.
func (b *Backend) Info() (GPUInfo, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dev == nil {
		return GPUInfo{}, false
	}
	return b.dev.info, true
}

// NewSurface creates a GPU surface.
func (b *Backend) NewSurface(width, height int) (fingerprint.Surface, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dev == nil {
		return nil, backend.ErrNotInitialized
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("wgpu: invalid surface size %dx%d", width, height)
	}
	return &Surface{dev: b.dev, width: width, height: height}, nil
}
