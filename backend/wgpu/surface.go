package wgpu

import (
	"fmt"

	"github.com/gogpu/fingerprint"
)

// Surface is a fingerprint.Surface rendered on a GPU through the wgpu HAL.
type Surface struct {
	dev    *device
	width  int
	height int
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// Info returns the adapter the surface renders on.
func (s *Surface) Info() GPUInfo { return s.dev.info }

// Context returns a rendering context. It implements
// fingerprint.GraphicsDebugInfo when the adapter reports a name.
func (s *Surface) Context() (fingerprint.Context, error) {
	if s.width <= 0 || s.height <= 0 {
		return nil, fmt.Errorf("%w: invalid surface size %dx%d", fingerprint.ErrContextUnavailable, s.width, s.height)
	}

	s.dev.mu.Lock()
	closed := s.dev.device == nil
	s.dev.mu.Unlock()
	if closed {
		return nil, fmt.Errorf("%w: device closed", fingerprint.ErrContextUnavailable)
	}

	c := &gpuContext{dev: s.dev, width: s.width, height: s.height}
	if s.dev.info.Name == "" {
		return c, nil
	}
	return debugContext{c}, nil
}
