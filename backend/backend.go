package backend

import (
	"errors"

	"github.com/gogpu/fingerprint"
)

var (
	// ErrBackendNotAvailable is returned when a backend is unknown or
	// cannot run on this host.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned by NewSurface before Init succeeded.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// RenderBackend provides surfaces whose rendering contexts execute
// fingerprint render passes on one kind of device.
//
// The lifecycle is Init, any number of NewSurface calls, then Close.
type RenderBackend interface {
	// Name returns the registry name, such as BackendSoftware.
	Name() string

	// Init acquires the device. It returns an error wrapping
	// ErrBackendNotAvailable when the host has no suitable device.
	Init() error

	// Close releases the device. Surfaces obtained from the backend stop
	// producing contexts afterwards.
	Close()

	// NewSurface returns a width×height surface rendered by this backend.
	NewSurface(width, height int) (fingerprint.Surface, error)
}
