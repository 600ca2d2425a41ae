package wgpu

import (
	"errors"
	"strings"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrProviderNotHAL is returned when a device provider does not expose
// HAL device and queue handles.
var ErrProviderNotHAL = errors.New("wgpu: provider does not expose HAL types")

// halProvider is implemented by providers sharing their HAL objects, such
// as a gogpu application window.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// NewSurfaceFromProvider creates a surface rendering on a device owned by
// the host application. The device is never destroyed by this package.
//
// The provider must implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue.
func NewSurfaceFromProvider(provider gpucontext.DeviceProvider, width, height int) (*Surface, error) {
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrProviderNotHAL
	}
	dev, ok := hp.HalDevice().(hal.Device)
	if !ok || dev == nil {
		return nil, ErrProviderNotHAL
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, ErrProviderNotHAL
	}

	return &Surface{
		dev: &device{
			device:   dev,
			queue:    queue,
			info:     providerInfo(provider.AdapterInfo()),
			external: true,
		},
		width:  width,
		height: height,
	}, nil
}

// providerInfo derives GPUInfo from the provider's adapter description.
// The vendor is the first word of the adapter name.
func providerInfo(ai gpucontext.AdapterInfo) GPUInfo {
	info := GPUInfo{Name: ai.Name}
	if vendor, _, ok := strings.Cut(ai.Name, " "); ok {
		info.Vendor = vendor
	}
	switch ai.Type {
	case gpucontext.AdapterTypeDiscrete:
		info.DeviceType = gputypes.DeviceTypeDiscreteGPU
	case gpucontext.AdapterTypeIntegrated:
		info.DeviceType = gputypes.DeviceTypeIntegratedGPU
	case gpucontext.AdapterTypeSoftware:
		info.DeviceType = gputypes.DeviceTypeCPU
	default:
		info.DeviceType = gputypes.DeviceTypeOther
	}
	return info
}
