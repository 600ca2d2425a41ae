package wgpu

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/fingerprint"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoAdapter is returned when no hardware adapter can be opened.
var ErrNoAdapter = errors.New("wgpu: no GPU adapter available")

// GPUInfo contains information about the selected GPU.
type GPUInfo struct {
	// Name is the GPU name (e.g., "NVIDIA GeForce RTX 3080").
	Name string
	// Vendor is the GPU vendor.
	Vendor string
	// DeviceType is the type of GPU (discrete, integrated, etc.).
	DeviceType gputypes.DeviceType
	// Backend is the graphics API in use (Vulkan, Metal, DX12).
	Backend gputypes.Backend
	// Driver is the driver version string.
	Driver string
}

// String returns a human-readable description of the GPU.
func (g *GPUInfo) String() string {
	return fmt.Sprintf("%s (%s, %s)", g.Name, g.DeviceType, g.Backend)
}

func gpuInfoFrom(info gputypes.AdapterInfo) GPUInfo {
	return GPUInfo{
		Name:       info.Name,
		Vendor:     info.Vendor,
		DeviceType: info.DeviceType,
		Backend:    info.Backend,
		Driver:     info.Driver,
	}
}

// device is an opened HAL device shared by every surface of a backend.
// Passes are serialized on mu.
type device struct {
	mu       sync.Mutex
	instance hal.Instance // nil for external devices
	device   hal.Device
	queue    hal.Queue
	info     GPUInfo
	external bool
}

// adapterRank orders device types from most to least preferred.
func adapterRank(t gputypes.DeviceType) int {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return 0
	case gputypes.DeviceTypeIntegratedGPU:
		return 1
	case gputypes.DeviceTypeVirtualGPU:
		return 2
	case gputypes.DeviceTypeCPU:
		return 4
	default:
		return 3
	}
}

// sortAdapters orders adapters by preference, keeping enumeration order
// among equals.
func sortAdapters(adapters []hal.ExposedAdapter) {
	slices.SortStableFunc(adapters, func(a, b hal.ExposedAdapter) int {
		return adapterRank(a.Info.DeviceType) - adapterRank(b.Info.DeviceType)
	})
}

// openDevice opens the preferred adapter across all registered hardware
// backends. The software HAL registers as BackendEmpty and is skipped: the
// fingerprint package has its own CPU surface.
func openDevice() (*device, error) {
	variants := hal.AvailableBackends()
	slices.Sort(variants)

	var errs []error
	for _, variant := range variants {
		if variant == gputypes.BackendEmpty {
			continue
		}
		b, ok := hal.GetBackend(variant)
		if !ok {
			continue
		}
		d, err := openOn(b)
		if err != nil {
			fingerprint.Logger().Debug("wgpu: backend unusable", "backend", variant, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", variant, err))
			continue
		}
		return d, nil
	}
	if len(errs) == 0 {
		return nil, ErrNoAdapter
	}
	return nil, fmt.Errorf("%w: %w", ErrNoAdapter, errors.Join(errs...))
}

func openOn(b hal.Backend) (*device, error) {
	instance, err := b.CreateInstance(&hal.InstanceDescriptor{})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	sortAdapters(adapters)

	for _, a := range adapters {
		open, err := a.Adapter.Open(0, gputypes.DefaultLimits())
		if err != nil {
			fingerprint.Logger().Debug("wgpu: adapter open failed", "adapter", a.Info.Name, "err", err)
			continue
		}
		info := gpuInfoFrom(a.Info)
		fingerprint.Logger().Info("wgpu: GPU selected", "gpu", info.String(), "driver", info.Driver)
		return &device{
			instance: instance,
			device:   open.Device,
			queue:    open.Queue,
			info:     info,
		}, nil
	}

	instance.Destroy()
	return nil, ErrNoAdapter
}

// close releases the device unless it belongs to an external provider.
func (d *device) close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.external || d.device == nil {
		return
	}
	if err := d.device.WaitIdle(); err != nil {
		fingerprint.Logger().Warn("wgpu: wait idle on close", "err", err)
	}
	d.device.Destroy()
	d.device = nil
	d.queue = nil
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}
