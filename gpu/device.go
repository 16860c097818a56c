//go:build !nogpu

// Package gpu provides a GPU-backed executor for descriptor evaluation
// using gogpu/wgpu.
package gpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"

	"github.com/gogpu/tess"
)

// ErrNoAdapter is returned when no suitable GPU adapter is available.
var ErrNoAdapter = errors.New("gpu: no suitable adapter")

// ErrNotInitialized is returned when a device or executor is used before
// initialization or after release.
var ErrNotInitialized = errors.New("gpu: not initialized")

// Info contains information about the selected GPU.
type Info struct {
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
func (i *Info) String() string {
	return fmt.Sprintf("%s (%s, %s)", i.Name, i.DeviceType, i.Backend)
}

// Device owns the GPU resources needed to dispatch evaluation work:
// instance, adapter, logical device, and command queue. Create one with
// NewDevice, initialize it with Init, reuse it across invocations, and
// release it explicitly with Close.
type Device struct {
	mu sync.RWMutex

	instance *core.Instance
	adapter  core.AdapterID
	device   core.DeviceID
	queue    core.QueueID

	info *Info

	initialized bool
}

// NewDevice creates a new device wrapper. It must be initialized with
// Init before use.
func NewDevice() *Device {
	return &Device{}
}

// Init creates the GPU resources: instance, adapter (preferring a high
// performance GPU), logical device, and queue.
//
// Returns an error if GPU initialization fails; the device is then left
// uninitialized and safe to Close.
func (d *Device) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.initialized {
		return nil
	}

	// Step 1: Create Instance
	d.instance = core.NewInstance(&gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
		Flags:    0,
	})

	// Step 2: Request Adapter (prefer high performance GPU)
	adapterID, err := d.instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoAdapter, err)
	}
	d.adapter = adapterID

	if info, err := core.GetAdapterInfo(adapterID); err == nil {
		d.info = &Info{
			Name:       info.Name,
			Vendor:     info.Vendor,
			DeviceType: info.DeviceType,
			Backend:    info.Backend,
			Driver:     info.Driver,
		}
		tess.Logger().Info("gpu: adapter selected", "gpu", d.info.String(), "driver", d.info.Driver)
	}

	// Step 3: Create Device
	deviceID, err := core.RequestDevice(adapterID, &gputypes.DeviceDescriptor{
		Label:            "tess-device",
		RequiredFeatures: nil,
		RequiredLimits:   gputypes.DefaultLimits(),
	})
	if err != nil {
		return fmt.Errorf("gpu: device creation failed: %w", err)
	}
	d.device = deviceID

	// Step 4: Get Queue
	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		// Cleanup on failure
		_ = core.DeviceDrop(deviceID)
		d.device = core.DeviceID{}
		return fmt.Errorf("gpu: queue retrieval failed: %w", err)
	}
	d.queue = queueID

	d.initialized = true
	return nil
}

// Info returns information about the selected GPU, or nil before Init.
func (d *Device) Info() *Info {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.info
}

// IsInitialized returns whether Init completed successfully.
func (d *Device) IsInitialized() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.initialized
}

// Close releases all GPU resources in reverse order of creation.
// The device should not be used after Close.
func (d *Device) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Queue is released when the device is dropped.
	if !d.device.IsZero() {
		if err := core.DeviceDrop(d.device); err != nil {
			tess.Logger().Warn("gpu: error releasing device", "error", err)
		}
		d.device = core.DeviceID{}
	}

	if !d.adapter.IsZero() {
		if err := core.AdapterDrop(d.adapter); err != nil {
			tess.Logger().Warn("gpu: error releasing adapter", "error", err)
		}
		d.adapter = core.AdapterID{}
	}

	// Instance doesn't need explicit cleanup in the current implementation
	d.instance = nil
	d.queue = core.QueueID{}
	d.info = nil
	d.initialized = false
}
