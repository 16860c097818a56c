// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// This interface is the integration point between tess and GPU frameworks
// like gogpu. The host application implements DeviceHandle and passes it
// to tess, allowing tess to share the host's GPU device instead of owning
// one via [Device].
//
// Key principle: when a host is present, tess RECEIVES the device from
// it, it does NOT create one. This enables shared GPU resources and
// consistent resource management across the stack.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// tess-specific name for the interface while maintaining full
// compatibility with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// HasDevice reports whether a handle carries a usable device.
func HasDevice(h DeviceHandle) bool {
	return h != nil && h.Device() != nil && h.Queue() != nil
}

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used for CPU-only evaluation where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo returns zero-value adapter metadata for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{}
}

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
