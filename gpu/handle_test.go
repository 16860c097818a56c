// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import "testing"

func TestNullDeviceHandle(t *testing.T) {
	h := NullDeviceHandle{}

	if h.Device() != nil {
		t.Error("Device() != nil")
	}
	if h.Queue() != nil {
		t.Error("Queue() != nil")
	}
	if h.Adapter() != nil {
		t.Error("Adapter() != nil")
	}
}

func TestHasDevice(t *testing.T) {
	if HasDevice(nil) {
		t.Error("HasDevice(nil) = true")
	}
	if HasDevice(NullDeviceHandle{}) {
		t.Error("HasDevice(NullDeviceHandle{}) = true")
	}
}
