// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// The presentation core RECEIVES the device from the host, it does not
// create one: the host window system (e.g. gogpu.App) owns the device
// and queue, and the core composites through them. For runs without a
// host window, OpenDevice bootstraps a standalone device instead.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, giving the
// core a local name while staying compatible with the gpucontext
// ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// CreatorForHost adapts the host's texture creator to the bridge's
// TextureCreator. The concrete texture type stays opaque to the
// bridge; recorders assert it back at draw time.
func CreatorForHost(c gpucontext.TextureCreator) TextureCreator {
	if c == nil {
		return nil
	}
	return hostCreator{c: c}
}

type hostCreator struct {
	c gpucontext.TextureCreator
}

func (h hostCreator) NewTextureFromRGBA(width, height int, data []byte) (any, error) {
	return h.c.NewTextureFromRGBA(width, height, data)
}

// NullDeviceHandle is a DeviceHandle with nil implementations, used
// for software-only presentation where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo returns zero-value adapter info for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
