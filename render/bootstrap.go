// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"
	types "github.com/gogpu/gputypes"

	"github.com/gogpu/present/internal/logx"
)

// ErrNoGPU is returned when no compatible GPU adapter is available.
var ErrNoGPU = errors.New("render: no compatible GPU adapter")

// AdapterInfo describes the selected GPU.
type AdapterInfo struct {
	// Name is the GPU name (e.g. "NVIDIA GeForce RTX 3080").
	Name string
	// Vendor is the GPU vendor.
	Vendor string
	// DeviceType is the type of GPU (discrete, integrated, etc.).
	DeviceType types.DeviceType
	// Backend is the graphics API in use (Vulkan, Metal, DX12).
	Backend types.Backend
	// Driver is the driver version string.
	Driver string
}

// String returns a human-readable description of the GPU.
func (i *AdapterInfo) String() string {
	return fmt.Sprintf("%s (%s, %s)", i.Name, i.DeviceType, i.Backend)
}

// Device owns a standalone wgpu instance, adapter, device and queue.
//
// Used when the loop runs without a host window system that would
// otherwise supply the device (see DeviceHandle). All access happens on
// the control loop thread.
type Device struct {
	instance *core.Instance
	adapter  core.AdapterID
	device   core.DeviceID
	queue    core.QueueID
	info     *AdapterInfo
}

// OpenDevice creates a standalone GPU device: instance, adapter
// (preferring a high-performance GPU), device and queue.
//
// Returns ErrNoGPU (wrapped) when no adapter is available.
func OpenDevice() (*Device, error) {
	inst := core.NewInstance(&gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
		Flags:    0,
	})

	adapterID, err := inst.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoGPU, err)
	}

	d := &Device{instance: inst, adapter: adapterID}

	if info, err := core.GetAdapterInfo(adapterID); err == nil {
		d.info = &AdapterInfo{
			Name:       info.Name,
			Vendor:     info.Vendor,
			DeviceType: info.DeviceType,
			Backend:    info.Backend,
			Driver:     info.Driver,
		}
		logx.Logger().Info("GPU adapter selected", "gpu", d.info.String(), "driver", d.info.Driver)
	} else {
		logx.Logger().Warn("failed to get adapter info", "err", err)
	}

	deviceID, err := core.RequestDevice(adapterID, &types.DeviceDescriptor{
		Label:            "present-device",
		RequiredFeatures: nil,
		RequiredLimits:   types.DefaultLimits(),
	})
	if err != nil {
		_ = core.AdapterDrop(adapterID)
		return nil, fmt.Errorf("render: device creation failed: %w", err)
	}
	d.device = deviceID

	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		_ = core.DeviceDrop(deviceID)
		_ = core.AdapterDrop(adapterID)
		return nil, fmt.Errorf("render: queue retrieval failed: %w", err)
	}
	d.queue = queueID

	if limits, err := core.GetDeviceLimits(deviceID); err == nil {
		logx.Logger().Debug("device limits",
			"maxTextureDimension2D", limits.MaxTextureDimension2D,
			"maxBufferSize", limits.MaxBufferSize)
	}

	return d, nil
}

// Info returns adapter information, or nil when unavailable.
func (d *Device) Info() *AdapterInfo { return d.info }

// DeviceID returns the wgpu device handle.
func (d *Device) DeviceID() core.DeviceID { return d.device }

// QueueID returns the wgpu queue handle.
func (d *Device) QueueID() core.QueueID { return d.queue }

// Close releases the device and adapter in reverse creation order.
// The queue is released with the device.
func (d *Device) Close() error {
	var firstErr error

	if !d.device.IsZero() {
		if err := core.DeviceDrop(d.device); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("render: failed to release device: %w", err)
		}
		d.device = core.DeviceID{}
	}

	if !d.adapter.IsZero() {
		if err := core.AdapterDrop(d.adapter); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("render: failed to release adapter: %w", err)
		}
		d.adapter = core.AdapterID{}
	}

	d.instance = nil
	d.queue = core.QueueID{}
	return firstErr
}
