// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hal

import "errors"

// Sentinel errors shared by every backend. A backend wraps these with
// fmt.Errorf("...: %w", err) to add context; callers can still match
// with errors.Is.
var (
	// ErrDeviceLost indicates the native device was lost (driver reset,
	// surprise-removed hardware). Fatal: the Device must be destroyed.
	ErrDeviceLost = errors.New("hal: device lost")

	// ErrOutOfHostMemory is fatal: the process could not allocate host
	// memory for a driver-side bookkeeping structure.
	ErrOutOfHostMemory = errors.New("hal: out of host memory")

	// ErrOutOfDeviceMemory is soft: the Vulkan GpuAllocator retries once
	// without its DEVICE_LOCAL preference before surfacing this.
	ErrOutOfDeviceMemory = errors.New("hal: out of device memory")

	// ErrSurfaceLost indicates the platform surface backing a claimed
	// window became invalid.
	ErrSurfaceLost = errors.New("hal: surface lost")

	// ErrSurfaceOutdated indicates the swapchain no longer matches the
	// surface's properties (resize, rotation) and must be recreated.
	ErrSurfaceOutdated = errors.New("hal: surface outdated")

	// ErrTimeout indicates a blocking wait exceeded its deadline.
	ErrTimeout = errors.New("hal: timeout")

	// ErrReleased is returned when operating on an already-released
	// resource.
	ErrReleased = errors.New("hal: resource already released")

	// ErrNoBackends indicates no backend satisfied the selection
	// criteria passed to CreateDevice.
	ErrNoBackends = errors.New("hal: no backend available")
)
