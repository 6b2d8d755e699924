// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkgpu

import (
	"errors"

	"github.com/forgegpu/vkgpu/hal"
)

// Sentinel errors re-exported from hal so callers never need to import
// the hal package directly.
var (
	ErrDeviceLost      = hal.ErrDeviceLost
	ErrOutOfHostMemory = hal.ErrOutOfHostMemory
	ErrOutOfDeviceMem  = hal.ErrOutOfDeviceMemory
	ErrSurfaceLost     = hal.ErrSurfaceLost
	ErrSurfaceOutdated = hal.ErrSurfaceOutdated
	ErrTimeout         = hal.ErrTimeout
	ErrNoBackends      = hal.ErrNoBackends

	// ErrReleased is returned when operating on an already-released
	// Device, or a resource whose owning Device was already destroyed.
	ErrReleased = errors.New("vkgpu: device already released")

	// ErrNilDescriptor is returned by any Create* call given a nil
	// descriptor pointer.
	ErrNilDescriptor = errors.New("vkgpu: descriptor is nil")
)
