// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkgpu

import "github.com/forgegpu/vkgpu/hal"

// QuerySet represents an occlusion or timestamp query set. The
// Vulkan core here keeps this surface as a bookkeeping placeholder;
// see hal/vulkan/query.go.
type QuerySet struct {
	hal      hal.QuerySet
	device   *Device
	released bool
}

// Release destroys the query set. Safe to call more than once.
func (q *QuerySet) Release() {
	if q == nil || q.released {
		return
	}
	q.device.ReleaseQuerySet(q)
}

// Fence reports completion of a Submit. Obtained via
// Device.SubmitAndAcquireFence; must be returned with
// Device.ReleaseFence once no longer needed.
type Fence struct {
	hal hal.Fence
}

// Query returns 1 if signaled, 0 if not yet signaled, -1 on a native
// query failure.
func (f *Fence) Query() int {
	if f == nil || f.hal == nil {
		return -1
	}
	return f.hal.Query()
}
