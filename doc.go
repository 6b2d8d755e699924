// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vkgpu provides a safe, ergonomic entry point onto the
// Vulkan-backed GPU abstraction layer implemented in hal/vulkan.
//
// # Quick Start
//
//	device, err := vkgpu.CreateDevice(vkgpu.BackendsAll, false)
//	if err != nil {
//	    // handle err
//	}
//	defer device.Destroy()
//
//	buf, err := device.CreateBuffer(&vkgpu.BufferDescriptor{
//	    Size:  1024,
//	    Usage: vkgpu.BufferUsageVertex | vkgpu.BufferUsageCopyDst,
//	})
//
// # Resource Lifecycle
//
// Every Create* call that succeeds returns a resource that must be
// released with its matching Release* device method once no longer
// needed. Device.Destroy() waits for outstanding work and tears down
// every resource still outstanding.
package vkgpu
