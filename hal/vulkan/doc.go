// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vulkan implements hal.Backend and hal.Device against a
// Vulkan 1.2 driver. It owns the GPU memory suballocator (memory/),
// the barrier engine driving resource cycling and automatic image/
// buffer layout transitions, descriptor-set and render-pass/
// framebuffer caches, the uniform-buffer pool, swapchain lifecycle,
// and the command-buffer submission/fencing/cleanup pipeline with
// opportunistic defragmentation.
//
// Importing this package for its side effect registers it with hal:
//
//	import _ "github.com/forgegpu/vkgpu/hal/vulkan"
//
// A Device is created through hal.SelectAndCreateDevice, never
// directly; Backend.CreateDevice builds the VkInstance, picks a
// physical device and queue family, creates the VkDevice, and wires
// every cache newDevice needs.
package vulkan
