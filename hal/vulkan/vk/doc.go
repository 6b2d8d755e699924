// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vk provides pure-Go Vulkan 1.2 core + VK_KHR_surface +
// VK_KHR_swapchain + VK_EXT_debug_utils bindings, scoped to the subset
// the hal/vulkan backend exercises.
//
// Bindings are loaded at runtime via goffi (github.com/go-webgpu/goffi),
// which wraps libffi; there is no cgo dependency and no vk.xml
// code generator in this tree. Initialize with:
//
//	if err := vk.Init(); err != nil { ... }
//	var cmds vk.Commands
//	cmds.LoadGlobal()
//	// vkCreateInstance...
//	cmds.LoadInstance(instance)
//	// vkCreateDevice...
//	cmds.LoadDevice(device)
//
// # goffi calling convention
//
// goffi's args[] must contain pointers to WHERE each argument value is
// stored, never the value itself — including for arguments that are
// themselves pointers (a *T argument is passed as a pointer to the
// local variable holding that pointer). See call.go's callVK, which
// centralizes this so individual command wrappers stay one-liners.
package vk
