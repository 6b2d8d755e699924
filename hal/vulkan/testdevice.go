// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"github.com/forgegpu/vkgpu/hal/vulkan/memory"
	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
	"github.com/forgegpu/vkgpu/types"
)

// NewDeviceForFake wires up a Device exactly as Backend.CreateDevice
// does, skipping the instance/physical-device/queue-family discovery
// steps that require a real driver. It exists for
// github.com/forgegpu/vkgpu/hal/vulkan/vktest, which drives this
// package's caches, pools, and barrier logic against a fabricated
// *vk.Commands instead of a loaded libvulkan.
func NewDeviceForFake(instance vk.Instance, physicalDevice vk.PhysicalDevice, handle vk.Device, cmds *vk.Commands, queueFamilyIndex uint32, limits types.Limits, features types.Features, sampleCounts uint32, props memory.DeviceMemoryProperties) (*Device, error) {
	return newDevice(instance, physicalDevice, handle, cmds, queueFamilyIndex, limits, features, sampleCounts, props)
}
