// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

// Vulkan object handles. Dispatchable handles (Instance, Device, ...)
// and non-dispatchable handles (Buffer, Image, ...) are both opaque
// uint64s on the wire for a pure-Go binding: goffi marshals them as
// 64-bit values regardless of the native pointer width, and this
// package never dereferences them directly.
type (
	Instance               uint64
	PhysicalDevice         uint64
	Device                 uint64
	Queue                  uint64
	CommandPool            uint64
	CommandBuffer          uint64
	DeviceMemory           uint64
	Buffer                 uint64
	BufferView             uint64
	Image                  uint64
	ImageView              uint64
	ShaderModule           uint64
	Sampler                uint64
	DescriptorSetLayout    uint64
	DescriptorPool         uint64
	DescriptorSet          uint64
	PipelineLayout         uint64
	Pipeline               uint64
	PipelineCache          uint64
	RenderPass             uint64
	Framebuffer            uint64
	Fence                  uint64
	Semaphore              uint64
	Event                  uint64
	QueryPool              uint64
	SurfaceKHR             uint64
	SwapchainKHR           uint64
	DebugUtilsMessengerEXT uint64
)

// Bool32 mirrors VkBool32: a 4-byte boolean on the wire.
type Bool32 uint32

const (
	False Bool32 = 0
	True  Bool32 = 1
)

// Extent2D / Extent3D / Offset2D / Offset3D / Rect2D mirror their
// Vulkan counterparts exactly (field order matters: it is the C ABI
// layout goffi marshals against).
type Extent2D struct {
	Width, Height uint32
}

type Extent3D struct {
	Width, Height, Depth uint32
}

type Offset2D struct {
	X, Y int32
}

type Offset3D struct {
	X, Y, Z int32
}

type Rect2D struct {
	Offset Offset2D
	Extent Extent2D
}

// Viewport mirrors VkViewport.
type Viewport struct {
	X, Y, Width, Height, MinDepth, MaxDepth float32
}

// ClearColorValue mirrors the float union member of VkClearColorValue;
// this backend only ever clears float-typed color attachments.
type ClearColorValue struct {
	Float32 [4]float32
}

// ClearDepthStencilValue mirrors VkClearDepthStencilValue.
type ClearDepthStencilValue struct {
	Depth   float32
	Stencil uint32
}

// ClearValue mirrors the VkClearValue union as its largest member.
type ClearValue struct {
	Color ClearColorValue
	// DepthStencil overlaps Color on the wire; callers pick the
	// correct interpretation based on attachment type, exactly as
	// native Vulkan clients do with the union.
	DepthStencil ClearDepthStencilValue
}
