// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

// BufferUsage is a bitmask of the ways a Buffer may be used over its
// lifetime. Backends use it to pick a native usage flag set and a
// default access intent at creation time.
type BufferUsage uint32

const (
	BufferUsageVertex BufferUsage = 1 << iota
	BufferUsageIndex
	BufferUsageIndirect
	BufferUsageUniform
	BufferUsageStorageRead
	BufferUsageStorageWrite
	BufferUsageCopySrc
	BufferUsageCopyDst
)

// TextureUsage is a bitmask of the ways a Texture may be used.
type TextureUsage uint32

const (
	TextureUsageSampler TextureUsage = 1 << iota
	TextureUsageColorTarget
	TextureUsageDepthStencilTarget
	TextureUsageStorageRead
	TextureUsageStorageWrite
	TextureUsageCopySrc
	TextureUsageCopyDst
)

// TextureAspect selects which planes of a texture a view addresses.
type TextureAspect uint32

const (
	AspectColor TextureAspect = iota
	AspectDepth
	AspectStencil
	AspectDepthStencil
)

// LoadOp selects how an attachment's previous contents are treated at
// the start of a render pass.
type LoadOp uint32

const (
	LoadOpLoad LoadOp = iota
	LoadOpClear
	LoadOpDontCare
)

// StoreOp selects whether an attachment's contents are preserved past
// the end of a render pass.
type StoreOp uint32

const (
	StoreOpStore StoreOp = iota
	StoreOpDontCare
)

// ShaderStage is a bitmask of shader stages, used to tag descriptor
// set layout bindings and push-uniform targets.
type ShaderStage uint32

const (
	ShaderStageVertex ShaderStage = 1 << iota
	ShaderStageFragment
	ShaderStageCompute
)

// PrimitiveTopology selects how vertices assemble into primitives.
type PrimitiveTopology uint32

const (
	TopologyTriangleList PrimitiveTopology = iota
	TopologyTriangleStrip
	TopologyLineList
	TopologyLineStrip
	TopologyPointList
)

// IndexElementSize selects the width of index buffer elements.
type IndexElementSize uint32

const (
	IndexElementSize16 IndexElementSize = iota
	IndexElementSize32
)

// PresentMode selects a swapchain presentation policy.
type PresentMode uint32

const (
	PresentModeVSync PresentMode = iota
	PresentModeImmediate
	PresentModeMailbox
)

// SwapchainComposition selects how the swapchain's color space and
// transfer function are configured.
type SwapchainComposition uint32

const (
	CompositionSDR SwapchainComposition = iota
	CompositionHDRExtendedLinear
)

// Backend identifies a registered hal.Backend implementation.
type Backend uint32

const (
	BackendInvalid Backend = iota
	BackendVulkan
)

func (b Backend) String() string {
	switch b {
	case BackendVulkan:
		return "vulkan"
	default:
		return "invalid"
	}
}

// Limits reports device-specific resource limits relevant to the
// allocator, descriptor caches, and uniform pool.
type Limits struct {
	MinUniformBufferOffsetAlignment uint64
	MaxTextureDimension2D           uint32
	MaxColorAttachments             uint32
	MaxBoundDescriptorSets          uint32
}

// Features reports optional device capabilities.
type Features struct {
	OcclusionQuery bool
	TimestampQuery bool
}
