// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkgpu

import (
	"github.com/forgegpu/vkgpu/hal"
	"github.com/forgegpu/vkgpu/types"
)

// Backend identifies a registered backend implementation.
type Backend = types.Backend

const (
	BackendInvalid = types.BackendInvalid
	BackendVulkan  = types.BackendVulkan
)

// BackendsAll requests no backend preference; CreateDevice picks the
// first compile-time-registered backend with a working driver.
const BackendsAll uint32 = 0

type (
	BufferUsage          = types.BufferUsage
	TextureUsage         = types.TextureUsage
	TextureAspect        = types.TextureAspect
	LoadOp               = types.LoadOp
	StoreOp              = types.StoreOp
	ShaderStage          = types.ShaderStage
	PrimitiveTopology    = types.PrimitiveTopology
	IndexElementSize     = types.IndexElementSize
	PresentMode          = types.PresentMode
	SwapchainComposition = types.SwapchainComposition
	TextureFormat        = types.TextureFormat
	SampleCount          = types.SampleCount
	Limits               = types.Limits
	Features             = types.Features
)

const (
	BufferUsageVertex      = types.BufferUsageVertex
	BufferUsageIndex       = types.BufferUsageIndex
	BufferUsageIndirect    = types.BufferUsageIndirect
	BufferUsageUniform     = types.BufferUsageUniform
	BufferUsageStorageRead = types.BufferUsageStorageRead
	BufferUsageStorageWrite = types.BufferUsageStorageWrite
	BufferUsageCopySrc     = types.BufferUsageCopySrc
	BufferUsageCopyDst     = types.BufferUsageCopyDst

	TextureUsageSampler            = types.TextureUsageSampler
	TextureUsageColorTarget        = types.TextureUsageColorTarget
	TextureUsageDepthStencilTarget = types.TextureUsageDepthStencilTarget
	TextureUsageStorageRead        = types.TextureUsageStorageRead
	TextureUsageStorageWrite       = types.TextureUsageStorageWrite
	TextureUsageCopySrc            = types.TextureUsageCopySrc
	TextureUsageCopyDst            = types.TextureUsageCopyDst

	LoadOpLoad     = types.LoadOpLoad
	LoadOpClear    = types.LoadOpClear
	LoadOpDontCare = types.LoadOpDontCare

	StoreOpStore    = types.StoreOpStore
	StoreOpDontCare = types.StoreOpDontCare

	TopologyTriangleList  = types.TopologyTriangleList
	TopologyTriangleStrip = types.TopologyTriangleStrip
	TopologyLineList      = types.TopologyLineList
	TopologyLineStrip     = types.TopologyLineStrip
	TopologyPointList     = types.TopologyPointList

	IndexElementSize16 = types.IndexElementSize16
	IndexElementSize32 = types.IndexElementSize32

	PresentModeVSync     = types.PresentModeVSync
	PresentModeImmediate = types.PresentModeImmediate
	PresentModeMailbox   = types.PresentModeMailbox

	CompositionSDR               = types.CompositionSDR
	CompositionHDRExtendedLinear = types.CompositionHDRExtendedLinear
)

// Filter, AddressMode, and CompareOp configure sampler creation.
type (
	Filter      = hal.Filter
	AddressMode = hal.AddressMode
	CompareOp   = hal.CompareOp
)

const (
	FilterNearest = hal.FilterNearest
	FilterLinear  = hal.FilterLinear

	AddressModeRepeat         = hal.AddressModeRepeat
	AddressModeMirroredRepeat = hal.AddressModeMirroredRepeat
	AddressModeClampToEdge    = hal.AddressModeClampToEdge

	CompareNever        = hal.CompareNever
	CompareLess         = hal.CompareLess
	CompareEqual        = hal.CompareEqual
	CompareLessEqual    = hal.CompareLessEqual
	CompareGreater      = hal.CompareGreater
	CompareNotEqual     = hal.CompareNotEqual
	CompareGreaterEqual = hal.CompareGreaterEqual
	CompareAlways       = hal.CompareAlways
)

// Descriptor and region types pass straight through to hal; the
// Vulkan core here needs no WebGPU-style field remapping.
type (
	BufferDescriptor           = hal.BufferDescriptor
	TransferBufferDescriptor   = hal.TransferBufferDescriptor
	TextureDescriptor          = hal.TextureDescriptor
	SamplerDescriptor          = hal.SamplerDescriptor
	ShaderDescriptor           = hal.ShaderDescriptor
	VertexAttribute            = hal.VertexAttribute
	VertexBinding              = hal.VertexBinding
	GraphicsPipelineDescriptor = hal.GraphicsPipelineDescriptor
	ComputePipelineDescriptor  = hal.ComputePipelineDescriptor
	ColorTargetInfo            = hal.ColorTargetInfo
	DepthStencilTargetInfo     = hal.DepthStencilTargetInfo
	TextureRegion              = hal.TextureRegion
	BufferRegion               = hal.BufferRegion
	CycleOption                = hal.CycleOption
	QuerySetDescriptor         = hal.QuerySetDescriptor
	QueryType                  = hal.QueryType
	StorageTextureBinding      = hal.StorageTextureBinding
	StorageBufferBinding       = hal.StorageBufferBinding
	IndirectDrawCommand        = hal.IndirectDrawCommand
	IndirectDrawIndexedCommand = hal.IndirectDrawIndexedCommand
)

const (
	WriteSafe   = hal.WriteSafe
	WriteCycle  = hal.WriteCycle
	WriteUnsafe = hal.WriteUnsafe

	QueryTypeOcclusion = hal.QueryTypeOcclusion
	QueryTypeTimestamp = hal.QueryTypeTimestamp
)

// Window is the collaborator a caller implements to claim a
// presentable surface; SurfaceProvider additionally describes the
// native-surface integration ClaimWindow requires.
type (
	Window          = hal.Window
	SurfaceProvider = hal.SurfaceProvider
)
