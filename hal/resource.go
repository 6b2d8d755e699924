// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hal

import "github.com/forgegpu/vkgpu/types"

// BufferDescriptor describes a GPU-visible buffer. The backend decides
// the exact memory-property preference from the three hint flags; see
// spec.md §4.1 "bind".
type BufferDescriptor struct {
	Label             string
	Size              uint64
	Usage             types.BufferUsage
	RequireHostVisible bool
	PreferHostLocal    bool
	PreferDeviceLocal  bool
}

// TransferBufferDescriptor describes a staging buffer used to move data
// to and from device resources via a copy pass.
type TransferBufferDescriptor struct {
	Label string
	Size  uint64
	// Upload is true for a CPU->GPU staging buffer, false for a
	// GPU->CPU readback buffer. Both are host-visible and persistently
	// mapped for the buffer's lifetime.
	Upload bool
}

// TextureDescriptor describes a texture and its subresource layout.
type TextureDescriptor struct {
	Label       string
	Width       uint32
	Height      uint32
	Depth       uint32
	LayerCount  uint32
	LevelCount  uint32
	SampleCount types.SampleCount
	Format      types.TextureFormat
	Usage       types.TextureUsage
}

// SamplerDescriptor describes a texture sampler.
type SamplerDescriptor struct {
	Label        string
	MinFilter    Filter
	MagFilter    Filter
	MipFilter    Filter
	AddressModeU AddressMode
	AddressModeV AddressMode
	AddressModeW AddressMode
	MaxAnisotropy float32
	CompareEnable bool
	CompareOp     CompareOp
}

// Filter selects a texel-sampling policy.
type Filter uint32

const (
	FilterNearest Filter = iota
	FilterLinear
)

// AddressMode selects out-of-range texture coordinate behavior.
type AddressMode uint32

const (
	AddressModeRepeat AddressMode = iota
	AddressModeMirroredRepeat
	AddressModeClampToEdge
)

// CompareOp selects a depth/stencil or sampler comparison function.
type CompareOp uint32

const (
	CompareNever CompareOp = iota
	CompareLess
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways
)

// ShaderDescriptor describes a shader module. Code is SPIR-V bytecode;
// this backend passes it through to vkCreateShaderModule unchanged
// (spec.md §6, §1 Non-goals — no authoring/translation/reflection here).
type ShaderDescriptor struct {
	Label      string
	Code       []byte
	EntryPoint string
	Stage      types.ShaderStage
	// UniformBufferSize is the per-stage uniform block size this shader
	// expects via a dynamic-offset descriptor; 0 if the shader uses no
	// push-style uniform data.
	UniformBufferSize uint32
	// SamplerCount, StorageTextureCount and StorageBufferCount size the shader's
	// descriptor-set-layout bindings.
	SamplerCount         uint32
	StorageTextureCount  uint32
	StorageBufferCount   uint32
}

// VertexAttribute describes one vertex shader input.
type VertexAttribute struct {
	Location uint32
	Binding  uint32
	Format   types.TextureFormat
	Offset   uint32
}

// VertexBinding describes one vertex buffer binding's stride and
// step rate.
type VertexBinding struct {
	Binding   uint32
	Stride    uint32
	PerInstance bool
}

// GraphicsPipelineDescriptor describes a graphics pipeline.
type GraphicsPipelineDescriptor struct {
	Label             string
	VertexShader      Shader
	FragmentShader    Shader
	VertexAttributes  []VertexAttribute
	VertexBindings    []VertexBinding
	Topology          types.PrimitiveTopology
	ColorFormats      []types.TextureFormat
	ColorSampleCount  types.SampleCount
	DepthFormat       types.TextureFormat
	HasDepth          bool
	DepthWriteEnable  bool
	DepthCompareOp    CompareOp
}

// ComputePipelineDescriptor describes a compute pipeline.
type ComputePipelineDescriptor struct {
	Label          string
	ComputeShader  Shader
	ThreadCountX   uint32
	ThreadCountY   uint32
	ThreadCountZ   uint32
}

// ColorTargetInfo binds one color attachment to a render pass.
type ColorTargetInfo struct {
	Texture    Texture
	Layer      uint32
	Level      uint32
	ClearColor [4]float32
	LoadOp     types.LoadOp
	StoreOp    types.StoreOp
	// Resolve is the 1-sample destination when Texture is an MSAA
	// target; nil for a non-resolving attachment.
	Resolve Texture
}

// DepthStencilTargetInfo binds the depth/stencil attachment.
type DepthStencilTargetInfo struct {
	Texture        Texture
	ClearDepth     float32
	ClearStencil   uint32
	LoadOp         types.LoadOp
	StoreOp        types.StoreOp
	StencilLoadOp  types.LoadOp
	StencilStoreOp types.StoreOp
}

// TextureRegion identifies a sub-rectangle of one mip/layer of a
// texture, used by copy-pass operations.
type TextureRegion struct {
	Texture Texture
	Layer   uint32
	Level   uint32
	X, Y, Z uint32
	Width, Height, Depth uint32
}

// BufferRegion identifies a byte range of a buffer, used by copy-pass
// operations.
type BufferRegion struct {
	Buffer Buffer
	Offset uint64
	Size   uint64
}

// CycleOption selects the hazard-avoidance strategy a write operation
// uses, per spec.md §4.3.
type CycleOption uint32

const (
	// WriteSafe always inserts a barrier to the new access intent.
	WriteSafe CycleOption = iota
	// WriteCycle rotates the container's active handle when the
	// current handle is still referenced by in-flight work.
	WriteCycle
	// WriteUnsafe assigns the new intent without a barrier; the
	// caller vouches no hazard exists.
	WriteUnsafe
)

// QuerySetDescriptor describes an occlusion or timestamp query set.
// Per spec.md §9's open question, this backend only implements
// occlusion queries as bookkeeping placeholders — see hal/vulkan/query.go.
type QuerySetDescriptor struct {
	Label string
	Count uint32
	Type  QueryType
}

type QueryType uint32

const (
	QueryTypeOcclusion QueryType = iota
	QueryTypeTimestamp
)

// Opaque resource handles implemented by the backend. These are plain
// marker interfaces: the frontend never inspects their contents, only
// passes them back to the same Device that created them.
type (
	Buffer       interface{ isBuffer() }
	Texture      interface{ isTexture() }
	Sampler      interface{ isSampler() }
	Shader       interface{ isShader() }
	GraphicsPipeline interface{ isGraphicsPipeline() }
	ComputePipeline  interface{ isComputePipeline() }
	QuerySet     interface{ isQuerySet() }
	Fence        interface {
		isFence()
		// Query returns 1 if signaled, 0 if not yet signaled, -1 on
		// a native query failure (spec.md §7).
		Query() int
	}
	Window interface{ isWindow() }
)

// SurfaceProvider is the windowing collaborator spec.md §6 requires:
// something that can report which instance extensions the backend
// must load to present onto it, build a native surface for itself,
// and report its own current drawable size. A Window must additionally
// implement this to be claimable; ClaimWindow type-asserts for it.
type SurfaceProvider interface {
	Window

	// RequiredInstanceExtensions lists the extension names the backend
	// instance must have loaded before CreateSurface can succeed.
	RequiredInstanceExtensions() []string

	// CreateSurface builds a native surface against instance (the
	// backend's native instance handle, e.g. a VkInstance) and returns
	// the native surface handle (e.g. a VkSurfaceKHR).
	CreateSurface(instance uintptr) (uintptr, error)

	// DrawableSize reports the window's current size in pixels.
	DrawableSize() (width, height uint32)
}
