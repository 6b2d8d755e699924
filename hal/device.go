// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hal

import "github.com/forgegpu/vkgpu/types"

// Device is the full backend-side device contract. vkgpu.Device is a
// thin wrapper over one of these. Every method follows spec.md §7's
// error-handling taxonomy: failures return a zero value or logged
// warning, never panic (with the exception of programmer misuse of
// this package's own invariants).
type Device interface {
	Backend() types.Backend

	CreateBuffer(desc *BufferDescriptor) (Buffer, error)
	CreateTransferBuffer(desc *TransferBufferDescriptor) (Buffer, error)
	CreateTexture(desc *TextureDescriptor) (Texture, error)
	CreateSampler(desc *SamplerDescriptor) (Sampler, error)
	CreateShader(desc *ShaderDescriptor) (Shader, error)
	CreateGraphicsPipeline(desc *GraphicsPipelineDescriptor) (GraphicsPipeline, error)
	CreateComputePipeline(desc *ComputePipelineDescriptor) (ComputePipeline, error)
	CreateOcclusionQuery() (QuerySet, error)

	ReleaseBuffer(Buffer)
	ReleaseTexture(Texture)
	ReleaseSampler(Sampler)
	ReleaseShader(Shader)
	ReleaseGraphicsPipeline(GraphicsPipeline)
	ReleaseComputePipeline(ComputePipeline)
	ReleaseQuerySet(QuerySet)

	SetBufferName(Buffer, string)
	SetTextureName(Texture, string)
	SetStringMarker(CommandBuffer, string)

	MapTransferBuffer(buf Buffer, cycle bool) ([]byte, error)
	UnmapTransferBuffer(buf Buffer)
	SetTransferData(buf Buffer, data []byte, offset uint64, cycle bool) error
	GetTransferData(buf Buffer, offset uint64, size uint64) ([]byte, error)

	AcquireCommandBuffer() (CommandBuffer, error)

	SupportsSwapchainComposition(w Window, composition types.SwapchainComposition) bool
	SupportsPresentMode(w Window, mode types.PresentMode) bool
	ClaimWindow(w Window, composition types.SwapchainComposition, mode types.PresentMode) error
	UnclaimWindow(w Window)
	SetSwapchainParameters(w Window, composition types.SwapchainComposition, mode types.PresentMode) error
	GetSwapchainTextureFormat(w Window) types.TextureFormat
	AcquireSwapchainTexture(cmd CommandBuffer, w Window) (tex Texture, width, height uint32, err error)

	IsTextureFormatSupported(format types.TextureFormat, usage types.TextureUsage) bool
	GetBestSampleCount(format types.TextureFormat, desired types.SampleCount) types.SampleCount
	TextureFormatTexelBlockSize(format types.TextureFormat) uint32

	Wait()
	WaitForFences(waitAll bool, fences []Fence) error
	QueryFence(Fence) int
	ReleaseFence(Fence)

	Destroy()
}

// RenderPassHandle, ComputePassHandle, and CopyPassHandle are opaque
// tokens returned by Begin*Pass and accepted by the scoped recording
// methods below, guarding against calls made after the pass ends.
type (
	RenderPassHandle  interface{ isRenderPass() }
	ComputePassHandle interface{ isComputePass() }
	CopyPassHandle    interface{ isCopyPass() }
)

// StorageTextureBinding and StorageBufferBinding declare a compute
// pass's storage resources and their access direction up front, per
// spec.md §4.7.
type StorageTextureBinding struct {
	Texture Texture
	Layer   uint32
	Level   uint32
	Write   bool
}

type StorageBufferBinding struct {
	Buffer Buffer
	Write  bool
}

// IndirectDrawCommand mirrors VkDrawIndirectCommand.
type IndirectDrawCommand struct {
	VertexCount   uint32
	InstanceCount uint32
	FirstVertex   uint32
	FirstInstance uint32
}

// IndirectDrawIndexedCommand mirrors VkDrawIndexedIndirectCommand.
type IndirectDrawIndexedCommand struct {
	IndexCount    uint32
	InstanceCount uint32
	FirstIndex    uint32
	VertexOffset  int32
	FirstInstance uint32
}

// CommandBuffer is the backend-side recording contract. A concrete
// command buffer embeds PassHeader to get pass-state validation for
// free (spec.md §4.9).
type CommandBuffer interface {
	BeginRenderPass(colors []ColorTargetInfo, depth *DepthStencilTargetInfo) (RenderPassHandle, error)
	BindGraphicsPipeline(pass RenderPassHandle, pipeline GraphicsPipeline)
	BindVertexBuffers(pass RenderPassHandle, firstBinding uint32, buffers []Buffer, offsets []uint64)
	BindIndexBuffer(pass RenderPassHandle, buffer Buffer, offset uint64, size types.IndexElementSize)
	BindVertexSamplers(pass RenderPassHandle, firstSlot uint32, textures []Texture, samplers []Sampler)
	BindFragmentSamplers(pass RenderPassHandle, firstSlot uint32, textures []Texture, samplers []Sampler)
	PushVertexUniformData(slot uint32, data []byte)
	PushFragmentUniformData(slot uint32, data []byte)
	SetViewport(pass RenderPassHandle, x, y, w, h float32)
	SetScissor(pass RenderPassHandle, x, y, w, h uint32)
	DrawPrimitives(pass RenderPassHandle, vertexCount, instanceCount, firstVertex, firstInstance uint32)
	DrawIndexedPrimitives(pass RenderPassHandle, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32)
	DrawPrimitivesIndirect(pass RenderPassHandle, buffer Buffer, offset uint64, drawCount uint32)
	DrawIndexedPrimitivesIndirect(pass RenderPassHandle, buffer Buffer, offset uint64, drawCount uint32)
	EndRenderPass(pass RenderPassHandle)

	BeginComputePass(storageTex []StorageTextureBinding, storageBuf []StorageBufferBinding) (ComputePassHandle, error)
	BindComputePipeline(pass ComputePassHandle, pipeline ComputePipeline)
	BindComputeStorageTextures(pass ComputePassHandle, firstSlot uint32, textures []Texture)
	BindComputeStorageBuffers(pass ComputePassHandle, firstSlot uint32, buffers []Buffer)
	PushComputeUniformData(slot uint32, data []byte)
	DispatchCompute(pass ComputePassHandle, groupsX, groupsY, groupsZ uint32)
	EndComputePass(pass ComputePassHandle)

	BeginCopyPass() (CopyPassHandle, error)
	UploadToTexture(pass CopyPassHandle, src BufferRegion, dst TextureRegion, cycle bool)
	UploadToBuffer(pass CopyPassHandle, src BufferRegion, dst BufferRegion, cycle bool)
	CopyBufferToBuffer(pass CopyPassHandle, src, dst BufferRegion, cycle bool)
	CopyTextureToTexture(pass CopyPassHandle, src, dst TextureRegion, cycle bool)
	GenerateMipmaps(pass CopyPassHandle, texture Texture)
	DownloadFromBuffer(pass CopyPassHandle, src BufferRegion, dst BufferRegion)
	DownloadFromTexture(pass CopyPassHandle, src TextureRegion, dst BufferRegion)
	EndCopyPass(pass CopyPassHandle)

	Blit(src TextureRegion, dst TextureRegion, filter Filter, cycle bool)

	Submit() error
	SubmitAndAcquireFence() (Fence, error)
}
