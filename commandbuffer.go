// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkgpu

import "github.com/forgegpu/vkgpu/hal"

// CommandBuffer records GPU work. Acquired via
// Device.AcquireCommandBuffer; single-use, not safe for concurrent
// recording from multiple goroutines.
type CommandBuffer struct {
	hal    hal.CommandBuffer
	device *Device
}

// RenderPass, ComputePass, and CopyPass are opaque tokens returned by
// the matching Begin* call and required by every scoped recording
// method, guarding against calls made after the pass ends.
type (
	RenderPass struct{ h hal.RenderPassHandle }
	ComputePass struct{ h hal.ComputePassHandle }
	CopyPass    struct{ h hal.CopyPassHandle }
)

// BeginRenderPass begins a render pass over the given color targets
// and optional depth/stencil target.
func (c *CommandBuffer) BeginRenderPass(colors []ColorTargetInfo, depth *DepthStencilTargetInfo) (*RenderPass, error) {
	h, err := c.hal.BeginRenderPass(colors, depth)
	if err != nil {
		return nil, err
	}
	return &RenderPass{h: h}, nil
}

func (c *CommandBuffer) BindGraphicsPipeline(pass *RenderPass, pipeline *GraphicsPipeline) {
	c.hal.BindGraphicsPipeline(pass.h, pipeline.hal)
}

func (c *CommandBuffer) BindVertexBuffers(pass *RenderPass, firstBinding uint32, buffers []*Buffer, offsets []uint64) {
	native := make([]hal.Buffer, len(buffers))
	for i, b := range buffers {
		native[i] = b.hal
	}
	c.hal.BindVertexBuffers(pass.h, firstBinding, native, offsets)
}

func (c *CommandBuffer) BindIndexBuffer(pass *RenderPass, buffer *Buffer, offset uint64, size IndexElementSize) {
	c.hal.BindIndexBuffer(pass.h, buffer.hal, offset, size)
}

func (c *CommandBuffer) BindVertexSamplers(pass *RenderPass, firstSlot uint32, textures []*Texture, samplers []*Sampler) {
	c.hal.BindVertexSamplers(pass.h, firstSlot, toHalTextures(textures), toHalSamplers(samplers))
}

func (c *CommandBuffer) BindFragmentSamplers(pass *RenderPass, firstSlot uint32, textures []*Texture, samplers []*Sampler) {
	c.hal.BindFragmentSamplers(pass.h, firstSlot, toHalTextures(textures), toHalSamplers(samplers))
}

func (c *CommandBuffer) PushVertexUniformData(slot uint32, data []byte) {
	c.hal.PushVertexUniformData(slot, data)
}

func (c *CommandBuffer) PushFragmentUniformData(slot uint32, data []byte) {
	c.hal.PushFragmentUniformData(slot, data)
}

func (c *CommandBuffer) SetViewport(pass *RenderPass, x, y, w, h float32) {
	c.hal.SetViewport(pass.h, x, y, w, h)
}

func (c *CommandBuffer) SetScissor(pass *RenderPass, x, y, w, h uint32) {
	c.hal.SetScissor(pass.h, x, y, w, h)
}

func (c *CommandBuffer) DrawPrimitives(pass *RenderPass, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	c.hal.DrawPrimitives(pass.h, vertexCount, instanceCount, firstVertex, firstInstance)
}

func (c *CommandBuffer) DrawIndexedPrimitives(pass *RenderPass, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	c.hal.DrawIndexedPrimitives(pass.h, indexCount, instanceCount, firstIndex, vertexOffset, firstInstance)
}

func (c *CommandBuffer) DrawPrimitivesIndirect(pass *RenderPass, buffer *Buffer, offset uint64, drawCount uint32) {
	c.hal.DrawPrimitivesIndirect(pass.h, buffer.hal, offset, drawCount)
}

func (c *CommandBuffer) DrawIndexedPrimitivesIndirect(pass *RenderPass, buffer *Buffer, offset uint64, drawCount uint32) {
	c.hal.DrawIndexedPrimitivesIndirect(pass.h, buffer.hal, offset, drawCount)
}

func (c *CommandBuffer) EndRenderPass(pass *RenderPass) {
	c.hal.EndRenderPass(pass.h)
}

// BeginComputePass begins a compute pass declaring its storage
// resources and their access direction up front.
func (c *CommandBuffer) BeginComputePass(storageTex []StorageTextureBinding, storageBuf []StorageBufferBinding) (*ComputePass, error) {
	h, err := c.hal.BeginComputePass(storageTex, storageBuf)
	if err != nil {
		return nil, err
	}
	return &ComputePass{h: h}, nil
}

func (c *CommandBuffer) BindComputePipeline(pass *ComputePass, pipeline *ComputePipeline) {
	c.hal.BindComputePipeline(pass.h, pipeline.hal)
}

func (c *CommandBuffer) BindComputeStorageTextures(pass *ComputePass, firstSlot uint32, textures []*Texture) {
	c.hal.BindComputeStorageTextures(pass.h, firstSlot, toHalTextures(textures))
}

func (c *CommandBuffer) BindComputeStorageBuffers(pass *ComputePass, firstSlot uint32, buffers []*Buffer) {
	c.hal.BindComputeStorageBuffers(pass.h, firstSlot, toHalBuffers(buffers))
}

func (c *CommandBuffer) PushComputeUniformData(slot uint32, data []byte) {
	c.hal.PushComputeUniformData(slot, data)
}

func (c *CommandBuffer) DispatchCompute(pass *ComputePass, groupsX, groupsY, groupsZ uint32) {
	c.hal.DispatchCompute(pass.h, groupsX, groupsY, groupsZ)
}

func (c *CommandBuffer) EndComputePass(pass *ComputePass) {
	c.hal.EndComputePass(pass.h)
}

// BeginCopyPass begins a copy pass for upload/download/blit-adjacent
// transfer operations.
func (c *CommandBuffer) BeginCopyPass() (*CopyPass, error) {
	h, err := c.hal.BeginCopyPass()
	if err != nil {
		return nil, err
	}
	return &CopyPass{h: h}, nil
}

func (c *CommandBuffer) UploadToTexture(pass *CopyPass, src BufferRegion, dst TextureRegion, cycle bool) {
	c.hal.UploadToTexture(pass.h, src, dst, cycle)
}

func (c *CommandBuffer) UploadToBuffer(pass *CopyPass, src, dst BufferRegion, cycle bool) {
	c.hal.UploadToBuffer(pass.h, src, dst, cycle)
}

func (c *CommandBuffer) CopyBufferToBuffer(pass *CopyPass, src, dst BufferRegion, cycle bool) {
	c.hal.CopyBufferToBuffer(pass.h, src, dst, cycle)
}

func (c *CommandBuffer) CopyTextureToTexture(pass *CopyPass, src, dst TextureRegion, cycle bool) {
	c.hal.CopyTextureToTexture(pass.h, src, dst, cycle)
}

func (c *CommandBuffer) GenerateMipmaps(pass *CopyPass, texture *Texture) {
	c.hal.GenerateMipmaps(pass.h, texture.hal)
}

func (c *CommandBuffer) DownloadFromBuffer(pass *CopyPass, src, dst BufferRegion) {
	c.hal.DownloadFromBuffer(pass.h, src, dst)
}

func (c *CommandBuffer) DownloadFromTexture(pass *CopyPass, src TextureRegion, dst BufferRegion) {
	c.hal.DownloadFromTexture(pass.h, src, dst)
}

func (c *CommandBuffer) EndCopyPass(pass *CopyPass) {
	c.hal.EndCopyPass(pass.h)
}

// Blit performs a filtered image copy at command-buffer scope,
// outside any explicit pass.
func (c *CommandBuffer) Blit(src, dst TextureRegion, filter Filter, cycle bool) {
	c.hal.Blit(src, dst, filter, cycle)
}

// Submit ends recording and schedules the command buffer for
// execution. Blocking only in the sense of recording a native queue
// submit; it does not wait for GPU completion.
func (c *CommandBuffer) Submit() error {
	return c.hal.Submit()
}

// SubmitAndAcquireFence submits and returns a client-owned fence the
// caller must release with Device.ReleaseFence.
func (c *CommandBuffer) SubmitAndAcquireFence() (*Fence, error) {
	f, err := c.hal.SubmitAndAcquireFence()
	if err != nil {
		return nil, err
	}
	return &Fence{hal: f}, nil
}

func toHalTextures(ts []*Texture) []hal.Texture {
	native := make([]hal.Texture, len(ts))
	for i, t := range ts {
		native[i] = t.hal
	}
	return native
}

func toHalSamplers(ss []*Sampler) []hal.Sampler {
	native := make([]hal.Sampler, len(ss))
	for i, s := range ss {
		native[i] = s.hal
	}
	return native
}

func toHalBuffers(bs []*Buffer) []hal.Buffer {
	native := make([]hal.Buffer, len(bs))
	for i, b := range bs {
		native[i] = b.hal
	}
	return native
}
