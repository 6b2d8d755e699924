// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/forgegpu/vkgpu/hal"
	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
	"github.com/forgegpu/vkgpu/types"
)

// CommandBuffer is the backend's hal.CommandBuffer. It embeds
// hal.PassHeader for pass-nesting/pipeline-bound bookkeeping and is
// also its own RenderPassHandle/ComputePassHandle/CopyPassHandle: a
// single command buffer only ever has one pass open, so the "pass
// handle" a caller holds is just a typed proof that Begin*Pass
// succeeded, not a distinct object.
type CommandBuffer struct {
	hal.PassHeader

	device *Device
	native vk.CommandBuffer
	pool   *commandBufferPool
	label  string

	graphicsPipeline *GraphicsPipeline
	computePipeline  *ComputePipeline

	renderPass     *renderPassEntry
	framebuffer    *framebufferEntry
	framebufferKey framebufferKey
	depthAttached  bool

	vertexUniform, fragmentUniform, computeUniform *uniformBuffer

	boundSets []boundDescriptorSet

	trackedBuffers           []*nativeBuffer
	trackedSlices            []*textureSlice
	trackedSamplers          []*NativeSampler
	trackedGraphicsPipelines []*GraphicsPipeline
	trackedComputePipelines  []*ComputePipeline

	presents []pendingPresent

	fence *nativeFence

	// isDefrag marks a command buffer acquired by the Defragmenter
	// rather than a client; it never carries present requests.
	isDefrag bool
}

func (cmd *CommandBuffer) isRenderPass() {}
func (cmd *CommandBuffer) isComputePass() {}
func (cmd *CommandBuffer) isCopyPass()    {}

// pendingPresent records a swapchain image queued for presentation by
// this recording; submit.go services it after the submission's fence
// is handed to the present queue.
type pendingPresent struct {
	swapchain *swapchainData
	imageIndex uint32

	// slice is the swapchain image's subresource acquired for this
	// recording; submit transitions it to AccessPresent right before
	// ending the command buffer, since vkQueuePresentKHR requires
	// VK_IMAGE_LAYOUT_PRESENT_SRC_KHR (spec.md §4.2, §4.7).
	slice *textureSlice

	// acquireSemaphore is waited on by the submission itself, before
	// any color-attachment-write commands touching this image run.
	acquireSemaphore vk.Semaphore

	// waitSemaphore is signaled by the submission and waited on by the
	// present call that follows it.
	waitSemaphore vk.Semaphore
}

// trackBuffer bumps a native buffer's in-flight refcount so cleanup
// knows not to destroy it until this recording's fence signals.
func (cmd *CommandBuffer) trackBuffer(nb *nativeBuffer) {
	atomic.AddInt32(&nb.refCount, 1)
	cmd.trackedBuffers = append(cmd.trackedBuffers, nb)
}

func (cmd *CommandBuffer) trackSlice(s *textureSlice) {
	atomic.AddInt32(&s.refCount, 1)
	cmd.trackedSlices = append(cmd.trackedSlices, s)
}

func (cmd *CommandBuffer) trackSampler(s *NativeSampler) {
	atomic.AddInt32(&s.refCount, 1)
	cmd.trackedSamplers = append(cmd.trackedSamplers, s)
}

// prepareBufferRead emits a barrier transitioning buf to next without
// ever cycling; read-only accesses never need a fresh handle.
func (cmd *CommandBuffer) prepareBufferRead(c *BufferContainer, next AccessIntent) *BufferHandle {
	h := c.Active()
	emitBufferBarrier(cmd.device.cmds, cmd.native, h.buffer.handle, 0, h.buffer.size, h.buffer.currentIntent, next)
	h.buffer.currentIntent = next
	cmd.trackBuffer(h.buffer)
	return h
}

func (cmd *CommandBuffer) prepareSliceRead(c *TextureContainer, layer, level uint32, next AccessIntent) *textureSlice {
	h := c.Active()
	slice := h.texture.sliceAt(layer, level)
	emitImageBarrier(cmd.device.cmds, cmd.native, h.texture.image, h.texture.aspect, layer, 1, level, 1, slice.currentIntent, next)
	slice.currentIntent = next
	cmd.trackSlice(slice)
	return slice
}

func cycleOptionFor(cycle bool) hal.CycleOption {
	if cycle {
		return hal.WriteCycle
	}
	return hal.WriteSafe
}

// ---- render pass ----

// BeginRenderPass implements hal.CommandBuffer.
func (cmd *CommandBuffer) BeginRenderPass(colors []hal.ColorTargetInfo, depth *hal.DepthStencilTargetInfo) (hal.RenderPassHandle, error) {
	if err := cmd.BeginPass(hal.PassRender); err != nil {
		return nil, err
	}

	var key renderPassKey
	var fbKey framebufferKey
	msaa := false

	for i, ct := range colors {
		if i >= maxColorAttachments {
			break
		}
		c, ok := ct.Texture.(*TextureContainer)
		if !ok {
			return nil, fmt.Errorf("vulkan: color target is not a backend texture")
		}
		slice := cmd.prepareColorAttachment(c, ct)
		vkFormat, _ := formatToVk(c.desc.Format)
		key.colors[i] = colorAttachmentKey{format: vkFormat, clear: ct.ClearColor, loadOp: loadOpToVk(ct.LoadOp), storeOp: storeOpToVk(ct.StoreOp)}
		key.colorCount++

		if slice.msaa != nil {
			msaa = true
			resolveSlice := cmd.prepareResolveAttachment(ct.Resolve)
			fbKey.views[fbKey.count] = resolveSlice.view
			fbKey.count++
			fbKey.views[fbKey.count] = slice.msaa.defaultView
			fbKey.count++
		} else {
			fbKey.views[fbKey.count] = slice.view
			fbKey.count++
		}
		fbKey.width, fbKey.height = c.desc.Width, c.desc.Height
	}
	key.sampleCount = sampleCountToVk(colorSampleCountOf(colors))

	var depthSlice *textureSlice
	if depth != nil {
		c, ok := depth.Texture.(*TextureContainer)
		if !ok {
			return nil, fmt.Errorf("vulkan: depth target is not a backend texture")
		}
		depthSlice = cmd.prepareDepthAttachment(c, depth)
		vkFormat, _ := formatToVk(c.desc.Format)
		key.depth = depthAttachmentKey{
			present: true, format: vkFormat,
			depthLoad: uint32(loadOpToVk(depth.LoadOp)), depthStore: uint32(storeOpToVk(depth.StoreOp)),
			stencilLoad: uint32(loadOpToVk(depth.StencilLoadOp)), stencilStore: uint32(storeOpToVk(depth.StencilStoreOp)),
		}
		fbKey.views[fbKey.count] = depthSlice.view
		fbKey.count++
		cmd.depthAttached = true
	}

	d := cmd.device
	pass, err := d.fetchRenderPass(key, colors, depth, msaa)
	if err != nil {
		cmd.EndPass(hal.PassRender)
		return nil, err
	}
	fb, err := d.fetchFramebuffer(fbKey, pass.handle)
	if err != nil {
		cmd.EndPass(hal.PassRender)
		return nil, err
	}
	cmd.renderPass = pass
	cmd.framebuffer = fb
	cmd.framebufferKey = fbKey

	clears := make([]vk.ClearValue, fbKey.count)
	ci := 0
	for i := 0; i < key.colorCount; i++ {
		clears[ci] = vk.ClearValue{Color: vk.ClearColorValue{Float32: key.colors[i].clear}}
		ci++
		if msaa {
			clears[ci] = clears[ci-1]
			ci++
		}
	}
	if depth != nil {
		clears[ci] = vk.ClearValue{DepthStencil: vk.ClearDepthStencilValue{Depth: depth.ClearDepth, Stencil: depth.ClearStencil}}
	}

	begin := vk.RenderPassBeginInfo{
		SType: vk.StructureTypeRenderPassBeginInfo, RenderPass: pass.handle, Framebuffer: fb.handle,
		RenderArea: vk.Rect2D{Extent: vk.Extent2D{Width: fbKey.width, Height: fbKey.height}},
		ClearValueCount: uint32(len(clears)),
	}
	if len(clears) > 0 {
		begin.PClearValues = ptrOf(&clears[0])
	}
	d.cmds.CmdBeginRenderPass(cmd.native, &begin, true)

	// Default viewport/scissor cover the full framebuffer; callers
	// typically call SetViewport/SetScissor before the first draw.
	cmd.SetViewport(cmd, 0, 0, float32(fbKey.width), float32(fbKey.height))
	cmd.SetScissor(cmd, 0, 0, fbKey.width, fbKey.height)
	return cmd, nil
}

func colorSampleCountOf(colors []hal.ColorTargetInfo) types.SampleCount {
	for _, ct := range colors {
		if c, ok := ct.Texture.(*TextureContainer); ok {
			return c.desc.SampleCount
		}
	}
	return types.SampleCount1
}

func (cmd *CommandBuffer) prepareColorAttachment(c *TextureContainer, ct hal.ColorTargetInfo) *textureSlice {
	next := AccessColorAttachmentWrite
	slice := cmd.PrepareSliceForWrite(c, ct.Layer, ct.Level, hal.WriteSafe, next)
	return slice
}

func (cmd *CommandBuffer) prepareResolveAttachment(t hal.Texture) *textureSlice {
	c, ok := t.(*TextureContainer)
	if !ok {
		return nil
	}
	return cmd.PrepareSliceForWrite(c, 0, 0, hal.WriteSafe, AccessResolveWrite)
}

func (cmd *CommandBuffer) prepareDepthAttachment(c *TextureContainer, depth *hal.DepthStencilTargetInfo) *textureSlice {
	next := AccessDepthStencilAttachmentWrite
	return cmd.PrepareSliceForWrite(c, 0, 0, hal.WriteSafe, next)
}

// BindGraphicsPipeline implements hal.CommandBuffer.
func (cmd *CommandBuffer) BindGraphicsPipeline(pass hal.RenderPassHandle, pipeline hal.GraphicsPipeline) {
	if err := cmd.RequirePass(hal.PassRender); err != nil {
		return
	}
	p, ok := pipeline.(*GraphicsPipeline)
	if !ok {
		hal.Logger().Warn("vulkan: pipeline is not a backend graphics pipeline")
		return
	}
	cmd.graphicsPipeline = p
	atomic.AddInt32(&p.refCount, 1)
	cmd.trackedGraphicsPipelines = append(cmd.trackedGraphicsPipelines, p)
	cmd.device.cmds.CmdBindPipeline(cmd.native, uint32(vk.PipelineBindPointGraphics), p.handle)
	cmd.bindAllSets(p.layout, vk.PipelineBindPointGraphics)
	cmd.MarkPipelineBound()
}

// bindAllSets binds every descriptor-set slot in layout unconditionally,
// real or empty sentinel, the instant its pipeline becomes bound
// (spec.md §4.7, §9: the draw path always binds the full set layout so
// it stays branch-free). vkCmdBindDescriptorSets state is sticky across
// draws, so without this a pipeline switch that never calls one of the
// BindXSamplers/BindComputeStorageX helpers for a slot it doesn't use
// would leave that slot bound to whatever the previous pipeline left
// there, incompatible with the newly bound pipeline layout.
func (cmd *CommandBuffer) bindAllSets(layout *pipelineLayoutEntry, bindPoint vk.PipelineBindPoint) {
	for i, sl := range layout.setLayouts {
		set, err := sl.cache.allocate()
		if err != nil {
			hal.Logger().Warn("vulkan: descriptor set allocation failed", "err", err)
			continue
		}
		cmd.boundSets = append(cmd.boundSets, boundDescriptorSet{set: set, cache: sl.cache})
		cmd.device.cmds.CmdBindDescriptorSets(cmd.native, uint32(bindPoint), layout.handle, uint32(i), 1, &set, 0, nil)
	}
}

// BindVertexBuffers implements hal.CommandBuffer.
func (cmd *CommandBuffer) BindVertexBuffers(pass hal.RenderPassHandle, firstBinding uint32, buffers []hal.Buffer, offsets []uint64) {
	if err := cmd.RequirePass(hal.PassRender); err != nil {
		return
	}
	handles := make([]vk.Buffer, len(buffers))
	for i, b := range buffers {
		c, ok := b.(*BufferContainer)
		if !ok {
			hal.Logger().Warn("vulkan: vertex buffer is not a backend buffer")
			return
		}
		h := cmd.prepareBufferRead(c, AccessVertexBufferRead)
		handles[i] = h.buffer.handle
	}
	if len(handles) == 0 {
		return
	}
	cmd.device.cmds.CmdBindVertexBuffers(cmd.native, firstBinding, uint32(len(handles)), &handles[0], &offsets[0])
}

// BindIndexBuffer implements hal.CommandBuffer.
func (cmd *CommandBuffer) BindIndexBuffer(pass hal.RenderPassHandle, buffer hal.Buffer, offset uint64, size types.IndexElementSize) {
	if err := cmd.RequirePass(hal.PassRender); err != nil {
		return
	}
	c, ok := buffer.(*BufferContainer)
	if !ok {
		hal.Logger().Warn("vulkan: index buffer is not a backend buffer")
		return
	}
	h := cmd.prepareBufferRead(c, AccessIndexBufferRead)
	cmd.device.cmds.CmdBindIndexBuffer(cmd.native, h.buffer.handle, offset, uint32(indexTypeToVk(size)))
}

// bindSamplerSet writes textures/samplers into layout's descriptor set
// starting at firstSlot and immediately binds it at setIndex.
func (cmd *CommandBuffer) bindSamplerSet(layout *descriptorSetLayout, setIndex uint32, pipelineLayout vk.PipelineLayout, bindPoint vk.PipelineBindPoint, stage AccessIntent, firstSlot uint32, textures []hal.Texture, samplers []hal.Sampler) {
	if layout == nil || layout.cache == nil || len(textures) == 0 {
		return
	}
	set, err := layout.cache.allocate()
	if err != nil {
		hal.Logger().Warn("vulkan: descriptor set allocation failed", "err", err)
		return
	}
	cmd.boundSets = append(cmd.boundSets, boundDescriptorSet{set: set, cache: layout.cache})

	images := make([]vk.DescriptorImageInfo, len(textures))
	for i, t := range textures {
		c, ok := t.(*TextureContainer)
		if !ok {
			hal.Logger().Warn("vulkan: sampled texture is not a backend texture")
			return
		}
		s, ok := samplers[i].(*NativeSampler)
		if !ok {
			hal.Logger().Warn("vulkan: sampler is not a backend sampler")
			return
		}
		slice := cmd.prepareSliceRead(c, 0, 0, stage)
		cmd.trackSampler(s)
		images[i] = vk.DescriptorImageInfo{Sampler: s.handle, ImageView: slice.view, ImageLayout: vk.ImageLayoutShaderReadOnlyOptimal}
	}
	write := vk.WriteDescriptorSet{
		SType: vk.StructureTypeWriteDescriptorSet, DstSet: set, DstArrayElement: firstSlot,
		DescriptorCount: uint32(len(images)), DescriptorType: vk.DescriptorTypeCombinedImageSampler, PImageInfo: ptrOf(&images[0]),
	}
	cmd.device.cmds.UpdateDescriptorSets(cmd.device.handle, 1, &write, 0, unsafe.Pointer(nil))
	cmd.device.cmds.CmdBindDescriptorSets(cmd.native, uint32(bindPoint), pipelineLayout, setIndex, 1, &set, 0, nil)
}

// BindVertexSamplers implements hal.CommandBuffer.
func (cmd *CommandBuffer) BindVertexSamplers(pass hal.RenderPassHandle, firstSlot uint32, textures []hal.Texture, samplers []hal.Sampler) {
	if err := cmd.RequirePass(hal.PassRender); err != nil {
		return
	}
	p := cmd.graphicsPipeline
	if p == nil {
		return
	}
	cmd.bindSamplerSet(p.layout.setLayouts[0], 0, p.layout.handle, vk.PipelineBindPointGraphics, AccessVertexShaderReadSampledTexture, firstSlot, textures, samplers)
}

// BindFragmentSamplers implements hal.CommandBuffer.
func (cmd *CommandBuffer) BindFragmentSamplers(pass hal.RenderPassHandle, firstSlot uint32, textures []hal.Texture, samplers []hal.Sampler) {
	if err := cmd.RequirePass(hal.PassRender); err != nil {
		return
	}
	p := cmd.graphicsPipeline
	if p == nil {
		return
	}
	cmd.bindSamplerSet(p.layout.setLayouts[1], 1, p.layout.handle, vk.PipelineBindPointGraphics, AccessFragmentShaderReadSampledTexture, firstSlot, textures, samplers)
}

// pushUniform acquires (if needed) a uniform buffer from pool, writes
// data at its bump offset, and binds its dynamic-offset descriptor set
// at setIndex. The buffer in use is stored in *current so the next
// draw pushes into the same buffer.
func (cmd *CommandBuffer) pushUniform(pool *uniformBufferPool, current **uniformBuffer, data []byte, blockSize uint32, pipelineLayout vk.PipelineLayout, bindPoint vk.PipelineBindPoint, setIndex uint32) {
	u := *current
	if u == nil {
		acquired, err := pool.acquire()
		if err != nil {
			hal.Logger().Warn("vulkan: uniform buffer acquire failed", "err", err)
			return
		}
		u = acquired
		*current = u
	}
	offset, ok := u.pushUniformData(data, blockSize, cmd.device.limits.MinUniformBufferOffsetAlignment)
	if !ok {
		acquired, err := pool.acquire()
		if err != nil {
			hal.Logger().Warn("vulkan: uniform buffer acquire failed", "err", err)
			return
		}
		u = acquired
		*current = u
		offset, _ = u.pushUniformData(data, blockSize, cmd.device.limits.MinUniformBufferOffsetAlignment)
	}
	off32 := uint32(offset)
	cmd.device.cmds.CmdBindDescriptorSets(cmd.native, uint32(bindPoint), pipelineLayout, setIndex, 1, &u.set, 1, &off32)
}

// PushVertexUniformData implements hal.CommandBuffer. slot is unused:
// this backend's ABI only ever declares one uniform block per stage.
func (cmd *CommandBuffer) PushVertexUniformData(slot uint32, data []byte) {
	p := cmd.graphicsPipeline
	if p == nil || p.vertexUBOSize == 0 {
		return
	}
	cmd.pushUniform(&cmd.device.vertexUniformPool, &cmd.vertexUniform, data, p.vertexUBOSize, p.layout.handle, vk.PipelineBindPointGraphics, 2)
}

// PushFragmentUniformData implements hal.CommandBuffer.
func (cmd *CommandBuffer) PushFragmentUniformData(slot uint32, data []byte) {
	p := cmd.graphicsPipeline
	if p == nil || p.fragmentUBOSize == 0 {
		return
	}
	cmd.pushUniform(&cmd.device.fragmentUniformPool, &cmd.fragmentUniform, data, p.fragmentUBOSize, p.layout.handle, vk.PipelineBindPointGraphics, 3)
}

// SetViewport implements hal.CommandBuffer.
func (cmd *CommandBuffer) SetViewport(pass hal.RenderPassHandle, x, y, w, h float32) {
	if err := cmd.RequirePass(hal.PassRender); err != nil {
		return
	}
	vp := vk.Viewport{X: x, Y: y, Width: w, Height: h, MinDepth: 0, MaxDepth: 1}
	cmd.device.cmds.CmdSetViewport(cmd.native, 0, 1, &vp)
}

// SetScissor implements hal.CommandBuffer.
func (cmd *CommandBuffer) SetScissor(pass hal.RenderPassHandle, x, y, w, h uint32) {
	if err := cmd.RequirePass(hal.PassRender); err != nil {
		return
	}
	r := vk.Rect2D{Offset: vk.Offset2D{X: int32(x), Y: int32(y)}, Extent: vk.Extent2D{Width: w, Height: h}}
	cmd.device.cmds.CmdSetScissor(cmd.native, 0, 1, &r)
}

// DrawPrimitives implements hal.CommandBuffer.
func (cmd *CommandBuffer) DrawPrimitives(pass hal.RenderPassHandle, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	if err := cmd.RequirePass(hal.PassRender); err != nil {
		return
	}
	if err := cmd.RequirePipelineBound(); err != nil {
		return
	}
	cmd.device.cmds.CmdDraw(cmd.native, vertexCount, instanceCount, firstVertex, firstInstance)
}

// DrawIndexedPrimitives implements hal.CommandBuffer.
func (cmd *CommandBuffer) DrawIndexedPrimitives(pass hal.RenderPassHandle, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	if err := cmd.RequirePass(hal.PassRender); err != nil {
		return
	}
	if err := cmd.RequirePipelineBound(); err != nil {
		return
	}
	cmd.device.cmds.CmdDrawIndexed(cmd.native, indexCount, instanceCount, firstIndex, vertexOffset, firstInstance)
}

// DrawPrimitivesIndirect implements hal.CommandBuffer.
func (cmd *CommandBuffer) DrawPrimitivesIndirect(pass hal.RenderPassHandle, buffer hal.Buffer, offset uint64, drawCount uint32) {
	if err := cmd.RequirePass(hal.PassRender); err != nil {
		return
	}
	if err := cmd.RequirePipelineBound(); err != nil {
		return
	}
	c, ok := buffer.(*BufferContainer)
	if !ok {
		return
	}
	h := cmd.prepareBufferRead(c, AccessIndirectBufferRead)
	cmd.device.cmds.CmdDrawIndirect(cmd.native, h.buffer.handle, offset, drawCount, 16)
}

// DrawIndexedPrimitivesIndirect implements hal.CommandBuffer.
func (cmd *CommandBuffer) DrawIndexedPrimitivesIndirect(pass hal.RenderPassHandle, buffer hal.Buffer, offset uint64, drawCount uint32) {
	if err := cmd.RequirePass(hal.PassRender); err != nil {
		return
	}
	if err := cmd.RequirePipelineBound(); err != nil {
		return
	}
	c, ok := buffer.(*BufferContainer)
	if !ok {
		return
	}
	h := cmd.prepareBufferRead(c, AccessIndirectBufferRead)
	cmd.device.cmds.CmdDrawIndexedIndirect(cmd.native, h.buffer.handle, offset, drawCount, 20)
}

// EndRenderPass implements hal.CommandBuffer.
func (cmd *CommandBuffer) EndRenderPass(pass hal.RenderPassHandle) {
	if cmd.CurrentPass() != hal.PassRender {
		return
	}
	cmd.device.cmds.CmdEndRenderPass(cmd.native)
	cmd.device.releaseFramebuffer(cmd.framebufferKey)
	cmd.renderPass = nil
	cmd.framebuffer = nil
	cmd.graphicsPipeline = nil
	cmd.vertexUniform = nil
	cmd.fragmentUniform = nil
	cmd.depthAttached = false
	cmd.EndPass(hal.PassRender)
}

// ---- compute pass ----

// BeginComputePass implements hal.CommandBuffer: declares up front the
// storage resources the dispatches between here and EndComputePass
// will touch, so their barriers land once instead of per-dispatch.
func (cmd *CommandBuffer) BeginComputePass(storageTex []hal.StorageTextureBinding, storageBuf []hal.StorageBufferBinding) (hal.ComputePassHandle, error) {
	if err := cmd.BeginPass(hal.PassCompute); err != nil {
		return nil, err
	}
	for _, b := range storageTex {
		c, ok := b.Texture.(*TextureContainer)
		if !ok {
			cmd.EndPass(hal.PassCompute)
			return nil, fmt.Errorf("vulkan: storage texture is not a backend texture")
		}
		intent := AccessComputeShaderReadStorageTexture
		if b.Write {
			intent = AccessComputeShaderWriteStorageTexture
			cmd.PrepareSliceForWrite(c, b.Layer, b.Level, hal.WriteSafe, intent)
		} else {
			cmd.prepareSliceRead(c, b.Layer, b.Level, intent)
		}
	}
	for _, b := range storageBuf {
		c, ok := b.Buffer.(*BufferContainer)
		if !ok {
			cmd.EndPass(hal.PassCompute)
			return nil, fmt.Errorf("vulkan: storage buffer is not a backend buffer")
		}
		intent := AccessComputeShaderReadStorageBuffer
		if b.Write {
			intent = AccessComputeShaderWriteStorageBuffer
			cmd.PrepareBufferForWrite(c, hal.WriteSafe, intent)
		} else {
			cmd.prepareBufferRead(c, intent)
		}
	}
	return cmd, nil
}

// BindComputePipeline implements hal.CommandBuffer.
func (cmd *CommandBuffer) BindComputePipeline(pass hal.ComputePassHandle, pipeline hal.ComputePipeline) {
	if err := cmd.RequirePass(hal.PassCompute); err != nil {
		return
	}
	p, ok := pipeline.(*ComputePipeline)
	if !ok {
		hal.Logger().Warn("vulkan: pipeline is not a backend compute pipeline")
		return
	}
	cmd.computePipeline = p
	atomic.AddInt32(&p.refCount, 1)
	cmd.trackedComputePipelines = append(cmd.trackedComputePipelines, p)
	cmd.device.cmds.CmdBindPipeline(cmd.native, uint32(vk.PipelineBindPointCompute), p.handle)
	cmd.bindAllSets(p.layout, vk.PipelineBindPointCompute)
	cmd.MarkPipelineBound()
}

// BindComputeStorageTextures implements hal.CommandBuffer.
func (cmd *CommandBuffer) BindComputeStorageTextures(pass hal.ComputePassHandle, firstSlot uint32, textures []hal.Texture) {
	if err := cmd.RequirePass(hal.PassCompute); err != nil {
		return
	}
	p := cmd.computePipeline
	if p == nil || p.layout.setLayouts[0].cache == nil || len(textures) == 0 {
		return
	}
	layout := p.layout.setLayouts[0]
	set, err := layout.cache.allocate()
	if err != nil {
		hal.Logger().Warn("vulkan: descriptor set allocation failed", "err", err)
		return
	}
	cmd.boundSets = append(cmd.boundSets, boundDescriptorSet{set: set, cache: layout.cache})

	images := make([]vk.DescriptorImageInfo, len(textures))
	for i, t := range textures {
		c, ok := t.(*TextureContainer)
		if !ok {
			return
		}
		slice := c.Active().texture.sliceAt(0, 0)
		cmd.trackSlice(slice)
		images[i] = vk.DescriptorImageInfo{ImageView: slice.view, ImageLayout: vk.ImageLayoutGeneral}
	}
	write := vk.WriteDescriptorSet{
		SType: vk.StructureTypeWriteDescriptorSet, DstSet: set, DstArrayElement: firstSlot,
		DescriptorCount: uint32(len(images)), DescriptorType: vk.DescriptorTypeStorageImage, PImageInfo: ptrOf(&images[0]),
	}
	cmd.device.cmds.UpdateDescriptorSets(cmd.device.handle, 1, &write, 0, unsafe.Pointer(nil))
	cmd.device.cmds.CmdBindDescriptorSets(cmd.native, uint32(vk.PipelineBindPointCompute), p.layout.handle, 0, 1, &set, 0, nil)
}

// BindComputeStorageBuffers implements hal.CommandBuffer.
func (cmd *CommandBuffer) BindComputeStorageBuffers(pass hal.ComputePassHandle, firstSlot uint32, buffers []hal.Buffer) {
	if err := cmd.RequirePass(hal.PassCompute); err != nil {
		return
	}
	p := cmd.computePipeline
	if p == nil || p.layout.setLayouts[1].cache == nil || len(buffers) == 0 {
		return
	}
	layout := p.layout.setLayouts[1]
	set, err := layout.cache.allocate()
	if err != nil {
		hal.Logger().Warn("vulkan: descriptor set allocation failed", "err", err)
		return
	}
	cmd.boundSets = append(cmd.boundSets, boundDescriptorSet{set: set, cache: layout.cache})

	infos := make([]vk.DescriptorBufferInfo, len(buffers))
	for i, b := range buffers {
		c, ok := b.(*BufferContainer)
		if !ok {
			return
		}
		h := c.Active()
		cmd.trackBuffer(h.buffer)
		infos[i] = vk.DescriptorBufferInfo{Buffer: h.buffer.handle, Offset: 0, Range: h.buffer.size}
	}
	write := vk.WriteDescriptorSet{
		SType: vk.StructureTypeWriteDescriptorSet, DstSet: set, DstArrayElement: firstSlot,
		DescriptorCount: uint32(len(infos)), DescriptorType: vk.DescriptorTypeStorageBuffer, PBufferInfo: ptrOf(&infos[0]),
	}
	cmd.device.cmds.UpdateDescriptorSets(cmd.device.handle, 1, &write, 0, unsafe.Pointer(nil))
	cmd.device.cmds.CmdBindDescriptorSets(cmd.native, uint32(vk.PipelineBindPointCompute), p.layout.handle, 1, 1, &set, 0, nil)
}

// PushComputeUniformData implements hal.CommandBuffer.
func (cmd *CommandBuffer) PushComputeUniformData(slot uint32, data []byte) {
	p := cmd.computePipeline
	if p == nil || p.computeUBOSize == 0 {
		return
	}
	cmd.pushUniform(&cmd.device.computeUniformPool, &cmd.computeUniform, data, p.computeUBOSize, p.layout.handle, vk.PipelineBindPointCompute, 2)
}

// DispatchCompute implements hal.CommandBuffer.
func (cmd *CommandBuffer) DispatchCompute(pass hal.ComputePassHandle, groupsX, groupsY, groupsZ uint32) {
	if err := cmd.RequirePass(hal.PassCompute); err != nil {
		return
	}
	if err := cmd.RequirePipelineBound(); err != nil {
		return
	}
	cmd.device.cmds.CmdDispatch(cmd.native, groupsX, groupsY, groupsZ)
}

// EndComputePass implements hal.CommandBuffer.
func (cmd *CommandBuffer) EndComputePass(pass hal.ComputePassHandle) {
	if cmd.CurrentPass() != hal.PassCompute {
		return
	}
	cmd.computePipeline = nil
	cmd.computeUniform = nil
	cmd.EndPass(hal.PassCompute)
}

// ---- copy pass ----

// BeginCopyPass implements hal.CommandBuffer.
func (cmd *CommandBuffer) BeginCopyPass() (hal.CopyPassHandle, error) {
	if err := cmd.BeginPass(hal.PassCopy); err != nil {
		return nil, err
	}
	return cmd, nil
}

// UploadToTexture implements hal.CommandBuffer.
func (cmd *CommandBuffer) UploadToTexture(pass hal.CopyPassHandle, src hal.BufferRegion, dst hal.TextureRegion, cycle bool) {
	if err := cmd.RequirePass(hal.PassCopy); err != nil {
		return
	}
	sc, ok := src.Buffer.(*BufferContainer)
	if !ok {
		return
	}
	dc, ok := dst.Texture.(*TextureContainer)
	if !ok {
		return
	}
	srcHandle := cmd.prepareBufferRead(sc, AccessTransferRead)
	dstSlice := cmd.PrepareSliceForWrite(dc, dst.Layer, dst.Level, cycleOptionFor(cycle), AccessTransferWrite)

	region := vk.BufferImageCopy{
		BufferOffset:     src.Offset,
		ImageSubresource: vk.ImageSubresourceLayers{AspectMask: dstSlice.parent.aspect, MipLevel: dst.Level, BaseArrayLayer: dst.Layer, LayerCount: 1},
		ImageOffset:      vk.Offset3D{X: int32(dst.X), Y: int32(dst.Y), Z: int32(dst.Z)},
		ImageExtent:      vk.Extent3D{Width: dst.Width, Height: dst.Height, Depth: maxu32(dst.Depth, 1)},
	}
	cmd.device.cmds.CmdCopyBufferToImage(cmd.native, srcHandle.buffer.handle, dstSlice.parent.image, uint32(vk.ImageLayoutTransferDstOptimal), 1, &region)
}

// UploadToBuffer implements hal.CommandBuffer.
func (cmd *CommandBuffer) UploadToBuffer(pass hal.CopyPassHandle, src hal.BufferRegion, dst hal.BufferRegion, cycle bool) {
	cmd.copyBufferToBuffer(src, dst, cycle)
}

// CopyBufferToBuffer implements hal.CommandBuffer.
func (cmd *CommandBuffer) CopyBufferToBuffer(pass hal.CopyPassHandle, src, dst hal.BufferRegion, cycle bool) {
	cmd.copyBufferToBuffer(src, dst, cycle)
}

func (cmd *CommandBuffer) copyBufferToBuffer(src, dst hal.BufferRegion, cycle bool) {
	if err := cmd.RequirePass(hal.PassCopy); err != nil {
		return
	}
	sc, ok := src.Buffer.(*BufferContainer)
	if !ok {
		return
	}
	dc, ok := dst.Buffer.(*BufferContainer)
	if !ok {
		return
	}
	srcHandle := cmd.prepareBufferRead(sc, AccessTransferRead)
	dstHandle := cmd.PrepareBufferForWrite(dc, cycleOptionFor(cycle), AccessTransferWrite)
	region := vk.BufferCopy{SrcOffset: src.Offset, DstOffset: dst.Offset, Size: dst.Size}
	cmd.device.cmds.CmdCopyBuffer(cmd.native, srcHandle.buffer.handle, dstHandle.buffer.handle, 1, &region)
}

// CopyTextureToTexture implements hal.CommandBuffer.
func (cmd *CommandBuffer) CopyTextureToTexture(pass hal.CopyPassHandle, src, dst hal.TextureRegion, cycle bool) {
	if err := cmd.RequirePass(hal.PassCopy); err != nil {
		return
	}
	sc, ok := src.Texture.(*TextureContainer)
	if !ok {
		return
	}
	dc, ok := dst.Texture.(*TextureContainer)
	if !ok {
		return
	}
	srcSlice := cmd.prepareSliceRead(sc, src.Layer, src.Level, AccessTransferRead)
	dstSlice := cmd.PrepareSliceForWrite(dc, dst.Layer, dst.Level, cycleOptionFor(cycle), AccessTransferWrite)

	region := vk.ImageCopy{
		SrcSubresource: vk.ImageSubresourceLayers{AspectMask: srcSlice.parent.aspect, MipLevel: src.Level, BaseArrayLayer: src.Layer, LayerCount: 1},
		SrcOffset:      vk.Offset3D{X: int32(src.X), Y: int32(src.Y), Z: int32(src.Z)},
		DstSubresource: vk.ImageSubresourceLayers{AspectMask: dstSlice.parent.aspect, MipLevel: dst.Level, BaseArrayLayer: dst.Layer, LayerCount: 1},
		DstOffset:      vk.Offset3D{X: int32(dst.X), Y: int32(dst.Y), Z: int32(dst.Z)},
		Extent:         vk.Extent3D{Width: dst.Width, Height: dst.Height, Depth: maxu32(dst.Depth, 1)},
	}
	cmd.device.cmds.CmdCopyImage(cmd.native, srcSlice.parent.image, uint32(vk.ImageLayoutTransferSrcOptimal), dstSlice.parent.image, uint32(vk.ImageLayoutTransferDstOptimal), 1, &region)
}

// GenerateMipmaps implements hal.CommandBuffer: successively blits each
// level down from the one above it, level 0 assumed already populated.
func (cmd *CommandBuffer) GenerateMipmaps(pass hal.CopyPassHandle, texture hal.Texture) {
	if err := cmd.RequirePass(hal.PassCopy); err != nil {
		return
	}
	c, ok := texture.(*TextureContainer)
	if !ok {
		return
	}
	h := c.Active()
	t := h.texture
	if t.levelCount < 2 {
		return
	}
	w, ht := int32(t.width), int32(t.height)
	for layer := uint32(0); layer < t.layerCount; layer++ {
		srcW, srcH := w, ht
		for level := uint32(1); level < t.levelCount; level++ {
			dstW, dstH := maxi32(srcW/2, 1), maxi32(srcH/2, 1)
			srcSlice := t.sliceAt(layer, level-1)
			dstSlice := t.sliceAt(layer, level)
			emitImageBarrier(cmd.device.cmds, cmd.native, t.image, t.aspect, layer, 1, level-1, 1, srcSlice.currentIntent, AccessTransferRead)
			srcSlice.currentIntent = AccessTransferRead
			emitImageBarrier(cmd.device.cmds, cmd.native, t.image, t.aspect, layer, 1, level, 1, dstSlice.currentIntent, AccessTransferWrite)
			dstSlice.currentIntent = AccessTransferWrite

			blit := vk.ImageBlit{
				SrcSubresource: vk.ImageSubresourceLayers{AspectMask: t.aspect, MipLevel: level - 1, BaseArrayLayer: layer, LayerCount: 1},
				SrcOffsets:     [2]vk.Offset3D{{}, {X: srcW, Y: srcH, Z: 1}},
				DstSubresource: vk.ImageSubresourceLayers{AspectMask: t.aspect, MipLevel: level, BaseArrayLayer: layer, LayerCount: 1},
				DstOffsets:     [2]vk.Offset3D{{}, {X: dstW, Y: dstH, Z: 1}},
			}
			cmd.device.cmds.CmdBlitImage(cmd.native, t.image, uint32(vk.ImageLayoutTransferSrcOptimal), t.image, uint32(vk.ImageLayoutTransferDstOptimal), 1, &blit, uint32(vk.FilterLinear))
			srcW, srcH = dstW, dstH
		}
	}
}

func maxi32(v, min int32) int32 {
	if v < min {
		return min
	}
	return v
}

// DownloadFromBuffer implements hal.CommandBuffer.
func (cmd *CommandBuffer) DownloadFromBuffer(pass hal.CopyPassHandle, src hal.BufferRegion, dst hal.BufferRegion) {
	if err := cmd.RequirePass(hal.PassCopy); err != nil {
		return
	}
	sc, ok := src.Buffer.(*BufferContainer)
	if !ok {
		return
	}
	dc, ok := dst.Buffer.(*BufferContainer)
	if !ok {
		return
	}
	srcHandle := cmd.prepareBufferRead(sc, AccessTransferRead)
	dstHandle := cmd.PrepareBufferForWrite(dc, hal.WriteSafe, AccessTransferWrite)
	region := vk.BufferCopy{SrcOffset: src.Offset, DstOffset: dst.Offset, Size: src.Size}
	cmd.device.cmds.CmdCopyBuffer(cmd.native, srcHandle.buffer.handle, dstHandle.buffer.handle, 1, &region)
}

// DownloadFromTexture implements hal.CommandBuffer.
func (cmd *CommandBuffer) DownloadFromTexture(pass hal.CopyPassHandle, src hal.TextureRegion, dst hal.BufferRegion) {
	if err := cmd.RequirePass(hal.PassCopy); err != nil {
		return
	}
	sc, ok := src.Texture.(*TextureContainer)
	if !ok {
		return
	}
	dc, ok := dst.Buffer.(*BufferContainer)
	if !ok {
		return
	}
	srcSlice := cmd.prepareSliceRead(sc, src.Layer, src.Level, AccessTransferRead)
	dstHandle := cmd.PrepareBufferForWrite(dc, hal.WriteSafe, AccessTransferWrite)
	region := vk.BufferImageCopy{
		BufferOffset:     dst.Offset,
		ImageSubresource: vk.ImageSubresourceLayers{AspectMask: srcSlice.parent.aspect, MipLevel: src.Level, BaseArrayLayer: src.Layer, LayerCount: 1},
		ImageOffset:      vk.Offset3D{X: int32(src.X), Y: int32(src.Y), Z: int32(src.Z)},
		ImageExtent:      vk.Extent3D{Width: src.Width, Height: src.Height, Depth: maxu32(src.Depth, 1)},
	}
	cmd.device.cmds.CmdCopyImageToBuffer(cmd.native, srcSlice.parent.image, uint32(vk.ImageLayoutTransferSrcOptimal), dstHandle.buffer.handle, 1, &region)
}

// EndCopyPass implements hal.CommandBuffer.
func (cmd *CommandBuffer) EndCopyPass(pass hal.CopyPassHandle) {
	cmd.EndPass(hal.PassCopy)
}

// Blit implements hal.CommandBuffer: a standalone copy-pass-less
// image blit, usable outside any declared pass.
func (cmd *CommandBuffer) Blit(src hal.TextureRegion, dst hal.TextureRegion, filter hal.Filter, cycle bool) {
	sc, ok := src.Texture.(*TextureContainer)
	if !ok {
		return
	}
	dc, ok := dst.Texture.(*TextureContainer)
	if !ok {
		return
	}
	srcSlice := cmd.prepareSliceRead(sc, src.Layer, src.Level, AccessTransferRead)
	dstSlice := cmd.PrepareSliceForWrite(dc, dst.Layer, dst.Level, cycleOptionFor(cycle), AccessTransferWrite)

	blit := vk.ImageBlit{
		SrcSubresource: vk.ImageSubresourceLayers{AspectMask: srcSlice.parent.aspect, MipLevel: src.Level, BaseArrayLayer: src.Layer, LayerCount: 1},
		SrcOffsets:     [2]vk.Offset3D{{X: int32(src.X), Y: int32(src.Y), Z: int32(src.Z)}, {X: int32(src.X) + int32(src.Width), Y: int32(src.Y) + int32(src.Height), Z: int32(src.Z) + int32(maxu32(src.Depth, 1))}},
		DstSubresource: vk.ImageSubresourceLayers{AspectMask: dstSlice.parent.aspect, MipLevel: dst.Level, BaseArrayLayer: dst.Layer, LayerCount: 1},
		DstOffsets:     [2]vk.Offset3D{{X: int32(dst.X), Y: int32(dst.Y), Z: int32(dst.Z)}, {X: int32(dst.X) + int32(dst.Width), Y: int32(dst.Y) + int32(dst.Height), Z: int32(dst.Z) + int32(maxu32(dst.Depth, 1))}},
	}
	cmd.device.cmds.CmdBlitImage(cmd.native, srcSlice.parent.image, uint32(vk.ImageLayoutTransferSrcOptimal), dstSlice.parent.image, uint32(vk.ImageLayoutTransferDstOptimal), 1, &blit, uint32(filterToVk(filter)))
}

// Submit implements hal.CommandBuffer.
func (cmd *CommandBuffer) Submit() error {
	_, err := cmd.device.submit(cmd, false)
	return err
}

// SubmitAndAcquireFence implements hal.CommandBuffer.
func (cmd *CommandBuffer) SubmitAndAcquireFence() (hal.Fence, error) {
	f, err := cmd.device.submit(cmd, true)
	if err != nil {
		return nil, err
	}
	return f, nil
}
