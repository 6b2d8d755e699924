// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"unsafe"

	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
)

// AccessIntent is the single closed enumeration driving every barrier
// this backend ever emits (spec.md §4.2). A resource's current intent
// is updated in place by Barrier whenever it transitions; nothing else
// in this package is allowed to construct a VkImageMemoryBarrier or
// VkBufferMemoryBarrier ad hoc.
type AccessIntent uint32

const (
	AccessNone AccessIntent = iota

	AccessVertexBufferRead
	AccessIndexBufferRead
	AccessIndirectBufferRead

	AccessVertexShaderReadUniformBuffer
	AccessVertexShaderReadSampledTexture
	AccessVertexShaderReadStorageBuffer
	AccessVertexShaderReadStorageTexture
	AccessVertexShaderWriteStorageBuffer
	AccessVertexShaderWriteStorageTexture

	AccessFragmentShaderReadUniformBuffer
	AccessFragmentShaderReadSampledTexture
	AccessFragmentShaderReadStorageBuffer
	AccessFragmentShaderReadStorageTexture
	AccessFragmentShaderWriteStorageBuffer
	AccessFragmentShaderWriteStorageTexture

	AccessComputeShaderReadUniformBuffer
	AccessComputeShaderReadSampledTexture
	AccessComputeShaderReadStorageBuffer
	AccessComputeShaderReadStorageTexture
	AccessComputeShaderWriteStorageBuffer
	AccessComputeShaderWriteStorageTexture

	AccessColorAttachmentRead
	AccessColorAttachmentWrite
	AccessDepthStencilAttachmentRead
	AccessDepthStencilAttachmentWrite
	AccessResolveWrite

	AccessTransferRead
	AccessTransferWrite

	AccessHostRead
	AccessHostWrite

	AccessPresent
	AccessGeneral

	accessIntentCount
)

// intentInfo is the dense per-intent row spec.md §9 calls "the single
// source of truth for synchronization": stage, access mask, and the
// image layout a texture in this intent sits in. Buffers ignore Layout.
type intentInfo struct {
	stage   vk.PipelineStageFlags
	access  vk.AccessFlags
	layout  vk.ImageLayout
	isWrite bool
}

var intentTable = [accessIntentCount]intentInfo{
	AccessNone: {layout: vk.ImageLayoutUndefined},

	AccessVertexBufferRead:   {stage: vk.PipelineStageVertexInputBit, access: vk.AccessVertexAttributeReadBit},
	AccessIndexBufferRead:    {stage: vk.PipelineStageVertexInputBit, access: vk.AccessIndexReadBit},
	AccessIndirectBufferRead: {stage: vk.PipelineStageDrawIndirectBit, access: vk.AccessIndirectCommandReadBit},

	AccessVertexShaderReadUniformBuffer:  {stage: vk.PipelineStageVertexShaderBit, access: vk.AccessUniformReadBit},
	AccessVertexShaderReadSampledTexture: {stage: vk.PipelineStageVertexShaderBit, access: vk.AccessShaderReadBit, layout: vk.ImageLayoutShaderReadOnlyOptimal},
	AccessVertexShaderReadStorageBuffer:  {stage: vk.PipelineStageVertexShaderBit, access: vk.AccessShaderReadBit},
	AccessVertexShaderReadStorageTexture: {stage: vk.PipelineStageVertexShaderBit, access: vk.AccessShaderReadBit, layout: vk.ImageLayoutGeneral},
	AccessVertexShaderWriteStorageBuffer: {stage: vk.PipelineStageVertexShaderBit, access: vk.AccessShaderWriteBit, isWrite: true},
	AccessVertexShaderWriteStorageTexture: {stage: vk.PipelineStageVertexShaderBit, access: vk.AccessShaderWriteBit, layout: vk.ImageLayoutGeneral, isWrite: true},

	AccessFragmentShaderReadUniformBuffer:  {stage: vk.PipelineStageFragmentShaderBit, access: vk.AccessUniformReadBit},
	AccessFragmentShaderReadSampledTexture: {stage: vk.PipelineStageFragmentShaderBit, access: vk.AccessShaderReadBit, layout: vk.ImageLayoutShaderReadOnlyOptimal},
	AccessFragmentShaderReadStorageBuffer:  {stage: vk.PipelineStageFragmentShaderBit, access: vk.AccessShaderReadBit},
	AccessFragmentShaderReadStorageTexture: {stage: vk.PipelineStageFragmentShaderBit, access: vk.AccessShaderReadBit, layout: vk.ImageLayoutGeneral},
	AccessFragmentShaderWriteStorageBuffer: {stage: vk.PipelineStageFragmentShaderBit, access: vk.AccessShaderWriteBit, isWrite: true},
	AccessFragmentShaderWriteStorageTexture: {stage: vk.PipelineStageFragmentShaderBit, access: vk.AccessShaderWriteBit, layout: vk.ImageLayoutGeneral, isWrite: true},

	AccessComputeShaderReadUniformBuffer:  {stage: vk.PipelineStageComputeShaderBit, access: vk.AccessUniformReadBit},
	AccessComputeShaderReadSampledTexture: {stage: vk.PipelineStageComputeShaderBit, access: vk.AccessShaderReadBit, layout: vk.ImageLayoutShaderReadOnlyOptimal},
	AccessComputeShaderReadStorageBuffer:  {stage: vk.PipelineStageComputeShaderBit, access: vk.AccessShaderReadBit},
	AccessComputeShaderReadStorageTexture: {stage: vk.PipelineStageComputeShaderBit, access: vk.AccessShaderReadBit, layout: vk.ImageLayoutGeneral},
	AccessComputeShaderWriteStorageBuffer: {stage: vk.PipelineStageComputeShaderBit, access: vk.AccessShaderWriteBit, isWrite: true},
	AccessComputeShaderWriteStorageTexture: {stage: vk.PipelineStageComputeShaderBit, access: vk.AccessShaderWriteBit, layout: vk.ImageLayoutGeneral, isWrite: true},

	AccessColorAttachmentRead:  {stage: vk.PipelineStageColorAttachmentOutputBit, access: vk.AccessColorAttachmentReadBit, layout: vk.ImageLayoutColorAttachmentOptimal},
	AccessColorAttachmentWrite: {stage: vk.PipelineStageColorAttachmentOutputBit, access: vk.AccessColorAttachmentWriteBit, layout: vk.ImageLayoutColorAttachmentOptimal, isWrite: true},
	AccessDepthStencilAttachmentRead: {
		stage: vk.PipelineStageEarlyFragmentTestsBit | vk.PipelineStageLateFragmentTestsBit, access: vk.AccessDepthStencilAttachmentReadBit, layout: vk.ImageLayoutDepthStencilReadOnlyOptimal,
	},
	AccessDepthStencilAttachmentWrite: {
		stage: vk.PipelineStageEarlyFragmentTestsBit | vk.PipelineStageLateFragmentTestsBit, access: vk.AccessDepthStencilAttachmentWriteBit, layout: vk.ImageLayoutDepthStencilAttachmentOptimal, isWrite: true,
	},
	AccessResolveWrite: {stage: vk.PipelineStageColorAttachmentOutputBit, access: vk.AccessColorAttachmentWriteBit, layout: vk.ImageLayoutColorAttachmentOptimal, isWrite: true},

	AccessTransferRead:  {stage: vk.PipelineStageTransferBit, access: vk.AccessTransferReadBit, layout: vk.ImageLayoutTransferSrcOptimal},
	AccessTransferWrite: {stage: vk.PipelineStageTransferBit, access: vk.AccessTransferWriteBit, layout: vk.ImageLayoutTransferDstOptimal, isWrite: true},

	AccessHostRead:  {stage: vk.PipelineStageHostBit, access: vk.AccessHostReadBit, layout: vk.ImageLayoutGeneral},
	AccessHostWrite: {stage: vk.PipelineStageHostBit, access: vk.AccessHostWriteBit, layout: vk.ImageLayoutGeneral, isWrite: true},

	AccessPresent: {stage: vk.PipelineStageBottomOfPipeBit, layout: vk.ImageLayoutPresentSrcKHR},
	AccessGeneral: {stage: vk.PipelineStageTopOfPipeBit | vk.PipelineStageBottomOfPipeBit, access: vk.AccessMemoryReadBit | vk.AccessMemoryWriteBit, layout: vk.ImageLayoutGeneral},
}

func (a AccessIntent) row() intentInfo {
	if a >= accessIntentCount {
		return intentInfo{}
	}
	return intentTable[a]
}

// barrierFor computes the pipeline-stage and VkBufferMemoryBarrier
// fields for a transition from old to next, per spec.md §4.2: source
// stage substitutes top-of-pipe when old carried no stage, destination
// substitutes bottom-of-pipe likewise; source access is suppressed
// unless old was a write; destination access is suppressed on a
// read-after-unwritten transition (old == AccessNone).
func barrierFor(old, next AccessIntent) (srcStage, dstStage vk.PipelineStageFlags, srcAccess, dstAccess vk.AccessFlags) {
	o, n := old.row(), next.row()

	srcStage = o.stage
	if srcStage == 0 {
		srcStage = vk.PipelineStageTopOfPipeBit
	}
	dstStage = n.stage
	if dstStage == 0 {
		dstStage = vk.PipelineStageBottomOfPipeBit
	}

	if o.isWrite {
		srcAccess = o.access
	}
	if old != AccessNone {
		dstAccess = n.access
	}
	return
}

// emitBufferBarrier records a pipeline barrier transitioning the buffer
// range from old to next, and records nothing when old == next. It
// returns nothing; callers store the new current intent themselves
// (callers are responsible for pass-state legality).
func emitBufferBarrier(cmds *vk.Commands, cb vk.CommandBuffer, handle vk.Buffer, offset, size uint64, old, next AccessIntent) {
	if old == next {
		return
	}
	srcStage, dstStage, srcAccess, dstAccess := barrierFor(old, next)
	b := vk.BufferMemoryBarrier{
		SType:               vk.StructureTypeBufferMemoryBarrier,
		SrcAccessMask:       srcAccess,
		DstAccessMask:       dstAccess,
		SrcQueueFamilyIndex: ignoredQueueFamily,
		DstQueueFamilyIndex: ignoredQueueFamily,
		Buffer:              handle,
		Offset:              offset,
		Size:                size,
	}
	cmds.CmdPipelineBarrier(cb, uint32(srcStage), uint32(dstStage), 0, nil, 1, unsafe.Pointer(&b), 0, nil)
}

// emitImageBarrier records an image barrier. Layout transitions always
// apply for image barriers, even when old == next, because the two
// intents may still disagree on layout immediately after creation
// (spec.md §4.2 "image layout transitions always apply").
func emitImageBarrier(cmds *vk.Commands, cb vk.CommandBuffer, image vk.Image, aspect vk.ImageAspectFlags, baseLayer, layerCount, baseLevel, levelCount uint32, old, next AccessIntent) {
	srcStage, dstStage, srcAccess, dstAccess := barrierFor(old, next)
	o, n := old.row(), next.row()
	b := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		SrcAccessMask:       srcAccess,
		DstAccessMask:       dstAccess,
		OldLayout:           o.layout,
		NewLayout:           n.layout,
		SrcQueueFamilyIndex: ignoredQueueFamily,
		DstQueueFamilyIndex: ignoredQueueFamily,
		Image:               image,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     aspect,
			BaseMipLevel:   baseLevel,
			LevelCount:     levelCount,
			BaseArrayLayer: baseLayer,
			LayerCount:     layerCount,
		},
	}
	cmds.CmdPipelineBarrier(cb, uint32(srcStage), uint32(dstStage), 0, nil, 0, nil, 1, unsafe.Pointer(&b))
}

// ignoredQueueFamily mirrors VK_QUEUE_FAMILY_IGNORED; this backend
// never transfers queue family ownership (single graphics+compute
// queue, spec.md §2 Swapchain/Command Buffer Engine rows).
const ignoredQueueFamily = ^uint32(0)
