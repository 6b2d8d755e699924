// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"

	"github.com/forgegpu/vkgpu/hal"
	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
)

// submit ends recording on cmd, submits it to the device queue, and
// services any swapchain presents it queued (spec.md §4.7). A fence
// always guards the submission so cleanup knows when it drains; if
// acquireFence is false the fence is still pooled internally but never
// handed back to the caller, per spec.md §4.7's "fence is optional to
// the caller, mandatory to the backend".
func (d *Device) submit(cmd *CommandBuffer, acquireFence bool) (hal.Fence, error) {
	if err := cmd.PrepareSubmit(); err != nil {
		return nil, err
	}

	// Every queued present's image must sit in PRESENT_SRC_KHR before
	// vkQueuePresentKHR runs; emit that transition now, the last
	// recorded commands before the buffer ends (spec.md §4.2, §4.7).
	for _, p := range cmd.presents {
		tex := p.slice.parent
		emitImageBarrier(d.cmds, cmd.native, tex.image, tex.aspect, 0, 1, 0, 1, p.slice.currentIntent, AccessPresent)
		p.slice.currentIntent = AccessPresent
	}

	if res := d.cmds.EndCommandBuffer(cmd.native); res != vk.Success {
		return nil, fmt.Errorf("vulkan: vkEndCommandBuffer failed: %v", res)
	}

	fence, err := d.fences.acquire()
	if err != nil {
		return nil, err
	}
	cmd.fence = fence

	native := cmd.native
	info := vk.SubmitInfo{
		SType: vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1, PCommandBuffers: ptrOf(&native),
	}

	// A present's acquireSemaphore gates the submission itself (the
	// image isn't ready until vkAcquireNextImageKHR's semaphore
	// signals); its waitSemaphore is signaled by this submission and
	// later waited on by the present call below.
	var waitSems []vk.Semaphore
	var waitStages []vk.PipelineStageFlags
	var signalSems []vk.Semaphore
	for _, p := range cmd.presents {
		if p.acquireSemaphore != 0 {
			waitSems = append(waitSems, p.acquireSemaphore)
			waitStages = append(waitStages, vk.PipelineStageColorAttachmentOutputBit)
		}
		if p.waitSemaphore != 0 {
			signalSems = append(signalSems, p.waitSemaphore)
		}
	}
	if len(waitSems) > 0 {
		info.WaitSemaphoreCount = uint32(len(waitSems))
		info.PWaitSemaphores = ptrOf(&waitSems[0])
		info.PWaitDstStageMask = ptrOf(&waitStages[0])
	}
	if len(signalSems) > 0 {
		info.SignalSemaphoreCount = uint32(len(signalSems))
		info.PSignalSemaphores = ptrOf(&signalSems[0])
	}

	if res := d.cmds.QueueSubmit(d.queue, 1, &info, fence.handle); res != vk.Success {
		d.fences.release(fence)
		return nil, fmt.Errorf("vulkan: vkQueueSubmit failed: %v", res)
	}

	for _, p := range cmd.presents {
		sc := p.swapchain.handle
		idx := p.imageIndex
		presentInfo := vk.PresentInfoKHR{
			SType: vk.StructureTypePresentInfoKHR,
			SwapchainCount: 1, PSwapchains: ptrOf(&sc), PImageIndices: ptrOf(&idx),
		}
		if p.waitSemaphore != 0 {
			sem := p.waitSemaphore
			presentInfo.WaitSemaphoreCount = 1
			presentInfo.PWaitSemaphores = ptrOf(&sem)
		}
		res := d.cmds.QueuePresentKHR(d.queue, &presentInfo)
		p.swapchain.mu.Lock()
		if res != vk.Success && res != vk.SuboptimalKHR {
			hal.Logger().Warn("vulkan: vkQueuePresentKHR failed", "err", res)
			p.swapchain.outOfDate = true
		}
		if p.swapchain.inFlight > 0 {
			p.swapchain.inFlight--
		}
		p.swapchain.mu.Unlock()
	}

	d.submittedMu.Lock()
	d.submitted = append(d.submitted, cmd)
	d.submittedMu.Unlock()

	d.reapSubmitted()

	if acquireFence {
		return fence, nil
	}
	return nil, nil
}

// reapSubmitted scans every tracked in-flight command buffer and
// cleans up the ones whose fence has signaled: returns bound
// descriptor sets and uniform buffers to their pools, drops tracked
// resource refcounts, and releases the native command buffer and fence
// back to their respective pools (spec.md §4.7 "On cleanup after fence
// signal"). Called after every submission rather than on a timer,
// since a command buffer backend has no other natural place to poll.
func (d *Device) reapSubmitted() {
	d.submittedMu.Lock()
	pending := d.submitted
	d.submitted = nil
	d.submittedMu.Unlock()

	var stillPending []*CommandBuffer
	for _, cmd := range pending {
		if cmd.fence.Query() != 1 {
			stillPending = append(stillPending, cmd)
			continue
		}
		d.cleanupCommandBuffer(cmd)
	}

	if len(stillPending) > 0 {
		d.submittedMu.Lock()
		d.submitted = append(d.submitted, stillPending...)
		d.submittedMu.Unlock()
	}

	d.drainPendingDestroys()
	d.allocator.ReclaimEmptyPages()
	if page, sub := d.allocator.PopDefragPage(); page != nil {
		d.queueDefragPage(page, sub)
	}
	d.defrag.runCycle()
}

// cleanupCommandBuffer releases every resource cmd's recording
// acquired or referenced, once its fence has signaled.
func (d *Device) cleanupCommandBuffer(cmd *CommandBuffer) {
	for _, bs := range cmd.boundSets {
		bs.cache.free(bs.set)
	}
	if cmd.vertexUniform != nil {
		d.vertexUniformPool.release(cmd.vertexUniform)
	}
	if cmd.fragmentUniform != nil {
		d.fragmentUniformPool.release(cmd.fragmentUniform)
	}
	if cmd.computeUniform != nil {
		d.computeUniformPool.release(cmd.computeUniform)
	}

	for _, nb := range cmd.trackedBuffers {
		d.releaseTrackedBuffer(nb)
	}
	for _, s := range cmd.trackedSlices {
		d.releaseTrackedSlice(s)
	}
	for _, s := range cmd.trackedSamplers {
		d.releaseTrackedSampler(s)
	}
	for _, p := range cmd.trackedGraphicsPipelines {
		d.releaseTrackedGraphicsPipeline(p)
	}
	for _, p := range cmd.trackedComputePipelines {
		d.releaseTrackedComputePipeline(p)
	}

	d.fences.release(cmd.fence)
	d.pools.release(cmd.pool, cmd.native)
}
