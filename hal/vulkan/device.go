// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"sync"

	"github.com/forgegpu/vkgpu/hal"
	"github.com/forgegpu/vkgpu/hal/vulkan/memory"
	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
	"github.com/forgegpu/vkgpu/types"
)

// Device is the backend's hal.Device. One Device owns exactly one
// VkDevice, one graphics/compute/transfer queue, and every cache this
// package builds on top of it: descriptor-set-layout/pipeline-layout
// dedup, render pass/framebuffer dedup, the per-stage uniform buffer
// pools, and the command-buffer/fence pools.
type Device struct {
	instance       vk.Instance
	physicalDevice vk.PhysicalDevice
	handle         vk.Device
	cmds           *vk.Commands

	// debugMessenger is 0 unless CreateDevice(debug=true) built it;
	// Destroy tears it down before the instance.
	debugMessenger vk.DebugUtilsMessengerEXT

	// instanceExtensions is the set this backend's VkInstance was
	// created with, checked against a window's
	// hal.SurfaceProvider.RequiredInstanceExtensions() in ClaimWindow
	// so a missing extension fails with a clear error instead of a
	// bare vkCreate*SurfaceKHR failure.
	instanceExtensions map[string]bool

	queueFamilyIndex uint32
	queue            vk.Queue

	allocator *memory.GpuAllocator
	limits    types.Limits
	features  types.Features

	supportedSampleCounts uint32

	layoutMu sync.Mutex
	layouts  map[descriptorLayoutKey]*descriptorSetLayout

	pipelineLayoutMu sync.Mutex
	pipelineLayouts  map[pipelineLayoutKey]*pipelineLayoutEntry

	renderPassMu sync.Mutex
	renderPasses map[renderPassKey]*renderPassEntry

	framebufferMu sync.Mutex
	framebuffers  map[framebufferKey]*framebufferEntry

	// pendingDestroys is guarded by framebufferMu, the only lock ever
	// held by a writer (releaseFramebuffer).
	pendingDestroys []func()

	fences *fencePool
	pools  *commandPoolSet

	vertexUniformPool   uniformBufferPool
	fragmentUniformPool uniformBufferPool
	computeUniformPool  uniformBufferPool

	windowsMu sync.Mutex
	windows   map[hal.Window]*windowData

	defrag *Defragmenter

	submitted   []*CommandBuffer
	submittedMu sync.Mutex
}

func (d *Device) isDevice() {}

// newDevice wires up every cache and pool this backend needs on top of
// an already-created VkDevice. Physical device selection, instance
// creation, and queue-family discovery happen in Backend.CreateDevice,
// not here.
func newDevice(instance vk.Instance, physicalDevice vk.PhysicalDevice, handle vk.Device, cmds *vk.Commands, queueFamilyIndex uint32, limits types.Limits, features types.Features, sampleCounts uint32, props memory.DeviceMemoryProperties) (*Device, error) {
	d := &Device{
		instance: instance, physicalDevice: physicalDevice, handle: handle, cmds: cmds,
		queueFamilyIndex: queueFamilyIndex, limits: limits, features: features,
		supportedSampleCounts: sampleCounts,
		layouts:               make(map[descriptorLayoutKey]*descriptorSetLayout),
		pipelineLayouts:       make(map[pipelineLayoutKey]*pipelineLayoutEntry),
		renderPasses:          make(map[renderPassKey]*renderPassEntry),
		framebuffers:          make(map[framebufferKey]*framebufferEntry),
		windows:               make(map[hal.Window]*windowData),
	}
	d.queue = cmds.GetDeviceQueue(handle, queueFamilyIndex, 0)
	d.allocator = memory.NewGpuAllocator(handle, cmds, props)
	d.fences = &fencePool{device: d}
	d.pools = newCommandPoolSet(d)
	d.defrag = newDefragmenter(d)

	d.vertexUniformPool = uniformBufferPool{device: d, stage: vk.ShaderStageVertexBit, layout: d.fetchDescriptorSetLayout(vk.DescriptorTypeUniformBufferDynamic, 1, vk.ShaderStageVertexBit)}
	d.fragmentUniformPool = uniformBufferPool{device: d, stage: vk.ShaderStageFragmentBit, layout: d.fetchDescriptorSetLayout(vk.DescriptorTypeUniformBufferDynamic, 1, vk.ShaderStageFragmentBit)}
	d.computeUniformPool = uniformBufferPool{device: d, stage: vk.ShaderStageComputeBit, layout: d.fetchDescriptorSetLayout(vk.DescriptorTypeUniformBufferDynamic, 1, vk.ShaderStageComputeBit)}

	return d, nil
}

// Backend implements hal.Device.
func (d *Device) Backend() types.Backend { return types.BackendVulkan }

// AcquireCommandBuffer implements hal.Device: pops (or allocates) a
// reset native command buffer, begins recording, and hands back a
// fresh CommandBuffer wrapper.
func (d *Device) AcquireCommandBuffer() (hal.CommandBuffer, error) {
	native, pool, err := d.pools.acquire()
	if err != nil {
		return nil, err
	}
	res := d.cmds.BeginCommandBuffer(native, &vk.CommandBufferBeginInfo{SType: vk.StructureTypeCommandBufferBeginInfo})
	if res != vk.Success {
		d.pools.release(pool, native)
		return nil, fmt.Errorf("vulkan: vkBeginCommandBuffer failed: %v", res)
	}
	cmd := &CommandBuffer{device: d, native: native, pool: pool}
	cmd.Reset("")
	return cmd, nil
}

// SetStringMarker implements hal.Device. No marker is recorded: of
// VK_EXT_debug_utils only the messenger entry points are loaded, and
// no label or debug-marker command is. The call is accepted as a
// documented no-op so instrumented callers don't need a capability check.
func (d *Device) SetStringMarker(hal.CommandBuffer, string) {}

// Wait implements hal.Device.
func (d *Device) Wait() {
	d.cmds.DeviceWaitIdle(d.handle)
}

// Destroy implements hal.Device: waits for the queue to go idle, then
// tears down every cache, pool, and the VkDevice itself.
func (d *Device) Destroy() {
	d.cmds.DeviceWaitIdle(d.handle)

	for w := range d.windows {
		d.UnclaimWindow(w)
	}

	d.pools.destroy()

	d.layoutMu.Lock()
	for _, l := range d.layouts {
		if l.cache != nil {
			for _, p := range l.cache.pools {
				d.cmds.DestroyDescriptorPool(d.handle, p)
			}
		}
		d.cmds.DestroyDescriptorSetLayout(d.handle, l.handle)
	}
	d.layoutMu.Unlock()

	d.pipelineLayoutMu.Lock()
	for _, e := range d.pipelineLayouts {
		d.cmds.DestroyPipelineLayout(d.handle, e.handle)
	}
	d.pipelineLayoutMu.Unlock()

	d.renderPassMu.Lock()
	for _, e := range d.renderPasses {
		d.cmds.DestroyRenderPass(d.handle, e.handle)
	}
	d.renderPassMu.Unlock()

	d.framebufferMu.Lock()
	for _, e := range d.framebuffers {
		d.cmds.DestroyFramebuffer(d.handle, e.handle)
	}
	d.framebufferMu.Unlock()
	d.drainPendingDestroys()

	if d.allocator != nil {
		d.allocator.Destroy()
	}
	if d.handle != 0 {
		d.cmds.DestroyDevice(d.handle)
	}
	if d.debugMessenger != 0 {
		d.cmds.DestroyDebugUtilsMessengerEXT(d.instance, d.debugMessenger)
	}
	if d.instance != 0 {
		d.cmds.DestroyInstance(d.instance)
	}
}

// queueDefragPage hands off a freed page to the resident Defragmenter,
// called by submit.go's cleanup step once a submission drains.
func (d *Device) queueDefragPage(page *memory.MemoryAllocation, sub *memory.MemorySubAllocator) {
	if page == nil {
		return
	}
	d.defrag.enqueue(page, sub)
}
