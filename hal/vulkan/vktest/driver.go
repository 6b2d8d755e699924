// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vktest is a fake Vulkan driver for exercising the
// hal/vulkan backend without a real GPU or libvulkan.so present. Its
// proc table answers every entry point hal/vulkan's caches, pools, and
// barrier logic call on the device-lifetime path: command-pool and
// descriptor-set-layout bring-up, buffer creation and binding,
// command-buffer recording, and fence-gated submission. Handle
// allocation is a monotonic counter and memory "allocation" is a plain
// byte slice; nothing here touches a GPU.
//
// Scope: vktest proves that real hal/vulkan code runs correctly
// through device construction, resource create/destroy, and the
// submit/fence path without a driver present. There is no rasterizer
// or shader interpreter behind it, so it cannot produce pixels or
// compute results -- assertions about rendered or computed output
// belong in an integration build against a real driver, not here.
package vktest

import (
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"

	"github.com/forgegpu/vkgpu/hal/vulkan"
	"github.com/forgegpu/vkgpu/hal/vulkan/memory"
	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
	"github.com/forgegpu/vkgpu/types"
)

// Driver holds every piece of host-side state the fake proc table
// closes over. It outlives the *vulkan.Device built from it, since
// Destroy() calls back into these same closures.
type Driver struct {
	mu       sync.Mutex
	next     uint64
	memories map[uint64][]byte
	fences   map[uint64]bool // true once signaled
}

func newDriver() *Driver {
	return &Driver{
		next:     1,
		memories: map[uint64][]byte{},
		fences:   map[uint64]bool{},
	}
}

func (d *Driver) alloc() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := d.next
	d.next++
	return h
}

// writeU64 stores v at the native address ptr points to; ptr is always
// the output parameter of a vkCreate*/vkGet*-style call.
func writeU64(ptr uintptr, v uint64) {
	if ptr == 0 {
		return
	}
	*(*uint64)(unsafe.Pointer(ptr)) = v
}

// procs builds the full name-to-trampoline table LoadFake needs. Each
// entry calls ffi.NewCallback directly on a concrete method value, the
// same way hal/vulkan's own debug messenger builds its one callback;
// the trampolines are kept alive for the Driver's lifetime by procs'
// caller retaining the returned map inside *vk.Commands.
func (d *Driver) procs() map[string]unsafe.Pointer {
	return map[string]unsafe.Pointer{
		"vkCreateCommandPool":          unsafe.Pointer(ffi.NewCallback(d.fakeCreateHandle)),
		"vkDestroyCommandPool":         unsafe.Pointer(ffi.NewCallback(d.fakeDestroyHandle)),
		"vkCreateDescriptorSetLayout":  unsafe.Pointer(ffi.NewCallback(d.fakeCreateHandle)),
		"vkDestroyDescriptorSetLayout": unsafe.Pointer(ffi.NewCallback(d.fakeDestroyHandle)),
		"vkCreateDescriptorPool":       unsafe.Pointer(ffi.NewCallback(d.fakeCreateHandle)),
		"vkDestroyDescriptorPool":      unsafe.Pointer(ffi.NewCallback(d.fakeDestroyHandle)),
		"vkDestroyDevice":              unsafe.Pointer(ffi.NewCallback(d.fakeDestroySingleHandle)),
		"vkDestroyInstance":            unsafe.Pointer(ffi.NewCallback(d.fakeDestroySingleHandle)),
		"vkDeviceWaitIdle":             unsafe.Pointer(ffi.NewCallback(d.fakeWaitIdle)),
		"vkGetDeviceQueue":             unsafe.Pointer(ffi.NewCallback(d.fakeGetDeviceQueue)),

		"vkCreateBuffer":                unsafe.Pointer(ffi.NewCallback(d.fakeCreateHandle)),
		"vkDestroyBuffer":               unsafe.Pointer(ffi.NewCallback(d.fakeDestroyHandle)),
		"vkGetBufferMemoryRequirements": unsafe.Pointer(ffi.NewCallback(d.fakeGetBufferMemoryRequirements)),
		"vkAllocateMemory":              unsafe.Pointer(ffi.NewCallback(d.fakeAllocateMemory)),
		"vkFreeMemory":                  unsafe.Pointer(ffi.NewCallback(d.fakeFreeMemory)),
		"vkMapMemory":                   unsafe.Pointer(ffi.NewCallback(d.fakeMapMemory)),
		"vkUnmapMemory":                 unsafe.Pointer(ffi.NewCallback(d.fakeUnmapMemory)),
		"vkBindBufferMemory":            unsafe.Pointer(ffi.NewCallback(d.fakeBindBufferMemory)),

		"vkAllocateCommandBuffers": unsafe.Pointer(ffi.NewCallback(d.fakeAllocateCommandBuffers)),
		"vkFreeCommandBuffers":     unsafe.Pointer(ffi.NewCallback(d.fakeFreeCommandBuffers)),
		"vkBeginCommandBuffer":     unsafe.Pointer(ffi.NewCallback(d.fakeBeginCommandBuffer)),
		"vkEndCommandBuffer":       unsafe.Pointer(ffi.NewCallback(d.fakeEndCommandBuffer)),
		"vkResetCommandBuffer":     unsafe.Pointer(ffi.NewCallback(d.fakeResetCommandBuffer)),
		"vkResetCommandPool":       unsafe.Pointer(ffi.NewCallback(d.fakeResetCommandPool)),

		"vkCreateFence":    unsafe.Pointer(ffi.NewCallback(d.fakeCreateFence)),
		"vkDestroyFence":   unsafe.Pointer(ffi.NewCallback(d.fakeDestroyFence)),
		"vkResetFences":    unsafe.Pointer(ffi.NewCallback(d.fakeResetFences)),
		"vkWaitForFences":  unsafe.Pointer(ffi.NewCallback(d.fakeWaitForFences)),
		"vkGetFenceStatus": unsafe.Pointer(ffi.NewCallback(d.fakeGetFenceStatus)),
		"vkQueueSubmit":    unsafe.Pointer(ffi.NewCallback(d.fakeQueueSubmit)),
		"vkQueueWaitIdle":  unsafe.Pointer(ffi.NewCallback(d.fakeWaitIdle2)),
	}
}

// --- device / pool / layout bring-up ---

// fakeCreateHandle backs every vkCreate* entry point of shape
// (device, pCreateInfo, pAllocator, pOut) -> VkResult: it ignores the
// create-info contents and hands back a fresh handle.
func (d *Driver) fakeCreateHandle(device uint64, pCreateInfo, pAllocator, pOut uintptr) int32 {
	writeU64(pOut, d.alloc())
	return int32(vk.Success)
}

// fakeDestroyHandle backs every vkDestroy* entry point of shape
// (device, handle, pAllocator) -> void.
func (d *Driver) fakeDestroyHandle(device, handle uint64, pAllocator uintptr) {}

// fakeDestroySingleHandle backs vkDestroyDevice and vkDestroyInstance,
// both shaped (handle, pAllocator) -> void.
func (d *Driver) fakeDestroySingleHandle(handle uint64, pAllocator uintptr) {}

func (d *Driver) fakeWaitIdle(device uint64) int32 { return int32(vk.Success) }

func (d *Driver) fakeWaitIdle2(queue uint64) int32 { return int32(vk.Success) }

func (d *Driver) fakeGetDeviceQueue(device uint64, familyIndex, queueIndex uint32, pOut uintptr) {
	writeU64(pOut, d.alloc())
}

// --- buffers and memory ---

func (d *Driver) fakeGetBufferMemoryRequirements(device, buf uint64, pOut uintptr) {
	if pOut == 0 {
		return
	}
	out := (*vk.MemoryRequirements)(unsafe.Pointer(pOut))
	out.Size = 65536
	out.Alignment = 256
	out.MemoryTypeBits = 0xFFFFFFFF
}

func (d *Driver) fakeAllocateMemory(device uint64, pInfo, pAllocator, pOut uintptr) int32 {
	info := (*vk.MemoryAllocateInfo)(unsafe.Pointer(pInfo))
	h := d.alloc()
	d.mu.Lock()
	d.memories[h] = make([]byte, info.AllocationSize)
	d.mu.Unlock()
	writeU64(pOut, h)
	return int32(vk.Success)
}

func (d *Driver) fakeFreeMemory(device, mem uint64, pAllocator uintptr) {
	d.mu.Lock()
	delete(d.memories, mem)
	d.mu.Unlock()
}

func (d *Driver) fakeMapMemory(device, mem, offset, size uint64, flags uint32, pOut uintptr) int32 {
	d.mu.Lock()
	buf, ok := d.memories[mem]
	d.mu.Unlock()
	if !ok || pOut == 0 {
		return int32(vk.Success)
	}
	writeU64(pOut, uint64(uintptr(unsafe.Pointer(&buf[offset]))))
	return int32(vk.Success)
}

func (d *Driver) fakeUnmapMemory(device, mem uint64) {}

func (d *Driver) fakeBindBufferMemory(device, buf, mem, offset uint64) int32 {
	return int32(vk.Success)
}

// --- command buffers ---

func (d *Driver) fakeAllocateCommandBuffers(device uint64, pInfo, pOut uintptr) int32 {
	info := (*vk.CommandBufferAllocateInfo)(unsafe.Pointer(pInfo))
	out := unsafe.Slice((*uint64)(unsafe.Pointer(pOut)), info.CommandBufferCount)
	for i := range out {
		out[i] = d.alloc()
	}
	return int32(vk.Success)
}

func (d *Driver) fakeFreeCommandBuffers(device, pool uint64, count uint32, pBuffers uintptr) {}

func (d *Driver) fakeBeginCommandBuffer(cb uint64, pInfo uintptr) int32 { return int32(vk.Success) }

func (d *Driver) fakeEndCommandBuffer(cb uint64) int32 { return int32(vk.Success) }

func (d *Driver) fakeResetCommandBuffer(cb uint64, flags uint32) int32 { return int32(vk.Success) }

func (d *Driver) fakeResetCommandPool(device, pool uint64, flags uint32) int32 {
	return int32(vk.Success)
}

// --- fences and submission ---

func (d *Driver) fakeCreateFence(device uint64, pInfo, pAllocator, pOut uintptr) int32 {
	h := d.alloc()
	info := (*vk.FenceCreateInfo)(unsafe.Pointer(pInfo))
	d.mu.Lock()
	d.fences[h] = info.Flags != 0
	d.mu.Unlock()
	writeU64(pOut, h)
	return int32(vk.Success)
}

func (d *Driver) fakeDestroyFence(device, fence uint64, pAllocator uintptr) {
	d.mu.Lock()
	delete(d.fences, fence)
	d.mu.Unlock()
}

func (d *Driver) fakeResetFences(device uint64, count uint32, pFences uintptr) int32 {
	handles := unsafe.Slice((*uint64)(unsafe.Pointer(pFences)), count)
	d.mu.Lock()
	for _, h := range handles {
		d.fences[h] = false
	}
	d.mu.Unlock()
	return int32(vk.Success)
}

// fakeWaitForFences marks every fence it is asked about signaled: a
// fake driver has no outstanding GPU work to wait on.
func (d *Driver) fakeWaitForFences(device uint64, count uint32, pFences uintptr, waitAll uint32, timeout uint64) int32 {
	handles := unsafe.Slice((*uint64)(unsafe.Pointer(pFences)), count)
	d.mu.Lock()
	for _, h := range handles {
		d.fences[h] = true
	}
	d.mu.Unlock()
	return int32(vk.Success)
}

func (d *Driver) fakeGetFenceStatus(device, fence uint64) int32 {
	d.mu.Lock()
	signaled := d.fences[fence]
	d.mu.Unlock()
	if signaled {
		return int32(vk.Success)
	}
	return int32(vk.NotReady)
}

// fakeQueueSubmit signals every fence named in the submit immediately,
// consistent with WaitForFences never blocking in this driver.
func (d *Driver) fakeQueueSubmit(queue uint64, count uint32, pSubmits uintptr, fence uint64) int32 {
	if fence != 0 {
		d.mu.Lock()
		d.fences[fence] = true
		d.mu.Unlock()
	}
	return int32(vk.Success)
}

// NewDevice builds a fresh fake *vk.Commands and wires it into
// hal/vulkan's Device exactly as Backend.CreateDevice would after a
// real driver load, with one host-visible+coherent and one
// device-local memory type so GpuAllocator's type selector always has
// somewhere to place both upload and device-local requests.
func NewDevice() (*vulkan.Device, error) {
	drv := newDriver()
	cmds := &vk.Commands{}
	cmds.LoadFake(drv.procs())

	props := memory.DeviceMemoryProperties{
		MemoryTypes: []memory.DeviceMemoryType{
			{PropertyFlags: vk.MemoryPropertyDeviceLocalBit, HeapIndex: 0},
			{PropertyFlags: vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit, HeapIndex: 1},
		},
		MemoryHeaps: []memory.DeviceMemoryHeap{
			{Size: 256 << 20, Flags: 0},
			{Size: 256 << 20, Flags: 0},
		},
	}

	limits := types.Limits{
		MinUniformBufferOffsetAlignment: 256,
		MaxTextureDimension2D:           8192,
		MaxColorAttachments:             8,
		MaxBoundDescriptorSets:          4,
	}
	features := types.Features{OcclusionQuery: true, TimestampQuery: true}

	const sampleCounts = 1 | 4 // 1x and 4x, matching vk.SampleCount1Bit|SampleCount4Bit

	return vulkan.NewDeviceForFake(vk.Instance(1), vk.PhysicalDevice(1), vk.Device(1), cmds, 0, limits, features, sampleCounts, props)
}
