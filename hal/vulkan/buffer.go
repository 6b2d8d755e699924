// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/forgegpu/vkgpu/hal"
	"github.com/forgegpu/vkgpu/hal/vulkan/memory"
	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
	"github.com/forgegpu/vkgpu/types"
)

// nativeBuffer is one physical VkBuffer plus the device memory bound to
// it. Its lifetime is owned by exactly one BufferHandle at a time; a
// cycle detaches it from its handle once another in-flight use still
// references it (spec.md §3 "Buffer").
type nativeBuffer struct {
	handle vk.Buffer
	region *memory.UsedRegion

	size  uint64
	usage types.BufferUsage

	requireHostVisible bool
	preferHostLocal    bool
	preferDeviceLocal  bool
	preserveOnDefrag   bool

	currentIntent    AccessIntent
	refCount         int32
	markedForDestroy bool
	defragInProgress bool

	owner *BufferHandle
}

// BufferHandle wraps one nativeBuffer and back-points to the container
// that owns it, per spec.md §3's Buffer/BufferHandle split.
type BufferHandle struct {
	buffer    *nativeBuffer
	container *BufferContainer
}

// BufferContainer is the public hal.Buffer implementation: an ordered
// history of BufferHandles plus the currently active one. Cycling never
// destroys history eagerly; a handle is only reclaimed once its native
// buffer's refcount returns to zero (spec.md §9 design notes).
type BufferContainer struct {
	mu     sync.Mutex
	device *Device
	label  string
	desc   hal.BufferDescriptor

	handles []*BufferHandle
	active  *BufferHandle

	canBeCycled bool
}

func (c *BufferContainer) isBuffer() {}

// Active returns the container's current native buffer handle.
func (c *BufferContainer) Active() *BufferHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// createBufferResource allocates a brand new VkBuffer bound to a fresh
// memory region, per desc's size/usage/host-visibility hints.
func (d *Device) createBufferResource(desc hal.BufferDescriptor) (*nativeBuffer, error) {
	info := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        desc.Size,
		Usage:       bufferUsageToVk(desc.Usage),
		SharingMode: vk.SharingModeExclusive,
	}
	buf, res := d.cmds.CreateBuffer(d.handle, &info)
	if res != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateBuffer failed: %v", res)
	}

	var reqs vk.MemoryRequirements
	d.cmds.GetBufferMemoryRequirements(d.handle, buf, &reqs)

	memUsage := memory.UsageFastDeviceAccess
	if desc.RequireHostVisible {
		memUsage = memory.UsageHostAccess
	}
	region, err := d.allocator.Alloc(memory.AllocationRequest{
		Size:               reqs.Size,
		Alignment:          reqs.Alignment,
		Usage:              memUsage,
		MemoryTypeBits:     reqs.MemoryTypeBits,
		RequireHostVisible: desc.RequireHostVisible,
		PreferHostLocal:    desc.PreferHostLocal,
		PreferDeviceLocal:  desc.PreferDeviceLocal,
		IsBuffer:           true,
	})
	if err != nil {
		d.cmds.DestroyBuffer(d.handle, buf)
		return nil, fmt.Errorf("vulkan: buffer memory allocation failed: %w", err)
	}

	if res := d.cmds.BindBufferMemory(d.handle, buf, region.Allocation.Memory(), region.Offset); res != vk.Success {
		d.allocator.Free(region)
		d.cmds.DestroyBuffer(d.handle, buf)
		return nil, fmt.Errorf("vulkan: vkBindBufferMemory failed: %v", res)
	}

	nb := &nativeBuffer{
		handle:             buf,
		region:             region,
		size:               desc.Size,
		usage:              desc.Usage,
		requireHostVisible: desc.RequireHostVisible,
		preferHostLocal:    desc.PreferHostLocal,
		preferDeviceLocal:  desc.PreferDeviceLocal,
	}
	if d.defrag != nil {
		d.defrag.registerBuffer(nb)
	}
	return nb, nil
}

// CreateBuffer implements hal.Device.
func (d *Device) CreateBuffer(descPtr *hal.BufferDescriptor) (hal.Buffer, error) {
	desc := *descPtr
	if desc.Size == 0 {
		return nil, fmt.Errorf("vulkan: buffer size must be > 0")
	}
	nb, err := d.createBufferResource(desc)
	if err != nil {
		return nil, err
	}
	c := &BufferContainer{device: d, label: desc.Label, desc: desc, canBeCycled: true}
	h := &BufferHandle{buffer: nb, container: c}
	nb.owner = h
	c.handles = append(c.handles, h)
	c.active = h
	return c, nil
}

// CreateTransferBuffer implements hal.Device: a host-visible,
// persistently-mapped buffer used only as a copy-pass staging area
// (spec.md §4.1 "TransferBuffer"). Upload buffers get TRANSFER_SRC
// usage, download buffers TRANSFER_DST.
func (d *Device) CreateTransferBuffer(descPtr *hal.TransferBufferDescriptor) (hal.Buffer, error) {
	desc := *descPtr
	if desc.Size == 0 {
		return nil, fmt.Errorf("vulkan: transfer buffer size must be > 0")
	}
	usage := types.BufferUsageCopyDst
	if desc.Upload {
		usage = types.BufferUsageCopySrc
	}
	bufDesc := hal.BufferDescriptor{Label: desc.Label, Size: desc.Size, Usage: usage, RequireHostVisible: true}
	nb, err := d.createBufferResource(bufDesc)
	if err != nil {
		return nil, err
	}
	c := &BufferContainer{device: d, label: desc.Label, desc: bufDesc, canBeCycled: true}
	h := &BufferHandle{buffer: nb, container: c}
	nb.owner = h
	c.handles = append(c.handles, h)
	c.active = h
	return c, nil
}

// MapTransferBuffer returns a byte slice over the active handle's
// persistently-mapped region, optionally cycling the container first
// per spec.md §4.1.
func (d *Device) MapTransferBuffer(buf hal.Buffer, cycle bool) ([]byte, error) {
	c, ok := buf.(*BufferContainer)
	if !ok {
		return nil, fmt.Errorf("vulkan: buffer is not a backend buffer")
	}
	h := c.Active()
	if cycle && c.canBeCycled {
		h = c.Cycle()
	}
	if h.buffer.region == nil || h.buffer.region.MappedPtr == 0 {
		return nil, fmt.Errorf("vulkan: transfer buffer is not host-visible")
	}
	return mappedSlice(h.buffer.region.MappedPtr, int(h.buffer.size)), nil
}

// UnmapTransferBuffer is a no-op: mapping is persistent for the
// buffer's lifetime (spec.md §4.1).
func (d *Device) UnmapTransferBuffer(buf hal.Buffer) {}

// SetTransferData copies data into buf's mapped region at offset,
// optionally cycling first.
func (d *Device) SetTransferData(buf hal.Buffer, data []byte, offset uint64, cycle bool) error {
	c, ok := buf.(*BufferContainer)
	if !ok {
		return fmt.Errorf("vulkan: buffer is not a backend buffer")
	}
	h := c.Active()
	if cycle && c.canBeCycled {
		h = c.Cycle()
	}
	if h.buffer.region == nil || h.buffer.region.MappedPtr == 0 {
		return fmt.Errorf("vulkan: transfer buffer is not host-visible")
	}
	if offset+uint64(len(data)) > h.buffer.size {
		return fmt.Errorf("vulkan: transfer write out of bounds")
	}
	copyToMapped(h.buffer.region.MappedPtr+uintptr(offset), data)
	return nil
}

// GetTransferData reads size bytes out of buf's mapped region at
// offset.
func (d *Device) GetTransferData(buf hal.Buffer, offset uint64, size uint64) ([]byte, error) {
	c, ok := buf.(*BufferContainer)
	if !ok {
		return nil, fmt.Errorf("vulkan: buffer is not a backend buffer")
	}
	h := c.Active()
	if h.buffer.region == nil || h.buffer.region.MappedPtr == 0 {
		return nil, fmt.Errorf("vulkan: transfer buffer is not host-visible")
	}
	if offset+size > h.buffer.size {
		return nil, fmt.Errorf("vulkan: transfer read out of bounds")
	}
	return copyFromMapped(h.buffer.region.MappedPtr+uintptr(offset), int(size)), nil
}

// SetBufferName updates a buffer's debug label (spec.md §4.9, no
// native-object-naming extension wired, so this is bookkeeping only).
func (d *Device) SetBufferName(buf hal.Buffer, name string) {
	if c, ok := buf.(*BufferContainer); ok {
		c.mu.Lock()
		c.label = name
		c.mu.Unlock()
	}
}

// ReleaseBuffer marks every handle in buf's history for destruction
// once its refcount drops to zero; idle handles are destroyed
// immediately.
func (d *Device) ReleaseBuffer(buf hal.Buffer) {
	c, ok := buf.(*BufferContainer)
	if !ok {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, h := range c.handles {
		h.buffer.markedForDestroy = true
		if atomic.LoadInt32(&h.buffer.refCount) == 0 {
			d.destroyBufferResource(h.buffer)
		}
	}
}

// destroyBufferResource releases a nativeBuffer's device memory and
// destroys its VkBuffer. Callers must ensure the resource is no longer
// referenced by any in-flight command buffer.
func (d *Device) destroyBufferResource(nb *nativeBuffer) {
	if nb == nil {
		return
	}
	if d.defrag != nil {
		d.defrag.unregister(nb.region)
	}
	if nb.region != nil {
		d.allocator.Free(nb.region)
	}
	if nb.handle != 0 {
		d.cmds.DestroyBuffer(d.handle, nb.handle)
	}
}

// releaseTrackedBuffer decrements a buffer's in-flight refcount at
// command buffer cleanup, destroying it immediately if it was already
// marked for release and has gone idle.
func (d *Device) releaseTrackedBuffer(nb *nativeBuffer) {
	if atomic.AddInt32(&nb.refCount, -1) > 0 || !nb.markedForDestroy {
		return
	}
	d.destroyBufferResource(nb)
}

// Cycle rotates the container's active handle, reusing a prior handle
// whose native buffer refcount has dropped to zero, or else creating a
// fresh one that inherits size/usage/host flags and name (spec.md §3,
// §4.3 PrepareBufferForWrite "Cycle").
func (c *BufferContainer) Cycle() *BufferHandle {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, h := range c.handles {
		if h == c.active {
			continue
		}
		if atomic.LoadInt32(&h.buffer.refCount) == 0 {
			c.active = h
			return h
		}
	}

	nb, err := c.device.createBufferResource(c.desc)
	if err != nil {
		hal.Logger().Warn("vulkan: buffer cycle failed to allocate replacement", "label", c.label, "err", err)
		return c.active
	}
	h := &BufferHandle{buffer: nb, container: c}
	nb.owner = h
	c.handles = append(c.handles, h)
	c.active = h
	return h
}

// PrepareBufferForWrite implements spec.md §4.3 for buffers. It may
// rotate the container's active handle (Cycle option) or merely emit a
// barrier (Safe), returning the handle a caller should now reference.
// cmd is the command buffer currently recording; the emitted barrier (if
// any) lands on its native VkCommandBuffer.
func (cmd *CommandBuffer) PrepareBufferForWrite(c *BufferContainer, option hal.CycleOption, next AccessIntent) *BufferHandle {
	c.mu.Lock()
	active := c.active
	c.mu.Unlock()

	switch option {
	case hal.WriteCycle:
		if c.canBeCycled && atomic.LoadInt32(&active.buffer.refCount) > 0 {
			active = c.Cycle()
		}
	case hal.WriteUnsafe:
		active.buffer.currentIntent = next
		return active
	}

	if active.buffer.defragInProgress {
		option = hal.WriteSafe
	}
	emitBufferBarrier(cmd.device.cmds, cmd.native, active.buffer.handle, 0, active.buffer.size, active.buffer.currentIntent, next)
	active.buffer.currentIntent = next
	return active
}
