// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"sync"

	"github.com/forgegpu/vkgpu/hal"
	"github.com/forgegpu/vkgpu/hal/vulkan/memory"
	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
	"github.com/forgegpu/vkgpu/types"
)

// defragResource is the back-pointer a live memory region carries to
// its owning buffer or texture. The memory package only ever deals in
// byte ranges, so this mapping lives here instead.
type defragResource struct {
	buffer  *nativeBuffer
	texture *nativeTexture
}

type defragJob struct {
	page *memory.MemoryAllocation
	sub  *memory.MemorySubAllocator
}

// Defragmenter implements spec.md §4.8: moves one queued page's live
// resources onto freshly allocated replacements, at most one page at a
// time, opportunistically kicked off after submission cleanup.
type Defragmenter struct {
	device *Device

	mu      sync.Mutex
	owners  map[*memory.UsedRegion]defragResource
	queue   []defragJob
	running bool
}

func newDefragmenter(d *Device) *Defragmenter {
	return &Defragmenter{device: d, owners: make(map[*memory.UsedRegion]defragResource)}
}

func (f *Defragmenter) registerBuffer(nb *nativeBuffer) {
	if nb.region == nil {
		return
	}
	f.mu.Lock()
	f.owners[nb.region] = defragResource{buffer: nb}
	f.mu.Unlock()
}

func (f *Defragmenter) registerTexture(nt *nativeTexture) {
	if nt.region == nil {
		return
	}
	f.mu.Lock()
	f.owners[nt.region] = defragResource{texture: nt}
	f.mu.Unlock()
}

func (f *Defragmenter) unregister(region *memory.UsedRegion) {
	if region == nil {
		return
	}
	f.mu.Lock()
	delete(f.owners, region)
	f.mu.Unlock()
}

// enqueue records page as a defrag candidate, called from submission
// cleanup once the allocator reports it fragmented and unavailable.
func (f *Defragmenter) enqueue(page *memory.MemoryAllocation, sub *memory.MemorySubAllocator) {
	f.mu.Lock()
	f.queue = append(f.queue, defragJob{page: page, sub: sub})
	f.mu.Unlock()
}

// runCycle moves every live resource out of one queued page, then
// submits the command buffer that performed the copies like any other
// (spec.md §4.8). A no-op if a cycle is already running or the queue
// is empty.
func (f *Defragmenter) runCycle() {
	f.mu.Lock()
	if f.running || len(f.queue) == 0 {
		f.mu.Unlock()
		return
	}
	job := f.queue[0]
	f.queue = f.queue[1:]
	f.running = true
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.running = false
		f.mu.Unlock()
	}()

	d := f.device
	native, err := d.AcquireCommandBuffer()
	if err != nil {
		hal.Logger().Warn("vulkan: defrag command buffer acquisition failed", "err", err)
		return
	}
	cmd := native.(*CommandBuffer)
	cmd.isDefrag = true
	if err := cmd.BeginPass(hal.PassCopy); err != nil {
		hal.Logger().Warn("vulkan: defrag pass open failed", "err", err)
		d.pools.release(cmd.pool, cmd.native)
		return
	}

	for _, region := range job.page.UsedRegions() {
		f.mu.Lock()
		owner, ok := f.owners[region]
		f.mu.Unlock()
		if !ok {
			hal.Logger().Warn("vulkan: defrag page has a used region with no registered owner, skipping")
			continue
		}
		switch {
		case owner.buffer != nil:
			f.moveBuffer(cmd, owner.buffer)
		case owner.texture != nil:
			f.moveTexture(cmd, owner.texture)
		}
	}

	cmd.EndPass(hal.PassCopy)
	if _, err := d.submit(cmd, false); err != nil {
		hal.Logger().Warn("vulkan: defrag submission failed", "err", err)
	}
}

// moveBuffer allocates a same-shape replacement for nb, copies its
// content across if preserve_on_defrag requires it, repoints the
// owning handle, and tracks nb for deferred destruction once this
// recording's fence signals.
func (f *Defragmenter) moveBuffer(cmd *CommandBuffer, nb *nativeBuffer) {
	d := f.device
	h := nb.owner
	label := ""
	if h != nil && h.container != nil {
		label = h.container.label
	}
	desc := hal.BufferDescriptor{
		Label: label, Size: nb.size, Usage: nb.usage,
		RequireHostVisible: nb.requireHostVisible,
		PreferHostLocal:    nb.preferHostLocal,
		PreferDeviceLocal:  nb.preferDeviceLocal,
	}
	replacement, err := d.createBufferResource(desc)
	if err != nil {
		hal.Logger().Warn("vulkan: defrag buffer replacement allocation failed", "label", label, "err", err)
		return
	}

	if nb.preserveOnDefrag && nb.currentIntent != AccessNone {
		original := nb.currentIntent
		nb.defragInProgress = true
		emitBufferBarrier(d.cmds, cmd.native, nb.handle, 0, nb.size, nb.currentIntent, AccessTransferRead)
		nb.currentIntent = AccessTransferRead
		emitBufferBarrier(d.cmds, cmd.native, replacement.handle, 0, replacement.size, replacement.currentIntent, AccessTransferWrite)
		replacement.currentIntent = AccessTransferWrite

		region := vk.BufferCopy{Size: nb.size}
		d.cmds.CmdCopyBuffer(cmd.native, nb.handle, replacement.handle, 1, &region)

		emitBufferBarrier(d.cmds, cmd.native, replacement.handle, 0, replacement.size, replacement.currentIntent, original)
		replacement.currentIntent = original
	}

	replacement.owner = h
	if h != nil {
		if h.container != nil {
			h.container.mu.Lock()
			h.buffer = replacement
			h.container.mu.Unlock()
		} else {
			h.buffer = replacement
		}
	}
	nb.markedForDestroy = true
	cmd.trackBuffer(nb)
}

// moveTexture allocates a same-shape replacement for nt, copies every
// slice that has ever been written to, repoints the owning handle, and
// tracks the touched source slices for deferred destruction.
func (f *Defragmenter) moveTexture(cmd *CommandBuffer, nt *nativeTexture) {
	d := f.device
	h := nt.owner
	label := ""
	if h != nil && h.container != nil {
		label = h.container.label
	}
	desc := hal.TextureDescriptor{
		Label: label, Width: nt.width, Height: nt.height, Depth: nt.depth,
		LayerCount: nt.layerCount, LevelCount: nt.levelCount,
		SampleCount: nt.sampleCount, Format: nt.format, Usage: nt.usage,
	}
	replacement, err := d.createTextureResource(desc)
	if err != nil {
		hal.Logger().Warn("vulkan: defrag texture replacement allocation failed", "label", label, "err", err)
		return
	}

	samplerCapable := nt.usage&types.TextureUsageSampler != 0
	for layer := uint32(0); layer < nt.layerCount; layer++ {
		for level := uint32(0); level < nt.levelCount; level++ {
			srcSlice := nt.sliceAt(layer, level)
			if srcSlice.currentIntent == AccessNone {
				continue
			}
			dstSlice := replacement.sliceAt(layer, level)
			original := srcSlice.currentIntent
			srcSlice.defragInProgress = true

			emitImageBarrier(d.cmds, cmd.native, nt.image, nt.aspect, layer, 1, level, 1, srcSlice.currentIntent, AccessTransferRead)
			srcSlice.currentIntent = AccessTransferRead
			emitImageBarrier(d.cmds, cmd.native, replacement.image, replacement.aspect, layer, 1, level, 1, dstSlice.currentIntent, AccessTransferWrite)
			dstSlice.currentIntent = AccessTransferWrite

			region := vk.ImageCopy{
				SrcSubresource: vk.ImageSubresourceLayers{AspectMask: nt.aspect, MipLevel: level, BaseArrayLayer: layer, LayerCount: 1},
				DstSubresource: vk.ImageSubresourceLayers{AspectMask: replacement.aspect, MipLevel: level, BaseArrayLayer: layer, LayerCount: 1},
				Extent: vk.Extent3D{
					Width:  maxu32(nt.width>>level, 1),
					Height: maxu32(nt.height>>level, 1),
					Depth:  maxu32(nt.depth>>level, 1),
				},
			}
			d.cmds.CmdCopyImage(cmd.native, nt.image, uint32(vk.ImageLayoutTransferSrcOptimal), replacement.image, uint32(vk.ImageLayoutTransferDstOptimal), 1, &region)

			final := original
			if samplerCapable {
				final = AccessFragmentShaderReadSampledTexture
			}
			emitImageBarrier(d.cmds, cmd.native, replacement.image, replacement.aspect, layer, 1, level, 1, dstSlice.currentIntent, final)
			dstSlice.currentIntent = final

			cmd.trackSlice(srcSlice)
		}
	}

	replacement.owner = h
	if h != nil {
		if h.container != nil {
			h.container.mu.Lock()
			h.texture = replacement
			h.container.mu.Unlock()
		} else {
			h.texture = replacement
		}
	}
	nt.markedForDestroy = true
}
