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

// textureSlice is one addressable (layer, level) subresource of a
// nativeTexture, per spec.md §3 "TextureSlice". Slice index is always
// layer*levelCount+level, matching the parent's slices array order.
type textureSlice struct {
	parent *nativeTexture
	layer  uint32
	level  uint32
	view   vk.ImageView

	currentIntent AccessIntent
	refCount      int32

	// msaa is the dedicated multisample companion image this slice
	// resolves from, when the parent's sample count is greater than 1
	// and usage includes color-target (spec.md §4.6 render pass rules).
	msaa *nativeTexture

	defragInProgress bool
}

// nativeTexture is one physical VkImage plus its default view and bound
// memory. Swapchain-owned images never own their own memory (region is
// nil) since their VkDeviceMemory is managed by the presentation engine.
type nativeTexture struct {
	image       vk.Image
	defaultView vk.ImageView
	region      *memory.UsedRegion

	width, height, depth uint32
	layerCount           uint32
	levelCount           uint32
	sampleCount          types.SampleCount
	format               types.TextureFormat
	usage                types.TextureUsage
	aspect               vk.ImageAspectFlags

	slices []*textureSlice

	owner            *TextureHandle
	markedForDestroy bool

	// swapchainOwned marks an image whose VkImage belongs to a
	// swapchain: destroyTextureResource tears down its views but never
	// the image itself.
	swapchainOwned bool
}

func (t *nativeTexture) sliceAt(layer, level uint32) *textureSlice {
	return t.slices[layer*t.levelCount+level]
}

// TextureHandle wraps one nativeTexture and back-points to its owning
// container, mirroring BufferHandle.
type TextureHandle struct {
	texture   *nativeTexture
	container *TextureContainer
}

// TextureContainer is the public hal.Texture implementation.
// can_be_cycled is false for swapchain-owned images (spec.md §3).
type TextureContainer struct {
	mu     sync.Mutex
	device *Device
	label  string
	desc   hal.TextureDescriptor

	handles []*TextureHandle
	active  *TextureHandle

	canBeCycled bool
}

func (c *TextureContainer) isTexture() {}

func (c *TextureContainer) Active() *TextureHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// createTextureResource allocates a brand new VkImage, its default
// full-resource view, and a per-(layer,level) slice view array.
func (d *Device) createTextureResource(desc hal.TextureDescriptor) (*nativeTexture, error) {
	vkFormat, ok := formatToVk(desc.Format)
	if !ok {
		return nil, fmt.Errorf("vulkan: unsupported texture format %s", desc.Format)
	}
	imgType := vk.ImageType2D
	if desc.Depth > 1 {
		imgType = vk.ImageType3D
	}
	usage := textureUsageToVk(desc.Usage, desc.Format)

	info := vk.ImageCreateInfo{
		SType:       vk.StructureTypeImageCreateInfo,
		ImageType:   imgType,
		Format:      vkFormat,
		Extent:      vk.Extent3D{Width: desc.Width, Height: desc.Height, Depth: maxu32(desc.Depth, 1)},
		MipLevels:   maxu32(desc.LevelCount, 1),
		ArrayLayers: maxu32(desc.LayerCount, 1),
		Samples:     sampleCountToVk(desc.SampleCount),
		Usage:       usage,
		SharingMode: vk.SharingModeExclusive,
	}
	img, res := d.cmds.CreateImage(d.handle, &info)
	if res != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateImage failed: %v", res)
	}

	var reqs vk.MemoryRequirements
	d.cmds.GetImageMemoryRequirements(d.handle, img, &reqs)
	region, err := d.allocator.Alloc(memory.AllocationRequest{
		Size:              reqs.Size,
		Alignment:         reqs.Alignment,
		Usage:             memory.UsageFastDeviceAccess,
		MemoryTypeBits:    reqs.MemoryTypeBits,
		PreferDeviceLocal: true,
	})
	if err != nil {
		d.cmds.DestroyImage(d.handle, img)
		return nil, fmt.Errorf("vulkan: image memory allocation failed: %w", err)
	}
	if res := d.cmds.BindImageMemory(d.handle, img, region.Allocation.Memory(), region.Offset); res != vk.Success {
		d.allocator.Free(region)
		d.cmds.DestroyImage(d.handle, img)
		return nil, fmt.Errorf("vulkan: vkBindImageMemory failed: %v", res)
	}

	aspect := aspectMaskForFormat(desc.Format)
	layerCount := maxu32(desc.LayerCount, 1)
	levelCount := maxu32(desc.LevelCount, 1)
	viewType := vk.ImageViewType2D
	if layerCount > 1 {
		viewType = vk.ImageViewType2DArray
	}

	defaultView, res := d.cmds.CreateImageView(d.handle, &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    img,
		ViewType: viewType,
		Format:   vkFormat,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: aspect, LevelCount: levelCount, LayerCount: layerCount,
		},
	})
	if res != vk.Success {
		d.allocator.Free(region)
		d.cmds.DestroyImage(d.handle, img)
		return nil, fmt.Errorf("vulkan: vkCreateImageView failed: %v", res)
	}

	t := &nativeTexture{
		image: img, defaultView: defaultView, region: region,
		width: desc.Width, height: desc.Height, depth: maxu32(desc.Depth, 1),
		layerCount: layerCount, levelCount: levelCount,
		sampleCount: desc.SampleCount, format: desc.Format, usage: desc.Usage,
		aspect: aspect,
	}
	t.slices = make([]*textureSlice, layerCount*levelCount)
	for layer := uint32(0); layer < layerCount; layer++ {
		for level := uint32(0); level < levelCount; level++ {
			view := defaultView
			if layerCount > 1 || levelCount > 1 {
				view, res = d.cmds.CreateImageView(d.handle, &vk.ImageViewCreateInfo{
					SType:    vk.StructureTypeImageViewCreateInfo,
					Image:    img,
					ViewType: vk.ImageViewType2D,
					Format:   vkFormat,
					SubresourceRange: vk.ImageSubresourceRange{
						AspectMask: aspect, BaseMipLevel: level, LevelCount: 1,
						BaseArrayLayer: layer, LayerCount: 1,
					},
				})
				if res != vk.Success {
					hal.Logger().Warn("vulkan: slice view creation failed", "layer", layer, "level", level, "err", res)
					view = defaultView
				}
			}
			t.slices[layer*levelCount+level] = &textureSlice{parent: t, layer: layer, level: level, view: view}
		}
	}
	if d.defrag != nil {
		d.defrag.registerTexture(t)
	}
	return t, nil
}

// CreateTexture implements hal.Device, applying depth-format
// autopromotion (spec.md §4.9, §8 boundary behaviors) before falling
// back to a null result for an unsupported non-depth format.
func (d *Device) CreateTexture(descPtr *hal.TextureDescriptor) (hal.Texture, error) {
	desc := *descPtr
	if _, ok := formatToVk(desc.Format); !ok {
		promoted, ok := promoteDepthFormat(desc.Format)
		if !ok {
			return nil, fmt.Errorf("vulkan: unsupported texture format %s", desc.Format)
		}
		desc.Format = promoted
	}

	nt, err := d.createTextureResource(desc)
	if err != nil {
		return nil, err
	}
	c := &TextureContainer{device: d, label: desc.Label, desc: desc, canBeCycled: true}
	h := &TextureHandle{texture: nt, container: c}
	nt.owner = h
	c.handles = append(c.handles, h)
	c.active = h
	return c, nil
}

func (d *Device) destroyTextureResource(nt *nativeTexture) {
	if nt == nil {
		return
	}
	if d.defrag != nil {
		d.defrag.unregister(nt.region)
	}
	seen := map[vk.ImageView]bool{nt.defaultView: true}
	d.cmds.DestroyImageView(d.handle, nt.defaultView)
	for _, s := range nt.slices {
		if s.msaa != nil {
			d.destroyTextureResource(s.msaa)
		}
		if seen[s.view] {
			continue
		}
		seen[s.view] = true
		d.cmds.DestroyImageView(d.handle, s.view)
	}
	if nt.region != nil {
		d.allocator.Free(nt.region)
	}
	if nt.image != 0 && !nt.swapchainOwned {
		d.cmds.DestroyImage(d.handle, nt.image)
	}
}

// Cycle rotates the container's active handle per spec.md §4.3.
func (c *TextureContainer) Cycle() *TextureHandle {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, h := range c.handles {
		if h == c.active {
			continue
		}
		if allSlicesIdle(h.texture) {
			c.active = h
			return h
		}
	}

	nt, err := c.device.createTextureResource(c.desc)
	if err != nil {
		hal.Logger().Warn("vulkan: texture cycle failed to allocate replacement", "label", c.label, "err", err)
		return c.active
	}
	h := &TextureHandle{texture: nt, container: c}
	nt.owner = h
	c.handles = append(c.handles, h)
	c.active = h
	return h
}

func allSlicesIdle(t *nativeTexture) bool {
	for _, s := range t.slices {
		if atomic.LoadInt32(&s.refCount) > 0 {
			return false
		}
	}
	return true
}

// PrepareSliceForWrite implements spec.md §4.3: optionally cycles the
// container (only when cyclable, not already defragging, and the slice
// is referenced), then emits an image barrier since a layout
// transition may be required regardless of cycling. WriteUnsafe emits
// no barrier and only records next as the slice's current intent.
func (cmd *CommandBuffer) PrepareSliceForWrite(c *TextureContainer, layer, level uint32, option hal.CycleOption, next AccessIntent) *textureSlice {
	c.mu.Lock()
	active := c.active
	c.mu.Unlock()

	slice := active.texture.sliceAt(layer, level)
	if option == hal.WriteCycle && c.canBeCycled && !slice.defragInProgress && atomic.LoadInt32(&slice.refCount) > 0 {
		active = c.Cycle()
		slice = active.texture.sliceAt(layer, level)
	}

	if option == hal.WriteUnsafe {
		slice.currentIntent = next
		return slice
	}

	emitImageBarrier(cmd.device.cmds, cmd.native, active.texture.image, active.texture.aspect, layer, 1, level, 1, slice.currentIntent, next)
	slice.currentIntent = next
	return slice
}

// releaseTrackedSlice decrements a slice's in-flight refcount at
// command buffer cleanup, destroying the whole parent texture if it
// was marked for release and every one of its slices has gone idle.
func (d *Device) releaseTrackedSlice(s *textureSlice) {
	if atomic.AddInt32(&s.refCount, -1) > 0 || !s.parent.markedForDestroy {
		return
	}
	if allSlicesIdle(s.parent) {
		d.destroyTextureResource(s.parent)
	}
}

func maxu32(v, min uint32) uint32 {
	if v < min {
		return min
	}
	return v
}

// ReleaseTexture implements hal.Device, mirroring ReleaseBuffer: every
// handle in the texture's history is marked for destruction, and idle
// ones (every slice's refcount already zero) go immediately.
func (d *Device) ReleaseTexture(tex hal.Texture) {
	c, ok := tex.(*TextureContainer)
	if !ok {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, h := range c.handles {
		h.texture.markedForDestroy = true
		if allSlicesIdle(h.texture) {
			d.destroyTextureResource(h.texture)
		}
	}
}

// SetTextureName implements hal.Device. No debug-utils object-naming
// entry point is loaded, so the name is only kept for container
// diagnostics.
func (d *Device) SetTextureName(tex hal.Texture, name string) {
	c, ok := tex.(*TextureContainer)
	if !ok {
		return
	}
	c.mu.Lock()
	c.label = name
	c.mu.Unlock()
}
