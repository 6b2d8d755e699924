// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/forgegpu/vkgpu/hal"
	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
)

// descriptorLayoutKey is the dedup key for DescriptorSetLayout, per
// spec.md §3/§4.4: a single descriptor type repeated bindingCount times
// at binding 0, visible to one stage.
type descriptorLayoutKey struct {
	dtype        vk.DescriptorType
	bindingCount uint32
	stage        vk.ShaderStageFlags
}

// descriptorSetLayout wraps a deduplicated native layout and the cache
// that hands out sets built from it. Empty (bindingCount==0) sentinel
// layouts get a cache too: the draw path binds every one of a
// pipeline's descriptor-set slots unconditionally (spec.md §4.7, §9),
// so even an unused slot needs a real VkDescriptorSet to bind.
type descriptorSetLayout struct {
	handle vk.DescriptorSetLayout
	key    descriptorLayoutKey
	cache  *descriptorSetCache
}

// descriptorSetCache is the growable pool of native descriptor pools
// and their inactive-set free list backing one layout, the empty
// sentinel layouts included (spec.md §4.4). Growth doubles pool size starting at 128.
type descriptorSetCache struct {
	mu       sync.Mutex
	device   *Device
	layout   *descriptorSetLayout
	poolSize uint32
	pools    []vk.DescriptorPool
	inactive []vk.DescriptorSet
}

const initialDescriptorPoolSize = 128

// fetchDescriptorSetLayout returns the deduplicated layout for
// (dtype, bindingCount, stage), creating it and its cache on first
// use.
func (d *Device) fetchDescriptorSetLayout(dtype vk.DescriptorType, bindingCount uint32, stage vk.ShaderStageFlags) *descriptorSetLayout {
	key := descriptorLayoutKey{dtype: dtype, bindingCount: bindingCount, stage: stage}

	d.layoutMu.Lock()
	if l, ok := d.layouts[key]; ok {
		d.layoutMu.Unlock()
		return l
	}
	d.layoutMu.Unlock()

	var bindings []vk.DescriptorSetLayoutBinding
	var pBindings uintptr
	if bindingCount > 0 {
		bindings = []vk.DescriptorSetLayoutBinding{{
			Binding: 0, DescriptorType: dtype, DescriptorCount: bindingCount, StageFlags: stage,
		}}
		pBindings = ptrOf(&bindings[0])
	}
	info := vk.DescriptorSetLayoutCreateInfo{
		SType: vk.StructureTypeDescriptorSetLayoutCreateInfo, BindingCount: uint32(len(bindings)), PBindings: pBindings,
	}
	handle, res := d.cmds.CreateDescriptorSetLayout(d.handle, &info)
	if res != vk.Success {
		hal.Logger().Warn("vulkan: vkCreateDescriptorSetLayout failed", "err", res)
	}

	l := &descriptorSetLayout{handle: handle, key: key}
	l.cache = &descriptorSetCache{device: d, layout: l, poolSize: initialDescriptorPoolSize}

	d.layoutMu.Lock()
	d.layouts[key] = l
	d.layoutMu.Unlock()
	return l
}

// fetchEmptyLayout returns the zero-binding sentinel for (stage,
// dtype), creating it on first use; it is used to fill unused slots in the 4-set bind model.
func (d *Device) fetchEmptyLayout(stage vk.ShaderStageFlags, dtype vk.DescriptorType) *descriptorSetLayout {
	return d.fetchDescriptorSetLayout(dtype, 0, stage)
}

func (c *descriptorSetCache) grow() error {
	sizes := []vk.DescriptorPoolSize{{Type: c.layout.key.dtype, DescriptorCount: c.poolSize * maxu32(c.layout.key.bindingCount, 1)}}
	pool, res := c.device.cmds.CreateDescriptorPool(c.device.handle, &vk.DescriptorPoolCreateInfo{
		SType: vk.StructureTypeDescriptorPoolCreateInfo, MaxSets: c.poolSize,
		PoolSizeCount: 1, PPoolSizes: ptrOf(&sizes[0]),
	})
	if res != vk.Success {
		return fmt.Errorf("vulkan: vkCreateDescriptorPool failed: %v", res)
	}

	layouts := make([]vk.DescriptorSetLayout, c.poolSize)
	for i := range layouts {
		layouts[i] = c.layout.handle
	}
	sets := make([]vk.DescriptorSet, c.poolSize)
	res = c.device.cmds.AllocateDescriptorSets(c.device.handle, &vk.DescriptorSetAllocateInfo{
		SType: vk.StructureTypeDescriptorSetAllocateInfo, DescriptorPool: pool,
		DescriptorSetCount: c.poolSize, PSetLayouts: ptrOf(&layouts[0]),
	}, &sets[0])
	if res != vk.Success {
		return fmt.Errorf("vulkan: vkAllocateDescriptorSets failed: %v", res)
	}

	c.pools = append(c.pools, pool)
	c.inactive = append(c.inactive, sets...)
	c.poolSize *= 2
	return nil
}

// allocate pops one inactive set, growing the cache first if exhausted.
func (c *descriptorSetCache) allocate() (vk.DescriptorSet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.inactive) == 0 {
		if err := c.grow(); err != nil {
			return 0, err
		}
	}
	n := len(c.inactive) - 1
	set := c.inactive[n]
	c.inactive = c.inactive[:n]
	return set, nil
}

// free returns set to the cache's inactive list, called from command
// buffer cleanup once the submission that used it has signaled.
func (c *descriptorSetCache) free(set vk.DescriptorSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inactive = append(c.inactive, set)
}

// fetchDescriptorSetBuffer allocates a set from layout's cache and
// writes it with dynamic-offset uniform buffer bindings.
func (d *Device) fetchDescriptorSetBuffer(layout *descriptorSetLayout, buffers []vk.DescriptorBufferInfo) (vk.DescriptorSet, error) {
	set, err := layout.cache.allocate()
	if err != nil {
		return 0, err
	}
	write := vk.WriteDescriptorSet{
		SType: vk.StructureTypeWriteDescriptorSet, DstSet: set, DescriptorCount: uint32(len(buffers)),
		DescriptorType: layout.key.dtype, PBufferInfo: ptrOf(&buffers[0]),
	}
	d.cmds.UpdateDescriptorSets(d.handle, 1, &write, 0, unsafe.Pointer(nil))
	return set, nil
}

// fetchDescriptorSetImages allocates a set from layout's cache and
// writes it with combined-image-sampler or storage-image bindings.
func (d *Device) fetchDescriptorSetImages(layout *descriptorSetLayout, images []vk.DescriptorImageInfo) (vk.DescriptorSet, error) {
	set, err := layout.cache.allocate()
	if err != nil {
		return 0, err
	}
	write := vk.WriteDescriptorSet{
		SType: vk.StructureTypeWriteDescriptorSet, DstSet: set, DescriptorCount: uint32(len(images)),
		DescriptorType: layout.key.dtype, PImageInfo: ptrOf(&images[0]),
	}
	d.cmds.UpdateDescriptorSets(d.handle, 1, &write, 0, unsafe.Pointer(nil))
	return set, nil
}

// boundDescriptorSet records one (set, cache) pair a command buffer
// acquired this recording, returned to its cache on cleanup.
type boundDescriptorSet struct {
	set   vk.DescriptorSet
	cache *descriptorSetCache
}
