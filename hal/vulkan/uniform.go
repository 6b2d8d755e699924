// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"sync"

	"github.com/forgegpu/vkgpu/hal/vulkan/memory"
	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
	"github.com/forgegpu/vkgpu/types"
)

// uniformBufferSize is the fixed capacity of every UniformBuffer,
// per spec.md §4.5 ("≈1 MiB").
const uniformBufferSize = 1 << 20

// maxUniformSlabSize bounds a single PushUniformData call's advance,
// per spec.md §9 ("slab sections... ≤ 4 KiB each").
const maxUniformSlabSize = 4 << 10

// uniformBuffer is a single persistently-mapped host-visible device
// buffer with a dynamic-offset descriptor set and a bump offset.
type uniformBuffer struct {
	native vk.Buffer
	region *memory.UsedRegion
	set    vk.DescriptorSet
	bump   uint64
}

// uniformBufferPool is the per-stage (vertex/fragment/compute) list of
// available uniform buffers plus the descriptor-set-layout it draws
// dynamic-offset sets from (spec.md §4.5).
type uniformBufferPool struct {
	mu        sync.Mutex
	device    *Device
	stage     vk.ShaderStageFlags
	layout    *descriptorSetLayout
	available []*uniformBuffer
}

// acquire pops an available buffer or creates a fresh one.
func (p *uniformBufferPool) acquire() (*uniformBuffer, error) {
	p.mu.Lock()
	if n := len(p.available); n > 0 {
		u := p.available[n-1]
		p.available = p.available[:n-1]
		p.mu.Unlock()
		u.bump = 0
		return u, nil
	}
	p.mu.Unlock()
	return p.create()
}

// release returns u to the pool, called from command-buffer cleanup
// after the fence covering its use has signaled (spec.md §4.7 "On
// cleanup after fence signal, the uniform buffer returns to its pool").
func (p *uniformBufferPool) release(u *uniformBuffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.available = append(p.available, u)
}

func (p *uniformBufferPool) create() (*uniformBuffer, error) {
	d := p.device
	info := vk.BufferCreateInfo{
		SType: vk.StructureTypeBufferCreateInfo, Size: uniformBufferSize,
		Usage: vk.BufferUsageUniformBufferBit, SharingMode: vk.SharingModeExclusive,
	}
	buf, res := d.cmds.CreateBuffer(d.handle, &info)
	if res != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateBuffer (uniform) failed: %v", res)
	}
	var reqs vk.MemoryRequirements
	d.cmds.GetBufferMemoryRequirements(d.handle, buf, &reqs)
	region, err := d.allocator.Alloc(memory.AllocationRequest{
		Size: reqs.Size, Alignment: reqs.Alignment, Usage: memory.UsageUpload,
		MemoryTypeBits: reqs.MemoryTypeBits, RequireHostVisible: true, IsBuffer: true,
	})
	if err != nil {
		d.cmds.DestroyBuffer(d.handle, buf)
		return nil, fmt.Errorf("vulkan: uniform buffer memory allocation failed: %w", err)
	}
	if res := d.cmds.BindBufferMemory(d.handle, buf, region.Allocation.Memory(), region.Offset); res != vk.Success {
		d.allocator.Free(region)
		d.cmds.DestroyBuffer(d.handle, buf)
		return nil, fmt.Errorf("vulkan: vkBindBufferMemory (uniform) failed: %v", res)
	}

	set, err := d.fetchDescriptorSetBuffer(p.layout, []vk.DescriptorBufferInfo{{Buffer: buf, Offset: 0, Range: uniformBufferSize}})
	if err != nil {
		d.allocator.Free(region)
		d.cmds.DestroyBuffer(d.handle, buf)
		return nil, err
	}
	return &uniformBuffer{native: buf, region: region, set: set}, nil
}

// pushUniformData copies data into u's mapped region at the current
// bump offset, returns the dynamic offset the draw should bind, and
// advances the bump by blockSize aligned to minAlignment, capped at
// maxUniformSlabSize (a zero blockSize advances by the cap). ok is
// false when the push would overflow the buffer; callers must acquire
// a fresh uniform buffer and retry (spec.md §4.5, §8 boundary case).
func (u *uniformBuffer) pushUniformData(data []byte, blockSize uint32, minAlignment uint64) (offset uint64, ok bool) {
	aligned := alignUp64(uint64(blockSize), minAlignment)
	if aligned == 0 || aligned > maxUniformSlabSize {
		aligned = maxUniformSlabSize
	}
	if u.bump+aligned > uniformBufferSize {
		return 0, false
	}
	offset = u.bump
	dst := u.region.MappedPtr + uintptr(offset)
	copyToMapped(dst, data)
	u.bump += aligned
	return offset, true
}

func alignUp64(v, alignment uint64) uint64 {
	if alignment <= 1 {
		return v
	}
	return (v + alignment - 1) &^ (alignment - 1)
}

// uniformBlockSizeForStage returns the ABI-aligned per-stage uniform
// block size a pipeline declares for stage, or 0 if it uses none.
func uniformBlockSizeForStage(stage types.ShaderStage, vertexSize, fragmentSize, computeSize uint32) uint32 {
	switch stage {
	case types.ShaderStageVertex:
		return vertexSize
	case types.ShaderStageFragment:
		return fragmentSize
	case types.ShaderStageCompute:
		return computeSize
	default:
		return 0
	}
}
