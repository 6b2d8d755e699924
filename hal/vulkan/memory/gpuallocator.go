// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package memory

import (
	"fmt"
	"sync"

	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
)

// GpuAllocator is the device-wide entry point: one MemorySubAllocator
// per Vulkan memory type, fronted by a MemoryTypeSelector that maps an
// AllocationRequest onto a concrete type index.
type GpuAllocator struct {
	device   vk.Device
	cmds     *vk.Commands
	selector *MemoryTypeSelector

	mu   sync.Mutex
	subs map[uint32]*MemorySubAllocator
}

// NewGpuAllocator builds the per-type sub-allocators lazily as each
// type is first used, from the physical device's reported memory
// properties.
func NewGpuAllocator(device vk.Device, cmds *vk.Commands, props DeviceMemoryProperties) *GpuAllocator {
	return &GpuAllocator{
		device:   device,
		cmds:     cmds,
		selector: NewMemoryTypeSelector(props),
		subs:     make(map[uint32]*MemorySubAllocator),
	}
}

// Alloc selects a memory type for req and binds a region from that
// type's sub-allocator. When that bind fails and req asked for
// DEVICE_LOCAL memory, Alloc retries once with the device-local
// preference dropped, if that selects a different memory type.
func (g *GpuAllocator) Alloc(req AllocationRequest) (*UsedRegion, error) {
	typeIndex, ok := g.selector.Select(req)
	if !ok {
		return nil, fmt.Errorf("%w: no memory type satisfies request (bits=%#x)", ErrOutOfMemory, req.MemoryTypeBits)
	}
	region, err := g.subAllocator(typeIndex).Bind(req)
	if err == nil || !(req.PreferDeviceLocal || req.Usage&UsageFastDeviceAccess != 0) {
		return region, err
	}
	relaxed := req
	relaxed.PreferDeviceLocal = false
	relaxed.Usage &^= UsageFastDeviceAccess
	if idx, ok := g.selector.Select(relaxed); ok && idx != typeIndex {
		return g.subAllocator(idx).Bind(relaxed)
	}
	return region, err
}

// Free releases a region back to its owning sub-allocator.
func (g *GpuAllocator) Free(region *UsedRegion) {
	g.subAllocator(region.Allocation.typeIndex).Release(region)
}

// ReclaimEmptyPages walks every sub-allocator dropping fully-empty
// pages, called after submission cleanup retires used regions.
func (g *GpuAllocator) ReclaimEmptyPages() {
	g.mu.Lock()
	subs := make([]*MemorySubAllocator, 0, len(g.subs))
	for _, s := range g.subs {
		subs = append(subs, s)
	}
	g.mu.Unlock()
	for _, s := range subs {
		s.ReclaimEmptyPages()
	}
}

// PopDefragPage scans every type's defrag queue and returns the first
// queued page found, along with the sub-allocator that owns it.
func (g *GpuAllocator) PopDefragPage() (*MemoryAllocation, *MemorySubAllocator) {
	g.mu.Lock()
	subs := make([]*MemorySubAllocator, 0, len(g.subs))
	for _, s := range g.subs {
		subs = append(subs, s)
	}
	g.mu.Unlock()
	for _, s := range subs {
		if page := s.PopDefragPage(); page != nil {
			return page, s
		}
	}
	return nil, nil
}

// Destroy frees every native page this allocator has acquired, across
// all memory types. Callers must ensure no resource still references a
// region from these pages.
func (g *GpuAllocator) Destroy() {
	g.mu.Lock()
	subs := make([]*MemorySubAllocator, 0, len(g.subs))
	for _, s := range g.subs {
		subs = append(subs, s)
	}
	g.mu.Unlock()
	for _, s := range subs {
		s.destroy()
	}
}

// IsDeviceLocal reports whether typeIndex names a DEVICE_LOCAL type.
func (g *GpuAllocator) IsDeviceLocal(typeIndex uint32) bool { return g.selector.IsDeviceLocal(typeIndex) }

// IsHostVisible reports whether typeIndex names a HOST_VISIBLE type.
func (g *GpuAllocator) IsHostVisible(typeIndex uint32) bool { return g.selector.IsHostVisible(typeIndex) }

func (g *GpuAllocator) subAllocator(typeIndex uint32) *MemorySubAllocator {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.subs[typeIndex]
	if !ok {
		hostVisible := g.selector.IsHostVisible(typeIndex)
		s = NewMemorySubAllocator(g.device, g.cmds, typeIndex, hostVisible)
		g.subs[typeIndex] = s
	}
	return s
}
