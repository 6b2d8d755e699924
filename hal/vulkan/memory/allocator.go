// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package memory

import (
	"fmt"
	"sort"
	"sync"
	"unsafe"

	"github.com/forgegpu/vkgpu/hal"
	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
)

const (
	// SmallAllocationThreshold is the largest request size that
	// suballocates from a shared small page rather than getting a
	// dedicated page.
	SmallAllocationThreshold = 2 << 20 // 2 MiB

	// SmallPageSize is the size of a shared small page.
	SmallPageSize = 16 << 20 // 16 MiB

	// LargePageGranularity is the rounding boundary for dedicated
	// pages backing requests above SmallAllocationThreshold.
	LargePageGranularity = 64 << 20 // 64 MiB
)

var ErrOutOfMemory = fmt.Errorf("memory: device memory allocation failed: %w", hal.ErrOutOfDeviceMemory)

// pageClass partitions pages into the two categories spec.md §4.1
// requires free-region selection to respect: a "small" page is the
// shared 16 MiB pool backing requests of at most 2 MiB, a "large" page is a
// dedicated, size-rounded page backing one oversized request. A
// region never satisfies a request from the other category, even when
// it would otherwise fit, so a large allocation's dedicated page never
// absorbs unrelated small suballocations and vice versa.
type pageClass uint8

const (
	pageClassSmall pageClass = iota
	pageClassLarge
)

func classFor(size uint64) pageClass {
	if size <= SmallAllocationThreshold {
		return pageClassSmall
	}
	return pageClassLarge
}

func pageSizeFor(size uint64) uint64 {
	if size <= SmallAllocationThreshold {
		return SmallPageSize
	}
	return roundUp(size, LargePageGranularity)
}

func roundUp(v, granularity uint64) uint64 {
	if v%granularity == 0 {
		return v
	}
	return (v/granularity + 1) * granularity
}

func alignUp(v, alignment uint64) uint64 {
	if alignment <= 1 {
		return v
	}
	return (v + alignment - 1) &^ (alignment - 1)
}

// MemoryAllocation is one VkDeviceMemory page for a single memory
// type. The sum of free and used region sizes always equals Size;
// free regions belonging to the page are coalesced whenever a region
// is released.
type MemoryAllocation struct {
	memory    vk.DeviceMemory
	typeIndex uint32
	size      uint64
	mapped    unsafe.Pointer // nil unless the page's type is host-visible
	class     pageClass

	free []*FreeRegion // sorted by Offset, never adjacent
	used []*UsedRegion

	// available is false while a defrag cycle owns this page; such a
	// page's free regions are excluded from the sub-allocator's index.
	available bool
}

// Memory returns the page's native VkDeviceMemory handle, for callers
// binding a freshly suballocated UsedRegion to a buffer or image.
func (a *MemoryAllocation) Memory() vk.DeviceMemory { return a.memory }

// UsedRegions returns the page's live suballocations, for the
// defragmenter to walk when moving a page's resources elsewhere.
func (a *MemoryAllocation) UsedRegions() []*UsedRegion { return a.used }

func (a *MemoryAllocation) usedBytes() uint64 {
	var total uint64
	for _, u := range a.used {
		total += u.Size
	}
	return total
}

func (a *MemoryAllocation) freeBytes() uint64 {
	var total uint64
	for _, f := range a.free {
		total += f.Size
	}
	return total
}

// fragmented reports whether the page holds more than one free region,
// the trigger spec uses for queuing a page for defragmentation.
func (a *MemoryAllocation) fragmented() bool {
	return len(a.free) > 1
}

// empty reports whether the page holds no live resources at all.
func (a *MemoryAllocation) empty() bool {
	return len(a.used) == 0
}

// MemorySubAllocator owns every MemoryAllocation page for one Vulkan
// memory type, plus a free-region index sorted by size covering only
// pages currently marked available.
type MemorySubAllocator struct {
	mu sync.Mutex

	device      vk.Device
	cmds        *vk.Commands
	typeIndex   uint32
	hostVisible bool

	pages       []*MemoryAllocation
	freeIndex   []*FreeRegion // sorted ascending by Size
	defragQueue []*MemoryAllocation
	oomReported bool
}

// NewMemorySubAllocator creates an allocator for a single Vulkan
// memory type index.
func NewMemorySubAllocator(device vk.Device, cmds *vk.Commands, typeIndex uint32, hostVisible bool) *MemorySubAllocator {
	return &MemorySubAllocator{
		device:      device,
		cmds:        cmds,
		typeIndex:   typeIndex,
		hostVisible: hostVisible,
	}
}

// Bind satisfies one allocation request, suballocating from an
// existing page when a region fits or allocating a fresh page
// otherwise.
func (s *MemorySubAllocator) Bind(req AllocationRequest) (*UsedRegion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	alignment := req.Alignment
	if alignment == 0 {
		alignment = 1
	}
	class := classFor(req.Size)

	region, idx := s.findFit(req.Size, alignment, class)
	if region == nil {
		s.markFragmentedPagesUnavailable()
		region, idx = s.findFit(req.Size, alignment, class)
	}
	if region == nil {
		page, err := s.allocPage(pageSizeFor(req.Size), class)
		if err != nil {
			if !s.oomReported {
				hal.Logger().Warn("memory: device memory allocation failed", "type", s.typeIndex, "size", req.Size, "err", err)
				s.oomReported = true
			}
			return nil, fmt.Errorf("%w: %v", ErrOutOfMemory, err)
		}
		s.pages = append(s.pages, page)
		s.insertFreeRegion(page.free[0])
		region, idx = s.findFit(req.Size, alignment, class)
		if region == nil {
			return nil, fmt.Errorf("%w: fresh page too small for request", ErrOutOfMemory)
		}
	}

	return s.carve(region, idx, req), nil
}

// findFit returns the smallest available free region of the matching
// page class that can satisfy size with the given alignment, and its
// index in freeIndex. A region whose page belongs to the other class
// is skipped even when it would otherwise fit (spec.md §4.1: dedicated
// large pages and the shared small pool never donate to each other).
func (s *MemorySubAllocator) findFit(size, alignment uint64, class pageClass) (*FreeRegion, int) {
	start := sort.Search(len(s.freeIndex), func(i int) bool {
		return s.freeIndex[i].Size >= size
	})
	for i := start; i < len(s.freeIndex); i++ {
		r := s.freeIndex[i]
		if r.Page.class != class {
			continue
		}
		aligned := alignUp(r.Offset, alignment)
		if aligned+size <= r.Offset+r.Size {
			return r, i
		}
	}
	return nil, -1
}

// carve removes region from both indexes, splits off any alignment
// padding and trailing slack as new free regions, and returns the
// UsedRegion describing the resource's bytes.
func (s *MemorySubAllocator) carve(region *FreeRegion, freeIdx int, req AllocationRequest) *UsedRegion {
	page := region.Page
	s.freeIndex = append(s.freeIndex[:freeIdx], s.freeIndex[freeIdx+1:]...)
	removeRegionFromPage(page, region)

	alignedOffset := alignUp(region.Offset, req.Alignment)
	tailStart := alignedOffset + req.Size
	tailSize := (region.Offset + region.Size) - tailStart

	if alignedOffset > region.Offset {
		lead := &FreeRegion{Page: page, Offset: region.Offset, Size: alignedOffset - region.Offset}
		insertRegionIntoPage(page, lead)
		s.insertFreeRegion(lead)
	}
	if tailSize > 0 {
		tail := &FreeRegion{Page: page, Offset: tailStart, Size: tailSize}
		insertRegionIntoPage(page, tail)
		s.insertFreeRegion(tail)
	}

	used := &UsedRegion{
		Allocation:     page,
		Offset:         alignedOffset,
		Size:           req.Size,
		ResourceOffset: alignedOffset,
		ResourceSize:   req.Size,
		Alignment:      req.Alignment,
		IsBuffer:       req.IsBuffer,
	}
	if page.mapped != nil {
		used.MappedPtr = uintptr(page.mapped) + uintptr(alignedOffset)
	}
	page.used = append(page.used, used)
	return used
}

// Release returns a UsedRegion's bytes to its page as a free region,
// coalescing with adjacent free neighbors, and reinserts into the
// size index if the page is still available.
func (s *MemorySubAllocator) Release(region *UsedRegion) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := region.Allocation
	for i, u := range page.used {
		if u == region {
			page.used = append(page.used[:i], page.used[i+1:]...)
			break
		}
	}

	freed := &FreeRegion{Page: page, Offset: region.Offset, Size: region.Size}
	s.coalesce(page, freed)
}

// coalesce inserts freed into page.free in offset order, merging with
// an immediately preceding or following region, and removes any
// merged-away neighbor from the size index before reinserting the
// (possibly grown) region if the page is available.
func (s *MemorySubAllocator) coalesce(page *MemoryAllocation, freed *FreeRegion) {
	i := sort.Search(len(page.free), func(i int) bool { return page.free[i].Offset >= freed.Offset })

	if i > 0 {
		prev := page.free[i-1]
		if prev.Offset+prev.Size == freed.Offset {
			prev.Size += freed.Size
			if page.available {
				s.removeFromFreeIndex(prev)
			}
			freed = prev
			i--
			page.free = append(page.free[:i], page.free[i+1:]...)
		}
	}
	if i < len(page.free) {
		next := page.free[i]
		if freed.Offset+freed.Size == next.Offset {
			freed.Size += next.Size
			if page.available {
				s.removeFromFreeIndex(next)
			}
			page.free = append(page.free[:i], page.free[i+1:]...)
		}
	}

	insertRegionIntoPage(page, freed)
	if page.available {
		s.insertFreeRegion(freed)
	}
}

func (s *MemorySubAllocator) removeFromFreeIndex(r *FreeRegion) {
	for i, f := range s.freeIndex {
		if f == r {
			s.freeIndex = append(s.freeIndex[:i], s.freeIndex[i+1:]...)
			return
		}
	}
}

func (s *MemorySubAllocator) insertFreeRegion(r *FreeRegion) {
	i := sort.Search(len(s.freeIndex), func(i int) bool { return s.freeIndex[i].Size >= r.Size })
	s.freeIndex = append(s.freeIndex, nil)
	copy(s.freeIndex[i+1:], s.freeIndex[i:])
	s.freeIndex[i] = r
}

// markFragmentedPagesUnavailable pulls every available page with more
// than one free region out of the size index and onto the defrag
// queue, per the allocator's out-of-fit fallback.
func (s *MemorySubAllocator) markFragmentedPagesUnavailable() {
	for _, page := range s.pages {
		if !page.available || !page.fragmented() {
			continue
		}
		page.available = false
		s.defragQueue = append(s.defragQueue, page)
		newIndex := s.freeIndex[:0]
		for _, f := range s.freeIndex {
			if f.Page != page {
				newIndex = append(newIndex, f)
			}
		}
		s.freeIndex = newIndex
	}
}

// PopDefragPage removes and returns the next page queued for
// defragmentation, or nil if the queue is empty.
func (s *MemorySubAllocator) PopDefragPage() *MemoryAllocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.defragQueue) == 0 {
		return nil
	}
	page := s.defragQueue[0]
	s.defragQueue = s.defragQueue[1:]
	return page
}

// ReclaimEmptyPages frees and drops any page with no live used
// regions, called after submission cleanup.
func (s *MemorySubAllocator) ReclaimEmptyPages() {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.pages[:0]
	for _, page := range s.pages {
		if page.empty() {
			s.dropPage(page)
			continue
		}
		kept = append(kept, page)
	}
	s.pages = kept
}

// destroy frees every page this sub-allocator holds.
func (s *MemorySubAllocator) destroy() {
	s.mu.Lock()
	pages := s.pages
	s.pages = nil
	s.mu.Unlock()
	for _, p := range pages {
		s.dropPage(p)
	}
}

func (s *MemorySubAllocator) dropPage(page *MemoryAllocation) {
	for _, f := range page.free {
		s.removeFromFreeIndex(f)
	}
	if page.mapped != nil {
		s.cmds.UnmapMemory(s.device, page.memory)
	}
	s.cmds.FreeMemory(s.device, page.memory)
}

func (s *MemorySubAllocator) allocPage(size uint64, class pageClass) (*MemoryAllocation, error) {
	info := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  size,
		MemoryTypeIndex: s.typeIndex,
	}
	mem, res := s.cmds.AllocateMemory(s.device, &info)
	if res != vk.Success {
		return nil, fmt.Errorf("vkAllocateMemory: %v", res)
	}

	page := &MemoryAllocation{
		memory:    mem,
		typeIndex: s.typeIndex,
		size:      size,
		class:     class,
		available: true,
	}
	page.free = []*FreeRegion{{Page: page, Offset: 0, Size: size}}

	if s.hostVisible {
		ptr, res := s.cmds.MapMemory(s.device, mem, 0, size)
		if res != vk.Success {
			s.cmds.FreeMemory(s.device, mem)
			return nil, fmt.Errorf("vkMapMemory: %v", res)
		}
		page.mapped = ptr
		if pageSize := hostPageSize(); pageSize > 0 && uintptr(ptr)%uintptr(pageSize) != 0 {
			hal.Logger().Debug("memory: host-visible mapping is not page-aligned", "ptr", ptr, "pageSize", pageSize)
		}
	}
	return page, nil
}

func removeRegionFromPage(page *MemoryAllocation, region *FreeRegion) {
	for i, f := range page.free {
		if f == region {
			page.free = append(page.free[:i], page.free[i+1:]...)
			return
		}
	}
}

func insertRegionIntoPage(page *MemoryAllocation, region *FreeRegion) {
	i := sort.Search(len(page.free), func(i int) bool { return page.free[i].Offset >= region.Offset })
	page.free = append(page.free, nil)
	copy(page.free[i+1:], page.free[i:])
	page.free[i] = region
}

// CheckInvariant walks every page and reports whether free and used
// region sizes partition the page exactly, with no overlapping free
// regions. Intended for tests, not the hot path.
func (s *MemorySubAllocator) CheckInvariant() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, page := range s.pages {
		if page.freeBytes()+page.usedBytes() != page.size {
			return fmt.Errorf("memory: page %d free+used=%d want %d", page.memory, page.freeBytes()+page.usedBytes(), page.size)
		}
		for i := 1; i < len(page.free); i++ {
			if page.free[i-1].Offset+page.free[i-1].Size > page.free[i].Offset {
				return fmt.Errorf("memory: page %d free regions overlap", page.memory)
			}
		}
	}
	return nil
}
