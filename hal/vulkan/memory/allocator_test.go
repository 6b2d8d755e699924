// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package memory

import "testing"

// newTestSubAllocator builds a sub-allocator whose pages are injected
// directly, bypassing vkAllocateMemory, so the free-region bookkeeping
// can be exercised without a driver.
func newTestSubAllocator() *MemorySubAllocator {
	return &MemorySubAllocator{typeIndex: 0}
}

func addTestPage(s *MemorySubAllocator, size uint64) *MemoryAllocation {
	return addTestPageClass(s, size, pageClassSmall)
}

func addTestPageClass(s *MemorySubAllocator, size uint64, class pageClass) *MemoryAllocation {
	page := &MemoryAllocation{size: size, class: class, available: true}
	page.free = []*FreeRegion{{Page: page, Offset: 0, Size: size}}
	s.pages = append(s.pages, page)
	s.insertFreeRegion(page.free[0])
	return page
}

// TestFindFitRespectsPageClass asserts a large (dedicated-page) request
// never carves from a small shared page's leftover space, and vice
// versa, even when the wrong-class region would otherwise fit.
func TestFindFitRespectsPageClass(t *testing.T) {
	s := newTestSubAllocator()
	addTestPageClass(s, SmallPageSize, pageClassSmall)
	addTestPageClass(s, LargePageGranularity, pageClassLarge)

	largeReq := AllocationRequest{Size: SmallAllocationThreshold + 1, Alignment: 256}
	region, _ := s.findFit(largeReq.Size, largeReq.Alignment, classFor(largeReq.Size))
	if region == nil {
		t.Fatal("expected a fit on the large page")
	}
	if region.Page.class != pageClassLarge {
		t.Fatalf("large request was fit into a %v page, want pageClassLarge", region.Page.class)
	}

	smallReq := AllocationRequest{Size: 1024, Alignment: 256}
	region, _ = s.findFit(smallReq.Size, smallReq.Alignment, classFor(smallReq.Size))
	if region == nil {
		t.Fatal("expected a fit on the small page")
	}
	if region.Page.class != pageClassSmall {
		t.Fatalf("small request was fit into a %v page, want pageClassSmall", region.Page.class)
	}
}

func TestSubAllocatorCarveAndRelease(t *testing.T) {
	s := newTestSubAllocator()
	page := addTestPage(s, SmallPageSize)

	a, err := bindNoAlloc(s, AllocationRequest{Size: 1024, Alignment: 256})
	if err != nil {
		t.Fatalf("bind a: %v", err)
	}
	b, err := bindNoAlloc(s, AllocationRequest{Size: 4096, Alignment: 256})
	if err != nil {
		t.Fatalf("bind b: %v", err)
	}

	if err := s.CheckInvariant(); err != nil {
		t.Fatalf("invariant after binds: %v", err)
	}
	if a.Offset%256 != 0 || b.Offset%256 != 0 {
		t.Fatalf("misaligned offsets: a=%d b=%d", a.Offset, b.Offset)
	}

	s.Release(a)
	s.Release(b)

	if err := s.CheckInvariant(); err != nil {
		t.Fatalf("invariant after release: %v", err)
	}
	if len(page.free) != 1 {
		t.Fatalf("expected coalesce back to one free region, got %d", len(page.free))
	}
	if page.free[0].Size != SmallPageSize {
		t.Fatalf("expected full page reclaimed, got %d", page.free[0].Size)
	}
}

func TestSubAllocatorFragmentationTriggersDefrag(t *testing.T) {
	s := newTestSubAllocator()
	addTestPage(s, SmallPageSize)

	const n = 64
	var regions [n]*UsedRegion
	for i := range regions {
		r, err := bindNoAlloc(s, AllocationRequest{Size: 64 * 1024, Alignment: 256})
		if err != nil {
			t.Fatalf("bind %d: %v", i, err)
		}
		regions[i] = r
	}
	for i := 0; i < n; i += 2 {
		s.Release(regions[i])
	}

	// The page is now fragmented (many disjoint free regions). A
	// request bigger than any single free region but smaller than the
	// page forces the fragmented-page path.
	s.markFragmentedPagesUnavailable()
	if len(s.defragQueue) != 1 {
		t.Fatalf("expected one page queued for defrag, got %d", len(s.defragQueue))
	}
	if len(s.freeIndex) != 0 {
		t.Fatalf("expected free index emptied once its page is unavailable, got %d entries", len(s.freeIndex))
	}
}

// bindNoAlloc mirrors MemorySubAllocator.Bind but never allocates a
// fresh page, so tests can assert "ran out of pre-seeded pages" as a
// hard failure instead of silently growing.
func bindNoAlloc(s *MemorySubAllocator, req AllocationRequest) (*UsedRegion, error) {
	if req.Alignment == 0 {
		req.Alignment = 1
	}
	region, idx := s.findFit(req.Size, req.Alignment, classFor(req.Size))
	if region == nil {
		return nil, errOutOfTestPages
	}
	return s.carve(region, idx, req), nil
}

var errOutOfTestPages = &testAllocError{"no free region large enough"}

type testAllocError struct{ msg string }

func (e *testAllocError) Error() string { return e.msg }
