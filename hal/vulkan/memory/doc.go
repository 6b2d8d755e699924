// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package memory implements the Vulkan backend's device-memory
// suballocator.
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────┐
//	│                  MemorySubAllocator                      │
//	│  one per Vulkan memory type; owns a set of pages and a   │
//	│  free-region index sorted by size, covering only pages   │
//	│  not currently claimed by defrag                         │
//	├─────────────────────────────────────────────────────────┤
//	│                  MemoryAllocation (page)                 │
//	│  one VkDeviceMemory; free-region and used-region lists;  │
//	│  persistently mapped if host-visible                     │
//	├─────────────────────────────────────────────────────────┤
//	│                   Vulkan Memory API                      │
//	│  vkAllocateMemory, vkFreeMemory, vkMapMemory              │
//	└─────────────────────────────────────────────────────────┘
//
// Allocations of at most 2 MiB suballocate from 16 MiB pages; larger
// requests get a dedicated page sized to the next 64 MiB boundary.
// Free regions belonging to the same page are coalesced on release.
// When no free region fits a request, pages with more than one free
// region are marked unavailable and queued for defragmentation rather
// than left to fragment further; see the vulkan package's defrag pass
// for how a queued page is drained.
//
// # Memory Type Selection
//
// Vulkan exposes multiple memory types with different properties:
//   - DEVICE_LOCAL: fast GPU access, typically no CPU access
//   - HOST_VISIBLE: CPU can map and access
//   - HOST_COHERENT: no explicit flush/invalidate needed
//   - HOST_CACHED: CPU reads are cached
//
// MemoryTypeSelector picks a concrete type index from a caller's
// required/preferred property bits and the driver-reported type mask.
//
// # Thread Safety
//
// MemorySubAllocator is safe for concurrent use; all mutation happens
// under a single mutex. Individual UsedRegion values are not
// thread-safe and are expected to be owned by a single resource.
package memory
