// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package memory

import (
	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
)

// UsageFlags specifies intended memory usage. These flags help select
// the optimal memory type.
type UsageFlags uint32

const (
	// UsageFastDeviceAccess indicates memory primarily accessed by the
	// GPU. Prefers DEVICE_LOCAL memory.
	UsageFastDeviceAccess UsageFlags = 1 << iota

	// UsageHostAccess indicates memory needs CPU access. Requires
	// HOST_VISIBLE memory.
	UsageHostAccess

	// UsageUpload indicates memory used for CPU->GPU transfers.
	// Requires HOST_VISIBLE and prefers HOST_COHERENT; HOST_CACHED
	// types are not excluded.
	UsageUpload

	// UsageDownload indicates memory used for GPU->CPU readback.
	// Prefers HOST_VISIBLE + HOST_CACHED.
	UsageDownload
)

// AllocationRequest describes a single bind() request.
type AllocationRequest struct {
	// Size is the resource's required size in bytes.
	Size uint64

	// Alignment is the resource's required alignment (power of 2).
	Alignment uint64

	// Usage guides memory-type preference.
	Usage UsageFlags

	// MemoryTypeBits restricts candidate types, taken directly from
	// VkMemoryRequirements.memoryTypeBits.
	MemoryTypeBits uint32

	// RequireHostVisible fails type selection unless HOST_VISIBLE.
	RequireHostVisible bool

	// PreferHostLocal nudges selection toward HOST_VISIBLE types. It
	// does not steer away from DEVICE_LOCAL ones.
	PreferHostLocal bool

	// PreferDeviceLocal nudges selection toward DEVICE_LOCAL.
	PreferDeviceLocal bool

	// IsBuffer distinguishes buffer from image suballocation for the
	// UsedRegion this request produces.
	IsBuffer bool
}

// FreeRegion is a contiguous unused byte range within a page.
type FreeRegion struct {
	Page   *MemoryAllocation
	Offset uint64
	Size   uint64
}

// UsedRegion is a live suballocation: a byte range inside a page bound
// to exactly one resource.
type UsedRegion struct {
	Allocation     *MemoryAllocation
	Offset         uint64
	Size           uint64
	ResourceOffset uint64
	ResourceSize   uint64
	Alignment      uint64
	IsBuffer       bool

	// MappedPtr is Allocation.mapped + Offset when the page is
	// host-visible, else 0.
	MappedPtr uintptr
}

// DeviceMemoryType describes a Vulkan memory type.
type DeviceMemoryType struct {
	PropertyFlags vk.MemoryPropertyFlags
	HeapIndex     uint32
}

// DeviceMemoryHeap describes a Vulkan memory heap.
type DeviceMemoryHeap struct {
	Size  uint64
	Flags vk.MemoryHeapFlags
}

// DeviceMemoryProperties holds the memory types and heaps a physical
// device reports.
type DeviceMemoryProperties struct {
	MemoryTypes []DeviceMemoryType
	MemoryHeaps []DeviceMemoryHeap
}

// MemoryTypeSelector picks a concrete Vulkan memory type index for an
// AllocationRequest.
type MemoryTypeSelector struct {
	properties DeviceMemoryProperties
	validTypes uint32
}

// knownMemoryFlags are memory property flags the selector understands.
const knownMemoryFlags = vk.MemoryPropertyDeviceLocalBit |
	vk.MemoryPropertyHostVisibleBit |
	vk.MemoryPropertyHostCoherentBit |
	vk.MemoryPropertyHostCachedBit |
	vk.MemoryPropertyLazilyAllocatedBit

// NewMemoryTypeSelector builds a selector from the properties the
// driver reports for the active physical device.
func NewMemoryTypeSelector(props DeviceMemoryProperties) *MemoryTypeSelector {
	var validTypes uint32
	for i, mt := range props.MemoryTypes {
		if mt.PropertyFlags & ^knownMemoryFlags == 0 {
			validTypes |= 1 << uint(i)
		}
	}
	return &MemoryTypeSelector{properties: props, validTypes: validTypes}
}

// Select finds the best memory type for req, returning false if no
// type in req.MemoryTypeBits satisfies the required properties.
func (s *MemoryTypeSelector) Select(req AllocationRequest) (uint32, bool) {
	required, preferred := s.requestToFlags(req)

	if idx, ok := s.findMemoryType(req.MemoryTypeBits, required|preferred); ok {
		return idx, true
	}
	return s.findMemoryType(req.MemoryTypeBits, required)
}

func (s *MemoryTypeSelector) findMemoryType(typeBits uint32, flags vk.MemoryPropertyFlags) (uint32, bool) {
	for i, mt := range s.properties.MemoryTypes {
		mask := uint32(1) << uint(i)
		if typeBits&mask == 0 || s.validTypes&mask == 0 {
			continue
		}
		if mt.PropertyFlags&flags == flags {
			return uint32(i), true
		}
	}
	return 0, false
}

func (s *MemoryTypeSelector) requestToFlags(req AllocationRequest) (required, preferred vk.MemoryPropertyFlags) {
	if req.RequireHostVisible {
		required |= vk.MemoryPropertyHostVisibleBit
	}
	if req.Usage&UsageHostAccess != 0 || req.Usage&UsageUpload != 0 || req.Usage&UsageDownload != 0 {
		required |= vk.MemoryPropertyHostVisibleBit
	}
	if req.Usage&UsageUpload != 0 {
		preferred |= vk.MemoryPropertyHostCoherentBit
	}
	if req.Usage&UsageDownload != 0 {
		preferred |= vk.MemoryPropertyHostCachedBit
	}
	if req.PreferDeviceLocal || req.Usage&UsageFastDeviceAccess != 0 {
		preferred |= vk.MemoryPropertyDeviceLocalBit
	}
	if req.PreferHostLocal {
		preferred |= vk.MemoryPropertyHostVisibleBit
	}
	return required, preferred
}

// IsDeviceLocal reports whether typeIndex names a DEVICE_LOCAL type.
func (s *MemoryTypeSelector) IsDeviceLocal(typeIndex uint32) bool {
	return s.flagSet(typeIndex, vk.MemoryPropertyDeviceLocalBit)
}

// IsHostVisible reports whether typeIndex names a HOST_VISIBLE type.
func (s *MemoryTypeSelector) IsHostVisible(typeIndex uint32) bool {
	return s.flagSet(typeIndex, vk.MemoryPropertyHostVisibleBit)
}

func (s *MemoryTypeSelector) flagSet(typeIndex uint32, flag vk.MemoryPropertyFlags) bool {
	if int(typeIndex) >= len(s.properties.MemoryTypes) {
		return false
	}
	return s.properties.MemoryTypes[typeIndex].PropertyFlags&flag != 0
}
