// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package memory

import (
	"testing"

	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
)

func testProperties() DeviceMemoryProperties {
	return DeviceMemoryProperties{
		MemoryTypes: []DeviceMemoryType{
			{PropertyFlags: vk.MemoryPropertyDeviceLocalBit, HeapIndex: 0},
			{PropertyFlags: vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit, HeapIndex: 1},
			{PropertyFlags: vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCachedBit, HeapIndex: 1},
		},
		MemoryHeaps: []DeviceMemoryHeap{
			{Size: 4 << 30},
			{Size: 8 << 30},
		},
	}
}

func TestNewMemoryTypeSelector(t *testing.T) {
	selector := NewMemoryTypeSelector(testProperties())
	if selector == nil {
		t.Fatal("NewMemoryTypeSelector returned nil")
	}
	if selector.validTypes != 0b111 {
		t.Errorf("validTypes = %b, want %b", selector.validTypes, 0b111)
	}
}

func TestMemoryTypeSelectorSelect(t *testing.T) {
	selector := NewMemoryTypeSelector(testProperties())

	tests := []struct {
		name      string
		req       AllocationRequest
		wantIndex uint32
		wantFound bool
	}{
		{
			name:      "fast device access prefers device local",
			req:       AllocationRequest{Size: 1024, Usage: UsageFastDeviceAccess, MemoryTypeBits: 0b111},
			wantIndex: 0,
			wantFound: true,
		},
		{
			name:      "upload prefers host visible + coherent",
			req:       AllocationRequest{Size: 1024, Usage: UsageUpload, MemoryTypeBits: 0b111},
			wantIndex: 1,
			wantFound: true,
		},
		{
			name:      "download prefers host visible + cached",
			req:       AllocationRequest{Size: 1024, Usage: UsageDownload, MemoryTypeBits: 0b111},
			wantIndex: 2,
			wantFound: true,
		},
		{
			name:      "require host visible without preference picks first match",
			req:       AllocationRequest{Size: 1024, RequireHostVisible: true, MemoryTypeBits: 0b111},
			wantIndex: 1,
			wantFound: true,
		},
		{
			name:      "no matching type returns false",
			req:       AllocationRequest{Size: 1024, RequireHostVisible: true, MemoryTypeBits: 0b001},
			wantFound: false,
		},
		{
			name:      "zero memory type bits returns false",
			req:       AllocationRequest{Size: 1024, Usage: UsageFastDeviceAccess, MemoryTypeBits: 0},
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, found := selector.Select(tt.req)
			if found != tt.wantFound {
				t.Fatalf("Select() found = %v, want %v", found, tt.wantFound)
			}
			if found && index != tt.wantIndex {
				t.Errorf("Select() index = %d, want %d", index, tt.wantIndex)
			}
		})
	}
}

func TestMemoryTypeSelectorHelpers(t *testing.T) {
	selector := NewMemoryTypeSelector(testProperties())

	if !selector.IsDeviceLocal(0) {
		t.Error("expected type 0 to be device local")
	}
	if selector.IsDeviceLocal(1) {
		t.Error("expected type 1 to not be device local")
	}
	if selector.IsDeviceLocal(99) {
		t.Error("expected invalid type to return false")
	}
	if selector.IsHostVisible(0) {
		t.Error("expected type 0 to not be host visible")
	}
	if !selector.IsHostVisible(1) {
		t.Error("expected type 1 to be host visible")
	}
}

func TestUsageFlagsDistinct(t *testing.T) {
	flags := []UsageFlags{UsageFastDeviceAccess, UsageHostAccess, UsageUpload, UsageDownload}
	for i := 0; i < len(flags); i++ {
		for j := i + 1; j < len(flags); j++ {
			if flags[i]&flags[j] != 0 {
				t.Errorf("usage flags %d and %d overlap", i, j)
			}
		}
	}
}
