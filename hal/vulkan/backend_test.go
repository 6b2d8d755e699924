// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"testing"

	"github.com/forgegpu/vkgpu/types"
)

func TestBackendVariant(t *testing.T) {
	if got := (Backend{}).Variant(); got != types.BackendVulkan {
		t.Fatalf("Variant() = %v, want BackendVulkan", got)
	}
}

// TestCreateDeviceWithoutDriverFails exercises the real driver-loading
// path on a host with no Vulkan loader installed: it must return an
// error, never panic, matching spec.md §7's "driver absent" case.
func TestCreateDeviceWithoutDriverFails(t *testing.T) {
	_, err := (Backend{}).CreateDevice(false)
	if err == nil {
		t.Fatal("CreateDevice succeeded with no Vulkan driver present")
	}
}

func TestPrepareDriverWithoutDriverFails(t *testing.T) {
	if (Backend{}).PrepareDriver() {
		t.Fatal("PrepareDriver reported true with no Vulkan driver present")
	}
}

func TestVkAPIVersion(t *testing.T) {
	v := vkAPIVersion(1, 2, 0)
	if v>>22 != 1 || (v>>12)&0x3ff != 2 {
		t.Fatalf("vkAPIVersion(1,2,0) = %#x, major/minor mismatch", v)
	}
}
