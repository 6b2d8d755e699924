// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkgpu_test

import (
	"errors"
	"testing"

	"github.com/forgegpu/vkgpu"
)

// TestCreateDeviceNoDriver documents the no-GPU-environment contract:
// CreateDevice must fail with ErrNoBackends, not panic, when no
// backend's driver probe succeeds.
func TestCreateDeviceNoDriver(t *testing.T) {
	_, err := vkgpu.CreateDevice(vkgpu.BackendsAll, false)
	if !errors.Is(err, vkgpu.ErrNoBackends) {
		t.Fatalf("CreateDevice error = %v, want ErrNoBackends", err)
	}
}

func TestReleaseNilIsNoOp(t *testing.T) {
	var b *vkgpu.Buffer
	b.Release()

	var tex *vkgpu.Texture
	tex.Release()

	var f *vkgpu.Fence
	if q := f.Query(); q != -1 {
		t.Fatalf("nil Fence.Query() = %d, want -1", q)
	}
}
