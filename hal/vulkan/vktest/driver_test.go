// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vktest

import "testing"

func TestNewDeviceConstructsAndDestroys(t *testing.T) {
	device, err := NewDevice()
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}
	if device == nil {
		t.Fatal("NewDevice returned nil device with nil error")
	}
	device.Destroy()
}

func TestNewDeviceAcquireCommandBuffer(t *testing.T) {
	device, err := NewDevice()
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}
	defer device.Destroy()

	cb, err := device.AcquireCommandBuffer()
	if err != nil {
		t.Fatalf("AcquireCommandBuffer: %v", err)
	}
	if err := cb.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}
}

func TestNewDeviceSubmitAndAcquireFence(t *testing.T) {
	device, err := NewDevice()
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}
	defer device.Destroy()

	cb, err := device.AcquireCommandBuffer()
	if err != nil {
		t.Fatalf("AcquireCommandBuffer: %v", err)
	}
	fence, err := cb.SubmitAndAcquireFence()
	if err != nil {
		t.Fatalf("SubmitAndAcquireFence: %v", err)
	}
	if q := fence.Query(); q != 1 {
		t.Fatalf("fence.Query() = %d, want 1 (signaled)", q)
	}
	device.ReleaseFence(fence)
}
