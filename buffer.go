// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkgpu

import "github.com/forgegpu/vkgpu/hal"

// Buffer represents a GPU-visible buffer.
type Buffer struct {
	hal      hal.Buffer
	device   *Device
	released bool
}

// Release destroys the buffer. Safe to call more than once.
func (b *Buffer) Release() {
	if b == nil || b.released {
		return
	}
	b.device.ReleaseBuffer(b)
}
