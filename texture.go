// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkgpu

import "github.com/forgegpu/vkgpu/hal"

// Texture represents a GPU texture.
type Texture struct {
	hal      hal.Texture
	device   *Device
	format   TextureFormat
	released bool
}

// Format returns the texture's pixel format.
func (t *Texture) Format() TextureFormat { return t.format }

// Release destroys the texture. Safe to call more than once.
func (t *Texture) Release() {
	if t == nil || t.released {
		return
	}
	t.device.ReleaseTexture(t)
}
