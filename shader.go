// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkgpu

import "github.com/forgegpu/vkgpu/hal"

// Shader represents a compiled SPIR-V shader module.
type Shader struct {
	hal      hal.Shader
	device   *Device
	released bool
}

// Release destroys the shader module. Safe to call more than once.
func (s *Shader) Release() {
	if s == nil || s.released {
		return
	}
	s.device.ReleaseShader(s)
}
