// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkgpu

import "github.com/forgegpu/vkgpu/hal"

// Sampler represents a texture sampler.
type Sampler struct {
	hal      hal.Sampler
	device   *Device
	released bool
}

// Release destroys the sampler. Safe to call more than once.
func (s *Sampler) Release() {
	if s == nil || s.released {
		return
	}
	s.device.ReleaseSampler(s)
}
