// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkgpu

import "github.com/forgegpu/vkgpu/hal"

// GraphicsPipeline represents a configured graphics pipeline.
type GraphicsPipeline struct {
	hal      hal.GraphicsPipeline
	device   *Device
	released bool
}

// Release destroys the graphics pipeline. Safe to call more than once.
func (p *GraphicsPipeline) Release() {
	if p == nil || p.released {
		return
	}
	p.device.ReleaseGraphicsPipeline(p)
}

// ComputePipeline represents a configured compute pipeline.
type ComputePipeline struct {
	hal      hal.ComputePipeline
	device   *Device
	released bool
}

// Release destroys the compute pipeline. Safe to call more than once.
func (p *ComputePipeline) Release() {
	if p == nil || p.released {
		return
	}
	p.device.ReleaseComputePipeline(p)
}
