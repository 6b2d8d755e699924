// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"sync/atomic"

	"github.com/forgegpu/vkgpu/hal"
	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
)

// NativeSampler is the backend's hal.Sampler implementation. Samplers
// are immutable once created and shared by refcount like pipelines
// (spec.md §3).
type NativeSampler struct {
	handle vk.Sampler

	refCount         int32
	markedForDestroy bool
}

func (s *NativeSampler) isSampler() {}

// CreateSampler implements hal.Device.
func (d *Device) CreateSampler(descPtr *hal.SamplerDescriptor) (hal.Sampler, error) {
	desc := *descPtr
	info := vk.SamplerCreateInfo{
		SType:         vk.StructureTypeSamplerCreateInfo,
		MagFilter:     filterToVk(desc.MagFilter),
		MinFilter:     filterToVk(desc.MinFilter),
		MipmapMode:    mipmapModeToVk(desc.MipFilter),
		AddressModeU:  addressModeToVk(desc.AddressModeU),
		AddressModeV:  addressModeToVk(desc.AddressModeV),
		AddressModeW:  addressModeToVk(desc.AddressModeW),
		MaxAnisotropy: desc.MaxAnisotropy,
		MinLod:        0,
		MaxLod:        1000,
	}
	if desc.MaxAnisotropy > 1 {
		info.AnisotropyEnable = 1
	}
	if desc.CompareEnable {
		info.CompareEnable = 1
		info.CompareOp = compareOpToVk(desc.CompareOp)
	}
	handle, res := d.cmds.CreateSampler(d.handle, &info)
	if res != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateSampler failed: %v", res)
	}
	return &NativeSampler{handle: handle}, nil
}

// ReleaseSampler implements hal.Device.
func (d *Device) ReleaseSampler(sampler hal.Sampler) {
	s, ok := sampler.(*NativeSampler)
	if !ok {
		return
	}
	s.markedForDestroy = true
	if atomic.LoadInt32(&s.refCount) == 0 {
		d.cmds.DestroySampler(d.handle, s.handle)
	}
}

func (d *Device) releaseTrackedSampler(s *NativeSampler) {
	if atomic.AddInt32(&s.refCount, -1) > 0 || !s.markedForDestroy {
		return
	}
	d.cmds.DestroySampler(d.handle, s.handle)
}
