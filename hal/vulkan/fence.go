// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"sync"

	"github.com/forgegpu/vkgpu/hal"
	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
)

// nativeFence is the backend's hal.Fence implementation, pooled across
// submissions (spec.md §4.7's "return fence to pool unless
// auto_release_fence is false").
type nativeFence struct {
	handle vk.Fence
	device *Device
}

func (f *nativeFence) isFence() {}

// Query implements hal.Fence: 1 signaled, 0 not yet, -1 on a native
// query failure (spec.md §7).
func (f *nativeFence) Query() int {
	switch f.device.cmds.GetFenceStatus(f.device.handle, f.handle) {
	case vk.Success:
		return 1
	case vk.NotReady:
		return 0
	default:
		return -1
	}
}

// fencePool hands out reset, unsignaled native fences, growing lazily.
type fencePool struct {
	mu        sync.Mutex
	device    *Device
	available []*nativeFence
}

func (p *fencePool) acquire() (*nativeFence, error) {
	p.mu.Lock()
	if n := len(p.available); n > 0 {
		f := p.available[n-1]
		p.available = p.available[:n-1]
		p.mu.Unlock()
		return f, nil
	}
	p.mu.Unlock()

	d := p.device
	handle, res := d.cmds.CreateFence(d.handle, false)
	if res != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateFence failed: %v", res)
	}
	return &nativeFence{handle: handle, device: d}, nil
}

// release resets f and returns it to the pool, called once its
// signaled state has been observed and the command buffer it guarded
// has been cleaned up.
func (p *fencePool) release(f *nativeFence) {
	f.device.cmds.ResetFences(f.device.handle, 1, &f.handle)
	p.mu.Lock()
	p.available = append(p.available, f)
	p.mu.Unlock()
}

// WaitForFences implements hal.Device.
func (d *Device) WaitForFences(waitAll bool, fences []hal.Fence) error {
	if len(fences) == 0 {
		return nil
	}
	handles := make([]vk.Fence, len(fences))
	for i, f := range fences {
		nf, ok := f.(*nativeFence)
		if !ok {
			return fmt.Errorf("vulkan: fence is not a backend fence")
		}
		handles[i] = nf.handle
	}
	const noTimeout = ^uint64(0)
	res := d.cmds.WaitForFences(d.handle, uint32(len(handles)), &handles[0], waitAll, noTimeout)
	if res != vk.Success {
		return fmt.Errorf("vulkan: vkWaitForFences failed: %v", res)
	}
	return nil
}

// QueryFence implements hal.Device.
func (d *Device) QueryFence(f hal.Fence) int {
	nf, ok := f.(*nativeFence)
	if !ok {
		return -1
	}
	return nf.Query()
}

// ReleaseFence implements hal.Device: returns f to the device's fence
// pool for reuse.
func (d *Device) ReleaseFence(f hal.Fence) {
	nf, ok := f.(*nativeFence)
	if !ok {
		return
	}
	d.fences.release(nf)
}
