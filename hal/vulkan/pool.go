// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"sync"

	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
)

// initialCommandBufferBatch and its growth factor match spec.md §4.9's
// "initial 2, doubling" command-buffer pool policy.
const initialCommandBufferBatch = 2

// commandBufferPool owns one native VkCommandPool plus the list of
// allocated-but-idle command buffers drawn from it. The native driver
// requires every vkBeginCommandBuffer/vkCmd*/vkEndCommandBuffer/
// vkResetCommandBuffer touching a pool's buffers to be externally
// synchronized against that same pool, so a commandBufferPool is only
// ever safe for one recording at a time; commandPoolSet below is what
// makes that hold under concurrent callers.
type commandBufferPool struct {
	mu       sync.Mutex
	device   *Device
	handle   vk.CommandPool
	inactive []vk.CommandBuffer
	batch    uint32
}

func newCommandBufferPool(d *Device) (*commandBufferPool, error) {
	handle, res := d.cmds.CreateCommandPool(d.handle, &vk.CommandPoolCreateInfo{
		SType: vk.StructureTypeCommandPoolCreateInfo, QueueFamilyIndex: d.queueFamilyIndex,
	})
	if res != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateCommandPool failed: %v", res)
	}
	return &commandBufferPool{device: d, handle: handle, batch: initialCommandBufferBatch}, nil
}

// acquire pops an idle command buffer, growing the pool (doubling the
// batch size) if none is available, and resets it before returning so
// callers never see stale recorded state (spec.md §4.9 "reset at
// acquisition time").
func (p *commandBufferPool) acquire() (vk.CommandBuffer, error) {
	p.mu.Lock()
	if n := len(p.inactive); n > 0 {
		cb := p.inactive[n-1]
		p.inactive = p.inactive[:n-1]
		p.mu.Unlock()
		p.device.cmds.ResetCommandBuffer(cb)
		return cb, nil
	}
	batch := p.batch
	p.mu.Unlock()

	buffers := make([]vk.CommandBuffer, batch)
	res := p.device.cmds.AllocateCommandBuffers(p.device.handle, &vk.CommandBufferAllocateInfo{
		SType: vk.StructureTypeCommandBufferAllocateInfo, CommandPool: p.handle,
		Level: 0, CommandBufferCount: batch,
	}, &buffers[0])
	if res != vk.Success {
		return 0, fmt.Errorf("vulkan: vkAllocateCommandBuffers failed: %v", res)
	}

	p.mu.Lock()
	p.inactive = append(p.inactive, buffers[1:]...)
	p.batch *= 2
	p.mu.Unlock()

	p.device.cmds.ResetCommandBuffer(buffers[0])
	return buffers[0], nil
}

// release returns cb to the pool's idle list.
func (p *commandBufferPool) release(cb vk.CommandBuffer) {
	p.mu.Lock()
	p.inactive = append(p.inactive, cb)
	p.mu.Unlock()
}

func (p *commandBufferPool) destroy() {
	p.device.cmds.DestroyCommandPool(p.device.handle, p.handle)
}

// commandPoolSet is a free list of commandBufferPool instances, each
// checked out exclusively for the lifetime of one recording (from
// AcquireCommandBuffer through cleanupCommandBuffer). A goroutine that
// holds a checked-out pool is the only caller that will ever touch its
// native VkCommandPool until it's returned, which is what the driver's
// external-synchronization rule for command pools actually requires -
// a mutex around the free list's bookkeeping is not enough on its own,
// since the rule covers vkCmd* and vkEndCommandBuffer too, not just
// allocation (spec.md §4.9 "FetchCommandPool", §9 "per-thread command
// pools avoid resetting command pools across threads").
type commandPoolSet struct {
	mu     sync.Mutex
	device *Device
	idle   []*commandBufferPool
}

func newCommandPoolSet(d *Device) *commandPoolSet {
	return &commandPoolSet{device: d}
}

// acquire checks out an idle pool (or builds a fresh one) and pops a
// reset command buffer from it. The returned pool must come back
// through release once the command buffer it backs is done.
func (s *commandPoolSet) acquire() (vk.CommandBuffer, *commandBufferPool, error) {
	s.mu.Lock()
	var p *commandBufferPool
	if n := len(s.idle); n > 0 {
		p = s.idle[n-1]
		s.idle = s.idle[:n-1]
	}
	s.mu.Unlock()

	if p == nil {
		var err error
		p, err = newCommandBufferPool(s.device)
		if err != nil {
			return 0, nil, err
		}
	}

	cb, err := p.acquire()
	if err != nil {
		s.mu.Lock()
		s.idle = append(s.idle, p)
		s.mu.Unlock()
		return 0, nil, err
	}
	return cb, p, nil
}

// release returns cb to the pool it was acquired from, then returns
// that pool itself to the idle list.
func (s *commandPoolSet) release(p *commandBufferPool, cb vk.CommandBuffer) {
	p.release(cb)
	s.mu.Lock()
	s.idle = append(s.idle, p)
	s.mu.Unlock()
}

func (s *commandPoolSet) destroy() {
	s.mu.Lock()
	idle := s.idle
	s.idle = nil
	s.mu.Unlock()
	for _, p := range idle {
		p.destroy()
	}
}
