// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkgpu

import (
	"fmt"

	"github.com/forgegpu/vkgpu/hal"
	_ "github.com/forgegpu/vkgpu/hal/vulkan" // registers the Vulkan backend
)

// Device represents a logical GPU device and every subsystem it owns:
// the memory allocator, descriptor and render-pass caches, the uniform
// pool, and the command-buffer submission pipeline.
//
// Safe for concurrent use, except Destroy which must not race with
// any other method.
type Device struct {
	hal      hal.Device
	released bool
}

// CreateDevice probes the registered backends in compile-time order,
// honoring the VKGPU_BACKEND environment variable override before
// falling back to preferredBackends, and creates a Device on the
// first one with a working driver. debug enables the backend's
// validation/diagnostic layer when supported.
func CreateDevice(preferredBackends uint32, debug bool) (*Device, error) {
	d, err := hal.SelectAndCreateDevice(preferredBackends, debug)
	if err != nil {
		return nil, err
	}
	return &Device{hal: d}, nil
}

func (d *Device) halDevice() hal.Device {
	if d == nil || d.released {
		return nil
	}
	return d.hal
}

// Backend reports which backend created this device.
func (d *Device) Backend() Backend {
	if h := d.halDevice(); h != nil {
		return h.Backend()
	}
	return BackendInvalid
}

// CreateBuffer creates a GPU buffer.
func (d *Device) CreateBuffer(desc *BufferDescriptor) (*Buffer, error) {
	h := d.halDevice()
	if h == nil {
		return nil, ErrReleased
	}
	if desc == nil {
		return nil, ErrNilDescriptor
	}
	b, err := h.CreateBuffer(desc)
	if err != nil {
		return nil, err
	}
	return &Buffer{hal: b, device: d}, nil
}

// CreateTransferBuffer creates a host-visible staging buffer used to
// move data to or from device resources via a copy pass.
func (d *Device) CreateTransferBuffer(desc *TransferBufferDescriptor) (*Buffer, error) {
	h := d.halDevice()
	if h == nil {
		return nil, ErrReleased
	}
	if desc == nil {
		return nil, ErrNilDescriptor
	}
	b, err := h.CreateTransferBuffer(desc)
	if err != nil {
		return nil, err
	}
	return &Buffer{hal: b, device: d}, nil
}

// CreateTexture creates a GPU texture.
func (d *Device) CreateTexture(desc *TextureDescriptor) (*Texture, error) {
	h := d.halDevice()
	if h == nil {
		return nil, ErrReleased
	}
	if desc == nil {
		return nil, ErrNilDescriptor
	}
	t, err := h.CreateTexture(desc)
	if err != nil {
		return nil, err
	}
	return &Texture{hal: t, device: d, format: desc.Format}, nil
}

// CreateSampler creates a texture sampler.
func (d *Device) CreateSampler(desc *SamplerDescriptor) (*Sampler, error) {
	h := d.halDevice()
	if h == nil {
		return nil, ErrReleased
	}
	if desc == nil {
		return nil, ErrNilDescriptor
	}
	s, err := h.CreateSampler(desc)
	if err != nil {
		return nil, err
	}
	return &Sampler{hal: s, device: d}, nil
}

// CreateShader compiles a SPIR-V module. Code flows through to the
// backend unchanged; shader authoring/translation is out of scope.
func (d *Device) CreateShader(desc *ShaderDescriptor) (*Shader, error) {
	h := d.halDevice()
	if h == nil {
		return nil, ErrReleased
	}
	if desc == nil {
		return nil, ErrNilDescriptor
	}
	s, err := h.CreateShader(desc)
	if err != nil {
		return nil, err
	}
	return &Shader{hal: s, device: d}, nil
}

// CreateGraphicsPipeline creates a graphics pipeline.
func (d *Device) CreateGraphicsPipeline(desc *GraphicsPipelineDescriptor) (*GraphicsPipeline, error) {
	h := d.halDevice()
	if h == nil {
		return nil, ErrReleased
	}
	if desc == nil {
		return nil, ErrNilDescriptor
	}
	p, err := h.CreateGraphicsPipeline(desc)
	if err != nil {
		return nil, err
	}
	return &GraphicsPipeline{hal: p, device: d}, nil
}

// CreateComputePipeline creates a compute pipeline.
func (d *Device) CreateComputePipeline(desc *ComputePipelineDescriptor) (*ComputePipeline, error) {
	h := d.halDevice()
	if h == nil {
		return nil, ErrReleased
	}
	if desc == nil {
		return nil, ErrNilDescriptor
	}
	p, err := h.CreateComputePipeline(desc)
	if err != nil {
		return nil, err
	}
	return &ComputePipeline{hal: p, device: d}, nil
}

// CreateOcclusionQuery creates an occlusion query set. Per the source
// spec's open question, this backend keeps the surface as bookkeeping
// only; see hal/vulkan/query.go.
func (d *Device) CreateOcclusionQuery() (*QuerySet, error) {
	h := d.halDevice()
	if h == nil {
		return nil, ErrReleased
	}
	q, err := h.CreateOcclusionQuery()
	if err != nil {
		return nil, err
	}
	return &QuerySet{hal: q, device: d}, nil
}

// SetStringMarker passes a named marker for cmd to the backend. The
// Vulkan backend records nothing for it.
func (d *Device) SetStringMarker(cmd *CommandBuffer, name string) {
	if h := d.halDevice(); h != nil && cmd != nil {
		h.SetStringMarker(cmd.hal, name)
	}
}

// AcquireCommandBuffer pops (or allocates) a command buffer from a
// command pool checked out for it from the device's free list of
// pools, and begins recording.
func (d *Device) AcquireCommandBuffer() (*CommandBuffer, error) {
	h := d.halDevice()
	if h == nil {
		return nil, ErrReleased
	}
	native, err := h.AcquireCommandBuffer()
	if err != nil {
		return nil, err
	}
	return &CommandBuffer{hal: native, device: d}, nil
}

// SupportsSwapchainComposition reports whether w's surface can be
// configured with the given color-space/transfer-function composition.
func (d *Device) SupportsSwapchainComposition(w Window, composition SwapchainComposition) bool {
	h := d.halDevice()
	return h != nil && h.SupportsSwapchainComposition(w, composition)
}

// SupportsPresentMode reports whether w's surface supports mode.
func (d *Device) SupportsPresentMode(w Window, mode PresentMode) bool {
	h := d.halDevice()
	return h != nil && h.SupportsPresentMode(w, mode)
}

// ClaimWindow creates a surface and swapchain for w.
func (d *Device) ClaimWindow(w Window, composition SwapchainComposition, mode PresentMode) error {
	h := d.halDevice()
	if h == nil {
		return ErrReleased
	}
	return h.ClaimWindow(w, composition, mode)
}

// UnclaimWindow destroys w's swapchain and surface.
func (d *Device) UnclaimWindow(w Window) {
	if h := d.halDevice(); h != nil {
		h.UnclaimWindow(w)
	}
}

// SetSwapchainParameters reconfigures an already-claimed window's
// swapchain composition and present mode.
func (d *Device) SetSwapchainParameters(w Window, composition SwapchainComposition, mode PresentMode) error {
	h := d.halDevice()
	if h == nil {
		return ErrReleased
	}
	return h.SetSwapchainParameters(w, composition, mode)
}

// GetSwapchainTextureFormat reports the pixel format of w's swapchain
// images.
func (d *Device) GetSwapchainTextureFormat(w Window) TextureFormat {
	h := d.halDevice()
	if h == nil {
		return 0
	}
	return h.GetSwapchainTextureFormat(w)
}

// AcquireSwapchainTexture acquires the next presentable image for w
// within cmd's recording, returning nil on a minimized window rather
// than erroring.
func (d *Device) AcquireSwapchainTexture(cmd *CommandBuffer, w Window) (tex *Texture, width, height uint32, err error) {
	h := d.halDevice()
	if h == nil || cmd == nil {
		return nil, 0, 0, ErrReleased
	}
	t, width, height, err := h.AcquireSwapchainTexture(cmd.hal, w)
	if err != nil || t == nil {
		return nil, width, height, err
	}
	return &Texture{hal: t, device: d}, width, height, nil
}

// IsTextureFormatSupported reports whether format supports usage on
// this device.
func (d *Device) IsTextureFormatSupported(format TextureFormat, usage TextureUsage) bool {
	h := d.halDevice()
	return h != nil && h.IsTextureFormatSupported(format, usage)
}

// GetBestSampleCount returns the highest sample count format supports
// that does not exceed desired.
func (d *Device) GetBestSampleCount(format TextureFormat, desired SampleCount) SampleCount {
	h := d.halDevice()
	if h == nil {
		return 0
	}
	return h.GetBestSampleCount(format, desired)
}

// TextureFormatTexelBlockSize returns the byte size of one texel block
// of format.
func (d *Device) TextureFormatTexelBlockSize(format TextureFormat) uint32 {
	h := d.halDevice()
	if h == nil {
		return 0
	}
	return h.TextureFormatTexelBlockSize(format)
}

// Wait blocks until the whole device goes idle.
func (d *Device) Wait() {
	if h := d.halDevice(); h != nil {
		h.Wait()
	}
}

// WaitForFences blocks until one (or, if waitAll, every) fence signals.
func (d *Device) WaitForFences(waitAll bool, fences []*Fence) error {
	h := d.halDevice()
	if h == nil {
		return ErrReleased
	}
	native := make([]hal.Fence, len(fences))
	for i, f := range fences {
		native[i] = f.hal
	}
	return h.WaitForFences(waitAll, native)
}

// QueryFence reports a fence's state: 1 signaled, 0 unsignaled, -1 on
// a native query failure.
func (d *Device) QueryFence(f *Fence) int {
	h := d.halDevice()
	if h == nil || f == nil {
		return -1
	}
	return h.QueryFence(f.hal)
}

// ReleaseFence returns a client-owned fence to the backend's pool.
func (d *Device) ReleaseFence(f *Fence) {
	if h := d.halDevice(); h != nil && f != nil {
		h.ReleaseFence(f.hal)
	}
}

// ReleaseBuffer releases a buffer created by this device.
func (d *Device) ReleaseBuffer(b *Buffer) {
	if h := d.halDevice(); h != nil && b != nil && !b.released {
		b.released = true
		h.ReleaseBuffer(b.hal)
	}
}

// ReleaseTexture releases a texture created by this device.
func (d *Device) ReleaseTexture(t *Texture) {
	if h := d.halDevice(); h != nil && t != nil && !t.released {
		t.released = true
		h.ReleaseTexture(t.hal)
	}
}

// ReleaseSampler releases a sampler created by this device.
func (d *Device) ReleaseSampler(s *Sampler) {
	if h := d.halDevice(); h != nil && s != nil && !s.released {
		s.released = true
		h.ReleaseSampler(s.hal)
	}
}

// ReleaseShader releases a shader module created by this device.
func (d *Device) ReleaseShader(s *Shader) {
	if h := d.halDevice(); h != nil && s != nil && !s.released {
		s.released = true
		h.ReleaseShader(s.hal)
	}
}

// ReleaseGraphicsPipeline releases a graphics pipeline created by this
// device.
func (d *Device) ReleaseGraphicsPipeline(p *GraphicsPipeline) {
	if h := d.halDevice(); h != nil && p != nil && !p.released {
		p.released = true
		h.ReleaseGraphicsPipeline(p.hal)
	}
}

// ReleaseComputePipeline releases a compute pipeline created by this
// device.
func (d *Device) ReleaseComputePipeline(p *ComputePipeline) {
	if h := d.halDevice(); h != nil && p != nil && !p.released {
		p.released = true
		h.ReleaseComputePipeline(p.hal)
	}
}

// ReleaseQuerySet releases a query set created by this device.
func (d *Device) ReleaseQuerySet(q *QuerySet) {
	if h := d.halDevice(); h != nil && q != nil && !q.released {
		q.released = true
		h.ReleaseQuerySet(q.hal)
	}
}

// SetBufferName attaches a debug name to b.
func (d *Device) SetBufferName(b *Buffer, name string) {
	if h := d.halDevice(); h != nil && b != nil {
		h.SetBufferName(b.hal, name)
	}
}

// SetTextureName attaches a debug name to t.
func (d *Device) SetTextureName(t *Texture, name string) {
	if h := d.halDevice(); h != nil && t != nil {
		h.SetTextureName(t.hal, name)
	}
}

// MapTransferBuffer maps buf's persistent host-visible memory for CPU
// access, optionally cycling its active handle first.
func (d *Device) MapTransferBuffer(buf *Buffer, cycle bool) ([]byte, error) {
	h := d.halDevice()
	if h == nil || buf == nil {
		return nil, ErrReleased
	}
	return h.MapTransferBuffer(buf.hal, cycle)
}

// UnmapTransferBuffer flushes and unmaps buf.
func (d *Device) UnmapTransferBuffer(buf *Buffer) {
	if h := d.halDevice(); h != nil && buf != nil {
		h.UnmapTransferBuffer(buf.hal)
	}
}

// SetTransferData copies data into buf at offset, optionally cycling
// buf's active handle first.
func (d *Device) SetTransferData(buf *Buffer, data []byte, offset uint64, cycle bool) error {
	h := d.halDevice()
	if h == nil || buf == nil {
		return ErrReleased
	}
	return h.SetTransferData(buf.hal, data, offset, cycle)
}

// GetTransferData reads size bytes from buf starting at offset.
func (d *Device) GetTransferData(buf *Buffer, offset, size uint64) ([]byte, error) {
	h := d.halDevice()
	if h == nil || buf == nil {
		return nil, ErrReleased
	}
	return h.GetTransferData(buf.hal, offset, size)
}

// Destroy waits for outstanding work to quiesce and tears down every
// subsystem this device owns. The Device must not be used afterward.
func (d *Device) Destroy() {
	if d == nil || d.released {
		return
	}
	d.released = true
	d.hal.Destroy()
}

func (d *Device) String() string {
	if d == nil {
		return "<nil device>"
	}
	return fmt.Sprintf("Device(%s)", d.Backend())
}
