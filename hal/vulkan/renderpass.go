// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"

	"github.com/forgegpu/vkgpu/hal"
	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
)

// maxColorAttachments bounds the fixed-size arrays backing the render
// pass and framebuffer cache keys; eight covers every driver this
// backend targets (types.Limits.MaxColorAttachments never exceeds it).
const maxColorAttachments = 8

type colorAttachmentKey struct {
	format  vk.Format
	clear   [4]float32
	loadOp  vk.AttachmentLoadOp
	storeOp vk.AttachmentStoreOp
}

type depthAttachmentKey struct {
	present                          bool
	format                           vk.Format
	depthLoad, depthStore            uint32
	stencilLoad, stencilStore        uint32
}

// renderPassKey hashes every field spec.md §4.6 names: per-color
// format/clear/load/store, sample count, and depth format + four ops.
// The comparison is order-sensitive in color index (a plain array,
// never sorted).
type renderPassKey struct {
	colors      [maxColorAttachments]colorAttachmentKey
	colorCount  int
	sampleCount vk.SampleCountFlagBits
	depth       depthAttachmentKey
}

type renderPassEntry struct {
	handle     vk.RenderPass
	colorCount int
	hasMSAA    bool
	hasDepth   bool
}

// fetchRenderPass returns the cached native render pass for key,
// creating it on first use (spec.md §4.6). color/depth describe the
// attachments in the same order as key.colors.
func (d *Device) fetchRenderPass(key renderPassKey, colors []hal.ColorTargetInfo, depth *hal.DepthStencilTargetInfo, msaa bool) (*renderPassEntry, error) {
	d.renderPassMu.Lock()
	if e, ok := d.renderPasses[key]; ok {
		d.renderPassMu.Unlock()
		return e, nil
	}
	d.renderPassMu.Unlock()

	var attachments []vk.AttachmentDescription
	var colorRefs []vk.AttachmentReference
	var resolveRefs []vk.AttachmentReference
	hasResolve := false

	for i := 0; i < key.colorCount; i++ {
		ck := key.colors[i]
		if msaa {
			// Resolve attachment first (1-sample, store), then the
			// multisample attachment carrying the requested ops
			// (spec.md §4.6).
			attachments = append(attachments, vk.AttachmentDescription{
				Format: ck.format, Samples: vk.SampleCount1Bit,
				LoadOp: vk.AttachmentLoadOpDontCare, StoreOp: vk.AttachmentStoreOpStore,
				InitialLayout: vk.ImageLayoutColorAttachmentOptimal, FinalLayout: vk.ImageLayoutColorAttachmentOptimal,
			})
			resolveRefs = append(resolveRefs, vk.AttachmentReference{Attachment: uint32(len(attachments) - 1), Layout: vk.ImageLayoutColorAttachmentOptimal})
			hasResolve = true
		} else {
			resolveRefs = append(resolveRefs, vk.AttachmentReference{Attachment: vk.AttachmentUnused, Layout: vk.ImageLayoutUndefined})
		}
		attachments = append(attachments, vk.AttachmentDescription{
			Format: ck.format, Samples: key.sampleCount,
			LoadOp: ck.loadOp, StoreOp: ck.storeOp,
			InitialLayout: vk.ImageLayoutColorAttachmentOptimal, FinalLayout: vk.ImageLayoutColorAttachmentOptimal,
		})
		colorRefs = append(colorRefs, vk.AttachmentReference{Attachment: uint32(len(attachments) - 1), Layout: vk.ImageLayoutColorAttachmentOptimal})
	}

	var depthRef vk.AttachmentReference
	hasDepth := key.depth.present
	if hasDepth {
		attachments = append(attachments, vk.AttachmentDescription{
			Format: key.depth.format, Samples: key.sampleCount,
			LoadOp: vk.AttachmentLoadOp(key.depth.depthLoad), StoreOp: vk.AttachmentStoreOp(key.depth.depthStore),
			StencilLoadOp: vk.AttachmentLoadOp(key.depth.stencilLoad), StencilStoreOp: vk.AttachmentStoreOp(key.depth.stencilStore),
			InitialLayout: vk.ImageLayoutDepthStencilAttachmentOptimal, FinalLayout: vk.ImageLayoutDepthStencilAttachmentOptimal,
		})
		depthRef = vk.AttachmentReference{Attachment: uint32(len(attachments) - 1), Layout: vk.ImageLayoutDepthStencilAttachmentOptimal}
	}

	subpass := vk.SubpassDescription{
		PipelineBindPoint: vk.PipelineBindPointGraphics,
		ColorAttachmentCount: uint32(len(colorRefs)),
	}
	if len(colorRefs) > 0 {
		subpass.PColorAttachments = ptrOf(&colorRefs[0])
	}
	if hasResolve {
		subpass.PResolveAttachments = ptrOf(&resolveRefs[0])
	}
	if hasDepth {
		subpass.PDepthStencilAttachment = ptrOf(&depthRef)
	}

	info := vk.RenderPassCreateInfo{
		SType: vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachments)), PAttachments: ptrOf(&attachments[0]),
		SubpassCount: 1, PSubpasses: ptrOf(&subpass),
	}
	handle, res := d.cmds.CreateRenderPass(d.handle, &info)
	if res != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateRenderPass failed: %v", res)
	}

	e := &renderPassEntry{handle: handle, colorCount: key.colorCount, hasMSAA: msaa, hasDepth: hasDepth}
	d.renderPassMu.Lock()
	d.renderPasses[key] = e
	d.renderPassMu.Unlock()
	return e, nil
}

// framebufferKey hashes concrete attachment views, per spec.md §4.6.
type framebufferKey struct {
	views  [maxColorAttachments*2 + 1]vk.ImageView
	count  int
	width  uint32
	height uint32
}

type framebufferEntry struct {
	handle   vk.Framebuffer
	refCount int32
}

// fetchFramebuffer returns the cached, refcounted framebuffer for key,
// incrementing its refcount, creating it against pass on first use.
func (d *Device) fetchFramebuffer(key framebufferKey, pass vk.RenderPass) (*framebufferEntry, error) {
	d.framebufferMu.Lock()
	if e, ok := d.framebuffers[key]; ok {
		e.refCount++
		d.framebufferMu.Unlock()
		return e, nil
	}
	d.framebufferMu.Unlock()

	views := make([]vk.ImageView, key.count)
	copy(views, key.views[:key.count])

	handle, res := d.cmds.CreateFramebuffer(d.handle, &vk.FramebufferCreateInfo{
		SType: vk.StructureTypeFramebufferCreateInfo, RenderPass: pass,
		AttachmentCount: uint32(len(views)), PAttachments: ptrOf(&views[0]),
		Width: key.width, Height: key.height, Layers: 1,
	})
	if res != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateFramebuffer failed: %v", res)
	}

	e := &framebufferEntry{handle: handle, refCount: 1}
	d.framebufferMu.Lock()
	d.framebuffers[key] = e
	d.framebufferMu.Unlock()
	return e, nil
}

// releaseFramebuffer decrements the refcount and queues the
// framebuffer for destroy once every underlying view it was built from
// is gone (spec.md §4.6). The caller is responsible for invoking this
// only once all of a key's backing views have in fact been destroyed;
// the queued destroy runs from drainPendingDestroys below.
func (d *Device) releaseFramebuffer(key framebufferKey) {
	d.framebufferMu.Lock()
	defer d.framebufferMu.Unlock()
	e, ok := d.framebuffers[key]
	if !ok {
		return
	}
	e.refCount--
	if e.refCount <= 0 {
		d.pendingDestroys = append(d.pendingDestroys, func() { d.cmds.DestroyFramebuffer(d.handle, e.handle) })
		delete(d.framebuffers, key)
	}
}

// drainPendingDestroys runs and clears every queued framebuffer
// destruction. Called from submission cleanup, never mid-recording,
// since a pending destroy's framebuffer may still be referenced by a
// command buffer that hasn't yet been submitted.
func (d *Device) drainPendingDestroys() {
	d.framebufferMu.Lock()
	fns := d.pendingDestroys
	d.pendingDestroys = nil
	d.framebufferMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
