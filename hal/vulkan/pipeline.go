// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"sync/atomic"

	"github.com/forgegpu/vkgpu/hal"
	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
	"github.com/forgegpu/vkgpu/types"
)

// ShaderModule is the backend's hal.Shader implementation: a thin
// wrapper over a native shader module plus the descriptor-sizing hints
// its owning pipeline needs (spec.md §3 "opaque native objects wrapped
// with atomic refcounts").
type ShaderModule struct {
	handle vk.ShaderModule
	device *Device

	entryPoint          []byte
	stage               types.ShaderStage
	uniformBufferSize   uint32
	samplerCount        uint32
	storageTextureCount uint32
	storageBufferCount  uint32

	refCount         int32
	markedForDestroy bool
}

func (s *ShaderModule) isShader() {}

// CreateShader implements hal.Device. SPIR-V bytecode flows through to
// vkCreateShaderModule unchanged (spec.md §1 Non-goals).
func (d *Device) CreateShader(descPtr *hal.ShaderDescriptor) (hal.Shader, error) {
	desc := *descPtr
	if len(desc.Code) == 0 || len(desc.Code)%4 != 0 {
		return nil, fmt.Errorf("vulkan: shader code must be a non-empty multiple of 4 bytes")
	}
	info := vk.ShaderModuleCreateInfo{
		SType: vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint64(len(desc.Code)), PCode: ptrOf(&desc.Code[0]),
	}
	handle, res := d.cmds.CreateShaderModule(d.handle, &info)
	if res != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateShaderModule failed: %v", res)
	}
	return &ShaderModule{
		handle: handle, device: d, entryPoint: cBytes(desc.EntryPoint), stage: desc.Stage,
		uniformBufferSize: desc.UniformBufferSize, samplerCount: desc.SamplerCount,
		storageTextureCount: desc.StorageTextureCount, storageBufferCount: desc.StorageBufferCount,
	}, nil
}

// pipelineLayoutKey dedups a PipelineLayout by the identity of its
// descriptor-set-layout handles, per spec.md §3. Unused trailing slots
// (a compute layout uses 3 of 4) are zero.
type pipelineLayoutKey [4]vk.DescriptorSetLayout

type pipelineLayoutEntry struct {
	handle vk.PipelineLayout
	setLayouts []*descriptorSetLayout
}

func (d *Device) fetchPipelineLayout(setLayouts []*descriptorSetLayout) (*pipelineLayoutEntry, error) {
	var key pipelineLayoutKey
	for i, l := range setLayouts {
		key[i] = l.handle
	}

	d.pipelineLayoutMu.Lock()
	if e, ok := d.pipelineLayouts[key]; ok {
		d.pipelineLayoutMu.Unlock()
		return e, nil
	}
	d.pipelineLayoutMu.Unlock()

	handles := make([]vk.DescriptorSetLayout, len(setLayouts))
	for i, l := range setLayouts {
		handles[i] = l.handle
	}
	info := vk.PipelineLayoutCreateInfo{
		SType: vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: uint32(len(handles)), PSetLayouts: ptrOf(&handles[0]),
	}
	handle, res := d.cmds.CreatePipelineLayout(d.handle, &info)
	if res != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreatePipelineLayout failed: %v", res)
	}

	e := &pipelineLayoutEntry{handle: handle, setLayouts: setLayouts}
	d.pipelineLayoutMu.Lock()
	d.pipelineLayouts[key] = e
	d.pipelineLayoutMu.Unlock()
	return e, nil
}

// graphicsDescriptorLayouts builds the fixed 4-set layout spec.md §4.7
// draw path always binds: vertex-samplers, fragment-samplers,
// vertex-UBO-dynamic, fragment-UBO-dynamic. Empty-layout sentinels fill
// any slot the shaders don't use.
func (d *Device) graphicsDescriptorLayouts(vs, fs *ShaderModule) []*descriptorSetLayout {
	vertexSamplers := d.fetchEmptyLayout(vk.ShaderStageVertexBit, vk.DescriptorTypeCombinedImageSampler)
	if vs.samplerCount > 0 {
		vertexSamplers = d.fetchDescriptorSetLayout(vk.DescriptorTypeCombinedImageSampler, vs.samplerCount, vk.ShaderStageVertexBit)
	}
	fragmentSamplers := d.fetchEmptyLayout(vk.ShaderStageFragmentBit, vk.DescriptorTypeCombinedImageSampler)
	if fs.samplerCount > 0 {
		fragmentSamplers = d.fetchDescriptorSetLayout(vk.DescriptorTypeCombinedImageSampler, fs.samplerCount, vk.ShaderStageFragmentBit)
	}
	vertexUBO := d.fetchEmptyLayout(vk.ShaderStageVertexBit, vk.DescriptorTypeUniformBufferDynamic)
	if vs.uniformBufferSize > 0 {
		vertexUBO = d.fetchDescriptorSetLayout(vk.DescriptorTypeUniformBufferDynamic, 1, vk.ShaderStageVertexBit)
	}
	fragmentUBO := d.fetchEmptyLayout(vk.ShaderStageFragmentBit, vk.DescriptorTypeUniformBufferDynamic)
	if fs.uniformBufferSize > 0 {
		fragmentUBO = d.fetchDescriptorSetLayout(vk.DescriptorTypeUniformBufferDynamic, 1, vk.ShaderStageFragmentBit)
	}
	return []*descriptorSetLayout{vertexSamplers, fragmentSamplers, vertexUBO, fragmentUBO}
}

// computeDescriptorLayouts builds compute's 3-set layout: storage
// images, storage buffers, compute-UBO-dynamic (spec.md §4.7 "mirrors
// the above with two sets plus a uniform set").
func (d *Device) computeDescriptorLayouts(cs *ShaderModule) []*descriptorSetLayout {
	storageImages := d.fetchEmptyLayout(vk.ShaderStageComputeBit, vk.DescriptorTypeStorageImage)
	if cs.storageTextureCount > 0 {
		storageImages = d.fetchDescriptorSetLayout(vk.DescriptorTypeStorageImage, cs.storageTextureCount, vk.ShaderStageComputeBit)
	}
	storageBuffers := d.fetchEmptyLayout(vk.ShaderStageComputeBit, vk.DescriptorTypeStorageBuffer)
	if cs.storageBufferCount > 0 {
		storageBuffers = d.fetchDescriptorSetLayout(vk.DescriptorTypeStorageBuffer, cs.storageBufferCount, vk.ShaderStageComputeBit)
	}
	computeUBO := d.fetchEmptyLayout(vk.ShaderStageComputeBit, vk.DescriptorTypeUniformBufferDynamic)
	if cs.uniformBufferSize > 0 {
		computeUBO = d.fetchDescriptorSetLayout(vk.DescriptorTypeUniformBufferDynamic, 1, vk.ShaderStageComputeBit)
	}
	return []*descriptorSetLayout{storageImages, storageBuffers, computeUBO}
}

// GraphicsPipeline is the backend's hal.GraphicsPipeline.
type GraphicsPipeline struct {
	handle   vk.Pipeline
	layout   *pipelineLayoutEntry
	topology vk.PrimitiveTopology

	vertexUBOSize   uint32
	fragmentUBOSize uint32

	colorCount       int
	refCount         int32
	markedForDestroy bool
}

func (p *GraphicsPipeline) isGraphicsPipeline() {}

// CreateGraphicsPipeline implements hal.Device.
func (d *Device) CreateGraphicsPipeline(descPtr *hal.GraphicsPipelineDescriptor) (hal.GraphicsPipeline, error) {
	desc := *descPtr
	vs, ok := desc.VertexShader.(*ShaderModule)
	if !ok {
		return nil, fmt.Errorf("vulkan: vertex shader is not a backend shader")
	}
	fs, ok := desc.FragmentShader.(*ShaderModule)
	if !ok {
		return nil, fmt.Errorf("vulkan: fragment shader is not a backend shader")
	}

	layout, err := d.fetchPipelineLayout(d.graphicsDescriptorLayouts(vs, fs))
	if err != nil {
		return nil, err
	}

	bindings := make([]vk.VertexInputBindingDescription, len(desc.VertexBindings))
	for i, b := range desc.VertexBindings {
		rate := uint32(0)
		if b.PerInstance {
			rate = 1
		}
		bindings[i] = vk.VertexInputBindingDescription{Binding: b.Binding, Stride: b.Stride, InputRate: rate}
	}
	attrs := make([]vk.VertexInputAttributeDescription, len(desc.VertexAttributes))
	for i, a := range desc.VertexAttributes {
		vkFormat, _ := formatToVk(a.Format)
		attrs[i] = vk.VertexInputAttributeDescription{Location: a.Location, Binding: a.Binding, Format: vkFormat, Offset: a.Offset}
	}
	var vertexInput vk.PipelineVertexInputStateCreateInfo
	vertexInput.SType = vk.StructureTypePipelineVertexInputStateCreateInfo
	vertexInput.VertexBindingDescriptionCount = uint32(len(bindings))
	if len(bindings) > 0 {
		vertexInput.PVertexBindingDescriptions = ptrOf(&bindings[0])
	}
	vertexInput.VertexAttributeDescriptionCount = uint32(len(attrs))
	if len(attrs) > 0 {
		vertexInput.PVertexAttributeDescriptions = ptrOf(&attrs[0])
	}

	inputAssembly := vk.PipelineInputAssemblyStateCreateInfo{
		SType: vk.StructureTypePipelineInputAssemblyStateCreateInfo, Topology: topologyToVk(desc.Topology),
	}
	viewportState := vk.PipelineViewportStateCreateInfo{
		SType: vk.StructureTypePipelineViewportStateCreateInfo, ViewportCount: 1, ScissorCount: 1,
	}
	raster := vk.PipelineRasterizationStateCreateInfo{
		SType: vk.StructureTypePipelineRasterizationStateCreateInfo, LineWidth: 1,
	}
	sampleCount := sampleCountToVk(desc.ColorSampleCount)
	multisample := vk.PipelineMultisampleStateCreateInfo{
		SType: vk.StructureTypePipelineMultisampleStateCreateInfo, RasterizationSamples: sampleCount,
	}

	var depthStencilPtr uintptr
	depthStencil := vk.PipelineDepthStencilStateCreateInfo{
		SType: vk.StructureTypePipelineDepthStencilStateCreateInfo,
	}
	if desc.HasDepth {
		depthStencil.DepthTestEnable = 1
		if desc.DepthWriteEnable {
			depthStencil.DepthWriteEnable = 1
		}
		depthStencil.DepthCompareOp = compareOpToVk(desc.DepthCompareOp)
		depthStencilPtr = ptrOf(&depthStencil)
	}

	blendAttachments := make([]vk.PipelineColorBlendAttachmentState, len(desc.ColorFormats))
	for i := range blendAttachments {
		blendAttachments[i].ColorWriteMask = 0xF
	}
	var colorBlend vk.PipelineColorBlendStateCreateInfo
	colorBlend.SType = vk.StructureTypePipelineColorBlendStateCreateInfo
	colorBlend.AttachmentCount = uint32(len(blendAttachments))
	if len(blendAttachments) > 0 {
		colorBlend.PAttachments = ptrOf(&blendAttachments[0])
	}

	dynamicStates := []vk.DynamicState{vk.DynamicStateViewport, vk.DynamicStateScissor}
	dynamicState := vk.PipelineDynamicStateCreateInfo{
		SType: vk.StructureTypePipelineDynamicStateCreateInfo, DynamicStateCount: uint32(len(dynamicStates)), PDynamicStates: ptrOf(&dynamicStates[0]),
	}

	stages := []vk.PipelineShaderStageCreateInfo{
		{SType: vk.StructureTypePipelineShaderStageCreateInfo, Stage: vk.ShaderStageVertexBit, Module: vs.handle, PName: ptrOf(&vs.entryPoint[0])},
		{SType: vk.StructureTypePipelineShaderStageCreateInfo, Stage: vk.ShaderStageFragmentBit, Module: fs.handle, PName: ptrOf(&fs.entryPoint[0])},
	}

	renderPassKey, msaa := colorDepthKeyFromPipelineDesc(desc)
	pass, err := d.fetchRenderPass(renderPassKey, nil, nil, msaa)
	if err != nil {
		return nil, err
	}

	info := vk.GraphicsPipelineCreateInfo{
		SType: vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount: uint32(len(stages)), PStages: ptrOf(&stages[0]),
		PVertexInputState: ptrOf(&vertexInput), PInputAssemblyState: ptrOf(&inputAssembly),
		PViewportState: ptrOf(&viewportState), PRasterizationState: ptrOf(&raster),
		PMultisampleState: ptrOf(&multisample), PDepthStencilState: depthStencilPtr,
		PColorBlendState: ptrOf(&colorBlend), PDynamicState: ptrOf(&dynamicState),
		Layout: layout.handle, RenderPass: pass.handle,
	}
	var pipeline vk.Pipeline
	res := d.cmds.CreateGraphicsPipelines(d.handle, 0, 1, &info, &pipeline)
	if res != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateGraphicsPipelines failed: %v", res)
	}

	return &GraphicsPipeline{
		handle: pipeline, layout: layout, topology: topologyToVk(desc.Topology),
		vertexUBOSize: alignUint32(vs.uniformBufferSize, uint32(d.limits.MinUniformBufferOffsetAlignment)),
		fragmentUBOSize: alignUint32(fs.uniformBufferSize, uint32(d.limits.MinUniformBufferOffsetAlignment)),
		colorCount: len(desc.ColorFormats),
	}, nil
}

// colorDepthKeyFromPipelineDesc builds the render-pass cache key this
// pipeline will be used with. Since the pipeline must be compiled
// against a concrete render pass, a default LOAD/STORE op set is used;
// BeginRenderPass rebuilds the actual key per the caller's load/store
// choices and the two passes share cache entries only when op sets
// happen to match, which is the common case for a single draw target.
func colorDepthKeyFromPipelineDesc(desc hal.GraphicsPipelineDescriptor) (renderPassKey, bool) {
	var key renderPassKey
	key.sampleCount = sampleCountToVk(desc.ColorSampleCount)
	msaa := desc.ColorSampleCount > types.SampleCount1
	for i, f := range desc.ColorFormats {
		if i >= maxColorAttachments {
			break
		}
		vkFormat, _ := formatToVk(f)
		key.colors[i] = colorAttachmentKey{format: vkFormat, loadOp: vk.AttachmentLoadOpClear, storeOp: vk.AttachmentStoreOpStore}
		key.colorCount++
	}
	if desc.HasDepth {
		vkFormat, _ := formatToVk(desc.DepthFormat)
		key.depth = depthAttachmentKey{
			present: true, format: vkFormat,
			depthLoad: uint32(vk.AttachmentLoadOpClear), depthStore: uint32(vk.AttachmentStoreOpStore),
			stencilLoad: uint32(vk.AttachmentLoadOpDontCare), stencilStore: uint32(vk.AttachmentStoreOpDontCare),
		}
	}
	return key, msaa
}

func alignUint32(v, alignment uint32) uint32 {
	if alignment <= 1 {
		return v
	}
	return (v + alignment - 1) &^ (alignment - 1)
}

// ComputePipeline is the backend's hal.ComputePipeline.
type ComputePipeline struct {
	handle         vk.Pipeline
	layout         *pipelineLayoutEntry
	computeUBOSize   uint32
	threadCount      [3]uint32
	refCount         int32
	markedForDestroy bool
}

func (p *ComputePipeline) isComputePipeline() {}

// CreateComputePipeline implements hal.Device.
func (d *Device) CreateComputePipeline(descPtr *hal.ComputePipelineDescriptor) (hal.ComputePipeline, error) {
	desc := *descPtr
	cs, ok := desc.ComputeShader.(*ShaderModule)
	if !ok {
		return nil, fmt.Errorf("vulkan: compute shader is not a backend shader")
	}
	layout, err := d.fetchPipelineLayout(d.computeDescriptorLayouts(cs))
	if err != nil {
		return nil, err
	}

	info := vk.ComputePipelineCreateInfo{
		SType: vk.StructureTypeComputePipelineCreateInfo,
		Stage: vk.PipelineShaderStageCreateInfo{
			SType: vk.StructureTypePipelineShaderStageCreateInfo, Stage: vk.ShaderStageComputeBit,
			Module: cs.handle, PName: ptrOf(&cs.entryPoint[0]),
		},
		Layout: layout.handle,
	}
	var pipeline vk.Pipeline
	res := d.cmds.CreateComputePipelines(d.handle, 0, 1, &info, &pipeline)
	if res != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateComputePipelines failed: %v", res)
	}

	return &ComputePipeline{
		handle: pipeline, layout: layout,
		computeUBOSize: alignUint32(cs.uniformBufferSize, uint32(d.limits.MinUniformBufferOffsetAlignment)),
		threadCount:    [3]uint32{desc.ThreadCountX, desc.ThreadCountY, desc.ThreadCountZ},
	}, nil
}

// ReleaseShader implements hal.Device: marks s for destruction, which
// happens immediately if no in-flight command buffer still references
// it, else at cleanup once its refcount returns to zero (spec.md §3
// "shared by refcount").
func (d *Device) ReleaseShader(shader hal.Shader) {
	s, ok := shader.(*ShaderModule)
	if !ok {
		return
	}
	s.markedForDestroy = true
	if atomic.LoadInt32(&s.refCount) == 0 {
		d.cmds.DestroyShaderModule(d.handle, s.handle)
	}
}

// ReleaseGraphicsPipeline implements hal.Device.
func (d *Device) ReleaseGraphicsPipeline(pipeline hal.GraphicsPipeline) {
	p, ok := pipeline.(*GraphicsPipeline)
	if !ok {
		return
	}
	p.markedForDestroy = true
	if atomic.LoadInt32(&p.refCount) == 0 {
		d.cmds.DestroyPipeline(d.handle, p.handle)
	}
}

// ReleaseComputePipeline implements hal.Device.
func (d *Device) ReleaseComputePipeline(pipeline hal.ComputePipeline) {
	p, ok := pipeline.(*ComputePipeline)
	if !ok {
		return
	}
	p.markedForDestroy = true
	if atomic.LoadInt32(&p.refCount) == 0 {
		d.cmds.DestroyPipeline(d.handle, p.handle)
	}
}

// releaseTrackedGraphicsPipeline decrements a pipeline's refcount at command
// buffer cleanup, destroying it if it was already marked for release.
func (d *Device) releaseTrackedGraphicsPipeline(p *GraphicsPipeline) {
	if atomic.AddInt32(&p.refCount, -1) > 0 || !p.markedForDestroy {
		return
	}
	d.cmds.DestroyPipeline(d.handle, p.handle)
}

func (d *Device) releaseTrackedComputePipeline(p *ComputePipeline) {
	if atomic.AddInt32(&p.refCount, -1) > 0 || !p.markedForDestroy {
		return
	}
	d.cmds.DestroyPipeline(d.handle, p.handle)
}

func (d *Device) releaseTrackedShader(s *ShaderModule) {
	if atomic.AddInt32(&s.refCount, -1) > 0 || !s.markedForDestroy {
		return
	}
	d.cmds.DestroyShaderModule(d.handle, s.handle)
}
