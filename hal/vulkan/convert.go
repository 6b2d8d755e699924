// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"github.com/forgegpu/vkgpu/hal"
	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
	"github.com/forgegpu/vkgpu/types"
)

// formatTable maps the frontend's uncompressed format set onto the
// native Vulkan formats this binding declares. A zero entry with ok=false
// means the driver has no exact match; formats.go's depth-autopromotion
// and capability-query paths are the only callers allowed to treat that
// as anything but "unsupported".
var formatTable = map[types.TextureFormat]vk.Format{
	types.FormatR8Unorm:           vk.FormatR8Unorm,
	types.FormatR8G8Unorm:         vk.FormatR8G8Unorm,
	types.FormatR8G8B8A8Unorm:     vk.FormatR8G8B8A8Unorm,
	types.FormatR8G8B8A8UnormSrgb: vk.FormatR8G8B8A8Srgb,
	types.FormatB8G8R8A8Unorm:     vk.FormatB8G8R8A8Unorm,
	types.FormatB8G8R8A8UnormSrgb: vk.FormatB8G8R8A8Srgb,
	types.FormatR16Float:          vk.FormatR16Sfloat,
	types.FormatR16G16Float:       vk.FormatR16G16Sfloat,
	types.FormatR16G16B16A16Float: vk.FormatR16G16B16A16Sfloat,
	types.FormatR32Uint:           vk.FormatR32Uint,
	types.FormatR32Sint:           vk.FormatR32Sint,
	types.FormatR32Float:          vk.FormatR32Sfloat,
	types.FormatR32G32Float:       vk.FormatR32G32Sfloat,
	types.FormatR32G32B32A32Float: vk.FormatR32G32B32A32Sfloat,
	types.FormatD16Unorm:          vk.FormatD16Unorm,
	types.FormatD32Float:          vk.FormatD32Sfloat,
	types.FormatD24UnormS8Uint:    vk.FormatD24UnormS8Uint,
	types.FormatD32FloatS8Uint:    vk.FormatD32SfloatS8Uint,
}

var vkToFormatTable = func() map[vk.Format]types.TextureFormat {
	m := make(map[vk.Format]types.TextureFormat, len(formatTable))
	for k, v := range formatTable {
		m[v] = k
	}
	return m
}()

// formatToVk reports the native format backing f, or ok=false when this
// binding declares no equivalent.
func formatToVk(f types.TextureFormat) (vk.Format, bool) {
	v, ok := formatTable[f]
	return v, ok
}

func vkFormatToTextureFormat(f vk.Format) (types.TextureFormat, bool) {
	v, ok := vkToFormatTable[f]
	return v, ok
}

func bufferUsageToVk(u types.BufferUsage) vk.BufferUsageFlags {
	var f vk.BufferUsageFlags
	if u&types.BufferUsageVertex != 0 {
		f |= vk.BufferUsageVertexBufferBit
	}
	if u&types.BufferUsageIndex != 0 {
		f |= vk.BufferUsageIndexBufferBit
	}
	if u&types.BufferUsageIndirect != 0 {
		f |= vk.BufferUsageIndirectBufferBit
	}
	if u&types.BufferUsageUniform != 0 {
		f |= vk.BufferUsageUniformBufferBit
	}
	if u&(types.BufferUsageStorageRead|types.BufferUsageStorageWrite) != 0 {
		f |= vk.BufferUsageStorageBufferBit
	}
	if u&types.BufferUsageCopySrc != 0 {
		f |= vk.BufferUsageTransferSrcBit
	}
	if u&types.BufferUsageCopyDst != 0 {
		f |= vk.BufferUsageTransferDstBit
	}
	// Defrag always needs to copy a resource's full contents into its
	// replacement (spec.md §4.8), so every buffer carries both transfer
	// bits regardless of its declared usage.
	f |= vk.BufferUsageTransferSrcBit | vk.BufferUsageTransferDstBit
	return f
}

func textureUsageToVk(u types.TextureUsage, format types.TextureFormat) vk.ImageUsageFlags {
	var f vk.ImageUsageFlags
	if u&types.TextureUsageSampler != 0 {
		f |= vk.ImageUsageSampledBit
	}
	if u&types.TextureUsageColorTarget != 0 {
		f |= vk.ImageUsageColorAttachmentBit
	}
	if u&types.TextureUsageDepthStencilTarget != 0 || types.IsDepthFormat(format) {
		f |= vk.ImageUsageDepthStencilAttachmentBit
	}
	if u&(types.TextureUsageStorageRead|types.TextureUsageStorageWrite) != 0 {
		f |= vk.ImageUsageStorageBit
	}
	f |= vk.ImageUsageTransferSrcBit | vk.ImageUsageTransferDstBit
	return f
}

func aspectMaskForFormat(format types.TextureFormat) vk.ImageAspectFlags {
	if !types.IsDepthFormat(format) {
		return vk.ImageAspectColorBit
	}
	mask := vk.ImageAspectDepthBit
	if types.HasStencil(format) {
		mask |= vk.ImageAspectStencilBit
	}
	return mask
}

func sampleCountToVk(c types.SampleCount) vk.SampleCountFlagBits {
	switch c {
	case types.SampleCount2:
		return vk.SampleCount2Bit
	case types.SampleCount4:
		return vk.SampleCount4Bit
	case types.SampleCount8:
		return vk.SampleCount8Bit
	default:
		return vk.SampleCount1Bit
	}
}

func loadOpToVk(op types.LoadOp) vk.AttachmentLoadOp {
	switch op {
	case types.LoadOpLoad:
		return vk.AttachmentLoadOpLoad
	case types.LoadOpDontCare:
		return vk.AttachmentLoadOpDontCare
	default:
		return vk.AttachmentLoadOpClear
	}
}

func storeOpToVk(op types.StoreOp) vk.AttachmentStoreOp {
	if op == types.StoreOpDontCare {
		return vk.AttachmentStoreOpDontCare
	}
	return vk.AttachmentStoreOpStore
}

func compareOpToVk(op hal.CompareOp) vk.CompareOp {
	switch op {
	case hal.CompareLess:
		return vk.CompareOpLess
	case hal.CompareEqual:
		return vk.CompareOpEqual
	case hal.CompareLessEqual:
		return vk.CompareOpLessOrEqual
	case hal.CompareGreater:
		return vk.CompareOpGreater
	case hal.CompareNotEqual:
		return vk.CompareOpNotEqual
	case hal.CompareGreaterEqual:
		return vk.CompareOpGreaterOrEqual
	case hal.CompareAlways:
		return vk.CompareOpAlways
	default:
		return vk.CompareOpNever
	}
}

func filterToVk(f hal.Filter) vk.Filter {
	if f == hal.FilterLinear {
		return vk.FilterLinear
	}
	return vk.FilterNearest
}

func mipmapModeToVk(f hal.Filter) vk.SamplerMipmapMode {
	if f == hal.FilterLinear {
		return vk.SamplerMipmapModeLinear
	}
	return vk.SamplerMipmapModeNearest
}

func addressModeToVk(m hal.AddressMode) vk.SamplerAddressMode {
	switch m {
	case hal.AddressModeMirroredRepeat:
		return vk.SamplerAddressModeMirroredRepeat
	case hal.AddressModeClampToEdge:
		return vk.SamplerAddressModeClampToEdge
	default:
		return vk.SamplerAddressModeRepeat
	}
}

func shaderStageToVk(s types.ShaderStage) vk.ShaderStageFlags {
	var f vk.ShaderStageFlags
	if s&types.ShaderStageVertex != 0 {
		f |= vk.ShaderStageVertexBit
	}
	if s&types.ShaderStageFragment != 0 {
		f |= vk.ShaderStageFragmentBit
	}
	if s&types.ShaderStageCompute != 0 {
		f |= vk.ShaderStageComputeBit
	}
	return f
}

func topologyToVk(t types.PrimitiveTopology) vk.PrimitiveTopology {
	switch t {
	case types.TopologyTriangleStrip:
		return vk.PrimitiveTopologyTriangleStrip
	case types.TopologyLineList:
		return vk.PrimitiveTopologyLineList
	case types.TopologyLineStrip:
		return vk.PrimitiveTopologyLineStrip
	case types.TopologyPointList:
		return vk.PrimitiveTopologyPointList
	default:
		return vk.PrimitiveTopologyTriangleList
	}
}

func indexTypeToVk(sz types.IndexElementSize) vk.IndexType {
	if sz == types.IndexElementSize32 {
		return vk.IndexTypeUint32
	}
	return vk.IndexTypeUint16
}

func presentModeToVk(m types.PresentMode) vk.PresentModeKHR {
	switch m {
	case types.PresentModeImmediate:
		return vk.PresentModeImmediateKHR
	case types.PresentModeMailbox:
		return vk.PresentModeMailboxKHR
	default:
		return vk.PresentModeFifoKHR
	}
}
