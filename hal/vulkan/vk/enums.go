// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

type Result int32

const (
	Success       Result = 0
	NotReady      Result = 1
	Timeout       Result = 2
	EventSet      Result = 3
	EventReset    Result = 4
	Incomplete    Result = 5
	ErrorOutOfHostMemory   Result = -1
	ErrorOutOfDeviceMemory Result = -2
	ErrorInitializationFailed Result = -3
	ErrorDeviceLost        Result = -4
	ErrorMemoryMapFailed   Result = -5
	ErrorSurfaceLostKHR    Result = -1000000000
	ErrorOutOfDateKHR      Result = -1000001004
	SuboptimalKHR          Result = 1000001003
	ErrorNativeWindowInUseKHR Result = -1000000001
	ErrorFragmentedPool    Result = -12
	ErrorOutOfPoolMemory   Result = -1000069000
)

type StructureType uint32

const (
	StructureTypeApplicationInfo StructureType = 0
	StructureTypeInstanceCreateInfo StructureType = 1
	StructureTypeDeviceQueueCreateInfo StructureType = 2
	StructureTypeDeviceCreateInfo StructureType = 3
	StructureTypeSubmitInfo StructureType = 4
	StructureTypeMemoryAllocateInfo StructureType = 5
	StructureTypeFenceCreateInfo StructureType = 8
	StructureTypeSemaphoreCreateInfo StructureType = 9
	StructureTypeBufferCreateInfo StructureType = 12
	StructureTypeBufferViewCreateInfo StructureType = 13
	StructureTypeImageCreateInfo StructureType = 14
	StructureTypeImageViewCreateInfo StructureType = 15
	StructureTypeShaderModuleCreateInfo StructureType = 16
	StructureTypePipelineCacheCreateInfo StructureType = 17
	StructureTypePipelineVertexInputStateCreateInfo StructureType = 18
	StructureTypePipelineInputAssemblyStateCreateInfo StructureType = 19
	StructureTypePipelineViewportStateCreateInfo StructureType = 22
	StructureTypePipelineRasterizationStateCreateInfo StructureType = 23
	StructureTypePipelineMultisampleStateCreateInfo StructureType = 24
	StructureTypePipelineDepthStencilStateCreateInfo StructureType = 25
	StructureTypePipelineColorBlendStateCreateInfo StructureType = 26
	StructureTypePipelineDynamicStateCreateInfo StructureType = 27
	StructureTypeGraphicsPipelineCreateInfo StructureType = 28
	StructureTypeComputePipelineCreateInfo StructureType = 29
	StructureTypePipelineLayoutCreateInfo StructureType = 30
	StructureTypeSamplerCreateInfo StructureType = 31
	StructureTypeDescriptorSetLayoutCreateInfo StructureType = 32
	StructureTypeDescriptorPoolCreateInfo StructureType = 33
	StructureTypeDescriptorSetAllocateInfo StructureType = 34
	StructureTypeWriteDescriptorSet StructureType = 35
	StructureTypeCommandPoolCreateInfo StructureType = 39
	StructureTypeCommandBufferAllocateInfo StructureType = 40
	StructureTypeCommandBufferBeginInfo StructureType = 42
	StructureTypeRenderPassBeginInfo StructureType = 43
	StructureTypeBufferMemoryBarrier StructureType = 44
	StructureTypeImageMemoryBarrier StructureType = 45
	StructureTypeMemoryBarrier StructureType = 46
	StructureTypeFramebufferCreateInfo StructureType = 37
	StructureTypeRenderPassCreateInfo StructureType = 38
	StructureTypeQueryPoolCreateInfo StructureType = 11
	StructureTypeSwapchainCreateInfoKHR StructureType = 1000001000
	StructureTypePresentInfoKHR StructureType = 1000001001
	StructureTypeDebugUtilsMessengerCreateInfoEXT StructureType = 1000128004
	StructureTypeDebugUtilsMessengerCallbackDataEXT StructureType = 1000128003
)

type Format uint32

const (
	FormatUndefined Format = 0
	FormatR8Unorm Format = 9
	FormatR8G8Unorm Format = 16
	FormatR8G8B8A8Unorm Format = 37
	FormatR8G8B8A8Srgb Format = 43
	FormatB8G8R8A8Unorm Format = 44
	FormatB8G8R8A8Srgb Format = 50
	FormatR16Sfloat Format = 76
	FormatR16G16Sfloat Format = 83
	FormatR16G16B16A16Sfloat Format = 97
	FormatR32Uint Format = 98
	FormatR32Sint Format = 99
	FormatR32Sfloat Format = 100
	FormatR32G32Sfloat Format = 103
	FormatR32G32B32A32Sfloat Format = 109
	FormatD16Unorm Format = 124
	FormatD32Sfloat Format = 126
	FormatD24UnormS8Uint Format = 129
	FormatD32SfloatS8Uint Format = 130
)

type ImageLayout uint32

const (
	ImageLayoutUndefined ImageLayout = 0
	ImageLayoutGeneral ImageLayout = 1
	ImageLayoutColorAttachmentOptimal ImageLayout = 2
	ImageLayoutDepthStencilAttachmentOptimal ImageLayout = 3
	ImageLayoutDepthStencilReadOnlyOptimal ImageLayout = 4
	ImageLayoutShaderReadOnlyOptimal ImageLayout = 5
	ImageLayoutTransferSrcOptimal ImageLayout = 6
	ImageLayoutTransferDstOptimal ImageLayout = 7
	ImageLayoutPreinitialized ImageLayout = 8
	ImageLayoutPresentSrcKHR ImageLayout = 1000001002
)

type PipelineStageFlags uint32

const (
	PipelineStageTopOfPipeBit PipelineStageFlags = 1 << 0
	PipelineStageDrawIndirectBit PipelineStageFlags = 1 << 1
	PipelineStageVertexInputBit PipelineStageFlags = 1 << 2
	PipelineStageVertexShaderBit PipelineStageFlags = 1 << 3
	PipelineStageFragmentShaderBit PipelineStageFlags = 1 << 7
	PipelineStageEarlyFragmentTestsBit PipelineStageFlags = 1 << 8
	PipelineStageLateFragmentTestsBit PipelineStageFlags = 1 << 9
	PipelineStageColorAttachmentOutputBit PipelineStageFlags = 1 << 10
	PipelineStageComputeShaderBit PipelineStageFlags = 1 << 11
	PipelineStageTransferBit PipelineStageFlags = 1 << 12
	PipelineStageBottomOfPipeBit PipelineStageFlags = 1 << 13
	PipelineStageHostBit PipelineStageFlags = 1 << 14
)

type AccessFlags uint32

const (
	AccessIndirectCommandReadBit AccessFlags = 1 << 0
	AccessIndexReadBit AccessFlags = 1 << 1
	AccessVertexAttributeReadBit AccessFlags = 1 << 2
	AccessUniformReadBit AccessFlags = 1 << 3
	AccessInputAttachmentReadBit AccessFlags = 1 << 4
	AccessShaderReadBit AccessFlags = 1 << 5
	AccessShaderWriteBit AccessFlags = 1 << 6
	AccessColorAttachmentReadBit AccessFlags = 1 << 7
	AccessColorAttachmentWriteBit AccessFlags = 1 << 8
	AccessDepthStencilAttachmentReadBit AccessFlags = 1 << 9
	AccessDepthStencilAttachmentWriteBit AccessFlags = 1 << 10
	AccessTransferReadBit AccessFlags = 1 << 11
	AccessTransferWriteBit AccessFlags = 1 << 12
	AccessHostReadBit AccessFlags = 1 << 13
	AccessHostWriteBit AccessFlags = 1 << 14
	AccessMemoryReadBit AccessFlags = 1 << 15
	AccessMemoryWriteBit AccessFlags = 1 << 16
)

type BufferUsageFlags uint32

const (
	BufferUsageTransferSrcBit BufferUsageFlags = 1 << 0
	BufferUsageTransferDstBit BufferUsageFlags = 1 << 1
	BufferUsageUniformTexelBufferBit BufferUsageFlags = 1 << 2
	BufferUsageStorageTexelBufferBit BufferUsageFlags = 1 << 3
	BufferUsageUniformBufferBit BufferUsageFlags = 1 << 4
	BufferUsageStorageBufferBit BufferUsageFlags = 1 << 5
	BufferUsageIndexBufferBit BufferUsageFlags = 1 << 6
	BufferUsageVertexBufferBit BufferUsageFlags = 1 << 7
	BufferUsageIndirectBufferBit BufferUsageFlags = 1 << 8
)

type ImageUsageFlags uint32

const (
	ImageUsageTransferSrcBit ImageUsageFlags = 1 << 0
	ImageUsageTransferDstBit ImageUsageFlags = 1 << 1
	ImageUsageSampledBit ImageUsageFlags = 1 << 2
	ImageUsageStorageBit ImageUsageFlags = 1 << 3
	ImageUsageColorAttachmentBit ImageUsageFlags = 1 << 4
	ImageUsageDepthStencilAttachmentBit ImageUsageFlags = 1 << 5
	ImageUsageTransientAttachmentBit ImageUsageFlags = 1 << 6
	ImageUsageInputAttachmentBit ImageUsageFlags = 1 << 7
)

// AttachmentUnused marks a subpass attachment reference as unused,
// mirroring VK_ATTACHMENT_UNUSED.
const AttachmentUnused uint32 = 0xFFFFFFFF

type ImageAspectFlags uint32

const (
	ImageAspectColorBit ImageAspectFlags = 1 << 0
	ImageAspectDepthBit ImageAspectFlags = 1 << 1
	ImageAspectStencilBit ImageAspectFlags = 1 << 2
)

type ImageType uint32

const (
	ImageType1D ImageType = 0
	ImageType2D ImageType = 1
	ImageType3D ImageType = 2
)

type ImageViewType uint32

const (
	ImageViewType1D ImageViewType = 0
	ImageViewType2D ImageViewType = 1
	ImageViewType3D ImageViewType = 2
	ImageViewTypeCube ImageViewType = 3
	ImageViewType2DArray ImageViewType = 5
)

type MemoryPropertyFlags uint32

const (
	MemoryPropertyDeviceLocalBit MemoryPropertyFlags = 1 << 0
	MemoryPropertyHostVisibleBit MemoryPropertyFlags = 1 << 1
	MemoryPropertyHostCoherentBit MemoryPropertyFlags = 1 << 2
	MemoryPropertyHostCachedBit MemoryPropertyFlags = 1 << 3
	MemoryPropertyLazilyAllocatedBit MemoryPropertyFlags = 1 << 4
)

type MemoryHeapFlags uint32

const (
	MemoryHeapDeviceLocalBit MemoryHeapFlags = 1 << 0
)

type SharingMode uint32

const (
	SharingModeExclusive SharingMode = 0
	SharingModeConcurrent SharingMode = 1
)

type SampleCountFlagBits uint32

const (
	SampleCount1Bit SampleCountFlagBits = 1 << 0
	SampleCount2Bit SampleCountFlagBits = 1 << 1
	SampleCount4Bit SampleCountFlagBits = 1 << 2
	SampleCount8Bit SampleCountFlagBits = 1 << 3
)

type AttachmentLoadOp uint32

const (
	AttachmentLoadOpLoad AttachmentLoadOp = 0
	AttachmentLoadOpClear AttachmentLoadOp = 1
	AttachmentLoadOpDontCare AttachmentLoadOp = 2
)

type AttachmentStoreOp uint32

const (
	AttachmentStoreOpStore AttachmentStoreOp = 0
	AttachmentStoreOpDontCare AttachmentStoreOp = 1
)

type PipelineBindPoint uint32

const (
	PipelineBindPointGraphics PipelineBindPoint = 0
	PipelineBindPointCompute PipelineBindPoint = 1
)

type DescriptorType uint32

const (
	DescriptorTypeSampler DescriptorType = 0
	DescriptorTypeCombinedImageSampler DescriptorType = 1
	DescriptorTypeSampledImage DescriptorType = 2
	DescriptorTypeStorageImage DescriptorType = 3
	DescriptorTypeUniformBuffer DescriptorType = 6
	DescriptorTypeStorageBuffer DescriptorType = 7
	DescriptorTypeUniformBufferDynamic DescriptorType = 8
	DescriptorTypeStorageBufferDynamic DescriptorType = 9
)

type DescriptorPoolCreateFlags uint32

const (
	DescriptorPoolCreateFreeDescriptorSetBit DescriptorPoolCreateFlags = 1 << 0
)

type ShaderStageFlags uint32

const (
	ShaderStageVertexBit ShaderStageFlags = 1 << 0
	ShaderStageFragmentBit ShaderStageFlags = 1 << 4
	ShaderStageComputeBit ShaderStageFlags = 1 << 5
)

// DynamicState names a pipeline state left dynamic, set per-command
// instead of baked into the pipeline.
type DynamicState uint32

const (
	DynamicStateViewport DynamicState = 0
	DynamicStateScissor  DynamicState = 1
)

type PrimitiveTopology uint32

const (
	PrimitiveTopologyTriangleList PrimitiveTopology = 3
	PrimitiveTopologyTriangleStrip PrimitiveTopology = 4
	PrimitiveTopologyLineList PrimitiveTopology = 1
	PrimitiveTopologyLineStrip PrimitiveTopology = 2
	PrimitiveTopologyPointList PrimitiveTopology = 0
)

type CompareOp uint32

const (
	CompareOpNever CompareOp = 0
	CompareOpLess CompareOp = 1
	CompareOpEqual CompareOp = 2
	CompareOpLessOrEqual CompareOp = 3
	CompareOpGreater CompareOp = 4
	CompareOpNotEqual CompareOp = 5
	CompareOpGreaterOrEqual CompareOp = 6
	CompareOpAlways CompareOp = 7
)

type Filter uint32

const (
	FilterNearest Filter = 0
	FilterLinear Filter = 1
)

type SamplerMipmapMode uint32

const (
	SamplerMipmapModeNearest SamplerMipmapMode = 0
	SamplerMipmapModeLinear SamplerMipmapMode = 1
)

type SamplerAddressMode uint32

const (
	SamplerAddressModeRepeat SamplerAddressMode = 0
	SamplerAddressModeMirroredRepeat SamplerAddressMode = 1
	SamplerAddressModeClampToEdge SamplerAddressMode = 2
)

type IndexType uint32

const (
	IndexTypeUint16 IndexType = 0
	IndexTypeUint32 IndexType = 1
)

type QueryType uint32

const (
	QueryTypeOcclusion QueryType = 0
	QueryTypeTimestamp QueryType = 2
)

type PresentModeKHR uint32

const (
	PresentModeImmediateKHR PresentModeKHR = 0
	PresentModeMailboxKHR PresentModeKHR = 1
	PresentModeFifoKHR PresentModeKHR = 2
)

type ColorSpaceKHR uint32

const (
	ColorSpaceSRGBNonlinearKHR ColorSpaceKHR = 0
)

type CompositeAlphaFlagsKHR uint32

const (
	CompositeAlphaOpaqueBitKHR CompositeAlphaFlagsKHR = 1 << 0
)

type SurfaceTransformFlagsKHR uint32

const (
	SurfaceTransformIdentityBitKHR SurfaceTransformFlagsKHR = 1 << 0
)

type ObjectType uint32

const (
	ObjectTypeBuffer ObjectType = 9
	ObjectTypeImage ObjectType = 10
	ObjectTypeQueryPool ObjectType = 25
	ObjectTypeCommandBuffer ObjectType = 6
)

type DebugUtilsMessageSeverityFlagBitsEXT uint32

const (
	DebugUtilsMessageSeverityVerboseBitExt DebugUtilsMessageSeverityFlagBitsEXT = 1 << 0
	DebugUtilsMessageSeverityInfoBitExt    DebugUtilsMessageSeverityFlagBitsEXT = 1 << 4
	DebugUtilsMessageSeverityWarningBitExt DebugUtilsMessageSeverityFlagBitsEXT = 1 << 8
	DebugUtilsMessageSeverityErrorBitExt   DebugUtilsMessageSeverityFlagBitsEXT = 1 << 12
)

type DebugUtilsMessageTypeFlagBitsEXT uint32

const (
	DebugUtilsMessageTypeGeneralBitExt     DebugUtilsMessageTypeFlagBitsEXT = 1 << 0
	DebugUtilsMessageTypeValidationBitExt  DebugUtilsMessageTypeFlagBitsEXT = 1 << 1
	DebugUtilsMessageTypePerformanceBitExt DebugUtilsMessageTypeFlagBitsEXT = 1 << 2
)

type QueueFlagBits uint32

const (
	QueueGraphicsBit      QueueFlagBits = 1 << 0
	QueueComputeBit       QueueFlagBits = 1 << 1
	QueueTransferBit      QueueFlagBits = 1 << 2
	QueueSparseBindingBit QueueFlagBits = 1 << 3
)
