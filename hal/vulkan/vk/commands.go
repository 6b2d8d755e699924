// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"fmt"
	"unsafe"
)

// Commands holds every Vulkan function pointer this backend resolves,
// loaded in three stages matching the driver's own lifecycle:
//
//  1. LoadGlobal — callable before any VkInstance exists.
//  2. LoadInstance — instance- and physical-device-level functions,
//     plus the VK_KHR_surface and VK_EXT_debug_utils entry points.
//  3. LoadDevice — device- and command-buffer-level functions,
//     plus VK_KHR_swapchain.
//
// Intel's Iris Xe driver returns NULL from
// vkGetInstanceProcAddr(NULL, "vkGetDeviceProcAddr"); LoadInstance
// calls SetDeviceProcAddr to work around it before device functions
// are ever resolved.
type Commands struct {
	// global
	createInstance                        unsafe.Pointer
	enumerateInstanceVersion               unsafe.Pointer
	enumerateInstanceLayerProperties       unsafe.Pointer
	enumerateInstanceExtensionProperties   unsafe.Pointer

	// instance
	destroyInstance                           unsafe.Pointer
	enumeratePhysicalDevices                  unsafe.Pointer
	getPhysicalDeviceProperties               unsafe.Pointer
	getPhysicalDeviceMemoryProperties          unsafe.Pointer
	getPhysicalDeviceQueueFamilyProperties     unsafe.Pointer
	getPhysicalDeviceFeatures                 unsafe.Pointer
	getPhysicalDeviceFormatProperties         unsafe.Pointer
	createDevice                              unsafe.Pointer
	getDeviceQueue                            unsafe.Pointer
	destroySurfaceKHR                         unsafe.Pointer
	getPhysicalDeviceSurfaceSupportKHR         unsafe.Pointer
	getPhysicalDeviceSurfaceCapabilitiesKHR    unsafe.Pointer
	getPhysicalDeviceSurfaceFormatsKHR         unsafe.Pointer
	getPhysicalDeviceSurfacePresentModesKHR    unsafe.Pointer
	createDebugUtilsMessengerEXT              unsafe.Pointer
	destroyDebugUtilsMessengerEXT             unsafe.Pointer

	// device
	destroyDevice               unsafe.Pointer
	deviceWaitIdle               unsafe.Pointer
	queueSubmit                  unsafe.Pointer
	queueWaitIdle                unsafe.Pointer
	queuePresentKHR              unsafe.Pointer
	allocateMemory               unsafe.Pointer
	freeMemory                   unsafe.Pointer
	mapMemory                    unsafe.Pointer
	unmapMemory                  unsafe.Pointer
	bindBufferMemory             unsafe.Pointer
	bindImageMemory              unsafe.Pointer
	getBufferMemoryRequirements  unsafe.Pointer
	getImageMemoryRequirements   unsafe.Pointer
	createBuffer                 unsafe.Pointer
	destroyBuffer                unsafe.Pointer
	createImage                  unsafe.Pointer
	destroyImage                 unsafe.Pointer
	createImageView              unsafe.Pointer
	destroyImageView             unsafe.Pointer
	createSampler                unsafe.Pointer
	destroySampler               unsafe.Pointer
	createShaderModule           unsafe.Pointer
	destroyShaderModule          unsafe.Pointer
	createDescriptorSetLayout    unsafe.Pointer
	destroyDescriptorSetLayout   unsafe.Pointer
	createDescriptorPool         unsafe.Pointer
	destroyDescriptorPool        unsafe.Pointer
	resetDescriptorPool          unsafe.Pointer
	allocateDescriptorSets       unsafe.Pointer
	updateDescriptorSets         unsafe.Pointer
	createPipelineLayout         unsafe.Pointer
	destroyPipelineLayout        unsafe.Pointer
	createGraphicsPipelines      unsafe.Pointer
	createComputePipelines       unsafe.Pointer
	destroyPipeline              unsafe.Pointer
	createRenderPass             unsafe.Pointer
	destroyRenderPass            unsafe.Pointer
	createFramebuffer            unsafe.Pointer
	destroyFramebuffer           unsafe.Pointer
	createCommandPool            unsafe.Pointer
	destroyCommandPool           unsafe.Pointer
	resetCommandPool             unsafe.Pointer
	allocateCommandBuffers       unsafe.Pointer
	freeCommandBuffers           unsafe.Pointer
	beginCommandBuffer           unsafe.Pointer
	endCommandBuffer             unsafe.Pointer
	resetCommandBuffer           unsafe.Pointer
	createFence                  unsafe.Pointer
	destroyFence                 unsafe.Pointer
	resetFences                  unsafe.Pointer
	waitForFences                unsafe.Pointer
	getFenceStatus               unsafe.Pointer
	createSemaphore              unsafe.Pointer
	destroySemaphore             unsafe.Pointer
	createQueryPool              unsafe.Pointer
	destroyQueryPool             unsafe.Pointer
	getQueryPoolResults          unsafe.Pointer
	createSwapchainKHR           unsafe.Pointer
	destroySwapchainKHR          unsafe.Pointer
	getSwapchainImagesKHR        unsafe.Pointer
	acquireNextImageKHR          unsafe.Pointer

	// cmd (device-loaded; recorded against a VkCommandBuffer)
	cmdPipelineBarrier      unsafe.Pointer
	cmdBeginRenderPass      unsafe.Pointer
	cmdEndRenderPass        unsafe.Pointer
	cmdBindPipeline         unsafe.Pointer
	cmdBindVertexBuffers    unsafe.Pointer
	cmdBindIndexBuffer      unsafe.Pointer
	cmdBindDescriptorSets   unsafe.Pointer
	cmdSetViewport          unsafe.Pointer
	cmdSetScissor           unsafe.Pointer
	cmdDraw                 unsafe.Pointer
	cmdDrawIndexed          unsafe.Pointer
	cmdDrawIndirect         unsafe.Pointer
	cmdDrawIndexedIndirect  unsafe.Pointer
	cmdDispatch             unsafe.Pointer
	cmdCopyBuffer           unsafe.Pointer
	cmdCopyBufferToImage    unsafe.Pointer
	cmdCopyImageToBuffer    unsafe.Pointer
	cmdCopyImage            unsafe.Pointer
	cmdBlitImage            unsafe.Pointer
	cmdResetQueryPool       unsafe.Pointer
	cmdBeginQuery           unsafe.Pointer
	cmdEndQuery             unsafe.Pointer
}

func (c *Commands) LoadGlobal() error {
	c.createInstance = GetInstanceProcAddr(0, "vkCreateInstance")
	if c.createInstance == nil {
		return fmt.Errorf("vk: vkCreateInstance not found")
	}
	c.enumerateInstanceVersion = GetInstanceProcAddr(0, "vkEnumerateInstanceVersion")
	c.enumerateInstanceLayerProperties = GetInstanceProcAddr(0, "vkEnumerateInstanceLayerProperties")
	c.enumerateInstanceExtensionProperties = GetInstanceProcAddr(0, "vkEnumerateInstanceExtensionProperties")
	return nil
}

func (c *Commands) LoadInstance(instance Instance) error {
	if instance == 0 {
		return fmt.Errorf("vk: invalid instance handle")
	}
	load := func(name string) unsafe.Pointer { return GetInstanceProcAddr(instance, name) }

	c.destroyInstance = load("vkDestroyInstance")
	c.enumeratePhysicalDevices = load("vkEnumeratePhysicalDevices")
	c.getPhysicalDeviceProperties = load("vkGetPhysicalDeviceProperties")
	c.getPhysicalDeviceMemoryProperties = load("vkGetPhysicalDeviceMemoryProperties")
	c.getPhysicalDeviceQueueFamilyProperties = load("vkGetPhysicalDeviceQueueFamilyProperties")
	c.getPhysicalDeviceFeatures = load("vkGetPhysicalDeviceFeatures")
	c.getPhysicalDeviceFormatProperties = load("vkGetPhysicalDeviceFormatProperties")
	c.createDevice = load("vkCreateDevice")
	c.getDeviceQueue = load("vkGetDeviceQueue")
	c.destroySurfaceKHR = load("vkDestroySurfaceKHR")
	c.getPhysicalDeviceSurfaceSupportKHR = load("vkGetPhysicalDeviceSurfaceSupportKHR")
	c.getPhysicalDeviceSurfaceCapabilitiesKHR = load("vkGetPhysicalDeviceSurfaceCapabilitiesKHR")
	c.getPhysicalDeviceSurfaceFormatsKHR = load("vkGetPhysicalDeviceSurfaceFormatsKHR")
	c.getPhysicalDeviceSurfacePresentModesKHR = load("vkGetPhysicalDeviceSurfacePresentModesKHR")
	c.createDebugUtilsMessengerEXT = load("vkCreateDebugUtilsMessengerEXT")
	c.destroyDebugUtilsMessengerEXT = load("vkDestroyDebugUtilsMessengerEXT")

	if c.createDevice == nil {
		return fmt.Errorf("vk: vkCreateDevice not found")
	}
	SetDeviceProcAddr(instance)
	return nil
}

func (c *Commands) LoadDevice(device Device) error {
	if device == 0 {
		return fmt.Errorf("vk: invalid device handle")
	}
	load := func(name string) unsafe.Pointer { return GetDeviceProcAddr(device, name) }

	c.destroyDevice = load("vkDestroyDevice")
	c.deviceWaitIdle = load("vkDeviceWaitIdle")
	c.queueSubmit = load("vkQueueSubmit")
	c.queueWaitIdle = load("vkQueueWaitIdle")
	c.queuePresentKHR = load("vkQueuePresentKHR")
	c.allocateMemory = load("vkAllocateMemory")
	c.freeMemory = load("vkFreeMemory")
	c.mapMemory = load("vkMapMemory")
	c.unmapMemory = load("vkUnmapMemory")
	c.bindBufferMemory = load("vkBindBufferMemory")
	c.bindImageMemory = load("vkBindImageMemory")
	c.getBufferMemoryRequirements = load("vkGetBufferMemoryRequirements")
	c.getImageMemoryRequirements = load("vkGetImageMemoryRequirements")
	c.createBuffer = load("vkCreateBuffer")
	c.destroyBuffer = load("vkDestroyBuffer")
	c.createImage = load("vkCreateImage")
	c.destroyImage = load("vkDestroyImage")
	c.createImageView = load("vkCreateImageView")
	c.destroyImageView = load("vkDestroyImageView")
	c.createSampler = load("vkCreateSampler")
	c.destroySampler = load("vkDestroySampler")
	c.createShaderModule = load("vkCreateShaderModule")
	c.destroyShaderModule = load("vkDestroyShaderModule")
	c.createDescriptorSetLayout = load("vkCreateDescriptorSetLayout")
	c.destroyDescriptorSetLayout = load("vkDestroyDescriptorSetLayout")
	c.createDescriptorPool = load("vkCreateDescriptorPool")
	c.destroyDescriptorPool = load("vkDestroyDescriptorPool")
	c.resetDescriptorPool = load("vkResetDescriptorPool")
	c.allocateDescriptorSets = load("vkAllocateDescriptorSets")
	c.updateDescriptorSets = load("vkUpdateDescriptorSets")
	c.createPipelineLayout = load("vkCreatePipelineLayout")
	c.destroyPipelineLayout = load("vkDestroyPipelineLayout")
	c.createGraphicsPipelines = load("vkCreateGraphicsPipelines")
	c.createComputePipelines = load("vkCreateComputePipelines")
	c.destroyPipeline = load("vkDestroyPipeline")
	c.createRenderPass = load("vkCreateRenderPass")
	c.destroyRenderPass = load("vkDestroyRenderPass")
	c.createFramebuffer = load("vkCreateFramebuffer")
	c.destroyFramebuffer = load("vkDestroyFramebuffer")
	c.createCommandPool = load("vkCreateCommandPool")
	c.destroyCommandPool = load("vkDestroyCommandPool")
	c.resetCommandPool = load("vkResetCommandPool")
	c.allocateCommandBuffers = load("vkAllocateCommandBuffers")
	c.freeCommandBuffers = load("vkFreeCommandBuffers")
	c.beginCommandBuffer = load("vkBeginCommandBuffer")
	c.endCommandBuffer = load("vkEndCommandBuffer")
	c.resetCommandBuffer = load("vkResetCommandBuffer")
	c.createFence = load("vkCreateFence")
	c.destroyFence = load("vkDestroyFence")
	c.resetFences = load("vkResetFences")
	c.waitForFences = load("vkWaitForFences")
	c.getFenceStatus = load("vkGetFenceStatus")
	c.createSemaphore = load("vkCreateSemaphore")
	c.destroySemaphore = load("vkDestroySemaphore")
	c.createQueryPool = load("vkCreateQueryPool")
	c.destroyQueryPool = load("vkDestroyQueryPool")
	c.getQueryPoolResults = load("vkGetQueryPoolResults")
	c.createSwapchainKHR = load("vkCreateSwapchainKHR")
	c.destroySwapchainKHR = load("vkDestroySwapchainKHR")
	c.getSwapchainImagesKHR = load("vkGetSwapchainImagesKHR")
	c.acquireNextImageKHR = load("vkAcquireNextImageKHR")

	c.cmdPipelineBarrier = load("vkCmdPipelineBarrier")
	c.cmdBeginRenderPass = load("vkCmdBeginRenderPass")
	c.cmdEndRenderPass = load("vkCmdEndRenderPass")
	c.cmdBindPipeline = load("vkCmdBindPipeline")
	c.cmdBindVertexBuffers = load("vkCmdBindVertexBuffers")
	c.cmdBindIndexBuffer = load("vkCmdBindIndexBuffer")
	c.cmdBindDescriptorSets = load("vkCmdBindDescriptorSets")
	c.cmdSetViewport = load("vkCmdSetViewport")
	c.cmdSetScissor = load("vkCmdSetScissor")
	c.cmdDraw = load("vkCmdDraw")
	c.cmdDrawIndexed = load("vkCmdDrawIndexed")
	c.cmdDrawIndirect = load("vkCmdDrawIndirect")
	c.cmdDrawIndexedIndirect = load("vkCmdDrawIndexedIndirect")
	c.cmdDispatch = load("vkCmdDispatch")
	c.cmdCopyBuffer = load("vkCmdCopyBuffer")
	c.cmdCopyBufferToImage = load("vkCmdCopyBufferToImage")
	c.cmdCopyImageToBuffer = load("vkCmdCopyImageToBuffer")
	c.cmdCopyImage = load("vkCmdCopyImage")
	c.cmdBlitImage = load("vkCmdBlitImage")
	c.cmdResetQueryPool = load("vkCmdResetQueryPool")
	c.cmdBeginQuery = load("vkCmdBeginQuery")
	c.cmdEndQuery = load("vkCmdEndQuery")

	if c.createBuffer == nil || c.cmdDraw == nil {
		return fmt.Errorf("vk: core device functions failed to load")
	}
	return nil
}

// LoadFake populates c's proc table from procs, keyed by the same
// Vulkan function names LoadGlobal/LoadInstance/LoadDevice resolve via
// the real loader. A name absent from procs leaves that field nil.
// This is the injection point a fake driver (vktest) uses in place of
// dlopen'ing a real libvulkan: build procs with ffi.NewCallback
// trampolines and call LoadFake once instead of LoadGlobal/LoadInstance/LoadDevice.
func (c *Commands) LoadFake(procs map[string]unsafe.Pointer) {
	fields := map[string]*unsafe.Pointer{
		"vkCreateInstance":                        &c.createInstance,
		"vkEnumerateInstanceVersion":               &c.enumerateInstanceVersion,
		"vkEnumerateInstanceLayerProperties":       &c.enumerateInstanceLayerProperties,
		"vkEnumerateInstanceExtensionProperties":   &c.enumerateInstanceExtensionProperties,
		"vkDestroyInstance":                        &c.destroyInstance,
		"vkEnumeratePhysicalDevices":               &c.enumeratePhysicalDevices,
		"vkGetPhysicalDeviceProperties":            &c.getPhysicalDeviceProperties,
		"vkGetPhysicalDeviceMemoryProperties":      &c.getPhysicalDeviceMemoryProperties,
		"vkGetPhysicalDeviceQueueFamilyProperties": &c.getPhysicalDeviceQueueFamilyProperties,
		"vkGetPhysicalDeviceFeatures":              &c.getPhysicalDeviceFeatures,
		"vkGetPhysicalDeviceFormatProperties":      &c.getPhysicalDeviceFormatProperties,
		"vkCreateDevice":                           &c.createDevice,
		"vkGetDeviceQueue":                         &c.getDeviceQueue,
		"vkDestroySurfaceKHR":                      &c.destroySurfaceKHR,
		"vkGetPhysicalDeviceSurfaceSupportKHR":      &c.getPhysicalDeviceSurfaceSupportKHR,
		"vkGetPhysicalDeviceSurfaceCapabilitiesKHR": &c.getPhysicalDeviceSurfaceCapabilitiesKHR,
		"vkGetPhysicalDeviceSurfaceFormatsKHR":      &c.getPhysicalDeviceSurfaceFormatsKHR,
		"vkGetPhysicalDeviceSurfacePresentModesKHR": &c.getPhysicalDeviceSurfacePresentModesKHR,
		"vkCreateDebugUtilsMessengerEXT":            &c.createDebugUtilsMessengerEXT,
		"vkDestroyDebugUtilsMessengerEXT":           &c.destroyDebugUtilsMessengerEXT,
		"vkDestroyDevice":                           &c.destroyDevice,
		"vkDeviceWaitIdle":                          &c.deviceWaitIdle,
		"vkQueueSubmit":                              &c.queueSubmit,
		"vkQueueWaitIdle":                            &c.queueWaitIdle,
		"vkQueuePresentKHR":                          &c.queuePresentKHR,
		"vkAllocateMemory":                           &c.allocateMemory,
		"vkFreeMemory":                               &c.freeMemory,
		"vkMapMemory":                                &c.mapMemory,
		"vkUnmapMemory":                              &c.unmapMemory,
		"vkBindBufferMemory":                         &c.bindBufferMemory,
		"vkBindImageMemory":                          &c.bindImageMemory,
		"vkGetBufferMemoryRequirements":               &c.getBufferMemoryRequirements,
		"vkGetImageMemoryRequirements":                &c.getImageMemoryRequirements,
		"vkCreateBuffer":                              &c.createBuffer,
		"vkDestroyBuffer":                             &c.destroyBuffer,
		"vkCreateImage":                               &c.createImage,
		"vkDestroyImage":                              &c.destroyImage,
		"vkCreateImageView":                           &c.createImageView,
		"vkDestroyImageView":                          &c.destroyImageView,
		"vkCreateSampler":                             &c.createSampler,
		"vkDestroySampler":                            &c.destroySampler,
		"vkCreateShaderModule":                        &c.createShaderModule,
		"vkDestroyShaderModule":                       &c.destroyShaderModule,
		"vkCreateDescriptorSetLayout":                 &c.createDescriptorSetLayout,
		"vkDestroyDescriptorSetLayout":                &c.destroyDescriptorSetLayout,
		"vkCreateDescriptorPool":                      &c.createDescriptorPool,
		"vkDestroyDescriptorPool":                     &c.destroyDescriptorPool,
		"vkResetDescriptorPool":                       &c.resetDescriptorPool,
		"vkAllocateDescriptorSets":                    &c.allocateDescriptorSets,
		"vkUpdateDescriptorSets":                      &c.updateDescriptorSets,
		"vkCreatePipelineLayout":                      &c.createPipelineLayout,
		"vkDestroyPipelineLayout":                     &c.destroyPipelineLayout,
		"vkCreateGraphicsPipelines":                   &c.createGraphicsPipelines,
		"vkCreateComputePipelines":                    &c.createComputePipelines,
		"vkDestroyPipeline":                           &c.destroyPipeline,
		"vkCreateRenderPass":                          &c.createRenderPass,
		"vkDestroyRenderPass":                         &c.destroyRenderPass,
		"vkCreateFramebuffer":                         &c.createFramebuffer,
		"vkDestroyFramebuffer":                        &c.destroyFramebuffer,
		"vkCreateCommandPool":                         &c.createCommandPool,
		"vkDestroyCommandPool":                        &c.destroyCommandPool,
		"vkResetCommandPool":                          &c.resetCommandPool,
		"vkAllocateCommandBuffers":                    &c.allocateCommandBuffers,
		"vkFreeCommandBuffers":                        &c.freeCommandBuffers,
		"vkBeginCommandBuffer":                        &c.beginCommandBuffer,
		"vkEndCommandBuffer":                          &c.endCommandBuffer,
		"vkResetCommandBuffer":                        &c.resetCommandBuffer,
		"vkCreateFence":                               &c.createFence,
		"vkDestroyFence":                              &c.destroyFence,
		"vkResetFences":                               &c.resetFences,
		"vkWaitForFences":                             &c.waitForFences,
		"vkGetFenceStatus":                            &c.getFenceStatus,
		"vkCreateSemaphore":                           &c.createSemaphore,
		"vkDestroySemaphore":                          &c.destroySemaphore,
		"vkCreateQueryPool":                           &c.createQueryPool,
		"vkDestroyQueryPool":                          &c.destroyQueryPool,
		"vkGetQueryPoolResults":                       &c.getQueryPoolResults,
		"vkCreateSwapchainKHR":                        &c.createSwapchainKHR,
		"vkDestroySwapchainKHR":                       &c.destroySwapchainKHR,
		"vkGetSwapchainImagesKHR":                     &c.getSwapchainImagesKHR,
		"vkAcquireNextImageKHR":                       &c.acquireNextImageKHR,
		"vkCmdPipelineBarrier":                        &c.cmdPipelineBarrier,
		"vkCmdBeginRenderPass":                        &c.cmdBeginRenderPass,
		"vkCmdEndRenderPass":                          &c.cmdEndRenderPass,
		"vkCmdBindPipeline":                           &c.cmdBindPipeline,
		"vkCmdBindVertexBuffers":                      &c.cmdBindVertexBuffers,
		"vkCmdBindIndexBuffer":                        &c.cmdBindIndexBuffer,
		"vkCmdBindDescriptorSets":                     &c.cmdBindDescriptorSets,
		"vkCmdSetViewport":                            &c.cmdSetViewport,
		"vkCmdSetScissor":                             &c.cmdSetScissor,
		"vkCmdDraw":                                   &c.cmdDraw,
		"vkCmdDrawIndexed":                            &c.cmdDrawIndexed,
		"vkCmdDrawIndirect":                           &c.cmdDrawIndirect,
		"vkCmdDrawIndexedIndirect":                    &c.cmdDrawIndexedIndirect,
		"vkCmdDispatch":                               &c.cmdDispatch,
		"vkCmdCopyBuffer":                             &c.cmdCopyBuffer,
		"vkCmdCopyBufferToImage":                      &c.cmdCopyBufferToImage,
		"vkCmdCopyImageToBuffer":                      &c.cmdCopyImageToBuffer,
		"vkCmdCopyImage":                              &c.cmdCopyImage,
		"vkCmdBlitImage":                              &c.cmdBlitImage,
		"vkCmdResetQueryPool":                         &c.cmdResetQueryPool,
		"vkCmdBeginQuery":                             &c.cmdBeginQuery,
		"vkCmdEndQuery":                               &c.cmdEndQuery,
	}
	for name, slot := range fields {
		*slot = procs[name]
	}
}

// --- instance-level wrappers ---

func (c *Commands) CreateInstance(info *InstanceCreateInfo) (Instance, Result) {
	var out Instance
	var res int32
	allocator := unsafe.Pointer(nil)
	args := []unsafe.Pointer{ptrArg(&info), ptrArg(&allocator), ptrArg(&out)}
	_ = callVK("rppp", c.createInstance, unsafe.Pointer(&res), args...)
	return out, Result(res)
}

func (c *Commands) DestroyInstance(instance Instance) {
	allocator := unsafe.Pointer(nil)
	_ = callVK("vhp", c.destroyInstance, nil, ptrArg(&instance), ptrArg(&allocator))
}

func (c *Commands) EnumeratePhysicalDevices(instance Instance, count *uint32, devices *PhysicalDevice) Result {
	var res int32
	_ = callVK("rhpp", c.enumeratePhysicalDevices, unsafe.Pointer(&res), ptrArg(&instance), ptrArg(&count), ptrArg(&devices))
	return Result(res)
}

func (c *Commands) GetPhysicalDeviceProperties(pd PhysicalDevice, out *PhysicalDeviceLimits) {
	_ = callVK("vhp", c.getPhysicalDeviceProperties, nil, ptrArg(&pd), ptrArg(&out))
}

func (c *Commands) GetPhysicalDeviceMemoryProperties(pd PhysicalDevice, out *PhysicalDeviceMemoryProperties) {
	_ = callVK("vhp", c.getPhysicalDeviceMemoryProperties, nil, ptrArg(&pd), ptrArg(&out))
}

func (c *Commands) GetPhysicalDeviceQueueFamilyProperties(pd PhysicalDevice, count *uint32, out unsafe.Pointer) {
	_ = callVK("vhpp", c.getPhysicalDeviceQueueFamilyProperties, nil, ptrArg(&pd), ptrArg(&count), ptrArg(&out))
}

func (c *Commands) CreateDevice(pd PhysicalDevice, info *DeviceCreateInfo) (Device, Result) {
	var out Device
	var res int32
	allocator := unsafe.Pointer(nil)
	_ = callVK("rhppp", c.createDevice, unsafe.Pointer(&res), ptrArg(&pd), ptrArg(&info), ptrArg(&allocator), ptrArg(&out))
	return out, Result(res)
}

func (c *Commands) GetDeviceQueue(device Device, familyIndex, queueIndex uint32) Queue {
	var out Queue
	_ = callVK("vhuup", c.getDeviceQueue, nil, ptrArg(&device), ptrArg(&familyIndex), ptrArg(&queueIndex), ptrArg(&out))
	return out
}

func (c *Commands) GetPhysicalDeviceSurfaceSupportKHR(pd PhysicalDevice, family uint32, surface SurfaceKHR) (bool, Result) {
	var supported Bool32
	var res int32
	_ = callVK("rhupp", c.getPhysicalDeviceSurfaceSupportKHR, unsafe.Pointer(&res), ptrArg(&pd), ptrArg(&family), ptrArg(&surface), ptrArg(&supported))
	return supported == True, Result(res)
}

func (c *Commands) GetPhysicalDeviceSurfaceCapabilitiesKHR(pd PhysicalDevice, surface SurfaceKHR, out *SurfaceCapabilitiesKHR) Result {
	var res int32
	_ = callVK("rhpp", c.getPhysicalDeviceSurfaceCapabilitiesKHR, unsafe.Pointer(&res), ptrArg(&pd), ptrArg(&surface), ptrArg(&out))
	return Result(res)
}

func (c *Commands) GetPhysicalDeviceSurfaceFormatsKHR(pd PhysicalDevice, surface SurfaceKHR, count *uint32, formats *SurfaceFormatKHR) Result {
	var res int32
	_ = callVK("rhhpp", c.getPhysicalDeviceSurfaceFormatsKHR, unsafe.Pointer(&res), ptrArg(&pd), ptrArg(&surface), ptrArg(&count), ptrArg(&formats))
	return Result(res)
}

func (c *Commands) GetPhysicalDeviceSurfacePresentModesKHR(pd PhysicalDevice, surface SurfaceKHR, count *uint32, modes *PresentModeKHR) Result {
	var res int32
	_ = callVK("rhhpp", c.getPhysicalDeviceSurfacePresentModesKHR, unsafe.Pointer(&res), ptrArg(&pd), ptrArg(&surface), ptrArg(&count), ptrArg(&modes))
	return Result(res)
}

func (c *Commands) DestroySurfaceKHR(instance Instance, surface SurfaceKHR) {
	allocator := unsafe.Pointer(nil)
	_ = callVK("vhhp", c.destroySurfaceKHR, nil, ptrArg(&instance), ptrArg(&surface), ptrArg(&allocator))
}

func (c *Commands) GetPhysicalDeviceFeatures(pd PhysicalDevice, out *PhysicalDeviceFeatures) {
	_ = callVK("vhp", c.getPhysicalDeviceFeatures, nil, ptrArg(&pd), ptrArg(&out))
}

func (c *Commands) CreateDebugUtilsMessengerEXT(instance Instance, info *DebugUtilsMessengerCreateInfoEXT) (DebugUtilsMessengerEXT, Result) {
	var out DebugUtilsMessengerEXT
	var res int32
	allocator := unsafe.Pointer(nil)
	_ = callVK("rhppp", c.createDebugUtilsMessengerEXT, unsafe.Pointer(&res), ptrArg(&instance), ptrArg(&info), ptrArg(&allocator), ptrArg(&out))
	return out, Result(res)
}

func (c *Commands) DestroyDebugUtilsMessengerEXT(instance Instance, messenger DebugUtilsMessengerEXT) {
	allocator := unsafe.Pointer(nil)
	_ = callVK("vhhp", c.destroyDebugUtilsMessengerEXT, nil, ptrArg(&instance), ptrArg(&messenger), ptrArg(&allocator))
}

// --- device-level wrappers ---

func (c *Commands) DestroyDevice(device Device) {
	allocator := unsafe.Pointer(nil)
	_ = callVK("vhp", c.destroyDevice, nil, ptrArg(&device), ptrArg(&allocator))
}

func (c *Commands) DeviceWaitIdle(device Device) Result {
	var res int32
	_ = callVK("rh", c.deviceWaitIdle, unsafe.Pointer(&res), ptrArg(&device))
	return Result(res)
}

func (c *Commands) QueueSubmit(queue Queue, count uint32, submits *SubmitInfo, fence Fence) Result {
	var res int32
	_ = callVK("rhuph", c.queueSubmit, unsafe.Pointer(&res), ptrArg(&queue), ptrArg(&count), ptrArg(&submits), ptrArg(&fence))
	return Result(res)
}

func (c *Commands) QueuePresentKHR(queue Queue, info *PresentInfoKHR) Result {
	var res int32
	_ = callVK("rhp", c.queuePresentKHR, unsafe.Pointer(&res), ptrArg(&queue), ptrArg(&info))
	return Result(res)
}

func (c *Commands) AllocateMemory(device Device, info *MemoryAllocateInfo) (DeviceMemory, Result) {
	var out DeviceMemory
	var res int32
	allocator := unsafe.Pointer(nil)
	_ = callVK("rhppp", c.allocateMemory, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&info), ptrArg(&allocator), ptrArg(&out))
	return out, Result(res)
}

func (c *Commands) FreeMemory(device Device, mem DeviceMemory) {
	allocator := unsafe.Pointer(nil)
	_ = callVK("vhhp", c.freeMemory, nil, ptrArg(&device), ptrArg(&mem), ptrArg(&allocator))
}

func (c *Commands) MapMemory(device Device, mem DeviceMemory, offset, size uint64) (unsafe.Pointer, Result) {
	var out unsafe.Pointer
	var res int32
	var flags uint32
	_ = callVK("rhhhhup", c.mapMemory, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&mem), ptrArg(&offset), ptrArg(&size), ptrArg(&flags), ptrArg(&out))
	return out, Result(res)
}

func (c *Commands) UnmapMemory(device Device, mem DeviceMemory) {
	_ = callVK("vhh", c.unmapMemory, nil, ptrArg(&device), ptrArg(&mem))
}

func (c *Commands) BindBufferMemory(device Device, buf Buffer, mem DeviceMemory, offset uint64) Result {
	var res int32
	_ = callVK("rhhhh", c.bindBufferMemory, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&buf), ptrArg(&mem), ptrArg(&offset))
	return Result(res)
}

func (c *Commands) BindImageMemory(device Device, img Image, mem DeviceMemory, offset uint64) Result {
	var res int32
	_ = callVK("rhhhh", c.bindImageMemory, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&img), ptrArg(&mem), ptrArg(&offset))
	return Result(res)
}

func (c *Commands) GetBufferMemoryRequirements(device Device, buf Buffer, out *MemoryRequirements) {
	_ = callVK("vhhp", c.getBufferMemoryRequirements, nil, ptrArg(&device), ptrArg(&buf), ptrArg(&out))
}

func (c *Commands) GetImageMemoryRequirements(device Device, img Image, out *MemoryRequirements) {
	_ = callVK("vhhp", c.getImageMemoryRequirements, nil, ptrArg(&device), ptrArg(&img), ptrArg(&out))
}

func (c *Commands) CreateBuffer(device Device, info *BufferCreateInfo) (Buffer, Result) {
	var out Buffer
	var res int32
	allocator := unsafe.Pointer(nil)
	_ = callVK("rhppp", c.createBuffer, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&info), ptrArg(&allocator), ptrArg(&out))
	return out, Result(res)
}

func (c *Commands) DestroyBuffer(device Device, buf Buffer) {
	allocator := unsafe.Pointer(nil)
	_ = callVK("vhhp", c.destroyBuffer, nil, ptrArg(&device), ptrArg(&buf), ptrArg(&allocator))
}

func (c *Commands) CreateImage(device Device, info *ImageCreateInfo) (Image, Result) {
	var out Image
	var res int32
	allocator := unsafe.Pointer(nil)
	_ = callVK("rhppp", c.createImage, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&info), ptrArg(&allocator), ptrArg(&out))
	return out, Result(res)
}

func (c *Commands) DestroyImage(device Device, img Image) {
	allocator := unsafe.Pointer(nil)
	_ = callVK("vhhp", c.destroyImage, nil, ptrArg(&device), ptrArg(&img), ptrArg(&allocator))
}

func (c *Commands) CreateImageView(device Device, info *ImageViewCreateInfo) (ImageView, Result) {
	var out ImageView
	var res int32
	allocator := unsafe.Pointer(nil)
	_ = callVK("rhppp", c.createImageView, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&info), ptrArg(&allocator), ptrArg(&out))
	return out, Result(res)
}

func (c *Commands) DestroyImageView(device Device, view ImageView) {
	allocator := unsafe.Pointer(nil)
	_ = callVK("vhhp", c.destroyImageView, nil, ptrArg(&device), ptrArg(&view), ptrArg(&allocator))
}

func (c *Commands) CreateSampler(device Device, info *SamplerCreateInfo) (Sampler, Result) {
	var out Sampler
	var res int32
	allocator := unsafe.Pointer(nil)
	_ = callVK("rhppp", c.createSampler, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&info), ptrArg(&allocator), ptrArg(&out))
	return out, Result(res)
}

func (c *Commands) DestroySampler(device Device, s Sampler) {
	allocator := unsafe.Pointer(nil)
	_ = callVK("vhhp", c.destroySampler, nil, ptrArg(&device), ptrArg(&s), ptrArg(&allocator))
}

func (c *Commands) CreateShaderModule(device Device, info *ShaderModuleCreateInfo) (ShaderModule, Result) {
	var out ShaderModule
	var res int32
	allocator := unsafe.Pointer(nil)
	_ = callVK("rhppp", c.createShaderModule, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&info), ptrArg(&allocator), ptrArg(&out))
	return out, Result(res)
}

func (c *Commands) DestroyShaderModule(device Device, m ShaderModule) {
	allocator := unsafe.Pointer(nil)
	_ = callVK("vhhp", c.destroyShaderModule, nil, ptrArg(&device), ptrArg(&m), ptrArg(&allocator))
}

func (c *Commands) CreateDescriptorSetLayout(device Device, info *DescriptorSetLayoutCreateInfo) (DescriptorSetLayout, Result) {
	var out DescriptorSetLayout
	var res int32
	allocator := unsafe.Pointer(nil)
	_ = callVK("rhppp", c.createDescriptorSetLayout, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&info), ptrArg(&allocator), ptrArg(&out))
	return out, Result(res)
}

func (c *Commands) DestroyDescriptorSetLayout(device Device, l DescriptorSetLayout) {
	allocator := unsafe.Pointer(nil)
	_ = callVK("vhhp", c.destroyDescriptorSetLayout, nil, ptrArg(&device), ptrArg(&l), ptrArg(&allocator))
}

func (c *Commands) CreateDescriptorPool(device Device, info *DescriptorPoolCreateInfo) (DescriptorPool, Result) {
	var out DescriptorPool
	var res int32
	allocator := unsafe.Pointer(nil)
	_ = callVK("rhppp", c.createDescriptorPool, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&info), ptrArg(&allocator), ptrArg(&out))
	return out, Result(res)
}

func (c *Commands) DestroyDescriptorPool(device Device, p DescriptorPool) {
	allocator := unsafe.Pointer(nil)
	_ = callVK("vhhp", c.destroyDescriptorPool, nil, ptrArg(&device), ptrArg(&p), ptrArg(&allocator))
}

func (c *Commands) ResetDescriptorPool(device Device, p DescriptorPool) Result {
	var res int32
	var flags uint32
	_ = callVK("rhhu", c.resetDescriptorPool, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&p), ptrArg(&flags))
	return Result(res)
}

func (c *Commands) AllocateDescriptorSets(device Device, info *DescriptorSetAllocateInfo, out *DescriptorSet) Result {
	var res int32
	_ = callVK("rhpp", c.allocateDescriptorSets, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&info), ptrArg(&out))
	return Result(res)
}

func (c *Commands) UpdateDescriptorSets(device Device, writeCount uint32, writes *WriteDescriptorSet, copyCount uint32, copies unsafe.Pointer) {
	_ = callVK("vhupup", c.updateDescriptorSets, nil, ptrArg(&device), ptrArg(&writeCount), ptrArg(&writes), ptrArg(&copyCount), ptrArg(&copies))
}

func (c *Commands) CreatePipelineLayout(device Device, info *PipelineLayoutCreateInfo) (PipelineLayout, Result) {
	var out PipelineLayout
	var res int32
	allocator := unsafe.Pointer(nil)
	_ = callVK("rhppp", c.createPipelineLayout, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&info), ptrArg(&allocator), ptrArg(&out))
	return out, Result(res)
}

func (c *Commands) DestroyPipelineLayout(device Device, l PipelineLayout) {
	allocator := unsafe.Pointer(nil)
	_ = callVK("vhhp", c.destroyPipelineLayout, nil, ptrArg(&device), ptrArg(&l), ptrArg(&allocator))
}

func (c *Commands) CreateGraphicsPipelines(device Device, cache PipelineCache, count uint32, infos *GraphicsPipelineCreateInfo, out *Pipeline) Result {
	var res int32
	allocator := unsafe.Pointer(nil)
	_ = callVK("rhhuppp", c.createGraphicsPipelines, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&cache), ptrArg(&count), ptrArg(&infos), ptrArg(&allocator), ptrArg(&out))
	return Result(res)
}

func (c *Commands) CreateComputePipelines(device Device, cache PipelineCache, count uint32, infos *ComputePipelineCreateInfo, out *Pipeline) Result {
	var res int32
	allocator := unsafe.Pointer(nil)
	_ = callVK("rhhuppp", c.createComputePipelines, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&cache), ptrArg(&count), ptrArg(&infos), ptrArg(&allocator), ptrArg(&out))
	return Result(res)
}

func (c *Commands) DestroyPipeline(device Device, p Pipeline) {
	allocator := unsafe.Pointer(nil)
	_ = callVK("vhhp", c.destroyPipeline, nil, ptrArg(&device), ptrArg(&p), ptrArg(&allocator))
}

func (c *Commands) CreateRenderPass(device Device, info *RenderPassCreateInfo) (RenderPass, Result) {
	var out RenderPass
	var res int32
	allocator := unsafe.Pointer(nil)
	_ = callVK("rhppp", c.createRenderPass, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&info), ptrArg(&allocator), ptrArg(&out))
	return out, Result(res)
}

func (c *Commands) DestroyRenderPass(device Device, rp RenderPass) {
	allocator := unsafe.Pointer(nil)
	_ = callVK("vhhp", c.destroyRenderPass, nil, ptrArg(&device), ptrArg(&rp), ptrArg(&allocator))
}

func (c *Commands) CreateFramebuffer(device Device, info *FramebufferCreateInfo) (Framebuffer, Result) {
	var out Framebuffer
	var res int32
	allocator := unsafe.Pointer(nil)
	_ = callVK("rhppp", c.createFramebuffer, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&info), ptrArg(&allocator), ptrArg(&out))
	return out, Result(res)
}

func (c *Commands) DestroyFramebuffer(device Device, fb Framebuffer) {
	allocator := unsafe.Pointer(nil)
	_ = callVK("vhhp", c.destroyFramebuffer, nil, ptrArg(&device), ptrArg(&fb), ptrArg(&allocator))
}

func (c *Commands) CreateCommandPool(device Device, info *CommandPoolCreateInfo) (CommandPool, Result) {
	var out CommandPool
	var res int32
	allocator := unsafe.Pointer(nil)
	_ = callVK("rhppp", c.createCommandPool, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&info), ptrArg(&allocator), ptrArg(&out))
	return out, Result(res)
}

func (c *Commands) DestroyCommandPool(device Device, p CommandPool) {
	allocator := unsafe.Pointer(nil)
	_ = callVK("vhhp", c.destroyCommandPool, nil, ptrArg(&device), ptrArg(&p), ptrArg(&allocator))
}

func (c *Commands) ResetCommandPool(device Device, p CommandPool) Result {
	var res int32
	var flags uint32
	_ = callVK("rhhu", c.resetCommandPool, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&p), ptrArg(&flags))
	return Result(res)
}

func (c *Commands) AllocateCommandBuffers(device Device, info *CommandBufferAllocateInfo, out *CommandBuffer) Result {
	var res int32
	_ = callVK("rhpp", c.allocateCommandBuffers, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&info), ptrArg(&out))
	return Result(res)
}

func (c *Commands) FreeCommandBuffers(device Device, pool CommandPool, count uint32, buffers *CommandBuffer) {
	_ = callVK("vhhup", c.freeCommandBuffers, nil, ptrArg(&device), ptrArg(&pool), ptrArg(&count), ptrArg(&buffers))
}

func (c *Commands) BeginCommandBuffer(cb CommandBuffer, info *CommandBufferBeginInfo) Result {
	var res int32
	_ = callVK("rhp", c.beginCommandBuffer, unsafe.Pointer(&res), ptrArg(&cb), ptrArg(&info))
	return Result(res)
}

func (c *Commands) EndCommandBuffer(cb CommandBuffer) Result {
	var res int32
	_ = callVK("rh", c.endCommandBuffer, unsafe.Pointer(&res), ptrArg(&cb))
	return Result(res)
}

func (c *Commands) ResetCommandBuffer(cb CommandBuffer) Result {
	var res int32
	var flags uint32
	_ = callVK("rhu", c.resetCommandBuffer, unsafe.Pointer(&res), ptrArg(&cb), ptrArg(&flags))
	return Result(res)
}

func (c *Commands) CreateFence(device Device, signaled bool) (Fence, Result) {
	flags := uint32(0)
	if signaled {
		flags = 1
	}
	info := FenceCreateInfo{SType: StructureTypeFenceCreateInfo, Flags: flags}
	var out Fence
	var res int32
	allocator := unsafe.Pointer(nil)
	_ = callVK("rhppp", c.createFence, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&info), ptrArg(&allocator), ptrArg(&out))
	return out, Result(res)
}

func (c *Commands) DestroyFence(device Device, f Fence) {
	allocator := unsafe.Pointer(nil)
	_ = callVK("vhhp", c.destroyFence, nil, ptrArg(&device), ptrArg(&f), ptrArg(&allocator))
}

func (c *Commands) ResetFences(device Device, count uint32, fences *Fence) Result {
	var res int32
	_ = callVK("rhup", c.resetFences, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&count), ptrArg(&fences))
	return Result(res)
}

func (c *Commands) WaitForFences(device Device, count uint32, fences *Fence, waitAll bool, timeout uint64) Result {
	var res int32
	all := Bool32(0)
	if waitAll {
		all = True
	}
	_ = callVK("rhupuh", c.waitForFences, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&count), ptrArg(&fences), ptrArg(&all), ptrArg(&timeout))
	return Result(res)
}

func (c *Commands) GetFenceStatus(device Device, f Fence) Result {
	var res int32
	_ = callVK("rhh", c.getFenceStatus, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&f))
	return Result(res)
}

func (c *Commands) CreateSemaphore(device Device) (Semaphore, Result) {
	info := SemaphoreCreateInfo{SType: StructureTypeSemaphoreCreateInfo}
	var out Semaphore
	var res int32
	allocator := unsafe.Pointer(nil)
	_ = callVK("rhppp", c.createSemaphore, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&info), ptrArg(&allocator), ptrArg(&out))
	return out, Result(res)
}

func (c *Commands) DestroySemaphore(device Device, s Semaphore) {
	allocator := unsafe.Pointer(nil)
	_ = callVK("vhhp", c.destroySemaphore, nil, ptrArg(&device), ptrArg(&s), ptrArg(&allocator))
}

func (c *Commands) CreateQueryPool(device Device, info *QueryPoolCreateInfo) (QueryPool, Result) {
	var out QueryPool
	var res int32
	allocator := unsafe.Pointer(nil)
	_ = callVK("rhppp", c.createQueryPool, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&info), ptrArg(&allocator), ptrArg(&out))
	return out, Result(res)
}

func (c *Commands) DestroyQueryPool(device Device, p QueryPool) {
	allocator := unsafe.Pointer(nil)
	_ = callVK("vhhp", c.destroyQueryPool, nil, ptrArg(&device), ptrArg(&p), ptrArg(&allocator))
}

func (c *Commands) GetQueryPoolResults(device Device, pool QueryPool, first, count uint32, dataSize uint64, data unsafe.Pointer, stride uint64, flags uint32) Result {
	var res int32
	_ = callVK("rhhuuhphu", c.getQueryPoolResults, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&pool), ptrArg(&first), ptrArg(&count), ptrArg(&dataSize), ptrArg(&data), ptrArg(&stride), ptrArg(&flags))
	return Result(res)
}

func (c *Commands) CreateSwapchainKHR(device Device, info *SwapchainCreateInfoKHR) (SwapchainKHR, Result) {
	var out SwapchainKHR
	var res int32
	allocator := unsafe.Pointer(nil)
	_ = callVK("rhppp", c.createSwapchainKHR, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&info), ptrArg(&allocator), ptrArg(&out))
	return out, Result(res)
}

func (c *Commands) DestroySwapchainKHR(device Device, sc SwapchainKHR) {
	allocator := unsafe.Pointer(nil)
	_ = callVK("vhhp", c.destroySwapchainKHR, nil, ptrArg(&device), ptrArg(&sc), ptrArg(&allocator))
}

func (c *Commands) GetSwapchainImagesKHR(device Device, sc SwapchainKHR, count *uint32, images *Image) Result {
	var res int32
	_ = callVK("rhhpp", c.getSwapchainImagesKHR, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&sc), ptrArg(&count), ptrArg(&images))
	return Result(res)
}

func (c *Commands) AcquireNextImageKHR(device Device, sc SwapchainKHR, timeout uint64, semaphore Semaphore, fence Fence, index *uint32) Result {
	var res int32
	_ = callVK("rhhhhhp", c.acquireNextImageKHR, unsafe.Pointer(&res), ptrArg(&device), ptrArg(&sc), ptrArg(&timeout), ptrArg(&semaphore), ptrArg(&fence), ptrArg(&index))
	return Result(res)
}

// --- command recording ---

func (c *Commands) CmdPipelineBarrier(cb CommandBuffer, src, dst uint32, memBarrierCount uint32, memBarriers unsafe.Pointer, bufBarrierCount uint32, bufBarriers unsafe.Pointer, imgBarrierCount uint32, imgBarriers unsafe.Pointer) {
	var zero uint32
	_ = callVK("vhuuuupupup", c.cmdPipelineBarrier, nil,
		ptrArg(&cb), ptrArg(&src), ptrArg(&dst), ptrArg(&zero),
		ptrArg(&memBarrierCount), ptrArg(&memBarriers),
		ptrArg(&bufBarrierCount), ptrArg(&bufBarriers),
		ptrArg(&imgBarrierCount), ptrArg(&imgBarriers))
}

func (c *Commands) CmdBeginRenderPass(cb CommandBuffer, info *RenderPassBeginInfo, inline bool) {
	var contents uint32
	if !inline {
		contents = 1
	}
	_ = callVK("vhpu", c.cmdBeginRenderPass, nil, ptrArg(&cb), ptrArg(&info), ptrArg(&contents))
}

func (c *Commands) CmdEndRenderPass(cb CommandBuffer) {
	_ = callVK("vh", c.cmdEndRenderPass, nil, ptrArg(&cb))
}

func (c *Commands) CmdBindPipeline(cb CommandBuffer, bindPoint uint32, pipeline Pipeline) {
	_ = callVK("vhuh", c.cmdBindPipeline, nil, ptrArg(&cb), ptrArg(&bindPoint), ptrArg(&pipeline))
}

func (c *Commands) CmdBindVertexBuffers(cb CommandBuffer, first, count uint32, buffers *Buffer, offsets *uint64) {
	_ = callVK("vhuupp", c.cmdBindVertexBuffers, nil, ptrArg(&cb), ptrArg(&first), ptrArg(&count), ptrArg(&buffers), ptrArg(&offsets))
}

func (c *Commands) CmdBindIndexBuffer(cb CommandBuffer, buf Buffer, offset uint64, indexType uint32) {
	_ = callVK("vhhhu", c.cmdBindIndexBuffer, nil, ptrArg(&cb), ptrArg(&buf), ptrArg(&offset), ptrArg(&indexType))
}

func (c *Commands) CmdBindDescriptorSets(cb CommandBuffer, bindPoint uint32, layout PipelineLayout, first, count uint32, sets *DescriptorSet, dynCount uint32, dynOffsets *uint32) {
	_ = callVK("vhuhuupup", c.cmdBindDescriptorSets, nil, ptrArg(&cb), ptrArg(&bindPoint), ptrArg(&layout), ptrArg(&first), ptrArg(&count), ptrArg(&sets), ptrArg(&dynCount), ptrArg(&dynOffsets))
}

func (c *Commands) CmdSetViewport(cb CommandBuffer, first, count uint32, viewports *Viewport) {
	_ = callVK("vhuup", c.cmdSetViewport, nil, ptrArg(&cb), ptrArg(&first), ptrArg(&count), ptrArg(&viewports))
}

func (c *Commands) CmdSetScissor(cb CommandBuffer, first, count uint32, scissors *Rect2D) {
	_ = callVK("vhuup", c.cmdSetScissor, nil, ptrArg(&cb), ptrArg(&first), ptrArg(&count), ptrArg(&scissors))
}

func (c *Commands) CmdDraw(cb CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	_ = callVK("vhuuuu", c.cmdDraw, nil, ptrArg(&cb), ptrArg(&vertexCount), ptrArg(&instanceCount), ptrArg(&firstVertex), ptrArg(&firstInstance))
}

func (c *Commands) CmdDrawIndexed(cb CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	_ = callVK("vhuuuiu", c.cmdDrawIndexed, nil, ptrArg(&cb), ptrArg(&indexCount), ptrArg(&instanceCount), ptrArg(&firstIndex), ptrArg(&vertexOffset), ptrArg(&firstInstance))
}

func (c *Commands) CmdDrawIndirect(cb CommandBuffer, buf Buffer, offset uint64, count, stride uint32) {
	_ = callVK("vhhhuu", c.cmdDrawIndirect, nil, ptrArg(&cb), ptrArg(&buf), ptrArg(&offset), ptrArg(&count), ptrArg(&stride))
}

func (c *Commands) CmdDrawIndexedIndirect(cb CommandBuffer, buf Buffer, offset uint64, count, stride uint32) {
	_ = callVK("vhhhuu", c.cmdDrawIndexedIndirect, nil, ptrArg(&cb), ptrArg(&buf), ptrArg(&offset), ptrArg(&count), ptrArg(&stride))
}

func (c *Commands) CmdDispatch(cb CommandBuffer, x, y, z uint32) {
	_ = callVK("vhuuu", c.cmdDispatch, nil, ptrArg(&cb), ptrArg(&x), ptrArg(&y), ptrArg(&z))
}

func (c *Commands) CmdCopyBuffer(cb CommandBuffer, src, dst Buffer, count uint32, regions *BufferCopy) {
	_ = callVK("vhhhup", c.cmdCopyBuffer, nil, ptrArg(&cb), ptrArg(&src), ptrArg(&dst), ptrArg(&count), ptrArg(&regions))
}

func (c *Commands) CmdCopyBufferToImage(cb CommandBuffer, src Buffer, dst Image, layout uint32, count uint32, regions *BufferImageCopy) {
	_ = callVK("vhhhuup", c.cmdCopyBufferToImage, nil, ptrArg(&cb), ptrArg(&src), ptrArg(&dst), ptrArg(&layout), ptrArg(&count), ptrArg(&regions))
}

func (c *Commands) CmdCopyImageToBuffer(cb CommandBuffer, src Image, layout uint32, dst Buffer, count uint32, regions *BufferImageCopy) {
	_ = callVK("vhhuhup", c.cmdCopyImageToBuffer, nil, ptrArg(&cb), ptrArg(&src), ptrArg(&layout), ptrArg(&dst), ptrArg(&count), ptrArg(&regions))
}

func (c *Commands) CmdCopyImage(cb CommandBuffer, src Image, srcLayout uint32, dst Image, dstLayout uint32, count uint32, regions *ImageCopy) {
	_ = callVK("vhhuhuup", c.cmdCopyImage, nil, ptrArg(&cb), ptrArg(&src), ptrArg(&srcLayout), ptrArg(&dst), ptrArg(&dstLayout), ptrArg(&count), ptrArg(&regions))
}

func (c *Commands) CmdBlitImage(cb CommandBuffer, src Image, srcLayout uint32, dst Image, dstLayout uint32, count uint32, regions *ImageBlit, filter uint32) {
	_ = callVK("vhhuhuupu", c.cmdBlitImage, nil, ptrArg(&cb), ptrArg(&src), ptrArg(&srcLayout), ptrArg(&dst), ptrArg(&dstLayout), ptrArg(&count), ptrArg(&regions), ptrArg(&filter))
}

func (c *Commands) CmdResetQueryPool(cb CommandBuffer, pool QueryPool, first, count uint32) {
	_ = callVK("vhhuu", c.cmdResetQueryPool, nil, ptrArg(&cb), ptrArg(&pool), ptrArg(&first), ptrArg(&count))
}

func (c *Commands) CmdBeginQuery(cb CommandBuffer, pool QueryPool, query uint32) {
	var flags uint32
	_ = callVK("vhhuu", c.cmdBeginQuery, nil, ptrArg(&cb), ptrArg(&pool), ptrArg(&query), ptrArg(&flags))
}

func (c *Commands) CmdEndQuery(cb CommandBuffer, pool QueryPool, query uint32) {
	_ = callVK("vhhu", c.cmdEndQuery, nil, ptrArg(&cb), ptrArg(&pool), ptrArg(&query))
}
