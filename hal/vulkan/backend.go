// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/forgegpu/vkgpu/hal"
	"github.com/forgegpu/vkgpu/hal/vulkan/memory"
	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
	"github.com/forgegpu/vkgpu/types"
)

func init() {
	hal.RegisterBackend(Backend{})
}

// Backend implements hal.Backend for Vulkan (spec.md §4.9).
type Backend struct{}

// Variant implements hal.Backend.
func (Backend) Variant() types.Backend { return types.BackendVulkan }

// requiredWindowQueueFlags is the queue-family capability mask this
// backend requires: one family must answer graphics, compute, and
// transfer, since command buffers interleave all three without
// switching queues.
const requiredWindowQueueFlags = vk.QueueGraphicsBit | vk.QueueComputeBit | vk.QueueTransferBit

// platformSurfaceExtension names the VK_KHR_*_surface extension this
// OS's native windowing system needs.
func platformSurfaceExtension() string {
	switch runtime.GOOS {
	case "windows":
		return "VK_KHR_win32_surface"
	case "darwin":
		return "VK_EXT_metal_surface"
	default:
		return "VK_KHR_xlib_surface"
	}
}

// PrepareDriver implements hal.Backend: loads the platform Vulkan
// loader, stands up a throwaway instance, and confirms at least one
// physical device exposes a usable queue family, without creating a
// Device or touching any window.
func (Backend) PrepareDriver() bool {
	if err := vk.Init(); err != nil {
		return false
	}
	var cmds vk.Commands
	if err := cmds.LoadGlobal(); err != nil {
		return false
	}
	instance, _, err := createInstance(&cmds, false)
	if err != nil {
		return false
	}
	defer cmds.DestroyInstance(instance)
	if err := cmds.LoadInstance(instance); err != nil {
		return false
	}
	_, _, ok := pickPhysicalDevice(&cmds, instance)
	return ok
}

// CreateDevice implements hal.Backend: creates an instance (with a
// validation layer and debug messenger when debug is set), picks a
// physical device and queue family, creates the logical device, and
// wires up every cache newDevice needs.
func (Backend) CreateDevice(debug bool) (hal.Device, error) {
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("vulkan: %w", err)
	}
	cmds := &vk.Commands{}
	if err := cmds.LoadGlobal(); err != nil {
		return nil, fmt.Errorf("vulkan: %w", err)
	}

	instance, extensions, err := createInstance(cmds, debug)
	if err != nil {
		return nil, err
	}
	if err := cmds.LoadInstance(instance); err != nil {
		cmds.DestroyInstance(instance)
		return nil, fmt.Errorf("vulkan: %w", err)
	}

	var messenger vk.DebugUtilsMessengerEXT
	if debug {
		messenger = createDebugMessenger(cmds, instance)
	}

	physicalDevice, queueFamily, ok := pickPhysicalDevice(cmds, instance)
	if !ok {
		destroyInstanceChain(cmds, instance, messenger)
		return nil, fmt.Errorf("vulkan: no physical device exposes a graphics/compute/transfer queue family")
	}

	handle, err := createLogicalDevice(cmds, physicalDevice, queueFamily)
	if err != nil {
		destroyInstanceChain(cmds, instance, messenger)
		return nil, err
	}
	if err := cmds.LoadDevice(handle); err != nil {
		cmds.DestroyDevice(handle)
		destroyInstanceChain(cmds, instance, messenger)
		return nil, fmt.Errorf("vulkan: %w", err)
	}

	var vkMemProps vk.PhysicalDeviceMemoryProperties
	cmds.GetPhysicalDeviceMemoryProperties(physicalDevice, &vkMemProps)

	var vkLimits vk.PhysicalDeviceLimits
	cmds.GetPhysicalDeviceProperties(physicalDevice, &vkLimits)

	limits := types.Limits{
		MinUniformBufferOffsetAlignment: vkLimits.MinUniformBufferOffsetAlignment,
		MaxTextureDimension2D:           vkLimits.MaxImageDimension2D,
		MaxColorAttachments:             vkLimits.MaxColorAttachments,
		MaxBoundDescriptorSets:          vkLimits.MaxBoundDescriptorSets,
	}
	// OcclusionQuery/TimestampQuery are documented no-ops at this
	// backend's query.go layer regardless of native support; Features
	// stays zero-valued rather than advertising capabilities nothing
	// consumes.
	var features types.Features

	d, err := newDevice(instance, physicalDevice, handle, cmds, queueFamily, limits, features, uint32(vkLimits.FramebufferColorSampleCounts), convertMemoryProperties(&vkMemProps))
	if err != nil {
		cmds.DestroyDevice(handle)
		destroyInstanceChain(cmds, instance, messenger)
		return nil, err
	}
	d.debugMessenger = messenger
	d.instanceExtensions = extensions

	hal.Logger().Info("vulkan: device created", "debug", debug)
	return d, nil
}

func destroyInstanceChain(cmds *vk.Commands, instance vk.Instance, messenger vk.DebugUtilsMessengerEXT) {
	if messenger != 0 {
		cmds.DestroyDebugUtilsMessengerEXT(instance, messenger)
	}
	cmds.DestroyInstance(instance)
}

// createInstance builds a VkInstance requesting VK_KHR_surface plus
// this OS's native surface extension, and, when debug is set,
// VK_LAYER_KHRONOS_validation and VK_EXT_debug_utils. It returns the
// set of extensions actually requested so ClaimWindow can check a
// window's hal.SurfaceProvider.RequiredInstanceExtensions() against
// it before attempting surface creation.
func createInstance(cmds *vk.Commands, debug bool) (vk.Instance, map[string]bool, error) {
	appName := cBytes("vkgpu")
	engineName := cBytes("vkgpu")
	appInfo := vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   ptrOf(&appName[0]),
		ApplicationVersion: 1,
		PEngineName:        ptrOf(&engineName[0]),
		EngineVersion:      1,
		ApiVersion:         vkAPIVersion(1, 2, 0),
	}

	extensions := []string{"VK_KHR_surface", platformSurfaceExtension()}
	var layers []string
	if debug {
		extensions = append(extensions, "VK_EXT_debug_utils")
		layers = append(layers, "VK_LAYER_KHRONOS_validation")
	}

	extBytes := make([][]byte, len(extensions))
	extPtrs := make([]uintptr, len(extensions))
	for i, e := range extensions {
		extBytes[i] = cBytes(e)
		extPtrs[i] = ptrOf(&extBytes[i][0])
	}
	layerBytes := make([][]byte, len(layers))
	layerPtrs := make([]uintptr, len(layers))
	for i, l := range layers {
		layerBytes[i] = cBytes(l)
		layerPtrs[i] = ptrOf(&layerBytes[i][0])
	}

	info := vk.InstanceCreateInfo{
		SType:                 vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:      ptrOf(&appInfo),
		EnabledExtensionCount: uint32(len(extPtrs)),
		EnabledLayerCount:     uint32(len(layerPtrs)),
	}
	if len(extPtrs) > 0 {
		info.PpEnabledExtensionNames = ptrOf(&extPtrs[0])
	}
	if len(layerPtrs) > 0 {
		info.PpEnabledLayerNames = ptrOf(&layerPtrs[0])
	}

	instance, res := cmds.CreateInstance(&info)
	runtime.KeepAlive(appName)
	runtime.KeepAlive(engineName)
	runtime.KeepAlive(extBytes)
	runtime.KeepAlive(extPtrs)
	runtime.KeepAlive(layerBytes)
	runtime.KeepAlive(layerPtrs)
	if res != vk.Success {
		return 0, nil, fmt.Errorf("vulkan: vkCreateInstance failed: %v", res)
	}

	extSet := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		extSet[e] = true
	}
	return instance, extSet, nil
}

// pickPhysicalDevice returns the first physical device exposing a
// queue family that supports requiredWindowQueueFlags.
func pickPhysicalDevice(cmds *vk.Commands, instance vk.Instance) (vk.PhysicalDevice, uint32, bool) {
	var count uint32
	cmds.EnumeratePhysicalDevices(instance, &count, nil)
	if count == 0 {
		return 0, 0, false
	}
	devices := make([]vk.PhysicalDevice, count)
	if res := cmds.EnumeratePhysicalDevices(instance, &count, &devices[0]); res != vk.Success {
		return 0, 0, false
	}

	for _, pd := range devices {
		var famCount uint32
		cmds.GetPhysicalDeviceQueueFamilyProperties(pd, &famCount, nil)
		if famCount == 0 {
			continue
		}
		families := make([]vk.QueueFamilyProperties, famCount)
		cmds.GetPhysicalDeviceQueueFamilyProperties(pd, &famCount, unsafe.Pointer(&families[0]))
		for i, f := range families {
			if f.QueueFlags&requiredWindowQueueFlags == requiredWindowQueueFlags {
				return pd, uint32(i), true
			}
		}
	}
	return 0, 0, false
}

// createLogicalDevice creates a single-queue VkDevice on queueFamily,
// requesting VK_KHR_swapchain and whatever subset of
// vk.PhysicalDeviceFeatures the physical device already reports
// supported (never features it doesn't).
func createLogicalDevice(cmds *vk.Commands, pd vk.PhysicalDevice, queueFamily uint32) (vk.Device, error) {
	priority := float32(1.0)
	queueInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: queueFamily,
		QueueCount:       1,
		PQueuePriorities: ptrOf(&priority),
	}

	var features vk.PhysicalDeviceFeatures
	cmds.GetPhysicalDeviceFeatures(pd, &features)

	extensions := []string{"VK_KHR_swapchain"}
	extBytes := make([][]byte, len(extensions))
	extPtrs := make([]uintptr, len(extensions))
	for i, e := range extensions {
		extBytes[i] = cBytes(e)
		extPtrs[i] = ptrOf(&extBytes[i][0])
	}

	info := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    1,
		PQueueCreateInfos:       ptrOf(&queueInfo),
		EnabledExtensionCount:   uint32(len(extPtrs)),
		PpEnabledExtensionNames: ptrOf(&extPtrs[0]),
		PEnabledFeatures:        ptrOf(&features),
	}

	device, res := cmds.CreateDevice(pd, &info)
	runtime.KeepAlive(extBytes)
	runtime.KeepAlive(extPtrs)
	runtime.KeepAlive(queueInfo)
	if res != vk.Success {
		return 0, fmt.Errorf("vulkan: vkCreateDevice failed: %v", res)
	}
	return device, nil
}

// convertMemoryProperties translates the raw VkPhysicalDeviceMemoryProperties
// arrays into the allocator's own slice-based representation.
func convertMemoryProperties(vkProps *vk.PhysicalDeviceMemoryProperties) memory.DeviceMemoryProperties {
	props := memory.DeviceMemoryProperties{
		MemoryTypes: make([]memory.DeviceMemoryType, vkProps.MemoryTypeCount),
		MemoryHeaps: make([]memory.DeviceMemoryHeap, vkProps.MemoryHeapCount),
	}
	for i := uint32(0); i < vkProps.MemoryTypeCount; i++ {
		props.MemoryTypes[i] = memory.DeviceMemoryType{
			PropertyFlags: vkProps.MemoryTypes[i].PropertyFlags,
			HeapIndex:     vkProps.MemoryTypes[i].HeapIndex,
		}
	}
	for i := uint32(0); i < vkProps.MemoryHeapCount; i++ {
		props.MemoryHeaps[i] = memory.DeviceMemoryHeap{
			Size:  vkProps.MemoryHeaps[i].Size,
			Flags: vkProps.MemoryHeaps[i].Flags,
		}
	}
	return props
}

func vkAPIVersion(major, minor, patch uint32) uint32 {
	return (major << 22) | (minor << 12) | patch
}
