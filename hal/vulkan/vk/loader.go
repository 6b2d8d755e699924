// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

var (
	vulkanLib             unsafe.Pointer
	vkGetInstanceProcAddr unsafe.Pointer
	vkGetDeviceProcAddr   unsafe.Pointer
	cifGetProcAddr        types.CallInterface

	initOnce sync.Once
	initErr  error
)

func libraryName() string {
	switch runtime.GOOS {
	case "windows":
		return "vulkan-1.dll"
	case "darwin":
		return "libvulkan.dylib" // via MoltenVK
	default:
		return "libvulkan.so.1"
	}
}

// Init loads the platform Vulkan loader library. Safe to call more
// than once; only the first call does work.
func Init() error {
	initOnce.Do(func() {
		initErr = doInit()
	})
	return initErr
}

func doInit() error {
	lib, err := ffi.LoadLibrary(libraryName())
	if err != nil {
		return fmt.Errorf("vk: failed to load %s: %w", libraryName(), err)
	}
	vulkanLib = lib

	vkGetInstanceProcAddr, err = ffi.GetSymbol(vulkanLib, "vkGetInstanceProcAddr")
	if err != nil {
		return fmt.Errorf("vk: vkGetInstanceProcAddr not found: %w", err)
	}

	// PFN_vkVoidFunction(VkInstance, const char*) — also used for
	// vkGetDeviceProcAddr, whose device arg happens to share the same
	// 64-bit handle shape as VkInstance on the wire.
	if err := ffi.PrepareCallInterface(&cifGetProcAddr, types.DefaultCall,
		types.PointerTypeDescriptor,
		[]*types.TypeDescriptor{types.UInt64TypeDescriptor, types.PointerTypeDescriptor}); err != nil {
		return fmt.Errorf("vk: failed to prepare GetProcAddr call interface: %w", err)
	}
	return nil
}

func cString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

func callProcAddr(fn unsafe.Pointer, handle uint64, name string) unsafe.Pointer {
	if fn == nil {
		return nil
	}
	cname := cString(name)
	namePtr := unsafe.Pointer(&cname[0])
	var result unsafe.Pointer
	args := [2]unsafe.Pointer{unsafe.Pointer(&handle), unsafe.Pointer(&namePtr)}
	_ = ffi.CallFunction(&cifGetProcAddr, fn, unsafe.Pointer(&result), args[:])
	return result
}

// GetInstanceProcAddr resolves a global or instance-level function.
// Pass instance 0 for the global functions (vkCreateInstance, etc).
func GetInstanceProcAddr(instance Instance, name string) unsafe.Pointer {
	return callProcAddr(vkGetInstanceProcAddr, uint64(instance), name)
}

// SetDeviceProcAddr primes vkGetDeviceProcAddr from a live instance.
// Some drivers (Intel Iris Xe in particular) return NULL for
// vkGetInstanceProcAddr(NULL, "vkGetDeviceProcAddr"); calling this
// once right after vkCreateInstance works around that.
func SetDeviceProcAddr(instance Instance) {
	if vkGetDeviceProcAddr == nil {
		vkGetDeviceProcAddr = GetInstanceProcAddr(instance, "vkGetDeviceProcAddr")
	}
}

// GetDeviceProcAddr resolves a device-level function.
func GetDeviceProcAddr(device Device, name string) unsafe.Pointer {
	if vkGetDeviceProcAddr == nil {
		vkGetDeviceProcAddr = GetInstanceProcAddr(0, "vkGetDeviceProcAddr")
		if vkGetDeviceProcAddr == nil {
			return nil
		}
	}
	return callProcAddr(vkGetDeviceProcAddr, uint64(device), name)
}

// Close releases the loaded library. Callers that created a Device
// should have already torn it down; Close is for process shutdown.
func Close() error {
	if vulkanLib == nil {
		return nil
	}
	err := ffi.FreeLibrary(vulkanLib)
	vulkanLib = nil
	vkGetInstanceProcAddr = nil
	vkGetDeviceProcAddr = nil
	return err
}
