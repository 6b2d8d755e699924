// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"context"
	"log/slog"
	"runtime"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/forgegpu/vkgpu/hal"
	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
)

// debugCallbackPtr is the native trampoline for vulkanDebugCallback,
// created once and kept alive for the process lifetime (Vulkan holds
// the pointer for as long as any messenger referencing it exists).
var debugCallbackPtr uintptr

// vulkanDebugCallback is registered with VK_EXT_debug_utils. The
// driver calls it on its own thread with every argument uintptr-sized,
// matching PFN_vkDebugUtilsMessengerCallbackEXT's C signature.
func vulkanDebugCallback(severity, msgType, callbackData, _ uintptr) uintptr {
	if callbackData == 0 {
		return uintptr(vk.False)
	}
	data := (*vk.DebugUtilsMessengerCallbackDataEXT)(unsafe.Pointer(callbackData))

	msg := "(no message)"
	if data.PMessage != 0 {
		msg = cStringFromPtr(data.PMessage)
	}
	msgID := ""
	if data.PMessageIdName != 0 {
		msgID = cStringFromPtr(data.PMessageIdName)
	}

	level := slog.LevelDebug
	switch {
	case vk.DebugUtilsMessageSeverityFlagBitsEXT(severity)&vk.DebugUtilsMessageSeverityErrorBitExt != 0:
		level = slog.LevelError
	case vk.DebugUtilsMessageSeverityFlagBitsEXT(severity)&vk.DebugUtilsMessageSeverityWarningBitExt != 0:
		level = slog.LevelWarn
	case vk.DebugUtilsMessageSeverityFlagBitsEXT(severity)&vk.DebugUtilsMessageSeverityInfoBitExt != 0:
		level = slog.LevelInfo
	}

	kind := "general"
	switch {
	case vk.DebugUtilsMessageTypeFlagBitsEXT(msgType)&vk.DebugUtilsMessageTypeValidationBitExt != 0:
		kind = "validation"
	case vk.DebugUtilsMessageTypeFlagBitsEXT(msgType)&vk.DebugUtilsMessageTypePerformanceBitExt != 0:
		kind = "performance"
	}

	attrs := []slog.Attr{slog.String("type", kind)}
	if msgID != "" {
		attrs = append(attrs, slog.String("id", msgID))
	}
	hal.Logger().LogAttrs(context.Background(), level, "vulkan: "+msg, attrs...)

	return uintptr(vk.False)
}

// cStringFromPtr reads a NUL-terminated string out of native memory
// the driver owns; ptr is never retained past the call.
func cStringFromPtr(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	const maxLen = 4096
	buf := unsafe.Slice((*byte)(unsafe.Pointer(ptr)), maxLen)
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

// createDebugMessenger installs vulkanDebugCallback on instance for
// validation/performance warnings and errors. Failure is non-fatal:
// the instance still works without a messenger, just without
// validation-layer diagnostics surfaced through the logger.
func createDebugMessenger(cmds *vk.Commands, instance vk.Instance) vk.DebugUtilsMessengerEXT {
	if debugCallbackPtr == 0 {
		debugCallbackPtr = ffi.NewCallback(vulkanDebugCallback)
	}

	info := vk.DebugUtilsMessengerCreateInfoEXT{
		SType: vk.StructureTypeDebugUtilsMessengerCreateInfoEXT,
		MessageSeverity: vk.DebugUtilsMessageSeverityWarningBitExt |
			vk.DebugUtilsMessageSeverityErrorBitExt,
		MessageType: vk.DebugUtilsMessageTypeGeneralBitExt |
			vk.DebugUtilsMessageTypeValidationBitExt |
			vk.DebugUtilsMessageTypePerformanceBitExt,
		PfnUserCallback: debugCallbackPtr,
	}

	messenger, res := cmds.CreateDebugUtilsMessengerEXT(instance, &info)
	if res != vk.Success {
		hal.Logger().Warn("vulkan: failed to create debug messenger", "result", res)
		return 0
	}
	runtime.KeepAlive(debugCallbackPtr)
	return messenger
}
