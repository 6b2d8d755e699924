// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import "unsafe"

// ptrOf turns a Go value already addressable by the caller into the
// uintptr Vulkan's Pxxx struct fields expect on the wire, per
// hal/vulkan/vk's pure-Go FFI convention (see vk/structs.go).
func ptrOf[T any](v *T) uintptr {
	if v == nil {
		return 0
	}
	return uintptr(unsafe.Pointer(v))
}

// cBytes returns a NUL-terminated byte slice for s, kept alive by the
// caller for the duration of the native call that references it.
func cBytes(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

// copyToMapped writes src into a persistently-mapped allocation at dst,
// used by the uniform and transfer buffer paths which never unmap.
func copyToMapped(dst uintptr, src []byte) {
	if len(src) == 0 {
		return
	}
	out := unsafe.Slice((*byte)(unsafe.Pointer(dst)), len(src))
	copy(out, src)
}

// mappedSlice returns a live view over a persistently-mapped
// allocation's bytes, used by MapTransferBuffer where the caller reads
// and writes through the returned slice directly.
func mappedSlice(ptr uintptr, length int) []byte {
	if length == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), length)
}

// copyFromMapped reads length bytes out of a persistently-mapped
// allocation at src.
func copyFromMapped(src uintptr, length int) []byte {
	if length == 0 {
		return nil
	}
	in := unsafe.Slice((*byte)(unsafe.Pointer(src)), length)
	out := make([]byte, length)
	copy(out, in)
	return out
}
