// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// Vulkan exposes roughly 700 entry points but only a few dozen
// distinct parameter shapes: (handle), (handle, ptr), (handle, ptr,
// ptr, ptr), and so on, each repeated across Create*/Destroy*/Cmd*
// families. Rather than hand-name a CallInterface global per shape
// the way the generator would, cif builds and caches one from a
// compact code string the first time a shape is seen, and every
// command wrapper in commands.go asks for its shape by code.
type sig struct {
	ret  *types.TypeDescriptor
	args []*types.TypeDescriptor
}

var (
	sigMu    sync.Mutex
	sigCache = map[string]*types.CallInterface{}
)

// argCode characters: h = handle/u64, u = u32, i = i32, p = pointer,
// f = float32. The leading character is the return type: r = VkResult
// (int32), v = void, p = pointer (PFN_vkVoidFunction lookups aside).
func descriptorFor(c byte) *types.TypeDescriptor {
	switch c {
	case 'h':
		return types.UInt64TypeDescriptor
	case 'u':
		return types.UInt32TypeDescriptor
	case 'i':
		return types.SInt32TypeDescriptor
	case 'f':
		return types.FloatTypeDescriptor
	case 'p':
		return types.PointerTypeDescriptor
	default:
		panic("vk: unknown signature code " + string(c))
	}
}

func cif(code string) (*types.CallInterface, error) {
	sigMu.Lock()
	defer sigMu.Unlock()
	if c, ok := sigCache[code]; ok {
		return c, nil
	}
	var ret *types.TypeDescriptor
	switch code[0] {
	case 'v':
		ret = types.VoidTypeDescriptor
	case 'r':
		ret = types.SInt32TypeDescriptor
	default:
		ret = descriptorFor(code[0])
	}
	args := make([]*types.TypeDescriptor, 0, len(code)-1)
	for i := 1; i < len(code); i++ {
		args = append(args, descriptorFor(code[i]))
	}
	var c types.CallInterface
	if err := ffi.PrepareCallInterface(&c, types.DefaultCall, ret, args); err != nil {
		return nil, err
	}
	sigCache[code] = &c
	return &c, nil
}

// callVK invokes fn under the call interface named by code, storing
// the result (if any) into ret. Every element of raw must already be
// a pointer to where the corresponding argument's value lives — the
// double indirection goffi requires for pointer-typed Vulkan arguments
// is the caller's responsibility, done once in commands.go rather than
// repeated at every call site.
func callVK(code string, fn unsafe.Pointer, ret unsafe.Pointer, raw ...unsafe.Pointer) error {
	c, err := cif(code)
	if err != nil {
		return err
	}
	return ffi.CallFunction(c, fn, ret, raw)
}

// ptrArg turns a value already addressable by the caller into the
// unsafe.Pointer goffi expects in its args slice.
func ptrArg[T any](v *T) unsafe.Pointer {
	return unsafe.Pointer(v)
}
