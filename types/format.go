// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

// TextureFormat enumerates the uncompressed pixel formats this module
// supports. Compressed block formats (BC*, ETC2, ASTC) are out of scope:
// spec.md's format set covers only the uncompressed formats a Vulkan
// core backend needs for render targets, storage images, and sampled
// textures.
type TextureFormat uint32

const (
	FormatUndefined TextureFormat = iota

	FormatR8Unorm
	FormatR8Snorm
	FormatR8Uint
	FormatR8Sint

	FormatR8G8Unorm
	FormatR8G8Snorm
	FormatR8G8Uint
	FormatR8G8Sint

	FormatR8G8B8A8Unorm
	FormatR8G8B8A8UnormSrgb
	FormatR8G8B8A8Snorm
	FormatR8G8B8A8Uint
	FormatR8G8B8A8Sint
	FormatB8G8R8A8Unorm
	FormatB8G8R8A8UnormSrgb

	FormatR16Unorm
	FormatR16Snorm
	FormatR16Uint
	FormatR16Sint
	FormatR16Float

	FormatR16G16Unorm
	FormatR16G16Snorm
	FormatR16G16Uint
	FormatR16G16Sint
	FormatR16G16Float

	FormatR16G16B16A16Unorm
	FormatR16G16B16A16Snorm
	FormatR16G16B16A16Uint
	FormatR16G16B16A16Sint
	FormatR16G16B16A16Float

	FormatR32Uint
	FormatR32Sint
	FormatR32Float

	FormatR32G32Uint
	FormatR32G32Sint
	FormatR32G32Float

	FormatR32G32B32A32Uint
	FormatR32G32B32A32Sint
	FormatR32G32B32A32Float

	FormatD16Unorm
	FormatD24UnormS8Uint
	FormatD32Float
	FormatD32FloatS8Uint

	formatCount
)

// String returns the Vulkan-spec-style name of the format, used in log
// messages and error strings.
func (f TextureFormat) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "FormatUnknown"
}

var formatNames = [...]string{
	FormatUndefined:         "Undefined",
	FormatR8Unorm:           "R8Unorm",
	FormatR8Snorm:           "R8Snorm",
	FormatR8Uint:            "R8Uint",
	FormatR8Sint:            "R8Sint",
	FormatR8G8Unorm:         "R8G8Unorm",
	FormatR8G8Snorm:         "R8G8Snorm",
	FormatR8G8Uint:          "R8G8Uint",
	FormatR8G8Sint:          "R8G8Sint",
	FormatR8G8B8A8Unorm:     "R8G8B8A8Unorm",
	FormatR8G8B8A8UnormSrgb: "R8G8B8A8UnormSrgb",
	FormatR8G8B8A8Snorm:     "R8G8B8A8Snorm",
	FormatR8G8B8A8Uint:      "R8G8B8A8Uint",
	FormatR8G8B8A8Sint:      "R8G8B8A8Sint",
	FormatB8G8R8A8Unorm:     "B8G8R8A8Unorm",
	FormatB8G8R8A8UnormSrgb: "B8G8R8A8UnormSrgb",
	FormatR16Unorm:          "R16Unorm",
	FormatR16Snorm:          "R16Snorm",
	FormatR16Uint:           "R16Uint",
	FormatR16Sint:           "R16Sint",
	FormatR16Float:          "R16Float",
	FormatR16G16Unorm:       "R16G16Unorm",
	FormatR16G16Snorm:       "R16G16Snorm",
	FormatR16G16Uint:        "R16G16Uint",
	FormatR16G16Sint:        "R16G16Sint",
	FormatR16G16Float:       "R16G16Float",
	FormatR16G16B16A16Unorm: "R16G16B16A16Unorm",
	FormatR16G16B16A16Snorm: "R16G16B16A16Snorm",
	FormatR16G16B16A16Uint:  "R16G16B16A16Uint",
	FormatR16G16B16A16Sint:  "R16G16B16A16Sint",
	FormatR16G16B16A16Float: "R16G16B16A16Float",
	FormatR32Uint:           "R32Uint",
	FormatR32Sint:           "R32Sint",
	FormatR32Float:          "R32Float",
	FormatR32G32Uint:        "R32G32Uint",
	FormatR32G32Sint:        "R32G32Sint",
	FormatR32G32Float:       "R32G32Float",
	FormatR32G32B32A32Uint:  "R32G32B32A32Uint",
	FormatR32G32B32A32Sint:  "R32G32B32A32Sint",
	FormatR32G32B32A32Float: "R32G32B32A32Float",
	FormatD16Unorm:          "D16Unorm",
	FormatD24UnormS8Uint:    "D24UnormS8Uint",
	FormatD32Float:          "D32Float",
	FormatD32FloatS8Uint:    "D32FloatS8Uint",
}

// texelBlockSizes gives the size in bytes of one texel for each
// uncompressed format. Depth/stencil formats report the packed size
// a driver typically allocates for them (24-bit depth is stored
// packed into 32 bits by every Vulkan implementation this backend
// has been exercised against).
var texelBlockSizes = [...]uint32{
	FormatR8Unorm:           1,
	FormatR8Snorm:           1,
	FormatR8Uint:            1,
	FormatR8Sint:            1,
	FormatR8G8Unorm:         2,
	FormatR8G8Snorm:         2,
	FormatR8G8Uint:          2,
	FormatR8G8Sint:          2,
	FormatR8G8B8A8Unorm:     4,
	FormatR8G8B8A8UnormSrgb: 4,
	FormatR8G8B8A8Snorm:     4,
	FormatR8G8B8A8Uint:      4,
	FormatR8G8B8A8Sint:      4,
	FormatB8G8R8A8Unorm:     4,
	FormatB8G8R8A8UnormSrgb: 4,
	FormatR16Unorm:          2,
	FormatR16Snorm:          2,
	FormatR16Uint:           2,
	FormatR16Sint:           2,
	FormatR16Float:          2,
	FormatR16G16Unorm:       4,
	FormatR16G16Snorm:       4,
	FormatR16G16Uint:        4,
	FormatR16G16Sint:        4,
	FormatR16G16Float:       4,
	FormatR16G16B16A16Unorm: 8,
	FormatR16G16B16A16Snorm: 8,
	FormatR16G16B16A16Uint:  8,
	FormatR16G16B16A16Sint:  8,
	FormatR16G16B16A16Float: 8,
	FormatR32Uint:           4,
	FormatR32Sint:           4,
	FormatR32Float:          4,
	FormatR32G32Uint:        8,
	FormatR32G32Sint:        8,
	FormatR32G32Float:       8,
	FormatR32G32B32A32Uint:  16,
	FormatR32G32B32A32Sint:  16,
	FormatR32G32B32A32Float: 16,
	FormatD16Unorm:          2,
	FormatD24UnormS8Uint:    4,
	FormatD32Float:          4,
	FormatD32FloatS8Uint:    8,
}

// TexelBlockSize returns the number of bytes one texel of the given
// format occupies, or 0 for an unrecognized format.
func TexelBlockSize(f TextureFormat) uint32 {
	if int(f) < len(texelBlockSizes) {
		return texelBlockSizes[f]
	}
	return 0
}

// IsDepthFormat reports whether f carries a depth component.
func IsDepthFormat(f TextureFormat) bool {
	switch f {
	case FormatD16Unorm, FormatD24UnormS8Uint, FormatD32Float, FormatD32FloatS8Uint:
		return true
	default:
		return false
	}
}

// HasStencil reports whether f carries a stencil component.
func HasStencil(f TextureFormat) bool {
	switch f {
	case FormatD24UnormS8Uint, FormatD32FloatS8Uint:
		return true
	default:
		return false
	}
}

// SampleCount is the number of samples per texel for a texture or
// render-pass attachment.
type SampleCount uint32

const (
	SampleCount1 SampleCount = 1 << iota
	SampleCount2
	SampleCount4
	SampleCount8
)
