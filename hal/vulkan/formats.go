// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import "github.com/forgegpu/vkgpu/types"

// promoteDepthFormat implements spec.md §4.9's depth-format
// autopromotion: D24_S8 and D32_S8 swap with each other, D32 maps to
// D16, and any other depth format (D16) maps to D32. When the candidate
// has no native backing, D16 is used if it has one; otherwise the
// requested format is returned unpromoted (spec.md §8 boundary: "CreateTexture with an
// unsupported depth format returns a texture whose format is the
// promoted format").
func promoteDepthFormat(f types.TextureFormat) (types.TextureFormat, bool) {
	if !types.IsDepthFormat(f) {
		return f, false
	}
	var candidate types.TextureFormat
	switch f {
	case types.FormatD24UnormS8Uint:
		candidate = types.FormatD32FloatS8Uint
	case types.FormatD32FloatS8Uint:
		candidate = types.FormatD24UnormS8Uint
	case types.FormatD32Float:
		candidate = types.FormatD16Unorm
	default:
		candidate = types.FormatD32Float
	}
	if _, ok := formatToVk(candidate); ok {
		return candidate, true
	}
	if _, ok := formatToVk(types.FormatD16Unorm); ok {
		return types.FormatD16Unorm, true
	}
	return f, false
}

// IsTextureFormatSupported implements hal.Device's capability query.
// usage is accepted for interface parity with the frontend's
// query surface; this backend's support set does not vary by usage.
func (d *Device) IsTextureFormatSupported(format types.TextureFormat, usage types.TextureUsage) bool {
	_, ok := formatToVk(format)
	return ok
}

// GetBestSampleCount returns the largest sample count at or below
// desired that this device's reported color sample-count mask supports.
func (d *Device) GetBestSampleCount(format types.TextureFormat, desired types.SampleCount) types.SampleCount {
	counts := []types.SampleCount{types.SampleCount8, types.SampleCount4, types.SampleCount2, types.SampleCount1}
	for _, c := range counts {
		if c > desired {
			continue
		}
		if d.supportedSampleCounts&uint32(c) != 0 {
			return c
		}
	}
	return types.SampleCount1
}

// TextureFormatTexelBlockSize implements hal.Device.
func (d *Device) TextureFormatTexelBlockSize(format types.TextureFormat) uint32 {
	return types.TexelBlockSize(format)
}
