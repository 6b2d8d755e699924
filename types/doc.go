// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package types defines the backend-agnostic enums, bit flags, and small
// value types shared by the vkgpu frontend and its hal backends.
//
// Nothing in this package knows about Vulkan, or any other native API;
// it exists so that hal.Backend implementations and the vkgpu package
// can exchange descriptors without importing each other.
package types
