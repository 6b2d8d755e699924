// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package hal defines the contract between the vkgpu frontend and a
// concrete backend (currently only hal/vulkan). A backend registers
// itself with RegisterBackend from an init function; the frontend
// selects one with SelectAndCreateDevice.
//
// hal also owns the pieces that are genuinely backend-agnostic:
// the shared PassHeader state machine embedded in every command
// buffer, the descriptor structs passed across the frontend/backend
// boundary, and the package-wide logger.
package hal
