// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hal

import (
	"os"
	"strings"
	"sync"

	"github.com/forgegpu/vkgpu/types"
)

// Backend is implemented by a concrete native-API driver package
// (currently only hal/vulkan). A backend registers itself via
// RegisterBackend from an init function.
type Backend interface {
	// Variant identifies the backend.
	Variant() types.Backend

	// PrepareDriver probes whether a working driver is present
	// (library loads, an instance can be created, at least one
	// suitable physical device exists) without creating a Device.
	PrepareDriver() bool

	// CreateDevice creates a logical device. debug requests the
	// backend's validation/debug layer where supported.
	CreateDevice(debug bool) (Device, error)
}

var (
	registryMu sync.RWMutex
	// registry is ordered by registration order, which in this module
	// is compile-time-ordered (spec.md §4.9): backend packages are
	// imported in the order the caller wants them probed.
	registry []Backend
)

// RegisterBackend registers a backend implementation. Typically called
// from a backend package's init function via a blank import.
func RegisterBackend(b Backend) {
	registryMu.Lock()
	defer registryMu.Unlock()
	for _, existing := range registry {
		if existing.Variant() == b.Variant() {
			return
		}
	}
	registry = append(registry, b)
}

// RegisteredBackends returns the compile-time-ordered list of
// registered backends.
func RegisteredBackends() []Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Backend, len(registry))
	copy(out, registry)
	return out
}

// backendEnvVar is read once at CreateDevice time and, when it names a
// registered backend (case-insensitively), overrides the preference
// mask entirely. This mirrors spec.md §6's REFRESH_HINT_BACKEND.
const backendEnvVar = "VKGPU_BACKEND"

// SelectAndCreateDevice probes registered backends in order and
// returns the first Device any of them can create.
//
// Selection order (spec.md §4.9):
//  1. VKGPU_BACKEND env var, matched case-insensitively against each
//     registered backend's Variant name.
//  2. preferredMask, a bitmask of types.Backend values the caller will
//     accept; backends not in the mask are skipped unless the mask is 0.
//  3. The first backend whose PrepareDriver reports a working driver.
func SelectAndCreateDevice(preferredMask uint32, debug bool) (Device, error) {
	backends := RegisteredBackends()
	if len(backends) == 0 {
		return nil, ErrNoBackends
	}

	if name := strings.TrimSpace(os.Getenv(backendEnvVar)); name != "" {
		for _, b := range backends {
			if strings.EqualFold(b.Variant().String(), name) {
				if b.PrepareDriver() {
					return b.CreateDevice(debug)
				}
				Logger().Warn("hal: backend named by "+backendEnvVar+" has no working driver", "backend", name)
				return nil, ErrNoBackends
			}
		}
		Logger().Warn("hal: "+backendEnvVar+" names an unregistered backend", "backend", name)
	}

	for _, b := range backends {
		if preferredMask != 0 && preferredMask&(1<<uint32(b.Variant())) == 0 {
			continue
		}
		if b.PrepareDriver() {
			return b.CreateDevice(debug)
		}
	}

	return nil, ErrNoBackends
}
