// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package memory

import "golang.org/x/sys/windows"

// hostPageSize reports the OS page size used to sanity-check that a
// host-visible mapping's base address lines up with what the
// allocator expects.
func hostPageSize() int {
	return windows.Getpagesize()
}
