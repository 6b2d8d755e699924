// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build !windows

package memory

import "golang.org/x/sys/unix"

// hostPageSize reports the OS page size used to sanity-check that a
// host-visible mapping's base address lines up with what the
// allocator expects, matching the teacher's practice of querying the
// real platform value rather than hard-coding 4096.
func hostPageSize() int {
	return unix.Getpagesize()
}
