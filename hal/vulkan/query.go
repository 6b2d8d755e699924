// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import "github.com/forgegpu/vkgpu/hal"

// occlusionQuerySet is a bookkeeping placeholder. Spec.md §9 leaves
// occlusion/timestamp query scheduling as an open question; this
// backend accepts the CreateOcclusionQuery/ReleaseQuerySet calls so
// callers written against the full hal.Device contract don't need a
// feature check, but records no native query pool and never reports a
// result.
type occlusionQuerySet struct{}

func (occlusionQuerySet) isQuerySet() {}

// CreateOcclusionQuery implements hal.Device.
func (d *Device) CreateOcclusionQuery() (hal.QuerySet, error) {
	return occlusionQuerySet{}, nil
}

// ReleaseQuerySet implements hal.Device.
func (d *Device) ReleaseQuerySet(hal.QuerySet) {}
