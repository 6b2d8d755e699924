// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"testing"

	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
)

func TestBarrierForSubstitutesTopAndBottomOfPipe(t *testing.T) {
	src, dst, srcAccess, _ := barrierFor(AccessNone, AccessColorAttachmentWrite)
	if src != vk.PipelineStageTopOfPipeBit {
		t.Errorf("src stage = %v, want TopOfPipe", src)
	}
	if dst == 0 {
		t.Errorf("dst stage must not be empty")
	}
	if srcAccess != 0 {
		t.Errorf("srcAccess = %v, want 0 (old was never a write)", srcAccess)
	}
}

func TestBarrierForSuppressesReadAfterUnwritten(t *testing.T) {
	_, _, _, dstAccess := barrierFor(AccessNone, AccessFragmentShaderReadSampledTexture)
	if dstAccess != 0 {
		t.Errorf("dstAccess = %v, want 0 for read-after-unwritten", dstAccess)
	}
}

func TestBarrierForCarriesSourceAccessOnlyWhenOldWasWrite(t *testing.T) {
	_, _, srcAccess, _ := barrierFor(AccessColorAttachmentWrite, AccessFragmentShaderReadSampledTexture)
	if srcAccess != vk.AccessColorAttachmentWriteBit {
		t.Errorf("srcAccess = %v, want AccessColorAttachmentWriteBit", srcAccess)
	}

	_, _, srcAccess2, dstAccess2 := barrierFor(AccessFragmentShaderReadSampledTexture, AccessTransferWrite)
	if srcAccess2 != 0 {
		t.Errorf("srcAccess = %v, want 0 (old was a read)", srcAccess2)
	}
	if dstAccess2 != vk.AccessTransferWriteBit {
		t.Errorf("dstAccess = %v, want AccessTransferWriteBit", dstAccess2)
	}
}

func TestIntentTableIsDense(t *testing.T) {
	// Every declared intent below accessIntentCount must have a row;
	// AccessNone is the only one legitimately all-zero.
	for i := AccessIntent(1); i < accessIntentCount; i++ {
		row := i.row()
		if row.stage == 0 && row.access == 0 && row.layout == vk.ImageLayoutUndefined {
			t.Errorf("intent %d has an empty row", i)
		}
	}
}

func TestAccessIntentCountIsAroundThirty(t *testing.T) {
	if accessIntentCount < 28 || accessIntentCount > 36 {
		t.Errorf("accessIntentCount = %d, spec.md §4.2 expects ~30", accessIntentCount)
	}
}
