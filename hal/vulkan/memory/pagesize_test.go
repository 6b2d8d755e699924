// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package memory

import "testing"

func TestHostPageSize(t *testing.T) {
	if got := hostPageSize(); got <= 0 {
		t.Fatalf("hostPageSize() = %d, want > 0", got)
	}
}
