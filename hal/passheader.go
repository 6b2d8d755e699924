// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hal

import "fmt"

// PassKind names which of the three mutually-exclusive pass types is
// open on a command buffer.
type PassKind uint8

const (
	PassNone PassKind = iota
	PassRender
	PassCompute
	PassCopy
)

func (k PassKind) String() string {
	switch k {
	case PassRender:
		return "render"
	case PassCompute:
		return "compute"
	case PassCopy:
		return "copy"
	default:
		return "none"
	}
}

// PassHeader is the common state machine every backend's command
// buffer embeds. Spec.md §4.9 describes it as "embedded structs on
// the command-buffer common header so the header can be recovered by
// pointer arithmetic" — in Go, backends embed PassHeader by value
// instead, which gives the same "recover common state from any
// concrete command buffer" property without unsafe pointer tricks.
//
// PassHeader enforces: at most one pass open at a time, a pipeline
// must be bound before a draw/dispatch, and Submit fails while a pass
// is open or after a prior Submit. Misuse is logged via Logger() and
// reported back to the caller; it never panics.
type PassHeader struct {
	label        string
	current      PassKind
	pipelineBound bool
	submitted    bool
}

// Reset returns the header to its Acquired state, ready for reuse by
// a command pool. label is used only in log messages.
func (h *PassHeader) Reset(label string) {
	h.label = label
	h.current = PassNone
	h.pipelineBound = false
	h.submitted = false
}

// BeginPass transitions into kind. It fails if another pass is
// already open or the buffer was already submitted.
func (h *PassHeader) BeginPass(kind PassKind) error {
	if h.submitted {
		Logger().Warn("hal: pass begun on a submitted command buffer", "buffer", h.label, "pass", kind)
		return fmt.Errorf("hal: command buffer %q already submitted", h.label)
	}
	if h.current != PassNone {
		Logger().Warn("hal: pass already open", "buffer", h.label, "open", h.current, "requested", kind)
		return fmt.Errorf("hal: command buffer %q already has a %s pass open", h.label, h.current)
	}
	h.current = kind
	h.pipelineBound = false
	return nil
}

// EndPass closes kind. It logs and is a no-op if kind is not the
// currently open pass (the caller already recorded nothing extra by
// virtue of BindGraphicsPipeline/Draw having failed their own checks).
func (h *PassHeader) EndPass(kind PassKind) {
	if h.current != kind {
		Logger().Warn("hal: end of wrong pass", "buffer", h.label, "open", h.current, "requested_end", kind)
		return
	}
	h.current = PassNone
	h.pipelineBound = false
}

// RequirePass returns an error (and logs) unless kind is currently
// open. Recording methods call this before touching backend state.
func (h *PassHeader) RequirePass(kind PassKind) error {
	if h.current != kind {
		Logger().Warn("hal: operation requires an open pass", "buffer", h.label, "open", h.current, "required", kind)
		return fmt.Errorf("hal: command buffer %q has no open %s pass", h.label, kind)
	}
	return nil
}

// MarkPipelineBound records that BindGraphicsPipeline/BindComputePipeline
// was called for the currently open pass.
func (h *PassHeader) MarkPipelineBound() { h.pipelineBound = true }

// RequirePipelineBound fails a draw/dispatch call made before a
// pipeline was bound.
func (h *PassHeader) RequirePipelineBound() error {
	if !h.pipelineBound {
		Logger().Warn("hal: draw/dispatch without a bound pipeline", "buffer", h.label)
		return fmt.Errorf("hal: command buffer %q has no pipeline bound", h.label)
	}
	return nil
}

// CurrentPass reports which pass, if any, is open.
func (h *PassHeader) CurrentPass() PassKind { return h.current }

// PrepareSubmit fails if a pass is open or the buffer was already
// submitted; otherwise marks the buffer submitted.
func (h *PassHeader) PrepareSubmit() error {
	if h.submitted {
		Logger().Warn("hal: double submit", "buffer", h.label)
		return fmt.Errorf("hal: command buffer %q already submitted", h.label)
	}
	if h.current != PassNone {
		Logger().Warn("hal: submit with an open pass", "buffer", h.label, "open", h.current)
		return fmt.Errorf("hal: command buffer %q has an open %s pass", h.label, h.current)
	}
	h.submitted = true
	return nil
}

// Submitted reports whether PrepareSubmit already succeeded once.
func (h *PassHeader) Submitted() bool { return h.submitted }
