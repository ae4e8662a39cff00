// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ribosome

import "context"

// Export names a required application-provided WASM export (spec.md §6).
type Export string

const (
	ExportValidateAppEntry              Export = "__hdk_validate_app_entry"
	ExportValidateLink                  Export = "__hdk_validate_link"
	ExportGetValidationPackageForEntry  Export = "__hdk_get_validation_package_for_entry_type"
	ExportGetValidationPackageForLink   Export = "__hdk_get_validation_package_for_link"
	ExportListCapabilities              Export = "__list_capabilities"
)

// Callback is a single application-provided WASM export, invoked with the
// JSON-encoded argument bytes and returning either the JSON-encoded result
// bytes or a ribosome ErrorCode (spec.md §6: "zero (valid) or a non-zero
// pointer to a JSON error string" for validation callbacks; other exports
// follow the same allocation-in/allocation-out shape).
type Callback func(ctx context.Context, arg []byte) ([]byte, error)

// Host dispatches calls to named exports, the way the teacher's
// networking/router.ChainRouter dispatches AppRequest by op code rather than
// by reflecting over a concrete type (spec.md §9: "tagged variants keyed by
// export name").
type Host interface {
	// Call invokes the named export with arg and returns its result bytes.
	// It returns ErrExportNotFound if zome does not provide export.
	Call(ctx context.Context, zome string, export Export, arg []byte) ([]byte, error)
}

// FuncHost is a trivial in-process Host backed by plain Go functions,
// standing in for the real sandboxed WASM instance manager in tests and
// single-process deployments (spec.md §9: "the real runtime is an external
// collaborator").
type FuncHost struct {
	fns map[string]map[Export]Callback
}

// NewFuncHost returns an empty FuncHost.
func NewFuncHost() *FuncHost {
	return &FuncHost{fns: make(map[string]map[Export]Callback)}
}

// Register installs fn as zome's implementation of export.
func (h *FuncHost) Register(zome string, export Export, fn Callback) {
	if h.fns[zome] == nil {
		h.fns[zome] = make(map[Export]Callback)
	}
	h.fns[zome][export] = fn
}

// Call implements Host.
func (h *FuncHost) Call(ctx context.Context, zome string, export Export, arg []byte) ([]byte, error) {
	fn, ok := h.fns[zome][export]
	if !ok {
		return nil, ErrExportNotFound
	}
	return fn(ctx, arg)
}
