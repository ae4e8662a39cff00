// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ribosome defines the WASM host ABI surface used by the
// validation and action packages: the linear-memory allocation encoding, the
// ribosome error-code channel, and a Callback/Host dispatch pair. The
// sandboxed instance manager that actually runs application WASM modules is
// an external collaborator; this package only fixes the shape application
// callbacks are invoked through (spec.md §6).
package ribosome

import "fmt"

// Allocation encodes (offset<<16)|length into the module's linear memory, as
// described by spec.md §6: "a single 32-bit allocation argument".
type Allocation uint32

// Encode packs an offset/length pair into an Allocation.
func Encode(offset, length uint16) Allocation {
	return Allocation(uint32(offset)<<16 | uint32(length))
}

// Decode unpacks an Allocation into its offset/length halves.
func (a Allocation) Decode() (offset, length uint16) {
	return uint16(uint32(a) >> 16), uint16(uint32(a))
}

// IsErrorCode reports whether a returned Allocation signals a ribosome error
// code rather than a real allocation: "a zero high-half with a non-zero
// low-half signals a ribosome error code" (spec.md §6).
func (a Allocation) IsErrorCode() (ErrorCode, bool) {
	offset, length := a.Decode()
	if offset == 0 && length != 0 {
		return ErrorCode(length), true
	}
	return 0, false
}

// EncodeErrorCode packs code into the zero-offset, nonzero-length shape that
// IsErrorCode recognizes.
func EncodeErrorCode(code ErrorCode) Allocation {
	return Encode(0, uint16(code))
}

// ErrorCode is the ribosome return-channel error enum (spec.md §6).
type ErrorCode uint16

const (
	ArgumentDeserializationFailed ErrorCode = iota + 1
	OutOfMemory
	ReceivedWrongActionResult
	CallbackFailed
	RecursiveCallForbidden
	ResponseSerializationFailed
	NotAnAllocation
	ZeroSizedAllocation
	UnknownEntryType
)

func (c ErrorCode) String() string {
	switch c {
	case ArgumentDeserializationFailed:
		return "ArgumentDeserializationFailed"
	case OutOfMemory:
		return "OutOfMemory"
	case ReceivedWrongActionResult:
		return "ReceivedWrongActionResult"
	case CallbackFailed:
		return "CallbackFailed"
	case RecursiveCallForbidden:
		return "RecursiveCallForbidden"
	case ResponseSerializationFailed:
		return "ResponseSerializationFailed"
	case NotAnAllocation:
		return "NotAnAllocation"
	case ZeroSizedAllocation:
		return "ZeroSizedAllocation"
	case UnknownEntryType:
		return "UnknownEntryType"
	default:
		return fmt.Sprintf("ErrorCode(%d)", uint16(c))
	}
}
