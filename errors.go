// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package holo

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Kind identifies which branch of the error union an Error belongs to.
type Kind uint8

const (
	ErrorGeneric Kind = iota
	KindNotImplemented
	KindLoggingError
	KindDnaMissing
	KindDna
	KindIoError
	KindSerializationError
	KindInvalidOperationOnSysEntry
	KindValidationFailed
	KindRibosome
	KindRibosomeFailed
	KindConfigError
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case ErrorGeneric:
		return "ErrorGeneric"
	case KindNotImplemented:
		return "NotImplemented"
	case KindLoggingError:
		return "LoggingError"
	case KindDnaMissing:
		return "DnaMissing"
	case KindDna:
		return "Dna"
	case KindIoError:
		return "IoError"
	case KindSerializationError:
		return "SerializationError"
	case KindInvalidOperationOnSysEntry:
		return "InvalidOperationOnSysEntry"
	case KindValidationFailed:
		return "ValidationFailed"
	case KindRibosome:
		return "Ribosome"
	case KindRibosomeFailed:
		return "RibosomeFailed"
	case KindConfigError:
		return "ConfigError"
	case KindTimeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// Error is the single error union described by the design: a Kind plus an
// optional human reason and an optional wrapped cause. Parameterized kinds
// (ValidationFailed, Dna, Ribosome, RibosomeFailed) carry Reason/Cause;
// the plain kinds are exposed as package sentinels below and need neither.
type Error struct {
	Kind   Kind
	Reason string
	Cause  error
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, &holo.Error{Kind: holo.KindTimeout}).
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// ValidationFailed builds the terminal validation-rejection error (spec §4.D,
// §8 scenario S6): Commit resolves to this and no header is appended.
func ValidationFailed(reason string) error {
	return &Error{Kind: KindValidationFailed, Reason: reason}
}

// RibosomeFailed wraps an application-callback failure reason that is not a
// ribosome error code (e.g. the callback panicked or returned malformed JSON).
func RibosomeFailed(reason string) error {
	return &Error{Kind: KindRibosomeFailed, Reason: reason}
}

// RibosomeError wraps a RibosomeErrorCode-bearing failure from the host ABI.
func RibosomeError(code fmt.Stringer) error {
	return &Error{Kind: KindRibosome, Reason: code.String()}
}

// DnaErrorf wraps a dna package error (ZomeNotFound, CapabilityNotFound, ...)
// into the root union while preserving errors.Is/As to the original cause.
func DnaErrorf(cause error) error {
	return &Error{Kind: KindDna, Reason: cause.Error(), Cause: cause}
}

// Sentinel errors for the non-parameterized kinds.
var (
	ErrNotImplemented             = &Error{Kind: KindNotImplemented, Reason: "callback not implemented"}
	ErrDnaMissing                 = &Error{Kind: KindDnaMissing, Reason: "no DNA loaded for this context"}
	ErrInvalidOperationOnSysEntry = &Error{Kind: KindInvalidOperationOnSysEntry, Reason: "operation not valid on a system entry"}
	ErrTimeout                    = &Error{Kind: KindTimeout, Reason: "operation timed out"}
	ErrConfig                     = &Error{Kind: KindConfigError, Reason: "invalid configuration"}

	// ErrChainDivergence is returned when an append's declared prev-header
	// does not match the chain's current top (spec §4.E idempotence note).
	ErrChainDivergence = errors.New("holo: chain divergence: prev-header does not match top")

	// ErrPackageMismatch is returned when a fetched ValidationPackage's
	// ChainHeader does not equal the header it was requested for (spec §4.D).
	ErrPackageMismatch = errors.New("holo: validation package mismatch")
)

// Errs collects zero or more errors so a caller can keep checking after the
// first failure and report them together, instead of bailing out on the
// first one. Grounded on utils/wrappers.Errs.
type Errs struct {
	mu   sync.Mutex
	errs []error
}

// Add appends err to the collection; a nil err is a no-op.
func (e *Errs) Add(err error) {
	if err == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errs = append(e.errs, err)
}

// Errored reports whether any non-nil error has been added.
func (e *Errs) Errored() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.errs) > 0
}

// Err returns the collected errors as a single error, or nil if none were
// added.
func (e *Errs) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch len(e.errs) {
	case 0:
		return nil
	case 1:
		return e.errs[0]
	default:
		msgs := make([]string, len(e.errs))
		for i, err := range e.errs {
			msgs[i] = err.Error()
		}
		return errors.New(strings.Join(msgs, "; "))
	}
}
