// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chain implements the per-agent local chain facade and the
// ContentStore/EavStore storage traits it is built from (spec.md §3 Chain,
// §4.C).
package chain

import "github.com/luxfi/holo"

// ContentStore is the abstract content-addressable blob store (spec.md
// §4.C). Adding the same address twice is idempotent and must not error.
type ContentStore interface {
	Add(content []byte) error
	Fetch(address holo.Address) ([]byte, bool, error)
}

// EAV is one entity-attribute-value tuple.
type EAV struct {
	Entity    holo.Address
	Attribute string
	Value     string
}

// EAVSelector selects a subset of stored tuples; a zero-value field is a
// wildcard on that position (spec.md §4.C).
type EAVSelector struct {
	Entity    *holo.Address
	Attribute *string
	Value     *string
}

// EavStore is the abstract entity-attribute-value store over mutable
// metadata layered on immutable entries (spec.md §4.C). FetchEAV returns
// insertion-ordered tuples; adding a duplicate tuple is idempotent.
type EavStore interface {
	AddEAV(eav EAV) error
	FetchEAV(selector EAVSelector) ([]EAV, error)
}

// CRUD status values persisted as decimal strings in EAV values (spec.md §6).
type CrudStatus int

const (
	StatusLive CrudStatus = iota + 1
	StatusRejected
	StatusModified
	StatusDeleted
	StatusLocked
)

func (s CrudStatus) String() string {
	switch s {
	case StatusLive:
		return "1"
	case StatusRejected:
		return "2"
	case StatusModified:
		return "3"
	case StatusDeleted:
		return "4"
	case StatusLocked:
		return "5"
	default:
		return "0"
	}
}

// ParseCrudStatus parses the decimal string persisted in an EAV value.
func ParseCrudStatus(s string) (CrudStatus, bool) {
	switch s {
	case "1":
		return StatusLive, true
	case "2":
		return StatusRejected, true
	case "3":
		return StatusModified, true
	case "4":
		return StatusDeleted, true
	case "5":
		return StatusLocked, true
	default:
		return 0, false
	}
}

// Terminal reports whether status forbids further transitions (spec.md §3
// invariant: "a terminal status (DELETED or REJECTED) forbids further
// status transitions").
func (s CrudStatus) Terminal() bool {
	return s == StatusDeleted || s == StatusRejected
}

const (
	attrCrudStatus = "crud-status"
	attrCrudLink   = "crud-link"
)
