// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package validation implements the validation pipeline of spec.md §4.D:
// building a ValidationPackage from a ValidationPackageDefinition and
// invoking the application's sandboxed callbacks under the lifecycle ×
// action matrix.
package validation

// Lifecycle tags where an entry is being validated: on the author's own
// chain, headed for the DHT, or as pure metadata (spec.md §4 "EntryLifecycle
// ∈ {Chain, DHT, Meta}").
type Lifecycle uint8

const (
	Chain Lifecycle = iota
	DHT
	Meta
)

func (l Lifecycle) String() string {
	switch l {
	case Chain:
		return "Chain"
	case DHT:
		return "DHT"
	case Meta:
		return "Meta"
	default:
		return "Invalid"
	}
}

// Action tags what is being done to the entry (spec.md §4 "EntryAction ∈
// {Commit, Modify, Delete}").
type Action uint8

const (
	Commit Action = iota
	Modify
	Delete
)

func (a Action) String() string {
	switch a {
	case Commit:
		return "Commit"
	case Modify:
		return "Modify"
	case Delete:
		return "Delete"
	default:
		return "Invalid"
	}
}
