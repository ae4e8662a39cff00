// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dna

import "errors"

// Sentinel errors surfaced as typed DNA errors (spec.md §4.A, §7:
// "Dna(DnaError{ZomeNotFound, CapabilityNotFound, TraitNotFound})").
var (
	ErrZomeNotFound       = errors.New("dna: zome not found")
	ErrCapabilityNotFound = errors.New("dna: capability not found")
	ErrTraitNotFound      = errors.New("dna: trait not found")
)
