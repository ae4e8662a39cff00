// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validation

import (
	"github.com/luxfi/holo/entry"
)

// PackageDefinitionKind tags which shape of ValidationPackage an
// application callback requested. Restored from
// original_source/core/src/nucleus/ribosome/callback/validation_package.rs,
// whose CustomMode/Entry/ChainEntries/ChainHeaders/ChainFull/Custom enum the
// distillation's spec.md §4.D names but does not enumerate as Go-shaped
// constants.
type PackageDefinitionKind uint8

const (
	DefEntry PackageDefinitionKind = iota
	DefChainEntries
	DefChainHeaders
	DefChainFull
	DefCustom
)

func (k PackageDefinitionKind) String() string {
	switch k {
	case DefEntry:
		return "Entry"
	case DefChainEntries:
		return "ChainEntries"
	case DefChainHeaders:
		return "ChainHeaders"
	case DefChainFull:
		return "ChainFull"
	case DefCustom:
		return "Custom"
	default:
		return "Invalid"
	}
}

// PackageDefinition is the application callback's answer to "what should
// this entry type's validation package contain" (spec.md §4.D step 1).
// CustomBytes is populated only for DefCustom and is carried through to the
// resulting ValidationPackage untouched, matching the original's handling
// of a Custom package as opaque application-defined bytes.
type PackageDefinition struct {
	Kind        PackageDefinitionKind
	CustomBytes []byte
}

// ValidationPackage is the materialized package passed to the application's
// validation callback alongside the entry itself (spec.md §4.D step 2).
type ValidationPackage struct {
	ChainHeader  *entry.Header
	ChainEntries []entry.Entry
	ChainHeaders []entry.Header
	Custom       []byte
}

// ValidationData is the second half of a Validate call's input, carrying
// the package plus the context the callback needs to judge the entry
// (spec.md §4.D "Validate").
type ValidationData struct {
	Package   ValidationPackage
	Sources   []string
	Lifecycle Lifecycle
	Action    Action
}
