// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package action

import (
	"context"

	"github.com/luxfi/holo/chain"
	"github.com/luxfi/holo/entry"
	"github.com/luxfi/holo/ribosome"
	"github.com/luxfi/holo/state"
	"github.com/luxfi/holo/validation"
)

// Commit validates and appends a new App entry (spec.md §4.E: "Commit(entry)
// -> after validation passes: append header, write to ContentStore, set
// CRUD status LIVE, emit Publish").
type Commit struct {
	Entry     entry.Entry
	Zome      string
	Lifecycle validation.Lifecycle
	Validate  Validator
	Publisher Publisher

	// Host asks the zome's __hdk_get_validation_package_for_entry_type for
	// the package definition (spec.md §4.D step 1). A nil Host falls back
	// to DefEntry, for callers that have not wired a ribosome yet.
	Host ribosome.Host

	// Header receives the appended header once Apply succeeds, for callers
	// that need it (e.g. to immediately build an UpdateEntry/RemoveEntry).
	Header *entry.Header
}

// Apply implements state.Action.
func (c Commit) Apply(ctx context.Context, snap state.Snapshot) ([]state.Action, error) {
	vctx := validationContext{Zome: c.Zome, EntryType: c.Entry.AppType, Lifecycle: c.Lifecycle}
	definition := func(ctx context.Context) (validation.PackageDefinition, error) {
		if c.Host == nil {
			return validation.PackageDefinition{Kind: validation.DefEntry}, nil
		}
		return validation.DefinitionFor(ctx, c.Host, c.Zome, c.Entry.AppType)
	}
	h, followUps, err := commitEntry(ctx, snap, c.Entry, vctx, validation.Commit, definition, c.Validate, c.Publisher, chain.StatusLive)
	if err != nil {
		return nil, err
	}
	if c.Header != nil {
		*c.Header = h
	}
	return followUps, nil
}
