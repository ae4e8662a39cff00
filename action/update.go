// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package action

import (
	"context"

	"github.com/luxfi/holo"
	"github.com/luxfi/holo/chain"
	"github.com/luxfi/holo/entry"
	"github.com/luxfi/holo/ribosome"
	"github.com/luxfi/holo/state"
	"github.com/luxfi/holo/validation"
)

// UpdateEntry commits a new entry that replaces OldAddress: with a nil Host
// the package built for its validation is ChainEntries so the prior entry
// is present, satisfying validation.requirePriorEntry
// (original_source/core/src/nucleus/ribosome/api/update_entry.rs). After
// the new entry commits, OldAddress is linked to it and marked MODIFIED
// (spec.md §4.E: "commit new entry; write CRUD link old->new; set old
// status MODIFIED").
type UpdateEntry struct {
	OldAddress holo.Address
	NewEntry   entry.Entry
	Zome       string
	Lifecycle  validation.Lifecycle
	Validate   Validator
	Publisher  Publisher

	// Host asks the zome's __hdk_get_validation_package_for_entry_type for
	// the package definition (spec.md §4.D step 1). A nil Host falls back
	// to DefChainEntries, the minimum needed to satisfy requirePriorEntry.
	Host ribosome.Host

	Header *entry.Header
}

// Apply implements state.Action.
func (u UpdateEntry) Apply(ctx context.Context, snap state.Snapshot) ([]state.Action, error) {
	vctx := validationContext{Zome: u.Zome, EntryType: u.NewEntry.AppType, Lifecycle: u.Lifecycle}
	definition := func(ctx context.Context) (validation.PackageDefinition, error) {
		if u.Host == nil {
			return validation.PackageDefinition{Kind: validation.DefChainEntries}, nil
		}
		return validation.DefinitionFor(ctx, u.Host, u.Zome, u.NewEntry.AppType)
	}
	h, followUps, err := commitEntry(ctx, snap, u.NewEntry, vctx, validation.Modify, definition, u.Validate, u.Publisher, chain.StatusLive)
	if err != nil {
		return nil, err
	}

	if err := chain.SetCrudStatus(snap.Eav, u.OldAddress, chain.StatusModified); err != nil {
		return nil, err
	}
	if err := chain.SetCrudLink(snap.Eav, u.OldAddress, u.NewEntry.Address()); err != nil {
		return nil, err
	}

	if u.Header != nil {
		*u.Header = h
	}
	return followUps, nil
}
