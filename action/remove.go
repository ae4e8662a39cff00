// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package action

import (
	"context"

	"github.com/luxfi/holo"
	"github.com/luxfi/holo/chain"
	"github.com/luxfi/holo/entry"
	"github.com/luxfi/holo/state"
	"github.com/luxfi/holo/validation"
)

// RemoveEntry commits a Deletion entry for Address and marks it DELETED
// (spec.md §4.E: "commit a Deletion; set status DELETED"). DeletedType is
// the supplemental metadata restored from
// original_source/core_types/src/entry/deletion_entry.rs, carried on the
// Deletion entry as Entry.DeletedEntryType; the validation pipeline does not
// read it.
type RemoveEntry struct {
	Address     holo.Address
	DeletedType string
	Zome        string
	Validate    Validator
	Publisher   Publisher

	Header *entry.Header
}

// Apply implements state.Action.
func (r RemoveEntry) Apply(ctx context.Context, snap state.Snapshot) ([]state.Action, error) {
	deletion := entry.NewDeletion(r.Address, r.DeletedType)
	vctx := validationContext{Zome: r.Zome, EntryType: entry.KindDeletion.String(), Lifecycle: validation.Chain}
	definition := func(ctx context.Context) (validation.PackageDefinition, error) {
		return validation.DeletionPackageDefinition(), nil
	}
	h, followUps, err := commitEntry(ctx, snap, deletion, vctx, validation.Delete, definition, r.Validate, r.Publisher, chain.StatusLive)
	if err != nil {
		return nil, err
	}

	if err := chain.SetCrudStatus(snap.Eav, r.Address, chain.StatusDeleted); err != nil {
		return nil, err
	}

	if r.Header != nil {
		*r.Header = h
	}
	return followUps, nil
}
