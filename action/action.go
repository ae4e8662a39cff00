// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package action implements the agent actions of spec.md §4.E: Commit,
// UpdateEntry, RemoveEntry, AddLink, RemoveLink. Each is a state.Action
// dispatched through the reducer (state.State.Dispatch), validated before
// any chain mutation, and idempotent over retries the way spec.md §4.E
// requires: content addresses are stable (ContentStore.Add is a no-op on a
// re-add) and header append is guarded by prev-header equality
// (chain.Chain.Push rejects a mismatched prev with ErrChainDivergence).
package action

import (
	"context"
	"time"

	"github.com/luxfi/holo"
	"github.com/luxfi/holo/chain"
	"github.com/luxfi/holo/entry"
	"github.com/luxfi/holo/state"
	"github.com/luxfi/holo/validation"
)

// packageDefiner determines the ValidationPackageDefinition a commit should
// build against, per spec.md §4.D step 1. Each action file supplies its own
// closure: App/Modify entries ask the zome's
// __hdk_get_validation_package_for_entry_type, link entries ask
// __hdk_get_validation_package_for_link, and Deletion uses the fixed
// ChainFull mapping system entries get without a callback.
type packageDefiner func(ctx context.Context) (validation.PackageDefinition, error)

// Publisher is the side-effect a Commit-family action uses to announce a
// newly committed entry (spec.md §4.E: "emit Publish"). network.Resolver
// satisfies this; it is declared here rather than imported so action never
// depends on network.
type Publisher interface {
	Publish(ctx context.Context, address holo.Address)
}

// Validator runs the validation pipeline for a single entry. It is the
// thin seam between this package and validation.Validate, parameterized so
// tests can stub it without standing up a full ribosome.Host.
type Validator func(ctx context.Context, e entry.Entry, data validation.ValidationData) error

// context carried by every action in this package, fixing the zome/entry
// type the validator should dispatch against and the lifecycle the commit
// targets.
type validationContext struct {
	Zome      string
	EntryType string
	Lifecycle validation.Lifecycle
}

// commitEntry is the shared core of Commit/UpdateEntry/RemoveEntry/AddLink/
// RemoveLink: validate, append the header, write to the content store, set
// CRUD status, and emit a Publish follow-up.
func commitEntry(
	ctx context.Context,
	snap state.Snapshot,
	e entry.Entry,
	vctx validationContext,
	act validation.Action,
	definition packageDefiner,
	validate Validator,
	publisher Publisher,
	status chain.CrudStatus,
) (entry.Header, []state.Action, error) {
	def, err := definition(ctx)
	if err != nil {
		return entry.Header{}, nil, err
	}
	pkg, err := validation.BuildPackage(def, entry.Header{}, snap.Chain, snap.Content)
	if err != nil {
		return entry.Header{}, nil, err
	}
	data := validation.ValidationData{Package: pkg, Lifecycle: vctx.Lifecycle, Action: act}

	if validate != nil {
		if err := validate(ctx, e, data); err != nil {
			return entry.Header{}, nil, err
		}
	}

	top, hasTop := snap.Chain.Top()
	var prev *holo.Address
	if hasTop {
		addr := top.Address()
		prev = &addr
	}
	var sameTypePrev *holo.Address
	if sameType := snap.Chain.IterType(vctx.EntryType); len(sameType) > 0 {
		addr := sameType[0].Address()
		sameTypePrev = &addr
	}

	h := entry.NewHeader(vctx.EntryType, e.Address(), prev, sameTypePrev, time.Now().UTC())
	if err := snap.Chain.Push(h); err != nil {
		return entry.Header{}, nil, err
	}
	if err := snap.Content.Add(e.Content()); err != nil {
		return entry.Header{}, nil, err
	}
	if err := chain.SetCrudStatus(snap.Eav, e.Address(), status); err != nil {
		return entry.Header{}, nil, err
	}

	var followUps []state.Action
	if publisher != nil {
		followUps = append(followUps, publishAction{publisher: publisher, address: e.Address()})
	}
	return h, followUps, nil
}

// publishAction is the follow-up action Commit-family actions emit.
type publishAction struct {
	publisher Publisher
	address   holo.Address
}

func (a publishAction) Apply(ctx context.Context, _ state.Snapshot) ([]state.Action, error) {
	a.publisher.Publish(ctx, a.address)
	return nil, nil
}
