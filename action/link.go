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

// linkMetaAttr is the EAV attribute under which link-add/link-remove DHT
// metadata is recorded against the link's base address, keyed by tag so
// FetchEAV(Entity: &base, Attribute: &linkMetaAttr) returns every tag ever
// attached to base.
const linkMetaAttr = "link-meta"

// AddLink commits a LinkAdd entry and records its DHT link metadata
// (spec.md §4.E: "commit link entry; update DHT link metadata").
type AddLink struct {
	Base, Target holo.Address
	Tag          string
	Zome         string
	Validate     Validator
	Publisher    Publisher

	// Host asks the zome's __hdk_get_validation_package_for_link for the
	// package definition (spec.md §4.D step 1). A nil Host falls back to
	// DefEntry.
	Host ribosome.Host

	Header *entry.Header
}

// Apply implements state.Action.
func (a AddLink) Apply(ctx context.Context, snap state.Snapshot) ([]state.Action, error) {
	e := entry.NewLinkAdd(a.Base, a.Target, a.Tag)
	vctx := validationContext{Zome: a.Zome, EntryType: entry.KindLinkAdd.String(), Lifecycle: validation.DHT}
	definition := func(ctx context.Context) (validation.PackageDefinition, error) {
		if a.Host == nil {
			return validation.PackageDefinition{Kind: validation.DefEntry}, nil
		}
		return validation.DefinitionForLink(ctx, a.Host, a.Zome, entry.KindLinkAdd.String(), a.Tag, validation.LinksTo)
	}
	h, followUps, err := commitEntry(ctx, snap, e, vctx, validation.Commit, definition, a.Validate, a.Publisher, chain.StatusLive)
	if err != nil {
		return nil, err
	}

	if err := snap.Eav.AddEAV(chain.EAV{Entity: a.Base, Attribute: linkMetaAttr, Value: a.Tag + "->" + a.Target.String()}); err != nil {
		return nil, err
	}

	if a.Header != nil {
		*a.Header = h
	}
	return followUps, nil
}

// RemoveLink commits a LinkRemove entry retracting a previously added
// LinkAdd (spec.md §4.E).
type RemoveLink struct {
	LinkAddAddress holo.Address
	Base           holo.Address
	Tag            string
	Zome           string
	Validate       Validator
	Publisher      Publisher

	// Host asks the zome's __hdk_get_validation_package_for_link for the
	// package definition (spec.md §4.D step 1). A nil Host falls back to
	// DefEntry.
	Host ribosome.Host

	Header *entry.Header
}

// Apply implements state.Action.
func (r RemoveLink) Apply(ctx context.Context, snap state.Snapshot) ([]state.Action, error) {
	e := entry.NewLinkRemove(r.LinkAddAddress)
	vctx := validationContext{Zome: r.Zome, EntryType: entry.KindLinkRemove.String(), Lifecycle: validation.DHT}
	definition := func(ctx context.Context) (validation.PackageDefinition, error) {
		if r.Host == nil {
			return validation.PackageDefinition{Kind: validation.DefEntry}, nil
		}
		return validation.DefinitionForLink(ctx, r.Host, r.Zome, entry.KindLinkRemove.String(), r.Tag, validation.LinkedFrom)
	}
	h, followUps, err := commitEntry(ctx, snap, e, vctx, validation.Commit, definition, r.Validate, r.Publisher, chain.StatusLive)
	if err != nil {
		return nil, err
	}

	if err := snap.Eav.AddEAV(chain.EAV{Entity: r.Base, Attribute: linkMetaAttr, Value: "removed:" + r.Tag}); err != nil {
		return nil, err
	}

	if r.Header != nil {
		*r.Header = h
	}
	return followUps, nil
}
