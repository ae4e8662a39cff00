// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validation

import (
	"context"
	"encoding/json"

	"github.com/luxfi/holo"
	"github.com/luxfi/holo/chain"
	"github.com/luxfi/holo/entry"
	"github.com/luxfi/holo/ribosome"
)

// Direction distinguishes a link's two ends when asking the application
// which validation package a LinkAdd/LinkRemove needs (spec.md §4.D step 1:
// "get_validation_package_for_link(entry_type, tag, direction)").
type Direction uint8

const (
	LinksTo Direction = iota
	LinkedFrom
)

func (d Direction) String() string {
	if d == LinkedFrom {
		return "LinkedFrom"
	}
	return "LinksTo"
}

type packageDefWire struct {
	Kind        string `json:"kind"`
	CustomBytes []byte `json:"custom_bytes,omitempty"`
}

func decodePackageDefinition(raw []byte) (PackageDefinition, error) {
	var w packageDefWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return PackageDefinition{}, holo.RibosomeFailed(err.Error())
	}
	switch w.Kind {
	case DefEntry.String():
		return PackageDefinition{Kind: DefEntry}, nil
	case DefChainEntries.String():
		return PackageDefinition{Kind: DefChainEntries}, nil
	case DefChainHeaders.String():
		return PackageDefinition{Kind: DefChainHeaders}, nil
	case DefChainFull.String():
		return PackageDefinition{Kind: DefChainFull}, nil
	case DefCustom.String():
		return PackageDefinition{Kind: DefCustom, CustomBytes: w.CustomBytes}, nil
	default:
		return PackageDefinition{}, ErrUnknownPackageDefinition
	}
}

// appEntryPackageArg is the argument serialized to
// __hdk_get_validation_package_for_entry_type (spec.md §4.D step 1).
type appEntryPackageArg struct {
	EntryType string `json:"entry_type"`
}

// linkPackageArg is the argument serialized to
// __hdk_get_validation_package_for_link.
type linkPackageArg struct {
	EntryType string `json:"entry_type"`
	Tag       string `json:"tag"`
	Direction string `json:"direction"`
}

// DefinitionFor determines the PackageDefinition for an App entry type by
// invoking the application's __hdk_get_validation_package_for_entry_type
// export. A missing export (the application never registered a hook for
// this entry type) yields holo.ErrNotImplemented (spec.md §4.D step 1:
// "Unmapped entry types ⇒ NotImplemented").
func DefinitionFor(ctx context.Context, host ribosome.Host, zome, entryType string) (PackageDefinition, error) {
	arg, err := json.Marshal(appEntryPackageArg{EntryType: entryType})
	if err != nil {
		return PackageDefinition{}, holo.RibosomeFailed(err.Error())
	}
	raw, err := host.Call(ctx, zome, ribosome.ExportGetValidationPackageForEntry, arg)
	if err != nil {
		if err == ribosome.ErrExportNotFound {
			return PackageDefinition{}, holo.ErrNotImplemented
		}
		return PackageDefinition{}, holo.RibosomeFailed(err.Error())
	}
	return decodePackageDefinition(raw)
}

// DefinitionForLink determines the PackageDefinition for a link entry by
// invoking __hdk_get_validation_package_for_link.
func DefinitionForLink(ctx context.Context, host ribosome.Host, zome, entryType, tag string, direction Direction) (PackageDefinition, error) {
	arg, err := json.Marshal(linkPackageArg{EntryType: entryType, Tag: tag, Direction: direction.String()})
	if err != nil {
		return PackageDefinition{}, holo.RibosomeFailed(err.Error())
	}
	raw, err := host.Call(ctx, zome, ribosome.ExportGetValidationPackageForLink, arg)
	if err != nil {
		if err == ribosome.ErrExportNotFound {
			return PackageDefinition{}, holo.ErrNotImplemented
		}
		return PackageDefinition{}, holo.RibosomeFailed(err.Error())
	}
	return decodePackageDefinition(raw)
}

// BuildPackage materializes def into a ValidationPackage against the local
// chain (spec.md §4.D step 2). header is the header of the entry being
// validated (used as Entry's package header in all cases); store resolves
// the chain's entries when a ChainEntries/ChainFull package is requested.
func BuildPackage(def PackageDefinition, header entry.Header, c *chain.Chain, store chain.ContentStore) (ValidationPackage, error) {
	pkg := ValidationPackage{ChainHeader: &header}
	switch def.Kind {
	case DefEntry:
		// Header only; nothing further to materialize.
	case DefChainEntries:
		entries, err := c.Entries(store)
		if err != nil {
			return ValidationPackage{}, err
		}
		pkg.ChainEntries = entries
	case DefChainHeaders:
		pkg.ChainHeaders = c.Iter()
	case DefChainFull:
		entries, err := c.Entries(store)
		if err != nil {
			return ValidationPackage{}, err
		}
		pkg.ChainEntries = entries
		pkg.ChainHeaders = c.Iter()
	case DefCustom:
		pkg.Custom = def.CustomBytes
	default:
		return ValidationPackage{}, ErrUnknownPackageDefinition
	}
	return pkg, nil
}

// DeletionPackageDefinition is the fixed definition for Deletion entries:
// spec.md §4.D step 1, "For system entries: Deletion ⇒ ChainFull".
func DeletionPackageDefinition() PackageDefinition {
	return PackageDefinition{Kind: DefChainFull}
}
