// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validation

import (
	"context"
	"encoding/json"

	"github.com/luxfi/holo"
	"github.com/luxfi/holo/entry"
	"github.com/luxfi/holo/ribosome"
)

// PackageResolver fetches a remote validation package for a header this
// agent did not author (spec.md §4.D "Remote packages"). network.Resolver
// satisfies this interface; it is declared here, not imported, so that
// validation never depends on network.
type PackageResolver interface {
	GetValidationPackage(ctx context.Context, header entry.Header) (*ValidationPackage, error)
}

// ResolveRemotePackage fetches and checks the package for a header this
// agent is validating but did not author: "The package's chain_header must
// equal that header; mismatch ⇒ ValidationFailed(\"package mismatch\")"
// (spec.md §4.D).
func ResolveRemotePackage(ctx context.Context, resolver PackageResolver, header entry.Header) (ValidationPackage, error) {
	pkg, err := resolver.GetValidationPackage(ctx, header)
	if err != nil {
		return ValidationPackage{}, err
	}
	if pkg == nil {
		return ValidationPackage{}, holo.ErrTimeout
	}
	if pkg.ChainHeader == nil || pkg.ChainHeader.Address() != header.Address() {
		return ValidationPackage{}, holo.ValidationFailed("package mismatch")
	}
	return *pkg, nil
}

// callbackForKind selects which export the lifecycle × action matrix routes
// to for e's kind (spec.md §4.D "Validate" table). App entries route to
// __hdk_validate_app_entry for every action. ok is false for link entries
// other than Commit, Deletion other than Delete, and AgentId/Dna entries;
// validate reports those as holo.ErrInvalidOperationOnSysEntry.
func callbackForKind(kind entry.Kind, action Action) (ribosome.Export, bool) {
	switch kind {
	case entry.KindApp:
		return ribosome.ExportValidateAppEntry, true
	case entry.KindLinkAdd, entry.KindLinkRemove:
		if action == Commit {
			return ribosome.ExportValidateLink, true
		}
		return "", false
	case entry.KindDeletion:
		if action == Delete {
			return ribosome.ExportValidateAppEntry, true
		}
		return "", false
	default:
		return "", false
	}
}

type validateArg struct {
	Entry json.RawMessage `json:"entry"`
	Data  ValidationData  `json:"validation_data"`
}

// Validate runs e through the lifecycle × action dispatch matrix (spec.md
// §4.D "Validate"). zome names the zome whose export should be invoked.
// entryType is not passed to the callback: the callback receives e's own
// canonical content plus data, so a Deletion is validated on the Deletion
// entry itself, not on the entry it deletes. data.Package must already be
// resolved (BuildPackage locally, or ResolveRemotePackage for non-author
// validators) and for a Modify action must carry the prior entry (enforced
// below via requirePriorEntry). metrics may be nil.
func Validate(ctx context.Context, host ribosome.Host, zome, entryType string, e entry.Entry, data ValidationData, metrics *holo.Metrics) error {
	if err := validate(ctx, host, zome, entryType, e, data); err != nil {
		if metrics != nil {
			metrics.ValidationFailed.Inc()
		}
		return err
	}
	if metrics != nil {
		metrics.ValidationPassed.Inc()
	}
	return nil
}

func validate(ctx context.Context, host ribosome.Host, zome, entryType string, e entry.Entry, data ValidationData) error {
	if data.Action == Modify {
		if err := requirePriorEntry(data.Package); err != nil {
			return err
		}
	}

	export, ok := callbackForKind(e.Kind, data.Action)
	if !ok {
		return holo.ErrInvalidOperationOnSysEntry
	}

	arg, err := json.Marshal(validateArg{Entry: json.RawMessage(e.Content()), Data: data})
	if err != nil {
		return holo.RibosomeFailed(err.Error())
	}

	result, err := host.Call(ctx, zome, export, arg)
	if err == ribosome.ErrExportNotFound {
		return notImplementedPolicy(e, data.Lifecycle)
	}
	if err != nil {
		return holo.RibosomeFailed(err.Error())
	}
	if len(result) == 0 {
		return nil // Valid.
	}

	var reason struct {
		Reason string `json:"reason"`
	}
	if jerr := json.Unmarshal(result, &reason); jerr != nil || reason.Reason == "" {
		return holo.ValidationFailed(string(result))
	}
	return holo.ValidationFailed(reason.Reason)
}

// requirePriorEntry enforces
// original_source/core/src/nucleus/ribosome/api/update_entry.rs: a Modify
// action's package must embed the entry being replaced, which this pipeline
// represents as the first (most recent) entry of a ChainEntries/ChainFull
// package.
func requirePriorEntry(pkg ValidationPackage) error {
	if len(pkg.ChainEntries) == 0 {
		return ErrRequiresPriorEntry
	}
	return nil
}

// notImplementedPolicy applies spec.md §4.D's invariant: "NotImplemented is
// treated as reject in DHT lifecycle and accept-passthrough in system
// entries not expected to have user hooks". App entries in Chain/Meta
// lifecycle that lack a hook are also rejected, since the application chose
// to define the entry type but not validate it — the conservative
// interpretation spec.md §9 recommends.
func notImplementedPolicy(e entry.Entry, lifecycle Lifecycle) error {
	if e.IsSystem() && lifecycle != DHT {
		return nil
	}
	return holo.ErrNotImplemented
}
