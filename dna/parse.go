// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dna

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/luxfi/holo"
	"github.com/luxfi/holo/entry"
	"github.com/luxfi/holo/internal/ordered"
)

// systemEntryTypeNames are the protocol-defined entry type names every zome
// is implicitly allowed to declare (spec.md §9: the duplicate check only
// applies to application-defined entry types).
var systemEntryTypeNames = map[string]bool{
	entry.KindLinkAdd.String():    true,
	entry.KindLinkRemove.String(): true,
	entry.KindDeletion.String():   true,
	entry.KindAgentID.String():    true,
	entry.KindDna.String():        true,
}

// Parse decodes a DNA from its JSON form, applying the documented defaults
// for any absent top-level field (spec.md §3, §4.A: "accept absent fields
// (apply defaults); reject type mismatches"). Key presence, not zero-value-
// ness, decides whether a default kicks in, matching the original's
// serde(default) semantics (original_source/core_types/src/dna/mod.rs).
func Parse(data []byte) (*DNA, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("dna: invalid JSON: %w", err)
	}

	d := &DNA{
		DnaSpecVersion: DnaSpecVersion,
		Properties:     json.RawMessage("{}"),
		UUID:           uuid.New().String(),
		Zomes:          ordered.New[Zome](),
	}

	if err := decodeField(raw, "name", &d.Name); err != nil {
		return nil, err
	}
	if err := decodeField(raw, "description", &d.Description); err != nil {
		return nil, err
	}
	if err := decodeField(raw, "version", &d.Version); err != nil {
		return nil, err
	}
	if err := decodeField(raw, "uuid", &d.UUID); err != nil {
		return nil, err
	}
	if err := decodeField(raw, "dna_spec_version", &d.DnaSpecVersion); err != nil {
		return nil, err
	}
	if v, ok := raw["properties"]; ok {
		d.Properties = v
	}
	if v, ok := raw["zomes"]; ok {
		if err := json.Unmarshal(v, d.Zomes); err != nil {
			return nil, fmt.Errorf("dna: zomes: %w", err)
		}
	}

	if err := checkDuplicateAppEntryTypes(d); err != nil {
		return nil, err
	}

	return d, nil
}

func decodeField(raw map[string]json.RawMessage, key string, dst *string) error {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("dna: %s: %w", key, err)
	}
	return nil
}

// checkDuplicateAppEntryTypes rejects DNAs that register the same app entry
// type name in more than one zome (spec.md §9: "Recommend rejecting DNAs
// with duplicate app entry types at parse"). System entry type names
// (LinkAdd, LinkRemove, Deletion, AgentId, Dna) are exempt: every zome may
// declare them and that is not a collision.
func checkDuplicateAppEntryTypes(d *DNA) error {
	seen := make(map[string]string, d.Zomes.Len())
	var errs holo.Errs
	d.Zomes.Range(func(zomeName string, z Zome) bool {
		z.EntryTypes.Range(func(entryType string, _ EntryTypeDef) bool {
			if systemEntryTypeNames[entryType] {
				return true
			}
			if owner, exists := seen[entryType]; exists {
				errs.Add(fmt.Errorf("dna: entry type %q declared in both zome %q and zome %q", entryType, owner, zomeName))
			} else {
				seen[entryType] = zomeName
			}
			return true
		})
		return true
	})
	return errs.Err()
}
