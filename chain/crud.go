// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/luxfi/holo"
	"github.com/luxfi/ids"
)

// CrudMeta reports an entry's current CRUD status and, if it was modified,
// the address of its successor (spec.md §3 CRUD status metadata).
type CrudMeta struct {
	Status             CrudStatus
	LinkUpdateOrDelete *holo.Address
}

// GetCrudStatus returns the most recent crud-status tuple recorded for
// address, defaulting to Live if none has been recorded yet (a freshly
// committed entry is Live before SetCrudStatus is ever called for it).
func GetCrudStatus(store EavStore, address holo.Address) (CrudStatus, error) {
	attr := attrCrudStatus
	tups, err := store.FetchEAV(EAVSelector{Entity: &address, Attribute: &attr})
	if err != nil {
		return 0, err
	}
	if len(tups) == 0 {
		return StatusLive, nil
	}
	status, ok := ParseCrudStatus(tups[len(tups)-1].Value)
	if !ok {
		return 0, fmt.Errorf("chain: corrupt crud-status value %q for %s", tups[len(tups)-1].Value, address)
	}
	return status, nil
}

// SetCrudStatus records a new status for address. It refuses to transition
// out of a terminal status (spec.md §8 invariant 3).
func SetCrudStatus(store EavStore, address holo.Address, status CrudStatus) error {
	current, err := GetCrudStatus(store, address)
	if err != nil {
		return err
	}
	if current.Terminal() {
		return fmt.Errorf("chain: cannot transition %s from terminal status %s to %s", address, current, status)
	}
	return store.AddEAV(EAV{Entity: address, Attribute: attrCrudStatus, Value: status.String()})
}

// SetCrudLink records that address was modified into successor (spec.md §3:
// "(old_addr, 'crud-link', new_addr) pointing to the successor entry").
func SetCrudLink(store EavStore, address, successor holo.Address) error {
	return store.AddEAV(EAV{Entity: address, Attribute: attrCrudLink, Value: successor.String()})
}

// GetCrudLink returns the successor address recorded for address, if any.
func GetCrudLink(store EavStore, address holo.Address) (holo.Address, bool, error) {
	attr := attrCrudLink
	tups, err := store.FetchEAV(EAVSelector{Entity: &address, Attribute: &attr})
	if err != nil {
		return holo.Address{}, false, err
	}
	if len(tups) == 0 {
		return holo.Address{}, false, nil
	}
	successor, err := parseAddress(tups[len(tups)-1].Value)
	if err != nil {
		return holo.Address{}, false, err
	}
	return successor, true, nil
}

// GetMeta resolves both the status and, if modified, the successor link for
// address in one call (used to build EntryWithMeta, spec.md §4.F).
func GetMeta(store EavStore, address holo.Address) (CrudMeta, error) {
	status, err := GetCrudStatus(store, address)
	if err != nil {
		return CrudMeta{}, err
	}
	meta := CrudMeta{Status: status}
	if status == StatusModified {
		successor, ok, err := GetCrudLink(store, address)
		if err != nil {
			return CrudMeta{}, err
		}
		if ok {
			meta.LinkUpdateOrDelete = &successor
		}
	}
	return meta, nil
}

func parseAddress(s string) (holo.Address, error) {
	return ids.FromString(s)
}
