// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dna

import "fmt"

// GetZome returns the named Zome, or nil if it does not exist (spec.md
// §4.A: "get_zome(name) -> Zome?").
func (d *DNA) GetZome(name string) (*Zome, bool) {
	z, ok := d.Zomes.Get(name)
	if !ok {
		return nil, false
	}
	return &z, true
}

// GetCapability returns the named Capability within zome, or
// ErrCapabilityNotFound.
func (d *DNA) GetCapability(zome *Zome, name string) (*Capability, error) {
	c, ok := zome.Capabilities.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCapabilityNotFound, name)
	}
	return &c, nil
}

// GetCapabilityByZomeName looks up zomeName then capName within it,
// surfacing ErrZomeNotFound / ErrCapabilityNotFound as appropriate.
func (d *DNA) GetCapabilityByZomeName(zomeName, capName string) (*Capability, error) {
	z, ok := d.GetZome(zomeName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrZomeNotFound, zomeName)
	}
	return d.GetCapability(z, capName)
}

// GetWasm returns the WASM bytecode for zomeName, or nil if the zome does
// not exist (spec.md §4.A: "get_wasm(zome_name) -> bytes?").
func (d *DNA) GetWasm(zomeName string) ([]byte, bool) {
	z, ok := d.GetZome(zomeName)
	if !ok {
		return nil, false
	}
	return z.Code.Code, true
}

// GetZomeNameForAppEntryType returns the name of the first zome, in
// definition order, whose entry_types contains entryType (spec.md §4.A,
// §9: "one zome per app entry type ... returns the first match in
// zome-definition order").
func (d *DNA) GetZomeNameForAppEntryType(entryType string) (string, bool) {
	var found string
	var ok bool
	d.Zomes.Range(func(zomeName string, z Zome) bool {
		if _, present := z.EntryTypes.Get(entryType); present {
			found, ok = zomeName, true
			return false
		}
		return true
	})
	return found, ok
}

// GetEntryTypeDef returns the EntryTypeDef for entryType using the same
// first-match-in-definition-order traversal as GetZomeNameForAppEntryType.
func (d *DNA) GetEntryTypeDef(entryType string) (*EntryTypeDef, bool) {
	var found EntryTypeDef
	var ok bool
	d.Zomes.Range(func(_ string, z Zome) bool {
		if def, present := z.EntryTypes.Get(entryType); present {
			found, ok = def, true
			return false
		}
		return true
	})
	if !ok {
		return nil, false
	}
	return &found, true
}
