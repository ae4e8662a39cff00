// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ordered implements a string-keyed map that preserves insertion
// (equivalently, source-JSON) order. The DNA model (spec.md §3) requires
// zomes, entry types and capabilities to be "ordered mapping"s: lookups
// such as get_zome_name_for_app_entry_type must traverse zomes "in
// definition order" (spec.md §4.A), which a plain Go map cannot preserve
// across a JSON round-trip.
package ordered

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Map is an insertion-ordered string-keyed map.
type Map[V any] struct {
	keys   []string
	values map[string]V
}

// New returns an empty ordered Map.
func New[V any]() *Map[V] {
	return &Map[V]{values: make(map[string]V)}
}

// Set inserts or updates the value for key, appending key to the order if
// it is new.
func (m *Map[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key and whether it was present. A nil Map
// behaves like an empty one so a zero-value *Map from an omitted JSON field
// is always safe to query.
func (m *Map[V]) Get(key string) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion (definition) order.
func (m *Map[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Range calls fn for each entry in insertion order, stopping early if fn
// returns false.
func (m *Map[V]) Range(fn func(key string, value V) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// MarshalJSON writes the map as a JSON object with keys in insertion order.
// A nil Map marshals as an empty object.
func (m *Map[V]) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses a JSON object, preserving the source key order.
func (m *Map[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return fmt.Errorf("ordered: expected JSON object, got %v", tok)
	}

	m.keys = nil
	m.values = make(map[string]V)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("ordered: expected string key, got %v", keyTok)
		}
		var value V
		if err := dec.Decode(&value); err != nil {
			return err
		}
		m.Set(key, value)
	}

	if _, err := dec.Token(); err != nil { // closing '}'
		return err
	}
	return nil
}
