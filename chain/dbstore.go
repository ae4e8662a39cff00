// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"encoding/json"
	"fmt"

	"github.com/luxfi/database"
	"github.com/luxfi/holo"
)

// DBContentStore is a ContentStore backed by a github.com/luxfi/database
// key/value database, for agents that persist across restarts. Grounded on
// the teacher's engine/dag/state.serializer and chains/atomic/memory.go,
// both of which take a database.Database directly rather than an in-memory
// map when persistence matters.
type DBContentStore struct {
	db database.Database
}

// NewDBContentStore wraps db as a ContentStore.
func NewDBContentStore(db database.Database) *DBContentStore {
	return &DBContentStore{db: db}
}

// Add stores content under its hash address. Re-adding existing content is
// a cheap idempotent Has-then-skip, matching the in-memory store's contract.
func (s *DBContentStore) Add(content []byte) error {
	addr := holo.HashContent(content)
	key := addr[:]
	has, err := s.db.Has(key)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	return s.db.Put(key, content)
}

// Fetch returns the content stored at address, if any.
func (s *DBContentStore) Fetch(address holo.Address) ([]byte, bool, error) {
	content, err := s.db.Get(address[:])
	if err != nil {
		if err == database.ErrNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	return content, true, nil
}

// DBEavStore is an EavStore backed by a database.Database. Each tuple is
// stored under a key that begins with its zero-padded insertion sequence
// number, so a key-ordered scan yields tuples in insertion order; the value
// carries the full tuple, and FetchEAV scans every key and filters on
// entity/attribute/value in-process.
type DBEavStore struct {
	db database.Database
}

// NewDBEavStore wraps db as an EavStore.
func NewDBEavStore(db database.Database) *DBEavStore {
	return &DBEavStore{db: db}
}

func eavKey(eav EAV, seq int) []byte {
	return []byte(fmt.Sprintf("%08d:%s:%s:%s", seq, eav.Entity.String(), eav.Attribute, eav.Value))
}

// AddEAV appends a tuple. A best-effort duplicate scan keeps it idempotent;
// the sequence prefix in the key preserves insertion order for FetchEAV.
func (s *DBEavStore) AddEAV(eav EAV) error {
	existing, err := s.FetchEAV(EAVSelector{Entity: &eav.Entity, Attribute: &eav.Attribute, Value: &eav.Value})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	seq, err := s.nextSeq()
	if err != nil {
		return err
	}
	val, err := json.Marshal(eav)
	if err != nil {
		return err
	}
	return s.db.Put(eavKey(eav, seq), val)
}

func (s *DBEavStore) nextSeq() (int, error) {
	it := s.db.NewIterator()
	defer it.Release()
	n := 0
	for it.Next() {
		n++
	}
	return n, it.Error()
}

// FetchEAV scans the store and returns the insertion-ordered tuples
// matching selector.
func (s *DBEavStore) FetchEAV(selector EAVSelector) ([]EAV, error) {
	it := s.db.NewIterator()
	defer it.Release()

	var out []EAV
	for it.Next() {
		var eav EAV
		if err := json.Unmarshal(it.Value(), &eav); err != nil {
			return nil, err
		}
		if selector.Entity != nil && eav.Entity != *selector.Entity {
			continue
		}
		if selector.Attribute != nil && eav.Attribute != *selector.Attribute {
			continue
		}
		if selector.Value != nil && eav.Value != *selector.Value {
			continue
		}
		out = append(out, eav)
	}
	return out, it.Error()
}
