// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"sync"

	"github.com/luxfi/holo"
)

// MemContentStore is an in-memory reference ContentStore. Grounded on the
// teacher's engine/dag/state.serializer (mutex-guarded map, single writer).
type MemContentStore struct {
	mu   sync.RWMutex
	data map[holo.Address][]byte
}

// NewMemContentStore returns an empty MemContentStore.
func NewMemContentStore() *MemContentStore {
	return &MemContentStore{data: make(map[holo.Address][]byte)}
}

// Add stores content, addressed by its hash. Storing the same bytes twice
// is a no-op (spec.md §4.C: "Adding the same address twice is idempotent").
func (s *MemContentStore) Add(content []byte) error {
	addr := holo.HashContent(content)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data[addr]; exists {
		return nil
	}
	s.data[addr] = append([]byte(nil), content...)
	return nil
}

// Fetch returns the content stored at address, if any.
func (s *MemContentStore) Fetch(address holo.Address) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.data[address]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), content...), true, nil
}

// MemEavStore is an in-memory reference EavStore.
type MemEavStore struct {
	mu   sync.RWMutex
	tups []EAV
}

// NewMemEavStore returns an empty MemEavStore.
func NewMemEavStore() *MemEavStore {
	return &MemEavStore{}
}

// AddEAV appends a tuple, ignoring exact duplicates (spec.md §4.C:
// "idempotent on duplicates").
func (s *MemEavStore) AddEAV(eav EAV) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tups {
		if t == eav {
			return nil
		}
	}
	s.tups = append(s.tups, eav)
	return nil
}

// FetchEAV returns the insertion-ordered tuples matching selector.
func (s *MemEavStore) FetchEAV(selector EAVSelector) ([]EAV, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []EAV
	for _, t := range s.tups {
		if selector.Entity != nil && t.Entity != *selector.Entity {
			continue
		}
		if selector.Attribute != nil && t.Attribute != *selector.Attribute {
			continue
		}
		if selector.Value != nil && t.Value != *selector.Value {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
