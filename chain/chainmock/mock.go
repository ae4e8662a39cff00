// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chainmock provides hand-written mocks of the chain package's
// storage traits, in the teacher's lighter mock style
// (engine/chain/block/blockmock): a *F func field per method, Cant*
// assertion flags checked against an optional *testing.T, and
// NewContentStore/NewEavStore(ctrl) constructors that accept a *gomock.Controller purely for
// call-site compatibility with code written against the full gomock idiom.
package chainmock

import (
	"testing"

	"github.com/luxfi/holo"
	"github.com/luxfi/holo/chain"
	"go.uber.org/mock/gomock"
)

// Ensure ContentStore implements chain.ContentStore.
var _ chain.ContentStore = (*ContentStore)(nil)

// ContentStore is a mock implementation of chain.ContentStore.
type ContentStore struct {
	T         *testing.T
	CantAdd   bool
	CantFetch bool

	AddF   func(content []byte) error
	FetchF func(address holo.Address) ([]byte, bool, error)
}

// NewContentStore creates a new ContentStore mock. ctrl is accepted for
// gomock-constructor compatibility but not used.
func NewContentStore(ctrl *gomock.Controller) *ContentStore {
	return &ContentStore{}
}

func (m *ContentStore) Add(content []byte) error {
	if m.AddF != nil {
		return m.AddF(content)
	}
	if m.CantAdd && m.T != nil {
		m.T.Fatal("unexpected Add")
	}
	return nil
}

func (m *ContentStore) Fetch(address holo.Address) ([]byte, bool, error) {
	if m.FetchF != nil {
		return m.FetchF(address)
	}
	if m.CantFetch && m.T != nil {
		m.T.Fatal("unexpected Fetch")
	}
	return nil, false, nil
}

// Ensure EavStore implements chain.EavStore.
var _ chain.EavStore = (*EavStore)(nil)

// EavStore is a mock implementation of chain.EavStore.
type EavStore struct {
	T            *testing.T
	CantAddEAV   bool
	CantFetchEAV bool

	AddEAVF   func(eav chain.EAV) error
	FetchEAVF func(selector chain.EAVSelector) ([]chain.EAV, error)
}

// NewEavStore creates a new EavStore mock. ctrl is accepted for
// gomock-constructor compatibility but not used.
func NewEavStore(ctrl *gomock.Controller) *EavStore {
	return &EavStore{}
}

func (m *EavStore) AddEAV(eav chain.EAV) error {
	if m.AddEAVF != nil {
		return m.AddEAVF(eav)
	}
	if m.CantAddEAV && m.T != nil {
		m.T.Fatal("unexpected AddEAV")
	}
	return nil
}

func (m *EavStore) FetchEAV(selector chain.EAVSelector) ([]chain.EAV, error) {
	if m.FetchEAVF != nil {
		return m.FetchEAVF(selector)
	}
	if m.CantFetchEAV && m.T != nil {
		m.T.Fatal("unexpected FetchEAV")
	}
	return nil, nil
}
