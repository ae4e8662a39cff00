// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package entry

import (
	"time"

	"github.com/luxfi/holo"
	"github.com/luxfi/ids"
)

// Provenance is a signature over an entry's address by the agent that
// authored it (spec.md §3, glossary).
type Provenance struct {
	AgentAddress ids.NodeID
	Signature    []byte
}

// Header is the addressable metadata record pointing at an entry, its
// chain predecessor, and its signatures (spec.md §3).
type Header struct {
	EntryType           string
	EntryAddress        holo.Address
	Timestamp           time.Time
	PrevHeaderAddress   *holo.Address
	SameTypePrevAddress *holo.Address
	Provenances         []Provenance
}

type wireProvenance struct {
	AgentAddress string `json:"agent_address"`
	Signature    []byte `json:"signature"`
}

type wireHeader struct {
	EntryType           string           `json:"entry_type"`
	EntryAddress        string           `json:"entry_address"`
	Timestamp           int64            `json:"timestamp"`
	PrevHeaderAddress   string           `json:"prev_header_address,omitempty"`
	SameTypePrevAddress string           `json:"same_type_prev_address,omitempty"`
	Provenances         []wireProvenance `json:"provenances"`
}

func (h Header) toWire() wireHeader {
	w := wireHeader{
		EntryType:    h.EntryType,
		EntryAddress: h.EntryAddress.String(),
		Timestamp:    h.Timestamp.UnixNano(),
	}
	if h.PrevHeaderAddress != nil {
		w.PrevHeaderAddress = h.PrevHeaderAddress.String()
	}
	if h.SameTypePrevAddress != nil {
		w.SameTypePrevAddress = h.SameTypePrevAddress.String()
	}
	for _, p := range h.Provenances {
		w.Provenances = append(w.Provenances, wireProvenance{
			AgentAddress: p.AgentAddress.String(),
			Signature:    p.Signature,
		})
	}
	return w
}

// Content returns the canonical bytes the Header's Address is computed
// over (spec.md §4.B).
func (h Header) Content() []byte {
	canon, err := holo.MarshalCanonical(h.toWire())
	if err != nil {
		panic(err)
	}
	return canon
}

// Address returns the SHA-256 of Content().
func (h Header) Address() holo.Address {
	return holo.HashContent(h.Content())
}

// HeaderFromContent parses canonical bytes back into a Header.
func HeaderFromContent(content []byte) (Header, error) {
	var w wireHeader
	if err := unmarshalStrict(content, &w); err != nil {
		return Header{}, err
	}
	h := Header{
		EntryType: w.EntryType,
		Timestamp: time.Unix(0, w.Timestamp).UTC(),
	}
	var err error
	if h.EntryAddress, err = ids.FromString(w.EntryAddress); err != nil {
		return Header{}, err
	}
	if w.PrevHeaderAddress != "" {
		addr, err := ids.FromString(w.PrevHeaderAddress)
		if err != nil {
			return Header{}, err
		}
		h.PrevHeaderAddress = &addr
	}
	if w.SameTypePrevAddress != "" {
		addr, err := ids.FromString(w.SameTypePrevAddress)
		if err != nil {
			return Header{}, err
		}
		h.SameTypePrevAddress = &addr
	}
	for _, p := range w.Provenances {
		agent, err := ids.NodeIDFromString(p.AgentAddress)
		if err != nil {
			return Header{}, err
		}
		h.Provenances = append(h.Provenances, Provenance{AgentAddress: agent, Signature: p.Signature})
	}
	return h, nil
}

// NewHeader constructs a Header ready to be signed and appended to a chain.
func NewHeader(entryType string, entryAddress holo.Address, prev, sameTypePrev *holo.Address, now time.Time) Header {
	return Header{
		EntryType:           entryType,
		EntryAddress:        entryAddress,
		Timestamp:           now,
		PrevHeaderAddress:   prev,
		SameTypePrevAddress: sameTypePrev,
	}
}
