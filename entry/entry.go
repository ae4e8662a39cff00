// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package entry implements the addressable entry and header types of
// spec.md §3/§4.B: App, LinkAdd, LinkRemove, Deletion, AgentID and Dna
// entries, plus the Header that chains them together.
package entry

import (
	"bytes"
	"encoding/json"

	"github.com/luxfi/holo"
	"github.com/luxfi/ids"
)

func unmarshalStrict(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// Kind tags which Entry variant a value holds, mirroring the small
// enum-with-String idiom the teacher uses for choices.Status.
type Kind uint8

const (
	KindApp Kind = iota
	KindLinkAdd
	KindLinkRemove
	KindDeletion
	KindAgentID
	KindDna
)

func (k Kind) String() string {
	switch k {
	case KindApp:
		return "App"
	case KindLinkAdd:
		return "LinkAdd"
	case KindLinkRemove:
		return "LinkRemove"
	case KindDeletion:
		return "Deletion"
	case KindAgentID:
		return "AgentId"
	case KindDna:
		return "Dna"
	default:
		return "Invalid"
	}
}

// Entry is the tagged variant record of spec.md §3. Only the fields
// relevant to Kind are populated; Address()/Content() dispatch on Kind.
type Entry struct {
	Kind Kind

	// App
	AppType  string
	AppBytes []byte

	// LinkAdd
	Base   holo.Address
	Target holo.Address
	Tag    string

	// LinkRemove
	LinkAddAddress holo.Address

	// Deletion
	DeletedEntryAddress holo.Address
	// DeletedEntryType is a supplement restored from
	// original_source/core_types/src/entry/deletion_entry.rs's sibling
	// system-entry handling: it is set by whoever constructs the Deletion
	// (action.RemoveEntry passes its DeletedType). The validation pipeline
	// does not read it. It is metadata, not wire content: it never
	// participates in Content()/Address(), and FromContent leaves it empty.
	DeletedEntryType string

	// AgentId
	AgentKey string

	// Dna
	DnaHash holo.Address
}

// wireEntry is the canonical JSON shape. Only the fields relevant to a
// given Kind are emitted; this keeps Address() a pure function of the
// semantically relevant content.
type wireEntry struct {
	Kind                string `json:"kind"`
	Type                string `json:"type,omitempty"`
	Bytes               []byte `json:"bytes,omitempty"`
	Base                string `json:"base,omitempty"`
	Target              string `json:"target,omitempty"`
	Tag                 string `json:"tag,omitempty"`
	LinkAddAddress      string `json:"link_add_address,omitempty"`
	DeletedEntryAddress string `json:"deleted_entry_address,omitempty"`
	AgentKey            string `json:"agent_key,omitempty"`
	DnaHash             string `json:"dna_hash,omitempty"`
}

func (e Entry) toWire() wireEntry {
	w := wireEntry{Kind: e.Kind.String()}
	switch e.Kind {
	case KindApp:
		w.Type = e.AppType
		w.Bytes = e.AppBytes
	case KindLinkAdd:
		w.Base = e.Base.String()
		w.Target = e.Target.String()
		w.Tag = e.Tag
	case KindLinkRemove:
		w.LinkAddAddress = e.LinkAddAddress.String()
	case KindDeletion:
		w.DeletedEntryAddress = e.DeletedEntryAddress.String()
	case KindAgentID:
		w.AgentKey = e.AgentKey
	case KindDna:
		w.DnaHash = e.DnaHash.String()
	}
	return w
}

// Content returns the canonical bytes this Entry's Address is computed
// over (spec.md §4.B).
func (e Entry) Content() []byte {
	canon, err := holo.MarshalCanonical(e.toWire())
	if err != nil {
		// toWire only ever produces plain strings/bytes/slices: marshaling
		// it cannot fail in practice.
		panic(err)
	}
	return canon
}

// Address returns the SHA-256 of Content() (spec.md §4.B, §8 invariant 1).
func (e Entry) Address() holo.Address {
	return holo.HashContent(e.Content())
}

// FromContent parses canonical bytes back into an Entry such that
// Address(FromContent(e.Content())) == e.Address() (spec.md §4.B).
func FromContent(content []byte) (Entry, error) {
	var w wireEntry
	if err := unmarshalStrict(content, &w); err != nil {
		return Entry{}, err
	}
	e := Entry{}
	switch w.Kind {
	case KindApp.String():
		e.Kind = KindApp
		e.AppType = w.Type
		e.AppBytes = w.Bytes
	case KindLinkAdd.String():
		e.Kind = KindLinkAdd
		e.Tag = w.Tag
		e.Base, _ = ids.FromString(w.Base)
		e.Target, _ = ids.FromString(w.Target)
	case KindLinkRemove.String():
		e.Kind = KindLinkRemove
		e.LinkAddAddress, _ = ids.FromString(w.LinkAddAddress)
	case KindDeletion.String():
		e.Kind = KindDeletion
		e.DeletedEntryAddress, _ = ids.FromString(w.DeletedEntryAddress)
	case KindAgentID.String():
		e.Kind = KindAgentID
		e.AgentKey = w.AgentKey
	case KindDna.String():
		e.Kind = KindDna
		e.DnaHash, _ = ids.FromString(w.DnaHash)
	default:
		return Entry{}, &unknownKindError{w.Kind}
	}
	return e, nil
}

type unknownKindError struct{ kind string }

func (e *unknownKindError) Error() string { return "entry: unknown kind " + e.kind }

// NewApp constructs an App entry.
func NewApp(appType string, data []byte) Entry {
	return Entry{Kind: KindApp, AppType: appType, AppBytes: data}
}

// NewLinkAdd constructs a LinkAdd entry.
func NewLinkAdd(base, target holo.Address, tag string) Entry {
	return Entry{Kind: KindLinkAdd, Base: base, Target: target, Tag: tag}
}

// NewLinkRemove constructs a LinkRemove entry retracting linkAddAddress.
func NewLinkRemove(linkAddAddress holo.Address) Entry {
	return Entry{Kind: KindLinkRemove, LinkAddAddress: linkAddAddress}
}

// NewDeletion constructs a Deletion entry marking deletedEntryAddress as
// removed. deletedEntryType is the supplemental metadata described above.
func NewDeletion(deletedEntryAddress holo.Address, deletedEntryType string) Entry {
	return Entry{Kind: KindDeletion, DeletedEntryAddress: deletedEntryAddress, DeletedEntryType: deletedEntryType}
}

// NewAgentID constructs a system AgentId entry.
func NewAgentID(key string) Entry {
	return Entry{Kind: KindAgentID, AgentKey: key}
}

// NewDna constructs a system Dna entry referencing the DNA's hash.
func NewDna(dnaHash holo.Address) Entry {
	return Entry{Kind: KindDna, DnaHash: dnaHash}
}

// IsSystem reports whether the entry is a protocol-defined system entry
// (LinkAdd, LinkRemove, Deletion, AgentId, Dna) rather than an App entry.
func (e Entry) IsSystem() bool {
	return e.Kind != KindApp
}
