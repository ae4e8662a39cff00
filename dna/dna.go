// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package dna implements the application DNA model: the serialized,
// content-addressed description of entry types, links, capabilities and
// zome bytecode whose hash is the application's identity (spec.md §3, §4.A).
package dna

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/luxfi/holo"
	"github.com/luxfi/holo/internal/ordered"
)

// DnaSpecVersion is the default dna_spec_version applied when absent.
const DnaSpecVersion = "2.0"

// Sharing describes an entry type's DHT sharing policy.
type Sharing string

const (
	SharingPublic    Sharing = "public"
	SharingPrivate   Sharing = "private"
	SharingEncrypted Sharing = "encrypted"
)

// ErrorHandling describes a zome's callback error-handling policy.
type ErrorHandling string

const (
	ThrowErrors     ErrorHandling = "throw-errors"
	ReturnErrorCode ErrorHandling = "return-error-code"
)

// LinksTo describes one outbound link declaration of an entry type.
type LinksTo struct {
	TargetType string `json:"target_type"`
	Tag        string `json:"tag"`
}

// LinkedFrom describes one inbound link declaration of an entry type.
type LinkedFrom struct {
	BaseType string `json:"base_type"`
	Tag      string `json:"tag"`
}

// EntryTypeDef is the application-declared definition of one entry type.
type EntryTypeDef struct {
	Description string       `json:"description"`
	Sharing     Sharing      `json:"sharing"`
	LinksTo     []LinksTo    `json:"links_to"`
	LinkedFrom  []LinkedFrom `json:"linked_from"`
}

// ZomeConfig carries per-zome settings.
type ZomeConfig struct {
	ErrorHandling ErrorHandling `json:"error_handling"`
}

// Capability is a named, membrane-gated set of callable zome functions.
type Capability struct {
	Membrane       string   `json:"membrane"`
	FnDeclarations []string `json:"fn_declarations"`
}

// Wasm carries a zome's compiled bytecode, base64-encoded on the wire.
type Wasm struct {
	Code []byte `json:"code"`
}

// Zome is a named WASM module within a DNA exposing callbacks and
// capabilities (spec.md glossary).
type Zome struct {
	Description  string                     `json:"description"`
	Config       ZomeConfig                 `json:"config"`
	EntryTypes   *ordered.Map[EntryTypeDef] `json:"entry_types"`
	Capabilities *ordered.Map[Capability]   `json:"capabilities"`
	Code         Wasm                       `json:"code"`
}

// NewZome returns a Zome with initialized ordered maps.
func NewZome() Zome {
	return Zome{
		EntryTypes:   ordered.New[EntryTypeDef](),
		Capabilities: ordered.New[Capability](),
	}
}

// DNA is the top-level application descriptor (spec.md §3). Its hash over
// canonical JSON is the application's identity.
type DNA struct {
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	Version        string             `json:"version"`
	UUID           string             `json:"uuid"`
	DnaSpecVersion string             `json:"dna_spec_version"`
	Properties     json.RawMessage    `json:"properties"`
	Zomes          *ordered.Map[Zome] `json:"zomes"`
}

// New returns a DNA with all defaults applied per spec.md §3: a fresh v4
// uuid, dna_spec_version "2.0", empty properties object, no zomes.
func New(name string) *DNA {
	return &DNA{
		Name:           name,
		UUID:           uuid.New().String(),
		DnaSpecVersion: DnaSpecVersion,
		Properties:     json.RawMessage("{}"),
		Zomes:          ordered.New[Zome](),
	}
}

// Hash returns the 32-byte SHA-256 over the DNA's canonical JSON (spec.md
// §4.A: "hash(dna) -> 32-byte SHA-256 over canonical JSON").
func (d *DNA) Hash() (holo.Address, error) {
	canon, err := d.CanonicalJSON()
	if err != nil {
		return holo.Address{}, err
	}
	return holo.HashContent(canon), nil
}

// CanonicalJSON returns the DNA's canonical byte form: key-sorted JSON with
// no insignificant whitespace.
func (d *DNA) CanonicalJSON() ([]byte, error) {
	return holo.MarshalCanonical(d)
}
