// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package holo

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/luxfi/crypto/hashing"
	"github.com/luxfi/ids"
)

// Address is a stable content hash of a canonical byte serialization (spec
// §3). Two values with equal canonical bytes share an Address.
type Address = ids.ID

// Addressable is the contract every Entry and Header implements: a pure
// function from content to address, and the canonical bytes it was computed
// over (spec §4.B).
type Addressable interface {
	Address() Address
	Content() []byte
}

// HashContent computes the Address of an arbitrary byte slice.
func HashContent(content []byte) Address {
	return ids.ID(hashing.ComputeHash256Array(content))
}

// CanonicalJSON re-encodes arbitrary JSON so that every object's keys are
// sorted lexicographically and no insignificant whitespace remains (spec §9:
// "implementers must choose one canonical encoding ... and apply it
// uniformly"). Numbers are decoded with UseNumber and written back in the
// exact textual form they had in raw, so formatting is not normalized: 1,
// 1.0 and 1e0 produce different canonical bytes.
func CanonicalJSON(raw []byte) ([]byte, error) {
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encodeCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalCanonical marshals v to JSON and then canonicalizes the result, so
// callers never need to hand-sort struct fields.
func MarshalCanonical(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return CanonicalJSON(raw)
}

func encodeCanonical(buf *bytes.Buffer, v interface{}) error {
	switch val := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := encodeCanonical(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []interface{}:
		buf.WriteByte('[')
		for i, e := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeCanonical(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return err
		}
		buf.Write(b)
	}
	return nil
}
