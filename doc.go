// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package holo implements the core of a peer-to-peer, content-addressed
// application runtime: agents run sandboxed application modules (zomes)
// that append entries to a per-agent hash chain and publish/retrieve them
// from a distributed hash table.
//
// The subpackages break down as:
//
//	dna        - application descriptor, content-addressed by canonical JSON
//	entry      - addressable entry and header types
//	chain      - per-agent append-only header sequence and storage traits
//	validation - package construction and the lifecycle x action pipeline
//	ribosome   - the WASM host ABI surface (allocation encoding, callbacks)
//	action     - agent actions (commit, update, remove, link add/remove)
//	network    - get_entry / get_validation_package / publish over the DHT
//	state      - the action channel and per-subsystem reducers
//	config     - agent context configuration
package holo
