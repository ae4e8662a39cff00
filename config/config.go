// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config defines the per-agent configuration and its validation,
// grounded on the teacher's config.Parameters / DefaultParams() / Valid()
// idiom.
package config

import (
	"time"

	"github.com/luxfi/ids"
)

// AgentConfig configures a single agent context (spec.md §2, ambient
// expansion): which network it belongs to, its own node identity, where it
// persists chain/content state, and the timeouts the network and
// validation pipelines use.
type AgentConfig struct {
	NetworkID         uint32
	AgentAddress      ids.NodeID
	PersistDir        string
	NetworkTimeout    time.Duration
	ValidationTimeout time.Duration
}

// DefaultAgentConfig returns an AgentConfig with the spec's documented
// defaults: a 60s network timeout (spec.md §4.F) and a generous validation
// timeout, no persistence directory and no fixed network/agent identity.
func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		NetworkTimeout:    60 * time.Second,
		ValidationTimeout: 30 * time.Second,
	}
}

// Valid reports whether cfg is usable, mirroring the teacher's
// Parameters.Valid() idiom.
func (c AgentConfig) Valid() error {
	if c.AgentAddress == ids.EmptyNodeID {
		return ErrMissingAgentAddress
	}
	if c.NetworkTimeout <= 0 {
		return ErrInvalidNetworkTimeout
	}
	if c.ValidationTimeout <= 0 {
		return ErrInvalidValidationTimeout
	}
	return nil
}
