// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package holo

import (
	"context"

	"github.com/luxfi/ids"
)

// AgentInfo contains the small immutable identity information carried in
// context for the lifetime of a single agent context.
type AgentInfo struct {
	NetworkID uint32
	DnaHash   ids.ID
	AgentID   ids.NodeID
}

type agentKey struct{}

// WithAgent attaches AgentInfo to ctx.
func WithAgent(ctx context.Context, info AgentInfo) context.Context {
	return context.WithValue(ctx, agentKey{}, info)
}

// MustAgent panics if AgentInfo is missing from ctx (fail fast, same policy
// as the teacher's MustIDs).
func MustAgent(ctx context.Context) AgentInfo {
	v, ok := ctx.Value(agentKey{}).(AgentInfo)
	if !ok {
		panic("holo: AgentInfo missing from context")
	}
	return v
}

// Agent returns AgentInfo from ctx and whether it was present.
func Agent(ctx context.Context) (AgentInfo, bool) {
	v, ok := ctx.Value(agentKey{}).(AgentInfo)
	return v, ok
}

// DnaHash returns the DNA hash carried in ctx, or ids.Empty if absent.
func DnaHash(ctx context.Context) ids.ID {
	if info, ok := Agent(ctx); ok {
		return info.DnaHash
	}
	return ids.Empty
}

// AgentID returns the agent's node ID carried in ctx, or the empty NodeID.
func AgentID(ctx context.Context) ids.NodeID {
	if info, ok := Agent(ctx); ok {
		return info.AgentID
	}
	return ids.EmptyNodeID
}
