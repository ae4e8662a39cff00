// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package networkmock provides a hand-written mock of network.Sender (the
// github.com/luxfi/p2p Sender alias a Resolver drives its outbound requests
// through), in the teacher's lighter mock style (engine/chain/block/blockmock):
// a *F func field per method and a NewSender(ctrl) constructor that accepts
// a *gomock.Controller for call-site compatibility with the full gomock idiom.
package networkmock

import (
	"context"
	"testing"

	"github.com/luxfi/holo/network"
	"github.com/luxfi/ids"
	"go.uber.org/mock/gomock"
)

// Ensure Sender implements network.Sender.
var _ network.Sender = (*Sender)(nil)

// Sender is a mock implementation of network.Sender.
type Sender struct {
	T                   *testing.T
	CantSendAppRequest  bool
	CantSendAppResponse bool
	CantSendAppGossip   bool

	SendAppRequestF  func(ctx context.Context, nodeID ids.NodeID, requestID uint32, appRequestBytes []byte) error
	SendAppResponseF func(ctx context.Context, nodeID ids.NodeID, requestID uint32, appResponseBytes []byte) error
	SendAppGossipF   func(ctx context.Context, appGossipBytes []byte) error
}

// NewSender creates a new Sender mock. ctrl is accepted for
// gomock-constructor compatibility but not used.
func NewSender(ctrl *gomock.Controller) *Sender {
	return &Sender{}
}

func (m *Sender) SendAppRequest(ctx context.Context, nodeID ids.NodeID, requestID uint32, appRequestBytes []byte) error {
	if m.SendAppRequestF != nil {
		return m.SendAppRequestF(ctx, nodeID, requestID, appRequestBytes)
	}
	if m.CantSendAppRequest && m.T != nil {
		m.T.Fatal("unexpected SendAppRequest")
	}
	return nil
}

func (m *Sender) SendAppResponse(ctx context.Context, nodeID ids.NodeID, requestID uint32, appResponseBytes []byte) error {
	if m.SendAppResponseF != nil {
		return m.SendAppResponseF(ctx, nodeID, requestID, appResponseBytes)
	}
	if m.CantSendAppResponse && m.T != nil {
		m.T.Fatal("unexpected SendAppResponse")
	}
	return nil
}

func (m *Sender) SendAppGossip(ctx context.Context, appGossipBytes []byte) error {
	if m.SendAppGossipF != nil {
		return m.SendAppGossipF(ctx, appGossipBytes)
	}
	if m.CantSendAppGossip && m.T != nil {
		m.T.Fatal("unexpected SendAppGossip")
	}
	return nil
}
