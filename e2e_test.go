// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package holo_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/luxfi/holo"
	"github.com/luxfi/holo/action"
	"github.com/luxfi/holo/chain"
	"github.com/luxfi/holo/entry"
	"github.com/luxfi/holo/network"
	"github.com/luxfi/holo/ribosome"
	"github.com/luxfi/holo/state"
	"github.com/luxfi/holo/validation"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// peerBus is a test-only Sender that looks directly into the other peer's
// stores rather than going over a real transport, standing in for the
// network the teacher's AppSender would otherwise carry requests across.
type peerBus struct {
	peerContent chain.ContentStore
	peerEav     chain.EavStore
	packages    map[holo.Address]*validation.ValidationPackage
	deliverTo   func(key string, val interface{})
}

func (b *peerBus) SendAppRequest(ctx context.Context, nodeID ids.NodeID, requestID uint32, msg []byte) error {
	go func() {
		if addr, err := ids.FromString(string(msg)); err == nil {
			content, ok, _ := b.peerContent.Fetch(addr)
			if !ok {
				b.deliverTo("get_entry:"+addr.String(), nil)
				return
			}
			e, err := entry.FromContent(content)
			if err != nil {
				b.deliverTo("get_entry:"+addr.String(), nil)
				return
			}
			meta, _ := chain.GetMeta(b.peerEav, addr)
			b.deliverTo("get_entry:"+addr.String(), &network.EntryWithMeta{
				Entry:              e,
				CrudStatus:         meta.Status,
				LinkUpdateOrDelete: meta.LinkUpdateOrDelete,
			})
			return
		}

		var h entry.Header
		if err := json.Unmarshal(msg, &h); err == nil {
			pkg, ok := b.packages[h.Address()]
			k := "get_validation_package:" + h.Address().String()
			if !ok {
				b.deliverTo(k, nil)
				return
			}
			b.deliverTo(k, pkg)
		}
	}()
	return nil
}

func (b *peerBus) SendAppResponse(ctx context.Context, nodeID ids.NodeID, requestID uint32, msg []byte) error {
	return nil
}

func (b *peerBus) SendAppGossip(ctx context.Context, msg []byte) error {
	return nil
}

func newTestResolver(sender network.Sender, content chain.ContentStore, eav chain.EavStore) *network.Resolver {
	return network.New(sender, content, eav, log.NewNoOpLogger(), 2*time.Second)
}

func commitApp(t *testing.T, s *state.State, appType string, data []byte) entry.Header {
	t.Helper()
	var h entry.Header
	c := action.Commit{
		Entry:     entry.NewApp(appType, data),
		Zome:      "e2e",
		Lifecycle: validation.Chain,
		Validate: func(ctx context.Context, e entry.Entry, d validation.ValidationData) error {
			return nil
		},
		Header: &h,
	}
	require.NoError(t, s.Dispatch(context.Background(), c))
	return h
}

func newAgentState() *state.State {
	s := state.New(nil, chain.NewMemContentStore(), chain.NewMemEavStore(), 0)
	go s.Run(context.Background())
	return s
}

// TestGetEntryRoundtrip is spec.md §8 S1: alice commits an entry and marks
// it LIVE; bob, sharing the same DNA, calls get_entry and receives it with
// crud_status LIVE.
func TestGetEntryRoundtrip(t *testing.T) {
	alice := newAgentState()
	h := commitApp(t, alice, "test_entry", []byte("hello"))

	bobContent := chain.NewMemContentStore()
	bobEav := chain.NewMemEavStore()
	bus := &peerBus{peerContent: alice.Snapshot().Content, peerEav: alice.Snapshot().Eav}
	bobResolver := newTestResolver(bus, bobContent, bobEav)
	bus.deliverTo = bobResolver.HandleAppResponse

	got, err := bobResolver.GetEntry(context.Background(), h.EntryAddress)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, chain.StatusLive, got.CrudStatus)
	require.Equal(t, h.EntryAddress, got.Entry.Address())
}

// TestGetNonExistentEntry is spec.md §8 S2: alice and bob share a DNA but
// no entry is stored; bob's get_entry resolves to None within the
// configured timeout.
func TestGetNonExistentEntry(t *testing.T) {
	alice := newAgentState()
	bobContent := chain.NewMemContentStore()
	bobEav := chain.NewMemEavStore()
	bus := &peerBus{peerContent: alice.Snapshot().Content, peerEav: alice.Snapshot().Eav}
	bobResolver := newTestResolver(bus, bobContent, bobEav)
	bus.deliverTo = bobResolver.HandleAppResponse

	missing := holo.HashContent([]byte("never-committed"))
	got, err := bobResolver.GetEntry(context.Background(), missing)
	require.NoError(t, err)
	require.Nil(t, got)
}

// TestGetWhenAlone is spec.md §8 S3: a single-agent context with no peers
// (no sender wired) resolves an unknown address to None at once, without
// hanging until the timeout.
func TestGetWhenAlone(t *testing.T) {
	resolver := network.New(nil, chain.NewMemContentStore(), chain.NewMemEavStore(), log.NewNoOpLogger(), 0)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	got, err := resolver.GetEntry(ctx, holo.HashContent([]byte("unknown")))
	require.NoError(t, err)
	require.Nil(t, got)
	require.NoError(t, ctx.Err())
}

// TestGetValidationPackageRoundtrip is spec.md §8 S4: alice commits an app
// entry whose zome's __hdk_get_validation_package_for_entry_type returns
// "Entry"; bob retrieves the package by header and its chain_header equals
// alice's header.
func TestGetValidationPackageRoundtrip(t *testing.T) {
	host := ribosome.NewFuncHost()
	host.Register("e2e", ribosome.ExportGetValidationPackageForEntry, func(ctx context.Context, arg []byte) ([]byte, error) {
		return []byte(`{"kind":"Entry"}`), nil
	})

	alice := newAgentState()
	h := commitApp(t, alice, "test_entry", []byte("hi"))

	def, err := validation.DefinitionFor(context.Background(), host, "e2e", "test_entry")
	require.NoError(t, err)
	require.Equal(t, validation.DefEntry, def.Kind)

	pkg, err := validation.BuildPackage(def, h, alice.Snapshot().Chain, alice.Snapshot().Content)
	require.NoError(t, err)

	bus := &peerBus{packages: map[holo.Address]*validation.ValidationPackage{h.Address(): &pkg}}
	bobResolver := newTestResolver(bus, chain.NewMemContentStore(), chain.NewMemEavStore())
	bus.deliverTo = bobResolver.HandleAppResponse

	got, err := bobResolver.GetValidationPackage(context.Background(), h)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, h.Address(), got.ChainHeader.Address())
}

// TestModifyThenRead is spec.md §8 S5: author commits E1, then updates to
// E2; get_entry(addr(E1)) is MODIFIED with link_update_delete = addr(E2);
// get_entry(addr(E2)) is LIVE.
func TestModifyThenRead(t *testing.T) {
	author := newAgentState()
	e1 := entry.NewApp("post", []byte("v1"))
	require.NoError(t, author.Dispatch(context.Background(), action.Commit{
		Entry: e1, Zome: "e2e", Lifecycle: validation.Chain,
		Validate: func(ctx context.Context, e entry.Entry, d validation.ValidationData) error { return nil },
	}))

	e2 := entry.NewApp("post", []byte("v2"))
	require.NoError(t, author.Dispatch(context.Background(), action.UpdateEntry{
		OldAddress: e1.Address(), NewEntry: e2, Zome: "e2e", Lifecycle: validation.Chain,
		Validate: func(ctx context.Context, e entry.Entry, d validation.ValidationData) error { return nil },
	}))

	resolver := newTestResolver(nil, author.Snapshot().Content, author.Snapshot().Eav)
	got1, err := resolver.GetEntry(context.Background(), e1.Address())
	require.NoError(t, err)
	require.Equal(t, chain.StatusModified, got1.CrudStatus)
	require.NotNil(t, got1.LinkUpdateOrDelete)
	require.Equal(t, e2.Address(), *got1.LinkUpdateOrDelete)

	got2, err := resolver.GetEntry(context.Background(), e2.Address())
	require.NoError(t, err)
	require.Equal(t, chain.StatusLive, got2.CrudStatus)
}

// TestValidationRejects is spec.md §8 S6: the author's validation callback
// returns a non-zero JSON "denied"; Commit resolves to ValidationFailed and
// no header is appended.
func TestValidationRejects(t *testing.T) {
	host := ribosome.NewFuncHost()
	host.Register("e2e", ribosome.ExportValidateAppEntry, func(ctx context.Context, arg []byte) ([]byte, error) {
		return json.Marshal(struct {
			Reason string `json:"reason"`
		}{Reason: "denied"})
	})

	metrics := holo.NoOpMetrics()
	author := newAgentState()
	e := entry.NewApp("post", []byte("spam"))
	err := author.Dispatch(context.Background(), action.Commit{
		Entry: e, Zome: "e2e", Lifecycle: validation.Chain,
		Validate: action.NewHostValidator(host, "e2e", "post", metrics),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "denied")
	require.Equal(t, 0, author.Snapshot().Chain.Len())
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.ValidationFailed))
}
