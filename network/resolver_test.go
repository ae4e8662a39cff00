// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/luxfi/holo"
	"github.com/luxfi/holo/chain"
	"github.com/luxfi/holo/entry"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func testHeader() entry.Header {
	e := entry.NewApp("post", []byte("x"))
	return entry.NewHeader("post", e.Address(), nil, nil, time.Now().UTC())
}

type countingSender struct {
	sends int32
}

func (s *countingSender) SendAppRequest(ctx context.Context, nodeID ids.NodeID, requestID uint32, msg []byte) error {
	atomic.AddInt32(&s.sends, 1)
	return nil
}

func (s *countingSender) SendAppResponse(ctx context.Context, nodeID ids.NodeID, requestID uint32, msg []byte) error {
	return nil
}

func (s *countingSender) SendAppGossip(ctx context.Context, msg []byte) error {
	return nil
}

func TestGetEntryLocalShortCircuit(t *testing.T) {
	content := chain.NewMemContentStore()
	e := entry.NewApp("post", []byte("hi"))
	require.NoError(t, content.Add(e.Content()))
	addr := e.Address()

	eav := chain.NewMemEavStore()
	require.NoError(t, chain.SetCrudStatus(eav, addr, chain.StatusLive))

	sender := &countingSender{}
	r := New(sender, content, eav, log.NewNoOpLogger(), time.Second)

	got, err := r.GetEntry(context.Background(), addr)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, int32(0), atomic.LoadInt32(&sender.sends))
}

func TestGetEntryDedupesConcurrentCallers(t *testing.T) {
	sender := &countingSender{}
	r := New(sender, chain.NewMemContentStore(), chain.NewMemEavStore(), log.NewNoOpLogger(), 50*time.Millisecond)

	addr := holo.HashContent([]byte("missing"))
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.GetEntry(context.Background(), addr)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), atomic.LoadInt32(&sender.sends))
}

func TestGetEntryTimesOutToNil(t *testing.T) {
	sender := &countingSender{}
	r := New(sender, chain.NewMemContentStore(), chain.NewMemEavStore(), log.NewNoOpLogger(), 20*time.Millisecond)

	got, err := r.GetEntry(context.Background(), holo.HashContent([]byte("x")))
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestGetValidationPackageTimesOutToError(t *testing.T) {
	sender := &countingSender{}
	r := New(sender, chain.NewMemContentStore(), chain.NewMemEavStore(), log.NewNoOpLogger(), 20*time.Millisecond)

	h := testHeader()
	_, err := r.GetValidationPackage(context.Background(), h)
	require.ErrorIs(t, err, holo.ErrTimeout)
}

func TestWithMetricsCountsRequestsAndSettlesInFlight(t *testing.T) {
	metrics := holo.NoOpMetrics()
	sender := &countingSender{}
	r := New(sender, chain.NewMemContentStore(), chain.NewMemEavStore(), log.NewNoOpLogger(), 20*time.Millisecond).WithMetrics(metrics)

	_, err := r.GetEntry(context.Background(), holo.HashContent([]byte("x")))
	require.NoError(t, err)

	require.Equal(t, float64(1), testutil.ToFloat64(metrics.NetworkRequests.With(map[string]string{"op": "get_entry"})))
	require.Equal(t, float64(0), testutil.ToFloat64(metrics.InFlightRequests))
}
