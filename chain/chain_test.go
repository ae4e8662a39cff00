// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"testing"
	"time"

	"github.com/luxfi/holo"
	"github.com/luxfi/holo/entry"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPushGuardsPrevHeader(t *testing.T) {
	c := NewChain()
	e1 := entry.NewApp("post", []byte("one"))
	h1 := entry.NewHeader("post", e1.Address(), nil, nil, time.Now().UTC())
	require.NoError(t, c.Push(h1))

	// A second genesis-shaped push (nil prev) once the chain is non-empty
	// must be rejected as a divergence.
	e2 := entry.NewApp("post", []byte("two"))
	h2 := entry.NewHeader("post", e2.Address(), nil, nil, time.Now().UTC())
	err := c.Push(h2)
	require.Error(t, err)

	h1Addr := h1.Address()
	h2.PrevHeaderAddress = &h1Addr
	require.NoError(t, c.Push(h2))
}

func TestIterNewestFirst(t *testing.T) {
	c := NewChain()
	h0 := entry.NewHeader("post", entry.NewApp("post", []byte("a")).Address(), nil, nil, time.Now().UTC())
	require.NoError(t, c.Push(h0))
	h0Addr := h0.Address()

	h1 := entry.NewHeader("post", entry.NewApp("post", []byte("b")).Address(), &h0Addr, nil, time.Now().UTC())
	require.NoError(t, c.Push(h1))

	headers := c.Iter()
	require.Len(t, headers, 2)
	require.Equal(t, h1.Address(), headers[0].Address())
	require.Equal(t, h0.Address(), headers[1].Address())
}

func TestIterTypeFollowsSameTypeLink(t *testing.T) {
	c := NewChain()
	h0 := entry.NewHeader("post", entry.NewApp("post", []byte("a")).Address(), nil, nil, time.Now().UTC())
	require.NoError(t, c.Push(h0))
	h0Addr := h0.Address()

	// An interleaved "comment" header should be skipped by IterType("post").
	hc := entry.NewHeader("comment", entry.NewApp("comment", []byte("x")).Address(), &h0Addr, nil, time.Now().UTC())
	require.NoError(t, c.Push(hc))
	hcAddr := hc.Address()

	h1 := entry.NewHeader("post", entry.NewApp("post", []byte("b")).Address(), &hcAddr, &h0Addr, time.Now().UTC())
	require.NoError(t, c.Push(h1))

	posts := c.IterType("post")
	require.Len(t, posts, 2)
	require.Equal(t, h1.Address(), posts[0].Address())
	require.Equal(t, h0.Address(), posts[1].Address())
}

func TestFindHeader(t *testing.T) {
	c := NewChain()
	e := entry.NewApp("post", []byte("a"))
	h := entry.NewHeader("post", e.Address(), nil, nil, time.Now().UTC())
	require.NoError(t, c.Push(h))

	found, err := c.FindHeader(e.Address())
	require.NoError(t, err)
	require.Equal(t, h.Address(), found.Address())

	_, err = c.FindHeader(entry.NewApp("post", []byte("missing")).Address())
	require.ErrorIs(t, err, ErrHeaderNotFound)
}

func TestContentStoreIdempotent(t *testing.T) {
	s := NewMemContentStore()
	require.NoError(t, s.Add([]byte("hello")))
	require.NoError(t, s.Add([]byte("hello")))

	addr := holo.HashContent([]byte("hello"))
	content, ok, err := s.Fetch(addr)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("hello"), content)
}

func TestCrudStatusTerminalForbidsTransition(t *testing.T) {
	store := NewMemEavStore()
	addr := holo.HashContent([]byte("entry"))
	require.NoError(t, SetCrudStatus(store, addr, StatusLive))
	require.NoError(t, SetCrudStatus(store, addr, StatusDeleted))

	err := SetCrudStatus(store, addr, StatusLive)
	require.Error(t, err)

	status, err := GetCrudStatus(store, addr)
	require.NoError(t, err)
	require.Equal(t, StatusDeleted, status)
}

func TestCrudLinkAndMeta(t *testing.T) {
	store := NewMemEavStore()
	oldAddr := holo.HashContent([]byte("old"))
	newAddr := holo.HashContent([]byte("new"))

	require.NoError(t, SetCrudStatus(store, oldAddr, StatusLive))
	require.NoError(t, SetCrudStatus(store, newAddr, StatusLive))
	require.NoError(t, SetCrudStatus(store, oldAddr, StatusModified))
	require.NoError(t, SetCrudLink(store, oldAddr, newAddr))

	meta, err := GetMeta(store, oldAddr)
	require.NoError(t, err)
	require.Equal(t, StatusModified, meta.Status)
	require.NotNil(t, meta.LinkUpdateOrDelete)
	require.Equal(t, newAddr, *meta.LinkUpdateOrDelete)
}

func TestWithMetricsCountsChainAppends(t *testing.T) {
	metrics := holo.NoOpMetrics()
	c := NewChain().WithMetrics(metrics)

	h := entry.NewHeader("post", entry.NewApp("post", []byte("a")).Address(), nil, nil, time.Now().UTC())
	require.NoError(t, c.Push(h))
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.ChainAppends))
}
