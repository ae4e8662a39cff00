// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"errors"
	"sync"

	"github.com/luxfi/holo"
	"github.com/luxfi/holo/entry"
)

// ErrHeaderNotFound is returned by FindHeader when no header in the chain
// has the requested entry address.
var ErrHeaderNotFound = errors.New("chain: header not found")

// Chain is the thin, single-writer façade over an agent's append-only
// header sequence (spec.md §3, §4.C). Only Push mutates it; everything else
// is a read over the current in-memory index.
type Chain struct {
	mu           sync.RWMutex
	headers      []entry.Header // append order, oldest first
	byAddr       map[holo.Address]int
	byHeaderAddr map[holo.Address]int

	metrics *holo.Metrics
}

// NewChain returns an empty Chain.
func NewChain() *Chain {
	return &Chain{
		byAddr:       make(map[holo.Address]int),
		byHeaderAddr: make(map[holo.Address]int),
	}
}

// WithMetrics attaches m so Push increments ChainAppends on every accepted
// header (spec.md domain-stack wiring for github.com/luxfi/metric).
func (c *Chain) WithMetrics(m *holo.Metrics) *Chain {
	c.metrics = m
	return c
}

// Push appends header to the chain. header.PrevHeaderAddress must equal the
// address of the current Top() (nil iff the chain is empty); otherwise Push
// returns ErrChainDivergence (spec.md §4.E: "header append is guarded by
// prev-header equality").
func (c *Chain) Push(h entry.Header) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.headers) == 0 {
		if h.PrevHeaderAddress != nil {
			return holo.ErrChainDivergence
		}
	} else {
		top := c.headers[len(c.headers)-1]
		topAddr := top.Address()
		if h.PrevHeaderAddress == nil || *h.PrevHeaderAddress != topAddr {
			return holo.ErrChainDivergence
		}
	}

	c.headers = append(c.headers, h)
	idx := len(c.headers) - 1
	c.byAddr[h.EntryAddress] = idx
	c.byHeaderAddr[h.Address()] = idx
	if c.metrics != nil {
		c.metrics.ChainAppends.Inc()
	}
	return nil
}

// Top returns the most recently appended header, and false if the chain is
// empty.
func (c *Chain) Top() (entry.Header, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.headers) == 0 {
		return entry.Header{}, false
	}
	return c.headers[len(c.headers)-1], true
}

// Len returns the number of headers on the chain.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.headers)
}

// Iter returns the chain's headers newest-first (spec.md §3: "full reverse
// (newest-first)").
func (c *Chain) Iter() []entry.Header {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]entry.Header, len(c.headers))
	for i, h := range c.headers {
		out[len(c.headers)-1-i] = h
	}
	return out
}

// IterType returns, newest-first, the headers of the given entry type by
// following each header's SameTypePrevAddress link (spec.md §3: "by-type
// reverse via same_type_prev_address").
func (c *Chain) IterType(entryType string) []entry.Header {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// Find the newest header of this type by scanning from the top.
	var cur *entry.Header
	for i := len(c.headers) - 1; i >= 0; i-- {
		if c.headers[i].EntryType == entryType {
			h := c.headers[i]
			cur = &h
			break
		}
	}

	var out []entry.Header
	for cur != nil {
		out = append(out, *cur)
		if cur.SameTypePrevAddress == nil {
			break
		}
		idx, ok := c.byHeaderAddr[*cur.SameTypePrevAddress]
		if !ok {
			break
		}
		h := c.headers[idx]
		cur = &h
	}
	return out
}

// FindHeader returns the header whose EntryAddress equals entryAddress
// (spec.md §4.C, §8 invariant 4: "exactly one header ... with entry_address
// == address(entry)").
func (c *Chain) FindHeader(entryAddress holo.Address) (entry.Header, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.byAddr[entryAddress]
	if !ok {
		return entry.Header{}, ErrHeaderNotFound
	}
	return c.headers[idx], nil
}

// Entries returns the Entry payloads referenced by the chain's headers, in
// the same newest-first order as Iter, resolved through store.
func (c *Chain) Entries(store ContentStore) ([]entry.Entry, error) {
	headers := c.Iter()
	out := make([]entry.Entry, 0, len(headers))
	for _, h := range headers {
		content, ok, err := store.Fetch(h.EntryAddress)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		e, err := entry.FromContent(content)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
