// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state implements the single-writer action dispatch of spec.md
// §4.G: one action channel and lock-free snapshot reads. Grounded on the
// teacher's engine/dag/state.serializer (mutex-guarded single-writer store).
// There are no separate per-subsystem reducers: each Action applies its own
// change to the shared Snapshot.
package state

import (
	"context"

	"github.com/luxfi/holo/chain"
	"github.com/luxfi/holo/dna"
)

// Snapshot is the lock-free, read-only view of an agent's current state
// root (spec.md §4.G: "Reads are lock-free snapshots of the current state
// root").
type Snapshot struct {
	DNA     *dna.DNA
	Chain   *chain.Chain
	Content chain.ContentStore
	Eav     chain.EavStore
}

// Action is a unit of work dispatched through the single action channel.
// Apply runs on the loop goroutine, one action (with its follow-ups) at a
// time, so anything Apply blocks on (a validation callback, a store call, a
// network send from a publish follow-up) holds up the loop until it returns.
type Action interface {
	// Apply mutates snap in place (Chain/Content/Eav are themselves
	// single-writer-guarded) and returns follow-up actions to enqueue, e.g.
	// a Commit emitting a network publish.
	Apply(ctx context.Context, snap Snapshot) ([]Action, error)
}

// State owns the single action channel and the snapshot every Action
// mutates. Only the loop goroutine started by Run ever calls Apply;
// Dispatch from any other goroutine just enqueues (spec.md §5 "Suspension
// points are exactly: (a) enqueueing an action, (b) awaiting a future tied
// to a resolver slot").
type State struct {
	snap    Snapshot
	actions chan actionRequest
}

type actionRequest struct {
	action Action
	done   chan error
}

// New constructs a State over the given DNA and stores, with an action
// channel buffered to bufSize (0 means synchronous handoff).
func New(d *dna.DNA, content chain.ContentStore, eav chain.EavStore, bufSize int) *State {
	return &State{
		snap: Snapshot{
			DNA:     d,
			Chain:   chain.NewChain(),
			Content: content,
			Eav:     eav,
		},
		actions: make(chan actionRequest, bufSize),
	}
}

// Snapshot returns the current lock-free read view. Chain/Content/Eav are
// themselves safe for concurrent reads while the loop goroutine mutates
// them under their own internal locks.
func (s *State) Snapshot() Snapshot { return s.snap }

// Dispatch enqueues action and blocks until Run's loop has applied it (and
// recursively applied any follow-up actions it emitted), returning the
// first error encountered.
func (s *State) Dispatch(ctx context.Context, action Action) error {
	req := actionRequest{action: action, done: make(chan error, 1)}
	select {
	case s.actions <- req:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drives the action loop until ctx is cancelled. Exactly one goroutine
// should call Run for a given State (spec.md §4.G: "A single action channel
// serializes all mutations").
func (s *State) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-s.actions:
			err := s.apply(ctx, req.action)
			req.done <- err
		}
	}
}

// apply runs action and recursively applies any follow-up actions it
// emits, in the same serialized loop iteration (spec.md §4.G: "pure
// state→state functions plus side-effect emissions captured as follow-up
// actions").
func (s *State) apply(ctx context.Context, action Action) error {
	followUps, err := action.Apply(ctx, s.snap)
	if err != nil {
		return err
	}
	for _, next := range followUps {
		if err := s.apply(ctx, next); err != nil {
			return err
		}
	}
	return nil
}
