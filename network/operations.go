// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"context"
	"encoding/json"
	"time"

	"github.com/luxfi/holo"
	"github.com/luxfi/holo/chain"
	"github.com/luxfi/holo/entry"
	"github.com/luxfi/holo/validation"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"
)

// GetEntry resolves address to its entry and CRUD metadata (spec.md §4.F).
// It first consults the local stores and returns a local hit directly; on a
// miss with no sender wired (a node "alone") the request completes at once
// with nil, nil rather than hanging until the timeout.
func (r *Resolver) GetEntry(ctx context.Context, address holo.Address) (*EntryWithMeta, error) {
	if local, ok, err := r.localEntry(address); err != nil {
		return nil, err
	} else if ok {
		return local, nil
	}

	k := key("get_entry", address.String())
	slot, first := r.join(k)
	if first {
		go r.driveGetEntry(ctx, k, slot, address)
	}
	return r.awaitEntry(ctx, slot)
}

func (r *Resolver) localEntry(address holo.Address) (*EntryWithMeta, bool, error) {
	content, ok, err := r.content.Fetch(address)
	if err != nil || !ok {
		return nil, false, err
	}
	e, err := entry.FromContent(content)
	if err != nil {
		return nil, false, err
	}
	meta, err := chain.GetMeta(r.eav, address)
	if err != nil {
		return nil, false, err
	}
	return &EntryWithMeta{Entry: e, CrudStatus: meta.Status, LinkUpdateOrDelete: meta.LinkUpdateOrDelete}, true, nil
}

func (r *Resolver) driveGetEntry(ctx context.Context, k string, slot *pendingSlot, address holo.Address) {
	r.trackRequest("get_entry")

	if r.sender == nil {
		r.untrackRequest()
		r.complete(k, slot, nil)
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	reqID := r.allocRequestID()
	if err := r.sender.SendAppRequest(reqCtx, ids.EmptyNodeID, reqID, []byte(address.String())); err != nil {
		r.log.Debug("get_entry send failed", log.Err(err))
		r.untrackRequest()
		r.complete(k, slot, nil)
		return
	}

	select {
	case <-slot.done:
		r.untrackRequest()
	case <-reqCtx.Done():
		r.untrackRequest()
		r.complete(k, slot, nil)
	}
	r.observeLatency("get_entry", start)
}

func (r *Resolver) awaitEntry(ctx context.Context, slot *pendingSlot) (*EntryWithMeta, error) {
	select {
	case <-slot.done:
		if slot.val == nil {
			return nil, nil
		}
		return slot.val.(*EntryWithMeta), nil
	case <-ctx.Done():
		return nil, nil
	}
}

// GetValidationPackage resolves header's validation package from the
// network. Unlike GetEntry, a timeout here is a genuine error: a header was
// observed (it is the request key) but no package arrived, so this returns
// Err(Timeout) rather than nil (spec.md §9, the resolved unification).
func (r *Resolver) GetValidationPackage(ctx context.Context, header entry.Header) (*validation.ValidationPackage, error) {
	k := key("get_validation_package", header.Address().String())
	slot, first := r.join(k)
	if first {
		go r.driveGetPackage(ctx, k, slot, header)
	}
	return r.awaitPackage(ctx, slot)
}

func (r *Resolver) driveGetPackage(ctx context.Context, k string, slot *pendingSlot, header entry.Header) {
	r.trackRequest("get_validation_package")

	if r.sender == nil {
		r.untrackRequest()
		r.complete(k, slot, nil)
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	reqID := r.allocRequestID()
	arg, _ := json.Marshal(header)
	if err := r.sender.SendAppRequest(reqCtx, ids.EmptyNodeID, reqID, arg); err != nil {
		r.log.Debug("get_validation_package send failed", log.Err(err))
		r.untrackRequest()
		r.complete(k, slot, nil)
		return
	}

	select {
	case <-slot.done:
		r.untrackRequest()
	case <-reqCtx.Done():
		r.untrackRequest()
		r.complete(k, slot, nil)
	}
	r.observeLatency("get_validation_package", start)
}

// trackRequest increments the per-operation request counter and the
// in-flight gauge; untrackRequest decrements the gauge once the request
// settles. Both are no-ops when no Metrics is attached.
func (r *Resolver) trackRequest(op string) {
	if r.metrics == nil {
		return
	}
	r.metrics.NetworkRequests.With(prometheus.Labels{"op": op}).Inc()
	r.metrics.InFlightRequests.Inc()
}

func (r *Resolver) untrackRequest() {
	if r.metrics == nil {
		return
	}
	r.metrics.InFlightRequests.Dec()
}

func (r *Resolver) observeLatency(op string, start time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.NetworkRequestLatency.With(prometheus.Labels{"op": op}).Observe(time.Since(start).Seconds())
}

func (r *Resolver) awaitPackage(ctx context.Context, slot *pendingSlot) (*validation.ValidationPackage, error) {
	select {
	case <-slot.done:
		if slot.val == nil {
			return nil, holo.ErrTimeout
		}
		return slot.val.(*validation.ValidationPackage), nil
	case <-ctx.Done():
		return nil, holo.ErrTimeout
	}
}

// HandleAppResponse delivers an inbound AppResponse for a previously sent
// GetEntry/GetValidationPackage request, completing its dedup slot
// (grounded on networking/router.ChainRouter.AppResponse's
// (ctx, nodeID, requestID, msg) shape). "Ordering: for a single key the
// resolver returns the first non-empty response; later responses are
// discarded" (spec.md §4.F) — a slot already completed is simply a no-op
// lookup miss once cleared from inFlight.
func (r *Resolver) HandleAppResponse(k string, val interface{}) {
	if val == nil {
		return
	}
	r.mu.Lock()
	slot, ok := r.inFlight[k]
	r.mu.Unlock()
	if !ok {
		return
	}
	r.complete(k, slot, val)
}
