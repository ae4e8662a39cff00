// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package holo

import (
	"github.com/luxfi/metric"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors shared by the network, validation
// and chain components of a single agent context. Registry is the teacher's
// metric.Registry (context_values.go: "Metrics metric.Registry"), the same
// handle a node passes down to every subsystem; the concrete collectors are
// still prometheus types, matching metrics.Metrics{Registry} + Register
// (metrics/metrics.go).
type Metrics struct {
	Registry metric.Registry

	ChainAppends          prometheus.Counter
	ValidationPassed      prometheus.Counter
	ValidationFailed      prometheus.Counter
	NetworkRequests       *prometheus.CounterVec
	NetworkRequestLatency *prometheus.HistogramVec
	InFlightRequests      prometheus.Gauge
}

// NewMetrics registers and returns a fresh Metrics instance against reg.
// Grounded on the teacher's metrics.Metrics{Registry} + Register(collector)
// shape (metrics/metrics.go), expanded with the concrete collectors this
// domain needs and threaded through github.com/luxfi/metric's Registry type.
func NewMetrics(reg metric.Registry) *Metrics {
	m := &Metrics{
		Registry: reg,
		ChainAppends: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "holo_chain_appends_total",
			Help: "Total number of headers appended to the local chain.",
		}),
		ValidationPassed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "holo_validation_passed_total",
			Help: "Total number of entries that passed validation.",
		}),
		ValidationFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "holo_validation_failed_total",
			Help: "Total number of entries that failed validation.",
		}),
		NetworkRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "holo_network_requests_total",
			Help: "Total number of outbound network requests by operation.",
		}, []string{"op"}),
		NetworkRequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "holo_network_request_latency_seconds",
			Help: "Latency of network requests by operation.",
		}, []string{"op"}),
		InFlightRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "holo_network_inflight_requests",
			Help: "Number of in-flight deduplicated network requests.",
		}),
	}
	for _, c := range []prometheus.Collector{
		m.ChainAppends, m.ValidationPassed, m.ValidationFailed,
		m.NetworkRequests, m.NetworkRequestLatency, m.InFlightRequests,
	} {
		_ = reg.Register(c)
	}
	return m
}

// NoOpMetrics returns a Metrics instance registered against a fresh local
// registry, suitable for tests that don't care about export.
func NoOpMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
