// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

// Package metrics exposes Prometheus instrumentation for the reconciler:
// gateway event throughput, downstream notification fan-out, cache lookup
// outcomes, and readiness drain lifecycle.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GatewayEvents counts dispatch events received, labeled by event type.
	GatewayEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_events_total",
			Help: "Total number of gateway dispatch events received",
		},
		[]string{"type"},
	)

	// GatewayEventsUnknown counts events dropped because no handler is
	// registered for their type.
	GatewayEventsUnknown = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_events_unknown_total",
			Help: "Total number of gateway events with no registered handler",
		},
	)

	// GatewayEventErrors counts events whose handler returned an error.
	GatewayEventErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_event_errors_total",
			Help: "Total number of gateway events that failed processing",
		},
		[]string{"type"},
	)

	// Notifications counts downstream notifications, labeled by event name.
	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_emitted_total",
			Help: "Total number of downstream notifications emitted",
		},
		[]string{"event"},
	)

	// LookupsAbsent counts cache lookups that found no record, labeled by
	// entity kind. Absence is a normal outcome under eventual consistency.
	LookupsAbsent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_lookups_absent_total",
			Help: "Total number of cache lookups that returned no record",
		},
		[]string{"kind"},
	)

	// StoreOpDuration observes keyed store operation latency.
	StoreOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_op_duration_seconds",
			Help:    "Duration of keyed store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	// ReadinessDrains counts readiness drain outcomes: completed drains
	// emitted a terminal ready signal, superseded drains were cancelled by
	// a newer READY.
	ReadinessDrains = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readiness_drains_total",
			Help: "Total number of readiness drains by outcome",
		},
		[]string{"outcome"},
	)

	// ReadyQueueDepth tracks the number of guilds buffered in the current
	// readiness window.
	ReadyQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ready_queue_depth",
			Help: "Guilds currently buffered in the readiness queue",
		},
	)

	// EnvelopesMalformed counts push-connection payloads that failed to
	// decode into an event envelope.
	EnvelopesMalformed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_envelopes_malformed_total",
			Help: "Total number of undecodable gateway envelopes",
		},
	)

	// EnvelopesSkipped counts envelopes dropped because their opcode is not
	// a dispatch.
	EnvelopesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_envelopes_skipped_total",
			Help: "Total number of non-dispatch gateway envelopes skipped",
		},
	)
)

// Drain outcome label values.
const (
	DrainCompleted  = "completed"
	DrainSuperseded = "superseded"
)
