// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package gateway

import (
	"github.com/goccy/go-json"

	"github.com/MaxOhn/twilight-dispatch/internal/logging"
	"github.com/MaxOhn/twilight-dispatch/internal/state"
)

// Publisher is the narrow publish surface of *nats.Conn.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// notification is the wire shape of one republished downstream notification.
type notification struct {
	Event string `json:"event"`
	Args  []any  `json:"args"`
}

// PublishingSink republishes every downstream notification to
// "<prefix>.<event>" for external subscribers (bot shards, audit tooling).
type PublishingSink struct {
	publisher Publisher
	prefix    string
}

// NewPublishingSink builds a sink over an established connection.
func NewPublishingSink(publisher Publisher, prefix string) *PublishingSink {
	return &PublishingSink{publisher: publisher, prefix: prefix}
}

// Dispatch implements state.Dispatcher. Publish failures are logged and
// dropped: notification delivery is best-effort, reconciliation is not
// rolled back.
func (s *PublishingSink) Dispatch(event string, args ...any) {
	payload, err := json.Marshal(notification{Event: event, Args: args})
	if err != nil {
		logging.Warn().Err(err).Str("event", event).Msg("notification marshal failed")
		return
	}
	if err := s.publisher.Publish(s.prefix+"."+event, payload); err != nil {
		logging.Warn().Err(err).Str("event", event).Msg("notification publish failed")
	}
}

// LoggingSink traces every notification. Useful alone in development and as
// a tee in front of the publishing sink.
func LoggingSink(event string, args ...any) {
	logging.Trace().Str("event", event).Int("args", len(args)).Msg("notification")
}

// CombineSinks fans one notification out to several sinks in order.
func CombineSinks(sinks ...state.Dispatcher) state.Dispatcher {
	return func(event string, args ...any) {
		for _, sink := range sinks {
			sink(event, args...)
		}
	}
}
