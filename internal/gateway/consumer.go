// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/MaxOhn/twilight-dispatch/internal/config"
	"github.com/MaxOhn/twilight-dispatch/internal/logging"
	"github.com/MaxOhn/twilight-dispatch/internal/metrics"
	"github.com/MaxOhn/twilight-dispatch/internal/state"
)

// subscriptionBuffer bounds the pending-message channel. Events beyond it
// back-pressure into NATS rather than into this process.
const subscriptionBuffer = 4096

// Connect dials NATS with indefinite reconnection.
func Connect(cfg config.NATSConfig) (*nats.Conn, error) {
	conn, err := nats.Connect(cfg.URL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logging.Warn().Err(err).Msg("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logging.Info().Str("url", nc.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", cfg.URL, err)
	}
	return conn, nil
}

// Consumer subscribes to the gateway event subject and drives the reconciler.
// Messages are processed one at a time in arrival order; the per-entity
// ordering guarantees of the reconciler depend on this.
type Consumer struct {
	conn    *nats.Conn
	subject string
	state   *state.State
}

// NewConsumer builds a consumer over an established connection.
func NewConsumer(conn *nats.Conn, subject string, st *state.State) *Consumer {
	return &Consumer{conn: conn, subject: subject, state: st}
}

// Serve implements suture.Service: it subscribes, processes events until the
// context is cancelled, and unsubscribes on the way out.
func (c *Consumer) Serve(ctx context.Context) error {
	msgs := make(chan *nats.Msg, subscriptionBuffer)
	sub, err := c.conn.ChanSubscribe(c.subject, msgs)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", c.subject, err)
	}
	defer func() {
		if err := sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			logging.Warn().Err(err).Msg("unsubscribe failed")
		}
	}()

	logging.Info().Str("subject", c.subject).Msg("gateway consumer started")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-msgs:
			c.process(ctx, msg.Data)
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (c *Consumer) String() string {
	return "gateway-consumer"
}

// process handles one frame. Undecodable frames and handler failures are
// logged and counted, never fatal: one bad event must not take down the
// stream.
func (c *Consumer) process(ctx context.Context, payload []byte) {
	ctx = logging.WithCorrelationID(ctx, logging.NewCorrelationID())
	log := logging.Ctx(ctx)

	env, err := ParseEnvelope(payload)
	if err != nil {
		metrics.EnvelopesMalformed.Inc()
		log.Warn().Err(err).Msg("malformed gateway envelope")
		return
	}
	if env.Op != OpDispatch {
		metrics.EnvelopesSkipped.Inc()
		log.Trace().Int("op", env.Op).Msg("skipping non-dispatch envelope")
		return
	}
	data, err := env.DataRecord()
	if err != nil {
		metrics.EnvelopesMalformed.Inc()
		log.Warn().Err(err).Str("type", env.Type).Msg("malformed event payload")
		return
	}
	old, err := env.OldRecord()
	if err != nil {
		metrics.EnvelopesMalformed.Inc()
		log.Warn().Err(err).Str("type", env.Type).Msg("malformed prior state")
		return
	}

	if err := c.state.Handle(ctx, env.Type, data, old); err != nil {
		log.Error().Err(err).Str("type", env.Type).Msg("event handling failed")
	}
}
