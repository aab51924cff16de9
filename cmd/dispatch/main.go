// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

// Command dispatch runs the gateway state reconciler: it consumes forwarded
// gateway event envelopes from NATS, reconciles them against the shared
// Badger-backed cache, and republishes normalized before/after notifications.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"

	"github.com/MaxOhn/twilight-dispatch/internal/config"
	"github.com/MaxOhn/twilight-dispatch/internal/gateway"
	"github.com/MaxOhn/twilight-dispatch/internal/logging"
	"github.com/MaxOhn/twilight-dispatch/internal/server"
	"github.com/MaxOhn/twilight-dispatch/internal/state"
	"github.com/MaxOhn/twilight-dispatch/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("configuration failed")
	}
	if err := logging.Init(logging.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Timestamp: true,
	}); err != nil {
		logging.Fatal().Err(err).Msg("logging setup failed")
	}

	st, err := openStore(cfg.Store)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Store.Path).Msg("cache open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Warn().Err(err).Msg("cache close failed")
		}
	}()

	conn, err := gateway.Connect(cfg.NATS)
	if err != nil {
		logging.Fatal().Err(err).Msg("nats connect failed")
	}
	defer conn.Close()

	sink := buildSink(conn, cfg.NATS.PublishPrefix)
	reconciler := state.New(st, sink, nil, state.Options{
		GuildReadyTimeout: cfg.Gateway.GuildReadyTimeout,
	})

	httpServer := &http.Server{
		Addr: fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: server.NewRouter(map[string]server.HealthCheck{
			"nats": func() error {
				if !conn.IsConnected() {
					return errors.New("not connected")
				}
				return nil
			},
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	hook := (&sutureslog.Handler{Logger: logging.NewSlogLogger()}).MustHook()
	root := suture.New("twilight-dispatch", suture.Spec{
		EventHook: hook,
		Timeout:   shutdownTimeout,
	})
	root.Add(gateway.NewConsumer(conn, cfg.NATS.Subject, reconciler))
	root.Add(server.NewService(httpServer, shutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().
		Str("subject", cfg.NATS.Subject).
		Str("addr", httpServer.Addr).
		Msg("twilight-dispatch starting")

	if err := root.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("supervisor exited")
		os.Exit(1)
	}
	logging.Info().Msg("twilight-dispatch stopped")
}

func openStore(cfg config.StoreConfig) (*store.BadgerStore, error) {
	if cfg.InMemory {
		return store.OpenBadgerInMemory()
	}
	return store.OpenBadger(cfg.Path)
}

func buildSink(conn *nats.Conn, prefix string) state.Dispatcher {
	if prefix == "" {
		return gateway.LoggingSink
	}
	publishing := gateway.NewPublishingSink(conn, prefix)
	return gateway.CombineSinks(gateway.LoggingSink, publishing.Dispatch)
}
