// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

// Package config loads and validates twilight-dispatch configuration.
//
// Configuration is layered (highest priority last): built-in defaults, an
// optional YAML config file, then DISPATCH_-prefixed environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root configuration for the reconciler process.
type Config struct {
	Log     LogConfig     `koanf:"log"`
	Store   StoreConfig   `koanf:"store"`
	NATS    NATSConfig    `koanf:"nats"`
	Gateway GatewayConfig `koanf:"gateway"`
	Server  ServerConfig  `koanf:"server"`
}

// LogConfig controls the zerolog output.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// StoreConfig controls the keyed cache backend.
type StoreConfig struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string `koanf:"path"`

	// InMemory runs Badger without disk persistence. The gateway owns the
	// durable copy of the cache, so losing this copy only costs a re-sync.
	InMemory bool `koanf:"in_memory"`
}

// NATSConfig controls the push connection and the notification sink.
type NATSConfig struct {
	URL string `koanf:"url" validate:"required,url"`

	// Subject is the subject delivering gateway dispatch envelopes.
	Subject string `koanf:"subject" validate:"required"`

	// PublishPrefix, when non-empty, enables republishing every downstream
	// notification to "<prefix>.<event>".
	PublishPrefix string `koanf:"publish_prefix"`
}

// GatewayConfig controls reconciliation behavior.
type GatewayConfig struct {
	// GuildReadyTimeout is the quiescence timeout of the readiness drain:
	// how long to wait for the next bulk GUILD_CREATE after connect before
	// declaring the client ready.
	GuildReadyTimeout time.Duration `koanf:"guild_ready_timeout" validate:"gt=0"`
}

// ServerConfig controls the metrics/health HTTP listener.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port" validate:"gte=1,lte=65535"`
}

func defaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Store: StoreConfig{
			Path:     "/data/dispatch",
			InMemory: false,
		},
		NATS: NATSConfig{
			URL:           "nats://127.0.0.1:4222",
			Subject:       "gateway.recv",
			PublishPrefix: "",
		},
		Gateway: GatewayConfig{
			GuildReadyTimeout: 2 * time.Second,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8005,
		},
	}
}

// Validate checks that required configuration is present and consistent.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("store.path is required when store.in_memory is false")
	}
	return nil
}
