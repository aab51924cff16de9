// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package config

import (
	"testing"
	"time"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Gateway.GuildReadyTimeout != 2*time.Second {
		t.Errorf("expected 2s guild ready timeout, got %v", cfg.Gateway.GuildReadyTimeout)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"missing nats url", func(c *Config) { c.NATS.URL = "" }},
		{"missing subject", func(c *Config) { c.NATS.Subject = "" }},
		{"zero ready timeout", func(c *Config) { c.Gateway.GuildReadyTimeout = 0 }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"no store path", func(c *Config) { c.Store.Path = ""; c.Store.InMemory = false }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate_InMemoryNeedsNoPath(t *testing.T) {
	cfg := defaultConfig()
	cfg.Store.Path = ""
	cfg.Store.InMemory = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("in-memory store should not require a path: %v", err)
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"DISPATCH_LOG_LEVEL", "log.level"},
		{"DISPATCH_GATEWAY_GUILD_READY_TIMEOUT", "gateway.guild_ready_timeout"},
		{"DISPATCH_NATS_PUBLISH_PREFIX", "nats.publish_prefix"},
		{"DISPATCH_STORE", "store"},
	}
	for _, tt := range tests {
		if got := envTransform(tt.in); got != tt.want {
			t.Errorf("envTransform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DISPATCH_STORE_IN_MEMORY", "true")
	t.Setenv("DISPATCH_NATS_SUBJECT", "gateway.test")
	t.Setenv("DISPATCH_GATEWAY_GUILD_READY_TIMEOUT", "500ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Store.InMemory {
		t.Error("expected store.in_memory override")
	}
	if cfg.NATS.Subject != "gateway.test" {
		t.Errorf("expected subject override, got %q", cfg.NATS.Subject)
	}
	if cfg.Gateway.GuildReadyTimeout != 500*time.Millisecond {
		t.Errorf("expected 500ms timeout, got %v", cfg.Gateway.GuildReadyTimeout)
	}
}
