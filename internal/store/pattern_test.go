// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package store

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern, key string
		want         bool
	}{
		{"guild:*", "guild:123", true},
		{"guild:*", "guild:", true},
		{"guild:*", "member:123", false},
		{"member:*:456", "member:123:456", true},
		{"member:*:456", "member:123:457", false},
		{"member:*:*", "member:123:456", true},
		{"channel:*", "channel:1:2", true}, // '*' crosses ':' like Redis MATCH
		{"channel:*:2", "channel:1:2", true},
		{"channel:*:2", "channel:2", false},
		{"message:*:9", "message:5:9", true},
		{"bot_user", "bot_user", true},
		{"bot_user", "bot_user:x", false},
		{"guild:?", "guild:7", true},
		{"guild:?", "guild:77", false},
		{"*", "anything:at:all", true},
	}
	for _, tt := range tests {
		if got := Match(tt.pattern, tt.key); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.key, got, tt.want)
		}
	}
}

func TestLiteralPrefix(t *testing.T) {
	tests := []struct{ pattern, want string }{
		{"member:*:456", "member:"},
		{"guild:*", "guild:"},
		{"bot_user", "bot_user"},
		{"*", ""},
		{"guild:?", "guild:"},
	}
	for _, tt := range tests {
		if got := literalPrefix(tt.pattern); got != tt.want {
			t.Errorf("literalPrefix(%q) = %q, want %q", tt.pattern, got, tt.want)
		}
	}
}
