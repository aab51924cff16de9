// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

// Package state is the dispatch/reconciliation engine. It routes raw
// gateway events to handlers, fetches prior cached state for diffing, and
// emits ordered before/after notifications downstream.
//
// Events are processed one at a time in arrival order; handlers are pure
// transformations (data, old) -> notifications and keep no state between
// events. The only long-lived piece is the readiness sequencer, a single
// cancellable drain task active during the startup window (see ready.go).
package state

import (
	"context"
	"fmt"
	"time"

	"github.com/MaxOhn/twilight-dispatch/internal/logging"
	"github.com/MaxOhn/twilight-dispatch/internal/metrics"
	"github.com/MaxOhn/twilight-dispatch/internal/store"
)

// Dispatcher receives every downstream notification. Implementations must
// not block for long: they run inline on the event-processing goroutine to
// preserve notification order.
type Dispatcher func(event string, args ...any)

// handlerFunc is one entry of the dispatch table.
type handlerFunc func(ctx context.Context, data, old store.Record) error

// DefaultGuildReadyTimeout is the readiness quiescence timeout used when
// Options leaves it zero.
const DefaultGuildReadyTimeout = 2 * time.Second

// Options tunes the reconciler.
type Options struct {
	// GuildReadyTimeout is how long the readiness drain waits for the next
	// buffered GUILD_CREATE before concluding the startup window.
	GuildReadyTimeout time.Duration
}

// State is the reconciliation engine. It owns no entities: all prior state
// lives in the external keyed cache, all views are request-scoped.
type State struct {
	store        store.Store
	dispatch     Dispatcher
	handlers     map[string]func()
	readyTimeout time.Duration
	parsers      map[string]handlerFunc

	drainSlot drainSlot
}

// New builds a State over the given cache. dispatch receives downstream
// notifications; handlers holds synchronous callbacks invoked before the
// corresponding notification (currently only "ready" is consulted).
func New(st store.Store, dispatch Dispatcher, handlers map[string]func(), opts Options) *State {
	timeout := opts.GuildReadyTimeout
	if timeout <= 0 {
		timeout = DefaultGuildReadyTimeout
	}
	s := &State{
		store:        st,
		dispatch:     dispatch,
		handlers:     handlers,
		readyTimeout: timeout,
	}
	// Static event-kind routing table. Event kinds without an entry are
	// silently dropped for forward compatibility.
	s.parsers = map[string]handlerFunc{
		"READY":                         s.parseReady,
		"RESUMED":                       s.parseResumed,
		"MESSAGE_CREATE":                s.parseMessageCreate,
		"MESSAGE_DELETE":                s.parseMessageDelete,
		"MESSAGE_DELETE_BULK":           s.parseMessageDeleteBulk,
		"MESSAGE_UPDATE":                s.parseMessageUpdate,
		"MESSAGE_REACTION_ADD":          s.parseMessageReactionAdd,
		"MESSAGE_REACTION_REMOVE":       s.parseMessageReactionRemove,
		"MESSAGE_REACTION_REMOVE_ALL":   s.parseMessageReactionRemoveAll,
		"MESSAGE_REACTION_REMOVE_EMOJI": s.parseMessageReactionRemoveEmoji,
		"PRESENCE_UPDATE":               s.parsePresenceUpdate,
		"TYPING_START":                  s.parseTypingStart,
		"GUILD_CREATE":                  s.parseGuildCreate,
		"GUILD_UPDATE":                  s.parseGuildUpdate,
		"GUILD_DELETE":                  s.parseGuildDelete,
		"GUILD_BAN_ADD":                 s.parseGuildBanAdd,
		"GUILD_BAN_REMOVE":              s.parseGuildBanRemove,
		"GUILD_EMOJIS_UPDATE":           s.parseGuildEmojisUpdate,
		"GUILD_INTEGRATIONS_UPDATE":     s.parseGuildIntegrationsUpdate,
		"GUILD_MEMBER_ADD":              s.parseGuildMemberAdd,
		"GUILD_MEMBER_REMOVE":           s.parseGuildMemberRemove,
		"GUILD_MEMBER_UPDATE":           s.parseGuildMemberUpdate,
		"GUILD_ROLE_CREATE":             s.parseGuildRoleCreate,
		"GUILD_ROLE_UPDATE":             s.parseGuildRoleUpdate,
		"GUILD_ROLE_DELETE":             s.parseGuildRoleDelete,
		"CHANNEL_CREATE":                s.parseChannelCreate,
		"CHANNEL_UPDATE":                s.parseChannelUpdate,
		"CHANNEL_DELETE":                s.parseChannelDelete,
		"CHANNEL_PINS_UPDATE":           s.parseChannelPinsUpdate,
		"INVITE_CREATE":                 s.parseInviteCreate,
		"INVITE_DELETE":                 s.parseInviteDelete,
		"WEBHOOKS_UPDATE":               s.parseWebhooksUpdate,
		"VOICE_STATE_UPDATE":            s.parseVoiceStateUpdate,
	}
	return s
}

// Handle is the dispatch entry point invoked by the push connection for
// every raw event, in arrival order. data is the event payload; old is the
// previously cached version of the affected record, nil when none existed.
//
// Unknown event kinds are dropped silently. Errors indicate a cache
// integrity problem (malformed stored record) and surface to the caller.
func (s *State) Handle(ctx context.Context, eventType string, data, old store.Record) error {
	handler, ok := s.parsers[eventType]
	if !ok {
		metrics.GatewayEventsUnknown.Inc()
		log := logging.Ctx(ctx)
		log.Debug().Str("type", eventType).Msg("unknown gateway event")
		return nil
	}
	metrics.GatewayEvents.WithLabelValues(eventType).Inc()
	if err := handler(ctx, data, old); err != nil {
		metrics.GatewayEventErrors.WithLabelValues(eventType).Inc()
		return fmt.Errorf("handle %s: %w", eventType, err)
	}
	return nil
}

// emit delivers one downstream notification.
func (s *State) emit(event string, args ...any) {
	metrics.Notifications.WithLabelValues(event).Inc()
	if s.dispatch != nil {
		s.dispatch(event, args...)
	}
}

// callHandler invokes the synchronous callback registered for event, if any.
func (s *State) callHandler(event string) {
	if fn, ok := s.handlers[event]; ok {
		fn()
	}
}

func (s *State) parseResumed(ctx context.Context, data, old store.Record) error {
	s.emit("resumed")
	return nil
}
