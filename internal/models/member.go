// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package models

import (
	"slices"
	"time"

	"github.com/MaxOhn/twilight-dispatch/internal/store"
)

// Member is a guild-member view: a user plus guild-scoped state, including
// the presence fields the gateway folds into member records.
type Member struct {
	GuildID    int64
	User       *User
	Nick       string
	Roles      []int64
	JoinedAt   time.Time
	Deaf       bool
	Mute       bool
	Status     string
	Activities []store.Record
}

// NewMember builds a member view from a member record or payload.
func NewMember(rec store.Record, guildID int64) *Member {
	if rec == nil {
		return nil
	}
	if guildID == 0 {
		guildID = rec.Int64("guild_id")
	}
	if guildID == 0 {
		if scopes := rec.Scopes(); len(scopes) == 2 {
			guildID = scopes[0]
		}
	}
	m := &Member{
		GuildID:    guildID,
		User:       NewUser(rec.Map("user")),
		Nick:       rec.Str("nick"),
		Roles:      rec.Int64s("roles"),
		Deaf:       rec.Bool("deaf"),
		Mute:       rec.Bool("mute"),
		Status:     rec.Str("status"),
		Activities: rec.Slice("activities"),
	}
	if joined, ok := rec.Time("joined_at"); ok {
		m.JoinedAt = joined
	}
	return m
}

// Clone returns a deep copy of the member.
func (m *Member) Clone() *Member {
	if m == nil {
		return nil
	}
	clone := *m
	clone.User = m.User.Clone()
	clone.Roles = slices.Clone(m.Roles)
	clone.Activities = slices.Clone(m.Activities)
	return &clone
}

// Apply overlays the member-scoped fields present in rec onto a copy and
// returns it. Used to reconstruct the "before" view from a cached prior
// payload; the receiver is not mutated.
func (m *Member) Apply(rec store.Record) *Member {
	out := m.Clone()
	if out == nil {
		out = &Member{}
	}
	if rec.Has("nick") {
		out.Nick = rec.Str("nick")
	}
	if rec.Has("roles") {
		out.Roles = rec.Int64s("roles")
	}
	if rec.Has("deaf") {
		out.Deaf = rec.Bool("deaf")
	}
	if rec.Has("mute") {
		out.Mute = rec.Bool("mute")
	}
	if rec.Has("joined_at") {
		if joined, ok := rec.Time("joined_at"); ok {
			out.JoinedAt = joined
		}
	}
	return out
}

// ApplyPresence overlays a presence payload (status, activities, nested
// user fields) onto a copy and returns it.
func (m *Member) ApplyPresence(rec store.Record) *Member {
	out := m.Clone()
	if out == nil {
		out = &Member{}
	}
	if rec.Has("status") {
		out.Status = rec.Str("status")
	}
	if rec.Has("activities") {
		out.Activities = rec.Slice("activities")
	}
	if user := rec.Map("user"); len(user) > 1 {
		out.User = out.User.Apply(user)
	}
	return out
}

// VoiceState is an ephemeral per-event voice view; it is never persisted by
// the reconciler.
type VoiceState struct {
	GuildID    int64
	ChannelID  int64
	UserID     int64
	SessionID  string
	Channel    *Channel
	Deaf       bool
	Mute       bool
	SelfDeaf   bool
	SelfMute   bool
	SelfStream bool
	SelfVideo  bool
	Suppress   bool
}

// NewVoiceState builds a voice view from a payload plus the resolved channel
// (nil when the user is not in a channel or the channel is uncached).
func NewVoiceState(rec store.Record, channel *Channel) *VoiceState {
	if rec == nil {
		return nil
	}
	return &VoiceState{
		GuildID:    rec.Int64("guild_id"),
		ChannelID:  rec.Int64("channel_id"),
		UserID:     rec.Int64("user_id"),
		SessionID:  rec.Str("session_id"),
		Channel:    channel,
		Deaf:       rec.Bool("deaf"),
		Mute:       rec.Bool("mute"),
		SelfDeaf:   rec.Bool("self_deaf"),
		SelfMute:   rec.Bool("self_mute"),
		SelfStream: rec.Bool("self_stream"),
		SelfVideo:  rec.Bool("self_video"),
		Suppress:   rec.Bool("suppress"),
	}
}
