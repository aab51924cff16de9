// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package models

import "github.com/MaxOhn/twilight-dispatch/internal/store"

// Raw event views carry the identifiers of an event even when the affected
// entity has no cached prior state, so downstream subscribers that keep
// their own state can still react. They are always emitted regardless of
// cache hits.

// Reaction action identifiers for RawReactionAction.Event.
const (
	ReactionActionAdd    = "REACTION_ADD"
	ReactionActionRemove = "REACTION_REMOVE"
)

// RawMessageDelete is the always-emitted half of MESSAGE_DELETE.
type RawMessageDelete struct {
	MessageID     int64
	ChannelID     int64
	GuildID       int64
	CachedMessage *Message
}

// NewRawMessageDelete builds the raw view from the event payload.
func NewRawMessageDelete(data store.Record) *RawMessageDelete {
	return &RawMessageDelete{
		MessageID: data.Int64("id"),
		ChannelID: data.Int64("channel_id"),
		GuildID:   data.Int64("guild_id"),
	}
}

// RawBulkMessageDelete is the always-emitted half of MESSAGE_DELETE_BULK.
type RawBulkMessageDelete struct {
	MessageIDs     []int64
	ChannelID      int64
	GuildID        int64
	CachedMessages []*Message
}

// NewRawBulkMessageDelete builds the raw view from the event payload.
func NewRawBulkMessageDelete(data store.Record) *RawBulkMessageDelete {
	return &RawBulkMessageDelete{
		MessageIDs: data.Int64s("ids"),
		ChannelID:  data.Int64("channel_id"),
		GuildID:    data.Int64("guild_id"),
	}
}

// RawMessageEdit is the always-emitted half of MESSAGE_UPDATE. Data carries
// the full partial-update payload for subscribers that diff themselves.
type RawMessageEdit struct {
	MessageID     int64
	ChannelID     int64
	Data          store.Record
	CachedMessage *Message
}

// NewRawMessageEdit builds the raw view from the event payload.
func NewRawMessageEdit(data store.Record) *RawMessageEdit {
	return &RawMessageEdit{
		MessageID: data.Int64("id"),
		ChannelID: data.Int64("channel_id"),
		Data:      data,
	}
}

// RawReactionAction is the always-emitted half of reaction add/remove.
type RawReactionAction struct {
	MessageID int64
	ChannelID int64
	GuildID   int64
	UserID    int64
	Emoji     PartialEmoji
	Event     string
	Member    *Member
}

// NewRawReactionAction builds the raw view from the event payload.
func NewRawReactionAction(data store.Record, emoji PartialEmoji, event string) *RawReactionAction {
	return &RawReactionAction{
		MessageID: data.Int64("message_id"),
		ChannelID: data.Int64("channel_id"),
		GuildID:   data.Int64("guild_id"),
		UserID:    data.Int64("user_id"),
		Emoji:     emoji,
		Event:     event,
	}
}

// RawReactionClear is the always-emitted half of reaction remove-all.
type RawReactionClear struct {
	MessageID int64
	ChannelID int64
	GuildID   int64
}

// NewRawReactionClear builds the raw view from the event payload.
func NewRawReactionClear(data store.Record) *RawReactionClear {
	return &RawReactionClear{
		MessageID: data.Int64("message_id"),
		ChannelID: data.Int64("channel_id"),
		GuildID:   data.Int64("guild_id"),
	}
}

// RawReactionClearEmoji is the always-emitted half of reaction remove-emoji.
type RawReactionClearEmoji struct {
	MessageID int64
	ChannelID int64
	GuildID   int64
	Emoji     PartialEmoji
}

// NewRawReactionClearEmoji builds the raw view from the event payload.
func NewRawReactionClearEmoji(data store.Record, emoji PartialEmoji) *RawReactionClearEmoji {
	return &RawReactionClearEmoji{
		MessageID: data.Int64("message_id"),
		ChannelID: data.Int64("channel_id"),
		GuildID:   data.Int64("guild_id"),
		Emoji:     emoji,
	}
}
