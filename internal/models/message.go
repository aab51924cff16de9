// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package models

import (
	"time"

	"github.com/MaxOhn/twilight-dispatch/internal/store"
)

// Message is a message view built from a cached record or event payload
// plus its resolved channel (nil when the channel is uncached).
type Message struct {
	ID              int64
	ChannelID       int64
	GuildID         int64
	Channel         *Channel
	Author          *User
	Content         string
	Timestamp       time.Time
	EditedTimestamp *time.Time
	TTS             bool
	MentionEveryone bool
	Pinned          bool
	Type            int
	Attachments     []store.Record
	Embeds          []store.Record
}

// NewMessage builds a message view.
func NewMessage(rec store.Record, channel *Channel) *Message {
	if rec == nil {
		return nil
	}
	channelID := rec.Int64("channel_id")
	if channelID == 0 {
		if scopes := rec.Scopes(); len(scopes) == 2 {
			channelID = scopes[0]
		}
	}
	m := &Message{
		ID:              rec.Int64("id"),
		ChannelID:       channelID,
		GuildID:         rec.Int64("guild_id"),
		Channel:         channel,
		Author:          NewUser(rec.Map("author")),
		Content:         rec.Str("content"),
		TTS:             rec.Bool("tts"),
		MentionEveryone: rec.Bool("mention_everyone"),
		Pinned:          rec.Bool("pinned"),
		Type:            rec.Int("type"),
		Attachments:     rec.Slice("attachments"),
		Embeds:          rec.Slice("embeds"),
	}
	if ts, ok := rec.Time("timestamp"); ok {
		m.Timestamp = ts
	}
	if ts, ok := rec.Time("edited_timestamp"); ok {
		m.EditedTimestamp = &ts
	}
	return m
}

// Reaction pairs a message with the emoji reacted. Emoji is the fully
// cached emoji when resolvable; Partial always carries the payload emoji.
type Reaction struct {
	Message *Message
	Emoji   *Emoji
	Partial PartialEmoji
}

// NewReaction builds a reaction view.
func NewReaction(message *Message, partial PartialEmoji, emoji *Emoji) *Reaction {
	return &Reaction{Message: message, Emoji: emoji, Partial: partial}
}
