// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package models

import "github.com/MaxOhn/twilight-dispatch/internal/store"

// ChannelKind discriminates private (DM) channels from guild channels.
// Every channel view carries it; handler logic branches on the discriminator
// and never on the presence of a guild reference.
type ChannelKind int

const (
	// KindGuild is a channel owned by a guild.
	KindGuild ChannelKind = iota
	// KindPrivate is a DM or group DM channel.
	KindPrivate
)

// Discord wire channel types.
const (
	channelTypeDM      = 1
	channelTypeGroupDM = 3
)

// KindOfType maps the wire channel type to the discriminator.
func KindOfType(channelType int) ChannelKind {
	if channelType == channelTypeDM || channelType == channelTypeGroupDM {
		return KindPrivate
	}
	return KindGuild
}

// Channel is a channel view. Guild is nil for private channels and for
// degraded guild-channel views whose owning guild was not in the cache.
type Channel struct {
	Kind                 ChannelKind
	ID                   int64
	Type                 int
	GuildID              int64
	Guild                *Guild
	Name                 string
	Topic                string
	Position             int
	NSFW                 bool
	ParentID             int64
	LastMessageID        int64
	Recipient            *User
	PermissionOverwrites []store.Record
}

// NewChannel builds a guild-channel view. guild may be nil (degraded view);
// the guild id still comes from the record or its key scope.
func NewChannel(rec store.Record, guild *Guild) *Channel {
	if rec == nil {
		return nil
	}
	guildID := rec.Int64("guild_id")
	if guildID == 0 {
		if scopes := rec.Scopes(); len(scopes) == 2 {
			guildID = scopes[0]
		}
	}
	if guildID == 0 && guild != nil {
		guildID = guild.ID
	}
	return &Channel{
		Kind:                 KindOfType(rec.Int("type")),
		ID:                   rec.Int64("id"),
		Type:                 rec.Int("type"),
		GuildID:              guildID,
		Guild:                guild,
		Name:                 rec.Str("name"),
		Topic:                rec.Str("topic"),
		Position:             rec.Int("position"),
		NSFW:                 rec.Bool("nsfw"),
		ParentID:             rec.Int64("parent_id"),
		LastMessageID:        rec.Int64("last_message_id"),
		PermissionOverwrites: rec.Slice("permission_overwrites"),
	}
}

// NewPrivateChannel builds a DM-channel view. The recipient is the first
// entry of the payload's recipient list.
func NewPrivateChannel(rec store.Record) *Channel {
	if rec == nil {
		return nil
	}
	ch := &Channel{
		Kind:          KindPrivate,
		ID:            rec.Int64("id"),
		Type:          rec.Int("type"),
		Name:          rec.Str("name"),
		LastMessageID: rec.Int64("last_message_id"),
	}
	if recipients := rec.Slice("recipients"); len(recipients) > 0 {
		ch.Recipient = NewUser(recipients[0])
	}
	return ch
}
