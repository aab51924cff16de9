// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package models

import (
	"time"

	"github.com/MaxOhn/twilight-dispatch/internal/store"
)

// Invite is an invite view from a gateway invite payload. Guild and Channel
// may be nil when the referenced entities are uncached.
type Invite struct {
	Code      string
	GuildID   int64
	ChannelID int64
	Guild     *Guild
	Channel   *Channel
	Inviter   *User
	MaxAge    int
	MaxUses   int
	Uses      int
	Temporary bool
	CreatedAt time.Time
}

// NewInvite builds an invite view.
func NewInvite(rec store.Record, guild *Guild, channel *Channel) *Invite {
	if rec == nil {
		return nil
	}
	inv := &Invite{
		Code:      rec.Str("code"),
		GuildID:   rec.Int64("guild_id"),
		ChannelID: rec.Int64("channel_id"),
		Guild:     guild,
		Channel:   channel,
		Inviter:   NewUser(rec.Map("inviter")),
		MaxAge:    rec.Int("max_age"),
		MaxUses:   rec.Int("max_uses"),
		Uses:      rec.Int("uses"),
		Temporary: rec.Bool("temporary"),
	}
	if ts, ok := rec.Time("created_at"); ok {
		inv.CreatedAt = ts
	}
	return inv
}
