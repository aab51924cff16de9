// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package models

import "github.com/MaxOhn/twilight-dispatch/internal/store"

// Emoji is a guild emoji view.
type Emoji struct {
	ID            int64
	Name          string
	Animated      bool
	Managed       bool
	RequireColons bool
	Available     bool
	GuildID       int64
	Guild         *Guild
	Roles         []int64
}

// NewEmoji builds an emoji view from a record plus its resolved guild
// (nil yields a degraded view).
func NewEmoji(rec store.Record, guild *Guild) *Emoji {
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
	return &Emoji{
		ID:            rec.Int64("id"),
		Name:          rec.Str("name"),
		Animated:      rec.Bool("animated"),
		Managed:       rec.Bool("managed"),
		RequireColons: rec.Bool("require_colons"),
		Available:     rec.Bool("available"),
		GuildID:       guildID,
		Guild:         guild,
		Roles:         rec.Int64s("roles"),
	}
}

// PartialEmoji is the bare emoji reference carried inline in reaction
// payloads: custom emojis have an ID, unicode emojis only a name.
type PartialEmoji struct {
	ID       int64
	Name     string
	Animated bool
}

// NewPartialEmoji builds a partial emoji from an inline emoji payload.
func NewPartialEmoji(rec store.Record) PartialEmoji {
	return PartialEmoji{
		ID:       rec.Int64("id"),
		Name:     rec.Str("name"),
		Animated: rec.Bool("animated"),
	}
}

// IsCustom reports whether the emoji is a custom (ID-bearing) emoji that
// may be upgradable to a full cached view.
func (e PartialEmoji) IsCustom() bool {
	return e.ID != 0
}
