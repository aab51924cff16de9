// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package models

import "github.com/MaxOhn/twilight-dispatch/internal/store"

// Role is a guild role view.
type Role struct {
	ID          int64
	GuildID     int64
	Guild       *Guild
	Name        string
	Color       int
	Hoist       bool
	Position    int
	Permissions int64
	Managed     bool
	Mentionable bool
}

// NewRole builds a role view from a role record plus its resolved guild.
func NewRole(rec store.Record, guild *Guild) *Role {
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
	return &Role{
		ID:          rec.Int64("id"),
		GuildID:     guildID,
		Guild:       guild,
		Name:        rec.Str("name"),
		Color:       rec.Int("color"),
		Hoist:       rec.Bool("hoist"),
		Position:    rec.Int("position"),
		Permissions: rec.Int64("permissions"),
		Managed:     rec.Bool("managed"),
		Mentionable: rec.Bool("mentionable"),
	}
}
