// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package models

import "github.com/MaxOhn/twilight-dispatch/internal/store"

// Guild is a guild view. Unavailable is tri-state: the gateway sends an
// explicit false on outage recovery, omits the flag on organic joins, and
// sends true while a guild is down.
type Guild struct {
	ID                int64
	Name              string
	Icon              string
	Banner            string
	Splash            string
	Description       string
	OwnerID           int64
	Region            string
	PreferredLocale   string
	Features          []string
	MemberCount       int
	Large             bool
	VerificationLevel int
	MFALevel          int
	AFKTimeout        int
	AFKChannelID      int64
	SystemChannelID   int64
	RulesChannelID    int64
	PremiumTier       int
	PremiumSubs       int
	MaxMembers        int
	MaxPresences      int
	Unavailable       *bool
}

// NewGuild builds a guild view from a guild record or payload.
func NewGuild(rec store.Record) *Guild {
	if rec == nil {
		return nil
	}
	g := &Guild{
		ID:                rec.Int64("id"),
		Name:              rec.Str("name"),
		Icon:              rec.Str("icon"),
		Banner:            rec.Str("banner"),
		Splash:            rec.Str("splash"),
		Description:       rec.Str("description"),
		OwnerID:           rec.Int64("owner_id"),
		Region:            rec.Str("region"),
		PreferredLocale:   rec.Str("preferred_locale"),
		Features:          rec.Strs("features"),
		MemberCount:       rec.Int("member_count"),
		VerificationLevel: rec.Int("verification_level"),
		MFALevel:          rec.Int("mfa_level"),
		AFKTimeout:        rec.Int("afk_timeout"),
		AFKChannelID:      rec.Int64("afk_channel_id"),
		SystemChannelID:   rec.Int64("system_channel_id"),
		RulesChannelID:    rec.Int64("rules_channel_id"),
		PremiumTier:       rec.Int("premium_tier"),
		PremiumSubs:       rec.Int("premium_subscription_count"),
		MaxMembers:        rec.Int("max_members"),
		MaxPresences:      rec.Int("max_presences"),
	}
	g.Large = g.MemberCount >= 250
	if v, ok := rec.BoolOK("unavailable"); ok {
		g.Unavailable = &v
	}
	return g
}

// ExplicitlyAvailable reports whether the payload carried unavailable=false,
// the marker distinguishing an outage recovery from a fresh join.
func (g *Guild) ExplicitlyAvailable() bool {
	return g != nil && g.Unavailable != nil && !*g.Unavailable
}
