// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package state

import (
	"context"

	"github.com/MaxOhn/twilight-dispatch/internal/logging"
	"github.com/MaxOhn/twilight-dispatch/internal/models"
	"github.com/MaxOhn/twilight-dispatch/internal/store"
)

func (s *State) parseGuildCreate(ctx context.Context, data, old store.Record) error {
	// An unavailable guild announces itself again once it recovers.
	if data.Bool("unavailable") {
		return nil
	}
	guild := models.NewGuild(data)
	if s.enqueueReadyGuild(guild) {
		return nil
	}
	if guild.ExplicitlyAvailable() {
		s.emit("guild_available", guild)
	} else {
		s.emit("guild_join", guild)
	}
	return nil
}

func (s *State) parseGuildUpdate(ctx context.Context, data, old store.Record) error {
	if old == nil {
		return nil
	}
	s.emit("guild_update", models.NewGuild(old), models.NewGuild(store.ApplyDelta(old, data)))
	return nil
}

func (s *State) parseGuildDelete(ctx context.Context, data, old store.Record) error {
	if old == nil {
		return nil
	}
	guild := models.NewGuild(store.ApplyDelta(old, data))
	if data.Bool("unavailable") {
		s.emit("guild_unavailable", guild)
		return nil
	}
	s.emit("guild_remove", guild)
	return nil
}

func (s *State) parseGuildBanAdd(ctx context.Context, data, old store.Record) error {
	guild, err := s.getGuild(ctx, data.Int64("guild_id"))
	if err != nil {
		return err
	}
	if guild == nil {
		return nil
	}
	user := models.NewUser(data.Map("user"))
	if user == nil {
		return nil
	}
	// Prefer the richer member view when the ban beat the member removal.
	member, err := s.getMember(ctx, guild.ID, user.ID)
	if err != nil {
		return err
	}
	if member != nil {
		s.emit("member_ban", guild, member)
	} else {
		s.emit("member_ban", guild, user)
	}
	return nil
}

func (s *State) parseGuildBanRemove(ctx context.Context, data, old store.Record) error {
	guild, err := s.getGuild(ctx, data.Int64("guild_id"))
	if err != nil {
		return err
	}
	if guild == nil {
		return nil
	}
	if user := models.NewUser(data.Map("user")); user != nil {
		s.emit("member_unban", guild, user)
	}
	return nil
}

func (s *State) parseGuildEmojisUpdate(ctx context.Context, data, old store.Record) error {
	guild, err := s.getGuild(ctx, data.Int64("guild_id"))
	if err != nil {
		return err
	}
	if guild == nil {
		return nil
	}
	// An empty prior list is treated the same as no prior list: before
	// stays nil rather than an empty slice.
	var before []*models.Emoji
	if items := old.Slice("items"); len(items) > 0 {
		before = make([]*models.Emoji, 0, len(items))
		for _, item := range items {
			before = append(before, models.NewEmoji(item, guild))
		}
	}
	emojis := data.Slice("emojis")
	after := make([]*models.Emoji, 0, len(emojis))
	for _, item := range emojis {
		after = append(after, models.NewEmoji(item, guild))
	}
	s.emit("guild_emojis_update", guild, before, after)
	return nil
}

func (s *State) parseGuildIntegrationsUpdate(ctx context.Context, data, old store.Record) error {
	guild, err := s.getGuild(ctx, data.Int64("guild_id"))
	if err != nil {
		return err
	}
	if guild != nil {
		s.emit("guild_integrations_update", guild)
	}
	return nil
}

func (s *State) parseGuildMemberAdd(ctx context.Context, data, old store.Record) error {
	member := models.NewMember(data, data.Int64("guild_id"))
	if member.User == nil {
		log := logging.Ctx(ctx)
		log.Warn().Int64("guild_id", member.GuildID).Msg("member add without user payload")
		return nil
	}
	s.emit("member_join", member)
	return nil
}

func (s *State) parseGuildMemberRemove(ctx context.Context, data, old store.Record) error {
	guild, err := s.getGuild(ctx, data.Int64("guild_id"))
	if err != nil {
		return err
	}
	if guild == nil {
		return nil
	}
	// The cached member record was already evicted; the prior copy travels
	// as old. Fall back to the bare payload user when nothing was cached.
	if old != nil {
		s.emit("member_remove", models.NewMember(old, guild.ID))
		return nil
	}
	if user := models.NewUser(data.Map("user")); user != nil {
		s.emit("member_remove", &models.Member{GuildID: guild.ID, User: user})
	}
	return nil
}

func (s *State) parseGuildMemberUpdate(ctx context.Context, data, old store.Record) error {
	guild, err := s.getGuild(ctx, data.Int64("guild_id"))
	if err != nil {
		return err
	}
	if guild == nil {
		return nil
	}
	userID := data.Map("user").Int64("id")
	member, err := s.getMember(ctx, guild.ID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return nil
	}
	newMember := member.Clone()
	if user := data.Map("user"); len(user) > 1 {
		newMember.User = newMember.User.Apply(user)
	}
	oldMember := newMember.Apply(old)
	if user := old.Map("user"); len(user) > 1 {
		oldMember.User = member.User.Apply(user)
	}
	if !oldMember.User.IdentityEquals(newMember.User) {
		s.emit("user_update", oldMember.User, newMember.User)
	}
	s.emit("member_update", oldMember, newMember)
	return nil
}

func (s *State) parsePresenceUpdate(ctx context.Context, data, old store.Record) error {
	guild, err := s.getGuild(ctx, data.Int64("guild_id"))
	if err != nil {
		return err
	}
	if guild == nil {
		return nil
	}
	userID := data.Map("user").Int64("id")
	member, err := s.getMember(ctx, guild.ID, userID)
	if err != nil {
		return err
	}
	if member == nil || old == nil {
		return nil
	}
	oldMember := member.ApplyPresence(old)
	if !oldMember.User.IdentityEquals(member.User) {
		s.emit("user_update", oldMember.User, member.User)
	}
	s.emit("member_update", oldMember, member)
	return nil
}

func (s *State) parseGuildRoleCreate(ctx context.Context, data, old store.Record) error {
	guild, err := s.getGuild(ctx, data.Int64("guild_id"))
	if err != nil {
		return err
	}
	role := models.NewRole(data.Map("role"), guild)
	if role == nil {
		return nil
	}
	if role.GuildID == 0 {
		role.GuildID = data.Int64("guild_id")
	}
	s.emit("guild_role_create", role)
	return nil
}

func (s *State) parseGuildRoleUpdate(ctx context.Context, data, old store.Record) error {
	if old == nil {
		return nil
	}
	guild, err := s.getGuild(ctx, data.Int64("guild_id"))
	if err != nil {
		return err
	}
	oldRole := models.NewRole(old, guild)
	newRole := models.NewRole(store.ApplyDelta(old, data.Map("role")), guild)
	s.emit("guild_role_update", oldRole, newRole)
	return nil
}

func (s *State) parseGuildRoleDelete(ctx context.Context, data, old store.Record) error {
	if old == nil {
		return nil
	}
	guild, err := s.getGuild(ctx, data.Int64("guild_id"))
	if err != nil {
		return err
	}
	s.emit("guild_role_delete", models.NewRole(old, guild))
	return nil
}
