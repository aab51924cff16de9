// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package state

import (
	"context"
	"time"

	"github.com/MaxOhn/twilight-dispatch/internal/models"
	"github.com/MaxOhn/twilight-dispatch/internal/store"
)

func (s *State) parseChannelCreate(ctx context.Context, data, old store.Record) error {
	if models.KindOfType(data.Int("type")) == models.KindPrivate {
		s.emit("private_channel_create", models.NewPrivateChannel(data))
		return nil
	}
	guild, err := s.getGuild(ctx, data.Int64("guild_id"))
	if err != nil {
		return err
	}
	s.emit("guild_channel_create", models.NewChannel(data, guild))
	return nil
}

func (s *State) parseChannelUpdate(ctx context.Context, data, old store.Record) error {
	if old == nil {
		return nil
	}
	merged := store.ApplyDelta(old, data)
	if models.KindOfType(data.Int("type")) == models.KindPrivate {
		s.emit("private_channel_update", models.NewPrivateChannel(old), models.NewPrivateChannel(merged))
		return nil
	}
	guild, err := s.getGuild(ctx, data.Int64("guild_id"))
	if err != nil {
		return err
	}
	s.emit("guild_channel_update", models.NewChannel(old, guild), models.NewChannel(merged, guild))
	return nil
}

func (s *State) parseChannelDelete(ctx context.Context, data, old store.Record) error {
	if old == nil {
		return nil
	}
	if models.KindOfType(old.Int("type")) == models.KindPrivate {
		s.emit("private_channel_delete", models.NewPrivateChannel(old))
		return nil
	}
	guild, err := s.getGuild(ctx, data.Int64("guild_id"))
	if err != nil {
		return err
	}
	s.emit("guild_channel_delete", models.NewChannel(old, guild))
	return nil
}

func (s *State) parseChannelPinsUpdate(ctx context.Context, data, old store.Record) error {
	channel, err := s.getChannel(ctx, data.Int64("channel_id"))
	if err != nil {
		return err
	}
	if channel == nil {
		return nil
	}
	var lastPin *time.Time
	if ts, ok := data.Time("last_pin_timestamp"); ok {
		lastPin = &ts
	}
	if channel.Kind == models.KindPrivate {
		s.emit("private_channel_pins_update", channel, lastPin)
	} else {
		s.emit("guild_channel_pins_update", channel, lastPin)
	}
	return nil
}

func (s *State) parseTypingStart(ctx context.Context, data, old store.Record) error {
	channel, err := s.getChannel(ctx, data.Int64("channel_id"))
	if err != nil {
		return err
	}
	if channel == nil {
		return nil
	}
	var who any
	if channel.Kind == models.KindGuild {
		member, err := s.getMember(ctx, channel.GuildID, data.Int64("user_id"))
		if err != nil {
			return err
		}
		if member != nil {
			who = member
		}
	} else if channel.Recipient != nil && channel.Recipient.ID == data.Int64("user_id") {
		who = channel.Recipient
	}
	if who == nil {
		return nil
	}
	timestamp := time.Unix(data.Int64("timestamp"), 0).UTC()
	s.emit("typing", channel, who, timestamp)
	return nil
}

func (s *State) parseInviteCreate(ctx context.Context, data, old store.Record) error {
	invite, err := s.materializeInvite(ctx, data)
	if err != nil {
		return err
	}
	s.emit("invite_create", invite)
	return nil
}

func (s *State) parseInviteDelete(ctx context.Context, data, old store.Record) error {
	invite, err := s.materializeInvite(ctx, data)
	if err != nil {
		return err
	}
	s.emit("invite_delete", invite)
	return nil
}

func (s *State) materializeInvite(ctx context.Context, data store.Record) (*models.Invite, error) {
	guild, err := s.getGuild(ctx, data.Int64("guild_id"))
	if err != nil {
		return nil, err
	}
	channel, err := s.getChannel(ctx, data.Int64("channel_id"))
	if err != nil {
		return nil, err
	}
	return models.NewInvite(data, guild, channel), nil
}

func (s *State) parseWebhooksUpdate(ctx context.Context, data, old store.Record) error {
	channel, err := s.getChannel(ctx, data.Int64("channel_id"))
	if err != nil {
		return err
	}
	if channel != nil {
		s.emit("webhooks_update", channel)
	}
	return nil
}

func (s *State) parseVoiceStateUpdate(ctx context.Context, data, old store.Record) error {
	guild, err := s.getGuild(ctx, data.Int64("guild_id"))
	if err != nil {
		return err
	}
	if guild == nil {
		return nil
	}
	member, err := s.getMember(ctx, guild.ID, data.Int64("user_id"))
	if err != nil {
		return err
	}
	if member == nil {
		return nil
	}
	afterChannel, err := s.getChannel(ctx, data.Int64("channel_id"))
	if err != nil {
		return err
	}
	after := models.NewVoiceState(data, afterChannel)

	var before *models.VoiceState
	if old != nil {
		beforeChannel, err := s.getChannel(ctx, old.Int64("channel_id"))
		if err != nil {
			return err
		}
		before = models.NewVoiceState(old, beforeChannel)
	}
	s.emit("voice_state_update", member, before, after)
	return nil
}
