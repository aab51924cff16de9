// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package state

import (
	"context"
	"fmt"

	"github.com/MaxOhn/twilight-dispatch/internal/metrics"
	"github.com/MaxOhn/twilight-dispatch/internal/models"
	"github.com/MaxOhn/twilight-dispatch/internal/store"
)

// Lookup helpers. Absence is never an error: helpers return a nil view and
// record the miss, letting each handler degrade per its own rules. Errors
// only mean the store failed or a record is malformed.

func absent(kind string) {
	metrics.LookupsAbsent.WithLabelValues(kind).Inc()
}

func (s *State) getGuild(ctx context.Context, guildID int64) (*models.Guild, error) {
	if guildID == 0 {
		return nil, nil
	}
	rec, ok, err := s.store.Get(ctx, store.GuildKey(guildID))
	if err != nil {
		return nil, err
	}
	if !ok {
		absent("guild")
		return nil, nil
	}
	return models.NewGuild(rec), nil
}

func (s *State) getMember(ctx context.Context, guildID, userID int64) (*models.Member, error) {
	if guildID == 0 || userID == 0 {
		return nil, nil
	}
	rec, ok, err := s.store.Get(ctx, store.MemberKey(guildID, userID))
	if err != nil {
		return nil, err
	}
	if !ok {
		absent("member")
		return nil, nil
	}
	return models.NewMember(rec, guildID), nil
}

// getChannel resolves a channel of unknown kind: exact private key first,
// then a scan across guild scopes.
func (s *State) getChannel(ctx context.Context, channelID int64) (*models.Channel, error) {
	if channelID == 0 {
		return nil, nil
	}
	rec, ok, err := s.store.Get(ctx, store.PrivateChannelKey(channelID))
	if err != nil {
		return nil, err
	}
	if ok {
		return models.NewPrivateChannel(rec), nil
	}
	return s.getGuildChannel(ctx, channelID)
}

func (s *State) getGuildChannel(ctx context.Context, channelID int64) (*models.Channel, error) {
	if channelID == 0 {
		return nil, nil
	}
	rec, ok, err := s.store.ScanOne(ctx, fmt.Sprintf("channel:*:%d", channelID))
	if err != nil {
		return nil, err
	}
	if !ok {
		absent("channel")
		return nil, nil
	}
	var guild *models.Guild
	if scopes := rec.Scopes(); len(scopes) == 2 {
		guild, err = s.getGuild(ctx, scopes[0])
		if err != nil {
			return nil, err
		}
	}
	return models.NewChannel(rec, guild), nil
}

func (s *State) getMessage(ctx context.Context, messageID int64) (*models.Message, error) {
	if messageID == 0 {
		return nil, nil
	}
	rec, ok, err := s.store.ScanOne(ctx, fmt.Sprintf("message:*:%d", messageID))
	if err != nil {
		return nil, err
	}
	if !ok {
		absent("message")
		return nil, nil
	}
	var channel *models.Channel
	if scopes := rec.Scopes(); len(scopes) == 2 {
		channel, err = s.getChannel(ctx, scopes[0])
		if err != nil {
			return nil, err
		}
	}
	return models.NewMessage(rec, channel), nil
}

// getUser locates a user by scanning member records across all guilds.
func (s *State) getUser(ctx context.Context, userID int64) (*models.User, error) {
	if userID == 0 {
		return nil, nil
	}
	rec, ok, err := s.store.ScanOne(ctx, fmt.Sprintf("member:*:%d", userID))
	if err != nil {
		return nil, err
	}
	if !ok {
		absent("user")
		return nil, nil
	}
	return models.NewUser(rec.Map("user")), nil
}

func (s *State) getEmoji(ctx context.Context, emojiID int64) (*models.Emoji, error) {
	if emojiID == 0 {
		return nil, nil
	}
	rec, ok, err := s.store.ScanOne(ctx, fmt.Sprintf("emoji:*:%d", emojiID))
	if err != nil {
		return nil, err
	}
	if !ok {
		absent("emoji")
		return nil, nil
	}
	var guild *models.Guild
	if scopes := rec.Scopes(); len(scopes) == 2 {
		guild, err = s.getGuild(ctx, scopes[0])
		if err != nil {
			return nil, err
		}
	}
	return models.NewEmoji(rec, guild), nil
}

// upgradeEmoji swaps a custom partial emoji for its cached full view when
// available; unicode emojis and cache misses keep only the partial.
func (s *State) upgradeEmoji(ctx context.Context, partial models.PartialEmoji) (*models.Emoji, error) {
	if !partial.IsCustom() {
		return nil, nil
	}
	return s.getEmoji(ctx, partial.ID)
}

// resolveReactor identifies who reacted: a guild member for guild text
// channels, otherwise a bare user. Returns nil when neither resolves.
func (s *State) resolveReactor(ctx context.Context, channel *models.Channel, userID int64) (any, error) {
	if channel != nil && channel.Kind == models.KindGuild && channel.GuildID != 0 {
		member, err := s.getMember(ctx, channel.GuildID, userID)
		if err != nil {
			return nil, err
		}
		if member != nil {
			return member, nil
		}
		return nil, nil
	}
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return user, nil
}
