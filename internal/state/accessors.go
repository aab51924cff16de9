// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package state

import (
	"context"

	"github.com/MaxOhn/twilight-dispatch/internal/models"
	"github.com/MaxOhn/twilight-dispatch/internal/store"
)

// Exported cache accessors for embedders (bot frameworks, inspection
// tooling). These are bulk reads over the shared cache; none of them are
// used on the event hot path.

// BotUser returns the connected bot's own user, or nil if not yet cached.
func (s *State) BotUser(ctx context.Context) (*models.User, error) {
	rec, ok, err := s.store.Get(ctx, store.BotUserKey)
	if err != nil || !ok {
		return nil, err
	}
	return models.NewUser(rec), nil
}

// Guilds lists every cached guild.
func (s *State) Guilds(ctx context.Context) ([]*models.Guild, error) {
	records, err := s.store.ScanAll(ctx, "guild:*")
	if err != nil {
		return nil, err
	}
	guilds := make([]*models.Guild, 0, len(records))
	for _, rec := range records {
		guilds = append(guilds, models.NewGuild(rec))
	}
	return guilds, nil
}

// Users lists every distinct user known through member records.
func (s *State) Users(ctx context.Context) ([]*models.User, error) {
	records, err := s.store.ScanAll(ctx, "member:*:*")
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]struct{}, len(records))
	users := make([]*models.User, 0, len(records))
	for _, rec := range records {
		user := models.NewUser(rec.Map("user"))
		if user == nil {
			continue
		}
		if _, dup := seen[user.ID]; dup {
			continue
		}
		seen[user.ID] = struct{}{}
		users = append(users, user)
	}
	return users, nil
}

// Emojis lists every cached emoji with its guild resolved.
func (s *State) Emojis(ctx context.Context) ([]*models.Emoji, error) {
	records, err := s.store.ScanAll(ctx, "emoji:*:*")
	if err != nil {
		return nil, err
	}
	emojis := make([]*models.Emoji, 0, len(records))
	for _, rec := range records {
		var guild *models.Guild
		if scopes := rec.Scopes(); len(scopes) == 2 {
			guild, err = s.getGuild(ctx, scopes[0])
			if err != nil {
				return nil, err
			}
		}
		emojis = append(emojis, models.NewEmoji(rec, guild))
	}
	return emojis, nil
}

// PrivateChannels lists every cached DM channel.
func (s *State) PrivateChannels(ctx context.Context) ([]*models.Channel, error) {
	records, err := s.store.ScanAll(ctx, "channel:*")
	if err != nil {
		return nil, err
	}
	var channels []*models.Channel
	for _, rec := range records {
		// Private channels carry a single key scope ("channel:{id}");
		// guild channels carry two.
		if len(rec.Scopes()) != 1 {
			continue
		}
		channels = append(channels, models.NewPrivateChannel(rec))
	}
	return channels, nil
}

// PrivateChannelByUser returns the first cached DM channel whose recipient
// is the given user, or nil.
func (s *State) PrivateChannelByUser(ctx context.Context, userID int64) (*models.Channel, error) {
	channels, err := s.PrivateChannels(ctx)
	if err != nil {
		return nil, err
	}
	for _, ch := range channels {
		if ch.Recipient != nil && ch.Recipient.ID == userID {
			return ch, nil
		}
	}
	return nil, nil
}

// Messages lists every cached message with its channel resolved.
func (s *State) Messages(ctx context.Context) ([]*models.Message, error) {
	records, err := s.store.ScanAll(ctx, "message:*:*")
	if err != nil {
		return nil, err
	}
	messages := make([]*models.Message, 0, len(records))
	for _, rec := range records {
		var channel *models.Channel
		if scopes := rec.Scopes(); len(scopes) == 2 {
			channel, err = s.getChannel(ctx, scopes[0])
			if err != nil {
				return nil, err
			}
		}
		messages = append(messages, models.NewMessage(rec, channel))
	}
	return messages, nil
}

// GetUser resolves a user by id across all guilds.
func (s *State) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.getUser(ctx, userID)
}

// GetChannel resolves a channel of unknown kind by id.
func (s *State) GetChannel(ctx context.Context, channelID int64) (*models.Channel, error) {
	return s.getChannel(ctx, channelID)
}

// GetMessage resolves a cached message by id.
func (s *State) GetMessage(ctx context.Context, messageID int64) (*models.Message, error) {
	return s.getMessage(ctx, messageID)
}

// GetEmoji resolves a cached emoji by id.
func (s *State) GetEmoji(ctx context.Context, emojiID int64) (*models.Emoji, error) {
	return s.getEmoji(ctx, emojiID)
}
