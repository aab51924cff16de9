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

func (s *State) parseMessageCreate(ctx context.Context, data, old store.Record) error {
	channel, err := s.getChannel(ctx, data.Int64("channel_id"))
	if err != nil {
		return err
	}
	s.emit("message", models.NewMessage(data, channel))
	return nil
}

func (s *State) parseMessageDelete(ctx context.Context, data, old store.Record) error {
	raw := models.NewRawMessageDelete(data)
	if old != nil {
		channel, err := s.getChannel(ctx, data.Int64("channel_id"))
		if err != nil {
			return err
		}
		message := models.NewMessage(old, channel)
		raw.CachedMessage = message
		s.emit("message_delete", message)
	}
	s.emit("raw_message_delete", raw)
	return nil
}

func (s *State) parseMessageDeleteBulk(ctx context.Context, data, old store.Record) error {
	raw := models.NewRawBulkMessageDelete(data)
	if items := old.Slice("items"); len(items) > 0 {
		channel, err := s.getChannel(ctx, data.Int64("channel_id"))
		if err != nil {
			return err
		}
		messages := make([]*models.Message, 0, len(items))
		for _, item := range items {
			messages = append(messages, models.NewMessage(item, channel))
		}
		raw.CachedMessages = messages
		s.emit("bulk_message_delete", messages)
	}
	s.emit("raw_bulk_message_delete", raw)
	return nil
}

func (s *State) parseMessageUpdate(ctx context.Context, data, old store.Record) error {
	raw := models.NewRawMessageEdit(data)
	if old != nil {
		channel, err := s.getChannel(ctx, data.Int64("channel_id"))
		if err != nil {
			return err
		}
		older := models.NewMessage(old, channel)
		raw.CachedMessage = older
		newer := models.NewMessage(store.ApplyDelta(old, data), channel)
		s.emit("message_edit", older, newer)
	}
	s.emit("raw_message_edit", raw)
	return nil
}

func (s *State) parseMessageReactionAdd(ctx context.Context, data, old store.Record) error {
	partial := models.NewPartialEmoji(data.Map("emoji"))
	raw := models.NewRawReactionAction(data, partial, models.ReactionActionAdd)
	if member := data.Map("member"); member != nil && raw.GuildID != 0 {
		raw.Member = models.NewMember(member, raw.GuildID)
	}
	s.emit("raw_reaction_add", raw)

	message, err := s.getMessage(ctx, raw.MessageID)
	if err != nil {
		return err
	}
	if message == nil {
		return nil
	}
	emoji, err := s.upgradeEmoji(ctx, partial)
	if err != nil {
		return err
	}
	reaction := models.NewReaction(message, partial, emoji)

	// The payload member, when present, short-circuits the cache lookup.
	var reactor any
	if raw.Member != nil {
		reactor = raw.Member
	} else {
		reactor, err = s.resolveReactor(ctx, message.Channel, raw.UserID)
		if err != nil {
			return err
		}
	}
	if reactor != nil {
		s.emit("reaction_add", reaction, reactor)
	}
	return nil
}

func (s *State) parseMessageReactionRemove(ctx context.Context, data, old store.Record) error {
	partial := models.NewPartialEmoji(data.Map("emoji"))
	raw := models.NewRawReactionAction(data, partial, models.ReactionActionRemove)
	s.emit("raw_reaction_remove", raw)

	message, err := s.getMessage(ctx, raw.MessageID)
	if err != nil {
		return err
	}
	if message == nil {
		return nil
	}
	emoji, err := s.upgradeEmoji(ctx, partial)
	if err != nil {
		return err
	}
	reaction := models.NewReaction(message, partial, emoji)
	reactor, err := s.resolveReactor(ctx, message.Channel, raw.UserID)
	if err != nil {
		return err
	}
	if reactor != nil {
		s.emit("reaction_remove", reaction, reactor)
	}
	return nil
}

func (s *State) parseMessageReactionRemoveAll(ctx context.Context, data, old store.Record) error {
	raw := models.NewRawReactionClear(data)
	s.emit("raw_reaction_clear", raw)

	message, err := s.getMessage(ctx, raw.MessageID)
	if err != nil {
		return err
	}
	if message != nil {
		s.emit("reaction_clear", message)
	}
	return nil
}

func (s *State) parseMessageReactionRemoveEmoji(ctx context.Context, data, old store.Record) error {
	partial := models.NewPartialEmoji(data.Map("emoji"))
	raw := models.NewRawReactionClearEmoji(data, partial)
	s.emit("raw_reaction_clear_emoji", raw)

	message, err := s.getMessage(ctx, raw.MessageID)
	if err != nil {
		return err
	}
	if message == nil {
		return nil
	}
	emoji, err := s.upgradeEmoji(ctx, partial)
	if err != nil {
		return err
	}
	s.emit("reaction_clear_emoji", models.NewReaction(message, partial, emoji))
	return nil
}
