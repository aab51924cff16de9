// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package store

import "fmt"

// BotUserKey addresses the connected bot's own user record.
const BotUserKey = "bot_user"

// Key builders for the cache's composite key scheme. Every key encodes the
// full ownership path of its record, so parents resolve without a secondary
// index scan.

// GuildKey returns "guild:{id}".
func GuildKey(guildID int64) string {
	return fmt.Sprintf("guild:%d", guildID)
}

// ChannelKey returns "channel:{guildID}:{channelID}" for guild channels.
func ChannelKey(guildID, channelID int64) string {
	return fmt.Sprintf("channel:%d:%d", guildID, channelID)
}

// PrivateChannelKey returns "channel:{channelID}"; private channels have no
// guild scope.
func PrivateChannelKey(channelID int64) string {
	return fmt.Sprintf("channel:%d", channelID)
}

// MemberKey returns "member:{guildID}:{userID}".
func MemberKey(guildID, userID int64) string {
	return fmt.Sprintf("member:%d:%d", guildID, userID)
}

// RoleKey returns "role:{guildID}:{roleID}".
func RoleKey(guildID, roleID int64) string {
	return fmt.Sprintf("role:%d:%d", guildID, roleID)
}

// EmojiKey returns "emoji:{guildID}:{emojiID}".
func EmojiKey(guildID, emojiID int64) string {
	return fmt.Sprintf("emoji:%d:%d", guildID, emojiID)
}

// MessageKey returns "message:{channelID}:{messageID}".
func MessageKey(channelID, messageID int64) string {
	return fmt.Sprintf("message:%d:%d", channelID, messageID)
}

// VoiceKey returns "voice:{guildID}:{userID}".
func VoiceKey(guildID, userID int64) string {
	return fmt.Sprintf("voice:%d:%d", guildID, userID)
}
