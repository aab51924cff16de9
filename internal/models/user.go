// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

// Package models holds the ephemeral domain views built from cache records
// and event payloads. Constructors are pure: given the same record and
// resolved parent they produce the same view, never touch the store, and
// never mutate their inputs. Views live for one event's processing only.
package models

import "github.com/MaxOhn/twilight-dispatch/internal/store"

// User is a Discord user view.
type User struct {
	ID            int64
	Username      string
	Discriminator string
	Avatar        string
	Bot           bool
	PublicFlags   int64
}

// NewUser builds a user view from a user record or payload.
func NewUser(rec store.Record) *User {
	if rec == nil {
		return nil
	}
	return &User{
		ID:            rec.Int64("id"),
		Username:      rec.Str("username"),
		Discriminator: rec.Str("discriminator"),
		Avatar:        rec.Str("avatar"),
		Bot:           rec.Bool("bot"),
		PublicFlags:   rec.Int64("public_flags"),
	}
}

// Clone returns a copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

// Apply overlays the fields present in rec onto a copy of the user and
// returns it. The receiver is not mutated.
func (u *User) Apply(rec store.Record) *User {
	out := u.Clone()
	if out == nil {
		out = &User{}
	}
	if rec.Has("id") {
		out.ID = rec.Int64("id")
	}
	if rec.Has("username") {
		out.Username = rec.Str("username")
	}
	if rec.Has("discriminator") {
		out.Discriminator = rec.Str("discriminator")
	}
	if rec.Has("avatar") {
		out.Avatar = rec.Str("avatar")
	}
	if rec.Has("public_flags") {
		out.PublicFlags = rec.Int64("public_flags")
	}
	return out
}

// IdentityEquals reports whether the user-visible identity fields match.
// A change in any of these is what a user_update notification announces.
func (u *User) IdentityEquals(o *User) bool {
	if u == nil || o == nil {
		return u == o
	}
	return u.Username == o.Username &&
		u.Discriminator == o.Discriminator &&
		u.Avatar == o.Avatar &&
		u.PublicFlags == o.PublicFlags
}
