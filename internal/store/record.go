// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// ErrMalformed indicates a stored record that could not be decoded or that
// is missing a structurally required field. This surfaces to the dispatch
// caller: it means the cache contents are corrupt, which is outside the
// reconciler's remit to repair.
var ErrMalformed = errors.New("malformed record")

// keyField is the synthetic field carrying a record's own cache key,
// injected on read so scope identifiers can be derived later.
const keyField = "_key"

// Record is one decoded cache entry: string keys mapped to JSON values.
// All accessors tolerate a nil receiver and missing fields, returning zero
// values; handlers rely on this to treat absent prior state as "no-op".
type Record map[string]any

// DecodeRecord decodes raw JSON into a Record, augments it with its own
// cache key, and normalizes embedded permission-overwrite lists.
func DecodeRecord(key string, raw []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: key %s: %v", ErrMalformed, key, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: key %s: null value", ErrMalformed, key)
	}
	rec[keyField] = key
	if err := rec.normalizeOverwrites(); err != nil {
		return nil, fmt.Errorf("%w: key %s: %v", ErrMalformed, key, err)
	}
	return rec, nil
}

// normalizeOverwrites rewrites the permission_overwrites list into the
// uniform {id, type: "role"|"member", allow, deny} shape with integer bit
// flags. The gateway stores type as 0/1 and the flags as decimal strings.
func (r Record) normalizeOverwrites() error {
	raw, ok := r["permission_overwrites"].([]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	normalized := make([]any, 0, len(raw))
	for _, entry := range raw {
		ow, ok := entry.(map[string]any)
		if !ok {
			return fmt.Errorf("permission overwrite is not an object")
		}
		kind, err := overwriteKind(ow["type"])
		if err != nil {
			return err
		}
		allow, ok := toInt64(ow["allow"])
		if !ok {
			return fmt.Errorf("permission overwrite allow flag %v is not numeric", ow["allow"])
		}
		deny, ok := toInt64(ow["deny"])
		if !ok {
			return fmt.Errorf("permission overwrite deny flag %v is not numeric", ow["deny"])
		}
		normalized = append(normalized, map[string]any{
			"id":    ow["id"],
			"type":  kind,
			"allow": allow,
			"deny":  deny,
		})
	}
	r["permission_overwrites"] = normalized
	return nil
}

func overwriteKind(v any) (string, error) {
	switch t := v.(type) {
	case string:
		if t != "role" && t != "member" {
			return "", fmt.Errorf("unknown overwrite type %q", t)
		}
		return t, nil
	case float64:
		if t == 0 {
			return "role", nil
		}
		return "member", nil
	default:
		return "", fmt.Errorf("unknown overwrite type %v", v)
	}
}

// Key returns the record's own cache key, or "" if the record was not read
// through the store adapter.
func (r Record) Key() string {
	if r == nil {
		return ""
	}
	key, _ := r[keyField].(string)
	return key
}

// Scopes returns the numeric scope identifiers encoded in the record's key,
// e.g. [guildID, userID] for "member:123:456".
func (r Record) Scopes() []int64 {
	key := r.Key()
	if key == "" {
		return nil
	}
	parts := strings.Split(key, ":")[1:]
	scopes := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil
		}
		scopes = append(scopes, id)
	}
	return scopes
}

// Str returns the string value under key, or "".
func (r Record) Str(key string) string {
	if r == nil {
		return ""
	}
	s, _ := r[key].(string)
	return s
}

// Int64 returns the integer value under key. Discord delivers snowflakes as
// JSON strings, so both string and number encodings are accepted.
func (r Record) Int64(key string) int64 {
	if r == nil {
		return 0
	}
	n, _ := toInt64(r[key])
	return n
}

// Int returns the value under key as an int.
func (r Record) Int(key string) int {
	return int(r.Int64(key))
}

// Bool returns the boolean value under key, or false.
func (r Record) Bool(key string) bool {
	b, _ := r.BoolOK(key)
	return b
}

// BoolOK returns the boolean value under key and whether the field is
// present as a boolean. The distinction matters: GUILD_CREATE treats an
// explicit unavailable=false differently from an absent flag.
func (r Record) BoolOK(key string) (value, ok bool) {
	if r == nil {
		return false, false
	}
	b, ok := r[key].(bool)
	return b, ok
}

// Has reports whether the field is present (with any value, including null).
func (r Record) Has(key string) bool {
	if r == nil {
		return false
	}
	_, ok := r[key]
	return ok
}

// Map returns the nested object under key, or nil.
func (r Record) Map(key string) Record {
	if r == nil {
		return nil
	}
	m, _ := r[key].(map[string]any)
	return Record(m)
}

// Slice returns the object elements of the array under key.
func (r Record) Slice(key string) []Record {
	if r == nil {
		return nil
	}
	raw, _ := r[key].([]any)
	if raw == nil {
		return nil
	}
	out := make([]Record, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}

// Int64s returns the array under key as integers, accepting both string and
// number encodings per element. Non-numeric elements are skipped.
func (r Record) Int64s(key string) []int64 {
	if r == nil {
		return nil
	}
	raw, _ := r[key].([]any)
	if raw == nil {
		return nil
	}
	out := make([]int64, 0, len(raw))
	for _, v := range raw {
		if n, ok := toInt64(v); ok {
			out = append(out, n)
		}
	}
	return out
}

// Strs returns the array under key as strings, skipping other elements.
func (r Record) Strs(key string) []string {
	if r == nil {
		return nil
	}
	raw, _ := r[key].([]any)
	if raw == nil {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Time parses the RFC3339 timestamp under key.
func (r Record) Time(key string) (time.Time, bool) {
	s := r.Str(key)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999-07:00"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Clone returns a deep copy of the record. Nested containers are copied so
// mutating the clone never aliases the original.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out, _ := deepClone(map[string]any(r)).(map[string]any)
	return Record(out)
}

func deepClone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = deepClone(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepClone(e)
		}
		return out
	default:
		return v
	}
}

// ApplyDelta returns a new record equal to old with the fields of patch
// applied over it. Neither input is mutated and the result shares no
// containers with either; this is the diffing primitive used to derive the
// "after" view of an update event from its cached "before".
func ApplyDelta(old, patch Record) Record {
	result := old.Clone()
	if result == nil {
		result = Record{}
	}
	for k, v := range patch {
		if k == keyField {
			continue
		}
		result[k] = deepClone(v)
	}
	return result
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		return int64(t), true
	case int64:
		return t, true
	case int:
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
