// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package backend

import "github.com/tidwall/gjson"

// Record is one opaque JSON object from a list endpoint. Fields are read
// by gjson path; no schema is enforced.
type Record struct {
	raw string
}

// NewRecord wraps raw JSON as a Record.
func NewRecord(raw string) Record {
	return Record{raw: raw}
}

// Raw returns the record's JSON text.
func (r Record) Raw() string {
	return r.raw
}

// Get returns the value at path.
func (r Record) Get(path string) gjson.Result {
	return gjson.Get(r.raw, path)
}

// ID returns the record's id as text, or "" when absent.
func (r Record) ID() string {
	return r.Get("id").String()
}

// Truthy reports whether the value at path is set to something other than
// null, false, an empty string or zero.
func (r Record) Truthy(path string) bool {
	return Truthy(r.Get(path))
}

// Text returns the value at path as text, or fallback when it is not truthy.
func (r Record) Text(path, fallback string) string {
	v := r.Get(path)
	if !Truthy(v) {
		return fallback
	}
	return v.String()
}

// Truthy reports whether v holds a value other than null, false, "" or 0.
func Truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null:
		return false
	case gjson.False:
		return false
	case gjson.String:
		return v.Str != ""
	case gjson.Number:
		return v.Num != 0
	default:
		return v.Exists()
	}
}
