// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model holds shared enumerations used across the console.
package model

import "log/slog"

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryAuth    = "auth"
	EventCategoryContent = "content"
	EventCategoryBackend = "backend"
	EventCategorySystem  = "system"
)

// EventLevelForSlog maps a slog level to an event level.
// Levels below warning map to info.
func EventLevelForSlog(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return EventLevelError
	case l >= slog.LevelWarn:
		return EventLevelWarning
	default:
		return EventLevelInfo
	}
}

// IsValidEventCategory reports whether c is one of the known categories.
func IsValidEventCategory(c string) bool {
	switch c {
	case EventCategoryAuth, EventCategoryContent, EventCategoryBackend, EventCategorySystem:
		return true
	}
	return false
}
