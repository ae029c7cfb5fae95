// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session holds the console's session store and the Session Gate
// that reads and writes the login flag in it.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Cookie names. The __Host- prefix requires Secure and Path=/, so it is
// only used outside development.
const (
	CookieName       = "jvadmin_session"
	SecureCookieName = "__Host-jvadmin_session"
)

// New creates a session manager backed by the SQLite sessions table.
// A non-positive lifetime falls back to 24 hours.
func New(db *sql.DB, isDev bool, lifetime time.Duration) *scs.SessionManager {
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = lifetime
	sm.Cookie.Name = CookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	sm.Cookie.Secure = !isDev
	if !isDev {
		sm.Cookie.Name = SecureCookieName
	}

	return sm
}
