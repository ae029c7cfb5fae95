// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for the session gate,
// request context and response hardening.
package middleware

import (
	"context"
	"net"
	"net/http"

	"github.com/olegiv/jvadmin/internal/content"
	"github.com/olegiv/jvadmin/internal/session"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys
const (
	ContextKeyRequestPath ContextKey = "request_path"
	ContextKeyLanguage    ContextKey = "language"
)

// LoginPath is where RequireSession sends anonymous requests.
const LoginPath = "/login"

// RequireSession redirects to the login screen unless the session flag is set.
func RequireSession(gate *session.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !gate.LoggedIn(r.Context()) {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RedirectIfLoggedIn sends requests that already carry the session flag to target.
func RedirectIfLoggedIn(gate *session.Gate, target string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gate.LoggedIn(r.Context()) {
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Actor stores the logged-in email and client IP in the request context
// for the mutation stubs' event log entries.
func Actor(gate *session.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a := content.Actor{
				Email: gate.Current(r.Context()).Email,
				IP:    ClientIP(r),
			}
			next.ServeHTTP(w, r.WithContext(content.WithActor(r.Context(), a)))
		})
	}
}

// ClientIP returns the host part of RemoteAddr. chi's RealIP runs first,
// so proxy headers are already applied.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RequestPath creates middleware that stores the request path in the context.
// This is used by the logging handler to include the URL in error logs.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestPath retrieves the request path from the context.
func GetRequestPath(ctx context.Context) string {
	path, ok := ctx.Value(ContextKeyRequestPath).(string)
	if !ok {
		return ""
	}
	return path
}
