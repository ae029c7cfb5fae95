// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
)

// Session keys
const (
	KeyLoggedIn = "admin_logged_in"
	KeyEmail    = "admin_email"
)

const loggedInValue = "true"

// ErrInvalidCredentials is returned by Login when the pair does not match.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Store is the subset of *scs.SessionManager the gate needs.
type Store interface {
	GetString(ctx context.Context, key string) string
	Put(ctx context.Context, key string, val any)
	Remove(ctx context.Context, key string)
	RenewToken(ctx context.Context) error
}

// Session is the persisted login state.
type Session struct {
	LoggedIn bool
	Email    string
}

// Gate checks a submitted email and password against one configured pair
// and keeps the result in the session store.
type Gate struct {
	store    Store
	email    string
	password string
}

// NewGate creates a Gate for the given credential pair.
func NewGate(store Store, email, password string) *Gate {
	return &Gate{store: store, email: email, password: password}
}

// Current reads the login flag and email for the request's session.
func (g *Gate) Current(ctx context.Context) Session {
	if g.store.GetString(ctx, KeyLoggedIn) != loggedInValue {
		return Session{}
	}
	return Session{LoggedIn: true, Email: g.store.GetString(ctx, KeyEmail)}
}

// LoggedIn reports whether the login flag is set.
func (g *Gate) LoggedIn(ctx context.Context) bool {
	return g.Current(ctx).LoggedIn
}

// Login persists the flag and email when the credentials match.
// Nothing is written on a mismatch.
func (g *Gate) Login(ctx context.Context, email, password string) (Session, error) {
	if !g.matches(email, password) {
		return Session{}, ErrInvalidCredentials
	}

	if err := g.store.RenewToken(ctx); err != nil {
		return Session{}, fmt.Errorf("renewing session token: %w", err)
	}

	g.store.Put(ctx, KeyLoggedIn, loggedInValue)
	g.store.Put(ctx, KeyEmail, email)

	return Session{LoggedIn: true, Email: email}, nil
}

// Logout clears the flag and email.
func (g *Gate) Logout(ctx context.Context) error {
	g.store.Remove(ctx, KeyLoggedIn)
	g.store.Remove(ctx, KeyEmail)

	if err := g.store.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	return nil
}

func (g *Gate) matches(email, password string) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(g.email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) == 1
	return emailOK && passwordOK
}
