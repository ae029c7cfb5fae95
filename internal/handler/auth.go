// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/mileusna/useragent"

	"github.com/olegiv/jvadmin/internal/middleware"
	"github.com/olegiv/jvadmin/internal/model"
	"github.com/olegiv/jvadmin/internal/render"
	"github.com/olegiv/jvadmin/internal/session"
)

// Login page messages.
const (
	msgLoginSuccess = "Login successful! Redirecting..."
	msgLoginInvalid = "Invalid email or password. Please try again."
	msgLoginFailed  = "Login failed. Please try again."
)

// AuthEventRecorder writes authentication events to the event log.
type AuthEventRecorder interface {
	LogAuthEvent(ctx context.Context, level, message, actor, ipAddress string, metadata map[string]any) error
}

// LoginData is the data of the login page.
type LoginData struct {
	Email   string
	Error   string
	Success string
}

// AuthHandler handles authentication routes.
type AuthHandler struct {
	gate          *session.Gate
	renderer      *render.Renderer
	events        AuthEventRecorder
	redirectDelay time.Duration
}

// NewAuthHandler creates a new AuthHandler. events may be nil.
func NewAuthHandler(gate *session.Gate, renderer *render.Renderer, events AuthEventRecorder, redirectDelay time.Duration) *AuthHandler {
	return &AuthHandler{
		gate:          gate,
		renderer:      renderer,
		events:        events,
		redirectDelay: redirectDelay,
	}
}

// LoginForm renders the login page. Logged-in sessions are redirected by
// middleware.RedirectIfLoggedIn before reaching it.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, http.StatusOK, LoginData{}, render.TemplateData{})
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, LoginData{Error: msgLoginFailed}, render.TemplateData{})
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	ip := middleware.ClientIP(r)
	meta := userAgentMetadata(r.UserAgent())

	sess, err := h.gate.Login(r.Context(), email, password)
	if err != nil {
		data := LoginData{Email: email, Error: msgLoginFailed}
		status := http.StatusInternalServerError
		if errors.Is(err, session.ErrInvalidCredentials) {
			data.Error = msgLoginInvalid
			status = http.StatusUnauthorized
			slog.Warn("failed login attempt", "email", email, "ip", ip)
			h.logEvent(r.Context(), model.EventLevelWarning, "Failed login attempt", email, ip, meta)
		} else {
			slog.Error("login failed", "error", err, "email", email)
		}
		h.renderLogin(w, r, status, data, render.TemplateData{})
		return
	}

	slog.Info("user logged in", "email", sess.Email, "ip", ip)
	h.logEvent(r.Context(), model.EventLevelInfo, "User logged in", sess.Email, ip, meta)

	if h.redirectDelay <= 0 {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}

	h.renderLogin(w, r, http.StatusOK, LoginData{Email: sess.Email, Success: msgLoginSuccess}, render.TemplateData{
		RefreshURL:     redirectAdmin,
		RefreshSeconds: refreshSeconds(h.redirectDelay),
	})
}

// Logout clears the session and returns to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	email := h.gate.Current(r.Context()).Email

	if err := h.gate.Logout(r.Context()); err != nil {
		slog.Error("failed to clear session", "error", err)
	}

	if email != "" {
		slog.Info("user logged out", "email", email)
		h.logEvent(r.Context(), model.EventLevelInfo, "User logged out", email, middleware.ClientIP(r), nil)
	}

	http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, data LoginData, td render.TemplateData) {
	td.Title = "Login"
	td.BodyClass = "login-page"
	td.Data = data
	if err := h.renderer.RenderStatus(w, r, status, templateLogin, td); err != nil {
		serverError(w, r, logRenderFailed, err, "template", templateLogin)
	}
}

func (h *AuthHandler) logEvent(ctx context.Context, level, message, actor, ip string, meta map[string]any) {
	if h.events == nil {
		return
	}
	_ = h.events.LogAuthEvent(ctx, level, message, actor, ip, meta)
}

// refreshSeconds rounds d up to whole seconds for a meta refresh.
func refreshSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}

// userAgentMetadata extracts browser, OS, and device type from a user agent string.
func userAgentMetadata(uaString string) map[string]any {
	ua := useragent.Parse(uaString)

	browser, osName := ua.Name, ua.OS
	if browser == "" {
		browser = "Unknown"
	}
	if osName == "" {
		osName = "Unknown"
	}

	var device string
	switch {
	case ua.Mobile:
		device = "mobile"
	case ua.Tablet:
		device = "tablet"
	case ua.Bot:
		device = "bot"
	default:
		device = "desktop"
	}

	return map[string]any{
		"browser": browser,
		"os":      osName,
		"device":  device,
	}
}
