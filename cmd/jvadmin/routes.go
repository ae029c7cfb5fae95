// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/jvadmin/internal/handler"
	"github.com/olegiv/jvadmin/internal/middleware"
	"github.com/olegiv/jvadmin/internal/session"
)

// staticMaxAge is the Cache-Control max-age of the embedded stylesheet.
const staticMaxAge = 86400

// routerDeps holds everything newRouter wires into routes.
type routerDeps struct {
	sessionManager *scs.SessionManager
	gate           *session.Gate
	csrf           middleware.CSRFConfig
	security       middleware.SecurityHeadersConfig
	static         fs.FS
	auth           *handler.AuthHandler
	console        *handler.ConsoleHandler
	jobs           *handler.SchedulerHandler
	health         *handler.HealthHandler
	requestTimeout time.Duration
	accessLog      bool
}

// newRouter builds the chi router with the global middleware stack.
func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if d.accessLog {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(d.requestTimeout))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(d.security))
	r.Use(middleware.RequestPath)

	// Health checks read the session for verbose output but skip CSRF.
	r.Group(func(r chi.Router) {
		r.Use(d.sessionManager.LoadAndSave)

		r.Get(handler.RouteHealth, d.health.Health)
		r.Get(handler.RouteHealthLive, d.health.Liveness)
		r.Get(handler.RouteHealthReady, d.health.Readiness)
	})

	r.With(middleware.StaticCache(staticMaxAge)).
		Handle(handler.RouteStatic, http.StripPrefix("/static/", http.FileServer(http.FS(d.static))))

	r.Group(func(r chi.Router) {
		r.Use(d.sessionManager.LoadAndSave)
		r.Use(middleware.CSRF(d.csrf))
		r.Use(middleware.NoStore)
		r.Use(middleware.Language)

		r.Get(handler.RouteRoot, func(w http.ResponseWriter, req *http.Request) {
			target := handler.RouteLogin
			if d.gate.LoggedIn(req.Context()) {
				target = handler.RouteAdmin
			}
			http.Redirect(w, req, target, http.StatusSeeOther)
		})

		r.With(middleware.RedirectIfLoggedIn(d.gate, handler.RouteAdmin)).
			Get(handler.RouteLogin, d.auth.LoginForm)
		r.Post(handler.RouteLogin, d.auth.Login)
		r.Get(handler.RouteLogout, d.auth.Logout)
		r.Post(handler.RouteLogout, d.auth.Logout)

		r.Route(handler.RouteAdmin, func(r chi.Router) {
			r.Use(middleware.RequireSession(d.gate))
			r.Use(middleware.Actor(d.gate))

			r.Get(handler.RouteRoot, d.console.Section)
			r.Get(handler.RouteSection, d.console.Section)
			r.Post(handler.RouteSection, d.console.Save)
			r.Get(handler.RouteSection+handler.RouteSuffixNew, d.console.New)
			r.Get(handler.RouteSection+handler.RouteParamID+handler.RouteSuffixEdit, d.console.Edit)
			r.Get(handler.RouteSection+handler.RouteParamID+handler.RouteSuffixView, d.console.View)
			r.Get(handler.RouteSection+handler.RouteParamID+handler.RouteSuffixDelete, d.console.ConfirmDelete)
			r.Post(handler.RouteSection+handler.RouteParamID+handler.RouteSuffixDelete, d.console.Delete)
			r.Post(handler.RouteSettingsJobRun, d.jobs.RunJob)
		})
	})

	return r
}
