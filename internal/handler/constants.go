// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteAdmin is the dashboard.
	RouteAdmin = "/admin"
	// RouteStatic serves the embedded stylesheet.
	RouteStatic = "/static/*"

	// RouteSection shows one section.
	RouteSection = "/{section}"
	// RouteHero receives the hero form.
	RouteHero = "/hero"
	// RouteActivities receives the activity form.
	RouteActivities = "/activities"
	// RouteGallery receives the gallery form.
	RouteGallery = "/gallery"

	// RouteSuffixNew is the suffix for "new" dialogs.
	RouteSuffixNew = "/new"
	// RouteSuffixEdit is the suffix for edit dialogs.
	RouteSuffixEdit = "/edit"
	// RouteSuffixView is the suffix for view dialogs.
	RouteSuffixView = "/view"
	// RouteSuffixDelete is the suffix for delete confirmation.
	RouteSuffixDelete = "/delete"
	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"

	// RouteSettingsJobRun runs a background job from the settings panel.
	RouteSettingsJobRun = "/settings/jobs/{job}/run"

	// RouteHealth and its sub-routes report liveness and readiness.
	RouteHealth      = "/health"
	RouteHealthLive  = "/health/live"
	RouteHealthReady = "/health/ready"
)

// URL parameters
const (
	paramSection = "section"
	paramID      = "id"
	paramJob     = "job"
)

// Redirect targets
const (
	redirectLogin = RouteLogin
	redirectAdmin = RouteAdmin
)

// Template names
const (
	templateConsole = "admin/console"
	templateLogin   = "auth/login"
)

// Log messages shared by handlers.
const (
	logRenderFailed = "failed to render template"
)
