// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/jvadmin/internal/console"
	"github.com/olegiv/jvadmin/internal/model"
	"github.com/olegiv/jvadmin/internal/render"
	"github.com/olegiv/jvadmin/internal/section"
)

const msgInvalidForm = "Invalid form data"

// backToSection ends a save or delete with a 303 to the section's page.
// A nil err flashes okMsg, if any. Otherwise the error is logged and
// failMsg is flashed.
func backToSection(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, s section.Section, err error, okMsg, failMsg string) {
	switch {
	case err != nil:
		slog.ErrorContext(r.Context(), "content change failed",
			"category", model.EventCategoryContent,
			"section", s.String(),
			"error", err)
		renderer.SetFlash(r, failMsg, render.FlashError)
	case okMsg != "":
		renderer.SetFlash(r, okMsg, render.FlashSuccess)
	}
	http.Redirect(w, r, s.Path(), http.StatusSeeOther)
}

// parseSectionForm parses the posted form. On failure it flashes
// msgInvalidForm, redirects to s and returns false.
func parseSectionForm(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, s section.Section) bool {
	if err := r.ParseForm(); err != nil {
		renderer.SetFlash(r, msgInvalidForm, render.FlashError)
		http.Redirect(w, r, s.Path(), http.StatusSeeOther)
		return false
	}
	return true
}

// viewStatus maps an error from the console controller to a response status.
func viewStatus(err error) int {
	if errors.Is(err, section.ErrUnknownSection) ||
		errors.Is(err, console.ErrNoDialog) ||
		errors.Is(err, console.ErrRecordNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// serverError logs err with the request line and answers 500.
func serverError(w http.ResponseWriter, r *http.Request, msg string, err error, args ...any) {
	attrs := append([]any{"error", err, "method", r.Method, "path", r.URL.Path}, args...)
	slog.ErrorContext(r.Context(), msg, attrs...)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
