// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/jvadmin/internal/console"
	"github.com/olegiv/jvadmin/internal/content"
	"github.com/olegiv/jvadmin/internal/middleware"
	"github.com/olegiv/jvadmin/internal/modal"
	"github.com/olegiv/jvadmin/internal/model"
	"github.com/olegiv/jvadmin/internal/render"
	"github.com/olegiv/jvadmin/internal/section"
)

// Save failure messages.
const (
	msgHeroFailed     = "Failed to update hero content. Please try again."
	msgActivityFailed = "Failed to save activity. Please try again."
	msgGalleryFailed  = "Failed to save gallery item. Please try again."

	msgProductEditUnavailable = "Product editing is not available yet."
)

// ConsoleHandler serves the admin console pages and the form stubs.
type ConsoleHandler struct {
	controller *console.Controller
	mutator    content.Mutator
	renderer   *render.Renderer
}

// NewConsoleHandler creates a new ConsoleHandler.
func NewConsoleHandler(controller *console.Controller, mutator content.Mutator, renderer *render.Renderer) *ConsoleHandler {
	return &ConsoleHandler{
		controller: controller,
		mutator:    mutator,
		renderer:   renderer,
	}
}

// Section shows one section. /admin itself is the dashboard.
func (h *ConsoleHandler) Section(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, paramSection)
	if name == "" {
		name = section.Dashboard.String()
	}
	v, err := h.controller.ShowSection(r.Context(), name)
	h.render(w, r, v, err)
}

// New opens the empty activity or gallery dialog.
func (h *ConsoleHandler) New(w http.ResponseWriter, r *http.Request) {
	var (
		v   *console.View
		err error
	)
	switch chi.URLParam(r, paramSection) {
	case section.Activities.String():
		v, err = h.controller.NewActivity(r.Context())
	case section.Gallery.String():
		v, err = h.controller.NewGallery(r.Context())
	default:
		http.NotFound(w, r)
		return
	}
	h.renderDialog(w, r, v, err)
}

// Edit opens the activity or gallery dialog pre-filled from the snapshot.
// Products have no edit form; the request is logged and answered with a
// flash.
func (h *ConsoleHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, paramID)

	var (
		v   *console.View
		err error
	)
	switch chi.URLParam(r, paramSection) {
	case section.Activities.String():
		v, err = h.controller.EditActivity(r.Context(), id)
	case section.Gallery.String():
		v, err = h.controller.EditGallery(r.Context(), id)
	case section.Products.String():
		slog.InfoContext(r.Context(), "product edit requested",
			"category", model.EventCategoryContent,
			"id", id)
		h.renderer.SetFlash(r, msgProductEditUnavailable, render.FlashInfo)
		http.Redirect(w, r, section.Products.Path(), http.StatusSeeOther)
		return
	default:
		http.NotFound(w, r)
		return
	}
	h.renderDialog(w, r, v, err)
}

// View opens the read-only record dialog.
func (h *ConsoleHandler) View(w http.ResponseWriter, r *http.Request) {
	v, err := h.controller.ViewRecord(r.Context(), chi.URLParam(r, paramSection), chi.URLParam(r, paramID))
	h.renderDialog(w, r, v, err)
}

// ConfirmDelete opens the delete confirmation dialog.
func (h *ConsoleHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	v, err := h.controller.ConfirmDelete(r.Context(), chi.URLParam(r, paramSection), chi.URLParam(r, paramID))
	h.renderDialog(w, r, v, err)
}

// Save handles the hero, activity and gallery form submissions.
func (h *ConsoleHandler) Save(w http.ResponseWriter, r *http.Request) {
	s, err := section.Parse(chi.URLParam(r, paramSection))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	var save func(context.Context) error
	var okMsg, failMsg string

	switch s {
	case section.Hero:
		okMsg, failMsg = content.MsgHeroSaved, msgHeroFailed
		save = func(ctx context.Context) error {
			return h.mutator.SaveHero(ctx, content.ParseHeroForm(r.PostForm))
		}
	case section.Activities:
		okMsg, failMsg = content.MsgActivitySaved, msgActivityFailed
		save = func(ctx context.Context) error {
			_, err := h.mutator.SaveActivity(ctx, content.ParseActivityForm(r.PostForm))
			return err
		}
	case section.Gallery:
		okMsg, failMsg = content.MsgGallerySaved, msgGalleryFailed
		save = func(ctx context.Context) error {
			_, err := h.mutator.SaveGallery(ctx, content.ParseGalleryForm(r.PostForm))
			return err
		}
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if !parseSectionForm(w, r, h.renderer, s) {
		return
	}
	backToSection(w, r, h.renderer, s, save(r.Context()), okMsg, failMsg)
}

// Delete handles the confirmed delete of one record.
func (h *ConsoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, err := section.Parse(chi.URLParam(r, paramSection))
	if err != nil || s.DeleteKind() == "" {
		http.NotFound(w, r)
		return
	}

	err = h.mutator.Delete(r.Context(), s, chi.URLParam(r, paramID))
	backToSection(w, r, h.renderer, s, err, "", "Failed to delete "+s.DeleteKind()+". Please try again.")
}

// renderDialog renders a view with its dialog open. A request carrying a
// dismiss trigger that closes the dialog goes back to the section instead.
func (h *ConsoleHandler) renderDialog(w http.ResponseWriter, r *http.Request, v *console.View, err error) {
	if err == nil && v.Dialog != nil {
		if t, ok := modal.ParseTrigger(r.URL.Query().Get(console.DismissQuery)); ok && v.Dismiss(t) {
			http.Redirect(w, r, v.Dialog.Cancel, http.StatusSeeOther)
			return
		}
	}
	h.render(w, r, v, err)
}

func (h *ConsoleHandler) render(w http.ResponseWriter, r *http.Request, v *console.View, err error) {
	if err != nil {
		if viewStatus(err) == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		serverError(w, r, "failed to build console view", err)
		return
	}

	v.SetLanguage(middleware.GetLanguage(r.Context()))

	data := render.TemplateData{
		Title: v.Title,
		Data:  v,
	}
	if v.Modals.ScrollLocked() {
		data.BodyClass = "modal-open"
	}

	if err := h.renderer.Render(w, r, templateConsole, data); err != nil {
		serverError(w, r, logRenderFailed, err, "template", templateConsole)
	}
}
