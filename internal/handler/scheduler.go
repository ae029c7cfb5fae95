// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/jvadmin/internal/content"
	"github.com/olegiv/jvadmin/internal/model"
	"github.com/olegiv/jvadmin/internal/render"
	"github.com/olegiv/jvadmin/internal/scheduler"
	"github.com/olegiv/jvadmin/internal/section"
)

const (
	msgJobRateLimited = "Job was run less than a minute ago. Please wait before running it again."
	msgJobFailed      = "Job failed. Please try again."
)

// JobTrigger runs a registered job by name.
type JobTrigger interface {
	TriggerNow(name string) error
}

// SystemEventRecorder writes system events to the event log.
type SystemEventRecorder interface {
	LogSystemEvent(ctx context.Context, level, message string, metadata map[string]any) error
}

// SchedulerHandler runs background jobs on request from the settings panel.
type SchedulerHandler struct {
	jobs     JobTrigger
	renderer *render.Renderer
	events   SystemEventRecorder
}

// NewSchedulerHandler creates a new SchedulerHandler. events may be nil.
func NewSchedulerHandler(jobs JobTrigger, renderer *render.Renderer, events SystemEventRecorder) *SchedulerHandler {
	return &SchedulerHandler{
		jobs:     jobs,
		renderer: renderer,
		events:   events,
	}
}

// RunJob handles POST /admin/settings/jobs/{name}/run.
func (h *SchedulerHandler) RunJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, paramJob)
	actor := content.ActorFrom(r.Context())

	err := h.jobs.TriggerNow(name)
	switch {
	case errors.Is(err, scheduler.ErrJobNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, scheduler.ErrTriggerRateLimited):
		slog.Warn("job trigger rate limited", "job", name, "actor", actor.Email)
		h.renderer.SetFlash(r, msgJobRateLimited, render.FlashError)
	case err != nil:
		slog.Error("manually triggered job failed",
			"category", model.EventCategorySystem,
			"job", name,
			"error", err)
		h.renderer.SetFlash(r, msgJobFailed, render.FlashError)
	default:
		slog.Info("job triggered", "job", name, "actor", actor.Email)
		if h.events != nil {
			_ = h.events.LogSystemEvent(r.Context(), model.EventLevelInfo, "Job manually triggered: "+name,
				map[string]any{"job": name, "actor": actor.Email, "ip": actor.IP})
		}
		h.renderer.SetFlash(r, "Job "+name+" completed.", render.FlashSuccess)
	}
	http.Redirect(w, r, section.Settings.Path(), http.StatusSeeOther)
}
