// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/olegiv/jvadmin/internal/model"
	"github.com/olegiv/jvadmin/internal/section"
)

// Messages shown after a save.
const (
	MsgHeroSaved     = "Hero content updated successfully!"
	MsgActivitySaved = "Activity saved successfully!"
	MsgGallerySaved  = "Gallery item saved successfully!"
)

// ConfirmDeleteMessage is the question asked before deleting a record of kind.
func ConfirmDeleteMessage(kind string) string {
	return fmt.Sprintf("Are you sure you want to delete this %s?", kind)
}

// Mutator is the write side of the content backend.
type Mutator interface {
	SaveHero(ctx context.Context, f HeroForm) error
	SaveActivity(ctx context.Context, f ActivityForm) (string, error)
	SaveGallery(ctx context.Context, f GalleryForm) (string, error)
	Delete(ctx context.Context, s section.Section, id string) error
}

// EventRecorder writes content events to the event log.
type EventRecorder interface {
	LogContentEvent(ctx context.Context, level, message, actor, ipAddress string, metadata map[string]any) error
}

// Actor identifies who made a change.
type Actor struct {
	Email string
	IP    string
}

type actorKey struct{}

// WithActor attaches the acting user to ctx.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom returns the acting user attached to ctx.
func ActorFrom(ctx context.Context) Actor {
	a, _ := ctx.Value(actorKey{}).(Actor)
	return a
}

// LogMutator records each change in the log and the event log and sends
// nothing to the backend.
type LogMutator struct {
	events EventRecorder
	logger *slog.Logger
	newID  func() string
}

// NewLogMutator creates a LogMutator. events may be nil.
func NewLogMutator(events EventRecorder, logger *slog.Logger) *LogMutator {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMutator{
		events: events,
		logger: logger,
		newID:  func() string { return uuid.New().String() },
	}
}

// SaveHero logs the hero form.
func (m *LogMutator) SaveHero(ctx context.Context, f HeroForm) error {
	m.record(ctx, "Hero content updated", map[string]any{"form": f})
	return nil
}

// SaveActivity logs the activity form and returns its id. A new activity
// gets a generated id.
func (m *LogMutator) SaveActivity(ctx context.Context, f ActivityForm) (string, error) {
	msg := "Activity updated"
	if f.ID == "" {
		f.ID = m.newID()
		msg = "Activity created"
	}
	m.record(ctx, msg, map[string]any{"id": f.ID, "form": f})
	return f.ID, nil
}

// SaveGallery logs the gallery form and returns its id. A new item gets a
// generated id.
func (m *LogMutator) SaveGallery(ctx context.Context, f GalleryForm) (string, error) {
	msg := "Gallery item updated"
	if f.ID == "" {
		f.ID = m.newID()
		msg = "Gallery item created"
	}
	m.record(ctx, msg, map[string]any{"id": f.ID, "form": f})
	return f.ID, nil
}

// Delete logs the delete of record id in section s.
func (m *LogMutator) Delete(ctx context.Context, s section.Section, id string) error {
	kind := s.DeleteKind()
	if kind == "" {
		return fmt.Errorf("%s records cannot be deleted", s)
	}
	m.record(ctx, "Deleting "+kind, map[string]any{"section": s.String(), "id": id})
	return nil
}

func (m *LogMutator) record(ctx context.Context, message string, metadata map[string]any) {
	actor := ActorFrom(ctx)
	m.logger.Info(message,
		"category", model.EventCategoryContent,
		"actor", actor.Email,
		"metadata", metadata)

	if m.events == nil {
		return
	}
	if err := m.events.LogContentEvent(ctx, model.EventLevelInfo, message, actor.Email, actor.IP, metadata); err != nil {
		m.logger.Warn("failed to record content event", "error", err)
	}
}

var _ Mutator = (*LogMutator)(nil)
