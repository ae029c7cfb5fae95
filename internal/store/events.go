// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Event is one row of the event log.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Actor     string
	IPAddress string
	Metadata  string // JSON object
	CreatedAt time.Time
}

// CreateEventParams holds the columns written by CreateEvent.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	Actor     string
	IPAddress string
	Metadata  string
	CreatedAt time.Time
}

// Queries wraps the database with the event log statements.
type Queries struct {
	db *sql.DB
}

// New creates Queries for db.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

const createEvent = `
INSERT INTO events (level, category, message, actor, ip_address, metadata, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, level, category, message, actor, ip_address, metadata, created_at`

// CreateEvent inserts an event and returns the stored row.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	if arg.Metadata == "" {
		arg.Metadata = "{}"
	}
	if arg.CreatedAt.IsZero() {
		arg.CreatedAt = time.Now()
	}

	row := q.db.QueryRowContext(ctx, createEvent,
		arg.Level, arg.Category, arg.Message, arg.Actor, arg.IPAddress, arg.Metadata, arg.CreatedAt.UTC())

	var e Event
	if err := row.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Actor, &e.IPAddress, &e.Metadata, &e.CreatedAt); err != nil {
		return Event{}, fmt.Errorf("creating event: %w", err)
	}
	return e, nil
}

const listRecentEvents = `
SELECT id, level, category, message, actor, ip_address, metadata, created_at
FROM events
ORDER BY created_at DESC, id DESC
LIMIT ?`

// ListRecentEvents returns the newest events first.
func (q *Queries) ListRecentEvents(ctx context.Context, limit int) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listRecentEvents, limit)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Actor, &e.IPAddress, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

const deleteEventsBefore = `DELETE FROM events WHERE created_at < ?`

// DeleteEventsBefore removes events older than cutoff and reports how many were removed.
func (q *Queries) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteEventsBefore, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("deleting events: %w", err)
	}
	return res.RowsAffected()
}
