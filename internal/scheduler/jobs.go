// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Job names
const (
	JobSnapshotRefresh = "snapshot-refresh"
	JobEventRetention  = "event-retention"
)

// Refresher reloads every cached section snapshot.
type Refresher interface {
	Refresh(ctx context.Context)
}

// EventPruner deletes old event-log entries.
type EventPruner interface {
	DeleteOldEvents(ctx context.Context, olderThan time.Duration) (int64, error)
}

// RefreshJob reloads the snapshots on schedule.
func RefreshJob(r Refresher, schedule string) Job {
	return Job{
		Name:        JobSnapshotRefresh,
		Description: "Reload section snapshots and dashboard counts from the backend",
		Schedule:    schedule,
		Run: func(ctx context.Context) error {
			r.Refresh(ctx)
			return nil
		},
	}
}

// RetentionJob removes event-log entries older than keep.
func RetentionJob(p EventPruner, schedule string, keep time.Duration, logger *slog.Logger) Job {
	return Job{
		Name:        JobEventRetention,
		Description: "Delete old event log entries",
		Schedule:    schedule,
		Run: func(ctx context.Context) error {
			n, err := p.DeleteOldEvents(ctx, keep)
			if err != nil {
				return err
			}
			if n > 0 && logger != nil {
				logger.Info("deleted old events", "count", n, "older_than", keep)
			}
			return nil
		},
	}
}
