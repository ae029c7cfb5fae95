// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package loader

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/olegiv/jvadmin/internal/model"
	"github.com/olegiv/jvadmin/internal/section"
)

// LoadCounts fetches the four lists concurrently and stores their lengths.
// If any fetch fails no counter is updated and the previous counts are
// returned.
func (l *Loader) LoadCounts(ctx context.Context) Counts {
	lists := section.Lists()
	sizes := make([]int, len(lists))

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range lists {
		path, _ := s.Endpoint()
		g.Go(func() error {
			records, err := l.fetcher.FetchList(gctx, path)
			if err != nil {
				return err
			}
			sizes[i] = len(records)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		l.logger.Error("backend fetch failed",
			"category", model.EventCategoryBackend,
			"section", section.Dashboard.String(),
			"error", err)
		return l.Counts(ctx)
	}

	counts := Counts{
		Activities: sizes[0],
		Gallery:    sizes[1],
		Products:   sizes[2],
		Thoughts:   sizes[3],
		LoadedAt:   time.Now().UTC(),
	}
	if err := l.counts.Store(ctx, keyCounts, counts); err != nil {
		l.logger.Warn("failed to cache dashboard counts", "error", err)
	}
	return counts
}

// ActivityItem is one line of the dashboard's recent activity list.
type ActivityItem struct {
	Title string
	Time  string
	Icon  string
	Type  string // success, info, warning or danger
}

var categoryIcons = map[string]string{
	model.EventCategoryAuth:    "fa-sign-in-alt",
	model.EventCategoryContent: "fa-edit",
	model.EventCategoryBackend: "fa-server",
	model.EventCategorySystem:  "fa-cog",
}

var levelTypes = map[string]string{
	model.EventLevelInfo:    "info",
	model.EventLevelWarning: "warning",
	model.EventLevelError:   "danger",
}

// RecentActivity returns the newest event-log entries with relative times.
func (l *Loader) RecentActivity(ctx context.Context) []ActivityItem {
	if l.events == nil {
		return nil
	}

	events, err := l.events.RecentEvents(ctx, RecentActivityLimit)
	if err != nil {
		l.logger.Error("failed to list recent events", "error", err)
		return nil
	}

	items := make([]ActivityItem, 0, len(events))
	for _, e := range events {
		icon, ok := categoryIcons[e.Category]
		if !ok {
			icon = categoryIcons[model.EventCategorySystem]
		}
		typ, ok := levelTypes[e.Level]
		if !ok {
			typ = "info"
		}
		if typ == "info" && e.Category == model.EventCategoryContent {
			typ = "success"
		}
		items = append(items, ActivityItem{
			Title: e.Message,
			Time:  humanize.Time(e.CreatedAt),
			Icon:  icon,
			Type:  typ,
		})
	}
	return items
}
