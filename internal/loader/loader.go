// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package loader runs the per-section data loads and keeps the last
// successful result of each in the snapshot cache.
package loader

import (
	"context"
	"log/slog"
	"time"

	"github.com/olegiv/jvadmin/internal/backend"
	"github.com/olegiv/jvadmin/internal/cache"
	"github.com/olegiv/jvadmin/internal/model"
	"github.com/olegiv/jvadmin/internal/section"
	"github.com/olegiv/jvadmin/internal/store"
)

// Cache namespaces and the fixed names within them.
const (
	nsSnapshot  = "snapshot"
	nsDashboard = "dashboard"
	keyCounts   = "counts"
	keyHero     = "hero"
)

// RecentActivityLimit is the number of events shown on the dashboard.
const RecentActivityLimit = 10

// Fetcher is the part of the backend client the loaders use.
type Fetcher interface {
	FetchList(ctx context.Context, path string) ([]backend.Record, error)
	FetchHero(ctx context.Context, path string) (map[string]backend.HeroText, error)
}

// EventLister lists recent event-log entries.
type EventLister interface {
	RecentEvents(ctx context.Context, limit int) ([]store.Event, error)
}

// Snapshot is the last successful list load of one section.
type Snapshot struct {
	Section  section.Section `json:"section"`
	Records  []string        `json:"records"`
	LoadedAt time.Time       `json:"loaded_at"`
}

// Loaded reports whether the snapshot holds a successful load.
func (s Snapshot) Loaded() bool {
	return !s.LoadedAt.IsZero()
}

// Parsed returns the snapshot's records.
func (s Snapshot) Parsed() []backend.Record {
	out := make([]backend.Record, len(s.Records))
	for i, raw := range s.Records {
		out[i] = backend.NewRecord(raw)
	}
	return out
}

// Counts is the last successful dashboard fan-out.
type Counts struct {
	Activities int       `json:"activities"`
	Gallery    int       `json:"gallery"`
	Products   int       `json:"products"`
	Thoughts   int       `json:"thoughts"`
	LoadedAt   time.Time `json:"loaded_at"`
}

// Hero is the last successful hero load, keyed by language code.
type Hero struct {
	Languages map[string]backend.HeroText `json:"languages"`
	LoadedAt  time.Time                   `json:"loaded_at"`
}

// Loader runs section loads against the backend.
type Loader struct {
	fetcher   Fetcher
	events    EventLister
	snapshots *cache.Namespace[Snapshot]
	counts    *cache.Namespace[Counts]
	hero      *cache.Namespace[Hero]
	logger    *slog.Logger
}

// New creates a Loader. Snapshots are kept in c for ttl.
func New(fetcher Fetcher, events EventLister, c cache.Cacher, ttl time.Duration, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		fetcher:   fetcher,
		events:    events,
		snapshots: cache.NewNamespace[Snapshot](c, nsSnapshot, ttl),
		counts:    cache.NewNamespace[Counts](c, nsDashboard, ttl),
		hero:      cache.NewNamespace[Hero](c, nsDashboard, ttl),
		logger:    logger,
	}
}

// Load runs the loader for s. List sections fetch and replace their
// snapshot; the dashboard refreshes counts; the hero section refreshes the
// hero text. Settings has no loader.
func (l *Loader) Load(ctx context.Context, s section.Section) {
	switch {
	case s == section.Dashboard:
		l.LoadCounts(ctx)
	case s == section.Hero:
		l.LoadHero(ctx)
	case s.IsList():
		l.LoadList(ctx, s)
	}
}

// LoadList fetches the list for s. On failure the error is logged and the
// previous snapshot is returned unchanged.
func (l *Loader) LoadList(ctx context.Context, s section.Section) Snapshot {
	path, ok := s.Endpoint()
	if !ok {
		return Snapshot{Section: s}
	}

	records, err := l.fetcher.FetchList(ctx, path)
	if err != nil {
		l.logger.Error("backend fetch failed",
			"category", model.EventCategoryBackend,
			"section", s.String(),
			"error", err)
		return l.Snapshot(ctx, s)
	}

	snap := Snapshot{
		Section:  s,
		Records:  make([]string, len(records)),
		LoadedAt: time.Now().UTC(),
	}
	for i, r := range records {
		snap.Records[i] = r.Raw()
	}

	if err := l.snapshots.Store(ctx, s.String(), snap); err != nil {
		l.logger.Warn("failed to cache snapshot", "section", s.String(), "error", err)
	}
	return snap
}

// Snapshot returns the cached snapshot for s, or an unloaded one.
func (l *Loader) Snapshot(ctx context.Context, s section.Section) Snapshot {
	if snap, ok := l.snapshots.Load(ctx, s.String()); ok {
		return snap
	}
	return Snapshot{Section: s}
}

// Record finds the record with id in the cached snapshot of s.
func (l *Loader) Record(ctx context.Context, s section.Section, id string) (backend.Record, bool) {
	for _, r := range l.Snapshot(ctx, s).Parsed() {
		if r.ID() == id {
			return r, true
		}
	}
	return backend.Record{}, false
}

// LoadHero fetches the hero text. On failure the previous value is kept.
func (l *Loader) LoadHero(ctx context.Context) Hero {
	langs, err := l.fetcher.FetchHero(ctx, section.HeroEndpoint)
	if err != nil {
		l.logger.Error("backend fetch failed",
			"category", model.EventCategoryBackend,
			"section", section.Hero.String(),
			"error", err)
		return l.Hero(ctx)
	}

	hero := Hero{Languages: langs, LoadedAt: time.Now().UTC()}
	if err := l.hero.Store(ctx, keyHero, hero); err != nil {
		l.logger.Warn("failed to cache hero content", "error", err)
	}
	return hero
}

// Hero returns the cached hero text.
func (l *Loader) Hero(ctx context.Context) Hero {
	if h, ok := l.hero.Load(ctx, keyHero); ok {
		return h
	}
	return Hero{}
}

// Counts returns the cached dashboard counts.
func (l *Loader) Counts(ctx context.Context) Counts {
	if c, ok := l.counts.Load(ctx, keyCounts); ok {
		return c
	}
	return Counts{}
}

// Refresh reloads the counts, the hero text and every list snapshot.
func (l *Loader) Refresh(ctx context.Context) {
	for _, s := range section.All() {
		if ctx.Err() != nil {
			return
		}
		l.Load(ctx, s)
	}
}
