// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package loader

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/olegiv/jvadmin/internal/backend"
	"github.com/olegiv/jvadmin/internal/cache"
	"github.com/olegiv/jvadmin/internal/model"
	"github.com/olegiv/jvadmin/internal/section"
	"github.com/olegiv/jvadmin/internal/store"
	"github.com/olegiv/jvadmin/internal/testutil"
)

// fakeFetcher serves canned lists by path and counts calls.
type fakeFetcher struct {
	mu    sync.Mutex
	lists map[string][]backend.Record
	fail  map[string]error
	hero  map[string]backend.HeroText
	calls map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		lists: make(map[string][]backend.Record),
		fail:  make(map[string]error),
		calls: make(map[string]int),
	}
}

func (f *fakeFetcher) FetchList(_ context.Context, path string) ([]backend.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[path]++
	if err := f.fail[path]; err != nil {
		return nil, err
	}
	return f.lists[path], nil
}

func (f *fakeFetcher) FetchHero(_ context.Context, path string) (map[string]backend.HeroText, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[path]++
	if err := f.fail[path]; err != nil {
		return nil, err
	}
	return f.hero, nil
}

func (f *fakeFetcher) set(s section.Section, raw ...string) {
	path, _ := s.Endpoint()
	recs := make([]backend.Record, len(raw))
	for i, r := range raw {
		recs[i] = backend.NewRecord(r)
	}
	f.mu.Lock()
	f.lists[path] = recs
	f.mu.Unlock()
}

func (f *fakeFetcher) failWith(path string, err error) {
	f.mu.Lock()
	f.fail[path] = err
	f.mu.Unlock()
}

func newTestLoader(t *testing.T, f Fetcher, events EventLister) *Loader {
	t.Helper()
	mem := cache.NewSimpleMemoryCache(time.Hour)
	t.Cleanup(func() { _ = mem.Close() })
	return New(f, events, mem, time.Hour, testutil.TestLoggerSilent())
}

func TestLoadList_StoresSnapshot(t *testing.T) {
	f := newFakeFetcher()
	f.set(section.Gallery, `{"id":1}`, `{"id":2}`)
	l := newTestLoader(t, f, nil)
	ctx := context.Background()

	snap := l.LoadList(ctx, section.Gallery)
	if !snap.Loaded() || len(snap.Records) != 2 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if f.calls["/api/content/activities_gallery"] != 1 {
		t.Errorf("gallery fetches = %d, want 1", f.calls["/api/content/activities_gallery"])
	}

	cached := l.Snapshot(ctx, section.Gallery)
	if len(cached.Records) != 2 {
		t.Errorf("cached records = %d, want 2", len(cached.Records))
	}

	rec, ok := l.Record(ctx, section.Gallery, "2")
	if !ok || rec.ID() != "2" {
		t.Errorf("Record(2) = %v, %v", rec, ok)
	}
	if _, ok := l.Record(ctx, section.Gallery, "9"); ok {
		t.Error("Record(9) found a missing record")
	}
}

func TestLoadList_FailureKeepsPreviousSnapshot(t *testing.T) {
	f := newFakeFetcher()
	f.set(section.Products, `{"id":"p1"}`)
	l := newTestLoader(t, f, nil)
	ctx := context.Background()

	first := l.LoadList(ctx, section.Products)
	f.failWith("/api/content/products", &backend.StatusError{StatusCode: 500})

	got := l.LoadList(ctx, section.Products)
	if len(got.Records) != 1 || !got.LoadedAt.Equal(first.LoadedAt) {
		t.Errorf("snapshot after failure = %+v, want previous %+v", got, first)
	}
}

func TestLoadList_FailureWithoutPreviousIsUnloaded(t *testing.T) {
	f := newFakeFetcher()
	f.failWith("/api/user-thoughts", errors.New("connection refused"))
	l := newTestLoader(t, f, nil)

	got := l.LoadList(context.Background(), section.Thoughts)
	if got.Loaded() || len(got.Records) != 0 {
		t.Errorf("snapshot = %+v, want unloaded", got)
	}
}

func TestLoadList_NonListSection(t *testing.T) {
	f := newFakeFetcher()
	l := newTestLoader(t, f, nil)

	if got := l.LoadList(context.Background(), section.Settings); got.Loaded() {
		t.Errorf("Settings snapshot = %+v", got)
	}
	if len(f.calls) != 0 {
		t.Errorf("calls = %v, want none", f.calls)
	}
}

func TestLoad_Dispatch(t *testing.T) {
	tests := []struct {
		section section.Section
		want    map[string]int
	}{
		{section.Gallery, map[string]int{"/api/content/activities_gallery": 1}},
		{section.Hero, map[string]int{"/api/hero-content": 1}},
		{section.Settings, map[string]int{}},
		{section.Dashboard, map[string]int{
			"/api/content/activities":         1,
			"/api/content/activities_gallery": 1,
			"/api/content/products":           1,
			"/api/user-thoughts":              1,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.section.String(), func(t *testing.T) {
			f := newFakeFetcher()
			l := newTestLoader(t, f, nil)

			l.Load(context.Background(), tt.section)

			if len(f.calls) != len(tt.want) {
				t.Fatalf("calls = %v, want %v", f.calls, tt.want)
			}
			for path, n := range tt.want {
				if f.calls[path] != n {
					t.Errorf("calls[%s] = %d, want %d", path, f.calls[path], n)
				}
			}
		})
	}
}

func TestLoadCounts(t *testing.T) {
	f := newFakeFetcher()
	f.set(section.Activities, `{}`, `{}`, `{}`)
	f.set(section.Gallery, `{}`)
	f.set(section.Thoughts, `{}`, `{}`)
	l := newTestLoader(t, f, nil)

	c := l.LoadCounts(context.Background())
	if c.Activities != 3 || c.Gallery != 1 || c.Products != 0 || c.Thoughts != 2 {
		t.Errorf("counts = %+v", c)
	}
	if cached := l.Counts(context.Background()); cached.Activities != 3 {
		t.Errorf("cached counts = %+v", cached)
	}
}

func TestLoadCounts_AnyFailureKeepsAllPrevious(t *testing.T) {
	f := newFakeFetcher()
	f.set(section.Activities, `{}`)
	f.set(section.Gallery, `{}`)
	f.set(section.Products, `{}`)
	f.set(section.Thoughts, `{}`)
	l := newTestLoader(t, f, nil)
	ctx := context.Background()

	prev := l.LoadCounts(ctx)

	f.set(section.Activities, `{}`, `{}`, `{}`, `{}`)
	f.set(section.Gallery, `{}`, `{}`)
	f.failWith("/api/content/products", errors.New("timeout"))

	got := l.LoadCounts(ctx)
	if got.Activities != prev.Activities || got.Gallery != prev.Gallery ||
		got.Products != prev.Products || got.Thoughts != prev.Thoughts || !got.LoadedAt.Equal(prev.LoadedAt) {
		t.Errorf("counts after partial failure = %+v, want previous %+v", got, prev)
	}
}

func TestLoadCounts_FailureWithoutPrevious(t *testing.T) {
	f := newFakeFetcher()
	f.failWith("/api/user-thoughts", errors.New("down"))
	l := newTestLoader(t, f, nil)

	if got := l.LoadCounts(context.Background()); got != (Counts{}) {
		t.Errorf("counts = %+v, want zero", got)
	}
}

func TestLoadHero(t *testing.T) {
	f := newFakeFetcher()
	f.hero = map[string]backend.HeroText{"en": {Title: "Welcome", Subtitle: "Sub"}}
	l := newTestLoader(t, f, nil)
	ctx := context.Background()

	h := l.LoadHero(ctx)
	if h.Languages["en"].Title != "Welcome" {
		t.Errorf("hero = %+v", h)
	}

	f.failWith("/api/hero-content", errors.New("down"))
	if kept := l.LoadHero(ctx); kept.Languages["en"].Subtitle != "Sub" {
		t.Errorf("hero after failure = %+v", kept)
	}
}

func TestRefresh(t *testing.T) {
	f := newFakeFetcher()
	l := newTestLoader(t, f, nil)

	l.Refresh(context.Background())

	for _, s := range section.Lists() {
		path, _ := s.Endpoint()
		if f.calls[path] != 2 {
			t.Errorf("calls[%s] = %d, want 2 (counts + snapshot)", path, f.calls[path])
		}
	}
	if f.calls[section.HeroEndpoint] != 1 {
		t.Errorf("hero calls = %d, want 1", f.calls[section.HeroEndpoint])
	}
}

func TestRefresh_CanceledContextFetchesNothing(t *testing.T) {
	f := newFakeFetcher()
	l := newTestLoader(t, f, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l.Refresh(ctx)

	if len(f.calls) != 0 {
		t.Errorf("calls = %v, want none", f.calls)
	}
}

type fakeEvents struct {
	events []store.Event
	err    error
}

func (f fakeEvents) RecentEvents(_ context.Context, limit int) ([]store.Event, error) {
	if len(f.events) > limit {
		return f.events[:limit], f.err
	}
	return f.events, f.err
}

func TestRecentActivity(t *testing.T) {
	now := time.Now()
	events := fakeEvents{events: []store.Event{
		{Level: model.EventLevelInfo, Category: model.EventCategoryContent, Message: "Gallery item saved", CreatedAt: now.Add(-2 * time.Hour)},
		{Level: model.EventLevelError, Category: model.EventCategoryBackend, Message: "backend fetch failed", CreatedAt: now.Add(-26 * time.Hour)},
		{Level: model.EventLevelInfo, Category: "unknown", Message: "x", CreatedAt: now},
	}}
	l := newTestLoader(t, newFakeFetcher(), events)

	items := l.RecentActivity(context.Background())
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}

	if items[0].Title != "Gallery item saved" || items[0].Time != "2 hours ago" || items[0].Type != "success" || items[0].Icon != "fa-edit" {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].Type != "danger" || items[1].Icon != "fa-server" || items[1].Time != "1 day ago" {
		t.Errorf("items[1] = %+v", items[1])
	}
	if items[2].Icon != "fa-cog" || items[2].Type != "info" {
		t.Errorf("items[2] = %+v", items[2])
	}
}

func TestRecentActivity_Errors(t *testing.T) {
	l := newTestLoader(t, newFakeFetcher(), fakeEvents{err: errors.New("db closed")})
	if items := l.RecentActivity(context.Background()); items != nil {
		t.Errorf("items = %v, want nil", items)
	}

	noEvents := newTestLoader(t, newFakeFetcher(), nil)
	if items := noEvents.RecentActivity(context.Background()); items != nil {
		t.Errorf("items = %v, want nil", items)
	}
}
