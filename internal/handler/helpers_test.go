// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/jvadmin/internal/backend"
	"github.com/olegiv/jvadmin/internal/cache"
	"github.com/olegiv/jvadmin/internal/loader"
	"github.com/olegiv/jvadmin/internal/render"
	"github.com/olegiv/jvadmin/internal/section"
	"github.com/olegiv/jvadmin/internal/session"
	"github.com/olegiv/jvadmin/internal/testutil"
	"github.com/olegiv/jvadmin/web"
)

const (
	testEmail    = "admin@jvhelp.org"
	testPassword = "admin123"
)

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}

func assertLocation(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()
	if got := w.Header().Get("Location"); got != want {
		t.Errorf("Location = %q; want %q", got, want)
	}
}

func testSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	sm := scs.New()
	sm.Lifetime = time.Hour
	return sm
}

func testRenderer(t *testing.T, sm *scs.SessionManager) *render.Renderer {
	t.Helper()
	r, err := render.New(render.Config{TemplatesFS: web.Templates(), SessionManager: sm})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return r
}

// sessionCookie returns the session cookie set on a response, if any.
func sessionCookie(w *httptest.ResponseRecorder, sm *scs.SessionManager) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == sm.Cookie.Name {
			return c
		}
	}
	return nil
}

// loggedInCookie runs a login through sm and returns the resulting cookie.
func loggedInCookie(t *testing.T, sm *scs.SessionManager, gate *session.Gate) *http.Cookie {
	t.Helper()
	h := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Login(r.Context(), testEmail, testPassword); err != nil {
			t.Fatalf("Login: %v", err)
		}
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	c := sessionCookie(w, sm)
	if c == nil {
		t.Fatal("login did not set a session cookie")
	}
	return c
}

type fakeFetcher struct {
	mu    sync.Mutex
	lists map[string][]backend.Record
	hero  map[string]backend.HeroText
	err   error
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{lists: make(map[string][]backend.Record)}
}

func (f *fakeFetcher) FetchList(_ context.Context, path string) ([]backend.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.lists[path], nil
}

func (f *fakeFetcher) FetchHero(context.Context, string) (map[string]backend.HeroText, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.hero, nil
}

func (f *fakeFetcher) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *fakeFetcher) set(s section.Section, raw ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path, _ := s.Endpoint()
	recs := make([]backend.Record, len(raw))
	for i, r := range raw {
		recs[i] = backend.NewRecord(r)
	}
	f.lists[path] = recs
}

func testLoader(t *testing.T, f loader.Fetcher) *loader.Loader {
	t.Helper()
	mem := cache.NewSimpleMemoryCache(time.Hour)
	t.Cleanup(func() { _ = mem.Close() })
	return loader.New(f, nil, mem, time.Hour, testutil.TestLoggerSilent())
}
