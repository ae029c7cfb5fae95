// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/olegiv/jvadmin/internal/model"
	"github.com/olegiv/jvadmin/internal/render"
	"github.com/olegiv/jvadmin/internal/scheduler"
	"github.com/olegiv/jvadmin/internal/testutil"
)

type fakeJobTrigger struct {
	err       error
	triggered []string
}

func (f *fakeJobTrigger) TriggerNow(name string) error {
	f.triggered = append(f.triggered, name)
	return f.err
}

type fakeSystemEvents struct {
	messages []string
}

func (f *fakeSystemEvents) LogSystemEvent(_ context.Context, level, message string, _ map[string]any) error {
	f.messages = append(f.messages, level+": "+message)
	return nil
}

// runJob posts to the run route and returns the response and the flash it left.
func runJob(t *testing.T, h *SchedulerHandler, sm *scs.SessionManager, job string) (*httptest.ResponseRecorder, string, string) {
	t.Helper()
	r := chi.NewRouter()
	var flash, flashType string
	r.Use(sm.LoadAndSave)
	r.Route(RouteAdmin, func(r chi.Router) {
		r.Post(RouteSettingsJobRun, func(w http.ResponseWriter, r *http.Request) {
			h.RunJob(w, r)
			flash = sm.GetString(r.Context(), "flash")
			flashType = sm.GetString(r.Context(), "flash_type")
		})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/settings/jobs/"+job+"/run", nil))
	return w, flash, flashType
}

func TestSchedulerHandler_RunJob(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantFlash string
		wantType  string
		wantEvent bool
	}{
		{"success", nil, "Job snapshot-refresh completed.", render.FlashSuccess, true},
		{"rate limited", fmt.Errorf("%w: snapshot-refresh", scheduler.ErrTriggerRateLimited), msgJobRateLimited, render.FlashError, false},
		{"job failed", errors.New("backend down"), msgJobFailed, render.FlashError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := testSessionManager(t)
			jobs := &fakeJobTrigger{err: tt.err}
			events := &fakeSystemEvents{}
			h := NewSchedulerHandler(jobs, testRenderer(t, sm), events)

			w, flash, flashType := runJob(t, h, sm, scheduler.JobSnapshotRefresh)

			assertStatus(t, w.Code, http.StatusSeeOther)
			assertLocation(t, w, "/admin/settings")
			assert.Equal(t, []string{scheduler.JobSnapshotRefresh}, jobs.triggered)
			assert.Equal(t, tt.wantFlash, flash)
			assert.Equal(t, tt.wantType, flashType)
			if tt.wantEvent {
				assert.Equal(t, []string{model.EventLevelInfo + ": Job manually triggered: snapshot-refresh"}, events.messages)
			} else {
				assert.Empty(t, events.messages)
			}
		})
	}
}

func TestSchedulerHandler_UnknownJob(t *testing.T) {
	sm := testSessionManager(t)
	jobs := &fakeJobTrigger{err: fmt.Errorf("%w: nope", scheduler.ErrJobNotFound)}
	h := NewSchedulerHandler(jobs, testRenderer(t, sm), nil)

	w, flash, _ := runJob(t, h, sm, "nope")

	assertStatus(t, w.Code, http.StatusNotFound)
	assert.Empty(t, flash)
}

func TestSchedulerHandler_RealSchedulerRateLimit(t *testing.T) {
	sm := testSessionManager(t)
	sched := scheduler.New(testutil.TestLoggerSilent())
	runs := 0
	err := sched.Add(scheduler.Job{
		Name:     "count",
		Schedule: "@hourly",
		Run: func(context.Context) error {
			runs++
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	h := NewSchedulerHandler(sched, testRenderer(t, sm), nil)

	_, first, _ := runJob(t, h, sm, "count")
	_, second, secondType := runJob(t, h, sm, "count")

	assert.Equal(t, "Job count completed.", first)
	assert.Equal(t, msgJobRateLimited, second)
	assert.Equal(t, render.FlashError, secondType)
	assert.Equal(t, 1, runs)
}
