// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package console builds the admin console's view model: which section is
// visible, what its panel shows and which dialog is open.
package console

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/olegiv/jvadmin/internal/backend"
	"github.com/olegiv/jvadmin/internal/i18n"
	"github.com/olegiv/jvadmin/internal/loader"
	"github.com/olegiv/jvadmin/internal/modal"
	"github.com/olegiv/jvadmin/internal/scheduler"
	"github.com/olegiv/jvadmin/internal/section"
	"github.com/olegiv/jvadmin/internal/session"
	"github.com/olegiv/jvadmin/internal/table"
)

// ErrRecordNotFound is returned when a dialog names a record that is not
// in the section's snapshot.
var ErrRecordNotFound = errors.New("record not found")

// Settings is the read-only settings panel.
type Settings struct {
	Version         string
	BackendURL      string
	CacheBackend    string
	SessionLifetime string
	RefreshSchedule string
}

// JobLister lists the registered background jobs.
type JobLister interface {
	List() []scheduler.JobInfo
}

// JobRow is one background job in the settings panel.
type JobRow struct {
	Name        string
	Description string
	Schedule    string
	LastRun     string
	NextRun     string
	RunAction   string
}

const jobTimeLayout = "2006-01-02 15:04:05"

func formatJobTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(jobTimeLayout)
}

// NavItem is one sidebar link.
type NavItem struct {
	Section section.Section
	Title   string
	Href    string
	Active  bool
}

// Panel is one content panel. Exactly one panel of a View is active.
type Panel struct {
	Section section.Section
	Active  bool
}

// View is everything one console page renders.
type View struct {
	Section  section.Section
	Title    string
	Session  session.Session
	Nav      []NavItem
	Panels   []Panel
	Table    table.Body
	Counts   loader.Counts
	Activity []loader.ActivityItem
	Hero     map[string]backend.HeroText
	Tabs     []i18n.Tab
	Lang     string
	Modals   *modal.Manager
	Dialog   *Dialog
	Settings Settings
	Jobs     []JobRow
}

// Active reports whether s is the visible section.
func (v *View) Active(s section.Section) bool {
	return v.Section == s
}

// SetLanguage marks lang as the active form tab.
func (v *View) SetLanguage(lang string) {
	if !i18n.IsSupported(lang) {
		lang = i18n.DefaultLanguage
	}
	v.Lang = lang
	v.Tabs = i18n.Tabs(lang)
}

// Dismiss applies t to the open dialog and reports whether it closed.
func (v *View) Dismiss(t modal.Trigger) bool {
	if v.Dialog == nil {
		return false
	}
	return v.Modals.Dismiss(v.Dialog.ID, t)
}

// HeroText returns the loaded hero text for lang, or empty text.
func (v *View) HeroText(lang string) backend.HeroText {
	return v.Hero[lang]
}

// panel runs a section's loader and fills its part of the view.
type panel struct {
	fill func(ctx context.Context, v *View)
}

// Controller shows sections. Panels are bound once in New.
type Controller struct {
	gate     *session.Gate
	loader   *loader.Loader
	settings Settings
	jobs     JobLister
	panels   map[section.Section]panel
}

// New creates a Controller over gate and l.
func New(gate *session.Gate, l *loader.Loader, settings Settings) *Controller {
	c := &Controller{
		gate:     gate,
		loader:   l,
		settings: settings,
	}

	c.panels = map[section.Section]panel{
		section.Dashboard: {fill: c.fillDashboard},
		section.Hero:      {fill: c.fillHero},
		section.Settings:  {fill: c.fillSettings},
	}
	for _, s := range section.Lists() {
		c.panels[s] = panel{fill: c.listFiller(s)}
	}
	return c
}

// ShowSection activates the section called name and runs its loader once.
// An unknown name returns section.ErrUnknownSection.
func (c *Controller) ShowSection(ctx context.Context, name string) (*View, error) {
	s, err := section.Parse(name)
	if err != nil {
		return nil, err
	}

	v := &View{
		Section: s,
		Title:   s.Title(),
		Session: c.gate.Current(ctx),
		Modals:  modal.NewManager(),
	}
	v.SetLanguage(i18n.DefaultLanguage)

	for _, other := range section.All() {
		active := other == s
		v.Nav = append(v.Nav, NavItem{
			Section: other,
			Title:   other.Title(),
			Href:    other.Path(),
			Active:  active,
		})
		v.Panels = append(v.Panels, Panel{Section: other, Active: active})
	}

	c.panels[s].fill(ctx, v)
	return v, nil
}

func (c *Controller) fillDashboard(ctx context.Context, v *View) {
	v.Counts = c.loader.LoadCounts(ctx)
	v.Activity = c.loader.RecentActivity(ctx)
}

func (c *Controller) fillHero(ctx context.Context, v *View) {
	v.Hero = c.loader.LoadHero(ctx).Languages
}

// WithJobs lists the jobs of j in the settings panel.
func (c *Controller) WithJobs(j JobLister) *Controller {
	c.jobs = j
	return c
}

func (c *Controller) fillSettings(_ context.Context, v *View) {
	v.Settings = c.settings
	if c.jobs == nil {
		return
	}
	for _, j := range c.jobs.List() {
		v.Jobs = append(v.Jobs, JobRow{
			Name:        j.Name,
			Description: j.Description,
			Schedule:    j.Schedule,
			LastRun:     formatJobTime(j.LastRun),
			NextRun:     formatJobTime(j.NextRun),
			RunAction:   section.Settings.Path() + "/jobs/" + url.PathEscape(j.Name) + "/run",
		})
	}
}

func (c *Controller) listFiller(s section.Section) func(context.Context, *View) {
	return func(ctx context.Context, v *View) {
		snap := c.loader.LoadList(ctx, s)
		if snap.Loaded() {
			v.Table = table.Build(s, snap.Parsed())
		} else {
			v.Table = table.Unloaded(s)
		}
	}
}
