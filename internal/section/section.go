// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package section defines the fixed set of console sections.
package section

import (
	"errors"
	"fmt"
)

// Section names one console panel.
type Section string

// Sections, in navigation order.
const (
	Dashboard  Section = "dashboard"
	Hero       Section = "hero"
	Activities Section = "activities"
	Gallery    Section = "gallery"
	Products   Section = "products"
	Thoughts   Section = "thoughts"
	Settings   Section = "settings"
)

// ErrUnknownSection is returned by Parse for a name outside the fixed set.
var ErrUnknownSection = errors.New("unknown section")

var all = []Section{Dashboard, Hero, Activities, Gallery, Products, Thoughts, Settings}

var titles = map[Section]string{
	Dashboard:  "Dashboard",
	Hero:       "Hero Content",
	Activities: "Activities",
	Gallery:    "Activities Gallery",
	Products:   "Products",
	Thoughts:   "User Thoughts",
	Settings:   "Settings",
}

// Backend list endpoints, relative to the backend base URL.
var endpoints = map[Section]string{
	Activities: "/api/content/activities",
	Gallery:    "/api/content/activities_gallery",
	Products:   "/api/content/products",
	Thoughts:   "/api/user-thoughts",
}

// HeroEndpoint serves the per-language hero title and subtitle.
const HeroEndpoint = "/api/hero-content"

// deleteKinds is the noun used in delete confirmations.
var deleteKinds = map[Section]string{
	Activities: "activity",
	Gallery:    "gallery item",
	Products:   "product",
	Thoughts:   "thought",
}

// All returns every section in navigation order.
func All() []Section {
	out := make([]Section, len(all))
	copy(out, all)
	return out
}

// Lists returns the sections backed by a list endpoint.
func Lists() []Section {
	return []Section{Activities, Gallery, Products, Thoughts}
}

// Parse converts a name into a Section.
func Parse(name string) (Section, error) {
	s := Section(name)
	if _, ok := titles[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, name)
	}
	return s, nil
}

// String implements fmt.Stringer.
func (s Section) String() string {
	return string(s)
}

// Title returns the page title shown when the section is active.
func (s Section) Title() string {
	return titles[s]
}

// Endpoint returns the list endpoint and whether the section has one.
func (s Section) Endpoint() (string, bool) {
	e, ok := endpoints[s]
	return e, ok
}

// IsList reports whether the section renders a table from a list endpoint.
func (s Section) IsList() bool {
	_, ok := endpoints[s]
	return ok
}

// Viewable reports whether records in the section have a view dialog.
func (s Section) Viewable() bool {
	return s == Gallery || s == Products || s == Thoughts
}

// Editable reports whether records in the section have an edit dialog.
func (s Section) Editable() bool {
	return s == Activities || s == Gallery
}

// DeleteKind returns the noun used when confirming a delete, or "" when
// records in the section cannot be deleted.
func (s Section) DeleteKind() string {
	return deleteKinds[s]
}

// Path returns the console URL of the section.
func (s Section) Path() string {
	if s == Dashboard {
		return "/admin"
	}
	return "/admin/" + string(s)
}
