// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package table turns backend records into table rows for the list sections.
package table

import (
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/jvadmin/internal/backend"
	"github.com/olegiv/jvadmin/internal/section"
)

// Fallback placeholders.
const (
	NotAvailable = "N/A"
	NoImage      = "No Image"
	Anonymous    = "Anonymous"
)

// ThoughtPreviewLen is the number of characters of a thought shown in the table.
const ThoughtPreviewLen = 50

var strictPolicy = bluemonday.StrictPolicy()

// Cell is one table cell.
type Cell struct {
	Text  string
	Title string // title attribute, shown on hover
	Badge string // extra badge class; empty means no badge
	Image string // image src; when set, Text is the alt text
}

// Action is a row action button.
type Action struct {
	Kind string // view, edit or delete
	Icon string
	Href string
}

// Row is one table row. A row with Span > 0 is the single placeholder row
// of an empty table.
type Row struct {
	ID      string
	Cells   []Cell
	Actions []Action
	Span    int
}

// Body is the rendered table body of one list section.
type Body struct {
	Headers []string
	Rows    []Row
}

// Empty reports whether the body holds only the placeholder row.
func (b Body) Empty() bool {
	return len(b.Rows) == 1 && b.Rows[0].Span > 0
}

type layout struct {
	headers []string
	empty   string
	row     func(section.Section, backend.Record) Row
}

var layouts = map[section.Section]layout{
	section.Activities: {
		headers: []string{"Title", "Category", "Status", "Order", "Actions"},
		empty:   "No activities found",
		row:     activityRow,
	},
	section.Gallery: {
		headers: []string{"Image", "Title", "Category", "Date", "Status", "Actions"},
		empty:   "No gallery items found",
		row:     galleryRow,
	},
	section.Products: {
		headers: []string{"Image", "Name", "Price", "Category", "Status", "Actions"},
		empty:   "No products found",
		row:     productRow,
	},
	section.Thoughts: {
		headers: []string{"Name", "Contact", "Thought", "Language", "Date", "Actions"},
		empty:   "No thoughts found",
		row:     thoughtRow,
	},
}

// Headers returns the column headers for s, or nil for non-list sections.
func Headers(s section.Section) []string {
	return layouts[s].headers
}

// Unloaded returns the body of a table whose section has never loaded:
// headers and no rows.
func Unloaded(s section.Section) Body {
	return Body{Headers: layouts[s].headers}
}

// Build renders records into a table body. Zero records give exactly one
// placeholder row; n records give exactly n rows.
func Build(s section.Section, records []backend.Record) Body {
	l, ok := layouts[s]
	if !ok {
		return Body{}
	}

	body := Body{Headers: l.headers}
	if len(records) == 0 {
		body.Rows = []Row{{
			Span:  len(l.headers),
			Cells: []Cell{{Text: l.empty}},
		}}
		return body
	}

	body.Rows = make([]Row, 0, len(records))
	for _, r := range records {
		body.Rows = append(body.Rows, l.row(s, r))
	}
	return body
}

func activityRow(s section.Section, r backend.Record) Row {
	return Row{
		ID: r.ID(),
		Cells: []Cell{
			{Text: r.Text("title_en", NotAvailable)},
			{Text: r.Text("category", NotAvailable), Badge: "status-badge"},
			statusCell(r),
			{Text: r.Text("display_order", "0")},
		},
		Actions: actions(s, r.ID(), "edit", "delete"),
	}
}

func galleryRow(s section.Section, r backend.Record) Row {
	return Row{
		ID: r.ID(),
		Cells: []Cell{
			imageCell(r, "image", "Gallery Image"),
			{Text: r.Text("title_en", NotAvailable)},
			{Text: r.Text("category_en", NotAvailable), Badge: "status-badge"},
			{Text: r.Text("date", NotAvailable)},
			statusCell(r),
		},
		Actions: actions(s, r.ID(), "view", "edit", "delete"),
	}
}

func productRow(s section.Section, r backend.Record) Row {
	return Row{
		ID: r.ID(),
		Cells: []Cell{
			imageCell(r, "image_url", "Product Image"),
			{Text: r.Text("name_en", NotAvailable)},
			{Text: "₹" + r.Text("price", "0")},
			{Text: r.Text("category_en", NotAvailable), Badge: "status-badge"},
			statusCell(r),
		},
		Actions: actions(s, r.ID(), "view", "edit", "delete"),
	}
}

func thoughtRow(s section.Section, r backend.Record) Row {
	name := r.Text("name", "")
	if name == "" {
		name = NotAvailable
		if r.Truthy("is_anonymous") {
			name = Anonymous
		}
	}

	full := PlainText(r.Text("thought", ""))
	preview := NotAvailable
	if full != "" {
		preview = Truncate(full, ThoughtPreviewLen)
	}

	return Row{
		ID: r.ID(),
		Cells: []Cell{
			{Text: name},
			{Text: r.Text("contact_no", NotAvailable)},
			{Text: preview, Title: full},
			{Text: r.Text("language", "en"), Badge: "status-badge"},
			{Text: FormatDate(r.Get("created_at").String())},
		},
		Actions: actions(s, r.ID(), "view", "delete"),
	}
}

func statusCell(r backend.Record) Cell {
	if r.Truthy("is_active") {
		return Cell{Text: "Active", Badge: "status-badge status-active"}
	}
	return Cell{Text: "Inactive", Badge: "status-badge status-inactive"}
}

func imageCell(r backend.Record, path, alt string) Cell {
	if !r.Truthy(path) {
		return Cell{Text: NoImage}
	}
	return Cell{Text: alt, Image: r.Get(path).String()}
}

var actionIcons = map[string]string{
	"view":   "fa-eye",
	"edit":   "fa-edit",
	"delete": "fa-trash",
}

func actions(s section.Section, id string, kinds ...string) []Action {
	base := s.Path() + "/" + url.PathEscape(id)
	out := make([]Action, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, Action{Kind: k, Icon: actionIcons[k], Href: base + "/" + k})
	}
	return out
}

// PlainText strips all markup from s and decodes entities.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// Truncate cuts s to n characters and appends "..." when it was longer.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatDate renders a backend timestamp as a short date (M/D/YYYY).
// Unparseable values render as N/A.
func FormatDate(raw string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("1/2/2006")
		}
	}
	return NotAvailable
}
