// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package table

import (
	"strings"
	"testing"

	"github.com/olegiv/jvadmin/internal/backend"
	"github.com/olegiv/jvadmin/internal/section"
)

func records(raw ...string) []backend.Record {
	out := make([]backend.Record, 0, len(raw))
	for _, r := range raw {
		out = append(out, backend.NewRecord(r))
	}
	return out
}

func cellTexts(row Row) []string {
	out := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		out[i] = c.Text
	}
	return out
}

func TestBuild_EmptyGivesOnePlaceholderRow(t *testing.T) {
	tests := []struct {
		section section.Section
		span    int
		text    string
	}{
		{section.Activities, 5, "No activities found"},
		{section.Gallery, 6, "No gallery items found"},
		{section.Products, 6, "No products found"},
		{section.Thoughts, 6, "No thoughts found"},
	}

	for _, tt := range tests {
		t.Run(string(tt.section), func(t *testing.T) {
			body := Build(tt.section, nil)
			if len(body.Rows) != 1 {
				t.Fatalf("rows = %d, want 1", len(body.Rows))
			}
			if !body.Empty() {
				t.Error("Empty() = false")
			}
			row := body.Rows[0]
			if row.Span != tt.span {
				t.Errorf("Span = %d, want %d", row.Span, tt.span)
			}
			if row.Cells[0].Text != tt.text {
				t.Errorf("text = %q, want %q", row.Cells[0].Text, tt.text)
			}
			if len(body.Headers) != tt.span {
				t.Errorf("headers = %d, want %d", len(body.Headers), tt.span)
			}
		})
	}
}

func TestBuild_NRecordsGiveNRows(t *testing.T) {
	recs := records(`{"id":1}`, `{"id":2}`, `{"id":3}`)
	for _, s := range section.Lists() {
		body := Build(s, recs)
		if len(body.Rows) != 3 {
			t.Errorf("%s: rows = %d, want 3", s, len(body.Rows))
		}
		if body.Empty() {
			t.Errorf("%s: Empty() = true", s)
		}
		for _, row := range body.Rows {
			if row.Span != 0 {
				t.Errorf("%s: data row has Span %d", s, row.Span)
			}
			if len(row.Cells)+1 != len(body.Headers) {
				t.Errorf("%s: %d cells + actions, want %d columns", s, len(row.Cells), len(body.Headers))
			}
		}
	}
}

func TestBuild_NonListSection(t *testing.T) {
	if body := Build(section.Hero, records(`{}`)); len(body.Rows) != 0 {
		t.Errorf("Hero rows = %d, want 0", len(body.Rows))
	}
}

func TestActivityRow(t *testing.T) {
	body := Build(section.Activities, records(
		`{"id":"a1","title_en":"Food drive","category":"Seva","is_active":true,"display_order":3}`,
		`{"id":"a2","is_active":false}`,
	))

	full := body.Rows[0]
	want := []string{"Food drive", "Seva", "Active", "3"}
	if got := cellTexts(full); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("cells = %v, want %v", got, want)
	}
	if full.Cells[2].Badge != "status-badge status-active" {
		t.Errorf("status badge = %q", full.Cells[2].Badge)
	}
	if len(full.Actions) != 2 || full.Actions[0].Href != "/admin/activities/a1/edit" || full.Actions[1].Kind != "delete" {
		t.Errorf("actions = %+v", full.Actions)
	}

	empty := body.Rows[1]
	want = []string{"N/A", "N/A", "Inactive", "0"}
	if got := cellTexts(empty); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("fallback cells = %v, want %v", got, want)
	}
}

func TestGalleryRow(t *testing.T) {
	body := Build(section.Gallery, records(
		`{"id":7,"image":"/img/a.jpg","title_en":"Camp","category_en":"Health","date":"2024-03-01","is_active":1}`,
		`{"id":8}`,
	))

	r := body.Rows[0]
	if r.Cells[0].Image != "/img/a.jpg" {
		t.Errorf("image = %q", r.Cells[0].Image)
	}
	if got := cellTexts(r)[1:]; strings.Join(got, "|") != "Camp|Health|2024-03-01|Active" {
		t.Errorf("cells = %v", got)
	}
	if len(r.Actions) != 3 || r.Actions[0].Href != "/admin/gallery/7/view" {
		t.Errorf("actions = %+v", r.Actions)
	}

	fallback := body.Rows[1]
	if fallback.Cells[0].Image != "" || fallback.Cells[0].Text != NoImage {
		t.Errorf("image fallback = %+v", fallback.Cells[0])
	}
	if got := cellTexts(fallback)[1:]; strings.Join(got, "|") != "N/A|N/A|N/A|Inactive" {
		t.Errorf("fallback cells = %v", got)
	}
}

func TestProductRow(t *testing.T) {
	body := Build(section.Products, records(
		`{"id":"p1","image_url":"/p.png","name_en":"Diya","price":120,"category_en":"Craft","is_active":true}`,
		`{"id":"p2","price":0}`,
	))

	if got := body.Rows[0].Cells[2].Text; got != "₹120" {
		t.Errorf("price = %q, want ₹120", got)
	}
	if got := body.Rows[1].Cells[2].Text; got != "₹0" {
		t.Errorf("missing price = %q, want ₹0", got)
	}
	if got := body.Rows[1].Cells[1].Text; got != NotAvailable {
		t.Errorf("name fallback = %q", got)
	}
	kinds := body.Rows[0].Actions
	if len(kinds) != 3 || kinds[0].Kind != "view" || kinds[1].Kind != "edit" || kinds[2].Kind != "delete" {
		t.Errorf("actions = %+v", kinds)
	}
	if kinds[1].Href != "/admin/products/p1/edit" {
		t.Errorf("edit href = %q", kinds[1].Href)
	}
}

func TestThoughtRow(t *testing.T) {
	long := strings.Repeat("a", 60)
	body := Build(section.Thoughts, records(
		`{"id":1,"name":"Ravi","contact_no":"98765","thought":"Short","language":"gu","created_at":"2024-05-06T10:00:00Z"}`,
		`{"id":2,"is_anonymous":true,"thought":"`+long+`"}`,
		`{"id":3,"name":"","is_anonymous":false}`,
		`{"id":4,"thought":"<b>Bold</b> &amp; <script>x()</script>kind"}`,
	))

	r := body.Rows[0]
	if got := strings.Join(cellTexts(r), "|"); got != "Ravi|98765|Short|gu|5/6/2024" {
		t.Errorf("cells = %s", got)
	}

	anon := body.Rows[1]
	if anon.Cells[0].Text != Anonymous {
		t.Errorf("name = %q, want Anonymous", anon.Cells[0].Text)
	}
	if want := strings.Repeat("a", 50) + "..."; anon.Cells[2].Text != want {
		t.Errorf("preview = %q, want %q", anon.Cells[2].Text, want)
	}
	if anon.Cells[2].Title != long {
		t.Error("title should hold the full thought")
	}
	if anon.Cells[3].Text != "en" {
		t.Errorf("language = %q, want en", anon.Cells[3].Text)
	}
	if anon.Cells[4].Text != NotAvailable {
		t.Errorf("date = %q, want N/A", anon.Cells[4].Text)
	}

	none := body.Rows[2]
	if none.Cells[0].Text != NotAvailable || none.Cells[1].Text != NotAvailable || none.Cells[2].Text != NotAvailable {
		t.Errorf("fallbacks = %v", cellTexts(none))
	}

	if got := body.Rows[3].Cells[2].Text; got != "Bold & kind" {
		t.Errorf("stripped = %q, want %q", got, "Bold & kind")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello!", 5, "hello..."},
		{"નમસ્તે મિત્રો", 4, "નમસ્..."},
	}

	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-05-06T10:00:00Z", "5/6/2024"},
		{"2024-12-25T23:59:59.123+05:30", "12/25/2024"},
		{"2024-01-02 03:04:05", "1/2/2024"},
		{"2024-01-02", "1/2/2024"},
		{"", NotAvailable},
		{"yesterday", NotAvailable},
	}

	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnloaded(t *testing.T) {
	body := Unloaded(section.Products)
	if len(body.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(body.Rows))
	}
	if len(body.Headers) != 6 {
		t.Errorf("headers = %d, want 6", len(body.Headers))
	}
	if body.Empty() {
		t.Error("Empty() = true for an unloaded body")
	}
}
