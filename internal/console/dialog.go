// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/url"

	"github.com/microcosm-cc/bluemonday"
	"github.com/tidwall/gjson"
	"github.com/yuin/goldmark"

	"github.com/olegiv/jvadmin/internal/backend"
	"github.com/olegiv/jvadmin/internal/content"
	"github.com/olegiv/jvadmin/internal/modal"
	"github.com/olegiv/jvadmin/internal/section"
)

// ErrNoDialog is returned when a section does not offer the requested dialog.
var ErrNoDialog = errors.New("section has no such dialog")

var ugcPolicy = bluemonday.UGCPolicy()

// Field is one line of the view dialog.
type Field struct {
	Name  string
	Value string
}

// Dialog is the open dialog of a View.
type Dialog struct {
	ID       string
	Title    string
	Action   string
	Cancel   string
	Self     string // the URL that opened the dialog
	Activity content.ActivityForm
	Gallery  content.GalleryForm
	Fields   []Field
	Body     template.HTML
	Message  string
}

// DismissQuery is the query parameter carrying a dismiss trigger.
const DismissQuery = "dismiss"

// DismissURL is the link for the dismiss control named trigger.
func (d *Dialog) DismissURL(trigger string) string {
	return d.Self + "?" + url.Values{DismissQuery: {trigger}}.Encode()
}

var viewTitles = map[section.Section]string{
	section.Gallery:  "Gallery Item Details",
	section.Products: "Product Details",
	section.Thoughts: "User Thought",
}

// NewActivity shows the activities section with an empty activity dialog.
func (c *Controller) NewActivity(ctx context.Context) (*View, error) {
	return c.openDialog(ctx, section.Activities, modal.Activity, "new", func(v *View, d *Dialog) error {
		d.Title = "Add New Activity"
		return nil
	})
}

// EditActivity shows the activity dialog filled from the cached record id.
func (c *Controller) EditActivity(ctx context.Context, id string) (*View, error) {
	return c.openDialog(ctx, section.Activities, modal.Activity, recordPath(id, "edit"), func(v *View, d *Dialog) error {
		r, ok := c.loader.Record(ctx, section.Activities, id)
		if !ok {
			return fmt.Errorf("%w: activity %q", ErrRecordNotFound, id)
		}
		d.Title = "Edit Activity"
		d.Activity = content.ActivityFormFromRecord(r)
		return nil
	})
}

// NewGallery shows the gallery section with an empty gallery dialog.
func (c *Controller) NewGallery(ctx context.Context) (*View, error) {
	return c.openDialog(ctx, section.Gallery, modal.Gallery, "new", func(v *View, d *Dialog) error {
		d.Title = "Add New Gallery Item"
		return nil
	})
}

// EditGallery shows the gallery dialog filled from the cached record id.
func (c *Controller) EditGallery(ctx context.Context, id string) (*View, error) {
	return c.openDialog(ctx, section.Gallery, modal.Gallery, recordPath(id, "edit"), func(v *View, d *Dialog) error {
		r, ok := c.loader.Record(ctx, section.Gallery, id)
		if !ok {
			return fmt.Errorf("%w: gallery item %q", ErrRecordNotFound, id)
		}
		d.Title = "Edit Gallery Item"
		d.Gallery = content.GalleryFormFromRecord(r)
		return nil
	})
}

// ViewRecord shows the full record id of a viewable section.
func (c *Controller) ViewRecord(ctx context.Context, name, id string) (*View, error) {
	s, err := section.Parse(name)
	if err != nil {
		return nil, err
	}
	if !s.Viewable() {
		return nil, fmt.Errorf("%w: view %s", ErrNoDialog, s)
	}

	return c.openDialog(ctx, s, modal.View, recordPath(id, "view"), func(v *View, d *Dialog) error {
		r, ok := c.loader.Record(ctx, s, id)
		if !ok {
			return fmt.Errorf("%w: %s %q", ErrRecordNotFound, s.DeleteKind(), id)
		}
		d.Title = viewTitles[s]
		d.Fields = recordFields(r)
		if s == section.Thoughts {
			d.Body = RenderMarkdown(r.Get("thought").String())
		}
		return nil
	})
}

// ConfirmDelete shows the delete confirmation for record id.
func (c *Controller) ConfirmDelete(ctx context.Context, name, id string) (*View, error) {
	s, err := section.Parse(name)
	if err != nil {
		return nil, err
	}
	kind := s.DeleteKind()
	if kind == "" {
		return nil, fmt.Errorf("%w: delete %s", ErrNoDialog, s)
	}

	return c.openDialog(ctx, s, modal.Confirm, recordPath(id, "delete"), func(v *View, d *Dialog) error {
		d.Title = "Confirm"
		d.Message = content.ConfirmDeleteMessage(kind)
		d.Action = s.Path() + "/" + recordPath(id, "delete")
		return nil
	})
}

// recordPath is the dialog path of record id below its section.
func recordPath(id, dialog string) string {
	return url.PathEscape(id) + "/" + dialog
}

// openDialog shows section s with dialog id open. sub is the dialog's
// path below the section.
func (c *Controller) openDialog(ctx context.Context, s section.Section, id, sub string, build func(*View, *Dialog) error) (*View, error) {
	v, err := c.ShowSection(ctx, s.String())
	if err != nil {
		return nil, err
	}

	d := &Dialog{ID: id, Action: s.Path(), Cancel: s.Path(), Self: s.Path() + "/" + sub}
	if err := build(v, d); err != nil {
		return nil, err
	}

	v.Modals.Show(id)
	v.Dialog = d
	return v, nil
}

func recordFields(r backend.Record) []Field {
	var fields []Field
	gjson.Parse(r.Raw()).ForEach(func(key, value gjson.Result) bool {
		fields = append(fields, Field{Name: key.String(), Value: value.String()})
		return true
	})
	return fields
}

// RenderMarkdown converts user text to sanitized HTML.
func RenderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text)) //nolint:gosec // escaped above
	}
	return template.HTML(ugcPolicy.SanitizeBytes(buf.Bytes())) //nolint:gosec // sanitized by UGC policy
}
