// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content holds the console's edit forms and the Mutator that
// would send them to the backend.
package content

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/olegiv/jvadmin/internal/backend"
)

// GalleryImageSlots is the number of extra gallery images.
const GalleryImageSlots = 5

// HeroForm is the hero title and subtitle in each content language.
type HeroForm struct {
	TitleEN    string `json:"title_en"`
	TitleHI    string `json:"title_hi"`
	TitleGU    string `json:"title_gu"`
	SubtitleEN string `json:"subtitle_en"`
	SubtitleHI string `json:"subtitle_hi"`
	SubtitleGU string `json:"subtitle_gu"`
}

// ActivityForm is the activity dialog.
type ActivityForm struct {
	ID            string `json:"id,omitempty"`
	TitleEN       string `json:"title_en"`
	TitleHI       string `json:"title_hi"`
	TitleGU       string `json:"title_gu"`
	DescriptionEN string `json:"description_en"`
	DescriptionHI string `json:"description_hi"`
	DescriptionGU string `json:"description_gu"`
	Category      string `json:"category"`
	IconURL       string `json:"icon_url"`
	DisplayOrder  int    `json:"display_order"`
	IsActive      bool   `json:"is_active"`
}

// GalleryForm is the gallery item dialog.
type GalleryForm struct {
	ID            string                    `json:"id,omitempty"`
	TitleEN       string                    `json:"title_en"`
	TitleHI       string                    `json:"title_hi"`
	TitleGU       string                    `json:"title_gu"`
	DescriptionEN string                    `json:"description_en"`
	DescriptionHI string                    `json:"description_hi"`
	DescriptionGU string                    `json:"description_gu"`
	QuoteEN       string                    `json:"quote_en"`
	QuoteHI       string                    `json:"quote_hi"`
	QuoteGU       string                    `json:"quote_gu"`
	CategoryEN    string                    `json:"category_en"`
	CategoryHI    string                    `json:"category_hi"`
	CategoryGU    string                    `json:"category_gu"`
	Image         string                    `json:"image"`
	ImageLM       [GalleryImageSlots]string `json:"image_lm"`
	Date          string                    `json:"date"`
	DisplayOrder  int                       `json:"display_order"`
	IsActive      bool                      `json:"is_active"`
}

// ParseHeroForm reads a submitted hero form.
func ParseHeroForm(v url.Values) HeroForm {
	return HeroForm{
		TitleEN:    v.Get("title_en"),
		TitleHI:    v.Get("title_hi"),
		TitleGU:    v.Get("title_gu"),
		SubtitleEN: v.Get("subtitle_en"),
		SubtitleHI: v.Get("subtitle_hi"),
		SubtitleGU: v.Get("subtitle_gu"),
	}
}

// ParseActivityForm reads a submitted activity form.
func ParseActivityForm(v url.Values) ActivityForm {
	return ActivityForm{
		ID:            strings.TrimSpace(v.Get("id")),
		TitleEN:       v.Get("title_en"),
		TitleHI:       v.Get("title_hi"),
		TitleGU:       v.Get("title_gu"),
		DescriptionEN: v.Get("description_en"),
		DescriptionHI: v.Get("description_hi"),
		DescriptionGU: v.Get("description_gu"),
		Category:      v.Get("category"),
		IconURL:       v.Get("icon_url"),
		DisplayOrder:  ParseOrder(v.Get("display_order")),
		IsActive:      v.Get("is_active") == "on",
	}
}

// ParseGalleryForm reads a submitted gallery form.
func ParseGalleryForm(v url.Values) GalleryForm {
	f := GalleryForm{
		ID:            strings.TrimSpace(v.Get("id")),
		TitleEN:       v.Get("title_en"),
		TitleHI:       v.Get("title_hi"),
		TitleGU:       v.Get("title_gu"),
		DescriptionEN: v.Get("description_en"),
		DescriptionHI: v.Get("description_hi"),
		DescriptionGU: v.Get("description_gu"),
		QuoteEN:       v.Get("quote_en"),
		QuoteHI:       v.Get("quote_hi"),
		QuoteGU:       v.Get("quote_gu"),
		CategoryEN:    v.Get("category_en"),
		CategoryHI:    v.Get("category_hi"),
		CategoryGU:    v.Get("category_gu"),
		Image:         v.Get("image"),
		Date:          v.Get("date"),
		DisplayOrder:  ParseOrder(v.Get("display_order")),
		IsActive:      v.Get("is_active") == "on",
	}
	for i := range f.ImageLM {
		f.ImageLM[i] = v.Get("image_lm_" + strconv.Itoa(i+1))
	}
	return f
}

// ParseOrder reads the leading integer of s, or 0 when there is none.
// "12abc" is 12 and "abc" is 0.
func ParseOrder(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// ActivityFormFromRecord pre-fills the activity dialog from a backend record.
func ActivityFormFromRecord(r backend.Record) ActivityForm {
	return ActivityForm{
		ID:            r.ID(),
		TitleEN:       r.Get("title_en").String(),
		TitleHI:       r.Get("title_hi").String(),
		TitleGU:       r.Get("title_gu").String(),
		DescriptionEN: r.Get("description_en").String(),
		DescriptionHI: r.Get("description_hi").String(),
		DescriptionGU: r.Get("description_gu").String(),
		Category:      r.Get("category").String(),
		IconURL:       r.Get("icon_url").String(),
		DisplayOrder:  int(r.Get("display_order").Int()),
		IsActive:      r.Truthy("is_active"),
	}
}

// GalleryFormFromRecord pre-fills the gallery dialog from a backend record.
func GalleryFormFromRecord(r backend.Record) GalleryForm {
	f := GalleryForm{
		ID:            r.ID(),
		TitleEN:       r.Get("title_en").String(),
		TitleHI:       r.Get("title_hi").String(),
		TitleGU:       r.Get("title_gu").String(),
		DescriptionEN: r.Get("description_en").String(),
		DescriptionHI: r.Get("description_hi").String(),
		DescriptionGU: r.Get("description_gu").String(),
		QuoteEN:       r.Get("quote_en").String(),
		QuoteHI:       r.Get("quote_hi").String(),
		QuoteGU:       r.Get("quote_gu").String(),
		CategoryEN:    r.Get("category_en").String(),
		CategoryHI:    r.Get("category_hi").String(),
		CategoryGU:    r.Get("category_gu").String(),
		Image:         r.Get("image").String(),
		Date:          r.Get("date").String(),
		DisplayOrder:  int(r.Get("display_order").Int()),
		IsActive:      r.Truthy("is_active"),
	}
	for i := range f.ImageLM {
		f.ImageLM[i] = r.Get("image_lm_" + strconv.Itoa(i+1)).String()
	}
	return f
}
