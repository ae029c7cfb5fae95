// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n knows the content languages edited in the console and picks
// the language tab shown first.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DefaultLanguage is used when nothing else matches.
const DefaultLanguage = "en"

// SupportedLanguages lists the content languages, in tab order.
var SupportedLanguages = []string{"en", "hi", "gu"}

var (
	supportedTags = []language.Tag{language.English, language.Hindi, language.Gujarati}
	matcher       = language.NewMatcher(supportedTags)
)

// Tab is one language tab in a form.
type Tab struct {
	Code   string
	Label  string
	Active bool
}

// IsSupported checks if a language code is a content language.
func IsSupported(lang string) bool {
	lang = strings.ToLower(lang)
	for _, supported := range SupportedLanguages {
		if supported == lang {
			return true
		}
	}
	return false
}

// Name returns the language's name in itself, e.g. "English".
// Unknown codes are returned unchanged.
func Name(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return lang
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return lang
}

// MatchLanguage finds the best content language for an Accept-Language
// header value.
func MatchLanguage(acceptLang string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}

	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(SupportedLanguages) {
		return DefaultLanguage
	}
	return SupportedLanguages[idx]
}

// ActiveLanguage picks the first tab: the requested language when it is
// supported, then the Accept-Language match, then the default.
func ActiveLanguage(requested, acceptLang string) string {
	if IsSupported(requested) {
		return strings.ToLower(requested)
	}
	return MatchLanguage(acceptLang)
}

// Tabs returns one tab per content language with active marked.
func Tabs(active string) []Tab {
	if !IsSupported(active) {
		active = DefaultLanguage
	}
	tabs := make([]Tab, 0, len(SupportedLanguages))
	for _, code := range SupportedLanguages {
		tabs = append(tabs, Tab{Code: code, Label: Name(code), Active: code == active})
	}
	return tabs
}
