// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import "testing"

func TestIsSupported(t *testing.T) {
	tests := []struct {
		lang string
		want bool
	}{
		{"en", true},
		{"hi", true},
		{"gu", true},
		{"GU", true},
		{"ru", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsSupported(tt.lang); got != tt.want {
			t.Errorf("IsSupported(%q) = %v, want %v", tt.lang, got, tt.want)
		}
	}
}

func TestName(t *testing.T) {
	if got := Name("en"); got != "English" {
		t.Errorf("Name(en) = %q, want English", got)
	}
	for _, code := range []string{"hi", "gu"} {
		if got := Name(code); got == "" || got == code {
			t.Errorf("Name(%q) = %q, want a native name", code, got)
		}
	}
	if got := Name("not a tag!"); got != "not a tag!" {
		t.Errorf("Name(invalid) = %q", got)
	}
}

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"hi-IN,hi;q=0.9,en;q=0.8", "hi"},
		{"gu", "gu"},
		{"fr-FR,fr;q=0.9", "en"},
		{"de;q=0.9, gu;q=0.5", "gu"},
		{"!!garbage", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			if got := MatchLanguage(tt.header); got != tt.want {
				t.Errorf("MatchLanguage(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestActiveLanguage(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		header    string
		want      string
	}{
		{"query wins", "gu", "hi", "gu"},
		{"unsupported query falls to header", "ru", "hi", "hi"},
		{"nothing", "", "", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ActiveLanguage(tt.requested, tt.header); got != tt.want {
				t.Errorf("ActiveLanguage(%q, %q) = %q, want %q", tt.requested, tt.header, got, tt.want)
			}
		})
	}
}

func TestTabs(t *testing.T) {
	tabs := Tabs("hi")
	if len(tabs) != 3 {
		t.Fatalf("tabs = %d, want 3", len(tabs))
	}

	active := 0
	for _, tab := range tabs {
		if tab.Active {
			active++
			if tab.Code != "hi" {
				t.Errorf("active tab = %q, want hi", tab.Code)
			}
		}
	}
	if active != 1 {
		t.Errorf("active tabs = %d, want 1", active)
	}
	if tabs[0].Code != "en" || tabs[0].Label != "English" {
		t.Errorf("tabs[0] = %+v", tabs[0])
	}

	if fallback := Tabs("xx"); !fallback[0].Active {
		t.Error("unsupported active language should fall back to en")
	}
}
