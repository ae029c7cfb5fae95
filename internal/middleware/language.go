// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"github.com/olegiv/jvadmin/internal/i18n"
)

// Language resolves the active form tab language. Priority order:
// 1. Query parameter ?lang=XX when it is a content language
// 2. Accept-Language header
// 3. i18n.DefaultLanguage
func Language(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := i18n.ActiveLanguage(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
		ctx := context.WithValue(r.Context(), ContextKeyLanguage, lang)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetLanguage returns the language chosen by Language, or the default.
func GetLanguage(ctx context.Context) string {
	lang, ok := ctx.Value(ContextKeyLanguage).(string)
	if !ok || lang == "" {
		return i18n.DefaultLanguage
	}
	return lang
}
