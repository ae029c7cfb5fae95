// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web embeds the console's page templates and stylesheet.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var templates embed.FS

//go:embed all:static/dist
var static embed.FS

// Templates returns the template tree rooted at templates/, as the
// renderer expects it.
func Templates() fs.FS {
	return mustSub(templates, "templates")
}

// Static returns the files served under /static/.
func Static() fs.FS {
	return mustSub(static, "static/dist")
}

// mustSub panics only if dir is not a valid path, which the embed
// patterns above rule out.
func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
