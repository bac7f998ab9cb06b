// Package web provides embedded static assets (CSS) for the public site
// and the admin interface, served at /static/.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree.
//
//go:embed all:static
var StaticFS embed.FS
