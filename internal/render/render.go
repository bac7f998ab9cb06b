// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site
// and the admin interface. Templates are embedded in the binary and
// parsed once at startup, each page paired with its area's base layout.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"folio/internal/auth"
	"folio/internal/middleware"
)

//go:embed templates/public/*.html templates/admin/*.html
var templateFS embed.FS

// PageData holds all data passed to templates.
type PageData struct {
	Title     string          // Page title for the <title> tag
	Section   string          // Active nav section (e.g. "blog", "posts")
	Principal *auth.Principal // Signed-in user, nil for visitors
	CSRFToken string          // CSRF token for forms
	Error     string          // Inline error message, shown above forms
	Data      map[string]any  // Page-specific data
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
}

// standaloneTemplates render as full HTML pages without a base layout.
var standaloneTemplates = map[string]bool{
	"admin/login": true,
}

var funcMap = template.FuncMap{
	// deref safely dereferences a string pointer for use in templates.
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	// derefTime safely dereferences a time pointer.
	"derefTime": func(t *time.Time) time.Time {
		if t == nil {
			return time.Time{}
		}
		return *t
	},
	// date formats a time for display.
	"date": func(t time.Time) string {
		return t.Format("Jan 2, 2006")
	},
	// monthYear formats an experience date as e.g. "Mar 2024".
	"monthYear": func(t time.Time) string {
		return t.Format("Jan 2006")
	},
	// dateInput formats a time for <input type="date"> values.
	"dateInput": func(t time.Time) string {
		return t.Format("2006-01-02")
	},
	// safeHTML marks pre-rendered Markdown output as trusted.
	"safeHTML": func(s string) template.HTML {
		return template.HTML(s)
	},
	"activeClass": func(current, target string) string {
		if current == target {
			return "active"
		}
		return ""
	},
}

// New creates a Renderer by parsing all templates from the embedded
// filesystem. Page templates are keyed by "area/name", e.g. "public/home"
// or "admin/posts".
func New() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}

	for _, area := range []string{"public", "admin"} {
		entries, err := templateFS.ReadDir("templates/" + area)
		if err != nil {
			return nil, fmt.Errorf("read embedded templates: %w", err)
		}

		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || name == "base.html" {
				continue
			}

			key := area + "/" + name[:len(name)-len(".html")]

			var tmpl *template.Template
			var parseErr error
			if standaloneTemplates[key] {
				tmpl, parseErr = template.New(name).Funcs(funcMap).ParseFS(
					templateFS, "templates/"+area+"/"+name,
				)
			} else {
				tmpl, parseErr = template.New("base.html").Funcs(funcMap).ParseFS(
					templateFS, "templates/"+area+"/base.html", "templates/"+area+"/"+name,
				)
			}
			if parseErr != nil {
				return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
			}

			r.templates[key] = tmpl
		}
	}

	return r, nil
}

// Page renders the named template as a full page. The CSRF token and
// signed-in principal are filled in from the request when not already set.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = &PageData{}
	}
	if data.CSRFToken == "" {
		data.CSRFToken = middleware.GetCSRFToken(r)
	}
	if data.Principal == nil {
		data.Principal = middleware.PrincipalFromCtx(r.Context())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	execName := "base.html"
	if standaloneTemplates[name] {
		execName = tmpl.Name()
	}

	if err := tmpl.ExecuteTemplate(w, execName, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// NotFound renders the public 404 page.
func (rn *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	tmpl, ok := rn.templates["public/error"]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	tmpl.ExecuteTemplate(w, "base.html", &PageData{Title: "Page not found"})
}
