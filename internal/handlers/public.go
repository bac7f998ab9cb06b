// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the folio site.
// Handlers are grouped by concern (public, auth, admin) and receive
// their dependencies through the handler struct.
package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"folio/internal/contact"
	"folio/internal/markdown"
	"folio/internal/render"
	"folio/internal/store"
)

// Public groups the visitor-facing HTTP handlers. Every read goes
// through a store that degrades to empty results, so public pages
// always render, just with empty sections, when the backend is down.
type Public struct {
	renderer    *render.Renderer
	posts       *store.PostStore
	projects    *store.ProjectStore
	experiences *store.ExperienceStore
	contact     *contact.Client
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, posts *store.PostStore, projects *store.ProjectStore, experiences *store.ExperienceStore, contactClient *contact.Client) *Public {
	return &Public{
		renderer:    renderer,
		posts:       posts,
		projects:    projects,
		experiences: experiences,
		contact:     contactClient,
	}
}

// homeRecentPosts caps the post list on the home page.
const homeRecentPosts = 5

// Home renders the landing page: current role, work history, recent posts.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	p.renderer.Page(w, r, "public/home", &render.PageData{
		Title:   "Home",
		Section: "home",
		Data: map[string]any{
			"Current":  p.experiences.Current(),
			"Previous": p.experiences.Previous(),
			"Posts":    p.posts.ListPublished(homeRecentPosts),
		},
	})
}

// Blog renders the published post index, newest first.
func (p *Public) Blog(w http.ResponseWriter, r *http.Request) {
	p.renderer.Page(w, r, "public/blog", &render.PageData{
		Title:   "Blog",
		Section: "blog",
		Data:    map[string]any{"Posts": p.posts.ListPublished(0)},
	})
}

// BlogPost renders a single published post, or 404.
func (p *Public) BlogPost(w http.ResponseWriter, r *http.Request) {
	post := p.posts.FindBySlug(chi.URLParam(r, "slug"))
	if post == nil {
		p.renderer.NotFound(w, r)
		return
	}

	body, err := markdown.ToHTML(post.Content)
	if err != nil {
		slog.Error("render post body failed", "slug", post.Slug, "error", err)
	}

	p.renderer.Page(w, r, "public/blog_post", &render.PageData{
		Title:   post.Title,
		Section: "blog",
		Data:    map[string]any{"Post": post, "Body": body},
	})
}

// Projects renders the published project index.
func (p *Public) Projects(w http.ResponseWriter, r *http.Request) {
	p.renderer.Page(w, r, "public/projects", &render.PageData{
		Title:   "Projects",
		Section: "projects",
		Data:    map[string]any{"Projects": p.projects.ListPublished(0)},
	})
}

// Project renders a single published project, or 404.
func (p *Public) Project(w http.ResponseWriter, r *http.Request) {
	project := p.projects.FindBySlug(chi.URLParam(r, "slug"))
	if project == nil {
		p.renderer.NotFound(w, r)
		return
	}

	body, err := markdown.ToHTML(project.Content)
	if err != nil {
		slog.Error("render project body failed", "slug", project.Slug, "error", err)
	}

	p.renderer.Page(w, r, "public/project", &render.PageData{
		Title:   project.Title,
		Section: "projects",
		Data:    map[string]any{"Project": project, "Body": body},
	})
}

// ContactPage renders the contact form.
func (p *Public) ContactPage(w http.ResponseWriter, r *http.Request) {
	p.renderer.Page(w, r, "public/contact", &render.PageData{
		Title:   "Contact",
		Section: "contact",
		Data:    map[string]any{},
	})
}

// ContactSubmit relays a contact form submission through Web3Forms.
// Failures re-render the form with the inputs preserved and the
// relay's message shown inline.
func (p *Public) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	message := strings.TrimSpace(r.FormValue("message"))

	data := map[string]any{"Name": name, "Email": email, "Message": message}

	if errMsg := validateContactForm(name, email, message); errMsg != "" {
		p.renderer.Page(w, r, "public/contact", &render.PageData{
			Title:   "Contact",
			Section: "contact",
			Error:   errMsg,
			Data:    data,
		})
		return
	}

	if err := p.contact.Send(r.Context(), name, email, message); err != nil {
		slog.Error("contact relay failed", "error", err)
		p.renderer.Page(w, r, "public/contact", &render.PageData{
			Title:   "Contact",
			Section: "contact",
			Error:   err.Error(),
			Data:    data,
		})
		return
	}

	p.renderer.Page(w, r, "public/contact", &render.PageData{
		Title:   "Contact",
		Section: "contact",
		Data:    map[string]any{"Sent": true},
	})
}
