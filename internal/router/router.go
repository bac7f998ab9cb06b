// Package router sets up all HTTP routes and middleware chains for the
// folio server. Routes are organized into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"folio/internal/auth"
	"folio/internal/handlers"
	"folio/internal/middleware"
	"folio/internal/session"
	"folio/web"
)

// Deps carries everything the router needs wired up.
type Deps struct {
	Sessions    *session.Store
	AuthService *auth.Service
	Public      *handlers.Public
	Auth        *handlers.Auth
	Admin       *handlers.Admin
	SecureCSRF  bool
}

// Rate limits for the abuse-prone endpoints.
const (
	loginAttemptsPerWindow   = 10
	contactMessagesPerWindow = 5
	limiterWindow            = 10 * time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(d.Sessions, d.AuthService.Notifier()))

	// Health check. No auth, no CSRF.
	r.Get("/health", healthHandler)

	// Embedded static assets.
	staticRoot, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))))

	csrf := middleware.NewCSRF(d.SecureCSRF)
	loginLimiter := middleware.NewRateLimiter(loginAttemptsPerWindow, limiterWindow)
	contactLimiter := middleware.NewRateLimiter(contactMessagesPerWindow, limiterWindow)

	// Public site.
	r.Group(func(r chi.Router) {
		r.Use(csrf)

		r.Get("/", d.Public.Home)
		r.Get("/blog", d.Public.Blog)
		r.Get("/blog/{slug}", d.Public.BlogPost)
		r.Get("/projects", d.Public.Projects)
		r.Get("/projects/{slug}", d.Public.Project)
		r.Get("/contact", d.Public.ContactPage)
		r.With(contactLimiter.Middleware).Post("/contact", d.Public.ContactSubmit)
	})

	// Admin panel. CSRF everywhere, auth and the admin gate past login.
	r.Route("/admin", func(r chi.Router) {
		r.Use(csrf)

		r.Get("/login", d.Auth.LoginPage)
		r.With(loginLimiter.Middleware).Post("/login", d.Auth.LoginSubmit)
		r.Post("/logout", d.Auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireAdmin(d.AuthService))

			r.Get("/", d.Admin.Dashboard)
			r.Get("/dashboard", d.Admin.Dashboard)

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", d.Admin.PostsList)
				r.Get("/new", d.Admin.PostNew)
				r.Post("/", d.Admin.PostCreate)
				r.Get("/{id}/edit", d.Admin.PostEdit)
				r.Post("/{id}", d.Admin.PostUpdate)
				r.Post("/{id}/delete", d.Admin.PostDelete)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", d.Admin.ProjectsList)
				r.Get("/new", d.Admin.ProjectNew)
				r.Post("/", d.Admin.ProjectCreate)
				r.Get("/{id}/edit", d.Admin.ProjectEdit)
				r.Post("/{id}", d.Admin.ProjectUpdate)
				r.Post("/{id}/delete", d.Admin.ProjectDelete)
			})

			r.Route("/experience", func(r chi.Router) {
				r.Get("/", d.Admin.ExperienceList)
				r.Get("/new", d.Admin.ExperienceNew)
				r.Post("/", d.Admin.ExperienceCreate)
				r.Get("/{id}/edit", d.Admin.ExperienceEdit)
				r.Post("/{id}", d.Admin.ExperienceUpdate)
				r.Post("/{id}/current", d.Admin.ExperienceSetCurrent)
				r.Post("/{id}/delete", d.Admin.ExperienceDelete)
			})

			r.Route("/media", func(r chi.Router) {
				r.Get("/", d.Admin.MediaList)
				r.Post("/upload", d.Admin.MediaUpload)
				r.Post("/{id}/delete", d.Admin.MediaDelete)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
