package handlers

import (
	"errors"
	"net/http"

	"folio/internal/auth"
	"folio/internal/middleware"
	"folio/internal/render"
)

// Auth groups the sign-in and sign-out HTTP handlers.
type Auth struct {
	renderer *render.Renderer
	service  *auth.Service
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, service *auth.Service) *Auth {
	return &Auth{renderer: renderer, service: service}
}

// LoginPage renders the login form. An already signed-in user goes
// straight to the dashboard.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.PrincipalFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "admin/login", &render.PageData{Title: "Sign In"})
}

// LoginSubmit processes the login form. Sign-in failures re-render the
// form with the failure message shown verbatim.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if err := a.service.SignIn(r.Context(), w, email, password); err != nil {
		msg := "Sign-in failed."
		var authErr *auth.AuthError
		if errors.As(err, &authErr) {
			msg = authErr.Message
		}
		a.renderer.Page(w, r, "admin/login", &render.PageData{
			Title: "Sign In",
			Error: msg,
		})
		return
	}

	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// Logout destroys the session and returns to the login form.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.service.SignOut(r.Context(), w, r)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
