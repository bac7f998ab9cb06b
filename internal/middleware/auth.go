// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"fmt"
	"html"
	"net/http"

	"folio/internal/auth"
	"folio/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// principalKey is the context key for the resolved principal.
const principalKey contextKey = "principal"

// LoadSession resolves the request's session to a principal and stores
// it in the request context. It does NOT enforce authentication.
//
// A session cookie that no longer resolves (expired or evicted in
// Valkey) is cleared, and subscribers are told the user signed out.
func LoadSession(sessions *session.Store, notifier *auth.Notifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := sessions.Get(r.Context(), r)
			if err != nil {
				// Session backend failure: treat as unauthenticated.
				next.ServeHTTP(w, r)
				return
			}

			if data == nil {
				if sessions.HasCookie(r) {
					// Stale cookie for an expired session.
					sessions.Destroy(r.Context(), w, r)
					notifier.Notify(nil)
				}
				next.ServeHTTP(w, r)
				return
			}

			p := &auth.Principal{ID: data.UserID, Email: data.Email}
			r = r.WithContext(context.WithValue(r.Context(), principalKey, p))
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth redirects unauthenticated users to the login page.
// Must be applied after LoadSession in the middleware chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if PrincipalFromCtx(r.Context()) == nil {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin answers 403 when the authenticated user is not the
// configured admin. The page offers a sign-out escape so a wrong
// account can get back to the login form. Must be applied after
// RequireAuth.
func RequireAdmin(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := PrincipalFromCtx(r.Context())
			if p == nil {
				http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
				return
			}
			if !svc.IsAdmin(p) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(http.StatusForbidden)
				fmt.Fprintf(w, unauthorizedPage, html.EscapeString(p.Email), html.EscapeString(GetCSRFToken(r)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// PrincipalFromCtx extracts the principal from the request context.
// Returns nil if no session was loaded.
func PrincipalFromCtx(ctx context.Context) *auth.Principal {
	p, _ := ctx.Value(principalKey).(*auth.Principal)
	return p
}

const unauthorizedPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Not Authorized</title></head>
<body>
<h1>Not authorized</h1>
<p>The account %s does not have access to the admin panel.</p>
<form method="post" action="/admin/logout">
<input type="hidden" name="csrf_token" value="%s">
<button type="submit">Sign out</button>
</form>
</body>
</html>
`
