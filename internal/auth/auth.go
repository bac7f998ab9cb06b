// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth implements credential verification, the admin
// authorization gate, and auth state change notifications.
//
// Authorization is deliberately minimal: a principal is an admin iff
// their email exactly matches the single configured admin address.
// No roles, no allow-lists. An empty configured address means nobody
// is an admin.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"folio/internal/session"
	"folio/internal/store"
)

// Principal identifies an authenticated user.
type Principal struct {
	ID    uuid.UUID
	Email string
}

// AuthError carries a user-visible sign-in failure message. The login
// form shows Message verbatim.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// Sign-in failure messages. Wrong password and unknown user share one
// message so the form does not leak which emails have accounts.
const (
	msgInvalidCredentials = "Invalid login credentials"
	msgServiceUnavailable = "Sign-in is temporarily unavailable"
)

// Service is the authorization gate. It verifies credentials against
// the user store, tracks the active session, and answers the single
// question the admin panel cares about: is this principal the admin?
type Service struct {
	users      *store.UserStore
	sessions   *session.Store
	adminEmail string
	notifier   *Notifier
}

// NewService creates the auth service. adminEmail may be empty, in
// which case IsAdmin always returns false.
func NewService(users *store.UserStore, sessions *session.Store, adminEmail string, notifier *Notifier) *Service {
	return &Service{
		users:      users,
		sessions:   sessions,
		adminEmail: adminEmail,
		notifier:   notifier,
	}
}

// SignIn verifies the credentials and, on success, creates a session
// and sets its cookie on w. Every failure comes back as an *AuthError
// whose message is safe to show on the login form.
func (s *Service) SignIn(ctx context.Context, w http.ResponseWriter, email, password string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if !errors.Is(err, store.ErrUnavailable) {
			slog.Error("sign-in lookup failed", "error", err)
		}
		return &AuthError{Message: msgServiceUnavailable}
	}
	if user == nil || !s.users.CheckPassword(user, password) {
		return &AuthError{Message: msgInvalidCredentials}
	}

	if _, err := s.sessions.Create(ctx, w, &session.Data{
		UserID: user.ID,
		Email:  user.Email,
	}); err != nil {
		if !errors.Is(err, session.ErrUnavailable) {
			slog.Error("session create failed", "error", err)
		}
		return &AuthError{Message: msgServiceUnavailable}
	}

	s.notifier.Notify(&Principal{ID: user.ID, Email: user.Email})
	return nil
}

// SignOut destroys the session referenced by the request, if any, and
// clears the cookie. Idempotent: signing out without a session is a no-op.
func (s *Service) SignOut(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Destroy(ctx, w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
	}
	s.notifier.Notify(nil)
}

// CurrentPrincipal resolves the request's session to a principal.
// Returns (nil, nil) when there is no active session; an error only
// when the session backend itself fails.
func (s *Service) CurrentPrincipal(ctx context.Context, r *http.Request) (*Principal, error) {
	data, err := s.sessions.Get(ctx, r)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return &Principal{ID: data.UserID, Email: data.Email}, nil
}

// IsAdmin reports whether the principal is the configured admin.
// The comparison is an exact, case-sensitive string match. Fails
// closed: a nil principal or an unconfigured admin email is never
// an admin.
func (s *Service) IsAdmin(p *Principal) bool {
	if p == nil || s.adminEmail == "" {
		return false
	}
	return p.Email == s.adminEmail
}

// Notifier returns the service's auth state notifier.
func (s *Service) Notifier() *Notifier {
	return s.notifier
}
