// Package store provides database access for the portfolio's content
// types. Each store struct wraps a *sql.DB and exposes typed query methods.
//
// The database handle may be nil when the content store is unconfigured.
// Read methods then soft-fail: they log and return empty results so the
// public site still renders with empty sections. Mutations instead return
// ErrUnavailable, so the admin panel can show a real failure.
package store

import "errors"

// ErrUnavailable is returned by mutations when no content store is
// configured or reachable.
var ErrUnavailable = errors.New("content store not configured")
