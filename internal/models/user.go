package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an admin account. The site has exactly one in practice, seeded
// from configuration, but nothing in the schema enforces that.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
