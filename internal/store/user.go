package store

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"folio/internal/models"
)

// UserStore handles sign-in account lookups and password verification.
// Unlike the content stores, its reads return errors: the auth layer
// needs to distinguish "unknown user" from "store unreachable".
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore. db may be nil when the content
// store is unconfigured; every method then returns ErrUnavailable.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByEmail retrieves a user by email. Returns (nil, nil) if not found.
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	u := &models.User{}
	err := s.db.QueryRow(`
		SELECT id, email, password_hash, created_at, updated_at
		FROM users WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// Create inserts a new user with a bcrypt-hashed password.
func (s *UserStore) Create(email, password string) (*models.User, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{}
	err = s.db.QueryRow(`
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, email, password_hash, created_at, updated_at
	`, email, string(hash)).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// CheckPassword verifies a plaintext password against the user's stored hash.
func (s *UserStore) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
