package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed creates the admin sign-in account if the users table is empty.
// The email and password come from ADMIN_EMAIL/ADMIN_PASSWORD; when either
// is missing the seed is skipped, since without a matching admin email the
// panel stays locked anyway.
func Seed(db *sql.DB, adminEmail, adminPassword string) error {
	if adminEmail == "" || adminPassword == "" {
		slog.Warn("admin credentials not configured, skipping seed")
		return nil
	}

	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
	`, adminEmail, string(hash))
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with admin user", "email", adminEmail)
	return nil
}
