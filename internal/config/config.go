// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible session store)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Admin access. Only a signed-in user whose email exactly equals
	// AdminEmail may use the admin panel. AdminPassword is used solely
	// for seeding the account in development.
	AdminEmail    string
	AdminPassword string

	// Web3Forms contact form relay
	Web3FormsKey string

	// S3-compatible object storage for uploaded images (optional)
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
//
// Values still carrying a "your-" setup placeholder are treated as unset,
// so a freshly cloned .env does not look like a configured backend.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "folio"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "folio"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AdminEmail:    realValue("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		Web3FormsKey: realValue("WEB3FORMS_ACCESS_KEY"),

		S3Endpoint:  realValue("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "fsn1"),
		S3AccessKey: realValue("S3_ACCESS_KEY"),
		S3SecretKey: realValue("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "folio-media"),
		S3PublicURL: realValue("S3_PUBLIC_URL"),
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.AdminEmail == "" {
			return nil, fmt.Errorf("ADMIN_EMAIL must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// StoreConfigured reports whether the content store connection looks
// usable. A host or database name left as a setup placeholder means the
// site runs in degraded mode: public pages render with empty sections.
func (c *Config) StoreConfigured() bool {
	return !isPlaceholder(c.DBHost) && !isPlaceholder(c.DBUser) && !isPlaceholder(c.DBName)
}

// StorageConfigured reports whether the S3 media storage is usable.
func (c *Config) StorageConfigured() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// realValue reads an environment variable and returns "" for setup
// placeholders so downstream code sees them as unconfigured.
func realValue(key string) string {
	v := os.Getenv(key)
	if isPlaceholder(v) {
		return ""
	}
	return v
}

// isPlaceholder reports whether a value still looks like a template from
// the example environment file (e.g. "your-admin@example.com").
func isPlaceholder(v string) bool {
	return strings.Contains(v, "your-")
}
