// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"folio/internal/models"
)

// MediaStore tracks images uploaded to object storage. The admin panel
// lists them so their public URLs can be pasted into post and project
// image fields.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore creates a new MediaStore. db may be nil when the content
// store is unconfigured.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

// List returns all media records, newest first.
func (s *MediaStore) List() []models.Media {
	if s.db == nil {
		return nil
	}

	rows, err := s.db.Query(`
		SELECT id, filename, s3_key, content_type, size_bytes, created_at
		FROM media ORDER BY created_at DESC`)
	if err != nil {
		slog.Error("list media failed", "error", err)
		return nil
	}
	defer rows.Close()

	var items []models.Media
	for rows.Next() {
		var m models.Media
		if err := rows.Scan(&m.ID, &m.Filename, &m.S3Key, &m.ContentType, &m.SizeBytes, &m.CreatedAt); err != nil {
			slog.Error("scan media failed", "error", err)
			return items
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		slog.Error("iterate media failed", "error", err)
	}
	return items
}

// FindByID retrieves a media record. Returns nil if not found or on error.
func (s *MediaStore) FindByID(id uuid.UUID) *models.Media {
	if s.db == nil {
		return nil
	}

	m := &models.Media{}
	err := s.db.QueryRow(`
		SELECT id, filename, s3_key, content_type, size_bytes, created_at
		FROM media WHERE id = $1
	`, id).Scan(&m.ID, &m.Filename, &m.S3Key, &m.ContentType, &m.SizeBytes, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		slog.Error("find media by id failed", "id", id, "error", err)
		return nil
	}
	return m
}

// Create records an uploaded object.
func (s *MediaStore) Create(m *models.Media) (*models.Media, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	result := &models.Media{}
	err := s.db.QueryRow(`
		INSERT INTO media (filename, s3_key, content_type, size_bytes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, filename, s3_key, content_type, size_bytes, created_at
	`, m.Filename, m.S3Key, m.ContentType, m.SizeBytes,
	).Scan(&result.ID, &result.Filename, &result.S3Key, &result.ContentType, &result.SizeBytes, &result.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return result, nil
}

// Delete removes a media record by ID. The boolean reports whether a row
// was actually deleted.
func (s *MediaStore) Delete(id uuid.UUID) (bool, error) {
	if s.db == nil {
		return false, ErrUnavailable
	}

	res, err := s.db.Exec(`DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete media: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
