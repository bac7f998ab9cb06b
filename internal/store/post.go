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

const postColumns = `id, slug, title, summary, content, image, published_at, is_published, created_at, updated_at`

// PostStore handles all blog post database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore. db may be nil when the content
// store is unconfigured; the store then degrades per the package contract.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// ListPublished returns published posts ordered by publish date descending,
// newest first. A limit of 0 means no limit. Failures are logged and an
// empty slice is returned — callers cannot distinguish "no posts" from a
// store failure, which keeps the public site rendering.
func (s *PostStore) ListPublished(limit int) []models.BlogPost {
	if s.db == nil {
		return nil
	}

	query := `
		SELECT ` + postColumns + `
		FROM blog_posts
		WHERE is_published = TRUE
		ORDER BY published_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		slog.Error("list published posts failed", "error", err)
		return nil
	}
	defer rows.Close()

	return scanPosts(rows)
}

// List returns all posts regardless of publish status, ordered by publish
// date descending. Used by the admin panel.
func (s *PostStore) List() []models.BlogPost {
	if s.db == nil {
		return nil
	}

	rows, err := s.db.Query(`
		SELECT ` + postColumns + `
		FROM blog_posts
		ORDER BY published_at DESC`)
	if err != nil {
		slog.Error("list posts failed", "error", err)
		return nil
	}
	defer rows.Close()

	return scanPosts(rows)
}

// FindBySlug retrieves a published post by its slug. Returns nil for an
// unknown slug, an unpublished post, or any store failure.
func (s *PostStore) FindBySlug(slug string) *models.BlogPost {
	if s.db == nil {
		return nil
	}

	p := &models.BlogPost{}
	err := s.db.QueryRow(`
		SELECT `+postColumns+`
		FROM blog_posts WHERE slug = $1 AND is_published = TRUE
	`, slug).Scan(
		&p.ID, &p.Slug, &p.Title, &p.Summary, &p.Content, &p.Image,
		&p.PublishedAt, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		slog.Error("find post by slug failed", "slug", slug, "error", err)
		return nil
	}
	return p
}

// FindByID retrieves a post by ID regardless of publish status. Used by
// the admin edit form. Returns nil if not found or on error.
func (s *PostStore) FindByID(id uuid.UUID) *models.BlogPost {
	if s.db == nil {
		return nil
	}

	p := &models.BlogPost{}
	err := s.db.QueryRow(`
		SELECT `+postColumns+`
		FROM blog_posts WHERE id = $1
	`, id).Scan(
		&p.ID, &p.Slug, &p.Title, &p.Summary, &p.Content, &p.Image,
		&p.PublishedAt, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		slog.Error("find post by id failed", "id", id, "error", err)
		return nil
	}
	return p
}

// Create inserts a new post and returns it with the generated ID and
// store-managed timestamps.
func (s *PostStore) Create(p *models.BlogPost) (*models.BlogPost, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	result := &models.BlogPost{}
	err := s.db.QueryRow(`
		INSERT INTO blog_posts (slug, title, summary, content, image, published_at, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+postColumns,
		p.Slug, p.Title, p.Summary, p.Content, p.Image, p.PublishedAt, p.IsPublished,
	).Scan(
		&result.ID, &result.Slug, &result.Title, &result.Summary, &result.Content,
		&result.Image, &result.PublishedAt, &result.IsPublished,
		&result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// Update modifies an existing post by ID and returns the updated row.
func (s *PostStore) Update(p *models.BlogPost) (*models.BlogPost, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	result := &models.BlogPost{}
	err := s.db.QueryRow(`
		UPDATE blog_posts SET
			slug = $1, title = $2, summary = $3, content = $4, image = $5,
			published_at = $6, is_published = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING `+postColumns,
		p.Slug, p.Title, p.Summary, p.Content, p.Image, p.PublishedAt, p.IsPublished, p.ID,
	).Scan(
		&result.ID, &result.Slug, &result.Title, &result.Summary, &result.Content,
		&result.Image, &result.PublishedAt, &result.IsPublished,
		&result.CreatedAt, &result.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("update post: not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return result, nil
}

// Delete removes a post by ID. The boolean reports whether a row was
// actually deleted, so a second delete of the same ID yields false.
func (s *PostStore) Delete(id uuid.UUID) (bool, error) {
	if s.db == nil {
		return false, ErrUnavailable
	}

	res, err := s.db.Exec(`DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Count returns the number of posts. Used by the admin dashboard.
func (s *PostStore) Count() int {
	if s.db == nil {
		return 0
	}
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM blog_posts`).Scan(&count); err != nil {
		slog.Error("count posts failed", "error", err)
		return 0
	}
	return count
}

// scanPosts reads all rows into a slice, logging and returning what was
// scanned so far on a row error.
func scanPosts(rows *sql.Rows) []models.BlogPost {
	var posts []models.BlogPost
	for rows.Next() {
		var p models.BlogPost
		if err := rows.Scan(
			&p.ID, &p.Slug, &p.Title, &p.Summary, &p.Content, &p.Image,
			&p.PublishedAt, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			slog.Error("scan post failed", "error", err)
			return posts
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		slog.Error("iterate posts failed", "error", err)
	}
	return posts
}
