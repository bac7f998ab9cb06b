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

const projectColumns = `id, slug, title, summary, content, image, tech, github_url, demo_url, published_at, is_published, created_at, updated_at`

// ProjectStore handles all project database operations. It mirrors the
// PostStore contract over the projects table.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore. db may be nil when the
// content store is unconfigured.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// ListPublished returns published projects, newest first. A limit of 0
// means no limit. Failures soft-fail to an empty slice.
func (s *ProjectStore) ListPublished(limit int) []models.Project {
	if s.db == nil {
		return nil
	}

	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE is_published = TRUE
		ORDER BY published_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		slog.Error("list published projects failed", "error", err)
		return nil
	}
	defer rows.Close()

	return scanProjects(rows)
}

// List returns all projects regardless of publish status, newest first.
func (s *ProjectStore) List() []models.Project {
	if s.db == nil {
		return nil
	}

	rows, err := s.db.Query(`
		SELECT ` + projectColumns + `
		FROM projects
		ORDER BY published_at DESC`)
	if err != nil {
		slog.Error("list projects failed", "error", err)
		return nil
	}
	defer rows.Close()

	return scanProjects(rows)
}

// FindBySlug retrieves a published project by slug. Returns nil for an
// unknown slug, an unpublished project, or any store failure.
func (s *ProjectStore) FindBySlug(slug string) *models.Project {
	if s.db == nil {
		return nil
	}

	p := &models.Project{}
	err := s.db.QueryRow(`
		SELECT `+projectColumns+`
		FROM projects WHERE slug = $1 AND is_published = TRUE
	`, slug).Scan(
		&p.ID, &p.Slug, &p.Title, &p.Summary, &p.Content, &p.Image,
		&p.Tech, &p.GithubURL, &p.DemoURL,
		&p.PublishedAt, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		slog.Error("find project by slug failed", "slug", slug, "error", err)
		return nil
	}
	return p
}

// FindByID retrieves a project by ID regardless of publish status.
func (s *ProjectStore) FindByID(id uuid.UUID) *models.Project {
	if s.db == nil {
		return nil
	}

	p := &models.Project{}
	err := s.db.QueryRow(`
		SELECT `+projectColumns+`
		FROM projects WHERE id = $1
	`, id).Scan(
		&p.ID, &p.Slug, &p.Title, &p.Summary, &p.Content, &p.Image,
		&p.Tech, &p.GithubURL, &p.DemoURL,
		&p.PublishedAt, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		slog.Error("find project by id failed", "id", id, "error", err)
		return nil
	}
	return p
}

// Create inserts a new project and returns it with generated fields.
func (s *ProjectStore) Create(p *models.Project) (*models.Project, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	result := &models.Project{}
	err := s.db.QueryRow(`
		INSERT INTO projects (slug, title, summary, content, image, tech, github_url, demo_url, published_at, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+projectColumns,
		p.Slug, p.Title, p.Summary, p.Content, p.Image, p.Tech, p.GithubURL, p.DemoURL,
		p.PublishedAt, p.IsPublished,
	).Scan(
		&result.ID, &result.Slug, &result.Title, &result.Summary, &result.Content,
		&result.Image, &result.Tech, &result.GithubURL, &result.DemoURL,
		&result.PublishedAt, &result.IsPublished, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return result, nil
}

// Update modifies an existing project by ID and returns the updated row.
func (s *ProjectStore) Update(p *models.Project) (*models.Project, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	result := &models.Project{}
	err := s.db.QueryRow(`
		UPDATE projects SET
			slug = $1, title = $2, summary = $3, content = $4, image = $5,
			tech = $6, github_url = $7, demo_url = $8,
			published_at = $9, is_published = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING `+projectColumns,
		p.Slug, p.Title, p.Summary, p.Content, p.Image, p.Tech, p.GithubURL, p.DemoURL,
		p.PublishedAt, p.IsPublished, p.ID,
	).Scan(
		&result.ID, &result.Slug, &result.Title, &result.Summary, &result.Content,
		&result.Image, &result.Tech, &result.GithubURL, &result.DemoURL,
		&result.PublishedAt, &result.IsPublished, &result.CreatedAt, &result.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("update project: not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return result, nil
}

// Delete removes a project by ID. The boolean reports whether a row was
// actually deleted.
func (s *ProjectStore) Delete(id uuid.UUID) (bool, error) {
	if s.db == nil {
		return false, ErrUnavailable
	}

	res, err := s.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Count returns the number of projects. Used by the admin dashboard.
func (s *ProjectStore) Count() int {
	if s.db == nil {
		return 0
	}
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		slog.Error("count projects failed", "error", err)
		return 0
	}
	return count
}

func scanProjects(rows *sql.Rows) []models.Project {
	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(
			&p.ID, &p.Slug, &p.Title, &p.Summary, &p.Content, &p.Image,
			&p.Tech, &p.GithubURL, &p.DemoURL,
			&p.PublishedAt, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			slog.Error("scan project failed", "error", err)
			return projects
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		slog.Error("iterate projects failed", "error", err)
	}
	return projects
}
