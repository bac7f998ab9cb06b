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

const experienceColumns = `id, company_name, company_url, position, location, favicon_url, start_date, end_date, is_current, display_order, created_at, updated_at`

// ExperienceStore handles the work experience table. Besides plain CRUD
// it owns the single-current invariant: at most one row may have
// is_current = TRUE. Every write that marks a row current runs inside a
// transaction that first clears the flag everywhere else, and a partial
// unique index on is_current rejects the losing side if two admin
// sessions race the swap.
type ExperienceStore struct {
	db *sql.DB
}

// NewExperienceStore creates a new ExperienceStore. db may be nil when
// the content store is unconfigured.
func NewExperienceStore(db *sql.DB) *ExperienceStore {
	return &ExperienceStore{db: db}
}

// List returns all entries ordered by display_order ascending. Gaps and
// duplicate orders are permitted; ties fall back to store order.
func (s *ExperienceStore) List() []models.WorkExperience {
	if s.db == nil {
		return nil
	}

	rows, err := s.db.Query(`
		SELECT ` + experienceColumns + `
		FROM work_experience
		ORDER BY display_order ASC`)
	if err != nil {
		slog.Error("list work experience failed", "error", err)
		return nil
	}
	defer rows.Close()

	return scanExperiences(rows)
}

// Current returns the single entry marked current, or nil when none is.
func (s *ExperienceStore) Current() *models.WorkExperience {
	if s.db == nil {
		return nil
	}

	e := &models.WorkExperience{}
	err := s.db.QueryRow(`
		SELECT ` + experienceColumns + `
		FROM work_experience WHERE is_current = TRUE
	`).Scan(
		&e.ID, &e.CompanyName, &e.CompanyURL, &e.Position, &e.Location, &e.FaviconURL,
		&e.StartDate, &e.EndDate, &e.IsCurrent, &e.DisplayOrder, &e.CreatedAt, &e.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		slog.Error("find current work experience failed", "error", err)
		return nil
	}
	return e
}

// Previous returns all non-current entries ordered by display_order.
func (s *ExperienceStore) Previous() []models.WorkExperience {
	if s.db == nil {
		return nil
	}

	rows, err := s.db.Query(`
		SELECT ` + experienceColumns + `
		FROM work_experience
		WHERE is_current = FALSE
		ORDER BY display_order ASC`)
	if err != nil {
		slog.Error("list previous work experience failed", "error", err)
		return nil
	}
	defer rows.Close()

	return scanExperiences(rows)
}

// FindByID retrieves an entry by ID. Returns nil if not found or on error.
func (s *ExperienceStore) FindByID(id uuid.UUID) *models.WorkExperience {
	if s.db == nil {
		return nil
	}

	e := &models.WorkExperience{}
	err := s.db.QueryRow(`
		SELECT `+experienceColumns+`
		FROM work_experience WHERE id = $1
	`, id).Scan(
		&e.ID, &e.CompanyName, &e.CompanyURL, &e.Position, &e.Location, &e.FaviconURL,
		&e.StartDate, &e.EndDate, &e.IsCurrent, &e.DisplayOrder, &e.CreatedAt, &e.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		slog.Error("find work experience by id failed", "id", id, "error", err)
		return nil
	}
	return e
}

// Create inserts a new entry. When e.IsCurrent is set, the insert happens
// in a transaction that clears is_current on every other row first, and
// the new row's end date is forced to NULL.
func (s *ExperienceStore) Create(e *models.WorkExperience) (*models.WorkExperience, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	if e.IsCurrent {
		e.EndDate = nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create work experience: begin: %w", err)
	}
	defer tx.Rollback()

	if e.IsCurrent {
		if _, err := tx.Exec(`
			UPDATE work_experience SET is_current = FALSE, updated_at = NOW()
			WHERE is_current = TRUE
		`); err != nil {
			return nil, fmt.Errorf("create work experience: clear current: %w", err)
		}
	}

	result := &models.WorkExperience{}
	err = tx.QueryRow(`
		INSERT INTO work_experience (company_name, company_url, position, location, favicon_url, start_date, end_date, is_current, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+experienceColumns,
		e.CompanyName, e.CompanyURL, e.Position, e.Location, e.FaviconURL,
		e.StartDate, e.EndDate, e.IsCurrent, e.DisplayOrder,
	).Scan(
		&result.ID, &result.CompanyName, &result.CompanyURL, &result.Position, &result.Location,
		&result.FaviconURL, &result.StartDate, &result.EndDate, &result.IsCurrent,
		&result.DisplayOrder, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create work experience: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create work experience: commit: %w", err)
	}
	return result, nil
}

// Update modifies an entry by ID under the same invariant rules as Create.
// Setting IsCurrent to false is a plain update and may leave the table
// with zero current entries; the end date then stays whatever the caller
// supplied.
func (s *ExperienceStore) Update(e *models.WorkExperience) (*models.WorkExperience, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	if e.IsCurrent {
		e.EndDate = nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("update work experience: begin: %w", err)
	}
	defer tx.Rollback()

	if e.IsCurrent {
		if _, err := tx.Exec(`
			UPDATE work_experience SET is_current = FALSE, updated_at = NOW()
			WHERE is_current = TRUE AND id <> $1
		`, e.ID); err != nil {
			return nil, fmt.Errorf("update work experience: clear current: %w", err)
		}
	}

	result := &models.WorkExperience{}
	err = tx.QueryRow(`
		UPDATE work_experience SET
			company_name = $1, company_url = $2, position = $3, location = $4,
			favicon_url = $5, start_date = $6, end_date = $7, is_current = $8,
			display_order = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING `+experienceColumns,
		e.CompanyName, e.CompanyURL, e.Position, e.Location, e.FaviconURL,
		e.StartDate, e.EndDate, e.IsCurrent, e.DisplayOrder, e.ID,
	).Scan(
		&result.ID, &result.CompanyName, &result.CompanyURL, &result.Position, &result.Location,
		&result.FaviconURL, &result.StartDate, &result.EndDate, &result.IsCurrent,
		&result.DisplayOrder, &result.CreatedAt, &result.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("update work experience: not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update work experience: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update work experience: commit: %w", err)
	}
	return result, nil
}

// SetCurrent promotes the given entry to the single current one: every
// other row loses the flag and the target gets it, with its end date
// cleared, all in one transaction.
func (s *ExperienceStore) SetCurrent(id uuid.UUID) error {
	if s.db == nil {
		return ErrUnavailable
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("set current: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE work_experience SET is_current = FALSE, updated_at = NOW()
		WHERE is_current = TRUE AND id <> $1
	`, id); err != nil {
		return fmt.Errorf("set current: clear others: %w", err)
	}

	res, err := tx.Exec(`
		UPDATE work_experience SET is_current = TRUE, end_date = NULL, updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("set current: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("set current: not found")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("set current: commit: %w", err)
	}
	return nil
}

// Reorder applies new display_order values in one transaction. The map
// keys are entry IDs; missing IDs are left untouched.
func (s *ExperienceStore) Reorder(orders map[uuid.UUID]int) error {
	if s.db == nil {
		return ErrUnavailable
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("reorder: begin: %w", err)
	}
	defer tx.Rollback()

	for id, order := range orders {
		if _, err := tx.Exec(`
			UPDATE work_experience SET display_order = $1, updated_at = NOW() WHERE id = $2
		`, order, id); err != nil {
			return fmt.Errorf("reorder %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("reorder: commit: %w", err)
	}
	return nil
}

// Delete removes an entry by ID. The boolean reports whether a row was
// actually deleted.
func (s *ExperienceStore) Delete(id uuid.UUID) (bool, error) {
	if s.db == nil {
		return false, ErrUnavailable
	}

	res, err := s.db.Exec(`DELETE FROM work_experience WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete work experience: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Count returns the number of entries. Used by the admin dashboard.
func (s *ExperienceStore) Count() int {
	if s.db == nil {
		return 0
	}
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM work_experience`).Scan(&count); err != nil {
		slog.Error("count work experience failed", "error", err)
		return 0
	}
	return count
}

func scanExperiences(rows *sql.Rows) []models.WorkExperience {
	var entries []models.WorkExperience
	for rows.Next() {
		var e models.WorkExperience
		if err := rows.Scan(
			&e.ID, &e.CompanyName, &e.CompanyURL, &e.Position, &e.Location, &e.FaviconURL,
			&e.StartDate, &e.EndDate, &e.IsCurrent, &e.DisplayOrder, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			slog.Error("scan work experience failed", "error", err)
			return entries
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		slog.Error("iterate work experience failed", "error", err)
	}
	return entries
}
