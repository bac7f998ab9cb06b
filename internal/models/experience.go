// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkExperience represents one entry on the work history timeline.
//
// At most one row in the table may have IsCurrent set at any time. The
// store enforces that rule inside a transaction whenever a write marks
// an entry as current. A current entry never carries an end date.
type WorkExperience struct {
	ID           uuid.UUID  `json:"id"`
	CompanyName  string     `json:"company_name"`
	CompanyURL   *string    `json:"company_url,omitempty"`
	Position     string     `json:"position"`
	Location     *string    `json:"location,omitempty"`
	FaviconURL   *string    `json:"favicon_url,omitempty"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"` // nil while ongoing
	IsCurrent    bool       `json:"is_current"`
	DisplayOrder int        `json:"display_order"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
