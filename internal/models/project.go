// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Project represents a portfolio project. It shares the publishing
// lifecycle of BlogPost plus the stack and link fields.
type Project struct {
	ID          uuid.UUID  `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	Image       *string    `json:"image,omitempty"`
	Tech        *string    `json:"tech,omitempty"` // comma-separated stack labels
	GithubURL   *string    `json:"github_url,omitempty"`
	DemoURL     *string    `json:"demo_url,omitempty"`
	PublishedAt time.Time  `json:"published_at"`
	IsPublished bool       `json:"is_published"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TechList splits the comma-separated tech field into trimmed labels.
// Empty entries are dropped, so "Go,, Postgres" yields ["Go", "Postgres"].
func (p *Project) TechList() []string {
	if p.Tech == nil {
		return nil
	}
	var labels []string
	for _, part := range strings.Split(*p.Tech, ",") {
		if label := strings.TrimSpace(part); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}
