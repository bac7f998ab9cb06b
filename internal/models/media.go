// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Media is an image uploaded to object storage. The record only tracks
// the object; the image itself lives in the S3 bucket and is referenced
// from posts and projects by its public URL.
type Media struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	S3Key       string    `json:"s3_key"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}
