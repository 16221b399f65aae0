// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Article is a published blog/news entry served on the public site.
type Article struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     *string    `json:"excerpt,omitempty"`
	Content     string     `json:"content"`
	HeroImage   *string    `json:"hero_image,omitempty"`
	Images      []string   `json:"images,omitempty"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsVisible reports whether the article should appear on the public site:
// the published flag must be set and the publish date must not be in the
// future.
func (a *Article) IsVisible(now time.Time) bool {
	return a.IsPublished && a.PublishedAt != nil && !a.PublishedAt.After(now)
}
