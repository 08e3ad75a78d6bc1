// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Rating bounds for projects and testimonials.
const (
	RatingMin = 1
	RatingMax = 5
)

// Project is a portfolio entry. It appears as a card in the projects
// grid and, when published, gets its own case-study page at
// /case-study/{slug} composed of its content blocks.
type Project struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Role        string          `json:"role"`
	Rating      int             `json:"rating"`
	Result      string          `json:"result"`
	Link        string          `json:"link"`
	Content     json.RawMessage `json:"content"`
	IsFeatured  bool            `json:"is_featured"`
	IsPublished bool            `json:"is_published"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CaseBlock is one free-form block of a project's case study. Body is
// Markdown, rendered to HTML on the public page.
type CaseBlock struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Blocks decodes the project's content document into its case-study
// blocks. Malformed or empty content yields an empty slice; a broken
// document must never take the case-study page down.
func (p *Project) Blocks() []CaseBlock {
	if len(p.Content) == 0 {
		return nil
	}
	var blocks []CaseBlock
	if err := json.Unmarshal(p.Content, &blocks); err != nil {
		return nil
	}
	return blocks
}

// RatingValid reports whether the project's rating is within bounds.
func (p *Project) RatingValid() bool {
	return p.Rating >= RatingMin && p.Rating <= RatingMax
}

// Stars returns the rating clamped into the displayable 1..5 range.
// Used by templates so a bad historical value still renders something.
func (p *Project) Stars() int {
	switch {
	case p.Rating < RatingMin:
		return RatingMin
	case p.Rating > RatingMax:
		return RatingMax
	default:
		return p.Rating
	}
}
