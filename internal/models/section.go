// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Section is a single block of a page: one of the registered section
// types (hero, about, skills, ...) plus its JSON content document.
// Content is stored as-is in a jsonb column; the sections package owns
// decoding it into typed values with defaults filled in.
//
// The type of a section never changes after creation. The store update
// path deliberately does not touch the type column.
type Section struct {
	ID          uuid.UUID       `json:"id"`
	PageID      uuid.UUID       `json:"page_id"`
	Type        string          `json:"type"`
	Content     json.RawMessage `json:"content"`
	OrderIndex  int             `json:"order_index"`
	IsPublished bool            `json:"is_published"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
