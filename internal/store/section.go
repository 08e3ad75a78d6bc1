// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"spiritfolio/internal/models"
)

// SectionStore handles all section-related database operations.
//
// A section's type is fixed at creation: no update method here touches
// the type column, so a hero row can never silently become a skills row.
// Content updates are last-write-wins; the UPDATE is unconditional and
// whichever save lands last fully replaces the content document.
type SectionStore struct {
	db *sql.DB
}

// NewSectionStore creates a new SectionStore with the given database connection.
func NewSectionStore(db *sql.DB) *SectionStore {
	return &SectionStore{db: db}
}

// ListByPage returns all sections of a page ordered by their position.
func (s *SectionStore) ListByPage(pageID uuid.UUID) ([]models.Section, error) {
	rows, err := s.db.Query(`
		SELECT id, page_id, type, content, order_index, is_published, created_at, updated_at
		FROM sections
		WHERE page_id = $1
		ORDER BY order_index ASC, created_at ASC
	`, pageID)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	return scanSections(rows)
}

// ListRecent returns the most recently edited sections across all
// pages. Used by the dashboard's recent-edits list.
func (s *SectionStore) ListRecent(limit int) ([]models.Section, error) {
	rows, err := s.db.Query(`
		SELECT id, page_id, type, content, order_index, is_published, created_at, updated_at
		FROM sections
		ORDER BY updated_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent sections: %w", err)
	}
	defer rows.Close()

	return scanSections(rows)
}

// ListPublishedByPage returns only the published sections of a page,
// ordered by position. Used for public rendering.
func (s *SectionStore) ListPublishedByPage(pageID uuid.UUID) ([]models.Section, error) {
	rows, err := s.db.Query(`
		SELECT id, page_id, type, content, order_index, is_published, created_at, updated_at
		FROM sections
		WHERE page_id = $1 AND is_published = TRUE
		ORDER BY order_index ASC, created_at ASC
	`, pageID)
	if err != nil {
		return nil, fmt.Errorf("list published sections: %w", err)
	}
	defer rows.Close()

	return scanSections(rows)
}

func scanSections(rows *sql.Rows) ([]models.Section, error) {
	var items []models.Section
	for rows.Next() {
		var sec models.Section
		if err := rows.Scan(
			&sec.ID, &sec.PageID, &sec.Type, &sec.Content,
			&sec.OrderIndex, &sec.IsPublished, &sec.CreatedAt, &sec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		items = append(items, sec)
	}
	return items, rows.Err()
}

// FindByID retrieves a section by its UUID. Returns nil if not found.
func (s *SectionStore) FindByID(id uuid.UUID) (*models.Section, error) {
	sec := &models.Section{}
	err := s.db.QueryRow(`
		SELECT id, page_id, type, content, order_index, is_published, created_at, updated_at
		FROM sections WHERE id = $1
	`, id).Scan(
		&sec.ID, &sec.PageID, &sec.Type, &sec.Content,
		&sec.OrderIndex, &sec.IsPublished, &sec.CreatedAt, &sec.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find section by id: %w", err)
	}
	return sec, nil
}

// Create inserts a new section of the given type and returns it.
// Content defaults to {} when nil so decoding yields the type's defaults.
func (s *SectionStore) Create(pageID uuid.UUID, sectionType string, content json.RawMessage, orderIndex int) (*models.Section, error) {
	if len(content) == 0 {
		content = json.RawMessage(`{}`)
	}

	sec := &models.Section{}
	err := s.db.QueryRow(`
		INSERT INTO sections (page_id, type, content, order_index)
		VALUES ($1, $2, $3, $4)
		RETURNING id, page_id, type, content, order_index, is_published, created_at, updated_at
	`, pageID, sectionType, content, orderIndex).Scan(
		&sec.ID, &sec.PageID, &sec.Type, &sec.Content,
		&sec.OrderIndex, &sec.IsPublished, &sec.CreatedAt, &sec.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create section: %w", err)
	}
	return sec, nil
}

// UpdateContent replaces a section's content document. The type column
// is deliberately absent from the SET list.
func (s *SectionStore) UpdateContent(id uuid.UUID, content json.RawMessage) error {
	_, err := s.db.Exec(`
		UPDATE sections SET content = $1, updated_at = NOW() WHERE id = $2
	`, content, id)
	if err != nil {
		return fmt.Errorf("update section content: %w", err)
	}
	return nil
}

// SetPublished flips only the is_published flag, leaving content untouched.
func (s *SectionStore) SetPublished(id uuid.UUID, published bool) error {
	_, err := s.db.Exec(`
		UPDATE sections SET is_published = $1, updated_at = NOW() WHERE id = $2
	`, published, id)
	if err != nil {
		return fmt.Errorf("set section published: %w", err)
	}
	return nil
}

// SetOrder moves a section to a new position within its page.
func (s *SectionStore) SetOrder(id uuid.UUID, orderIndex int) error {
	_, err := s.db.Exec(`
		UPDATE sections SET order_index = $1, updated_at = NOW() WHERE id = $2
	`, orderIndex, id)
	if err != nil {
		return fmt.Errorf("set section order: %w", err)
	}
	return nil
}

// Delete removes a section by ID.
func (s *SectionStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM sections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	return nil
}
