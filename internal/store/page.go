// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"spiritfolio/internal/models"
)

// PageStore handles all page-related database operations.
type PageStore struct {
	db *sql.DB
}

// NewPageStore creates a new PageStore with the given database connection.
func NewPageStore(db *sql.DB) *PageStore {
	return &PageStore{db: db}
}

// FindBySlug retrieves a page by its slug. Returns nil if not found.
func (s *PageStore) FindBySlug(slug string) (*models.Page, error) {
	p := &models.Page{}
	err := s.db.QueryRow(`
		SELECT id, title, slug, is_published, created_at, updated_at
		FROM pages WHERE slug = $1
	`, slug).Scan(&p.ID, &p.Title, &p.Slug, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page by slug: %w", err)
	}
	return p, nil
}

// FindByID retrieves a page by its UUID. Returns nil if not found.
func (s *PageStore) FindByID(id uuid.UUID) (*models.Page, error) {
	p := &models.Page{}
	err := s.db.QueryRow(`
		SELECT id, title, slug, is_published, created_at, updated_at
		FROM pages WHERE id = $1
	`, id).Scan(&p.ID, &p.Title, &p.Slug, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page by id: %w", err)
	}
	return p, nil
}

// Create inserts a new page and returns it with the generated ID.
func (s *PageStore) Create(title, slug string, published bool) (*models.Page, error) {
	p := &models.Page{}
	err := s.db.QueryRow(`
		INSERT INTO pages (title, slug, is_published)
		VALUES ($1, $2, $3)
		RETURNING id, title, slug, is_published, created_at, updated_at
	`, title, slug, published).Scan(&p.ID, &p.Title, &p.Slug, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return p, nil
}

// Update modifies a page's title and published flag. The slug is fixed
// at creation since public URLs depend on it.
func (s *PageStore) Update(p *models.Page) error {
	_, err := s.db.Exec(`
		UPDATE pages SET title = $1, is_published = $2, updated_at = NOW()
		WHERE id = $3
	`, p.Title, p.IsPublished, p.ID)
	if err != nil {
		return fmt.Errorf("update page: %w", err)
	}
	return nil
}

// Delete removes a page by ID. Sections cascade via the FK.
func (s *PageStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM pages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return nil
}
