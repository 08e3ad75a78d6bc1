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

// ProjectStore handles all project-related database operations.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore with the given database connection.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

const projectColumns = `id, title, slug, description, image_url, role, rating,
	       result, link, content, is_featured, is_published, created_at, updated_at`

// scanProject scans a project row from the result set.
func scanProject(scanner interface{ Scan(...any) error }) (*models.Project, error) {
	var p models.Project
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.ImageURL, &p.Role, &p.Rating,
		&p.Result, &p.Link, &p.Content, &p.IsFeatured, &p.IsPublished,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all projects, featured first, newest within each group.
func (s *ProjectStore) List() ([]models.Project, error) {
	rows, err := s.db.Query(`
		SELECT ` + projectColumns + `
		FROM projects
		ORDER BY is_featured DESC, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	return collectProjects(rows)
}

// ListPublished returns only published projects for the public site,
// featured first.
func (s *ProjectStore) ListPublished() ([]models.Project, error) {
	rows, err := s.db.Query(`
		SELECT ` + projectColumns + `
		FROM projects
		WHERE is_published = TRUE
		ORDER BY is_featured DESC, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list published projects: %w", err)
	}
	defer rows.Close()

	return collectProjects(rows)
}

func collectProjects(rows *sql.Rows) ([]models.Project, error) {
	var items []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a project by its UUID. Returns nil if not found.
func (s *ProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	row := s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a published project by its slug. Used for the
// public case-study page. Returns nil if not found or unpublished.
func (s *ProjectStore) FindBySlug(slug string) (*models.Project, error) {
	row := s.db.QueryRow(`
		SELECT `+projectColumns+`
		FROM projects WHERE slug = $1 AND is_published = TRUE
	`, slug)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by slug: %w", err)
	}
	return p, nil
}

// SlugExists reports whether any project already uses the given slug.
func (s *ProjectStore) SlugExists(slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM projects WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check project slug: %w", err)
	}
	return exists, nil
}

// Create inserts a new project and returns it with the generated ID.
func (s *ProjectStore) Create(p *models.Project) (*models.Project, error) {
	if len(p.Content) == 0 {
		p.Content = []byte(`[]`)
	}

	row := s.db.QueryRow(`
		INSERT INTO projects (title, slug, description, image_url, role, rating,
		                      result, link, content, is_featured, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+projectColumns,
		p.Title, p.Slug, p.Description, p.ImageURL, p.Role, p.Rating,
		p.Result, p.Link, p.Content, p.IsFeatured, p.IsPublished,
	)
	result, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return result, nil
}

// Update modifies an existing project. The slug is fixed at creation
// since case-study URLs depend on it.
func (s *ProjectStore) Update(p *models.Project) error {
	if len(p.Content) == 0 {
		p.Content = []byte(`[]`)
	}

	_, err := s.db.Exec(`
		UPDATE projects SET
			title = $1, description = $2, image_url = $3, role = $4,
			rating = $5, result = $6, link = $7, content = $8,
			is_featured = $9, is_published = $10, updated_at = NOW()
		WHERE id = $11
	`, p.Title, p.Description, p.ImageURL, p.Role,
		p.Rating, p.Result, p.Link, p.Content,
		p.IsFeatured, p.IsPublished, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// SetPublished flips only the is_published flag.
func (s *ProjectStore) SetPublished(id uuid.UUID, published bool) error {
	_, err := s.db.Exec(`
		UPDATE projects SET is_published = $1, updated_at = NOW() WHERE id = $2
	`, published, id)
	if err != nil {
		return fmt.Errorf("set project published: %w", err)
	}
	return nil
}

// Delete removes a project by ID.
func (s *ProjectStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
