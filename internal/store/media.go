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

// MediaStore handles all media-related database operations.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore creates a new MediaStore with the given database connection.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

// mediaColumns lists the columns selected in media queries.
const mediaColumns = `id, file_name, content_type, size_bytes,
	bucket, s3_key, thumb_s3_key, url, alt_text, uploader_id, created_at`

// scanMedia scans a media row from the result set.
func scanMedia(scanner interface{ Scan(...any) error }) (*models.Media, error) {
	var m models.Media
	err := scanner.Scan(
		&m.ID, &m.FileName, &m.ContentType, &m.SizeBytes,
		&m.Bucket, &m.S3Key, &m.ThumbS3Key, &m.URL, &m.AltText, &m.UploaderID, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new media record and returns it with the generated ID.
func (s *MediaStore) Create(m *models.Media) (*models.Media, error) {
	err := s.db.QueryRow(`
		INSERT INTO media (file_name, content_type, size_bytes,
			bucket, s3_key, thumb_s3_key, url, alt_text, uploader_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+mediaColumns,
		m.FileName, m.ContentType, m.SizeBytes,
		m.Bucket, m.S3Key, m.ThumbS3Key, m.URL, m.AltText, m.UploaderID,
	).Scan(
		&m.ID, &m.FileName, &m.ContentType, &m.SizeBytes,
		&m.Bucket, &m.S3Key, &m.ThumbS3Key, &m.URL, &m.AltText, &m.UploaderID, &m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return m, nil
}

// FindByID retrieves a single media record by its UUID.
func (s *MediaStore) FindByID(id uuid.UUID) (*models.Media, error) {
	row := s.db.QueryRow(`SELECT `+mediaColumns+` FROM media WHERE id = $1`, id)
	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find media by id: %w", err)
	}
	return m, nil
}

// List returns media items ordered by creation date, with pagination.
func (s *MediaStore) List(limit, offset int) ([]models.Media, error) {
	rows, err := s.db.Query(`
		SELECT `+mediaColumns+`
		FROM media
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var items []models.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// Delete removes a media record and returns it so the caller can clean
// up the corresponding S3 objects. The DB row goes first; a failed S3
// delete afterwards leaves an orphaned object, never a dangling row.
func (s *MediaStore) Delete(id uuid.UUID) (*models.Media, error) {
	row := s.db.QueryRow(`
		DELETE FROM media WHERE id = $1
		RETURNING `+mediaColumns, id)
	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete media: %w", err)
	}
	return m, nil
}

// UpdateAltText sets the alt text for a media item.
func (s *MediaStore) UpdateAltText(id uuid.UUID, altText *string) error {
	_, err := s.db.Exec(`UPDATE media SET alt_text = $1 WHERE id = $2`, altText, id)
	if err != nil {
		return fmt.Errorf("update alt text: %w", err)
	}
	return nil
}

// Count returns the total number of media items.
func (s *MediaStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM media`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count media: %w", err)
	}
	return count, nil
}
