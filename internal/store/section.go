// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/sandeshar/contentsolution-sub000/internal/models"
)

// SectionStore manages editable page sections.
type SectionStore struct {
	db *sql.DB
}

// NewSectionStore returns a new SectionStore.
func NewSectionStore(db *sql.DB) *SectionStore {
	return &SectionStore{db: db}
}

const sectionColumns = `id, page, section, heading, subheading, body, image, sort_order, created_at, updated_at`

func scanSection(scanner interface{ Scan(...any) error }) (*models.PageSection, error) {
	var ps models.PageSection
	err := scanner.Scan(&ps.ID, &ps.Page, &ps.Section, &ps.Heading, &ps.Subheading,
		&ps.Body, &ps.Image, &ps.SortOrder, &ps.CreatedAt, &ps.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ps, nil
}

// List returns all sections, ordered by page then position.
func (s *SectionStore) List() ([]models.PageSection, error) {
	rows, err := s.db.Query(`SELECT ` + sectionColumns + ` FROM page_sections ORDER BY page, sort_order, section`)
	if err != nil {
		return nil, fmt.Errorf("list page sections: %w", err)
	}
	defer rows.Close()
	return collectSections(rows)
}

// ListPage returns a page's sections ordered by sort_order.
func (s *SectionStore) ListPage(page string) ([]models.PageSection, error) {
	rows, err := s.db.Query(`SELECT `+sectionColumns+` FROM page_sections WHERE page = $1 ORDER BY sort_order, section`, page)
	if err != nil {
		return nil, fmt.Errorf("list sections for page %q: %w", page, err)
	}
	defer rows.Close()
	return collectSections(rows)
}

// ListForPage returns a page's sections indexed by section key, the
// shape the public templates consume.
func (s *SectionStore) ListForPage(page string) (models.PageSections, error) {
	list, err := s.ListPage(page)
	if err != nil {
		return nil, err
	}
	indexed := make(models.PageSections, len(list))
	for _, ps := range list {
		indexed[ps.Section] = append(indexed[ps.Section], ps)
	}
	return indexed, nil
}

func collectSections(rows *sql.Rows) ([]models.PageSection, error) {
	var items []models.PageSection
	for rows.Next() {
		ps, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page section: %w", err)
		}
		items = append(items, *ps)
	}
	return items, rows.Err()
}

// FindByID retrieves a section by ID. Returns nil if not found.
func (s *SectionStore) FindByID(id uuid.UUID) (*models.PageSection, error) {
	row := s.db.QueryRow(`SELECT `+sectionColumns+` FROM page_sections WHERE id = $1`, id)
	ps, err := scanSection(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page section: %w", err)
	}
	return ps, nil
}

// Create inserts a new section and returns it.
func (s *SectionStore) Create(ps *models.PageSection) (*models.PageSection, error) {
	row := s.db.QueryRow(`
		INSERT INTO page_sections (page, section, heading, subheading, body, image, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+sectionColumns,
		ps.Page, ps.Section, ps.Heading, ps.Subheading, ps.Body, ps.Image, ps.SortOrder,
	)
	result, err := scanSection(row)
	if err != nil {
		return nil, fmt.Errorf("create page section: %w", err)
	}
	return result, nil
}

// Update modifies an existing section.
func (s *SectionStore) Update(ps *models.PageSection) error {
	_, err := s.db.Exec(`
		UPDATE page_sections SET
			page = $1, section = $2, heading = $3, subheading = $4,
			body = $5, image = $6, sort_order = $7, updated_at = NOW()
		WHERE id = $8
	`, ps.Page, ps.Section, ps.Heading, ps.Subheading, ps.Body, ps.Image, ps.SortOrder, ps.ID)
	if err != nil {
		return fmt.Errorf("update page section: %w", err)
	}
	return nil
}

// Delete removes a section by ID.
func (s *SectionStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM page_sections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete page section: %w", err)
	}
	return nil
}
