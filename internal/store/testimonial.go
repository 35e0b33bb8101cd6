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

// TestimonialStore manages customer testimonials.
type TestimonialStore struct {
	db *sql.DB
}

// NewTestimonialStore returns a new TestimonialStore.
func NewTestimonialStore(db *sql.DB) *TestimonialStore {
	return &TestimonialStore{db: db}
}

const testimonialColumns = `id, author, role, quote, rating, sort_order, is_active, created_at, updated_at`

func scanTestimonial(scanner interface{ Scan(...any) error }) (*models.Testimonial, error) {
	var t models.Testimonial
	err := scanner.Scan(&t.ID, &t.Author, &t.Role, &t.Quote, &t.Rating,
		&t.SortOrder, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns testimonials ordered by sort_order. When activeOnly is
// set, hidden entries are excluded.
func (s *TestimonialStore) List(activeOnly bool) ([]models.Testimonial, error) {
	query := `SELECT ` + testimonialColumns + ` FROM testimonials`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY sort_order, created_at`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()

	var items []models.Testimonial
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan testimonial: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// FindByID retrieves a testimonial by ID. Returns nil if not found.
func (s *TestimonialStore) FindByID(id uuid.UUID) (*models.Testimonial, error) {
	row := s.db.QueryRow(`SELECT `+testimonialColumns+` FROM testimonials WHERE id = $1`, id)
	t, err := scanTestimonial(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find testimonial: %w", err)
	}
	return t, nil
}

// Create inserts a new testimonial and returns it.
func (s *TestimonialStore) Create(t *models.Testimonial) (*models.Testimonial, error) {
	row := s.db.QueryRow(`
		INSERT INTO testimonials (author, role, quote, rating, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+testimonialColumns,
		t.Author, t.Role, t.Quote, t.Rating, t.SortOrder, t.IsActive,
	)
	result, err := scanTestimonial(row)
	if err != nil {
		return nil, fmt.Errorf("create testimonial: %w", err)
	}
	return result, nil
}

// Update modifies an existing testimonial.
func (s *TestimonialStore) Update(t *models.Testimonial) error {
	_, err := s.db.Exec(`
		UPDATE testimonials SET
			author = $1, role = $2, quote = $3, rating = $4,
			sort_order = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7
	`, t.Author, t.Role, t.Quote, t.Rating, t.SortOrder, t.IsActive, t.ID)
	if err != nil {
		return fmt.Errorf("update testimonial: %w", err)
	}
	return nil
}

// Delete removes a testimonial by ID.
func (s *TestimonialStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	return nil
}
