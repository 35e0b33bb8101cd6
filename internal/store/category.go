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

// CategoryStore manages service categories and their subcategories.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, sort_order, created_at, updated_at`
const subcategoryColumns = `id, category_id, name, slug, sort_order, created_at, updated_at`

// scanCategory scans a row into a ServiceCategory struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.ServiceCategory, error) {
	var c models.ServiceCategory
	err := scanner.Scan(&c.ID, &c.Name, &c.Slug, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by sort_order, with post counts.
func (s *CategoryStore) List() ([]models.ServiceCategory, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.name, c.slug, c.sort_order, c.created_at, c.updated_at,
		       COUNT(p.id) AS post_count
		FROM service_categories c
		LEFT JOIN service_posts p ON p.category_id = c.id
		GROUP BY c.id
		ORDER BY c.sort_order, c.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.ServiceCategory
	for rows.Next() {
		var c models.ServiceCategory
		err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt, &c.PostCount)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// ListWithSubcategories returns categories with their subcategories
// populated, the shape the navbar attach operation consumes.
func (s *CategoryStore) ListWithSubcategories() ([]models.ServiceCategory, error) {
	cats, err := s.List()
	if err != nil {
		return nil, err
	}

	subs, err := s.ListSubcategories(nil)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uuid.UUID][]models.ServiceSubcategory, len(cats))
	for _, sub := range subs {
		byCategory[sub.CategoryID] = append(byCategory[sub.CategoryID], sub)
	}
	for i := range cats {
		cats[i].Subcategories = byCategory[cats[i].ID]
	}
	return cats, nil
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.ServiceCategory, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM service_categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(slug string) (*models.ServiceCategory, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM service_categories WHERE slug = $1`, slug)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(c *models.ServiceCategory) (*models.ServiceCategory, error) {
	row := s.db.QueryRow(`
		INSERT INTO service_categories (name, slug, sort_order)
		VALUES ($1, $2, $3)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.SortOrder,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update modifies an existing category.
func (s *CategoryStore) Update(c *models.ServiceCategory) error {
	_, err := s.db.Exec(`
		UPDATE service_categories SET
			name = $1, slug = $2, sort_order = $3, updated_at = NOW()
		WHERE id = $4
	`, c.Name, c.Slug, c.SortOrder, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category by ID. Subcategories cascade; posts keep a
// NULL category (ON DELETE SET NULL).
func (s *CategoryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM service_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// --- Subcategories ---

// scanSubcategory scans a row into a ServiceSubcategory struct.
func scanSubcategory(scanner interface{ Scan(...any) error }) (*models.ServiceSubcategory, error) {
	var sc models.ServiceSubcategory
	err := scanner.Scan(&sc.ID, &sc.CategoryID, &sc.Name, &sc.Slug, &sc.SortOrder, &sc.CreatedAt, &sc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

// ListSubcategories returns subcategories, all of them or one category's,
// ordered by sort_order.
func (s *CategoryStore) ListSubcategories(categoryID *uuid.UUID) ([]models.ServiceSubcategory, error) {
	var rows *sql.Rows
	var err error
	if categoryID == nil {
		rows, err = s.db.Query(`SELECT ` + subcategoryColumns + ` FROM service_subcategories ORDER BY sort_order, name`)
	} else {
		rows, err = s.db.Query(`SELECT `+subcategoryColumns+` FROM service_subcategories WHERE category_id = $1 ORDER BY sort_order, name`, *categoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()

	var items []models.ServiceSubcategory
	for rows.Next() {
		sc, err := scanSubcategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		items = append(items, *sc)
	}
	return items, rows.Err()
}

// FindSubcategoryByID retrieves a subcategory by ID. Returns nil if not found.
func (s *CategoryStore) FindSubcategoryByID(id uuid.UUID) (*models.ServiceSubcategory, error) {
	row := s.db.QueryRow(`SELECT `+subcategoryColumns+` FROM service_subcategories WHERE id = $1`, id)
	sc, err := scanSubcategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find subcategory by id: %w", err)
	}
	return sc, nil
}

// CreateSubcategory inserts a new subcategory and returns it.
func (s *CategoryStore) CreateSubcategory(sc *models.ServiceSubcategory) (*models.ServiceSubcategory, error) {
	row := s.db.QueryRow(`
		INSERT INTO service_subcategories (category_id, name, slug, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING `+subcategoryColumns,
		sc.CategoryID, sc.Name, sc.Slug, sc.SortOrder,
	)
	result, err := scanSubcategory(row)
	if err != nil {
		return nil, fmt.Errorf("create subcategory: %w", err)
	}
	return result, nil
}

// UpdateSubcategory modifies an existing subcategory.
func (s *CategoryStore) UpdateSubcategory(sc *models.ServiceSubcategory) error {
	_, err := s.db.Exec(`
		UPDATE service_subcategories SET
			category_id = $1, name = $2, slug = $3, sort_order = $4, updated_at = NOW()
		WHERE id = $5
	`, sc.CategoryID, sc.Name, sc.Slug, sc.SortOrder, sc.ID)
	if err != nil {
		return fmt.Errorf("update subcategory: %w", err)
	}
	return nil
}

// DeleteSubcategory removes a subcategory by ID.
func (s *CategoryStore) DeleteSubcategory(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM service_subcategories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	return nil
}
