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

// NavbarStore manages navigation menu items.
type NavbarStore struct {
	db *sql.DB
}

// NewNavbarStore returns a new NavbarStore.
func NewNavbarStore(db *sql.DB) *NavbarStore {
	return &NavbarStore{db: db}
}

const navbarColumns = `id, label, href, sort_order, parent_id, is_button, is_dropdown, is_active, created_at, updated_at`

// scanNavbarItem scans a row into a NavbarItem struct.
func scanNavbarItem(scanner interface{ Scan(...any) error }) (*models.NavbarItem, error) {
	var n models.NavbarItem
	err := scanner.Scan(&n.ID, &n.Label, &n.Href, &n.SortOrder, &n.ParentID,
		&n.IsButton, &n.IsDropdown, &n.IsActive, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ListAll returns every navbar item ordered by sort_order. Tree assembly
// happens in memory, not in the query.
func (s *NavbarStore) ListAll() ([]models.NavbarItem, error) {
	rows, err := s.db.Query(`SELECT ` + navbarColumns + ` FROM navbar_items ORDER BY sort_order, label`)
	if err != nil {
		return nil, fmt.Errorf("list navbar items: %w", err)
	}
	defer rows.Close()

	var items []models.NavbarItem
	for rows.Next() {
		n, err := scanNavbarItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan navbar item: %w", err)
		}
		items = append(items, *n)
	}
	return items, rows.Err()
}

// ListActive returns active items only, for public page rendering.
func (s *NavbarStore) ListActive() ([]models.NavbarItem, error) {
	rows, err := s.db.Query(`SELECT ` + navbarColumns + ` FROM navbar_items WHERE is_active ORDER BY sort_order, label`)
	if err != nil {
		return nil, fmt.Errorf("list active navbar items: %w", err)
	}
	defer rows.Close()

	var items []models.NavbarItem
	for rows.Next() {
		n, err := scanNavbarItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan navbar item: %w", err)
		}
		items = append(items, *n)
	}
	return items, rows.Err()
}

// FindByID retrieves a navbar item by ID. Returns nil if not found.
func (s *NavbarStore) FindByID(id uuid.UUID) (*models.NavbarItem, error) {
	row := s.db.QueryRow(`SELECT `+navbarColumns+` FROM navbar_items WHERE id = $1`, id)
	n, err := scanNavbarItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find navbar item: %w", err)
	}
	return n, nil
}

// Create inserts a new navbar item and returns it.
func (s *NavbarStore) Create(n *models.NavbarItem) (*models.NavbarItem, error) {
	row := s.db.QueryRow(`
		INSERT INTO navbar_items (label, href, sort_order, parent_id, is_button, is_dropdown, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+navbarColumns,
		n.Label, n.Href, n.SortOrder, n.ParentID, n.IsButton, n.IsDropdown, n.IsActive,
	)
	result, err := scanNavbarItem(row)
	if err != nil {
		return nil, fmt.Errorf("create navbar item: %w", err)
	}
	return result, nil
}

// Update modifies an existing navbar item.
func (s *NavbarStore) Update(n *models.NavbarItem) error {
	_, err := s.db.Exec(`
		UPDATE navbar_items SET
			label = $1, href = $2, sort_order = $3, parent_id = $4,
			is_button = $5, is_dropdown = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8
	`, n.Label, n.Href, n.SortOrder, n.ParentID, n.IsButton, n.IsDropdown, n.IsActive, n.ID)
	if err != nil {
		return fmt.Errorf("update navbar item: %w", err)
	}
	return nil
}

// UpdateOrders persists new sort positions for a sibling group in one
// transaction so a reorder can never be half-applied.
func (s *NavbarStore) UpdateOrders(items []models.NavbarItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin reorder: %w", err)
	}
	defer tx.Rollback()

	for _, n := range items {
		_, err := tx.Exec(`UPDATE navbar_items SET sort_order = $1, updated_at = NOW() WHERE id = $2`, n.SortOrder, n.ID)
		if err != nil {
			return fmt.Errorf("reorder navbar item %s: %w", n.ID, err)
		}
	}
	return tx.Commit()
}

// UpdateDropdown toggles the dropdown flag on a single item.
func (s *NavbarStore) UpdateDropdown(id uuid.UUID, dropdown bool) error {
	_, err := s.db.Exec(`UPDATE navbar_items SET is_dropdown = $1, updated_at = NOW() WHERE id = $2`, dropdown, id)
	if err != nil {
		return fmt.Errorf("update navbar dropdown: %w", err)
	}
	return nil
}

// DeleteMany removes the given items in slice order inside a single
// transaction. Callers pass children before parents so foreign keys
// never dangle mid-delete.
func (s *NavbarStore) DeleteMany(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin subtree delete: %w", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		_, err := tx.Exec(`DELETE FROM navbar_items WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete navbar item %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// Delete removes a single navbar item by ID.
func (s *NavbarStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM navbar_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete navbar item: %w", err)
	}
	return nil
}

// Count returns the total number of navbar items.
func (s *NavbarStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM navbar_items`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count navbar items: %w", err)
	}
	return count, nil
}
