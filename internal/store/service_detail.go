// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sandeshar/contentsolution-sub000/internal/models"
)

// ServiceDetailStore manages the editorial service records, keyed by
// their human-chosen key rather than a surrogate id.
type ServiceDetailStore struct {
	db *sql.DB
}

// NewServiceDetailStore returns a new ServiceDetailStore.
func NewServiceDetailStore(db *sql.DB) *ServiceDetailStore {
	return &ServiceDetailStore{db: db}
}

const serviceDetailColumns = `key, title, description, bullets, icon, image, display_order, created_at, updated_at`

// scanServiceDetail scans a row into a ServiceDetail. The bullets column
// holds a JSON array as text; a value that fails to parse is logged and
// read as empty rather than failing the whole query.
func scanServiceDetail(scanner interface{ Scan(...any) error }) (*models.ServiceDetail, error) {
	var d models.ServiceDetail
	var bullets sql.NullString
	err := scanner.Scan(
		&d.Key, &d.Title, &d.Description, &bullets,
		&d.Icon, &d.Image, &d.DisplayOrder, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Bullets = decodeBullets(d.Key, bullets)
	return &d, nil
}

// decodeBullets parses the stored JSON bullet list. Malformed data is a
// content problem, not a request failure: log it and render no bullets.
func decodeBullets(key string, raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return []string{}
	}
	var bullets []string
	if err := json.Unmarshal([]byte(raw.String), &bullets); err != nil {
		slog.Warn("service detail bullets unparseable", "key", key, "error", err)
		return []string{}
	}
	return bullets
}

// encodeBullets serializes a bullet list for storage. A nil list stores
// as an empty JSON array so reads stay uniform.
func encodeBullets(bullets []string) (string, error) {
	if bullets == nil {
		bullets = []string{}
	}
	raw, err := json.Marshal(bullets)
	if err != nil {
		return "", fmt.Errorf("encode bullets: %w", err)
	}
	return string(raw), nil
}

// List returns all service details ordered by display_order, then key.
func (s *ServiceDetailStore) List() ([]models.ServiceDetail, error) {
	rows, err := s.db.Query(`
		SELECT ` + serviceDetailColumns + `
		FROM service_details
		ORDER BY display_order, key
	`)
	if err != nil {
		return nil, fmt.Errorf("list service details: %w", err)
	}
	defer rows.Close()

	var items []models.ServiceDetail
	for rows.Next() {
		d, err := scanServiceDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service detail: %w", err)
		}
		items = append(items, *d)
	}
	return items, rows.Err()
}

// FindByKey retrieves a service detail by its key. Returns nil if not found.
func (s *ServiceDetailStore) FindByKey(key string) (*models.ServiceDetail, error) {
	row := s.db.QueryRow(`SELECT `+serviceDetailColumns+` FROM service_details WHERE key = $1`, key)
	d, err := scanServiceDetail(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find service detail by key: %w", err)
	}
	return d, nil
}

// Create inserts a new service detail and returns it.
func (s *ServiceDetailStore) Create(d *models.ServiceDetail) (*models.ServiceDetail, error) {
	bullets, err := encodeBullets(d.Bullets)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(`
		INSERT INTO service_details (key, title, description, bullets, icon, image, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+serviceDetailColumns,
		d.Key, d.Title, d.Description, bullets, d.Icon, d.Image, d.DisplayOrder,
	)
	result, err := scanServiceDetail(row)
	if err != nil {
		return nil, fmt.Errorf("create service detail: %w", err)
	}
	return result, nil
}

// Update modifies an existing service detail, addressed by key.
func (s *ServiceDetailStore) Update(d *models.ServiceDetail) error {
	bullets, err := encodeBullets(d.Bullets)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		UPDATE service_details SET
			title = $1, description = $2, bullets = $3, icon = $4,
			image = $5, display_order = $6, updated_at = NOW()
		WHERE key = $7
	`, d.Title, d.Description, bullets, d.Icon, d.Image, d.DisplayOrder, d.Key)
	if err != nil {
		return fmt.Errorf("update service detail: %w", err)
	}
	return nil
}

// Delete removes a service detail by key.
func (s *ServiceDetailStore) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM service_details WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete service detail: %w", err)
	}
	return nil
}

// Count returns the number of service details.
func (s *ServiceDetailStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM service_details`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count service details: %w", err)
	}
	return count, nil
}
