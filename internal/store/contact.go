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

// ContactStore manages contact form submissions.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore returns a new ContactStore.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

const contactColumns = `id, name, email, phone, subject, message, status, created_at, updated_at`

// scanContact scans a row into a ContactSubmission struct.
func scanContact(scanner interface{ Scan(...any) error }) (*models.ContactSubmission, error) {
	var c models.ContactSubmission
	err := scanner.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message,
		&c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns submissions newest first, optionally filtered by status.
func (s *ContactStore) List(status models.ContactStatus) ([]models.ContactSubmission, error) {
	var rows *sql.Rows
	var err error
	if status == "" {
		rows, err = s.db.Query(`SELECT ` + contactColumns + ` FROM contact_submissions ORDER BY created_at DESC`)
	} else {
		rows, err = s.db.Query(`SELECT `+contactColumns+` FROM contact_submissions WHERE status = $1 ORDER BY created_at DESC`, status)
	}
	if err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	defer rows.Close()

	var items []models.ContactSubmission
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact submission: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a submission by ID. Returns nil if not found.
func (s *ContactStore) FindByID(id uuid.UUID) (*models.ContactSubmission, error) {
	row := s.db.QueryRow(`SELECT `+contactColumns+` FROM contact_submissions WHERE id = $1`, id)
	c, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find contact submission: %w", err)
	}
	return c, nil
}

// Create inserts a new submission with status "new" and returns it.
func (s *ContactStore) Create(c *models.ContactSubmission) (*models.ContactSubmission, error) {
	row := s.db.QueryRow(`
		INSERT INTO contact_submissions (name, email, phone, subject, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+contactColumns,
		c.Name, c.Email, c.Phone, c.Subject, c.Message, models.ContactStatusNew,
	)
	result, err := scanContact(row)
	if err != nil {
		return nil, fmt.Errorf("create contact submission: %w", err)
	}
	return result, nil
}

// UpdateStatus moves a submission to a new workflow status.
func (s *ContactStore) UpdateStatus(id uuid.UUID, status models.ContactStatus) error {
	_, err := s.db.Exec(`UPDATE contact_submissions SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update contact status: %w", err)
	}
	return nil
}

// Delete removes a submission by ID.
func (s *ContactStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM contact_submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact submission: %w", err)
	}
	return nil
}

// CountByStatus returns how many submissions sit in each status, for
// the dashboard.
func (s *ContactStore) CountByStatus() (map[models.ContactStatus]int, error) {
	rows, err := s.db.Query(`SELECT status, COUNT(*) FROM contact_submissions GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count contact submissions: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ContactStatus]int)
	for rows.Next() {
		var status models.ContactStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan contact count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
