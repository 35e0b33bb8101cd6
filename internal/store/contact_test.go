// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"github.com/sandeshar/contentsolution-sub000/internal/models"
)

func TestContactStore_CreateAndScanTimestamps(t *testing.T) {
	db := testDB(t)
	s := NewContactStore(db)

	email := "store-contact@example.com"
	t.Cleanup(func() {
		db.Exec("DELETE FROM contact_submissions WHERE email = $1", email)
	})

	created, err := s.Create(&models.ContactSubmission{
		Name:    "Store Contact",
		Email:   email,
		Subject: "Timestamps",
		Message: "Row must scan with both timestamps populated.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != models.ContactStatusNew {
		t.Errorf("Status = %q, want new", created.Status)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Errorf("timestamps not scanned: created_at=%v updated_at=%v", created.CreatedAt, created.UpdatedAt)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil || found.UpdatedAt.IsZero() {
		t.Fatalf("FindByID did not return the row with updated_at: %+v", found)
	}
}

func TestContactStore_UpdateStatusTouchesUpdatedAt(t *testing.T) {
	db := testDB(t)
	s := NewContactStore(db)

	email := "store-contact-status@example.com"
	t.Cleanup(func() {
		db.Exec("DELETE FROM contact_submissions WHERE email = $1", email)
	})

	created, err := s.Create(&models.ContactSubmission{
		Name: "Status Contact", Email: email, Message: "Move me along.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.UpdateStatus(created.ID, models.ContactStatusRead); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	after, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if after.Status != models.ContactStatusRead {
		t.Errorf("Status = %q, want read", after.Status)
	}
	if after.UpdatedAt.Before(created.UpdatedAt) {
		t.Errorf("updated_at went backwards: %v -> %v", created.UpdatedAt, after.UpdatedAt)
	}
}

func TestContactStore_FindByID_Missing(t *testing.T) {
	db := testDB(t)
	s := NewContactStore(db)

	found, err := s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil for missing row, got %+v", found)
	}
}
