// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/sandeshar/contentsolution-sub000/internal/models"
)

func TestServiceDetailStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewServiceDetailStore(db)

	key := "test-detail-create"
	t.Cleanup(func() { cleanServiceDetails(t, db, key) })

	detail := &models.ServiceDetail{
		Key:         key,
		Title:       "Web Design",
		Description: "Full-service web design.",
		Bullets:     []string{"Responsive", "Accessible"},
		Icon:        "palette",
	}

	created, err := s.Create(detail)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Key != key {
		t.Errorf("key: got %q, want %q", created.Key, key)
	}
	if len(created.Bullets) != 2 {
		t.Fatalf("bullets: got %d, want 2", len(created.Bullets))
	}
	if created.Bullets[0] != "Responsive" {
		t.Errorf("bullet[0]: got %q", created.Bullets[0])
	}

	found, err := s.FindByKey(key)
	if err != nil {
		t.Fatalf("FindByKey: %v", err)
	}
	if found == nil {
		t.Fatal("expected detail, got nil")
	}
	if found.Title != "Web Design" {
		t.Errorf("title: got %q", found.Title)
	}

	// Not found.
	found, err = s.FindByKey("no-such-key")
	if err != nil {
		t.Fatalf("FindByKey (missing): %v", err)
	}
	if found != nil {
		t.Error("expected nil for missing key")
	}
}

func TestServiceDetailStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewServiceDetailStore(db)

	key := "test-detail-update"
	t.Cleanup(func() { cleanServiceDetails(t, db, key) })

	created, err := s.Create(&models.ServiceDetail{Key: key, Title: "Before"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	created.Title = "After"
	created.Bullets = []string{"One"}
	if err := s.Update(created); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, _ := s.FindByKey(key)
	if found.Title != "After" {
		t.Errorf("title after update: got %q", found.Title)
	}
	if len(found.Bullets) != 1 || found.Bullets[0] != "One" {
		t.Errorf("bullets after update: got %v", found.Bullets)
	}
}

func TestServiceDetailStoreMalformedBullets(t *testing.T) {
	db := testDB(t)
	s := NewServiceDetailStore(db)

	key := "test-detail-badjson"
	t.Cleanup(func() { cleanServiceDetails(t, db, key) })

	if _, err := s.Create(&models.ServiceDetail{Key: key, Title: "Bad"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Corrupt the stored JSON directly.
	if _, err := db.Exec(`UPDATE service_details SET bullets = 'not-json' WHERE key = $1`, key); err != nil {
		t.Fatalf("corrupt bullets: %v", err)
	}

	found, err := s.FindByKey(key)
	if err != nil {
		t.Fatalf("FindByKey: %v", err)
	}
	if found == nil {
		t.Fatal("expected detail despite bad bullets")
	}
	if len(found.Bullets) != 0 {
		t.Errorf("expected empty bullets for malformed JSON, got %v", found.Bullets)
	}
}

func TestServiceDetailStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewServiceDetailStore(db)

	key := "test-detail-delete"
	if _, err := s.Create(&models.ServiceDetail{Key: key, Title: "Gone"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Delete(key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	found, _ := s.FindByKey(key)
	if found != nil {
		t.Error("expected nil after delete")
	}
}
