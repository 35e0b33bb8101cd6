// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"github.com/sandeshar/contentsolution-sub000/internal/models"
)

func TestServicePostStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewServicePostStore(db)

	slug := "test-post-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanServicePosts(t, db, slug) })

	post, err := s.Create(&models.ServicePost{
		Slug:     slug,
		Title:    "Logo Design",
		Excerpt:  "Crisp brand marks.",
		StatusID: models.ServiceStatusPublished,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if !post.IsPublished() {
		t.Error("expected published post")
	}

	found, err := s.FindBySlug(slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if found == nil {
		t.Fatal("expected post, got nil")
	}
	if found.Title != "Logo Design" {
		t.Errorf("title: got %q", found.Title)
	}

	byID, err := s.FindByID(post.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID == nil || byID.Slug != slug {
		t.Errorf("FindByID mismatch: %+v", byID)
	}
}

func TestServicePostStoreListPublished(t *testing.T) {
	db := testDB(t)
	s := NewServicePostStore(db)

	published := "test-post-pub-" + uuid.NewString()[:8]
	draft := "test-post-draft-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanServicePosts(t, db, published, draft) })

	if _, err := s.Create(&models.ServicePost{Slug: published, Title: "Pub", StatusID: models.ServiceStatusPublished}); err != nil {
		t.Fatalf("Create published: %v", err)
	}
	if _, err := s.Create(&models.ServicePost{Slug: draft, Title: "Draft", StatusID: models.ServiceStatusDraft}); err != nil {
		t.Fatalf("Create draft: %v", err)
	}

	posts, err := s.ListPublished("")
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	for _, p := range posts {
		if p.Slug == draft {
			t.Error("draft post leaked into published list")
		}
	}
	var seen bool
	for _, p := range posts {
		if p.Slug == published {
			seen = true
		}
	}
	if !seen {
		t.Error("published post missing from list")
	}
}

func TestServicePostStoreDuplicateSlug(t *testing.T) {
	db := testDB(t)
	s := NewServicePostStore(db)

	slug := "test-post-dupe-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanServicePosts(t, db, slug) })

	if _, err := s.Create(&models.ServicePost{Slug: slug, Title: "First", StatusID: models.ServiceStatusDraft}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := s.Create(&models.ServicePost{Slug: slug, Title: "Second", StatusID: models.ServiceStatusDraft}); err == nil {
		t.Error("expected error for duplicate slug, got nil")
	}
}
