// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sandeshar/contentsolution-sub000/internal/models"
)

// PostStore manages blog posts.
type PostStore struct {
	db *sql.DB
}

// NewPostStore returns a new PostStore.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, slug, body, excerpt, status, meta_description, meta_keywords, featured_image, author_id, published_at, created_at, updated_at`

// scanPost scans a row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(&p.ID, &p.Title, &p.Slug, &p.Body, &p.Excerpt, &p.Status,
		&p.MetaDescription, &p.MetaKeywords, &p.FeaturedImage, &p.AuthorID,
		&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all posts regardless of status, newest first.
func (s *PostStore) List() ([]models.Post, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

// ListPublished returns published posts, most recently published first.
func (s *PostStore) ListPublished() ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+` FROM posts
		WHERE status = $1
		ORDER BY published_at DESC NULLS LAST
	`, models.PostStatusPublished)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

func collectPosts(rows *sql.Rows) ([]models.Post, error) {
	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a post by ID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a post by slug. Returns nil if not found.
func (s *PostStore) FindBySlug(slug string) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = $1`, slug)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new post and returns it. Publishing stamps
// published_at once; republishing an already-stamped post keeps the
// original date.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	publishedAt := p.PublishedAt
	if p.Status == models.PostStatusPublished && publishedAt == nil {
		now := time.Now()
		publishedAt = &now
	}
	row := s.db.QueryRow(`
		INSERT INTO posts (title, slug, body, excerpt, status, meta_description, meta_keywords, featured_image, author_id, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+postColumns,
		p.Title, p.Slug, p.Body, p.Excerpt, p.Status, p.MetaDescription,
		p.MetaKeywords, p.FeaturedImage, p.AuthorID, publishedAt,
	)
	result, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// Update modifies an existing post.
func (s *PostStore) Update(p *models.Post) error {
	publishedAt := p.PublishedAt
	if p.Status == models.PostStatusPublished && publishedAt == nil {
		now := time.Now()
		publishedAt = &now
	}
	_, err := s.db.Exec(`
		UPDATE posts SET
			title = $1, slug = $2, body = $3, excerpt = $4, status = $5,
			meta_description = $6, meta_keywords = $7, featured_image = $8,
			published_at = $9, updated_at = NOW()
		WHERE id = $10
	`, p.Title, p.Slug, p.Body, p.Excerpt, p.Status, p.MetaDescription,
		p.MetaKeywords, p.FeaturedImage, publishedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post by ID.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// Count returns the total number of posts.
func (s *PostStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}
