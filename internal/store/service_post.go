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

// ServicePostStore handles the identity-bearing service records with
// status, pricing, and category links.
type ServicePostStore struct {
	db *sql.DB
}

// NewServicePostStore returns a new ServicePostStore.
func NewServicePostStore(db *sql.DB) *ServicePostStore {
	return &ServicePostStore{db: db}
}

const servicePostColumns = `id, slug, title, excerpt, content, thumbnail, status_id,
	category_id, subcategory_id, price, sale_price,
	meta_description, meta_keywords, created_at, updated_at`

// scanServicePost scans a row into a ServicePost struct.
func scanServicePost(scanner interface{ Scan(...any) error }) (*models.ServicePost, error) {
	var p models.ServicePost
	err := scanner.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Content, &p.Thumbnail, &p.StatusID,
		&p.CategoryID, &p.SubcategoryID, &p.Price, &p.SalePrice,
		&p.MetaDescription, &p.MetaKeywords, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all service posts ordered by creation date descending.
func (s *ServicePostStore) List() ([]models.ServicePost, error) {
	rows, err := s.db.Query(`
		SELECT ` + servicePostColumns + `
		FROM service_posts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list service posts: %w", err)
	}
	defer rows.Close()
	return collectServicePosts(rows)
}

// ListPublished returns posts visible on the public site, optionally
// filtered to one category by slug.
func (s *ServicePostStore) ListPublished(categorySlug string) ([]models.ServicePost, error) {
	var rows *sql.Rows
	var err error
	if categorySlug == "" {
		rows, err = s.db.Query(`
			SELECT `+servicePostColumns+`
			FROM service_posts
			WHERE status_id = $1
			ORDER BY created_at DESC
		`, models.ServiceStatusPublished)
	} else {
		rows, err = s.db.Query(`
			SELECT p.id, p.slug, p.title, p.excerpt, p.content, p.thumbnail, p.status_id,
			       p.category_id, p.subcategory_id, p.price, p.sale_price,
			       p.meta_description, p.meta_keywords, p.created_at, p.updated_at
			FROM service_posts p
			JOIN service_categories c ON c.id = p.category_id
			WHERE p.status_id = $1 AND c.slug = $2
			ORDER BY p.created_at DESC
		`, models.ServiceStatusPublished, categorySlug)
	}
	if err != nil {
		return nil, fmt.Errorf("list published service posts: %w", err)
	}
	defer rows.Close()
	return collectServicePosts(rows)
}

func collectServicePosts(rows *sql.Rows) ([]models.ServicePost, error) {
	var items []models.ServicePost
	for rows.Next() {
		p, err := scanServicePost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a service post by its UUID. Returns nil if not found.
func (s *ServicePostStore) FindByID(id uuid.UUID) (*models.ServicePost, error) {
	row := s.db.QueryRow(`SELECT `+servicePostColumns+` FROM service_posts WHERE id = $1`, id)
	p, err := scanServicePost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find service post by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a service post by slug. Returns nil if not found.
func (s *ServicePostStore) FindBySlug(slug string) (*models.ServicePost, error) {
	row := s.db.QueryRow(`SELECT `+servicePostColumns+` FROM service_posts WHERE slug = $1`, slug)
	p, err := scanServicePost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find service post by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new service post and returns it with the generated ID.
func (s *ServicePostStore) Create(p *models.ServicePost) (*models.ServicePost, error) {
	row := s.db.QueryRow(`
		INSERT INTO service_posts (slug, title, excerpt, content, thumbnail, status_id,
			category_id, subcategory_id, price, sale_price, meta_description, meta_keywords)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+servicePostColumns,
		p.Slug, p.Title, p.Excerpt, p.Content, p.Thumbnail, p.StatusID,
		p.CategoryID, p.SubcategoryID, p.Price, p.SalePrice, p.MetaDescription, p.MetaKeywords,
	)
	result, err := scanServicePost(row)
	if err != nil {
		return nil, fmt.Errorf("create service post: %w", err)
	}
	return result, nil
}

// Update modifies an existing service post.
func (s *ServicePostStore) Update(p *models.ServicePost) error {
	_, err := s.db.Exec(`
		UPDATE service_posts SET
			slug = $1, title = $2, excerpt = $3, content = $4, thumbnail = $5,
			status_id = $6, category_id = $7, subcategory_id = $8,
			price = $9, sale_price = $10, meta_description = $11, meta_keywords = $12,
			updated_at = NOW()
		WHERE id = $13
	`, p.Slug, p.Title, p.Excerpt, p.Content, p.Thumbnail,
		p.StatusID, p.CategoryID, p.SubcategoryID,
		p.Price, p.SalePrice, p.MetaDescription, p.MetaKeywords, p.ID)
	if err != nil {
		return fmt.Errorf("update service post: %w", err)
	}
	return nil
}

// Delete removes a service post by ID.
func (s *ServicePostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM service_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service post: %w", err)
	}
	return nil
}

// Count returns the number of service posts.
func (s *ServicePostStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM service_posts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count service posts: %w", err)
	}
	return count, nil
}
