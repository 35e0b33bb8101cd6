// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ServicePostStatus values stored in service_posts.status_id.
const (
	ServiceStatusDraft     = 1
	ServiceStatusPublished = 2
	ServiceStatusArchived  = 3
)

// ServiceDetail is the editorial record describing a service for marketing
// display: icon, bullet points, image. It is keyed by a human-chosen Key
// that doubles as the slug, and exists independently of any ServicePost.
type ServiceDetail struct {
	Key          string    `json:"key"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Bullets      []string  `json:"bullets"`
	Icon         string    `json:"icon"`
	Image        string    `json:"image"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ServicePost is the authoritative, identity-bearing record for a service:
// it has a database ID, publishing status, pricing, and category links.
// A post is optionally linked 1:1 to a ServiceDetail by matching slug/key.
type ServicePost struct {
	ID              uuid.UUID  `json:"id"`
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content"`
	Thumbnail       string     `json:"thumbnail"`
	StatusID        int        `json:"status_id"`
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
	SubcategoryID   *uuid.UUID `json:"subcategory_id,omitempty"`
	Price           *float64   `json:"price,omitempty"`
	SalePrice       *float64   `json:"sale_price,omitempty"`
	MetaDescription string     `json:"meta_description"`
	MetaKeywords    string     `json:"meta_keywords"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IsPublished returns true if the post is visible on the public site.
func (p *ServicePost) IsPublished() bool {
	return p.StatusID == ServiceStatusPublished
}

// ServiceView is the derived, read-time union of a ServiceDetail and its
// matching ServicePost, keyed canonically by lowercase slug. It is never
// persisted; the services manager recomputes it on every load.
type ServiceView struct {
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Bullets         []string   `json:"bullets"`
	Icon            string     `json:"icon"`
	Image           string     `json:"image"`
	DisplayOrder    int        `json:"display_order"`
	PostID          *uuid.UUID `json:"post_id,omitempty"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content"`
	Thumbnail       string     `json:"thumbnail"`
	StatusID        int        `json:"status_id"`
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
	SubcategoryID   *uuid.UUID `json:"subcategory_id,omitempty"`
	Price           *float64   `json:"price,omitempty"`
	SalePrice       *float64   `json:"sale_price,omitempty"`
	MetaDescription string     `json:"meta_description"`
	MetaKeywords    string     `json:"meta_keywords"`
	CreatedAt       time.Time  `json:"created_at"`
}

// HasPost returns true if the view is linked to a real service post.
func (v *ServiceView) HasPost() bool {
	return v.PostID != nil
}
