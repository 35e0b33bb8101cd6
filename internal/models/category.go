// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceCategory groups service posts for filtering and navigation.
type ServiceCategory struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Virtual fields populated by store methods.
	Subcategories []ServiceSubcategory `json:"subcategories,omitempty"`
	PostCount     int                  `json:"post_count"`
}

// HasSubcategories returns true if the category carries at least one subcategory.
func (c *ServiceCategory) HasSubcategories() bool {
	return len(c.Subcategories) > 0
}

// ServiceSubcategory is a second-level grouping under a ServiceCategory.
type ServiceSubcategory struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	SortOrder  int       `json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
