// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// NavbarItem is a single row of the site navigation. Items form a tree
// through ParentID: root items have ParentID nil, children reference a
// root or another child. The persisted shape is flat; tree assembly
// happens in the navtree package.
type NavbarItem struct {
	ID         uuid.UUID  `json:"id"`
	Label      string     `json:"label"`
	Href       string     `json:"href"`
	SortOrder  int        `json:"order"`
	ParentID   *uuid.UUID `json:"parent_id"`
	IsButton   bool       `json:"is_button"`
	IsDropdown bool       `json:"is_dropdown"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Children is populated by tree assembly for display; never persisted.
	Children []NavbarItem `json:"children,omitempty"`
}

// IsRoot returns true for top-level navigation items.
func (n *NavbarItem) IsRoot() bool {
	return n.ParentID == nil
}
