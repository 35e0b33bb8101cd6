// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package navtree maintains the site navigation as an in-memory arena of
// nodes indexed by id, assembled from the flat parent-referencing rows in
// navbar_items. All operations are pure with respect to the database: the
// package computes what should change (orderings, creations, deletions,
// dropdown-flag fixups) and the caller persists it.
package navtree

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/sandeshar/contentsolution-sub000/internal/models"
)

// Direction of a sibling reorder move.
type Direction string

const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)

// CategoryHref builds the link target a category navbar item points at.
// Attach matching relies on this exact shape.
func CategoryHref(slug string) string {
	return fmt.Sprintf("/services?category=%s", slug)
}

// SubcategoryHref builds the link target for a subcategory item.
func SubcategoryHref(categorySlug, subSlug string) string {
	return fmt.Sprintf("/services?category=%s&subcategory=%s", categorySlug, subSlug)
}

// Tree is an arena of navbar nodes with a children index. Roots are
// filed under uuid.Nil. The tree is rebuilt from the flat row list on
// every load; it holds copies, never pointers into caller slices.
type Tree struct {
	nodes    map[uuid.UUID]models.NavbarItem
	children map[uuid.UUID][]uuid.UUID
}

// New builds a tree from flat navbar rows. Rows referencing a missing
// parent are treated as roots rather than dropped.
func New(items []models.NavbarItem) *Tree {
	t := &Tree{
		nodes:    make(map[uuid.UUID]models.NavbarItem, len(items)),
		children: make(map[uuid.UUID][]uuid.UUID),
	}
	for _, it := range items {
		it.Children = nil
		t.nodes[it.ID] = it
	}
	for _, it := range t.nodes {
		parent := uuid.Nil
		if it.ParentID != nil {
			if _, ok := t.nodes[*it.ParentID]; ok {
				parent = *it.ParentID
			}
		}
		t.children[parent] = append(t.children[parent], it.ID)
	}
	// Deterministic child order: sort_order, then id as tiebreaker.
	for parent := range t.children {
		ids := t.children[parent]
		sort.Slice(ids, func(i, j int) bool {
			a, b := t.nodes[ids[i]], t.nodes[ids[j]]
			if a.SortOrder != b.SortOrder {
				return a.SortOrder < b.SortOrder
			}
			return a.ID.String() < b.ID.String()
		})
		t.children[parent] = ids
	}
	return t
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns a copy of the node with the given id.
func (t *Tree) Node(id uuid.UUID) (models.NavbarItem, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Roots returns the top-level items ordered by sort_order.
func (t *Tree) Roots() []models.NavbarItem {
	return t.Children(uuid.Nil)
}

// Children returns the direct children of parentID ordered by sort_order.
// Pass uuid.Nil for root items.
func (t *Tree) Children(parentID uuid.UUID) []models.NavbarItem {
	ids := t.children[parentID]
	out := make([]models.NavbarItem, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.nodes[id])
	}
	return out
}

// HasChildren reports whether the node has at least one child.
func (t *Tree) HasChildren(id uuid.UUID) bool {
	return len(t.children[id]) > 0
}

// FindByHref returns the child of parentID whose href matches exactly.
// This is the attach idempotency check: an item is "already present"
// when the same href exists under the same parent.
func (t *Tree) FindByHref(parentID uuid.UUID, href string) (models.NavbarItem, bool) {
	for _, id := range t.children[parentID] {
		if t.nodes[id].Href == href {
			return t.nodes[id], true
		}
	}
	return models.NavbarItem{}, false
}

// Assemble returns the display tree: roots with Children populated
// recursively, every level ordered by sort_order.
func (t *Tree) Assemble() []models.NavbarItem {
	return t.assemble(uuid.Nil)
}

func (t *Tree) assemble(parentID uuid.UUID) []models.NavbarItem {
	items := t.Children(parentID)
	for i := range items {
		items[i].Children = t.assemble(items[i].ID)
	}
	return items
}

// SubtreeDeleteOrder returns the ids of every descendant of parentID in
// bottom-up order (deepest first), so a caller deleting them in sequence
// never removes a row before its children. The parent itself is not
// included — removing a subtree retains the item it hangs from.
func (t *Tree) SubtreeDeleteOrder(parentID uuid.UUID) []uuid.UUID {
	var out []uuid.UUID
	var walk func(id uuid.UUID)
	walk = func(id uuid.UUID) {
		for _, child := range t.children[id] {
			walk(child)
			out = append(out, child)
		}
	}
	walk(parentID)
	return out
}

// DropdownFixups returns the nodes whose is_dropdown flag disagrees with
// whether they actually have children, paired with the value the flag
// should take. Mutations call this after structural changes to bring the
// flags back in line.
type DropdownFixup struct {
	ID       uuid.UUID
	Dropdown bool
}

func (t *Tree) DropdownFixups() []DropdownFixup {
	var out []DropdownFixup
	// Walk in deterministic order for stable persistence batches.
	var walk func(id uuid.UUID)
	walk = func(id uuid.UUID) {
		for _, child := range t.children[id] {
			n := t.nodes[child]
			if has := t.HasChildren(child); n.IsDropdown != has {
				out = append(out, DropdownFixup{ID: child, Dropdown: has})
			}
			walk(child)
		}
	}
	walk(uuid.Nil)
	return out
}

// Reorder swaps the moved item with its immediate neighbor inside an
// order-sorted sibling group, then renumbers the whole group so
// sort_order stays contiguous. Boundary moves (first item up, last item
// down) are a no-op and return changed=false; the caller skips
// persistence entirely in that case.
func Reorder(siblings []models.NavbarItem, movedID uuid.UUID, dir Direction) (ordered []models.NavbarItem, changed bool) {
	ordered = make([]models.NavbarItem, len(siblings))
	copy(ordered, siblings)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SortOrder < ordered[j].SortOrder
	})

	idx := -1
	for i, it := range ordered {
		if it.ID == movedID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ordered, false
	}

	swap := idx - 1
	if dir == MoveDown {
		swap = idx + 1
	}
	if swap < 0 || swap >= len(ordered) {
		// Already at the boundary.
		renumber(ordered)
		return ordered, false
	}

	ordered[idx], ordered[swap] = ordered[swap], ordered[idx]
	renumber(ordered)
	return ordered, true
}

// renumber assigns contiguous sort_order values to every sibling, not
// just the swapped pair, repairing any gaps left by earlier deletes.
func renumber(items []models.NavbarItem) {
	for i := range items {
		items[i].SortOrder = i
	}
}

// AttachAction describes one navbar item the attach operation wants to
// exist: either it is already there (Existing set) or it must be created.
type AttachAction struct {
	Item     models.NavbarItem // fully populated except ID when creating
	Existing bool
	// Grandchildren to create under this item once its ID is known.
	// Only set for category items attached with subcategories.
	Grandchildren []models.NavbarItem
}

// PlanAttach computes the creations needed to attach the selected
// categories as children of parentID. An item already present under the
// parent (matched by href) is reported but not re-created, which makes
// re-running a partially failed attach idempotent. When
// includeSubcategories is set and a category has subcategories, the plan
// includes grandchild items (again skipping existing ones) and marks the
// category item as a dropdown.
func PlanAttach(t *Tree, parentID uuid.UUID, categories []models.ServiceCategory, includeSubcategories bool) []AttachAction {
	actions := make([]AttachAction, 0, len(categories))
	nextOrder := len(t.children[parentID])

	for _, cat := range categories {
		href := CategoryHref(cat.Slug)
		action := AttachAction{}

		if existing, ok := t.FindByHref(parentID, href); ok {
			action.Item = existing
			action.Existing = true
		} else {
			pid := parentID
			action.Item = models.NavbarItem{
				Label:     cat.Name,
				Href:      href,
				SortOrder: nextOrder,
				ParentID:  &pid,
				IsActive:  true,
			}
			nextOrder++
		}

		if includeSubcategories && cat.HasSubcategories() {
			action.Item.IsDropdown = true
			subOrder := 0
			if action.Existing {
				subOrder = len(t.children[action.Item.ID])
			}
			for _, sub := range cat.Subcategories {
				subHref := SubcategoryHref(cat.Slug, sub.Slug)
				if action.Existing {
					if _, ok := t.FindByHref(action.Item.ID, subHref); ok {
						continue
					}
				}
				action.Grandchildren = append(action.Grandchildren, models.NavbarItem{
					Label:     sub.Name,
					Href:      subHref,
					SortOrder: subOrder,
					IsActive:  true,
					// ParentID is filled in by the caller once the
					// category item exists.
				})
				subOrder++
			}
		}

		actions = append(actions, action)
	}
	return actions
}
