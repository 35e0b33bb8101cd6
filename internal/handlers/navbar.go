// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/google/uuid"

	"golang.org/x/sync/errgroup"

	"github.com/sandeshar/contentsolution-sub000/internal/middleware"
	"github.com/sandeshar/contentsolution-sub000/internal/models"
	"github.com/sandeshar/contentsolution-sub000/internal/navtree"
	"github.com/sandeshar/contentsolution-sub000/internal/render"
)

// attachConcurrency caps parallel inserts during category attach.
const attachConcurrency = 4

// navRow is one display row of the flattened navbar tree.
type navRow struct {
	Item   models.NavbarItem
	Indent float64 // rem
	CSRF   string
}

// AttachReport summarizes an attach-categories run for the admin UI.
type AttachReport struct {
	Created int
	Skipped int
	Errors  []string
}

// loadNavTree builds the navtree arena from all persisted rows,
// including inactive ones, so admin operations see the full picture.
func (a *Admin) loadNavTree() (*navtree.Tree, error) {
	items, err := a.navbar.ListAll()
	if err != nil {
		return nil, fmt.Errorf("load navbar items: %w", err)
	}
	return navtree.New(items), nil
}

// NavbarPage renders the navbar management page.
func (a *Admin) NavbarPage(w http.ResponseWriter, r *http.Request) {
	a.renderNavbarPage(w, r, nil)
}

func (a *Admin) renderNavbarPage(w http.ResponseWriter, r *http.Request, report *AttachReport) {
	tree, err := a.loadNavTree()
	if err != nil {
		slog.Error("load navbar failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	csrf := middleware.CSRFTokenFromCtx(r.Context())
	rows := flattenNavTree(tree.Assemble(), 0, csrf)

	data := map[string]any{
		"Rows":  rows,
		"Roots": tree.Roots(),
	}
	if report != nil {
		data["AttachReport"] = report
	}

	a.renderer.Page(w, r, "navbar", &render.PageData{
		Title:   "Navbar",
		Section: "navbar",
		Data:    data,
	})
}

// flattenNavTree walks the assembled tree depth-first, producing one
// row per item with indentation matching its depth.
func flattenNavTree(items []models.NavbarItem, depth int, csrf string) []navRow {
	var rows []navRow
	for _, it := range items {
		children := it.Children
		it.Children = nil
		rows = append(rows, navRow{
			Item:   it,
			Indent: 0.75 + float64(depth)*1.5,
			CSRF:   csrf,
		})
		rows = append(rows, flattenNavTree(children, depth+1, csrf)...)
	}
	return rows
}

// NavbarCreate handles the new navbar item form submission.
func (a *Admin) NavbarCreate(w http.ResponseWriter, r *http.Request) {
	label := strings.TrimSpace(r.FormValue("label"))
	if label == "" {
		http.Redirect(w, r, "/admin/navbar", http.StatusSeeOther)
		return
	}

	tree, err := a.loadNavTree()
	if err != nil {
		slog.Error("load navbar failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	parentID := parseOptionalUUID(r.FormValue("parent_id"))
	siblingSet := uuid.Nil
	if parentID != nil {
		siblingSet = *parentID
	}

	item := &models.NavbarItem{
		Label:      label,
		Href:       strings.TrimSpace(r.FormValue("href")),
		SortOrder:  len(tree.Children(siblingSet)),
		ParentID:   parentID,
		IsButton:   r.FormValue("is_button") != "",
		IsDropdown: r.FormValue("is_dropdown") != "",
		IsActive:   r.FormValue("is_active") != "",
	}

	if _, err := a.navbar.Create(item); err != nil {
		slog.Error("create navbar item failed", "error", err, "label", label)
	} else {
		a.syncDropdownFlags(r)
		a.pageCache.InvalidateAll(r.Context())
	}
	http.Redirect(w, r, "/admin/navbar", http.StatusSeeOther)
}

// NavbarEdit renders the edit form for a navbar item.
func (a *Admin) NavbarEdit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	item, err := a.navbar.FindByID(id)
	if err != nil || item == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	tree, err := a.loadNavTree()
	if err != nil {
		slog.Error("load navbar failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, "navbar_form", &render.PageData{
		Title:   "Edit Navbar Item",
		Section: "navbar",
		Data: map[string]any{
			"Item":  item,
			"Roots": tree.Roots(),
		},
	})
}

// NavbarUpdate handles the edit form submission for a navbar item.
func (a *Admin) NavbarUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	item, err := a.navbar.FindByID(id)
	if err != nil || item == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	item.Label = strings.TrimSpace(r.FormValue("label"))
	item.Href = strings.TrimSpace(r.FormValue("href"))
	item.IsButton = r.FormValue("is_button") != ""
	item.IsDropdown = r.FormValue("is_dropdown") != ""
	item.IsActive = r.FormValue("is_active") != ""

	// Reparenting to itself would orphan the item.
	newParent := parseOptionalUUID(r.FormValue("parent_id"))
	if newParent == nil || *newParent != item.ID {
		item.ParentID = newParent
	}

	if err := a.navbar.Update(item); err != nil {
		slog.Error("update navbar item failed", "error", err, "id", item.ID)
	} else {
		a.syncDropdownFlags(r)
		a.pageCache.InvalidateAll(r.Context())
	}
	http.Redirect(w, r, "/admin/navbar", http.StatusSeeOther)
}

// NavbarMove swaps a navbar item with its neighbor within its sibling
// group. Boundary moves are silently ignored.
func (a *Admin) NavbarMove(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	dir := navtree.Direction(r.FormValue("direction"))
	if dir != navtree.MoveUp && dir != navtree.MoveDown {
		http.Error(w, "Invalid direction", http.StatusBadRequest)
		return
	}

	tree, err := a.loadNavTree()
	if err != nil {
		slog.Error("load navbar failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	item, ok := tree.Node(id)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	parent := uuid.Nil
	if item.ParentID != nil {
		parent = *item.ParentID
	}

	ordered, changed := navtree.Reorder(tree.Children(parent), id, dir)
	if !changed {
		http.Redirect(w, r, "/admin/navbar", http.StatusSeeOther)
		return
	}

	if err := a.navbar.UpdateOrders(ordered); err != nil {
		slog.Error("reorder navbar failed", "error", err, "id", id)
	} else {
		a.pageCache.InvalidateAll(r.Context())
	}
	http.Redirect(w, r, "/admin/navbar", http.StatusSeeOther)
}

// NavbarRemoveChildren deletes every descendant of an item, keeping
// the item itself.
func (a *Admin) NavbarRemoveChildren(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	tree, err := a.loadNavTree()
	if err != nil {
		slog.Error("load navbar failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ids := tree.SubtreeDeleteOrder(id)
	if len(ids) == 0 {
		http.Redirect(w, r, "/admin/navbar", http.StatusSeeOther)
		return
	}

	if err := a.navbar.DeleteMany(ids); err != nil {
		slog.Error("remove navbar children failed", "error", err, "id", id)
	} else {
		a.syncDropdownFlags(r)
		a.pageCache.InvalidateAll(r.Context())
	}
	http.Redirect(w, r, "/admin/navbar", http.StatusSeeOther)
}

// NavbarDelete deletes a navbar item together with its subtree.
func (a *Admin) NavbarDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	tree, err := a.loadNavTree()
	if err != nil {
		slog.Error("load navbar failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Descendants deepest-first, then the item itself.
	ids := append(tree.SubtreeDeleteOrder(id), id)

	if err := a.navbar.DeleteMany(ids); err != nil {
		slog.Error("delete navbar subtree failed", "error", err, "id", id)
	} else {
		a.syncDropdownFlags(r)
		a.pageCache.InvalidateAll(r.Context())
	}
	http.Redirect(w, r, "/admin/navbar", http.StatusSeeOther)
}

// NavbarAttachCategories attaches the service categories (and
// optionally their subcategories) as children of the chosen navbar
// item. Already-present links are skipped, so re-running a partially
// failed attach finishes the job.
func (a *Admin) NavbarAttachCategories(w http.ResponseWriter, r *http.Request) {
	parentID, err := uuid.Parse(r.FormValue("parent_id"))
	if err != nil {
		http.Error(w, "Invalid parent", http.StatusBadRequest)
		return
	}
	if parent, err := a.navbar.FindByID(parentID); err != nil || parent == nil {
		http.Error(w, "Parent not found", http.StatusNotFound)
		return
	}
	includeSubs := r.FormValue("include_subcategories") != ""

	tree, err := a.loadNavTree()
	if err != nil {
		slog.Error("load navbar failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	categories, err := a.categories.ListWithSubcategories()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	actions := navtree.PlanAttach(tree, parentID, categories, includeSubs)
	report := a.runAttach(actions)

	a.syncDropdownFlags(r)
	a.pageCache.InvalidateAll(r.Context())

	slog.Info("navbar attach finished",
		"parent", parentID, "created", report.Created,
		"skipped", report.Skipped, "errors", len(report.Errors))

	a.renderNavbarPage(w, r, report)
}

// runAttach executes the planned attach actions with bounded
// concurrency. Each action is independent: a category item plus its
// grandchildren, which must be created after it so they get its ID.
func (a *Admin) runAttach(actions []navtree.AttachAction) *AttachReport {
	report := &AttachReport{}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(attachConcurrency)

	for _, action := range actions {
		g.Go(func() error {
			created, skipped, errs := a.attachOne(action)
			mu.Lock()
			report.Created += created
			report.Skipped += skipped
			report.Errors = append(report.Errors, errs...)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return report
}

// attachOne persists a single attach action: the category item when it
// doesn't exist yet, then any missing subcategory items beneath it.
func (a *Admin) attachOne(action navtree.AttachAction) (created, skipped int, errs []string) {
	parent := action.Item

	if action.Existing {
		skipped++
		// An existing item may still need its dropdown flag raised
		// when subcategories are being attached beneath it.
		if len(action.Grandchildren) > 0 && !parent.IsDropdown {
			if err := a.navbar.UpdateDropdown(parent.ID, true); err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", parent.Label, err))
			}
		}
	} else {
		saved, err := a.navbar.Create(&parent)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", parent.Label, err))
			return created, skipped, errs
		}
		parent = *saved
		created++
	}

	for _, child := range action.Grandchildren {
		child.ParentID = &parent.ID
		if _, err := a.navbar.Create(&child); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", child.Label, err))
			continue
		}
		created++
	}
	return created, skipped, errs
}

// syncDropdownFlags reloads the tree and repairs is_dropdown flags
// that disagree with actual child counts.
func (a *Admin) syncDropdownFlags(r *http.Request) {
	tree, err := a.loadNavTree()
	if err != nil {
		slog.Error("load navbar for fixups failed", "error", err)
		return
	}
	for _, fix := range tree.DropdownFixups() {
		if err := a.navbar.UpdateDropdown(fix.ID, fix.Dropdown); err != nil {
			slog.Error("dropdown fixup failed", "error", err, "id", fix.ID)
		}
	}
}
