// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog reconciles the two independently-maintained service
// collections — editorial detail records and identity-bearing posts —
// into the single de-duplicated list the services manager displays.
// Merge is a pure function: deterministic for a given input, no I/O.
package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sandeshar/contentsolution-sub000/internal/models"
)

// defaultIcon is assigned to services synthesized from a post that has
// no editorial detail record.
const defaultIcon = "cog"

// nonAlphanumeric strips everything but letters and digits when building
// a title-based fallback key.
var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Merge unifies detail and post records into one list for display and
// editing. Every detail and every post contributes to at least one
// output entry; entries sharing a canonical key are merged rather than
// dropped. The result is sorted by creation date descending, with
// undated entries last.
func Merge(details []models.ServiceDetail, posts []models.ServicePost) []models.ServiceView {
	// Index posts by lowercase slug for the detail enrichment pass.
	bySlug := make(map[string]*models.ServicePost, len(posts))
	for i := range posts {
		key := canonical(posts[i].Slug)
		if key == "" {
			continue
		}
		if _, exists := bySlug[key]; !exists {
			bySlug[key] = &posts[i]
		}
	}

	claimed := make(map[*models.ServicePost]bool, len(details))
	views := make([]models.ServiceView, 0, len(details)+len(posts))

	// Each detail becomes a view, enriched from its matching post when
	// one exists. Detail fields act as defaults; post fields override
	// when present.
	for _, d := range details {
		v := viewFromDetail(d)
		if post, ok := bySlug[canonical(d.Key)]; ok {
			enrichFromPost(&v, post)
			claimed[post] = true
		}
		views = append(views, v)
	}

	// Posts nobody referenced still appear: synthesize a detail-shaped
	// record from the post alone. Only the exact post a detail absorbed
	// is skipped; another post that happens to share its slug still
	// contributes and collapses into the same entry in dedupe.
	for i := range posts {
		if claimed[&posts[i]] {
			continue
		}
		views = append(views, viewFromPost(&posts[i]))
	}

	merged := dedupe(views)

	// Newest first; zero timestamps sort last. Stable so that merge
	// order among equals is preserved.
	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i].CreatedAt, merged[j].CreatedAt
		if a.IsZero() != b.IsZero() {
			return b.IsZero()
		}
		return a.After(b)
	})

	return merged
}

// dedupe groups views by canonical key and collapses each group into a
// single record using first-non-empty merge semantics.
func dedupe(views []models.ServiceView) []models.ServiceView {
	var order []string
	groups := make(map[string][]models.ServiceView)

	for i, v := range views {
		key := groupKey(v, i)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], v)
	}

	result := make([]models.ServiceView, 0, len(order))
	for _, key := range order {
		group := groups[key]
		out := group[0]
		for _, next := range group[1:] {
			mergeInto(&out, &next)
		}
		result = append(result, out)
	}
	return result
}

// groupKey derives the de-duplication key for a view: the canonical
// slug when present, a normalized title otherwise. A record lacking
// both gets a key unique to its position, so it can never merge with
// an unrelated record — losing data to an accidental merge is worse
// than showing a duplicate. The position key is deterministic, keeping
// Merge idempotent even for these orphans.
func groupKey(v models.ServiceView, position int) string {
	if key := canonical(v.Slug); key != "" {
		return key
	}
	if title := normalizeTitle(v.Title); title != "" {
		return "~title:" + title
	}
	return fmt.Sprintf("~pos:%d", position)
}

// mergeInto folds src into dst field-by-field: the first non-empty
// value wins, so dst (the earlier record) is preferred. A non-nil
// PostID always survives no matter which side carries it.
func mergeInto(dst, src *models.ServiceView) {
	if dst.PostID == nil {
		dst.PostID = src.PostID
	}
	if dst.Slug == "" {
		dst.Slug = src.Slug
	}
	if dst.Title == "" {
		dst.Title = src.Title
	}
	if dst.Description == "" {
		dst.Description = src.Description
	}
	if len(dst.Bullets) == 0 {
		dst.Bullets = src.Bullets
	}
	if dst.Icon == "" || dst.Icon == defaultIcon {
		if src.Icon != "" {
			dst.Icon = src.Icon
		}
	}
	if dst.Image == "" {
		dst.Image = src.Image
	}
	if dst.DisplayOrder == 0 {
		dst.DisplayOrder = src.DisplayOrder
	}
	if dst.Excerpt == "" {
		dst.Excerpt = src.Excerpt
	}
	if dst.Content == "" {
		dst.Content = src.Content
	}
	if dst.Thumbnail == "" {
		dst.Thumbnail = src.Thumbnail
	}
	if dst.StatusID == 0 {
		dst.StatusID = src.StatusID
	}
	if dst.CategoryID == nil {
		dst.CategoryID = src.CategoryID
	}
	if dst.SubcategoryID == nil {
		dst.SubcategoryID = src.SubcategoryID
	}
	if dst.Price == nil {
		dst.Price = src.Price
	}
	if dst.SalePrice == nil {
		dst.SalePrice = src.SalePrice
	}
	if dst.MetaDescription == "" {
		dst.MetaDescription = src.MetaDescription
	}
	if dst.MetaKeywords == "" {
		dst.MetaKeywords = src.MetaKeywords
	}
	if dst.CreatedAt.IsZero() {
		dst.CreatedAt = src.CreatedAt
	}
}

// viewFromDetail maps an editorial record onto the merged shape.
func viewFromDetail(d models.ServiceDetail) models.ServiceView {
	return models.ServiceView{
		Slug:         d.Key,
		Title:        d.Title,
		Description:  d.Description,
		Bullets:      d.Bullets,
		Icon:         d.Icon,
		Image:        d.Image,
		DisplayOrder: d.DisplayOrder,
		CreatedAt:    d.CreatedAt,
	}
}

// viewFromPost synthesizes a view for a post with no detail record.
// It gets the default icon and no bullets, so posts-only services
// still show up in the manager.
func viewFromPost(p *models.ServicePost) models.ServiceView {
	v := models.ServiceView{
		Slug:    p.Slug,
		Title:   p.Title,
		Icon:    defaultIcon,
		Bullets: []string{},
	}
	enrichFromPost(&v, p)
	return v
}

// enrichFromPost copies the identity-bearing fields of a post onto a
// view. Post values override when present; empty post fields leave the
// detail defaults alone.
func enrichFromPost(v *models.ServiceView, p *models.ServicePost) {
	id := p.ID
	v.PostID = &id
	if p.Slug != "" {
		v.Slug = p.Slug
	}
	if p.Title != "" {
		v.Title = p.Title
	}
	v.Excerpt = p.Excerpt
	v.Content = p.Content
	if p.Thumbnail != "" {
		v.Thumbnail = p.Thumbnail
	}
	v.StatusID = p.StatusID
	v.CategoryID = p.CategoryID
	v.SubcategoryID = p.SubcategoryID
	v.Price = p.Price
	v.SalePrice = p.SalePrice
	v.MetaDescription = p.MetaDescription
	v.MetaKeywords = p.MetaKeywords
	if !p.CreatedAt.IsZero() {
		v.CreatedAt = p.CreatedAt
	}
}

// canonical lowercases and trims a slug or key.
func canonical(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeTitle lowercases a title and strips non-alphanumerics, so
// "Web Design!" and "web-design" collapse to the same fallback key.
func normalizeTitle(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "")
}
