// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the site.
// Handlers are grouped by concern (admin, navbar, public, auth, api)
// and receive their dependencies through the handler struct.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/google/uuid"

	"github.com/sandeshar/contentsolution-sub000/internal/cache"
	"github.com/sandeshar/contentsolution-sub000/internal/catalog"
	"github.com/sandeshar/contentsolution-sub000/internal/middleware"
	"github.com/sandeshar/contentsolution-sub000/internal/models"
	"github.com/sandeshar/contentsolution-sub000/internal/render"
	"github.com/sandeshar/contentsolution-sub000/internal/session"
	"github.com/sandeshar/contentsolution-sub000/internal/slug"
	"github.com/sandeshar/contentsolution-sub000/internal/storage"
	"github.com/sandeshar/contentsolution-sub000/internal/store"
)

// settingsKeys lists the site settings editable from the admin panel,
// in display order.
var settingsKeys = []string{
	"site_name",
	"site_tagline",
	"footer_text",
	"contact_email",
	"contact_phone",
	"contact_address",
}

// Admin groups all admin panel HTTP handlers and their dependencies.
type Admin struct {
	renderer      *render.Renderer
	sessions      *session.Store
	details       *store.ServiceDetailStore
	servicePosts  *store.ServicePostStore
	categories    *store.CategoryStore
	navbar        *store.NavbarStore
	contacts      *store.ContactStore
	testimonials  *store.TestimonialStore
	faqs          *store.FAQStore
	sections      *store.SectionStore
	posts         *store.PostStore
	settings      *store.SiteSettingStore
	userStore     *store.UserStore
	mediaStore    *store.MediaStore
	storageClient *storage.Client
	pageCache     *cache.PageCache
}

// NewAdmin creates a new Admin handler group with the given dependencies.
// storageClient and mediaStore may be nil if S3 is not configured.
func NewAdmin(renderer *render.Renderer, sessions *session.Store, details *store.ServiceDetailStore, servicePosts *store.ServicePostStore, categories *store.CategoryStore, navbar *store.NavbarStore, contacts *store.ContactStore, testimonials *store.TestimonialStore, faqs *store.FAQStore, sections *store.SectionStore, posts *store.PostStore, settings *store.SiteSettingStore, userStore *store.UserStore, mediaStore *store.MediaStore, storageClient *storage.Client, pageCache *cache.PageCache) *Admin {
	return &Admin{
		renderer:      renderer,
		sessions:      sessions,
		details:       details,
		servicePosts:  servicePosts,
		categories:    categories,
		navbar:        navbar,
		contacts:      contacts,
		testimonials:  testimonials,
		faqs:          faqs,
		sections:      sections,
		posts:         posts,
		settings:      settings,
		userStore:     userStore,
		mediaStore:    mediaStore,
		storageClient: storageClient,
		pageCache:     pageCache,
	}
}

// Dashboard renders the admin dashboard page with real stats.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	details, _ := a.details.List()
	servicePosts, _ := a.servicePosts.List()
	serviceCount := len(catalog.Merge(details, servicePosts))

	postCount, _ := a.posts.Count()
	navbarCount, _ := a.navbar.Count()
	byStatus, _ := a.contacts.CountByStatus()

	recent, err := a.contacts.List("")
	if err != nil {
		slog.Error("list contacts failed", "error", err)
	}
	if len(recent) > 5 {
		recent = recent[:5]
	}

	a.renderer.Page(w, r, "dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data: map[string]any{
			"ServiceCount":    serviceCount,
			"PostCount":       postCount,
			"NewMessageCount": byStatus[models.ContactStatusNew],
			"NavbarCount":     navbarCount,
			"RecentMessages":  recent,
		},
	})
}

// --- Services manager ---

// ServicesList renders the merged services view: every service detail
// and every service post, folded into one row per slug.
func (a *Admin) ServicesList(w http.ResponseWriter, r *http.Request) {
	details, err := a.details.List()
	if err != nil {
		slog.Error("list service details failed", "error", err)
	}
	posts, err := a.servicePosts.List()
	if err != nil {
		slog.Error("list service posts failed", "error", err)
	}

	a.renderer.Page(w, r, "services", &render.PageData{
		Title:   "Services",
		Section: "services",
		Data:    map[string]any{"Services": catalog.Merge(details, posts)},
	})
}

// ServiceDetailNew renders the new service detail form.
func (a *Admin) ServiceDetailNew(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "service_detail_form", &render.PageData{
		Title:   "New Service Detail",
		Section: "services",
		Data: map[string]any{
			"Detail": &models.ServiceDetail{},
			"Action": "/admin/services/details",
		},
	})
}

// ServiceDetailCreate handles the new service detail form submission.
func (a *Admin) ServiceDetailCreate(w http.ResponseWriter, r *http.Request) {
	d := &models.ServiceDetail{
		Key:          slug.Generate(r.FormValue("key")),
		Title:        strings.TrimSpace(r.FormValue("title")),
		Description:  r.FormValue("description"),
		Bullets:      splitBullets(r.FormValue("bullets")),
		Icon:         strings.TrimSpace(r.FormValue("icon")),
		Image:        strings.TrimSpace(r.FormValue("image")),
		DisplayOrder: atoiOr(r.FormValue("display_order"), 0),
	}
	if d.Key == "" {
		d.Key = slug.Generate(d.Title)
	}

	if errMsg := validateService(d.Title, d.Key); errMsg != "" {
		a.renderer.Page(w, r, "service_detail_form", &render.PageData{
			Title:   "New Service Detail",
			Section: "services",
			Data:    map[string]any{"Detail": d, "Action": "/admin/services/details"},
			Flashes: []render.Flash{{Type: "error", Message: errMsg}},
		})
		return
	}

	if _, err := a.details.Create(d); err != nil {
		slog.Error("create service detail failed", "error", err, "key", d.Key)
		a.renderer.Page(w, r, "service_detail_form", &render.PageData{
			Title:   "New Service Detail",
			Section: "services",
			Data:    map[string]any{"Detail": d, "Action": "/admin/services/details"},
			Flashes: []render.Flash{{Type: "error", Message: "Failed to create. The key may already exist."}},
		})
		return
	}

	a.invalidateServicePages(r.Context(), d.Key)
	http.Redirect(w, r, "/admin/services", http.StatusSeeOther)
}

// ServiceDetailEdit renders the edit form for a service detail.
func (a *Admin) ServiceDetailEdit(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	d, err := a.details.FindByKey(key)
	if err != nil || d == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	a.renderer.Page(w, r, "service_detail_form", &render.PageData{
		Title:   "Edit Service Detail",
		Section: "services",
		Data: map[string]any{
			"Detail": d,
			"Action": "/admin/services/details/" + d.Key,
		},
	})
}

// ServiceDetailUpdate handles the edit form submission for a service detail.
func (a *Admin) ServiceDetailUpdate(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	d, err := a.details.FindByKey(key)
	if err != nil || d == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	d.Title = strings.TrimSpace(r.FormValue("title"))
	d.Description = r.FormValue("description")
	d.Bullets = splitBullets(r.FormValue("bullets"))
	d.Icon = strings.TrimSpace(r.FormValue("icon"))
	d.Image = strings.TrimSpace(r.FormValue("image"))
	d.DisplayOrder = atoiOr(r.FormValue("display_order"), d.DisplayOrder)

	if errMsg := validateService(d.Title, d.Key); errMsg != "" {
		a.renderer.Page(w, r, "service_detail_form", &render.PageData{
			Title:   "Edit Service Detail",
			Section: "services",
			Data:    map[string]any{"Detail": d, "Action": "/admin/services/details/" + d.Key},
			Flashes: []render.Flash{{Type: "error", Message: errMsg}},
		})
		return
	}

	if err := a.details.Update(d); err != nil {
		slog.Error("update service detail failed", "error", err, "key", d.Key)
		a.renderer.Page(w, r, "service_detail_form", &render.PageData{
			Title:   "Edit Service Detail",
			Section: "services",
			Data:    map[string]any{"Detail": d, "Action": "/admin/services/details/" + d.Key},
			Flashes: []render.Flash{{Type: "error", Message: "Failed to save changes."}},
		})
		return
	}

	a.invalidateServicePages(r.Context(), d.Key)
	http.Redirect(w, r, "/admin/services", http.StatusSeeOther)
}

// ServiceDetailDelete handles service detail deletion. A linked service
// post is left alone: the merged view simply loses the editorial fields.
func (a *Admin) ServiceDetailDelete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := a.details.Delete(key); err != nil {
		slog.Error("delete service detail failed", "error", err, "key", key)
	} else {
		a.invalidateServicePages(r.Context(), key)
	}
	http.Redirect(w, r, "/admin/services", http.StatusSeeOther)
}

// ServicePostNew renders the new service post form.
func (a *Admin) ServicePostNew(w http.ResponseWriter, r *http.Request) {
	a.renderServicePostForm(w, r, &models.ServicePost{StatusID: models.ServiceStatusDraft}, true, "")
}

// renderServicePostForm renders the service post form with category
// choices loaded. errMsg, when non-empty, is shown as an error flash.
func (a *Admin) renderServicePostForm(w http.ResponseWriter, r *http.Request, p *models.ServicePost, isNew bool, errMsg string) {
	categories, err := a.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
	}
	subcategories, err := a.categories.ListSubcategories(nil)
	if err != nil {
		slog.Error("list subcategories failed", "error", err)
	}

	title := "Edit Service Post"
	action := "/admin/services/posts/" + p.ID.String()
	if isNew {
		title = "New Service Post"
		action = "/admin/services/posts"
	}

	data := &render.PageData{
		Title:   title,
		Section: "services",
		Data: map[string]any{
			"Post":          p,
			"IsNew":         isNew,
			"Action":        action,
			"Categories":    categories,
			"Subcategories": subcategories,
		},
	}
	if errMsg != "" {
		data.Flashes = []render.Flash{{Type: "error", Message: errMsg}}
	}
	a.renderer.Page(w, r, "service_post_form", data)
}

// servicePostFromForm applies form values onto a service post.
func servicePostFromForm(r *http.Request, p *models.ServicePost) {
	p.Title = strings.TrimSpace(r.FormValue("title"))
	p.Slug = slug.Generate(r.FormValue("slug"))
	if p.Slug == "" {
		p.Slug = slug.Generate(p.Title)
	}
	p.Excerpt = r.FormValue("excerpt")
	p.Content = r.FormValue("content")
	p.Thumbnail = strings.TrimSpace(r.FormValue("thumbnail"))
	p.StatusID = atoiOr(r.FormValue("status_id"), models.ServiceStatusDraft)
	if p.StatusID < models.ServiceStatusDraft || p.StatusID > models.ServiceStatusArchived {
		p.StatusID = models.ServiceStatusDraft
	}
	p.CategoryID = parseOptionalUUID(r.FormValue("category_id"))
	p.SubcategoryID = parseOptionalUUID(r.FormValue("subcategory_id"))
	p.Price = parseOptionalFloat(r.FormValue("price"))
	p.SalePrice = parseOptionalFloat(r.FormValue("sale_price"))
	p.MetaDescription = r.FormValue("meta_description")
	p.MetaKeywords = r.FormValue("meta_keywords")
}

// ServicePostCreate handles the new service post form submission.
func (a *Admin) ServicePostCreate(w http.ResponseWriter, r *http.Request) {
	p := &models.ServicePost{}
	servicePostFromForm(r, p)

	if errMsg := validateService(p.Title, p.Slug); errMsg != "" {
		a.renderServicePostForm(w, r, p, true, errMsg)
		return
	}

	if _, err := a.servicePosts.Create(p); err != nil {
		slog.Error("create service post failed", "error", err, "slug", p.Slug)
		a.renderServicePostForm(w, r, p, true, "Failed to create. The slug may already exist.")
		return
	}

	a.invalidateServicePages(r.Context(), p.Slug)
	http.Redirect(w, r, "/admin/services", http.StatusSeeOther)
}

// ServicePostEdit renders the edit form for a service post.
func (a *Admin) ServicePostEdit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	p, err := a.servicePosts.FindByID(id)
	if err != nil || p == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	a.renderServicePostForm(w, r, p, false, "")
}

// ServicePostUpdate handles the edit form submission for a service post.
func (a *Admin) ServicePostUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	p, err := a.servicePosts.FindByID(id)
	if err != nil || p == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	oldSlug := p.Slug
	servicePostFromForm(r, p)

	if errMsg := validateService(p.Title, p.Slug); errMsg != "" {
		a.renderServicePostForm(w, r, p, false, errMsg)
		return
	}

	if err := a.servicePosts.Update(p); err != nil {
		slog.Error("update service post failed", "error", err, "id", p.ID)
		a.renderServicePostForm(w, r, p, false, "Failed to save. The slug may already exist.")
		return
	}

	a.invalidateServicePages(r.Context(), p.Slug)
	if oldSlug != p.Slug {
		a.invalidateServicePages(r.Context(), oldSlug)
	}
	http.Redirect(w, r, "/admin/services", http.StatusSeeOther)
}

// ServicePostDelete handles service post deletion.
func (a *Admin) ServicePostDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	// Look up the slug before deleting so we can invalidate its page.
	p, _ := a.servicePosts.FindByID(id)

	if err := a.servicePosts.Delete(id); err != nil {
		slog.Error("delete service post failed", "error", err, "id", id)
	} else if p != nil {
		a.invalidateServicePages(r.Context(), p.Slug)
	}

	http.Redirect(w, r, "/admin/services", http.StatusSeeOther)
}

// --- Categories ---

// CategoriesPage renders the category management page.
func (a *Admin) CategoriesPage(w http.ResponseWriter, r *http.Request) {
	categories, err := a.categories.ListWithSubcategories()
	if err != nil {
		slog.Error("list categories failed", "error", err)
	}

	a.renderer.Page(w, r, "categories", &render.PageData{
		Title:   "Categories",
		Section: "categories",
		Data:    map[string]any{"Categories": categories},
	})
}

// CategoryCreate handles the new category form submission.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	c := &models.ServiceCategory{
		Name: strings.TrimSpace(r.FormValue("name")),
		Slug: slug.Generate(r.FormValue("slug")),
	}
	if c.Slug == "" {
		c.Slug = slug.Generate(c.Name)
	}

	if c.Name == "" {
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}

	if _, err := a.categories.Create(c); err != nil {
		slog.Error("create category failed", "error", err, "slug", c.Slug)
	}
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// CategoryDelete handles category deletion. Subcategories cascade;
// service posts keep their rows with the category link cleared.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if err := a.categories.Delete(id); err != nil {
		slog.Error("delete category failed", "error", err, "id", id)
	} else {
		// Category filters appear on the public services page.
		a.pageCache.InvalidatePage(r.Context(), "services")
	}
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// SubcategoryCreate handles the new subcategory form submission.
func (a *Admin) SubcategoryCreate(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(r.FormValue("category_id"))
	if err != nil {
		http.Error(w, "Invalid category", http.StatusBadRequest)
		return
	}

	sc := &models.ServiceSubcategory{
		CategoryID: categoryID,
		Name:       strings.TrimSpace(r.FormValue("name")),
		Slug:       slug.Generate(r.FormValue("slug")),
	}
	if sc.Slug == "" {
		sc.Slug = slug.Generate(sc.Name)
	}

	if sc.Name == "" {
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}

	if _, err := a.categories.CreateSubcategory(sc); err != nil {
		slog.Error("create subcategory failed", "error", err, "slug", sc.Slug)
	}
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// --- Page sections ---

// SectionsPage renders the page sections management page.
func (a *Admin) SectionsPage(w http.ResponseWriter, r *http.Request) {
	sections, err := a.sections.List()
	if err != nil {
		slog.Error("list sections failed", "error", err)
	}

	a.renderer.Page(w, r, "sections", &render.PageData{
		Title:   "Page Sections",
		Section: "sections",
		Data:    map[string]any{"Sections": sections},
	})
}

// SectionCreate handles the new section form submission.
func (a *Admin) SectionCreate(w http.ResponseWriter, r *http.Request) {
	ps := &models.PageSection{}
	sectionFromForm(r, ps)

	if ps.Page == "" || ps.Section == "" {
		http.Redirect(w, r, "/admin/sections", http.StatusSeeOther)
		return
	}

	if _, err := a.sections.Create(ps); err != nil {
		slog.Error("create section failed", "error", err, "page", ps.Page, "section", ps.Section)
	} else {
		a.invalidatePublicPage(r.Context(), ps.Page)
	}
	http.Redirect(w, r, "/admin/sections", http.StatusSeeOther)
}

// SectionEdit renders the edit form for a page section.
func (a *Admin) SectionEdit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	ps, err := a.sections.FindByID(id)
	if err != nil || ps == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	a.renderer.Page(w, r, "section_form", &render.PageData{
		Title:   "Edit Section",
		Section: "sections",
		Data:    map[string]any{"Section": ps},
	})
}

// SectionUpdate handles the edit form submission for a page section.
func (a *Admin) SectionUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	ps, err := a.sections.FindByID(id)
	if err != nil || ps == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	oldPage := ps.Page
	sectionFromForm(r, ps)

	if err := a.sections.Update(ps); err != nil {
		slog.Error("update section failed", "error", err, "id", ps.ID)
	} else {
		a.invalidatePublicPage(r.Context(), ps.Page)
		if oldPage != ps.Page {
			a.invalidatePublicPage(r.Context(), oldPage)
		}
	}
	http.Redirect(w, r, "/admin/sections", http.StatusSeeOther)
}

// SectionDelete handles page section deletion.
func (a *Admin) SectionDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	ps, _ := a.sections.FindByID(id)
	if err := a.sections.Delete(id); err != nil {
		slog.Error("delete section failed", "error", err, "id", id)
	} else if ps != nil {
		a.invalidatePublicPage(r.Context(), ps.Page)
	}
	http.Redirect(w, r, "/admin/sections", http.StatusSeeOther)
}

// sectionFromForm applies form values onto a page section.
func sectionFromForm(r *http.Request, ps *models.PageSection) {
	ps.Page = strings.TrimSpace(strings.ToLower(r.FormValue("page")))
	ps.Section = strings.TrimSpace(strings.ToLower(r.FormValue("section")))
	ps.Heading = strings.TrimSpace(r.FormValue("heading"))
	ps.Subheading = strings.TrimSpace(r.FormValue("subheading"))
	ps.Body = r.FormValue("body")
	ps.Image = strings.TrimSpace(r.FormValue("image"))
	ps.SortOrder = atoiOr(r.FormValue("sort_order"), ps.SortOrder)
}

// --- Blog posts ---

// PostsList renders the blog post management page.
func (a *Admin) PostsList(w http.ResponseWriter, r *http.Request) {
	posts, err := a.posts.List()
	if err != nil {
		slog.Error("list posts failed", "error", err)
	}

	a.renderer.Page(w, r, "posts", &render.PageData{
		Title:   "Blog Posts",
		Section: "posts",
		Data:    map[string]any{"Posts": posts},
	})
}

// PostNew renders the new blog post form.
func (a *Admin) PostNew(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "post_form", &render.PageData{
		Title:   "New Post",
		Section: "posts",
		Data: map[string]any{
			"Post":   &models.Post{Status: models.PostStatusDraft},
			"IsNew":  true,
			"Action": "/admin/posts",
		},
	})
}

// postFromForm applies form values onto a blog post.
func postFromForm(r *http.Request, p *models.Post) {
	p.Title = strings.TrimSpace(r.FormValue("title"))
	p.Slug = slug.Generate(r.FormValue("slug"))
	if p.Slug == "" {
		p.Slug = slug.Generate(p.Title)
	}
	p.Body = r.FormValue("body")
	p.Status = models.PostStatus(r.FormValue("status"))
	if p.Status != models.PostStatusPublished {
		p.Status = models.PostStatusDraft
	}
	p.FeaturedImage = strings.TrimSpace(r.FormValue("featured_image"))
	p.Excerpt = optionalString(r.FormValue("excerpt"))
	p.MetaDescription = optionalString(r.FormValue("meta_description"))
	p.MetaKeywords = optionalString(r.FormValue("meta_keywords"))
}

// PostCreate handles the new blog post form submission.
func (a *Admin) PostCreate(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	p := &models.Post{AuthorID: sess.UserID}
	postFromForm(r, p)

	if errMsg := validateContent(p.Title, p.Slug, p.Body); errMsg != "" {
		a.renderer.Page(w, r, "post_form", &render.PageData{
			Title:   "New Post",
			Section: "posts",
			Data:    map[string]any{"Post": p, "IsNew": true, "Action": "/admin/posts"},
			Flashes: []render.Flash{{Type: "error", Message: errMsg}},
		})
		return
	}

	if _, err := a.posts.Create(p); err != nil {
		slog.Error("create post failed", "error", err, "slug", p.Slug)
		a.renderer.Page(w, r, "post_form", &render.PageData{
			Title:   "New Post",
			Section: "posts",
			Data:    map[string]any{"Post": p, "IsNew": true, "Action": "/admin/posts"},
			Flashes: []render.Flash{{Type: "error", Message: "Failed to create. The slug may already exist."}},
		})
		return
	}

	a.invalidateBlogPages(r.Context(), p.Slug)
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostEdit renders the edit blog post form.
func (a *Admin) PostEdit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	p, err := a.posts.FindByID(id)
	if err != nil || p == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	a.renderer.Page(w, r, "post_form", &render.PageData{
		Title:   "Edit Post",
		Section: "posts",
		Data: map[string]any{
			"Post":   p,
			"IsNew":  false,
			"Action": "/admin/posts/" + p.ID.String(),
		},
	})
}

// PostUpdate handles the edit blog post form submission.
func (a *Admin) PostUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	p, err := a.posts.FindByID(id)
	if err != nil || p == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	oldSlug := p.Slug
	postFromForm(r, p)

	if errMsg := validateContent(p.Title, p.Slug, p.Body); errMsg != "" {
		a.renderer.Page(w, r, "post_form", &render.PageData{
			Title:   "Edit Post",
			Section: "posts",
			Data:    map[string]any{"Post": p, "IsNew": false, "Action": "/admin/posts/" + p.ID.String()},
			Flashes: []render.Flash{{Type: "error", Message: errMsg}},
		})
		return
	}

	if err := a.posts.Update(p); err != nil {
		slog.Error("update post failed", "error", err, "id", p.ID)
		a.renderer.Page(w, r, "post_form", &render.PageData{
			Title:   "Edit Post",
			Section: "posts",
			Data:    map[string]any{"Post": p, "IsNew": false, "Action": "/admin/posts/" + p.ID.String()},
			Flashes: []render.Flash{{Type: "error", Message: "Failed to save. The slug may already exist."}},
		})
		return
	}

	a.invalidateBlogPages(r.Context(), p.Slug)
	if oldSlug != p.Slug {
		a.invalidateBlogPages(r.Context(), oldSlug)
	}
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostDelete handles blog post deletion.
func (a *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	p, _ := a.posts.FindByID(id)
	if err := a.posts.Delete(id); err != nil {
		slog.Error("delete post failed", "error", err, "id", id)
	} else if p != nil {
		a.invalidateBlogPages(r.Context(), p.Slug)
	}
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// --- Testimonials ---

// TestimonialsPage renders the testimonial management page.
func (a *Admin) TestimonialsPage(w http.ResponseWriter, r *http.Request) {
	testimonials, err := a.testimonials.List(false)
	if err != nil {
		slog.Error("list testimonials failed", "error", err)
	}

	a.renderer.Page(w, r, "testimonials", &render.PageData{
		Title:   "Testimonials",
		Section: "testimonials",
		Data:    map[string]any{"Testimonials": testimonials},
	})
}

// TestimonialCreate handles the new testimonial form submission.
func (a *Admin) TestimonialCreate(w http.ResponseWriter, r *http.Request) {
	t := &models.Testimonial{}
	testimonialFromForm(r, t)

	if t.Author == "" || t.Quote == "" {
		http.Redirect(w, r, "/admin/testimonials", http.StatusSeeOther)
		return
	}

	if _, err := a.testimonials.Create(t); err != nil {
		slog.Error("create testimonial failed", "error", err)
	} else {
		a.pageCache.InvalidateHomepage(r.Context())
	}
	http.Redirect(w, r, "/admin/testimonials", http.StatusSeeOther)
}

// TestimonialEdit renders the edit form for a testimonial.
func (a *Admin) TestimonialEdit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	t, err := a.testimonials.FindByID(id)
	if err != nil || t == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	a.renderer.Page(w, r, "testimonial_form", &render.PageData{
		Title:   "Edit Testimonial",
		Section: "testimonials",
		Data:    map[string]any{"Testimonial": t},
	})
}

// TestimonialUpdate handles the edit form submission for a testimonial.
func (a *Admin) TestimonialUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	t, err := a.testimonials.FindByID(id)
	if err != nil || t == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	testimonialFromForm(r, t)
	if err := a.testimonials.Update(t); err != nil {
		slog.Error("update testimonial failed", "error", err, "id", t.ID)
	} else {
		a.pageCache.InvalidateHomepage(r.Context())
	}
	http.Redirect(w, r, "/admin/testimonials", http.StatusSeeOther)
}

// TestimonialDelete handles testimonial deletion.
func (a *Admin) TestimonialDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if err := a.testimonials.Delete(id); err != nil {
		slog.Error("delete testimonial failed", "error", err, "id", id)
	} else {
		a.pageCache.InvalidateHomepage(r.Context())
	}
	http.Redirect(w, r, "/admin/testimonials", http.StatusSeeOther)
}

// testimonialFromForm applies form values onto a testimonial.
func testimonialFromForm(r *http.Request, t *models.Testimonial) {
	t.Author = strings.TrimSpace(r.FormValue("author"))
	t.Role = strings.TrimSpace(r.FormValue("role"))
	t.Quote = strings.TrimSpace(r.FormValue("quote"))
	t.Rating = atoiOr(r.FormValue("rating"), 5)
	if t.Rating < 1 {
		t.Rating = 1
	}
	if t.Rating > 5 {
		t.Rating = 5
	}
	t.SortOrder = atoiOr(r.FormValue("sort_order"), t.SortOrder)
	t.IsActive = r.FormValue("is_active") != ""
}

// --- FAQs ---

// FAQsPage renders the FAQ management page.
func (a *Admin) FAQsPage(w http.ResponseWriter, r *http.Request) {
	faqs, err := a.faqs.List(false)
	if err != nil {
		slog.Error("list faqs failed", "error", err)
	}

	a.renderer.Page(w, r, "faqs", &render.PageData{
		Title:   "FAQs",
		Section: "faqs",
		Data:    map[string]any{"FAQs": faqs},
	})
}

// FAQCreate handles the new FAQ form submission.
func (a *Admin) FAQCreate(w http.ResponseWriter, r *http.Request) {
	f := &models.FAQ{}
	faqFromForm(r, f)

	if f.Question == "" || f.Answer == "" {
		http.Redirect(w, r, "/admin/faqs", http.StatusSeeOther)
		return
	}

	if _, err := a.faqs.Create(f); err != nil {
		slog.Error("create faq failed", "error", err)
	} else {
		a.pageCache.InvalidatePage(r.Context(), "services")
	}
	http.Redirect(w, r, "/admin/faqs", http.StatusSeeOther)
}

// FAQEdit renders the edit form for a FAQ.
func (a *Admin) FAQEdit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	f, err := a.faqs.FindByID(id)
	if err != nil || f == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	a.renderer.Page(w, r, "faq_form", &render.PageData{
		Title:   "Edit FAQ",
		Section: "faqs",
		Data:    map[string]any{"FAQ": f},
	})
}

// FAQUpdate handles the edit form submission for a FAQ.
func (a *Admin) FAQUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	f, err := a.faqs.FindByID(id)
	if err != nil || f == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	faqFromForm(r, f)
	if err := a.faqs.Update(f); err != nil {
		slog.Error("update faq failed", "error", err, "id", f.ID)
	} else {
		a.pageCache.InvalidatePage(r.Context(), "services")
	}
	http.Redirect(w, r, "/admin/faqs", http.StatusSeeOther)
}

// FAQDelete handles FAQ deletion.
func (a *Admin) FAQDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if err := a.faqs.Delete(id); err != nil {
		slog.Error("delete faq failed", "error", err, "id", id)
	} else {
		a.pageCache.InvalidatePage(r.Context(), "services")
	}
	http.Redirect(w, r, "/admin/faqs", http.StatusSeeOther)
}

// faqFromForm applies form values onto a FAQ.
func faqFromForm(r *http.Request, f *models.FAQ) {
	f.Question = strings.TrimSpace(r.FormValue("question"))
	f.Answer = strings.TrimSpace(r.FormValue("answer"))
	f.SortOrder = atoiOr(r.FormValue("sort_order"), f.SortOrder)
	f.IsActive = r.FormValue("is_active") != ""
}

// --- Contact messages ---

// ContactsList renders the contact message inbox, optionally filtered
// by triage status via ?status=.
func (a *Admin) ContactsList(w http.ResponseWriter, r *http.Request) {
	status := models.ContactStatus(r.URL.Query().Get("status"))
	if status != "" && !models.ValidContactStatus(status) {
		status = ""
	}

	messages, err := a.contacts.List(status)
	if err != nil {
		slog.Error("list contacts failed", "error", err)
	}

	a.renderer.Page(w, r, "contacts", &render.PageData{
		Title:   "Messages",
		Section: "contacts",
		Data:    map[string]any{"Messages": messages},
	})
}

// ContactUpdateStatus moves a contact message to a new triage status.
func (a *Admin) ContactUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	status := models.ContactStatus(r.FormValue("status"))
	if !models.ValidContactStatus(status) {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}

	if err := a.contacts.UpdateStatus(id, status); err != nil {
		slog.Error("update contact status failed", "error", err, "id", id)
	}
	http.Redirect(w, r, "/admin/contacts", http.StatusSeeOther)
}

// ContactDelete handles contact message deletion.
func (a *Admin) ContactDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if err := a.contacts.Delete(id); err != nil {
		slog.Error("delete contact failed", "error", err, "id", id)
	}
	http.Redirect(w, r, "/admin/contacts", http.StatusSeeOther)
}

// --- Settings ---

// SettingsPage renders the site settings form.
func (a *Admin) SettingsPage(w http.ResponseWriter, r *http.Request) {
	settings, err := a.settings.All()
	if err != nil {
		slog.Error("load settings failed", "error", err)
	}

	a.renderer.Page(w, r, "settings", &render.PageData{
		Title:   "Settings",
		Section: "settings",
		Data: map[string]any{
			"Keys":     settingsKeys,
			"Settings": settings,
		},
	})
}

// SettingsUpdate persists the settings form. Every known key is
// written, so clearing a field clears the setting.
func (a *Admin) SettingsUpdate(w http.ResponseWriter, r *http.Request) {
	values := make(map[string]string, len(settingsKeys))
	for _, key := range settingsKeys {
		values[key] = strings.TrimSpace(r.FormValue(key))
	}

	if err := a.settings.SetMany(values); err != nil {
		slog.Error("save settings failed", "error", err)
	} else {
		// Settings feed the shared layout of every public page.
		a.pageCache.InvalidateAll(r.Context())
	}
	http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
}

// --- Cache invalidation helpers ---

// invalidateServicePages purges the cached services listing, the
// service's own page, and the homepage (which shows a services grid).
func (a *Admin) invalidateServicePages(ctx context.Context, serviceSlug string) {
	a.pageCache.InvalidatePage(ctx, "services")
	a.pageCache.InvalidatePage(ctx, cache.PathKey("/services/"+serviceSlug))
	a.pageCache.InvalidateHomepage(ctx)
}

// invalidateBlogPages purges the cached blog index and the post's page.
func (a *Admin) invalidateBlogPages(ctx context.Context, postSlug string) {
	a.pageCache.InvalidatePage(ctx, "blog")
	a.pageCache.InvalidatePage(ctx, cache.PathKey("/blog/"+postSlug))
}

// invalidatePublicPage purges the cached page for a page key as used by
// page_sections ("home", "about", ...).
func (a *Admin) invalidatePublicPage(ctx context.Context, page string) {
	if page == models.PageHome {
		a.pageCache.InvalidateHomepage(ctx)
		return
	}
	a.pageCache.InvalidatePage(ctx, page)
}

// --- Form parsing helpers ---

// splitBullets turns the one-bullet-per-line textarea value into a
// trimmed slice, dropping blank lines.
func splitBullets(raw string) []string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// atoiOr parses an int form value, falling back when empty or invalid.
func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

// parseOptionalUUID returns nil for empty or malformed values.
func parseOptionalUUID(s string) *uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

// parseOptionalFloat returns nil for empty or malformed values.
func parseOptionalFloat(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}

// optionalString returns nil for empty values so they store as NULL.
func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
