// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sandeshar/contentsolution-sub000/internal/cache"
	"github.com/sandeshar/contentsolution-sub000/internal/models"
	"github.com/sandeshar/contentsolution-sub000/internal/store"
)

// maxAPIBody caps JSON request bodies.
const maxAPIBody = 1 << 20

// API exposes the admin resources as JSON endpoints under /api.
// Every resource follows the same pattern: GET lists or fetches one by
// query param, POST creates and returns the new id, PUT updates by id
// in the body, DELETE removes by id query param. Duplicate-key
// conflicts surface as 409.
type API struct {
	details      *store.ServiceDetailStore
	servicePosts *store.ServicePostStore
	categories   *store.CategoryStore
	navbar       *store.NavbarStore
	contacts     *store.ContactStore
	testimonials *store.TestimonialStore
	faqs         *store.FAQStore
	sections     *store.SectionStore
	settings     *store.SiteSettingStore
	pageCache    *cache.PageCache
}

// NewAPI creates a new API handler group.
func NewAPI(details *store.ServiceDetailStore, servicePosts *store.ServicePostStore, categories *store.CategoryStore, navbar *store.NavbarStore, contacts *store.ContactStore, testimonials *store.TestimonialStore, faqs *store.FAQStore, sections *store.SectionStore, settings *store.SiteSettingStore, pageCache *cache.PageCache) *API {
	return &API{
		details:      details,
		servicePosts: servicePosts,
		categories:   categories,
		navbar:       navbar,
		contacts:     contacts,
		testimonials: testimonials,
		faqs:         faqs,
		sections:     sections,
		settings:     settings,
		pageCache:    pageCache,
	}
}

// --- JSON plumbing ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode json response failed", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// readJSON decodes the request body into v, rejecting oversized bodies.
func readJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxAPIBody))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// isUniqueViolation reports whether err is a PostgreSQL unique
// constraint violation (duplicate slug/key).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// writeStoreError maps a store error to 409 or 500.
func writeStoreError(w http.ResponseWriter, err error, op string) {
	if isUniqueViolation(err) {
		writeJSONError(w, http.StatusConflict, "duplicate key")
		return
	}
	slog.Error(op, "error", err)
	writeJSONError(w, http.StatusInternalServerError, "internal error")
}

// queryUUID parses the id query param; writes 400 on a malformed value.
func queryUUID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "missing or invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// --- Service details (keyed by slug-like key, not id) ---

func (api *API) ServiceDetailsGet(w http.ResponseWriter, r *http.Request) {
	if key := r.URL.Query().Get("key"); key != "" {
		d, err := api.details.FindByKey(key)
		if err != nil {
			writeStoreError(w, err, "api find service detail failed")
			return
		}
		if d == nil {
			writeJSONError(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, d)
		return
	}

	list, err := api.details.List()
	if err != nil {
		writeStoreError(w, err, "api list service details failed")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) ServiceDetailsCreate(w http.ResponseWriter, r *http.Request) {
	var d models.ServiceDetail
	if err := readJSON(r, &d); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if d.Key == "" || d.Title == "" {
		writeJSONError(w, http.StatusBadRequest, "key and title are required")
		return
	}

	created, err := api.details.Create(&d)
	if err != nil {
		writeStoreError(w, err, "api create service detail failed")
		return
	}

	api.invalidateServicePages(r, created.Key)
	writeJSON(w, http.StatusCreated, map[string]string{"key": created.Key})
}

func (api *API) ServiceDetailsUpdate(w http.ResponseWriter, r *http.Request) {
	var in models.ServiceDetail
	if err := readJSON(r, &in); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Key == "" {
		writeJSONError(w, http.StatusBadRequest, "key is required")
		return
	}

	existing, err := api.details.FindByKey(in.Key)
	if err != nil {
		writeStoreError(w, err, "api find service detail failed")
		return
	}
	if existing == nil {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}

	if err := api.details.Update(&in); err != nil {
		writeStoreError(w, err, "api update service detail failed")
		return
	}
	api.invalidateServicePages(r, in.Key)
	writeJSON(w, http.StatusOK, map[string]string{"key": in.Key})
}

func (api *API) ServiceDetailsDelete(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeJSONError(w, http.StatusBadRequest, "missing key")
		return
	}
	if err := api.details.Delete(key); err != nil {
		writeStoreError(w, err, "api delete service detail failed")
		return
	}
	api.invalidateServicePages(r, key)
	w.WriteHeader(http.StatusNoContent)
}

// --- Service posts ---

func (api *API) ServicePostsGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if slug := q.Get("slug"); slug != "" {
		p, err := api.servicePosts.FindBySlug(slug)
		if err != nil {
			writeStoreError(w, err, "api find service post failed")
			return
		}
		if p == nil {
			writeJSONError(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, p)
		return
	}
	if q.Get("id") != "" {
		id, ok := queryUUID(w, r)
		if !ok {
			return
		}
		p, err := api.servicePosts.FindByID(id)
		if err != nil {
			writeStoreError(w, err, "api find service post failed")
			return
		}
		if p == nil {
			writeJSONError(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, p)
		return
	}

	list, err := api.servicePosts.List()
	if err != nil {
		writeStoreError(w, err, "api list service posts failed")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) ServicePostsCreate(w http.ResponseWriter, r *http.Request) {
	var p models.ServicePost
	if err := readJSON(r, &p); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if p.Title == "" || p.Slug == "" {
		writeJSONError(w, http.StatusBadRequest, "title and slug are required")
		return
	}
	if p.StatusID == 0 {
		p.StatusID = models.ServiceStatusDraft
	}

	created, err := api.servicePosts.Create(&p)
	if err != nil {
		writeStoreError(w, err, "api create service post failed")
		return
	}
	api.invalidateServicePages(r, created.Slug)
	writeJSON(w, http.StatusCreated, map[string]string{"id": created.ID.String()})
}

func (api *API) ServicePostsUpdate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxAPIBody))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid body")
		return
	}

	var probe struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(body, &probe); err != nil || probe.ID == uuid.Nil {
		writeJSONError(w, http.StatusBadRequest, "id is required")
		return
	}

	p, err := api.servicePosts.FindByID(probe.ID)
	if err != nil {
		writeStoreError(w, err, "api find service post failed")
		return
	}
	if p == nil {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}

	// Unmarshal over the existing row so omitted fields keep their values.
	if err := json.Unmarshal(body, p); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := api.servicePosts.Update(p); err != nil {
		writeStoreError(w, err, "api update service post failed")
		return
	}
	api.invalidateServicePages(r, p.Slug)
	writeJSON(w, http.StatusOK, map[string]string{"id": p.ID.String()})
}

func (api *API) ServicePostsDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := queryUUID(w, r)
	if !ok {
		return
	}
	p, _ := api.servicePosts.FindByID(id)
	if err := api.servicePosts.Delete(id); err != nil {
		writeStoreError(w, err, "api delete service post failed")
		return
	}
	if p != nil {
		api.invalidateServicePages(r, p.Slug)
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Categories and subcategories ---

func (api *API) CategoriesGet(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("id") != "" {
		id, ok := queryUUID(w, r)
		if !ok {
			return
		}
		c, err := api.categories.FindByID(id)
		if err != nil {
			writeStoreError(w, err, "api find category failed")
			return
		}
		if c == nil {
			writeJSONError(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, c)
		return
	}

	list, err := api.categories.ListWithSubcategories()
	if err != nil {
		writeStoreError(w, err, "api list categories failed")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) CategoriesCreate(w http.ResponseWriter, r *http.Request) {
	var c models.ServiceCategory
	if err := readJSON(r, &c); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if c.Name == "" || c.Slug == "" {
		writeJSONError(w, http.StatusBadRequest, "name and slug are required")
		return
	}

	created, err := api.categories.Create(&c)
	if err != nil {
		writeStoreError(w, err, "api create category failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": created.ID.String()})
}

func (api *API) CategoriesUpdate(w http.ResponseWriter, r *http.Request) {
	var in models.ServiceCategory
	if err := readJSON(r, &in); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.ID == uuid.Nil {
		writeJSONError(w, http.StatusBadRequest, "id is required")
		return
	}

	existing, err := api.categories.FindByID(in.ID)
	if err != nil {
		writeStoreError(w, err, "api find category failed")
		return
	}
	if existing == nil {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}

	if err := api.categories.Update(&in); err != nil {
		writeStoreError(w, err, "api update category failed")
		return
	}
	api.pageCache.InvalidatePage(r.Context(), "services")
	writeJSON(w, http.StatusOK, map[string]string{"id": in.ID.String()})
}

func (api *API) CategoriesDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := queryUUID(w, r)
	if !ok {
		return
	}
	if err := api.categories.Delete(id); err != nil {
		writeStoreError(w, err, "api delete category failed")
		return
	}
	api.pageCache.InvalidatePage(r.Context(), "services")
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) SubcategoriesGet(w http.ResponseWriter, r *http.Request) {
	var categoryID *uuid.UUID
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid category_id")
			return
		}
		categoryID = &id
	}

	list, err := api.categories.ListSubcategories(categoryID)
	if err != nil {
		writeStoreError(w, err, "api list subcategories failed")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) SubcategoriesCreate(w http.ResponseWriter, r *http.Request) {
	var sc models.ServiceSubcategory
	if err := readJSON(r, &sc); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if sc.CategoryID == uuid.Nil || sc.Name == "" || sc.Slug == "" {
		writeJSONError(w, http.StatusBadRequest, "category_id, name and slug are required")
		return
	}

	created, err := api.categories.CreateSubcategory(&sc)
	if err != nil {
		writeStoreError(w, err, "api create subcategory failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": created.ID.String()})
}

func (api *API) SubcategoriesUpdate(w http.ResponseWriter, r *http.Request) {
	var in models.ServiceSubcategory
	if err := readJSON(r, &in); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.ID == uuid.Nil {
		writeJSONError(w, http.StatusBadRequest, "id is required")
		return
	}

	existing, err := api.categories.FindSubcategoryByID(in.ID)
	if err != nil {
		writeStoreError(w, err, "api find subcategory failed")
		return
	}
	if existing == nil {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}

	if err := api.categories.UpdateSubcategory(&in); err != nil {
		writeStoreError(w, err, "api update subcategory failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": in.ID.String()})
}

func (api *API) SubcategoriesDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := queryUUID(w, r)
	if !ok {
		return
	}
	if err := api.categories.DeleteSubcategory(id); err != nil {
		writeStoreError(w, err, "api delete subcategory failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Navbar items ---

func (api *API) NavbarItemsGet(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("id") != "" {
		id, ok := queryUUID(w, r)
		if !ok {
			return
		}
		n, err := api.navbar.FindByID(id)
		if err != nil {
			writeStoreError(w, err, "api find navbar item failed")
			return
		}
		if n == nil {
			writeJSONError(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, n)
		return
	}

	list, err := api.navbar.ListAll()
	if err != nil {
		writeStoreError(w, err, "api list navbar items failed")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) NavbarItemsCreate(w http.ResponseWriter, r *http.Request) {
	var n models.NavbarItem
	if err := readJSON(r, &n); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if n.Label == "" {
		writeJSONError(w, http.StatusBadRequest, "label is required")
		return
	}

	created, err := api.navbar.Create(&n)
	if err != nil {
		writeStoreError(w, err, "api create navbar item failed")
		return
	}
	api.pageCache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusCreated, map[string]string{"id": created.ID.String()})
}

func (api *API) NavbarItemsUpdate(w http.ResponseWriter, r *http.Request) {
	var in models.NavbarItem
	if err := readJSON(r, &in); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.ID == uuid.Nil {
		writeJSONError(w, http.StatusBadRequest, "id is required")
		return
	}

	existing, err := api.navbar.FindByID(in.ID)
	if err != nil {
		writeStoreError(w, err, "api find navbar item failed")
		return
	}
	if existing == nil {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}

	if err := api.navbar.Update(&in); err != nil {
		writeStoreError(w, err, "api update navbar item failed")
		return
	}
	api.pageCache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"id": in.ID.String()})
}

func (api *API) NavbarItemsDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := queryUUID(w, r)
	if !ok {
		return
	}
	if err := api.navbar.Delete(id); err != nil {
		writeStoreError(w, err, "api delete navbar item failed")
		return
	}
	api.pageCache.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// --- Contact submissions ---

func (api *API) ContactsGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("id") != "" {
		id, ok := queryUUID(w, r)
		if !ok {
			return
		}
		c, err := api.contacts.FindByID(id)
		if err != nil {
			writeStoreError(w, err, "api find contact failed")
			return
		}
		if c == nil {
			writeJSONError(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, c)
		return
	}

	status := models.ContactStatus(q.Get("status"))
	if status != "" && !models.ValidContactStatus(status) {
		writeJSONError(w, http.StatusBadRequest, "invalid status")
		return
	}

	list, err := api.contacts.List(status)
	if err != nil {
		writeStoreError(w, err, "api list contacts failed")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ContactsUpdate changes a submission's triage status; that is the
// only mutable part of a contact message.
func (api *API) ContactsUpdate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID     uuid.UUID            `json:"id"`
		Status models.ContactStatus `json:"status"`
	}
	if err := readJSON(r, &in); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.ID == uuid.Nil || !models.ValidContactStatus(in.Status) {
		writeJSONError(w, http.StatusBadRequest, "id and a valid status are required")
		return
	}

	existing, err := api.contacts.FindByID(in.ID)
	if err != nil {
		writeStoreError(w, err, "api find contact failed")
		return
	}
	if existing == nil {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}

	if err := api.contacts.UpdateStatus(in.ID, in.Status); err != nil {
		writeStoreError(w, err, "api update contact failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": in.ID.String()})
}

func (api *API) ContactsDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := queryUUID(w, r)
	if !ok {
		return
	}
	if err := api.contacts.Delete(id); err != nil {
		writeStoreError(w, err, "api delete contact failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Testimonials ---

func (api *API) TestimonialsGet(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("id") != "" {
		id, ok := queryUUID(w, r)
		if !ok {
			return
		}
		t, err := api.testimonials.FindByID(id)
		if err != nil {
			writeStoreError(w, err, "api find testimonial failed")
			return
		}
		if t == nil {
			writeJSONError(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, t)
		return
	}

	list, err := api.testimonials.List(false)
	if err != nil {
		writeStoreError(w, err, "api list testimonials failed")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) TestimonialsCreate(w http.ResponseWriter, r *http.Request) {
	var t models.Testimonial
	if err := readJSON(r, &t); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if t.Author == "" || t.Quote == "" {
		writeJSONError(w, http.StatusBadRequest, "author and quote are required")
		return
	}

	created, err := api.testimonials.Create(&t)
	if err != nil {
		writeStoreError(w, err, "api create testimonial failed")
		return
	}
	api.pageCache.InvalidateHomepage(r.Context())
	writeJSON(w, http.StatusCreated, map[string]string{"id": created.ID.String()})
}

func (api *API) TestimonialsUpdate(w http.ResponseWriter, r *http.Request) {
	var in models.Testimonial
	if err := readJSON(r, &in); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.ID == uuid.Nil {
		writeJSONError(w, http.StatusBadRequest, "id is required")
		return
	}

	existing, err := api.testimonials.FindByID(in.ID)
	if err != nil {
		writeStoreError(w, err, "api find testimonial failed")
		return
	}
	if existing == nil {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}

	if err := api.testimonials.Update(&in); err != nil {
		writeStoreError(w, err, "api update testimonial failed")
		return
	}
	api.pageCache.InvalidateHomepage(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"id": in.ID.String()})
}

func (api *API) TestimonialsDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := queryUUID(w, r)
	if !ok {
		return
	}
	if err := api.testimonials.Delete(id); err != nil {
		writeStoreError(w, err, "api delete testimonial failed")
		return
	}
	api.pageCache.InvalidateHomepage(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// --- FAQs ---

func (api *API) FAQsGet(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("id") != "" {
		id, ok := queryUUID(w, r)
		if !ok {
			return
		}
		f, err := api.faqs.FindByID(id)
		if err != nil {
			writeStoreError(w, err, "api find faq failed")
			return
		}
		if f == nil {
			writeJSONError(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, f)
		return
	}

	list, err := api.faqs.List(false)
	if err != nil {
		writeStoreError(w, err, "api list faqs failed")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) FAQsCreate(w http.ResponseWriter, r *http.Request) {
	var f models.FAQ
	if err := readJSON(r, &f); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if f.Question == "" || f.Answer == "" {
		writeJSONError(w, http.StatusBadRequest, "question and answer are required")
		return
	}

	created, err := api.faqs.Create(&f)
	if err != nil {
		writeStoreError(w, err, "api create faq failed")
		return
	}
	api.pageCache.InvalidatePage(r.Context(), "services")
	writeJSON(w, http.StatusCreated, map[string]string{"id": created.ID.String()})
}

func (api *API) FAQsUpdate(w http.ResponseWriter, r *http.Request) {
	var in models.FAQ
	if err := readJSON(r, &in); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.ID == uuid.Nil {
		writeJSONError(w, http.StatusBadRequest, "id is required")
		return
	}

	existing, err := api.faqs.FindByID(in.ID)
	if err != nil {
		writeStoreError(w, err, "api find faq failed")
		return
	}
	if existing == nil {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}

	if err := api.faqs.Update(&in); err != nil {
		writeStoreError(w, err, "api update faq failed")
		return
	}
	api.pageCache.InvalidatePage(r.Context(), "services")
	writeJSON(w, http.StatusOK, map[string]string{"id": in.ID.String()})
}

func (api *API) FAQsDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := queryUUID(w, r)
	if !ok {
		return
	}
	if err := api.faqs.Delete(id); err != nil {
		writeStoreError(w, err, "api delete faq failed")
		return
	}
	api.pageCache.InvalidatePage(r.Context(), "services")
	w.WriteHeader(http.StatusNoContent)
}

// --- Page sections ---

func (api *API) SectionsGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("id") != "" {
		id, ok := queryUUID(w, r)
		if !ok {
			return
		}
		ps, err := api.sections.FindByID(id)
		if err != nil {
			writeStoreError(w, err, "api find section failed")
			return
		}
		if ps == nil {
			writeJSONError(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, ps)
		return
	}

	if page := q.Get("page"); page != "" {
		list, err := api.sections.ListPage(page)
		if err != nil {
			writeStoreError(w, err, "api list sections failed")
			return
		}
		writeJSON(w, http.StatusOK, list)
		return
	}

	list, err := api.sections.List()
	if err != nil {
		writeStoreError(w, err, "api list sections failed")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) SectionsCreate(w http.ResponseWriter, r *http.Request) {
	var ps models.PageSection
	if err := readJSON(r, &ps); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if ps.Page == "" || ps.Section == "" {
		writeJSONError(w, http.StatusBadRequest, "page and section are required")
		return
	}

	created, err := api.sections.Create(&ps)
	if err != nil {
		writeStoreError(w, err, "api create section failed")
		return
	}
	api.pageCache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusCreated, map[string]string{"id": created.ID.String()})
}

func (api *API) SectionsUpdate(w http.ResponseWriter, r *http.Request) {
	var in models.PageSection
	if err := readJSON(r, &in); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.ID == uuid.Nil {
		writeJSONError(w, http.StatusBadRequest, "id is required")
		return
	}

	existing, err := api.sections.FindByID(in.ID)
	if err != nil {
		writeStoreError(w, err, "api find section failed")
		return
	}
	if existing == nil {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}

	if err := api.sections.Update(&in); err != nil {
		writeStoreError(w, err, "api update section failed")
		return
	}
	api.pageCache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"id": in.ID.String()})
}

func (api *API) SectionsDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := queryUUID(w, r)
	if !ok {
		return
	}
	if err := api.sections.Delete(id); err != nil {
		writeStoreError(w, err, "api delete section failed")
		return
	}
	api.pageCache.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// --- Site settings ---

func (api *API) SettingsGet(w http.ResponseWriter, r *http.Request) {
	settings, err := api.settings.All()
	if err != nil {
		writeStoreError(w, err, "api load settings failed")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (api *API) SettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := readJSON(r, &values); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(values) == 0 {
		writeJSONError(w, http.StatusBadRequest, "no settings provided")
		return
	}

	if err := api.settings.SetMany(values); err != nil {
		writeStoreError(w, err, "api save settings failed")
		return
	}
	api.pageCache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusOK, map[string]int{"updated": len(values)})
}

// invalidateServicePages mirrors the admin-side cache purge for a
// service mutation arriving through the API.
func (api *API) invalidateServicePages(r *http.Request, slug string) {
	ctx := r.Context()
	api.pageCache.InvalidatePage(ctx, "services")
	api.pageCache.InvalidatePage(ctx, cache.PathKey("/services/"+slug))
	api.pageCache.InvalidateHomepage(ctx)
}
