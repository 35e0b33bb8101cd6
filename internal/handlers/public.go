// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sandeshar/contentsolution-sub000/internal/cache"
	"github.com/sandeshar/contentsolution-sub000/internal/catalog"
	"github.com/sandeshar/contentsolution-sub000/internal/markdown"
	"github.com/sandeshar/contentsolution-sub000/internal/models"
	"github.com/sandeshar/contentsolution-sub000/internal/navtree"
	"github.com/sandeshar/contentsolution-sub000/internal/render"
	"github.com/sandeshar/contentsolution-sub000/internal/store"
)

// Public groups handlers for the public-facing site. Rendered pages go
// through the Valkey page cache: a hit is served as-is, a miss renders
// and stores the result. The contact page is never cached because its
// form embeds a per-visitor CSRF token.
type Public struct {
	renderer     *render.Renderer
	details      *store.ServiceDetailStore
	servicePosts *store.ServicePostStore
	categories   *store.CategoryStore
	navbar       *store.NavbarStore
	contacts     *store.ContactStore
	testimonials *store.TestimonialStore
	faqs         *store.FAQStore
	sections     *store.SectionStore
	posts        *store.PostStore
	settings     *store.SiteSettingStore
	pageCache    *cache.PageCache
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, details *store.ServiceDetailStore, servicePosts *store.ServicePostStore, categories *store.CategoryStore, navbar *store.NavbarStore, contacts *store.ContactStore, testimonials *store.TestimonialStore, faqs *store.FAQStore, sections *store.SectionStore, posts *store.PostStore, settings *store.SiteSettingStore, pageCache *cache.PageCache) *Public {
	return &Public{
		renderer:     renderer,
		details:      details,
		servicePosts: servicePosts,
		categories:   categories,
		navbar:       navbar,
		contacts:     contacts,
		testimonials: testimonials,
		faqs:         faqs,
		sections:     sections,
		posts:        posts,
		settings:     settings,
		pageCache:    pageCache,
	}
}

// baseData loads the data every public page needs: site settings and
// the assembled navigation tree of active items.
func (p *Public) baseData() map[string]any {
	settings, err := p.settings.All()
	if err != nil {
		slog.Error("load settings failed", "error", err)
		settings = models.SiteSettings{}
	}

	var nav []models.NavbarItem
	items, err := p.navbar.ListActive()
	if err != nil {
		slog.Error("load navbar failed", "error", err)
	} else {
		nav = navtree.New(items).Assemble()
	}

	return map[string]any{
		"SiteName":   settings.Get("site_name", "Content Solution"),
		"FooterText": settings.Get("footer_text", ""),
		"Navbar":     nav,
	}
}

// serveCached writes a cached page if one exists for key.
func (p *Public) serveCached(ctx context.Context, w http.ResponseWriter, key string) bool {
	cached, ok := p.pageCache.Get(ctx, key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(cached)
	return true
}

// renderAndCache renders a site template, stores the result under key
// (unless key is empty), and writes it out.
func (p *Public) renderAndCache(w http.ResponseWriter, r *http.Request, key, name string, data *render.PageData) {
	html, err := p.renderer.SiteHTML(r, name, data)
	if err != nil {
		slog.Error("render page failed", "error", err, "template", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if key != "" {
		p.pageCache.Set(r.Context(), key, html)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// publicServices returns the merged services grid for public display:
// every service detail plus every published service post, folded by
// slug. When a category filter is set, only posts in that category
// appear (details carry no category and are hidden by the filter).
func (p *Public) publicServices(categorySlug string) []models.ServiceView {
	posts, err := p.servicePosts.ListPublished(categorySlug)
	if err != nil {
		slog.Error("list published services failed", "error", err)
	}

	var details []models.ServiceDetail
	if categorySlug == "" {
		details, err = p.details.List()
		if err != nil {
			slog.Error("list service details failed", "error", err)
		}
	}

	return catalog.Merge(details, posts)
}

// Home renders the site homepage.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(r.Context(), w, cache.HomepageKey()) {
		return
	}

	sections, err := p.sections.ListForPage(models.PageHome)
	if err != nil {
		slog.Error("load home sections failed", "error", err)
	}

	services := p.publicServices("")
	if len(services) > 6 {
		services = services[:6]
	}

	testimonials, err := p.testimonials.List(true)
	if err != nil {
		slog.Error("list testimonials failed", "error", err)
	}

	data := p.baseData()
	data["Sections"] = sections
	data["Services"] = services
	data["Testimonials"] = testimonials

	p.renderAndCache(w, r, cache.HomepageKey(), "home", &render.PageData{
		Title: "Home",
		Data:  data,
	})
}

// About renders the about page from its page sections: the hero plus
// every other section as a content block.
func (p *Public) About(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(r.Context(), w, cache.PathKey(r.URL.Path)) {
		return
	}

	list, err := p.sections.ListPage(models.PageAbout)
	if err != nil {
		slog.Error("load about sections failed", "error", err)
	}

	sections := make(models.PageSections, len(list))
	var blocks []models.PageSection
	for _, ps := range list {
		sections[ps.Section] = append(sections[ps.Section], ps)
		if ps.Section != models.SectionHero {
			blocks = append(blocks, ps)
		}
	}

	data := p.baseData()
	data["Sections"] = sections
	data["Blocks"] = blocks

	p.renderAndCache(w, r, cache.PathKey(r.URL.Path), "about", &render.PageData{
		Title: "About",
		Data:  data,
	})
}

// Services renders the services listing, optionally filtered with
// ?category=<slug>. Only the unfiltered view is cached.
func (p *Public) Services(w http.ResponseWriter, r *http.Request) {
	activeCategory := strings.TrimSpace(r.URL.Query().Get("category"))

	cacheKey := ""
	if activeCategory == "" {
		cacheKey = cache.PathKey(r.URL.Path)
		if p.serveCached(r.Context(), w, cacheKey) {
			return
		}
	}

	sections, err := p.sections.ListForPage(models.PageService)
	if err != nil {
		slog.Error("load services sections failed", "error", err)
	}

	categories, err := p.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
	}

	faqs, err := p.faqs.List(true)
	if err != nil {
		slog.Error("list faqs failed", "error", err)
	}

	data := p.baseData()
	data["Sections"] = sections
	data["Categories"] = categories
	data["ActiveCategory"] = activeCategory
	data["Services"] = p.publicServices(activeCategory)
	data["FAQs"] = faqs

	p.renderAndCache(w, r, cacheKey, "services", &render.PageData{
		Title: "Services",
		Data:  data,
	})
}

// Service renders a single service page by slug. The page shows the
// merged view: editorial fields from the detail, content and pricing
// from the post. Draft and archived posts are invisible here.
func (p *Public) Service(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	if p.serveCached(r.Context(), w, cache.PathKey(r.URL.Path)) {
		return
	}

	detail, err := p.details.FindByKey(slugParam)
	if err != nil {
		slog.Error("find service detail failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	post, err := p.servicePosts.FindBySlug(slugParam)
	if err != nil {
		slog.Error("find service post failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post != nil && !post.IsPublished() {
		post = nil
	}

	if detail == nil && post == nil {
		http.NotFound(w, r)
		return
	}

	var details []models.ServiceDetail
	if detail != nil {
		details = append(details, *detail)
	}
	var posts []models.ServicePost
	if post != nil {
		posts = append(posts, *post)
	}
	view := catalog.Merge(details, posts)[0]

	data := p.baseData()
	data["Service"] = view
	if view.MetaDescription != "" {
		data["MetaDescription"] = view.MetaDescription
	}
	if view.MetaKeywords != "" {
		data["MetaKeywords"] = view.MetaKeywords
	}
	if view.Content != "" {
		html, err := markdown.ToHTML(view.Content)
		if err != nil {
			slog.Error("render service content failed", "error", err, "slug", slugParam)
		} else {
			data["ContentHTML"] = html
		}
	}

	p.renderAndCache(w, r, cache.PathKey(r.URL.Path), "service", &render.PageData{
		Title: view.Title,
		Data:  data,
	})
}

// ContactPage renders the contact form. Not cached: the form carries a
// per-visitor CSRF token.
func (p *Public) ContactPage(w http.ResponseWriter, r *http.Request) {
	p.renderContact(w, r, false, nil)
}

func (p *Public) renderContact(w http.ResponseWriter, r *http.Request, sent bool, errs []string) {
	sections, err := p.sections.ListForPage(models.PageContact)
	if err != nil {
		slog.Error("load contact sections failed", "error", err)
	}

	data := p.baseData()
	data["Sections"] = sections
	data["Sent"] = sent
	data["Errors"] = errs

	p.renderAndCache(w, r, "", "contact", &render.PageData{
		Title: "Contact",
		Data:  data,
	})
}

// ContactSubmit processes the contact form. New submissions always
// enter the inbox with status "new".
func (p *Public) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	email := r.FormValue("email")
	phone := r.FormValue("phone")
	subject := r.FormValue("subject")
	message := r.FormValue("message")

	if errs := validateContactForm(name, email, phone, subject, message); len(errs) > 0 {
		p.renderContact(w, r, false, errs)
		return
	}

	_, err := p.contacts.Create(&models.ContactSubmission{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Phone:   strings.TrimSpace(phone),
		Subject: strings.TrimSpace(subject),
		Message: strings.TrimSpace(message),
	})
	if err != nil {
		slog.Error("save contact submission failed", "error", err)
		p.renderContact(w, r, false, []string{"Something went wrong. Please try again."})
		return
	}

	p.renderContact(w, r, true, nil)
}

// Blog renders the blog index of published posts.
func (p *Public) Blog(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(r.Context(), w, cache.PathKey(r.URL.Path)) {
		return
	}

	posts, err := p.posts.ListPublished()
	if err != nil {
		slog.Error("list published posts failed", "error", err)
	}

	data := p.baseData()
	data["Posts"] = posts

	p.renderAndCache(w, r, cache.PathKey(r.URL.Path), "blog", &render.PageData{
		Title: "Blog",
		Data:  data,
	})
}

// BlogPost renders a single published blog post by slug.
func (p *Public) BlogPost(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	if p.serveCached(r.Context(), w, cache.PathKey(r.URL.Path)) {
		return
	}

	post, err := p.posts.FindBySlug(slugParam)
	if err != nil {
		slog.Error("find post failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil || !post.IsPublished() {
		http.NotFound(w, r)
		return
	}

	bodyHTML, err := markdown.ToHTML(post.Body)
	if err != nil {
		slog.Error("render post body failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := p.baseData()
	data["Post"] = post
	data["BodyHTML"] = bodyHTML
	if post.MetaDescription != nil {
		data["MetaDescription"] = *post.MetaDescription
	}
	if post.MetaKeywords != nil {
		data["MetaKeywords"] = *post.MetaKeywords
	}

	p.renderAndCache(w, r, cache.PathKey(r.URL.Path), "blog_post", &render.PageData{
		Title: post.Title,
		Data:  data,
	})
}
