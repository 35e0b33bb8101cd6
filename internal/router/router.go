// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// site. It organizes routes into public, admin and API groups with
// appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sandeshar/contentsolution-sub000/internal/config"
	"github.com/sandeshar/contentsolution-sub000/internal/handlers"
	"github.com/sandeshar/contentsolution-sub000/internal/middleware"
	"github.com/sandeshar/contentsolution-sub000/internal/session"
	"github.com/sandeshar/contentsolution-sub000/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(cfg *config.Config, sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public, api *handlers.API) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.LoadSession(sessionStore))

	csrf := middleware.NewCSRF(cfg.Env == "production")

	// Per-IP rate limits on the endpoints that take anonymous input.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	contactLimiter := middleware.NewRateLimiter(5, time.Minute)

	// Health check — no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Embedded static assets.
	staticFS, err := fs.Sub(web.StaticFS, "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	// Admin routes — require authentication and CSRF protection.
	r.Route("/admin", func(r chi.Router) {
		r.Use(csrf)

		// Auth pages — accessible without a session.
		r.Get("/login", auth.LoginPage)
		r.With(loginLimiter.Middleware).Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)

		// 2FA — requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", auth.TwoFASetupPage)
			r.Get("/2fa/verify", auth.TwoFAVerifyPage)
			r.Post("/2fa/verify", auth.TwoFAVerifySubmit)
		})

		// Authenticated + 2FA-verified admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			// Dashboard
			r.Get("/", admin.Dashboard)
			r.Get("/dashboard", admin.Dashboard)

			// Services: hand-curated details plus CMS posts, merged for
			// the public catalog.
			r.Route("/services", func(r chi.Router) {
				r.Get("/", admin.ServicesList)

				r.Route("/details", func(r chi.Router) {
					r.Get("/new", admin.ServiceDetailNew)
					r.Post("/", admin.ServiceDetailCreate)
					r.Get("/{key}/edit", admin.ServiceDetailEdit)
					r.Post("/{key}", admin.ServiceDetailUpdate)
					r.Post("/{key}/delete", admin.ServiceDetailDelete)
				})

				r.Route("/posts", func(r chi.Router) {
					r.Get("/new", admin.ServicePostNew)
					r.Post("/", admin.ServicePostCreate)
					r.Get("/{id}/edit", admin.ServicePostEdit)
					r.Post("/{id}", admin.ServicePostUpdate)
					r.Post("/{id}/delete", admin.ServicePostDelete)
				})
			})

			// Categories and subcategories
			r.Get("/categories", admin.CategoriesPage)
			r.Post("/categories", admin.CategoryCreate)
			r.Post("/categories/{id}/delete", admin.CategoryDelete)
			r.Post("/subcategories", admin.SubcategoryCreate)

			// Navbar manager
			r.Route("/navbar", func(r chi.Router) {
				r.Get("/", admin.NavbarPage)
				r.Post("/", admin.NavbarCreate)
				r.Post("/attach-categories", admin.NavbarAttachCategories)
				r.Get("/{id}/edit", admin.NavbarEdit)
				r.Post("/{id}", admin.NavbarUpdate)
				r.Post("/{id}/move", admin.NavbarMove)
				r.Post("/{id}/remove-children", admin.NavbarRemoveChildren)
				r.Post("/{id}/delete", admin.NavbarDelete)
			})

			// Page sections
			r.Route("/sections", func(r chi.Router) {
				r.Get("/", admin.SectionsPage)
				r.Post("/", admin.SectionCreate)
				r.Get("/{id}/edit", admin.SectionEdit)
				r.Post("/{id}", admin.SectionUpdate)
				r.Post("/{id}/delete", admin.SectionDelete)
			})

			// Blog posts
			r.Route("/posts", func(r chi.Router) {
				r.Get("/", admin.PostsList)
				r.Get("/new", admin.PostNew)
				r.Post("/", admin.PostCreate)
				r.Get("/{id}/edit", admin.PostEdit)
				r.Post("/{id}", admin.PostUpdate)
				r.Post("/{id}/delete", admin.PostDelete)
			})

			// Testimonials
			r.Route("/testimonials", func(r chi.Router) {
				r.Get("/", admin.TestimonialsPage)
				r.Post("/", admin.TestimonialCreate)
				r.Get("/{id}/edit", admin.TestimonialEdit)
				r.Post("/{id}", admin.TestimonialUpdate)
				r.Post("/{id}/delete", admin.TestimonialDelete)
			})

			// FAQs
			r.Route("/faqs", func(r chi.Router) {
				r.Get("/", admin.FAQsPage)
				r.Post("/", admin.FAQCreate)
				r.Get("/{id}/edit", admin.FAQEdit)
				r.Post("/{id}", admin.FAQUpdate)
				r.Post("/{id}/delete", admin.FAQDelete)
			})

			// Contact submissions
			r.Get("/contacts", admin.ContactsList)
			r.Post("/contacts/{id}/status", admin.ContactUpdateStatus)
			r.Post("/contacts/{id}/delete", admin.ContactDelete)

			// Media library
			r.Route("/media", func(r chi.Router) {
				r.Get("/", admin.MediaPage)
				r.Post("/", admin.MediaUpload)
				r.Get("/{id}/url", admin.MediaServe)
				r.Post("/{id}/delete", admin.MediaDelete)
			})

			// Settings
			r.Get("/settings", admin.SettingsPage)
			r.Post("/settings", admin.SettingsUpdate)
		})
	})

	// JSON API — same auth requirements as the admin area. CSRF is
	// skipped: clients authenticate with the session cookie and send
	// JSON bodies, not browser form posts.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.Require2FA)

		apiResource(r, "/service-details", api.ServiceDetailsGet, api.ServiceDetailsCreate, api.ServiceDetailsUpdate, api.ServiceDetailsDelete)
		apiResource(r, "/service-posts", api.ServicePostsGet, api.ServicePostsCreate, api.ServicePostsUpdate, api.ServicePostsDelete)
		apiResource(r, "/categories", api.CategoriesGet, api.CategoriesCreate, api.CategoriesUpdate, api.CategoriesDelete)
		apiResource(r, "/subcategories", api.SubcategoriesGet, api.SubcategoriesCreate, api.SubcategoriesUpdate, api.SubcategoriesDelete)
		apiResource(r, "/navbar-items", api.NavbarItemsGet, api.NavbarItemsCreate, api.NavbarItemsUpdate, api.NavbarItemsDelete)
		apiResource(r, "/testimonials", api.TestimonialsGet, api.TestimonialsCreate, api.TestimonialsUpdate, api.TestimonialsDelete)
		apiResource(r, "/faqs", api.FAQsGet, api.FAQsCreate, api.FAQsUpdate, api.FAQsDelete)
		apiResource(r, "/sections", api.SectionsGet, api.SectionsCreate, api.SectionsUpdate, api.SectionsDelete)

		// Contacts are created by the public form; the API only reads,
		// triages and deletes them.
		r.Get("/contacts", api.ContactsGet)
		r.Put("/contacts", api.ContactsUpdate)
		r.Delete("/contacts", api.ContactsDelete)

		r.Get("/settings", api.SettingsGet)
		r.Put("/settings", api.SettingsUpdate)
	})

	// Public site.
	r.Group(func(r chi.Router) {
		r.Use(csrf)

		r.Get("/", public.Home)
		r.Get("/about", public.About)
		r.Get("/services", public.Services)
		r.Get("/services/{slug}", public.Service)
		r.Get("/contact", public.ContactPage)
		r.With(contactLimiter.Middleware).Post("/contact", public.ContactSubmit)
		r.Get("/blog", public.Blog)
		r.Get("/blog/{slug}", public.BlogPost)
	})

	return r
}

// apiResource registers the conventional GET/POST/PUT/DELETE quartet
// for a JSON resource.
func apiResource(r chi.Router, path string, get, post, put, del http.HandlerFunc) {
	r.Get(path, get)
	r.Post(path, post)
	r.Put(path, put)
	r.Delete(path, del)
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
