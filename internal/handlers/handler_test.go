// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"github.com/sandeshar/contentsolution-sub000/internal/cache"
	"github.com/sandeshar/contentsolution-sub000/internal/database"
	"github.com/sandeshar/contentsolution-sub000/internal/middleware"
	"github.com/sandeshar/contentsolution-sub000/internal/render"
	"github.com/sandeshar/contentsolution-sub000/internal/session"
	"github.com/sandeshar/contentsolution-sub000/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "contentsolution")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "contentsolution")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test session and cache keys.
		for _, pattern := range []string{"session:*", "page:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB           *sql.DB
	Valkey       *redis.Client
	Renderer     *render.Renderer
	Sessions     *session.Store
	Details      *store.ServiceDetailStore
	ServicePosts *store.ServicePostStore
	Categories   *store.CategoryStore
	Navbar       *store.NavbarStore
	Contacts     *store.ContactStore
	Testimonials *store.TestimonialStore
	FAQs         *store.FAQStore
	Sections     *store.SectionStore
	Posts        *store.PostStore
	Settings     *store.SiteSettingStore
	Users        *store.UserStore
	Media        *store.MediaStore
	PageCache    *cache.PageCache
	Admin        *Admin
	Auth         *Auth
	Public       *Public
	API          *API
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sessions := session.NewStore(vk, false)
	details := store.NewServiceDetailStore(db)
	servicePosts := store.NewServicePostStore(db)
	categories := store.NewCategoryStore(db)
	navbar := store.NewNavbarStore(db)
	contacts := store.NewContactStore(db)
	testimonials := store.NewTestimonialStore(db)
	faqs := store.NewFAQStore(db)
	sections := store.NewSectionStore(db)
	posts := store.NewPostStore(db)
	settings := store.NewSiteSettingStore(db)
	users := store.NewUserStore(db)
	media := store.NewMediaStore(db)
	pageCache := cache.NewPageCache(vk, 1*time.Minute)

	admin := NewAdmin(renderer, sessions, details, servicePosts, categories, navbar, contacts, testimonials, faqs, sections, posts, settings, users, media, nil, pageCache)
	auth := NewAuth(renderer, sessions, users)
	public := NewPublic(renderer, details, servicePosts, categories, navbar, contacts, testimonials, faqs, sections, posts, settings, pageCache)
	api := NewAPI(details, servicePosts, categories, navbar, contacts, testimonials, faqs, sections, settings, pageCache)

	return &testEnv{
		DB:           db,
		Valkey:       vk,
		Renderer:     renderer,
		Sessions:     sessions,
		Details:      details,
		ServicePosts: servicePosts,
		Categories:   categories,
		Navbar:       navbar,
		Contacts:     contacts,
		Testimonials: testimonials,
		FAQs:         faqs,
		Sections:     sections,
		Posts:        posts,
		Settings:     settings,
		Users:        users,
		Media:        media,
		PageCache:    pageCache,
		Admin:        admin,
		Auth:         auth,
		Public:       public,
		API:          api,
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// testSession creates a session.Data for testing.
func testSession(userID uuid.UUID, email, role string, twoFADone bool) *session.Data {
	return &session.Data{
		UserID:      userID,
		Email:       email,
		DisplayName: "Test User",
		Role:        role,
		TwoFADone:   twoFADone,
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withChiURLParamAndSession adds both chi URL param and session to a request.
func withChiURLParamAndSession(r *http.Request, key, value string, sess *session.Data) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.SessionKey, sess)
	return r.WithContext(ctx)
}

// testAuthorID returns a valid user ID for content creation.
func testAuthorID(t *testing.T, db *sql.DB) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	if err := db.QueryRow("SELECT id FROM users LIMIT 1").Scan(&id); err != nil {
		t.Fatalf("no users in database — run seed first: %v", err)
	}
	return id
}

// cleanServicePosts removes test service posts by slug.
func cleanServicePosts(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM service_posts WHERE slug = $1", s)
	}
}

// cleanServiceDetails removes test service details by key.
func cleanServiceDetails(t *testing.T, db *sql.DB, keys ...string) {
	t.Helper()
	for _, k := range keys {
		db.Exec("DELETE FROM service_details WHERE key = $1", k)
	}
}

// cleanPosts removes test blog posts by slug.
func cleanPosts(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM posts WHERE slug = $1", s)
	}
}

// cleanNavbar removes test navbar items by label.
func cleanNavbar(t *testing.T, db *sql.DB, labels ...string) {
	t.Helper()
	for _, l := range labels {
		db.Exec("DELETE FROM navbar_items WHERE label = $1", l)
	}
}

// cleanCategories removes test categories by slug (subcategories cascade).
func cleanCategories(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM service_categories WHERE slug = $1", s)
	}
}
