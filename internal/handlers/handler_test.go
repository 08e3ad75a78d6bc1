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

	"spiritfolio/internal/cache"
	"spiritfolio/internal/database"
	"spiritfolio/internal/middleware"
	"spiritfolio/internal/models"
	"spiritfolio/internal/render"
	"spiritfolio/internal/session"
	"spiritfolio/internal/site"
	"spiritfolio/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL, runs migrations, and
// seeds the development data so the portfolio page exists.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "spiritfolio")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "spiritfolio")
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

	if err := database.Seed(db); err != nil {
		db.Close()
		t.Fatalf("seed: %v", err)
	}

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
	Site         *site.Renderer
	Sessions     *session.Store
	PageStore    *store.PageStore
	SectionStore *store.SectionStore
	ProjectStore *store.ProjectStore
	UserStore    *store.UserStore
	MediaStore   *store.MediaStore
	PageCache    *cache.PageCache
	Admin        *Admin
	Auth         *Auth
	Public       *Public
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

	siteRenderer, err := site.New("Spiritfolio")
	if err != nil {
		t.Fatalf("site.New: %v", err)
	}

	sessions := session.NewStore(vk, false)
	pageStore := store.NewPageStore(db)
	sectionStore := store.NewSectionStore(db)
	projectStore := store.NewProjectStore(db)
	userStore := store.NewUserStore(db)
	mediaStore := store.NewMediaStore(db)
	pageCache := cache.NewPageCache(vk, 1*time.Minute)

	admin := NewAdmin(renderer, sessions, pageStore, sectionStore, projectStore, userStore, mediaStore, nil, pageCache)
	auth := NewAuth(renderer, sessions, userStore, "Spiritfolio")
	public := NewPublic(siteRenderer, pageStore, sectionStore, projectStore, pageCache)

	return &testEnv{
		DB:           db,
		Valkey:       vk,
		Renderer:     renderer,
		Site:         siteRenderer,
		Sessions:     sessions,
		PageStore:    pageStore,
		SectionStore: sectionStore,
		ProjectStore: projectStore,
		UserStore:    userStore,
		MediaStore:   mediaStore,
		PageCache:    pageCache,
		Admin:        admin,
		Auth:         auth,
		Public:       public,
	}
}

// portfolioPageID looks up the seeded portfolio page.
func portfolioPageID(t *testing.T, env *testEnv) uuid.UUID {
	t.Helper()
	page, err := env.PageStore.FindBySlug(models.PortfolioSlug)
	if err != nil || page == nil {
		t.Fatalf("portfolio page not found (seed missing?): %v", err)
	}
	return page.ID
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

// withChiURLParam adds a chi URL parameter to a request. Calls chain:
// an existing route context is reused so earlier params survive.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
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

// adminUserID returns the seeded admin user's ID.
func adminUserID(t *testing.T, db *sql.DB) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	if err := db.QueryRow("SELECT id FROM users LIMIT 1").Scan(&id); err != nil {
		t.Fatalf("no users in database, run seed first: %v", err)
	}
	return id
}

// cleanProjects removes test projects by slug.
func cleanProjects(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM projects WHERE slug = $1", s)
	}
}

// cleanSections removes a test section by ID.
func cleanSections(t *testing.T, db *sql.DB, ids ...uuid.UUID) {
	t.Helper()
	for _, id := range ids {
		db.Exec("DELETE FROM sections WHERE id = $1", id)
	}
}
