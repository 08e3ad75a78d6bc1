// Package router sets up all HTTP routes and middleware chains for the
// portfolio server. It organizes routes into public and admin groups
// with appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"spiritfolio/internal/handlers"
	"spiritfolio/internal/middleware"
	"spiritfolio/internal/session"
	"spiritfolio/web"
)

// loginRateLimit bounds login attempts per client IP.
const (
	loginRateLimit  = 5
	loginRateWindow = time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Embedded static assets (site CSS, inline editor script, vendored libs).
	r.Handle("/static/*", http.FileServer(http.FS(web.StaticFS)))

	loginLimiter := middleware.NewRateLimiter(loginRateLimit, loginRateWindow)

	// Admin routes — require authentication and CSRF protection.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.CSRF)

		// Auth pages — accessible without a session. Login submissions
		// are rate limited per client IP.
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

			// Homepage sections
			r.Route("/sections", func(r chi.Router) {
				r.Get("/", admin.SectionsList)
				r.Post("/", admin.SectionCreate)
				r.Get("/{id}", admin.SectionEditor)
				r.Post("/{id}", admin.SectionSave)
				r.Delete("/{id}", admin.SectionDelete)
				r.Post("/{id}/publish", admin.SectionPublishToggle)
				r.Post("/{id}/order", admin.SectionReorder)
				r.Patch("/{id}/field", admin.SectionFieldPatch)

				// Structural skills edits
				r.Post("/{id}/categories", admin.SectionAddCategory)
				r.Delete("/{id}/categories/{categoryID}", admin.SectionRemoveCategory)
				r.Post("/{id}/categories/{categoryID}/skills", admin.SectionAddSkill)
				r.Delete("/{id}/categories/{categoryID}/skills/{skillID}", admin.SectionRemoveSkill)
				r.Post("/{id}/tools", admin.SectionAddTool)
				r.Delete("/{id}/tools/{toolID}", admin.SectionRemoveTool)
			})

			// Projects and their case studies
			r.Route("/projects", func(r chi.Router) {
				r.Get("/", admin.ProjectsList)
				r.Get("/new", admin.ProjectNew)
				r.Post("/", admin.ProjectCreate)
				r.Get("/{id}", admin.ProjectEdit)
				r.Put("/{id}", admin.ProjectUpdate)
				r.Delete("/{id}", admin.ProjectDelete)
				r.Post("/{id}/publish", admin.ProjectPublishToggle)
			})

			// Media library
			r.Route("/media", func(r chi.Router) {
				r.Get("/", admin.MediaLibrary)
				r.Post("/upload", admin.MediaUpload)
				r.Delete("/{id}", admin.MediaDelete)
				r.Post("/{id}/alt", admin.MediaUpdateAlt)
				r.Get("/{id}/file", admin.MediaServe)
			})

			// User management — admin only
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", admin.UsersList)
				r.Get("/new", admin.UserNew)
				r.Post("/", admin.UserCreate)
				r.Post("/{id}/reset-2fa", admin.UserResetTwoFA)
			})
		})
	})

	// Public routes — the portfolio homepage and case-study pages.
	r.Get("/", public.Homepage)
	r.Get("/case-study/{slug}", public.CaseStudy)
	r.NotFound(public.NotFound)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
