// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the portfolio site.
// Handlers are grouped by concern (admin, public, auth) and receive
// their dependencies through the handler struct.
package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"spiritfolio/internal/cache"
	"spiritfolio/internal/middleware"
	"spiritfolio/internal/models"
	"spiritfolio/internal/render"
	"spiritfolio/internal/sections"
	"spiritfolio/internal/session"
	"spiritfolio/internal/storage"
	"spiritfolio/internal/store"
)

// Admin groups all admin panel HTTP handlers and their dependencies.
type Admin struct {
	renderer      *render.Renderer
	sessions      *session.Store
	pageStore     *store.PageStore
	sectionStore  *store.SectionStore
	projectStore  *store.ProjectStore
	userStore     *store.UserStore
	mediaStore    *store.MediaStore
	storageClient *storage.Client
	pageCache     *cache.PageCache
}

// NewAdmin creates a new Admin handler group with the given dependencies.
// storageClient may be nil if S3 is not configured.
func NewAdmin(renderer *render.Renderer, sessions *session.Store, pageStore *store.PageStore, sectionStore *store.SectionStore, projectStore *store.ProjectStore, userStore *store.UserStore, mediaStore *store.MediaStore, storageClient *storage.Client, pageCache *cache.PageCache) *Admin {
	return &Admin{
		renderer:      renderer,
		sessions:      sessions,
		pageStore:     pageStore,
		sectionStore:  sectionStore,
		projectStore:  projectStore,
		userStore:     userStore,
		mediaStore:    mediaStore,
		storageClient: storageClient,
		pageCache:     pageCache,
	}
}

// portfolioPage loads the page backing the public homepage.
func (a *Admin) portfolioPage() (*models.Page, error) {
	return a.pageStore.FindBySlug(models.PortfolioSlug)
}

// Dashboard renders the admin dashboard page with real stats.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	var sectionCount int
	if page, err := a.portfolioPage(); err == nil && page != nil {
		if secs, err := a.sectionStore.ListByPage(page.ID); err == nil {
			sectionCount = len(secs)
		}
	}

	projects, _ := a.projectStore.List()
	users, _ := a.userStore.List()
	mediaCount, _ := a.mediaStore.Count()

	// Recent edits, with a human label per section type.
	type recentEdit struct {
		models.Section
		Label string
	}
	var recent []recentEdit
	if secs, err := a.sectionStore.ListRecent(5); err == nil {
		for _, s := range secs {
			recent = append(recent, recentEdit{Section: s, Label: sections.Label(sections.Type(s.Type))})
		}
	}

	a.renderer.Page(w, r, "dashboard", &render.PageData{
		Title: "Dashboard",
		Nav:   "dashboard",
		Data: map[string]any{
			"SectionCount": sectionCount,
			"ProjectCount": len(projects),
			"UserCount":    len(users),
			"MediaCount":   mediaCount,
			"RecentEdits":  recent,
		},
	})
}

// UsersList renders the user management page.
func (a *Admin) UsersList(w http.ResponseWriter, r *http.Request) {
	users, err := a.userStore.List()
	if err != nil {
		slog.Error("list users failed", "error", err)
	}

	a.renderer.Page(w, r, "users_list", &render.PageData{
		Title: "Users",
		Nav:   "users",
		Data:  map[string]any{"Users": users},
	})
}

// UserNew renders the new user creation form.
func (a *Admin) UserNew(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "user_form", &render.PageData{
		Title: "New User",
		Nav:   "users",
		Data: map[string]any{
			"Email":       "",
			"DisplayName": "",
			"Role":        string(models.RoleEditor),
		},
	})
}

// UserCreate handles the new user form submission.
func (a *Admin) UserCreate(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	displayName := strings.TrimSpace(r.FormValue("display_name"))
	password := r.FormValue("password")
	role := models.Role(r.FormValue("role"))

	var errMsg string
	switch {
	case email == "":
		errMsg = "Email is required."
	case displayName == "":
		errMsg = "Display name is required."
	case len(password) < 8:
		errMsg = "Password must be at least 8 characters."
	case role != models.RoleAdmin && role != models.RoleEditor:
		errMsg = "Invalid role."
	}

	if errMsg == "" {
		existing, _ := a.userStore.FindByEmail(email)
		if existing != nil {
			errMsg = "A user with this email already exists."
		}
	}

	if errMsg != "" {
		a.renderer.Page(w, r, "user_form", &render.PageData{
			Title: "New User",
			Nav:   "users",
			Data: map[string]any{
				"Error":       errMsg,
				"Email":       email,
				"DisplayName": displayName,
				"Role":        string(role),
			},
		})
		return
	}

	if _, err := a.userStore.Create(email, password, displayName, role); err != nil {
		slog.Error("create user failed", "error", err)
		a.renderer.Page(w, r, "user_form", &render.PageData{
			Title: "New User",
			Nav:   "users",
			Data: map[string]any{
				"Error":       "Failed to create user.",
				"Email":       email,
				"DisplayName": displayName,
				"Role":        string(role),
			},
		})
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	slog.Info("user created", "admin", sess.Email, "new_user", email, "role", role)

	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/admin/users")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

// UserResetTwoFA resets another user's 2FA, forcing re-setup on next login.
func (a *Admin) UserResetTwoFA(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	idStr := chi.URLParam(r, "id")
	targetID, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	// Cannot reset your own 2FA.
	if targetID == sess.UserID {
		http.Error(w, "Cannot reset your own 2FA", http.StatusForbidden)
		return
	}

	if err := a.userStore.ResetTOTP(targetID); err != nil {
		slog.Error("reset 2fa failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	slog.Info("2fa reset by admin", "admin", sess.Email, "target_user", targetID)
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}
