// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"spiritfolio/internal/models"
	"spiritfolio/internal/render"
	"spiritfolio/internal/slug"
)

// ProjectsList renders the projects management page.
func (a *Admin) ProjectsList(w http.ResponseWriter, r *http.Request) {
	projects, err := a.projectStore.List()
	if err != nil {
		slog.Error("list projects failed", "error", err)
	}

	a.renderer.Page(w, r, "projects_list", &render.PageData{
		Title: "Projects",
		Nav:   "projects",
		Data:  map[string]any{"Items": projects},
	})
}

// ProjectNew renders the new project form.
func (a *Admin) ProjectNew(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "project_form", &render.PageData{
		Title: "New Project",
		Nav:   "projects",
		Data:  map[string]any{"IsNew": true},
	})
}

// ProjectCreate handles the new project form submission. The slug is
// derived from the title (with a numeric suffix on collision) and never
// changes afterwards, since the case-study URL depends on it.
func (a *Admin) ProjectCreate(w http.ResponseWriter, r *http.Request) {
	p := &models.Project{}
	errMsg := a.applyProjectForm(p, r)
	if errMsg != "" {
		a.renderer.Page(w, r, "project_form", &render.PageData{
			Title: "New Project",
			Nav:   "projects",
			Data:  map[string]any{"IsNew": true, "Error": errMsg, "Item": p},
		})
		return
	}

	p.Slug = slug.Unique(p.Title, func(candidate string) bool {
		exists, err := a.projectStore.SlugExists(candidate)
		if err != nil {
			slog.Error("slug check failed", "error", err, "slug", candidate)
		}
		return exists
	})

	created, err := a.projectStore.Create(p)
	if err != nil {
		slog.Error("create project failed", "error", err)
		a.renderer.Page(w, r, "project_form", &render.PageData{
			Title: "New Project",
			Nav:   "projects",
			Data:  map[string]any{"IsNew": true, "Error": "Failed to create project.", "Item": p},
		})
		return
	}

	a.pageCache.InvalidateHome(r.Context())
	http.Redirect(w, r, "/admin/projects/"+created.ID.String(), http.StatusSeeOther)
}

// ProjectEdit renders the edit project form.
func (a *Admin) ProjectEdit(w http.ResponseWriter, r *http.Request) {
	p, ok := a.loadProject(w, r)
	if !ok {
		return
	}

	a.renderer.Page(w, r, "project_form", &render.PageData{
		Title: "Edit Project",
		Nav:   "projects",
		Data: map[string]any{
			"IsNew":    false,
			"Item":     p,
			"JSONText": prettyJSON(p.Content),
		},
	})
}

// ProjectUpdate handles the edit form submission. The slug stays fixed;
// everything else, including the case-study content blocks, is replaced.
func (a *Admin) ProjectUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := a.loadProject(w, r)
	if !ok {
		return
	}

	errMsg := a.applyProjectForm(p, r)

	if errMsg == "" {
		if blocksText := strings.TrimSpace(r.FormValue("content")); blocksText != "" {
			if !json.Valid([]byte(blocksText)) {
				errMsg = "Case-study content is not valid JSON."
			} else {
				p.Content = json.RawMessage(blocksText)
			}
		}
	}

	if errMsg != "" {
		a.renderer.Page(w, r, "project_form", &render.PageData{
			Title: "Edit Project",
			Nav:   "projects",
			Data: map[string]any{
				"IsNew":    false,
				"Item":     p,
				"Error":    errMsg,
				"JSONText": r.FormValue("content"),
			},
		})
		return
	}

	if err := a.projectStore.Update(p); err != nil {
		slog.Error("update project failed", "error", err, "id", p.ID)
		a.renderer.Page(w, r, "project_form", &render.PageData{
			Title: "Edit Project",
			Nav:   "projects",
			Data: map[string]any{
				"IsNew":    false,
				"Item":     p,
				"Error":    "Failed to save. Please try again.",
				"JSONText": r.FormValue("content"),
			},
		})
		return
	}

	a.invalidateProjectCache(r, p)
	http.Redirect(w, r, "/admin/projects", http.StatusSeeOther)
}

// ProjectPublishToggle flips a project's published flag. Unpublishing
// removes it from the grid and makes its case-study page a 404, without
// touching any of its content.
func (a *Admin) ProjectPublishToggle(w http.ResponseWriter, r *http.Request) {
	p, ok := a.loadProject(w, r)
	if !ok {
		return
	}

	if err := a.projectStore.SetPublished(p.ID, !p.IsPublished); err != nil {
		slog.Error("toggle project publish failed", "error", err, "id", p.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.invalidateProjectCache(r, p)
	redirectBack(w, r, "/admin/projects")
}

// ProjectDelete removes a project and its case-study page.
func (a *Admin) ProjectDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := a.loadProject(w, r)
	if !ok {
		return
	}

	if err := a.projectStore.Delete(p.ID); err != nil {
		slog.Error("delete project failed", "error", err, "id", p.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.invalidateProjectCache(r, p)
	redirectBack(w, r, "/admin/projects")
}

// applyProjectForm copies the submitted form values onto a project and
// returns a validation message, or "" when the input is acceptable.
func (a *Admin) applyProjectForm(p *models.Project, r *http.Request) string {
	p.Title = strings.TrimSpace(r.FormValue("title"))
	p.Description = strings.TrimSpace(r.FormValue("description"))
	p.ImageURL = strings.TrimSpace(r.FormValue("image_url"))
	p.Role = strings.TrimSpace(r.FormValue("role"))
	p.Result = strings.TrimSpace(r.FormValue("result"))
	p.Link = strings.TrimSpace(r.FormValue("link"))
	p.IsFeatured = r.FormValue("is_featured") == "on"

	rating, err := strconv.Atoi(r.FormValue("rating"))
	if err == nil {
		p.Rating = rating
	}

	return validateProject(p)
}

// invalidateProjectCache purges the cached pages a project change can
// affect: its own case-study page and the homepage grid.
func (a *Admin) invalidateProjectCache(r *http.Request, p *models.Project) {
	a.pageCache.InvalidateCaseStudy(r.Context(), p.Slug)
	a.pageCache.InvalidateHome(r.Context())
}

// loadProject resolves the {id} URL parameter to a project.
func (a *Admin) loadProject(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return nil, false
	}

	p, err := a.projectStore.FindByID(id)
	if err != nil {
		slog.Error("project lookup failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	if p == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return nil, false
	}
	return p, true
}
