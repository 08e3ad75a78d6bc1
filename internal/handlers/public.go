// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"spiritfolio/internal/cache"
	"spiritfolio/internal/middleware"
	"spiritfolio/internal/models"
	"spiritfolio/internal/site"
	"spiritfolio/internal/store"
)

// Public groups handlers for the public-facing portfolio. Anonymous
// requests are served from the Valkey full-page cache when possible;
// signed-in visitors always get a fresh render so inline editing shows
// current content with editable field wrapping.
type Public struct {
	site         *site.Renderer
	pageStore    *store.PageStore
	sectionStore *store.SectionStore
	projectStore *store.ProjectStore
	pageCache    *cache.PageCache
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *site.Renderer, pageStore *store.PageStore, sectionStore *store.SectionStore, projectStore *store.ProjectStore, pageCache *cache.PageCache) *Public {
	return &Public{
		site:         renderer,
		pageStore:    pageStore,
		sectionStore: sectionStore,
		projectStore: projectStore,
		pageCache:    pageCache,
	}
}

// signedIn reports whether the request carries a fully authenticated
// session (login plus 2FA). Only those visitors get inline editing and
// the cache bypass.
func signedIn(r *http.Request) bool {
	sess := middleware.SessionFromCtx(r.Context())
	return sess != nil && sess.TwoFADone
}

// Homepage renders the portfolio homepage from its sections.
func (p *Public) Homepage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	editing := signedIn(r)

	if !editing {
		if cached, ok := p.pageCache.Get(ctx, cache.HomeKey()); ok {
			writeHTML(w, cached)
			return
		}
	}

	page, err := p.pageStore.FindBySlug(models.PortfolioSlug)
	if err != nil {
		slog.Error("portfolio page lookup failed", "error", err)
	}

	// Signed-in visitors may preview an unpublished homepage; everyone
	// else gets the 404 page, same as an unpublished case study.
	if !editing && (page == nil || !page.IsPublished) {
		p.NotFound(w, r)
		return
	}

	var secs []models.Section
	if page != nil {
		// Signed-in visitors see unpublished sections too, so they can
		// review and edit them in place before publishing.
		if editing {
			secs, err = p.sectionStore.ListByPage(page.ID)
		} else {
			secs, err = p.sectionStore.ListPublishedByPage(page.ID)
		}
		if err != nil {
			slog.Error("list sections failed", "error", err)
		}
	}

	projects, err := p.projectStore.ListPublished()
	if err != nil {
		slog.Error("list published projects failed", "error", err)
	}

	rendered := p.site.RenderHome(page, secs, projects, editing)

	if !editing {
		p.pageCache.Set(ctx, cache.HomeKey(), rendered)
	}
	writeHTML(w, rendered)
}

// CaseStudy renders a project's case-study page by its slug. Unpublished
// and unknown slugs both get the 404 page, so the URL space does not
// reveal draft work.
func (p *Public) CaseStudy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	editing := signedIn(r)
	slugParam := chi.URLParam(r, "slug")

	if !editing {
		if cached, ok := p.pageCache.Get(ctx, cache.CaseStudyKey(slugParam)); ok {
			writeHTML(w, cached)
			return
		}
	}

	project, err := p.projectStore.FindBySlug(slugParam)
	if err != nil {
		slog.Error("find project by slug failed", "error", err, "slug", slugParam)
	}
	if project == nil {
		p.NotFound(w, r)
		return
	}

	rendered := p.site.RenderCaseStudy(project, editing)

	if !editing {
		p.pageCache.Set(ctx, cache.CaseStudyKey(slugParam), rendered)
	}
	writeHTML(w, rendered)
}

// NotFound serves the public 404 page. Not cached: misses are cheap and
// a slug could be published at any moment.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write(p.site.RenderNotFound())
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}
