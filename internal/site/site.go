// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package site renders the public portfolio pages from embedded section
// templates. Rendering is total: a section whose content is malformed or
// whose type is unknown is skipped with a warning, never an error, so the
// public site stays up no matter what is in the database.
//
// When the visitor is signed in, leaf text fields are wrapped in editable
// spans carrying the section ID and field path, which the inline editor
// script turns into click-to-edit controls.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"spiritfolio/internal/markdown"
	"spiritfolio/internal/models"
	"spiritfolio/internal/sections"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders public pages from the embedded section templates.
type Renderer struct {
	siteName string
	tmpl     *template.Template
}

// New parses the embedded templates and returns a ready renderer.
func New(siteName string) (*Renderer, error) {
	tmpl := template.New("site").Funcs(template.FuncMap{
		"field":    editableField,
		"markdown": renderMarkdown,
		"stars":    starRange,
	})

	tmpl, err := tmpl.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse site templates: %w", err)
	}

	return &Renderer{siteName: siteName, tmpl: tmpl}, nil
}

// sectionView is the data passed to each section partial.
type sectionView struct {
	ID       string
	Type     string
	C        any // decoded content struct for the section's type
	SignedIn bool
	Projects []projectView // populated for the projects section only
}

// projectView is a single project card or case-study header.
type projectView struct {
	ID          string
	Title       string
	Slug        string
	Description string
	ImageURL    string
	Role        string
	Stars       int
	Result      string
	Link        string
}

type pageView struct {
	SiteName string
	Title    string
	SignedIn bool
	Sections []template.HTML
	Year     int
}

type caseStudyView struct {
	SiteName string
	SignedIn bool
	Project  projectView
	Blocks   []caseBlockView
	Year     int
}

type caseBlockView struct {
	Key      string
	Title    string
	Body     template.HTML
	ImageURL string
}

// RenderHome renders the portfolio homepage from its sections. Sections
// with unknown types are skipped; malformed content falls back to the
// type's defaults. signedIn enables inline-edit wrapping and should be
// true only for authenticated visitors (who also bypass the page cache).
func (r *Renderer) RenderHome(page *models.Page, secs []models.Section, projects []models.Project, signedIn bool) []byte {
	views := projectViews(projects)

	var rendered []template.HTML
	for _, sec := range secs {
		html, ok := r.renderSection(sec, views, signedIn)
		if !ok {
			continue
		}
		rendered = append(rendered, html)
	}

	title := r.siteName
	if page != nil && page.Title != "" {
		title = page.Title + " | " + r.siteName
	}

	return r.renderLayout("home", pageView{
		SiteName: r.siteName,
		Title:    title,
		SignedIn: signedIn,
		Sections: rendered,
		Year:     time.Now().Year(),
	})
}

// RenderCaseStudy renders a project's case-study page. Markdown block
// bodies are converted to HTML; a block whose Markdown fails to convert
// falls back to its raw text.
func (r *Renderer) RenderCaseStudy(project *models.Project, signedIn bool) []byte {
	view := caseStudyView{
		SiteName: r.siteName,
		SignedIn: signedIn,
		Project:  projectView{},
		Year:     time.Now().Year(),
	}
	if project != nil {
		view.Project = toProjectView(project)
		for _, b := range project.Blocks() {
			view.Blocks = append(view.Blocks, caseBlockView{
				Key:      b.Key,
				Title:    b.Title,
				Body:     renderMarkdown(b.Body),
				ImageURL: b.ImageURL,
			})
		}
	}

	return r.renderLayout("case_study", view)
}

// RenderNotFound renders the public 404 page.
func (r *Renderer) RenderNotFound() []byte {
	return r.renderLayout("not_found", pageView{
		SiteName: r.siteName,
		Title:    "Page Not Found | " + r.siteName,
		Year:     time.Now().Year(),
	})
}

// renderSection renders a single section partial. Returns false when the
// section type is unknown or the partial fails, so callers skip it.
func (r *Renderer) renderSection(sec models.Section, projects []projectView, signedIn bool) (template.HTML, bool) {
	typ := sections.Type(sec.Type)
	if !sections.Known(typ) {
		slog.Warn("skipping section with unknown type", "type", sec.Type, "id", sec.ID)
		return "", false
	}

	content, err := sections.Decode(typ, sec.Content)
	if err != nil {
		// Decode already fell back to defaults; log and render those.
		slog.Warn("section content malformed, rendering defaults", "type", sec.Type, "id", sec.ID, "error", err)
	}

	view := sectionView{
		ID:       sec.ID.String(),
		Type:     sec.Type,
		C:        content,
		SignedIn: signedIn,
	}
	if typ == sections.TypeProjects {
		view.Projects = projects
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "section_"+sec.Type, view); err != nil {
		slog.Error("section template failed, skipping section", "type", sec.Type, "id", sec.ID, "error", err)
		return "", false
	}
	return template.HTML(buf.String()), true
}

// renderLayout executes a top-level template. It cannot realistically
// fail with embedded templates; if it does, a minimal page is served so
// the public site never 500s on a render bug.
func (r *Renderer) renderLayout(name string, data any) []byte {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("layout template failed", "template", name, "error", err)
		return []byte("<!DOCTYPE html><html><body><h1>" + template.HTMLEscapeString(r.siteName) + "</h1></body></html>")
	}
	return buf.Bytes()
}

func projectViews(projects []models.Project) []projectView {
	var views []projectView
	for i := range projects {
		views = append(views, toProjectView(&projects[i]))
	}
	return views
}

func toProjectView(p *models.Project) projectView {
	if !p.RatingValid() {
		// Out-of-range ratings are rejected at the write boundary, so a
		// bad value here means the row predates validation or was written
		// outside the CMS. Flag it; Stars clamps it for display.
		slog.Warn("project rating out of range, clamping for display", "id", p.ID, "slug", p.Slug, "rating", p.Rating)
	}

	link := p.Link
	if link == "" {
		link = "/case-study/" + p.Slug
	}
	return projectView{
		ID:          p.ID.String(),
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Role:        p.Role,
		Stars:       p.Stars(),
		Result:      p.Result,
		Link:        link,
	}
}

// editableField renders a leaf text value. For signed-in visitors it is
// wrapped in a span carrying the section ID and field path so the inline
// editor can PATCH it back; anonymous visitors get the bare text.
func editableField(signedIn bool, sectionID, path string, value any) template.HTML {
	text := template.HTMLEscapeString(fmt.Sprint(value))
	if !signedIn {
		return template.HTML(text)
	}
	return template.HTML(fmt.Sprintf(
		`<span class="sf-editable" data-section=%q data-field=%q>%s</span>`,
		sectionID, path, text,
	))
}

// renderMarkdown converts Markdown to HTML, falling back to the escaped
// source text if conversion fails.
func renderMarkdown(source string) template.HTML {
	html, err := markdown.ToHTML(source)
	if err != nil {
		slog.Warn("markdown conversion failed, using raw text", "error", err)
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(html)
}

// starRange returns a slice of length n for ranging in templates.
func starRange(n int) []struct{} {
	if n < 0 {
		n = 0
	}
	return make([]struct{}, n)
}
