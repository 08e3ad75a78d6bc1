// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"spiritfolio/internal/models"
	"spiritfolio/internal/render"
	"spiritfolio/internal/sections"
)

// sectionListItem is a row in the sections management page.
type sectionListItem struct {
	models.Section
	Label string
	Known bool
}

// SectionsList renders the homepage sections management page.
func (a *Admin) SectionsList(w http.ResponseWriter, r *http.Request) {
	page, err := a.portfolioPage()
	if err != nil || page == nil {
		slog.Error("portfolio page lookup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	secs, err := a.sectionStore.ListByPage(page.ID)
	if err != nil {
		slog.Error("list sections failed", "error", err)
	}

	items := make([]sectionListItem, 0, len(secs))
	for _, s := range secs {
		typ := sections.Type(s.Type)
		items = append(items, sectionListItem{
			Section: s,
			Label:   sections.Label(typ),
			Known:   sections.Known(typ),
		})
	}

	// Offer the registered types for the "add section" control.
	type typeOption struct {
		Value string
		Label string
	}
	var options []typeOption
	for _, t := range sections.Types() {
		options = append(options, typeOption{Value: string(t), Label: sections.Label(t)})
	}

	a.renderer.Page(w, r, "sections_list", &render.PageData{
		Title: "Sections",
		Nav:   "sections",
		Data: map[string]any{
			"Page":     page,
			"Sections": items,
			"Types":    options,
		},
	})
}

// SectionCreate adds a new section of a registered type to the end of
// the portfolio page. The section starts unpublished with empty content,
// which renders as the type's default copy.
func (a *Admin) SectionCreate(w http.ResponseWriter, r *http.Request) {
	page, err := a.portfolioPage()
	if err != nil || page == nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	typ := sections.Type(r.FormValue("type"))
	if !sections.Known(typ) {
		http.Error(w, "Unknown section type", http.StatusBadRequest)
		return
	}

	existing, err := a.sectionStore.ListByPage(page.ID)
	if err != nil {
		slog.Error("list sections failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	created, err := a.sectionStore.Create(page.ID, string(typ), nil, len(existing))
	if err != nil {
		slog.Error("create section failed", "error", err, "type", typ)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/sections/"+created.ID.String(), http.StatusSeeOther)
}

// SectionEditor renders the editor for one section. Registered types get
// the structured editor; anything else falls back to a raw JSON textarea
// so rows written outside the CMS stay editable.
func (a *Admin) SectionEditor(w http.ResponseWriter, r *http.Request) {
	sec, ok := a.loadSection(w, r)
	if !ok {
		return
	}
	a.renderSectionEditor(w, r, sec, "", sec.Content)
}

// renderSectionEditor renders the editor page for a section, optionally
// with an error message and an unsaved document to show instead of the
// stored one (so a rejected save does not wipe the admin's edits).
func (a *Admin) renderSectionEditor(w http.ResponseWriter, r *http.Request, sec *models.Section, errMsg string, doc json.RawMessage) {
	typ := sections.Type(sec.Type)
	known := sections.Known(typ)

	data := map[string]any{
		"Section":  sec,
		"Label":    sections.Label(typ),
		"Known":    known,
		"Editor":   typedEditor(typ),
		"JSONText": prettyJSON(doc),
	}
	if errMsg != "" {
		data["Error"] = errMsg
	}

	if known {
		content, err := sections.Decode(typ, doc)
		if err != nil {
			slog.Warn("stored section content malformed", "id", sec.ID, "error", err)
		}
		data["Content"] = content
	} else {
		// Raw fallback: show the text as stored, flag whether it parses.
		raw := sections.NewRawDocument(doc)
		data["RawValid"] = raw.Valid()
	}

	a.renderer.Page(w, r, "section_editor", &render.PageData{
		Title: "Edit Section",
		Nav:   "sections",
		Data:  data,
	})
}

// SectionSave replaces a section's content document wholesale. The last
// save wins; there is no merging of concurrent edits. The section's type
// is never touched.
//
// Types with a structured editor submit named fields (the hidden "form"
// value says which); everything else submits the whole document as text.
func (a *Admin) SectionSave(w http.ResponseWriter, r *http.Request) {
	sec, ok := a.loadSection(w, r)
	if !ok {
		return
	}

	formKind := r.FormValue("form")
	if formKind != "" && formKind != typedEditor(sections.Type(sec.Type)) {
		http.Error(w, "Wrong editor for this section type", http.StatusBadRequest)
		return
	}

	var doc json.RawMessage
	var err error
	switch formKind {
	case "hero":
		doc, err = heroDocFromForm(r)
	case "about":
		doc, err = aboutDocFromForm(r)
	case "skills":
		doc, err = skillsDocFromForm(r, sec.Content)
	case "contact":
		doc, err = contactDocFromForm(r)
	default:
		text := r.FormValue("content")
		if strings.TrimSpace(text) == "" {
			// An empty submission resets the section to its default copy.
			text = "{}"
		}
		doc = json.RawMessage(text)
	}
	if err != nil {
		slog.Error("build section document from form failed", "error", err, "id", sec.ID)
		a.renderSectionEditor(w, r, sec, "Failed to read the form. Please try again.", sec.Content)
		return
	}

	if verr := sections.Validate(sections.Type(sec.Type), doc); verr != nil {
		a.renderSectionEditor(w, r, sec, verr.Error(), doc)
		return
	}

	if err := a.sectionStore.UpdateContent(sec.ID, doc); err != nil {
		slog.Error("update section content failed", "error", err, "id", sec.ID)
		a.renderSectionEditor(w, r, sec, "Failed to save. Please try again.", doc)
		return
	}

	a.pageCache.InvalidateHome(r.Context())
	http.Redirect(w, r, "/admin/sections/"+sec.ID.String(), http.StatusSeeOther)
}

// SectionPublishToggle flips a section's published flag. Content and
// ordering are untouched, so unpublishing hides a section without
// losing its document.
func (a *Admin) SectionPublishToggle(w http.ResponseWriter, r *http.Request) {
	sec, ok := a.loadSection(w, r)
	if !ok {
		return
	}

	if err := a.sectionStore.SetPublished(sec.ID, !sec.IsPublished); err != nil {
		slog.Error("toggle section publish failed", "error", err, "id", sec.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.pageCache.InvalidateHome(r.Context())
	redirectBack(w, r, "/admin/sections")
}

// SectionReorder sets a section's position on the page.
func (a *Admin) SectionReorder(w http.ResponseWriter, r *http.Request) {
	sec, ok := a.loadSection(w, r)
	if !ok {
		return
	}

	orderIndex, err := strconv.Atoi(r.FormValue("order_index"))
	if err != nil || orderIndex < 0 {
		http.Error(w, "Invalid order index", http.StatusBadRequest)
		return
	}

	if err := a.sectionStore.SetOrder(sec.ID, orderIndex); err != nil {
		slog.Error("reorder section failed", "error", err, "id", sec.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.pageCache.InvalidateHome(r.Context())
	redirectBack(w, r, "/admin/sections")
}

// SectionDelete removes a section from the page.
func (a *Admin) SectionDelete(w http.ResponseWriter, r *http.Request) {
	sec, ok := a.loadSection(w, r)
	if !ok {
		return
	}

	if err := a.sectionStore.Delete(sec.ID); err != nil {
		slog.Error("delete section failed", "error", err, "id", sec.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.pageCache.InvalidateHome(r.Context())
	redirectBack(w, r, "/admin/sections")
}

// SectionFieldPatch applies an inline edit to a single leaf field of a
// section's content. The path uses the same dot/index syntax the public
// templates emit on their editable spans.
func (a *Admin) SectionFieldPatch(w http.ResponseWriter, r *http.Request) {
	sec, ok := a.loadSection(w, r)
	if !ok {
		return
	}

	path := strings.TrimSpace(r.FormValue("path"))
	value := r.FormValue("value")
	if path == "" {
		writeJSONError(w, "path is required", http.StatusBadRequest)
		return
	}

	patched, err := sections.PatchField(sections.Type(sec.Type), sec.Content, path, value)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if verr := sections.Validate(sections.Type(sec.Type), patched); verr != nil {
		writeJSONError(w, verr.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err := a.sectionStore.UpdateContent(sec.ID, patched); err != nil {
		slog.Error("patch section field failed", "error", err, "id", sec.ID, "path", path)
		writeJSONError(w, "failed to save", http.StatusInternalServerError)
		return
	}

	a.pageCache.InvalidateHome(r.Context())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"ok": true, "path": path})
}

// --- Skills structural operations ---
//
// The skills editor manipulates lists (categories, skills, tools) with
// dedicated endpoints instead of free-form JSON editing. Each operation
// decodes the document, applies the change, and saves the whole thing
// back, so the same last-write-wins rule applies.

// SectionAddCategory appends a starter category to a skills section.
func (a *Admin) SectionAddCategory(w http.ResponseWriter, r *http.Request) {
	a.applySkillsOp(w, r, func(doc json.RawMessage) (json.RawMessage, error) {
		updated, _, err := sections.AddCategory(doc)
		return updated, err
	})
}

// SectionRemoveCategory removes a category and all its skills.
func (a *Admin) SectionRemoveCategory(w http.ResponseWriter, r *http.Request) {
	catID := chi.URLParam(r, "categoryID")
	a.applySkillsOp(w, r, func(doc json.RawMessage) (json.RawMessage, error) {
		return sections.RemoveCategory(doc, catID)
	})
}

// SectionAddSkill appends a starter skill to one category.
func (a *Admin) SectionAddSkill(w http.ResponseWriter, r *http.Request) {
	catID := chi.URLParam(r, "categoryID")
	a.applySkillsOp(w, r, func(doc json.RawMessage) (json.RawMessage, error) {
		updated, _, err := sections.AddSkill(doc, catID)
		return updated, err
	})
}

// SectionRemoveSkill removes a single skill from a category.
func (a *Admin) SectionRemoveSkill(w http.ResponseWriter, r *http.Request) {
	catID := chi.URLParam(r, "categoryID")
	skillID := chi.URLParam(r, "skillID")
	a.applySkillsOp(w, r, func(doc json.RawMessage) (json.RawMessage, error) {
		return sections.RemoveSkill(doc, catID, skillID)
	})
}

// SectionAddTool appends a tool with the submitted name.
func (a *Admin) SectionAddTool(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	a.applySkillsOp(w, r, func(doc json.RawMessage) (json.RawMessage, error) {
		updated, _, err := sections.AddTool(doc, name)
		return updated, err
	})
}

// SectionRemoveTool removes a tool by its ID.
func (a *Admin) SectionRemoveTool(w http.ResponseWriter, r *http.Request) {
	toolID := chi.URLParam(r, "toolID")
	a.applySkillsOp(w, r, func(doc json.RawMessage) (json.RawMessage, error) {
		return sections.RemoveTool(doc, toolID)
	})
}

// applySkillsOp runs one structural edit against a skills section and
// persists the result.
func (a *Admin) applySkillsOp(w http.ResponseWriter, r *http.Request, op func(json.RawMessage) (json.RawMessage, error)) {
	sec, ok := a.loadSection(w, r)
	if !ok {
		return
	}

	if sections.Type(sec.Type) != sections.TypeSkills {
		http.Error(w, "Not a skills section", http.StatusBadRequest)
		return
	}

	updated, err := op(sec.Content)
	if err != nil {
		slog.Warn("skills edit rejected", "error", err, "id", sec.ID)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := a.sectionStore.UpdateContent(sec.ID, updated); err != nil {
		slog.Error("save skills edit failed", "error", err, "id", sec.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.pageCache.InvalidateHome(r.Context())
	redirectBack(w, r, "/admin/sections/"+sec.ID.String())
}

// typedEditor names the structured editor for a section type, or ""
// when the type is edited as one JSON document.
func typedEditor(t sections.Type) string {
	switch t {
	case sections.TypeHero:
		return "hero"
	case sections.TypeAbout:
		return "about"
	case sections.TypeSkills:
		return "skills"
	case sections.TypeContact:
		return "contact"
	}
	return ""
}

// heroDocFromForm assembles a hero document from its typed editor form.
func heroDocFromForm(r *http.Request) (json.RawMessage, error) {
	return sections.Encode(sections.HeroContent{
		Title:    strings.TrimSpace(r.FormValue("title")),
		Subtitle: strings.TrimSpace(r.FormValue("subtitle")),
		CTAText:  strings.TrimSpace(r.FormValue("cta_text")),
		CTALink:  strings.TrimSpace(r.FormValue("cta_link")),
		ImageURL: strings.TrimSpace(r.FormValue("image_url")),
	})
}

// aboutDocFromForm assembles an about document. The description textarea
// holds one paragraph per line. Highlight rows repeat their field names;
// a row left completely blank is dropped, which is how rows are removed.
func aboutDocFromForm(r *http.Request) (json.RawMessage, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	var paragraphs []string
	for _, line := range strings.Split(r.FormValue("description"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			paragraphs = append(paragraphs, line)
		}
	}

	titles := r.PostForm["highlight_title"]
	descs := r.PostForm["highlight_description"]
	icons := r.PostForm["highlight_icon"]
	var highlights []sections.AboutHighlight
	for i := range titles {
		h := sections.AboutHighlight{
			Title:       formAt(titles, i),
			Description: formAt(descs, i),
			Icon:        formAt(icons, i),
		}
		if h.Title == "" && h.Description == "" {
			continue
		}
		highlights = append(highlights, h)
	}

	return sections.Encode(sections.AboutContent{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Subtitle:    strings.TrimSpace(r.FormValue("subtitle")),
		Description: paragraphs,
		Image:       strings.TrimSpace(r.FormValue("image")),
		Skills:      highlights,
	})
}

// skillsDocFromForm updates the skills heading fields. Categories and
// tools are managed by the structural endpoints and carried over as-is.
func skillsDocFromForm(r *http.Request, current json.RawMessage) (json.RawMessage, error) {
	v, _ := sections.Decode(sections.TypeSkills, current)
	c := v.(sections.SkillsContent)
	c.Title = strings.TrimSpace(r.FormValue("title"))
	c.Subtitle = strings.TrimSpace(r.FormValue("subtitle"))
	return sections.Encode(c)
}

// contactDocFromForm assembles a contact document. Social rows with an
// empty platform are dropped.
func contactDocFromForm(r *http.Request) (json.RawMessage, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	platforms := r.PostForm["social_platform"]
	urls := r.PostForm["social_url"]
	var links []sections.SocialLink
	for i := range platforms {
		platform := formAt(platforms, i)
		if platform == "" {
			continue
		}
		links = append(links, sections.SocialLink{Platform: platform, URL: formAt(urls, i)})
	}

	return sections.Encode(sections.ContactContent{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Subtitle:    strings.TrimSpace(r.FormValue("subtitle")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Email:       strings.TrimSpace(r.FormValue("email")),
		Phone:       strings.TrimSpace(r.FormValue("phone")),
		Address:     strings.TrimSpace(r.FormValue("address")),
		SocialLinks: links,
	})
}

// formAt returns the i-th value of a repeated form field, trimmed, or "".
func formAt(values []string, i int) string {
	if i >= len(values) {
		return ""
	}
	return strings.TrimSpace(values[i])
}

// loadSection resolves the {id} URL parameter to a section, writing the
// appropriate error response when it cannot.
func (a *Admin) loadSection(w http.ResponseWriter, r *http.Request) (*models.Section, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return nil, false
	}

	sec, err := a.sectionStore.FindByID(id)
	if err != nil {
		slog.Error("section lookup failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	if sec == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return nil, false
	}
	return sec, true
}

// redirectBack redirects to target, using HX-Redirect for HTMX requests
// so the browser performs a full navigation.
func redirectBack(w http.ResponseWriter, r *http.Request, target string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// prettyJSON indents a JSON document for the editor textarea. Invalid
// documents come back unchanged so the admin sees exactly what is stored.
func prettyJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "{}"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
