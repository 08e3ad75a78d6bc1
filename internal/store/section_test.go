// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

// testPage creates a throwaway page for section tests and registers cleanup.
func testPage(t *testing.T, db *sql.DB, slug string) uuid.UUID {
	t.Helper()
	t.Cleanup(func() { cleanPages(t, db, slug) })

	p, err := NewPageStore(db).Create("Test Page", slug, true)
	if err != nil {
		t.Fatalf("create test page: %v", err)
	}
	return p.ID
}

func TestSectionStoreCreateAndList(t *testing.T) {
	db := testDB(t)
	s := NewSectionStore(db)
	pageID := testPage(t, db, "section-create-test")

	hero, err := s.Create(pageID, "hero", nil, 0)
	if err != nil {
		t.Fatalf("Create hero: %v", err)
	}
	if hero.Type != "hero" {
		t.Errorf("type: got %q, want %q", hero.Type, "hero")
	}
	if string(hero.Content) != "{}" {
		t.Errorf("content: got %q, want {} default", hero.Content)
	}
	if hero.IsPublished {
		t.Error("new sections should start unpublished")
	}

	if _, err := s.Create(pageID, "about", json.RawMessage(`{"title":"My Story"}`), 1); err != nil {
		t.Fatalf("Create about: %v", err)
	}

	sections, err := s.ListByPage(pageID)
	if err != nil {
		t.Fatalf("ListByPage: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Type != "hero" || sections[1].Type != "about" {
		t.Errorf("sections out of order: %s, %s", sections[0].Type, sections[1].Type)
	}
}

func TestSectionStoreListPublishedByPage(t *testing.T) {
	db := testDB(t)
	s := NewSectionStore(db)
	pageID := testPage(t, db, "section-published-test")

	hero, _ := s.Create(pageID, "hero", nil, 0)
	s.Create(pageID, "about", nil, 1)

	if err := s.SetPublished(hero.ID, true); err != nil {
		t.Fatalf("SetPublished: %v", err)
	}

	published, err := s.ListPublishedByPage(pageID)
	if err != nil {
		t.Fatalf("ListPublishedByPage: %v", err)
	}
	if len(published) != 1 {
		t.Fatalf("expected 1 published section, got %d", len(published))
	}
	if published[0].ID != hero.ID {
		t.Errorf("expected the hero section, got %s", published[0].Type)
	}
}

// TestSectionStorePublishToggleLeavesContentAlone verifies that flipping
// the published flag touches nothing else on the row.
func TestSectionStorePublishToggleLeavesContentAlone(t *testing.T) {
	db := testDB(t)
	s := NewSectionStore(db)
	pageID := testPage(t, db, "section-toggle-test")

	content := json.RawMessage(`{"title": "Untouched"}`)
	sec, _ := s.Create(pageID, "hero", content, 0)

	if err := s.SetPublished(sec.ID, true); err != nil {
		t.Fatalf("SetPublished(true): %v", err)
	}

	after, _ := s.FindByID(sec.ID)
	if !after.IsPublished {
		t.Error("expected is_published=true after toggle")
	}
	if after.Type != sec.Type {
		t.Errorf("type changed: got %q, want %q", after.Type, sec.Type)
	}
	var got, want map[string]any
	json.Unmarshal(after.Content, &got)
	json.Unmarshal(content, &want)
	if got["title"] != want["title"] {
		t.Errorf("content changed: got %s", after.Content)
	}

	if err := s.SetPublished(sec.ID, false); err != nil {
		t.Fatalf("SetPublished(false): %v", err)
	}
	after, _ = s.FindByID(sec.ID)
	if after.IsPublished {
		t.Error("expected is_published=false after second toggle")
	}
}

// TestSectionStoreTypeImmutable verifies that no update path can change
// a section's type: content updates, publish flips, and reordering all
// leave the type column as created.
func TestSectionStoreTypeImmutable(t *testing.T) {
	db := testDB(t)
	s := NewSectionStore(db)
	pageID := testPage(t, db, "section-immutable-test")

	sec, _ := s.Create(pageID, "skills", nil, 0)

	s.UpdateContent(sec.ID, json.RawMessage(`{"type": "hero", "title": "sneaky"}`))
	s.SetPublished(sec.ID, true)
	s.SetOrder(sec.ID, 5)

	after, err := s.FindByID(sec.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if after.Type != "skills" {
		t.Errorf("type mutated: got %q, want %q", after.Type, "skills")
	}
	if after.OrderIndex != 5 {
		t.Errorf("order: got %d, want 5", after.OrderIndex)
	}
}

// TestSectionStoreLastWriteWins verifies the concurrency model: two
// editors save full content documents and the second save fully replaces
// the first, with no merging.
func TestSectionStoreLastWriteWins(t *testing.T) {
	db := testDB(t)
	s := NewSectionStore(db)
	pageID := testPage(t, db, "section-lww-test")

	sec, _ := s.Create(pageID, "hero", nil, 0)

	first := json.RawMessage(`{"title": "First Editor", "subtitle": "kept?"}`)
	second := json.RawMessage(`{"title": "Second Editor"}`)

	if err := s.UpdateContent(sec.ID, first); err != nil {
		t.Fatalf("first UpdateContent: %v", err)
	}
	if err := s.UpdateContent(sec.ID, second); err != nil {
		t.Fatalf("second UpdateContent: %v", err)
	}

	after, _ := s.FindByID(sec.ID)
	var doc map[string]any
	if err := json.Unmarshal(after.Content, &doc); err != nil {
		t.Fatalf("unmarshal content: %v", err)
	}
	if doc["title"] != "Second Editor" {
		t.Errorf("title: got %v, want the last write", doc["title"])
	}
	if _, merged := doc["subtitle"]; merged {
		t.Error("subtitle from the first write survived; saves must replace, not merge")
	}
}

func TestSectionStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewSectionStore(db)
	pageID := testPage(t, db, "section-delete-test")

	sec, _ := s.Create(pageID, "contact", nil, 0)

	if err := s.Delete(sec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	found, _ := s.FindByID(sec.ID)
	if found != nil {
		t.Error("expected nil after delete")
	}
}

func TestSectionStoreFindByIDNotFound(t *testing.T) {
	db := testDB(t)
	s := NewSectionStore(db)

	found, err := s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Error("expected nil for random UUID")
	}
}
