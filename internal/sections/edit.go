// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sections

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ValidationError reports a content document that must not be saved.
// Field names the offending field using the same dot/index paths the
// inline editor uses (e.g. "categories.1.skills.0.percentage").
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid content: %s: %s", e.Field, e.Message)
}

// Validate checks a content document at the write boundary. Rendering
// is lenient, but writes are not: a document that fails validation is
// rejected wholesale and the stored content stays unchanged.
//
// For unknown types only well-formedness is checked, since there is no
// schema to validate against.
func Validate(t Type, raw json.RawMessage) *ValidationError {
	if len(raw) == 0 {
		return nil
	}
	if !json.Valid(raw) {
		return &ValidationError{Field: "content", Message: "not valid JSON"}
	}
	if !Known(t) {
		return nil
	}

	v, err := Decode(t, raw)
	if err != nil {
		return &ValidationError{Field: "content", Message: err.Error()}
	}

	switch c := v.(type) {
	case SkillsContent:
		for ci, cat := range c.Categories {
			for si, sk := range cat.Skills {
				if sk.Percentage < 0 || sk.Percentage > 100 {
					return &ValidationError{
						Field:   fmt.Sprintf("categories.%d.skills.%d.percentage", ci, si),
						Message: fmt.Sprintf("percentage %d is out of range 0-100", sk.Percentage),
					}
				}
			}
		}
	case ShowcaseContent:
		for ti, ts := range c.Testimonials {
			if ts.Rating < 1 || ts.Rating > 5 {
				return &ValidationError{
					Field:   fmt.Sprintf("testimonials.%d.rating", ti),
					Message: fmt.Sprintf("rating %g is out of range 1-5", ts.Rating),
				}
			}
		}
	case ProblemContent:
		if c.Persona.Age < 0 {
			return &ValidationError{Field: "persona.age", Message: "age cannot be negative"}
		}
	}
	return nil
}

// newItemID generates a unique ID with the given prefix for list items
// created by the structural edit operations.
func newItemID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

// decodeSkills decodes a skills document for a structural edit. The
// document is materialized from defaults first, so editing a section
// that still holds {} operates on the same lists the visitor sees.
func decodeSkills(raw json.RawMessage) (SkillsContent, error) {
	v, err := Decode(TypeSkills, raw)
	if err != nil {
		return SkillsContent{}, err
	}
	return v.(SkillsContent), nil
}

// AddCategory appends a starter category to a skills document and
// returns the new document plus the generated category ID.
func AddCategory(raw json.RawMessage) (json.RawMessage, string, error) {
	c, err := decodeSkills(raw)
	if err != nil {
		return nil, "", err
	}

	id := newItemID("cat")
	c.Categories = append(c.Categories, SkillCategory{
		ID:    id,
		Name:  "New Category",
		Icon:  "fa-star",
		Color: "blue",
		Skills: []Skill{
			{ID: newItemID("skill"), Name: "New Skill", Percentage: 75},
		},
	})

	out, err := Encode(c)
	return out, id, err
}

// RemoveCategory deletes the category with the given ID. Removing an
// ID that is not present leaves the document unchanged.
func RemoveCategory(raw json.RawMessage, id string) (json.RawMessage, error) {
	c, err := decodeSkills(raw)
	if err != nil {
		return nil, err
	}

	kept := c.Categories[:0]
	for _, cat := range c.Categories {
		if cat.ID != id {
			kept = append(kept, cat)
		}
	}
	c.Categories = kept

	return Encode(c)
}

// AddSkill appends a starter skill to the category with the given ID.
func AddSkill(raw json.RawMessage, categoryID string) (json.RawMessage, string, error) {
	c, err := decodeSkills(raw)
	if err != nil {
		return nil, "", err
	}

	id := newItemID("skill")
	found := false
	for i := range c.Categories {
		if c.Categories[i].ID == categoryID {
			c.Categories[i].Skills = append(c.Categories[i].Skills, Skill{
				ID: id, Name: "New Skill", Percentage: 75,
			})
			found = true
			break
		}
	}
	if !found {
		return nil, "", &ValidationError{Field: "categories", Message: "category " + categoryID + " not found"}
	}

	out, err := Encode(c)
	return out, id, err
}

// RemoveSkill deletes a skill from a category. Unknown IDs are no-ops.
func RemoveSkill(raw json.RawMessage, categoryID, skillID string) (json.RawMessage, error) {
	c, err := decodeSkills(raw)
	if err != nil {
		return nil, err
	}

	for i := range c.Categories {
		if c.Categories[i].ID != categoryID {
			continue
		}
		kept := c.Categories[i].Skills[:0]
		for _, sk := range c.Categories[i].Skills {
			if sk.ID != skillID {
				kept = append(kept, sk)
			}
		}
		c.Categories[i].Skills = kept
	}

	return Encode(c)
}

// AddTool appends a tool to the tools strip and returns its ID.
func AddTool(raw json.RawMessage, name string) (json.RawMessage, string, error) {
	c, err := decodeSkills(raw)
	if err != nil {
		return nil, "", err
	}

	if strings.TrimSpace(name) == "" {
		name = "New Tool"
	}
	id := newItemID("tool")
	c.Tools = append(c.Tools, Tool{ID: id, Name: name, Icon: "fas fa-magic"})

	out, err := Encode(c)
	return out, id, err
}

// RemoveTool deletes the tool with the given ID.
func RemoveTool(raw json.RawMessage, id string) (json.RawMessage, error) {
	c, err := decodeSkills(raw)
	if err != nil {
		return nil, err
	}

	kept := c.Tools[:0]
	for _, tool := range c.Tools {
		if tool.ID != id {
			kept = append(kept, tool)
		}
	}
	c.Tools = kept

	return Encode(c)
}

// PatchField sets a single string field addressed by a dot/index path
// (e.g. "title", "categories.1.name", "socialLinks.0.url") and returns
// the new document. Known types are materialized from defaults first,
// so inline-editing a field that only existed as a default persists the
// whole rendered document with the one change applied.
func PatchField(t Type, raw json.RawMessage, path, value string) (json.RawMessage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &ValidationError{Field: "path", Message: "field path is required"}
	}

	doc, err := materialize(t, raw)
	if err != nil {
		return nil, err
	}

	if err := setPath(doc, strings.Split(path, "."), value); err != nil {
		return nil, err
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode patched content: %w", err)
	}
	return out, nil
}

// materialize produces the generic document PatchField operates on.
// Known types go through Decode so defaults are filled in; unknown
// types are patched as-is.
func materialize(t Type, raw json.RawMessage) (map[string]any, error) {
	if Known(t) {
		v, err := Decode(t, raw)
		if err != nil {
			// Malformed stored content: patch on top of the defaults,
			// which is exactly what the visitor was shown.
			v = Defaults(t)
		}
		encoded, err := Encode(v)
		if err != nil {
			return nil, err
		}
		raw = encoded
	}

	var doc map[string]any
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ValidationError{Field: "content", Message: "not a JSON object"}
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

// setPath walks the document along the path segments and sets the leaf
// to value. Numeric segments index into arrays. The leaf must already
// exist, and the value is coerced to the leaf's current type.
func setPath(node any, segs []string, value string) error {
	key := segs[0]
	last := len(segs) == 1

	switch n := node.(type) {
	case map[string]any:
		existing, ok := n[key]
		if !ok {
			return &ValidationError{Field: key, Message: "no such field"}
		}
		if last {
			coerced, err := coerceLeaf(key, existing, value)
			if err != nil {
				return err
			}
			n[key] = coerced
			return nil
		}
		return setPath(existing, segs[1:], value)

	case []any:
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= len(n) {
			return &ValidationError{Field: key, Message: "index out of range"}
		}
		if last {
			coerced, err := coerceLeaf(key, n[idx], value)
			if err != nil {
				return err
			}
			n[idx] = coerced
			return nil
		}
		return setPath(n[idx], segs[1:], value)

	default:
		return &ValidationError{Field: key, Message: "path does not address a container"}
	}
}

// coerceLeaf converts the submitted string to the type of the value it
// replaces. Without this, an inline edit could turn a numeric field into
// a string that lenient decoding would drop, sidestepping validation.
func coerceLeaf(field string, existing any, value string) (any, error) {
	switch existing.(type) {
	case float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, &ValidationError{Field: field, Message: "must be a number"}
		}
		return f, nil
	case bool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, &ValidationError{Field: field, Message: "must be true or false"}
		}
		return b, nil
	case map[string]any, []any:
		return nil, &ValidationError{Field: field, Message: "path does not address a leaf field"}
	default:
		return value, nil
	}
}
