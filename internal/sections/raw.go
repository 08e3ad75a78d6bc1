// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sections

import "encoding/json"

// RawDocument is the editor state for sections whose type is not in
// the registry. The admin editor falls back to a raw JSON textarea for
// these; RawDocument tracks the text exactly as typed alongside the
// last successfully parsed value, so an invalid intermediate edit
// never destroys the last good document.
type RawDocument struct {
	text      string
	lastValid json.RawMessage
	valid     bool
}

// NewRawDocument seeds the editor state from the stored content. If the
// stored content itself is invalid (possible for rows written outside
// the CMS), the document starts with no valid parse.
func NewRawDocument(content json.RawMessage) *RawDocument {
	d := &RawDocument{}
	if len(content) > 0 && json.Valid(content) {
		d.lastValid = append(json.RawMessage(nil), content...)
		d.valid = true
	}
	d.text = string(content)
	return d
}

// SetText records a new edit and reports whether it parses. On a valid
// parse the text becomes the new last-valid document; on an invalid
// one only the text changes and the last-valid document is retained.
func (d *RawDocument) SetText(text string) bool {
	d.text = text
	if json.Valid([]byte(text)) {
		d.lastValid = json.RawMessage(text)
		d.valid = true
		return true
	}
	d.valid = false
	return false
}

// Text returns the editor text exactly as last typed.
func (d *RawDocument) Text() string {
	return d.text
}

// Valid reports whether the current text parses as JSON.
func (d *RawDocument) Valid() bool {
	return d.valid
}

// LastValid returns the most recent successfully parsed document, or
// nil if no edit has ever parsed. This is the only value that may be
// saved.
func (d *RawDocument) LastValid() json.RawMessage {
	return d.lastValid
}
