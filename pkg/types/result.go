// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared record and configuration types for docparse.
package types

import "encoding/json"

// ParseResult is the envelope printed once per invocation. Exactly one of the
// success payload (markdown, tables, metadata) or the error field carries
// meaning; the other side is empty. The record is built once, serialized, and
// never mutated afterward.
type ParseResult struct {
	Success  bool          `json:"success"`
	Markdown *string       `json:"markdown"`
	Tables   []TableRecord `json:"tables"`
	Metadata Metadata      `json:"metadata"`
	Error    string        `json:"error,omitempty"`
}

// TableRecord describes one extracted table. Row and column counts are
// explicit nulls when the backend cannot report them.
type TableRecord struct {
	Data    string `json:"data"`
	NumRows *int   `json:"num_rows"`
	NumCols *int   `json:"num_cols"`
}

// Metadata carries file-level information about a successful parse.
type Metadata struct {
	NumPages *int   `json:"num_pages"`
	FileType string `json:"file_type"`
	FileName string `json:"file_name"`
}

// MarshalJSON serializes a zero Metadata (the failure envelope) as an empty
// object. A populated Metadata always carries all three keys, with num_pages
// an explicit null when the backend cannot report it.
func (m Metadata) MarshalJSON() ([]byte, error) {
	if m == (Metadata{}) {
		return []byte("{}"), nil
	}
	type metadata Metadata
	return json.Marshal(metadata(m))
}

// Succeeded builds a success envelope. A nil tables slice is replaced with an
// empty one so the JSON output is always an array.
func Succeeded(markdown string, tables []TableRecord, meta Metadata) ParseResult {
	if tables == nil {
		tables = []TableRecord{}
	}
	return ParseResult{
		Success:  true,
		Markdown: &markdown,
		Tables:   tables,
		Metadata: meta,
	}
}

// Failed builds a failure envelope: null markdown, empty tables, empty
// metadata, and the diagnostic message.
func Failed(msg string) ParseResult {
	return ParseResult{
		Success: false,
		Tables:  []TableRecord{},
		Error:   msg,
	}
}
