// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NativeConverter parses documents with pure-Go libraries, dispatching on the
// file extension. It needs no external tooling, which makes it the default
// backend.
type NativeConverter struct{}

// NewNativeConverter creates the pure-Go converter.
func NewNativeConverter() *NativeConverter {
	return &NativeConverter{}
}

// Convert parses the file at path into a Document. Unsupported extensions are
// a conversion error, not a panic; the caller folds them into the failure
// envelope.
func (n *NativeConverter) Convert(path string) (Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return convertPDF(path)
	case ".docx":
		return convertDocx(path)
	case ".xlsx", ".xlsm":
		return convertXLSX(path)
	case ".csv":
		return convertCSV(path)
	case ".md", ".markdown":
		return convertMarkdownFile(path)
	case ".txt", ".text":
		return convertText(path)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

// convertText passes plain text through as Markdown.
func convertText(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return NewDoc(string(data)), nil
}

// convertCSV reads the whole file as a single table. The first record is
// treated as the header row.
func convertCSV(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV %s: %w", path, err)
	}
	if len(records) == 0 {
		return NewDoc(""), nil
	}

	grid := NewGrid(records[0], records[1:])
	markdown, err := grid.ExportMarkdown()
	if err != nil {
		return nil, fmt.Errorf("rendering CSV %s: %w", path, err)
	}
	return NewDoc(markdown, grid), nil
}
