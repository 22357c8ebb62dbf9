// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse is the adapter between a CLI invocation and a conversion
// backend: it resolves the input path, runs the converter behind a single
// failure boundary, and normalizes the outcome into the JSON envelope.
package parse

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pdiddy/docparse/internal/convert"
	"github.com/pdiddy/docparse/pkg/types"
)

// MsgNoPath is the diagnostic for an invocation with no resolvable file path.
const MsgNoPath = "No file path provided"

// ResolvePath returns the file path from the first positional argument, or,
// when absent, the first line of in with surrounding whitespace trimmed.
// Empty means no path could be resolved.
func ResolvePath(args []string, in io.Reader) string {
	if len(args) > 0 {
		return args[0]
	}
	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text())
	}
	return ""
}

// Run converts the file at path and shapes the result into the envelope.
// Every converter and extraction error is caught here and folded into a
// failure envelope; no error escapes to the caller.
func Run(c convert.Converter, path string) types.ParseResult {
	doc, err := c.Convert(path)
	if err != nil {
		return types.Failed(err.Error())
	}

	markdown, err := doc.ExportMarkdown()
	if err != nil {
		return types.Failed(err.Error())
	}

	tables := make([]types.TableRecord, 0, len(doc.Tables()))
	for _, t := range doc.Tables() {
		rec, err := tableRecord(t)
		if err != nil {
			return types.Failed(err.Error())
		}
		tables = append(tables, rec)
	}

	meta := types.Metadata{
		FileType: filepath.Ext(path),
		FileName: filepath.Base(path),
	}
	// Page count is an optional capability; a Document that does not
	// implement PageCounter leaves num_pages null.
	if pc, ok := doc.(convert.PageCounter); ok {
		n := pc.PageCount()
		meta.NumPages = &n
	}

	return types.Succeeded(markdown, tables, meta)
}

// tableRecord shapes one table, preferring the Markdown rendering when the
// table supports it and falling back to the generic string form. Dimensions
// stay null unless the table reports them.
func tableRecord(t convert.Table) (types.TableRecord, error) {
	rec := types.TableRecord{Data: fmt.Sprint(t)}

	if ex, ok := t.(convert.MarkdownExporter); ok {
		data, err := ex.ExportMarkdown()
		if err != nil {
			return types.TableRecord{}, err
		}
		rec.Data = data
	}

	if d, ok := t.(convert.Dimensioned); ok {
		rows, cols := d.Dims()
		rec.NumRows = &rows
		rec.NumCols = &cols
	}

	return rec, nil
}

// Write serializes the envelope to w as indented JSON. HTML escaping is
// disabled so non-ASCII and markup characters survive literally.
func Write(w io.Writer, result types.ParseResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(result)
}
