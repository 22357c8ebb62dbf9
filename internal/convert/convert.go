// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns document files into structured, Markdown-centric
// documents. Backends (native parsers, the markitdown container, a remote
// conversion service) implement the Converter interface; capabilities beyond
// plain Markdown export are optional and discovered through interface
// assertions.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// Converter transforms a document file into a Document. Different backends
// (native, markitdown, remote) implement this interface.
type Converter interface {
	// Convert reads the file at path and returns the parsed document.
	Convert(path string) (Document, error)
}

// Document is the structured result of a conversion. Every backend can render
// the whole document to Markdown and enumerate its tables; richer information
// is exposed through optional interfaces.
type Document interface {
	// ExportMarkdown renders the full document as Markdown.
	ExportMarkdown() (string, error)

	// Tables returns the document's tables in reading order. Empty when the
	// backend extracts none.
	Tables() []Table
}

// PageCounter is implemented by Documents that know their page count.
type PageCounter interface {
	PageCount() int
}

// Table is one extracted table. String is the guaranteed generic rendering;
// implementations may additionally provide MarkdownExporter and Dimensioned.
type Table interface {
	fmt.Stringer
}

// MarkdownExporter is implemented by Tables that can render themselves as a
// Markdown table.
type MarkdownExporter interface {
	ExportMarkdown() (string, error)
}

// Dimensioned is implemented by Tables that know their size.
type Dimensioned interface {
	// Dims returns the number of rows (including any header row) and columns.
	Dims() (rows, cols int)
}

// Doc is a Document with fixed content and no page information.
type Doc struct {
	markdown string
	tables   []Table
}

// NewDoc builds a Document from pre-rendered Markdown and optional tables.
func NewDoc(markdown string, tables ...Table) *Doc {
	return &Doc{markdown: markdown, tables: tables}
}

func (d *Doc) ExportMarkdown() (string, error) { return d.markdown, nil }

func (d *Doc) Tables() []Table { return d.tables }

// PagedDoc is a Doc that additionally reports its page count.
type PagedDoc struct {
	Doc
	pages int
}

// NewPagedDoc builds a Document with a known page count.
func NewPagedDoc(markdown string, pages int, tables ...Table) *PagedDoc {
	return &PagedDoc{Doc: Doc{markdown: markdown, tables: tables}, pages: pages}
}

func (d *PagedDoc) PageCount() int { return d.pages }

// Status is the outcome of a single batch conversion.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// sidecar is the YAML metadata written next to each batch-converted file.
type sidecar struct {
	SourceFile  string `yaml:"source_file"`
	FileType    string `yaml:"file_type"`
	NumPages    *int   `yaml:"num_pages,omitempty"`
	NumTables   int    `yaml:"num_tables"`
	ConvertedAt string `yaml:"converted_at"`
}

// ConvertFile converts a single document, writing base.md and a base.yaml
// metadata sidecar into outDir. If the Markdown output already exists the
// file is skipped.
func ConvertFile(c Converter, path, outDir string, w io.Writer) Status {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	mdPath := filepath.Join(outDir, base+".md")

	if _, err := os.Stat(mdPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
		return StatusSkipped
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	doc, err := c.Convert(path)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	markdown, err := doc.ExportMarkdown()
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	if err := os.WriteFile(mdPath, []byte(markdown), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	meta := sidecar{
		SourceFile:  path,
		FileType:    filepath.Ext(path),
		NumTables:   len(doc.Tables()),
		ConvertedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if pc, ok := doc.(PageCounter); ok {
		n := pc.PageCount()
		meta.NumPages = &n
	}

	data, err := yaml.Marshal(&meta)
	if err == nil {
		err = os.WriteFile(filepath.Join(outDir, base+".yaml"), data, 0o644)
	}
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "converted: %s\n", base)
	return StatusConverted
}

// ConvertBatch processes files through the converter, printing per-file
// status to w and returning a summary.
func ConvertBatch(c Converter, paths []string, outDir string, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range paths {
		switch ConvertFile(c, p, outDir, w) {
		case StatusConverted:
			result.Converted++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}
