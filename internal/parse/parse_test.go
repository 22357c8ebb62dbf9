// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/docparse/internal/convert"
	"github.com/pdiddy/docparse/pkg/types"
)

// fakeConverter returns a canned document or an error.
type fakeConverter struct {
	doc convert.Document
	err error
}

func (f *fakeConverter) Convert(path string) (convert.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

// plainTable exposes only the guaranteed String rendering.
type plainTable struct {
	s string
}

func (t plainTable) String() string { return t.s }

// richTable also renders Markdown and knows its size.
type richTable struct {
	md         string
	rows, cols int
	exportErr  error
}

func (t richTable) String() string { return "rich table" }

func (t richTable) ExportMarkdown() (string, error) {
	if t.exportErr != nil {
		return "", t.exportErr
	}
	return t.md, nil
}

func (t richTable) Dims() (int, int) { return t.rows, t.cols }

// brokenDoc fails on Markdown export.
type brokenDoc struct{}

func (brokenDoc) ExportMarkdown() (string, error) { return "", errors.New("render exploded") }
func (brokenDoc) Tables() []convert.Table         { return nil }

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{name: "argument wins", args: []string{"doc.pdf"}, stdin: "ignored.pdf\n", want: "doc.pdf"},
		{name: "stdin line trimmed", stdin: "  report.docx  \n", want: "report.docx"},
		{name: "empty stdin", stdin: "", want: ""},
		{name: "whitespace-only stdin", stdin: "   \n", want: ""},
		{name: "only first stdin line read", stdin: "a.pdf\nb.pdf\n", want: "a.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePath(tt.args, strings.NewReader(tt.stdin))
			if got != tt.want {
				t.Errorf("ResolvePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunSuccess(t *testing.T) {
	conv := &fakeConverter{doc: convert.NewDoc("# Report\n\nBody.")}

	result := Run(conv, "/data/reports/q3.pdf")

	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.Markdown == nil || *result.Markdown != "# Report\n\nBody." {
		t.Errorf("markdown = %v, want document body", result.Markdown)
	}
	if result.Error != "" {
		t.Errorf("error = %q, want empty", result.Error)
	}
	if result.Metadata.FileName != "q3.pdf" {
		t.Errorf("file_name = %q, want q3.pdf", result.Metadata.FileName)
	}
	if result.Metadata.FileType != ".pdf" {
		t.Errorf("file_type = %q, want .pdf", result.Metadata.FileType)
	}
	if result.Metadata.NumPages != nil {
		t.Errorf("num_pages = %v, want nil for a doc without page count", *result.Metadata.NumPages)
	}
	if len(result.Tables) != 0 {
		t.Errorf("tables = %d, want 0", len(result.Tables))
	}
}

func TestRunPageCount(t *testing.T) {
	conv := &fakeConverter{doc: convert.NewPagedDoc("content", 7)}

	result := Run(conv, "paper.pdf")

	if result.Metadata.NumPages == nil || *result.Metadata.NumPages != 7 {
		t.Errorf("num_pages = %v, want 7", result.Metadata.NumPages)
	}
}

func TestRunConversionFailure(t *testing.T) {
	conv := &fakeConverter{err: errors.New("unsupported file type \".xyz\"")}

	result := Run(conv, "weird.xyz")

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Markdown != nil {
		t.Errorf("markdown = %q, want null", *result.Markdown)
	}
	if result.Tables == nil || len(result.Tables) != 0 {
		t.Errorf("tables = %v, want empty non-nil slice", result.Tables)
	}
	if result.Metadata != (types.Metadata{}) {
		t.Errorf("metadata = %+v, want empty", result.Metadata)
	}
	if !strings.Contains(result.Error, "unsupported file type") {
		t.Errorf("error = %q, want the converter message", result.Error)
	}
}

func TestRunExportFailure(t *testing.T) {
	conv := &fakeConverter{doc: brokenDoc{}}

	result := Run(conv, "doc.pdf")

	if result.Success {
		t.Fatal("expected failure when Markdown export fails")
	}
	if !strings.Contains(result.Error, "render exploded") {
		t.Errorf("error = %q, want export message", result.Error)
	}
}

func TestRunTables(t *testing.T) {
	doc := convert.NewDoc("body",
		richTable{md: "| a | b |\n", rows: 3, cols: 2},
		plainTable{s: "raw table dump"},
	)
	conv := &fakeConverter{doc: doc}

	result := Run(conv, "report.xlsx")

	if len(result.Tables) != 2 {
		t.Fatalf("tables = %d, want 2", len(result.Tables))
	}

	rich := result.Tables[0]
	if rich.Data != "| a | b |\n" {
		t.Errorf("rich data = %q, want the Markdown rendering", rich.Data)
	}
	if rich.NumRows == nil || *rich.NumRows != 3 || rich.NumCols == nil || *rich.NumCols != 2 {
		t.Errorf("rich dims = (%v, %v), want (3, 2)", rich.NumRows, rich.NumCols)
	}

	plain := result.Tables[1]
	if plain.Data != "raw table dump" {
		t.Errorf("plain data = %q, want the String fallback", plain.Data)
	}
	if plain.NumRows != nil || plain.NumCols != nil {
		t.Errorf("plain dims = (%v, %v), want nulls", plain.NumRows, plain.NumCols)
	}
}

func TestRunTableExportFailure(t *testing.T) {
	doc := convert.NewDoc("body", richTable{exportErr: errors.New("bad cell")})
	conv := &fakeConverter{doc: doc}

	result := Run(conv, "report.xlsx")

	if result.Success {
		t.Fatal("expected failure when a table export fails")
	}
	if !strings.Contains(result.Error, "bad cell") {
		t.Errorf("error = %q, want table export message", result.Error)
	}
}

func TestRunIdempotent(t *testing.T) {
	conv := &fakeConverter{doc: convert.NewPagedDoc("# Same\n", 2, richTable{md: "| x |\n", rows: 1, cols: 1})}

	first := Run(conv, "stable.pdf")
	second := Run(conv, "stable.pdf")

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated runs differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestWriteSuccessEnvelope(t *testing.T) {
	var buf bytes.Buffer
	result := types.Succeeded("# Résumé <b>naïve</b>", nil, types.Metadata{FileName: "cv.pdf", FileType: ".pdf"})

	if err := Write(&buf, result); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()

	// Non-ASCII and markup survive literally.
	if !strings.Contains(out, "Résumé") || !strings.Contains(out, "<b>naïve</b>") {
		t.Errorf("output escaped characters: %q", out)
	}
	// Indented output.
	if !strings.Contains(out, "\n  \"success\": true") && !strings.Contains(out, "{\n  \"success\": true") {
		t.Errorf("output is not indented: %q", out)
	}
	// No error key on success.
	if strings.Contains(out, "\"error\"") {
		t.Errorf("success envelope contains error key: %q", out)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["success"] != true {
		t.Error("decoded success != true")
	}
}

func TestWriteSuccessMetadataKeys(t *testing.T) {
	var buf bytes.Buffer
	result := types.Succeeded("body", nil, types.Metadata{FileName: "notes.txt", FileType: ".txt"})

	if err := Write(&buf, result); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()

	// A backend without a page count still emits the key, as an explicit null.
	if !strings.Contains(out, "\"num_pages\": null") {
		t.Errorf("success metadata missing explicit null num_pages: %q", out)
	}
	if !strings.Contains(out, "\"file_name\": \"notes.txt\"") {
		t.Errorf("success metadata missing file_name: %q", out)
	}
	if !strings.Contains(out, "\"file_type\": \".txt\"") {
		t.Errorf("success metadata missing file_type: %q", out)
	}
}

func TestWriteFailureEnvelope(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, types.Failed(MsgNoPath)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var decoded struct {
		Success  bool           `json:"success"`
		Markdown *string        `json:"markdown"`
		Tables   []any          `json:"tables"`
		Metadata map[string]any `json:"metadata"`
		Error    string         `json:"error"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.Success {
		t.Error("success = true, want false")
	}
	if decoded.Markdown != nil {
		t.Errorf("markdown = %q, want null", *decoded.Markdown)
	}
	if decoded.Tables == nil || len(decoded.Tables) != 0 {
		t.Errorf("tables = %v, want []", decoded.Tables)
	}
	if len(decoded.Metadata) != 0 {
		t.Errorf("metadata = %v, want {}", decoded.Metadata)
	}
	if decoded.Error != "No file path provided" {
		t.Errorf("error = %q, want canonical message", decoded.Error)
	}
}
