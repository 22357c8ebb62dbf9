// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// convertPDF extracts the embedded text layer page by page. Scanned
// (image-only) PDFs produce empty pages; OCR is out of scope. The page count
// comes from pdfcpu, which handles a wider range of files than the text
// extractor, with the extractor's count as fallback.
func convertPDF(path string) (Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	numPages := r.NumPage()
	fonts := make(map[string]*pdf.Font)
	var parts []string

	for i := 1; i <= numPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}

		text, err := p.GetPlainText(fonts)
		if err != nil {
			return nil, fmt.Errorf("reading PDF page %d of %s: %w", i, path, err)
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	if count, err := api.PageCountFile(path); err == nil && count > 0 {
		numPages = count
	}

	return NewPagedDoc(strings.Join(parts, "\n\n---\n\n"), numPages), nil
}
