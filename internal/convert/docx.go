// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	docxTag          = regexp.MustCompile(`<[^>]*>`)
)

// convertDocx extracts the text content of a Word document. The library
// returns the raw document XML, so paragraph boundaries are turned into blank
// lines before the remaining markup is stripped.
func convertDocx(path string) (Document, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening DOCX %s: %w", path, err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = docxParagraphEnd.ReplaceAllString(content, "\n\n")
	content = docxTag.ReplaceAllString(content, "")
	content = strings.TrimSpace(content)

	if content == "" {
		return nil, fmt.Errorf("no text extracted from DOCX %s", path)
	}

	return NewDoc(content), nil
}
