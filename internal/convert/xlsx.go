// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// convertXLSX turns each sheet of a workbook into one table. The document
// Markdown is the sheets rendered in order, each under a heading with the
// sheet name. The first row of a sheet is treated as its header.
func convertXLSX(path string) (Document, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	var (
		sections []string
		tables   []Table
	)

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q of %s: %w", sheet, path, err)
		}
		if len(rows) == 0 {
			continue
		}

		grid := NewGrid(rows[0], rows[1:])
		rendered, err := grid.ExportMarkdown()
		if err != nil {
			return nil, fmt.Errorf("rendering sheet %q of %s: %w", sheet, path, err)
		}

		sections = append(sections, fmt.Sprintf("## %s\n\n%s", sheet, rendered))
		tables = append(tables, grid)
	}

	return NewDoc(strings.Join(sections, "\n\n"), tables...), nil
}
