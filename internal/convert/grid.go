// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Grid is a rectangular table of cell strings with an optional header row.
// It backs the tables extracted by the native converters (spreadsheet sheets,
// CSV files, Markdown tables).
type Grid struct {
	header []string
	rows   [][]string
}

// NewGrid builds a Grid. The header may be nil for headerless tables.
func NewGrid(header []string, rows [][]string) *Grid {
	return &Grid{header: header, rows: rows}
}

// Dims returns the number of rows (header included) and the widest row's
// column count.
func (g *Grid) Dims() (rows, cols int) {
	rows = len(g.rows)
	cols = len(g.header)
	if len(g.header) > 0 {
		rows++
	}
	for _, r := range g.rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	return rows, cols
}

// ExportMarkdown renders the grid as a GitHub-style Markdown table.
func (g *Grid) ExportMarkdown() (string, error) {
	var buf bytes.Buffer
	t := tablewriter.NewWriter(&buf)
	t.SetHeader(g.header)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	t.SetCenterSeparator("|")
	t.AppendBulk(g.rows)
	t.Render()
	return buf.String(), nil
}

// String is the generic fallback rendering: tab-separated rows.
func (g *Grid) String() string {
	var b strings.Builder
	if len(g.header) > 0 {
		b.WriteString(strings.Join(g.header, "\t"))
		b.WriteString("\n")
	}
	for _, r := range g.rows {
		b.WriteString(strings.Join(r, "\t"))
		b.WriteString("\n")
	}
	return b.String()
}
