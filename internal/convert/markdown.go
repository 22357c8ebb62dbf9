// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// convertMarkdownFile passes Markdown through unchanged and extracts any
// GFM tables in the document body.
func convertMarkdownFile(path string) (Document, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	tables, err := extractMarkdownTables(source)
	if err != nil {
		return nil, fmt.Errorf("scanning tables in %s: %w", path, err)
	}

	return NewDoc(string(source), tables...), nil
}

// extractMarkdownTables parses source with the GFM table extension and
// returns one Grid per table node, in document order.
func extractMarkdownTables(source []byte) ([]Table, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	root := md.Parser().Parse(text.NewReader(source))

	var tables []Table
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if _, ok := n.(*east.Table); !ok {
			return ast.WalkContinue, nil
		}

		var header []string
		var rows [][]string
		for row := n.FirstChild(); row != nil; row = row.NextSibling() {
			var cells []string
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				cells = append(cells, string(cell.Text(source)))
			}
			if _, ok := row.(*east.TableHeader); ok {
				header = cells
			} else {
				rows = append(rows, cells)
			}
		}

		tables = append(tables, NewGrid(header, rows))
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}
	return tables, nil
}
