package builtins

import (
	"github.com/bengalssg/bengal/pkg/ast"
	"github.com/bengalssg/bengal/pkg/directive"
	"github.com/bengalssg/bengal/pkg/highlight"
	"github.com/bengalssg/bengal/pkg/render"
)

// tableClass backs both list-table and data-table: each expects its body to
// be an ordinary Markdown list, one item per row, with a nested list inside
// an item supplying that row's cells; an item with no nested list becomes a
// single-cell row. This mirrors how both directive names are documented as
// "a list that renders as a table" rather than two distinct syntaxes.
type tableClass struct {
	name string
}

func (c tableClass) Names() []string { return []string{c.name} }
func (tableClass) Contract() *directive.Contract { return nil }
func (tableClass) OptionsSchema() directive.OptionsSchema {
	return directive.OptionsSchema{
		Fields:   map[string]directive.FieldType{"header-rows": directive.FieldInt},
		Defaults: map[string]any{"header-rows": 1},
	}
}

func (c tableClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	list := findList(rc.Children)
	if list == nil {
		return errorDiv(c.name, "expected a Markdown list body"), nil
	}

	var maxCols int
	type rawRow struct{ cells []*ast.Node }
	var rows []rawRow
	for item := list.FirstChild; item != nil; item = item.Next {
		cells := rowCells(item, rc.Highlighter)
		if len(cells) > maxCols {
			maxCols = len(cells)
		}
		rows = append(rows, rawRow{cells: cells})
	}

	table := ast.NewTable(make([]ast.Align, maxCols), rc.Location)
	for _, r := range rows {
		row := ast.NewTableRow(rc.Location)
		for _, cellNode := range r.cells {
			cell := ast.NewTableCell(rc.Location)
			cell.AppendChild(cellNode)
			row.AppendChild(cell)
		}
		table.AppendChild(row)
	}
	return table, nil
}

// rowCells extracts one ListItem's cells: either its nested List's items
// (each wrapped as inline content) or, with no nested list, the item's own
// body as a single cell.
func rowCells(item *ast.Node, hl highlight.Highlighter) []*ast.Node {
	if nested := findList(item.Children()); nested != nil {
		var cells []*ast.Node
		for c := nested.FirstChild; c != nil; c = c.Next {
			cells = append(cells, wrapInline(c, hl))
		}
		return cells
	}
	return []*ast.Node{wrapInline(item, hl)}
}

func wrapInline(n *ast.Node, hl highlight.Highlighter) *ast.Node {
	html := render.Nodes(n.Children(), hl)
	return ast.NewRawHTML(html, n.Location)
}

func findList(nodes []*ast.Node) *ast.Node {
	for _, n := range nodes {
		if n.Kind == ast.NodeList {
			return n
		}
	}
	return nil
}

var (
	_ directive.Class = tableClass{}
)
