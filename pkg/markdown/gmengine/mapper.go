package gmengine

import (
	gast "github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/bengalssg/bengal/pkg/ast"
)

// mapper converts a goldmark AST into a pkg/ast.Node tree, grounded on the
// teacher's own goldmark mapper: one case per goldmark node type, recursing
// through FirstChild/NextSibling. Footnotes are not part of goldmark's GFM
// extension set, so FootnoteRef/FootnoteDef never appear from this backend —
// a known limitation of the python-markdown engine versus patitas.
type mapper struct {
	source []byte
}

func newMapper(source []byte) *mapper {
	return &mapper{source: source}
}

func (m *mapper) mapDocument(gmDoc gast.Node) *ast.Node {
	doc := ast.NewDocument()
	m.mapChildren(gmDoc, doc)
	return doc
}

func (m *mapper) mapChildren(parent gast.Node, dst *ast.Node) {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gast.Text); ok {
			dst.AppendChild(ast.NewText(m.text(c), ast.Position{}))
			switch {
			case t.HardLineBreak():
				dst.AppendChild(ast.NewHardBreak(ast.Position{}))
			case t.SoftLineBreak():
				dst.AppendChild(ast.NewSoftBreak(ast.Position{}))
			}
			continue
		}
		if n := m.mapNode(c); n != nil {
			dst.AppendChild(n)
		}
	}
}

func (m *mapper) text(n gast.Node) string {
	switch t := n.(type) {
	case *gast.Text:
		return string(t.Segment.Value(m.source))
	case *gast.String:
		return string(t.Value)
	default:
		return ""
	}
}

func (m *mapper) mapNode(n gast.Node) *ast.Node {
	pos := ast.Position{}

	switch gn := n.(type) {
	case *gast.Heading:
		h := ast.NewHeading(gn.Level, pos)
		m.mapChildren(n, h)
		return h

	case *gast.Paragraph:
		p := ast.NewParagraph(pos)
		m.mapChildren(n, p)
		return p

	case *gast.List:
		ordered := gn.IsOrdered()
		start := 1
		if ordered {
			start = gn.Start
		}
		l := ast.NewList(ordered, start, pos)
		l.Tight = !gn.IsLoose()
		m.mapChildren(n, l)
		return l

	case *gast.ListItem:
		var checked *bool
		if fc := n.FirstChild(); fc != nil {
			if cb, ok := fc.FirstChild().(*east.TaskCheckBox); ok {
				v := cb.IsChecked
				checked = &v
			}
		}
		item := ast.NewListItem(checked, pos)
		m.mapChildren(n, item)
		return item

	case *gast.Blockquote:
		bq := ast.NewBlockquote(pos)
		m.mapChildren(n, bq)
		return bq

	case *gast.FencedCodeBlock:
		info := ""
		if gn.Info != nil {
			info = string(gn.Info.Text(m.source))
		}
		return ast.NewCodeBlock(info, blockLinesText(gn, m.source), pos)

	case *gast.CodeBlock:
		return ast.NewCodeBlock("", blockLinesText(gn, m.source), pos)

	case *gast.ThematicBreak:
		return ast.NewThematicBreak(pos)

	case *gast.HTMLBlock:
		return ast.NewRawHTML(htmlBlockText(gn, m.source), pos)

	case *gast.RawHTML:
		return ast.NewRawHTML(rawInlineHTMLText(gn, m.source), pos)

	case *gast.String:
		return ast.NewText(m.text(n), pos)

	case *gast.Emphasis:
		var e *ast.Node
		if gn.Level >= 2 {
			e = ast.NewStrong(pos)
		} else {
			e = ast.NewEmphasis(pos)
		}
		m.mapChildren(n, e)
		return e

	case *gast.CodeSpan:
		return ast.NewCodeSpan(inlineText(gn, m.source), pos)

	case *gast.Link:
		link := ast.NewLink(string(gn.Destination), string(gn.Title), pos)
		m.mapChildren(n, link)
		return link

	case *gast.Image:
		alt := inlineText(gn, m.source)
		return ast.NewImage(string(gn.Destination), alt, string(gn.Title), pos)

	case *gast.AutoLink:
		url := string(gn.URL(m.source))
		link := ast.NewLink(url, "", pos)
		link.AppendChild(ast.NewText(string(gn.Label(m.source)), pos))
		return link

	case *east.Strikethrough:
		s := ast.NewStrikethrough(pos)
		m.mapChildren(n, s)
		return s

	case *east.TaskCheckBox:
		// goldmark emits this as the first inline child of the paragraph
		// inside a task list item, so it has no direct pkg/ast equivalent
		// here and is dropped (the checkbox state is picked up by the
		// *gast.ListItem case above instead).
		return nil

	case *east.Table:
		t := ast.NewTable(nil, pos)
		m.mapChildren(n, t)
		return t

	case *east.TableHeader:
		row := ast.NewTableRow(pos)
		m.mapChildren(n, row)
		return row

	case *east.TableRow:
		row := ast.NewTableRow(pos)
		m.mapChildren(n, row)
		return row

	case *east.TableCell:
		cell := ast.NewTableCell(pos)
		m.mapChildren(n, cell)
		return cell

	default:
		container := ast.NewNode(ast.NodeParagraph, pos)
		m.mapChildren(n, container)
		if !container.HasChildren() {
			return nil
		}
		return container
	}
}
