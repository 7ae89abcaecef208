// Package render converts a package ast tree into HTML: a single-pass,
// string-builder writer with no intermediate DOM, per spec.md §4.5.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bengalssg/bengal/pkg/ast"
	"github.com/bengalssg/bengal/pkg/highlight"
	"github.com/bengalssg/bengal/pkg/htmlescape"
)

// Renderer renders one AST tree to HTML. It is not safe for concurrent reuse
// across documents — construct one per Render call (or per goroutine), the
// same "fresh state per call" discipline the parser uses.
type Renderer struct {
	hl         highlight.Highlighter
	sb         strings.Builder
	footnotes  []footnoteEntry
	footnoteNo map[string]int
}

type footnoteEntry struct {
	id   string
	html string
}

// New creates a Renderer backed by hl for CodeBlock highlighting. hl may be
// nil, in which case code blocks fall through to plain `<pre><code>`.
func New(hl highlight.Highlighter) *Renderer {
	return &Renderer{hl: hl, footnoteNo: make(map[string]int)}
}

// Render converts root to an HTML string. sourceLen, if > 0, is used to
// preallocate the string builder proportional to the source's size.
func Render(root *ast.Node, hl highlight.Highlighter, sourceLen int) string {
	r := New(hl)
	if sourceLen > 0 {
		r.sb.Grow(sourceLen * 2)
	}
	r.renderNode(root)
	r.renderFootnotes()
	return r.sb.String()
}

// Children renders just the children of n (not n itself) to an HTML
// fragment. Used by directive handlers that need to embed already-parsed
// child content inside their own wrapper markup.
func Children(n *ast.Node, hl highlight.Highlighter) string {
	r := New(hl)
	for c := n.FirstChild; c != nil; c = c.Next {
		r.renderNode(c)
	}
	return r.sb.String()
}

// Nodes renders a flat slice of nodes (as if they were siblings) to HTML.
func Nodes(nodes []*ast.Node, hl highlight.Highlighter) string {
	r := New(hl)
	for _, n := range nodes {
		r.renderNode(n)
	}
	return r.sb.String()
}

func (r *Renderer) renderChildren(n *ast.Node) {
	for c := n.FirstChild; c != nil; c = c.Next {
		r.renderNode(c)
	}
}

func (r *Renderer) renderNode(n *ast.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.NodeDocument:
		r.renderChildren(n)

	case ast.NodeHeading:
		id := ast.GenerateHeadingIDForNode(n)
		fmt.Fprintf(&r.sb, `<h%d id="%s">`, n.Level, id)
		r.renderChildren(n)
		fmt.Fprintf(&r.sb, `</h%d>`+"\n", n.Level)

	case ast.NodeParagraph:
		r.sb.WriteString("<p>")
		r.renderChildren(n)
		r.sb.WriteString("</p>\n")

	case ast.NodeText:
		r.sb.WriteString(htmlescape.String(n.Raw))

	case ast.NodeCodeSpan:
		r.sb.WriteString("<code>")
		r.sb.WriteString(htmlescape.String(n.Raw))
		r.sb.WriteString("</code>")

	case ast.NodeEmphasis:
		r.sb.WriteString("<em>")
		r.renderChildren(n)
		r.sb.WriteString("</em>")

	case ast.NodeStrong:
		r.sb.WriteString("<strong>")
		r.renderChildren(n)
		r.sb.WriteString("</strong>")

	case ast.NodeStrikethrough:
		r.sb.WriteString("<del>")
		r.renderChildren(n)
		r.sb.WriteString("</del>")

	case ast.NodeHardBreak:
		r.sb.WriteString("<br />\n")

	case ast.NodeSoftBreak:
		r.sb.WriteString("\n")

	case ast.NodeLink:
		r.sb.WriteString(`<a href="`)
		r.sb.WriteString(htmlescape.String(n.URL))
		r.sb.WriteString(`"`)
		if n.Title != "" {
			r.sb.WriteString(` title="`)
			r.sb.WriteString(htmlescape.String(n.Title))
			r.sb.WriteString(`"`)
		}
		r.sb.WriteString(">")
		r.renderChildren(n)
		r.sb.WriteString("</a>")

	case ast.NodeImage:
		r.sb.WriteString(`<img src="`)
		r.sb.WriteString(htmlescape.String(n.URL))
		r.sb.WriteString(`" alt="`)
		r.sb.WriteString(htmlescape.String(n.Alt))
		r.sb.WriteString(`"`)
		if n.Title != "" {
			r.sb.WriteString(` title="`)
			r.sb.WriteString(htmlescape.String(n.Title))
			r.sb.WriteString(`"`)
		}
		r.sb.WriteString(" />")

	case ast.NodeList:
		r.renderList(n)

	case ast.NodeListItem:
		r.renderListItem(n)

	case ast.NodeCodeBlock:
		r.renderCodeBlock(n)

	case ast.NodeBlockquote:
		r.sb.WriteString("<blockquote>\n")
		r.renderChildren(n)
		r.sb.WriteString("</blockquote>\n")

	case ast.NodeThematicBreak:
		r.sb.WriteString("<hr />\n")

	case ast.NodeTable:
		r.renderTable(n)

	case ast.NodeFootnoteRef:
		r.renderFootnoteRef(n)

	case ast.NodeFootnoteDef:
		r.collectFootnoteDef(n)

	case ast.NodeRawHTML:
		r.sb.WriteString(n.HTML)

	case ast.NodeDirective:
		// Directive nodes are expected to be resolved by package directive
		// before reaching the renderer; if one survives, render its
		// children so content is never silently dropped.
		r.renderChildren(n)

	default:
		r.renderChildren(n)
	}
}

func (r *Renderer) renderList(n *ast.Node) {
	tag := "ul"
	if n.Ordered {
		tag = "ol"
	}
	r.sb.WriteString("<" + tag)
	if n.Ordered && n.Start > 1 {
		fmt.Fprintf(&r.sb, ` start="%d"`, n.Start)
	}
	r.sb.WriteString(">\n")
	for c := n.FirstChild; c != nil; c = c.Next {
		r.renderListItemIn(c, n.Tight)
	}
	r.sb.WriteString("</" + tag + ">\n")
}

func (r *Renderer) renderListItem(n *ast.Node) {
	r.renderListItemIn(n, true)
}

func (r *Renderer) renderListItemIn(n *ast.Node, tight bool) {
	if n.Kind != ast.NodeListItem {
		r.renderNode(n)
		return
	}
	if n.Checked != nil {
		r.sb.WriteString(`<li class="task-list-item"><input type="checkbox" class="task-list-item-checkbox" disabled`)
		if *n.Checked {
			r.sb.WriteString(" checked")
		}
		r.sb.WriteString(">")
		r.renderItemBody(n, tight)
		r.sb.WriteString("</li>\n")
		return
	}
	r.sb.WriteString("<li>")
	r.renderItemBody(n, tight)
	r.sb.WriteString("</li>\n")
}

// renderItemBody renders a ListItem's children, wrapping bare inline content
// in <p> when the enclosing list is loose, per spec.md §4.2.
func (r *Renderer) renderItemBody(n *ast.Node, tight bool) {
	if tight {
		r.renderChildren(n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.Next {
		if c.Kind == ast.NodeParagraph || c.Kind == ast.NodeList {
			r.renderNode(c)
			continue
		}
		r.sb.WriteString("<p>")
		r.renderNode(c)
		r.sb.WriteString("</p>\n")
	}
}

func (r *Renderer) renderCodeBlock(n *ast.Node) {
	lang := n.Info
	if idx := strings.IndexAny(lang, " \t"); idx >= 0 {
		lang = lang[:idx]
	}
	if lang != "" && r.hl != nil {
		r.sb.WriteString(r.hl.Highlight(n.Raw, lang))
		r.sb.WriteString("\n")
		return
	}
	r.sb.WriteString("<pre><code>")
	r.sb.WriteString(htmlescape.String(n.Raw))
	r.sb.WriteString("</code></pre>\n")
}

func (r *Renderer) renderTable(n *ast.Node) {
	r.sb.WriteString(`<div class="table-wrapper">` + "\n<table>\n")
	rows := n.Children()
	for ri, row := range rows {
		tag := "td"
		if ri == 0 {
			tag = "th"
			r.sb.WriteString("<thead>\n")
		} else if ri == 1 {
			r.sb.WriteString("<tbody>\n")
		}
		r.sb.WriteString("<tr>\n")
		for ci, cell := range row.Children() {
			align := ast.AlignNone
			if ci < len(n.ColAlign) {
				align = n.ColAlign[ci]
			}
			r.sb.WriteString("<" + tag)
			if s := alignStyle(align); s != "" {
				r.sb.WriteString(` style="text-align:` + s + `"`)
			}
			r.sb.WriteString(">")
			r.renderChildren(cell)
			r.sb.WriteString("</" + tag + ">")
		}
		r.sb.WriteString("\n</tr>\n")
		if ri == 0 {
			r.sb.WriteString("</thead>\n")
		}
	}
	if len(rows) > 1 {
		r.sb.WriteString("</tbody>\n")
	}
	r.sb.WriteString("</table>\n</div>\n")
}

func alignStyle(a ast.Align) string {
	switch a {
	case ast.AlignLeft:
		return "left"
	case ast.AlignCenter:
		return "center"
	case ast.AlignRight:
		return "right"
	default:
		return ""
	}
}

func (r *Renderer) renderFootnoteRef(n *ast.Node) {
	no, ok := r.footnoteNo[n.FootnoteID]
	if !ok {
		no = len(r.footnoteNo) + 1
		r.footnoteNo[n.FootnoteID] = no
	}
	id := htmlescape.String(n.FootnoteID)
	fmt.Fprintf(&r.sb, `<sup class="footnote-ref"><a href="#fn-%s" id="fnref-%s">%s</a></sup>`, id, id, strconv.Itoa(no))
}

func (r *Renderer) collectFootnoteDef(n *ast.Node) {
	body := Children(n, r.hl)
	r.footnotes = append(r.footnotes, footnoteEntry{id: n.FootnoteID, html: body})
}

func (r *Renderer) renderFootnotes() {
	if len(r.footnotes) == 0 {
		return
	}
	r.sb.WriteString(`<section class="footnotes">` + "\n<ol>\n")
	for _, fn := range r.footnotes {
		id := htmlescape.String(fn.id)
		fmt.Fprintf(&r.sb, `<li id="fn-%s">%s <a href="#fnref-%s" class="footnote-backref">&#8617;</a></li>`+"\n", id, fn.html, id)
	}
	r.sb.WriteString("</ol>\n</section>\n")
}
