package gmengine

import (
	"strings"

	gast "github.com/yuin/goldmark/ast"
)

// blockLinesText concatenates every line goldmark recorded for a block node
// (CodeBlock/FencedCodeBlock) into its raw source text.
func blockLinesText(n gast.Node, source []byte) string {
	lines := n.Lines()
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return strings.TrimRight(b.String(), "\n")
}

// htmlBlockText concatenates an HTMLBlock's lines plus its closure lines.
func htmlBlockText(n *gast.HTMLBlock, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		b.Write(lines.At(i).Value(source))
	}
	if n.ClosureLine.Len() > 0 {
		b.Write(n.ClosureLine.Value(source))
	}
	return strings.TrimRight(b.String(), "\n")
}

// rawInlineHTMLText concatenates an inline RawHTML node's segments.
func rawInlineHTMLText(n *gast.RawHTML, source []byte) string {
	var b strings.Builder
	for i := 0; i < n.Segments.Len(); i++ {
		b.Write(n.Segments.At(i).Value(source))
	}
	return b.String()
}

// inlineText concatenates the plain-text content of an inline node's
// descendants (used for CodeSpan/Image alt text, which goldmark stores as
// Text children rather than a raw string field).
func inlineText(n gast.Node, source []byte) string {
	var b strings.Builder
	var walk func(gast.Node)
	walk = func(node gast.Node) {
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*gast.Text); ok {
				b.Write(t.Segment.Value(source))
				continue
			}
			if s, ok := c.(*gast.String); ok {
				b.Write(s.Value)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
