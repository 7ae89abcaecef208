package ast

import (
	"regexp"
	"strings"
)

// ExtractPlainText concatenates the raw text content of a tree: Text,
// CodeSpan, and CodeBlock contribute their Raw field, and a newline is
// inserted after Paragraph, Heading, List, CodeBlock, and Blockquote nodes so
// block boundaries survive as whitespace. Runs of three or more newlines
// collapse to two, and the result is trimmed of outer whitespace.
func ExtractPlainText(root *Node) string {
	var b strings.Builder
	_ = Walk(root, func(n *Node) error {
		switch n.Kind {
		case NodeText, NodeCodeSpan, NodeCodeBlock:
			b.WriteString(n.Raw)
		}
		switch n.Kind {
		case NodeParagraph, NodeHeading, NodeList, NodeCodeBlock, NodeBlockquote:
			b.WriteString("\n")
		}
		return nil
	})
	return strings.TrimSpace(collapseBlankRuns.ReplaceAllString(b.String(), "\n\n"))
}

var collapseBlankRuns = regexp.MustCompile(`\n{3,}`)

// TOCEntry is one heading entry extracted by ExtractTOC.
type TOCEntry struct {
	ID    string
	Title string
	Level int
}

// ExtractTOC returns one entry per Heading node. The page's H1 (source level
// 1, the page title) is excluded; every other heading's level is shifted down
// by one and clamped to a minimum of 1, so an H2 becomes a top-level TOC entry.
func ExtractTOC(root *Node) []TOCEntry {
	var out []TOCEntry
	_ = Walk(root, func(n *Node) error {
		if n.Kind != NodeHeading {
			return nil
		}
		if n.Level <= 1 {
			return nil
		}
		level := n.Level - 1
		if level < 1 {
			level = 1
		}
		title := ExtractPlainText(n)
		out = append(out, TOCEntry{
			ID:    GenerateHeadingID(title),
			Title: title,
			Level: level,
		})
		return nil
	})
	return out
}

// ExtractLinks returns the URL of every Link and Image node in document order.
func ExtractLinks(root *Node) []string {
	var out []string
	_ = Walk(root, func(n *Node) error {
		if n.Kind == NodeLink || n.Kind == NodeImage {
			out = append(out, n.URL)
		}
		return nil
	})
	return out
}

var (
	htmlEntity    = regexp.MustCompile(`&[a-zA-Z#0-9]+;`)
	nonSlugChar   = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRun = regexp.MustCompile(`[\s]+`)
	hyphenRun     = regexp.MustCompile(`-+`)
)

// GenerateHeadingID slugifies a heading title: lowercase, strip HTML
// entities, drop anything that isn't a word character/space/hyphen, collapse
// whitespace to single hyphens, trim leading/trailing hyphens, and truncate
// to 100 bytes.
func GenerateHeadingID(title string) string {
	s := strings.ToLower(title)
	s = htmlEntity.ReplaceAllString(s, "")
	s = nonSlugChar.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 100 {
		s = s[:100]
		s = strings.TrimRight(s, "-")
	}
	return s
}

// GenerateHeadingIDForNode is GenerateHeadingID applied to a heading's own
// extracted plain text; it is the id a renderer would assign that node.
func GenerateHeadingIDForNode(n *Node) string {
	if n.Kind != NodeHeading {
		return ""
	}
	return GenerateHeadingID(ExtractPlainText(n))
}
