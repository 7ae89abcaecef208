package ast

// NewDocument creates a new document root node.
func NewDocument() *Node {
	return NewNode(NodeDocument, Position{})
}

// NewHeading creates a Heading node, clamping level into 1..6 per the AST's
// heading-level invariant.
func NewHeading(level int, pos Position) *Node {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	n := NewNode(NodeHeading, pos)
	n.Level = level
	return n
}

// NewList creates a List node. Callers must only AppendChild ListItem nodes
// to it; NewList itself has no way to enforce that across a mutable tree, so
// the renderer and transforms treat any non-ListItem child defensively.
func NewList(ordered bool, start int, pos Position) *Node {
	n := NewNode(NodeList, pos)
	n.Ordered = ordered
	n.Start = start
	n.Tight = true
	return n
}

// NewListItem creates a ListItem node. checked is nil for a non-task item.
func NewListItem(checked *bool, pos Position) *Node {
	n := NewNode(NodeListItem, pos)
	n.Checked = checked
	return n
}

// NewText creates a Text leaf carrying raw.
func NewText(raw string, pos Position) *Node {
	n := NewNode(NodeText, pos)
	n.Raw = raw
	return n
}

// NewCodeSpan creates an inline CodeSpan leaf.
func NewCodeSpan(raw string, pos Position) *Node {
	n := NewNode(NodeCodeSpan, pos)
	n.Raw = raw
	return n
}

// NewCodeBlock creates a CodeBlock leaf with an optional fence info string.
func NewCodeBlock(info, raw string, pos Position) *Node {
	n := NewNode(NodeCodeBlock, pos)
	n.Info = info
	n.Raw = raw
	return n
}

// NewLink creates a Link container node.
func NewLink(url, title string, pos Position) *Node {
	n := NewNode(NodeLink, pos)
	n.URL = url
	n.Title = title
	return n
}

// NewImage creates an Image leaf node.
func NewImage(src, alt, title string, pos Position) *Node {
	n := NewNode(NodeImage, pos)
	n.URL = src
	n.Alt = alt
	n.Title = title
	return n
}

// NewFootnoteRef creates a FootnoteRef leaf node.
func NewFootnoteRef(id string, pos Position) *Node {
	n := NewNode(NodeFootnoteRef, pos)
	n.FootnoteID = id
	return n
}

// NewFootnoteDef creates a FootnoteDef container node.
func NewFootnoteDef(id string, pos Position) *Node {
	n := NewNode(NodeFootnoteDef, pos)
	n.FootnoteID = id
	return n
}

// NewRawHTML creates a RawHTML escape-hatch leaf. content must already be
// sanitized/trusted by whatever produced it; the renderer never re-escapes it.
func NewRawHTML(content string, pos Position) *Node {
	n := NewNode(NodeRawHTML, pos)
	n.HTML = content
	return n
}

// NewDirective creates a Directive node.
func NewDirective(name, title string, opts OptionsRecord, pos Position) *Node {
	n := NewNode(NodeDirective, pos)
	n.DirectiveName = name
	n.Title = title
	n.DirectiveOpts = opts
	return n
}

// NewTable creates a Table container node with the given column alignments.
func NewTable(align []Align, pos Position) *Node {
	n := NewNode(NodeTable, pos)
	n.ColAlign = append([]Align(nil), align...)
	return n
}

// NewTableRow creates a TableRow container node.
func NewTableRow(pos Position) *Node {
	return NewNode(NodeTableRow, pos)
}

// NewTableCell creates a TableCell container node.
func NewTableCell(pos Position) *Node {
	return NewNode(NodeTableCell, pos)
}

// NewParagraph creates a Paragraph container node.
func NewParagraph(pos Position) *Node {
	return NewNode(NodeParagraph, pos)
}

// NewBlockquote creates a Blockquote container node.
func NewBlockquote(pos Position) *Node {
	return NewNode(NodeBlockquote, pos)
}

// NewThematicBreak creates a ThematicBreak leaf node.
func NewThematicBreak(pos Position) *Node {
	return NewNode(NodeThematicBreak, pos)
}

// NewEmphasis creates an Emphasis container node.
func NewEmphasis(pos Position) *Node {
	return NewNode(NodeEmphasis, pos)
}

// NewStrong creates a Strong container node.
func NewStrong(pos Position) *Node {
	return NewNode(NodeStrong, pos)
}

// NewStrikethrough creates a Strikethrough container node.
func NewStrikethrough(pos Position) *Node {
	return NewNode(NodeStrikethrough, pos)
}

// NewHardBreak creates a HardBreak leaf node.
func NewHardBreak(pos Position) *Node {
	return NewNode(NodeHardBreak, pos)
}

// NewSoftBreak creates a SoftBreak leaf node.
func NewSoftBreak(pos Position) *Node {
	return NewNode(NodeSoftBreak, pos)
}
