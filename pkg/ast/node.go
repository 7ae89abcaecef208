// Package ast defines the typed Markdown abstract syntax tree shared by the
// parser, directive system, transforms, and renderer.
package ast

//go:generate stringer -type=Kind -trimprefix=Node

// Kind classifies the type of an AST node.
type Kind uint16

// Node kinds, grouped the way the grammar groups them: block containers,
// block leaves, inlines, and the directive/raw-HTML escape hatches.
const (
	NodeDocument Kind = iota

	NodeHeading
	NodeParagraph
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeTable
	NodeTableRow
	NodeTableCell
	NodeFootnoteDef
	NodeDirective

	NodeText
	NodeEmphasis
	NodeStrong
	NodeCodeSpan
	NodeLink
	NodeImage
	NodeSoftBreak
	NodeHardBreak
	NodeFootnoteRef
	NodeStrikethrough

	// NodeRawHTML is the escape hatch: content is already final, trusted HTML.
	NodeRawHTML
)

// Align is a table column alignment.
type Align uint8

const (
	AlignNone Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Node is a single node in the Markdown AST. It is a tagged struct rather than
// an interface hierarchy: the Kind field discriminates which of the payload
// fields below are meaningful, mirroring how the teacher's mdast.Node carries
// a small fixed set of attribute groups instead of per-kind Go types.
//
// Trees are immutable after construction: every function in this module tree
// (transform, directive render) that needs to change a node returns a new one.
type Node struct {
	Kind     Kind
	Location Position

	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Text / CodeSpan / CodeBlock raw content.
	Raw string

	// Heading.
	Level int

	// Link / Image.
	URL   string
	Title string
	Alt   string

	// List.
	Ordered bool
	Tight   bool
	Start   int

	// ListItem.
	Checked *bool

	// CodeBlock.
	Info string

	// Table.
	ColAlign []Align

	// FootnoteRef / FootnoteDef.
	FootnoteID string

	// Directive.
	DirectiveName string
	DirectiveOpts OptionsRecord

	// RawHTML.
	HTML string
}

// NewNode allocates a bare node of the given kind at the given position.
func NewNode(kind Kind, pos Position) *Node {
	return &Node{Kind: kind, Location: pos}
}

// AppendChild appends child to the end of n's child list, wiring Parent/Prev/Next.
func (n *Node) AppendChild(child *Node) {
	child.Parent = n
	child.Prev = n.LastChild
	child.Next = nil
	if n.LastChild != nil {
		n.LastChild.Next = child
	} else {
		n.FirstChild = child
	}
	n.LastChild = child
}

// Children returns a slice of all direct children, in order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.Next {
		out = append(out, c)
	}
	return out
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.Next {
		count++
	}
	return count
}

// HasChildren reports whether n has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// IsBlock reports whether this is a block-level node kind.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeDocument, NodeHeading, NodeParagraph, NodeList, NodeListItem,
		NodeBlockquote, NodeCodeBlock, NodeThematicBreak, NodeTable,
		NodeTableRow, NodeTableCell, NodeFootnoteDef, NodeDirective:
		return true
	default:
		return false
	}
}

// IsInline reports whether this is an inline-level node kind.
func (n *Node) IsInline() bool {
	switch n.Kind {
	case NodeText, NodeEmphasis, NodeStrong, NodeCodeSpan, NodeLink, NodeImage,
		NodeSoftBreak, NodeHardBreak, NodeFootnoteRef, NodeStrikethrough:
		return true
	default:
		return false
	}
}

// Clone returns a deep copy of the subtree rooted at n, with Parent/Prev/Next
// rewired fresh. Transforms use this to satisfy the "AST is immutable, return
// a fresh tree" invariant without aliasing the input.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := *n
	clone.Parent = nil
	clone.Prev = nil
	clone.Next = nil
	clone.FirstChild = nil
	clone.LastChild = nil
	if n.ColAlign != nil {
		clone.ColAlign = append([]Align(nil), n.ColAlign...)
	}
	if n.Checked != nil {
		v := *n.Checked
		clone.Checked = &v
	}
	for c := n.FirstChild; c != nil; c = c.Next {
		clone.AppendChild(c.Clone())
	}
	return &clone
}
