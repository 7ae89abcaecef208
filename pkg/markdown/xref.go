package markdown

import (
	"fmt"
	"regexp"

	"github.com/bengalssg/bengal/pkg/ast"
	"github.com/bengalssg/bengal/pkg/diagnostic"
)

var xrefRe = regexp.MustCompile(`\[\[([^\]\[]+)\]\]`)

// ResolveXRefs rewrites `[[slug]]` occurrences inside Text nodes into Link
// nodes via idx, in place. Unresolved refs are left as their literal text and
// produce a warning diagnostic, per spec.md §4.2. Shared by both engine
// backends so cross-reference resolution behaves identically regardless of
// which one parsed the tree.
func ResolveXRefs(root *ast.Node, idx *XRefIndex, diags *diagnostic.Builder) {
	_ = ast.Walk(root, func(n *ast.Node) error {
		if n.Kind != ast.NodeText || !xrefRe.MatchString(n.Raw) {
			return nil
		}
		replaceXRefsInParent(n, idx, diags)
		return nil
	})
}

func replaceXRefsInParent(n *ast.Node, idx *XRefIndex, diags *diagnostic.Builder) {
	parent := n.Parent
	if parent == nil {
		return
	}

	matches := xrefRe.FindAllStringSubmatchIndex(n.Raw, -1)
	if len(matches) == 0 {
		return
	}

	var replacement []*ast.Node
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		slug := n.Raw[m[2]:m[3]]
		if start > last {
			replacement = append(replacement, ast.NewText(n.Raw[last:start], n.Location))
		}
		if url, ok := idx.Resolve(slug); ok {
			link := ast.NewLink(url, "", n.Location)
			link.AppendChild(ast.NewText(slug, n.Location))
			replacement = append(replacement, link)
		} else {
			diags.Warning("xref", n.Location, fmt.Sprintf("unresolved cross-reference [[%s]]", slug))
			replacement = append(replacement, ast.NewText(n.Raw[start:end], n.Location))
		}
		last = end
	}
	if last < len(n.Raw) {
		replacement = append(replacement, ast.NewText(n.Raw[last:], n.Location))
	}

	spliceReplace(parent, n, replacement)
}

// spliceReplace replaces a single child (old) of parent with the nodes in
// repl, preserving sibling order. old's own Next pointer is left untouched so
// a caller mid-Walk (iterating via c = c.Next) still advances correctly.
func spliceReplace(parent, old *ast.Node, repl []*ast.Node) {
	prev, next := old.Prev, old.Next

	if len(repl) == 0 {
		if prev != nil {
			prev.Next = next
		} else {
			parent.FirstChild = next
		}
		if next != nil {
			next.Prev = prev
		} else {
			parent.LastChild = prev
		}
		return
	}

	for _, r := range repl {
		r.Parent = parent
	}
	for i := 0; i < len(repl)-1; i++ {
		repl[i].Next = repl[i+1]
		repl[i+1].Prev = repl[i]
	}
	repl[0].Prev = prev
	repl[len(repl)-1].Next = next
	if prev != nil {
		prev.Next = repl[0]
	} else {
		parent.FirstChild = repl[0]
	}
	if next != nil {
		next.Prev = repl[len(repl)-1]
	} else {
		parent.LastChild = repl[len(repl)-1]
	}
}
