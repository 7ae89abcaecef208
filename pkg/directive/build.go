package directive

import (
	"fmt"

	"github.com/bengalssg/bengal/pkg/ast"
	"github.com/bengalssg/bengal/pkg/diagnostic"
	"github.com/bengalssg/bengal/pkg/highlight"
	"github.com/bengalssg/bengal/pkg/htmlescape"
)

// ParseFunc parses a run of plain Markdown source (with any nested
// directives already stripped out by the fence scanner) into block-level AST
// nodes. The markdown block parser (patitas or gmengine) supplies this so
// package directive never needs to know how to parse Markdown itself.
type ParseFunc func(source string) []*ast.Node

// Build walks a fence-scanned Document, dispatching every directive Block to
// its registered Class and interleaving plain-text segments parsed by
// parseMD, producing the final node list for the document (or for a
// directive's body, when called recursively).
func Build(doc *Document, reg *Registry, parseMD ParseFunc, diags *diagnostic.Builder, hl highlight.Highlighter) []*ast.Node {
	return buildSegments(doc.Root.Segments, reg, parseMD, diags, nil, hl)
}

func buildSegments(segments []Segment, reg *Registry, parseMD ParseFunc, diags *diagnostic.Builder, ancestors []string, hl highlight.Highlighter) []*ast.Node {
	var out []*ast.Node
	for _, seg := range segments {
		if seg.Block == nil {
			out = append(out, parseMD(seg.Text)...)
			continue
		}
		out = append(out, buildBlock(seg.Block, reg, parseMD, diags, ancestors, hl)...)
	}
	return out
}

func buildBlock(blk *Block, reg *Registry, parseMD ParseFunc, diags *diagnostic.Builder, ancestors []string, hl highlight.Highlighter) []*ast.Node {
	loc := ast.Position{Line: blk.Line, Column: 1}

	class, ok := reg.Get(blk.Name)
	if !ok {
		diags.Warning("directive", loc, fmt.Sprintf("unknown directive %q; rendering body inline", blk.Name))
		return buildSegments(blk.Segments, reg, parseMD, diags, ancestors, hl)
	}

	children := buildSegments(blk.Segments, reg, parseMD, diags, append(ancestors, blk.Name), hl)

	opts := Coerce("directive:"+blk.Name, blk.Options, class.OptionsSchema(), loc, diags)

	contract := class.Contract()
	if contract != nil {
		if contract.RequiredParent != "" {
			if len(ancestors) == 0 || ancestors[len(ancestors)-1] != contract.RequiredParent {
				diags.Warning("directive", loc, fmt.Sprintf(
					"directive %q expects parent %q (invariant violated, rendering anyway)", blk.Name, contract.RequiredParent))
			}
		}
		present := make(map[string]bool, len(opts))
		for k := range opts {
			present[k] = true
		}
		for _, missing := range contract.Validate(present) {
			diags.Warning("directive", loc, fmt.Sprintf("directive %q missing required option %q", blk.Name, missing))
		}
	}

	rc := &RenderContext{
		Name:     blk.Name,
		Title:    blk.Title,
		Options:  opts,
		Children: children,
		Location: loc,
		Diags:    diags,
		Parents:  ancestors,
		Highlighter: hl,
	}

	node, err := class.Render(rc)
	if err != nil {
		diags.Error("directive", loc, fmt.Sprintf("directive %q failed to render: %v", blk.Name, err))
		node = ast.NewRawHTML(fmt.Sprintf(`<div class="directive-error">error rendering %q: %s</div>`, blk.Name, htmlescape.String(err.Error())), loc)
	}
	return []*ast.Node{node}
}
