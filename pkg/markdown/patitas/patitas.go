// Package patitas is the default Markdown engine: a hand-rolled, single-pass
// block and inline scanner with no regex backtracking that can go
// superlinear, operating directly on pkg/ast.Node rather than an
// intermediate DOM. Named for the markdown.EnginePatitas config value.
package patitas

import (
	"github.com/bengalssg/bengal/pkg/ast"
	"github.com/bengalssg/bengal/pkg/diagnostic"
	"github.com/bengalssg/bengal/pkg/directive"
	"github.com/bengalssg/bengal/pkg/highlight"
	"github.com/bengalssg/bengal/pkg/markdown"
	"github.com/bengalssg/bengal/pkg/render"
)

func init() {
	markdown.Register(markdown.EnginePatitas, New)
}

// Parser is the patitas-backed markdown.Parser.
type Parser struct {
	reg *directive.Registry
	hl  highlight.Highlighter
	xr  *markdown.XRefIndex
}

// New constructs a patitas Parser. cfg.StyleName selects the highlight.Adapter
// style; directive.DefaultRegistry supplies the builtin directive set.
func New(cfg markdown.Config) (markdown.Parser, error) {
	style := cfg.StyleName
	if style == "" {
		style = "github"
	}
	return &Parser{
		reg: directive.DefaultRegistry,
		hl:  highlight.New(style),
	}, nil
}

// EnableCrossReferences installs idx for resolving [[slug]] tokens.
func (p *Parser) EnableCrossReferences(idx *markdown.XRefIndex) {
	p.xr = idx
}

// ParseToAST runs the fence scan, directive build, and block/inline phases,
// producing a Document node and any accumulated diagnostics.
func (p *Parser) ParseToAST(source []byte, meta markdown.Metadata) (*ast.Node, []diagnostic.Diagnostic, error) {
	text := string(source)

	doc, fenceDiags := directive.ScanFences(text)

	var diags diagnostic.Builder
	for _, d := range fenceDiags {
		diags.Append(d)
	}

	children := directive.Build(doc, p.reg, p.parseMD, &diags, p.hl)

	root := ast.NewDocument()
	for _, c := range children {
		root.AppendChild(c)
	}
	if p.xr != nil {
		markdown.ResolveXRefs(root, p.xr, &diags)
	}
	return root, diags.Items(), nil
}

func (p *Parser) parseMD(source string) []*ast.Node {
	return blockParse(source)
}

// RenderAST renders n with the configured highlighter.
func (p *Parser) RenderAST(n *ast.Node) (string, error) {
	return render.Render(n, p.hl, 0), nil
}

// Parse is parse-to-AST followed by render-AST, for callers that only want
// HTML. Per markdown.Parser's equivalence requirement, this must equal
// RenderAST(ParseToAST(source, meta)) modulo whitespace between tags — which
// holds here trivially since Parse is implemented in exactly those terms.
func (p *Parser) Parse(source []byte, meta markdown.Metadata) (string, error) {
	root, _, err := p.ParseToAST(source, meta)
	if err != nil {
		return "", err
	}
	return p.RenderAST(root)
}
