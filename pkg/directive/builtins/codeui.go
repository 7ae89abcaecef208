package builtins

import (
	"fmt"
	"strings"

	"github.com/bengalssg/bengal/pkg/ast"
	"github.com/bengalssg/bengal/pkg/directive"
	"github.com/bengalssg/bengal/pkg/highlight"
	"github.com/bengalssg/bengal/pkg/render"
)

// codeTabsClass renders code-tabs/code_tabs: a tab-set specialized for
// language-labeled code blocks. Its children are CodeBlock nodes (or
// anything else, rendered verbatim) and each panel's label is the code
// block's fence info string when present, otherwise a positional fallback.
type codeTabsClass struct{}

func (codeTabsClass) Names() []string                        { return []string{"code-tabs", "code_tabs"} }
func (codeTabsClass) Contract() *directive.Contract           { return nil }
func (codeTabsClass) OptionsSchema() directive.OptionsSchema { return directive.OptionsSchema{} }

func (codeTabsClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	var nav, panels strings.Builder
	for i, child := range rc.Children {
		label, body := codeTabPanel(child, rc.Highlighter)
		if label == "" {
			label = fmt.Sprintf("tab-%d", i+1)
		}
		active := ""
		if i == 0 {
			active = " active"
		}
		fmt.Fprintf(&nav, `<button class="tab-nav-item%s" data-tab="%d">%s</button>`, active, i, htmlEscapeTitle(label))
		fmt.Fprintf(&panels, `<div class="tab-panel%s" data-tab="%d">%s</div>`, active, i, body)
	}
	html := fmt.Sprintf(`<div class="tab-set code-tabs"><div class="tab-nav">%s</div><div class="tab-panels">%s</div></div>`, nav.String(), panels.String())
	return ast.NewRawHTML(html, rc.Location), nil
}

// codeTabPanel renders a single child to HTML and recovers a label: a
// top-level CodeBlock's fence info string, or empty if the child isn't one.
func codeTabPanel(n *ast.Node, hl highlight.Highlighter) (label, body string) {
	if n.Kind == ast.NodeCodeBlock {
		label = n.Info
	}
	return label, render.Nodes([]*ast.Node{n}, hl)
}

var _ directive.Class = codeTabsClass{}
