// Package builtins implements every directive class spec.md §4.3 lists,
// grouped one family per file mirroring the teacher's pkg/lint/rules layout.
package builtins

import (
	"fmt"

	"github.com/bengalssg/bengal/pkg/ast"
	"github.com/bengalssg/bengal/pkg/directive"
	"github.com/bengalssg/bengal/pkg/render"
)

// admonitionNames are every recognized admonition type; the class answers to
// all of them and uses RenderContext.Name to pick the CSS modifier.
var admonitionNames = []string{
	"note", "tip", "warning", "danger", "error", "info", "example", "success", "caution", "seealso",
}

type admonitionClass struct{}

func (admonitionClass) Names() []string            { return admonitionNames }
func (admonitionClass) Contract() *directive.Contract { return nil }
func (admonitionClass) OptionsSchema() directive.OptionsSchema {
	return directive.OptionsSchema{}
}

func (admonitionClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	title := rc.Title
	if title == "" {
		title = defaultAdmonitionTitle(rc.Name)
	}
	body := render.Nodes(rc.Children, rc.Highlighter)
	html := fmt.Sprintf(
		`<div class="admonition %s"><p class="admonition-title">%s</p>%s</div>`,
		rc.Name, htmlEscapeTitle(title), body,
	)
	return ast.NewRawHTML(html, rc.Location), nil
}

func defaultAdmonitionTitle(name string) string {
	if name == "" {
		return ""
	}
	return string(name[0]-'a'+'A') + name[1:]
}

var _ directive.Class = admonitionClass{}
