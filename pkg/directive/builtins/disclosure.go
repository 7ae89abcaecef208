package builtins

import (
	"fmt"

	"github.com/bengalssg/bengal/pkg/ast"
	"github.com/bengalssg/bengal/pkg/directive"
	"github.com/bengalssg/bengal/pkg/render"
)

type disclosureClass struct{}

func (disclosureClass) Names() []string { return []string{"dropdown", "details"} }
func (disclosureClass) Contract() *directive.Contract { return nil }
func (disclosureClass) OptionsSchema() directive.OptionsSchema {
	return directive.OptionsSchema{
		Fields:   map[string]directive.FieldType{"open": directive.FieldBool},
		Defaults: map[string]any{"open": false},
	}
}

func (disclosureClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	body := render.Nodes(rc.Children, rc.Highlighter)
	openAttr := ""
	if rc.Options.Bool("open", false) {
		openAttr = " open"
	}
	html := fmt.Sprintf(`<details class="dropdown"%s><summary>%s</summary>%s</details>`, openAttr, htmlEscapeTitle(rc.Title), body)
	return ast.NewRawHTML(html, rc.Location), nil
}

var _ directive.Class = disclosureClass{}
