package builtins

import (
	"fmt"

	"github.com/bengalssg/bengal/pkg/ast"
	"github.com/bengalssg/bengal/pkg/htmlescape"
)

func htmlEscapeTitle(s string) string { return htmlescape.String(s) }

// errorDiv renders the visible error markup embeds/tables fall back to when
// a required option is missing or invalid, per spec.md §4.3.
func errorDiv(kind, message string) *ast.Node {
	html := fmt.Sprintf(`<div class="%s-error">%s</div>`, kind, htmlescape.String(message))
	return ast.NewRawHTML(html, ast.Position{})
}

