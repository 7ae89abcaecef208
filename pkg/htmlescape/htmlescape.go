// Package htmlescape provides the single HTML-escaping routine shared by the
// renderer and directive handlers, so "escape exactly once, at the point
// text becomes HTML" stays true across the codebase.
package htmlescape

import "strings"

var replacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// String HTML-escapes s for use in text content or a double-quoted attribute.
func String(s string) string {
	return replacer.Replace(s)
}
