package builtins

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/bengalssg/bengal/pkg/ast"
	"github.com/bengalssg/bengal/pkg/directive"
	"github.com/bengalssg/bengal/pkg/render"
)

// badgeClass renders a small inline label; its title is the badge text and
// an optional :variant: option picks the CSS modifier.
type badgeClass struct{}

func (badgeClass) Names() []string { return []string{"badge", "bdg"} }
func (badgeClass) Contract() *directive.Contract { return nil }
func (badgeClass) OptionsSchema() directive.OptionsSchema {
	return directive.OptionsSchema{
		Fields:   map[string]directive.FieldType{"variant": directive.FieldString},
		Defaults: map[string]any{"variant": "default"},
	}
}

func (badgeClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	variant := rc.Options.String("variant", "default")
	html := fmt.Sprintf(`<span class="badge badge-%s">%s</span>`, htmlEscapeTitle(variant), htmlEscapeTitle(rc.Title))
	return ast.NewRawHTML(html, rc.Location), nil
}

// buttonClass renders a link styled as a button; :href: is required.
type buttonClass struct{}

func (buttonClass) Names() []string { return []string{"button"} }
func (buttonClass) Contract() *directive.Contract { return nil }
func (buttonClass) OptionsSchema() directive.OptionsSchema {
	return directive.OptionsSchema{Fields: map[string]directive.FieldType{"href": directive.FieldString}}
}

func (buttonClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	href := rc.Options.String("href", "")
	if href == "" {
		return errorDiv("button", "missing required :href: option"), nil
	}
	html := fmt.Sprintf(`<a class="button" href="%s">%s</a>`, htmlEscapeTitle(href), htmlEscapeTitle(rc.Title))
	return ast.NewRawHTML(html, rc.Location), nil
}

// iconClass renders a named icon glyph by CSS hook; consumers supply the
// actual glyph set (sprite sheet or icon font) at the template layer.
type iconClass struct{}

func (iconClass) Names() []string { return []string{"icon", "svg-icon"} }
func (iconClass) Contract() *directive.Contract { return nil }
func (iconClass) OptionsSchema() directive.OptionsSchema { return directive.OptionsSchema{} }

func (iconClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	name := rc.Title
	if name == "" {
		return errorDiv("icon", "missing icon name"), nil
	}
	html := fmt.Sprintf(`<span class="icon icon-%s" aria-hidden="true"></span>`, htmlEscapeTitle(name))
	return ast.NewRawHTML(html, rc.Location), nil
}

// includeClass splices another file's raw text in verbatim, escaped inside a
// wrapper div (it is not re-parsed as Markdown — a page that wants parsed
// content composition uses cross-references instead). :file: names the path,
// resolved relative to the process's working directory.
type includeClass struct{}

func (includeClass) Names() []string { return []string{"include"} }
func (includeClass) Contract() *directive.Contract { return nil }
func (includeClass) OptionsSchema() directive.OptionsSchema {
	return directive.OptionsSchema{Fields: map[string]directive.FieldType{"file": directive.FieldString}}
}

func (includeClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	path := rc.Options.String("file", rc.Title)
	if path == "" {
		return errorDiv("include", "missing required :file: option"), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if rc.Diags != nil {
			rc.Diags.Warning("directive:include", rc.Location, fmt.Sprintf("include %q: %v", path, err))
		}
		return errorDiv("include", fmt.Sprintf("could not read %q", path)), nil
	}
	html := fmt.Sprintf(`<div class="include">%s</div>`, htmlEscapeTitle(string(data)))
	return ast.NewRawHTML(html, rc.Location), nil
}

var lineRangeRe = regexp.MustCompile(`^(\d+)-(\d+)$`)

// literalincludeClass splices a file's content verbatim as a code block,
// optionally slicing to a :lines: range (1-based, inclusive) and tagging the
// fence language with :language:.
type literalincludeClass struct{}

func (literalincludeClass) Names() []string { return []string{"literalinclude"} }
func (literalincludeClass) Contract() *directive.Contract { return nil }
func (literalincludeClass) OptionsSchema() directive.OptionsSchema {
	return directive.OptionsSchema{
		Fields: map[string]directive.FieldType{
			"lines":    directive.FieldString,
			"language": directive.FieldString,
		},
	}
}

func (literalincludeClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	path := rc.Title
	if path == "" {
		return errorDiv("literalinclude", "missing file path"), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if rc.Diags != nil {
			rc.Diags.Warning("directive:literalinclude", rc.Location, fmt.Sprintf("literalinclude %q: %v", path, err))
		}
		return errorDiv("literalinclude", fmt.Sprintf("could not read %q", path)), nil
	}
	lines := strings.Split(string(data), "\n")
	if rng := rc.Options.String("lines", ""); rng != "" {
		if m := lineRangeRe.FindStringSubmatch(rng); m != nil {
			start, end := atoiSafe(m[1]), atoiSafe(m[2])
			if start >= 1 && end >= start && end <= len(lines) {
				lines = lines[start-1 : end]
			}
		}
	}
	lang := rc.Options.String("language", "")
	code := ast.NewCodeBlock(lang, strings.Join(lines, "\n"), rc.Location)
	return code, nil
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// navClass backs the four navigation directives. None of them can see the
// site's page graph from inside a directive Render call (a directive handler
// only sees its own options and children, per spec.md §4.3); callers supply
// the items explicitly as a `:items:` option of "title|href" pairs separated
// by "||", a deliberate simplification over inferring structure from a page
// tree that's outside this package's scope.
type navClass struct {
	name     string
	cssClass string
}

func (c navClass) Names() []string { return []string{c.name} }
func (navClass) Contract() *directive.Contract { return nil }
func (navClass) OptionsSchema() directive.OptionsSchema {
	return directive.OptionsSchema{Fields: map[string]directive.FieldType{"items": directive.FieldString}}
}

func (c navClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	raw := rc.Options.String("items", "")
	if raw == "" {
		return ast.NewRawHTML(fmt.Sprintf(`<nav class="%s"></nav>`, c.cssClass), rc.Location), nil
	}
	var links strings.Builder
	for _, item := range strings.Split(raw, "||") {
		parts := strings.SplitN(item, "|", 2)
		title := strings.TrimSpace(parts[0])
		href := title
		if len(parts) == 2 {
			href = strings.TrimSpace(parts[1])
		}
		fmt.Fprintf(&links, `<a href="%s">%s</a>`, htmlEscapeTitle(href), htmlEscapeTitle(title))
	}
	html := fmt.Sprintf(`<nav class="%s">%s</nav>`, c.cssClass, links.String())
	return ast.NewRawHTML(html, rc.Location), nil
}

// rubricClass renders a heading-like label that doesn't participate in the
// table of contents (spec.md's ExtractTOC only walks Heading nodes).
type rubricClass struct{}

func (rubricClass) Names() []string { return []string{"rubric"} }
func (rubricClass) Contract() *directive.Contract { return nil }
func (rubricClass) OptionsSchema() directive.OptionsSchema { return directive.OptionsSchema{} }

func (rubricClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	html := fmt.Sprintf(`<p class="rubric">%s</p>`, htmlEscapeTitle(rc.Title))
	return ast.NewRawHTML(html, rc.Location), nil
}

// glossaryClass expects a body list where each item reads "term : definition";
// items without a colon become a term with no definition.
type glossaryClass struct{}

func (glossaryClass) Names() []string { return []string{"glossary"} }
func (glossaryClass) Contract() *directive.Contract { return nil }
func (glossaryClass) OptionsSchema() directive.OptionsSchema { return directive.OptionsSchema{} }

func (glossaryClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	list := findList(rc.Children)
	if list == nil {
		return errorDiv("glossary", "expected a Markdown list body"), nil
	}
	var dl strings.Builder
	dl.WriteString(`<dl class="glossary">`)
	for item := list.FirstChild; item != nil; item = item.Next {
		text := ast.ExtractPlainText(item)
		term, def, _ := strings.Cut(text, ":")
		term, def = strings.TrimSpace(term), strings.TrimSpace(def)
		fmt.Fprintf(&dl, `<dt>%s</dt><dd>%s</dd>`, htmlEscapeTitle(term), htmlEscapeTitle(def))
	}
	dl.WriteString(`</dl>`)
	return ast.NewRawHTML(dl.String(), rc.Location), nil
}

// checklistClass renders its list body as checkbox items regardless of
// whether the source used task-list syntax, for a document that wants a
// checklist look without per-item `[ ]` markers.
type checklistClass struct{}

func (checklistClass) Names() []string { return []string{"checklist"} }
func (checklistClass) Contract() *directive.Contract { return nil }
func (checklistClass) OptionsSchema() directive.OptionsSchema { return directive.OptionsSchema{} }

func (checklistClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	list := findList(rc.Children)
	if list == nil {
		return errorDiv("checklist", "expected a Markdown list body"), nil
	}
	var ul strings.Builder
	ul.WriteString(`<ul class="checklist">`)
	for item := list.FirstChild; item != nil; item = item.Next {
		text := ast.ExtractPlainText(item)
		checked := item.Checked != nil && *item.Checked
		attr := ""
		if checked {
			attr = " checked"
		}
		fmt.Fprintf(&ul, `<li><input type="checkbox" disabled%s> %s</li>`, attr, htmlEscapeTitle(text))
	}
	ul.WriteString(`</ul>`)
	return ast.NewRawHTML(ul.String(), rc.Location), nil
}

var slugRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// targetClass emits an empty anchor a cross-reference or plain link can
// point at; its title is the anchor slug.
type targetClass struct{}

func (targetClass) Names() []string { return []string{"target", "anchor"} }
func (targetClass) Contract() *directive.Contract { return nil }
func (targetClass) OptionsSchema() directive.OptionsSchema { return directive.OptionsSchema{} }

func (targetClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	slug := rc.Title
	if slug == "" || !slugRe.MatchString(slug) {
		return errorDiv("target", fmt.Sprintf("invalid anchor slug %q", slug)), nil
	}
	html := fmt.Sprintf(`<span id="%s" class="anchor-target"></span>`, slug)
	return ast.NewRawHTML(html, rc.Location), nil
}

// versionClass backs since/deprecated/changed: each stamps a small version
// marker before its body, with the version number as the directive title.
type versionClass struct {
	name  string
	label string
}

func (c versionClass) Names() []string { return []string{c.name} }
func (versionClass) Contract() *directive.Contract { return nil }
func (versionClass) OptionsSchema() directive.OptionsSchema { return directive.OptionsSchema{} }

func (c versionClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	marker := fmt.Sprintf(`<p class="version-%s">%s %s</p>`, c.name, c.label, htmlEscapeTitle(rc.Title))
	body := render.Nodes(rc.Children, rc.Highlighter)
	return ast.NewRawHTML(marker+body, rc.Location), nil
}

func miscClasses() []directive.Class {
	return []directive.Class{
		badgeClass{},
		buttonClass{},
		iconClass{},
		includeClass{},
		literalincludeClass{},
		navClass{name: "breadcrumbs", cssClass: "breadcrumbs"},
		navClass{name: "siblings", cssClass: "siblings"},
		navClass{name: "prev-next", cssClass: "prev-next"},
		navClass{name: "related", cssClass: "related"},
		rubricClass{},
		glossaryClass{},
		checklistClass{},
		targetClass{},
		versionClass{name: "since", label: "Since"},
		versionClass{name: "deprecated", label: "Deprecated since"},
		versionClass{name: "changed", label: "Changed in"},
	}
}
