package builtins

import (
	"fmt"
	"strings"

	"github.com/bengalssg/bengal/pkg/ast"
	"github.com/bengalssg/bengal/pkg/directive"
	"github.com/bengalssg/bengal/pkg/highlight"
	"github.com/bengalssg/bengal/pkg/render"
)

// tabSetClass renders a tab-set/tabs container: its direct children must be
// tab-item/tab directive outputs, each carrying its own title (stashed on the
// RawHTML payload as a leading text marker, tabItemMarker + title + NUL,
// since RawHTML has no side channel for metadata) — tabItemClass below
// encodes this.
type tabSetClass struct{}

func (tabSetClass) Names() []string { return []string{"tab-set", "tabs"} }
func (tabSetClass) Contract() *directive.Contract {
	return &directive.Contract{Name: "tab-set"}
}
func (tabSetClass) OptionsSchema() directive.OptionsSchema { return directive.OptionsSchema{} }

func (tabSetClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	var nav, panels strings.Builder
	for i, child := range rc.Children {
		label, body, ok := unwrapTabItem(child, rc.Highlighter)
		if !ok {
			continue
		}
		active := ""
		if i == 0 {
			active = " active"
		}
		fmt.Fprintf(&nav, `<button class="tab-nav-item%s" data-tab="%d">%s</button>`, active, i, htmlEscapeTitle(label))
		fmt.Fprintf(&panels, `<div class="tab-panel%s" data-tab="%d">%s</div>`, active, i, body)
	}
	html := fmt.Sprintf(`<div class="tab-set"><div class="tab-nav">%s</div><div class="tab-panels">%s</div></div>`, nav.String(), panels.String())
	return ast.NewRawHTML(html, rc.Location), nil
}

const tabItemMarker = "bengal:tab-item:"

type tabItemClass struct{}

func (tabItemClass) Names() []string { return []string{"tab-item", "tab"} }
func (tabItemClass) Contract() *directive.Contract {
	return &directive.Contract{Name: "tab-item", RequiredParent: "tab-set"}
}
func (tabItemClass) OptionsSchema() directive.OptionsSchema { return directive.OptionsSchema{} }

func (tabItemClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	body := render.Nodes(rc.Children, rc.Highlighter)
	marker := tabItemMarker + rc.Title + "\x00"
	return ast.NewRawHTML(marker+body, rc.Location), nil
}

// unwrapTabItem recovers a tab-item's title/body from the marker
// tabItemClass.Render embedded. ok is always true: a child that isn't a
// tab-item is rendered as a panel with an empty title instead of being
// dropped.
func unwrapTabItem(n *ast.Node, hl highlight.Highlighter) (title, body string, ok bool) {
	if n.Kind != ast.NodeRawHTML || !strings.HasPrefix(n.HTML, tabItemMarker) {
		return "", render.Nodes([]*ast.Node{n}, hl), true
	}
	rest := strings.TrimPrefix(n.HTML, tabItemMarker)
	parts := strings.SplitN(rest, "\x00", 2)
	if len(parts) != 2 {
		return "", rest, true
	}
	return parts[0], parts[1], true
}

type cardsClass struct{}

func (cardsClass) Names() []string                     { return []string{"cards"} }
func (cardsClass) Contract() *directive.Contract        { return &directive.Contract{Name: "cards"} }
func (cardsClass) OptionsSchema() directive.OptionsSchema { return directive.OptionsSchema{} }

func (cardsClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	body := render.Nodes(rc.Children, rc.Highlighter)
	html := fmt.Sprintf(`<div class="cards">%s</div>`, body)
	return ast.NewRawHTML(html, rc.Location), nil
}

type cardClass struct{}

func (cardClass) Names() []string { return []string{"card"} }
func (cardClass) Contract() *directive.Contract {
	return &directive.Contract{Name: "card", RequiredParent: "cards"}
}
func (cardClass) OptionsSchema() directive.OptionsSchema {
	return directive.OptionsSchema{Fields: map[string]directive.FieldType{"link": directive.FieldString}}
}

func (cardClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	body := render.Nodes(rc.Children, rc.Highlighter)
	title := ""
	if rc.Title != "" {
		title = fmt.Sprintf(`<h3 class="card-title">%s</h3>`, htmlEscapeTitle(rc.Title))
	}
	link := rc.Options.String("link", "")
	open, closeTag := "<div class=\"card\">", "</div>"
	if link != "" {
		open = fmt.Sprintf(`<a class="card" href="%s">`, htmlEscapeTitle(link))
		closeTag = "</a>"
	}
	html := open + title + body + closeTag
	return ast.NewRawHTML(html, rc.Location), nil
}

type stepsClass struct{}

func (stepsClass) Names() []string { return []string{"steps"} }
func (stepsClass) Contract() *directive.Contract {
	return &directive.Contract{Name: "steps"}
}
func (stepsClass) OptionsSchema() directive.OptionsSchema {
	return directive.OptionsSchema{
		Fields:   map[string]directive.FieldType{"start": directive.FieldInt},
		Defaults: map[string]any{"start": 1},
	}
}

func (stepsClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	start := rc.Options.Int("start", 1)
	var body strings.Builder
	n := start
	for _, child := range rc.Children {
		title, meta, inner, ok := unwrapStep(child, rc.Highlighter)
		if !ok {
			continue
		}
		fmt.Fprintf(&body, `<li class="step" data-step="%d">%s%s%s</li>`, n, metaHTML(meta), stepHeading(title), inner)
		n++
	}
	html := fmt.Sprintf(`<ol class="steps" start="%d">%s</ol>`, start, body.String())
	return ast.NewRawHTML(html, rc.Location), nil
}

func stepHeading(title string) string {
	if title == "" {
		return ""
	}
	return fmt.Sprintf(`<h4 class="step-title">%s</h4>`, htmlEscapeTitle(title))
}

func metaHTML(meta stepMeta) string {
	var b strings.Builder
	if meta.optional {
		b.WriteString(`<span class="step-optional">optional</span>`)
	}
	if meta.duration != "" {
		fmt.Fprintf(&b, `<span class="step-duration">%s</span>`, htmlEscapeTitle(meta.duration))
	}
	if meta.description != "" {
		fmt.Fprintf(&b, `<p class="step-description">%s</p>`, htmlEscapeTitle(meta.description))
	}
	return b.String()
}

type stepMeta struct {
	optional    bool
	duration    string
	description string
}

const stepMarker = "bengal:step:"

type stepClass struct{}

func (stepClass) Names() []string { return []string{"step"} }
func (stepClass) Contract() *directive.Contract {
	return &directive.Contract{Name: "step", RequiredParent: "steps"}
}
func (stepClass) OptionsSchema() directive.OptionsSchema {
	return directive.OptionsSchema{
		Fields: map[string]directive.FieldType{
			"optional":    directive.FieldBool,
			"duration":    directive.FieldString,
			"description": directive.FieldString,
		},
		Defaults: map[string]any{"optional": false},
	}
}

func (stepClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	body := render.Nodes(rc.Children, rc.Highlighter)
	meta := stepMeta{
		optional:    rc.Options.Bool("optional", false),
		duration:    rc.Options.String("duration", ""),
		description: rc.Options.String("description", ""),
	}
	marker := fmt.Sprintf("%s%s\x00%v\x00%s\x00%s\x00", stepMarker, rc.Title, meta.optional, meta.duration, meta.description)
	return ast.NewRawHTML(marker+body, rc.Location), nil
}

func unwrapStep(n *ast.Node, hl highlight.Highlighter) (title string, meta stepMeta, body string, ok bool) {
	if n.Kind != ast.NodeRawHTML || !strings.HasPrefix(n.HTML, stepMarker) {
		return "", stepMeta{}, render.Nodes([]*ast.Node{n}, hl), true
	}
	rest := strings.TrimPrefix(n.HTML, stepMarker)
	parts := strings.SplitN(rest, "\x00", 5)
	if len(parts) != 5 {
		return "", stepMeta{}, rest, true
	}
	meta.optional = parts[1] == "true"
	meta.duration = parts[2]
	meta.description = parts[3]
	return parts[0], meta, parts[4], true
}

var (
	_ directive.Class = tabSetClass{}
	_ directive.Class = tabItemClass{}
	_ directive.Class = cardsClass{}
	_ directive.Class = cardClass{}
	_ directive.Class = stepsClass{}
	_ directive.Class = stepClass{}
)
