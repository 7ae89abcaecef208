package builtins

import (
	"fmt"
	"regexp"

	"github.com/bengalssg/bengal/pkg/ast"
	"github.com/bengalssg/bengal/pkg/directive"
)

// embedClass backs every third-party-media directive: each validates its
// identifier (or path) against a kind-specific pattern and renders the
// embed markup on success, or a visible "<kind>-error" div on a missing
// identifier, a pattern mismatch, or a missing required option.
type embedClass struct {
	name         string
	idPattern    *regexp.Regexp
	requireTitle bool
	render       func(rc *directive.RenderContext, id string) string
}

func (c embedClass) Names() []string                        { return []string{c.name} }
func (embedClass) Contract() *directive.Contract            { return nil }
func (c embedClass) OptionsSchema() directive.OptionsSchema {
	if !c.requireTitle {
		return directive.OptionsSchema{}
	}
	return directive.OptionsSchema{Fields: map[string]directive.FieldType{"title": directive.FieldString}}
}

func (c embedClass) Render(rc *directive.RenderContext) (*ast.Node, error) {
	id := rc.Title
	if id == "" {
		return errorDiv(c.name, "missing identifier"), nil
	}
	if c.idPattern != nil && !c.idPattern.MatchString(id) {
		return errorDiv(c.name, fmt.Sprintf("invalid identifier %q", id)), nil
	}
	if c.requireTitle && rc.Options.String("title", "") == "" {
		return errorDiv(c.name, "missing required :title: option"), nil
	}
	return ast.NewRawHTML(c.render(rc, id), rc.Location), nil
}

var (
	youtubeIDRe    = regexp.MustCompile(`^[A-Za-z0-9_-]{6,20}$`)
	vimeoIDRe      = regexp.MustCompile(`^[0-9]{4,12}$`)
	gistRe         = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[0-9a-fA-F]{8,40}$`)
	codepenRe      = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z]+/[A-Za-z0-9]+$`)
	slugPathRe     = regexp.MustCompile(`^[A-Za-z0-9_.\/-]+$`)
	asciinemaIDRe  = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

func embedClasses() []directive.Class {
	return []directive.Class{
		embedClass{
			name: "youtube", idPattern: youtubeIDRe, requireTitle: true,
			render: func(rc *directive.RenderContext, id string) string {
				return fmt.Sprintf(`<div class="embed embed-youtube"><iframe src="https://www.youtube.com/embed/%s" title="%s" loading="lazy" allowfullscreen></iframe></div>`, id, htmlEscapeTitle(rc.Options.String("title", "")))
			},
		},
		embedClass{
			name: "vimeo", idPattern: vimeoIDRe, requireTitle: true,
			render: func(rc *directive.RenderContext, id string) string {
				return fmt.Sprintf(`<div class="embed embed-vimeo"><iframe src="https://player.vimeo.com/video/%s" title="%s" loading="lazy" allowfullscreen></iframe></div>`, id, htmlEscapeTitle(rc.Options.String("title", "")))
			},
		},
		embedClass{
			name: "video", idPattern: slugPathRe,
			render: func(rc *directive.RenderContext, id string) string {
				return fmt.Sprintf(`<video class="embed-video" controls src="%s"></video>`, htmlEscapeTitle(id))
			},
		},
		embedClass{
			name: "gist", idPattern: gistRe,
			render: func(rc *directive.RenderContext, id string) string {
				return fmt.Sprintf(`<div class="embed embed-gist" data-gist="%s"><script src="https://gist.github.com/%s.js"></script></div>`, htmlEscapeTitle(id), id)
			},
		},
		embedClass{
			name: "codepen", idPattern: codepenRe,
			render: func(rc *directive.RenderContext, id string) string {
				return fmt.Sprintf(`<div class="embed embed-codepen" data-codepen="%s"></div>`, htmlEscapeTitle(id))
			},
		},
		embedClass{
			name: "codesandbox", idPattern: asciinemaIDRe,
			render: func(rc *directive.RenderContext, id string) string {
				return fmt.Sprintf(`<iframe class="embed-codesandbox" src="https://codesandbox.io/embed/%s"></iframe>`, id)
			},
		},
		embedClass{
			name: "stackblitz", idPattern: asciinemaIDRe,
			render: func(rc *directive.RenderContext, id string) string {
				return fmt.Sprintf(`<iframe class="embed-stackblitz" src="https://stackblitz.com/edit/%s?embed=1"></iframe>`, id)
			},
		},
		embedClass{
			name: "asciinema", idPattern: asciinemaIDRe,
			render: func(rc *directive.RenderContext, id string) string {
				return fmt.Sprintf(`<div class="embed embed-asciinema" data-cast-id="%s"></div>`, id)
			},
		},
		embedClass{
			name: "figure", idPattern: slugPathRe, requireTitle: true,
			render: func(rc *directive.RenderContext, id string) string {
				caption := htmlEscapeTitle(rc.Options.String("title", ""))
				return fmt.Sprintf(`<figure class="embed-figure"><img src="%s" alt="%s"><figcaption>%s</figcaption></figure>`, htmlEscapeTitle(id), caption, caption)
			},
		},
		embedClass{
			name: "audio", idPattern: slugPathRe,
			render: func(rc *directive.RenderContext, id string) string {
				return fmt.Sprintf(`<audio class="embed-audio" controls src="%s"></audio>`, htmlEscapeTitle(id))
			},
		},
	}
}
