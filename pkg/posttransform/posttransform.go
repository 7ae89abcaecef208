// Package posttransform implements the string-level fallback over already
// rendered HTML that spec.md §4.6 calls the Unified HTML Post-Transform: the
// path a legacy parser (one that hands back HTML without an AST) uses in
// place of pkg/transform's tree-level rewrites. Every step gates on a cheap
// strings.Contains check before paying for a regexp pass, and any failure
// degrades to returning the input unchanged rather than failing the build.
package posttransform

import (
	"regexp"
	"strings"

	"github.com/bengalssg/bengal/pkg/logging"
	"github.com/bengalssg/bengal/pkg/transform"
)

// HybridHTMLTransformer runs the three-step fallback pipeline: Jinja-brace
// escaping, .md link cleanup, and base-URL prefixing. It holds no state
// beyond its configured baseurl, so a single instance is safe to reuse
// across every page in a build.
type HybridHTMLTransformer struct {
	baseurl string
	log     *logging.Logger
}

// NewHybridHTMLTransformer builds a transformer. baseurl may be empty, in
// which case step 3 is skipped entirely. log may be nil.
func NewHybridHTMLTransformer(baseurl string, log *logging.Logger) *HybridHTMLTransformer {
	return &HybridHTMLTransformer{baseurl: strings.TrimSuffix(baseurl, "/"), log: log}
}

// Transform runs all three steps over html, in order, and never panics or
// returns an error: a step that can't make sense of its input leaves that
// part of the string alone.
func (t *HybridHTMLTransformer) Transform(html string) (out string) {
	in := html
	defer func() {
		if r := recover(); r != nil {
			out = in
			if t.log != nil {
				t.log.Debug("posttransform: recovered from panic", "panic", r)
			}
		}
	}()
	html = t.escapeJinjaBlocks(html)
	html = t.normalizeMDHrefs(html)
	html = t.prefixBaseURL(html)
	return html
}

// jinjaBlockRe matches a Jinja block-delimiter pair "{%" or "%}"; "{{"/"}}"
// (variable interpolation) is deliberately not in this pattern, so variable
// braces pass through untouched per spec.md §4.6 step 1.
var jinjaBlockRe = regexp.MustCompile(`\{%|%\}`)

func (t *HybridHTMLTransformer) escapeJinjaBlocks(html string) string {
	if !strings.Contains(html, "{%") && !strings.Contains(html, "%}") {
		return html
	}
	var b editBuilder
	for _, m := range jinjaBlockRe.FindAllStringIndex(html, -1) {
		repl := "&#123;%"
		if html[m[0]:m[1]] == "%}" {
			repl = "%&#125;"
		}
		b.replaceRange(m[0], m[1], repl)
	}
	return string(applyEdits([]byte(html), b.edits))
}

var mdHrefRe = regexp.MustCompile(`href="([^"]*\.md)"`)

func (t *HybridHTMLTransformer) normalizeMDHrefs(html string) string {
	if !strings.Contains(html, ".md") {
		return html
	}
	var b editBuilder
	for _, m := range mdHrefRe.FindAllStringSubmatchIndex(html, -1) {
		url := html[m[2]:m[3]]
		newURL := transform.NormalizeMDLinkURL(url)
		b.replaceRange(m[2], m[3], newURL)
	}
	return string(applyEdits([]byte(html), b.edits))
}

var hrefSrcRe = regexp.MustCompile(`(href|src)="(/[^"]*)"`)

func (t *HybridHTMLTransformer) prefixBaseURL(html string) string {
	if t.baseurl == "" || !strings.Contains(html, `="/`) {
		return html
	}
	var b editBuilder
	for _, m := range hrefSrcRe.FindAllStringSubmatchIndex(html, -1) {
		url := html[m[4]:m[5]]
		newURL := transform.AddBaseURLToURL(url, t.baseurl)
		if newURL != url {
			b.replaceRange(m[4], m[5], newURL)
		}
	}
	return string(applyEdits([]byte(html), b.edits))
}
