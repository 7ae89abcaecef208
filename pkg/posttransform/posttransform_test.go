package posttransform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bengalssg/bengal/pkg/posttransform"
)

func TestEscapesJinjaBlocksNotVariables(t *testing.T) {
	tr := posttransform.NewHybridHTMLTransformer("", nil)
	in := `<p>{% if x %}hi{% endif %}, {{ name }}</p>`
	got := tr.Transform(in)
	assert.Contains(t, got, "&#123;% if x %&#125;")
	assert.Contains(t, got, "&#123;% endif %&#125;")
	assert.Contains(t, got, "{{ name }}")
}

func TestNormalizesMDHrefs(t *testing.T) {
	tr := posttransform.NewHybridHTMLTransformer("", nil)
	got := tr.Transform(`<a href="guide/install.md">install</a>`)
	assert.Equal(t, `<a href="guide/install/">install</a>`, got)
}

func TestPrefixesBaseURL(t *testing.T) {
	tr := posttransform.NewHybridHTMLTransformer("/base/", nil)
	got := tr.Transform(`<a href="/docs/page">x</a><img src="/img.png">`)
	assert.Equal(t, `<a href="/base/docs/page">x</a><img src="/base/img.png">`, got)
}

func TestLeavesExternalAndFragmentURLsAlone(t *testing.T) {
	tr := posttransform.NewHybridHTMLTransformer("/base", nil)
	in := `<a href="https://example.com/x">e</a><a href="#top">t</a><a href="//cdn/x">c</a>`
	assert.Equal(t, in, tr.Transform(in))
}

func TestNoOpWithoutTriggeringSubstrings(t *testing.T) {
	tr := posttransform.NewHybridHTMLTransformer("/base", nil)
	in := `<p>plain paragraph, no links here</p>`
	assert.Equal(t, in, tr.Transform(in))
}
