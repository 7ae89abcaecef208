package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bengalssg/bengal/pkg/ast"
	"github.com/bengalssg/bengal/pkg/transform"
)

func linkDoc(url string) *ast.Node {
	doc := ast.NewDocument()
	link := ast.NewLink(url, "", ast.Position{})
	doc.AppendChild(link)
	return doc
}

func firstLinkURL(n *ast.Node) string {
	return n.FirstChild.URL
}

func TestNormalizeMDLinks(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"guide/_index.md", "guide/"},
		{"_index.md", "./"},
		{"guide/index.md", "guide/"},
		{"index.md", "./"},
		{"guide/install.md", "guide/install/"},
		{"install.md", "install/"},
		{"guide/install", "guide/install"},
		{"https://example.com/x.md", "https://example.com/x/"},
	}
	for _, c := range cases {
		got := transform.NormalizeMDLinks(linkDoc(c.in))
		assert.Equal(t, c.want, firstLinkURL(got), "input %q", c.in)
	}
}

func TestNormalizeMDLinksDoesNotMutateInput(t *testing.T) {
	doc := linkDoc("guide/install.md")
	_ = transform.NormalizeMDLinks(doc)
	assert.Equal(t, "guide/install.md", firstLinkURL(doc))
}

func TestNormalizeMDLinksIdempotent(t *testing.T) {
	doc := linkDoc("guide/install.md")
	once := transform.NormalizeMDLinks(doc)
	twice := transform.NormalizeMDLinks(once)
	assert.Equal(t, firstLinkURL(once), firstLinkURL(twice))
}

func TestAddBaseURL(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"/docs/page", "/base/docs/page"},
		{"//cdn.example.com/x", "//cdn.example.com/x"},
		{"https://example.com/x", "https://example.com/x"},
		{"#section", "#section"},
		{"relative/path", "relative/path"},
		{"/base", "/base"},
		{"/base/docs", "/base/docs"},
	}
	for _, c := range cases {
		got := transform.AddBaseURL(linkDoc(c.in), "/base/")
		assert.Equal(t, c.want, firstLinkURL(got), "input %q", c.in)
	}
}

func TestAddBaseURLIdempotent(t *testing.T) {
	doc := linkDoc("/docs/page")
	once := transform.AddBaseURL(doc, "/base")
	twice := transform.AddBaseURL(once, "/base")
	assert.Equal(t, firstLinkURL(once), firstLinkURL(twice))
}

func TestAddBaseURLEmptyBase(t *testing.T) {
	doc := linkDoc("/docs/page")
	got := transform.AddBaseURL(doc, "")
	require.NotNil(t, got)
	assert.Equal(t, "/docs/page", firstLinkURL(got))
}

func TestTransformLinksAppliesToImages(t *testing.T) {
	doc := ast.NewDocument()
	img := ast.NewImage("/pic.png", "alt", "", ast.Position{})
	doc.AppendChild(img)
	got := transform.TransformLinks(doc, func(u string) string { return u + "?v=1" })
	assert.Equal(t, "/pic.png?v=1", got.FirstChild.URL)
}
