// Package transform implements pure, tree-to-tree AST transformations:
// Markdown-link normalization, base-URL prefixing, and the generic walker
// both build on. Each function returns a fresh tree (via ast.Node.Clone) and
// never mutates its input, so callers can safely keep the original around
// for a cache entry or a second transform pass.
package transform

import (
	"strings"

	"github.com/bengalssg/bengal/pkg/ast"
)

// TransformLinks returns a clone of root with fn applied to every Link.URL
// and Image.URL, in document order. It is the building block
// NormalizeMDLinks and AddBaseURL are both implemented in terms of.
func TransformLinks(root *ast.Node, fn func(string) string) *ast.Node {
	clone := root.Clone()
	_ = ast.Walk(clone, func(n *ast.Node) error {
		switch n.Kind {
		case ast.NodeLink, ast.NodeImage:
			n.URL = fn(n.URL)
		}
		return nil
	})
	return clone
}

// NormalizeMDLinks rewrites every link/image URL ending in ".md" into its
// clean-URL equivalent:
//
//	path/_index.md -> path/     (bare "_index.md" -> "./")
//	path/index.md  -> path/     (bare "index.md"  -> "./")
//	path/other.md  -> path/other/
//
// Idempotent on its own fixed point: a rewritten URL never ends in ".md", so
// a second call leaves it untouched.
func NormalizeMDLinks(root *ast.Node) *ast.Node {
	return TransformLinks(root, NormalizeMDLinkURL)
}

// NormalizeMDLinkURL applies the same rewrite to a single URL string; the
// HTML post-transform fallback (pkg/posttransform) reuses it directly so
// both paths agree on the exact same rule, per spec.md §4.6's "behavior must
// match §4.4 on equivalent inputs."
func NormalizeMDLinkURL(url string) string {
	if !strings.HasSuffix(url, ".md") {
		return url
	}
	dir, file := splitLast(url)
	switch file {
	case "_index.md", "index.md":
		if dir == "" {
			return "./"
		}
		return dir + "/"
	default:
		base := strings.TrimSuffix(file, ".md")
		if dir == "" {
			return base + "/"
		}
		return dir + "/" + base + "/"
	}
}

// splitLast splits url at its final "/", returning ("", url) when there is
// none.
func splitLast(url string) (dir, file string) {
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[:i], url[i+1:]
	}
	return "", url
}

// AddBaseURL rewrites every link/image URL that begins with a single "/"
// (root-relative) by prepending baseurl, stripped of its own trailing
// slash. URLs already starting with baseurl+"/" (or exactly equal to it),
// scheme-relative ("//…"), absolute ("http://", "https://"), fragment-only
// ("#…"), or otherwise relative are left untouched. Idempotent: a URL that
// already carries the prefix is recognized and skipped on a second pass.
func AddBaseURL(root *ast.Node, baseurl string) *ast.Node {
	base := strings.TrimSuffix(baseurl, "/")
	if base == "" {
		return root.Clone()
	}
	return TransformLinks(root, func(url string) string {
		return AddBaseURLToURL(url, base)
	})
}

// AddBaseURLToURL applies the single-URL rewrite AddBaseURL uses to every
// Link/Image node; exported so pkg/posttransform's string-level fallback can
// share the exact same rule instead of re-deriving it.
func AddBaseURLToURL(url, base string) string {
	if !strings.HasPrefix(url, "/") || strings.HasPrefix(url, "//") {
		return url
	}
	if url == base || strings.HasPrefix(url, base+"/") {
		return url
	}
	return base + url
}
