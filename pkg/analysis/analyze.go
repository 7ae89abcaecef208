// Package analysis implements the content-intelligence analyzer: a
// read-only pass over a site's discovered pages that produces an advisory
// report (tab-set candidates, accessibility warnings, prefetch-eagerness
// recommendations). Structurally grounded on the teacher's own
// pkg/analysis: an Options struct, a single-pass accumulator, a Report
// value, and sorted output slices — recomputed here for content-intelligence
// checks instead of lint-diagnostic rollups.
package analysis

import (
	"cmp"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/bengalssg/bengal/pkg/ast"
)

// Page is one discovered, parsed page fed into Analyze.
type Page struct {
	// Path identifies the page, typically its source-relative path.
	Path string
	// Section is the top-level site section the page belongs to (e.g. the
	// first path segment); used for the prefetch-eagerness recommendation.
	Section string
	// Root is the page's parsed AST, used for the tab-set-candidate and
	// heading-skip checks. May be nil if only HTML is available.
	Root *ast.Node
	// HTML is the page's rendered output, used for the missing-alt check
	// (which is inherently an HTML-attribute concern, not an AST one: a
	// Markdown image always carries an alt string, possibly empty, while
	// raw <img> tags can omit the attribute entirely).
	HTML string
}

var imgTagRe = regexp.MustCompile(`<img\b[^>]*>`)
var altAttrRe = regexp.MustCompile(`\balt\s*=`)

func makeRelativePath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// analysisContext accumulates per-pass state, mirroring the shape of the
// teacher's own analysisContext: small, single-purpose accumulators built
// up in one traversal and flattened into the Report at the end.
type analysisContext struct {
	tabSetCandidates []TabSetCandidate
	warnings         []Warning
	sectionCounts    map[string]int
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{sectionCounts: make(map[string]int)}
}

// Analyze runs every content-intelligence check over pages in a single pass
// per page and returns the aggregate report.
func Analyze(pages []Page, opts Options) *Report {
	report := &Report{Version: ReportVersion, Timestamp: time.Now()}
	ctx := newAnalysisContext()

	for _, page := range pages {
		displayPath := makeRelativePath(page.Path, opts.WorkingDir)

		if page.Section != "" {
			ctx.sectionCounts[page.Section]++
		}

		if page.Root != nil {
			analyzeCodeBlocks(ctx, displayPath, page.Root)
			analyzeHeadingSkip(ctx, displayPath, page.Root)
		}
		if page.HTML != "" {
			analyzeMissingAlt(ctx, displayPath, page.HTML)
		}
	}

	report.TabSetCandidates = ctx.tabSetCandidates
	report.Warnings = ctx.warnings

	topN := opts.TopSections
	if topN <= 0 {
		topN = 5
	}
	report.SectionPrefetch = buildSectionPrefetch(ctx.sectionCounts, topN)

	return report
}

// analyzeCodeBlocks flags a page as a tab-set candidate if it has at least
// three fenced code blocks spanning at least two distinct languages.
func analyzeCodeBlocks(ctx *analysisContext, path string, root *ast.Node) {
	var blocks int
	langs := make(map[string]struct{})
	_ = ast.Walk(root, func(n *ast.Node) error {
		if n.Kind != ast.NodeCodeBlock {
			return nil
		}
		blocks++
		if lang := strings.ToLower(strings.TrimSpace(n.Info)); lang != "" {
			langs[lang] = struct{}{}
		}
		return nil
	})

	if blocks >= 3 && len(langs) >= 2 {
		sorted := make([]string, 0, len(langs))
		for lang := range langs {
			sorted = append(sorted, lang)
		}
		slices.Sort(sorted)
		ctx.tabSetCandidates = append(ctx.tabSetCandidates, TabSetCandidate{
			Path:      path,
			Blocks:    blocks,
			Languages: sorted,
		})
	}
}

// analyzeHeadingSkip emits at most one warning per page for the first
// heading-level jump of more than one (e.g. h2 directly followed by h4).
func analyzeHeadingSkip(ctx *analysisContext, path string, root *ast.Node) {
	prevLevel := 0
	flagged := false
	_ = ast.Walk(root, func(n *ast.Node) error {
		if flagged || n.Kind != ast.NodeHeading {
			return nil
		}
		if prevLevel > 0 && n.Level > prevLevel+1 {
			ctx.warnings = append(ctx.warnings, Warning{
				Path:    path,
				Kind:    WarningHeadingSkip,
				Message: fmt.Sprintf("heading level jumps from h%d to h%d", prevLevel, n.Level),
			})
			flagged = true
		}
		prevLevel = n.Level
		return nil
	})
}

// analyzeMissingAlt emits at most one warning per page if any <img> tag in
// the rendered HTML has no alt attribute at all. An explicit alt="" is not
// flagged — only full omission is.
func analyzeMissingAlt(ctx *analysisContext, path, html string) {
	for _, tag := range imgTagRe.FindAllString(html, -1) {
		if !altAttrRe.MatchString(tag) {
			ctx.warnings = append(ctx.warnings, Warning{
				Path:    path,
				Kind:    WarningMissingAlt,
				Message: "image is missing an alt attribute",
			})
			return
		}
	}
}

// buildSectionPrefetch ranks sections by page count (descending, ties
// broken alphabetically for determinism) and assigns an eagerness
// recommendation to the top N.
func buildSectionPrefetch(counts map[string]int, topN int) []SectionPrefetch {
	sections := make([]string, 0, len(counts))
	for section := range counts {
		sections = append(sections, section)
	}
	slices.SortFunc(sections, func(a, b string) int {
		if result := cmp.Compare(counts[b], counts[a]); result != 0 {
			return result
		}
		return cmp.Compare(a, b)
	})

	if len(sections) > topN {
		sections = sections[:topN]
	}

	out := make([]SectionPrefetch, 0, len(sections))
	for _, section := range sections {
		count := counts[section]
		out = append(out, SectionPrefetch{
			Section:   section,
			PageCount: count,
			Eagerness: eagernessForCount(count),
		})
	}
	return out
}
