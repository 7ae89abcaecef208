package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bengalssg/bengal/pkg/analysis"
	"github.com/bengalssg/bengal/pkg/ast"
)

func pos() ast.Position { return ast.Position{} }

func codeBlock(info string) *ast.Node {
	return ast.NewCodeBlock(info, "code", pos())
}

func heading(level int) *ast.Node {
	n := ast.NewNode(ast.NodeHeading, pos())
	n.Level = level
	return n
}

func appendChild(root *ast.Node, children ...*ast.Node) *ast.Node {
	for _, c := range children {
		root.AppendChild(c)
	}
	return root
}

func TestAnalyzeFlagsTabSetCandidate(t *testing.T) {
	root := appendChild(ast.NewNode(ast.NodeDocument, pos()),
		codeBlock("go"), codeBlock("python"), codeBlock("go"))

	report := analysis.Analyze([]analysis.Page{{Path: "guide.md", Root: root}}, analysis.DefaultOptions())

	assert.Len(t, report.TabSetCandidates, 1)
	assert.Equal(t, "guide.md", report.TabSetCandidates[0].Path)
	assert.Equal(t, 3, report.TabSetCandidates[0].Blocks)
	assert.ElementsMatch(t, []string{"go", "python"}, report.TabSetCandidates[0].Languages)
}

func TestAnalyzeDoesNotFlagSingleLanguage(t *testing.T) {
	root := appendChild(ast.NewNode(ast.NodeDocument, pos()),
		codeBlock("go"), codeBlock("go"), codeBlock("go"), codeBlock("go"))

	report := analysis.Analyze([]analysis.Page{{Path: "guide.md", Root: root}}, analysis.DefaultOptions())
	assert.Empty(t, report.TabSetCandidates)
}

func TestAnalyzeDoesNotFlagTooFewBlocks(t *testing.T) {
	root := appendChild(ast.NewNode(ast.NodeDocument, pos()), codeBlock("go"), codeBlock("python"))

	report := analysis.Analyze([]analysis.Page{{Path: "guide.md", Root: root}}, analysis.DefaultOptions())
	assert.Empty(t, report.TabSetCandidates)
}

func TestAnalyzeHeadingSkipFlagsOncePerPage(t *testing.T) {
	root := appendChild(ast.NewNode(ast.NodeDocument, pos()),
		heading(1), heading(2), heading(4), heading(2), heading(5))

	report := analysis.Analyze([]analysis.Page{{Path: "p.md", Root: root}}, analysis.DefaultOptions())

	require := assert.New(t)
	require.Len(report.Warnings, 1)
	require.Equal(analysis.WarningHeadingSkip, report.Warnings[0].Kind)
	require.Equal("p.md", report.Warnings[0].Path)
}

func TestAnalyzeHeadingSkipToleratesSequentialLevels(t *testing.T) {
	root := appendChild(ast.NewNode(ast.NodeDocument, pos()), heading(1), heading(2), heading(3))

	report := analysis.Analyze([]analysis.Page{{Path: "p.md", Root: root}}, analysis.DefaultOptions())
	assert.Empty(t, report.Warnings)
}

func TestAnalyzeMissingAltFlagsOmittedAttribute(t *testing.T) {
	report := analysis.Analyze([]analysis.Page{
		{Path: "p.md", HTML: `<p><img src="a.png"></p>`},
	}, analysis.DefaultOptions())

	assert.Len(t, report.Warnings, 1)
	assert.Equal(t, analysis.WarningMissingAlt, report.Warnings[0].Kind)
}

func TestAnalyzeMissingAltDoesNotFlagExplicitEmptyAlt(t *testing.T) {
	report := analysis.Analyze([]analysis.Page{
		{Path: "p.md", HTML: `<p><img src="a.png" alt=""></p>`},
	}, analysis.DefaultOptions())

	assert.Empty(t, report.Warnings)
}

func TestAnalyzeMissingAltFlagsOnlyOncePerPage(t *testing.T) {
	report := analysis.Analyze([]analysis.Page{
		{Path: "p.md", HTML: `<img src="a.png"><img src="b.png">`},
	}, analysis.DefaultOptions())

	assert.Len(t, report.Warnings, 1)
}

func TestAnalyzeSectionPrefetchEagerness(t *testing.T) {
	var pages []analysis.Page
	for i := 0; i < 12; i++ {
		pages = append(pages, analysis.Page{Path: "x", Section: "guides"})
	}
	for i := 0; i < 6; i++ {
		pages = append(pages, analysis.Page{Path: "x", Section: "reference"})
	}
	pages = append(pages, analysis.Page{Path: "x", Section: "blog"})

	report := analysis.Analyze(pages, analysis.DefaultOptions())
	require := assert.New(t)
	require.Len(report.SectionPrefetch, 3)
	require.Equal("guides", report.SectionPrefetch[0].Section)
	require.Equal(analysis.EagernessEager, report.SectionPrefetch[0].Eagerness)
	require.Equal("reference", report.SectionPrefetch[1].Section)
	require.Equal(analysis.EagernessModerate, report.SectionPrefetch[1].Eagerness)
	require.Equal("blog", report.SectionPrefetch[2].Section)
	require.Equal(analysis.EagernessConservative, report.SectionPrefetch[2].Eagerness)
}

func TestAnalyzeSectionPrefetchCapsAtTopN(t *testing.T) {
	var pages []analysis.Page
	for i := 0; i < 6; i++ {
		pages = append(pages, analysis.Page{Path: "x", Section: string(rune('a' + i))})
	}
	report := analysis.Analyze(pages, analysis.Options{TopSections: 5})
	assert.Len(t, report.SectionPrefetch, 5)
}
