package directive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bengalssg/bengal/pkg/directive"
)

func TestScanFencesPlainTextHasNoBlocks(t *testing.T) {
	doc, diags := directive.ScanFences("just some text\n\nmore text")
	assert.Empty(t, diags)
	require.Len(t, doc.Root.Segments, 1)
	assert.Nil(t, doc.Root.Segments[0].Block)
}

func TestScanFencesSimpleDirective(t *testing.T) {
	src := ":::{note} A title\n:icon: info\nbody text\n:::\n"
	doc, diags := directive.ScanFences(src)
	assert.Empty(t, diags)

	require.Len(t, doc.Root.Segments, 1)
	blk := doc.Root.Segments[0].Block
	require.NotNil(t, blk)
	assert.Equal(t, "note", blk.Name)
	assert.Equal(t, "A title", blk.Title)
	require.Len(t, blk.Options, 1)
	assert.Equal(t, "icon", blk.Options[0].Key)
	assert.Equal(t, "info", blk.Options[0].Value)
	require.Len(t, blk.Segments, 1)
	assert.Equal(t, "body text", blk.Segments[0].Text)
}

func TestScanFencesNestedDirectives(t *testing.T) {
	src := ":::{tabs}\n::::{tab-item} one\ncontent\n::::\n:::\n"
	doc, diags := directive.ScanFences(src)
	assert.Empty(t, diags)

	outer := doc.Root.Segments[0].Block
	require.NotNil(t, outer)
	assert.Equal(t, "tabs", outer.Name)
	require.Len(t, outer.Segments, 1)
	inner := outer.Segments[0].Block
	require.NotNil(t, inner)
	assert.Equal(t, "tab-item", inner.Name)
}

func TestScanFencesNamedCloser(t *testing.T) {
	src := ":::{note}\nbody\n:::{/note}\n"
	doc, diags := directive.ScanFences(src)
	assert.Empty(t, diags)
	require.Len(t, doc.Root.Segments, 1)
	assert.Equal(t, "note", doc.Root.Segments[0].Block.Name)
}

func TestScanFencesNamedCloserMismatchEmitsError(t *testing.T) {
	src := ":::{note}\nbody\n:::{/other}\n"
	_, diags := directive.ScanFences(src)
	require.Len(t, diags, 2)
	assert.Contains(t, diags[0].Message, "does not match any open directive")
	assert.Contains(t, diags[1].Message, "unclosed directive")
}

func TestScanFencesUnclosedDirectiveEmitsError(t *testing.T) {
	src := ":::{note}\nbody\n"
	_, diags := directive.ScanFences(src)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "unclosed directive")
}

func TestScanFencesStrayCloserEmitsError(t *testing.T) {
	src := "text\n:::\nmore text\n"
	_, diags := directive.ScanFences(src)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "stray directive closer")
}

func TestScanFencesIgnoresColonsInsideCodeFence(t *testing.T) {
	src := "```\n:::{note}\nnot a directive\n```\n"
	doc, diags := directive.ScanFences(src)
	assert.Empty(t, diags)
	require.Len(t, doc.Root.Segments, 1)
	assert.Nil(t, doc.Root.Segments[0].Block)
	assert.Contains(t, doc.Root.Segments[0].Text, ":::{note}")
}

func TestScanFencesShortCloserEmitsError(t *testing.T) {
	src := "::::{note}\nbody\n:::\n"
	_, diags := directive.ScanFences(src)
	require.Len(t, diags, 2)
	assert.Contains(t, diags[0].Message, "too short")
	assert.Contains(t, diags[1].Message, "unclosed directive")
}
