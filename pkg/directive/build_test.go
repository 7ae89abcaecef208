package directive_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bengalssg/bengal/pkg/ast"
	"github.com/bengalssg/bengal/pkg/diagnostic"
	"github.com/bengalssg/bengal/pkg/directive"
)

func echoParseMD(source string) []*ast.Node {
	if source == "" {
		return nil
	}
	return []*ast.Node{ast.NewText(source, ast.Position{})}
}

func TestBuildDispatchesToRegisteredClass(t *testing.T) {
	reg := directive.NewRegistry()
	var gotChildren int
	reg.Register(&stubClass{
		names: []string{"note"},
		render: func(rc *directive.RenderContext) (*ast.Node, error) {
			gotChildren = len(rc.Children)
			return ast.NewRawHTML("<div class=\"note\"></div>", rc.Location), nil
		},
	})

	doc, diags := directive.ScanFences(":::{note} Heads up\nbody text\n:::\n")
	require.Empty(t, diags)

	var builder diagnostic.Builder
	nodes := directive.Build(doc, reg, echoParseMD, &builder, nil)

	require.Len(t, nodes, 1)
	assert.Equal(t, ast.NodeRawHTML, nodes[0].Kind)
	assert.Equal(t, 1, gotChildren)
	assert.Empty(t, builder.Items())
}

func TestBuildUnknownDirectiveFallsBackInline(t *testing.T) {
	reg := directive.NewRegistry()
	doc, diags := directive.ScanFences(":::{mystery}\nbody\n:::\n")
	require.Empty(t, diags)

	var builder diagnostic.Builder
	nodes := directive.Build(doc, reg, echoParseMD, &builder, nil)

	require.Len(t, nodes, 1)
	assert.Equal(t, ast.NodeText, nodes[0].Kind)
	items := builder.Items()
	if assert.Len(t, items, 1) {
		assert.Contains(t, items[0].Message, "unknown directive")
	}
}

func TestBuildRequiredParentViolationWarns(t *testing.T) {
	reg := directive.NewRegistry()
	reg.Register(&stubClass{
		names:    []string{"tab-item"},
		contract: &directive.Contract{RequiredParent: "tabs"},
	})

	doc, diags := directive.ScanFences(":::{tab-item}\nbody\n:::\n")
	require.Empty(t, diags)

	var builder diagnostic.Builder
	directive.Build(doc, reg, echoParseMD, &builder, nil)

	items := builder.Items()
	require.Len(t, items, 1)
	assert.Contains(t, items[0].Message, "expects parent")
}

func TestBuildRequiredOptionsViolationWarns(t *testing.T) {
	reg := directive.NewRegistry()
	reg.Register(&stubClass{
		names:    []string{"card"},
		contract: &directive.Contract{RequiredOptions: []string{"title"}},
	})

	doc, diags := directive.ScanFences(":::{card}\nbody\n:::\n")
	require.Empty(t, diags)

	var builder diagnostic.Builder
	directive.Build(doc, reg, echoParseMD, &builder, nil)

	items := builder.Items()
	require.Len(t, items, 1)
	assert.Contains(t, items[0].Message, "missing required option")
}

func TestBuildRenderErrorFallsBackToRawHTMLErrorNode(t *testing.T) {
	reg := directive.NewRegistry()
	reg.Register(&stubClass{
		names: []string{"broken"},
		render: func(rc *directive.RenderContext) (*ast.Node, error) {
			return nil, errors.New("boom")
		},
	})

	doc, diags := directive.ScanFences(":::{broken}\nbody\n:::\n")
	require.Empty(t, diags)

	var builder diagnostic.Builder
	nodes := directive.Build(doc, reg, echoParseMD, &builder, nil)

	require.Len(t, nodes, 1)
	assert.Equal(t, ast.NodeRawHTML, nodes[0].Kind)
	assert.Contains(t, nodes[0].HTML, "directive-error")
	assert.Contains(t, nodes[0].HTML, "boom")

	items := builder.Items()
	require.Len(t, items, 1)
	assert.Equal(t, diagnostic.SeverityError, items[0].Severity)
}
