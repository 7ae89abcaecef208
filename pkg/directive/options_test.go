package directive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bengalssg/bengal/pkg/ast"
	"github.com/bengalssg/bengal/pkg/diagnostic"
	"github.com/bengalssg/bengal/pkg/directive"
)

func TestCoerceKnownFieldsByType(t *testing.T) {
	schema := directive.OptionsSchema{
		Fields: map[string]directive.FieldType{
			"collapsible": directive.FieldBool,
			"depth":       directive.FieldInt,
			"ratio":       directive.FieldFloat,
			"tags":        directive.FieldList,
			"title":       directive.FieldString,
		},
	}
	raw := []directive.OptionLine{
		{Key: "collapsible", Value: "true"},
		{Key: "depth", Value: "3"},
		{Key: "ratio", Value: "1.5"},
		{Key: "tags", Value: "a, b, c"},
		{Key: "title", Value: "hello"},
	}
	var diags diagnostic.Builder
	out := directive.Coerce("directive:test", raw, schema, ast.Position{Line: 1}, &diags)

	assert.Empty(t, diags.Items())
	assert.Equal(t, true, out["collapsible"])
	assert.Equal(t, 3, out["depth"])
	assert.Equal(t, 1.5, out["ratio"])
	assert.Equal(t, []string{"a", "b", "c"}, out["tags"])
	assert.Equal(t, "hello", out["title"])
}

func TestCoerceUnknownKeyDroppedWithWarning(t *testing.T) {
	schema := directive.OptionsSchema{Fields: map[string]directive.FieldType{"icon": directive.FieldString}}
	raw := []directive.OptionLine{{Key: "bogus", Value: "x"}}
	var diags diagnostic.Builder
	out := directive.Coerce("directive:test", raw, schema, ast.Position{Line: 1}, &diags)

	assert.NotContains(t, out, "bogus")
	items := diags.Items()
	if assert.Len(t, items, 1) {
		assert.Equal(t, diagnostic.SeverityWarning, items[0].Severity)
		assert.Contains(t, items[0].Message, "unknown directive option")
	}
}

func TestCoerceInvalidValueFallsBackToDefault(t *testing.T) {
	schema := directive.OptionsSchema{
		Fields:   map[string]directive.FieldType{"depth": directive.FieldInt},
		Defaults: map[string]any{"depth": 2},
	}
	raw := []directive.OptionLine{{Key: "depth", Value: "not-a-number"}}
	var diags diagnostic.Builder
	out := directive.Coerce("directive:test", raw, schema, ast.Position{Line: 1}, &diags)

	assert.Equal(t, 2, out["depth"])
	items := diags.Items()
	if assert.Len(t, items, 1) {
		assert.Equal(t, diagnostic.SeverityWarning, items[0].Severity)
		assert.Contains(t, items[0].Message, "invalid value")
	}
}

func TestCoerceInvalidValueWithNoDefaultOmitsKey(t *testing.T) {
	schema := directive.OptionsSchema{Fields: map[string]directive.FieldType{"depth": directive.FieldInt}}
	raw := []directive.OptionLine{{Key: "depth", Value: "nope"}}
	var diags diagnostic.Builder
	out := directive.Coerce("directive:test", raw, schema, ast.Position{Line: 1}, &diags)

	assert.NotContains(t, out, "depth")
	assert.Len(t, diags.Items(), 1)
}

func TestCoerceDefaultsBackfillUnsetKeys(t *testing.T) {
	schema := directive.OptionsSchema{
		Fields:   map[string]directive.FieldType{"icon": directive.FieldString, "depth": directive.FieldInt},
		Defaults: map[string]any{"icon": "info", "depth": 1},
	}
	var diags diagnostic.Builder
	out := directive.Coerce("directive:test", nil, schema, ast.Position{Line: 1}, &diags)

	assert.Empty(t, diags.Items())
	assert.Equal(t, "info", out["icon"])
	assert.Equal(t, 1, out["depth"])
}

func TestCoerceBoolAcceptsCommonSpellings(t *testing.T) {
	schema := directive.OptionsSchema{Fields: map[string]directive.FieldType{"open": directive.FieldBool}}
	for _, tc := range []struct {
		value string
		want  bool
	}{
		{"true", true}, {"1", true}, {"yes", true}, {"", true},
		{"false", false}, {"0", false}, {"no", false},
	} {
		var diags diagnostic.Builder
		out := directive.Coerce("directive:test", []directive.OptionLine{{Key: "open", Value: tc.value}}, schema, ast.Position{}, &diags)
		assert.Equal(t, tc.want, out["open"], "value %q", tc.value)
		assert.Empty(t, diags.Items(), "value %q", tc.value)
	}
}
