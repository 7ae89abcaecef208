package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bengalssg/bengal/pkg/cache"
)

func TestGetParsedContentHitThenMissOnEdit(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "page.md", "# Hello")
	metadata := map[string]interface{}{"title": "Hello"}

	c := cache.New()
	require.NoError(t, c.UpdateFile(path))
	require.NoError(t, c.StoreParsedContent(path, "<h1>Hello</h1>", "", nil, metadata, "page.html", "v1", nil))

	entry, ok := c.GetParsedContent(path, metadata, "page.html", "v1")
	require.True(t, ok)
	assert.Equal(t, "<h1>Hello</h1>", entry.HTML)

	require.NoError(t, os.WriteFile(path, []byte("# Hello, edited"), 0644))
	_, ok = c.GetParsedContent(path, metadata, "page.html", "v1")
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("# Hello"), 0644))
	require.NoError(t, c.UpdateFile(path))
	entry, ok = c.GetParsedContent(path, metadata, "page.html", "v1")
	require.True(t, ok)
	assert.Equal(t, "<h1>Hello</h1>", entry.HTML)

	template, err := os.Create(filepath.Join(dir, "page.html"))
	require.NoError(t, err)
	require.NoError(t, template.Close())
	c.AddDependency(path, template.Name())
	require.NoError(t, c.UpdateFile(template.Name()))

	_, ok = c.GetParsedContent(path, metadata, "page.html", "v1")
	require.True(t, ok, "dependency recorded but unchanged should still hit")

	require.NoError(t, os.WriteFile(template.Name(), []byte("changed"), 0644))
	_, ok = c.GetParsedContent(path, metadata, "page.html", "v1")
	assert.False(t, ok, "changed template dependency should miss")
}

func TestGetParsedContentMissesOnMetadataChange(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "page.md", "# Hello")

	c := cache.New()
	require.NoError(t, c.UpdateFile(path))
	require.NoError(t, c.StoreParsedContent(path, "<h1>Hello</h1>", "", nil, map[string]interface{}{"title": "Hello"}, "page.html", "v1", nil))

	_, ok := c.GetParsedContent(path, map[string]interface{}{"title": "Different"}, "page.html", "v1")
	assert.False(t, ok)
}

func TestGetParsedContentMissesOnTemplateOrParserVersionChange(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "page.md", "# Hello")
	metadata := map[string]interface{}{"title": "Hello"}

	c := cache.New()
	require.NoError(t, c.UpdateFile(path))
	require.NoError(t, c.StoreParsedContent(path, "<h1>Hello</h1>", "", nil, metadata, "page.html", "v1", nil))

	_, ok := c.GetParsedContent(path, metadata, "other.html", "v1")
	assert.False(t, ok)

	_, ok = c.GetParsedContent(path, metadata, "page.html", "v2")
	assert.False(t, ok)
}

func TestCacheValidationResultsInvalidatedOnChange(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "page.md", "content")

	c := cache.New()
	require.NoError(t, c.UpdateFile(path))
	c.CacheValidationResults(path, "links", []cache.CheckResult{{Passed: true}})

	results, ok := c.GetCachedValidationResults(path, "links")
	require.True(t, ok)
	assert.Len(t, results, 1)

	require.NoError(t, os.WriteFile(path, []byte("edited"), 0644))
	_, ok = c.GetCachedValidationResults(path, "links")
	assert.False(t, ok)
}

func TestExplainCacheDecision(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "page.md", "content")

	c := cache.New()
	assert.Equal(t, "miss: no cached entry", c.ExplainCacheDecision(path))

	require.NoError(t, c.UpdateFile(path))
	require.NoError(t, c.StoreParsedContent(path, "html", "", nil, nil, "t", "v1", nil))
	assert.Equal(t, "hit: unchanged", c.ExplainCacheDecision(path))

	require.NoError(t, os.WriteFile(path, []byte("edited"), 0644))
	assert.Equal(t, "miss: file changed", c.ExplainCacheDecision(path))
}
