package cache_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bengalssg/bengal/pkg/cache"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestIsChangedOnUntrackedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "a.md", "hello")

	c := cache.New()
	assert.True(t, c.IsChanged(path))
}

func TestUpdateFileThenUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "a.md", "hello")

	c := cache.New()
	require.NoError(t, c.UpdateFile(path))
	assert.False(t, c.IsChanged(path))

	require.NoError(t, os.WriteFile(path, []byte("hello, edited"), 0644))
	assert.True(t, c.IsChanged(path))
}

func TestGetAffectedPagesIncludesChangedAndDependents(t *testing.T) {
	c := cache.New()
	c.AddDependency("page-a.md", "base.html")
	c.AddDependency("page-b.md", "base.html")
	c.AddDependency("page-c.md", "other.html")

	affected := c.GetAffectedPages([]string{"base.html"})
	assert.ElementsMatch(t, []string{"base.html", "page-a.md", "page-b.md"}, affected)
}

func TestUpdatePageTagsBidirectionality(t *testing.T) {
	c := cache.New()

	affected := c.UpdatePageTags("guides/intro.md", []string{"Getting Started", "CLI"})
	assert.ElementsMatch(t, []string{"getting-started", "cli"}, affected)
	assert.ElementsMatch(t, []string{"guides/intro.md"}, c.PagesForTag("cli"))
	assert.ElementsMatch(t, []string{"cli", "getting-started"}, c.KnownTags())

	// Unchanged tags still count as affected; "CLI" dropped, "API" added.
	affected = c.UpdatePageTags("guides/intro.md", []string{"Getting Started", "API"})
	assert.ElementsMatch(t, []string{"getting-started", "cli", "api"}, affected)
	assert.Empty(t, c.PagesForTag("cli"))
	assert.ElementsMatch(t, []string{"api", "getting-started"}, c.KnownTags())
}

func TestUpdatePageTagsRemovingAllTagsPrunesPage(t *testing.T) {
	c := cache.New()
	c.UpdatePageTags("p.md", []string{"x"})
	c.UpdatePageTags("p.md", nil)

	assert.Empty(t, c.PagesForTag("x"))
	assert.Empty(t, c.KnownTags())
}

func TestValidateConfigFirstObservation(t *testing.T) {
	c := cache.New()
	assert.True(t, c.ValidateConfig("hash-a"))
	assert.True(t, c.ValidateConfig("hash-a"))
}

func TestValidateConfigMismatchClearsCache(t *testing.T) {
	c := cache.New()
	c.ValidateConfig("hash-a")
	c.AddDependency("x.md", "base.html")
	c.UpdatePageTags("x.md", []string{"tag"})

	assert.False(t, c.ValidateConfig("hash-b"))
	assert.Empty(t, c.Dependencies("x.md"))
	assert.Empty(t, c.KnownTags())

	// Subsequent call with the same (now current) hash is a silent match.
	assert.True(t, c.ValidateConfig("hash-b"))
}

func TestInvalidateFileDropsFingerprintAndParsedContent(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "a.md", "hello")

	c := cache.New()
	require.NoError(t, c.UpdateFile(path))
	require.NoError(t, c.StoreParsedContent(path, "<p>hi</p>", "", nil, nil, "page.html", "v1", nil))

	c.InvalidateFile(path)
	assert.True(t, c.IsChanged(path))
	_, ok := c.GetParsedContent(path, nil, "page.html", "v1")
	assert.False(t, ok)
}

func TestClearResetsEverything(t *testing.T) {
	c := cache.New()
	c.ValidateConfig("hash-a")
	c.AddDependency("x.md", "base.html")
	c.SetLastBuild(time.Now())

	c.Clear()
	assert.Empty(t, c.Dependencies("x.md"))
	_, ok := c.LastBuild()
	assert.False(t, ok)
}
