package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bengalssg/bengal/pkg/cache"
)

func TestLoadMissingFileReturnsEmptyCache(t *testing.T) {
	dir := t.TempDir()
	c := cache.Load(filepath.Join(dir, "missing.json"), nil)
	require.NotNil(t, c)
	assert.Equal(t, cache.CurrentSchemaVersion, c.Version())
}

func TestLoadUnparseableFileReturnsEmptyCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	c := cache.Load(path, nil)
	require.NotNil(t, c)
	assert.Equal(t, cache.CurrentSchemaVersion, c.Version())
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")

	c := cache.New()
	c.ValidateConfig("hash-a")
	c.AddDependency("page.md", "base.html")
	c.AddTaxonomyDependency("tutorials", "page.md")
	c.UpdatePageTags("page.md", []string{"Go", "CLI"})
	require.NoError(t, c.StoreParsedContent("page.md", "<p>hi</p>", "<ul></ul>", []cache.TocItem{{Title: "Hi", Slug: "hi", Level: 1}}, map[string]interface{}{"k": "v"}, "page.html", "v1", nil))
	src := filepath.Join(dir, "page.md")
	require.NoError(t, os.WriteFile(src, []byte("# Hi\n"), 0644))
	require.NoError(t, c.UpdateFile(src))
	c.CacheValidationResults(src, "links", []cache.CheckResult{{Passed: true}})

	require.NoError(t, c.Save(path))

	loaded := cache.Load(path, nil)
	assert.Equal(t, cache.CurrentSchemaVersion, loaded.Version())
	assert.ElementsMatch(t, []string{"base.html"}, loaded.Dependencies("page.md"))
	assert.ElementsMatch(t, []string{"page.md"}, loaded.PagesForTag("go"))
	assert.ElementsMatch(t, []string{"cli", "go"}, loaded.KnownTags())

	results, ok := loaded.GetCachedValidationResults(src, "links")
	require.True(t, ok)
	assert.Len(t, results, 1)

	// Config hash persisted: validating with the same hash again is silent.
	assert.True(t, loaded.ValidateConfig("hash-a"))
}

func TestLoadHigherSchemaVersionLoadsBestEffort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"version": 999,
		"file_fingerprints": {"a.md": {"hash": "abc", "mtime": 1.0, "size": 5}},
		"known_tags": ["go"]
	}`), 0644))

	c := cache.Load(path, nil)
	assert.Equal(t, cache.CurrentSchemaVersion, c.Version())
	assert.ElementsMatch(t, []string{"go"}, c.KnownTags())
}

func TestLoadMissingVersionFieldIsPreVersioned(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"known_tags": ["go"]}`), 0644))

	c := cache.Load(path, nil)
	assert.Equal(t, cache.CurrentSchemaVersion, c.Version())
	assert.ElementsMatch(t, []string{"go"}, c.KnownTags())
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "cache.json")

	c := cache.New()
	require.NoError(t, c.Save(path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadNoLockDoesNotRequireLockFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")

	c := cache.New()
	require.NoError(t, c.Save(path))

	loaded := cache.LoadNoLock(path, nil)
	assert.Equal(t, cache.CurrentSchemaVersion, loaded.Version())
}
