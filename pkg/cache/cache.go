// Package cache implements the build cache: a JSON-persisted record of file
// fingerprints, dependency graphs, the tag taxonomy index, and rendered-page
// output, guarded by a sync.RWMutex exactly like the teacher's
// pkg/lint.Registry. Persistence goes through pkg/lock for advisory
// cross-process locking and atomic writes.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bengalssg/bengal/pkg/logging"
)

// CurrentSchemaVersion is the schema version this package writes. Loaders
// accept older and newer versions on a best-effort basis — see persist.go.
const CurrentSchemaVersion uint32 = 4

// FileFingerprint records a tracked file's last-known content hash, mtime,
// and size.
type FileFingerprint struct {
	Hash  string  `json:"hash"`
	Mtime float64 `json:"mtime"`
	Size  uint64  `json:"size"`
}

// TocItem is one entry of a rendered page's table of contents.
type TocItem struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Level int    `json:"level"`
}

// ParsedContentEntry is a cached render of one page.
type ParsedContentEntry struct {
	HTML          string          `json:"html"`
	TocHTML       string          `json:"toc"`
	TocItems      []TocItem       `json:"toc_items"`
	AST           json.RawMessage `json:"ast,omitempty"`
	MetadataHash  string          `json:"metadata_hash"`
	TemplateName  string          `json:"template"`
	ParserVersion string          `json:"parser_version"`
	Timestamp     string          `json:"timestamp"`
	SizeBytes     uint64          `json:"size_bytes"`
}

// CheckResult is one validator's verdict on one file, as cached by
// CacheValidationResults.
type CheckResult struct {
	Passed   bool   `json:"passed"`
	Message  string `json:"message,omitempty"`
	Severity string `json:"severity,omitempty"`
}

// BuildCache is the in-memory, lockable build cache. Zero value is not
// usable; construct with New or Load.
type BuildCache struct {
	mu sync.RWMutex

	log     *logging.Logger
	Locking bool

	version             uint32
	fileFingerprints    map[string]FileFingerprint
	dependencies        map[string]stringSet
	taxonomyDeps        map[string]stringSet
	pageTags            map[string]stringSet
	tagToPages          map[string]stringSet
	knownTags           stringSet
	autodocDependencies map[string]stringSet
	parsedContent       map[string]ParsedContentEntry
	validationResults   map[string]map[string][]CheckResult
	syntheticPages      map[string]json.RawMessage
	configHash          *string
	lastBuild           *string
}

// New returns an empty build cache at the current schema version, with
// locking enabled.
func New() *BuildCache {
	return &BuildCache{
		log:                 logging.Default(),
		Locking:             true,
		version:             CurrentSchemaVersion,
		fileFingerprints:    make(map[string]FileFingerprint),
		dependencies:        make(map[string]stringSet),
		taxonomyDeps:        make(map[string]stringSet),
		pageTags:            make(map[string]stringSet),
		tagToPages:          make(map[string]stringSet),
		knownTags:           newStringSet(),
		autodocDependencies: make(map[string]stringSet),
		parsedContent:       make(map[string]ParsedContentEntry),
		validationResults:   make(map[string]map[string][]CheckResult),
		syntheticPages:      make(map[string]json.RawMessage),
	}
}

// SetLogger overrides the logger used for warnings emitted during Load/Save.
// Load sets it from its log argument; callers that build a cache with New
// (such as bengalfmt's --no-cache path) use SetLogger to attach one.
func (c *BuildCache) SetLogger(log *logging.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = log
}

func (c *BuildCache) logger() *logging.Logger {
	if c.log != nil {
		return c.log
	}
	return logging.Default()
}

// Version reports the cache's schema version.
func (c *BuildCache) Version() uint32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// IsChanged reports whether path is missing from the fingerprint map, or
// its recomputed hash differs from the stored one. An unreadable file is
// always reported changed.
func (c *BuildCache) IsChanged(path string) bool {
	hash := HashFile(path)
	c.mu.RLock()
	fp, ok := c.fileFingerprints[path]
	c.mu.RUnlock()
	if !ok || hash == "" {
		return true
	}
	return fp.Hash != hash
}

// UpdateFile writes or overwrites path's fingerprint from its current
// on-disk content. Returns an error only if path cannot be stat'd; a
// hashing failure is tolerated (stored hash becomes "", which IsChanged
// will always treat as changed).
func (c *BuildCache) UpdateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cache: update file %q: %w", path, err)
	}
	hash := HashFile(path)
	c.mu.Lock()
	c.fileFingerprints[path] = FileFingerprint{
		Hash:  hash,
		Mtime: float64(info.ModTime().UnixNano()) / 1e9,
		Size:  uint64(info.Size()),
	}
	c.mu.Unlock()
	return nil
}

// AddDependency records that source depends on dep (a template, include, or
// data file).
func (c *BuildCache) AddDependency(source, dep string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dependencies[source] == nil {
		c.dependencies[source] = newStringSet()
	}
	c.dependencies[source].add(dep)
}

// Dependencies returns the sorted dependency set recorded for source.
func (c *BuildCache) Dependencies(source string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dependencies[source].slice()
}

// AddTaxonomyDependency records that page was affected by taxonomy term.
func (c *BuildCache) AddTaxonomyDependency(term, page string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.taxonomyDeps[term] == nil {
		c.taxonomyDeps[term] = newStringSet()
	}
	c.taxonomyDeps[term].add(page)
}

// GetAffectedPages returns the changed files themselves plus every source
// whose dependency set contains one of them.
func (c *BuildCache) GetAffectedPages(changed []string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	affected := newStringSet(changed...)
	changedSet := newStringSet(changed...)
	for src, deps := range c.dependencies {
		for dep := range deps {
			if changedSet.has(dep) {
				affected.add(src)
				break
			}
		}
	}
	return affected.slice()
}

// slugifyTag implements the tag→slug rule: lowercase, spaces to hyphens.
func slugifyTag(tag string) string {
	return strings.ReplaceAll(strings.ToLower(tag), " ", "-")
}

// UpdatePageTags replaces page's tag set and maintains the bidirectional
// page↔tag index. It returns every affected slug: those added, removed, and
// unchanged — callers must rebuild unchanged tag pages too, since page
// ordering within a tag listing may have shifted.
func (c *BuildCache) UpdatePageTags(page string, tags []string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	oldTags := c.pageTags[page]
	oldSlugs := newStringSet()
	for tag := range oldTags {
		oldSlugs.add(slugifyTag(tag))
	}

	newTags := newStringSet(tags...)
	newSlugs := newStringSet()
	for tag := range newTags {
		newSlugs.add(slugifyTag(tag))
	}

	c.pageTags[page] = newTags

	for slug := range newSlugs {
		if c.tagToPages[slug] == nil {
			c.tagToPages[slug] = newStringSet()
		}
		c.tagToPages[slug].add(page)
		c.knownTags.add(slug)
	}
	for slug := range oldSlugs {
		if newSlugs.has(slug) {
			continue
		}
		pages := c.tagToPages[slug]
		if pages == nil {
			continue
		}
		pages.remove(page)
		if len(pages) == 0 {
			delete(c.tagToPages, slug)
			c.knownTags.remove(slug)
		}
	}

	if len(newTags) == 0 {
		delete(c.pageTags, page)
	}

	return unionSlugs(oldSlugs, newSlugs)
}

// PagesForTag returns the pages tagged with the given slug, sorted.
func (c *BuildCache) PagesForTag(slug string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tagToPages[slug].slice()
}

// KnownTags returns every slug with at least one tagged page, sorted.
func (c *BuildCache) KnownTags() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.knownTags.slice()
}

// ValidateConfig records currentHash on first observation (returning true).
// On a mismatch against a previously recorded hash it clears the entire
// cache, stores currentHash, and returns false. On a match it returns true
// without side effects.
func (c *BuildCache) ValidateConfig(currentHash string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.configHash == nil {
		c.configHash = &currentHash
		return true
	}
	if *c.configHash == currentHash {
		return true
	}
	c.clearLocked()
	c.configHash = &currentHash
	return false
}

// Clear empties every cached field, including the config hash and last
// build timestamp.
func (c *BuildCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
	c.configHash = nil
	c.lastBuild = nil
}

func (c *BuildCache) clearLocked() {
	c.fileFingerprints = make(map[string]FileFingerprint)
	c.dependencies = make(map[string]stringSet)
	c.taxonomyDeps = make(map[string]stringSet)
	c.pageTags = make(map[string]stringSet)
	c.tagToPages = make(map[string]stringSet)
	c.knownTags = newStringSet()
	c.autodocDependencies = make(map[string]stringSet)
	c.parsedContent = make(map[string]ParsedContentEntry)
	c.validationResults = make(map[string]map[string][]CheckResult)
	c.syntheticPages = make(map[string]json.RawMessage)
}

// InvalidateFile drops path's fingerprint, cached parsed content, and
// cached validation results — the full cascade of state keyed on a single
// file's identity.
func (c *BuildCache) InvalidateFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.fileFingerprints, path)
	delete(c.parsedContent, path)
	delete(c.validationResults, path)
}

// InvalidateParsedContent drops only path's cached render, leaving its
// fingerprint and validation results untouched.
func (c *BuildCache) InvalidateParsedContent(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.parsedContent, path)
}

// SetLastBuild records the timestamp of the most recently completed build.
func (c *BuildCache) SetLastBuild(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := t.UTC().Format(time.RFC3339)
	c.lastBuild = &s
}

// LastBuild returns the recorded last-build timestamp, if any.
func (c *BuildCache) LastBuild() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lastBuild == nil {
		return "", false
	}
	return *c.lastBuild, true
}

func sortedJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
