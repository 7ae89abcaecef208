package cache

import (
	"encoding/json"
	"fmt"
	"time"
)

// StoreParsedContent records a page's rendered output alongside the
// conditions that must still hold for GetParsedContent to return it: the
// source file's fingerprint (caller must have already called UpdateFile),
// a hash of its metadata, the template name, and the parser version.
// ast may be nil.
func (c *BuildCache) StoreParsedContent(path, html, tocHTML string, tocItems []TocItem, metadata map[string]interface{}, templateName, parserVersion string, ast interface{}) error {
	metaHash, err := hashMetadata(metadata)
	if err != nil {
		return fmt.Errorf("cache: hash metadata for %q: %w", path, err)
	}

	var astRaw json.RawMessage
	if ast != nil {
		astRaw, err = json.Marshal(ast)
		if err != nil {
			return fmt.Errorf("cache: marshal ast for %q: %w", path, err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.parsedContent[path] = ParsedContentEntry{
		HTML:          html,
		TocHTML:       tocHTML,
		TocItems:      tocItems,
		AST:           astRaw,
		MetadataHash:  metaHash,
		TemplateName:  templateName,
		ParserVersion: parserVersion,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		SizeBytes:     uint64(len(html)),
	}
	return nil
}

// GetParsedContent returns the cached render for path, if every hit
// condition holds: the file is unchanged, the metadata hash matches, the
// template name and parser version match, and every tracked template
// dependency of path is unchanged.
func (c *BuildCache) GetParsedContent(path string, metadata map[string]interface{}, templateName, parserVersion string) (*ParsedContentEntry, bool) {
	c.mu.RLock()
	entry, ok := c.parsedContent[path]
	deps := c.dependencies[path].clone()
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if c.IsChanged(path) {
		return nil, false
	}

	metaHash, err := hashMetadata(metadata)
	if err != nil || entry.MetadataHash != metaHash {
		return nil, false
	}
	if entry.TemplateName != templateName || entry.ParserVersion != parserVersion {
		return nil, false
	}
	for dep := range deps {
		if c.IsChanged(dep) {
			return nil, false
		}
	}

	out := entry
	return &out, true
}

// CacheValidationResults records the results a validator produced for
// path.
func (c *BuildCache) CacheValidationResults(path, validatorName string, results []CheckResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.validationResults[path] == nil {
		c.validationResults[path] = make(map[string][]CheckResult)
	}
	c.validationResults[path][validatorName] = results
}

// GetCachedValidationResults returns a validator's cached results for path,
// automatically invalidated (miss) if path has changed since they were
// cached.
func (c *BuildCache) GetCachedValidationResults(path, validatorName string) ([]CheckResult, bool) {
	if c.IsChanged(path) {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	byValidator, ok := c.validationResults[path]
	if !ok {
		return nil, false
	}
	results, ok := byValidator[validatorName]
	return results, ok
}

// ExplainCacheDecision returns a short, human-readable reason a cache hit
// or miss would occur for path right now — the one debug primitive from
// the original implementation's debug tooling cheap enough to live in the
// core package rather than an (out-of-scope) CLI debug command. It checks
// only file- and dependency-level freshness; metadata/template/parser-version
// agreement still gates the real GetParsedContent call.
func (c *BuildCache) ExplainCacheDecision(path string) string {
	c.mu.RLock()
	_, hasEntry := c.parsedContent[path]
	deps := c.dependencies[path].clone()
	c.mu.RUnlock()

	if !hasEntry {
		return "miss: no cached entry"
	}
	if c.IsChanged(path) {
		return "miss: file changed"
	}
	for dep := range deps {
		if c.IsChanged(dep) {
			return fmt.Sprintf("miss: dependency %q changed", dep)
		}
	}
	return "hit: unchanged"
}
