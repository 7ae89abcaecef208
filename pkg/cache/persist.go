package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/bengalssg/bengal/pkg/lock"
	"github.com/bengalssg/bengal/pkg/logging"
)

// lockTimeout bounds how long Load/Save wait for the cache file's advisory
// lock before giving up.
const lockTimeout = 10 * time.Second

// wireFormat is the on-disk JSON shape. BuildCache's in-memory sets
// (stringSet) become sorted []string here, and vice versa on load.
type wireFormat struct {
	Version             uint32                         `json:"version"`
	FileFingerprints    map[string]FileFingerprint      `json:"file_fingerprints"`
	Dependencies        map[string][]string             `json:"dependencies"`
	TaxonomyDeps        map[string][]string             `json:"taxonomy_deps"`
	PageTags            map[string][]string             `json:"page_tags"`
	TagToPages          map[string][]string             `json:"tag_to_pages"`
	KnownTags           []string                         `json:"known_tags"`
	ParsedContent       map[string]ParsedContentEntry    `json:"parsed_content"`
	ValidationResults   map[string]map[string][]CheckResult `json:"validation_results"`
	AutodocDependencies map[string][]string             `json:"autodoc_dependencies"`
	SyntheticPages      map[string]json.RawMessage       `json:"synthetic_pages,omitempty"`
	ConfigHash          *string                          `json:"config_hash"`
	LastBuild           *string                          `json:"last_build"`
}

func setsToSlices(m map[string]stringSet) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = v.slice()
	}
	return out
}

func slicesToSets(m map[string][]string) map[string]stringSet {
	out := make(map[string]stringSet, len(m))
	for k, v := range m {
		out[k] = newStringSet(v...)
	}
	return out
}

func (c *BuildCache) toWire() wireFormat {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return wireFormat{
		Version:             c.version,
		FileFingerprints:    c.fileFingerprints,
		Dependencies:        setsToSlices(c.dependencies),
		TaxonomyDeps:        setsToSlices(c.taxonomyDeps),
		PageTags:            setsToSlices(c.pageTags),
		TagToPages:          setsToSlices(c.tagToPages),
		KnownTags:           c.knownTags.slice(),
		ParsedContent:       c.parsedContent,
		ValidationResults:   c.validationResults,
		AutodocDependencies: setsToSlices(c.autodocDependencies),
		SyntheticPages:      c.syntheticPages,
		ConfigHash:          c.configHash,
		LastBuild:           c.lastBuild,
	}
}

// fromWire populates an empty *BuildCache from a decoded wire struct,
// applying the version-migration rules: a missing version is treated as
// pre-versioned (best-effort field match, which decoding into wireFormat
// already gives us for free); a higher version logs a warning and keeps
// whatever known fields decoded; a lower version decodes with empty
// defaults for fields introduced later (also free, via Go's zero values).
func fromWire(w wireFormat, log *logging.Logger) *BuildCache {
	c := New()
	c.log = log

	if w.Version > CurrentSchemaVersion {
		log.Warn("cache: schema version newer than supported, loading best-effort",
			"found", w.Version, "supported", CurrentSchemaVersion)
	} else if w.Version != 0 && w.Version < CurrentSchemaVersion {
		log.Debug("cache: schema version older than current, loading with defaults for new fields",
			"found", w.Version, "supported", CurrentSchemaVersion)
	} else if w.Version == 0 {
		log.Warn("cache: no schema version found, treating as pre-versioned")
	}
	c.version = CurrentSchemaVersion

	if w.FileFingerprints != nil {
		c.fileFingerprints = w.FileFingerprints
	}
	c.dependencies = slicesToSets(w.Dependencies)
	c.taxonomyDeps = slicesToSets(w.TaxonomyDeps)
	c.pageTags = slicesToSets(w.PageTags)
	c.tagToPages = slicesToSets(w.TagToPages)
	c.knownTags = newStringSet(w.KnownTags...)
	c.autodocDependencies = slicesToSets(w.AutodocDependencies)
	if w.ParsedContent != nil {
		c.parsedContent = w.ParsedContent
	}
	if w.ValidationResults != nil {
		c.validationResults = w.ValidationResults
	}
	if w.SyntheticPages != nil {
		c.syntheticPages = w.SyntheticPages
	}
	c.configHash = w.ConfigHash
	c.lastBuild = w.LastBuild
	return c
}

// Load reads path into a fresh *BuildCache. It is tolerant of every
// failure mode: a missing file, a read error, malformed JSON, or a lock that
// cannot be taken all produce an empty cache rather than an error, with a
// warning logged giving enough context to act on it. A file written under a
// different schema version is loaded best-effort, keeping the fields that
// decode.
// Reads take a shared lock unless locking is disabled.
func Load(path string, log *logging.Logger) *BuildCache {
	return load(path, log, true)
}

// LoadNoLock is Load without acquiring the shared lock — for tests and
// single-process tooling that already serializes access.
func LoadNoLock(path string, log *logging.Logger) *BuildCache {
	return load(path, log, false)
}

func load(path string, log *logging.Logger, locked bool) *BuildCache {
	if log == nil {
		log = logging.Default()
	}

	readFile := func() ([]byte, error) {
		return os.ReadFile(path)
	}
	if locked {
		var data []byte
		var readErr error
		err := lock.With(path, false, lockTimeout, func() error {
			data, readErr = readFile()
			return nil
		})
		if err != nil {
			log.Warn("cache: could not acquire shared lock, loading empty cache", "path", path, "err", err)
			c := New()
			c.log = log
			c.Locking = locked
			return c
		}
		return decodeOrEmpty(path, data, readErr, log, locked)
	}

	data, err := readFile()
	return decodeOrEmpty(path, data, err, log, locked)
}

func decodeOrEmpty(path string, data []byte, readErr error, log *logging.Logger, locked bool) *BuildCache {
	if readErr != nil {
		if !os.IsNotExist(readErr) {
			log.Warn("cache: could not read cache file, starting empty", "path", path, "err", readErr)
		}
		c := New()
		c.log = log
		c.Locking = locked
		return c
	}

	var w wireFormat
	if err := json.Unmarshal(data, &w); err != nil {
		log.Warn("cache: could not parse cache file, starting empty", "path", path, "err", err)
		c := New()
		c.log = log
		c.Locking = locked
		return c
	}

	c := fromWire(w, log)
	c.Locking = locked
	return c
}

// Save serializes the cache and writes it atomically to path, creating
// parent directories as needed. Writes take an exclusive lock unless
// locking has been disabled (see BuildCache.Locking).
func (c *BuildCache) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cache: create directory for %q: %w", path, err)
	}

	data, err := json.MarshalIndent(c.toWire(), "", "  ")
	if err != nil {
		return fmt.Errorf("cache: marshal: %w", err)
	}

	write := func() error {
		return lock.WriteFileAtomic(path, data, 0o644)
	}

	var writeErr error
	if c.Locking {
		writeErr = lock.With(path, true, lockTimeout, write)
	} else {
		writeErr = write()
	}
	if writeErr != nil {
		return fmt.Errorf("cache: save %q: %w", path, writeErr)
	}

	c.mu.RLock()
	trackedFiles, deps, parsed := len(c.fileFingerprints), len(c.dependencies), len(c.parsedContent)
	c.mu.RUnlock()

	c.logger().Debug("cache: saved",
		"save_id", uuid.NewString(),
		"path", path,
		"tracked_files", trackedFiles,
		"dependencies", deps,
		"parsed_content", parsed,
		"bytes", len(data),
	)
	return nil
}
