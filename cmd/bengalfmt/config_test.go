package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bengalssg/bengal/pkg/markdown"
)

func TestLoadConfigMissingPathReturnsDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Engine != markdown.EnginePatitas {
		t.Errorf("Engine = %q, want %q", cfg.Engine, markdown.EnginePatitas)
	}
	if cfg.CacheDir != ".bengal-cache" {
		t.Errorf("CacheDir = %q, want %q", cfg.CacheDir, ".bengal-cache")
	}
}

func TestLoadConfigOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bengal.yaml")
	content := "parser: python-markdown\nbaseurl: /docs\ncache_dir: /tmp/cache\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Engine != markdown.EnginePythonMarkdown {
		t.Errorf("Engine = %q, want %q", cfg.Engine, markdown.EnginePythonMarkdown)
	}
	if cfg.BaseURL != "/docs" {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, "/docs")
	}
	if cfg.CacheDir != "/tmp/cache" {
		t.Errorf("CacheDir = %q, want %q", cfg.CacheDir, "/tmp/cache")
	}
}

func TestLoadConfigMissingFileIsNotAnError(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Engine != markdown.EnginePatitas {
		t.Errorf("Engine = %q, want default", cfg.Engine)
	}
}
