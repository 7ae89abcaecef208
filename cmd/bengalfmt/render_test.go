package main

import (
	"path/filepath"
	"testing"

	"github.com/bengalssg/bengal/pkg/ast"
)

func TestTocEntriesToCacheItems(t *testing.T) {
	entries := []ast.TOCEntry{
		{ID: "intro", Title: "Intro", Level: 1},
		{ID: "setup", Title: "Setup", Level: 2},
	}
	items := tocEntriesToCacheItems(entries)
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Slug != "intro" || items[0].Title != "Intro" || items[0].Level != 1 {
		t.Errorf("items[0] = %+v, unexpected", items[0])
	}
	if items[1].Slug != "setup" || items[1].Level != 2 {
		t.Errorf("items[1] = %+v, unexpected", items[1])
	}
}

func TestCachePath(t *testing.T) {
	cfg := fileConfig{CacheDir: "build-cache"}
	want := filepath.Join("build-cache", "cache.json")
	if got := cachePath(cfg); got != want {
		t.Errorf("cachePath() = %q, want %q", got, want)
	}
}
