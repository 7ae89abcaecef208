package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bengalssg/bengal/pkg/markdown"
)

// fileConfig is the on-disk shape of a bengalfmt config file: the
// markdown.Config fields an operator tunes, plus the handful of
// orchestrator-level knobs (baseurl, cache path) that live outside
// pkg/markdown's own scope. Loaded with gopkg.in/yaml.v3, matching the
// teacher's own config-struct-plus-yaml-tags convention.
type fileConfig struct {
	markdown.Config `yaml:",inline"`
	BaseURL  string `yaml:"baseurl"`
	CacheDir string `yaml:"cache_dir"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Config:   markdown.DefaultConfig(),
		CacheDir: ".bengal-cache",
	}
}

// loadConfig reads path (if non-empty and present) over defaultFileConfig's
// baseline. A missing --config path is not an error: the defaults stand.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return cfg, nil
}
