package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  host: 0.0.0.0
  port: 9090
storage:
  database_path: ./data/catalog.db
  catalog_path: ./catalog.json
search:
  min_length: 4
  fuzzy_threshold: 0.7
  scores:
    name_contains: 120
watch:
  enabled: true
  debounce_ms: 500
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if !cfg.Debug {
		t.Error("debug not parsed")
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9090 {
		t.Errorf("server config = %+v", cfg.Server)
	}
	if cfg.Storage.DatabasePath != filepath.Join(dir, "data/catalog.db") {
		t.Errorf("database path not expanded relative to config dir: %s", cfg.Storage.DatabasePath)
	}
	if cfg.Storage.CatalogPath != filepath.Join(dir, "catalog.json") {
		t.Errorf("catalog path not expanded: %s", cfg.Storage.CatalogPath)
	}
	if cfg.Search.MinLength != 4 {
		t.Errorf("min_length = %d", cfg.Search.MinLength)
	}
	if cfg.Search.FuzzyThreshold != 0.7 {
		t.Errorf("fuzzy_threshold = %v", cfg.Search.FuzzyThreshold)
	}
	if cfg.Search.Scores.NameContains != 120 {
		t.Errorf("name_contains = %d", cfg.Search.Scores.NameContains)
	}
	if cfg.Watch.DebounceMS != 500 {
		t.Errorf("debounce_ms = %d", cfg.Watch.DebounceMS)
	}

	// Unset values fall back to defaults.
	if cfg.Search.MaxResults != 50 {
		t.Errorf("max_results default = %d, want 50", cfg.Search.MaxResults)
	}
	if cfg.Search.Scores.TermExact != 90 {
		t.Errorf("term_exact default = %d, want 90", cfg.Search.Scores.TermExact)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("server defaults = %+v", cfg.Server)
	}
	if cfg.Storage.DatabasePath == "" {
		t.Error("database path default missing")
	}
	if cfg.Watch.DebounceMS != 300 {
		t.Errorf("debounce default = %d, want 300", cfg.Watch.DebounceMS)
	}
	if cfg.Search.MinLength != 3 || cfg.Search.SuggestMinLength != 2 {
		t.Errorf("search defaults = %+v", cfg.Search)
	}
	if cfg.Search.FuzzyThreshold != 0.6 {
		t.Errorf("fuzzy threshold default = %v", cfg.Search.FuzzyThreshold)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config")
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: ["), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}
