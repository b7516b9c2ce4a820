package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.Server.Addr() != "127.0.0.1:8736" {
		t.Errorf("Unexpected default address %q", cfg.Server.Addr())
	}
	if cfg.Storage.DatabasePath != "data/luxlex.db" {
		t.Errorf("Unexpected database path %q", cfg.Storage.DatabasePath)
	}
	if cfg.Storage.SeedDirectory != "data/seeds" {
		t.Errorf("Unexpected seed directory %q", cfg.Storage.SeedDirectory)
	}
	if cfg.Storage.IndexPath != "data/law-index.json" {
		t.Errorf("Unexpected index path %q", cfg.Storage.IndexPath)
	}
	if cfg.Discovery.PageSize != 1000 {
		t.Errorf("Unexpected page size %d", cfg.Discovery.PageSize)
	}
	if cfg.Discovery.RequestDelay() != 500*time.Millisecond {
		t.Errorf("Unexpected pacing delay %v", cfg.Discovery.RequestDelay())
	}
	if cfg.Debug {
		t.Error("Expected debug off by default")
	}
}

func TestLoadAppliesDefaultsOverPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
debug: true
server:
  port: 9000
discovery:
  categories: [LOI, RGD]
  request_delay_ms: 250
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Debug {
		t.Error("Expected debug enabled")
	}
	if cfg.Server.Addr() != "127.0.0.1:9000" {
		t.Errorf("Expected host default with configured port, got %q", cfg.Server.Addr())
	}
	if !reflect.DeepEqual(cfg.Discovery.Categories, []string{"LOI", "RGD"}) {
		t.Errorf("Unexpected categories %v", cfg.Discovery.Categories)
	}
	if cfg.Discovery.RequestDelay() != 250*time.Millisecond {
		t.Errorf("Unexpected pacing delay %v", cfg.Discovery.RequestDelay())
	}
	if cfg.Storage.DatabasePath != "data/luxlex.db" {
		t.Errorf("Expected defaulted database path, got %q", cfg.Storage.DatabasePath)
	}
}

// The seed store treats every .json file in the seed directory as a seed
// artifact, so the law index living there would be ingested as a broken
// seed on every build. The index path must stay outside that directory.
func TestIndexPathOutsideSeedDirectory(t *testing.T) {
	cfg := Default()
	if filepath.Dir(cfg.Storage.IndexPath) == filepath.Clean(cfg.Storage.SeedDirectory) {
		t.Errorf("Index path %q must not live in seed directory %q",
			cfg.Storage.IndexPath, cfg.Storage.SeedDirectory)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected an error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte(":\n  - not yaml"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected an error for malformed YAML")
	}
}
