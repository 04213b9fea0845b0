package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Degree != 32 {
		t.Errorf("Degree: want 32, got %d", cfg.Degree)
	}
	if cfg.ShowLimit != DefaultShowLimit {
		t.Errorf("ShowLimit: want %d, got %d", DefaultShowLimit, cfg.ShowLimit)
	}
}

func TestConfigMergeZeroValuesPreserveDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Merge(&Config{})
	if cfg != DefaultConfig() {
		t.Errorf("Merge with zero source changed config: %+v", cfg)
	}

	cfg.Merge(&Config{ShowLimit: 5})
	if cfg.ShowLimit != 5 || cfg.Degree != 32 {
		t.Errorf("Merge: got %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")
	if err := os.WriteFile(path, []byte(`{"degree": 8, "show_limit": 10}`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Degree != 8 || cfg.ShowLimit != 10 {
		t.Errorf("LoadConfig: got %+v", cfg)
	}

	s := NewStore(WithConfig[int](*cfg))
	if s.degree != 8 {
		t.Errorf("store degree: want 8, got %d", s.degree)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")
	if err := os.WriteFile(path, []byte(`{"degree": 1}`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("want ErrInvalidConfig, got %v", err)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("want error for missing file")
	}
}
