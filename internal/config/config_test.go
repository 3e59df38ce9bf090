package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestInitAndLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Init(dir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if cfg.Version != CurrentVersion {
		t.Errorf("Version: got %d, want %d", cfg.Version, CurrentVersion)
	}
	if cfg.HasBaseDir() {
		t.Error("fresh config should have no base dir")
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.WeekStart != DefaultWeekStart {
		t.Errorf("WeekStart: got %q, want %q", loaded.WeekStart, DefaultWeekStart)
	}
	if loaded.LLM.Model != DefaultLLMModel {
		t.Errorf("LLM.Model: got %q, want %q", loaded.LLM.Model, DefaultLLMModel)
	}
	if loaded.DBPath() != filepath.Join(loaded.Dir(), DBFileName) {
		t.Errorf("DBPath: got %q", loaded.DBPath())
	}
}

func TestLoadMissingReturnsErrNotFound(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestInitRefusesExisting(t *testing.T) {
	dir := t.TempDir()
	if _, err := Init(dir); err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	if _, err := Init(dir); err == nil {
		t.Error("second Init should fail")
	}
}

func TestSaveRoundTripsBaseDir(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Init(dir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	cfg.BaseDir = filepath.Join(dir, "storage")
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.BaseDir != cfg.BaseDir {
		t.Errorf("BaseDir: got %q, want %q", loaded.BaseDir, cfg.BaseDir)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"bad version", func(c *Config) { c.Version = 99 }, false},
		{"bad week start", func(c *Config) { c.WeekStart = "friday" }, false},
		{"missing base url", func(c *Config) { c.LLM.BaseURL = "" }, false},
		{"missing model", func(c *Config) { c.LLM.Model = "" }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefault()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestAPIKeyFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Init(dir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	// Register cleanup via t.Setenv, then unset so godotenv populates it.
	t.Setenv(DefaultAPIKeyEnv, "placeholder")
	os.Unsetenv(DefaultAPIKeyEnv)
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte(DefaultAPIKeyEnv+"=sk-test\n"), 0o600); err != nil {
		t.Fatalf("writing .env: %v", err)
	}

	if got := cfg.APIKey(); got != "sk-test" {
		t.Errorf("APIKey: got %q, want %q", got, "sk-test")
	}
}
