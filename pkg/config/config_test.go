package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.UseGitignore {
		t.Error("expected gitignore filtering on by default")
	}
	if cfg.ShowHidden {
		t.Error("expected hidden entries off by default")
	}
	if cfg.PrewarmDepth != 2 {
		t.Errorf("expected prewarm depth 2, got %d", cfg.PrewarmDepth)
	}
	if cfg.Theme != "auto" {
		t.Errorf("expected theme 'auto', got %q", cfg.Theme)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if !cfg.UseGitignore || cfg.PrewarmDepth != 2 {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
use_gitignore: false
show_hidden: true
prewarm_depth: 4
theme: dark
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.UseGitignore {
		t.Error("expected use_gitignore false")
	}
	if !cfg.ShowHidden {
		t.Error("expected show_hidden true")
	}
	if cfg.PrewarmDepth != 4 {
		t.Errorf("expected prewarm_depth 4, got %d", cfg.PrewarmDepth)
	}
	if cfg.Theme != "dark" {
		t.Errorf("expected theme 'dark', got %q", cfg.Theme)
	}
}

func TestLoadFrom_PartialConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
show_hidden: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.ShowHidden {
		t.Error("expected show_hidden true")
	}
	if !cfg.UseGitignore {
		t.Error("expected use_gitignore to keep its default")
	}
	if cfg.PrewarmDepth != 2 {
		t.Errorf("expected default prewarm_depth, got %d", cfg.PrewarmDepth)
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("{{invalid yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFrom_NormalizesValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
prewarm_depth: -3
theme: Salmon
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.PrewarmDepth != 0 {
		t.Errorf("expected negative prewarm_depth clamped to 0, got %d", cfg.PrewarmDepth)
	}
	if cfg.Theme != "auto" {
		t.Errorf("expected unknown theme to become 'auto', got %q", cfg.Theme)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := Config{
		UseGitignore: false,
		ShowHidden:   true,
		PrewarmDepth: 1,
		Theme:        "light",
	}

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load after save failed: %v", err)
	}

	if loaded != cfg {
		t.Errorf("round trip changed config: %+v != %+v", loaded, cfg)
	}
}

func TestConfigDir_XDGOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got := ConfigDir()
	expected := filepath.Join(dir, "canopy")
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}
