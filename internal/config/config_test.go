package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromPath_DefaultConfig(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadFromPath(tmpDir)
	if err != nil {
		t.Fatalf("LoadFromPath() failed: %v", err)
	}

	if cfg.IndentWith != "\t" {
		t.Errorf("Expected IndentWith=%q, got %q", "\t", cfg.IndentWith)
	}
	if !cfg.Validate {
		t.Errorf("Expected Validate=true by default")
	}

	absPath, _ := filepath.Abs(tmpDir)
	if cfg.ProjectRoot != absPath {
		t.Errorf("Expected ProjectRoot=%q, got %q", absPath, cfg.ProjectRoot)
	}
}

func TestLoadFromPath_CustomIndent(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := "indent_with: \"    \"\nvalidate: false\n"
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	cfg, err := LoadFromPath(tmpDir)
	if err != nil {
		t.Fatalf("LoadFromPath() failed: %v", err)
	}

	if cfg.IndentWith != "    " {
		t.Errorf("Expected IndentWith=%q, got %q", "    ", cfg.IndentWith)
	}
	if cfg.Validate {
		t.Errorf("Expected Validate=false")
	}
}

func TestLoadFromPath_DiscoveryFromNestedDir(t *testing.T) {
	tmpDir := t.TempDir()

	nestedDir := filepath.Join(tmpDir, "a", "b", "c")
	if err := os.MkdirAll(nestedDir, 0o755); err != nil {
		t.Fatalf("Failed to create nested dirs: %v", err)
	}

	configContent := "ignore_indent: true\n"
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	cfg, err := LoadFromPath(nestedDir)
	if err != nil {
		t.Fatalf("LoadFromPath() failed: %v", err)
	}

	if !cfg.IgnoreIndent {
		t.Errorf("Expected IgnoreIndent=true")
	}
	if cfg.ProjectRoot != tmpDir {
		t.Errorf("Expected ProjectRoot=%q, got %q", tmpDir, cfg.ProjectRoot)
	}
}

func TestLoadFromPath_NearestConfigWins(t *testing.T) {
	tmpDir := t.TempDir()

	nestedDir := filepath.Join(tmpDir, "subdir")
	if err := os.MkdirAll(nestedDir, 0o755); err != nil {
		t.Fatalf("Failed to create nested dir: %v", err)
	}

	rootConfig := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(rootConfig, []byte("indent_with: \"  \"\n"), 0o644); err != nil {
		t.Fatalf("Failed to create root config: %v", err)
	}

	nestedConfig := filepath.Join(nestedDir, ConfigFileName)
	if err := os.WriteFile(nestedConfig, []byte("indent_with: \"\t\t\"\n"), 0o644); err != nil {
		t.Fatalf("Failed to create nested config: %v", err)
	}

	cfg, err := LoadFromPath(nestedDir)
	if err != nil {
		t.Fatalf("LoadFromPath() failed: %v", err)
	}

	if cfg.IndentWith != "\t\t" {
		t.Errorf("Expected nested config to win, got IndentWith=%q", cfg.IndentWith)
	}
	if cfg.ProjectRoot != nestedDir {
		t.Errorf("Expected ProjectRoot=%q, got %q", nestedDir, cfg.ProjectRoot)
	}
}

func TestLoadFromPath_InvalidIndent(t *testing.T) {
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("indent_with: \"a\\nb\"\n"), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	if _, err := LoadFromPath(tmpDir); err == nil {
		t.Errorf("Expected error for indent_with containing a line break")
	}
}
