package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Buffers.LCodeIncLog2 != 6 {
		t.Errorf("Expected LCodeIncLog2=6, got %d", cfg.Buffers.LCodeIncLog2)
	}
	if cfg.Buffers.StringIncLog2 != 4 {
		t.Errorf("Expected StringIncLog2=4, got %d", cfg.Buffers.StringIncLog2)
	}
	if cfg.Buffers.IdentIncLog2 != 5 {
		t.Errorf("Expected IdentIncLog2=5, got %d", cfg.Buffers.IdentIncLog2)
	}
	if cfg.Lexer.StringDedupCutoff != 256 {
		t.Errorf("Expected StringDedupCutoff=256, got %d", cfg.Lexer.StringDedupCutoff)
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}
	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected path to end with config.toml, got %s", path)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Lexer.StringDedupCutoff = 128
	cfg.Thread.DefaultAcquireTimeout = 5
	cfg.Buffers.IdentIncLog2 = 7

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Lexer.StringDedupCutoff != 128 {
		t.Errorf("Expected StringDedupCutoff=128, got %d", loaded.Lexer.StringDedupCutoff)
	}
	if loaded.Thread.DefaultAcquireTimeout != 5 {
		t.Errorf("Expected DefaultAcquireTimeout=5, got %v", loaded.Thread.DefaultAcquireTimeout)
	}
	if loaded.Buffers.IdentIncLog2 != 7 {
		t.Errorf("Expected IdentIncLog2=7, got %d", loaded.Buffers.IdentIncLog2)
	}
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom should not error on non-existent file: %v", err)
	}
	if cfg.Lexer.StringDedupCutoff != 256 {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[lexer]
string_dedup_cutoff = "not a number"
`
	if err := os.WriteFile(configPath, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := LoadFrom(configPath)
	if err == nil {
		t.Error("Expected error when loading invalid TOML")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}
}
