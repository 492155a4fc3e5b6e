// Package config loads the TOML-backed tunables for the lexer's buffer
// growth policy, string dedup cutoff, and the thread façade's default
// timeouts, using BurntSushi/toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds every tunable this module's ambient stack exposes.
type Config struct {
	// Buffers controls the geometric growth granularity of each arena the
	// lexer appends to. Values are the inc_log2 exponent bytebuf.Buffer
	// rounds its growth up to a multiple of.
	Buffers struct {
		LCodeIncLog2  uint `toml:"lcode_inc_log2"`
		StringIncLog2 uint `toml:"string_inc_log2"`
		IdentIncLog2  uint `toml:"ident_inc_log2"`
	} `toml:"buffers"`

	// Lexer holds lexer-specific tuning not covered by buffer growth.
	Lexer struct {
		// StringDedupCutoff is the decoded string length, in bytes, at
		// or above which a string is not deduplicated; 256 is the
		// default, kept here as an overridable value for experimentation.
		StringDedupCutoff int `toml:"string_dedup_cutoff"`
	} `toml:"lexer"`

	// Thread holds default timeouts for façade operations invoked
	// without an explicit timeout from the script layer.
	Thread struct {
		DefaultAcquireTimeout float64 `toml:"default_acquire_timeout"`
		DefaultJoinTimeout    float64 `toml:"default_join_timeout"`
	} `toml:"thread"`
}

// DefaultConfig returns a Config with the lexer's built-in defaults,
// before any override file is applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Buffers.LCodeIncLog2 = 6
	cfg.Buffers.StringIncLog2 = 4
	cfg.Buffers.IdentIncLog2 = 5
	cfg.Lexer.StringDedupCutoff = 256
	cfg.Thread.DefaultAcquireTimeout = 0
	cfg.Thread.DefaultJoinTimeout = 0
	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "rill")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "rill")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file, falling back to
// DefaultConfig if it does not exist.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveTo writes the configuration to the specified file, creating parent
// directories as needed.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- caller-controlled config path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
