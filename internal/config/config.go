// Package config loads and saves pawtally's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all pawtally configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Currency   CurrencyConfig   `toml:"currency"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultPet string `toml:"default_pet,omitempty"` // pet id used when --pet is not given
	DataDir    string `toml:"data_dir,omitempty"`
}

// CurrencyConfig selects the display currency.
type CurrencyConfig struct {
	Code string `toml:"code"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Currency: CurrencyConfig{Code: "USD"},
		Appearance: AppearanceConfig{
			Theme: "paw-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pawtally")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pawtally")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// DataDir resolves the data directory: config override first, then the
// platform default under the user's home.
func DataDir(cfg Config) string {
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "pawtally")
}

// DBPath returns the sqlite database path inside dataDir.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, "pawtally.db")
}
