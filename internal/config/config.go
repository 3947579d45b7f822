package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultUpdateURL is the catalog used when neither the catalog nor the config names one.
const DefaultUpdateURL = "https://raw.githubusercontent.com/ravendevteam/toolbox/refs/heads/crossplatform/toolbox/packages.json"

// DefaultRefreshInterval is how old the catalog may get before it is fetched again.
const DefaultRefreshInterval = 24 * time.Hour

// Config represents the config.toml configuration file
type Config struct {
	// Catalog URL used when the local catalog does not declare a usable one
	UpdateURL string `toml:"update_url,omitempty"`

	// Maximum catalog age, as a Go duration string ("24h")
	RefreshInterval string `toml:"refresh_interval"`

	// Skip confirmation prompts
	AssumeYes bool `toml:"assume_yes"`

	// debug, info, warn or error
	LogLevel string `toml:"log_level"`

	Paths PathsConfig `toml:"paths"`
}

// PathsConfig holds directory overrides
type PathsConfig struct {
	// Root under which package directories are created
	InstallRoot string `toml:"install_root,omitempty"`

	// Directory receiving shortcuts
	ShortcutDir string `toml:"shortcut_dir,omitempty"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		RefreshInterval: DefaultRefreshInterval.String(),
		LogLevel:        "warn",
	}
}

// Load loads config.toml from path, returning defaults when it does not exist
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	if _, err := cfg.Interval(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes config.toml to path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Interval returns the parsed refresh interval
func (c *Config) Interval() (time.Duration, error) {
	if c.RefreshInterval == "" {
		return DefaultRefreshInterval, nil
	}
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid refresh_interval %q: %w", c.RefreshInterval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid refresh_interval %q: must be positive", c.RefreshInterval)
	}
	return d, nil
}
