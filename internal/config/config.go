package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// DataPath is the SQLite database holding every collection.
	// Empty means ~/.tally/tally.db.
	DataPath string `yaml:"data_path"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	Events      EventsConfig    `yaml:"events"`
	Migration   MigrationConfig `yaml:"migration"`
	KeyMappings KeyMappings     `yaml:"key_mappings"`
	ColorScheme ColorScheme     `yaml:"theme"`
}

// EventsConfig tunes change notifications
type EventsConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
}

// MigrationConfig controls the startup migration check
type MigrationConfig struct {
	// Auto runs a migration at startup when one is needed
	Auto *bool `yaml:"auto,omitempty"`
	// Backup snapshots the tasks blob before an automatic migration
	Backup *bool `yaml:"backup,omitempty"`
	// KeepBackups prunes older snapshots after a migration.
	// 0 means the default; a negative value keeps every snapshot.
	KeepBackups int `yaml:"keep_backups"`
}

// AutoEnabled reports whether startup migration is on (default true)
func (m MigrationConfig) AutoEnabled() bool {
	return m.Auto == nil || *m.Auto
}

// BackupEnabled reports whether automatic migrations take a backup (default true)
func (m MigrationConfig) BackupEnabled() bool {
	return m.Backup == nil || *m.Backup
}

const (
	defaultLogLevel    = "info"
	defaultDebounceMS  = 100
	defaultKeepBackups = 5
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// loadThemeFile merges the theme from TALLY_THEME_FILE, if set
func loadThemeFile(config *Config) {
	themeFile := os.Getenv("TALLY_THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// applyEnv applies environment overrides
func applyEnv(config *Config) {
	if path := os.Getenv("TALLY_DATA_PATH"); path != "" {
		config.DataPath = path
	}
	if level := os.Getenv("TALLY_LOG_LEVEL"); level != "" {
		config.LogLevel = level
	}
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		// Return default config if we can't determine config path
		config := Default()
		loadThemeFile(config)
		applyEnv(config)
		return config, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads config from an explicit path. A missing file yields defaults.
func LoadFile(configPath string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath, err)
		}
	}

	// Load theme from TALLY_THEME_FILE if set
	loadThemeFile(&config)
	applyEnv(&config)

	// Fill in any missing values with defaults
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}
	return c.SaveFile(configPath)
}

// SaveFile writes the config as YAML to configPath
func (c *Config) SaveFile(configPath string) error {
	// Create config directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0o644)
}

// Path returns the path to the config file.
// TALLY_CONFIG wins, then XDG_CONFIG_HOME, then ~/.config.
func Path() (string, error) {
	if explicit := os.Getenv("TALLY_CONFIG"); explicit != "" {
		return explicit, nil
	}

	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tally", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "tally", "config.yaml"), nil
}

// Validate checks values that defaults can't repair
func (c *Config) Validate() error {
	level := strings.ToLower(c.LogLevel)
	valid := false
	for _, l := range validLogLevels {
		if level == l {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("log_level %q must be one of %s", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if c.Events.DebounceMS < 0 {
		return fmt.Errorf("events.debounce_ms cannot be negative")
	}
	return c.ColorScheme.Validate()
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Events.DebounceMS == 0 {
		c.Events.DebounceMS = defaultDebounceMS
	}
	if c.Migration.KeepBackups == 0 {
		c.Migration.KeepBackups = defaultKeepBackups
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}
