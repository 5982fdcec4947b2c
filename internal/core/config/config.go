// Package config handles configuration loading and validation for taskr.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/taskr/internal/core/persist"
	"github.com/hay-kot/taskr/internal/core/styles"
	"github.com/hay-kot/taskr/internal/core/task"
)

// Backend selects the KV implementation tasks are stored in.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendJSON   Backend = "json"
	BackendMemory Backend = "memory"
)

// IsValid reports whether b is a supported backend.
func (b Backend) IsValid() bool {
	switch b {
	case BackendSQLite, BackendJSON, BackendMemory:
		return true
	default:
		return false
	}
}

// Config holds the application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Save    SaveConfig    `yaml:"save"`
	IDs     IDConfig      `yaml:"ids"`
	TUI     TUIConfig     `yaml:"tui"`
	DataDir string        `yaml:"-"` // set by caller, not from config file
}

// StorageConfig selects and tunes the persistence backend.
type StorageConfig struct {
	Backend      Backend `yaml:"backend"`
	BusyTimeout  int     `yaml:"busy_timeout"` // sqlite, milliseconds
	MaxOpenConns int     `yaml:"max_open_conns"`
}

// SaveConfig controls when snapshots are written.
type SaveConfig struct {
	Policy   persist.Policy `yaml:"policy"`
	Debounce time.Duration  `yaml:"debounce"`
}

// IDConfig controls how task ids are generated.
type IDConfig struct {
	Style task.IDStyle `yaml:"style"`
}

// TUIConfig holds terminal UI preferences.
type TUIConfig struct {
	// ConfirmDelete asks y/n before deleting. A pointer so an explicit false
	// in the file is distinguishable from an unset value.
	ConfirmDelete *bool `yaml:"confirm_delete"`
	// Theme names a built-in color palette.
	Theme string `yaml:"theme"`
}

// ShouldConfirmDelete reports whether the TUI asks before deleting.
func (t TUIConfig) ShouldConfirmDelete() bool {
	return t.ConfirmDelete == nil || *t.ConfirmDelete
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend:      BackendSQLite,
			BusyTimeout:  5000,
			MaxOpenConns: 4,
		},
		Save: SaveConfig{
			Policy:   persist.PolicyImmediate,
			Debounce: persist.DefaultDebounce,
		},
		IDs: IDConfig{
			Style: task.IDStyleUUID,
		},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg, err := Read(configPath, dataDir)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read is Load without validation.
func Read(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Storage.BusyTimeout == 0 {
		c.Storage.BusyTimeout = defaults.Storage.BusyTimeout
	}
	if c.Storage.MaxOpenConns == 0 {
		c.Storage.MaxOpenConns = defaults.Storage.MaxOpenConns
	}
	if c.Save.Policy == "" {
		c.Save.Policy = defaults.Save.Policy
	}
	if c.Save.Debounce == 0 {
		c.Save.Debounce = defaults.Save.Debounce
	}
	if c.IDs.Style == "" {
		c.IDs.Style = defaults.IDs.Style
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// JSONPath returns the JSON backend document.
func (c *Config) JSONPath() string {
	return filepath.Join(c.DataDir, "taskr.json")
}

// LogFile returns the default log destination.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "taskr.log")
}
