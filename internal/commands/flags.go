package commands

import (
	"os"
	"path/filepath"

	"github.com/hay-kot/taskr/internal/core/config"
	"github.com/hay-kot/taskr/pkg/utils"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	Backend    string
	Ephemeral  bool

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// LogOutput carries stderr logging so the TUI can hold it while running
	LogOutput *utils.DeferredWriter
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "taskr", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "taskr")
}

// StorageBackend resolves the backend chosen on the command line. Ephemeral
// wins over an explicit backend; an empty result keeps the configured one.
func (f *Flags) StorageBackend() config.Backend {
	if f.Ephemeral {
		return config.BackendMemory
	}
	return config.Backend(f.Backend)
}
