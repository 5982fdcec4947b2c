package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/taskr/internal/core/styles"
)

// Validate checks that the configuration is structurally valid. All field
// errors are reported together as criterio.FieldErrors.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.DataDir == "" {
		errs = errs.Append("data_dir", errors.New("data directory cannot be empty"))
	}
	if !c.Storage.Backend.IsValid() {
		errs = errs.Append("storage.backend", fmt.Errorf("must be one of sqlite, json, memory; got %q", c.Storage.Backend))
	}
	if c.Storage.BusyTimeout < 0 {
		errs = errs.Append("storage.busy_timeout", errors.New("must not be negative"))
	}
	if c.Storage.MaxOpenConns < 1 {
		errs = errs.Append("storage.max_open_conns", errors.New("must be at least 1"))
	}
	if !c.Save.Policy.IsValid() {
		errs = errs.Append("save.policy", fmt.Errorf("must be immediate or debounce; got %q", c.Save.Policy))
	}
	if c.Save.Debounce < 0 {
		errs = errs.Append("save.debounce", errors.New("must not be negative"))
	}
	if !c.IDs.Style.IsValid() {
		errs = errs.Append("ids.style", fmt.Errorf("must be uuid or short; got %q", c.IDs.Style))
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		errs = errs.Append("tui.theme", fmt.Errorf("must be one of %s; got %q", strings.Join(styles.ThemeNames(), ", "), c.TUI.Theme))
	}

	return errs.ToError()
}

// ValidateDeep runs Validate and then checks the filesystem: the config
// file must be a regular file if present and the data directory must be a
// directory or not exist yet.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return errors.New("exists but is not a directory")
	}
	return nil
}
