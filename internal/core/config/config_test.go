package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/taskr/internal/core/persist"
	"github.com/hay-kot/taskr/internal/core/task"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dataDir := t.TempDir()

	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yaml")} {
		cfg, err := Load(path, dataDir)
		require.NoError(t, err)

		assert.Equal(t, dataDir, cfg.DataDir)
		assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
		assert.Equal(t, 5000, cfg.Storage.BusyTimeout)
		assert.Equal(t, 4, cfg.Storage.MaxOpenConns)
		assert.Equal(t, persist.PolicyImmediate, cfg.Save.Policy)
		assert.Equal(t, 250*time.Millisecond, cfg.Save.Debounce)
		assert.Equal(t, task.IDStyleUUID, cfg.IDs.Style)
		assert.True(t, cfg.TUI.ShouldConfirmDelete())
		assert.Equal(t, "tokyo-night", cfg.TUI.Theme)
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: json
save:
  policy: debounce
  debounce: 1s
ids:
  style: short
tui:
  confirm_delete: false
  theme: gruvbox
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, BackendJSON, cfg.Storage.Backend)
	assert.Equal(t, 5000, cfg.Storage.BusyTimeout, "unset fields keep defaults")
	assert.Equal(t, persist.PolicyDebounce, cfg.Save.Policy)
	assert.Equal(t, time.Second, cfg.Save.Debounce)
	assert.Equal(t, task.IDStyleShort, cfg.IDs.Style)
	assert.False(t, cfg.TUI.ShouldConfirmDelete())
	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
}

func TestLoad_ParseError(t *testing.T) {
	_, err := Load(writeConfig(t, "storage: [not, a, map"), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: postgres
save:
  policy: eventually
ids:
  style: sequential
`)

	_, err := Load(path, t.TempDir())
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"storage.backend", "save.policy", "ids.style"}, fields)
}

func TestRead_SkipsValidation(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: postgres
`)

	cfg, err := Read(path, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Backend("postgres"), cfg.Storage.Backend)
	assert.Error(t, cfg.Validate())
}

func TestPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/data/taskr"

	assert.Equal(t, "/data/taskr/taskr.json", cfg.JSONPath())
	assert.Equal(t, "/data/taskr/taskr.log", cfg.LogFile())
}

func TestBackend_IsValid(t *testing.T) {
	for _, b := range []Backend{BackendSQLite, BackendJSON, BackendMemory} {
		assert.True(t, b.IsValid(), b)
	}
	assert.False(t, Backend("").IsValid())
	assert.False(t, Backend("redis").IsValid())
}
