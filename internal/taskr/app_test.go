package taskr

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/taskr/internal/core/config"
	"github.com/hay-kot/taskr/internal/core/eventbus"
	"github.com/hay-kot/taskr/internal/data/db"
)

func testConfig(t *testing.T, backend config.Backend) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Storage.Backend = backend
	return &cfg
}

func openApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	app, err := Open(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	return app
}

func closeApp(t *testing.T, app *App) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, app.Close(ctx))
}

func TestOpen_PersistsAcrossRestarts(t *testing.T) {
	for _, backend := range []config.Backend{config.BackendSQLite, config.BackendJSON} {
		t.Run(string(backend), func(t *testing.T) {
			cfg := testConfig(t, backend)

			app := openApp(t, cfg)
			app.Tasks.AddTask("buy milk")
			app.Tasks.AddTask("walk dog")
			first := app.Tasks.Tasks()[0]
			app.Tasks.ToggleCompletion(first.ID)
			closeApp(t, app)

			reopened := openApp(t, cfg)
			defer closeApp(t, reopened)

			tasks := reopened.Tasks.Tasks()
			require.Len(t, tasks, 2)
			assert.Equal(t, first.ID, tasks[0].ID)
			assert.Equal(t, "buy milk", tasks[0].Text)
			assert.True(t, tasks[0].Completed)
			assert.Equal(t, "walk dog", tasks[1].Text)
			assert.False(t, tasks[1].Completed)
		})
	}
}

func TestOpen_SQLiteCreatesDatabase(t *testing.T) {
	cfg := testConfig(t, config.BackendSQLite)

	app := openApp(t, cfg)
	require.NotNil(t, app.DB)
	closeApp(t, app)

	_, err := os.Stat(filepath.Join(cfg.DataDir, db.FileName))
	assert.NoError(t, err)
}

func TestOpen_MemoryIsEphemeral(t *testing.T) {
	cfg := testConfig(t, config.BackendMemory)

	app := openApp(t, cfg)
	assert.Nil(t, app.DB)
	app.Tasks.AddTask("gone soon")
	require.NoError(t, app.Flush(context.Background()))
	closeApp(t, app)

	reopened := openApp(t, cfg)
	defer closeApp(t, reopened)
	assert.Empty(t, reopened.Tasks.Tasks())

	entries, err := os.ReadDir(cfg.DataDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := testConfig(t, config.Backend("carrier-pigeon"))

	_, err := Open(context.Background(), cfg, zerolog.Nop())
	assert.ErrorContains(t, err, "carrier-pigeon")
}

func TestOpen_CorruptJSONStartsEmpty(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "value not an array", data: `{"tasks": {"not": "an array"}}`},
		{name: "not json", data: `not json{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, config.BackendJSON)
			require.NoError(t, os.WriteFile(cfg.JSONPath(), []byte(tt.data), 0o644))

			app := openApp(t, cfg)
			assert.Empty(t, app.Tasks.Tasks())

			app.Tasks.AddTask("Buy milk")
			require.NoError(t, app.Flush(context.Background()))
			closeApp(t, app)

			reopened := openApp(t, cfg)
			defer closeApp(t, reopened)

			tasks := reopened.Tasks.Tasks()
			require.Len(t, tasks, 1)
			assert.Equal(t, "Buy milk", tasks[0].Text)
		})
	}
}

func TestApp_PublishesSaveCompleted(t *testing.T) {
	cfg := testConfig(t, config.BackendMemory)
	app := openApp(t, cfg)
	defer closeApp(t, app)

	saved := make(chan eventbus.SaveCompletedPayload, 4)
	app.Bus.SubscribeSaveCompleted(func(p eventbus.SaveCompletedPayload) {
		saved <- p
	})

	app.Tasks.AddTask("observe me")

	select {
	case p := <-saved:
		assert.Equal(t, 1, p.Count)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for save.completed")
	}
}

func TestApp_CloseIsIdempotent(t *testing.T) {
	app := openApp(t, testConfig(t, config.BackendMemory))
	closeApp(t, app)
	closeApp(t, app)
}
