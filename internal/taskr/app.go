// Package taskr wires the task controller to its storage, saver and event
// bus. Commands and the TUI consume App instead of assembling the pieces
// themselves.
package taskr

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hay-kot/taskr/internal/core/config"
	"github.com/hay-kot/taskr/internal/core/eventbus"
	"github.com/hay-kot/taskr/internal/core/kv"
	"github.com/hay-kot/taskr/internal/core/persist"
	"github.com/hay-kot/taskr/internal/core/task"
	"github.com/hay-kot/taskr/internal/data/db"
	"github.com/hay-kot/taskr/internal/data/stores"
	"github.com/hay-kot/taskr/internal/store/jsonfile"
	"github.com/hay-kot/taskr/internal/store/memory"
)

// busBuffer is the event bus channel size.
const busBuffer = 256

// App is the central entry point for all taskr operations.
type App struct {
	Tasks  *task.Controller
	Store  *stores.TaskStore
	Saver  *persist.Saver
	Bus    *eventbus.EventBus
	Config *config.Config
	DB     *db.DB // nil unless the sqlite backend is in use

	stopBus context.CancelFunc
	busDone chan struct{}
}

// Open builds an App for cfg and loads the persisted task list.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	store, database, err := openKV(cfg, logger)
	if err != nil {
		return nil, err
	}

	app := &App{
		Store:   stores.NewTaskStore(store, string(cfg.Storage.Backend), logger),
		Config:  cfg,
		DB:      database,
		Bus:     eventbus.New(busBuffer),
		busDone: make(chan struct{}),
	}

	eventbus.RegisterDebugLogger(app.Bus, logger)
	eventbus.NewNotificationRouter(app.Bus).Register()

	busCtx, cancel := context.WithCancel(context.Background())
	app.stopBus = cancel
	go func() {
		defer close(app.busDone)
		app.Bus.Start(busCtx)
	}()

	app.Saver = persist.New(app.Store, persist.Options{
		Policy:   cfg.Save.Policy,
		Debounce: cfg.Save.Debounce,
		OnResult: app.publishResult,
	}, logger)

	app.Tasks = task.NewController(task.Deps{
		Store:    app.Store,
		Saver:    app.Saver,
		IDs:      task.NewIDGenerator(cfg.IDs.Style),
		Notifier: eventbus.NewTaskNotifier(app.Bus),
		Logger:   logger,
	})
	app.Tasks.Initialize(ctx)

	return app, nil
}

// Flush waits until every scheduled snapshot has been written. It fails
// when the most recent write did not succeed.
func (a *App) Flush(ctx context.Context) error {
	if err := a.Saver.Flush(ctx); err != nil {
		return err
	}
	if n := a.Saver.Failures(); n > 0 {
		return fmt.Errorf("tasks not saved: %d write(s) failed", n)
	}
	return nil
}

// Close flushes pending writes, stops the bus and releases the backend.
func (a *App) Close(ctx context.Context) error {
	var errs []error

	if a.Saver != nil {
		if err := a.Saver.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close saver: %w", err))
		}
	}

	if a.stopBus != nil {
		a.stopBus()
		select {
		case <-a.busDone:
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("stop event bus: %w", ctx.Err()))
		}
	}

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (a *App) publishResult(r persist.Result) {
	if r.Err != nil {
		a.Bus.PublishSaveFailed(eventbus.SaveFailedPayload{
			Err:      r.Err,
			Count:    r.Count,
			Failures: r.Failures,
		})
		return
	}

	a.Bus.PublishSaveCompleted(eventbus.SaveCompletedPayload{
		Count:    r.Count,
		Duration: r.Duration,
	})
}

func openKV(cfg *config.Config, logger zerolog.Logger) (kv.KV, *db.DB, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return memory.New(), nil, nil
	case config.BackendJSON:
		return jsonfile.New(cfg.JSONPath()), nil, nil
	case config.BackendSQLite, "":
		opts := db.OpenOptions{
			MaxOpenConns: cfg.Storage.MaxOpenConns,
			BusyTimeout:  cfg.Storage.BusyTimeout,
		}
		database, err := stores.OpenDB(cfg.DataDir, opts, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		return stores.NewKVStore(database), database, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
