package stores

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hay-kot/taskr/internal/core/kv"
	"github.com/hay-kot/taskr/internal/core/task"
)

// TasksKey is the key the collection is persisted under.
const TasksKey = "tasks"

// TaskStore persists the task collection as a single JSON array in a KV
// backend.
type TaskStore struct {
	key     *kv.Typed[json.RawMessage]
	backend string
	log     zerolog.Logger
}

var _ task.Loader = (*TaskStore)(nil)

// NewTaskStore creates a task store over store. backend names the KV
// implementation in log output.
func NewTaskStore(store kv.KV, backend string, logger zerolog.Logger) *TaskStore {
	return &TaskStore{
		key:     kv.Key[json.RawMessage](store, TasksKey),
		backend: backend,
		log: logger.With().
			Str("component", "task-store").
			Str("backend", backend).
			Logger(),
	}
}

// Load returns the persisted collection. A missing key, a backend error or
// an undecodable value all yield an empty collection; failures are logged.
func (s *TaskStore) Load(ctx context.Context) task.Collection {
	raw, err := s.key.Get(ctx)
	if err != nil {
		if kv.IsNotFound(err) {
			s.log.Debug().Str("key", s.key.Name()).Msg("no persisted tasks")
		} else {
			s.log.Error().Err(err).Str("key", s.key.Name()).Msg("failed to read tasks")
		}
		return task.Collection{}
	}

	tasks, err := task.Decode(raw)
	if err != nil {
		s.log.Error().Err(err).Str("key", s.key.Name()).Msg("failed to decode tasks")
		return task.Collection{}
	}

	return tasks
}

// Save replaces the persisted collection with tasks.
func (s *TaskStore) Save(ctx context.Context, tasks task.Collection) error {
	data, err := task.Encode(tasks)
	if err != nil {
		return err
	}

	if err := s.key.Set(ctx, json.RawMessage(data)); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}

	return nil
}
