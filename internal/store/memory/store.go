// Package memory implements kv.KV in process memory. Nothing survives a
// restart; it backs --ephemeral runs and tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hay-kot/taskr/internal/core/kv"
	mapkv "github.com/hay-kot/taskr/pkg/kv"
)

// Store holds JSON-encoded values keyed by string.
type Store struct {
	data *mapkv.Store[string, []byte]
}

var _ kv.KV = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{data: mapkv.New[string, []byte]()}
}

// Get unmarshals the value for key into dest. Returns an error wrapping
// kv.ErrNotFound if the key does not exist.
func (s *Store) Get(_ context.Context, key string, dest any) error {
	raw, ok := s.data.Get(key)
	if !ok {
		return fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("kv get %q unmarshal: %w", key, err)
	}
	return nil
}

// Set stores value under key. The value is marshalled immediately, so later
// changes to it are not observed.
func (s *Store) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}

	s.data.Set(key, data)
	return nil
}

// Delete removes key.
func (s *Store) Delete(_ context.Context, key string) error {
	s.data.Delete(key)
	return nil
}

// Has returns whether key exists.
func (s *Store) Has(_ context.Context, key string) (bool, error) {
	return s.data.Has(key), nil
}

// ListKeys returns all keys in sorted order.
func (s *Store) ListKeys(context.Context) ([]string, error) {
	return s.data.Keys(), nil
}
