// Package jsonfile implements kv.KV as a single JSON document on disk.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/hay-kot/taskr/internal/core/kv"
)

// FileName is the document created inside the data directory.
const FileName = "taskr.json"

// ErrCorrupt is returned by reads when the file is not a JSON object.
var ErrCorrupt = errors.New("jsonfile: corrupt document")

// Store keeps every key in one JSON object, rewriting the whole file on each
// mutation. A missing file is an empty store. Reads of a corrupt file fail
// with ErrCorrupt; the next write moves it aside as <file>.corrupt.<ts> and
// starts a new document.
type Store struct {
	path string
	mu   sync.RWMutex
}

var _ kv.KV = (*Store)(nil)

// New creates a store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Get unmarshals the value for key into dest. Returns an error wrapping
// kv.ErrNotFound if the key does not exist.
func (s *Store) Get(ctx context.Context, key string, dest any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	raw, ok := doc[key]
	if !ok {
		return fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("kv get %q unmarshal: %w", key, err)
	}
	return nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadForWrite()
	if err != nil {
		return err
	}

	doc[key] = data
	if err := s.save(doc); err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadForWrite()
	if err != nil {
		return err
	}

	if _, ok := doc[key]; !ok {
		return nil
	}

	delete(doc, key)
	if err := s.save(doc); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Has returns whether key exists.
func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load()
	if err != nil {
		return false, err
	}

	_, ok := doc[key]
	return ok, nil
}

// ListKeys returns all keys in sorted order.
func (s *Store) ListKeys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// load reads the document from disk.
// Returns an empty document if the file doesn't exist or is empty.
func (s *Store) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	if len(data) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %w", s.path, ErrCorrupt, err)
	}
	if doc == nil {
		doc = map[string]json.RawMessage{}
	}

	return doc, nil
}

// loadForWrite is load for mutations: a corrupt file is moved aside and an
// empty document returned in its place.
func (s *Store) loadForWrite() (map[string]json.RawMessage, error) {
	doc, err := s.load()
	if err == nil || !errors.Is(err, ErrCorrupt) {
		return doc, err
	}

	backup := fmt.Sprintf("%s.corrupt.%s", s.path, time.Now().Format("20060102-150405"))
	if err := os.Rename(s.path, backup); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("move corrupt %s aside: %w", s.path, err)
	}

	return map[string]json.RawMessage{}, nil
}

// save writes the document atomically: temp file, fsync, rename.
func (s *Store) save(doc map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmp, s.path)
}
