package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/taskr/internal/core/kv"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), FileName))
}

func TestStore_MissingFileIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	var v string
	err = store.Get(ctx, "tasks", &v)
	require.ErrorIs(t, err, kv.ErrNotFound)
	assert.True(t, kv.IsNotFound(err))
}

func TestStore_SetAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	type record struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	}

	want := []record{{ID: "a", Text: "one"}, {ID: "b", Text: "two"}}
	require.NoError(t, store.Set(ctx, "tasks", want))

	var got []record
	require.NoError(t, store.Get(ctx, "tasks", &got))
	assert.Equal(t, want, got)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", FileName)

	require.NoError(t, New(path).Set(ctx, "tasks", []int{1, 2, 3}))

	var got []int
	require.NoError(t, New(path).Get(ctx, "tasks", &got))
	assert.Equal(t, []int{1, 2, 3}, got)

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestStore_DeleteAndHas(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Set(ctx, "a", 1))
	require.NoError(t, store.Set(ctx, "b", 2))

	has, err := store.Has(ctx, "a")
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, store.Delete(ctx, "a"))
	require.NoError(t, store.Delete(ctx, "missing"))

	has, err = store.Has(ctx, "a")
	require.NoError(t, err)
	assert.False(t, has)

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys)
}

func TestStore_CorruptFile(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	var v any
	err := store.Get(ctx, "tasks", &v)
	require.Error(t, err)
	assert.False(t, kv.IsNotFound(err))
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestStore_SetReplacesCorruptFile(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	require.NoError(t, store.Set(ctx, "tasks", []string{"buy milk"}))

	var got []string
	require.NoError(t, store.Get(ctx, "tasks", &got))
	assert.Equal(t, []string{"buy milk"}, got)

	backups, err := filepath.Glob(store.Path() + ".corrupt.*")
	require.NoError(t, err)
	require.Len(t, backups, 1)

	data, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestStore_DeleteOnCorruptFile(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("[1, 2"), 0o644))

	require.NoError(t, store.Delete(ctx, "tasks"))

	has, err := store.Has(ctx, "tasks")
	require.NoError(t, err)
	assert.False(t, has)
}
