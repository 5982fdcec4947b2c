package kv

import "context"

// Typed provides type-safe access to a single key of a KV store.
type Typed[T any] struct {
	store KV
	key   string
}

// Key returns a Typed[T] bound to key.
func Key[T any](store KV, key string) *Typed[T] {
	return &Typed[T]{store: store, key: key}
}

// Name returns the bound key.
func (t *Typed[T]) Name() string {
	return t.key
}

// Get retrieves and deserializes the value.
func (t *Typed[T]) Get(ctx context.Context) (T, error) {
	var v T
	if err := t.store.Get(ctx, t.key, &v); err != nil {
		return v, err
	}
	return v, nil
}

// Set stores the value, replacing any previous one.
func (t *Typed[T]) Set(ctx context.Context, value T) error {
	return t.store.Set(ctx, t.key, value)
}

// Delete removes the key.
func (t *Typed[T]) Delete(ctx context.Context) error {
	return t.store.Delete(ctx, t.key)
}

// Has returns whether the key exists.
func (t *Typed[T]) Has(ctx context.Context) (bool, error) {
	return t.store.Has(ctx, t.key)
}
