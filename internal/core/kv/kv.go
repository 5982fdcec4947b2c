// Package kv defines the durable key-value contract used for persistence.
// Keys are strings and values are JSON documents.
package kv

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNotFound is returned by backends that are not SQL based when a key is
// missing. SQL backends wrap sql.ErrNoRows instead; use IsNotFound to test
// for either.
var ErrNotFound = errors.New("kv: key not found")

// IsNotFound reports whether err means the key does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}

// KV is the interface for a persistent key-value store.
// Values are marshalled with encoding/json on Set and unmarshalled into dest
// on Get.
type KV interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	ListKeys(ctx context.Context) ([]string, error)
}
