// Package storage persists whole snapshots under fixed keys. It is the
// server-side counterpart of the browser's local storage: a flat key/value
// space where every write replaces the previous value.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Load when nothing was ever saved under a key
	ErrNotFound = errors.New("snapshot not found")
	// ErrQuotaExceeded is returned by Save when the backend refuses the size
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Store loads and saves snapshot payloads by key
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}
