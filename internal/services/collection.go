package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kampongconnect/backend/internal/snapshot"
	"github.com/kampongconnect/backend/internal/storage"
)

// collection ties one in-memory slice to its snapshot key. Callers build the
// next state on a copy and only adopt it once save succeeds, so a failed
// write leaves the last durable state in place.
type collection[T any] struct {
	store storage.Store
	key   string
	codec *snapshot.Codec[T]
	now   func() time.Time
}

// load returns the persisted records. found is false when nothing was ever
// saved under the key, which is the only case seeding may run.
func (c *collection[T]) load(ctx context.Context) (records []T, found bool, err error) {
	data, err := c.store.Load(ctx, c.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, persistenceErr("failed to read "+c.key, err)
	}

	records, err = c.codec.Decode(data)
	if err != nil {
		return nil, true, persistenceErr("failed to decode "+c.key, err)
	}
	return records, true, nil
}

func (c *collection[T]) exists(ctx context.Context) (bool, error) {
	_, err := c.store.Load(ctx, c.key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, persistenceErr("failed to read "+c.key, err)
	}
	return true, nil
}

func (c *collection[T]) save(ctx context.Context, records []T) error {
	data, err := c.codec.Encode(records, c.now())
	if err != nil {
		return persistenceErr("failed to encode "+c.key, err)
	}
	if err := c.store.Save(ctx, c.key, data); err != nil {
		return persistenceErr("failed to save "+c.key, err)
	}
	return nil
}

// stamp normalizes timestamps to the precision snapshots keep
func stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
