package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_Load(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, "test:")

	t.Run("existing snapshot", func(t *testing.T) {
		mock.ExpectGet("test:kampong_connect_requests").SetVal(`{"version":1}`)

		data, err := store.Load(ctx, "kampong_connect_requests")
		require.NoError(t, err)
		assert.Equal(t, `{"version":1}`, string(data))
	})

	t.Run("missing snapshot", func(t *testing.T) {
		mock.ExpectGet("test:kampong_connect_requests").RedisNil()

		_, err := store.Load(ctx, "kampong_connect_requests")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("connection failure", func(t *testing.T) {
		mock.ExpectGet("test:kampong_connect_requests").SetErr(errors.New("connection refused"))

		_, err := store.Load(ctx, "kampong_connect_requests")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_Save(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, "")

	t.Run("successful save", func(t *testing.T) {
		payload := []byte(`{"version":1}`)
		mock.ExpectSet("kampong_connect_registered_users", payload, 0).SetVal("OK")

		err := store.Save(ctx, "kampong_connect_registered_users", payload)
		assert.NoError(t, err)
	})

	t.Run("failed save", func(t *testing.T) {
		payload := []byte(`{"version":1}`)
		mock.ExpectSet("kampong_connect_registered_users", payload, 0).SetErr(errors.New("i/o timeout"))

		err := store.Save(ctx, "kampong_connect_registered_users", payload)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "i/o timeout")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
