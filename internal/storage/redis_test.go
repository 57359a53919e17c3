package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valpere/pohoda/internal/testutil"
)

const testRedisKey = "pohoda:last_city"

func TestRedisBackend_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("stored city", func(t *testing.T) {
		mockRedis := testutil.NewMockRedis()
		defer mockRedis.Close()
		mockRedis.ExpectGet(testRedisKey, "London")

		backend := NewRedisBackend(mockRedis.Client, testRedisKey)
		city, ok, err := backend.Load(ctx)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "London", city)
		mockRedis.ExpectationsWereMet(t)
	})

	t.Run("missing key is not an error", func(t *testing.T) {
		mockRedis := testutil.NewMockRedis()
		defer mockRedis.Close()
		mockRedis.ExpectMiss(testRedisKey)

		backend := NewRedisBackend(mockRedis.Client, testRedisKey)
		city, ok, err := backend.Load(ctx)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, city)
		mockRedis.ExpectationsWereMet(t)
	})

	t.Run("connection error", func(t *testing.T) {
		mockRedis := testutil.NewMockRedis()
		defer mockRedis.Close()
		mockRedis.Mock.ExpectGet(testRedisKey).SetErr(errors.New("connection refused"))

		backend := NewRedisBackend(mockRedis.Client, testRedisKey)
		_, ok, err := backend.Load(ctx)

		require.Error(t, err)
		assert.False(t, ok)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestRedisBackend_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("writes without expiry", func(t *testing.T) {
		mockRedis := testutil.NewMockRedis()
		defer mockRedis.Close()
		mockRedis.ExpectSet(testRedisKey, "Kyiv")

		backend := NewRedisBackend(mockRedis.Client, testRedisKey)

		require.NoError(t, backend.Save(ctx, "Kyiv"))
		mockRedis.ExpectationsWereMet(t)
	})

	t.Run("write error surfaces through the store", func(t *testing.T) {
		mockRedis := testutil.NewMockRedis()
		defer mockRedis.Close()
		mockRedis.ExpectMiss(testRedisKey)
		mockRedis.Mock.ExpectSet(testRedisKey, "Kyiv", 0).SetErr(errors.New("READONLY"))

		store := NewCityStore(ctx, NewRedisBackend(mockRedis.Client, testRedisKey), testutil.NewSilentTestLogger())
		err := store.Save(ctx, "Kyiv")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPersistence)
		assert.False(t, store.Current().Present)
		mockRedis.ExpectationsWereMet(t)
	})
}
