package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valpere/pohoda/internal/models"
	"github.com/valpere/pohoda/internal/testutil"
)

// failingBackend fails every call with err
type failingBackend struct {
	err    error
	closed bool
}

func (b *failingBackend) Load(ctx context.Context) (string, bool, error) { return "", false, b.err }
func (b *failingBackend) Save(ctx context.Context, city string) error    { return b.err }
func (b *failingBackend) Close() error {
	b.closed = true
	return nil
}

func receive(t *testing.T, ch <-chan models.LastCity) models.LastCity {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for last city")
		return models.LastCity{}
	}
}

func TestNewCityStore(t *testing.T) {
	ctx := context.Background()
	logger := testutil.NewSilentTestLogger()

	t.Run("empty backend", func(t *testing.T) {
		store := NewCityStore(ctx, NewMemoryBackend(), logger)

		assert.Equal(t, models.NoLastCity(), store.Current())
	})

	t.Run("seeded backend", func(t *testing.T) {
		store := NewCityStore(ctx, NewMemoryBackendWith("Paris"), logger)

		assert.Equal(t, models.KnownLastCity("Paris"), store.Current())
	})

	t.Run("load failure starts without a city", func(t *testing.T) {
		tl := testutil.NewTestLogger()
		store := NewCityStore(ctx, &failingBackend{err: errors.New("disk on fire")}, tl.Logger)

		assert.Equal(t, models.NoLastCity(), store.Current())
		tl.AssertLogLevel(t, "warn")
		tl.AssertLogContains(t, "disk on fire")
	})
}

func TestCityStore_Save(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	store := NewCityStore(ctx, backend, testutil.NewSilentTestLogger())

	require.NoError(t, store.Save(ctx, "London"))

	assert.Equal(t, models.KnownLastCity("London"), store.Current())

	city, ok, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "London", city)
}

func TestCityStore_SaveFailure(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("read-only file system")
	store := NewCityStore(ctx, &failingBackend{err: cause}, testutil.NewSilentTestLogger())

	err := store.Save(ctx, "London")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, models.NoLastCity(), store.Current(), "failed write must not be published")
}

func TestCityStore_Watch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewCityStore(ctx, NewMemoryBackendWith("Kyiv"), testutil.NewSilentTestLogger())
	updates := store.Watch(ctx)

	assert.Equal(t, models.KnownLastCity("Kyiv"), receive(t, updates))

	require.NoError(t, store.Save(ctx, "Lviv"))
	require.NoError(t, store.Save(ctx, "Odesa"))

	assert.Equal(t, models.KnownLastCity("Lviv"), receive(t, updates))
	assert.Equal(t, models.KnownLastCity("Odesa"), receive(t, updates))

	cancel()
	select {
	case _, ok := <-updates:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("watch channel not closed after cancel")
	}
}

func TestCityStore_First(t *testing.T) {
	ctx := context.Background()

	t.Run("returns current value", func(t *testing.T) {
		store := NewCityStore(ctx, NewMemoryBackendWith("Rome"), testutil.NewSilentTestLogger())

		city, err := store.First(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.KnownLastCity("Rome"), city)
	})

	t.Run("absent value", func(t *testing.T) {
		store := NewCityStore(ctx, NewMemoryBackend(), testutil.NewSilentTestLogger())

		city, err := store.First(ctx)
		require.NoError(t, err)
		assert.False(t, city.Present)
	})

	t.Run("canceled context", func(t *testing.T) {
		store := NewCityStore(ctx, NewMemoryBackend(), testutil.NewSilentTestLogger())
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		// The subscription may win the race against cancellation; either
		// outcome must not block
		_, err := store.First(canceled)
		if err != nil {
			assert.ErrorIs(t, err, context.Canceled)
		}
	})
}

func TestCityStore_Close(t *testing.T) {
	backend := &failingBackend{}
	store := NewCityStore(context.Background(), backend, testutil.NewSilentTestLogger())

	require.NoError(t, store.Close())
	assert.True(t, backend.closed)
}

func TestMemoryBackend_SaveCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	backend := NewMemoryBackend()
	assert.ErrorIs(t, backend.Save(ctx, "Oslo"), context.Canceled)

	_, ok, err := backend.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}
