package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valpere/pohoda/internal/database"
	"github.com/valpere/pohoda/internal/models"
)

func newSQLiteBackend(t *testing.T, path string) *SQLiteBackend {
	t.Helper()
	db, err := database.OpenSQLite(path)
	require.NoError(t, err)
	return NewSQLiteBackend(db, models.DefaultLastCityKey)
}

func TestSQLiteBackend_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	backend := newSQLiteBackend(t, filepath.Join(t.TempDir(), "pohoda.db"))
	defer backend.Close()

	_, ok, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, backend.Save(ctx, "Tokyo"))
	require.NoError(t, backend.Save(ctx, "Osaka"))

	city, ok, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Osaka", city)

	var rows int
	require.NoError(t, backend.db.QueryRow(`SELECT COUNT(*) FROM preferences`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestSQLiteBackend_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pohoda.db")

	first := newSQLiteBackend(t, path)
	require.NoError(t, first.Save(ctx, "Київ"))
	require.NoError(t, first.Close())

	second := newSQLiteBackend(t, path)
	defer second.Close()

	city, ok, err := second.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Київ", city)
}

func TestSQLiteBackend_ClosedDatabase(t *testing.T) {
	ctx := context.Background()
	backend := newSQLiteBackend(t, filepath.Join(t.TempDir(), "pohoda.db"))
	require.NoError(t, backend.Close())

	err := backend.Save(ctx, "Lima")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write preference")

	_, _, err = backend.Load(ctx)
	assert.Error(t, err)
}
