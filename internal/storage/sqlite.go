package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLiteBackend stores the city in a local preferences table through
// database/sql and the pure Go sqlite driver
type SQLiteBackend struct {
	db  *sql.DB
	key string
}

func NewSQLiteBackend(db *sql.DB, key string) *SQLiteBackend {
	return &SQLiteBackend{
		db:  db,
		key: key,
	}
}

func (b *SQLiteBackend) Load(ctx context.Context) (string, bool, error) {
	var city string
	err := b.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, b.key).Scan(&city)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %s: %w", b.key, err)
	}
	return city, true, nil
}

func (b *SQLiteBackend) Save(ctx context.Context, city string) error {
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO preferences(key, value, updated_at) VALUES(?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		b.key, city, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to write preference %s: %w", b.key, err)
	}
	return nil
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
