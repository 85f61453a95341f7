package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
)

var _ domain.DeviceStorage = (*SQLiteStorage)(nil)

const storageSchema = `
CREATE TABLE IF NOT EXISTS device_storage (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

type storageRow struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

type SQLiteStorage struct {
	db *sqlx.DB
}

// OpenSQLiteStorage opens (or creates) the storage file and its table.
func OpenSQLiteStorage(ctx context.Context, path string) (*SQLiteStorage, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repository: open sqlite failed: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, storageSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("repository: migrate sqlite failed: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var row storageRow
	err := s.db.GetContext(ctx, &row, `SELECT key, value, updated_at FROM device_storage WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("repository: get item failed: %w", err)
	}
	return row.Value, true, nil
}

func (s *SQLiteStorage) SetItem(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	row := storageRow{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	query := `
		INSERT INTO device_storage (key, value, updated_at)
		VALUES (:key, :value, :updated_at)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("repository: set item failed: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) RemoveItem(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM device_storage WHERE key = ?`, key); err != nil {
		return fmt.Errorf("repository: remove item failed: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
