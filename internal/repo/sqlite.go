package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver for database/sql
)

// SQLiteStore is a BlobStore backed by a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the SQLite database at path and applies the
// embedded migrations. Missing parent directories are created.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("repo.OpenSQLite: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(filepath.Clean(path)), 0o755); err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: %w", err)
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: open: %w", err)
	}
	// One connection: the trip store is the only writer, and SQLite
	// serializes writers anyway.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: ping: %w", err)
	}
	if err := Migrate(ctx, sqlDB, goose.DialectSQLite3); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: %w", err)
	}
	return &SQLiteStore{db: sqlDB}, nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get selects the payload for key.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM kv_blobs WHERE key = ?`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("repo.SQLiteStore.Get: %w", err)
	}
	return payload, true, nil
}

// Set upserts the payload for key.
func (s *SQLiteStore) Set(ctx context.Context, key string, payload []byte) error {
	const q = `
		INSERT INTO kv_blobs (key, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE
		SET payload    = excluded.payload,
		    updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, q, key, payload, time.Now().UTC().UnixMilli()); err != nil {
		return fmt.Errorf("repo.SQLiteStore.Set: %w", err)
	}
	return nil
}

// Remove deletes the row for key.
func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_blobs WHERE key = ?`, key); err != nil {
		return fmt.Errorf("repo.SQLiteStore.Remove: %w", err)
	}
	return nil
}
