package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgBlobStore is the Postgres implementation of BlobStore, backed by the
// kv_blobs table created by migrations/postgres.
type pgBlobStore struct {
	db db
}

// NewPostgresStore constructs a BlobStore backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresStore(db db) BlobStore {
	return &pgBlobStore{db: db}
}

// Get selects the payload for key.
func (r *pgBlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const q = `SELECT payload FROM kv_blobs WHERE key = @key`

	var payload []byte
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("repo.PostgresStore.Get: %w", err)
	}
	return payload, true, nil
}

// Set upserts the payload for key in a single statement, so the row is
// replaced atomically.
func (r *pgBlobStore) Set(ctx context.Context, key string, payload []byte) error {
	const q = `
		INSERT INTO kv_blobs (key, payload, updated_at)
		VALUES (@key, @payload, now())
		ON CONFLICT (key) DO UPDATE
		SET payload    = EXCLUDED.payload,
		    updated_at = EXCLUDED.updated_at`

	args := pgx.NamedArgs{
		"key":     key,
		"payload": payload,
	}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.PostgresStore.Set: %w", err)
	}
	return nil
}

// Remove deletes the row for key. Zero affected rows is fine.
func (r *pgBlobStore) Remove(ctx context.Context, key string) error {
	const q = `DELETE FROM kv_blobs WHERE key = @key`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key}); err != nil {
		return fmt.Errorf("repo.PostgresStore.Remove: %w", err)
	}
	return nil
}
