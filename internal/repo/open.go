package repo

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
)

// StoreConfig selects and locates a BlobStore backend.
type StoreConfig struct {
	// Driver is one of file, sqlite, postgres or memory.
	Driver string
	// DataDir holds the file backend's blobs and the SQLite database file.
	DataDir string
	// DatabaseURL is the Postgres connection string.
	DatabaseURL string
}

// SQLiteFile is the database file name the sqlite driver uses under DataDir.
const SQLiteFile = "trips.db"

// OpenStore opens the backend named by cfg.Driver, applying migrations for
// the SQL backends. The returned close function releases it and is never nil.
func OpenStore(ctx context.Context, cfg StoreConfig) (BlobStore, func(), error) {
	noop := func() {}
	switch cfg.Driver {
	case "memory":
		return NewMemoryStore(), noop, nil

	case "file", "":
		s, err := NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, noop, fmt.Errorf("repo.OpenStore: %w", err)
		}
		return s, noop, nil

	case "sqlite":
		s, err := OpenSQLite(ctx, filepath.Join(cfg.DataDir, SQLiteFile))
		if err != nil {
			return nil, noop, fmt.Errorf("repo.OpenStore: %w", err)
		}
		return s, func() { _ = s.Close() }, nil

	case "postgres":
		if err := migratePostgres(ctx, cfg.DatabaseURL); err != nil {
			return nil, noop, fmt.Errorf("repo.OpenStore: %w", err)
		}
		// pgxpool.New does not open connections immediately; the ping does.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("repo.OpenStore: create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("repo.OpenStore: ping: %w", err)
		}
		return NewPostgresStore(pool), pool.Close, nil

	default:
		return nil, noop, fmt.Errorf("repo.OpenStore: unknown driver %q", cfg.Driver)
	}
}

// migratePostgres applies the embedded migrations through a short-lived
// database/sql handle, which goose requires.
func migratePostgres(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer sqlDB.Close()
	return Migrate(ctx, sqlDB, goose.DialectPostgres)
}
