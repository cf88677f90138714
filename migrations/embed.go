// Package migrations embeds the SQL migration files so they can be used
// by the goose programmatic API in tests and server bootstrap.
// Each supported dialect has its own directory.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// FS holds all *.sql migration files embedded at compile time.
// Use For to get the directory of one dialect.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// For returns the migrations for dialect, rooted so goose sees the files at
// the top level.
func For(dialect goose.Dialect) (fs.FS, error) {
	switch dialect {
	case goose.DialectPostgres:
		return fs.Sub(FS, "postgres")
	case goose.DialectSQLite3:
		return fs.Sub(FS, "sqlite")
	default:
		return nil, fmt.Errorf("migrations: unsupported dialect %q", dialect)
	}
}
