package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Postgres wraps an established Postgres connection in a bun.DB. The caller
// owns the *sql.DB lifecycle, including pooling and credentials.
func Postgres(sqldb *sql.DB) *bun.DB {
	return bun.NewDB(sqldb, pgdialect.New())
}

// SQLite wraps an established SQLite connection in a bun.DB. Used for local
// development and the test harness.
func SQLite(sqldb *sql.DB) *bun.DB {
	return bun.NewDB(sqldb, sqlitedialect.New())
}

// Migrate executes every .sql file in fsys in lexical order. Files are named
// with sortable timestamp prefixes, so lexical order is application order. The
// statements are idempotent (CREATE ... IF NOT EXISTS), making reruns safe.
func Migrate(ctx context.Context, db *bun.DB, fsys fs.FS) error {
	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(path, ".sql") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("database: walk migrations: %w", err)
	}

	sort.Strings(paths)

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("database: read migration %s: %w", path, err)
		}
		if _, err := db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("database: apply migration %s: %w", path, err)
		}
	}

	return nil
}
