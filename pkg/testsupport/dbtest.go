package testsupport

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"

	_ "github.com/mattn/go-sqlite3"

	pages "github.com/Breezeware-OS/dynamo-pages-template"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/database"
)

// NewBunSQLiteDB opens a named in-memory SQLite database wrapped in bun and
// applies the embedded schema migrations. Each name is an isolated database,
// so tests pass their own name (t.Name() works) to avoid sharing state. The
// pool is pinned to one connection so the memory database survives for the
// caller's lifetime.
func NewBunSQLiteDB(ctx context.Context, name string) (*bun.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("testsupport: open sqlite: %w", err)
	}
	sqldb.SetMaxOpenConns(1)

	db := database.SQLite(sqldb)
	if err := database.Migrate(ctx, db, pages.GetMigrationsFS()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
