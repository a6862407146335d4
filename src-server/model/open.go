package model

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

// InMemoryDSN names a private in-memory database; every connection of the
// pool opened with it sees the same data.
func InMemoryDSN(name string) string {
	if name == "" {
		name = uuid.NewString()
	}
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
}

// OpenInMemory opens the in-memory SQLite database, wraps it with bun and creates the schema.
func OpenInMemory(ctx context.Context, name string) (*sql.DB, *bun.DB, error) {
	rawDB, err := sql.Open(sqliteshim.ShimName, InMemoryDSN(name))
	if err != nil {
		return nil, nil, fmt.Errorf("OpenInMemory: %w", err)
	}
	// the database disappears with its last connection, so keep exactly one open
	rawDB.SetMaxIdleConns(1)
	rawDB.SetMaxOpenConns(1)

	bunDB := bun.NewDB(rawDB, sqlitedialect.New())
	bunDB.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithEnabled(false),
		bundebug.FromEnv("BUNDEBUG"),
	))

	if err := CreateSchema(ctx, bunDB); err != nil {
		rawDB.Close()
		return nil, nil, fmt.Errorf("OpenInMemory: %w", err)
	}
	return rawDB, bunDB, nil
}
