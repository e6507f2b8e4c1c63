// Package dbtest provides throwaway databases for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/studybud-project/backend/internal/database"
	"github.com/studybud-project/backend/internal/database/models"
)

// New returns an in-memory SQLite database with the forum schema applied. It
// is closed when the test finishes.
func New(t testing.TB) *bun.DB {
	t.Helper()

	sqldb, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	models.Register(db)
	t.Cleanup(func() { _ = db.Close() })

	if err := database.CreateTables(context.Background(), db); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	return db
}
