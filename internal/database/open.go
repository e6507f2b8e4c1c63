package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	"github.com/studybud-project/backend/internal/database/models"
)

const sqliteDriverName = "sqlite"

// Open connects to the database named by uri. postgres:// and postgresql://
// URIs use pgx, sqlite: URIs use the pure Go SQLite driver.
func Open(uri string) (db *bun.DB, err error) {
	switch {
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		var dbConfig *pgx.ConnConfig
		if dbConfig, err = pgx.ParseConfig(uri); err != nil {
			err = fmt.Errorf("unable to parse postgres uri: %w", err)
			return
		}

		db = bun.NewDB(stdlib.OpenDB(*dbConfig), pgdialect.New())
	case strings.HasPrefix(uri, "sqlite:"):
		var sqldb *sql.DB
		if sqldb, err = OpenSQLite(strings.TrimPrefix(strings.TrimPrefix(uri, "sqlite:"), "//")); err != nil {
			return
		}

		db = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		err = fmt.Errorf("unsupported database uri %q", uri)
		return
	}

	models.Register(db)
	return
}

// OpenSQLite opens a SQLite database at dsn with the settings the forum relies
// on. A single connection keeps ":memory:" databases alive and serializes
// writers.
func OpenSQLite(dsn string) (sqldb *sql.DB, err error) {
	if dsn == "" {
		dsn = ":memory:"
	}

	if sqldb, err = sql.Open(sqliteDriverName, dsn); err != nil {
		err = fmt.Errorf("unable to open sqlite database: %w", err)
		return
	}

	sqldb.SetMaxOpenConns(1)
	sqldb.SetConnMaxLifetime(0)
	return
}
