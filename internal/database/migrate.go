package database

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"go.uber.org/zap"

	"github.com/studybud-project/backend/internal/database/migrations"
)

// Migrate applies a goose command ("up", "down", "status", ...) to db.
// SQLite databases have no migration history and only understand "up", which
// creates any missing tables.
func Migrate(ctx context.Context, db *bun.DB, command string, args ...string) (err error) {
	switch db.Dialect().Name() {
	case dialect.PG:
		goose.SetBaseFS(migrations.FS)
		goose.SetLogger(gooseLogger{zap.S().With("section", "goose")})
		if err = goose.SetDialect("postgres"); err != nil {
			return
		}

		if err = goose.Run(command, db.DB, ".", args...); err != nil {
			err = fmt.Errorf("goose %s: %w", command, err)
		}
	case dialect.SQLite:
		if command != "up" {
			err = fmt.Errorf("migration command %q is not supported on sqlite", command)
			return
		}

		err = CreateTables(ctx, db)
	default:
		err = fmt.Errorf("no migrations for dialect %s", db.Dialect().Name())
	}

	return
}

type gooseLogger struct {
	log *zap.SugaredLogger
}

func (l gooseLogger) Fatal(v ...interface{})                 { l.log.Fatal(v...) }
func (l gooseLogger) Fatalf(format string, v ...interface{}) { l.log.Fatalf(format, v...) }
func (l gooseLogger) Print(v ...interface{})                 { l.log.Info(v...) }
func (l gooseLogger) Println(v ...interface{})               { l.log.Info(v...) }
func (l gooseLogger) Printf(format string, v ...interface{}) { l.log.Infof(format, v...) }
