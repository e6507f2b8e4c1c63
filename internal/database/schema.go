package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/studybud-project/backend/internal/database/models"
)

// CreateTables builds the schema straight from the bun models. It is used for
// SQLite databases, PostgreSQL goes through the goose migrations instead.
func CreateTables(ctx context.Context, db bun.IDB) (err error) {
	for _, model := range models.All() {
		_, err = db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			err = fmt.Errorf("failed to create table for %T: %w", model, err)
			return
		}
	}

	_, err = db.NewCreateIndex().
		Model((*models.Message)(nil)).
		Index("messages_room_id_idx").
		IfNotExists().
		Column("room_id").
		Exec(ctx)
	return
}
