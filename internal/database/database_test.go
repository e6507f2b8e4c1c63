package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/studybud-project/backend/internal/database"
	"github.com/studybud-project/backend/internal/database/dbtest"
	"github.com/studybud-project/backend/internal/database/models"
)

func TestOpenRejectsUnknownScheme(t *testing.T) {
	_, err := database.Open("mysql://localhost/studybud")
	assert.Error(t, err)
}

func TestMigrateSQLite(t *testing.T) {
	ctx := context.Background()

	db, err := database.Open("sqlite::memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, database.Migrate(ctx, db, "up"))
	// Running it again is a no-op.
	require.NoError(t, database.Migrate(ctx, db, "up"))

	for _, model := range models.All() {
		_, err = db.NewSelect().Model(model).Count(ctx)
		assert.NoError(t, err, "%T", model)
	}

	assert.Error(t, database.Migrate(ctx, db, "down"))
}

func seedRooms(t *testing.T, db *bun.DB, names ...string) {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Email: "host@example.com", Username: "host", Avatar: models.DefaultAvatar}
	_, err := db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)

	topic := &models.Topic{Name: "Misc"}
	_, err = db.NewInsert().Model(topic).Exec(ctx)
	require.NoError(t, err)

	for _, name := range names {
		_, err = db.NewInsert().Model(&models.Room{HostID: user.ID, TopicID: topic.ID, Name: name}).Exec(ctx)
		require.NoError(t, err)
	}
}

func roomNames(t *testing.T, db *bun.DB, filter func(q *bun.SelectQuery) *bun.SelectQuery) (names []string) {
	t.Helper()

	var rooms []models.Room
	q := filter(db.NewSelect().Model(&rooms))
	require.NoError(t, q.Order("room.id ASC").Scan(context.Background()))
	for _, room := range rooms {
		names = append(names, room.Name)
	}
	return
}

func TestContains(t *testing.T) {
	db := dbtest.New(t)
	seedRooms(t, db, "Chess Club", "chess openings", "50% off", "Go")

	tests := []struct {
		name        string
		value       string
		insensitive bool
		want        []string
	}{
		{"case sensitive", "Chess", false, []string{"Chess Club"}},
		{"case insensitive", "CHESS", true, []string{"Chess Club", "chess openings"}},
		{"empty matches all", "", false, []string{"Chess Club", "chess openings", "50% off", "Go"}},
		{"no wildcards", "%", false, []string{"50% off"}},
		{"no match", "Poker", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roomNames(t, db, func(q *bun.SelectQuery) *bun.SelectQuery {
				return database.Contains(q, "room.name", tt.value, tt.insensitive)
			})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrContains(t *testing.T) {
	db := dbtest.New(t)
	seedRooms(t, db, "Chess Club", "Go", "Poker")

	got := roomNames(t, db, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = database.Contains(q, "room.name", "Chess", false)
		return database.OrContains(q, "room.name", "Go", false)
	})
	assert.Equal(t, []string{"Chess Club", "Go"}, got)
}
