package forum

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"

	"github.com/studybud-project/backend/internal/database/dbtest"
	"github.com/studybud-project/backend/internal/database/models"
	"github.com/studybud-project/backend/internal/media"
)

type fixture struct {
	db       *bun.DB
	users    *UserService
	rooms    *RoomService
	topics   *TopicService
	messages *MessageService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := dbtest.New(t)
	return &fixture{
		db:       db,
		users:    NewUserService(db, &PasswordHasher{Cost: bcrypt.MinCost}, media.NewStore(t.TempDir())),
		rooms:    NewRoomService(db),
		topics:   NewTopicService(db),
		messages: NewMessageService(db),
	}
}

func (f *fixture) user(t *testing.T, username string) models.User {
	t.Helper()

	user, err := f.users.Register(context.Background(), Registration{
		Name:      username,
		Username:  username,
		Email:     username + "@example.com",
		Password1: username + "pw-secret",
		Password2: username + "pw-secret",
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) room(t *testing.T, host models.User, topic, name, description string) models.Room {
	t.Helper()

	room, err := f.rooms.Create(context.Background(), host, RoomInput{
		Topic:       topic,
		Name:        name,
		Description: description,
	})
	require.NoError(t, err)
	return room
}

func (f *fixture) count(t *testing.T, model interface{}) int {
	t.Helper()

	n, err := f.db.NewSelect().Model(model).Count(context.Background())
	require.NoError(t, err)
	return n
}

func roomNames(rooms []models.Room) []string {
	names := make([]string, 0, len(rooms))
	for _, r := range rooms {
		names = append(names, r.Name)
	}
	return names
}
