package forum

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybud-project/backend/internal/database/models"
	"github.com/studybud-project/backend/internal/media"
)

func TestUserService_Register(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.users.Register(ctx, Registration{
		Name:      "Alice",
		Username:  "Alice",
		Email:     "Alice@Example.com",
		Password1: "alicepw-long",
		Password2: "alicepw-long",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, models.DefaultAvatar, user.Avatar)
	assert.NotEqual(t, "alicepw-long", user.PasswordHash)

	stored, err := f.users.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username)
}

func TestUserService_RegisterRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "alice")

	tests := []struct {
		name    string
		form    Registration
		wantErr error
	}{
		{
			name: "password mismatch",
			form: Registration{Username: "bob", Email: "bob@example.com", Password1: "bobpw-long", Password2: "other-long"},
		},
		{
			name: "short password",
			form: Registration{Username: "bob", Email: "bob@example.com", Password1: "short", Password2: "short"},
		},
		{
			name: "invalid email",
			form: Registration{Username: "bob", Email: "bob", Password1: "bobpw-long", Password2: "bobpw-long"},
		},
		{
			name: "missing username",
			form: Registration{Email: "bob@example.com", Password1: "bobpw-long", Password2: "bobpw-long"},
		},
		{
			name:    "email taken",
			form:    Registration{Username: "bob", Email: "ALICE@example.com", Password1: "bobpw-long", Password2: "bobpw-long"},
			wantErr: ErrConflict,
		},
		{
			name:    "username taken",
			form:    Registration{Username: "Alice", Email: "bob@example.com", Password1: "bobpw-long", Password2: "bobpw-long"},
			wantErr: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.users.Register(ctx, tt.form)
			require.Error(t, err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				var verr *ValidationError
				assert.ErrorAs(t, err, &verr)
			}
		})
	}

	assert.Equal(t, 1, f.count(t, (*models.User)(nil)))
}

func TestUserService_Authenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	user, err := f.users.Authenticate(ctx, "ALICE@example.com", "alicepw-secret")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)

	_, err = f.users.Authenticate(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.users.Authenticate(ctx, "nobody@example.com", "alicepw-secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.users.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_Profile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	room := f.room(t, alice, "Games", "Chess Club", "")
	f.room(t, bob, "Music", "Jazz", "")
	_, err := f.messages.Post(ctx, alice, room.ID, "hi")
	require.NoError(t, err)

	profile, err := f.users.Profile(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.User.Username)
	assert.Equal(t, []string{"Chess Club"}, roomNames(profile.Rooms))
	require.Len(t, profile.Messages, 1)
	assert.Equal(t, "hi", profile.Messages[0].Body)
	assert.Len(t, profile.Topics, 2)

	_, err = f.users.Profile(ctx, bob.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_UpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	updated, err := f.users.UpdateProfile(ctx, alice, ProfileUpdate{
		Name:     "Alice Liddell",
		Username: "alice",
		Email:    "alice@wonderland.test",
		Bio:      "Down the rabbit hole",
		Avatar:   &Upload{Filename: "me.png", Content: strings.NewReader("png bytes")},
	})
	require.NoError(t, err)
	assert.NotEqual(t, models.DefaultAvatar, updated.Avatar)

	stored, err := f.users.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", stored.Name)
	assert.Equal(t, "alice@wonderland.test", stored.Email)
	assert.Equal(t, "Down the rabbit hole", stored.Bio)
	assert.Equal(t, updated.Avatar, stored.Avatar)

	_, err = os.Stat(filepath.Join(f.users.Media.Root, stored.Avatar))
	assert.NoError(t, err)
}

func TestUserService_UpdateProfileValidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	f.user(t, "bob")

	_, err := f.users.UpdateProfile(ctx, alice, ProfileUpdate{Username: "alice", Email: "not-an-email"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")

	_, err = f.users.UpdateProfile(ctx, alice, ProfileUpdate{Username: "bob", Email: "alice@example.com"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.users.UpdateProfile(ctx, alice, ProfileUpdate{
		Username: "alice",
		Email:    "alice@example.com",
		Avatar:   &Upload{Filename: "evil.exe", Content: strings.NewReader("MZ")},
	})
	require.ErrorAs(t, err, &verr)

	stored, err := f.users.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.Email, stored.Email)
	assert.Equal(t, models.DefaultAvatar, stored.Avatar)
}

func TestUserService_UpdateProfileLowercasesUsername(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "alice")
	bob := f.user(t, "bob")

	_, err := f.users.UpdateProfile(ctx, bob, ProfileUpdate{Username: "Alice", Email: "bob@example.com"})
	assert.ErrorIs(t, err, ErrConflict)

	updated, err := f.users.UpdateProfile(ctx, bob, ProfileUpdate{Username: " Robert ", Email: "bob@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "robert", updated.Username)

	stored, err := f.users.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "robert", stored.Username)
}

func TestUserService_UpdateProfileRejectsSVGAvatar(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	_, err := f.users.UpdateProfile(context.Background(), alice, ProfileUpdate{
		Username: "alice",
		Email:    "alice@example.com",
		Avatar:   &Upload{Filename: "evil.svg", Content: strings.NewReader("<svg><script>alert(1)</script></svg>")},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"avatar"}, verr.Fields)
	assert.ErrorIs(t, err, media.ErrUnsupportedType)

	entries, err := os.ReadDir(f.users.Media.Root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
