package forum

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/studybud-project/backend/internal/database/models"
	"github.com/studybud-project/backend/internal/media"
)

func NewUserService(db *bun.DB, hasher *PasswordHasher, store *media.Store) *UserService {
	return &UserService{
		baseService: baseService{
			DB: db,
		},
		Hasher: hasher,
		Media:  store,
	}
}

type UserService struct {
	baseService
	Hasher *PasswordHasher
	Media  *media.Store
}

// Registration is the sign up form.
type Registration struct {
	Name      string `validate:"max=200"`
	Username  string `validate:"required,max=150"`
	Email     string `validate:"required,email,max=254"`
	Password1 string `validate:"required,min=8"`
	Password2 string `validate:"required,eqfield=Password1"`
}

// ProfileUpdate is the account settings form. Avatar is optional.
type ProfileUpdate struct {
	Name     string `validate:"max=200"`
	Username string `validate:"required,max=150"`
	Email    string `validate:"required,email,max=254"`
	Bio      string `validate:"max=2000"`
	Avatar   *Upload
}

// Upload is a file submitted with a form.
type Upload struct {
	Filename string
	Content  io.Reader
}

// Profile is a user's public page.
type Profile struct {
	User     models.User
	Rooms    []models.Room
	Messages []models.Message
	Topics   []models.Topic
}

// Register creates a new account. Username and email are stored lowercased.
func (s *UserService) Register(ctx context.Context, form Registration) (user models.User, err error) {
	form.Username = strings.ToLower(strings.TrimSpace(form.Username))
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))
	if err = validateStruct(form); err != nil {
		return
	}

	var hash string
	if hash, err = s.Hasher.Hash(form.Password1); err != nil {
		err = fmt.Errorf("failed to hash password: %w", err)
		return
	}

	user = models.User{
		Email:        form.Email,
		Username:     form.Username,
		Name:         strings.TrimSpace(form.Name),
		Avatar:       models.DefaultAvatar,
		PasswordHash: hash,
		DateJoined:   now(),
	}

	err = s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) (err error) {
		if err = checkIdentityFree(ctx, tx, 0, user.Email, user.Username); err != nil {
			return
		}

		_, err = tx.NewInsert().
			Model(&user).
			Exec(ctx)
		return
	})
	return
}

func checkIdentityFree(ctx context.Context, db bun.IDB, exceptID int64, email, username string) (err error) {
	var taken bool
	taken, err = db.NewSelect().
		Model((*models.User)(nil)).
		Where("u.id <> ?", exceptID).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("u.email = ?", email).WhereOr("u.username = ?", username)
		}).
		Exists(ctx)
	if err != nil {
		return
	}

	if taken {
		err = fmt.Errorf("email or username: %w", ErrConflict)
	}
	return
}

// FindByEmail looks a user up by login email, ignoring case.
func (s *UserService) FindByEmail(ctx context.Context, email string) (user models.User, err error) {
	err = s.DB.NewSelect().
		Model(&user).
		Where("u.email = ?", strings.ToLower(strings.TrimSpace(email))).
		Scan(ctx)
	err = notFound(err, "user")
	return
}

// Authenticate checks the credentials and returns the matching user, or
// ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (user models.User, err error) {
	if user, err = s.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, ErrNotFound) {
			err = ErrInvalidCredentials
		}
		return
	}

	if !s.Hasher.Verify(password, user.PasswordHash) {
		user = models.User{}
		err = ErrInvalidCredentials
	}
	return
}

func (s *UserService) Get(ctx context.Context, userID int64) (user models.User, err error) {
	return findUser(ctx, s.DB, userID)
}

// Profile loads a user with their rooms, their messages and every topic.
func (s *UserService) Profile(ctx context.Context, userID int64) (profile Profile, err error) {
	if profile.User, err = findUser(ctx, s.DB, userID); err != nil {
		return
	}

	if profile.Rooms, err = NewRoomService(s.DB).HostedBy(ctx, userID); err != nil {
		return
	}

	if profile.Messages, err = NewMessageService(s.DB).WrittenBy(ctx, userID); err != nil {
		return
	}

	profile.Topics, err = NewTopicService(s.DB).All(ctx)
	return
}

// UpdateProfile validates the form and saves it onto actor's account. A new
// avatar replaces the previous one.
func (s *UserService) UpdateProfile(ctx context.Context, actor models.User, form ProfileUpdate) (user models.User, err error) {
	form.Username = strings.ToLower(strings.TrimSpace(form.Username))
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))
	if err = validateStruct(form); err != nil {
		return
	}

	user = actor
	user.Name = strings.TrimSpace(form.Name)
	user.Username = form.Username
	user.Email = form.Email
	user.Bio = form.Bio

	var oldAvatar string
	if form.Avatar != nil {
		var stored string
		if stored, err = s.Media.SaveImage(form.Avatar.Filename, form.Avatar.Content); err != nil {
			err = &ValidationError{Fields: []string{"avatar"}, Err: err}
			return
		}
		oldAvatar, user.Avatar = user.Avatar, stored
	}

	err = s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) (err error) {
		if err = checkIdentityFree(ctx, tx, user.ID, user.Email, user.Username); err != nil {
			return
		}

		_, err = tx.NewUpdate().
			Model(&user).
			Column("name", "username", "email", "bio", "avatar").
			WherePK().
			Exec(ctx)
		return
	})

	if err != nil {
		if form.Avatar != nil {
			_ = s.Media.Remove(user.Avatar)
		}
		user = actor
		return
	}

	if oldAvatar != "" && oldAvatar != models.DefaultAvatar {
		if rmErr := s.Media.Remove(oldAvatar); rmErr != nil {
			zap.L().Warn("failed to remove replaced avatar", zap.String("avatar", oldAvatar), zap.Error(rmErr))
		}
	}
	return
}
