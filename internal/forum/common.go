package forum

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/uptrace/bun"

	"github.com/studybud-project/backend/internal/database/models"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("already exists")
)

// ValidationError is returned when submitted form data fails validation.
type ValidationError struct {
	Fields []string
	Err    error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("validation failed: %v", e.Err)
	}
	return "invalid " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var validate = validator.New()

func validateStruct(v interface{}) (err error) {
	if err = validate.Struct(v); err == nil {
		return
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return
	}

	verr := &ValidationError{Err: err}
	for _, fe := range fieldErrors {
		verr.Fields = append(verr.Fields, strings.ToLower(fe.Field()))
	}
	return verr
}

type baseService struct {
	DB *bun.DB
}

var now = func() time.Time {
	return time.Now().UTC()
}

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}

func findUser(ctx context.Context, db bun.IDB, userID int64) (user models.User, err error) {
	err = db.NewSelect().
		Model(&user).
		Where("u.id = ?", userID).
		Scan(ctx)
	err = notFound(err, "user")
	return
}

func findRoom(ctx context.Context, db bun.IDB, roomID int64) (room models.Room, err error) {
	err = db.NewSelect().
		Model(&room).
		Relation("Host").
		Relation("Topic").
		Where("room.id = ?", roomID).
		Scan(ctx)
	err = notFound(err, "room")
	return
}
