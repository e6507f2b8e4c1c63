package forum

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/uptrace/bun"

	"github.com/studybud-project/backend/internal/database/models"
)

func NewMessageService(db *bun.DB) *MessageService {
	return &MessageService{
		baseService: baseService{
			DB: db,
		},
	}
}

type MessageService struct {
	baseService
}

// Post adds a message by author to the room and makes the author a
// participant of it.
func (s *MessageService) Post(ctx context.Context, author models.User, roomID int64, body string) (msg models.Message, err error) {
	if strings.TrimSpace(body) == "" {
		err = &ValidationError{Fields: []string{"body"}, Err: errors.New("message body is empty")}
		return
	}

	err = s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) (err error) {
		var room models.Room
		if room, err = findRoom(ctx, tx, roomID); err != nil {
			return
		}

		ts := now()
		msg = models.Message{
			UserID:  author.ID,
			User:    &author,
			RoomID:  room.ID,
			Room:    &room,
			Body:    body,
			Updated: ts,
			Created: ts,
		}

		if _, err = tx.NewInsert().Model(&msg).Exec(ctx); err != nil {
			return
		}

		_, err = tx.NewInsert().
			Model(&models.RoomParticipant{RoomID: room.ID, UserID: author.ID}).
			Ignore().
			Exec(ctx)
		return
	})
	return
}

func (s *MessageService) Get(ctx context.Context, messageID int64) (msg models.Message, err error) {
	err = s.DB.NewSelect().
		Model(&msg).
		Relation("User").
		Relation("Room").
		Where("message.id = ?", messageID).
		Scan(ctx)
	err = notFound(err, "message")
	return
}

// Delete removes a message. Only its author may delete it.
func (s *MessageService) Delete(ctx context.Context, actor models.User, messageID int64) (err error) {
	return s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) (err error) {
		var msg models.Message
		err = tx.NewSelect().
			Model(&msg).
			Where("message.id = ?", messageID).
			Scan(ctx)
		if err = notFound(err, "message"); err != nil {
			return
		}

		if !msg.IsAuthor(actor.ID) {
			err = ErrForbidden
			return
		}

		_, err = tx.NewDelete().
			Model(&msg).
			WherePK().
			Exec(ctx)
		return
	})
}

// Activity returns every message in default message order.
func (s *MessageService) Activity(ctx context.Context) (messages []models.Message, err error) {
	messages = make([]models.Message, 0)
	err = s.DB.NewSelect().
		Model(&messages).
		Relation("User").
		Relation("Room").
		Order("message.updated DESC", "message.created DESC").
		Scan(ctx)
	return
}

// WrittenBy returns the messages authored by userID.
func (s *MessageService) WrittenBy(ctx context.Context, userID int64) (messages []models.Message, err error) {
	messages = make([]models.Message, 0)
	err = s.DB.NewSelect().
		Model(&messages).
		Relation("User").
		Relation("Room").
		Where("message.user_id = ?", userID).
		Order("message.updated DESC", "message.created DESC").
		Scan(ctx)
	return
}
