package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Message struct {
	bun.BaseModel `bun:"table:messages,alias:message"`

	ID      int64     `bun:",pk,autoincrement"`
	UserID  int64     `bun:",notnull"`
	User    *User     `bun:"rel:belongs-to,join:user_id=id"`
	RoomID  int64     `bun:",notnull"`
	Room    *Room     `bun:"rel:belongs-to,join:room_id=id"`
	Body    string    `bun:",notnull"`
	Updated time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	Created time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// IsAuthor reports whether the message was written by userID.
func (m *Message) IsAuthor(userID int64) bool {
	return m.UserID == userID
}
