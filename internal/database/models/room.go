package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Room struct {
	bun.BaseModel `bun:"table:rooms,alias:room"`

	ID          int64     `bun:",pk,autoincrement"`
	HostID      int64     `bun:",notnull"`
	Host        *User     `bun:"rel:belongs-to,join:host_id=id"`
	TopicID     int64     `bun:",notnull"`
	Topic       *Topic    `bun:"rel:belongs-to,join:topic_id=id"`
	Name        string    `bun:",notnull"`
	Description string    `bun:",notnull"`
	Updated     time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	Created     time.Time `bun:",nullzero,notnull,default:current_timestamp"`

	Participants []User `bun:"m2m:room_participants,join:Room=User"`
}

// IsHost reports whether the user identified by userID owns the room.
func (r *Room) IsHost(userID int64) bool {
	return r.HostID == userID
}
