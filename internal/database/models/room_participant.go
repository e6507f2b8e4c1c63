package models

import "github.com/uptrace/bun"

type RoomParticipant struct {
	bun.BaseModel `bun:"table:room_participants,alias:rp"`

	RoomID int64 `bun:",pk"`
	Room   *Room `bun:"rel:belongs-to,join:room_id=id"`
	UserID int64 `bun:",pk"`
	User   *User `bun:"rel:belongs-to,join:user_id=id"`
}
