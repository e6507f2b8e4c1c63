package models

import "github.com/uptrace/bun"

// Register makes the many-to-many join models known to db. It must be called
// before any query touches Room.Participants.
func Register(db *bun.DB) {
	db.RegisterModel((*RoomParticipant)(nil))
}

// All lists every model in table creation order.
func All() []interface{} {
	return []interface{}{
		(*User)(nil),
		(*Topic)(nil),
		(*Room)(nil),
		(*RoomParticipant)(nil),
		(*Message)(nil),
	}
}
