package models

import (
	"time"

	"github.com/uptrace/bun"
)

const DefaultAvatar = "avatar.svg"

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:",pk,autoincrement"`
	Email        string    `bun:",notnull,unique"`
	Username     string    `bun:",notnull,unique"`
	Name         string    `bun:",notnull"`
	Bio          string    `bun:",notnull"`
	Avatar       string    `bun:",notnull"`
	PasswordHash string    `bun:",notnull"`
	DateJoined   time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
