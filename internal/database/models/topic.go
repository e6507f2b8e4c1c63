package models

import "github.com/uptrace/bun"

type Topic struct {
	bun.BaseModel `bun:"table:topics,alias:topic"`

	ID   int64  `bun:",pk,autoincrement"`
	Name string `bun:",notnull,unique"`
}
