package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Collection : Collection Model
// TokenCount doubles as the token id sequence: the next minted token gets TokenCount+1.
type Collection struct {
	bun.BaseModel `bun:"table:collections,alias:collection"`

	ID         int64     `json:"-" bun:",pk"`
	Name       string    `json:"name" bun:",notnull"`
	Symbol     string    `json:"symbol" bun:",notnull"`
	TokenCount int64     `json:"current_token_id" bun:",notnull,default:0"`
	CreatedAt  time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
