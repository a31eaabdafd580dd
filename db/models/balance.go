package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Balance : withdrawable balance of a beneficiary
type Balance struct {
	bun.BaseModel `bun:"table:balances,alias:balance"`

	Identity  string    `json:"identity" bun:",pk"`
	Amount    int64     `json:"amount" bun:",notnull"`
	UpdatedAt time.Time `json:"updated_at" bun:",nullzero,notnull,default:current_timestamp"`
}
