package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Withdrawal : Withdrawal Model
type Withdrawal struct {
	ID           int64        `json:"id" bun:",pk,autoincrement"`
	Reference    string       `json:"reference" bun:",notnull,unique"`
	Identity     string       `json:"identity" bun:",notnull"`
	Amount       int64        `json:"amount" bun:",notnull"`
	State        string       `json:"state" bun:",notnull,default:'pending'"`
	ErrorMessage string       `json:"error_message,omitempty" bun:",nullzero"`
	CreatedAt    time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt    bun.NullTime `json:"updated_at"`
	SettledAt    bun.NullTime `json:"settled_at"`
}

func (w *Withdrawal) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		w.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Withdrawal)(nil)
