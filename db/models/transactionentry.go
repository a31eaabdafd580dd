package models

import (
	"time"
)

// TransactionEntry : Transaction Entries Model
// Every change of a balance is journaled here. Credits are positive, withdrawals negative.
type TransactionEntry struct {
	ID             int64         `json:"id" bun:",pk,autoincrement"`
	Identity       string        `json:"identity" bun:",notnull"`
	TokenID        int64         `json:"token_id,omitempty" bun:",nullzero"`
	DistributionID int64         `json:"distribution_id,omitempty" bun:",nullzero"`
	Distribution   *Distribution `json:"-" bun:"rel:belongs-to,join:distribution_id=id"`
	WithdrawalID   int64         `json:"withdrawal_id,omitempty" bun:",nullzero"`
	Withdrawal     *Withdrawal   `json:"-" bun:"rel:belongs-to,join:withdrawal_id=id"`
	Amount         int64         `json:"amount" bun:",notnull"`
	EntryType      string        `json:"entry_type" bun:",notnull"`
	CreatedAt      time.Time     `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
