package royalty

import (
	"context"
	"time"

	"github.com/getAlby/royaltyhub.go/db/models"
)

// Store owns the token table and the balances. Registry and Ledger share one Store.
type Store interface {
	// RunInTx runs fn atomically: either everything fn wrote is applied or nothing is.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx is the set of operations available inside a store transaction.
type Tx interface {
	Collection(ctx context.Context) (*models.Collection, error)
	// NextTokenID increments the collection token counter and returns the new value.
	NextTokenID(ctx context.Context) (int64, error)

	InsertToken(ctx context.Context, token *models.Token) error
	// FindToken returns ErrUnknownToken if the token does not exist.
	FindToken(ctx context.Context, id int64) (*models.Token, error)
	// LockToken is FindToken holding the token row until the transaction ends.
	LockToken(ctx context.Context, id int64) (*models.Token, error)
	UpdateTokenOwnership(ctx context.Context, token *models.Token) error
	TokensOwnedBy(ctx context.Context, owner string, limit int) ([]models.Token, error)

	// InsertDistribution returns ErrDuplicatePayment if the reference is already used.
	InsertDistribution(ctx context.Context, distribution *models.Distribution) error
	InsertTransactionEntry(ctx context.Context, entry *models.TransactionEntry) error
	EntriesFor(ctx context.Context, identity string, limit int) ([]models.TransactionEntry, error)

	// Balance is a plain read, zero for unknown identities.
	Balance(ctx context.Context, identity string) (int64, error)
	// LockBalance is Balance holding the balance row until the transaction ends.
	LockBalance(ctx context.Context, identity string) (int64, error)
	// Credit adds amount to the balance, creating it if needed, and returns the new balance.
	Credit(ctx context.Context, identity string, amount int64) (int64, error)
	// Debit subtracts amount from the balance and returns the new balance. It never goes below zero.
	Debit(ctx context.Context, identity string, amount int64) (int64, error)

	InsertWithdrawal(ctx context.Context, withdrawal *models.Withdrawal) error
	UpdateWithdrawal(ctx context.Context, withdrawal *models.Withdrawal) error
	PendingWithdrawals(ctx context.Context, createdBefore time.Time, limit int) ([]models.Withdrawal, error)
}
