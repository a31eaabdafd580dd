package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/getAlby/royaltyhub.go/common"
	"github.com/getAlby/royaltyhub.go/db/models"
	"github.com/getAlby/royaltyhub.go/lib/royalty"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	pgUniqueViolation   = "23505"
	pgNumericOutOfRange = "22003"
)

// Store is the postgres backed royalty.Store.
// Token rows and balance rows are locked with SELECT ... FOR UPDATE for the duration of a transaction.
type Store struct {
	db *bun.DB
}

func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx royalty.Tx) error) error {
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, &storeTx{tx: tx})
	})
}

type storeTx struct {
	tx bun.Tx
}

func (t *storeTx) Collection(ctx context.Context) (*models.Collection, error) {
	collection := &models.Collection{}
	err := t.tx.NewSelect().Model(collection).Where("id = ?", common.DefaultCollectionID).Limit(1).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading collection: %w", err)
	}
	return collection, nil
}

// NextTokenID increments the token counter of the collection. The row stays locked until the
// transaction ends, so ids are handed out without gaps even when a mint is rolled back.
func (t *storeTx) NextTokenID(ctx context.Context) (int64, error) {
	var count int64
	err := t.tx.NewUpdate().
		Model((*models.Collection)(nil)).
		Set("token_count = token_count + 1").
		Where("id = ?", common.DefaultCollectionID).
		Returning("token_count").
		Scan(ctx, &count)
	if err != nil {
		return 0, fmt.Errorf("allocating token id: %w", err)
	}
	return count, nil
}

func (t *storeTx) InsertToken(ctx context.Context, token *models.Token) error {
	_, err := t.tx.NewInsert().Model(token).Exec(ctx)
	return err
}

func (t *storeTx) FindToken(ctx context.Context, id int64) (*models.Token, error) {
	token := &models.Token{}
	err := t.tx.NewSelect().Model(token).Where("id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		return nil, tokenErr(err)
	}
	return token, nil
}

func (t *storeTx) LockToken(ctx context.Context, id int64) (*models.Token, error) {
	token := &models.Token{}
	err := t.tx.NewSelect().Model(token).Where("id = ?", id).For("UPDATE").Limit(1).Scan(ctx)
	if err != nil {
		return nil, tokenErr(err)
	}
	return token, nil
}

func (t *storeTx) UpdateTokenOwnership(ctx context.Context, token *models.Token) error {
	_, err := t.tx.NewUpdate().Model(token).Column("owner", "approved", "updated_at").WherePK().Exec(ctx)
	return err
}

func (t *storeTx) TokensOwnedBy(ctx context.Context, owner string, limit int) ([]models.Token, error) {
	tokens := []models.Token{}
	err := t.tx.NewSelect().Model(&tokens).Where("owner = ?", owner).Order("id DESC").Limit(limit).Scan(ctx)
	return tokens, err
}

func (t *storeTx) InsertDistribution(ctx context.Context, distribution *models.Distribution) error {
	if distribution.Reference != "" {
		exists, err := t.tx.NewSelect().Model((*models.Distribution)(nil)).Where("reference = ?", distribution.Reference).Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return royalty.ErrDuplicatePayment
		}
	}
	_, err := t.tx.NewInsert().Model(distribution).Exec(ctx)
	// a concurrent distribution with the same reference committed first
	if pgErrorCode(err) == pgUniqueViolation {
		return royalty.ErrDuplicatePayment
	}
	return err
}

func (t *storeTx) InsertTransactionEntry(ctx context.Context, entry *models.TransactionEntry) error {
	_, err := t.tx.NewInsert().Model(entry).Exec(ctx)
	return err
}

func (t *storeTx) EntriesFor(ctx context.Context, identity string, limit int) ([]models.TransactionEntry, error) {
	entries := []models.TransactionEntry{}
	err := t.tx.NewSelect().Model(&entries).Where("identity = ?", identity).Order("id DESC").Limit(limit).Scan(ctx)
	return entries, err
}

func (t *storeTx) Balance(ctx context.Context, identity string) (int64, error) {
	balance := &models.Balance{}
	err := t.tx.NewSelect().Model(balance).Where("identity = ?", identity).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return balance.Amount, err
}

func (t *storeTx) LockBalance(ctx context.Context, identity string) (int64, error) {
	balance := &models.Balance{}
	err := t.tx.NewSelect().Model(balance).Where("identity = ?", identity).For("UPDATE").Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return balance.Amount, err
}

// Credit adds amount to the balance of identity, creating the balance on first credit.
// The increment happens in the database so concurrent credits are never lost.
func (t *storeTx) Credit(ctx context.Context, identity string, amount int64) (int64, error) {
	balance := &models.Balance{
		Identity:  identity,
		Amount:    amount,
		UpdatedAt: time.Now(),
	}
	err := t.tx.NewInsert().
		Model(balance).
		On("CONFLICT (identity) DO UPDATE").
		Set("amount = ?TableAlias.amount + EXCLUDED.amount").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("amount").
		Scan(ctx)
	if pgErrorCode(err) == pgNumericOutOfRange {
		return 0, royalty.ErrBalanceOverflow
	}
	if err != nil {
		return 0, err
	}
	return balance.Amount, nil
}

func (t *storeTx) Debit(ctx context.Context, identity string, amount int64) (int64, error) {
	var remaining int64
	err := t.tx.NewUpdate().
		Model((*models.Balance)(nil)).
		Set("amount = amount - ?", amount).
		Set("updated_at = ?", time.Now()).
		Where("identity = ?", identity).
		Where("amount >= ?", amount).
		Returning("amount").
		Scan(ctx, &remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("insufficient balance for %s", identity)
	}
	return remaining, err
}

func (t *storeTx) InsertWithdrawal(ctx context.Context, withdrawal *models.Withdrawal) error {
	_, err := t.tx.NewInsert().Model(withdrawal).Exec(ctx)
	return err
}

func (t *storeTx) UpdateWithdrawal(ctx context.Context, withdrawal *models.Withdrawal) error {
	_, err := t.tx.NewUpdate().
		Model(withdrawal).
		Column("state", "error_message", "updated_at", "settled_at").
		WherePK().
		Exec(ctx)
	return err
}

func (t *storeTx) PendingWithdrawals(ctx context.Context, createdBefore time.Time, limit int) ([]models.Withdrawal, error) {
	withdrawals := []models.Withdrawal{}
	err := t.tx.NewSelect().
		Model(&withdrawals).
		Where("state = ?", common.WithdrawalStatePending).
		Where("created_at < ?", createdBefore).
		Order("id ASC").
		Limit(limit).
		Scan(ctx)
	return withdrawals, err
}

func tokenErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return royalty.ErrUnknownToken
	}
	return err
}

func pgErrorCode(err error) string {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C')
	}
	return ""
}

var _ royalty.Store = (*Store)(nil)
