package royalty

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/getAlby/royaltyhub.go/common"
	"github.com/getAlby/royaltyhub.go/db/models"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"github.com/ziflex/lecho/v3"
)

// Payout is a request to move withdrawn funds to their beneficiary.
type Payout struct {
	WithdrawalID int64  `json:"withdrawal_id"`
	Reference    string `json:"reference"`
	Beneficiary  string `json:"beneficiary"`
	Amount       int64  `json:"amount"`
}

// Payer executes payouts. It is only ever called after the withdrawn balance has been zeroed and committed.
type Payer interface {
	Pay(ctx context.Context, payout Payout) error
}

type PayerFunc func(ctx context.Context, payout Payout) error

func (f PayerFunc) Pay(ctx context.Context, payout Payout) error {
	return f(ctx, payout)
}

// Ledger splits payments made for a token between its artist and its current owner
// and keeps the resulting withdrawable balances.
type Ledger struct {
	store    Store
	registry *Registry
	payer    Payer
	logger   *lecho.Logger
}

type LedgerOption = func(ledger *Ledger)

func WithLogger(logger *lecho.Logger) LedgerOption {
	return func(ledger *Ledger) {
		ledger.logger = logger
	}
}

func NewLedger(store Store, registry *Registry, payer Payer, options ...LedgerOption) *Ledger {
	ledger := &Ledger{
		store:    store,
		registry: registry,
		payer:    payer,
		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.INFO),
			lecho.WithTimestamp(),
		),
	}
	for _, opt := range options {
		opt(ledger)
	}
	return ledger
}

// Distribute splits amount between artist and current owner of the token and credits both balances.
func (l *Ledger) Distribute(ctx context.Context, tokenID int64, amount int64) (*models.Distribution, error) {
	return l.DistributeWithReference(ctx, tokenID, amount, "")
}

// DistributeWithReference is Distribute for payments carrying an external reference.
// A reference is distributed at most once; a repeated one fails with ErrDuplicatePayment.
func (l *Ledger) DistributeWithReference(ctx context.Context, tokenID int64, amount int64, reference string) (*models.Distribution, error) {
	if amount <= 0 {
		return nil, ErrZeroAmount
	}

	var distribution *models.Distribution
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		token, err := l.registry.lockSplit(ctx, tx, tokenID)
		if err != nil {
			return err
		}
		artistShare, ownerShare := Split(amount, token.RoyaltyBps)
		distribution = &models.Distribution{
			TokenID:       token.ID,
			Amount:        amount,
			RoyaltyBps:    token.RoyaltyBps,
			ArtistAddress: token.ArtistAddress,
			ArtistShare:   artistShare,
			Owner:         token.Owner,
			OwnerShare:    ownerShare,
			Reference:     reference,
			CreatedAt:     time.Now(),
		}
		if err := tx.InsertDistribution(ctx, distribution); err != nil {
			return err
		}

		credits := []models.TransactionEntry{
			{Identity: token.ArtistAddress, Amount: artistShare, EntryType: common.EntryTypeRoyaltyArtist},
			{Identity: token.Owner, Amount: ownerShare, EntryType: common.EntryTypeRoyaltyOwner},
		}
		// balances are always locked in the same order to keep concurrent distributions deadlock free
		sort.SliceStable(credits, func(i, j int) bool { return credits[i].Identity < credits[j].Identity })
		for _, credit := range credits {
			if credit.Amount == 0 {
				continue
			}
			if _, err := tx.Credit(ctx, credit.Identity, credit.Amount); err != nil {
				return err
			}
			credit.TokenID = token.ID
			credit.DistributionID = distribution.ID
			credit.CreatedAt = distribution.CreatedAt
			if err := tx.InsertTransactionEntry(ctx, &credit); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return distribution, nil
}

// BalanceOf returns the withdrawable balance of identity.
func (l *Ledger) BalanceOf(ctx context.Context, identity string) (balance int64, err error) {
	identity, err = NormalizeIdentity(identity)
	if err != nil {
		return 0, err
	}
	err = l.store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		balance, err = tx.Balance(ctx, identity)
		return err
	})
	return balance, err
}

// EntriesFor returns the latest journal entries of identity, newest first.
func (l *Ledger) EntriesFor(ctx context.Context, identity string, limit int) (entries []models.TransactionEntry, err error) {
	identity, err = NormalizeIdentity(identity)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > common.DefaultListLimit {
		limit = common.DefaultListLimit
	}
	err = l.store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		entries, err = tx.EntriesFor(ctx, identity, limit)
		return err
	})
	return entries, err
}

// Withdraw pays out the whole balance of identity.
// The balance is zeroed and committed before the payer runs, so a withdrawal started
// while the payout is in flight finds nothing to withdraw. If the payer fails the amount
// is credited back and ErrPayoutFailed is returned.
func (l *Ledger) Withdraw(ctx context.Context, identity string) (*models.Withdrawal, error) {
	identity, err := NormalizeIdentity(identity)
	if err != nil {
		return nil, err
	}

	withdrawal := &models.Withdrawal{
		Reference: uuid.NewString(),
		Identity:  identity,
		State:     common.WithdrawalStatePending,
		CreatedAt: time.Now(),
	}
	err = l.store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		balance, err := tx.LockBalance(ctx, identity)
		if err != nil {
			return err
		}
		if balance <= 0 {
			return ErrNothingToWithdraw
		}
		if _, err := tx.Debit(ctx, identity, balance); err != nil {
			return err
		}
		withdrawal.Amount = balance
		if err := tx.InsertWithdrawal(ctx, withdrawal); err != nil {
			return err
		}
		return tx.InsertTransactionEntry(ctx, &models.TransactionEntry{
			Identity:     identity,
			WithdrawalID: withdrawal.ID,
			Amount:       -balance,
			EntryType:    common.EntryTypeWithdrawal,
			CreatedAt:    withdrawal.CreatedAt,
		})
	})
	if err != nil {
		return nil, err
	}

	// the balance is already zeroed: recording the outcome must not depend on the caller still waiting
	recordCtx := context.WithoutCancel(ctx)
	payErr := l.payer.Pay(ctx, Payout{
		WithdrawalID: withdrawal.ID,
		Reference:    withdrawal.Reference,
		Beneficiary:  withdrawal.Identity,
		Amount:       withdrawal.Amount,
	})
	if payErr != nil {
		l.logger.Errorf("Payout failed withdrawal_id:%v identity:%s amount:%v error: %v", withdrawal.ID, identity, withdrawal.Amount, payErr)
		if err := l.revertWithdrawal(recordCtx, withdrawal, payErr); err != nil {
			return withdrawal, fmt.Errorf("%w: %v (reverting withdrawal %d failed: %v)", ErrPayoutFailed, payErr, withdrawal.ID, err)
		}
		return withdrawal, fmt.Errorf("%w: %v", ErrPayoutFailed, payErr)
	}

	settled := *withdrawal
	settled.State = common.WithdrawalStateSettled
	settled.SettledAt.Time = time.Now()
	err = l.store.RunInTx(recordCtx, func(ctx context.Context, tx Tx) error {
		return tx.UpdateWithdrawal(ctx, &settled)
	})
	if err != nil {
		// the money is gone at this point, the withdrawal stays pending for the watchdog to report
		l.logger.Errorf("Could not mark withdrawal as settled withdrawal_id:%v error: %v", withdrawal.ID, err)
		return withdrawal, nil
	}
	return &settled, nil
}

func (l *Ledger) revertWithdrawal(ctx context.Context, withdrawal *models.Withdrawal, cause error) error {
	failed := *withdrawal
	failed.State = common.WithdrawalStateFailed
	failed.ErrorMessage = cause.Error()
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		if _, err := tx.Credit(ctx, withdrawal.Identity, withdrawal.Amount); err != nil {
			return err
		}
		if err := tx.InsertTransactionEntry(ctx, &models.TransactionEntry{
			Identity:     withdrawal.Identity,
			WithdrawalID: withdrawal.ID,
			Amount:       withdrawal.Amount,
			EntryType:    common.EntryTypeWithdrawalReverse,
			CreatedAt:    time.Now(),
		}); err != nil {
			return err
		}
		return tx.UpdateWithdrawal(ctx, &failed)
	})
	if err != nil {
		return err
	}
	*withdrawal = failed
	return nil
}

// PendingWithdrawals returns withdrawals created before createdBefore that are neither settled nor failed.
func (l *Ledger) PendingWithdrawals(ctx context.Context, createdBefore time.Time) (withdrawals []models.Withdrawal, err error) {
	err = l.store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		withdrawals, err = tx.PendingWithdrawals(ctx, createdBefore, common.DefaultListLimit)
		return err
	})
	return withdrawals, err
}
