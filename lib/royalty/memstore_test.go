package royalty

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/getAlby/royaltyhub.go/common"
	"github.com/getAlby/royaltyhub.go/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRollback(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	boom := errors.New("boom")

	err := store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		id, err := tx.NextTokenID(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.InsertToken(ctx, &models.Token{ID: id, Owner: testAlice, ArtistAddress: testArtist}))
		_, err = tx.Credit(ctx, testAlice, 50)
		require.NoError(t, err)
		require.NoError(t, tx.InsertDistribution(ctx, &models.Distribution{TokenID: id, Amount: 50, Reference: "ref"}))
		require.NoError(t, tx.InsertTransactionEntry(ctx, &models.TransactionEntry{Identity: testAlice, Amount: 50}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		collection, err := tx.Collection(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), collection.TokenCount)
		_, err = tx.FindToken(ctx, 1)
		assert.ErrorIs(t, err, ErrUnknownToken)
		balance, err := tx.Balance(ctx, testAlice)
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance)
		entries, err := tx.EntriesFor(ctx, testAlice, 10)
		require.NoError(t, err)
		assert.Empty(t, entries)

		// the reference is free again and ids are reused
		distribution := &models.Distribution{TokenID: 1, Amount: 50, Reference: "ref"}
		require.NoError(t, tx.InsertDistribution(ctx, distribution))
		assert.Equal(t, int64(1), distribution.ID)
		return nil
	})
	require.NoError(t, err)
}

func TestMemoryStoreDebit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	err := store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		_, err := tx.Debit(ctx, testAlice, 1)
		assert.ErrorIs(t, err, errInsufficientBalance)

		_, err = tx.Credit(ctx, testAlice, 10)
		require.NoError(t, err)
		balance, err := tx.Debit(ctx, testAlice, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance)
		return nil
	})
	require.NoError(t, err)
}

func TestMemoryStorePendingWithdrawals(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()

	err := store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		for i, state := range []string{common.WithdrawalStatePending, common.WithdrawalStateSettled, common.WithdrawalStatePending} {
			require.NoError(t, tx.InsertWithdrawal(ctx, &models.Withdrawal{
				Reference: string(rune('a' + i)),
				Identity:  testAlice,
				Amount:    10,
				State:     state,
				CreatedAt: now.Add(-time.Duration(3-i) * time.Hour),
			}))
		}
		return nil
	})
	require.NoError(t, err)

	err = store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		withdrawals, err := tx.PendingWithdrawals(ctx, now.Add(-90*time.Minute), 10)
		require.NoError(t, err)
		require.Len(t, withdrawals, 1)
		assert.Equal(t, int64(1), withdrawals[0].ID)

		withdrawals, err = tx.PendingWithdrawals(ctx, now, 10)
		require.NoError(t, err)
		assert.Len(t, withdrawals, 2)
		return nil
	})
	require.NoError(t, err)
}

func TestMemoryStoreIndexesFollowTransfersAndRollback(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	err := store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		for i := 0; i < 2; i++ {
			id, err := tx.NextTokenID(ctx)
			require.NoError(t, err)
			require.NoError(t, tx.InsertToken(ctx, &models.Token{ID: id, Owner: testAlice, ArtistAddress: testArtist}))
		}
		require.NoError(t, tx.InsertTransactionEntry(ctx, &models.TransactionEntry{Identity: testAlice, Amount: 5}))
		return tx.InsertWithdrawal(ctx, &models.Withdrawal{Reference: "w1", Identity: testAlice, Amount: 5, State: common.WithdrawalStatePending, CreatedAt: time.Now().Add(-time.Hour)})
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		require.NoError(t, tx.UpdateTokenOwnership(ctx, &models.Token{ID: 1, Owner: testBob}))
		require.NoError(t, tx.InsertTransactionEntry(ctx, &models.TransactionEntry{Identity: testBob, Amount: 1}))
		require.NoError(t, tx.UpdateWithdrawal(ctx, &models.Withdrawal{ID: 1, State: common.WithdrawalStateSettled}))

		bobs, err := tx.TokensOwnedBy(ctx, testBob, 10)
		require.NoError(t, err)
		require.Len(t, bobs, 1)
		pending, err := tx.PendingWithdrawals(ctx, time.Now(), 10)
		require.NoError(t, err)
		assert.Empty(t, pending)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		alices, err := tx.TokensOwnedBy(ctx, testAlice, 10)
		require.NoError(t, err)
		require.Len(t, alices, 2)
		assert.Equal(t, int64(2), alices[0].ID)
		bobs, err := tx.TokensOwnedBy(ctx, testBob, 10)
		require.NoError(t, err)
		assert.Empty(t, bobs)

		entries, err := tx.EntriesFor(ctx, testBob, 10)
		require.NoError(t, err)
		assert.Empty(t, entries)
		entries, err = tx.EntriesFor(ctx, testAlice, 10)
		require.NoError(t, err)
		assert.Len(t, entries, 1)

		pending, err := tx.PendingWithdrawals(ctx, time.Now(), 10)
		require.NoError(t, err)
		assert.Len(t, pending, 1)

		// a committed transfer moves the token between owners
		require.NoError(t, tx.UpdateTokenOwnership(ctx, &models.Token{ID: 2, Owner: testBob}))
		bobs, err = tx.TokensOwnedBy(ctx, testBob, 10)
		require.NoError(t, err)
		require.Len(t, bobs, 1)
		assert.Equal(t, int64(2), bobs[0].ID)
		alices, err = tx.TokensOwnedBy(ctx, testAlice, 10)
		require.NoError(t, err)
		require.Len(t, alices, 1)
		assert.Equal(t, int64(1), alices[0].ID)
		return nil
	})
	require.NoError(t, err)
}
