package royalty_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/getAlby/royaltyhub.go/lib/royalty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Distributions, transfers and withdrawals race against each other; no amount may appear or vanish.
func TestConcurrentDistributeTransferWithdraw(t *testing.T) {
	ctx := context.Background()
	var withdrawn atomic.Int64
	registry, ledger := setup(t, royalty.PayerFunc(func(ctx context.Context, payout royalty.Payout) error {
		withdrawn.Add(payout.Amount)
		return nil
	}))
	tokens := []int64{
		mint(t, registry, alice, 1000),
		mint(t, registry, bob, 3333),
		mint(t, registry, alice, 0),
	}
	identities := []string{artist, alice, bob}

	const rounds = 200
	var distributed atomic.Int64
	var wg sync.WaitGroup
	unexpected := make(chan error, 64)
	report := func(err error, allowed ...error) {
		if err == nil {
			return
		}
		for _, a := range allowed {
			if errors.Is(err, a) {
				return
			}
		}
		select {
		case unexpected <- err:
		default:
		}
	}

	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				amount := int64(1 + (i*7+w)%997)
				_, err := ledger.Distribute(ctx, tokens[(i+w)%len(tokens)], amount)
				report(err)
				if err == nil {
					distributed.Add(amount)
				}
			}
		}(w)
	}
	for w := 0; w < 2; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				id := tokens[(i+w)%len(tokens)]
				owner, err := registry.OwnerOf(ctx, id)
				report(err)
				to := alice
				if owner == alice {
					to = bob
				}
				// the owner may change between the read and the transfer
				_, err = registry.Transfer(ctx, id, owner, to)
				report(err, royalty.ErrNotOwner)
			}
		}(w)
	}
	for _, identity := range identities {
		wg.Add(1)
		go func(identity string) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				_, err := ledger.Withdraw(ctx, identity)
				report(err, royalty.ErrNothingToWithdraw)
			}
		}(identity)
	}
	wg.Wait()
	close(unexpected)
	for err := range unexpected {
		t.Errorf("unexpected error: %v", err)
	}

	var remaining int64
	for _, identity := range identities {
		balance, err := ledger.BalanceOf(ctx, identity)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, balance, int64(0), "balance of %s", identity)
		remaining += balance

		// the journal explains every balance
		entries, err := ledger.EntriesFor(ctx, identity, 0)
		require.NoError(t, err)
		if len(entries) < 100 {
			var journaled int64
			for _, entry := range entries {
				journaled += entry.Amount
			}
			assert.Equal(t, balance, journaled, "journal of %s", identity)
		}
	}
	assert.Equal(t, distributed.Load(), remaining+withdrawn.Load())
}
