//go:build integration

package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/getAlby/royaltyhub.go/db/migrations"
	"github.com/getAlby/royaltyhub.go/lib/royalty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	artist = "0x1111111111111111111111111111111111111111"
	alice  = "0x2222222222222222222222222222222222222222"
	bob    = "0x3333333333333333333333333333333333333333"
)

var (
	testDB      *bun.DB
	pgContainer *postgres.PostgresContainer
)

// TestMain starts a postgres container unless TEST_DATABASE_URI points to an existing database.
func TestMain(m *testing.M) {
	ctx := context.Background()

	dsn := os.Getenv("TEST_DATABASE_URI")
	if dsn == "" {
		var err error
		pgContainer, err = postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("royaltyhub_test"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			fmt.Printf("Failed to start PostgreSQL container: %v\n", err)
			os.Exit(1)
		}
		dsn, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Printf("Failed to get connection string: %v\n", err)
			terminate(ctx)
			os.Exit(1)
		}
	}

	testDB = bun.NewDB(sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn))), pgdialect.New())
	if _, err := migrations.Migrate(ctx, testDB); err != nil {
		fmt.Printf("Failed to migrate: %v\n", err)
		terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()
	terminate(ctx)
	os.Exit(code)
}

func terminate(ctx context.Context) {
	if pgContainer == nil {
		return
	}
	if err := pgContainer.Terminate(ctx); err != nil {
		fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
	}
}

func clearTables(t *testing.T) {
	t.Helper()
	for _, table := range []string{"transaction_entries", "withdrawals", "distributions", "balances", "tokens"} {
		_, err := testDB.Exec(fmt.Sprintf("DELETE FROM %s", table))
		require.NoError(t, err)
	}
	_, err := testDB.Exec("UPDATE collections SET token_count = 0")
	require.NoError(t, err)
}

func newLedger(t *testing.T) (*royalty.Registry, *royalty.Ledger) {
	t.Helper()
	clearTables(t)
	store := NewStore(testDB)
	registry := royalty.NewRegistry(store)
	payer := royalty.PayerFunc(func(ctx context.Context, payout royalty.Payout) error { return nil })
	return registry, royalty.NewLedger(store, registry, payer)
}

func mint(t *testing.T, registry *royalty.Registry, owner string, royaltyBps int64) int64 {
	t.Helper()
	token, err := registry.Mint(context.Background(), royalty.MintParams{
		To:            owner,
		Title:         "Slow Current",
		ArtistName:    "Ines Haldane",
		RoyaltyBps:    royaltyBps,
		MetadataURI:   "ipfs://slow-current",
		ArtistAddress: artist,
	})
	require.NoError(t, err)
	return token.ID
}

func TestStoreMintAndTransfer(t *testing.T) {
	ctx := context.Background()
	registry, _ := newLedger(t)

	assert.Equal(t, int64(1), mint(t, registry, alice, 1000))
	assert.Equal(t, int64(2), mint(t, registry, alice, 1000))

	_, err := registry.Mint(ctx, royalty.MintParams{To: alice, ArtistAddress: artist, RoyaltyBps: 10001})
	assert.ErrorIs(t, err, royalty.ErrInvalidRoyalty)
	count, err := registry.CurrentTokenCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = registry.OwnerOf(ctx, 3)
	assert.ErrorIs(t, err, royalty.ErrUnknownToken)

	_, err = registry.Transfer(ctx, 1, bob, alice)
	assert.ErrorIs(t, err, royalty.ErrNotOwner)
	token, err := registry.Transfer(ctx, 1, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, bob, token.Owner)
	assert.False(t, token.UpdatedAt.IsZero())

	owned, err := registry.TokensOwnedBy(ctx, alice, 10)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, int64(2), owned[0].ID)
}

func TestStoreDistributeAndWithdraw(t *testing.T) {
	ctx := context.Background()
	registry, ledger := newLedger(t)
	tokenID := mint(t, registry, alice, 1000)

	_, err := ledger.DistributeWithReference(ctx, tokenID, 100, "tx-1")
	require.NoError(t, err)
	_, err = ledger.DistributeWithReference(ctx, tokenID, 100, "tx-1")
	assert.ErrorIs(t, err, royalty.ErrDuplicatePayment)

	balance, err := ledger.BalanceOf(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(90), balance)

	withdrawal, err := ledger.Withdraw(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(90), withdrawal.Amount)
	_, err = ledger.Withdraw(ctx, alice)
	assert.ErrorIs(t, err, royalty.ErrNothingToWithdraw)

	balance, err = ledger.BalanceOf(ctx, artist)
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance)
}

func TestStoreConcurrentDistributions(t *testing.T) {
	ctx := context.Background()
	registry, ledger := newLedger(t)
	tokenID := mint(t, registry, alice, 2500)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Distribute(ctx, tokenID, 100)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	balance, err := ledger.BalanceOf(ctx, artist)
	require.NoError(t, err)
	assert.Equal(t, int64(500), balance)
	balance, err = ledger.BalanceOf(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), balance)
}

func TestMigrationsFullyApplied(t *testing.T) {
	pending, err := migrations.Pending(context.Background(), testDB)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
