package royalty

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testArtist = "0x1111111111111111111111111111111111111111"
	testAlice  = "0x2222222222222222222222222222222222222222"
	testBob    = "0x3333333333333333333333333333333333333333"
	testCarol  = "0x4444444444444444444444444444444444444444"
	zeroAddr   = "0x0000000000000000000000000000000000000000"
)

func mintParams(to string, royaltyBps int64) MintParams {
	return MintParams{
		To:            to,
		Title:         "Midnight Tapes",
		ArtistName:    "The Night Owls",
		RoyaltyBps:    royaltyBps,
		MetadataURI:   "ipfs://bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi",
		ArtistAddress: testArtist,
	}
}

func TestMintAllocatesSequentialIds(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry(NewMemoryStore())

	count, err := registry.CurrentTokenCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	first, err := registry.Mint(ctx, mintParams(testAlice, 1000))
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, testAlice, first.Owner)
	assert.Equal(t, testArtist, first.ArtistAddress)
	assert.Equal(t, "Midnight Tapes", first.Title)

	second, err := registry.Mint(ctx, mintParams(testBob, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)

	count, err = registry.CurrentTokenCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	owner, err := registry.OwnerOf(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, testBob, owner)

	terms, err := registry.RoyaltyTerms(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, RoyaltyTerms{RoyaltyBps: 1000, ArtistAddress: testArtist}, terms)
}

func TestMintRejectsInvalidRoyalty(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry(NewMemoryStore())

	_, err := registry.Mint(ctx, mintParams(testAlice, 10001))
	assert.ErrorIs(t, err, ErrInvalidRoyalty)
	_, err = registry.Mint(ctx, mintParams(testAlice, -1))
	assert.ErrorIs(t, err, ErrInvalidRoyalty)

	// boundaries are allowed
	_, err = registry.Mint(ctx, mintParams(testAlice, 10000))
	assert.NoError(t, err)

	count, err := registry.CurrentTokenCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMintRejectsInvalidRecipient(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry(NewMemoryStore())

	for _, to := range []string{"", zeroAddr, "alice", "0x1234"} {
		_, err := registry.Mint(ctx, mintParams(to, 500))
		assert.ErrorIs(t, err, ErrInvalidRecipient, "recipient %q", to)
	}

	params := mintParams(testAlice, 500)
	params.ArtistAddress = zeroAddr
	_, err := registry.Mint(ctx, params)
	assert.ErrorIs(t, err, ErrInvalidArtist)
	assert.ErrorIs(t, err, ErrInvalidRecipient)

	count, err := registry.CurrentTokenCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMintNormalizesAddresses(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry(NewMemoryStore())

	lower := "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"
	token, err := registry.Mint(ctx, mintParams(lower, 500))
	require.NoError(t, err)
	assert.True(t, strings.EqualFold(lower, token.Owner))

	// the owner may use any letter case for its address
	transferred, err := registry.Transfer(ctx, token.ID, "0x"+strings.ToUpper(lower[2:]), testBob)
	require.NoError(t, err)
	assert.Equal(t, testBob, transferred.Owner)
}

func TestUnknownToken(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry(NewMemoryStore())
	_, err := registry.Mint(ctx, mintParams(testAlice, 500))
	require.NoError(t, err)

	for _, id := range []int64{0, -1, 2, 99} {
		_, err := registry.OwnerOf(ctx, id)
		assert.ErrorIs(t, err, ErrUnknownToken)
		_, err = registry.RoyaltyTerms(ctx, id)
		assert.ErrorIs(t, err, ErrUnknownToken)
		_, err = registry.Transfer(ctx, id, testAlice, testBob)
		assert.ErrorIs(t, err, ErrUnknownToken)
	}
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry(NewMemoryStore())
	token, err := registry.Mint(ctx, mintParams(testAlice, 500))
	require.NoError(t, err)

	// only the owner can transfer
	_, err = registry.Transfer(ctx, token.ID, testBob, testCarol)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = registry.Transfer(ctx, token.ID, testAlice, zeroAddr)
	assert.ErrorIs(t, err, ErrInvalidRecipient)
	owner, err := registry.OwnerOf(ctx, token.ID)
	require.NoError(t, err)
	assert.Equal(t, testAlice, owner)

	transferred, err := registry.Transfer(ctx, token.ID, testAlice, testBob)
	require.NoError(t, err)
	assert.Equal(t, testBob, transferred.Owner)

	owner, err = registry.OwnerOf(ctx, token.ID)
	require.NoError(t, err)
	assert.Equal(t, testBob, owner)

	// royalty terms never change
	terms, err := registry.RoyaltyTerms(ctx, token.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), terms.RoyaltyBps)
	assert.Equal(t, testArtist, terms.ArtistAddress)

	// the previous owner lost the right to transfer
	_, err = registry.Transfer(ctx, token.ID, testAlice, testCarol)
	assert.ErrorIs(t, err, ErrNotOwner)

	// transferring to oneself is a no-op that succeeds
	_, err = registry.Transfer(ctx, token.ID, testBob, testBob)
	assert.NoError(t, err)
}

func TestApproveAndTransferFrom(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry(NewMemoryStore())
	token, err := registry.Mint(ctx, mintParams(testAlice, 500))
	require.NoError(t, err)

	_, err = registry.TransferFrom(ctx, testBob, token.ID, testAlice, testCarol)
	assert.ErrorIs(t, err, ErrNotApproved)

	_, err = registry.Approve(ctx, testBob, token.ID, testBob)
	assert.ErrorIs(t, err, ErrNotOwner)

	approved, err := registry.Approve(ctx, testAlice, token.ID, testBob)
	require.NoError(t, err)
	assert.Equal(t, testBob, approved.Approved)

	// from must still be the owner
	_, err = registry.TransferFrom(ctx, testBob, token.ID, testBob, testCarol)
	assert.ErrorIs(t, err, ErrNotOwner)

	transferred, err := registry.TransferFrom(ctx, testBob, token.ID, testAlice, testCarol)
	require.NoError(t, err)
	assert.Equal(t, testCarol, transferred.Owner)
	assert.Empty(t, transferred.Approved)

	// the approval was cleared by the transfer
	_, err = registry.TransferFrom(ctx, testBob, token.ID, testCarol, testBob)
	assert.ErrorIs(t, err, ErrNotApproved)
}

func TestApproveClear(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry(NewMemoryStore())
	token, err := registry.Mint(ctx, mintParams(testAlice, 500))
	require.NoError(t, err)

	_, err = registry.Approve(ctx, testAlice, token.ID, testBob)
	require.NoError(t, err)
	cleared, err := registry.Approve(ctx, testAlice, token.ID, "")
	require.NoError(t, err)
	assert.Empty(t, cleared.Approved)

	_, err = registry.TransferFrom(ctx, testBob, token.ID, testAlice, testCarol)
	assert.ErrorIs(t, err, ErrNotApproved)

	_, err = registry.Approve(ctx, testAlice, token.ID, "not-an-address")
	assert.ErrorIs(t, err, ErrInvalidRecipient)
}

func TestTokensOwnedBy(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry(NewMemoryStore())
	for i := 0; i < 3; i++ {
		_, err := registry.Mint(ctx, mintParams(testAlice, 500))
		require.NoError(t, err)
	}
	_, err := registry.Mint(ctx, mintParams(testBob, 500))
	require.NoError(t, err)

	tokens, err := registry.TokensOwnedBy(ctx, testAlice, 0)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	// newest first
	assert.Equal(t, int64(3), tokens[0].ID)
	assert.Equal(t, int64(1), tokens[2].ID)

	tokens, err = registry.TokensOwnedBy(ctx, testAlice, 2)
	require.NoError(t, err)
	assert.Len(t, tokens, 2)

	tokens, err = registry.TokensOwnedBy(ctx, testCarol, 10)
	require.NoError(t, err)
	assert.Empty(t, tokens)

	_, err = registry.TokensOwnedBy(ctx, "nope", 10)
	assert.ErrorIs(t, err, ErrInvalidRecipient)
}
