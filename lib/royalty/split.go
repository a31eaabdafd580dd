package royalty

import "github.com/getAlby/royaltyhub.go/common"

// Split divides amount between the artist and the owner of a token.
// The artist share is truncated, the owner receives the remainder, so the two always add up to amount.
// amount must not be negative and royaltyBps must be within [0, 10000].
func Split(amount, royaltyBps int64) (artistShare, ownerShare int64) {
	// (q*10000 + r) * bps / 10000 = q*bps + r*bps/10000, without overflowing for large amounts
	q, r := amount/common.MaxRoyaltyBps, amount%common.MaxRoyaltyBps
	artistShare = q*royaltyBps + r*royaltyBps/common.MaxRoyaltyBps
	ownerShare = amount - artistShare
	return artistShare, ownerShare
}

func validRoyalty(royaltyBps int64) bool {
	return royaltyBps >= 0 && royaltyBps <= common.MaxRoyaltyBps
}
