package common

const (
	CollectionName   = "MusicRoyaltyNFTs"
	CollectionSymbol = "MRNFT"

	// the collection row holding the token id sequence
	DefaultCollectionID = 1

	MaxRoyaltyBps = 10000

	EntryTypeRoyaltyArtist     = "royalty_artist"
	EntryTypeRoyaltyOwner      = "royalty_owner"
	EntryTypeWithdrawal        = "withdrawal"
	EntryTypeWithdrawalReverse = "withdrawal_reversal"

	WithdrawalStatePending = "pending"
	WithdrawalStateSettled = "settled"
	WithdrawalStateFailed  = "failed"

	EventTypeMint         = "mint"
	EventTypeTransfer     = "transfer"
	EventTypeApproval     = "approval"
	EventTypeDistribution = "distribution"
	EventTypeWithdrawal   = "withdrawal"

	// upper bound for list endpoints
	DefaultListLimit = 100
)

var EventTypes = []string{
	EventTypeMint,
	EventTypeTransfer,
	EventTypeApproval,
	EventTypeDistribution,
	EventTypeWithdrawal,
}
