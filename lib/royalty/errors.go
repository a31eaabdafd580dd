package royalty

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRoyalty    = errors.New("royalty must be between 0 and 10000 basis points")
	ErrInvalidRecipient  = errors.New("invalid recipient")
	ErrInvalidArtist     = fmt.Errorf("%w: invalid artist address", ErrInvalidRecipient)
	ErrUnknownToken      = errors.New("unknown token")
	ErrNotOwner          = errors.New("caller is not the token owner")
	ErrNotApproved       = errors.New("caller is neither owner nor approved for the token")
	ErrZeroAmount        = errors.New("amount must be greater than zero")
	ErrNothingToWithdraw = errors.New("nothing to withdraw")
	ErrDuplicatePayment  = errors.New("payment reference already distributed")
	ErrBalanceOverflow   = errors.New("balance overflow")
	ErrPayoutFailed      = errors.New("payout failed")
)
