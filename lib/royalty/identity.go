package royalty

import (
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// NormalizeIdentity validates an account address and returns its checksummed form.
// The zero address is not a valid identity.
func NormalizeIdentity(identity string) (string, error) {
	identity = strings.TrimSpace(identity)
	if !ethcommon.IsHexAddress(identity) {
		return "", ErrInvalidRecipient
	}
	address := ethcommon.HexToAddress(identity)
	if address == (ethcommon.Address{}) {
		return "", ErrInvalidRecipient
	}
	return address.Hex(), nil
}
