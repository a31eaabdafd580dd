package security

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	LoginMessagePrefix = "royaltyhub login "

	// tolerated clock difference between the signer and us
	maxClockSkew = time.Minute
)

var (
	ErrMalformedLoginMessage = errors.New("malformed login message")
	ErrLoginMessageExpired   = errors.New("login message expired")
	ErrBadSignature          = errors.New("bad signature")
)

// LoginMessage is the text a wallet signs to log in at the given time.
func LoginMessage(at time.Time) string {
	return fmt.Sprintf("%s%d", LoginMessagePrefix, at.Unix())
}

// VerifyLoginSignature checks that signature is a personal_sign (EIP-191) signature of message
// made by the key of address, and that message was issued less than maxAge before now.
// It returns the checksummed address.
func VerifyLoginSignature(address, message, signature string, maxAge time.Duration, now time.Time) (string, error) {
	if !ethcommon.IsHexAddress(address) {
		return "", ErrBadSignature
	}

	issuedAt, err := parseLoginMessage(message)
	if err != nil {
		return "", err
	}
	if now.Sub(issuedAt) > maxAge || issuedAt.Sub(now) > maxClockSkew {
		return "", ErrLoginMessageExpired
	}

	sig, err := hexutil.Decode(signature)
	if err != nil || len(sig) != crypto.SignatureLength {
		return "", ErrBadSignature
	}
	// wallets produce v as 27/28, recovery wants 0/1
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pubKey, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return "", ErrBadSignature
	}
	signer := crypto.PubkeyToAddress(*pubKey)
	if signer != ethcommon.HexToAddress(address) {
		return "", ErrBadSignature
	}
	return signer.Hex(), nil
}

func parseLoginMessage(message string) (time.Time, error) {
	timestamp, ok := strings.CutPrefix(message, LoginMessagePrefix)
	if !ok {
		return time.Time{}, ErrMalformedLoginMessage
	}
	unix, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return time.Time{}, ErrMalformedLoginMessage
	}
	return time.Unix(unix, 0), nil
}
