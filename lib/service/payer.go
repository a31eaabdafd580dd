package service

import (
	"context"
	"errors"

	"github.com/getAlby/royaltyhub.go/lib/royalty"
	"github.com/ziflex/lecho/v3"
)

var ErrNoPayoutBackend = errors.New("no payout backend configured")

// LogPayer only records payouts. It is only wired against the memory store,
// where nothing outlives the process anyway.
type LogPayer struct {
	logger *lecho.Logger
}

func NewLogPayer(logger *lecho.Logger) *LogPayer {
	return &LogPayer{logger: logger}
}

func (p *LogPayer) Pay(ctx context.Context, payout royalty.Payout) error {
	p.logger.Warnf("No payout backend configured, recording payout reference:%s beneficiary:%s amount:%v", payout.Reference, payout.Beneficiary, payout.Amount)
	return nil
}

// UnavailablePayer refuses every payout so the ledger reverts the withdrawal
// instead of marking funds as paid that never left.
type UnavailablePayer struct{}

func (UnavailablePayer) Pay(ctx context.Context, payout royalty.Payout) error {
	return ErrNoPayoutBackend
}

// defaultPayer is used when no payer is passed in.
func defaultPayer(config *Config, logger *lecho.Logger) royalty.Payer {
	if config.UseMemoryStore() {
		return NewLogPayer(logger)
	}
	logger.Error("No payout backend configured for a persistent store, withdrawals will be refused")
	return UnavailablePayer{}
}
