package service

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

const pendingWithdrawalCheckInterval = time.Minute

func (svc *RoyaltyHubService) StartPaymentRoutine(ctx context.Context) error {
	if svc.RabbitMQClient == nil {
		svc.Logger.Info("No rabbitmq configured, payments are only accepted through the admin API")
		return nil
	}
	err := svc.RabbitMQClient.SubscribeToPayments(ctx, svc.HandlePaymentNotification)
	if err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// StartPendingWithdrawalRoutine reports withdrawals whose payout outcome was never recorded.
// Their balance is already zeroed, so they need to be reconciled against the payout backend by hand.
func (svc *RoyaltyHubService) StartPendingWithdrawalRoutine(ctx context.Context) error {
	ticker := time.NewTicker(pendingWithdrawalCheckInterval)
	defer ticker.Stop()
	reported := map[int64]bool{}
	for {
		if _, err := svc.CheckPendingWithdrawals(ctx, reported); err != nil {
			svc.Logger.Error(err)
			sentry.CaptureException(err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// CheckPendingWithdrawals reports every stuck withdrawal not in reported yet and returns how many it reported.
func (svc *RoyaltyHubService) CheckPendingWithdrawals(ctx context.Context, reported map[int64]bool) (int, error) {
	timeout := time.Duration(svc.Config.PendingWithdrawalTimeout) * time.Second
	pending, err := svc.Ledger.PendingWithdrawals(ctx, time.Now().Add(-timeout))
	if err != nil {
		return 0, err
	}
	count := 0
	for _, withdrawal := range pending {
		if reported[withdrawal.ID] {
			continue
		}
		reported[withdrawal.ID] = true
		count++
		svc.Logger.Errorf("Withdrawal stuck in pending id:%v reference:%s identity:%s amount:%v created_at:%v",
			withdrawal.ID, withdrawal.Reference, withdrawal.Identity, withdrawal.Amount, withdrawal.CreatedAt)
		sentry.CaptureMessage(fmt.Sprintf("withdrawal %d stuck in pending", withdrawal.ID))
	}
	return count, nil
}
