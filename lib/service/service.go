package service

import (
	"context"
	"errors"
	"time"

	"github.com/getAlby/royaltyhub.go/common"
	"github.com/getAlby/royaltyhub.go/db/models"
	"github.com/getAlby/royaltyhub.go/lib/royalty"
	"github.com/getAlby/royaltyhub.go/rabbitmq"
	"github.com/ziflex/lecho/v3"
)

type RoyaltyHubService struct {
	Config         *Config
	Store          royalty.Store
	Registry       *royalty.Registry
	Ledger         *royalty.Ledger
	Logger         *lecho.Logger
	EventPubSub    *Pubsub
	RabbitMQClient rabbitmq.Client
}

// NewRoyaltyHubService wires registry and ledger on top of one shared store.
// Payouts go to payer. A nil payer only logs payouts on the memory store and
// refuses them on any other store.
func NewRoyaltyHubService(config *Config, store royalty.Store, payer royalty.Payer, logger *lecho.Logger) *RoyaltyHubService {
	if payer == nil {
		payer = defaultPayer(config, logger)
	}
	registry := royalty.NewRegistry(store)
	return &RoyaltyHubService{
		Config:      config,
		Store:       store,
		Registry:    registry,
		Ledger:      royalty.NewLedger(store, registry, payer, royalty.WithLogger(logger)),
		Logger:      logger,
		EventPubSub: NewPubsub(),
	}
}

func (svc *RoyaltyHubService) Mint(ctx context.Context, params royalty.MintParams) (*models.Token, error) {
	token, err := svc.Registry.Mint(ctx, params)
	if err != nil {
		return nil, err
	}
	svc.Logger.Infof("Minted token id:%v owner:%s royalty_bps:%v", token.ID, token.Owner, token.RoyaltyBps)
	svc.publish(models.Event{Type: common.EventTypeMint, TokenID: token.ID, Token: token})
	return token, nil
}

func (svc *RoyaltyHubService) Token(ctx context.Context, id int64) (*models.Token, error) {
	return svc.Registry.Token(ctx, id)
}

func (svc *RoyaltyHubService) OwnerOf(ctx context.Context, id int64) (string, error) {
	return svc.Registry.OwnerOf(ctx, id)
}

func (svc *RoyaltyHubService) RoyaltyTerms(ctx context.Context, id int64) (royalty.RoyaltyTerms, error) {
	return svc.Registry.RoyaltyTerms(ctx, id)
}

func (svc *RoyaltyHubService) CurrentTokenCount(ctx context.Context) (int64, error) {
	return svc.Registry.CurrentTokenCount(ctx)
}

func (svc *RoyaltyHubService) Collection(ctx context.Context) (*models.Collection, error) {
	return svc.Registry.Collection(ctx)
}

func (svc *RoyaltyHubService) TokensOwnedBy(ctx context.Context, owner string, limit int) ([]models.Token, error) {
	return svc.Registry.TokensOwnedBy(ctx, owner, limit)
}

// Transfer moves a token on behalf of caller, who must own it or be approved for it.
func (svc *RoyaltyHubService) Transfer(ctx context.Context, caller string, id int64, from, to string) (*models.Token, error) {
	token, err := svc.Registry.TransferFrom(ctx, caller, id, from, to)
	if err != nil {
		return nil, err
	}
	svc.Logger.Infof("Transferred token id:%v from:%s to:%s", token.ID, from, token.Owner)
	svc.publish(models.Event{Type: common.EventTypeTransfer, TokenID: token.ID, Token: token})
	return token, nil
}

func (svc *RoyaltyHubService) Approve(ctx context.Context, caller string, id int64, agent string) (*models.Token, error) {
	token, err := svc.Registry.Approve(ctx, caller, id, agent)
	if err != nil {
		return nil, err
	}
	svc.publish(models.Event{Type: common.EventTypeApproval, TokenID: token.ID, Token: token})
	return token, nil
}

func (svc *RoyaltyHubService) Distribute(ctx context.Context, tokenID, amount int64, reference string) (*models.Distribution, error) {
	distribution, err := svc.Ledger.DistributeWithReference(ctx, tokenID, amount, reference)
	if err != nil {
		return nil, err
	}
	svc.Logger.Infof("Distributed payment token_id:%v amount:%v artist_share:%v owner_share:%v", tokenID, amount, distribution.ArtistShare, distribution.OwnerShare)
	svc.publish(models.Event{Type: common.EventTypeDistribution, TokenID: tokenID, Distribution: distribution})
	return distribution, nil
}

// HandlePaymentNotification distributes a payment received over rabbitmq.
func (svc *RoyaltyHubService) HandlePaymentNotification(ctx context.Context, payment rabbitmq.PaymentNotification) error {
	_, err := svc.Distribute(ctx, payment.TokenID, payment.Amount, payment.Reference)
	return err
}

func (svc *RoyaltyHubService) BalanceOf(ctx context.Context, identity string) (int64, error) {
	return svc.Ledger.BalanceOf(ctx, identity)
}

func (svc *RoyaltyHubService) EntriesFor(ctx context.Context, identity string, limit int) ([]models.TransactionEntry, error) {
	return svc.Ledger.EntriesFor(ctx, identity, limit)
}

func (svc *RoyaltyHubService) Withdraw(ctx context.Context, identity string) (*models.Withdrawal, error) {
	withdrawal, err := svc.Ledger.Withdraw(ctx, identity)
	if withdrawal != nil {
		svc.publish(models.Event{Type: common.EventTypeWithdrawal, Withdrawal: withdrawal})
	}
	if err != nil {
		if !errors.Is(err, royalty.ErrNothingToWithdraw) {
			svc.Logger.Errorf("Withdrawal failed identity:%s error: %v", identity, err)
		}
		return withdrawal, err
	}
	svc.Logger.Infof("Withdrawal settled id:%v identity:%s amount:%v", withdrawal.ID, withdrawal.Identity, withdrawal.Amount)
	return withdrawal, nil
}

func (svc *RoyaltyHubService) publish(event models.Event) {
	event.CreatedAt = time.Now()
	svc.EventPubSub.Publish(event.Type, event)
}
