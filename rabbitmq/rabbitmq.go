package rabbitmq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/getAlby/royaltyhub.go/db/models"
	"github.com/getAlby/royaltyhub.go/lib/royalty"
	"github.com/getsentry/sentry-go"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

// bufPool lets the publisher reuse encoding buffers instead of allocating one per message.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

const (
	contentTypeJSON = "application/json"

	paymentRoutingKey = "payment.received.#"
)

// PaymentNotification is a payment received for a token by an upstream service.
// Reference identifies the payment and makes redelivered notifications harmless.
type PaymentNotification struct {
	TokenID   int64  `json:"token_id"`
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
}

type (
	PaymentHandler        = func(ctx context.Context, payment PaymentNotification) error
	SubscribeToEventsFunc = func() (events chan models.Event, unsubscribe func(), err error)
)

type Client interface {
	// Pay publishes a payout for the external wallet service. It implements royalty.Payer.
	Pay(ctx context.Context, payout royalty.Payout) error
	SubscribeToPayments(ctx context.Context, handler PaymentHandler) error
	StartPublishEvents(ctx context.Context, subscribe SubscribeToEventsFunc) error
	// Close will close all connections to rabbitmq
	Close() error
}

type DefaultClient struct {
	amqpClient AMQPClient
	logger     *lecho.Logger

	paymentExchange          string
	paymentConsumerQueueName string
	payoutExchange           string
	eventExchange            string
	deliveryLimit            int

	declareMu       sync.Mutex
	payoutsDeclared bool
}

type ClientOption = func(client *DefaultClient)

func WithPaymentExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.paymentExchange = exchange
	}
}

func WithPaymentConsumerQueueName(name string) ClientOption {
	return func(client *DefaultClient) {
		client.paymentConsumerQueueName = name
	}
}

func WithPayoutExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.payoutExchange = exchange
	}
}

func WithEventExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.eventExchange = exchange
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

func NewClient(amqpClient AMQPClient, options ...ClientOption) (*DefaultClient, error) {
	if amqpClient == nil {
		return nil, errors.New("rabbitmq: amqp client is required")
	}
	client := &DefaultClient{
		amqpClient: amqpClient,
		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),

		paymentExchange:          "royalty_payment",
		paymentConsumerQueueName: "royalty_payment_consumer",
		payoutExchange:           "royalty_payout",
		eventExchange:            "royalty_event",
		deliveryLimit:            defaultDeliveryLimit,
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (client *DefaultClient) Close() error { return client.amqpClient.Close() }

// SubscribeToPayments distributes every payment notification published on the payment exchange.
// Malformed or unprocessable notifications are dropped, already distributed ones are acked,
// anything else is requeued until the queue's delivery limit is reached.
func (client *DefaultClient) SubscribeToPayments(ctx context.Context, handler PaymentHandler) error {
	deliveries, err := client.amqpClient.Listen(ctx,
		client.paymentExchange,
		paymentRoutingKey,
		client.paymentConsumerQueueName,
		WithDeliveryLimit(client.deliveryLimit),
	)
	if err != nil {
		return err
	}

	client.logger.Info("Starting payment consumer loop")
	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("disconnected from rabbitmq")
			}
			client.handlePayment(ctx, delivery, handler)
		}
	}
}

func (client *DefaultClient) handlePayment(ctx context.Context, delivery amqp.Delivery, handler PaymentHandler) {
	var payment PaymentNotification
	if err := json.Unmarshal(delivery.Body, &payment); err != nil {
		captureErr(client.logger, err)
		// badly formatted events are never going to succeed
		nack(client.logger, delivery, false)
		return
	}

	err := handler(ctx, payment)
	switch {
	case err == nil:
		client.logger.Infof("Payment distributed token_id:%v amount:%v reference:%s", payment.TokenID, payment.Amount, payment.Reference)
	case errors.Is(err, royalty.ErrDuplicatePayment):
		client.logger.Infof("Payment already distributed reference:%s", payment.Reference)
	case errors.Is(err, royalty.ErrUnknownToken), errors.Is(err, royalty.ErrZeroAmount):
		client.logger.Errorf("Dropping payment reference:%s: %v", payment.Reference, err)
		nack(client.logger, delivery, false)
		return
	default:
		captureErr(client.logger, err)
		nack(client.logger, delivery, true)
		return
	}

	if err := delivery.Ack(false); err != nil {
		captureErr(client.logger, err)
	}
}

// Pay publishes the payout to the payout exchange, routed by beneficiary.
func (client *DefaultClient) Pay(ctx context.Context, payout royalty.Payout) error {
	if err := client.declarePayoutExchange(); err != nil {
		return err
	}

	payload := bufPool.Get().(*bytes.Buffer)
	defer func() {
		payload.Reset()
		bufPool.Put(payload)
	}()
	if err := json.NewEncoder(payload).Encode(payout); err != nil {
		return err
	}

	err := client.amqpClient.PublishWithContext(ctx,
		client.payoutExchange,
		fmt.Sprintf("payout.%s", payout.Beneficiary),
		false,
		false,
		amqp.Publishing{
			ContentType:  contentTypeJSON,
			DeliveryMode: amqp.Persistent,
			MessageId:    payout.Reference,
			Body:         payload.Bytes(),
		},
	)
	if err != nil {
		return err
	}

	client.logger.Debugf("Published payout to rabbitmq reference:%s amount:%v", payout.Reference, payout.Amount)
	return nil
}

func (client *DefaultClient) declarePayoutExchange() error {
	client.declareMu.Lock()
	defer client.declareMu.Unlock()
	if client.payoutsDeclared {
		return nil
	}
	if err := client.amqpClient.ExchangeDeclare(client.payoutExchange, "topic", true, false, false, false, nil); err != nil {
		return err
	}
	client.payoutsDeclared = true
	return nil
}

// StartPublishEvents forwards every event of the hub to the event exchange until ctx is done.
func (client *DefaultClient) StartPublishEvents(ctx context.Context, subscribe SubscribeToEventsFunc) error {
	err := client.amqpClient.ExchangeDeclare(client.eventExchange, "topic", true, false, false, false, nil)
	if err != nil {
		return err
	}

	events, unsubscribe, err := subscribe()
	if err != nil {
		return err
	}
	defer unsubscribe()

	client.logger.Info("Starting rabbitmq event publisher")
	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := client.publishEvent(ctx, event); err != nil {
				captureErr(client.logger, err)
			}
		}
	}
}

func (client *DefaultClient) publishEvent(ctx context.Context, event models.Event) error {
	payload := bufPool.Get().(*bytes.Buffer)
	defer func() {
		payload.Reset()
		bufPool.Put(payload)
	}()
	if err := json.NewEncoder(payload).Encode(event); err != nil {
		return err
	}

	key := fmt.Sprintf("event.%s.%d", event.Type, event.TokenID)
	err := client.amqpClient.PublishWithContext(ctx,
		client.eventExchange,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Body:        payload.Bytes(),
		},
	)
	if err != nil {
		return err
	}

	client.logger.Debugf("Published %s event to rabbitmq", event.Type)
	return nil
}

func nack(logger *lecho.Logger, delivery amqp.Delivery, requeue bool) {
	if err := delivery.Nack(false, requeue); err != nil {
		captureErr(logger, err)
	}
}

func captureErr(logger *lecho.Logger, err error) {
	logger.Error(err)
	sentry.CaptureException(err)
}

var _ royalty.Payer = (*DefaultClient)(nil)
