package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/getAlby/royaltyhub.go/db/models"
)

const webhookMaxRetries = 3

var webhookClient = &http.Client{Timeout: 10 * time.Second}

func (svc *RoyaltyHubService) StartWebhookSubscription(ctx context.Context, url string) {
	svc.Logger.Infof("Starting webhook subscription with webhook url %s", url)
	events, unsubscribe, err := svc.SubscribeEvents()
	if err != nil {
		svc.Logger.Error(err)
		return
	}
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-events:
			svc.postToWebhook(ctx, event, url)
		}
	}
}

func (svc *RoyaltyHubService) postToWebhook(ctx context.Context, event models.Event, url string) {
	payload, err := json.Marshal(event)
	if err != nil {
		svc.Logger.Error(err)
		return
	}

	post := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := webhookClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			err = fmt.Errorf("webhook status code was %d, body: %s", resp.StatusCode, msg)
			// the receiver rejected the event, retrying will not help
			if resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}

	exponentialBackoff := backoff.NewExponentialBackOff()
	exponentialBackoff.InitialInterval = 500 * time.Millisecond
	err = backoff.Retry(post, backoff.WithContext(backoff.WithMaxRetries(exponentialBackoff, webhookMaxRetries), ctx))
	if err != nil {
		svc.Logger.Errorf("Posting %s event to webhook failed: %v", event.Type, err)
	}
}
