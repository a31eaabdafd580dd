package models

import "time"

// Event : notification fanned out to webhooks and rabbitmq, not persisted
type Event struct {
	Type         string        `json:"type"`
	TokenID      int64         `json:"token_id,omitempty"`
	Token        *Token        `json:"token,omitempty"`
	Distribution *Distribution `json:"distribution,omitempty"`
	Withdrawal   *Withdrawal   `json:"withdrawal,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}
