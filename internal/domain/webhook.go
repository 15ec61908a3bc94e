package domain

import "time"

// WebhookEvent represents a received Shopify webhook delivery.
type WebhookEvent struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Shop      string    `json:"shop"`
	Payload   []byte    `json:"payload"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}
