package entity

import (
	"time"

	"github.com/AhsanIqbal-web/shopify-data-connector/internal/domain"
)

// MongoWebhookEventDoc represents a logged webhook delivery in MongoDB
type MongoWebhookEventDoc struct {
	ID        string    `bson:"_id"`
	Topic     string    `bson:"topic"`
	Shop      string    `bson:"shop"`
	Payload   []byte    `bson:"payload"`
	Verified  bool      `bson:"verified"`
	CreatedAt time.Time `bson:"createdAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoWebhookEventDoc) ToDomain() *domain.WebhookEvent {
	return &domain.WebhookEvent{
		ID:        d.ID,
		Topic:     d.Topic,
		Shop:      d.Shop,
		Payload:   d.Payload,
		Verified:  d.Verified,
		CreatedAt: d.CreatedAt,
	}
}

// MongoWebhookEventDocFromDomain converts a domain entity to a MongoDB document
func MongoWebhookEventDocFromDomain(event *domain.WebhookEvent) *MongoWebhookEventDoc {
	return &MongoWebhookEventDoc{
		ID:        event.ID,
		Topic:     event.Topic,
		Shop:      event.Shop,
		Payload:   event.Payload,
		Verified:  event.Verified,
		CreatedAt: event.CreatedAt,
	}
}
