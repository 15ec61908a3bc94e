package ports

import (
	"context"

	"github.com/AhsanIqbal-web/shopify-data-connector/internal/domain"
)

// StoreRepository defines the interface for store record persistence
type StoreRepository interface {
	// Save creates or updates the record for its shop domain
	Save(ctx context.Context, record *domain.StoreRecord) error

	// FindByShop retrieves a record by shop domain, nil when absent
	FindByShop(ctx context.Context, shop string) (*domain.StoreRecord, error)

	// FindByAPIKey retrieves a record by its API key, nil when absent
	FindByAPIKey(ctx context.Context, apiKey string) (*domain.StoreRecord, error)

	// Delete removes the record for a shop domain
	Delete(ctx context.Context, shop string) error
}

// WebhookEventRepository defines the interface for the webhook delivery log
type WebhookEventRepository interface {
	Insert(ctx context.Context, event *domain.WebhookEvent) error
}
