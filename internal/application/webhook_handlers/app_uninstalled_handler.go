package webhook_handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AhsanIqbal-web/shopify-data-connector/internal/domain"
	"github.com/AhsanIqbal-web/shopify-data-connector/internal/ports"

	"github.com/rs/zerolog"
)

// AppUninstalledHandler handles app uninstalled webhook events.
// Uninstalling deletes the store record, which revokes the API key: the next
// gateway request with that key gets 401.
type AppUninstalledHandler struct {
	logger zerolog.Logger
	stores ports.StoreRepository
}

// NewAppUninstalledHandler creates a new app uninstalled webhook handler
func NewAppUninstalledHandler(logger zerolog.Logger, stores ports.StoreRepository) *AppUninstalledHandler {
	return &AppUninstalledHandler{
		logger: logger,
		stores: stores,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *AppUninstalledHandler) CanHandle(topic string) bool {
	return topic == "app/uninstalled"
}

// Handle processes an app uninstalled webhook event
func (h *AppUninstalledHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	shopDomain := event.Shop
	if shopDomain == "" {
		var shopData map[string]interface{}
		if err := json.Unmarshal(event.Payload, &shopData); err != nil {
			return fmt.Errorf("failed to parse app uninstalled webhook payload: %w", err)
		}
		if d, ok := shopData["domain"].(string); ok {
			shopDomain = d
		} else if myshopifyDomain, ok := shopData["myshopify_domain"].(string); ok {
			shopDomain = myshopifyDomain
		}
	}
	if shopDomain == "" {
		return fmt.Errorf("app uninstalled webhook without a shop domain")
	}

	if err := h.stores.Delete(ctx, shopDomain); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.logger.Warn().Str("shop", shopDomain).Msg("App uninstalled for a shop with no store record")
			return nil
		}
		return fmt.Errorf("failed to delete store record for %s: %w", shopDomain, err)
	}

	h.logger.Info().
		Str("shop", shopDomain).
		Msg("App uninstalled, store record deleted and API key revoked")

	return nil
}
