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

// ShopUpdateHandler handles shop/update webhook events. Its only job is to
// follow myshopify domain renames so the record keeps matching the domain
// Shopify delivers webhooks for.
type ShopUpdateHandler struct {
	logger zerolog.Logger
	stores ports.StoreRepository
}

// NewShopUpdateHandler creates a new shop update webhook handler
func NewShopUpdateHandler(logger zerolog.Logger, stores ports.StoreRepository) *ShopUpdateHandler {
	return &ShopUpdateHandler{
		logger: logger,
		stores: stores,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *ShopUpdateHandler) CanHandle(topic string) bool {
	return topic == "shop/update"
}

// Handle processes a shop update webhook event
func (h *ShopUpdateHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var shopData struct {
		Name            string `json:"name"`
		Domain          string `json:"domain"`
		MyshopifyDomain string `json:"myshopify_domain"`
	}
	if err := json.Unmarshal(event.Payload, &shopData); err != nil {
		return fmt.Errorf("failed to parse shop update webhook payload: %w", err)
	}

	h.logger.Info().
		Str("shop", event.Shop).
		Str("name", shopData.Name).
		Str("myshopifyDomain", shopData.MyshopifyDomain).
		Msg("Processing shop update webhook event")

	newDomain := shopData.MyshopifyDomain
	if newDomain == "" || newDomain == event.Shop {
		return nil
	}

	record, err := h.stores.FindByShop(ctx, event.Shop)
	if err != nil {
		return fmt.Errorf("failed to get store record for %s: %w", event.Shop, err)
	}
	if record == nil {
		return nil
	}

	// Re-home the record under the new domain. Delete first so the unique
	// api key index never sees two records holding the same key.
	if err := h.stores.Delete(ctx, event.Shop); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to delete store record for %s: %w", event.Shop, err)
	}
	record.Shop = newDomain
	if err := h.stores.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to save store record for %s: %w", newDomain, err)
	}

	h.logger.Info().
		Str("previousShop", event.Shop).
		Str("shop", newDomain).
		Msg("Shop domain changed, store record moved")

	return nil
}
