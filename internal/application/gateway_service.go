package application

import (
	"context"
	"fmt"

	"github.com/AhsanIqbal-web/shopify-data-connector/internal/domain"
	"github.com/AhsanIqbal-web/shopify-data-connector/internal/ports"

	"github.com/rs/zerolog"
)

// GatewayService serves key-gated data requests. Every fetch goes straight to
// the Shopify Admin API; nothing is cached between requests.
type GatewayService struct {
	stores        ports.StoreRepository
	shopifyClient ports.ShopifyClient
	encryptionSvc ports.EncryptionService
	logger        zerolog.Logger
}

// NewGatewayService creates a new gateway service
func NewGatewayService(
	stores ports.StoreRepository,
	shopifyClient ports.ShopifyClient,
	encryptionSvc ports.EncryptionService,
	logger zerolog.Logger,
) *GatewayService {
	return &GatewayService{
		stores:        stores,
		shopifyClient: shopifyClient,
		encryptionSvc: encryptionSvc,
		logger:        logger,
	}
}

// FetchAuthorizedData resolves the API key to a store record, fetches every
// authorized category live and assembles them keyed by category name. Any
// upstream failure aborts the whole request; there are no partial payloads.
func (s *GatewayService) FetchAuthorizedData(ctx context.Context, apiKey string) (domain.DataPayload, error) {
	record, err := s.stores.FindByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to look up api key: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("no store record for api key: %w", domain.ErrUnauthorized)
	}

	payload := domain.DataPayload{}
	categories := record.DataSelections.AuthorizedCategories()
	if len(categories) == 0 {
		return payload, nil
	}

	accessToken, err := s.encryptionSvc.Decrypt(record.AccessToken)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", record.Shop).Msg("Failed to decrypt access token")
		return nil, fmt.Errorf("failed to decrypt access token: %w", err)
	}

	for _, category := range categories {
		data, err := s.fetchCategory(ctx, record.Shop, accessToken, category)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("shop", record.Shop).
				Str("category", string(category)).
				Msg("Failed to fetch category data")
			return nil, fmt.Errorf("fetch %s for shop %s: %w", category, record.Shop, domain.ErrUpstream)
		}
		payload[category] = data
	}

	s.logger.Info().
		Str("shop", record.Shop).
		Int("categories", len(categories)).
		Msg("Assembled data payload")

	return payload, nil
}

func (s *GatewayService) fetchCategory(ctx context.Context, shop string, accessToken string, category domain.Category) (interface{}, error) {
	switch category {
	case domain.CategoryOrders:
		return s.shopifyClient.ListOrders(ctx, shop, accessToken)
	case domain.CategoryCustomers:
		return s.shopifyClient.ListCustomers(ctx, shop, accessToken)
	case domain.CategoryProducts:
		return s.shopifyClient.ListProducts(ctx, shop, accessToken)
	case domain.CategoryInventory:
		return s.shopifyClient.ListInventoryLevels(ctx, shop, accessToken)
	case domain.CategoryAnalytics:
		return s.shopifyClient.GetAnalyticsReports(ctx, shop, accessToken)
	default:
		return nil, fmt.Errorf("no upstream mapping for category %s", category)
	}
}
