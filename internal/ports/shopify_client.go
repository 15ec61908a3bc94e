package ports

import (
	"context"
	"net/url"

	shopify "github.com/bold-commerce/go-shopify/v4"
)

// ShopifyClient defines the interface for Shopify API operations
type ShopifyClient interface {
	// OAuth
	AuthorizeURL(shop string, state string) string
	VerifyAuthCallback(u *url.URL) (bool, error)
	ExchangeToken(ctx context.Context, shop string, code string) (string, error)

	// Admin data, one page per call
	ListOrders(ctx context.Context, shop string, accessToken string) ([]shopify.Order, error)
	ListCustomers(ctx context.Context, shop string, accessToken string) ([]shopify.Customer, error)
	ListProducts(ctx context.Context, shop string, accessToken string) ([]shopify.Product, error)
	ListInventoryLevels(ctx context.Context, shop string, accessToken string) ([]shopify.InventoryLevel, error)

	// GetAnalyticsReports reads the reports resource as-is. The shape is not
	// part of the contract.
	GetAnalyticsReports(ctx context.Context, shop string, accessToken string) (interface{}, error)

	// Webhook API
	RegisterWebhook(ctx context.Context, shop string, accessToken string, topic string, address string) error
}
