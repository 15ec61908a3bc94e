package shopify

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/AhsanIqbal-web/shopify-data-connector/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

// pageLimit is the Admin API page-size ceiling. Only the first page of each
// resource is fetched; larger stores get a truncated snapshot.
const pageLimit = 250

type client struct {
	apiKey      string
	apiSecret   string
	scopes      []string
	redirectURI string
	app         goshopify.App
	logger      zerolog.Logger
}

// NewClient creates a new Shopify client adapter
func NewClient(apiKey, apiSecret string, scopes []string, redirectURI string, logger zerolog.Logger) ports.ShopifyClient {
	app := goshopify.App{
		ApiKey:      apiKey,
		ApiSecret:   apiSecret,
		RedirectUrl: redirectURI,
		Scope:       strings.Join(scopes, ","),
	}
	return &client{
		apiKey:      apiKey,
		apiSecret:   apiSecret,
		scopes:      scopes,
		redirectURI: redirectURI,
		app:         app,
		logger:      logger,
	}
}

// createClient is a helper to create a goshopify client
func (c *client) createClient(shopDomain string, accessToken string) (*goshopify.Client, error) {
	client, err := goshopify.NewClient(c.app, shopDomain, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// Authentication

// AuthorizeURL builds the authorization redirect for a shop.
// Shopify expects scopes to be comma-separated (no spaces).
func (c *client) AuthorizeURL(shop string, state string) string {
	scopesStr := strings.Join(c.scopes, ",")
	authURL := fmt.Sprintf(
		"https://%s/admin/oauth/authorize?client_id=%s&scope=%s&redirect_uri=%s&state=%s",
		shop,
		c.apiKey,
		url.QueryEscape(scopesStr),
		url.QueryEscape(c.redirectURI),
		url.QueryEscape(state),
	)

	c.logger.Debug().
		Str("shop", shop).
		Str("scopes", scopesStr).
		Msg("Generated OAuth authorization URL")

	return authURL
}

// VerifyAuthCallback checks the hmac parameter Shopify signs the callback
// query with.
func (c *client) VerifyAuthCallback(u *url.URL) (bool, error) {
	return c.app.VerifyAuthorizationURL(u)
}

// ExchangeToken trades the authorization code for an access token.
func (c *client) ExchangeToken(ctx context.Context, shop string, code string) (string, error) {
	token, err := c.app.GetAccessToken(ctx, shop, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange token: %w", err)
	}
	return token, nil
}

// Admin data, one page per call

func (c *client) ListOrders(ctx context.Context, shopDomain string, accessToken string) ([]goshopify.Order, error) {
	client, err := c.createClient(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	orders, err := client.Order.List(ctx, goshopify.OrderListOptions{
		ListOptions: goshopify.ListOptions{Limit: pageLimit},
		Status:      "any",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (c *client) ListCustomers(ctx context.Context, shopDomain string, accessToken string) ([]goshopify.Customer, error) {
	client, err := c.createClient(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	customers, err := client.Customer.List(ctx, goshopify.ListOptions{Limit: pageLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (c *client) ListProducts(ctx context.Context, shopDomain string, accessToken string) ([]goshopify.Product, error) {
	client, err := c.createClient(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	products, err := client.Product.List(ctx, goshopify.ListOptions{Limit: pageLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (c *client) ListInventoryLevels(ctx context.Context, shopDomain string, accessToken string) ([]goshopify.InventoryLevel, error) {
	client, err := c.createClient(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	levels, err := client.InventoryLevel.List(ctx, goshopify.ListOptions{Limit: pageLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory levels: %w", err)
	}
	return levels, nil
}

// GetAnalyticsReports reads the reports resource raw. Shopify has no single
// analytics endpoint on the Admin REST API, so the report definitions are
// passed through as-is.
func (c *client) GetAnalyticsReports(ctx context.Context, shopDomain string, accessToken string) (interface{}, error) {
	client, err := c.createClient(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	var resource struct {
		Reports []map[string]interface{} `json:"reports"`
	}
	if err := client.Get(ctx, "reports.json", &resource, goshopify.ListOptions{Limit: pageLimit}); err != nil {
		return nil, fmt.Errorf("failed to get reports: %w", err)
	}
	return resource.Reports, nil
}

// Webhook API

func (c *client) RegisterWebhook(ctx context.Context, shopDomain string, accessToken string, topic string, address string) error {
	client, err := c.createClient(shopDomain, accessToken)
	if err != nil {
		return err
	}
	webhook := goshopify.Webhook{
		Topic:   topic,
		Address: address,
		Format:  "json",
	}
	if _, err := client.Webhook.Create(ctx, webhook); err != nil {
		return fmt.Errorf("failed to create webhook: %w", err)
	}
	return nil
}
