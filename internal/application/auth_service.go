package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/AhsanIqbal-web/shopify-data-connector/internal/domain"
	"github.com/AhsanIqbal-web/shopify-data-connector/internal/ports"

	"github.com/rs/zerolog"
)

// sessionTTL bounds how long an OAuth redirect may stay pending.
const sessionTTL = 10 * time.Minute

// defaultWebhookTopics are the lifecycle topics registered after every
// successful install.
var defaultWebhookTopics = []string{"app/uninstalled", "shop/update"}

var shopDomainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*\.myshopify\.com$`)

// AuthService drives the Shopify OAuth flow and owns the store record
// lifecycle that hangs off it
type AuthService struct {
	stores         ports.StoreRepository
	sessions       ports.SessionStore
	shopifyClient  ports.ShopifyClient
	encryptionSvc  ports.EncryptionService
	logger         zerolog.Logger
	webhookAddress string
}

// NewAuthService creates a new auth service
func NewAuthService(
	stores ports.StoreRepository,
	sessions ports.SessionStore,
	shopifyClient ports.ShopifyClient,
	encryptionSvc ports.EncryptionService,
	logger zerolog.Logger,
	webhookAddress string,
) *AuthService {
	return &AuthService{
		stores:         stores,
		sessions:       sessions,
		shopifyClient:  shopifyClient,
		encryptionSvc:  encryptionSvc,
		logger:         logger,
		webhookAddress: webhookAddress,
	}
}

// Authenticated reports whether the shop has a store record with a usable token.
func (s *AuthService) Authenticated(ctx context.Context, shop string) (bool, error) {
	record, err := s.stores.FindByShop(ctx, shop)
	if err != nil {
		return false, fmt.Errorf("failed to get store record: %w", err)
	}
	return record.Authenticated(), nil
}

// BeginAuth starts the OAuth flow for a shop: it persists a short-lived state
// session and returns the Shopify authorization URL to redirect to.
func (s *AuthService) BeginAuth(ctx context.Context, shop string) (string, error) {
	if !shopDomainPattern.MatchString(shop) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidShop, shop)
	}

	// Generate random state for CSRF protection
	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	state := hex.EncodeToString(stateBytes)

	session := &domain.Session{
		State:     state,
		Shop:      shop,
		ExpiresAt: time.Now().Add(sessionTTL),
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("Failed to create session")
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return s.shopifyClient.AuthorizeURL(shop, state), nil
}

// CallbackParams carries the OAuth callback request as received from Shopify.
// URL is the full callback URL including the hmac query parameter.
type CallbackParams struct {
	Shop  string
	Code  string
	State string
	URL   *url.URL
}

// CompleteAuth validates the OAuth callback, exchanges the code and upserts
// the store record. The first successful install generates the API key;
// re-authentication only rotates the access token.
func (s *AuthService) CompleteAuth(ctx context.Context, params CallbackParams) (*domain.StoreRecord, error) {
	session, err := s.sessions.Get(ctx, params.State)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil || session.Shop != params.Shop {
		s.logger.Warn().Str("shop", params.Shop).Msg("OAuth callback with unknown or mismatched state")
		return nil, fmt.Errorf("state validation failed for shop %s: %w", params.Shop, domain.ErrAuth)
	}

	ok, err := s.shopifyClient.VerifyAuthCallback(params.URL)
	if err != nil || !ok {
		s.logger.Warn().Err(err).Str("shop", params.Shop).Msg("OAuth callback HMAC verification failed")
		return nil, fmt.Errorf("hmac verification failed for shop %s: %w", params.Shop, domain.ErrAuth)
	}

	// The state is single-use regardless of how the exchange goes
	if err := s.sessions.Delete(ctx, params.State); err != nil {
		s.logger.Warn().Err(err).Str("shop", params.Shop).Msg("Failed to delete session")
	}

	accessToken, err := s.shopifyClient.ExchangeToken(ctx, params.Shop, params.Code)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", params.Shop).Msg("Failed to exchange token")
		return nil, fmt.Errorf("token exchange failed for shop %s: %w", params.Shop, domain.ErrAuth)
	}

	// Encrypt access token before storage
	encryptedToken, err := s.encryptionSvc.Encrypt(accessToken)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", params.Shop).Msg("Failed to encrypt access token")
		return nil, fmt.Errorf("failed to encrypt access token: %w", err)
	}

	record, err := s.stores.FindByShop(ctx, params.Shop)
	if err != nil {
		return nil, fmt.Errorf("failed to get store record: %w", err)
	}
	if record == nil {
		apiKey, err := generateAPIKey()
		if err != nil {
			return nil, err
		}
		record = &domain.StoreRecord{
			Shop:   params.Shop,
			APIKey: apiKey,
		}
		s.logger.Info().Str("shop", params.Shop).Msg("First install, generated API key")
	}
	record.AccessToken = encryptedToken

	if err := s.stores.Save(ctx, record); err != nil {
		s.logger.Error().Err(err).Str("shop", params.Shop).Msg("Failed to save store record")
		return nil, fmt.Errorf("failed to save store record: %w", err)
	}

	s.registerWebhooks(ctx, params.Shop, accessToken)

	s.logger.Info().Str("shop", params.Shop).Msg("OAuth completed")
	return record, nil
}

// registerWebhooks subscribes the lifecycle topics after install.
// Don't fail the OAuth flow if webhook registration fails.
func (s *AuthService) registerWebhooks(ctx context.Context, shop string, accessToken string) {
	for _, topic := range defaultWebhookTopics {
		if err := s.shopifyClient.RegisterWebhook(ctx, shop, accessToken, topic, s.webhookAddress); err != nil {
			s.logger.Warn().Err(err).Str("shop", shop).Str("topic", topic).Msg("Failed to register webhook")
			continue
		}
		s.logger.Info().Str("shop", shop).Str("topic", topic).Msg("Registered webhook")
	}
}

// generateAPIKey returns a unique opaque key (32 bytes = 64 hex characters)
func generateAPIKey() (string, error) {
	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		return "", fmt.Errorf("failed to generate api key: %w", err)
	}
	return hex.EncodeToString(keyBytes), nil
}
