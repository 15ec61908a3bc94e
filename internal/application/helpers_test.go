package application

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/AhsanIqbal-web/shopify-data-connector/internal/domain"

	shopify "github.com/bold-commerce/go-shopify/v4"
)

// fakeStoreRepo is an in-memory ports.StoreRepository. Records are stored by
// value, matching the persistence semantics of the Mongo implementation.
type fakeStoreRepo struct {
	byShop  map[string]*domain.StoreRecord
	findErr error
	saveErr error
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{byShop: make(map[string]*domain.StoreRecord)}
}

func (f *fakeStoreRepo) Save(_ context.Context, record *domain.StoreRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	cp := *record
	f.byShop[record.Shop] = &cp
	return nil
}

func (f *fakeStoreRepo) FindByShop(_ context.Context, shop string) (*domain.StoreRecord, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	record, ok := f.byShop[shop]
	if !ok {
		return nil, nil
	}
	cp := *record
	return &cp, nil
}

func (f *fakeStoreRepo) FindByAPIKey(_ context.Context, apiKey string) (*domain.StoreRecord, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, record := range f.byShop {
		if record.APIKey == apiKey {
			cp := *record
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStoreRepo) Delete(_ context.Context, shop string) error {
	if _, ok := f.byShop[shop]; !ok {
		return fmt.Errorf("no store record for shop %s: %w", shop, domain.ErrNotFound)
	}
	delete(f.byShop, shop)
	return nil
}

// fakeSessionStore keeps OAuth sessions in a map and honors expiry like the
// Redis implementation does via TTL.
type fakeSessionStore struct {
	sessions  map[string]*domain.Session
	createErr error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*domain.Session)}
}

func (f *fakeSessionStore) Create(_ context.Context, session *domain.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.sessions[session.State] = session
	return nil
}

func (f *fakeSessionStore) Get(_ context.Context, state string) (*domain.Session, error) {
	session, ok := f.sessions[state]
	if !ok || time.Now().After(session.ExpiresAt) {
		return nil, nil
	}
	return session, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, state string) error {
	delete(f.sessions, state)
	return nil
}

// fakeShopifyClient counts upstream calls and returns canned data, with
// per-category error injection.
type fakeShopifyClient struct {
	verifyOK    bool
	verifyErr   error
	tokens      map[string]string // code -> access token
	exchangeErr error

	registeredTopics []string
	registerErr      error

	lastAccessToken string

	ordersCalls    int
	customersCalls int
	productsCalls  int
	inventoryCalls int
	analyticsCalls int

	ordersErr    error
	customersErr error
	productsErr  error
	inventoryErr error
	analyticsErr error
}

func newFakeShopifyClient() *fakeShopifyClient {
	return &fakeShopifyClient{
		verifyOK: true,
		tokens:   make(map[string]string),
	}
}

func (f *fakeShopifyClient) AuthorizeURL(shop string, state string) string {
	return fmt.Sprintf("https://%s/admin/oauth/authorize?state=%s", shop, state)
}

func (f *fakeShopifyClient) VerifyAuthCallback(_ *url.URL) (bool, error) {
	return f.verifyOK, f.verifyErr
}

func (f *fakeShopifyClient) ExchangeToken(_ context.Context, _ string, code string) (string, error) {
	if f.exchangeErr != nil {
		return "", f.exchangeErr
	}
	token, ok := f.tokens[code]
	if !ok {
		return "", fmt.Errorf("unknown code %q", code)
	}
	return token, nil
}

func (f *fakeShopifyClient) ListOrders(_ context.Context, _ string, accessToken string) ([]shopify.Order, error) {
	f.ordersCalls++
	f.lastAccessToken = accessToken
	if f.ordersErr != nil {
		return nil, f.ordersErr
	}
	return []shopify.Order{}, nil
}

func (f *fakeShopifyClient) ListCustomers(_ context.Context, _ string, accessToken string) ([]shopify.Customer, error) {
	f.customersCalls++
	f.lastAccessToken = accessToken
	if f.customersErr != nil {
		return nil, f.customersErr
	}
	return []shopify.Customer{}, nil
}

func (f *fakeShopifyClient) ListProducts(_ context.Context, _ string, accessToken string) ([]shopify.Product, error) {
	f.productsCalls++
	f.lastAccessToken = accessToken
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	return []shopify.Product{}, nil
}

func (f *fakeShopifyClient) ListInventoryLevels(_ context.Context, _ string, accessToken string) ([]shopify.InventoryLevel, error) {
	f.inventoryCalls++
	f.lastAccessToken = accessToken
	if f.inventoryErr != nil {
		return nil, f.inventoryErr
	}
	return []shopify.InventoryLevel{}, nil
}

func (f *fakeShopifyClient) GetAnalyticsReports(_ context.Context, _ string, accessToken string) (interface{}, error) {
	f.analyticsCalls++
	f.lastAccessToken = accessToken
	if f.analyticsErr != nil {
		return nil, f.analyticsErr
	}
	return []map[string]interface{}{{"name": "sales"}}, nil
}

func (f *fakeShopifyClient) RegisterWebhook(_ context.Context, _ string, _ string, topic string, _ string) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.registeredTopics = append(f.registeredTopics, topic)
	return nil
}

func (f *fakeShopifyClient) upstreamCalls() int {
	return f.ordersCalls + f.customersCalls + f.productsCalls + f.inventoryCalls + f.analyticsCalls
}

// fakeEncryption is a reversible stand-in so tests can see what went into
// storage.
type fakeEncryption struct {
	encryptErr error
	decryptErr error
}

func (f *fakeEncryption) Encrypt(plaintext string) (string, error) {
	if f.encryptErr != nil {
		return "", f.encryptErr
	}
	return "enc:" + plaintext, nil
}

func (f *fakeEncryption) Decrypt(ciphertext string) (string, error) {
	if f.decryptErr != nil {
		return "", f.decryptErr
	}
	if !strings.HasPrefix(ciphertext, "enc:") {
		return "", fmt.Errorf("not an encrypted value: %q", ciphertext)
	}
	return strings.TrimPrefix(ciphertext, "enc:"), nil
}

// fakeWebhookEventRepo records inserted webhook events.
type fakeWebhookEventRepo struct {
	events    []*domain.WebhookEvent
	insertErr error
}

func (f *fakeWebhookEventRepo) Insert(_ context.Context, event *domain.WebhookEvent) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.events = append(f.events, event)
	return nil
}
