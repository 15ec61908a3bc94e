package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/AhsanIqbal-web/shopify-data-connector/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGatewayServiceForTest(stores *fakeStoreRepo, client *fakeShopifyClient) *GatewayService {
	return NewGatewayService(stores, client, &fakeEncryption{}, zerolog.Nop())
}

func seedStore(stores *fakeStoreRepo, apiKey string, selections domain.Selections) {
	stores.byShop["test-store.myshopify.com"] = &domain.StoreRecord{
		Shop:           "test-store.myshopify.com",
		AccessToken:    "enc:shpat_token",
		APIKey:         apiKey,
		DataSelections: selections,
	}
}

func TestGatewayService_FetchAuthorizedData_UnknownKey(t *testing.T) {
	stores := newFakeStoreRepo()
	seedStore(stores, "real-key", domain.Selections{Orders: true})
	client := newFakeShopifyClient()
	svc := newGatewayServiceForTest(stores, client)

	payload, err := svc.FetchAuthorizedData(context.Background(), "guessed-key")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Nil(t, payload)
	assert.Zero(t, client.upstreamCalls(), "an unknown key must not reach Shopify")
}

func TestGatewayService_FetchAuthorizedData_NothingSelected(t *testing.T) {
	stores := newFakeStoreRepo()
	seedStore(stores, "key-1", domain.Selections{})
	client := newFakeShopifyClient()
	svc := newGatewayServiceForTest(stores, client)

	payload, err := svc.FetchAuthorizedData(context.Background(), "key-1")
	require.NoError(t, err)
	assert.Empty(t, payload)
	assert.NotNil(t, payload, "an empty selection yields an empty object, not null")
	assert.Zero(t, client.upstreamCalls())
}

func TestGatewayService_FetchAuthorizedData_SingleCategory(t *testing.T) {
	stores := newFakeStoreRepo()
	seedStore(stores, "key-1", domain.Selections{Orders: true})
	client := newFakeShopifyClient()
	svc := newGatewayServiceForTest(stores, client)

	payload, err := svc.FetchAuthorizedData(context.Background(), "key-1")
	require.NoError(t, err)

	assert.Len(t, payload, 1)
	assert.Contains(t, payload, domain.CategoryOrders)
	assert.NotContains(t, payload, domain.CategoryCustomers, "unselected categories are absent, not empty")
	assert.Equal(t, 1, client.ordersCalls)
	assert.Zero(t, client.customersCalls)
}

func TestGatewayService_FetchAuthorizedData_CompleteStore(t *testing.T) {
	stores := newFakeStoreRepo()
	seedStore(stores, "key-1", domain.Selections{CompleteStore: true})
	client := newFakeShopifyClient()
	svc := newGatewayServiceForTest(stores, client)

	payload, err := svc.FetchAuthorizedData(context.Background(), "key-1")
	require.NoError(t, err)

	assert.Len(t, payload, len(domain.Categories()))
	for _, c := range domain.Categories() {
		assert.Contains(t, payload, c)
	}
	assert.Equal(t, 1, client.ordersCalls)
	assert.Equal(t, 1, client.customersCalls)
	assert.Equal(t, 1, client.productsCalls)
	assert.Equal(t, 1, client.inventoryCalls)
	assert.Equal(t, 1, client.analyticsCalls)
}

func TestGatewayService_FetchAuthorizedData_UsesDecryptedToken(t *testing.T) {
	stores := newFakeStoreRepo()
	seedStore(stores, "key-1", domain.Selections{Products: true})
	client := newFakeShopifyClient()
	svc := newGatewayServiceForTest(stores, client)

	_, err := svc.FetchAuthorizedData(context.Background(), "key-1")
	require.NoError(t, err)
	assert.Equal(t, "shpat_token", client.lastAccessToken, "the stored ciphertext must be decrypted before calling Shopify")
}

func TestGatewayService_FetchAuthorizedData_UpstreamFailureAbortsWholeRequest(t *testing.T) {
	stores := newFakeStoreRepo()
	seedStore(stores, "key-1", domain.Selections{Orders: true, Customers: true, Products: true})
	client := newFakeShopifyClient()
	client.customersErr = fmt.Errorf("429 too many requests")
	svc := newGatewayServiceForTest(stores, client)

	payload, err := svc.FetchAuthorizedData(context.Background(), "key-1")
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Nil(t, payload, "no partial payload on upstream failure")
	assert.Equal(t, 1, client.ordersCalls)
	assert.Zero(t, client.productsCalls, "fetching stops at the first failure")
}

func TestGatewayService_FetchAuthorizedData_DecryptFailure(t *testing.T) {
	stores := newFakeStoreRepo()
	seedStore(stores, "key-1", domain.Selections{Orders: true})
	client := newFakeShopifyClient()
	svc := NewGatewayService(stores, client, &fakeEncryption{decryptErr: fmt.Errorf("key rotated")}, zerolog.Nop())

	_, err := svc.FetchAuthorizedData(context.Background(), "key-1")
	require.Error(t, err)
	assert.Zero(t, client.upstreamCalls())
}
