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

func TestSelectionService_UpdateSelections_ReplacesWholeSet(t *testing.T) {
	stores := newFakeStoreRepo()
	stores.byShop["test-store.myshopify.com"] = &domain.StoreRecord{
		Shop:           "test-store.myshopify.com",
		AccessToken:    "enc:token",
		APIKey:         "key-1",
		DataSelections: domain.Selections{Orders: true, Analytics: true},
	}
	svc := NewSelectionService(stores, zerolog.Nop(), "https://connector.example.com")

	info, err := svc.UpdateSelections(context.Background(), "test-store.myshopify.com", domain.Selections{Customers: true})
	require.NoError(t, err)

	assert.Equal(t, domain.Selections{Customers: true}, info.DataSelections)
	saved := stores.byShop["test-store.myshopify.com"]
	assert.Equal(t, domain.Selections{Customers: true}, saved.DataSelections, "previous flags are replaced, not merged")
	assert.False(t, saved.DataSelections.Orders)
}

func TestSelectionService_UpdateSelections_KeyIsStable(t *testing.T) {
	stores := newFakeStoreRepo()
	stores.byShop["test-store.myshopify.com"] = &domain.StoreRecord{
		Shop:        "test-store.myshopify.com",
		AccessToken: "enc:token",
		APIKey:      "key-1",
	}
	svc := NewSelectionService(stores, zerolog.Nop(), "https://connector.example.com")
	ctx := context.Background()

	first, err := svc.UpdateSelections(ctx, "test-store.myshopify.com", domain.Selections{Orders: true})
	require.NoError(t, err)
	second, err := svc.UpdateSelections(ctx, "test-store.myshopify.com", domain.Selections{CompleteStore: true})
	require.NoError(t, err)

	assert.Equal(t, "key-1", first.APIKey)
	assert.Equal(t, first.APIKey, second.APIKey, "toggling selections must never rotate the key")
	assert.Equal(t, first.APIURL, second.APIURL)
}

func TestSelectionService_UpdateSelections_UnknownShop(t *testing.T) {
	svc := NewSelectionService(newFakeStoreRepo(), zerolog.Nop(), "https://connector.example.com")

	_, err := svc.UpdateSelections(context.Background(), "unknown.myshopify.com", domain.Selections{Orders: true})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSelectionService_UpdateSelections_SaveFailure(t *testing.T) {
	stores := newFakeStoreRepo()
	stores.byShop["test-store.myshopify.com"] = &domain.StoreRecord{
		Shop:        "test-store.myshopify.com",
		AccessToken: "enc:token",
		APIKey:      "key-1",
	}
	stores.saveErr = fmt.Errorf("connection reset")
	svc := NewSelectionService(stores, zerolog.Nop(), "https://connector.example.com")

	_, err := svc.UpdateSelections(context.Background(), "test-store.myshopify.com", domain.Selections{Orders: true})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestSelectionService_KeyInfo(t *testing.T) {
	stores := newFakeStoreRepo()
	stores.byShop["test-store.myshopify.com"] = &domain.StoreRecord{
		Shop:           "test-store.myshopify.com",
		AccessToken:    "enc:token",
		APIKey:         "0123abcd",
		DataSelections: domain.Selections{Inventory: true},
	}
	svc := NewSelectionService(stores, zerolog.Nop(), "https://connector.example.com")

	info, err := svc.KeyInfo(context.Background(), "test-store.myshopify.com")
	require.NoError(t, err)

	assert.Equal(t, "0123abcd", info.APIKey)
	assert.Equal(t, "https://connector.example.com/api/data/0123abcd", info.APIURL)
	assert.Equal(t, domain.Selections{Inventory: true}, info.DataSelections)
}

func TestSelectionService_KeyInfo_UnknownShop(t *testing.T) {
	svc := NewSelectionService(newFakeStoreRepo(), zerolog.Nop(), "https://connector.example.com")

	_, err := svc.KeyInfo(context.Background(), "unknown.myshopify.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
