package application

import (
	"context"
	"fmt"

	"github.com/AhsanIqbal-web/shopify-data-connector/internal/domain"
	"github.com/AhsanIqbal-web/shopify-data-connector/internal/ports"

	"github.com/rs/zerolog"
)

// SelectionService handles data category selections and API key lookups
type SelectionService struct {
	stores ports.StoreRepository
	logger zerolog.Logger
	appURL string
}

// NewSelectionService creates a new selection service
func NewSelectionService(
	stores ports.StoreRepository,
	logger zerolog.Logger,
	appURL string,
) *SelectionService {
	return &SelectionService{
		stores: stores,
		logger: logger,
		appURL: appURL,
	}
}

// KeyInfo is what the dashboard needs to hand to a BI tool: the stable API
// key, the ready-made data URL and the flags currently in force.
type KeyInfo struct {
	APIKey         string            `json:"apiKey"`
	APIURL         string            `json:"apiUrl"`
	DataSelections domain.Selections `json:"dataSelections"`
}

// UpdateSelections replaces the stored category flags for a shop with the
// given set. The API key is untouched; only the flags change.
func (s *SelectionService) UpdateSelections(ctx context.Context, shop string, selections domain.Selections) (*KeyInfo, error) {
	record, err := s.stores.FindByShop(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("failed to get store record: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("no store record for shop %s: %w", shop, domain.ErrNotFound)
	}

	record.DataSelections = selections
	if err := s.stores.Save(ctx, record); err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("Failed to save data selections")
		return nil, fmt.Errorf("failed to save data selections: %w", err)
	}

	s.logger.Info().
		Str("shop", shop).
		Interface("dataSelections", selections).
		Msg("Updated data selections")

	return s.keyInfo(record), nil
}

// KeyInfo returns the current key, data URL and selections for a shop.
func (s *SelectionService) KeyInfo(ctx context.Context, shop string) (*KeyInfo, error) {
	record, err := s.stores.FindByShop(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("failed to get store record: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("no store record for shop %s: %w", shop, domain.ErrNotFound)
	}
	return s.keyInfo(record), nil
}

func (s *SelectionService) keyInfo(record *domain.StoreRecord) *KeyInfo {
	return &KeyInfo{
		APIKey:         record.APIKey,
		APIURL:         fmt.Sprintf("%s/api/data/%s", s.appURL, record.APIKey),
		DataSelections: record.DataSelections,
	}
}
