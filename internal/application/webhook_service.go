package application

import (
	"context"
	"fmt"
	"time"

	"github.com/AhsanIqbal-web/shopify-data-connector/internal/domain"
	"github.com/AhsanIqbal-web/shopify-data-connector/internal/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WebhookHandler processes webhook events for the topics it declares.
type WebhookHandler interface {
	// CanHandle returns true if this handler can process the given topic
	CanHandle(topic string) bool

	// Handle processes a webhook event
	Handle(ctx context.Context, event *domain.WebhookEvent) error
}

// WebhookService logs every received webhook delivery and dispatches it to
// the registered topic handlers
type WebhookService struct {
	events   ports.WebhookEventRepository
	handlers []WebhookHandler
	logger   zerolog.Logger
}

// NewWebhookService creates a new webhook service
func NewWebhookService(events ports.WebhookEventRepository, logger zerolog.Logger) *WebhookService {
	return &WebhookService{
		events: events,
		logger: logger,
	}
}

// RegisterHandler adds a topic handler to the dispatch chain
func (s *WebhookService) RegisterHandler(handler WebhookHandler) {
	s.handlers = append(s.handlers, handler)
}

// Process logs the event and runs every handler that accepts its topic.
// A handler error is returned so the caller can answer non-2xx and let
// Shopify retry the delivery.
func (s *WebhookService) Process(ctx context.Context, event *domain.WebhookEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	if err := s.events.Insert(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("topic", event.Topic).Str("shop", event.Shop).Msg("Failed to log webhook event")
		// Continue processing even if logging fails
	}

	handled := 0
	for _, handler := range s.handlers {
		if !handler.CanHandle(event.Topic) {
			continue
		}
		if err := handler.Handle(ctx, event); err != nil {
			s.logger.Error().Err(err).Str("topic", event.Topic).Str("shop", event.Shop).Msg("Webhook handler failed")
			return fmt.Errorf("failed to handle %s webhook: %w", event.Topic, err)
		}
		handled++
	}

	s.logger.Info().
		Str("topic", event.Topic).
		Str("shop", event.Shop).
		Int("handlers", handled).
		Msg("Webhook processed")

	return nil
}
