package ports

import (
	"context"

	"github.com/AhsanIqbal-web/shopify-data-connector/internal/domain"
)

// SessionStore defines the interface for OAuth session persistence.
// Entries expire on their own after the session lifetime.
type SessionStore interface {
	// Create persists a session keyed by its state value
	Create(ctx context.Context, session *domain.Session) error

	// Get retrieves a session by state, nil when absent or expired
	Get(ctx context.Context, state string) (*domain.Session, error)

	// Delete removes a session by state
	Delete(ctx context.Context, state string) error
}
