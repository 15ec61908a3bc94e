package domain

import "time"

// Session represents a pending OAuth authorization. The state value is the
// CSRF token carried through the Shopify redirect.
type Session struct {
	State     string    `json:"state"`
	Shop      string    `json:"shop"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
