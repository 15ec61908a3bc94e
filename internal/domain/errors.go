package domain

import "errors"

// Sentinel errors for request-boundary mapping. Services wrap these with
// context; handlers match them with errors.Is.
var (
	// ErrNotFound means the shop has no store record.
	ErrNotFound = errors.New("store not found")

	// ErrUnauthorized means the presented API key does not resolve to a record.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUpstream means a Shopify Admin API call failed during a data fetch.
	ErrUpstream = errors.New("upstream request failed")

	// ErrAuth means OAuth callback validation or token exchange failed.
	ErrAuth = errors.New("authentication failed")

	// ErrInvalidShop means the shop parameter is not a *.myshopify.com domain.
	ErrInvalidShop = errors.New("invalid shop domain")

	// ErrUnknownCategory means a selection update named a category outside the
	// fixed set.
	ErrUnknownCategory = errors.New("unknown data category")
)
