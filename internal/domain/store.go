package domain

import (
	"fmt"
	"time"
)

// StoreRecord represents a connected Shopify store and what it has agreed to expose.
// One record exists per shop domain; the API key is the external handle a BI tool
// uses to read the authorized data categories.
type StoreRecord struct {
	ID             string     `json:"id" bson:"_id"`
	Shop           string     `json:"shop" bson:"shop"`               // *.myshopify.com domain, immutable identity
	AccessToken    string     `json:"-" bson:"access_token"`          // Admin API token, encrypted at rest
	DataSelections Selections `json:"dataSelections" bson:"data_selections"`
	APIKey         string     `json:"apiKey" bson:"api_key"`          // Opaque key, generated once at first install
	CreatedAt      time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" bson:"updated_at"`
}

// Authenticated reports whether the record holds a usable access token.
func (r *StoreRecord) Authenticated() bool {
	return r != nil && r.AccessToken != ""
}

// Selections holds the per-category sharing flags for a store. All six flags are
// always present; the zero value shares nothing.
type Selections struct {
	Orders        bool `json:"orders" bson:"orders"`
	Customers     bool `json:"customers" bson:"customers"`
	Products      bool `json:"products" bson:"products"`
	Inventory     bool `json:"inventory" bson:"inventory"`
	Analytics     bool `json:"analytics" bson:"analytics"`
	CompleteStore bool `json:"completeStore" bson:"completeStore"` // Grants every category regardless of the individual flags
}

// Authorized reports whether the given category may be fetched.
func (s Selections) Authorized(c Category) bool {
	if s.CompleteStore {
		return true
	}
	switch c {
	case CategoryOrders:
		return s.Orders
	case CategoryCustomers:
		return s.Customers
	case CategoryProducts:
		return s.Products
	case CategoryInventory:
		return s.Inventory
	case CategoryAnalytics:
		return s.Analytics
	}
	return false
}

// AuthorizedCategories returns the fetchable categories granted by the current
// flags, in the fixed category order.
func (s Selections) AuthorizedCategories() []Category {
	var authorized []Category
	for _, c := range Categories() {
		if s.Authorized(c) {
			authorized = append(authorized, c)
		}
	}
	return authorized
}

// ParseSelections builds Selections from a raw flag map. The map replaces the
// stored flags as given: categories absent from the map come out false. A key
// outside the fixed category set is rejected rather than ignored.
func ParseSelections(raw map[string]bool) (Selections, error) {
	var s Selections
	for key, value := range raw {
		switch key {
		case string(CategoryOrders):
			s.Orders = value
		case string(CategoryCustomers):
			s.Customers = value
		case string(CategoryProducts):
			s.Products = value
		case string(CategoryInventory):
			s.Inventory = value
		case string(CategoryAnalytics):
			s.Analytics = value
		case SelectionCompleteStore:
			s.CompleteStore = value
		default:
			return Selections{}, fmt.Errorf("%w: %q", ErrUnknownCategory, key)
		}
	}
	return s, nil
}
