package domain

// Category identifies a fetchable data category. Each value maps to one
// Shopify Admin REST resource.
type Category string

const (
	CategoryOrders    Category = "orders"
	CategoryCustomers Category = "customers"
	CategoryProducts  Category = "products"
	CategoryInventory Category = "inventory"
	CategoryAnalytics Category = "analytics"
)

// SelectionCompleteStore is the selection flag that grants every category.
// It is not itself fetchable.
const SelectionCompleteStore = "completeStore"

// Categories returns the fetchable categories in their fixed payload order.
func Categories() []Category {
	return []Category{
		CategoryOrders,
		CategoryCustomers,
		CategoryProducts,
		CategoryInventory,
		CategoryAnalytics,
	}
}

// DataPayload is the assembled gateway response, keyed by category name.
// Unauthorized categories are absent, not null.
type DataPayload map[Category]interface{}
