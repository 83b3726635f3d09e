// Package cart holds the read model the checkout pipeline consumes from the
// cart collaborator. The cart itself (add/remove/update) is owned elsewhere;
// this core only reads a principal's lines joined to live product data and
// clears them once an order is placed.
package cart

// Line is one cart row joined with its live product at read time.
// UnitPrice and LiveStock reflect the catalog at the moment of checkout;
// the pipeline snapshots them into the order.
type Line struct {
	ProductID       int64
	ProductName     string
	ProductSKU      string
	ProductImageURL string
	UnitPrice       float64
	Quantity        int
	LiveStock       int
	IsActive        bool
}
