package ports

import "context"

// InventoryRepository is the stock ledger: a guarded decrement, an
// unconditional restore, and one appended movement row per call.
//
// Both operations run in the caller's transaction; the ledger never commits
// on its own. The decrement is the concurrency-control mechanism for stock:
// it is a single conditional UPDATE (stock = stock - qty WHERE stock >= qty),
// so two checkouts racing for the last unit cannot both succeed.
type InventoryRepository interface {
	// Decrement atomically reserves quantity units of the product.
	// Returns a conflict error with code INSUFFICIENT_STOCK, without any
	// state change, when live stock is below the requested quantity.
	Decrement(ctx context.Context, productID int64, quantity int, reason string, orderID int64) error

	// Restore returns quantity units to the product's stock. Restoring
	// cannot violate non-negativity, so no guard is needed.
	Restore(ctx context.Context, productID int64, quantity int, reason string, orderID int64) error
}
