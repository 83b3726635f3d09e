package ports

import (
	"context"

	"ecshop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their append-only status history.
type OrderRepository interface {
	// Add persists a new order with its items and backfills storage
	// identities on the aggregate. Returns errs.ErrOrderNumberTaken when the
	// order number collides with an existing one; callers regenerate the
	// number and retry.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, payment and timestamp changes to an existing
	// order. Items are immutable and never written here.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items by storage identity.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// AddStatusChange appends one history row. History is never updated or
	// deleted.
	AddStatusChange(ctx context.Context, change *order.StatusChange) error
}
