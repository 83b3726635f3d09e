package ports

import (
	"context"

	"ecshop/internal/core/domain/model/order"
)

// NotificationRepository persists scheduled order notifications.
type NotificationRepository interface {
	// Add persists a newly scheduled (pending) notification.
	Add(ctx context.Context, notification *order.Notification) error

	// ListPending returns up to limit pending notifications, oldest first.
	ListPending(ctx context.Context, limit int) ([]*order.Notification, error)

	// Update persists a delivery-state change (pending -> sent/failed).
	Update(ctx context.Context, notification *order.Notification) error
}
