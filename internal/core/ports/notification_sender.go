package ports

import (
	"context"

	"ecshop/internal/core/domain/model/order"
)

// NotificationSender hands a rendered notification to a delivery transport.
// The transport (SMTP gateway, SMS provider) is external to this core; the
// dispatch job records the outcome on the notification row.
type NotificationSender interface {
	Send(ctx context.Context, notification *order.Notification) error
}
