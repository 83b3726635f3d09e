package commands

import (
	"context"
	"errors"
	"time"

	"ecshop/internal/core/domain/model/order"
	"ecshop/internal/pkg/errs"
)

// notificationScheduler is the unit-of-work slice needed to schedule an
// order notification. Both CheckoutUoW and LifecycleUoW satisfy it.
type notificationScheduler interface {
	NotificationRepoFactory
	UserRepoFactory
}

// notificationKindFor picks the message template for a status transition.
func notificationKindFor(status order.Status) order.NotificationType {
	switch status {
	case order.StatusShipped:
		return order.NotificationShipping
	case order.StatusDelivered:
		return order.NotificationDelivery
	default:
		return order.NotificationStatusUpdate
	}
}

// scheduleNotification queues an email notification for the order's owner.
// Guest orders and orders whose owner has no resolvable email are skipped
// silently: notification delivery is best-effort and never blocks the
// transaction that schedules it.
func scheduleNotification(
	ctx context.Context,
	uow notificationScheduler,
	aggregate *order.Order,
	kind order.NotificationType,
	now time.Time,
) error {
	userID, ok := aggregate.Owner().UserID()
	if !ok {
		return nil
	}

	recipient, err := uow.UserRepository().Get(ctx, userID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if recipient.Email == "" {
		return nil
	}

	notification, err := order.NewEmailNotification(
		aggregate.ID(),
		kind,
		recipient.Email,
		aggregate.OrderNumber(),
		recipient.FullName(),
		now,
	)
	if err != nil {
		return err
	}

	return uow.NotificationRepository().Add(ctx, notification)
}
