package commands

import (
	"context"

	"ecshop/internal/core/ports"
)

// DispatchNotificationsCommandHandler delivers pending notifications through
// the configured sender and records the outcome on each row. A transport
// failure marks that notification failed and moves on; one bad recipient
// never blocks the batch.
type DispatchNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	sender     ports.NotificationSender
}

// NewDispatchNotificationsCommandHandler creates a handler for notification dispatch.
func NewDispatchNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	sender ports.NotificationSender,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		sender:     sender,
	}
}

// Handle dispatches one batch and returns the number of notifications sent.
func (h *DispatchNotificationsCommandHandler) Handle(ctx context.Context, cmd DispatchNotificationsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.NotificationRepository().ListPending(ctx, cmd.Limit())
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, notification := range pending {
		if sendErr := h.sender.Send(ctx, notification); sendErr != nil {
			if err = notification.MarkFailed(); err != nil {
				return sent, err
			}
		} else {
			if err = notification.MarkSent(); err != nil {
				return sent, err
			}
			sent++
		}

		if err = uow.NotificationRepository().Update(ctx, notification); err != nil {
			return sent, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return sent, nil
}
