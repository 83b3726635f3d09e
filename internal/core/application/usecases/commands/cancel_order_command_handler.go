package commands

import (
	"context"
	"time"

	"ecshop/internal/core/domain/model/kernel"
	"ecshop/internal/core/domain/model/order"
	"ecshop/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels an order on the customer's behalf:
// ownership is verified, the order transitions to cancelled, stock is
// restored, a history row with the reason is appended and a status
// notification is scheduled, all in one transaction.
type CancelOrderCommandHandler struct {
	uowFactory LifecycleUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for cancellations.
func NewCancelOrderCommandHandler(uowFactory LifecycleUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation and returns the cancelled order.
//
// Orders owned by someone else are reported as not found rather than
// forbidden, so the endpoint does not reveal which order ids exist.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if !cmd.IsAdmin() {
		requester, err := kernel.NewUserPrincipal(cmd.UserID())
		if err != nil {
			return nil, err
		}
		if !aggregate.IsOwnedBy(requester) {
			return nil, errs.NewNotFoundError(errs.CodeOrderNotFound, "order", cmd.OrderID())
		}
	}

	now := time.Now()
	previous := aggregate.Status()
	if err = aggregate.Cancel(now); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = restoreStock(ctx, uow, aggregate); err != nil {
		return nil, err
	}

	change, err := order.NewStatusChange(aggregate.ID(), previous, aggregate.Status(), cmd.Reason(), h.actor(cmd), now)
	if err != nil {
		return nil, err
	}
	if err = uow.OrderRepository().AddStatusChange(ctx, change); err != nil {
		return nil, err
	}

	if err = scheduleNotification(ctx, uow, aggregate, order.NotificationStatusUpdate, now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

func (h *CancelOrderCommandHandler) actor(cmd CancelOrderCommand) kernel.Actor {
	if cmd.IsAdmin() {
		if actor, err := kernel.NewAdminActor(cmd.UserID()); err == nil {
			return actor
		}
	}
	if actor, err := kernel.NewUserActor(cmd.UserID()); err == nil {
		return actor
	}
	return kernel.SystemActor()
}
