package commands

import (
	"context"
	"fmt"
	"time"

	"ecshop/internal/core/domain/model/order"
)

// UpdateOrderStatusCommandHandler applies an administrative status
// transition: the order is updated, a history row is appended, stock is
// restored when the transition cancels the order, and a status notification
// is scheduled, all in one transaction.
type UpdateOrderStatusCommandHandler struct {
	uowFactory LifecycleUoWFactory
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transitions.
func NewUpdateOrderStatusCommandHandler(uowFactory LifecycleUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transition and returns the updated order.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
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

	now := time.Now()
	previous := aggregate.Status()
	if err = aggregate.TransitionTo(cmd.NewStatus(), now); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if aggregate.Status() == order.StatusCancelled {
		if err = restoreStock(ctx, uow, aggregate); err != nil {
			return nil, err
		}
	}

	change, err := order.NewStatusChange(aggregate.ID(), previous, aggregate.Status(), cmd.Comment(), cmd.Admin(), now)
	if err != nil {
		return nil, err
	}
	if err = uow.OrderRepository().AddStatusChange(ctx, change); err != nil {
		return nil, err
	}

	if err = scheduleNotification(ctx, uow, aggregate, notificationKindFor(aggregate.Status()), now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// restoreStock returns every item's quantity to the catalog after a
// cancellation, recording one ledger movement per item.
func restoreStock(ctx context.Context, uow LifecycleUoW, aggregate *order.Order) error {
	for _, item := range aggregate.Items() {
		reason := fmt.Sprintf("Order %s cancelled - stock restored", aggregate.OrderNumber())
		if err := uow.InventoryRepository().Restore(ctx, item.ProductID(), item.Quantity(), reason, aggregate.ID()); err != nil {
			return err
		}
	}
	return nil
}
