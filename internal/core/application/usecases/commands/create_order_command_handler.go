package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecshop/internal/core/domain/model/kernel"
	"ecshop/internal/core/domain/model/order"
	"ecshop/internal/core/domain/services"
	"ecshop/internal/pkg/errs"
)

// orderNumberAttempts bounds the regenerate-and-retry loop on order number
// collisions. Numbers carry a 4-digit random suffix per day, so even a busy
// day exhausts five attempts with negligible probability.
const orderNumberAttempts = 5

// CreateOrderCommandHandler runs the checkout pipeline: read the cart,
// verify stock, price the order, persist it with a unique order number,
// reserve stock, clear the cart, record history and schedule a confirmation
// notification. The whole pipeline runs in one transaction.
type CreateOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	pricing    services.PricingEngine
}

// NewCreateOrderCommandHandler creates a handler for checkout operations.
func NewCreateOrderCommandHandler(uowFactory CheckoutUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    services.NewPricingEngine(),
	}
}

// Handle processes the checkout command and returns the created order.
//
// Stock is checked twice: once against the cart read (to name the offending
// product in the error) and again inside the guarded decrement that is the
// actual concurrency control. Any failure rolls the whole pipeline back.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	lines, err := uow.CartRepository().GetLines(ctx, cmd.Principal())
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errs.NewValidationError(errs.CodeEmptyCart, "cart is empty")
	}

	items := make([]*order.Item, 0, len(lines))
	priceLines := make([]services.PriceLine, 0, len(lines))
	for _, line := range lines {
		if line.LiveStock < line.Quantity {
			return nil, errs.NewConflictError(
				errs.CodeInsufficientStock,
				fmt.Sprintf("insufficient stock for product: %s (available: %d, requested: %d)",
					line.ProductName, line.LiveStock, line.Quantity),
			)
		}

		item, err := order.NewItem(
			line.ProductID,
			line.ProductName,
			line.ProductSKU,
			line.ProductImageURL,
			line.UnitPrice,
			line.Quantity,
		)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
		priceLines = append(priceLines, services.PriceLine{UnitPrice: line.UnitPrice, Quantity: line.Quantity})
	}

	totals, err := h.pricing.ComputeTotals(priceLines, cmd.ShippingMethod(), cmd.CouponCode())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	aggregate, err := h.persistWithFreshNumber(ctx, uow, cmd, totals, items, now)
	if err != nil {
		return nil, err
	}

	for _, item := range aggregate.Items() {
		reason := fmt.Sprintf("Order %s - stock reserved", aggregate.OrderNumber())
		if err = uow.InventoryRepository().Decrement(ctx, item.ProductID(), item.Quantity(), reason, aggregate.ID()); err != nil {
			return nil, err
		}
	}

	if err = uow.CartRepository().Clear(ctx, cmd.Principal()); err != nil {
		return nil, err
	}

	change, err := order.NewInitialStatusChange(aggregate.ID(), actorFor(cmd.Principal()), now)
	if err != nil {
		return nil, err
	}
	if err = uow.OrderRepository().AddStatusChange(ctx, change); err != nil {
		return nil, err
	}

	if err = scheduleNotification(ctx, uow, aggregate, order.NotificationConfirmation, now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// persistWithFreshNumber inserts the order, regenerating the order number
// and retrying when the unique constraint on it is hit.
func (h *CreateOrderCommandHandler) persistWithFreshNumber(
	ctx context.Context,
	uow CheckoutUoW,
	cmd CreateOrderCommand,
	totals order.Totals,
	items []*order.Item,
	now time.Time,
) (*order.Order, error) {
	var lastErr error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		aggregate, err := order.NewOrder(
			cmd.Principal(),
			kernel.GenerateOrderNumber(now),
			cmd.ShippingMethod(),
			cmd.ShippingAddress(),
			cmd.BillingAddress(),
			cmd.PaymentMethod(),
			cmd.CouponCode(),
			cmd.Notes(),
			totals,
			items,
			now,
		)
		if err != nil {
			return nil, err
		}

		lastErr = uow.OrderRepository().Add(ctx, aggregate)
		if lastErr == nil {
			return aggregate, nil
		}
		if !errors.Is(lastErr, errs.ErrOrderNumberTaken) {
			return nil, lastErr
		}
	}

	return nil, errs.NewPersistenceError("orders.create.number", lastErr)
}

// actorFor maps a principal to the history actor: registered users act as
// themselves, guests are recorded as system actions.
func actorFor(principal kernel.Principal) kernel.Actor {
	if userID, ok := principal.UserID(); ok {
		actor, err := kernel.NewUserActor(userID)
		if err == nil {
			return actor
		}
	}
	return kernel.SystemActor()
}
