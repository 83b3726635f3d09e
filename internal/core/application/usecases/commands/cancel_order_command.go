package commands

import (
	"errors"

	"ecshop/internal/core/domain/model/kernel"
	"ecshop/internal/pkg/errs"
	"ecshop/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// defaultCancelReason is recorded in history when the customer gives none.
const defaultCancelReason = "User requested cancellation"

// CancelOrderCommand represents a customer's (or admin's) request to
// cancel an order.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	reason  string
	userID  int64
	isAdmin bool

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a cancellation command. The reason defaults
// when empty. isAdmin lets administrators cancel orders they do not own.
func NewCancelOrderCommand(orderID int64, reason string, userID int64, isAdmin bool) (CancelOrderCommand, error) {
	cancelCommand := CancelOrderCommand{
		reason:  reason,
		isAdmin: isAdmin,
		guard:   guard.NewConstructorGuard(),
	}

	if cancelCommand.reason == "" {
		cancelCommand.reason = defaultCancelReason
	}

	if err := errors.Join(
		cancelCommand.setOrderID(orderID),
		cancelCommand.setUserID(userID),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cancelCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelOrderCommandIsNotConstructed if validation fails.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the storage identity of the target order.
func (c CancelOrderCommand) OrderID() int64 {
	return c.orderID
}

// Reason returns the cancellation reason recorded in history.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}

// UserID returns the requesting user's id.
func (c CancelOrderCommand) UserID() int64 {
	return c.userID
}

// IsAdmin reports whether the requester may bypass the ownership check.
func (c CancelOrderCommand) IsAdmin() bool {
	return c.isAdmin
}

func (c *CancelOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValidationError(errs.CodeInvalidOrderID, "order id must be a positive integer")
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setUserID(userID int64) error {
	if _, err := kernel.NewUserActor(userID); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
