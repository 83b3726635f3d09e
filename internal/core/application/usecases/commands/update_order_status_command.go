package commands

import (
	"errors"

	"ecshop/internal/core/domain/model/kernel"
	"ecshop/internal/core/domain/model/order"
	"ecshop/internal/pkg/errs"
	"ecshop/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents an administrative status transition
// request for an order.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   int64
	newStatus order.Status
	comment   string
	admin     kernel.Actor

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a status transition command.
// Validates the order id, the target status and the acting admin id; the
// comment is optional.
func NewUpdateOrderStatusCommand(orderID int64, newStatus, comment string, adminID int64) (UpdateOrderStatusCommand, error) {
	statusCommand := UpdateOrderStatusCommand{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setOrderID(orderID),
		statusCommand.setNewStatus(newStatus),
		statusCommand.setAdmin(adminID),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOrderStatusCommandIsNotConstructed if validation fails.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the storage identity of the target order.
func (c UpdateOrderStatusCommand) OrderID() int64 {
	return c.orderID
}

// NewStatus returns the validated target status.
func (c UpdateOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

// Comment returns the optional history comment.
func (c UpdateOrderStatusCommand) Comment() string {
	return c.comment
}

// Admin returns the acting administrator.
func (c UpdateOrderStatusCommand) Admin() kernel.Actor {
	return c.admin
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValidationError(errs.CodeInvalidOrderID, "order id must be a positive integer")
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setNewStatus(newStatus string) error {
	status, err := order.StatusFromString(newStatus)
	if err != nil {
		return err
	}

	c.newStatus = status
	return nil
}

func (c *UpdateOrderStatusCommand) setAdmin(adminID int64) error {
	admin, err := kernel.NewAdminActor(adminID)
	if err != nil {
		return err
	}

	c.admin = admin
	return nil
}
