package commands

import (
	"errors"

	"ecshop/internal/pkg/guard"
)

var (
	ErrDispatchNotificationsCommandIsNotConstructed = errors.New(
		"DispatchNotificationsCommand must be created via NewDispatchNotificationsCommand constructor",
	)
	ErrDispatchLimitIsInvalid = errors.New("dispatch limit must be greater than 0")
)

// DispatchNotificationsCommand asks the dispatch worker to deliver up to
// limit pending notifications, oldest first.
type DispatchNotificationsCommand struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewDispatchNotificationsCommand creates a dispatch command for one batch.
func NewDispatchNotificationsCommand(limit int) (DispatchNotificationsCommand, error) {
	if limit <= 0 {
		return DispatchNotificationsCommand{}, ErrDispatchLimitIsInvalid
	}

	return DispatchNotificationsCommand{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDispatchNotificationsCommandIsNotConstructed if validation fails.
func (c DispatchNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationsCommandIsNotConstructed)
}

// Limit returns the batch size.
func (c DispatchNotificationsCommand) Limit() int {
	return c.limit
}
