package queries

import (
	"errors"
	"time"

	"ecshop/internal/core/domain/model/kernel"
	"ecshop/internal/pkg/errs"
	"ecshop/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery retrieves an order's status history, oldest first.
// Only the order's owner and admins may read it.
type GetOrderHistoryQuery struct {
	principal kernel.Principal
	orderID   int64
	isAdmin   bool

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a history query.
func NewGetOrderHistoryQuery(principal kernel.Principal, orderID int64, isAdmin bool) (GetOrderHistoryQuery, error) {
	if err := principal.Validate(); err != nil {
		return GetOrderHistoryQuery{}, errs.NewValidationErrorWithCause(
			errs.CodeUserOrSessionRequired,
			"a user or guest session is required",
			err,
		)
	}
	if orderID <= 0 {
		return GetOrderHistoryQuery{}, errs.NewValidationError(errs.CodeInvalidOrderID, "order id must be a positive integer")
	}

	return GetOrderHistoryQuery{
		principal: principal,
		orderID:   orderID,
		isAdmin:   isAdmin,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderHistoryQueryIsNotConstructed if validation fails.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// Principal returns the requesting principal.
func (q GetOrderHistoryQuery) Principal() kernel.Principal {
	return q.principal
}

// OrderID returns the target order's storage identity.
func (q GetOrderHistoryQuery) OrderID() int64 {
	return q.orderID
}

// IsAdmin reports whether the requester may read any order's history.
func (q GetOrderHistoryQuery) IsAdmin() bool {
	return q.isAdmin
}

// HistoryEntry is one status transition. PreviousStatus is nil for the
// creation entry. ChangedBy resolves to the acting user's or admin's name,
// or "System" for automated transitions.
type HistoryEntry struct {
	ID             int64
	PreviousStatus *string
	NewStatus      string
	Comment        string
	ChangedBy      string
	CreatedAt      time.Time
}
