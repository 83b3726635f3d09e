package order

import (
	"errors"
	"time"

	"ecshop/internal/core/domain/model/kernel"
)

var (
	// ErrStatusChangeIsNotConstructed is returned when a StatusChange was
	// not created through a constructor.
	ErrStatusChangeIsNotConstructed = errors.New(
		"StatusChange must be created via NewStatusChange or RestoreStatusChange",
	)

	// ErrStatusChangeOrderIDIsInvalid is returned for non-positive order ids.
	ErrStatusChangeOrderIDIsInvalid = errors.New("status change order id must be greater than 0")
)

// initialStatusChangeComment is recorded on the creation entry.
const initialStatusChangeComment = "Order created"

// StatusChange is one append-only audit row in the order status history.
// Rows are written for every transition, including the initial pending
// entry (whose previous status is nil), and are never updated or deleted.
type StatusChange struct {
	id             int64
	orderID        int64
	previousStatus *Status
	newStatus      Status
	comment        string
	actor          kernel.Actor
	createdAt      time.Time

	isConstructed bool
}

// NewInitialStatusChange records the creation entry: no previous status,
// new status pending.
func NewInitialStatusChange(orderID int64, actor kernel.Actor, now time.Time) (*StatusChange, error) {
	return newStatusChange(orderID, nil, StatusPending, initialStatusChangeComment, actor, now)
}

// NewStatusChange records a transition from previous to new status.
func NewStatusChange(
	orderID int64,
	previous, next Status,
	comment string,
	actor kernel.Actor,
	now time.Time,
) (*StatusChange, error) {
	if err := previous.Validate(); err != nil {
		return nil, err
	}
	return newStatusChange(orderID, &previous, next, comment, actor, now)
}

func newStatusChange(
	orderID int64,
	previous *Status,
	next Status,
	comment string,
	actor kernel.Actor,
	now time.Time,
) (*StatusChange, error) {
	if orderID <= 0 {
		return nil, ErrStatusChangeOrderIDIsInvalid
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}

	return &StatusChange{
		orderID:        orderID,
		previousStatus: previous,
		newStatus:      next,
		comment:        comment,
		actor:          actor,
		createdAt:      now,
		isConstructed:  true,
	}, nil
}

// RestoreStatusChange reconstructs a history row from persistence.
func RestoreStatusChange(
	id, orderID int64,
	previous *Status,
	next Status,
	comment string,
	actor kernel.Actor,
	createdAt time.Time,
) (*StatusChange, error) {
	change, err := newStatusChange(orderID, previous, next, comment, actor, createdAt)
	if err != nil {
		return nil, err
	}
	change.id = id
	return change, nil
}

// Validate ensures the status change was created through a constructor.
func (c *StatusChange) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrStatusChangeIsNotConstructed
	}
	return nil
}

// ID returns the row's storage identity (0 until persisted).
func (c *StatusChange) ID() int64 { return c.id }

// OrderID returns the order the change belongs to.
func (c *StatusChange) OrderID() int64 { return c.orderID }

// PreviousStatus returns the status before the change, nil for the creation entry.
func (c *StatusChange) PreviousStatus() *Status { return c.previousStatus }

// NewStatus returns the status after the change.
func (c *StatusChange) NewStatus() Status { return c.newStatus }

// Comment returns the free-text comment attached to the change.
func (c *StatusChange) Comment() string { return c.comment }

// Actor returns who performed the change.
func (c *StatusChange) Actor() kernel.Actor { return c.actor }

// CreatedAt returns when the change was recorded.
func (c *StatusChange) CreatedAt() time.Time { return c.createdAt }
