package order

import (
	"fmt"

	"ecshop/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// The transition graph is deliberately permissive: any known status can be
// reached from any non-terminal status, including backwards moves such as
// shipped -> processing that back-office corrections rely on. Only three
// rules are enforced:
//
//   - the target must be one of the seven known statuses
//   - the target must differ from the current status
//   - delivered, cancelled and refunded are terminal: no further
//     transitions of any kind are allowed
type Status string

const (
	// StatusPending is the initial status assigned at creation.
	StatusPending Status = "pending"

	// StatusConfirmed indicates the order has been acknowledged.
	StatusConfirmed Status = "confirmed"

	// StatusProcessing indicates the order is being prepared for shipment.
	StatusProcessing Status = "processing"

	// StatusShipped indicates the order has left the warehouse.
	StatusShipped Status = "shipped"

	// StatusDelivered indicates the order reached the customer. Terminal.
	StatusDelivered Status = "delivered"

	// StatusCancelled indicates the order was cancelled and its stock
	// restored. Terminal.
	StatusCancelled Status = "cancelled"

	// StatusRefunded indicates the order was refunded. Terminal.
	StatusRefunded Status = "refunded"
)

func validStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		StatusPending:    {},
		StatusConfirmed:  {},
		StatusProcessing: {},
		StatusShipped:    {},
		StatusDelivered:  {},
		StatusCancelled:  {},
		StatusRefunded:   {},
	}
}

// StatusFromString parses a status received from the API or storage.
func StatusFromString(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that the status is one of the seven known values.
func (s Status) Validate() error {
	if _, ok := validStatuses()[s]; !ok {
		return errs.NewValidationError(errs.CodeInvalidStatus, fmt.Sprintf("unknown order status: %q", string(s)))
	}
	return nil
}

// String returns the status in its persisted textual form.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusRefunded
}

// TransitionTo validates a transition and returns the resulting status.
//
// Returns INVALID_STATUS for unknown targets, STATUS_UNCHANGED for no-op
// transitions and CANNOT_CANCEL when the current status is terminal.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}

	if target == s {
		return "", errs.NewConflictError(
			errs.CodeStatusUnchanged,
			fmt.Sprintf("order already has status %s", s),
		)
	}

	if s.IsTerminal() {
		return "", errs.NewConflictError(
			errs.CodeCannotCancel,
			fmt.Sprintf("order in terminal status %s cannot change", s),
		)
	}

	return target, nil
}
