package order

import (
	"errors"
	"fmt"
	"time"

	"ecshop/internal/core/domain/model/kernel"
	"ecshop/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderItemsAreRequired is returned for orders with no line items.
	ErrOrderItemsAreRequired = errors.New("order must have at least one item")

	// ErrOrderIDAlreadyAssigned is returned when persistence tries to assign
	// an identity to an order that already has one.
	ErrOrderIDAlreadyAssigned = errors.New("order id is already assigned")
)

// DefaultCurrency is the currency every order is priced in.
const DefaultCurrency = "JPY"

// paymentStatusPending is the payment status assigned at creation; payment
// processing itself is outside this core and only ever updates the field.
const paymentStatusPending = "pending"

// Order is the aggregate root for a purchase. It owns its line items,
// monetary totals, addresses and lifecycle status.
//
// Invariants:
//   - owned by exactly one principal (registered user or guest session)
//   - at least one line item, all snapshotted at creation
//   - totals reconcile: total = (subtotal - couponDiscount) + tax + shipping
//   - status only changes through TransitionTo / Cancel
//   - created once, never hard-deleted; cancellation is a status
type Order struct {
	id                int64
	orderNumber       kernel.OrderNumber
	owner             kernel.Principal
	status            Status
	totals            Totals
	currency          string
	paymentStatus     string
	paymentMethod     string
	shippingMethod    ShippingMethod
	shippingAddress   kernel.Address
	billingAddress    kernel.Address
	couponCode        string
	estimatedDelivery time.Time
	shippedAt         *time.Time
	deliveredAt       *time.Time
	notes             string
	items             []*Item
	createdAt         time.Time
	updatedAt         time.Time

	isConstructed bool
}

// NewOrder assembles a new order in pending status.
//
// The billing address must already be resolved by the caller (it defaults to
// the shipping address at the API boundary). An empty payment method is
// stored as "pending", matching the payment collaborator's initial state.
// The estimated delivery date is derived from the shipping method.
func NewOrder(
	owner kernel.Principal,
	number kernel.OrderNumber,
	method ShippingMethod,
	shippingAddress kernel.Address,
	billingAddress kernel.Address,
	paymentMethod string,
	couponCode string,
	notes string,
	totals Totals,
	items []*Item,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		currency:      DefaultCurrency,
		paymentStatus: paymentStatusPending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setOwner(owner),
		o.setOrderNumber(number),
		o.setShipping(method, shippingAddress, billingAddress),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if paymentMethod == "" {
		paymentMethod = paymentStatusPending
	}

	o.paymentMethod = paymentMethod
	o.couponCode = couponCode
	o.notes = notes
	o.totals = totals
	o.estimatedDelivery = method.EstimatedDelivery(now)
	o.createdAt = now
	o.updatedAt = now
	return o, nil
}

// Snapshot carries every persisted order attribute for reconstruction.
type Snapshot struct {
	ID                int64
	OrderNumber       kernel.OrderNumber
	Owner             kernel.Principal
	Status            Status
	Totals            Totals
	Currency          string
	PaymentStatus     string
	PaymentMethod     string
	ShippingMethod    ShippingMethod
	ShippingAddress   kernel.Address
	BillingAddress    kernel.Address
	CouponCode        string
	EstimatedDelivery time.Time
	ShippedAt         *time.Time
	DeliveredAt       *time.Time
	Notes             string
	Items             []*Item
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RestoreOrder reconstructs an order aggregate from persistence.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setOwner(s.Owner),
		o.setOrderNumber(s.OrderNumber),
		o.setShipping(s.ShippingMethod, s.ShippingAddress, s.BillingAddress),
		o.setItems(s.Items),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}

	o.id = s.ID
	o.status = s.Status
	o.totals = s.Totals
	o.currency = s.Currency
	o.paymentStatus = s.PaymentStatus
	o.paymentMethod = s.PaymentMethod
	o.couponCode = s.CouponCode
	o.estimatedDelivery = s.EstimatedDelivery
	o.shippedAt = s.ShippedAt
	o.deliveredAt = s.DeliveredAt
	o.notes = s.Notes
	o.createdAt = s.CreatedAt
	o.updatedAt = s.UpdatedAt
	return o, nil
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// AssignIdentity attaches the storage identity after the initial insert.
// Fails if the order already has an identity.
func (o *Order) AssignIdentity(id int64) error {
	if o.id != 0 {
		return fmt.Errorf("%w: %d", ErrOrderIDAlreadyAssigned, o.id)
	}
	o.id = id
	return nil
}

// ID returns the order's storage identity (0 until persisted).
func (o *Order) ID() int64 { return o.id }

// OrderNumber returns the externally visible order identifier.
func (o *Order) OrderNumber() kernel.OrderNumber { return o.orderNumber }

// Owner returns the owning principal.
func (o *Order) Owner() kernel.Principal { return o.owner }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// Totals returns the monetary breakdown.
func (o *Order) Totals() Totals { return o.totals }

// Currency returns the order currency.
func (o *Order) Currency() string { return o.currency }

// PaymentStatus returns the opaque payment status.
func (o *Order) PaymentStatus() string { return o.paymentStatus }

// PaymentMethod returns the opaque payment method.
func (o *Order) PaymentMethod() string { return o.paymentMethod }

// ShippingMethod returns the chosen shipping method.
func (o *Order) ShippingMethod() ShippingMethod { return o.shippingMethod }

// ShippingAddress returns the shipping address blob.
func (o *Order) ShippingAddress() kernel.Address { return o.shippingAddress }

// BillingAddress returns the billing address blob.
func (o *Order) BillingAddress() kernel.Address { return o.billingAddress }

// CouponCode returns the applied coupon code, if any.
func (o *Order) CouponCode() string { return o.couponCode }

// EstimatedDelivery returns the expected delivery date.
func (o *Order) EstimatedDelivery() time.Time { return o.estimatedDelivery }

// ShippedAt returns when the order was shipped, or nil.
func (o *Order) ShippedAt() *time.Time { return o.shippedAt }

// DeliveredAt returns when the order was delivered, or nil.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// Notes returns the free-text order notes.
func (o *Order) Notes() string { return o.notes }

// Items returns the order's line items.
func (o *Order) Items() []*Item { return o.items }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last modification timestamp.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// IsOwnedBy reports whether the given principal owns this order.
func (o *Order) IsOwnedBy(p kernel.Principal) bool {
	return o.owner.IsEqual(p)
}

// TransitionTo moves the order to the target status, applying the
// status-specific side effects: shipped_at is stamped on shipped,
// delivered_at on delivered. The caller is responsible for the inventory
// restore that a transition to cancelled entails.
func (o *Order) TransitionTo(target Status, now time.Time) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	switch newStatus {
	case StatusShipped:
		t := now
		o.shippedAt = &t
	case StatusDelivered:
		t := now
		o.deliveredAt = &t
	}

	o.updatedAt = now
	return nil
}

// Cancel moves the order to cancelled. Unlike a generic transition, a
// cancellation attempt on any terminal order (including an already
// cancelled one) reports CANNOT_CANCEL.
func (o *Order) Cancel(now time.Time) error {
	if o.status.IsTerminal() {
		return errs.NewConflictError(
			errs.CodeCannotCancel,
			fmt.Sprintf("order in status %s cannot be cancelled", o.status),
		)
	}
	return o.TransitionTo(StatusCancelled, now)
}

func (o *Order) setOwner(owner kernel.Principal) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	o.owner = owner
	return nil
}

func (o *Order) setOrderNumber(number kernel.OrderNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}
	o.orderNumber = number
	return nil
}

func (o *Order) setShipping(method ShippingMethod, shipping, billing kernel.Address) error {
	if err := errors.Join(method.Validate(), shipping.Validate(), billing.Validate()); err != nil {
		return err
	}

	o.shippingMethod = method
	o.shippingAddress = shipping
	o.billingAddress = billing
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return ErrOrderItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}
