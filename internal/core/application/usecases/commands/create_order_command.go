package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"ecshop/internal/core/domain/model/kernel"
	"ecshop/internal/core/domain/model/order"
	"ecshop/internal/pkg/errs"
	"ecshop/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a checkout request: turn the principal's
// cart into an order.
//
// The billing address defaults to the shipping address when omitted. The
// coupon code, payment method and notes are optional.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	principal       kernel.Principal
	shippingMethod  order.ShippingMethod
	shippingAddress kernel.Address
	billingAddress  kernel.Address
	paymentMethod   string
	couponCode      string
	notes           string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a checkout command from raw API input.
// Validates the principal, the shipping method and both address payloads;
// a nil billing address falls back to the shipping address.
func NewCreateOrderCommand(
	principal kernel.Principal,
	shippingMethod string,
	shippingAddress json.RawMessage,
	billingAddress json.RawMessage,
	paymentMethod string,
	couponCode string,
	notes string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		paymentMethod: paymentMethod,
		couponCode:    couponCode,
		notes:         notes,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setPrincipal(principal),
		orderCommand.setShippingMethod(shippingMethod),
		orderCommand.setAddresses(shippingAddress, billingAddress),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Principal returns the cart owner placing the order.
func (c CreateOrderCommand) Principal() kernel.Principal {
	return c.principal
}

// ShippingMethod returns the validated shipping method.
func (c CreateOrderCommand) ShippingMethod() order.ShippingMethod {
	return c.shippingMethod
}

// ShippingAddress returns the shipping address payload.
func (c CreateOrderCommand) ShippingAddress() kernel.Address {
	return c.shippingAddress
}

// BillingAddress returns the billing address payload.
func (c CreateOrderCommand) BillingAddress() kernel.Address {
	return c.billingAddress
}

// PaymentMethod returns the requested payment method, possibly empty.
func (c CreateOrderCommand) PaymentMethod() string {
	return c.paymentMethod
}

// CouponCode returns the coupon code, possibly empty.
func (c CreateOrderCommand) CouponCode() string {
	return c.couponCode
}

// Notes returns free-form customer notes, possibly empty.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

func (c *CreateOrderCommand) setPrincipal(principal kernel.Principal) error {
	if err := principal.Validate(); err != nil {
		return errs.NewValidationErrorWithCause(
			errs.CodeUserOrSessionRequired,
			"a user or guest session is required",
			err,
		)
	}

	c.principal = principal
	return nil
}

func (c *CreateOrderCommand) setShippingMethod(shippingMethod string) error {
	method, err := order.ShippingMethodFromString(shippingMethod)
	if err != nil {
		return err
	}

	c.shippingMethod = method
	return nil
}

func (c *CreateOrderCommand) setAddresses(shipping, billing json.RawMessage) error {
	shippingAddress, err := kernel.NewAddress(shipping)
	if err != nil {
		return errs.NewValidationErrorWithCause(
			errs.CodeValidationError,
			fmt.Sprintf("invalid shipping address: %s", err),
			err,
		)
	}

	billingAddress := shippingAddress
	if len(billing) > 0 {
		billingAddress, err = kernel.NewAddress(billing)
		if err != nil {
			return errs.NewValidationErrorWithCause(
				errs.CodeValidationError,
				fmt.Sprintf("invalid billing address: %s", err),
				err,
			)
		}
	}

	c.shippingAddress = shippingAddress
	c.billingAddress = billingAddress
	return nil
}
