package queries

import (
	"encoding/json"
	"errors"
	"time"

	"ecshop/internal/core/domain/model/kernel"
	"ecshop/internal/pkg/errs"
	"ecshop/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its items, scoped to the
// requesting principal unless the requester is an admin.
type GetOrderQuery struct {
	principal kernel.Principal
	orderID   int64
	isAdmin   bool

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates an order detail query.
func NewGetOrderQuery(principal kernel.Principal, orderID int64, isAdmin bool) (GetOrderQuery, error) {
	if err := principal.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValidationErrorWithCause(
			errs.CodeUserOrSessionRequired,
			"a user or guest session is required",
			err,
		)
	}
	if orderID <= 0 {
		return GetOrderQuery{}, errs.NewValidationError(errs.CodeInvalidOrderID, "order id must be a positive integer")
	}

	return GetOrderQuery{
		principal: principal,
		orderID:   orderID,
		isAdmin:   isAdmin,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// Principal returns the requesting principal.
func (q GetOrderQuery) Principal() kernel.Principal {
	return q.principal
}

// OrderID returns the requested order's storage identity.
func (q GetOrderQuery) OrderID() int64 {
	return q.orderID
}

// IsAdmin reports whether the requester may read any order.
func (q GetOrderQuery) IsAdmin() bool {
	return q.isAdmin
}

// OrderItemDetails is one line of an order detail response.
type OrderItemDetails struct {
	ID              int64
	ProductID       int64
	ProductName     string
	ProductSKU      string
	ProductImageURL string
	UnitPrice       float64
	Quantity        int
	TotalPrice      float64
	DiscountAmount  float64
	FinalPrice      float64
}

// CustomerDetails identifies the registered customer an order belongs to.
// Guest orders carry no customer block.
type CustomerDetails struct {
	ID    int64
	Name  string
	Email string
}

// OrderDetails is the full order detail response.
type OrderDetails struct {
	ID                int64
	OrderNumber       string
	Status            string
	Subtotal          float64
	CouponDiscount    float64
	TaxAmount         float64
	ShippingCost      float64
	TotalAmount       float64
	Currency          string
	PaymentStatus     string
	PaymentMethod     string
	ShippingMethod    string
	ShippingAddress   json.RawMessage
	BillingAddress    json.RawMessage
	CouponCode        string
	Notes             string
	EstimatedDelivery time.Time
	ShippedAt         *time.Time
	DeliveredAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Items             []OrderItemDetails
	Customer          *CustomerDetails
}
