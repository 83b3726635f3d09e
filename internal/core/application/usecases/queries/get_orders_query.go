// Package queries contains read operations in the CQRS architecture.
// Query handlers bypass the aggregates and read projection rows straight
// from the database, shaped for the API.
package queries

import (
	"errors"
	"time"

	"ecshop/internal/core/domain/model/kernel"
	"ecshop/internal/core/domain/model/order"
	"ecshop/internal/pkg/errs"
	"ecshop/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// GetOrdersQuery retrieves one page of the principal's orders, newest
// first, optionally filtered by status.
type GetOrdersQuery struct {
	principal kernel.Principal
	page      int
	limit     int
	status    *order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a paginated order listing query. Page and limit
// are clamped to sane bounds rather than rejected; an empty statusFilter
// means no filtering.
func NewGetOrdersQuery(principal kernel.Principal, page, limit int, statusFilter string) (GetOrdersQuery, error) {
	if err := principal.Validate(); err != nil {
		return GetOrdersQuery{}, errs.NewValidationErrorWithCause(
			errs.CodeUserOrSessionRequired,
			"a user or guest session is required",
			err,
		)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	listQuery := GetOrdersQuery{
		principal: principal,
		page:      page,
		limit:     limit,
		guard:     guard.NewConstructorGuard(),
	}

	if statusFilter != "" {
		status, err := order.StatusFromString(statusFilter)
		if err != nil {
			return GetOrdersQuery{}, err
		}
		listQuery.status = &status
	}

	return listQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersQueryIsNotConstructed if validation fails.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Principal returns the owner whose orders are listed.
func (q GetOrdersQuery) Principal() kernel.Principal {
	return q.principal
}

// Page returns the 1-based page number.
func (q GetOrdersQuery) Page() int {
	return q.page
}

// Limit returns the page size.
func (q GetOrdersQuery) Limit() int {
	return q.limit
}

// Status returns the optional status filter.
func (q GetOrdersQuery) Status() *order.Status {
	return q.status
}

// OrderSummary is one row of the order listing. Item counts are aggregated
// from the items at read time.
type OrderSummary struct {
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
	CouponCode        string
	ItemCount         int
	TotalQuantity     int
	EstimatedDelivery time.Time
	ShippedAt         *time.Time
	DeliveredAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Pagination describes the page window of a listing.
type Pagination struct {
	CurrentPage int
	PerPage     int
	Total       int64
	TotalPages  int
	HasNext     bool
	HasPrev     bool
}

// OrdersPage is the listing response: one page of summaries plus the
// pagination envelope.
type OrdersPage struct {
	Orders     []OrderSummary
	Pagination Pagination
}
