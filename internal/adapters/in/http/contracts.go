package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ecshop/internal/core/application/usecases/queries"
	"ecshop/internal/core/domain/model/order"
	"ecshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateOrderRequest is the POST /api/orders payload. Addresses are kept as
// raw JSON; validation happens in the command constructor.
type CreateOrderRequest struct {
	ShippingMethod  string          `json:"shipping_method"`
	ShippingAddress json.RawMessage `json:"shipping_address"`
	BillingAddress  json.RawMessage `json:"billing_address,omitempty"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	CouponCode      string          `json:"coupon_code,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// UpdateOrderStatusRequest is the PUT /api/orders/:id/status payload.
type UpdateOrderStatusRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment,omitempty"`
}

// CancelOrderRequest is the optional DELETE /api/orders/:id payload.
type CancelOrderRequest struct {
	Reason string `json:"reason,omitempty"`
}

// ErrorResponse is the error body for every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OrderItemResponse is one order line in API responses.
type OrderItemResponse struct {
	ID              int64   `json:"id"`
	ProductID       int64   `json:"product_id"`
	ProductName     string  `json:"product_name"`
	ProductSKU      string  `json:"product_sku"`
	ProductImageURL string  `json:"product_image_url,omitempty"`
	UnitPrice       float64 `json:"unit_price"`
	Quantity        int     `json:"quantity"`
	TotalPrice      float64 `json:"total_price"`
	DiscountAmount  float64 `json:"discount_amount"`
	FinalPrice      float64 `json:"final_price"`
}

// OrderResponse is the full order representation returned by the command
// endpoints and the detail read.
type OrderResponse struct {
	ID                int64               `json:"id"`
	OrderNumber       string              `json:"order_number"`
	Status            string              `json:"status"`
	Subtotal          float64             `json:"subtotal"`
	CouponDiscount    float64             `json:"coupon_discount"`
	TaxAmount         float64             `json:"tax_amount"`
	ShippingCost      float64             `json:"shipping_cost"`
	TotalAmount       float64             `json:"total_amount"`
	Currency          string              `json:"currency"`
	PaymentStatus     string              `json:"payment_status"`
	PaymentMethod     string              `json:"payment_method"`
	ShippingMethod    string              `json:"shipping_method"`
	ShippingAddress   json.RawMessage     `json:"shipping_address"`
	BillingAddress    json.RawMessage     `json:"billing_address"`
	CouponCode        string              `json:"coupon_code,omitempty"`
	Notes             string              `json:"notes,omitempty"`
	EstimatedDelivery time.Time           `json:"estimated_delivery"`
	ShippedAt         *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt       *time.Time          `json:"delivered_at,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
	Items             []OrderItemResponse `json:"items"`
	Customer          *CustomerResponse   `json:"customer,omitempty"`
}

// CustomerResponse identifies the registered customer on an order detail.
type CustomerResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderSummaryResponse is one row of the order listing.
type OrderSummaryResponse struct {
	ID                int64      `json:"id"`
	OrderNumber       string     `json:"order_number"`
	Status            string     `json:"status"`
	Subtotal          float64    `json:"subtotal"`
	CouponDiscount    float64    `json:"coupon_discount"`
	TaxAmount         float64    `json:"tax_amount"`
	ShippingCost      float64    `json:"shipping_cost"`
	TotalAmount       float64    `json:"total_amount"`
	Currency          string     `json:"currency"`
	PaymentStatus     string     `json:"payment_status"`
	PaymentMethod     string     `json:"payment_method"`
	ShippingMethod    string     `json:"shipping_method"`
	CouponCode        string     `json:"coupon_code,omitempty"`
	ItemCount         int        `json:"item_count"`
	TotalQuantity     int        `json:"total_quantity"`
	EstimatedDelivery time.Time  `json:"estimated_delivery"`
	ShippedAt         *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// PaginationResponse is the page window envelope on listings.
type PaginationResponse struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// OrdersPageResponse is the GET /api/orders body.
type OrdersPageResponse struct {
	Orders     []OrderSummaryResponse `json:"orders"`
	Pagination PaginationResponse     `json:"pagination"`
}

// HistoryEntryResponse is one status transition in the history listing.
type HistoryEntryResponse struct {
	ID             int64     `json:"id"`
	PreviousStatus *string   `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Comment        string    `json:"comment,omitempty"`
	ChangedBy      string    `json:"changed_by"`
	CreatedAt      time.Time `json:"created_at"`
}

func orderFromAggregate(aggregate *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items[i] = OrderItemResponse{
			ID:              item.ID(),
			ProductID:       item.ProductID(),
			ProductName:     item.ProductName(),
			ProductSKU:      item.ProductSKU(),
			ProductImageURL: item.ProductImageURL(),
			UnitPrice:       item.UnitPrice(),
			Quantity:        item.Quantity(),
			TotalPrice:      item.TotalPrice(),
			DiscountAmount:  item.DiscountAmount(),
			FinalPrice:      item.FinalPrice(),
		}
	}

	totals := aggregate.Totals()

	return OrderResponse{
		ID:                aggregate.ID(),
		OrderNumber:       aggregate.OrderNumber().String(),
		Status:            string(aggregate.Status()),
		Subtotal:          totals.Subtotal,
		CouponDiscount:    totals.CouponDiscount,
		TaxAmount:         totals.TaxAmount,
		ShippingCost:      totals.ShippingCost,
		TotalAmount:       totals.Total,
		Currency:          aggregate.Currency(),
		PaymentStatus:     aggregate.PaymentStatus(),
		PaymentMethod:     aggregate.PaymentMethod(),
		ShippingMethod:    string(aggregate.ShippingMethod()),
		ShippingAddress:   aggregate.ShippingAddress().Raw(),
		BillingAddress:    aggregate.BillingAddress().Raw(),
		CouponCode:        aggregate.CouponCode(),
		Notes:             aggregate.Notes(),
		EstimatedDelivery: aggregate.EstimatedDelivery(),
		ShippedAt:         aggregate.ShippedAt(),
		DeliveredAt:       aggregate.DeliveredAt(),
		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
		Items:             items,
	}
}

func ordersPageResponse(page queries.OrdersPage) OrdersPageResponse {
	orders := make([]OrderSummaryResponse, len(page.Orders))
	for i, summary := range page.Orders {
		orders[i] = OrderSummaryResponse{
			ID:                summary.ID,
			OrderNumber:       summary.OrderNumber,
			Status:            summary.Status,
			Subtotal:          summary.Subtotal,
			CouponDiscount:    summary.CouponDiscount,
			TaxAmount:         summary.TaxAmount,
			ShippingCost:      summary.ShippingCost,
			TotalAmount:       summary.TotalAmount,
			Currency:          summary.Currency,
			PaymentStatus:     summary.PaymentStatus,
			PaymentMethod:     summary.PaymentMethod,
			ShippingMethod:    summary.ShippingMethod,
			CouponCode:        summary.CouponCode,
			ItemCount:         summary.ItemCount,
			TotalQuantity:     summary.TotalQuantity,
			EstimatedDelivery: summary.EstimatedDelivery,
			ShippedAt:         summary.ShippedAt,
			DeliveredAt:       summary.DeliveredAt,
			CreatedAt:         summary.CreatedAt,
			UpdatedAt:         summary.UpdatedAt,
		}
	}

	return OrdersPageResponse{
		Orders: orders,
		Pagination: PaginationResponse{
			CurrentPage: page.Pagination.CurrentPage,
			PerPage:     page.Pagination.PerPage,
			Total:       page.Pagination.Total,
			TotalPages:  page.Pagination.TotalPages,
			HasNext:     page.Pagination.HasNext,
			HasPrev:     page.Pagination.HasPrev,
		},
	}
}

func orderDetailsResponse(details queries.OrderDetails) OrderResponse {
	items := make([]OrderItemResponse, len(details.Items))
	for i, item := range details.Items {
		items[i] = OrderItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			ProductSKU:      item.ProductSKU,
			ProductImageURL: item.ProductImageURL,
			UnitPrice:       item.UnitPrice,
			Quantity:        item.Quantity,
			TotalPrice:      item.TotalPrice,
			DiscountAmount:  item.DiscountAmount,
			FinalPrice:      item.FinalPrice,
		}
	}

	var customer *CustomerResponse
	if details.Customer != nil {
		customer = &CustomerResponse{
			ID:    details.Customer.ID,
			Name:  details.Customer.Name,
			Email: details.Customer.Email,
		}
	}

	return OrderResponse{
		ID:                details.ID,
		OrderNumber:       details.OrderNumber,
		Status:            details.Status,
		Subtotal:          details.Subtotal,
		CouponDiscount:    details.CouponDiscount,
		TaxAmount:         details.TaxAmount,
		ShippingCost:      details.ShippingCost,
		TotalAmount:       details.TotalAmount,
		Currency:          details.Currency,
		PaymentStatus:     details.PaymentStatus,
		PaymentMethod:     details.PaymentMethod,
		ShippingMethod:    details.ShippingMethod,
		ShippingAddress:   details.ShippingAddress,
		BillingAddress:    details.BillingAddress,
		CouponCode:        details.CouponCode,
		Notes:             details.Notes,
		EstimatedDelivery: details.EstimatedDelivery,
		ShippedAt:         details.ShippedAt,
		DeliveredAt:       details.DeliveredAt,
		CreatedAt:         details.CreatedAt,
		UpdatedAt:         details.UpdatedAt,
		Items:             items,
		Customer:          customer,
	}
}

func historyResponse(entries []queries.HistoryEntry) []HistoryEntryResponse {
	response := make([]HistoryEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = HistoryEntryResponse{
			ID:             entry.ID,
			PreviousStatus: entry.PreviousStatus,
			NewStatus:      entry.NewStatus,
			Comment:        entry.Comment,
			ChangedBy:      entry.ChangedBy,
			CreatedAt:      entry.CreatedAt,
		}
	}
	return response
}

// writeError maps the application error taxonomy to HTTP statuses.
// Storage failures are logged with full context and reported generically.
func (s *Server) writeError(ctx echo.Context, err error) error {
	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    validationErr.Code,
			Message: validationErr.Message,
		})
	}

	var conflictErr *errs.ConflictError
	if errors.As(err, &conflictErr) {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    conflictErr.Code,
			Message: conflictErr.Message,
		})
	}

	var notFoundErr *errs.NotFoundError
	if errors.As(err, &notFoundErr) {
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    notFoundErr.Code,
			Message: "order not found",
		})
	}

	var authorizationErr *errs.AuthorizationError
	if errors.As(err, &authorizationErr) {
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    authorizationErr.Code,
			Message: authorizationErr.Message,
		})
	}

	s.logger.ErrorContext(ctx.Request().Context(), "request failed",
		"method", ctx.Request().Method,
		"path", ctx.Request().URL.Path,
		"error", err,
	)
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    errs.CodeDatabaseError,
		Message: "an internal error occurred",
	})
}
