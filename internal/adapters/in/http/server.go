package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"ecshop/internal/core/application/usecases/commands"
	"ecshop/internal/core/application/usecases/queries"
	"ecshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server exposes the order API over HTTP.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler

	// Query handlers
	getOrdersHandler       queries.GetOrdersQueryHandler
	getOrderHandler        queries.GetOrderQueryHandler
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		cancelOrderHandler:       cancelOrderHandler,
		getOrdersHandler:         getOrdersHandler,
		getOrderHandler:          getOrderHandler,
		getOrderHistoryHandler:   getOrderHistoryHandler,
		logger:                   logger.With("component", "http"),
	}
}

// RegisterRoutes binds the API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api")
	api.GET("/orders", s.GetOrders)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.PUT("/orders/:id/status", s.UpdateOrderStatus)
	api.DELETE("/orders/:id", s.CancelOrder)
	api.GET("/orders/:id/history", s.GetOrderHistory)
}

// CreateOrder handles POST /api/orders - runs the checkout pipeline for the
// caller's cart. Guests may order; identity comes from the gateway headers.
func (s *Server) CreateOrder(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    errs.CodeValidationError,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewCreateOrderCommand(
		principal,
		req.ShippingMethod,
		req.ShippingAddress,
		req.BillingAddress,
		req.PaymentMethod,
		req.CouponCode,
		req.Notes,
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromAggregate(created))
}

// GetOrders handles GET /api/orders - lists the caller's orders, newest
// first, with a pagination envelope. Supports ?page, ?limit and ?status.
func (s *Server) GetOrders(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))

	query, err := queries.NewGetOrdersQuery(principal, page, limit, ctx.QueryParam("status"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	ordersPage, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ordersPageResponse(ordersPage))
}

// GetOrder handles GET /api/orders/:id - returns one order with its items.
// Admins may read any order; everyone else only their own.
func (s *Server) GetOrder(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(principal, orderID, isAdmin(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}

	details, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderDetailsResponse(details))
}

// UpdateOrderStatus handles PUT /api/orders/:id/status - admin-only status
// transition with an optional comment.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	adminID, ok := userIDFrom(ctx)
	if !ok || !isAdmin(ctx) {
		return s.writeError(ctx, errs.NewAuthorizationError(
			errs.CodeAccessDenied, "admin role required",
		))
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req UpdateOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    errs.CodeValidationError,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, req.Status, req.Comment, adminID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(updated))
}

// CancelOrder handles DELETE /api/orders/:id - cancels the caller's order
// and restores its stock. Admins may cancel any order.
func (s *Server) CancelOrder(ctx echo.Context) error {
	userID, ok := userIDFrom(ctx)
	if !ok {
		return s.writeError(ctx, errs.NewValidationError(
			errs.CodeUserOrSessionRequired, "a registered user is required",
		))
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	// The body is optional; an absent or malformed one means no reason given.
	var req CancelOrderRequest
	_ = ctx.Bind(&req)

	cmd, err := commands.NewCancelOrderCommand(orderID, req.Reason, userID, isAdmin(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}

	cancelled, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(cancelled))
}

// GetOrderHistory handles GET /api/orders/:id/history - returns the order's
// status transitions, oldest first.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(principal, orderID, isAdmin(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}

	entries, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, historyResponse(entries))
}

// orderIDParam parses the :id path parameter.
func orderIDParam(ctx echo.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.NewValidationError(errs.CodeInvalidOrderID, "order id must be a positive integer")
	}
	return id, nil
}
