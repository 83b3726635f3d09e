package queries

import (
	"context"
	"database/sql"

	"ecshop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrdersQueryHandler reads the order listing projection. Listings join
// the items once to aggregate counts instead of loading full aggregates.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing query and returns one page of summaries.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) (OrdersPage, error) {
	if err := query.Validate(); err != nil {
		return OrdersPage{}, err
	}

	ownerColumn, ownerValue := ownerCondition(query.Principal())

	countSQL := "SELECT COUNT(*) FROM orders WHERE " + ownerColumn + " = ?"
	countArgs := []any{ownerValue}
	if query.Status() != nil {
		countSQL += " AND status = ?"
		countArgs = append(countArgs, query.Status().String())
	}

	var total int64
	if err := h.db.WithContext(ctx).Raw(countSQL, countArgs...).Scan(&total).Error; err != nil {
		return OrdersPage{}, errs.NewPersistenceError("orders.list.count", err)
	}

	listSQL := `
		SELECT
			o.id,
			o.order_number,
			o.status,
			o.subtotal,
			o.coupon_discount,
			o.tax_amount,
			o.shipping_cost,
			o.total_amount,
			o.currency,
			o.payment_status,
			o.payment_method,
			o.shipping_method,
			o.coupon_code,
			o.estimated_delivery,
			o.shipped_at,
			o.delivered_at,
			o.created_at,
			o.updated_at,
			COUNT(oi.id) AS item_count,
			COALESCE(SUM(oi.quantity), 0) AS total_quantity
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		WHERE o.` + ownerColumn + ` = ?`
	listArgs := []any{ownerValue}
	if query.Status() != nil {
		listSQL += " AND o.status = ?"
		listArgs = append(listArgs, query.Status().String())
	}
	listSQL += `
		GROUP BY o.id
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT ? OFFSET ?`
	listArgs = append(listArgs, query.Limit(), (query.Page()-1)*query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(listSQL, listArgs...).Rows()
	if err != nil {
		return OrdersPage{}, errs.NewPersistenceError("orders.list", err)
	}
	defer rows.Close()

	orders := make([]OrderSummary, 0, query.Limit())
	for rows.Next() {
		var summary OrderSummary
		var couponCode sql.NullString
		var shippedAt, deliveredAt sql.NullTime

		if err = rows.Scan(
			&summary.ID,
			&summary.OrderNumber,
			&summary.Status,
			&summary.Subtotal,
			&summary.CouponDiscount,
			&summary.TaxAmount,
			&summary.ShippingCost,
			&summary.TotalAmount,
			&summary.Currency,
			&summary.PaymentStatus,
			&summary.PaymentMethod,
			&summary.ShippingMethod,
			&couponCode,
			&summary.EstimatedDelivery,
			&shippedAt,
			&deliveredAt,
			&summary.CreatedAt,
			&summary.UpdatedAt,
			&summary.ItemCount,
			&summary.TotalQuantity,
		); err != nil {
			return OrdersPage{}, errs.NewPersistenceError("orders.list.scan", err)
		}

		summary.CouponCode = couponCode.String
		if shippedAt.Valid {
			summary.ShippedAt = &shippedAt.Time
		}
		if deliveredAt.Valid {
			summary.DeliveredAt = &deliveredAt.Time
		}
		orders = append(orders, summary)
	}
	if err = rows.Err(); err != nil {
		return OrdersPage{}, errs.NewPersistenceError("orders.list.rows", err)
	}

	totalPages := int((total + int64(query.Limit()) - 1) / int64(query.Limit()))

	return OrdersPage{
		Orders: orders,
		Pagination: Pagination{
			CurrentPage: query.Page(),
			PerPage:     query.Limit(),
			Total:       total,
			TotalPages:  totalPages,
			HasNext:     query.Page() < totalPages,
			HasPrev:     query.Page() > 1,
		},
	}, nil
}
