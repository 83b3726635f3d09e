package queries

import (
	"context"
	"database/sql"
	"encoding/json"

	"ecshop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order with its items and, for registered
// customers, a customer block joined from the users table.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the detail query. Orders owned by someone else are
// reported as not found rather than forbidden, so the endpoint does not
// reveal which order ids exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return OrderDetails{}, err
	}

	detailSQL := `
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
			o.shipping_address,
			o.billing_address,
			o.coupon_code,
			o.notes,
			o.estimated_delivery,
			o.shipped_at,
			o.delivered_at,
			o.created_at,
			o.updated_at,
			u.id,
			u.first_name,
			u.last_name,
			u.email
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		WHERE o.id = ?`
	args := []any{query.OrderID()}
	if !query.IsAdmin() {
		column, value := ownerCondition(query.Principal())
		detailSQL += " AND o." + column + " = ?"
		args = append(args, value)
	}

	rows, err := h.db.WithContext(ctx).Raw(detailSQL, args...).Rows()
	if err != nil {
		return OrderDetails{}, errs.NewPersistenceError("orders.get", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderDetails{}, errs.NewPersistenceError("orders.get", err)
		}
		return OrderDetails{}, errs.NewNotFoundError(errs.CodeOrderNotFound, "order", query.OrderID())
	}

	var details OrderDetails
	var shippingAddress, billingAddress []byte
	var couponCode, notes sql.NullString
	var shippedAt, deliveredAt sql.NullTime
	var customerID sql.NullInt64
	var firstName, lastName, email sql.NullString

	if err = rows.Scan(
		&details.ID,
		&details.OrderNumber,
		&details.Status,
		&details.Subtotal,
		&details.CouponDiscount,
		&details.TaxAmount,
		&details.ShippingCost,
		&details.TotalAmount,
		&details.Currency,
		&details.PaymentStatus,
		&details.PaymentMethod,
		&details.ShippingMethod,
		&shippingAddress,
		&billingAddress,
		&couponCode,
		&notes,
		&details.EstimatedDelivery,
		&shippedAt,
		&deliveredAt,
		&details.CreatedAt,
		&details.UpdatedAt,
		&customerID,
		&firstName,
		&lastName,
		&email,
	); err != nil {
		return OrderDetails{}, errs.NewPersistenceError("orders.get.scan", err)
	}

	details.ShippingAddress = json.RawMessage(shippingAddress)
	details.BillingAddress = json.RawMessage(billingAddress)
	details.CouponCode = couponCode.String
	details.Notes = notes.String
	if shippedAt.Valid {
		details.ShippedAt = &shippedAt.Time
	}
	if deliveredAt.Valid {
		details.DeliveredAt = &deliveredAt.Time
	}
	if customerID.Valid {
		name := firstName.String
		if lastName.String != "" {
			if name != "" {
				name += " "
			}
			name += lastName.String
		}
		details.Customer = &CustomerDetails{
			ID:    customerID.Int64,
			Name:  name,
			Email: email.String,
		}
	}

	items, err := h.loadItems(ctx, details.ID)
	if err != nil {
		return OrderDetails{}, err
	}
	details.Items = items

	return details, nil
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, orderID int64) ([]OrderItemDetails, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_id,
			product_name,
			product_sku,
			product_image_url,
			unit_price,
			quantity,
			total_price,
			discount_amount,
			final_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID).Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("orders.get.items", err)
	}
	defer rows.Close()

	items := make([]OrderItemDetails, 0)
	for rows.Next() {
		var item OrderItemDetails
		var imageURL sql.NullString

		if err = rows.Scan(
			&item.ID,
			&item.ProductID,
			&item.ProductName,
			&item.ProductSKU,
			&imageURL,
			&item.UnitPrice,
			&item.Quantity,
			&item.TotalPrice,
			&item.DiscountAmount,
			&item.FinalPrice,
		); err != nil {
			return nil, errs.NewPersistenceError("orders.get.items.scan", err)
		}

		item.ProductImageURL = imageURL.String
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("orders.get.items.rows", err)
	}

	return items, nil
}
