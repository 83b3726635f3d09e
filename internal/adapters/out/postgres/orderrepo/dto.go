// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"encoding/json"
	"time"

	"ecshop/internal/core/domain/model/kernel"
	"ecshop/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting orders.
// The order number carries a unique index; the insert path relies on it to
// detect collisions. Exactly one of UserID and GuestSessionID is set.
type OrderDTO struct {
	ID                int64   `gorm:"primaryKey;autoIncrement"`
	OrderNumber       string  `gorm:"size:32;uniqueIndex;not null"`
	UserID            *int64  `gorm:"index"`
	GuestSessionID    *string `gorm:"size:64;index"`
	Status            string  `gorm:"size:20;index;not null"`
	Subtotal          float64 `gorm:"not null"`
	CouponDiscount    float64 `gorm:"not null"`
	TaxAmount         float64 `gorm:"not null"`
	ShippingCost      float64 `gorm:"not null"`
	TotalAmount       float64 `gorm:"not null"`
	Currency          string  `gorm:"size:3;not null"`
	PaymentStatus     string  `gorm:"size:20;not null"`
	PaymentMethod     string  `gorm:"size:32;not null"`
	ShippingMethod    string  `gorm:"size:20;not null"`
	ShippingAddress   []byte  `gorm:"type:jsonb;not null"`
	BillingAddress    []byte  `gorm:"type:jsonb;not null"`
	CouponCode        *string `gorm:"size:32"`
	Notes             *string
	EstimatedDelivery time.Time `gorm:"not null"`
	ShippedAt         *time.Time
	DeliveredAt       *time.Time
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName specifies the database table name for order rows.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line. Product attributes are snapshots taken
// at checkout; later catalog edits never change them.
type ItemDTO struct {
	ID              int64   `gorm:"primaryKey;autoIncrement"`
	OrderID         int64   `gorm:"index;not null"`
	ProductID       int64   `gorm:"index;not null"`
	ProductName     string  `gorm:"size:255;not null"`
	ProductSKU      string  `gorm:"size:64;not null"`
	ProductImageURL *string `gorm:"size:512"`
	UnitPrice       float64 `gorm:"not null"`
	Quantity        int     `gorm:"not null"`
	TotalPrice      float64 `gorm:"not null"`
	DiscountAmount  float64 `gorm:"not null"`
	FinalPrice      float64 `gorm:"not null"`
	CreatedAt       time.Time
}

// TableName specifies the database table name for order lines.
func (ItemDTO) TableName() string {
	return "order_items"
}

// StatusHistoryDTO represents one append-only status history row.
// PreviousStatus is null for the creation entry; at most one of the
// changed-by columns is set, none for system transitions.
type StatusHistoryDTO struct {
	ID               int64   `gorm:"primaryKey;autoIncrement"`
	OrderID          int64   `gorm:"index;not null"`
	PreviousStatus   *string `gorm:"size:20"`
	NewStatus        string  `gorm:"size:20;not null"`
	Comment          *string
	ChangedByUserID  *int64
	ChangedByAdminID *int64
	CreatedAt        time.Time `gorm:"not null"`
}

// TableName specifies the database table name for status history rows.
func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                aggregate.ID(),
		OrderNumber:       aggregate.OrderNumber().String(),
		Status:            aggregate.Status().String(),
		Subtotal:          aggregate.Totals().Subtotal,
		CouponDiscount:    aggregate.Totals().CouponDiscount,
		TaxAmount:         aggregate.Totals().TaxAmount,
		ShippingCost:      aggregate.Totals().ShippingCost,
		TotalAmount:       aggregate.Totals().Total,
		Currency:          aggregate.Currency(),
		PaymentStatus:     aggregate.PaymentStatus(),
		PaymentMethod:     aggregate.PaymentMethod(),
		ShippingMethod:    aggregate.ShippingMethod().String(),
		ShippingAddress:   aggregate.ShippingAddress().Raw(),
		BillingAddress:    aggregate.BillingAddress().Raw(),
		EstimatedDelivery: aggregate.EstimatedDelivery(),
		ShippedAt:         aggregate.ShippedAt(),
		DeliveredAt:       aggregate.DeliveredAt(),
		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
	}

	if userID, ok := aggregate.Owner().UserID(); ok {
		dto.UserID = &userID
	} else if sessionID, ok := aggregate.Owner().GuestSessionID(); ok {
		dto.GuestSessionID = &sessionID
	}
	if code := aggregate.CouponCode(); code != "" {
		dto.CouponCode = &code
	}
	if notes := aggregate.Notes(); notes != "" {
		dto.Notes = &notes
	}

	return dto
}

// itemFromDomain converts one order line to its database representation.
func itemFromDomain(orderID int64, item *order.Item) ItemDTO {
	dto := ItemDTO{
		ID:             item.ID(),
		OrderID:        orderID,
		ProductID:      item.ProductID(),
		ProductName:    item.ProductName(),
		ProductSKU:     item.ProductSKU(),
		UnitPrice:      item.UnitPrice(),
		Quantity:       item.Quantity(),
		TotalPrice:     item.TotalPrice(),
		DiscountAmount: item.DiscountAmount(),
		FinalPrice:     item.FinalPrice(),
	}
	if url := item.ProductImageURL(); url != "" {
		dto.ProductImageURL = &url
	}
	return dto
}

// historyFromDomain converts a status change to its database representation.
func historyFromDomain(change *order.StatusChange) StatusHistoryDTO {
	dto := StatusHistoryDTO{
		ID:               change.ID(),
		OrderID:          change.OrderID(),
		NewStatus:        change.NewStatus().String(),
		ChangedByUserID:  change.Actor().UserID(),
		ChangedByAdminID: change.Actor().AdminID(),
		CreatedAt:        change.CreatedAt(),
	}
	if previous := change.PreviousStatus(); previous != nil {
		status := previous.String()
		dto.PreviousStatus = &status
	}
	if comment := change.Comment(); comment != "" {
		dto.Comment = &comment
	}
	return dto
}

// toDomain converts database rows back into an order aggregate.
func toDomain(dto OrderDTO, itemDTOs []ItemDTO) (*order.Order, error) {
	owner, err := ownerFromDTO(dto)
	if err != nil {
		return nil, err
	}

	number, err := kernel.OrderNumberFromString(dto.OrderNumber)
	if err != nil {
		return nil, err
	}

	shippingAddress, err := kernel.NewAddress(json.RawMessage(dto.ShippingAddress))
	if err != nil {
		return nil, err
	}
	billingAddress, err := kernel.NewAddress(json.RawMessage(dto.BillingAddress))
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:          dto.ID,
		OrderNumber: number,
		Owner:       owner,
		Status:      order.Status(dto.Status),
		Totals: order.Totals{
			Subtotal:       dto.Subtotal,
			CouponDiscount: dto.CouponDiscount,
			TaxAmount:      dto.TaxAmount,
			ShippingCost:   dto.ShippingCost,
			Total:          dto.TotalAmount,
		},
		Currency:          dto.Currency,
		PaymentStatus:     dto.PaymentStatus,
		PaymentMethod:     dto.PaymentMethod,
		ShippingMethod:    order.ShippingMethod(dto.ShippingMethod),
		ShippingAddress:   shippingAddress,
		BillingAddress:    billingAddress,
		CouponCode:        stringValue(dto.CouponCode),
		EstimatedDelivery: dto.EstimatedDelivery,
		ShippedAt:         dto.ShippedAt,
		DeliveredAt:       dto.DeliveredAt,
		Notes:             stringValue(dto.Notes),
		Items:             items,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
	})
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	return order.RestoreItem(
		dto.ID,
		dto.OrderID,
		dto.ProductID,
		dto.ProductName,
		dto.ProductSKU,
		stringValue(dto.ProductImageURL),
		dto.UnitPrice,
		dto.Quantity,
		dto.TotalPrice,
		dto.DiscountAmount,
		dto.FinalPrice,
	)
}

func ownerFromDTO(dto OrderDTO) (kernel.Principal, error) {
	if dto.UserID != nil {
		return kernel.NewUserPrincipal(*dto.UserID)
	}
	if dto.GuestSessionID != nil {
		return kernel.NewGuestPrincipal(*dto.GuestSessionID)
	}
	return kernel.Principal{}, kernel.ErrPrincipalIsNotConstructed
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
