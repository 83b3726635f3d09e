// Package cartrepo reads and clears cart rows for the checkout pipeline.
// Cart mutation APIs (add, remove, change quantity) belong to a
// collaborator service; the checkout only consumes and clears lines.
package cartrepo

import (
	"context"
	"time"

	"ecshop/internal/core/domain/model/cart"
	"ecshop/internal/core/domain/model/kernel"
	"ecshop/internal/pkg/errs"

	"gorm.io/gorm"
)

// CartItemDTO represents one cart row. Exactly one of UserID and SessionID
// is set, matching the order owner model.
type CartItemDTO struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	UserID    *int64  `gorm:"index"`
	SessionID *string `gorm:"size:64;index"`
	ProductID int64   `gorm:"index;not null"`
	Quantity  int     `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for cart rows.
func (CartItemDTO) TableName() string {
	return "cart_items"
}

// GormCartRepository implements ports.CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// GetLines returns the principal's cart joined with live product data.
// Rows whose product is no longer active are dropped from the join, so a
// delisted product silently leaves the checkout. Oldest line first.
func (r *GormCartRepository) GetLines(ctx context.Context, principal kernel.Principal) ([]cart.Line, error) {
	column, value := ownerCondition(principal)

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.name,
			p.sku,
			p.image_url,
			p.price,
			ci.quantity,
			p.stock_quantity,
			p.status = 'active'
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.`+column+` = ? AND p.status = 'active'
		ORDER BY ci.created_at, ci.id
	`, value).Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("cart.lines", err)
	}
	defer rows.Close()

	lines := make([]cart.Line, 0)
	for rows.Next() {
		var line cart.Line
		var imageURL *string

		if err = rows.Scan(
			&line.ProductID,
			&line.ProductName,
			&line.ProductSKU,
			&imageURL,
			&line.UnitPrice,
			&line.Quantity,
			&line.LiveStock,
			&line.IsActive,
		); err != nil {
			return nil, errs.NewPersistenceError("cart.lines.scan", err)
		}

		if imageURL != nil {
			line.ProductImageURL = *imageURL
		}
		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("cart.lines.rows", err)
	}

	return lines, nil
}

// Clear deletes every cart row belonging to the principal.
func (r *GormCartRepository) Clear(ctx context.Context, principal kernel.Principal) error {
	column, value := ownerCondition(principal)

	if err := r.db.WithContext(ctx).Where(column+" = ?", value).Delete(&CartItemDTO{}).Error; err != nil {
		return errs.NewPersistenceError("cart.clear", err)
	}
	return nil
}

func ownerCondition(principal kernel.Principal) (column string, value any) {
	if userID, ok := principal.UserID(); ok {
		return "user_id", userID
	}
	sessionID, _ := principal.GuestSessionID()
	return "session_id", sessionID
}
