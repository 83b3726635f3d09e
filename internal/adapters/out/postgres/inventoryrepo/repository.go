package inventoryrepo

import (
	"context"
	"fmt"
	"time"

	"ecshop/internal/core/domain/model/product"
	"ecshop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInventoryRepository implements ports.InventoryRepository using GORM.
//
// The decrement is the concurrency-control point for stock: a single
// conditional UPDATE that only matches when enough stock remains. Two
// checkouts racing for the last unit serialize on the row lock, and the
// loser's UPDATE matches zero rows.
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// Decrement atomically reserves quantity units of the product and appends
// an "out" ledger row. Returns INSUFFICIENT_STOCK without any state change
// when live stock is below the requested quantity.
func (r *GormInventoryRepository) Decrement(ctx context.Context, productID int64, quantity int, reason string, orderID int64) error {
	result := r.db.WithContext(ctx).Model(&ProductDTO{}).
		Where("id = ? AND stock_quantity >= ?", productID, quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return errs.NewPersistenceError("inventory.decrement", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError(
			errs.CodeInsufficientStock,
			fmt.Sprintf("insufficient stock for product %d (requested: %d)", productID, quantity),
		)
	}

	newStock, err := r.currentStock(ctx, productID)
	if err != nil {
		return err
	}

	movement, err := product.NewOutMovement(
		productID, quantity, newStock+quantity, newStock,
		reason, product.ReferenceOrder, orderID, time.Now(),
	)
	if err != nil {
		return err
	}

	return r.appendMovement(ctx, movement)
}

// Restore returns quantity units to the product's stock and appends an "in"
// ledger row referencing the cancelled order.
func (r *GormInventoryRepository) Restore(ctx context.Context, productID int64, quantity int, reason string, orderID int64) error {
	result := r.db.WithContext(ctx).Model(&ProductDTO{}).
		Where("id = ?", productID).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", quantity))
	if result.Error != nil {
		return errs.NewPersistenceError("inventory.restore", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFoundError(errs.CodeDatabaseError, "product", productID)
	}

	newStock, err := r.currentStock(ctx, productID)
	if err != nil {
		return err
	}

	movement, err := product.NewInMovement(
		productID, quantity, newStock-quantity, newStock,
		reason, product.ReferenceReturn, orderID, time.Now(),
	)
	if err != nil {
		return err
	}

	return r.appendMovement(ctx, movement)
}

func (r *GormInventoryRepository) currentStock(ctx context.Context, productID int64) (int, error) {
	var stock int
	err := r.db.WithContext(ctx).Model(&ProductDTO{}).
		Where("id = ?", productID).
		Pluck("stock_quantity", &stock).Error
	if err != nil {
		return 0, errs.NewPersistenceError("inventory.stock", err)
	}
	return stock, nil
}

func (r *GormInventoryRepository) appendMovement(ctx context.Context, movement *product.Movement) error {
	dto := movementFromDomain(movement)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("inventory.movement", err)
	}
	return nil
}
