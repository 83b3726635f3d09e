package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"ecshop/internal/core/domain/model/order"
	"ecshop/internal/pkg/errs"

	"gorm.io/gorm"
)

// orderInsertSavepoint guards the insert inside the surrounding checkout
// transaction: a failed INSERT aborts a Postgres transaction, so the
// collision-retry loop needs a savepoint to roll back to.
const orderInsertSavepoint = "order_insert"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking modified aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new order with its items and backfills storage identities
// on the aggregate. A unique-constraint hit on the order number surfaces as
// errs.ErrOrderNumberTaken; the transaction stays usable for a retry.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	tx := r.db.WithContext(ctx)
	if err := tx.SavePoint(orderInsertSavepoint).Error; err != nil {
		return errs.NewPersistenceError("orders.add", err)
	}

	dto := fromDomain(aggregate)
	if err := tx.Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if rbErr := tx.RollbackTo(orderInsertSavepoint).Error; rbErr != nil {
				return errs.NewPersistenceError("orders.add", rbErr)
			}
			return fmt.Errorf("%w: %s", errs.ErrOrderNumberTaken, dto.OrderNumber)
		}
		return errs.NewPersistenceError("orders.add", err)
	}

	if err := aggregate.AssignIdentity(dto.ID); err != nil {
		return err
	}

	for _, item := range aggregate.Items() {
		itemDTO := itemFromDomain(dto.ID, item)
		if err := tx.Create(&itemDTO).Error; err != nil {
			return errs.NewPersistenceError("orders.add.items", err)
		}
		if err := item.AssignIdentity(itemDTO.ID, dto.ID); err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(dto.ID, aggregate)
	return nil
}

// Update persists lifecycle changes to an existing order. Items are
// immutable and never written here; the owner and totals never change
// after creation either.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "payment_status", "payment_method", "shipped_at", "delivered_at", "notes", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return errs.NewPersistenceError("orders.update", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFoundError(errs.CodeOrderNotFound, "order", dto.ID)
	}

	r.tracker.TrackAggregate(dto.ID, aggregate)
	return nil
}

// Get retrieves an order with its items by storage identity.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	if id <= 0 {
		return nil, errs.NewValidationError(errs.CodeInvalidOrderID, "order id must be a positive integer")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError(errs.CodeOrderNotFound, "order", id)
		}
		return nil, errs.NewPersistenceError("orders.get", err)
	}

	var itemDTOs []ItemDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&itemDTOs, "order_id = ?", id).Error; err != nil {
		return nil, errs.NewPersistenceError("orders.get.items", err)
	}

	return toDomain(dto, itemDTOs)
}

// AddStatusChange appends one history row. History is append-only.
func (r *GormOrderRepository) AddStatusChange(ctx context.Context, change *order.StatusChange) error {
	if err := change.Validate(); err != nil {
		return err
	}

	dto := historyFromDomain(change)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("orders.history.add", err)
	}

	return nil
}
