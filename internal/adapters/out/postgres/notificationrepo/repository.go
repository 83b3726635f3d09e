// Package notificationrepo persists scheduled order notifications.
package notificationrepo

import (
	"context"
	"time"

	"ecshop/internal/core/domain/model/order"
	"ecshop/internal/pkg/errs"

	"gorm.io/gorm"
)

// NotificationDTO represents one scheduled notification row. Subject and
// content are rendered at scheduling time.
type NotificationDTO struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	OrderID   int64  `gorm:"index;not null"`
	Type      string `gorm:"size:20;not null"`
	Method    string `gorm:"size:10;not null"`
	Recipient string `gorm:"size:255;not null"`
	Subject   string `gorm:"size:255;not null"`
	Content   string `gorm:"not null"`
	Status    string `gorm:"size:10;index;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for notification rows.
func (NotificationDTO) TableName() string {
	return "order_notifications"
}

// GormNotificationRepository implements ports.NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Add persists a newly scheduled notification and backfills its identity.
func (r *GormNotificationRepository) Add(ctx context.Context, notification *order.Notification) error {
	if err := notification.Validate(); err != nil {
		return err
	}

	dto := fromDomain(notification)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("notifications.add", err)
	}

	notification.AssignIdentity(dto.ID)
	return nil
}

// ListPending returns up to limit pending notifications, oldest first.
func (r *GormNotificationRepository) ListPending(ctx context.Context, limit int) ([]*order.Notification, error) {
	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", string(order.NotificationPending)).
		Order("created_at").Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceError("notifications.pending", err)
	}

	notifications := make([]*order.Notification, 0, len(dtos))
	for _, dto := range dtos {
		notification, restoreErr := toDomain(dto)
		if restoreErr != nil {
			return nil, restoreErr
		}
		notifications = append(notifications, notification)
	}

	return notifications, nil
}

// Update persists a delivery-state change.
func (r *GormNotificationRepository) Update(ctx context.Context, notification *order.Notification) error {
	if err := notification.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("id = ?", notification.ID()).
		Update("status", string(notification.Status()))
	if result.Error != nil {
		return errs.NewPersistenceError("notifications.update", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFoundError(errs.CodeDatabaseError, "notification", notification.ID())
	}

	return nil
}

func fromDomain(notification *order.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        notification.ID(),
		OrderID:   notification.OrderID(),
		Type:      string(notification.Type()),
		Method:    string(notification.Method()),
		Recipient: notification.Recipient(),
		Subject:   notification.Subject(),
		Content:   notification.Content(),
		Status:    string(notification.Status()),
		CreatedAt: notification.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*order.Notification, error) {
	return order.RestoreNotification(
		dto.ID,
		dto.OrderID,
		order.NotificationType(dto.Type),
		order.NotificationMethod(dto.Method),
		dto.Recipient,
		dto.Subject,
		dto.Content,
		order.NotificationStatus(dto.Status),
		dto.CreatedAt,
	)
}
