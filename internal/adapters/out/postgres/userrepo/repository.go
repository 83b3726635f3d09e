// Package userrepo reads registered-customer rows. Account management is a
// collaborator concern; this core only resolves notification recipients and
// roles.
package userrepo

import (
	"context"
	"errors"
	"time"

	"ecshop/internal/core/domain/model/user"
	"ecshop/internal/pkg/errs"

	"gorm.io/gorm"
)

// UserDTO represents the slice of the users table this core reads.
type UserDTO struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	FirstName string `gorm:"size:100"`
	LastName  string `gorm:"size:100"`
	Role      string `gorm:"size:20;not null;default:customer"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for user rows.
func (UserDTO) TableName() string {
	return "users"
}

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Get retrieves a user by id.
func (r *GormUserRepository) Get(ctx context.Context, id int64) (*user.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError(errs.CodeDatabaseError, "user", id)
		}
		return nil, errs.NewPersistenceError("users.get", err)
	}

	return &user.User{
		ID:        dto.ID,
		Email:     dto.Email,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Role:      dto.Role,
	}, nil
}
