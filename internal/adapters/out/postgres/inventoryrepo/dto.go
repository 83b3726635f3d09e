// Package inventoryrepo implements the stock ledger over the products and
// inventory_movements tables. The product catalog itself is owned by a
// collaborator service; this package only moves stock and appends ledger
// rows.
package inventoryrepo

import (
	"time"

	"ecshop/internal/core/domain/model/product"
)

// ProductDTO represents the catalog row this ledger adjusts. Columns beyond
// stock are carried for the cart join and for test fixtures.
type ProductDTO struct {
	ID            int64   `gorm:"primaryKey;autoIncrement"`
	Name          string  `gorm:"size:255;not null"`
	SKU           string  `gorm:"size:64;uniqueIndex;not null"`
	Price         float64 `gorm:"not null"`
	StockQuantity int     `gorm:"not null"`
	ImageURL      *string `gorm:"size:512"`
	Status        string  `gorm:"size:20;index;not null;default:active"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for product rows.
func (ProductDTO) TableName() string {
	return "products"
}

// MovementDTO represents one append-only stock ledger row.
type MovementDTO struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	ProductID     int64  `gorm:"index;not null"`
	MovementType  string `gorm:"size:16;not null"`
	Quantity      int    `gorm:"not null"`
	PreviousStock int    `gorm:"not null"`
	NewStock      int    `gorm:"not null"`
	Reason        string `gorm:"size:255"`
	ReferenceType string `gorm:"size:16;not null"`
	ReferenceID   int64  `gorm:"index;not null"`
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the database table name for ledger rows.
func (MovementDTO) TableName() string {
	return "inventory_movements"
}

// movementFromDomain converts a ledger entry to its database representation.
func movementFromDomain(movement *product.Movement) MovementDTO {
	return MovementDTO{
		ID:            movement.ID(),
		ProductID:     movement.ProductID(),
		MovementType:  string(movement.Type()),
		Quantity:      movement.Quantity(),
		PreviousStock: movement.PreviousStock(),
		NewStock:      movement.NewStock(),
		Reason:        movement.Reason(),
		ReferenceType: string(movement.ReferenceType()),
		ReferenceID:   movement.ReferenceID(),
		CreatedAt:     movement.CreatedAt(),
	}
}
