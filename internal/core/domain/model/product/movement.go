// Package product contains the inventory side of the domain: the
// append-only stock movement ledger.
//
// Every change to a product's stock quantity appends exactly one Movement
// row recording the stock level before and after the change and what caused
// it. The ledger therefore doubles as an audit trail and as a complete
// reconstruction log: live stock always equals the initial stock plus the
// net of all movements.
package product

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMovementIsNotConstructed is returned when a Movement was not
	// created through a constructor.
	ErrMovementIsNotConstructed = errors.New("Movement must be created via its constructors")

	// ErrMovementProductIDIsInvalid is returned for non-positive product ids.
	ErrMovementProductIDIsInvalid = errors.New("movement product id must be greater than 0")

	// ErrMovementQuantityIsInvalid is returned for non-positive quantities.
	ErrMovementQuantityIsInvalid = errors.New("movement quantity must be greater than 0")

	// ErrMovementStockMismatch is returned when previous and new stock do
	// not differ by exactly the movement quantity in the movement direction.
	ErrMovementStockMismatch = errors.New("movement stock levels do not reconcile")

	// ErrMovementStockIsNegative is returned when a movement would record a
	// negative stock level.
	ErrMovementStockIsNegative = errors.New("movement stock levels must not be negative")
)

// MovementType is the direction of a stock change.
type MovementType string

const (
	// MovementIn increases stock (restock, cancellation restore, return).
	MovementIn MovementType = "in"

	// MovementOut decreases stock (order placement).
	MovementOut MovementType = "out"

	// MovementAdjustment corrects stock after a manual count.
	MovementAdjustment MovementType = "adjustment"
)

// ReferenceType names the kind of record a movement points back to.
type ReferenceType string

const (
	ReferenceOrder      ReferenceType = "order"
	ReferencePurchase   ReferenceType = "purchase"
	ReferenceAdjustment ReferenceType = "adjustment"
	ReferenceReturn     ReferenceType = "return"
)

// Movement is one immutable row in the stock ledger.
type Movement struct {
	id            int64
	productID     int64
	movementType  MovementType
	quantity      int
	previousStock int
	newStock      int
	reason        string
	referenceType ReferenceType
	referenceID   int64
	createdAt     time.Time

	isConstructed bool
}

// NewOutMovement records a stock decrease.
// Invariant: newStock = previousStock - quantity, and newStock >= 0.
func NewOutMovement(
	productID int64,
	quantity, previousStock, newStock int,
	reason string,
	referenceType ReferenceType,
	referenceID int64,
	now time.Time,
) (*Movement, error) {
	if newStock != previousStock-quantity {
		return nil, fmt.Errorf("%w: %d -> %d with out quantity %d",
			ErrMovementStockMismatch, previousStock, newStock, quantity)
	}
	return newMovement(productID, MovementOut, quantity, previousStock, newStock, reason, referenceType, referenceID, now)
}

// NewInMovement records a stock increase.
// Invariant: newStock = previousStock + quantity.
func NewInMovement(
	productID int64,
	quantity, previousStock, newStock int,
	reason string,
	referenceType ReferenceType,
	referenceID int64,
	now time.Time,
) (*Movement, error) {
	if newStock != previousStock+quantity {
		return nil, fmt.Errorf("%w: %d -> %d with in quantity %d",
			ErrMovementStockMismatch, previousStock, newStock, quantity)
	}
	return newMovement(productID, MovementIn, quantity, previousStock, newStock, reason, referenceType, referenceID, now)
}

func newMovement(
	productID int64,
	movementType MovementType,
	quantity, previousStock, newStock int,
	reason string,
	referenceType ReferenceType,
	referenceID int64,
	now time.Time,
) (*Movement, error) {
	if productID <= 0 {
		return nil, ErrMovementProductIDIsInvalid
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrMovementQuantityIsInvalid, quantity)
	}
	if previousStock < 0 || newStock < 0 {
		return nil, fmt.Errorf("%w: %d -> %d", ErrMovementStockIsNegative, previousStock, newStock)
	}

	return &Movement{
		productID:     productID,
		movementType:  movementType,
		quantity:      quantity,
		previousStock: previousStock,
		newStock:      newStock,
		reason:        reason,
		referenceType: referenceType,
		referenceID:   referenceID,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreMovement reconstructs a ledger row from persistence.
func RestoreMovement(
	id, productID int64,
	movementType MovementType,
	quantity, previousStock, newStock int,
	reason string,
	referenceType ReferenceType,
	referenceID int64,
	createdAt time.Time,
) (*Movement, error) {
	m, err := newMovement(productID, movementType, quantity, previousStock, newStock, reason, referenceType, referenceID, createdAt)
	if err != nil {
		return nil, err
	}
	m.id = id
	return m, nil
}

// Validate ensures the movement was created through a constructor.
func (m *Movement) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMovementIsNotConstructed
	}
	return nil
}

// ID returns the row's storage identity (0 until persisted).
func (m *Movement) ID() int64 { return m.id }

// ProductID returns the product the movement applies to.
func (m *Movement) ProductID() int64 { return m.productID }

// Type returns the movement direction.
func (m *Movement) Type() MovementType { return m.movementType }

// Quantity returns the absolute quantity moved.
func (m *Movement) Quantity() int { return m.quantity }

// PreviousStock returns the stock level before the movement.
func (m *Movement) PreviousStock() int { return m.previousStock }

// NewStock returns the stock level after the movement.
func (m *Movement) NewStock() int { return m.newStock }

// Reason returns the human-readable cause.
func (m *Movement) Reason() string { return m.reason }

// ReferenceType returns the kind of record that triggered the movement.
func (m *Movement) ReferenceType() ReferenceType { return m.referenceType }

// ReferenceID returns the id of the triggering record.
func (m *Movement) ReferenceID() int64 { return m.referenceID }

// CreatedAt returns when the movement was recorded.
func (m *Movement) CreatedAt() time.Time { return m.createdAt }
