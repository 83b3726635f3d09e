// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"ecshop/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler declares the narrowest unit of work it needs, so tests mock
// only the repositories the command actually touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// InventoryRepoFactory provides access to the stock ledger within a transaction.
	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	// CartRepoFactory provides access to the cart boundary within a transaction.
	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	// NotificationRepoFactory provides access to the notification store within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// UserRepoFactory provides access to the user reader within a transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// CheckoutUoW manages the order creation transaction: the cart is read,
	// the order and its history are written, stock is reserved, the cart is
	// cleared and a confirmation notification is scheduled, all atomically.
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		InventoryRepoFactory
		CartRepoFactory
		NotificationRepoFactory
		UserRepoFactory
	}

	// CheckoutUoWFactory creates new checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// LifecycleUoW manages status-transition transactions (updates and
	// cancellations): the order and its history are written, stock is
	// restored on cancellation and a status notification is scheduled.
	LifecycleUoW interface {
		TxManager
		OrderRepoFactory
		InventoryRepoFactory
		NotificationRepoFactory
		UserRepoFactory
	}

	// LifecycleUoWFactory creates new lifecycle unit of work instances.
	LifecycleUoWFactory interface {
		Create() LifecycleUoW
	}

	// NotificationUoW manages the notification dispatch transaction.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	// NotificationUoWFactory creates new notification unit of work instances.
	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
