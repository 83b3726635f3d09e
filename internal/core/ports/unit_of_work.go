package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Every multi-step
// mutation (order creation, status update, cancellation) runs inside one
// unit of work: any failure triggers a full rollback so partial orders or
// partial stock decrements are never observable.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an order repository bound to the current transaction.
	OrderRepository() OrderRepository

	// InventoryRepository returns a stock ledger bound to the current transaction.
	InventoryRepository() InventoryRepository

	// CartRepository returns a cart boundary bound to the current transaction.
	CartRepository() CartRepository

	// NotificationRepository returns a notification store bound to the current transaction.
	NotificationRepository() NotificationRepository

	// UserRepository returns a user reader bound to the current transaction.
	UserRepository() UserRepository
}
