package ports

import (
	"context"

	"ecshop/internal/core/domain/model/cart"
	"ecshop/internal/core/domain/model/kernel"
)

// CartRepository is the boundary to the cart collaborator. The checkout
// pipeline reads a principal's lines and clears them after a successful
// order; cart mutation APIs live outside this core.
type CartRepository interface {
	// GetLines returns the principal's cart joined with live product data,
	// filtered to currently active products, oldest line first.
	GetLines(ctx context.Context, principal kernel.Principal) ([]cart.Line, error)

	// Clear deletes every cart row belonging to the principal.
	Clear(ctx context.Context, principal kernel.Principal) error
}
