package ports

import (
	"context"

	"ecshop/internal/core/domain/model/user"
)

// UserRepository reads registered-customer snapshots: notification
// recipients and role checks. Account management is a collaborator concern.
type UserRepository interface {
	// Get retrieves a user by id. Returns errs.NotFoundError when missing.
	Get(ctx context.Context, id int64) (*user.User, error)
}
