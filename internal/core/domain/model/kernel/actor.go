package kernel

import "errors"

// ErrActorIDIsInvalid is returned for non-positive actor identifiers.
var ErrActorIDIsInvalid = errors.New("actor id must be greater than 0")

// Actor records who performed a state change on an order: a customer, an
// admin, or the system itself. The zero value is deliberately the system
// actor, so automated transitions need no construction ceremony.
type Actor struct {
	userID  *int64
	adminID *int64
}

// SystemActor returns the actor representing automated system changes.
func SystemActor() Actor {
	return Actor{}
}

// NewUserActor creates an actor for a customer-initiated change.
func NewUserActor(userID int64) (Actor, error) {
	if userID <= 0 {
		return Actor{}, ErrActorIDIsInvalid
	}
	return Actor{userID: &userID}, nil
}

// NewAdminActor creates an actor for an admin-initiated change.
func NewAdminActor(adminID int64) (Actor, error) {
	if adminID <= 0 {
		return Actor{}, ErrActorIDIsInvalid
	}
	return Actor{adminID: &adminID}, nil
}

// UserID returns the acting user id, or nil if the change was not made by a customer.
func (a Actor) UserID() *int64 {
	return a.userID
}

// AdminID returns the acting admin id, or nil if the change was not made by an admin.
func (a Actor) AdminID() *int64 {
	return a.adminID
}

// IsSystem reports whether the change was automated.
func (a Actor) IsSystem() bool {
	return a.userID == nil && a.adminID == nil
}
