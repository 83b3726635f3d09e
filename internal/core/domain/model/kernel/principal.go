package kernel

import (
	"errors"
	"fmt"

	"ecshop/internal/pkg/guard"

	"github.com/google/uuid"
)

var (
	// ErrPrincipalIsNotConstructed is returned when a Principal was not
	// created through one of its factory functions.
	ErrPrincipalIsNotConstructed = errors.New("Principal must be created via NewUserPrincipal or NewGuestPrincipal")

	// ErrUserIDIsInvalid is returned for non-positive user identifiers.
	ErrUserIDIsInvalid = errors.New("user id must be greater than 0")

	// ErrGuestSessionIDIsInvalid is returned when a guest session id is not
	// a valid UUID string.
	ErrGuestSessionIDIsInvalid = errors.New("guest session id must be a UUID")
)

// Principal identifies the owner of a cart or order. An order is owned by
// exactly one of: a registered user (by numeric id) or an anonymous guest
// (by opaque UUID session id). The constructors make any other combination
// unrepresentable.
type Principal struct {
	userID         *int64
	guestSessionID *string

	guard guard.ConstructorGuard
}

// NewUserPrincipal creates a principal for a registered user.
func NewUserPrincipal(userID int64) (Principal, error) {
	if userID <= 0 {
		return Principal{}, ErrUserIDIsInvalid
	}

	return Principal{
		userID: &userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// NewGuestPrincipal creates a principal for an anonymous guest session.
// Guest sessions are identified by UUID strings minted by the front door.
func NewGuestPrincipal(sessionID string) (Principal, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return Principal{}, fmt.Errorf("%w: %q", ErrGuestSessionIDIsInvalid, sessionID)
	}

	return Principal{
		guestSessionID: &sessionID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the principal was created through a factory function.
func (p Principal) Validate() error {
	return p.guard.Validate(ErrPrincipalIsNotConstructed)
}

// IsGuest reports whether the principal is an anonymous guest session.
func (p Principal) IsGuest() bool {
	return p.guestSessionID != nil
}

// UserID returns the registered user id and whether one is set.
func (p Principal) UserID() (int64, bool) {
	if p.userID == nil {
		return 0, false
	}
	return *p.userID, true
}

// GuestSessionID returns the guest session id and whether one is set.
func (p Principal) GuestSessionID() (string, bool) {
	if p.guestSessionID == nil {
		return "", false
	}
	return *p.guestSessionID, true
}

// IsEqual compares two principals by identity.
func (p Principal) IsEqual(other Principal) bool {
	if p.userID != nil && other.userID != nil {
		return *p.userID == *other.userID
	}
	if p.guestSessionID != nil && other.guestSessionID != nil {
		return *p.guestSessionID == *other.guestSessionID
	}
	return false
}

// String renders the principal for logs.
func (p Principal) String() string {
	if p.userID != nil {
		return fmt.Sprintf("user:%d", *p.userID)
	}
	if p.guestSessionID != nil {
		return fmt.Sprintf("guest:%s", *p.guestSessionID)
	}
	return "unknown"
}
