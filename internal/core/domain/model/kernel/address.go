package kernel

import (
	"encoding/json"
	"errors"

	"ecshop/internal/pkg/guard"
)

var (
	// ErrAddressIsNotConstructed is returned when an Address was not created
	// through NewAddress.
	ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress")

	// ErrAddressIsRequired is returned for empty address payloads.
	ErrAddressIsRequired = errors.New("address is required")

	// ErrAddressIsInvalid is returned for payloads that are not valid JSON.
	ErrAddressIsInvalid = errors.New("address must be valid JSON")
)

// Address is an opaque structured address. The core persists it as a JSON
// blob and does not interpret its fields; shape validation belongs to the
// front door.
type Address struct {
	raw json.RawMessage

	guard guard.ConstructorGuard
}

// NewAddress wraps a JSON address payload. The payload must be present and
// syntactically valid JSON; its internal schema is not checked.
func NewAddress(raw json.RawMessage) (Address, error) {
	if len(raw) == 0 {
		return Address{}, ErrAddressIsRequired
	}
	if !json.Valid(raw) {
		return Address{}, ErrAddressIsInvalid
	}

	return Address{
		raw:   raw,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Raw returns the address payload as stored.
func (a Address) Raw() json.RawMessage {
	return a.raw
}

// IsZero reports whether no address was provided.
func (a Address) IsZero() bool {
	return len(a.raw) == 0
}
