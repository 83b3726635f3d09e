package kernel

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"ecshop/internal/pkg/guard"
)

var (
	// ErrOrderNumberIsNotConstructed is returned when an OrderNumber was not
	// created through GenerateOrderNumber or OrderNumberFromString.
	ErrOrderNumberIsNotConstructed = errors.New(
		"OrderNumber must be created via GenerateOrderNumber or OrderNumberFromString",
	)

	// ErrOrderNumberIsInvalid is returned for strings that do not match the
	// ORD-YYYYMMDD-NNNN format.
	ErrOrderNumberIsInvalid = errors.New("order number must match ORD-YYYYMMDD-NNNN")
)

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{8}-\d{4}$`)

// OrderNumber is the externally visible, human-readable order identifier.
// Uniqueness is enforced by the storage layer; callers regenerate on a
// collision, which is rare (9999 suffixes per day) but possible.
type OrderNumber struct {
	value string

	guard guard.ConstructorGuard
}

// GenerateOrderNumber produces a candidate order number for the given day
// with a random 4-digit suffix. The result is not guaranteed unique; the
// creation pipeline retries on a storage-level collision.
func GenerateOrderNumber(now time.Time) OrderNumber {
	return OrderNumber{
		value: fmt.Sprintf("ORD-%s-%04d", now.Format("20060102"), rand.IntN(9999)+1),
		guard: guard.NewConstructorGuard(),
	}
}

// OrderNumberFromString reconstructs an order number from persistence or input.
func OrderNumberFromString(s string) (OrderNumber, error) {
	if !orderNumberPattern.MatchString(s) {
		return OrderNumber{}, fmt.Errorf("%w: %q", ErrOrderNumberIsInvalid, s)
	}

	return OrderNumber{
		value: s,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the order number was created through a factory function.
func (n OrderNumber) Validate() error {
	return n.guard.Validate(ErrOrderNumberIsNotConstructed)
}

// String returns the order number in its canonical textual form.
func (n OrderNumber) String() string {
	return n.value
}

// IsEqual compares two order numbers by value.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.value == other.value
}
