// Package guard provides the ConstructorGuard defensive-construction helper.
// Embedding a guard in a value object lets Validate detect structs that were
// created as zero values instead of through their designated constructor,
// which keeps domain invariants from being bypassed.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied and the object was not constructed properly.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as having passed through its constructor.
// A zero-value guard fails Validate, so structs embedding it cannot be used
// unless they were built by a constructor that called NewConstructorGuard.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
// Constructors embed the result into the object they build.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate reports whether the guarded object went through its constructor.
// Returns validationError (or ErrDefaultConstructorGuard when nil) for
// zero-value objects, nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
