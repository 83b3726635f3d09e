package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Stable machine-readable error codes reported to API clients.
const (
	CodeValidationError       = "VALIDATION_ERROR"
	CodeEmptyCart             = "EMPTY_CART"
	CodeInsufficientStock     = "INSUFFICIENT_STOCK"
	CodeInvalidShippingMethod = "INVALID_SHIPPING_METHOD"
	CodeUserOrSessionRequired = "USER_OR_SESSION_REQUIRED"
	CodeInvalidOrderID        = "INVALID_ORDER_ID"
	CodeInvalidStatus         = "INVALID_STATUS"
	CodeStatusUnchanged       = "STATUS_UNCHANGED"
	CodeCannotCancel          = "CANNOT_CANCEL"
	CodeOrderNotFound         = "ORDER_NOT_FOUND"
	CodeAccessDenied          = "ACCESS_DENIED"
	CodeDatabaseError         = "DATABASE_ERROR"
)

var (
	// ErrValidation marks missing or malformed request input.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks a business-rule violation against current state.
	ErrConflict = errors.New("conflict with current state")

	// ErrObjectNotFound marks a reference to an object that does not exist.
	ErrObjectNotFound = errors.New("object not found")

	// ErrAccessDenied marks an ownership or role mismatch.
	ErrAccessDenied = errors.New("access denied")

	// ErrPersistence marks an underlying storage failure.
	ErrPersistence = errors.New("persistence failure")

	// ErrOrderNumberTaken signals a unique-constraint hit on an order number.
	// The creation pipeline regenerates the number and retries on this error.
	ErrOrderNumberTaken = errors.New("order number already taken")
)

// ValidationError reports missing or malformed input.
type ValidationError struct {
	Code    string
	Message string
	Cause   error
}

// NewValidationError creates a validation error with a stable code.
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// NewValidationErrorWithCause creates a validation error wrapping a cause.
func NewValidationErrorWithCause(code, message string, cause error) *ValidationError {
	return &ValidationError{Code: code, Message: message, Cause: cause}
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", e.Code, sanitize(e.Message), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", e.Code, sanitize(e.Message))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ConflictError reports a business-rule violation, e.g. a stock shortage
// or a forbidden status transition.
type ConflictError struct {
	Code    string
	Message string
	Cause   error
}

// NewConflictError creates a conflict error with a stable code.
func NewConflictError(code, message string) *ConflictError {
	return &ConflictError{Code: code, Message: message}
}

// NewConflictErrorWithCause creates a conflict error wrapping a cause.
func NewConflictErrorWithCause(code, message string, cause error) *ConflictError {
	return &ConflictError{Code: code, Message: message, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", e.Code, sanitize(e.Message), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", e.Code, sanitize(e.Message))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NotFoundError reports a missing object by kind and identifier.
type NotFoundError struct {
	Code   string
	Object string
	ID     any
	Cause  error
}

// NewNotFoundError creates a not-found error for the given object kind and id.
func NewNotFoundError(code, object string, id any) *NotFoundError {
	return &NotFoundError{Code: code, Object: object, ID: id}
}

// NewNotFoundErrorWithCause creates a not-found error wrapping a cause.
func NewNotFoundErrorWithCause(code, object string, id any, cause error) *NotFoundError {
	return &NotFoundError{Code: code, Object: object, ID: id, Cause: cause}
}

func (e *NotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %v not found (cause: %s)", e.Code, e.Object, e.ID, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s %v not found", e.Code, e.Object, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// AuthorizationError reports an ownership or role mismatch.
type AuthorizationError struct {
	Code    string
	Message string
}

// NewAuthorizationError creates an authorization error.
func NewAuthorizationError(code, message string) *AuthorizationError {
	return &AuthorizationError{Code: code, Message: message}
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, sanitize(e.Message))
}

func (e *AuthorizationError) Unwrap() error {
	return ErrAccessDenied
}

// PersistenceError wraps a storage failure. Op names the attempted
// operation for server-side logging; clients only ever see the code.
type PersistenceError struct {
	Op    string
	Cause error
}

// NewPersistenceError wraps a storage failure raised during op.
func NewPersistenceError(op string, cause error) *PersistenceError {
	return &PersistenceError{Op: op, Cause: cause}
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s failed (cause: %s)", CodeDatabaseError, e.Op, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s failed", CodeDatabaseError, e.Op)
}

func (e *PersistenceError) Unwrap() error {
	return ErrPersistence
}

// sanitize collapses newlines so error text stays single-line in logs.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "\r", " ")
}
