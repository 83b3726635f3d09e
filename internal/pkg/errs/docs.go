// Package errs provides standardized error types for the shop backend.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package defines one type per failure class in the API contract:
//   - ValidationError: missing or malformed input (HTTP 400)
//   - ConflictError: business-rule violation against current state (HTTP 400)
//   - NotFoundError: a referenced object does not exist (HTTP 404)
//   - AuthorizationError: ownership or role mismatch (HTTP 403)
//   - PersistenceError: wrapped storage failure (HTTP 500)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict) usable with errors.Is
//   - A struct carrying a machine-readable Code plus human-readable detail
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() for error-chain support
//
// Codes are stable strings (EMPTY_CART, INSUFFICIENT_STOCK, ...) that the
// HTTP adapter passes to clients unchanged, while PersistenceError detail is
// logged server-side only and never leaks raw storage text to clients.
package errs
