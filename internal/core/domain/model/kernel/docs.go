// Package kernel contains shared value objects used across the domain model.
//
// The kernel holds concepts that do not belong to a single aggregate:
//
//   - Principal: the owner of a cart or order, either a registered user or an
//     anonymous guest session. Exactly one identity is ever set.
//   - Actor: who performed a state change (a user, an admin, or the system),
//     recorded in the order status history.
//   - OrderNumber: the externally visible order identifier in the
//     ORD-YYYYMMDD-NNNN format.
//   - Address: an opaque structured address blob. The core stores it as JSON
//     and does not validate its internal schema beyond presence.
//
// All value objects are immutable after construction and validate their
// invariants in their constructors.
package kernel
