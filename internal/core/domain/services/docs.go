// Package services provides domain services that implement business logic
// spanning multiple domain concepts without naturally belonging to a single
// aggregate root.
//
// The package includes:
//   - PricingEngine: a pure calculator turning cart lines, a shipping
//     method and an optional coupon into reconciled order totals
//
// Domain services here are side-effect free; persistence and orchestration
// live in the application layer.
package services
