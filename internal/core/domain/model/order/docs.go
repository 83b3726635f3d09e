// Package order contains the order aggregate and its satellite entities.
//
// Order is the aggregate root: a priced, addressed purchase request derived
// from a cart, owned by exactly one principal and tracked through a status
// lifecycle (pending, confirmed, processing, shipped, delivered, cancelled,
// refunded). Orders are created once by the checkout pipeline and afterwards
// mutated only through status transitions; they are never hard-deleted.
//
// Satellite entities:
//
//   - Item: a line item snapshotting product identity and price at order
//     time, immutable once written. Historical orders stay intact even when
//     the live catalog changes.
//   - StatusChange: one append-only audit row per transition, including the
//     initial pending entry, attributed to a user, an admin, or the system.
//   - Notification: a scheduled customer message (confirmation, status
//     update, shipping, delivery). The core only creates pending rows;
//     an external worker delivers them and marks them sent or failed.
//
// ShippingMethod carries the static rate table (cost and delivery-day
// estimate per method), and Totals holds the monetary breakdown computed by
// the pricing engine. The Totals invariant is
// total = (subtotal - couponDiscount) + taxAmount + shippingCost.
package order
