// Package order provides the order aggregate and its delivery lifecycle for
// the marketplace. It implements the PIN-gated status state machine that
// governs an order from placement to settlement.
//
// The package includes:
//   - Order: the aggregate root holding line items, the derived total and the
//     lifecycle state
//   - Item: an order line with an immutable price-at-purchase snapshot
//   - Status: the lifecycle enumeration with its transition rules
//   - DeliveryPin: the 4-digit handover code
//
// Key business rules:
//   - orders carry at least one line item and a total derived from the lines
//   - intermediate milestones (ACCEPTED .. OUT_FOR_DELIVERY) may be set
//     directly; only DELIVERED (PIN match) and COMPLETED (settlement of a
//     delivered order) are guarded
//   - the operator path into OUT_FOR_DELIVERY regenerates the PIN; a PIN
//     consumed by a successful delivery is never reusable
//   - CANCELLED is reachable from any non-terminal state
package order
