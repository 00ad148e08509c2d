package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderStatusCache is a best-effort read cache for order statuses. Writes
// happen after a successful status transition and must never fail the
// transition; reads fall back to the database on a miss.
type OrderStatusCache interface {
	// Set stores the status for an order. Failures are logged and discarded.
	Set(ctx context.Context, orderID kernel.UUID, status order.Status)

	// Get returns the cached status and whether it was present.
	Get(ctx context.Context, orderID kernel.UUID) (order.Status, bool)
}
