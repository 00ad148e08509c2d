package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// Notification categories understood by the downstream notification service.
const (
	NotificationCategoryOrder   = "ORDER"
	NotificationCategoryPayment = "PAYMENT"
	NotificationCategoryAdmin   = "ADMIN"
)

// NotificationDispatcher is the fire-and-forget side channel for user
// notifications (email, in-app). The core only hands messages over; it never
// blocks on delivery, never retries, and a dispatch failure must not fail the
// calling business transaction. Implementations log and discard failures.
type NotificationDispatcher interface {
	Notify(ctx context.Context, userID kernel.UUID, title, message, category string)
}
