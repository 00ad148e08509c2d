package ports

import (
	"context"

	"marketplace/internal/core/domain/model/feedback"
	"marketplace/internal/core/domain/model/kernel"
)

// FeedbackRepository defines the persistence contract for feedback rows.
type FeedbackRepository interface {
	// Add persists a new feedback row.
	Add(ctx context.Context, aggregate *feedback.Feedback) error

	// Update persists changes to an existing feedback row (re-review).
	Update(ctx context.Context, aggregate *feedback.Feedback) error

	// GetByOrder retrieves the feedback row attached to an order, if any.
	// Returns an error unwrapping to errs.ErrObjectNotFound when none exists.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*feedback.Feedback, error)

	// GetAllByProduct retrieves every feedback row referencing a product.
	// Used for the full-scan recomputation of the product's rating fields.
	GetAllByProduct(ctx context.Context, productID kernel.UUID) ([]*feedback.Feedback, error)
}
