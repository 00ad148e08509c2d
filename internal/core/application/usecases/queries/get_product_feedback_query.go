package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetProductFeedbackQueryIsNotConstructed = errors.New(
		"GetProductFeedbackQuery must be created via NewGetProductFeedbackQuery constructor",
	)
)

// GetProductFeedbackQuery retrieves all feedback left for one product.
//
// Example:
//
//	query, err := NewGetProductFeedbackQuery(productID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetProductFeedbackQueryHandler(db)
//
//	reviews, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get product feedback: %w", err)
//	}
type GetProductFeedbackQuery struct {
	productID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetProductFeedbackQuery creates a query scoped to a single product.
func NewGetProductFeedbackQuery(productID kernel.UUID) (GetProductFeedbackQuery, error) {
	if err := productID.Validate(); err != nil {
		return GetProductFeedbackQuery{}, errs.NewValueIsRequiredError("productID")
	}

	return GetProductFeedbackQuery{
		productID: productID,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// ProductID returns the product whose feedback is requested.
func (q GetProductFeedbackQuery) ProductID() kernel.UUID {
	return q.productID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetProductFeedbackQueryIsNotConstructed if validation fails.
func (q GetProductFeedbackQuery) Validate() error {
	return q.guard.Validate(ErrGetProductFeedbackQueryIsNotConstructed)
}

// FeedbackResponse represents one review in the product feedback read model.
type FeedbackResponse struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	RetailerID kernel.UUID
	Rating     int
	Comment    string
	CreatedAt  time.Time
}
