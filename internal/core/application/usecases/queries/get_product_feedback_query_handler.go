package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetProductFeedbackQueryHandler retrieves all feedback rows for a product,
// newest first.
type GetProductFeedbackQueryHandler struct {
	db *gorm.DB
}

// NewGetProductFeedbackQueryHandler creates a handler for product feedback
// queries. Requires a GORM database connection for query execution.
func NewGetProductFeedbackQueryHandler(db *gorm.DB) GetProductFeedbackQueryHandler {
	return GetProductFeedbackQueryHandler{db: db}
}

// Handle executes the query and returns every review for the product.
func (h GetProductFeedbackQueryHandler) Handle(
	ctx context.Context,
	query GetProductFeedbackQuery,
) ([]FeedbackResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	reviews := make([]FeedbackResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			retailer_id,
			rating,
			comment,
			created_at
		FROM feedback
		WHERE product_id = ?
		ORDER BY created_at DESC, id
	`, query.ProductID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var review FeedbackResponse
		var id, orderID, retailerID uuid.UUID
		var rating int
		var comment string
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&orderID,
			&retailerID,
			&rating,
			&comment,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		if review.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if review.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if review.RetailerID, err = kernel.UUIDFromBytes(retailerID[:]); err != nil {
			return nil, err
		}

		review.Rating = rating
		review.Comment = comment
		review.CreatedAt = createdAt
		reviews = append(reviews, review)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}
