// Package feedbackrepo provides data transfer objects and mapping functions for feedback persistence.
package feedbackrepo

import (
	"time"

	"marketplace/internal/core/domain/model/feedback"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// FeedbackDTO represents the database structure for persisting feedback rows.
// The unique index on order_id enforces at most one review per order; repeat
// submissions update the existing row.
type FeedbackDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	ProductID  uuid.UUID `gorm:"type:uuid;index"`
	RetailerID uuid.UUID `gorm:"type:uuid;index"`
	Rating     int
	Comment    string `gorm:"type:text"`
	CreatedAt  time.Time
}

// TableName specifies the database table name for feedback entities.
func (FeedbackDTO) TableName() string {
	return "feedback"
}

// fromDomain converts a feedback entity to its database representation.
func fromDomain(f *feedback.Feedback) FeedbackDTO {
	return FeedbackDTO{
		ID:         f.ID().Bytes(),
		OrderID:    f.OrderID().Bytes(),
		ProductID:  f.ProductID().Bytes(),
		RetailerID: f.RetailerID().Bytes(),
		Rating:     f.Rating(),
		Comment:    f.Comment(),
		CreatedAt:  f.CreatedAt(),
	}
}

// toDomain converts a database DTO to a feedback entity using RestoreFeedback.
func toDomain(dto FeedbackDTO) (*feedback.Feedback, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	retailerID, err := kernel.UUIDFromBytes(dto.RetailerID[:])
	if err != nil {
		return nil, err
	}

	return feedback.RestoreFeedback(
		id,
		orderID,
		productID,
		retailerID,
		dto.Rating,
		dto.Comment,
		dto.CreatedAt,
	)
}
