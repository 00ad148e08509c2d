package feedbackrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/feedback"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormFeedbackRepository implements FeedbackRepository using GORM.
type GormFeedbackRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormFeedbackRepository creates a new GORM feedback repository.
func NewGormFeedbackRepository(db *gorm.DB, tracker aggregateTracker) *GormFeedbackRepository {
	return &GormFeedbackRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new feedback row to the database.
func (r *GormFeedbackRepository) Add(ctx context.Context, aggregate *feedback.Feedback) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update rewrites the mutable columns of an existing feedback row.
func (r *GormFeedbackRepository) Update(ctx context.Context, aggregate *feedback.Feedback) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&FeedbackDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"rating":  dto.Rating,
			"comment": dto.Comment,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByOrder retrieves the feedback row attached to an order.
func (r *GormFeedbackRepository) GetByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*feedback.Feedback, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto FeedbackDTO
	err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("feedback", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByProduct retrieves every feedback row referencing a product.
func (r *GormFeedbackRepository) GetAllByProduct(
	ctx context.Context,
	productID kernel.UUID,
) ([]*feedback.Feedback, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	var dtos []FeedbackDTO
	err := r.db.WithContext(ctx).Find(&dtos, "product_id = ?", productID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	rows := make([]*feedback.Feedback, 0, len(dtos))
	for _, dto := range dtos {
		f, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		rows = append(rows, f)
	}

	return rows, nil
}
