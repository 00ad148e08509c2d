package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/feedback"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// SubmitFeedbackCommandHandler upserts one feedback row per order and keeps
// the product's derived rating fields consistent with the full feedback set.
//
// The recomputation scans all feedback for the product rather than updating
// incrementally, so the stored average always equals the mean of the rows
// that exist. The upsert and the recompute run in one transaction so a
// concurrent submission cannot recompute from a stale feedback set.
type SubmitFeedbackCommandHandler struct {
	uowFactory FeedbackUoWFactory
}

// NewSubmitFeedbackCommandHandler creates a handler for feedback submission.
func NewSubmitFeedbackCommandHandler(uowFactory FeedbackUoWFactory) SubmitFeedbackCommandHandler {
	return SubmitFeedbackCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the feedback command and returns the stored row.
//
// The referenced order and product must exist and the reviewer must be the
// order's buyer; otherwise the operation aborts with NotFound before any
// write. If feedback already exists for the order its rating and comment are
// revised in place, so a product's review count never counts the same order
// twice.
func (h *SubmitFeedbackCommandHandler) Handle(
	ctx context.Context,
	cmd SubmitFeedbackCommand,
) (*feedback.Feedback, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	productRepo := uow.ProductRepository()
	feedbackRepo := uow.FeedbackRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if !o.RetailerID().IsEqual(cmd.RetailerID()) {
		return nil, errs.NewObjectNotFoundError("retailer", cmd.RetailerID().String())
	}

	p, err := productRepo.Get(ctx, cmd.ProductID())
	if err != nil {
		return nil, err
	}

	stored, err := feedbackRepo.GetByOrder(ctx, cmd.OrderID())
	switch {
	case err == nil:
		if err := stored.Revise(cmd.Rating(), cmd.Comment()); err != nil {
			return nil, err
		}
		if err := feedbackRepo.Update(ctx, stored); err != nil {
			return nil, err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		stored, err = feedback.NewFeedback(
			kernel.NewUUID(),
			cmd.OrderID(),
			cmd.ProductID(),
			cmd.RetailerID(),
			cmd.Rating(),
			cmd.Comment(),
		)
		if err != nil {
			return nil, err
		}
		if err := feedbackRepo.Add(ctx, stored); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	all, err := feedbackRepo.GetAllByProduct(ctx, cmd.ProductID())
	if err != nil {
		return nil, err
	}

	if err := p.UpdateRating(averageRatingOf(all), len(all)); err != nil {
		return nil, err
	}

	if err := productRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return stored, nil
}

// averageRatingOf returns the arithmetic mean of the ratings, or zero for an
// empty set.
func averageRatingOf(rows []*feedback.Feedback) decimal.Decimal {
	if len(rows) == 0 {
		return decimal.Zero
	}

	sum := int64(0)
	for _, row := range rows {
		sum += int64(row.Rating())
	}

	return decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(rows))))
}
