package queries

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderStatusQueryHandler answers order status lookups cache-first. On a
// cache miss the status is read from the database and written back to the
// cache. The cache is optional; with a nil cache every lookup hits the
// database.
type GetOrderStatusQueryHandler struct {
	db    *gorm.DB
	cache ports.OrderStatusCache
}

// NewGetOrderStatusQueryHandler creates a handler for order status lookups.
func NewGetOrderStatusQueryHandler(
	db *gorm.DB,
	cache ports.OrderStatusCache,
) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{db: db, cache: cache}
}

// Handle executes the status lookup.
// Returns an error unwrapping to errs.ErrObjectNotFound when the order does
// not exist.
func (h GetOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	if h.cache != nil {
		if status, ok := h.cache.Get(ctx, query.OrderID()); ok {
			return GetOrderStatusQueryResponse{
				OrderID: query.OrderID(),
				Status:  status.String(),
			}, nil
		}
	}

	var statusStr string

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			status
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	if err := row.Scan(&statusStr); err != nil {
		return GetOrderStatusQueryResponse{},
			errs.NewObjectNotFoundErrorWithCause("orderID", query.OrderID().String(), err)
	}

	status, err := order.StatusFromString(statusStr)
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	if h.cache != nil {
		h.cache.Set(ctx, query.OrderID(), status)
	}

	return GetOrderStatusQueryResponse{
		OrderID: query.OrderID(),
		Status:  status.String(),
	}, nil
}
