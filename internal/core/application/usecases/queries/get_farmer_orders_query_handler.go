package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetFarmerOrdersQueryHandler retrieves a farmer's incoming orders, newest
// first, with their line items attached.
type GetFarmerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetFarmerOrdersQueryHandler creates a handler for farmer order queries.
// Requires a GORM database connection for query execution.
func NewGetFarmerOrdersQueryHandler(db *gorm.DB) GetFarmerOrdersQueryHandler {
	return GetFarmerOrdersQueryHandler{db: db}
}

// Handle executes the query and returns all orders directed at the farmer.
func (h GetFarmerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetFarmerOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return fetchOrdersBy(ctx, h.db, "farmer_id", query.FarmerID())
}
