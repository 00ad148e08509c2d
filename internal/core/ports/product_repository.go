package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for product aggregates.
type ProductRepository interface {
	// Add persists a new product aggregate to storage.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update persists changes to an existing product aggregate.
	Update(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetForUpdate retrieves a product holding a row-level exclusive lock for
	// the duration of the surrounding transaction. Used by order placement so
	// that concurrent stock check-and-decrement operations against the same
	// product serialize correctly.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error)
}
