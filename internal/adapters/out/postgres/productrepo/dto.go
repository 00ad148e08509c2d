// Package productrepo provides data transfer objects and mapping functions for product persistence.
// This package implements the repository pattern for the product domain aggregate, handling
// the conversion between domain entities and database representations.
package productrepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the database structure for persisting product aggregates.
// Monetary and rating columns use numeric to keep decimal precision; the
// derived rating fields are stored denormalized and rewritten on every
// feedback submission.
type ProductDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	FarmerID      uuid.UUID       `gorm:"type:uuid;index"`
	Name          string          `gorm:"type:varchar(255)"`
	Description   string          `gorm:"type:text"`
	Category      string          `gorm:"type:varchar(100)"`
	Unit          string          `gorm:"type:varchar(50)"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2)"`
	Stock         int
	AverageRating decimal.Decimal `gorm:"type:numeric(4,2)"`
	TotalReviews  int
}

// TableName specifies the database table name for product entities.
// Overrides GORM's default naming convention to use "products".
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product domain aggregate to its database representation.
func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:            p.ID().Bytes(),
		FarmerID:      p.FarmerID().Bytes(),
		Name:          p.Name(),
		Description:   p.Description(),
		Category:      p.Category(),
		Unit:          p.Unit(),
		Price:         p.Price(),
		Stock:         p.Stock(),
		AverageRating: p.AverageRating(),
		TotalReviews:  p.TotalReviews(),
	}
}

// toDomain converts a database DTO to a product domain aggregate.
// Reconstructs the complete aggregate including rating fields using RestoreProduct.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	farmerID, err := kernel.UUIDFromBytes(dto.FarmerID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(
		id,
		farmerID,
		dto.Name,
		dto.Description,
		dto.Category,
		dto.Unit,
		dto.Price,
		dto.Stock,
		dto.AverageRating,
		dto.TotalReviews,
	)
}
