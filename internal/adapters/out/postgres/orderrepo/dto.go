// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status column stores the wire representation (e.g. "READY_FOR_PICKUP")
// so that raw read queries and the cache share one vocabulary. The delivery
// PIN column is nullable: it is cleared once the PIN has been consumed by a
// successful delivery.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	RetailerID      uuid.UUID `gorm:"type:uuid;index"`
	FarmerID        uuid.UUID `gorm:"type:uuid;index"`
	Status          string    `gorm:"type:varchar(32);index"`
	TotalAmount     decimal.Decimal
	DeliveryPin     *string `gorm:"type:char(4)"`
	ShippingAddress string  `gorm:"type:text"`
	PickupAddress   string  `gorm:"type:text"`
	ContactNumber   string  `gorm:"type:varchar(32)"`
	CreatedAt       time.Time
	Items           []OrderItemDTO `gorm:"foreignKey:OrderID"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one order line. Lines are immutable after
// placement; the price column freezes the product price at purchase time.
type OrderItemDTO struct {
	OrderID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity        int
	PriceAtPurchase decimal.Decimal
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	var pin *string
	if p := o.DeliveryPin(); p != nil {
		raw := p.String()
		pin = &raw
	}

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:         o.ID().Bytes(),
			ProductID:       item.ProductID().Bytes(),
			Quantity:        item.Quantity(),
			PriceAtPurchase: item.PriceAtPurchase(),
		})
	}

	return OrderDTO{
		ID:              o.ID().Bytes(),
		RetailerID:      o.RetailerID().Bytes(),
		FarmerID:        o.FarmerID().Bytes(),
		Status:          o.Status().String(),
		TotalAmount:     o.TotalAmount(),
		DeliveryPin:     pin,
		ShippingAddress: o.ShippingAddress(),
		PickupAddress:   o.PickupAddress(),
		ContactNumber:   o.ContactNumber(),
		CreatedAt:       o.CreatedAt(),
		Items:           items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status, items and the stored
// PIN using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	retailerID, err := kernel.UUIDFromBytes(dto.RetailerID[:])
	if err != nil {
		return nil, err
	}

	farmerID, err := kernel.UUIDFromBytes(dto.FarmerID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var pin *order.DeliveryPin
	if dto.DeliveryPin != nil {
		parsed, pinErr := order.DeliveryPinFromString(*dto.DeliveryPin)
		if pinErr != nil {
			return nil, pinErr
		}
		pin = &parsed
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewItem(productID, itemDTO.Quantity, itemDTO.PriceAtPurchase)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		retailerID,
		farmerID,
		items,
		dto.TotalAmount,
		status,
		pin,
		dto.ShippingAddress,
		dto.PickupAddress,
		dto.ContactNumber,
		dto.CreatedAt,
	)
}
