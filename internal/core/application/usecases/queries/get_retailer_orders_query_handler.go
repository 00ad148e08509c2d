package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetRetailerOrdersQueryHandler retrieves a retailer's orders, newest first,
// with their line items attached.
type GetRetailerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetRetailerOrdersQueryHandler creates a handler for retailer order
// history queries. Requires a GORM database connection for query execution.
func NewGetRetailerOrdersQueryHandler(db *gorm.DB) GetRetailerOrdersQueryHandler {
	return GetRetailerOrdersQueryHandler{db: db}
}

// Handle executes the query and returns all orders placed by the retailer.
func (h GetRetailerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetRetailerOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return fetchOrdersBy(ctx, h.db, "retailer_id", query.RetailerID())
}

// fetchOrdersBy loads all orders matching one scoping column, newest first,
// then attaches line items in a second pass keyed by order ID.
func fetchOrdersBy(
	ctx context.Context,
	db *gorm.DB,
	column string,
	id kernel.UUID,
) ([]OrderResponse, error) {
	orders := make([]OrderResponse, 0)
	positions := make(map[uuid.UUID]int)

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			retailer_id,
			farmer_id,
			status,
			total_amount,
			shipping_address,
			pickup_address,
			contact_number,
			created_at
		FROM orders
		WHERE `+column+` = ?
		ORDER BY created_at DESC, id
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp OrderResponse
		var orderID, retailerID, farmerID uuid.UUID
		var status, shippingAddress, pickupAddress, contactNumber string
		var totalAmount decimal.Decimal
		var createdAt time.Time

		err = rows.Scan(
			&orderID,
			&retailerID,
			&farmerID,
			&status,
			&totalAmount,
			&shippingAddress,
			&pickupAddress,
			&contactNumber,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		if orderResp.ID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if orderResp.RetailerID, err = kernel.UUIDFromBytes(retailerID[:]); err != nil {
			return nil, err
		}
		if orderResp.FarmerID, err = kernel.UUIDFromBytes(farmerID[:]); err != nil {
			return nil, err
		}

		orderResp.Status = status
		orderResp.TotalAmount = totalAmount
		orderResp.ShippingAddress = shippingAddress
		orderResp.PickupAddress = pickupAddress
		orderResp.ContactNumber = contactNumber
		orderResp.CreatedAt = createdAt
		orderResp.Items = make([]OrderItemResponse, 0)

		positions[orderID] = len(orders)
		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := db.WithContext(ctx).Raw(`
		SELECT
			i.order_id,
			i.product_id,
			i.quantity,
			i.price_at_purchase
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE o.`+column+` = ?
		ORDER BY i.order_id, i.product_id
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item OrderItemResponse
		var orderID, productID uuid.UUID
		var quantity int
		var priceAtPurchase decimal.Decimal

		err = itemRows.Scan(
			&orderID,
			&productID,
			&quantity,
			&priceAtPurchase,
		)
		if err != nil {
			return nil, err
		}

		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		item.Quantity = quantity
		item.PriceAtPurchase = priceAtPurchase

		pos, ok := positions[orderID]
		if !ok {
			continue
		}
		orders[pos].Items = append(orders[pos].Items, item)
	}

	if err = itemRows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
