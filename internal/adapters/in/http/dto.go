package http

import (
	"time"

	"marketplace/internal/core/domain/model/order"
)

// ErrorResponse is the uniform error body returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlaceOrderRequest is the body of POST /api/v1/orders.
type PlaceOrderRequest struct {
	RetailerID      string                  `json:"retailer_id"`
	Items           []PlaceOrderItemRequest `json:"items"`
	ShippingAddress string                  `json:"shipping_address"`
	ContactNumber   string                  `json:"contact_number"`
}

// PlaceOrderItemRequest is one requested order line.
type PlaceOrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// UpdateOrderStatusRequest is the body of PUT /api/v1/orders/:id/status.
// Pin is required only when requesting DELIVERED; pickup address may
// accompany READY_FOR_PICKUP.
type UpdateOrderStatusRequest struct {
	Status        string `json:"status"`
	Pin           string `json:"pin,omitempty"`
	PickupAddress string `json:"pickup_address,omitempty"`
	ActorID       string `json:"actor_id"`
	ActorRole     string `json:"actor_role"`
}

// SettleOrderRequest is the body of PUT /api/v1/orders/:id/settle.
type SettleOrderRequest struct {
	ActorID   string `json:"actor_id"`
	ActorRole string `json:"actor_role"`
}

// SubmitFeedbackRequest is the body of POST /api/v1/feedback.
type SubmitFeedbackRequest struct {
	OrderID    string `json:"order_id"`
	ProductID  string `json:"product_id"`
	RetailerID string `json:"retailer_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
}

// OrderItemResponse is one order line in an order body.
type OrderItemResponse struct {
	ProductID       string `json:"product_id"`
	Quantity        int    `json:"quantity"`
	PriceAtPurchase string `json:"price_at_purchase"`
}

// OrderResponse is the order body returned by the write endpoints. The
// delivery PIN is included only in the placement response, where it is
// disclosed to the buyer.
type OrderResponse struct {
	ID              string              `json:"id"`
	RetailerID      string              `json:"retailer_id"`
	FarmerID        string              `json:"farmer_id"`
	Status          string              `json:"status"`
	TotalAmount     string              `json:"total_amount"`
	DeliveryPin     string              `json:"delivery_pin,omitempty"`
	ShippingAddress string              `json:"shipping_address"`
	PickupAddress   string              `json:"pickup_address,omitempty"`
	ContactNumber   string              `json:"contact_number"`
	CreatedAt       time.Time           `json:"created_at"`
	Items           []OrderItemResponse `json:"items"`
}

// OrderStatusResponse is the body of GET /api/v1/orders/:id/status.
type OrderStatusResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// FeedbackResponse is one review in the feedback endpoints.
type FeedbackResponse struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	ProductID  string    `json:"product_id"`
	RetailerID string    `json:"retailer_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// orderToResponse maps an order aggregate to its response body.
// includePin controls delivery PIN disclosure.
func orderToResponse(o *order.Order, includePin bool) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemResponse{
			ProductID:       item.ProductID().String(),
			Quantity:        item.Quantity(),
			PriceAtPurchase: item.PriceAtPurchase().String(),
		})
	}

	resp := OrderResponse{
		ID:              o.ID().String(),
		RetailerID:      o.RetailerID().String(),
		FarmerID:        o.FarmerID().String(),
		Status:          o.Status().String(),
		TotalAmount:     o.TotalAmount().String(),
		ShippingAddress: o.ShippingAddress(),
		PickupAddress:   o.PickupAddress(),
		ContactNumber:   o.ContactNumber(),
		CreatedAt:       o.CreatedAt(),
		Items:           items,
	}

	if includePin && o.DeliveryPin() != nil {
		resp.DeliveryPin = o.DeliveryPin().String()
	}

	return resp
}
