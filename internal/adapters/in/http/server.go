// Package http is the inbound HTTP adapter. It translates echo requests into
// commands and queries and domain errors into HTTP statuses; no business
// rules live here.
package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP surface for order fulfillment.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler        commands.PlaceOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	settleOrderHandler       commands.SettleOrderCommandHandler
	submitFeedbackHandler    commands.SubmitFeedbackCommandHandler

	// Query handlers
	getRetailerOrdersHandler  queries.GetRetailerOrdersQueryHandler
	getFarmerOrdersHandler    queries.GetFarmerOrdersQueryHandler
	getProductFeedbackHandler queries.GetProductFeedbackQueryHandler
	getOrderStatusHandler     queries.GetOrderStatusQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	settleOrderHandler commands.SettleOrderCommandHandler,
	submitFeedbackHandler commands.SubmitFeedbackCommandHandler,
	getRetailerOrdersHandler queries.GetRetailerOrdersQueryHandler,
	getFarmerOrdersHandler queries.GetFarmerOrdersQueryHandler,
	getProductFeedbackHandler queries.GetProductFeedbackQueryHandler,
	getOrderStatusHandler queries.GetOrderStatusQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:         placeOrderHandler,
		updateOrderStatusHandler:  updateOrderStatusHandler,
		settleOrderHandler:        settleOrderHandler,
		submitFeedbackHandler:     submitFeedbackHandler,
		getRetailerOrdersHandler:  getRetailerOrdersHandler,
		getFarmerOrdersHandler:    getFarmerOrdersHandler,
		getProductFeedbackHandler: getProductFeedbackHandler,
		getOrderStatusHandler:     getOrderStatusHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.PlaceOrder)
	v1.PUT("/orders/:id/status", s.UpdateOrderStatus)
	v1.PUT("/orders/:id/settle", s.SettleOrder)
	v1.GET("/orders/:id/status", s.GetOrderStatus)
	v1.GET("/orders/retailer/:id", s.GetRetailerOrders)
	v1.GET("/orders/farmer/:id", s.GetFarmerOrders)
	v1.POST("/feedback", s.SubmitFeedback)
	v1.GET("/feedback/product/:id", s.GetProductFeedback)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// PlaceOrder handles POST /api/v1/orders - places a new order.
// Responds 201 with the order body including the delivery PIN, which the
// buyer presents at handover.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	retailerID, err := kernel.UUIDFromString(req.RetailerID)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]commands.PlaceOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, idErr := kernel.UUIDFromString(item.ProductID)
		if idErr != nil {
			return writeError(ctx, idErr)
		}
		items = append(items, commands.PlaceOrderItem{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(),
		retailerID,
		items,
		req.ShippingAddress,
		req.ContactNumber,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	placed, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(placed, true))
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status - drives the order
// lifecycle. DELIVERED requires the delivery PIN in the body.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req UpdateOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	actor, err := s.actorFrom(req.ActorID, req.ActorRole)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, req.Status, actor, req.Pin, req.PickupAddress)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated, false))
}

// SettleOrder handles PUT /api/v1/orders/:id/settle - completes a delivered
// order and releases the farmer's share.
func (s *Server) SettleOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req SettleOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	actor, err := s.actorFrom(req.ActorID, req.ActorRole)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSettleOrderCommand(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	settled, err := s.settleOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(settled, false))
}

// SubmitFeedback handles POST /api/v1/feedback - submits or revises the
// review for an order.
func (s *Server) SubmitFeedback(ctx echo.Context) error {
	var req SubmitFeedbackRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return writeError(ctx, err)
	}

	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return writeError(ctx, err)
	}

	retailerID, err := kernel.UUIDFromString(req.RetailerID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSubmitFeedbackCommand(orderID, productID, retailerID, req.Rating, req.Comment)
	if err != nil {
		return writeError(ctx, err)
	}

	stored, err := s.submitFeedbackHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, FeedbackResponse{
		ID:         stored.ID().String(),
		OrderID:    stored.OrderID().String(),
		ProductID:  stored.ProductID().String(),
		RetailerID: stored.RetailerID().String(),
		Rating:     stored.Rating(),
		Comment:    stored.Comment(),
		CreatedAt:  stored.CreatedAt(),
	})
}

// GetOrderStatus handles GET /api/v1/orders/:id/status - cached status lookup.
func (s *Server) GetOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderStatusQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.getOrderStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderStatusResponse{
		OrderID: result.OrderID.String(),
		Status:  result.Status,
	})
}

// GetRetailerOrders handles GET /api/v1/orders/retailer/:id - order history.
func (s *Server) GetRetailerOrders(ctx echo.Context) error {
	retailerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetRetailerOrdersQuery(retailerID)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getRetailerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ordersToResponse(orders))
}

// GetFarmerOrders handles GET /api/v1/orders/farmer/:id - incoming orders.
func (s *Server) GetFarmerOrders(ctx echo.Context) error {
	farmerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetFarmerOrdersQuery(farmerID)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getFarmerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ordersToResponse(orders))
}

// GetProductFeedback handles GET /api/v1/feedback/product/:id - all reviews
// for a product.
func (s *Server) GetProductFeedback(ctx echo.Context) error {
	productID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetProductFeedbackQuery(productID)
	if err != nil {
		return writeError(ctx, err)
	}

	reviews, err := s.getProductFeedbackHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]FeedbackResponse, 0, len(reviews))
	for _, review := range reviews {
		response = append(response, FeedbackResponse{
			ID:         review.ID.String(),
			OrderID:    review.OrderID.String(),
			RetailerID: review.RetailerID.String(),
			ProductID:  productID.String(),
			Rating:     review.Rating,
			Comment:    review.Comment,
			CreatedAt:  review.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// actorFrom builds the acting identity from request fields.
func (s *Server) actorFrom(id, role string) (services.Actor, error) {
	actorID, err := kernel.UUIDFromString(id)
	if err != nil {
		return services.Actor{}, err
	}

	parsedRole, err := services.RoleFromString(role)
	if err != nil {
		return services.Actor{}, err
	}

	return services.NewActor(actorID, parsedRole)
}

// ordersToResponse maps the order read model to response bodies. Read
// endpoints never disclose delivery PINs.
func ordersToResponse(orders []queries.OrderResponse) []OrderResponse {
	response := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		items := make([]OrderItemResponse, 0, len(o.Items))
		for _, item := range o.Items {
			items = append(items, OrderItemResponse{
				ProductID:       item.ProductID.String(),
				Quantity:        item.Quantity,
				PriceAtPurchase: item.PriceAtPurchase.String(),
			})
		}

		response = append(response, OrderResponse{
			ID:              o.ID.String(),
			RetailerID:      o.RetailerID.String(),
			FarmerID:        o.FarmerID.String(),
			Status:          o.Status,
			TotalAmount:     o.TotalAmount.String(),
			ShippingAddress: o.ShippingAddress,
			PickupAddress:   o.PickupAddress,
			ContactNumber:   o.ContactNumber,
			CreatedAt:       o.CreatedAt,
			Items:           items,
		})
	}
	return response
}
