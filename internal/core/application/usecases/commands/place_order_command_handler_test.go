package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// recordingDispatcher captures notifications handed to the fire-and-forget
// channel so tests can assert on post-commit side effects.
type recordingDispatcher struct {
	notifications []recordedNotification
}

type recordedNotification struct {
	UserID   kernel.UUID
	Title    string
	Message  string
	Category string
}

func (d *recordingDispatcher) Notify(_ context.Context, userID kernel.UUID, title, message, category string) {
	d.notifications = append(d.notifications, recordedNotification{
		UserID:   userID,
		Title:    title,
		Message:  message,
		Category: category,
	})
}

type MockPlacementProductRepository struct{ mock.Mock }

func (m *MockPlacementProductRepository) Add(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPlacementProductRepository) Update(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPlacementProductRepository) Get(_ context.Context, _ kernel.UUID) (*product.Product, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockPlacementProductRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

type MockPlacementOrderRepository struct{ mock.Mock }

func (m *MockPlacementOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockPlacementOrderRepository) Update(_ context.Context, _ *order.Order) error { return nil }
func (m *MockPlacementOrderRepository) Get(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockPlacementOrderRepository) GetAllPendingBefore(_ context.Context, _ time.Time) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockPlacementUoW struct{ mock.Mock }

func (m *MockPlacementUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPlacementUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPlacementUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPlacementUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}
func (m *MockPlacementUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockPlacementUoWFactory struct{ mock.Mock }

func (m *MockPlacementUoWFactory) Create() commands.PlacementUoW {
	args := m.Called()
	return args.Get(0).(commands.PlacementUoW)
}

func makeCatalogProduct(t *testing.T, farmerID kernel.UUID, name string, price int64, stock int) *product.Product {
	t.Helper()

	p, err := product.NewProduct(kernel.NewUUID(), farmerID, name, "", "Vegetables", "kg",
		decimal.NewFromInt(price), stock)
	require.NoError(t, err)
	return p
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	farmerID := kernel.NewUUID()
	tomatoes := makeCatalogProduct(t, farmerID, "Tomatoes", 50, 10)
	honey := makeCatalogProduct(t, farmerID, "Honey", 100, 5)

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		[]commands.PlaceOrderItem{
			{ProductID: tomatoes.ID(), Quantity: 2},
			{ProductID: honey.ID(), Quantity: 1},
		},
		"12 Market Road", "+91 98765 43210")
	require.NoError(t, err)

	productRepo := new(MockPlacementProductRepository)
	orderRepo := new(MockPlacementOrderRepository)
	uow := new(MockPlacementUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		productRepo.On("GetForUpdate", ctx, tomatoes.ID()).Return(tomatoes, nil).Once(),
		productRepo.On("Update", ctx, tomatoes).Return(nil).Once(),
		productRepo.On("GetForUpdate", ctx, honey.ID()).Return(honey, nil).Once(),
		productRepo.On("Update", ctx, honey).Return(nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow).Once()
	dispatcher := new(recordingDispatcher)

	h := commands.NewPlaceOrderCommandHandler(factory, dispatcher)
	placed, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 8, tomatoes.Stock())
	assert.Equal(t, 4, honey.Stock())
	assert.True(t, placed.FarmerID().IsEqual(farmerID))
	assert.Equal(t, order.Pending, placed.Status())
	assert.True(t, placed.TotalAmount().Equal(decimal.NewFromInt(200)))
	require.NotNil(t, placed.DeliveryPin())

	require.Len(t, dispatcher.notifications, 1)
	assert.True(t, dispatcher.notifications[0].UserID.IsEqual(farmerID))
	assert.Equal(t, "New Order Received", dispatcher.notifications[0].Title)
	assert.Equal(t, ports.NotificationCategoryOrder, dispatcher.notifications[0].Category)

	productRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.PlaceOrderCommand{} // not constructed properly
	factory := new(MockPlacementUoWFactory)
	h := commands.NewPlaceOrderCommandHandler(factory, new(recordingDispatcher))
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestPlaceOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		[]commands.PlaceOrderItem{{ProductID: kernel.NewUUID(), Quantity: 1}},
		"12 Market Road", "+91 98765 43210")
	require.NoError(t, err)

	uow := new(MockPlacementUoW)
	factory := new(MockPlacementUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewPlaceOrderCommandHandler(factory, new(recordingDispatcher))
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestPlaceOrderCommandHandler_Handle_InsufficientStock(t *testing.T) {
	ctx := t.Context()
	farmerID := kernel.NewUUID()
	tomatoes := makeCatalogProduct(t, farmerID, "Tomatoes", 50, 10)
	honey := makeCatalogProduct(t, farmerID, "Honey", 100, 5)

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		[]commands.PlaceOrderItem{
			{ProductID: tomatoes.ID(), Quantity: 2},
			{ProductID: honey.ID(), Quantity: 6},
		},
		"12 Market Road", "+91 98765 43210")
	require.NoError(t, err)

	productRepo := new(MockPlacementProductRepository)
	uow := new(MockPlacementUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		uow.On("OrderRepository").Return(new(MockPlacementOrderRepository)).Once(),
		productRepo.On("GetForUpdate", ctx, tomatoes.ID()).Return(tomatoes, nil).Once(),
		productRepo.On("Update", ctx, tomatoes).Return(nil).Once(),
		productRepo.On("GetForUpdate", ctx, honey.ID()).Return(honey, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow).Once()
	dispatcher := new(recordingDispatcher)

	h := commands.NewPlaceOrderCommandHandler(factory, dispatcher)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, product.ErrInsufficientStock)
	assert.Equal(t, 5, honey.Stock())
	assert.Empty(t, dispatcher.notifications)
	uow.AssertNotCalled(t, "Commit", mock.Anything)

	productRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_ProductNotFound(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		[]commands.PlaceOrderItem{{ProductID: productID, Quantity: 1}},
		"12 Market Road", "+91 98765 43210")
	require.NoError(t, err)

	productRepo := new(MockPlacementProductRepository)
	uow := new(MockPlacementUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		uow.On("OrderRepository").Return(new(MockPlacementOrderRepository)).Once(),
		productRepo.On("GetForUpdate", ctx, productID).Return(nil, errors.New("product not found")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, new(recordingDispatcher))
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestPlaceOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	farmerID := kernel.NewUUID()
	tomatoes := makeCatalogProduct(t, farmerID, "Tomatoes", 50, 10)

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		[]commands.PlaceOrderItem{{ProductID: tomatoes.ID(), Quantity: 2}},
		"12 Market Road", "+91 98765 43210")
	require.NoError(t, err)

	productRepo := new(MockPlacementProductRepository)
	orderRepo := new(MockPlacementOrderRepository)
	uow := new(MockPlacementUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		productRepo.On("GetForUpdate", ctx, tomatoes.ID()).Return(tomatoes, nil).Once(),
		productRepo.On("Update", ctx, tomatoes).Return(nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow).Once()
	dispatcher := new(recordingDispatcher)

	h := commands.NewPlaceOrderCommandHandler(factory, dispatcher)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Empty(t, dispatcher.notifications)
}
