package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/feedback"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFeedbackRepository struct{ mock.Mock }

func (m *MockFeedbackRepository) Add(ctx context.Context, f *feedback.Feedback) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}
func (m *MockFeedbackRepository) Update(ctx context.Context, f *feedback.Feedback) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}
func (m *MockFeedbackRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*feedback.Feedback, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*feedback.Feedback), args.Error(1)
}
func (m *MockFeedbackRepository) GetAllByProduct(ctx context.Context, productID kernel.UUID) ([]*feedback.Feedback, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*feedback.Feedback), args.Error(1)
}

type MockFeedbackProductRepository struct{ mock.Mock }

func (m *MockFeedbackProductRepository) Add(_ context.Context, _ *product.Product) error {
	return errors.New("not implemented in mock")
}
func (m *MockFeedbackProductRepository) Update(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockFeedbackProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}
func (m *MockFeedbackProductRepository) GetForUpdate(_ context.Context, _ kernel.UUID) (*product.Product, error) {
	return nil, errors.New("not implemented in mock")
}

type MockFeedbackOrderRepository struct{ mock.Mock }

func (m *MockFeedbackOrderRepository) Add(_ context.Context, _ *order.Order) error {
	return errors.New("not implemented in mock")
}
func (m *MockFeedbackOrderRepository) Update(_ context.Context, _ *order.Order) error {
	return errors.New("not implemented in mock")
}
func (m *MockFeedbackOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockFeedbackOrderRepository) GetAllPendingBefore(_ context.Context, _ time.Time) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockFeedbackUoW struct{ mock.Mock }

func (m *MockFeedbackUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockFeedbackUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockFeedbackUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockFeedbackUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockFeedbackUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}
func (m *MockFeedbackUoW) FeedbackRepository() ports.FeedbackRepository {
	args := m.Called()
	return args.Get(0).(ports.FeedbackRepository)
}

type MockFeedbackUoWFactory struct{ mock.Mock }

func (m *MockFeedbackUoWFactory) Create() commands.FeedbackUoW {
	args := m.Called()
	return args.Get(0).(commands.FeedbackUoW)
}

type feedbackFixture struct {
	order    *order.Order
	product  *product.Product
	retailer kernel.UUID
}

func newFeedbackFixture(t *testing.T) feedbackFixture {
	t.Helper()

	farmerID := kernel.NewUUID()
	p := makeCatalogProduct(t, farmerID, "Tomatoes", 50, 10)

	item, err := order.NewItem(p.ID(), 2, p.Price())
	require.NoError(t, err)

	retailerID := kernel.NewUUID()
	o, err := order.RestoreOrder(kernel.NewUUID(), retailerID, farmerID,
		[]order.Item{item}, decimal.NewFromInt(100), order.Delivered, nil,
		"12 Market Road", "", "+91 98765 43210", time.Now().UTC())
	require.NoError(t, err)

	return feedbackFixture{order: o, product: p, retailer: retailerID}
}

func storedFeedback(t *testing.T, fix feedbackFixture, rating int) *feedback.Feedback {
	t.Helper()

	f, err := feedback.NewFeedback(kernel.NewUUID(), fix.order.ID(), fix.product.ID(),
		fix.retailer, rating, "earlier review")
	require.NoError(t, err)
	return f
}

func TestSubmitFeedbackCommandHandler_Handle_FirstSubmission(t *testing.T) {
	ctx := t.Context()
	fix := newFeedbackFixture(t)
	cmd, err := commands.NewSubmitFeedbackCommand(fix.order.ID(), fix.product.ID(),
		fix.retailer, 5, "Excellent produce")
	require.NoError(t, err)

	// ratings {5, 3, 4} average to 4.0
	allReviews := []*feedback.Feedback{
		storedFeedback(t, fix, 5),
		storedFeedback(t, newFeedbackFixture(t), 3),
		storedFeedback(t, newFeedbackFixture(t), 4),
	}

	orderRepo := new(MockFeedbackOrderRepository)
	productRepo := new(MockFeedbackProductRepository)
	feedbackRepo := new(MockFeedbackRepository)
	uow := new(MockFeedbackUoW)

	var added *feedback.Feedback
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		uow.On("FeedbackRepository").Return(feedbackRepo).Once(),
		orderRepo.On("Get", ctx, fix.order.ID()).Return(fix.order, nil).Once(),
		productRepo.On("Get", ctx, fix.product.ID()).Return(fix.product, nil).Once(),
		feedbackRepo.On("GetByOrder", ctx, fix.order.ID()).
			Return(nil, errs.NewObjectNotFoundError("feedback", fix.order.ID().String())).Once(),
		feedbackRepo.On("Add", ctx, mock.AnythingOfType("*feedback.Feedback")).
			Run(func(args mock.Arguments) {
				added = args.Get(1).(*feedback.Feedback)
			}).Return(nil).Once(),
		feedbackRepo.On("GetAllByProduct", ctx, fix.product.ID()).
			Return(allReviews, nil).Once(),
		productRepo.On("Update", ctx, fix.product).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFeedbackUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitFeedbackCommandHandler(factory)
	stored, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 5, stored.Rating())
	assert.Equal(t, "Excellent produce", stored.Comment())
	assert.True(t, stored.OrderID().IsEqual(fix.order.ID()))
	require.NotNil(t, added)
	assert.True(t, added.ID().IsEqual(stored.ID()))

	assert.True(t, fix.product.AverageRating().Equal(decimal.NewFromInt(4)))
	assert.Equal(t, 3, fix.product.TotalReviews())

	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	feedbackRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestSubmitFeedbackCommandHandler_Handle_RevisesExistingReview(t *testing.T) {
	ctx := t.Context()
	fix := newFeedbackFixture(t)
	existing := storedFeedback(t, fix, 5)
	cmd, err := commands.NewSubmitFeedbackCommand(fix.order.ID(), fix.product.ID(),
		fix.retailer, 2, "Second box arrived bruised")
	require.NoError(t, err)

	orderRepo := new(MockFeedbackOrderRepository)
	productRepo := new(MockFeedbackProductRepository)
	feedbackRepo := new(MockFeedbackRepository)
	uow := new(MockFeedbackUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		uow.On("FeedbackRepository").Return(feedbackRepo).Once(),
		orderRepo.On("Get", ctx, fix.order.ID()).Return(fix.order, nil).Once(),
		productRepo.On("Get", ctx, fix.product.ID()).Return(fix.product, nil).Once(),
		feedbackRepo.On("GetByOrder", ctx, fix.order.ID()).Return(existing, nil).Once(),
		feedbackRepo.On("Update", ctx, existing).Return(nil).Once(),
		feedbackRepo.On("GetAllByProduct", ctx, fix.product.ID()).
			Return([]*feedback.Feedback{existing}, nil).Once(),
		productRepo.On("Update", ctx, fix.product).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFeedbackUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitFeedbackCommandHandler(factory)
	stored, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, stored.ID().IsEqual(existing.ID()))
	assert.Equal(t, 2, stored.Rating())
	assert.Equal(t, "Second box arrived bruised", stored.Comment())

	// one review only, so the average equals its rating
	assert.True(t, fix.product.AverageRating().Equal(decimal.NewFromInt(2)))
	assert.Equal(t, 1, fix.product.TotalReviews())
	feedbackRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)

	feedbackRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSubmitFeedbackCommandHandler_Handle_WrongRetailerRefused(t *testing.T) {
	ctx := t.Context()
	fix := newFeedbackFixture(t)
	stranger := kernel.NewUUID()
	cmd, err := commands.NewSubmitFeedbackCommand(fix.order.ID(), fix.product.ID(),
		stranger, 5, "")
	require.NoError(t, err)

	orderRepo := new(MockFeedbackOrderRepository)
	feedbackRepo := new(MockFeedbackRepository)
	uow := new(MockFeedbackUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("ProductRepository").Return(new(MockFeedbackProductRepository)).Once(),
		uow.On("FeedbackRepository").Return(feedbackRepo).Once(),
		orderRepo.On("Get", ctx, fix.order.ID()).Return(fix.order, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFeedbackUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitFeedbackCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	feedbackRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestSubmitFeedbackCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewSubmitFeedbackCommand(orderID, kernel.NewUUID(), kernel.NewUUID(), 4, "")
	require.NoError(t, err)

	orderRepo := new(MockFeedbackOrderRepository)
	uow := new(MockFeedbackUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("ProductRepository").Return(new(MockFeedbackProductRepository)).Once(),
		uow.On("FeedbackRepository").Return(new(MockFeedbackRepository)).Once(),
		orderRepo.On("Get", ctx, orderID).
			Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFeedbackUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitFeedbackCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestSubmitFeedbackCommandHandler_Handle_InvalidRatingRefused(t *testing.T) {
	ctx := t.Context()
	fix := newFeedbackFixture(t)
	cmd, err := commands.NewSubmitFeedbackCommand(fix.order.ID(), fix.product.ID(),
		fix.retailer, 6, "")
	require.NoError(t, err)

	orderRepo := new(MockFeedbackOrderRepository)
	productRepo := new(MockFeedbackProductRepository)
	feedbackRepo := new(MockFeedbackRepository)
	uow := new(MockFeedbackUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		uow.On("FeedbackRepository").Return(feedbackRepo).Once(),
		orderRepo.On("Get", ctx, fix.order.ID()).Return(fix.order, nil).Once(),
		productRepo.On("Get", ctx, fix.product.ID()).Return(fix.product, nil).Once(),
		feedbackRepo.On("GetByOrder", ctx, fix.order.ID()).
			Return(nil, errs.NewObjectNotFoundError("feedback", fix.order.ID().String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFeedbackUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitFeedbackCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	feedbackRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestSubmitFeedbackCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.SubmitFeedbackCommand{} // not constructed properly
	factory := new(MockFeedbackUoWFactory)
	h := commands.NewSubmitFeedbackCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
