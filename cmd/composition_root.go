package cmd

import (
	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/kafka"
	"marketplace/internal/adapters/out/postgres"
	redisout "marketplace/internal/adapters/out/redis"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	dispatcher  *kafka.NotificationDispatcher
	statusCache *redisout.OrderStatusCache
}

func NewCompositionRoot(
	gormDB *gorm.DB,
	dispatcher *kafka.NotificationDispatcher,
	statusCache *redisout.OrderStatusCache,
) CompositionRoot {
	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		dispatcher:  dispatcher,
		statusCache: statusCache,
	}
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.PlacementUoWFactory = FuncPlacementUoWFactory(func() commands.PlacementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.statusCache, c.dispatcher)
}

func (c *CompositionRoot) CreateSettleOrderCommandHandler() commands.SettleOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSettleOrderCommandHandler(f, c.statusCache, c.dispatcher)
}

func (c *CompositionRoot) CreateSubmitFeedbackCommandHandler() commands.SubmitFeedbackCommandHandler {
	var f commands.FeedbackUoWFactory = FuncFeedbackUoWFactory(func() commands.FeedbackUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitFeedbackCommandHandler(f)
}

func (c *CompositionRoot) CreateRemindPendingOrdersCommandHandler() commands.RemindPendingOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemindPendingOrdersCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateGetRetailerOrdersQueryHandler() queries.GetRetailerOrdersQueryHandler {
	return queries.NewGetRetailerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetFarmerOrdersQueryHandler() queries.GetFarmerOrdersQueryHandler {
	return queries.NewGetFarmerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetProductFeedbackQueryHandler() queries.GetProductFeedbackQueryHandler {
	return queries.NewGetProductFeedbackQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.gormDB, c.statusCache)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateSettleOrderCommandHandler(),
		c.CreateSubmitFeedbackCommandHandler(),
		c.CreateGetRetailerOrdersQueryHandler(),
		c.CreateGetFarmerOrdersQueryHandler(),
		c.CreateGetProductFeedbackQueryHandler(),
		c.CreateGetOrderStatusQueryHandler(),
	)
}

type FuncPlacementUoWFactory func() commands.PlacementUoW

func (f FuncPlacementUoWFactory) Create() commands.PlacementUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncFeedbackUoWFactory func() commands.FeedbackUoW

func (f FuncFeedbackUoWFactory) Create() commands.FeedbackUoW {
	return f()
}
