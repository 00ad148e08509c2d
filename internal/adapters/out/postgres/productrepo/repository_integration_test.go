package productrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/productrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type ProductRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *productrepo.GormProductRepository
}

func (suite *ProductRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&productrepo.ProductDTO{})
	suite.Require().NoError(err)

	suite.repo = productrepo.NewGormProductRepository(db, &mockAggregateTracker{})
}

func (suite *ProductRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ProductRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE products CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *ProductRepositoryTestSuite) newProduct(stock int) *product.Product {
	p, err := product.NewProduct(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Heirloom Tomatoes",
		"Vine-ripened, picked this morning",
		"Vegetables",
		"kg",
		decimal.NewFromInt(50),
		stock,
	)
	suite.Require().NoError(err)
	return p
}

func (suite *ProductRepositoryTestSuite) TestAddAndGet_RoundTripsAllFields() {
	ctx := context.Background()
	p := suite.newProduct(10)

	err := suite.repo.Add(ctx, p)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Assert().True(loaded.ID().IsEqual(p.ID()))
	suite.Assert().True(loaded.FarmerID().IsEqual(p.FarmerID()))
	suite.Assert().Equal("Heirloom Tomatoes", loaded.Name())
	suite.Assert().Equal("Vine-ripened, picked this morning", loaded.Description())
	suite.Assert().Equal("Vegetables", loaded.Category())
	suite.Assert().Equal("kg", loaded.Unit())
	suite.Assert().True(loaded.Price().Equal(decimal.NewFromInt(50)))
	suite.Assert().Equal(10, loaded.Stock())
	suite.Assert().True(loaded.AverageRating().IsZero())
	suite.Assert().Equal(0, loaded.TotalReviews())
}

func (suite *ProductRepositoryTestSuite) TestGet_NotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.Assert().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ProductRepositoryTestSuite) TestUpdate_PersistsStockAndRating() {
	ctx := context.Background()
	p := suite.newProduct(10)

	err := suite.repo.Add(ctx, p)
	suite.Require().NoError(err)

	err = p.Reserve(4)
	suite.Require().NoError(err)
	err = p.UpdateRating(decimal.NewFromFloat(4.5), 2)
	suite.Require().NoError(err)

	err = suite.repo.Update(ctx, p)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Assert().Equal(6, loaded.Stock())
	suite.Assert().True(loaded.AverageRating().Equal(decimal.NewFromFloat(4.5)))
	suite.Assert().Equal(2, loaded.TotalReviews())
}

func (suite *ProductRepositoryTestSuite) TestUpdate_ZeroStockPersists() {
	ctx := context.Background()
	p := suite.newProduct(3)

	err := suite.repo.Add(ctx, p)
	suite.Require().NoError(err)

	err = p.Reserve(3)
	suite.Require().NoError(err)

	err = suite.repo.Update(ctx, p)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Assert().Equal(0, loaded.Stock())
}

func (suite *ProductRepositoryTestSuite) TestUpdate_UnknownProduct() {
	err := suite.repo.Update(context.Background(), suite.newProduct(5))
	suite.Require().Error(err)
}

func (suite *ProductRepositoryTestSuite) TestGetForUpdate_ReadsRowInsideTransaction() {
	ctx := context.Background()
	p := suite.newProduct(7)

	err := suite.repo.Add(ctx, p)
	suite.Require().NoError(err)

	tx := suite.db.Begin()
	suite.Require().NoError(tx.Error)
	defer tx.Rollback()

	txRepo := productrepo.NewGormProductRepository(tx, &mockAggregateTracker{})
	loaded, err := txRepo.GetForUpdate(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Assert().Equal(7, loaded.Stock())
}

func (suite *ProductRepositoryTestSuite) TestGetForUpdate_NotFound() {
	tx := suite.db.Begin()
	suite.Require().NoError(tx.Error)
	defer tx.Rollback()

	txRepo := productrepo.NewGormProductRepository(tx, &mockAggregateTracker{})
	_, err := txRepo.GetForUpdate(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.Assert().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestProductRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepositoryTestSuite))
}
