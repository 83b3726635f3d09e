package inventoryrepo_test

import (
	"context"
	"testing"
	"time"

	"ecshop/internal/adapters/out/postgres/inventoryrepo"
	"ecshop/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InventoryRepositoryIntegrationTestSuite verifies the stock ledger against
// a real PostgreSQL instance.
type InventoryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *inventoryrepo.GormInventoryRepository
}

func (suite *InventoryRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&inventoryrepo.ProductDTO{},
		&inventoryrepo.MovementDTO{},
	))
}

func (suite *InventoryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE products, inventory_movements RESTART IDENTITY").Error)
	suite.repository = inventoryrepo.NewGormInventoryRepository(suite.db)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *InventoryRepositoryIntegrationTestSuite) seedProduct(stock int) int64 {
	dto := inventoryrepo.ProductDTO{
		Name:          "Ceramic Mug",
		SKU:           "MUG-001",
		Price:         1200,
		StockQuantity: stock,
		Status:        "active",
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return dto.ID
}

func (suite *InventoryRepositoryIntegrationTestSuite) stockOf(productID int64) int {
	var stock int
	suite.Require().NoError(suite.db.Model(&inventoryrepo.ProductDTO{}).
		Where("id = ?", productID).Pluck("stock_quantity", &stock).Error)
	return stock
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestDecrement_ReservesStockAndAppendsMovement() {
	ctx := context.Background()
	productID := suite.seedProduct(5)

	err := suite.repository.Decrement(ctx, productID, 2, "Order ORD-20260829-0042 - stock reserved", 42)
	suite.Require().NoError(err)
	suite.Equal(3, suite.stockOf(productID))

	var movement inventoryrepo.MovementDTO
	suite.Require().NoError(suite.db.First(&movement, "product_id = ?", productID).Error)
	suite.Equal("out", movement.MovementType)
	suite.Equal(2, movement.Quantity)
	suite.Equal(5, movement.PreviousStock)
	suite.Equal(3, movement.NewStock)
	suite.Equal("order", movement.ReferenceType)
	suite.EqualValues(42, movement.ReferenceID)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestDecrement_InsufficientStock() {
	ctx := context.Background()
	productID := suite.seedProduct(1)

	err := suite.repository.Decrement(ctx, productID, 2, "reserve", 42)
	suite.Require().Error(err)

	var conflictErr *errs.ConflictError
	suite.Require().ErrorAs(err, &conflictErr)
	suite.Equal(errs.CodeInsufficientStock, conflictErr.Code)

	// No state change, no ledger row.
	suite.Equal(1, suite.stockOf(productID))
	var count int64
	suite.Require().NoError(suite.db.Model(&inventoryrepo.MovementDTO{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestDecrement_RaceForLastUnit() {
	ctx := context.Background()
	productID := suite.seedProduct(1)

	results := make(chan error, 2)
	for range 2 {
		go func() {
			results <- suite.repository.Decrement(ctx, productID, 1, "reserve", 42)
		}()
	}

	var succeeded, conflicted int
	for range 2 {
		if err := <-results; err == nil {
			succeeded++
		} else {
			var conflictErr *errs.ConflictError
			suite.Require().ErrorAs(err, &conflictErr)
			suite.Equal(errs.CodeInsufficientStock, conflictErr.Code)
			conflicted++
		}
	}

	suite.Equal(1, succeeded)
	suite.Equal(1, conflicted)
	suite.Equal(0, suite.stockOf(productID))

	var count int64
	suite.Require().NoError(suite.db.Model(&inventoryrepo.MovementDTO{}).Count(&count).Error)
	suite.EqualValues(1, count)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestRestore_ReturnsStock() {
	ctx := context.Background()
	productID := suite.seedProduct(3)

	err := suite.repository.Restore(ctx, productID, 2, "Order ORD-20260829-0042 cancelled - stock restored", 42)
	suite.Require().NoError(err)
	suite.Equal(5, suite.stockOf(productID))

	var movement inventoryrepo.MovementDTO
	suite.Require().NoError(suite.db.First(&movement, "product_id = ?", productID).Error)
	suite.Equal("in", movement.MovementType)
	suite.Equal(3, movement.PreviousStock)
	suite.Equal(5, movement.NewStock)
	suite.Equal("return", movement.ReferenceType)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestRestore_MissingProduct() {
	err := suite.repository.Restore(context.Background(), 9999, 1, "restore", 42)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestInventoryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryRepositoryIntegrationTestSuite))
}
