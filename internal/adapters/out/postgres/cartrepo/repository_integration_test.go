package cartrepo_test

import (
	"context"
	"testing"
	"time"

	"ecshop/internal/adapters/out/postgres/cartrepo"
	"ecshop/internal/adapters/out/postgres/inventoryrepo"
	"ecshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CartRepositoryIntegrationTestSuite verifies the cart read model against a
// real PostgreSQL instance.
type CartRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *cartrepo.GormCartRepository
}

func (suite *CartRepositoryIntegrationTestSuite) SetupSuite() {
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
		&cartrepo.CartItemDTO{},
		&inventoryrepo.ProductDTO{},
	))
}

func (suite *CartRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE cart_items, products RESTART IDENTITY").Error)
	suite.repository = cartrepo.NewGormCartRepository(suite.db)
}

func (suite *CartRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CartRepositoryIntegrationTestSuite) seedProduct(name, sku, status string, price float64, stock int) int64 {
	dto := inventoryrepo.ProductDTO{
		Name:          name,
		SKU:           sku,
		Price:         price,
		StockQuantity: stock,
		Status:        status,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return dto.ID
}

func (suite *CartRepositoryIntegrationTestSuite) addLine(userID *int64, sessionID *string, productID int64, quantity int, createdAt time.Time) {
	dto := cartrepo.CartItemDTO{
		UserID:    userID,
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
}

func (suite *CartRepositoryIntegrationTestSuite) TestGetLines_JoinsLiveProductData() {
	ctx := context.Background()
	userID := int64(7)
	principal, err := kernel.NewUserPrincipal(userID)
	suite.Require().NoError(err)

	mugID := suite.seedProduct("Ceramic Mug", "MUG-001", "active", 1200, 5)
	teaID := suite.seedProduct("Tea Canister", "TEA-014", "active", 3400, 1)
	base := time.Now().Add(-time.Hour)
	suite.addLine(&userID, nil, teaID, 1, base.Add(time.Minute))
	suite.addLine(&userID, nil, mugID, 2, base)

	lines, err := suite.repository.GetLines(ctx, principal)
	suite.Require().NoError(err)
	suite.Require().Len(lines, 2)

	// Oldest line first.
	suite.Equal("Ceramic Mug", lines[0].ProductName)
	suite.Equal(2, lines[0].Quantity)
	suite.Equal(5, lines[0].LiveStock)
	suite.InDelta(1200, lines[0].UnitPrice, 0.001)
	suite.True(lines[0].IsActive)
	suite.Equal("Tea Canister", lines[1].ProductName)
}

func (suite *CartRepositoryIntegrationTestSuite) TestGetLines_DropsInactiveProducts() {
	ctx := context.Background()
	userID := int64(7)
	principal, err := kernel.NewUserPrincipal(userID)
	suite.Require().NoError(err)

	activeID := suite.seedProduct("Ceramic Mug", "MUG-001", "active", 1200, 5)
	retiredID := suite.seedProduct("Old Kettle", "KET-090", "inactive", 9800, 2)
	now := time.Now()
	suite.addLine(&userID, nil, activeID, 1, now)
	suite.addLine(&userID, nil, retiredID, 1, now)

	lines, err := suite.repository.GetLines(ctx, principal)
	suite.Require().NoError(err)
	suite.Require().Len(lines, 1)
	suite.Equal("Ceramic Mug", lines[0].ProductName)
}

func (suite *CartRepositoryIntegrationTestSuite) TestGetLines_GuestScoping() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	otherSession := uuid.NewString()
	principal, err := kernel.NewGuestPrincipal(sessionID)
	suite.Require().NoError(err)

	productID := suite.seedProduct("Ceramic Mug", "MUG-001", "active", 1200, 5)
	now := time.Now()
	suite.addLine(nil, &sessionID, productID, 1, now)
	suite.addLine(nil, &otherSession, productID, 3, now)

	lines, err := suite.repository.GetLines(ctx, principal)
	suite.Require().NoError(err)
	suite.Require().Len(lines, 1)
	suite.Equal(1, lines[0].Quantity)
}

func (suite *CartRepositoryIntegrationTestSuite) TestClear_RemovesOnlyOwnRows() {
	ctx := context.Background()
	userID := int64(7)
	otherID := int64(8)
	principal, err := kernel.NewUserPrincipal(userID)
	suite.Require().NoError(err)

	productID := suite.seedProduct("Ceramic Mug", "MUG-001", "active", 1200, 5)
	now := time.Now()
	suite.addLine(&userID, nil, productID, 1, now)
	suite.addLine(&otherID, nil, productID, 2, now)

	suite.Require().NoError(suite.repository.Clear(ctx, principal))

	var count int64
	suite.Require().NoError(suite.db.Model(&cartrepo.CartItemDTO{}).Count(&count).Error)
	suite.EqualValues(1, count)

	var remaining cartrepo.CartItemDTO
	suite.Require().NoError(suite.db.First(&remaining).Error)
	suite.Equal(otherID, *remaining.UserID)
}

func TestCartRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CartRepositoryIntegrationTestSuite))
}
