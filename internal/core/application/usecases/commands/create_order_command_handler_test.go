package commands_test

import (
	"errors"
	"testing"

	"ecshop/internal/core/application/usecases/commands"
	"ecshop/internal/core/domain/model/cart"
	"ecshop/internal/core/domain/model/kernel"
	"ecshop/internal/core/domain/model/order"
	"ecshop/internal/core/domain/model/user"
	"ecshop/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func guestPrincipal(t *testing.T) kernel.Principal {
	t.Helper()
	principal, err := kernel.NewGuestPrincipal(uuid.NewString())
	require.NoError(t, err)
	return principal
}

func checkoutCommand(t *testing.T, principal kernel.Principal, couponCode string) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(
		principal, "standard", shippingJSON(), nil, "credit_card", couponCode, "",
	)
	require.NoError(t, err)
	return cmd
}

func cartLines() []cart.Line {
	return []cart.Line{
		{ProductID: 11, ProductName: "Ceramic Mug", ProductSKU: "MUG-001", UnitPrice: 1200, Quantity: 2, LiveStock: 5, IsActive: true},
		{ProductID: 12, ProductName: "Tea Canister", ProductSKU: "TEA-014", UnitPrice: 3400, Quantity: 1, LiveStock: 1, IsActive: true},
	}
}

// assignOrderIdentity backfills the storage id the way the real repository
// does after the insert.
func assignOrderIdentity(id int64) func(mock.Arguments) {
	return func(args mock.Arguments) {
		aggregate := args.Get(1).(*order.Order)
		_ = aggregate.AssignIdentity(id)
	}
}

func TestCreateOrderCommandHandler_Handle_GuestSuccess(t *testing.T) {
	ctx := t.Context()
	principal := guestPrincipal(t)
	cmd := checkoutCommand(t, principal, "")

	orderRepo := new(MockOrderRepository)
	inventoryRepo := new(MockInventoryRepository)
	cartRepo := new(MockCartRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CartRepository").Return(cartRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("InventoryRepository").Return(inventoryRepo)
	cartRepo.On("GetLines", ctx, principal).Return(cartLines(), nil).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Run(assignOrderIdentity(42)).Return(nil).Once()
	inventoryRepo.On("Decrement", ctx, int64(11), 2, mock.AnythingOfType("string"), int64(42)).Return(nil).Once()
	inventoryRepo.On("Decrement", ctx, int64(12), 1, mock.AnythingOfType("string"), int64(42)).Return(nil).Once()
	cartRepo.On("Clear", ctx, principal).Return(nil).Once()
	orderRepo.On("AddStatusChange", ctx, mock.AnythingOfType("*order.StatusChange")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, int64(42), created.ID())
	assert.Equal(t, order.StatusPending, created.Status())
	// 1200*2 + 3400 = 5800; tax 580; standard shipping 800.
	assert.InDelta(t, 5800.0, created.Totals().Subtotal, 0.001)
	assert.InDelta(t, 580.0, created.Totals().TaxAmount, 0.001)
	assert.InDelta(t, 7180.0, created.Totals().Total, 0.001)

	orderRepo.AssertExpectations(t)
	inventoryRepo.AssertExpectations(t)
	cartRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_UserGetsConfirmation(t *testing.T) {
	ctx := t.Context()
	principal, err := kernel.NewUserPrincipal(7)
	require.NoError(t, err)
	cmd := checkoutCommand(t, principal, "WELCOME10")

	orderRepo := new(MockOrderRepository)
	inventoryRepo := new(MockInventoryRepository)
	cartRepo := new(MockCartRepository)
	notificationRepo := new(MockNotificationRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CartRepository").Return(cartRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("InventoryRepository").Return(inventoryRepo)
	uow.On("NotificationRepository").Return(notificationRepo)
	uow.On("UserRepository").Return(userRepo)
	cartRepo.On("GetLines", ctx, principal).Return(cartLines(), nil).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Run(assignOrderIdentity(43)).Return(nil).Once()
	inventoryRepo.On("Decrement", ctx, mock.AnythingOfType("int64"), mock.AnythingOfType("int"), mock.AnythingOfType("string"), int64(43)).Return(nil).Twice()
	cartRepo.On("Clear", ctx, principal).Return(nil).Once()
	orderRepo.On("AddStatusChange", ctx, mock.AnythingOfType("*order.StatusChange")).Return(nil).Once()
	userRepo.On("Get", ctx, int64(7)).
		Return(&user.User{ID: 7, Email: "ana@example.com", FirstName: "Ana", LastName: "Sato"}, nil).Once()
	notificationRepo.On("Add", ctx, mock.MatchedBy(func(n *order.Notification) bool {
		return n.Type() == order.NotificationConfirmation && n.Recipient() == "ana@example.com"
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	// WELCOME10 takes 10% off the 5800 subtotal before tax.
	assert.InDelta(t, 580.0, created.Totals().CouponDiscount, 0.001)
	assert.InDelta(t, 522.0, created.Totals().TaxAmount, 0.001)

	notificationRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_EmptyCart(t *testing.T) {
	ctx := t.Context()
	principal := guestPrincipal(t)
	cmd := checkoutCommand(t, principal, "")

	cartRepo := new(MockCartRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CartRepository").Return(cartRepo)
	uow.On("Rollback", ctx).Return(nil).Once()
	cartRepo.On("GetLines", ctx, principal).Return([]cart.Line{}, nil).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, errs.CodeEmptyCart, validationErr.Code)
}

func TestCreateOrderCommandHandler_Handle_InsufficientStock(t *testing.T) {
	ctx := t.Context()
	principal := guestPrincipal(t)
	cmd := checkoutCommand(t, principal, "")

	lines := cartLines()
	lines[1].LiveStock = 0

	cartRepo := new(MockCartRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CartRepository").Return(cartRepo)
	uow.On("Rollback", ctx).Return(nil).Once()
	cartRepo.On("GetLines", ctx, principal).Return(lines, nil).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)

	var conflictErr *errs.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, errs.CodeInsufficientStock, conflictErr.Code)
	assert.Contains(t, conflictErr.Message, "Tea Canister")
}

func TestCreateOrderCommandHandler_Handle_RetriesOnOrderNumberCollision(t *testing.T) {
	ctx := t.Context()
	principal := guestPrincipal(t)
	cmd := checkoutCommand(t, principal, "")

	orderRepo := new(MockOrderRepository)
	inventoryRepo := new(MockInventoryRepository)
	cartRepo := new(MockCartRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CartRepository").Return(cartRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("InventoryRepository").Return(inventoryRepo)
	cartRepo.On("GetLines", ctx, principal).Return(cartLines(), nil).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errs.ErrOrderNumberTaken).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Run(assignOrderIdentity(44)).Return(nil).Once()
	inventoryRepo.On("Decrement", ctx, mock.AnythingOfType("int64"), mock.AnythingOfType("int"), mock.AnythingOfType("string"), int64(44)).Return(nil).Twice()
	cartRepo.On("Clear", ctx, principal).Return(nil).Once()
	orderRepo.On("AddStatusChange", ctx, mock.AnythingOfType("*order.StatusChange")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, int64(44), created.ID())
	orderRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_GivesUpAfterRepeatedCollisions(t *testing.T) {
	ctx := t.Context()
	principal := guestPrincipal(t)
	cmd := checkoutCommand(t, principal, "")

	orderRepo := new(MockOrderRepository)
	cartRepo := new(MockCartRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CartRepository").Return(cartRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil).Once()
	cartRepo.On("GetLines", ctx, principal).Return(cartLines(), nil).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errs.ErrOrderNumberTaken).Times(5)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPersistence)
	orderRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockCheckoutUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, commands.CreateOrderCommand{})
	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := checkoutCommand(t, guestPrincipal(t), "")

	uow := new(MockUoW)
	factory := new(MockCheckoutUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
