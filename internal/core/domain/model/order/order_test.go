package order_test

import (
	"testing"
	"time"

	"ecshop/internal/core/domain/model/kernel"
	"ecshop/internal/core/domain/model/order"
	"ecshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddress(t *testing.T) kernel.Address {
	t.Helper()
	addr, err := kernel.NewAddress([]byte(`{"postal_code":"150-0001","city":"Tokyo"}`))
	require.NoError(t, err)
	return addr
}

func testOrder(t *testing.T) *order.Order {
	t.Helper()

	owner, err := kernel.NewUserPrincipal(1)
	require.NoError(t, err)

	item, err := order.NewItem(10, "Ceramic Mug", "MUG-001", "https://img.example/mug.jpg", 1000, 2)
	require.NoError(t, err)

	addr := testAddress(t)
	o, err := order.NewOrder(
		owner,
		kernel.GenerateOrderNumber(time.Now()),
		order.ShippingStandard,
		addr,
		addr,
		"credit_card",
		"",
		"",
		order.Totals{Subtotal: 2000, TaxAmount: 200, ShippingCost: 800, Total: 3000},
		[]*order.Item{item},
		time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	o := testOrder(t)

	require.NoError(t, o.Validate())
	assert.Equal(t, order.StatusPending, o.Status())
	assert.Equal(t, order.DefaultCurrency, o.Currency())
	assert.Equal(t, "pending", o.PaymentStatus())
	assert.Equal(t, "credit_card", o.PaymentMethod())
	assert.Equal(t, 3000.0, o.Totals().Total)
	assert.Len(t, o.Items(), 1)
	assert.Nil(t, o.ShippedAt())
	assert.Nil(t, o.DeliveredAt())

	// standard shipping estimates 7 days out
	assert.Equal(t, time.Date(2025, 3, 21, 12, 0, 0, 0, time.UTC), o.EstimatedDelivery())
}

func TestNewOrder_NoItems(t *testing.T) {
	owner, _ := kernel.NewUserPrincipal(1)
	addr := testAddress(t)

	_, err := order.NewOrder(
		owner,
		kernel.GenerateOrderNumber(time.Now()),
		order.ShippingStandard,
		addr,
		addr,
		"", "", "",
		order.Totals{},
		nil,
		time.Now(),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrOrderItemsAreRequired)
}

func TestNewOrder_EmptyPaymentMethodDefaultsToPending(t *testing.T) {
	owner, _ := kernel.NewUserPrincipal(1)
	item, _ := order.NewItem(10, "Mug", "MUG-001", "", 1000, 1)
	addr := testAddress(t)

	o, err := order.NewOrder(
		owner, kernel.GenerateOrderNumber(time.Now()), order.ShippingExpress,
		addr, addr, "", "", "", order.Totals{}, []*order.Item{item}, time.Now(),
	)
	require.NoError(t, err)
	assert.Equal(t, "pending", o.PaymentMethod())
}

func TestOrder_Validate_ZeroValue(t *testing.T) {
	var o *order.Order
	assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	assert.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_AssignIdentity(t *testing.T) {
	o := testOrder(t)

	require.NoError(t, o.AssignIdentity(7))
	assert.Equal(t, int64(7), o.ID())

	err := o.AssignIdentity(8)
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrOrderIDAlreadyAssigned)
	assert.Equal(t, int64(7), o.ID())
}

func TestOrder_TransitionTo_SideEffects(t *testing.T) {
	now := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)

	t.Run("shipped stamps shipped_at", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.TransitionTo(order.StatusShipped, now))

		assert.Equal(t, order.StatusShipped, o.Status())
		require.NotNil(t, o.ShippedAt())
		assert.Equal(t, now, *o.ShippedAt())
		assert.Nil(t, o.DeliveredAt())
		assert.Equal(t, now, o.UpdatedAt())
	})

	t.Run("delivered stamps delivered_at", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.TransitionTo(order.StatusDelivered, now))

		require.NotNil(t, o.DeliveredAt())
		assert.Equal(t, now, *o.DeliveredAt())
	})

	t.Run("terminal order never mutates", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.TransitionTo(order.StatusDelivered, now))

		err := o.TransitionTo(order.StatusProcessing, now.Add(time.Hour))
		require.Error(t, err)
		assert.Equal(t, order.StatusDelivered, o.Status())
		assert.Equal(t, now, o.UpdatedAt())
	})
}

func TestOrder_Cancel(t *testing.T) {
	now := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)

	t.Run("non-terminal order is cancellable", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.Cancel(now))
		assert.Equal(t, order.StatusCancelled, o.Status())
	})

	t.Run("terminal order reports CANNOT_CANCEL", func(t *testing.T) {
		for _, target := range []order.Status{order.StatusDelivered, order.StatusCancelled, order.StatusRefunded} {
			o := testOrder(t)
			require.NoError(t, o.TransitionTo(target, now))

			err := o.Cancel(now.Add(time.Minute))
			var cErr *errs.ConflictError
			require.ErrorAs(t, err, &cErr, target)
			assert.Equal(t, errs.CodeCannotCancel, cErr.Code)
		}
	})
}

func TestOrder_IsOwnedBy(t *testing.T) {
	o := testOrder(t)

	owner, _ := kernel.NewUserPrincipal(1)
	stranger, _ := kernel.NewUserPrincipal(2)

	assert.True(t, o.IsOwnedBy(owner))
	assert.False(t, o.IsOwnedBy(stranger))
}

func TestNewItem(t *testing.T) {
	item, err := order.NewItem(10, "Ceramic Mug", "MUG-001", "https://img.example/mug.jpg", 1234.5, 3)
	require.NoError(t, err)

	assert.Equal(t, 1234.5*3, item.TotalPrice())
	assert.Equal(t, item.TotalPrice(), item.FinalPrice())
	assert.Zero(t, item.DiscountAmount())

	_, err = order.NewItem(0, "Mug", "", "", 100, 1)
	assert.ErrorIs(t, err, order.ErrItemProductIDIsInvalid)

	_, err = order.NewItem(10, "", "", "", 100, 1)
	assert.ErrorIs(t, err, order.ErrItemNameIsRequired)

	_, err = order.NewItem(10, "Mug", "", "", -1, 1)
	assert.ErrorIs(t, err, order.ErrItemPriceIsInvalid)

	_, err = order.NewItem(10, "Mug", "", "", 100, 0)
	assert.ErrorIs(t, err, order.ErrItemQuantityIsInvalid)
}

func TestNewStatusChange(t *testing.T) {
	now := time.Now()
	actor, err := kernel.NewAdminActor(99)
	require.NoError(t, err)

	t.Run("initial entry has nil previous status", func(t *testing.T) {
		change, err := order.NewInitialStatusChange(5, kernel.SystemActor(), now)
		require.NoError(t, err)

		assert.Nil(t, change.PreviousStatus())
		assert.Equal(t, order.StatusPending, change.NewStatus())
		assert.Equal(t, "Order created", change.Comment())
		assert.True(t, change.Actor().IsSystem())
	})

	t.Run("transition entry records both statuses", func(t *testing.T) {
		change, err := order.NewStatusChange(5, order.StatusPending, order.StatusConfirmed, "payment received", actor, now)
		require.NoError(t, err)

		require.NotNil(t, change.PreviousStatus())
		assert.Equal(t, order.StatusPending, *change.PreviousStatus())
		assert.Equal(t, order.StatusConfirmed, change.NewStatus())
		require.NotNil(t, change.Actor().AdminID())
		assert.Equal(t, int64(99), *change.Actor().AdminID())
	})

	t.Run("rejects invalid order id", func(t *testing.T) {
		_, err := order.NewInitialStatusChange(0, kernel.SystemActor(), now)
		assert.ErrorIs(t, err, order.ErrStatusChangeOrderIDIsInvalid)
	})
}

func TestNewEmailNotification(t *testing.T) {
	now := time.Now()
	number, err := kernel.OrderNumberFromString("ORD-20250314-0042")
	require.NoError(t, err)

	t.Run("renders subject and content", func(t *testing.T) {
		n, err := order.NewEmailNotification(5, order.NotificationConfirmation, "taro@example.com", number, "Taro", now)
		require.NoError(t, err)

		assert.Equal(t, order.NotificationPending, n.Status())
		assert.Equal(t, order.NotificationEmail, n.Method())
		assert.Equal(t, "Thank you for your order - Order ORD-20250314-0042", n.Subject())
		assert.Contains(t, n.Content(), "Dear Taro,")
		assert.Contains(t, n.Content(), "ORD-20250314-0042")
	})

	t.Run("empty name falls back to neutral salutation", func(t *testing.T) {
		n, err := order.NewEmailNotification(5, order.NotificationStatusUpdate, "taro@example.com", number, "", now)
		require.NoError(t, err)
		assert.Contains(t, n.Content(), "Dear Customer,")
	})

	t.Run("rejects missing recipient", func(t *testing.T) {
		_, err := order.NewEmailNotification(5, order.NotificationConfirmation, "", number, "Taro", now)
		assert.ErrorIs(t, err, order.ErrNotificationRecipientIsRequired)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := order.NewEmailNotification(5, order.NotificationType("fax"), "taro@example.com", number, "Taro", now)
		assert.ErrorIs(t, err, order.ErrNotificationTypeIsInvalid)
	})

	t.Run("mark sent and failed only from pending", func(t *testing.T) {
		n, err := order.NewEmailNotification(5, order.NotificationConfirmation, "taro@example.com", number, "Taro", now)
		require.NoError(t, err)

		require.NoError(t, n.MarkSent())
		assert.Equal(t, order.NotificationSent, n.Status())
		assert.ErrorIs(t, n.MarkFailed(), order.ErrNotificationIsNotPending)
	})
}
