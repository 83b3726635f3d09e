package order_test

import (
	"testing"

	"ecshop/internal/core/domain/model/order"
	"ecshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromString(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "processing", "shipped", "delivered", "cancelled", "refunded"} {
		status, err := order.StatusFromString(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, status.String())
	}

	_, err := order.StatusFromString("teleported")
	require.Error(t, err)
	var vErr *errs.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, errs.CodeInvalidStatus, vErr.Code)
}

func TestStatus_IsTerminal(t *testing.T) {
	terminal := []order.Status{order.StatusDelivered, order.StatusCancelled, order.StatusRefunded}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), s)
	}

	open := []order.Status{order.StatusPending, order.StatusConfirmed, order.StatusProcessing, order.StatusShipped}
	for _, s := range open {
		assert.False(t, s.IsTerminal(), s)
	}
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("any different target from a non-terminal status is allowed", func(t *testing.T) {
		next, err := order.StatusPending.TransitionTo(order.StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, order.StatusConfirmed, next)

		// backwards transitions are permitted by design
		next, err = order.StatusShipped.TransitionTo(order.StatusProcessing)
		require.NoError(t, err)
		assert.Equal(t, order.StatusProcessing, next)
	})

	t.Run("unknown target is rejected", func(t *testing.T) {
		_, err := order.StatusPending.TransitionTo(order.Status("lost"))
		var vErr *errs.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, errs.CodeInvalidStatus, vErr.Code)
	})

	t.Run("no-op transition is rejected", func(t *testing.T) {
		_, err := order.StatusProcessing.TransitionTo(order.StatusProcessing)
		var cErr *errs.ConflictError
		require.ErrorAs(t, err, &cErr)
		assert.Equal(t, errs.CodeStatusUnchanged, cErr.Code)
	})

	t.Run("terminal statuses reject every transition", func(t *testing.T) {
		for _, s := range []order.Status{order.StatusDelivered, order.StatusCancelled, order.StatusRefunded} {
			for _, target := range []order.Status{order.StatusPending, order.StatusShipped, order.StatusRefunded} {
				if target == s {
					continue
				}
				_, err := s.TransitionTo(target)
				var cErr *errs.ConflictError
				require.ErrorAs(t, err, &cErr, "%s -> %s", s, target)
				assert.Equal(t, errs.CodeCannotCancel, cErr.Code)
			}
		}
	})
}

func TestShippingMethodFromString(t *testing.T) {
	m, err := order.ShippingMethodFromString("standard")
	require.NoError(t, err)
	assert.Equal(t, order.ShippingStandard, m)
	assert.Equal(t, 800.0, m.Cost())
	assert.Equal(t, 7, m.Rate().Days)

	m, err = order.ShippingMethodFromString("express")
	require.NoError(t, err)
	assert.Equal(t, 1500.0, m.Cost())

	m, err = order.ShippingMethodFromString("overnight")
	require.NoError(t, err)
	assert.Equal(t, 2500.0, m.Cost())
	assert.Equal(t, 1, m.Rate().Days)

	_, err = order.ShippingMethodFromString("teleport")
	var vErr *errs.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, errs.CodeInvalidShippingMethod, vErr.Code)
}
