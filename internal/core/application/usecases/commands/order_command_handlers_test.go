package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"feedme/internal/core/application/usecases/commands"
	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/order"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// expectOrderMutation wires a transaction that loads o and, when saved is
// true, stores it and commits.
func expectOrderMutation(
	ctx context.Context,
	o *order.Order,
	saved bool,
) (*MockOrderUoWFactory, *MockUoW, *MockOrderRepository) {
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	if saved {
		repo.On("Update", ctx, o).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
	}
	uow.On("Rollback", ctx).Return(nil).Once()

	return factory, uow, repo
}

func TestConfirmPaymentCommandHandler_Handle(t *testing.T) {
	t.Run("customer pays own order", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		customer := newActor(t, user.RoleCustomer)
		o := newTestOrder(t, customer.ID, newTestMeal(t, kernel.NewUUID()), time.Now().Add(-time.Minute))
		cmd, err := commands.NewConfirmPaymentCommand(customer, o.ID(), "pi_3N8x")
		require.NoError(t, err)
		factory, uow, repo := expectOrderMutation(ctx, o, true)

		// Act
		h := commands.NewConfirmPaymentCommandHandler(factory)
		err = h.Handle(ctx, cmd)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, order.Paid, o.Status())
		assert.Equal(t, "pi_3N8x", o.PaymentReference())
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("another customer is forbidden", func(t *testing.T) {
		ctx := t.Context()
		o := newTestOrder(t, kernel.NewUUID(), newTestMeal(t, kernel.NewUUID()), time.Now())
		cmd, err := commands.NewConfirmPaymentCommand(newActor(t, user.RoleCustomer), o.ID(), "pi_3N8x")
		require.NoError(t, err)
		factory, uow, repo := expectOrderMutation(ctx, o, false)

		h := commands.NewConfirmPaymentCommandHandler(factory)
		err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, order.Processing, o.Status())
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("payment reference is required", func(t *testing.T) {
		_, err := commands.NewConfirmPaymentCommand(newActor(t, user.RoleCustomer), kernel.NewUUID(), "  ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestAppendTrackingUpdateCommandHandler_Handle(t *testing.T) {
	t.Run("provider of a line item advances the order", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		provider := newActor(t, user.RoleProvider)
		o := newPaidTestOrder(t, kernel.NewUUID(), newTestMeal(t, provider.ID), time.Now().Add(-time.Minute))
		cmd, err := commands.NewAppendTrackingUpdateCommand(provider, o.ID(), order.StageShipped, "Left the kitchen")
		require.NoError(t, err)
		factory, uow, repo := expectOrderMutation(ctx, o, true)

		// Act
		h := commands.NewAppendTrackingUpdateCommandHandler(factory)
		err = h.Handle(ctx, cmd)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, order.Shipped, o.Status())
		pending := o.PendingTrackingUpdates()
		require.Len(t, pending, 1)
		assert.Equal(t, "Left the kitchen", pending[0].Message())
		stages := o.TrackingStages()
		assert.True(t, stages.Processed)
		assert.False(t, stages.Delivered)
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("unrelated provider is forbidden", func(t *testing.T) {
		ctx := t.Context()
		o := newTestOrder(t, kernel.NewUUID(), newTestMeal(t, kernel.NewUUID()), time.Now())
		cmd, err := commands.NewAppendTrackingUpdateCommand(newActor(t, user.RoleProvider), o.ID(), order.StageApproved, "ok")
		require.NoError(t, err)
		factory, uow, _ := expectOrderMutation(ctx, o, false)

		h := commands.NewAppendTrackingUpdateCommandHandler(factory)
		err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrForbidden)
		uow.AssertExpectations(t)
	})

	t.Run("unpaid orders cannot be approved", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		provider := newActor(t, user.RoleProvider)
		o := newTestOrder(t, kernel.NewUUID(), newTestMeal(t, provider.ID), time.Now().Add(-time.Minute))
		cmd, err := commands.NewAppendTrackingUpdateCommand(provider, o.ID(), order.StageDelivered, "Handed over")
		require.NoError(t, err)
		factory, uow, _ := expectOrderMutation(ctx, o, false)

		// Act
		h := commands.NewAppendTrackingUpdateCommandHandler(factory)
		err = h.Handle(ctx, cmd)

		// Assert
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "order must be paid")
		assert.Equal(t, order.Processing, o.Status())
		assert.True(t, o.IsUnpaidSince(time.Now()))
		uow.AssertExpectations(t)
	})

	t.Run("moving backwards is rejected", func(t *testing.T) {
		ctx := t.Context()
		admin := newActor(t, user.RoleAdmin)
		o := newPaidTestOrder(t, kernel.NewUUID(), newTestMeal(t, kernel.NewUUID()), time.Now().Add(-time.Minute))
		require.NoError(t, o.AppendTrackingUpdate(order.StageShipped, "Out for delivery", time.Now()))
		cmd, err := commands.NewAppendTrackingUpdateCommand(admin, o.ID(), order.StageApproved, "Approved")
		require.NoError(t, err)
		factory, uow, _ := expectOrderMutation(ctx, o, false)

		h := commands.NewAppendTrackingUpdateCommandHandler(factory)
		err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Shipped, o.Status())
		uow.AssertExpectations(t)
	})
}

func TestAssignTrackingNumberCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	provider := newActor(t, user.RoleProvider)
	o := newTestOrder(t, kernel.NewUUID(), newTestMeal(t, provider.ID), time.Now().Add(-time.Minute))
	cmd, err := commands.NewAssignTrackingNumberCommand(provider, o.ID(), "FM-000123")
	require.NoError(t, err)
	factory, uow, repo := expectOrderMutation(ctx, o, true)

	h := commands.NewAssignTrackingNumberCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "FM-000123", o.TrackingNumber())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)

	t.Run("second assignment conflicts", func(t *testing.T) {
		ctx := t.Context()
		again, err := commands.NewAssignTrackingNumberCommand(provider, o.ID(), "FM-000999")
		require.NoError(t, err)
		factory, uow, _ := expectOrderMutation(ctx, o, false)

		h := commands.NewAssignTrackingNumberCommandHandler(factory)
		err = h.Handle(ctx, again)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, "FM-000123", o.TrackingNumber())
		uow.AssertExpectations(t)
	})
}

func TestSetEstimatedDeliveryDateCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	admin := newActor(t, user.RoleAdmin)
	o := newTestOrder(t, kernel.NewUUID(), newTestMeal(t, kernel.NewUUID()), time.Now().Add(-time.Minute))
	eta := time.Now().Add(48 * time.Hour).UTC().Truncate(24 * time.Hour)
	cmd, err := commands.NewSetEstimatedDeliveryDateCommand(admin, o.ID(), eta)
	require.NoError(t, err)
	factory, uow, repo := expectOrderMutation(ctx, o, true)

	h := commands.NewSetEstimatedDeliveryDateCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, o.EstimatedDeliveryDate())
	assert.True(t, eta.Equal(*o.EstimatedDeliveryDate()))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle(t *testing.T) {
	t.Run("customer cancels", func(t *testing.T) {
		ctx := t.Context()
		customer := newActor(t, user.RoleCustomer)
		o := newTestOrder(t, customer.ID, newTestMeal(t, kernel.NewUUID()), time.Now().Add(-time.Minute))
		cmd, err := commands.NewCancelOrderCommand(customer, o.ID())
		require.NoError(t, err)
		factory, uow, repo := expectOrderMutation(ctx, o, true)

		h := commands.NewCancelOrderCommandHandler(factory)
		err = h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("shipped orders cannot be cancelled", func(t *testing.T) {
		ctx := t.Context()
		customer := newActor(t, user.RoleCustomer)
		o := newPaidTestOrder(t, customer.ID, newTestMeal(t, kernel.NewUUID()), time.Now().Add(-time.Minute))
		require.NoError(t, o.AppendTrackingUpdate(order.StageShipped, "Out for delivery", time.Now()))
		cmd, err := commands.NewCancelOrderCommand(customer, o.ID())
		require.NoError(t, err)
		factory, uow, _ := expectOrderMutation(ctx, o, false)

		h := commands.NewCancelOrderCommandHandler(factory)
		err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Shipped, o.Status())
		uow.AssertExpectations(t)
	})
}

func TestDeleteOrderCommandHandler_Handle(t *testing.T) {
	t.Run("admin deletes", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		cmd, err := commands.NewDeleteOrderCommand(newActor(t, user.RoleAdmin), id)
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		uow := new(MockUoW)
		factory := new(MockOrderUoWFactory)
		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("Delete", ctx, id).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		h := commands.NewDeleteOrderCommandHandler(factory)
		err = h.Handle(ctx, cmd)

		require.NoError(t, err)
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("customer is forbidden", func(t *testing.T) {
		cmd, err := commands.NewDeleteOrderCommand(newActor(t, user.RoleCustomer), kernel.NewUUID())
		require.NoError(t, err)
		factory := new(MockOrderUoWFactory)

		h := commands.NewDeleteOrderCommandHandler(factory)
		err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrForbidden)
		factory.AssertNotCalled(t, "Create")
	})

	t.Run("storage error is returned", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		cmd, err := commands.NewDeleteOrderCommand(newActor(t, user.RoleAdmin), id)
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		uow := new(MockUoW)
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(repo).Once()
		repo.On("Delete", ctx, id).Return(errors.New("connection reset")).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		h := commands.NewDeleteOrderCommandHandler(factory)
		err = h.Handle(ctx, cmd)

		require.EqualError(t, err, "connection reset")
		uow.AssertExpectations(t)
	})
}

func TestExpireUnpaidOrdersCommandHandler_Handle(t *testing.T) {
	// Arrange
	ctx := t.Context()
	m := newTestMeal(t, kernel.NewUUID())
	stale := newTestOrder(t, kernel.NewUUID(), m, time.Now().Add(-2*time.Hour))
	paidMeanwhile := newTestOrder(t, kernel.NewUUID(), m, time.Now().Add(-2*time.Hour))
	require.NoError(t, paidMeanwhile.ConfirmPayment("pi_late", time.Now()))

	cmd, err := commands.NewExpireUnpaidOrdersCommand(time.Hour, 50)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetUnpaidPlacedBefore", ctx, mock.AnythingOfType("time.Time"), 50).
			Return([]*order.Order{stale, paidMeanwhile}, nil).Once(),
		repo.On("Update", ctx, stale).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	// Act
	h := commands.NewExpireUnpaidOrdersCommandHandler(factory)
	expired, err := h.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	assert.Equal(t, order.Cancelled, stale.Status())
	assert.Equal(t, order.Paid, paidMeanwhile.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestExpireUnpaidOrdersCommandHandler_Handle_SkipsOrdersPaidAfterRead(t *testing.T) {
	// Arrange
	ctx := t.Context()
	m := newTestMeal(t, kernel.NewUUID())
	paidConcurrently := newTestOrder(t, kernel.NewUUID(), m, time.Now().Add(-2*time.Hour))
	stale := newTestOrder(t, kernel.NewUUID(), m, time.Now().Add(-2*time.Hour))

	cmd, err := commands.NewExpireUnpaidOrdersCommand(time.Hour, 50)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetUnpaidPlacedBefore", ctx, mock.AnythingOfType("time.Time"), 50).
			Return([]*order.Order{paidConcurrently, stale}, nil).Once(),
		repo.On("Update", ctx, paidConcurrently).
			Return(errs.NewConflictErrorWithCause("status", errors.New("order is Paid, expected Processing"))).Once(),
		repo.On("Update", ctx, stale).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	// Act
	h := commands.NewExpireUnpaidOrdersCommandHandler(factory)
	expired, err := h.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestExpireUnpaidOrdersCommandHandler_Handle_NothingToExpire(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewExpireUnpaidOrdersCommand(time.Hour, 10)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetUnpaidPlacedBefore", ctx, mock.Anything, 10).Return([]*order.Order{}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewExpireUnpaidOrdersCommandHandler(factory)
	expired, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, expired)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewExpireUnpaidOrdersCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewExpireUnpaidOrdersCommand(0, 0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
