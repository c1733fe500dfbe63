package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProcessValidationResultCommandHandler_Handle_Valid(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewProcessValidationResultCommand(orderID, true)
	require.NoError(t, err)

	pending := restoredOrder(t, orderID, order.StatusValidationPending)
	validated := restoredOrder(t, orderID, order.StatusValidated)

	passRepo := new(MockOrderRepository)
	passUoW := new(MockOrderUoW)
	expectTransition(ctx, passUoW, passRepo, pending)

	allocateRepo := new(MockOrderRepository)
	allocateUoW := new(MockOrderUoW)
	expectTransition(ctx, allocateUoW, allocateRepo, validated)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(passUoW).Once()
	factory.On("Create").Return(allocateUoW).Once()

	gateway := new(MockMessageGateway)
	gateway.On("PublishAllocationRequest", mock.Anything, mock.MatchedBy(func(r ports.AllocationRequest) bool {
		return r.OrderID == orderID.String() && len(r.Lines) == 2
	})).Return(nil).Once()

	h := commands.NewProcessValidationResultCommandHandler(
		factory, gateway, commands.NewStatusMonitor(), time.Second, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.StatusValidated, pending.Status())
	assert.Equal(t, order.StatusAllocationPending, validated.Status())
	passRepo.AssertExpectations(t)
	allocateRepo.AssertExpectations(t)
	gateway.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestProcessValidationResultCommandHandler_Handle_Invalid(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewProcessValidationResultCommand(orderID, false)
	require.NoError(t, err)

	pending := restoredOrder(t, orderID, order.StatusValidationPending)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	expectTransition(ctx, uow, repo, pending)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	gateway := new(MockMessageGateway)

	h := commands.NewProcessValidationResultCommandHandler(
		factory, gateway, commands.NewStatusMonitor(), time.Second, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.StatusValidationException, pending.Status())
	gateway.AssertNotCalled(t, "PublishAllocationRequest", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestProcessValidationResultCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewProcessValidationResultCommand(orderID, false)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderID", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewProcessValidationResultCommandHandler(
		factory, new(MockMessageGateway), commands.NewStatusMonitor(), time.Second, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestProcessValidationResultCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ProcessValidationResultCommand{} // not constructed properly

	h := commands.NewProcessValidationResultCommandHandler(
		new(MockOrderUoWFactory), new(MockMessageGateway), commands.NewStatusMonitor(), time.Second, testLogger())
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrProcessValidationResultCommandIsNotConstructed)
}
