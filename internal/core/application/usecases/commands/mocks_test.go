package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockMessageGateway struct{ mock.Mock }

func (m *MockMessageGateway) PublishValidationRequest(ctx context.Context, request ports.ValidationRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockMessageGateway) PublishAllocationRequest(ctx context.Context, request ports.AllocationRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockMessageGateway) PublishDeallocationNotice(ctx context.Context, notice ports.DeallocationNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// restoredOrder builds a two-line order pinned to the given status, the way a
// repository would return it.
func restoredOrder(t *testing.T, id kernel.UUID, status order.Status) *order.Order {
	t.Helper()

	l1, err := order.NewLine(kernel.NewUUID(), "IPA-001", 5)
	require.NoError(t, err)
	l2, err := order.NewLine(kernel.NewUUID(), "STOUT-002", 3)
	require.NoError(t, err)

	o, err := order.RestoreOrder(id, kernel.NewUUID(), []*order.Line{l1, l2}, status, 1)
	require.NoError(t, err)
	return o
}

// expectTransition wires one pipeline pass on a fresh unit of work: begin,
// get, update, commit, rollback.
func expectTransition(
	ctx context.Context,
	uow *MockOrderUoW,
	repo *MockOrderRepository,
	o *order.Order,
) {
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		repo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
}
