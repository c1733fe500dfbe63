package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CreateOrderCommandHandler registers a new order and kicks off its
// lifecycle. The order is persisted in NEW status; once the creating
// transaction committed, VALIDATE_ORDER is fired, which moves the order to
// VALIDATION_PENDING and emits the validation request.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pipeline   eventPipeline
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.MessageGateway,
	monitor *StatusMonitor,
	awaitTimeout time.Duration,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pipeline:   newEventPipeline(uowFactory, gateway, monitor, awaitTimeout, logger),
	}
}

// Handle persists the new order and fires VALIDATE_ORDER. Returns the
// persisted aggregate; its status reflects the transition when the event was
// accepted (VALIDATION_PENDING) and stays NEW only if validation kickoff was
// rejected.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(cmd.Lines()))
	for _, spec := range cmd.Lines() {
		line, err := order.NewLine(spec.LineID, spec.SKU, spec.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), lines)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err = h.pipeline.sendEvent(ctx, newOrder.ID(), order.EventValidateOrder); err != nil {
		return nil, err
	}

	return h.reload(ctx, newOrder)
}

// reload returns the freshest persisted view of the order so the caller sees
// the status the validation kickoff left behind.
func (h CreateOrderCommandHandler) reload(ctx context.Context, fallback *order.Order) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fallback, nil //nolint:nilerr //the order is already committed
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	persisted, err := uow.OrderRepository().Get(ctx, fallback.ID())
	if err != nil {
		return fallback, nil //nolint:nilerr //the order is already committed
	}

	return persisted, nil
}
