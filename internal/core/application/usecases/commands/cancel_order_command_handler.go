package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CancelOrderCommandHandler fires CANCEL_ORDER. The transition table decides
// whether the current status is cancellable; when the order was already
// allocated, the transition's action publishes a deallocation notice.
type CancelOrderCommandHandler struct {
	pipeline eventPipeline
}

// NewCancelOrderCommandHandler creates a handler for cancellations.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.MessageGateway,
	monitor *StatusMonitor,
	awaitTimeout time.Duration,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		pipeline: newEventPipeline(uowFactory, gateway, monitor, awaitTimeout, logger),
	}
}

// Handle fires CANCEL_ORDER for the order.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.pipeline.sendEvent(ctx, cmd.OrderID(), order.EventCancelOrder)
}
